// Package handlers provides HTTP handler implementations for the public API.
//
// This file defines the response helpers shared by every endpoint. Errors are
// always written as {"error": {...}} so that clients can rely on one shape.
//
// Example error response:
//
//	HTTP/1.1 409 Conflict
//	{
//	  "error": {
//	    "code": "BOOKING_FAILED",
//	    "message": "This time slot is already booked. Please choose another time."
//	  }
//	}
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-intake-backend/internal/http/middleware"
)

// ErrorBody is the inner object of the error envelope.
type ErrorBody struct {
	// Stable, machine-readable code (see errors.go constants)
	Code string `json:"code" example:"VALIDATION_FAILED"`
	// Human-readable message (safe to show to users)
	Message string `json:"message" example:"Please correct the highlighted fields"`
	// Per-field messages, present for VALIDATION_FAILED only
	Fields map[string]string `json:"fields,omitempty"`
	// Correlates server logs and client errors
	RequestID string `json:"request_id,omitempty" example:"123e4567-e89b-12d3-a456-426614174000"`
}

// ErrorResponse is the standard error envelope returned by all endpoints.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// fail aborts the request with a structured error and logs server-side errors.
func fail(c *gin.Context, status int, code, msg string) {
	failFields(c, status, code, msg, nil)
}

// failFields is fail with a per-field message map.
func failFields(c *gin.Context, status int, code, msg string, fields map[string]string) {
	resp := ErrorResponse{Error: ErrorBody{
		Code:      code,
		Message:   msg,
		Fields:    fields,
		RequestID: c.Writer.Header().Get("X-Request-ID"),
	}}

	if status >= http.StatusInternalServerError {
		lg := middleware.LoggerFrom(c)
		lg.Error().
			Int("status", status).
			Str("code", code).
			Str("message", msg).
			Msg("api error")
	}

	c.AbortWithStatusJSON(status, resp)
}

// Fail is the exported variant of fail() for router-level fallbacks.
func Fail(c *gin.Context, status int, code, msg string) { fail(c, status, code, msg) }

// ok writes a success JSON response.
func ok(c *gin.Context, status int, body any) {
	c.JSON(status, body)
}
