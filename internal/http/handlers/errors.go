// Package handlers defines HTTP-layer error codes used across all API endpoints.
//
// These codes are the stable, machine-readable half of the error envelope
// written by fail(). Clients branch on the code; the message is for display.
//
// Example response:
//
//	{
//	  "error": {
//	    "code": "VALIDATION_FAILED",
//	    "message": "Please correct the highlighted fields",
//	    "fields": {"email": "Please enter a valid email address"}
//	  }
//	}
package handlers

const (
	ErrCodeBadRequest       = "BAD_REQUEST"
	ErrCodeNotFound         = "NOT_FOUND"
	ErrCodeMethodNotAllowed = "METHOD_NOT_ALLOWED"
	ErrCodeRateLimited      = "RATE_LIMITED"
	ErrCodeInternal         = "INTERNAL_ERROR"

	// Intake flows:
	ErrCodeMissingFields     = "MISSING_FIELDS"
	ErrCodeValidationFailed  = "VALIDATION_FAILED"
	ErrCodeBookingFailed     = "BOOKING_FAILED"
	ErrCodePersistenceFailed = "PERSISTENCE_FAILED"
	ErrCodeUpstreamTimeout   = "UPSTREAM_TIMEOUT"
	ErrCodeAvailability      = "AVAILABILITY_CHECK_FAILED"
)
