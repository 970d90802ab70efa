package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-intake-backend/internal/services"
)

// LeadRequest is the JSON payload of a gated-content form.
type LeadRequest struct {
	Name       string `json:"name,omitempty" example:"Linus"`
	Email      string `json:"email" example:"linus@example.com"`
	MagnetType string `json:"magnet_type,omitempty" example:"website-planning-guide"`
	Stage      string `json:"stage,omitempty" example:"initial"`
	Source     string `json:"source,omitempty" example:"blog"`
}

// LeadResponse is the body of a successful capture. Unlike the other flows it
// is not wrapped in "data".
type LeadResponse struct {
	Success     bool   `json:"success" example:"true"`
	Message     string `json:"message" example:"Thanks! Check your inbox for the guide."`
	LeadID      string `json:"leadId" example:"0b8f7c0e-7f4e-4d7a-9d2b-3c1f8f6f2a11"`
	EmailSent   bool   `json:"emailSent" example:"true"`
	DownloadURL string `json:"downloadUrl,omitempty" example:"https://cdn.example.com/guides/website-planning-guide.pdf"`
}

// CaptureLead godoc
// @ID          captureLead
// @Summary     Capture a lead
// @Description Upserts the lead by email. With magnet_type a download is recorded and the guide link is emailed.
// @Tags        Leads
// @Accept      json
// @Produce     json
// @Param       Idempotency-Key header string false "Replays the stored response for a repeated submission"
// @Param       body body handlers.LeadRequest true "Lead payload"
// @Success     200 {object} handlers.LeadResponse
// @Failure     400 {object} handlers.ErrorResponse "Missing or invalid fields"
// @Failure     429 {object} handlers.ErrorResponse "Rate limited"
// @Failure     500 {object} handlers.ErrorResponse "Storage failure or timeout"
// @Router      /leads [post]
func (h *Handlers) CaptureLead(c *gin.Context) {
	var req LeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badJSON(c, FlowLead)
		return
	}

	res, err := h.leads.Capture(requestContext(c), services.LeadInput{
		Name:       req.Name,
		Email:      req.Email,
		MagnetType: req.MagnetType,
		Stage:      req.Stage,
		Source:     req.Source,
		IPAddress:  c.ClientIP(),
		UserAgent:  c.Request.UserAgent(),
	})
	if err != nil {
		h.serviceError(c, FlowLead, err)
		return
	}

	msg := "Thanks for subscribing!"
	if res.Download != nil {
		msg = "Thanks! Check your inbox for the guide."
	}
	h.outcome(FlowLead, "ok")
	ok(c, http.StatusOK, LeadResponse{
		Success:     true,
		Message:     msg,
		LeadID:      res.Lead.ID,
		EmailSent:   res.EmailSent,
		DownloadURL: res.DownloadURL,
	})
}
