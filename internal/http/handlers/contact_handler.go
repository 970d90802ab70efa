package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-intake-backend/internal/domain"
	"github.com/tbourn/go-intake-backend/internal/services"
)

// ContactRequest is the JSON payload of the contact form.
type ContactRequest struct {
	Name    string `json:"name" example:"Ada Lovelace"`
	Email   string `json:"email" example:"ada@example.com"`
	Company string `json:"company,omitempty" example:"Analytical Engines Ltd"`
	Phone   string `json:"phone,omitempty" example:"+1 (212) 555-1212"`
	Message string `json:"message,omitempty" example:"We would like a new website."`
}

// ContactData is the payload of a successful contact submission.
type ContactData struct {
	Success    bool                     `json:"success" example:"true"`
	Message    string                   `json:"message" example:"Thank you for your message. We'll be in touch soon."`
	Submission domain.ContactSubmission `json:"submission"`
	EmailSent  bool                     `json:"emailSent" example:"true"`
}

// ContactResponse wraps ContactData.
type ContactResponse struct {
	Data ContactData `json:"data"`
}

// SubmitContact godoc
// @ID          submitContact
// @Summary     Submit the contact form
// @Description Validates and stores a contact submission, then notifies the team and the submitter.
// @Tags        Contact
// @Accept      json
// @Produce     json
// @Param       Idempotency-Key header string false "Replays the stored response for a repeated submission"
// @Param       body body handlers.ContactRequest true "Contact payload"
// @Success     200 {object} handlers.ContactResponse
// @Failure     400 {object} handlers.ErrorResponse "Missing or invalid fields"
// @Failure     429 {object} handlers.ErrorResponse "Rate limited"
// @Failure     500 {object} handlers.ErrorResponse "Storage failure or timeout"
// @Router      /contact [post]
func (h *Handlers) SubmitContact(c *gin.Context) {
	var req ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badJSON(c, FlowContact)
		return
	}

	res, err := h.contact.Submit(requestContext(c), services.ContactInput{
		Name:    req.Name,
		Email:   req.Email,
		Company: req.Company,
		Phone:   req.Phone,
		Message: req.Message,
	})
	if err != nil {
		h.serviceError(c, FlowContact, err)
		return
	}

	h.outcome(FlowContact, "ok")
	ok(c, http.StatusOK, ContactResponse{Data: ContactData{
		Success:    true,
		Message:    "Thank you for your message. We'll be in touch soon.",
		Submission: *res.Submission,
		EmailSent:  res.EmailSent,
	}})
}
