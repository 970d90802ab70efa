// Package handlers exposes the intake endpoints:
//   - POST /contact                  (contact form)
//   - POST /bookings                 (discovery-call booking)
//   - GET  /bookings/availability    (slots of one day)
//   - GET  /bookings/dates           (bookable days)
//   - POST /leads                    (gated-content capture)
//
// Handlers are transport-thin: they bind the JSON payload, delegate to the
// services and translate service errors into the error envelope.
package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-intake-backend/internal/http/middleware"
	"github.com/tbourn/go-intake-backend/internal/services"
)

//
// Service contracts (context-aware)
//

// ContactSubmitter runs the contact-form flow.
type ContactSubmitter interface {
	Submit(ctx context.Context, in services.ContactInput) (*services.ContactResult, error)
}

// Booker runs the booking flow.
type Booker interface {
	Book(ctx context.Context, in services.BookingInput) (*services.BookingResult, error)
}

// SlotFinder answers availability questions for the booking widget.
type SlotFinder interface {
	Slots(ctx context.Context, date string) ([]services.SlotAvailability, error)
	Dates(days int) []string
}

// LeadCapturer runs the lead-capture flow.
type LeadCapturer interface {
	Capture(ctx context.Context, in services.LeadInput) (*services.LeadResult, error)
}

// Flow names used for outcome reporting.
const (
	FlowContact = "contact"
	FlowBooking = "booking"
	FlowLead    = "lead"
)

//
// Handler wiring
//

// Handlers groups the intake endpoints.
type Handlers struct {
	contact ContactSubmitter
	booking Booker
	slots   SlotFinder
	leads   LeadCapturer

	// OnOutcome, when set, observes the outcome of every submission
	// ("ok" or the error code).
	OnOutcome func(flow, outcome string)
}

// New constructs a Handlers instance bound to the given services.
func New(contact ContactSubmitter, booking Booker, slots SlotFinder, leads LeadCapturer) *Handlers {
	return &Handlers{contact: contact, booking: booking, slots: slots, leads: leads}
}

// requestContext returns the request context carrying the request-scoped
// logger so that services can log through zerolog.Ctx.
func requestContext(c *gin.Context) context.Context {
	return middleware.LoggerFrom(c).WithContext(c.Request.Context())
}

func (h *Handlers) outcome(flow, outcome string) {
	if h.OnOutcome != nil {
		h.OnOutcome(flow, outcome)
	}
}

// badJSON answers an unparsable body.
func (h *Handlers) badJSON(c *gin.Context, flow string) {
	h.outcome(flow, ErrCodeBadRequest)
	fail(c, http.StatusBadRequest, ErrCodeBadRequest, "Invalid request body")
}

// serviceError translates a service error into the error envelope.
func (h *Handlers) serviceError(c *gin.Context, flow string, err error) {
	var ie *services.IntakeError
	errors.As(err, &ie)

	switch {
	case errors.Is(err, services.ErrMissingFields):
		h.outcome(flow, ErrCodeMissingFields)
		msg := "Missing required fields"
		if ie != nil && len(ie.Missing) > 0 {
			msg += ": " + strings.Join(ie.Missing, ", ")
		}
		fail(c, http.StatusBadRequest, ErrCodeMissingFields, msg)

	case errors.Is(err, services.ErrValidationFailed):
		h.outcome(flow, ErrCodeValidationFailed)
		var fields map[string]string
		if ie != nil {
			fields = ie.Fields
		}
		failFields(c, http.StatusBadRequest, ErrCodeValidationFailed, validationMessage(fields), fields)

	case errors.Is(err, services.ErrSlotUnavailable):
		h.outcome(flow, ErrCodeBookingFailed)
		fail(c, http.StatusConflict, ErrCodeBookingFailed, "This time slot is already booked. Please choose another time.")

	case errors.Is(err, services.ErrAvailabilityCheckFailed):
		h.outcome(flow, ErrCodeAvailability)
		fail(c, http.StatusInternalServerError, ErrCodeAvailability, "Could not check availability. Please try again.")

	case errors.Is(err, services.ErrUpstreamTimeout):
		h.outcome(flow, ErrCodeUpstreamTimeout)
		fail(c, http.StatusInternalServerError, ErrCodeUpstreamTimeout, "The request timed out. Please try again.")

	case errors.Is(err, services.ErrPersistenceFailed):
		h.outcome(flow, ErrCodePersistenceFailed)
		fail(c, http.StatusInternalServerError, ErrCodePersistenceFailed, "We could not save your request. Please try again.")

	default:
		h.outcome(flow, ErrCodeInternal)
		c.Error(err) //nolint:errcheck
		fail(c, http.StatusInternalServerError, ErrCodeInternal, "internal server error")
	}
}

// validationMessage picks the envelope message; a single failure is shown as is.
func validationMessage(fields map[string]string) string {
	if len(fields) == 1 {
		for _, m := range fields {
			return m
		}
	}
	return "Please correct the highlighted fields"
}
