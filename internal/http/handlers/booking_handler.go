package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-intake-backend/internal/domain"
	"github.com/tbourn/go-intake-backend/internal/services"
	"github.com/tbourn/go-intake-backend/internal/utils"
	"github.com/tbourn/go-intake-backend/internal/validation"
)

// BookingRequest is the JSON payload of the booking widget.
type BookingRequest struct {
	Name     string `json:"name" example:"Grace Hopper"`
	Email    string `json:"email" example:"grace@example.com"`
	Company  string `json:"company,omitempty" example:"Navy"`
	Phone    string `json:"phone,omitempty" example:"2125551212"`
	Date     string `json:"date" example:"2030-01-03"`
	TimeSlot string `json:"timeSlot" example:"10:30 AM"`
	Notes    string `json:"notes,omitempty" example:"Site rebuild"`
}

// BookingData is the payload of a confirmed booking.
type BookingData struct {
	Success   bool                        `json:"success" example:"true"`
	Booking   domain.DiscoveryCallBooking `json:"booking"`
	Message   string                      `json:"message" example:"Your discovery call is booked. A confirmation email is on its way."`
	EmailSent bool                        `json:"emailSent" example:"true"`
}

// BookingResponse wraps BookingData.
type BookingResponse struct {
	Data BookingData `json:"data"`
}

// AvailabilityData lists the slots of one day.
type AvailabilityData struct {
	Date  string                      `json:"date" example:"2030-01-03"`
	Slots []services.SlotAvailability `json:"slots"`
}

// AvailabilityResponse wraps AvailabilityData.
type AvailabilityResponse struct {
	Data AvailabilityData `json:"data"`
}

// DatesData lists bookable days.
type DatesData struct {
	Dates []string `json:"dates" example:"2030-01-03,2030-01-04"`
}

// DatesResponse wraps DatesData.
type DatesResponse struct {
	Data DatesData `json:"data"`
}

// BookCall godoc
// @ID          bookCall
// @Summary     Book a discovery call
// @Description Reserves a half-hour slot on a business day within the next 30 days. A slot holds at most one confirmed booking.
// @Tags        Bookings
// @Accept      json
// @Produce     json
// @Param       Idempotency-Key header string false "Replays the stored response for a repeated submission"
// @Param       body body handlers.BookingRequest true "Booking payload"
// @Success     200 {object} handlers.BookingResponse
// @Failure     400 {object} handlers.ErrorResponse "Missing or invalid fields"
// @Failure     409 {object} handlers.ErrorResponse "Slot already booked"
// @Failure     429 {object} handlers.ErrorResponse "Rate limited"
// @Failure     500 {object} handlers.ErrorResponse "Availability, storage or timeout failure"
// @Router      /bookings [post]
func (h *Handlers) BookCall(c *gin.Context) {
	var req BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badJSON(c, FlowBooking)
		return
	}

	res, err := h.booking.Book(requestContext(c), services.BookingInput{
		Name:     req.Name,
		Email:    req.Email,
		Company:  req.Company,
		Phone:    req.Phone,
		Date:     req.Date,
		TimeSlot: req.TimeSlot,
		Notes:    req.Notes,
	})
	if err != nil {
		h.serviceError(c, FlowBooking, err)
		return
	}

	h.outcome(FlowBooking, "ok")
	ok(c, http.StatusOK, BookingResponse{Data: BookingData{
		Success:   true,
		Booking:   *res.Booking,
		Message:   "Your discovery call is booked. A confirmation email is on its way.",
		EmailSent: res.EmailSent,
	}})
}

// Availability godoc
// @ID          bookingAvailability
// @Summary     List the slots of a day
// @Tags        Bookings
// @Produce     json
// @Param       date query string true "Date (YYYY-MM-DD)" example(2030-01-03)
// @Success     200 {object} handlers.AvailabilityResponse
// @Failure     400 {object} handlers.ErrorResponse "Missing or invalid date"
// @Failure     500 {object} handlers.ErrorResponse "Availability lookup failed"
// @Router      /bookings/availability [get]
func (h *Handlers) Availability(c *gin.Context) {
	date := strings.TrimSpace(c.Query("date"))
	if date == "" {
		fail(c, http.StatusBadRequest, ErrCodeMissingFields, "Missing required fields: date")
		return
	}

	slots, err := h.slots.Slots(requestContext(c), date)
	if err != nil {
		h.serviceError(c, FlowBooking, err)
		return
	}
	ok(c, http.StatusOK, AvailabilityResponse{Data: AvailabilityData{Date: date, Slots: slots}})
}

// Dates godoc
// @ID          bookingDates
// @Summary     List bookable days
// @Description Weekdays after today within the booking window. days is capped at 30.
// @Tags        Bookings
// @Produce     json
// @Param       days query int false "Calendar days to look ahead" default(30)
// @Success     200 {object} handlers.DatesResponse
// @Router      /bookings/dates [get]
func (h *Handlers) Dates(c *gin.Context) {
	days := utils.AtoiDefault(c.Query("days"), validation.BookingWindowDays)
	ok(c, http.StatusOK, DatesResponse{Data: DatesData{Dates: h.slots.Dates(days)}})
}
