// Package services – BookingService
//
// This file implements the discovery-call booking flow. The availability
// check gives callers a fast answer for a taken slot, while the partial
// unique index behind BookingStore.CreateBooking decides concurrent races:
// of two simultaneous requests for one slot exactly one is stored, the other
// receives ErrSlotUnavailable.
package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/tbourn/go-intake-backend/internal/domain"
	"github.com/tbourn/go-intake-backend/internal/notify"
	"github.com/tbourn/go-intake-backend/internal/repo"
	"github.com/tbourn/go-intake-backend/internal/validation"
)

// BookingInput is a raw booking request.
type BookingInput struct {
	Name     string
	Email    string
	Company  string
	Phone    string
	Date     string
	TimeSlot string
	Notes    string
}

// BookingResult is the outcome of a confirmed booking.
type BookingResult struct {
	Booking   *domain.DiscoveryCallBooking
	EmailSent bool
}

// BookingService runs the booking flow.
type BookingService struct {
	DB           *gorm.DB
	Store        BookingStore
	Availability *AvailabilityChecker
	Mail         Mail

	PhoneMinDigits int
	SchedulingURL  string
	Timeout        time.Duration
	Now            func() time.Time
}

// Book validates in, checks the slot, stores a confirmed booking and sends
// the notifications. EmailSent reflects the confirmation to the booker.
func (s *BookingService) Book(ctx context.Context, in BookingInput) (*BookingResult, error) {
	ctx, span := otel.Tracer("services/BookingService").Start(ctx, "Book",
		trace.WithAttributes(
			attribute.String("booking.date", in.Date),
			attribute.String("booking.time_slot", in.TimeSlot),
		),
	)
	defer span.End()

	// 1) presence
	var missing []string
	for _, f := range []struct{ name, val string }{
		{"name", in.Name},
		{"email", in.Email},
		{"date", in.Date},
		{"timeSlot", in.TimeSlot},
	} {
		if strings.TrimSpace(f.val) == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return nil, missingFields(missing...)
	}

	// 2) format
	errs := validation.Errors{}
	errs.Add(validation.Name(in.Name))
	errs.Add(validation.Email(in.Email))
	errs.Add(validation.Company(in.Company))
	errs.Add(validation.Phone(in.Phone, s.PhoneMinDigits))
	errs.Add(validation.Date(in.Date, s.now()))
	errs.Add(validation.TimeSlot(in.TimeSlot))
	if fe := validation.Message(in.Notes); fe != nil {
		fe.Field = "notes"
		errs.Add(fe)
	}
	if len(errs) > 0 {
		return nil, invalidFields(errs)
	}

	date := strings.TrimSpace(in.Date)
	slot := strings.TrimSpace(in.TimeSlot)

	// 3) availability
	taken, err := s.Availability.IsSlotTaken(ctx, date, slot)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, &IntakeError{Err: ErrSlotUnavailable}
	}

	// 4) persist; the unique index settles races the check above cannot see
	cctx, cancel := withTimeout(ctx, s.Timeout)
	b, err := s.Store.CreateBooking(cctx, s.DB, domain.DiscoveryCallBooking{
		Name:     in.Name,
		Email:    in.Email,
		Company:  in.Company,
		Phone:    in.Phone,
		Date:     date,
		TimeSlot: slot,
		Notes:    in.Notes,
	})
	cancel()
	if errors.Is(err, repo.ErrDuplicate) {
		return nil, &IntakeError{Err: ErrSlotUnavailable, Cause: err}
	}
	if err != nil {
		span.RecordError(err)
		return nil, storageError(err)
	}
	span.SetAttributes(attribute.String("booking.id", b.ID))

	// 5) notify
	data := notify.BookingData(*b, s.SchedulingURL)
	s.Mail.internal(ctx, notify.KindBookingInternal, data)
	sent := s.Mail.send(ctx, notify.KindBookingConfirmation, b.Email, data)

	span.SetAttributes(attribute.Bool("email.sent", sent))
	return &BookingResult{Booking: b, EmailSent: sent}, nil
}

func (s *BookingService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
