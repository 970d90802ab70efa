package services

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/tbourn/go-intake-backend/internal/validation"
)

// SlotAvailability is one time slot of a day and whether it can be booked.
type SlotAvailability struct {
	TimeSlot  string `json:"timeSlot" example:"9:00 AM"`
	Available bool   `json:"available" example:"true"`
}

// AvailabilityChecker reports which booking slots are already taken.
type AvailabilityChecker struct {
	DB      *gorm.DB
	Store   SlotStore
	Timeout time.Duration
	Now     func() time.Time
}

// NewAvailabilityChecker returns a checker backed by store.
func NewAvailabilityChecker(db *gorm.DB, store SlotStore, timeout time.Duration) *AvailabilityChecker {
	return &AvailabilityChecker{DB: db, Store: store, Timeout: timeout, Now: time.Now}
}

// IsSlotTaken reports whether a confirmed booking holds (date, timeSlot).
// A failed lookup is returned as an error; the slot is never assumed free.
func (a *AvailabilityChecker) IsSlotTaken(ctx context.Context, date, timeSlot string) (bool, error) {
	ctx, span := otel.Tracer("services/AvailabilityChecker").Start(ctx, "IsSlotTaken",
		trace.WithAttributes(
			attribute.String("booking.date", date),
			attribute.String("booking.time_slot", timeSlot),
		),
	)
	defer span.End()

	cctx, cancel := withTimeout(ctx, a.Timeout)
	defer cancel()

	n, err := a.Store.CountConfirmedBookings(cctx, a.DB, date, timeSlot)
	if err != nil {
		span.RecordError(err)
		return false, lookupError(err)
	}
	return n > 0, nil
}

// Slots lists every time slot of date with its availability.
func (a *AvailabilityChecker) Slots(ctx context.Context, date string) ([]SlotAvailability, error) {
	ctx, span := otel.Tracer("services/AvailabilityChecker").Start(ctx, "Slots",
		trace.WithAttributes(attribute.String("booking.date", date)),
	)
	defer span.End()

	if fe := validation.Date(date, a.now()); fe != nil {
		return nil, invalidFields(map[string]string{fe.Field: fe.Message})
	}

	cctx, cancel := withTimeout(ctx, a.Timeout)
	defer cancel()

	taken, err := a.Store.ListConfirmedSlots(cctx, a.DB, date)
	if err != nil {
		span.RecordError(err)
		return nil, lookupError(err)
	}
	busy := make(map[string]struct{}, len(taken))
	for _, s := range taken {
		busy[s] = struct{}{}
	}

	slots := validation.TimeSlots()
	out := make([]SlotAvailability, 0, len(slots))
	for _, s := range slots {
		_, isBusy := busy[s]
		out = append(out, SlotAvailability{TimeSlot: s, Available: !isBusy})
	}
	return out, nil
}

// Dates lists the bookable dates among the next days calendar days.
// Non-positive or oversized values fall back to the full booking window.
func (a *AvailabilityChecker) Dates(days int) []string {
	if days < 1 || days > validation.BookingWindowDays {
		days = validation.BookingWindowDays
	}
	return validation.BusinessDays(a.now(), days)
}

func (a *AvailabilityChecker) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

func lookupError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return &IntakeError{Err: ErrUpstreamTimeout, Cause: err}
	}
	return &IntakeError{Err: ErrAvailabilityCheckFailed, Cause: err}
}
