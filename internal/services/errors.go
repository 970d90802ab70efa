// Package services defines the business logic of the intake flows: contact
// submissions, discovery-call bookings and lead captures. This file
// centralizes the service-level error values so that they can be returned
// consistently by service methods and checked by callers.
//
// Translation into user-facing messages and HTTP status codes is performed at
// the handler layer.
package services

import (
	"errors"
	"sort"
	"strings"
)

var (
	// ErrMissingFields is returned when required fields are absent.
	ErrMissingFields = errors.New("missing required fields")

	// ErrValidationFailed is returned when one or more fields are malformed.
	ErrValidationFailed = errors.New("validation failed")

	// ErrSlotUnavailable is returned when the requested booking slot already
	// holds a confirmed booking.
	ErrSlotUnavailable = errors.New("time slot unavailable")

	// ErrPersistenceFailed is returned when a record could not be written.
	ErrPersistenceFailed = errors.New("persistence failed")

	// ErrUpstreamTimeout is returned when storage did not answer in time.
	ErrUpstreamTimeout = errors.New("upstream timeout")

	// ErrAvailabilityCheckFailed is returned when the slot lookup itself errored.
	// The slot is never treated as free in that case.
	ErrAvailabilityCheckFailed = errors.New("availability check failed")

	// ErrNotifierFailed marks a failed email. It is logged, never returned to
	// the caller of a flow.
	ErrNotifierFailed = errors.New("notifier failed")
)

// IntakeError carries the details of a rejected submission.
type IntakeError struct {
	Err     error
	Missing []string          // ErrMissingFields
	Fields  map[string]string // ErrValidationFailed
	Cause   error             // underlying storage error, if any
}

func (e *IntakeError) Error() string {
	var b strings.Builder
	b.WriteString(e.Err.Error())
	switch {
	case len(e.Missing) > 0:
		b.WriteString(": ")
		b.WriteString(strings.Join(e.Missing, ", "))
	case len(e.Fields) > 0:
		keys := make([]string, 0, len(e.Fields))
		for k := range e.Fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		b.WriteString(": ")
		b.WriteString(strings.Join(keys, ", "))
	case e.Cause != nil:
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap exposes the sentinel for errors.Is.
func (e *IntakeError) Unwrap() error { return e.Err }

func missingFields(names ...string) error {
	return &IntakeError{Err: ErrMissingFields, Missing: names}
}

func invalidFields(fields map[string]string) error {
	return &IntakeError{Err: ErrValidationFailed, Fields: fields}
}
