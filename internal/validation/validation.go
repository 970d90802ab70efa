// Package validation holds the pure field validators shared by the intake
// flows. Every validator takes the raw submitted string and returns nil when
// the value is acceptable, or a *FieldError naming the failure kind and a
// human-readable message suitable for inline display next to the form field.
//
// Validators never touch storage or the network; the services call them
// before any external system is contacted.
package validation

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

// Kind classifies a validation failure.
type Kind string

const (
	KindRequired      Kind = "Required"
	KindInvalidFormat Kind = "InvalidFormat"
	KindTooLong       Kind = "TooLong"
	KindOutOfRange    Kind = "OutOfRange"
	KindNotRecognized Kind = "NotRecognized"
)

const (
	// MaxMessageLength caps contact messages, counted in characters.
	MaxMessageLength = 1000
	// Column widths of the stored identity fields, counted in characters.
	MaxNameLength    = 255
	MaxCompanyLength = 255
	MaxEmailLength   = 320
	MaxPhoneLength   = 32
	// DefaultMessage replaces an empty contact message.
	DefaultMessage = "No message provided"
	// DefaultPhoneMinDigits is the single phone policy used by every flow.
	DefaultPhoneMinDigits = 10
	// BookingWindowDays is how far ahead a discovery call can be booked.
	BookingWindowDays = 30
	// DateLayout is the wire format of booking dates.
	DateLayout = "2006-01-02"
)

// FieldError describes why one field was rejected.
type FieldError struct {
	Field   string
	Kind    Kind
	Message string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Errors collects field failures keyed by field name.
type Errors map[string]string

// Add records fe when it is non-nil. The first failure per field wins.
func (e Errors) Add(fe *FieldError) {
	if fe == nil {
		return
	}
	if _, ok := e[fe.Field]; !ok {
		e[fe.Field] = fe.Message
	}
}

var (
	emailRE     = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phoneCharRE = regexp.MustCompile(`^[\d\s+\-()]+$`)

	dates = validator.New()
)

// Name rejects empty, whitespace-only or over-long names.
func Name(s string) *FieldError {
	if strings.TrimSpace(s) == "" {
		return &FieldError{Field: "name", Kind: KindRequired, Message: "Name is required"}
	}
	return MaxLength("name", s, MaxNameLength)
}

// Company validates an optional company name.
func Company(s string) *FieldError {
	return MaxLength("company", s, MaxCompanyLength)
}

// MaxLength rejects values longer than max characters with KindTooLong.
func MaxLength(field, s string, max int) *FieldError {
	if utf8.RuneCountInString(s) > max {
		return &FieldError{
			Field:   field,
			Kind:    KindTooLong,
			Message: fmt.Sprintf("Must be %d characters or less", max),
		}
	}
	return nil
}

// Email requires a permissive local@domain.tld shape without whitespace.
func Email(s string) *FieldError {
	if fe := MaxLength("email", s, MaxEmailLength); fe != nil {
		return fe
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return &FieldError{Field: "email", Kind: KindRequired, Message: "Email is required"}
	}
	if !emailRE.MatchString(s) {
		return &FieldError{Field: "email", Kind: KindInvalidFormat, Message: "Please enter a valid email address"}
	}
	return nil
}

// Phone validates an optional phone number. An empty value is accepted.
// Otherwise only digits, spaces, '+', '-', '(' and ')' are allowed and at
// least minDigits digits must be present. Values above MaxPhoneLength
// characters are TooLong.
func Phone(s string, minDigits int) *FieldError {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	if fe := MaxLength("phone", s, MaxPhoneLength); fe != nil {
		return fe
	}
	s = strings.TrimSpace(s)
	if minDigits <= 0 {
		minDigits = DefaultPhoneMinDigits
	}
	if !phoneCharRE.MatchString(s) || countDigits(s) < minDigits {
		return &FieldError{
			Field:   "phone",
			Kind:    KindInvalidFormat,
			Message: fmt.Sprintf("Please enter a valid phone number (at least %d digits)", minDigits),
		}
	}
	return nil
}

// Message caps free text at MaxMessageLength characters.
func Message(s string) *FieldError {
	if utf8.RuneCountInString(s) > MaxMessageLength {
		return &FieldError{
			Field:   "message",
			Kind:    KindTooLong,
			Message: fmt.Sprintf("Message must be %d characters or less", MaxMessageLength),
		}
	}
	return nil
}

// MessageOrDefault trims s and substitutes DefaultMessage when nothing is left.
func MessageOrDefault(s string) string {
	if s = strings.TrimSpace(s); s == "" {
		return DefaultMessage
	}
	return s
}

// Date accepts a YYYY-MM-DD value that is one of the bookable business days
// following now.
func Date(s string, now time.Time) *FieldError {
	s = strings.TrimSpace(s)
	if s == "" {
		return &FieldError{Field: "date", Kind: KindRequired, Message: "Date is required"}
	}
	if err := dates.Var(s, "datetime="+DateLayout); err != nil {
		return &FieldError{Field: "date", Kind: KindOutOfRange, Message: "Please select a valid date"}
	}
	for _, d := range BusinessDays(now, BookingWindowDays) {
		if d == s {
			return nil
		}
	}
	return &FieldError{Field: "date", Kind: KindOutOfRange, Message: "Please select an available weekday within the next 30 days"}
}

// TimeSlot accepts one of the labels returned by TimeSlots.
func TimeSlot(s string) *FieldError {
	s = strings.TrimSpace(s)
	if s == "" {
		return &FieldError{Field: "timeSlot", Kind: KindRequired, Message: "Time slot is required"}
	}
	if _, ok := slotSet[s]; !ok {
		return &FieldError{Field: "timeSlot", Kind: KindNotRecognized, Message: "Please select a valid time slot"}
	}
	return nil
}

// IsBusinessDay reports whether calls are offered on the weekday.
func IsBusinessDay(d time.Weekday) bool {
	return d != time.Saturday && d != time.Sunday
}

// BusinessDays lists, in order, the dates among the next `days` calendar days
// after now (today excluded) that fall on a business day.
func BusinessDays(now time.Time, days int) []string {
	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	out := make([]string, 0, days)
	for i := 1; i <= days; i++ {
		day := today.AddDate(0, 0, i)
		if IsBusinessDay(day.Weekday()) {
			out = append(out, day.Format(DateLayout))
		}
	}
	return out
}

// TimeSlots returns the 18 half-hour start labels from 9:00 AM to 5:30 PM.
func TimeSlots() []string {
	out := make([]string, len(timeSlots))
	copy(out, timeSlots)
	return out
}

var (
	timeSlots = buildSlots(9, 18)
	slotSet   = func() map[string]struct{} {
		m := make(map[string]struct{}, len(timeSlots))
		for _, s := range timeSlots {
			m[s] = struct{}{}
		}
		return m
	}()
)

func buildSlots(startHour, n int) []string {
	base := time.Date(2000, 1, 1, startHour, 0, 0, 0, time.UTC)
	out := make([]string, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, base.Add(time.Duration(i)*30*time.Minute).Format("3:04 PM"))
	}
	return out
}

func countDigits(s string) int {
	n := 0
	for _, r := range s {
		if unicode.IsDigit(r) {
			n++
		}
	}
	return n
}
