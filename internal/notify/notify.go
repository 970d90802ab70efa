// Package notify renders and dispatches the transactional emails of the
// intake flows. Every notification kind produces an HTML and a plain-text
// body from the same ordered field list, and is handed to a Mailer for
// delivery through Resend, SMTP or the application log.
package notify

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Kind identifies a notification template.
type Kind string

const (
	KindContactInternal     Kind = "contact_internal"
	KindContactConfirmation Kind = "contact_confirmation"
	KindBookingInternal     Kind = "booking_internal"
	KindBookingConfirmation Kind = "booking_confirmation"
	KindLeadInternal        Kind = "lead_internal"
	KindLeadGuide           Kind = "lead_guide"
)

var (
	// ErrUnknownKind is returned for a Kind without a template.
	ErrUnknownKind = errors.New("unknown notification kind")
	// ErrNoRecipient is returned when the recipient address is blank.
	ErrNoRecipient = errors.New("recipient is required")
)

// Message is a fully rendered email.
type Message struct {
	From    string
	To      string
	ReplyTo string
	Subject string
	HTML    string
	Text    string
}

// Mailer delivers a rendered message and returns the provider's message id.
type Mailer interface {
	Send(ctx context.Context, msg Message) (string, error)
}

// Result reports the outcome of one notification.
type Result struct {
	Sent              bool
	ProviderMessageID string
}

// Notifier renders templates and sends them with Mailer.
type Notifier struct {
	Mailer Mailer
	From   string
}

// New returns a Notifier sending from the given address.
func New(m Mailer, from string) *Notifier {
	return &Notifier{Mailer: m, From: from}
}

// Notify renders kind with data and sends it to recipient.
func (n *Notifier) Notify(ctx context.Context, kind Kind, recipient string, data Data) (Result, error) {
	ctx, span := otel.Tracer("notify").Start(ctx, "Notify",
		trace.WithAttributes(attribute.String("notify.kind", string(kind))),
	)
	defer span.End()

	recipient = strings.TrimSpace(recipient)
	if recipient == "" {
		return Result{}, ErrNoRecipient
	}
	msg, err := Render(kind, data)
	if err != nil {
		return Result{}, err
	}
	msg.From = n.From
	msg.To = recipient
	if isInternal(kind) {
		msg.ReplyTo = data.ReplyTo
	}

	id, err := n.Mailer.Send(ctx, msg)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "send failed")
		return Result{}, fmt.Errorf("send %s: %w", kind, err)
	}
	return Result{Sent: true, ProviderMessageID: id}, nil
}

func isInternal(k Kind) bool {
	switch k {
	case KindContactInternal, KindBookingInternal, KindLeadInternal:
		return true
	}
	return false
}
