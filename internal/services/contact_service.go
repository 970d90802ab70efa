// Package services – ContactService
//
// This file implements the contact-form flow: presence check, field
// validation, persistence of a ContactSubmission and the two notification
// emails (internal + confirmation). Storage failures abort the flow before
// any email is attempted; email failures only clear the EmailSent flag.
package services

import (
	"context"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"gorm.io/gorm"

	"github.com/tbourn/go-intake-backend/internal/domain"
	"github.com/tbourn/go-intake-backend/internal/notify"
	"github.com/tbourn/go-intake-backend/internal/validation"
)

// ContactInput is a raw contact-form submission.
type ContactInput struct {
	Name    string
	Email   string
	Company string
	Phone   string
	Message string
}

// ContactResult is the outcome of an accepted submission.
type ContactResult struct {
	Submission *domain.ContactSubmission
	EmailSent  bool
}

// ContactService runs the contact-form flow.
type ContactService struct {
	DB    *gorm.DB
	Store ContactStore
	Mail  Mail

	PhoneMinDigits int
	Timeout        time.Duration
}

// Submit validates in, stores it and sends the notifications. EmailSent
// reflects the confirmation sent to the submitter.
func (s *ContactService) Submit(ctx context.Context, in ContactInput) (*ContactResult, error) {
	ctx, span := otel.Tracer("services/ContactService").Start(ctx, "Submit")
	defer span.End()

	// 1) presence
	var missing []string
	if strings.TrimSpace(in.Name) == "" {
		missing = append(missing, "name")
	}
	if strings.TrimSpace(in.Email) == "" {
		missing = append(missing, "email")
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
	errs.Add(validation.Message(in.Message))
	if len(errs) > 0 {
		return nil, invalidFields(errs)
	}

	// 3) persist
	cctx, cancel := withTimeout(ctx, s.Timeout)
	sub, err := s.Store.CreateContactSubmission(cctx, s.DB, domain.ContactSubmission{
		Name:    in.Name,
		Email:   in.Email,
		Company: in.Company,
		Phone:   in.Phone,
		Message: validation.MessageOrDefault(in.Message),
	})
	cancel()
	if err != nil {
		span.RecordError(err)
		return nil, storageError(err)
	}
	span.SetAttributes(attribute.String("contact.id", sub.ID))

	// 4) notify
	data := notify.ContactData(*sub)
	s.Mail.internal(ctx, notify.KindContactInternal, data)
	sent := s.Mail.send(ctx, notify.KindContactConfirmation, sub.Email, data)

	span.SetAttributes(attribute.Bool("email.sent", sent))
	return &ContactResult{Submission: sub, EmailSent: sent}, nil
}
