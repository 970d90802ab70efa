// Package services – LeadService
//
// This file implements the gated-content lead capture. Leads are keyed by
// email and upserted in a single statement, so repeated or concurrent
// captures of one address converge on one row. When a guide is requested a
// download is recorded and a link is emailed to the lead.
package services

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"gorm.io/gorm"

	"github.com/tbourn/go-intake-backend/internal/domain"
	"github.com/tbourn/go-intake-backend/internal/notify"
	"github.com/tbourn/go-intake-backend/internal/repo"
	"github.com/tbourn/go-intake-backend/internal/validation"
)

const (
	maxMagnetTypeLen = 64
	maxSourceLen     = 64
)

var leadStages = map[string]struct{}{
	domain.LeadStageInitial: {},
	domain.LeadStage1:       {},
	domain.LeadStage2:       {},
	domain.LeadStage3:       {},
}

// LeadInput is a raw lead capture. IPAddress and UserAgent come from the
// transport, not the payload.
type LeadInput struct {
	Name       string
	Email      string
	MagnetType string
	Stage      string
	Source     string
	IPAddress  string
	UserAgent  string
}

// LeadResult is the outcome of a capture.
type LeadResult struct {
	Lead        *domain.Lead
	Download    *domain.LeadMagnetDownload
	DownloadURL string
	EmailSent   bool
}

// LeadService runs the lead-capture flow.
type LeadService struct {
	DB      *gorm.DB
	Store   LeadStore
	Links   GuideLinker
	Mail    Mail
	Timeout time.Duration
}

// Capture upserts the lead, records the guide download when a magnet type
// is given and sends the notifications. EmailSent reflects the guide email,
// or the internal notification when no guide was requested.
func (s *LeadService) Capture(ctx context.Context, in LeadInput) (*LeadResult, error) {
	ctx, span := otel.Tracer("services/LeadService").Start(ctx, "Capture")
	defer span.End()

	// 1) presence
	if strings.TrimSpace(in.Email) == "" {
		return nil, missingFields("email")
	}

	// 2) format
	errs := validation.Errors{}
	errs.Add(validation.Email(in.Email))
	errs.Add(validation.MaxLength("name", in.Name, validation.MaxNameLength))
	stage := strings.ToLower(strings.TrimSpace(in.Stage))
	if stage != "" {
		if _, ok := leadStages[stage]; !ok {
			errs.Add(&validation.FieldError{Field: "stage", Kind: validation.KindNotRecognized, Message: "Please select a valid stage"})
		}
	}
	magnet := strings.TrimSpace(in.MagnetType)
	if utf8.RuneCountInString(magnet) > maxMagnetTypeLen {
		errs.Add(&validation.FieldError{Field: "magnet_type", Kind: validation.KindTooLong, Message: "Magnet type is too long"})
	}
	if utf8.RuneCountInString(strings.TrimSpace(in.Source)) > maxSourceLen {
		errs.Add(&validation.FieldError{Field: "source", Kind: validation.KindTooLong, Message: "Source is too long"})
	}
	if len(errs) > 0 {
		return nil, invalidFields(errs)
	}

	// 3) persist
	cctx, cancel := withTimeout(ctx, s.Timeout)
	defer cancel()
	lead, err := s.Store.UpsertLead(cctx, s.DB, repo.LeadUpsert{
		Email:  strings.ToLower(strings.TrimSpace(in.Email)),
		Name:   in.Name,
		Stage:  stage,
		Source: in.Source,
	})
	if err != nil {
		span.RecordError(err)
		return nil, storageError(err)
	}
	span.SetAttributes(attribute.String("lead.id", lead.ID))

	res := &LeadResult{Lead: lead}
	if magnet != "" {
		dl, err := s.Store.RecordDownload(cctx, s.DB, domain.LeadMagnetDownload{
			LeadID:     lead.ID,
			MagnetType: magnet,
			IPAddress:  in.IPAddress,
			UserAgent:  in.UserAgent,
		})
		if err != nil {
			span.RecordError(err)
			return nil, storageError(err)
		}
		res.Download = dl
		res.DownloadURL = s.link(ctx, magnet)
	}

	// 4) notify
	data := notify.LeadData(*lead, magnet, res.DownloadURL)
	internalSent := s.Mail.internal(ctx, notify.KindLeadInternal, data)
	if magnet != "" {
		res.EmailSent = s.Mail.send(ctx, notify.KindLeadGuide, lead.Email, data)
	} else {
		res.EmailSent = internalSent
	}

	span.SetAttributes(attribute.Bool("email.sent", res.EmailSent))
	return res, nil
}

// link resolves the guide URL; failure leaves the email without a link.
func (s *LeadService) link(ctx context.Context, magnet string) string {
	if s.Links == nil {
		return ""
	}
	cctx, cancel := withTimeout(ctx, s.Timeout)
	defer cancel()
	u, err := s.Links.Link(cctx, strings.ToLower(magnet))
	if err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Str("magnet_type", magnet).Msg("guide link unavailable")
		return ""
	}
	return u
}
