package repo

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tbourn/go-intake-backend/internal/domain"
)

// LeadUpsert carries the fields of a lead capture. Empty Name, Stage or
// Source leave an existing lead's value untouched.
type LeadUpsert struct {
	Email  string
	Name   string
	Stage  string
	Source string
}

// UpsertLead inserts or updates the lead keyed by email in a single statement
// and returns the stored row. Concurrent captures for the same email converge
// on one row.
func UpsertLead(ctx context.Context, db *gorm.DB, in LeadUpsert) (*domain.Lead, error) {
	email := strings.TrimSpace(in.Email)
	name := strings.TrimSpace(in.Name)
	stage := strings.TrimSpace(in.Stage)
	source := strings.TrimSpace(in.Source)

	now := time.Now().UTC()
	rec := &domain.Lead{
		ID:        uuid.NewString(),
		Email:     email,
		Name:      name,
		LeadStage: orDefault(stage, domain.LeadStageInitial),
		Source:    orDefault(source, domain.DefaultLeadSource),
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "email"}},
		DoUpdates: clause.Set{
			{Column: clause.Column{Name: "name"}, Value: gorm.Expr("COALESCE(NULLIF(?, ''), leads.name)", name)},
			{Column: clause.Column{Name: "lead_stage"}, Value: gorm.Expr("COALESCE(NULLIF(?, ''), leads.lead_stage)", stage)},
			{Column: clause.Column{Name: "source"}, Value: gorm.Expr("COALESCE(NULLIF(?, ''), leads.source)", source)},
			{Column: clause.Column{Name: "updated_at"}, Value: now},
		},
	}).Create(rec).Error
	if err != nil {
		return nil, err
	}

	var out domain.Lead
	if err := db.WithContext(ctx).Where("email = ?", email).First(&out).Error; err != nil {
		return nil, err
	}
	return &out, nil
}

// RecordDownload appends a download row for the lead.
func RecordDownload(ctx context.Context, db *gorm.DB, in domain.LeadMagnetDownload) (*domain.LeadMagnetDownload, error) {
	rec := &domain.LeadMagnetDownload{
		ID:           uuid.NewString(),
		LeadID:       in.LeadID,
		MagnetType:   strings.TrimSpace(in.MagnetType),
		DownloadTime: time.Now().UTC(),
		IPAddress:    in.IPAddress,
		UserAgent:    in.UserAgent,
	}
	if !in.DownloadTime.IsZero() {
		rec.DownloadTime = in.DownloadTime.UTC()
	}
	if err := db.WithContext(ctx).Omit("Lead").Create(rec).Error; err != nil {
		return nil, err
	}
	return rec, nil
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
