package services

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/tbourn/go-intake-backend/internal/domain"
	"github.com/tbourn/go-intake-backend/internal/notify"
	"github.com/tbourn/go-intake-backend/internal/repo"
)

// ContactStore persists contact submissions.
type ContactStore interface {
	CreateContactSubmission(ctx context.Context, db *gorm.DB, in domain.ContactSubmission) (*domain.ContactSubmission, error)
}

// SlotStore answers slot occupancy questions.
type SlotStore interface {
	CountConfirmedBookings(ctx context.Context, db *gorm.DB, date, slot string) (int64, error)
	ListConfirmedSlots(ctx context.Context, db *gorm.DB, date string) ([]string, error)
}

// BookingStore persists bookings. CreateBooking must return repo.ErrDuplicate
// when the slot already holds a confirmed booking.
type BookingStore interface {
	SlotStore
	CreateBooking(ctx context.Context, db *gorm.DB, in domain.DiscoveryCallBooking) (*domain.DiscoveryCallBooking, error)
}

// LeadStore upserts leads and records guide downloads.
type LeadStore interface {
	UpsertLead(ctx context.Context, db *gorm.DB, in repo.LeadUpsert) (*domain.Lead, error)
	RecordDownload(ctx context.Context, db *gorm.DB, in domain.LeadMagnetDownload) (*domain.LeadMagnetDownload, error)
}

// Notifier sends one rendered notification.
type Notifier interface {
	Notify(ctx context.Context, kind notify.Kind, recipient string, data notify.Data) (notify.Result, error)
}

// GuideLinker produces download links for gated guides.
type GuideLinker interface {
	Link(ctx context.Context, magnetType string) (string, error)
}

// RepoStore adapts the repository free functions to the store interfaces.
type RepoStore struct{}

// CreateContactSubmission proxies repo.CreateContactSubmission.
func (RepoStore) CreateContactSubmission(ctx context.Context, db *gorm.DB, in domain.ContactSubmission) (*domain.ContactSubmission, error) {
	return repo.CreateContactSubmission(ctx, db, in)
}

// CountConfirmedBookings proxies repo.CountConfirmedBookings.
func (RepoStore) CountConfirmedBookings(ctx context.Context, db *gorm.DB, date, slot string) (int64, error) {
	return repo.CountConfirmedBookings(ctx, db, date, slot)
}

// ListConfirmedSlots proxies repo.ListConfirmedSlots.
func (RepoStore) ListConfirmedSlots(ctx context.Context, db *gorm.DB, date string) ([]string, error) {
	return repo.ListConfirmedSlots(ctx, db, date)
}

// CreateBooking proxies repo.CreateBooking.
func (RepoStore) CreateBooking(ctx context.Context, db *gorm.DB, in domain.DiscoveryCallBooking) (*domain.DiscoveryCallBooking, error) {
	return repo.CreateBooking(ctx, db, in)
}

// UpsertLead proxies repo.UpsertLead.
func (RepoStore) UpsertLead(ctx context.Context, db *gorm.DB, in repo.LeadUpsert) (*domain.Lead, error) {
	return repo.UpsertLead(ctx, db, in)
}

// RecordDownload proxies repo.RecordDownload.
func (RepoStore) RecordDownload(ctx context.Context, db *gorm.DB, in domain.LeadMagnetDownload) (*domain.LeadMagnetDownload, error) {
	return repo.RecordDownload(ctx, db, in)
}

// DefaultUpstreamTimeout bounds each storage or email call when no timeout
// is configured.
const DefaultUpstreamTimeout = 10 * time.Second

// withTimeout derives the context for one external call.
func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		d = DefaultUpstreamTimeout
	}
	return context.WithTimeout(ctx, d)
}

// storageError classifies a failed storage write.
func storageError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return &IntakeError{Err: ErrUpstreamTimeout, Cause: err}
	}
	return &IntakeError{Err: ErrPersistenceFailed, Cause: err}
}
