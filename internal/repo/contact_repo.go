package repo

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tbourn/go-intake-backend/internal/domain"
)

// CreateContactSubmission inserts a new submission with status "new".
// Empty optional fields are stored as empty strings.
func CreateContactSubmission(ctx context.Context, db *gorm.DB, in domain.ContactSubmission) (*domain.ContactSubmission, error) {
	now := time.Now().UTC()
	rec := &domain.ContactSubmission{
		ID:        uuid.NewString(),
		Name:      strings.TrimSpace(in.Name),
		Email:     strings.TrimSpace(in.Email),
		Company:   strings.TrimSpace(in.Company),
		Phone:     strings.TrimSpace(in.Phone),
		Message:   in.Message,
		Status:    domain.ContactStatusNew,
		CreatedAt: now,
	}
	if err := db.WithContext(ctx).Create(rec).Error; err != nil {
		return nil, err
	}
	return rec, nil
}
