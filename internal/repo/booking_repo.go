package repo

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tbourn/go-intake-backend/internal/domain"
)

// CountConfirmedBookings returns how many confirmed bookings hold (date, slot).
func CountConfirmedBookings(ctx context.Context, db *gorm.DB, date, slot string) (int64, error) {
	var n int64
	err := db.WithContext(ctx).
		Model(&domain.DiscoveryCallBooking{}).
		Where("date = ? AND time_slot = ? AND status = ?", date, slot, domain.BookingStatusConfirmed).
		Count(&n).Error
	return n, err
}

// ListConfirmedSlots returns the time slots already confirmed on date.
func ListConfirmedSlots(ctx context.Context, db *gorm.DB, date string) ([]string, error) {
	var slots []string
	err := db.WithContext(ctx).
		Model(&domain.DiscoveryCallBooking{}).
		Where("date = ? AND status = ?", date, domain.BookingStatusConfirmed).
		Order("time_slot ASC").
		Pluck("time_slot", &slots).Error
	return slots, err
}

// CreateBooking inserts a confirmed booking. When another confirmed booking
// already occupies the slot the unique index rejects the row and ErrDuplicate
// is returned.
func CreateBooking(ctx context.Context, db *gorm.DB, in domain.DiscoveryCallBooking) (*domain.DiscoveryCallBooking, error) {
	rec := &domain.DiscoveryCallBooking{
		ID:        uuid.NewString(),
		Name:      strings.TrimSpace(in.Name),
		Email:     strings.TrimSpace(in.Email),
		Company:   strings.TrimSpace(in.Company),
		Phone:     strings.TrimSpace(in.Phone),
		Date:      strings.TrimSpace(in.Date),
		TimeSlot:  strings.TrimSpace(in.TimeSlot),
		Notes:     strings.TrimSpace(in.Notes),
		Status:    domain.BookingStatusConfirmed,
		CreatedAt: time.Now().UTC(),
	}
	if err := db.WithContext(ctx).Create(rec).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicate
		}
		return nil, err
	}
	return rec, nil
}
