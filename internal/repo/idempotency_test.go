package repo

import (
	"context"
	"testing"
	"time"

	"github.com/tbourn/go-intake-backend/internal/domain"
)

func TestGetIdempotency_BlankKey_ReturnsNotFound(t *testing.T) {
	db := newTestDB(t, &domain.Idempotency{})
	now := time.Now().UTC()

	rec, err := GetIdempotency(context.Background(), db, "contact", "   ", now)
	if rec != nil || err != ErrNotFound {
		t.Fatalf("expected (nil, ErrNotFound) for blank key, got (%v, %v)", rec, err)
	}
}

func TestGetIdempotency_ExpiredOrMissing_ReturnsNotFound(t *testing.T) {
	db := newTestDB(t, &domain.Idempotency{})
	now := time.Now().UTC()

	exp := &domain.Idempotency{
		ID:        "expired",
		Scope:     "contact",
		Key:       "k1",
		Status:    201,
		Body:      []byte(`{}`),
		CreatedAt: now.Add(-2 * time.Hour),
		ExpiresAt: now.Add(-time.Hour),
	}
	if err := db.Create(exp).Error; err != nil {
		t.Fatalf("seed expired: %v", err)
	}

	rec, err := GetIdempotency(context.Background(), db, "contact", "k1", now)
	if rec != nil || err != ErrNotFound {
		t.Fatalf("expected (nil, ErrNotFound) for expired, got (%v, %v)", rec, err)
	}

	rec2, err2 := GetIdempotency(context.Background(), db, "contact", "missing", now)
	if rec2 != nil || err2 != ErrNotFound {
		t.Fatalf("expected (nil, ErrNotFound) for missing, got (%v, %v)", rec2, err2)
	}
}

func TestSaveThenGetIdempotency(t *testing.T) {
	db := newTestDB(t, &domain.Idempotency{})
	ctx := context.Background()
	start := time.Now().UTC()

	rec, err := SaveIdempotency(ctx, db, "bookings", "k9", 201, []byte(`{"data":{"success":true}}`), 90*time.Minute)
	if err != nil {
		t.Fatalf("SaveIdempotency: %v", err)
	}
	if rec.ID == "" || rec.Scope != "bookings" || rec.Key != "k9" || rec.Status != 201 {
		t.Fatalf("unexpected record: %+v", rec)
	}
	if !(rec.ExpiresAt.After(start) && rec.ExpiresAt.Before(start.Add(2*time.Hour))) {
		t.Fatalf("unexpected ExpiresAt: %v", rec.ExpiresAt)
	}

	got, err := GetIdempotency(ctx, db, "bookings", "k9", time.Now().UTC())
	if err != nil {
		t.Fatalf("GetIdempotency: %v", err)
	}
	if got.Status != 201 || string(got.Body) != `{"data":{"success":true}}` {
		t.Fatalf("unexpected readback: %+v", got)
	}

	// Same key in another scope is unrelated.
	if _, err := GetIdempotency(ctx, db, "contact", "k9", time.Now().UTC()); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound across scopes, got %v", err)
	}
}

func TestSaveIdempotency_Duplicate(t *testing.T) {
	db := newTestDB(t, &domain.Idempotency{})
	ctx := context.Background()

	if _, err := SaveIdempotency(ctx, db, "leads", "dup", 200, []byte(`{}`), time.Hour); err != nil {
		t.Fatalf("first save: %v", err)
	}
	if _, err := SaveIdempotency(ctx, db, "leads", "dup", 200, []byte(`{}`), time.Hour); err != ErrDuplicate {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}
}

func TestSaveIdempotency_ReplacesExpired(t *testing.T) {
	db := newTestDB(t, &domain.Idempotency{})
	ctx := context.Background()
	now := time.Now().UTC()

	old := &domain.Idempotency{
		ID: "old", Scope: "contact", Key: "k", Status: 500, Body: []byte(`{}`),
		CreatedAt: now.Add(-2 * time.Hour), ExpiresAt: now.Add(-time.Hour),
	}
	if err := db.Create(old).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}
	rec, err := SaveIdempotency(ctx, db, "contact", "k", 201, []byte(`{"ok":1}`), time.Hour)
	if err != nil {
		t.Fatalf("SaveIdempotency over expired: %v", err)
	}
	if rec.Status != 201 {
		t.Fatalf("unexpected record: %+v", rec)
	}
}

func TestPurgeExpiredIdempotency(t *testing.T) {
	db := newTestDB(t, &domain.Idempotency{})
	ctx := context.Background()
	now := time.Now().UTC()

	seed := []domain.Idempotency{
		{ID: "a", Scope: "s", Key: "1", Body: []byte(`{}`), CreatedAt: now, ExpiresAt: now.Add(-time.Minute)},
		{ID: "b", Scope: "s", Key: "2", Body: []byte(`{}`), CreatedAt: now, ExpiresAt: now.Add(time.Hour)},
	}
	if err := db.Create(&seed).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}
	n, err := PurgeExpiredIdempotency(ctx, db, now)
	if err != nil || n != 1 {
		t.Fatalf("purge = (%d, %v); want (1, nil)", n, err)
	}
}

// Generic DB error path: attempt insert without migrating the table.
func TestSaveIdempotency_Error_NoTable(t *testing.T) {
	db := newTestDB(t)
	_, err := SaveIdempotency(context.Background(), db, "s", "k", 200, []byte(`{}`), time.Minute)
	if err == nil {
		t.Fatalf("expected error when table is missing")
	}
	if err == ErrDuplicate {
		t.Fatalf("expected non-duplicate error, got ErrDuplicate")
	}
}
