package repo

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"

	"github.com/tbourn/go-intake-backend/internal/domain"
)

func booking(date, slot string) domain.DiscoveryCallBooking {
	return domain.DiscoveryCallBooking{Name: "Grace", Email: "grace@example.com", Date: date, TimeSlot: slot}
}

func TestCreateBooking_SlotTakenOnce(t *testing.T) {
	db := newTestDB(t, &domain.DiscoveryCallBooking{})
	ctx := context.Background()

	first, err := CreateBooking(ctx, db, booking("2030-01-03", "10:00 AM"))
	if err != nil {
		t.Fatalf("CreateBooking: %v", err)
	}
	if first.Status != domain.BookingStatusConfirmed {
		t.Fatalf("status = %q; want %q", first.Status, domain.BookingStatusConfirmed)
	}

	if _, err := CreateBooking(ctx, db, booking("2030-01-03", "10:00 AM")); !errors.Is(err, ErrDuplicate) {
		t.Fatalf("second booking of the slot: want ErrDuplicate, got %v", err)
	}

	// Different slot, same day is fine.
	if _, err := CreateBooking(ctx, db, booking("2030-01-03", "10:30 AM")); err != nil {
		t.Fatalf("other slot: %v", err)
	}

	n, err := CountConfirmedBookings(ctx, db, "2030-01-03", "10:00 AM")
	if err != nil || n != 1 {
		t.Fatalf("CountConfirmedBookings = (%d, %v); want (1, nil)", n, err)
	}

	slots, err := ListConfirmedSlots(ctx, db, "2030-01-03")
	if err != nil {
		t.Fatalf("ListConfirmedSlots: %v", err)
	}
	sort.Strings(slots)
	if len(slots) != 2 || slots[0] != "10:00 AM" || slots[1] != "10:30 AM" {
		t.Fatalf("slots = %v", slots)
	}
}

func TestCreateBooking_CancelledRowDoesNotBlockSlot(t *testing.T) {
	db := newTestDB(t, &domain.DiscoveryCallBooking{})
	ctx := context.Background()

	b, err := CreateBooking(ctx, db, booking("2030-01-04", "2:00 PM"))
	if err != nil {
		t.Fatalf("CreateBooking: %v", err)
	}
	// Cancellation happens outside the service; flip the row directly.
	if err := db.Model(&domain.DiscoveryCallBooking{}).
		Where("id = ?", b.ID).
		Update("status", domain.BookingStatusCancelled).Error; err != nil {
		t.Fatalf("cancel: %v", err)
	}

	n, err := CountConfirmedBookings(ctx, db, "2030-01-04", "2:00 PM")
	if err != nil || n != 0 {
		t.Fatalf("CountConfirmedBookings = (%d, %v); want (0, nil)", n, err)
	}
	if _, err := CreateBooking(ctx, db, booking("2030-01-04", "2:00 PM")); err != nil {
		t.Fatalf("rebooking a cancelled slot: %v", err)
	}
}

func TestCreateBooking_ConcurrentSameSlot(t *testing.T) {
	db := newTestDB(t, &domain.DiscoveryCallBooking{})
	ctx := context.Background()

	const n = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
		dups      int
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := CreateBooking(ctx, db, booking("2030-01-07", "9:00 AM"))
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				successes++
			case errors.Is(err, ErrDuplicate):
				dups++
			}
		}()
	}
	wg.Wait()

	if successes != 1 || dups != n-1 {
		t.Fatalf("successes=%d dups=%d; want 1 and %d", successes, dups, n-1)
	}
}
