package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	sqlite "github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tbourn/go-intake-backend/internal/domain"
	"github.com/tbourn/go-intake-backend/internal/notify"
	"github.com/tbourn/go-intake-backend/internal/repo"
)

// Wednesday, 2030-01-02.
var wednesday = time.Date(2030, 1, 2, 10, 0, 0, 0, time.UTC)

func fixedNow() time.Time { return wednesday }

var errBoom = errors.New("boom")

// ----- Fake stores -----

type fakeContactStore struct {
	calls int
	err   error
	block bool // wait for ctx cancellation
	saved []domain.ContactSubmission
}

func (f *fakeContactStore) CreateContactSubmission(ctx context.Context, _ *gorm.DB, in domain.ContactSubmission) (*domain.ContactSubmission, error) {
	f.calls++
	if f.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if f.err != nil {
		return nil, f.err
	}
	in.ID = fmt.Sprintf("sub-%d", f.calls)
	in.Status = domain.ContactStatusNew
	f.saved = append(f.saved, in)
	return &in, nil
}

type fakeSlotStore struct {
	countCalls  int
	createCalls int
	count       int64
	countErr    error
	createErr   error
}

func (f *fakeSlotStore) CountConfirmedBookings(context.Context, *gorm.DB, string, string) (int64, error) {
	f.countCalls++
	return f.count, f.countErr
}

func (f *fakeSlotStore) ListConfirmedSlots(context.Context, *gorm.DB, string) ([]string, error) {
	return nil, f.countErr
}

func (f *fakeSlotStore) CreateBooking(_ context.Context, _ *gorm.DB, in domain.DiscoveryCallBooking) (*domain.DiscoveryCallBooking, error) {
	f.createCalls++
	if f.createErr != nil {
		return nil, f.createErr
	}
	in.ID = "b1"
	in.Status = domain.BookingStatusConfirmed
	return &in, nil
}

type fakeLeadStore struct {
	upsertCalls   int
	downloadCalls int
	upsertErr     error
	downloadErr   error
}

func (f *fakeLeadStore) UpsertLead(_ context.Context, _ *gorm.DB, in repo.LeadUpsert) (*domain.Lead, error) {
	f.upsertCalls++
	if f.upsertErr != nil {
		return nil, f.upsertErr
	}
	return &domain.Lead{ID: "l1", Email: in.Email, Name: in.Name, LeadStage: domain.LeadStageInitial, Source: domain.DefaultLeadSource}, nil
}

func (f *fakeLeadStore) RecordDownload(_ context.Context, _ *gorm.DB, in domain.LeadMagnetDownload) (*domain.LeadMagnetDownload, error) {
	f.downloadCalls++
	if f.downloadErr != nil {
		return nil, f.downloadErr
	}
	in.ID = "d1"
	return &in, nil
}

// ----- Fake notifier / linker -----

type sentMail struct {
	kind notify.Kind
	to   string
	data notify.Data
}

type fakeNotifier struct {
	mu   sync.Mutex
	sent []sentMail
	fail map[notify.Kind]bool
}

func (f *fakeNotifier) Notify(_ context.Context, kind notify.Kind, to string, data notify.Data) (notify.Result, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, sentMail{kind, to, data})
	if f.fail[kind] {
		return notify.Result{}, errBoom
	}
	return notify.Result{Sent: true, ProviderMessageID: "id-" + string(kind)}, nil
}

func (f *fakeNotifier) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sent)
}

func (f *fakeNotifier) kinds() []notify.Kind {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]notify.Kind, 0, len(f.sent))
	for _, s := range f.sent {
		out = append(out, s.kind)
	}
	return out
}

func failAll() map[notify.Kind]bool {
	return map[notify.Kind]bool{
		notify.KindContactInternal: true, notify.KindContactConfirmation: true,
		notify.KindBookingInternal: true, notify.KindBookingConfirmation: true,
		notify.KindLeadInternal: true, notify.KindLeadGuide: true,
	}
}

type fakeLinker struct {
	url string
	err error
	got string
}

func (f *fakeLinker) Link(_ context.Context, magnetType string) (string, error) {
	f.got = magnetType
	return f.url, f.err
}

// ----- Real storage -----

// newServiceDB opens a migrated in-memory database unique to the test.
func newServiceDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	db.Exec("PRAGMA foreign_keys=ON;")
	if err := repo.AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}
