package domain

import (
	"fmt"
	"testing"
	"time"

	sqlite "github.com/glebarez/sqlite" // pure-Go SQLite (no CGO)
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newDomainDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:domain_%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	// One connection so the foreign_keys PRAGMA applies to every statement.
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.SetMaxOpenConns(1)
	}
	// Enforce FKs so cascades actually execute.
	db.Exec("PRAGMA foreign_keys=ON;")
	if err := db.AutoMigrate(&ContactSubmission{}, &DiscoveryCallBooking{}, &Lead{}, &LeadMagnetDownload{}); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}

func TestTableNames(t *testing.T) {
	cases := map[string]string{
		(ContactSubmission{}).TableName():    "contact_submissions",
		(DiscoveryCallBooking{}).TableName(): "discovery_call_bookings",
		(Lead{}).TableName():                 "leads",
		(LeadMagnetDownload{}).TableName():   "lead_magnet_downloads",
		(Idempotency{}).TableName():          "idempotency",
	}
	for got, want := range cases {
		if got != want {
			t.Fatalf("TableName() = %q; want %q", got, want)
		}
	}
}

func TestMigrations_Indexes(t *testing.T) {
	db := newDomainDB(t)
	m := db.Migrator()

	if !m.HasIndex(&DiscoveryCallBooking{}, "ux_booking_slot_confirmed") {
		t.Fatalf("expected partial unique index ux_booking_slot_confirmed")
	}
	if !m.HasIndex(&Lead{}, "ux_leads_email") {
		t.Fatalf("expected unique index ux_leads_email")
	}
}

func TestContactSubmission_DefaultStatusAndCheck(t *testing.T) {
	db := newDomainDB(t)

	cs := &ContactSubmission{ID: "c1", Name: "Ada", Email: "ada@example.com", Message: "hi"}
	if err := db.Omit("Status").Create(cs).Error; err != nil {
		t.Fatalf("insert: %v", err)
	}
	var got ContactSubmission
	if err := db.First(&got, "id = ?", "c1").Error; err != nil {
		t.Fatalf("readback: %v", err)
	}
	if got.Status != ContactStatusNew {
		t.Fatalf("default status = %q; want %q", got.Status, ContactStatusNew)
	}

	bad := &ContactSubmission{ID: "c2", Name: "Bob", Email: "bob@example.com", Message: "x", Status: "archived"}
	if err := db.Create(bad).Error; err == nil {
		t.Fatalf("expected CHECK violation for unknown status")
	}
}

func TestBooking_SlotUniqueOnlyWhileConfirmed(t *testing.T) {
	db := newDomainDB(t)
	now := time.Now().UTC()

	first := &DiscoveryCallBooking{ID: "b1", Name: "A", Email: "a@x.io", Date: "2030-01-07", TimeSlot: "9:00 AM", Status: BookingStatusConfirmed, CreatedAt: now}
	if err := db.Create(first).Error; err != nil {
		t.Fatalf("insert first: %v", err)
	}

	dup := &DiscoveryCallBooking{ID: "b2", Name: "B", Email: "b@x.io", Date: "2030-01-07", TimeSlot: "9:00 AM", Status: BookingStatusConfirmed, CreatedAt: now}
	if err := db.Create(dup).Error; err == nil {
		t.Fatalf("expected UNIQUE violation for second confirmed booking in the same slot")
	}

	// A cancelled row for the same slot is outside the partial index.
	cancelled := &DiscoveryCallBooking{ID: "b3", Name: "C", Email: "c@x.io", Date: "2030-01-07", TimeSlot: "9:00 AM", Status: BookingStatusCancelled, CreatedAt: now}
	if err := db.Create(cancelled).Error; err != nil {
		t.Fatalf("cancelled booking should not collide: %v", err)
	}

	// Same date, different slot is fine.
	other := &DiscoveryCallBooking{ID: "b4", Name: "D", Email: "d@x.io", Date: "2030-01-07", TimeSlot: "9:30 AM", Status: BookingStatusConfirmed, CreatedAt: now}
	if err := db.Create(other).Error; err != nil {
		t.Fatalf("different slot should insert: %v", err)
	}
}

func TestLead_EmailUnique_AndDownloadCascade(t *testing.T) {
	db := newDomainDB(t)
	now := time.Now().UTC()

	lead := &Lead{ID: "l1", Email: "lead@example.com", LeadStage: LeadStageInitial, Source: DefaultLeadSource, CreatedAt: now, UpdatedAt: now}
	if err := db.Create(lead).Error; err != nil {
		t.Fatalf("insert lead: %v", err)
	}
	if err := db.Create(&Lead{ID: "l2", Email: "lead@example.com", LeadStage: LeadStageInitial, Source: DefaultLeadSource}).Error; err == nil {
		t.Fatalf("expected UNIQUE violation on leads.email")
	}

	dl := &LeadMagnetDownload{ID: "d1", LeadID: "l1", MagnetType: "framework-guide", DownloadTime: now}
	if err := db.Create(dl).Error; err != nil {
		t.Fatalf("insert download: %v", err)
	}

	if err := db.Delete(&Lead{}, "id = ?", "l1").Error; err != nil {
		t.Fatalf("delete lead: %v", err)
	}
	var cnt int64
	if err := db.Model(&LeadMagnetDownload{}).Where("lead_id = ?", "l1").Count(&cnt).Error; err != nil {
		t.Fatalf("count downloads: %v", err)
	}
	if cnt != 0 {
		t.Fatalf("expected downloads to cascade-delete with lead, got %d", cnt)
	}
}
