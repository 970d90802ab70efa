// Package domain defines the persistence models for the three intake flows:
// contact submissions, discovery-call bookings and gated-content leads. These
// types are mapped with GORM and form the core data layer of the service.
package domain

import "time"

// Contact submission statuses.
const (
	ContactStatusNew      = "new"
	ContactStatusReviewed = "reviewed"
)

// Booking statuses.
const (
	BookingStatusConfirmed = "confirmed"
	BookingStatusCancelled = "cancelled"
)

// Lead stages. A capture without an explicit stage starts at LeadStageInitial.
const (
	LeadStageInitial = "initial"
	LeadStage1       = "stage1"
	LeadStage2       = "stage2"
	LeadStage3       = "stage3"
)

// DefaultLeadSource is recorded when a capture does not name its source.
const DefaultLeadSource = "website"

// ContactSubmission is one accepted contact-form submission. The pipeline
// creates it once and never mutates it; review happens outside this service.
//
// Fields:
//   - ID: UUID primary key (char(36)).
//   - Name, Email: required submitter identity.
//   - Company, Phone: optional; empty strings when not supplied.
//   - Message: free text capped at 1000 characters (placeholder when empty).
//   - Status: "new" on creation, "reviewed" once handled by staff.
type ContactSubmission struct {
	ID        string    `json:"id"         gorm:"type:char(36);primaryKey"`
	Name      string    `json:"name"       gorm:"type:varchar(255);not null"`
	Email     string    `json:"email"      gorm:"type:varchar(320);not null;index"`
	Company   string    `json:"company"    gorm:"type:varchar(255)"`
	Phone     string    `json:"phone"      gorm:"type:varchar(32)"`
	Message   string    `json:"message"    gorm:"type:text;not null"`
	Status    string    `json:"status"     gorm:"type:varchar(16);not null;default:'new';check:contact_status_chk,status IN ('new','reviewed')"`
	CreatedAt time.Time `json:"created_at" gorm:"index"`
}

// TableName returns the database table name for ContactSubmission.
func (ContactSubmission) TableName() string { return "contact_submissions" }

// DiscoveryCallBooking reserves one half-hour slot on a business day.
//
// At most one confirmed booking may exist per (date, time_slot). The partial
// unique index ux_booking_slot_confirmed enforces this in storage so that two
// concurrent requests for the same slot cannot both be inserted; cancelled
// rows are excluded from the index and never block a slot.
type DiscoveryCallBooking struct {
	ID        string    `json:"id"         gorm:"type:char(36);primaryKey"`
	Name      string    `json:"name"       gorm:"type:varchar(255);not null"`
	Email     string    `json:"email"      gorm:"type:varchar(320);not null;index"`
	Company   string    `json:"company"    gorm:"type:varchar(255)"`
	Phone     string    `json:"phone"      gorm:"type:varchar(32)"`
	Date      string    `json:"date"       gorm:"type:varchar(10);not null;index:idx_booking_date;uniqueIndex:ux_booking_slot_confirmed,priority:1,where:status = 'confirmed'"`
	TimeSlot  string    `json:"timeSlot"   gorm:"type:varchar(16);not null;uniqueIndex:ux_booking_slot_confirmed,priority:2,where:status = 'confirmed'"`
	Notes     string    `json:"notes"      gorm:"type:text"`
	Status    string    `json:"status"     gorm:"type:varchar(16);not null;default:'confirmed';check:booking_status_chk,status IN ('confirmed','cancelled')"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the database table name for DiscoveryCallBooking.
func (DiscoveryCallBooking) TableName() string { return "discovery_call_bookings" }

// Lead is a gated-content subscriber keyed naturally by email. A second
// capture with the same email updates the row in place.
type Lead struct {
	ID        string    `json:"id"         gorm:"type:char(36);primaryKey"`
	Email     string    `json:"email"      gorm:"type:varchar(320);not null;uniqueIndex:ux_leads_email"`
	Name      string    `json:"name"       gorm:"type:varchar(255)"`
	LeadStage string    `json:"lead_stage" gorm:"type:varchar(16);not null;default:'initial'"`
	Source    string    `json:"source"     gorm:"type:varchar(64);not null;default:'website'"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the database table name for Lead.
func (Lead) TableName() string { return "leads" }

// LeadMagnetDownload is an append-only record of a gated asset handed to a
// lead. Rows are cascade-deleted with their lead.
type LeadMagnetDownload struct {
	ID           string    `json:"id"            gorm:"type:char(36);primaryKey"`
	LeadID       string    `json:"lead_id"       gorm:"type:char(36);not null;index"`
	MagnetType   string    `json:"magnet_type"   gorm:"type:varchar(64);not null"`
	DownloadTime time.Time `json:"download_time" gorm:"not null"`
	IPAddress    string    `json:"ip_address"    gorm:"type:varchar(64)"`
	UserAgent    string    `json:"user_agent"    gorm:"type:text"`

	Lead Lead `json:"-" gorm:"foreignKey:LeadID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for LeadMagnetDownload.
func (LeadMagnetDownload) TableName() string { return "lead_magnet_downloads" }
