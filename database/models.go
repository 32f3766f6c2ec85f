package database

import (
	"time"

	"gorm.io/gorm"
)

// User represents a registered account. Accounts are never deleted.
type User struct {
	gorm.Model
	Username     string `json:"username" gorm:"uniqueIndex;size:80;not null"`
	PasswordHash string `json:"-" gorm:"size:120;not null"`
	IsAdmin      bool   `json:"is_admin" gorm:"default:false"`

	Reports []CrimeReport `gorm:"foreignKey:UserID" json:"-"`
}

// CrimeReport represents one incident submission. The status field is
// the only field mutated after creation.
type CrimeReport struct {
	gorm.Model
	UserID      uint     `json:"user_id" gorm:"not null;index"`
	CrimeType   string   `json:"crime_type" gorm:"size:50;not null"`
	Description string   `json:"description" gorm:"type:text;not null"`
	Location    string   `json:"location" gorm:"size:100;not null;default:Unknown"`
	Status      string   `json:"status" gorm:"size:20;default:Pending;index"`
	ImagePath   *string  `json:"image_path" gorm:"size:255"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`

	// Present in the schema for a future verification workflow; no
	// current operation reads or writes them.
	VerificationRequested bool `json:"verification_requested" gorm:"default:false"`
	IsVerified            bool `json:"is_verified" gorm:"default:false"`

	User   User    `gorm:"foreignKey:UserID" json:"user"`
	Audits []Audit `gorm:"foreignKey:ReportID" json:"audits,omitempty"`
}

// Audit is one immutable record of a status change on one report.
// Rows are only ever inserted, never updated or deleted.
type Audit struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	ReportID  uint      `gorm:"not null;index" json:"report_id"`
	OldStatus *string   `gorm:"size:50" json:"old_status"`
	NewStatus string    `gorm:"size:50;not null" json:"new_status"`
	ChangedBy *uint     `gorm:"index" json:"changed_by"`
	CreatedAt time.Time `json:"created_at"`

	Report *CrimeReport `gorm:"foreignKey:ReportID" json:"-"`
	User   *User        `gorm:"foreignKey:ChangedBy" json:"-"`
}

// Report status values
const (
	StatusPending       = "Pending"
	StatusInvestigating = "Investigating"
	StatusResolved      = "Resolved"
)

// ValidStatus reports whether s is one of the three workflow statuses.
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusInvestigating, StatusResolved:
		return true
	}
	return false
}
