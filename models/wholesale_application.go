// Package models contains domain entities and business models for the storefront and wholesale portal
package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ApplicationStatus represents the review state of a wholesale application
type ApplicationStatus string

const (
	ApplicationStatusPending  ApplicationStatus = "pending"
	ApplicationStatusApproved ApplicationStatus = "approved"
	ApplicationStatusRejected ApplicationStatus = "rejected"
)

// String returns the string representation of the status
func (s ApplicationStatus) String() string {
	return string(s)
}

// Valid checks if the status is valid
func (s ApplicationStatus) Valid() bool {
	switch s {
	case ApplicationStatusPending, ApplicationStatusApproved, ApplicationStatusRejected:
		return true
	default:
		return false
	}
}

// Terminal reports whether the status permits no further transitions
func (s ApplicationStatus) Terminal() bool {
	return s == ApplicationStatusApproved || s == ApplicationStatusRejected
}

// Scan implements the sql.Scanner interface for ApplicationStatus
func (s *ApplicationStatus) Scan(value any) error {
	if value == nil {
		*s = ""
		return nil
	}

	switch v := value.(type) {
	case string:
		*s = ApplicationStatus(v)
	case []byte:
		*s = ApplicationStatus(string(v))
	default:
		return fmt.Errorf("cannot scan %T into ApplicationStatus", value)
	}

	return nil
}

// Value implements the driver.Valuer interface for ApplicationStatus
func (s ApplicationStatus) Value() (driver.Value, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("invalid ApplicationStatus: %s", s)
	}
	return string(s), nil
}

// ApplicationAnswers holds the free-form answers of the public form
// (business name, tax id, address, expected volume, comments, ...)
type ApplicationAnswers map[string]string

// Scan implements the sql.Scanner interface for ApplicationAnswers
func (a *ApplicationAnswers) Scan(value any) error {
	if value == nil {
		*a = nil
		return nil
	}

	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into ApplicationAnswers", value)
	}

	return json.Unmarshal(raw, a)
}

// Value implements the driver.Valuer interface for ApplicationAnswers
func (a ApplicationAnswers) Value() (driver.Value, error) {
	if a == nil {
		return nil, nil
	}
	return json.Marshal(a)
}

// WholesaleApplication is a prospective reseller's request to join the
// wholesale program. Created by the public form with status pending;
// reviewed exactly once by an admin; never deleted by this subsystem.
type WholesaleApplication struct {
	ID   uint      `gorm:"primaryKey" json:"id"`
	UUID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uk_wholesale_applications_uuid" json:"uuid"`

	FullName string             `gorm:"size:255;not null" json:"full_name"`
	Email    string             `gorm:"size:255;not null;index:idx_wholesale_applications_email" json:"email"`
	Phone    *string            `gorm:"size:30" json:"phone,omitempty"`
	Answers  ApplicationAnswers `gorm:"type:jsonb" json:"answers,omitempty"`

	Status        ApplicationStatus `gorm:"type:application_status_enum;not null;default:pending;index:idx_wholesale_applications_status" json:"status"`
	WholesalePlan *WholesalePlan    `gorm:"type:wholesale_plan_enum" json:"wholesale_plan,omitempty"`

	ReviewedAt *time.Time `json:"reviewed_at,omitempty"`
	ReviewedBy *uint      `gorm:"index:idx_wholesale_applications_reviewed_by" json:"reviewed_by,omitempty"`
	Reviewer   *User      `gorm:"foreignKey:ReviewedBy;references:ID" json:"-"`

	// Set once an account is provisioned or linked for the applicant
	UserID *uint `gorm:"index:idx_wholesale_applications_user_id" json:"user_id,omitempty"`
	User   *User `gorm:"foreignKey:UserID;references:ID" json:"-"`

	CreatedAt time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC');index:idx_wholesale_applications_created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"updated_at"`
}

func (WholesaleApplication) TableName() string {
	return "wholesale_applications"
}

// IsPending reports whether the application is still awaiting review
func (a *WholesaleApplication) IsPending() bool {
	return a.Status == ApplicationStatusPending
}

// WholesaleApplicationFilter represents filter criteria for application queries
type WholesaleApplicationFilter struct {
	ID            *uint
	UUID          *uuid.UUID
	Email         *string
	Status        *ApplicationStatus
	UserID        *uint
	CreatedAfter  *time.Time
	CreatedBefore *time.Time
}
