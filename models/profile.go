// Package models contains domain entities and business models for the storefront and wholesale portal
package models

import (
	"database/sql/driver"
	"fmt"
	"time"
)

// Role represents the access level of a profile
type Role string

const (
	RoleRetail    Role = "retail"
	RoleWholesale Role = "wholesale"
	RoleAdmin     Role = "admin"
)

// String returns the string representation of the role
func (r Role) String() string {
	return string(r)
}

// Valid checks if the role is valid
func (r Role) Valid() bool {
	switch r {
	case RoleRetail, RoleWholesale, RoleAdmin:
		return true
	default:
		return false
	}
}

// Scan implements the sql.Scanner interface for Role
func (r *Role) Scan(value any) error {
	if value == nil {
		*r = ""
		return nil
	}

	switch v := value.(type) {
	case string:
		*r = Role(v)
	case []byte:
		*r = Role(string(v))
	default:
		return fmt.Errorf("cannot scan %T into Role", value)
	}

	return nil
}

// Value implements the driver.Valuer interface for Role
func (r Role) Value() (driver.Value, error) {
	if !r.Valid() {
		return nil, fmt.Errorf("invalid Role: %s", r)
	}
	return string(r), nil
}

// WholesaleStatus tracks whether a profile has been admitted to the wholesale program
type WholesaleStatus string

const (
	WholesaleStatusNone     WholesaleStatus = "none"
	WholesaleStatusApproved WholesaleStatus = "approved"
)

func (s WholesaleStatus) String() string {
	return string(s)
}

func (s WholesaleStatus) Valid() bool {
	switch s {
	case WholesaleStatusNone, WholesaleStatusApproved:
		return true
	default:
		return false
	}
}

// Scan implements the sql.Scanner interface for WholesaleStatus
func (s *WholesaleStatus) Scan(value any) error {
	if value == nil {
		*s = ""
		return nil
	}

	switch v := value.(type) {
	case string:
		*s = WholesaleStatus(v)
	case []byte:
		*s = WholesaleStatus(string(v))
	default:
		return fmt.Errorf("cannot scan %T into WholesaleStatus", value)
	}

	return nil
}

// Value implements the driver.Valuer interface for WholesaleStatus
func (s WholesaleStatus) Value() (driver.Value, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("invalid WholesaleStatus: %s", s)
	}
	return string(s), nil
}

// WholesalePlan is the pricing tier assigned to an approved wholesaler
type WholesalePlan string

const (
	// WholesalePlanA is the entry tier (wholesale price as-is)
	WholesalePlanA WholesalePlan = "A"
	// WholesalePlanB is the premium tier (extra 10% off the wholesale price)
	WholesalePlanB WholesalePlan = "B"
)

func (p WholesalePlan) String() string {
	return string(p)
}

func (p WholesalePlan) Valid() bool {
	switch p {
	case WholesalePlanA, WholesalePlanB:
		return true
	default:
		return false
	}
}

// Label returns the customer-facing name of the plan
func (p WholesalePlan) Label() string {
	if p == WholesalePlanB {
		return "Revendedor Premium (Plan B)"
	}
	return "Revendedor Inicial (Plan A)"
}

// Scan implements the sql.Scanner interface for WholesalePlan
func (p *WholesalePlan) Scan(value any) error {
	if value == nil {
		*p = ""
		return nil
	}

	switch v := value.(type) {
	case string:
		*p = WholesalePlan(v)
	case []byte:
		*p = WholesalePlan(string(v))
	default:
		return fmt.Errorf("cannot scan %T into WholesalePlan", value)
	}

	return nil
}

// Value implements the driver.Valuer interface for WholesalePlan
func (p WholesalePlan) Value() (driver.Value, error) {
	if !p.Valid() {
		return nil, fmt.Errorf("invalid WholesalePlan: %s", p)
	}
	return string(p), nil
}

// Profile carries the role and wholesale access fields for a user.
// Its primary key equals the owning user's ID (one-to-one).
type Profile struct {
	UserID   uint   `gorm:"primaryKey" json:"user_id"`
	User     *User  `gorm:"foreignKey:UserID;references:ID" json:"user,omitempty"`
	Email    string `gorm:"size:255;not null;index:idx_profiles_email" json:"email"`
	FullName string `gorm:"size:255" json:"full_name"`

	Role            Role            `gorm:"type:profile_role_enum;not null;default:retail;index:idx_profiles_role" json:"role"`
	WholesaleStatus WholesaleStatus `gorm:"type:wholesale_status_enum;not null;default:none" json:"wholesale_status"`
	WholesalePlan   *WholesalePlan  `gorm:"type:wholesale_plan_enum" json:"wholesale_plan,omitempty"`

	CreatedAt time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"created_at"`
	UpdatedAt time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"updated_at"`
}

func (Profile) TableName() string {
	return "profiles"
}

// IsAdmin reports whether the profile grants admin access
func (p *Profile) IsAdmin() bool {
	return p.Role == RoleAdmin
}

// CanAccessWholesale reports whether the profile grants wholesale portal
// access: role admin, or role wholesale with approved status.
func (p *Profile) CanAccessWholesale() bool {
	if p.Role == RoleAdmin {
		return true
	}
	return p.Role == RoleWholesale && p.WholesaleStatus == WholesaleStatusApproved
}

// ProfileFilter represents filter criteria for profile queries
type ProfileFilter struct {
	UserID          *uint
	Email           *string
	Role            *Role
	WholesaleStatus *WholesaleStatus
	WholesalePlan   *WholesalePlan
}
