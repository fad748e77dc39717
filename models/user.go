// Package models contains domain entities and business models for the storefront and wholesale portal
package models

import (
	"time"

	"github.com/google/uuid"
)

// User is an identity-store account. Invite-provisioned accounts start
// without a password hash and become active once the activation link is
// consumed.
type User struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	UUID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uk_users_uuid" json:"uuid"`
	Email    string    `gorm:"size:255;not null;uniqueIndex:uk_users_email" json:"email"`
	FullName string    `gorm:"size:255" json:"full_name"`

	PasswordHash *string `gorm:"size:255" json:"-"` // Never serialize password hash
	IsActive     *bool   `gorm:"default:true;index:idx_users_is_active" json:"is_active"`

	CreatedAt   time.Time  `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC');index:idx_users_created_at" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"updated_at"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`

	Profile   *Profile   `gorm:"foreignKey:UserID" json:"profile,omitempty"`
	AuditLogs []AuditLog `gorm:"foreignKey:UserID" json:"-"`
}

func (User) TableName() string {
	return "users"
}

// HasPassword reports whether the account has completed credential setup
func (u *User) HasPassword() bool {
	return u.PasswordHash != nil && *u.PasswordHash != ""
}

// UserFilter represents filter criteria for user queries
type UserFilter struct {
	ID            *uint
	UUID          *uuid.UUID
	Email         *string
	IsActive      *bool
	CreatedAfter  *time.Time
	CreatedBefore *time.Time
}
