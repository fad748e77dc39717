// Package models contains domain entities and business models for the storefront and wholesale portal
package models

import (
	"time"
)

// Admin is the administrators allow-list. It is a secondary
// authorization source next to profiles.role: a user is an admin if
// either grants it.
type Admin struct {
	ID     uint  `gorm:"primaryKey" json:"id"`
	UserID uint  `gorm:"not null;uniqueIndex:uk_admins_user_id" json:"user_id"`
	User   *User `gorm:"foreignKey:UserID;references:ID" json:"user,omitempty"`

	Note *string `gorm:"size:255" json:"note,omitempty"`

	CreatedAt time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"created_at"`
}

func (Admin) TableName() string {
	return "admins"
}

// AdminFilter represents filter criteria for admin allow-list queries
type AdminFilter struct {
	ID     *uint
	UserID *uint
}
