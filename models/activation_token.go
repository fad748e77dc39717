// Package models contains domain entities and business models for the storefront and wholesale portal
package models

import (
	"time"

	"github.com/google/uuid"
)

// Activation token status constants
const (
	ActivationStatusPending = "pending"
	ActivationStatusUsed    = "used"
	ActivationStatusExpired = "expired"
)

// ActivationToken is the one-time credential behind an invite link.
// Consuming it sets the account password and activates the user.
type ActivationToken struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	CorrelationID uuid.UUID `gorm:"type:uuid;not null;index:idx_activation_tokens_correlation_id" json:"correlation_id"`

	Token  string `gorm:"size:64;not null;uniqueIndex:uk_activation_tokens_token" json:"-"` // Never serialize the raw token
	UserID uint   `gorm:"not null;index:idx_activation_tokens_user_id" json:"user_id"`
	User   *User  `gorm:"foreignKey:UserID;references:ID" json:"-"`

	// The application whose approval minted this token, when applicable
	ApplicationID *uint `gorm:"index:idx_activation_tokens_application_id" json:"application_id,omitempty"`

	Status    string     `gorm:"size:20;not null;default:pending;index:idx_activation_tokens_status" json:"status"`
	ExpiresAt time.Time  `gorm:"not null;index:idx_activation_tokens_expires_at" json:"expires_at"`
	UsedAt    *time.Time `json:"used_at,omitempty"`

	CreatedAt time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"created_at"`
}

func (ActivationToken) TableName() string {
	return "activation_tokens"
}

func (t *ActivationToken) IsExpired() bool {
	return time.Now().UTC().After(t.ExpiresAt)
}

func (t *ActivationToken) IsUsable() bool {
	return t.Status == ActivationStatusPending && !t.IsExpired()
}

// ActivationTokenFilter represents filter criteria for activation token queries
type ActivationTokenFilter struct {
	ID            *uint
	Token         *string
	UserID        *uint
	ApplicationID *uint
	Status        *string
}
