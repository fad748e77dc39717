// Package repository provides data access layer implementations and interfaces for database operations
package repository

import (
	"context"
	"time"

	"github.com/solution-fragrance/portal/models"
)

// RepositoryContext key for transaction in context
type contextKey string

const TxContextKey contextKey = "tx"

type Repository[T any, F any] interface {
	ByID(ctx context.Context, id uint) (*T, error)
	ByFilter(ctx context.Context, filter F, orderBy string, limit, offset int) ([]*T, error)
	Save(ctx context.Context, entity *T) error
	SaveBatch(ctx context.Context, entities []*T) error
	Count(ctx context.Context, filter F) (int64, error)
	Exists(ctx context.Context, filter F) (bool, error)
}

// UserRepository defines operations for identity accounts
type UserRepository interface {
	Repository[models.User, models.UserFilter]
	ByEmail(ctx context.Context, email string) (*models.User, error)
	ByUUID(ctx context.Context, uuid string) (*models.User, error)
	UpdatePassword(ctx context.Context, userID uint, passwordHash string) error
	UpdateLastLogin(ctx context.Context, userID uint, at time.Time) error
	Activate(ctx context.Context, userID uint) error
}

// ProfileRepository defines operations for profiles
type ProfileRepository interface {
	Repository[models.Profile, models.ProfileFilter]
	ByUserID(ctx context.Context, userID uint) (*models.Profile, error)
	// Upsert inserts the profile or, on user_id conflict, overwrites the
	// mutable fields. The review flow and the self-service linking path
	// are the only writers of the role/wholesale fields.
	Upsert(ctx context.Context, profile *models.Profile) error
}

// AdminRepository defines operations for the administrators allow-list
type AdminRepository interface {
	Repository[models.Admin, models.AdminFilter]
	IsAllowListed(ctx context.Context, userID uint) (bool, error)
}

// WholesaleApplicationRepository defines operations for wholesale applications
type WholesaleApplicationRepository interface {
	Repository[models.WholesaleApplication, models.WholesaleApplicationFilter]
	ByUUID(ctx context.Context, uuid string) (*models.WholesaleApplication, error)
	ByStatus(ctx context.Context, status models.ApplicationStatus, limit, offset int) ([]*models.WholesaleApplication, error)
	// LatestApprovedUnlinkedByEmail returns the newest approved
	// application for the email that has no user linked yet.
	LatestApprovedUnlinkedByEmail(ctx context.Context, email string) (*models.WholesaleApplication, error)
	// TransitionFromPending performs the conditional review update:
	// UPDATE ... WHERE id = ? AND status = 'pending'. It reports whether
	// a row was transitioned; false means the application was already
	// reviewed by a concurrent request.
	TransitionFromPending(ctx context.Context, id uint, status models.ApplicationStatus, reviewedBy uint, plan *models.WholesalePlan, reviewedAt time.Time) (bool, error)
	LinkUser(ctx context.Context, id uint, userID uint) error
}

// ProductRepository defines operations for catalog products
type ProductRepository interface {
	Repository[models.Product, models.ProductFilter]
	BySlug(ctx context.Context, slug string) (*models.Product, error)
	ListActive(ctx context.Context) ([]*models.Product, error)
}

// OrderRepository defines operations for orders
type OrderRepository interface {
	Repository[models.Order, models.OrderFilter]
	ByUUID(ctx context.Context, uuid string) (*models.Order, error)
	ListByUser(ctx context.Context, userID uint, channel string) ([]*models.Order, error)
}

// OrderItemRepository defines operations for order items
type OrderItemRepository interface {
	Repository[models.OrderItem, models.OrderItemFilter]
	ByOrderID(ctx context.Context, orderID uint) ([]*models.OrderItem, error)
}

// ActivationTokenRepository defines operations for one-time activation tokens
type ActivationTokenRepository interface {
	Repository[models.ActivationToken, models.ActivationTokenFilter]
	ByToken(ctx context.Context, token string) (*models.ActivationToken, error)
	MarkUsed(ctx context.Context, id uint, usedAt time.Time) error
	ExpirePendingForUser(ctx context.Context, userID uint) error
}

// AuditLogRepository defines operations for audit logs
type AuditLogRepository interface {
	Repository[models.AuditLog, models.AuditLogFilter]
	ListByUser(ctx context.Context, userID uint, limit, offset int) ([]*models.AuditLog, error)
	ListByAction(ctx context.Context, action string, limit, offset int) ([]*models.AuditLog, error)
}
