// Package repository provides data access layer implementations and interfaces for database operations
package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/solution-fragrance/portal/models"
	"gorm.io/gorm"
)

// ActivationTokenRepositoryImpl implements ActivationTokenRepository interface
type ActivationTokenRepositoryImpl struct {
	*BaseRepository[models.ActivationToken, models.ActivationTokenFilter]
}

// NewActivationTokenRepository creates a new activation token repository
func NewActivationTokenRepository(db *gorm.DB) ActivationTokenRepository {
	return &ActivationTokenRepositoryImpl{
		BaseRepository: NewBaseRepository[models.ActivationToken, models.ActivationTokenFilter](db),
	}
}

// ByToken retrieves an activation token by its raw value
func (r *ActivationTokenRepositoryImpl) ByToken(ctx context.Context, token string) (*models.ActivationToken, error) {
	filter := models.ActivationTokenFilter{Token: &token}
	tokens, err := r.ByFilter(ctx, filter, "", 0, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to find activation token: %w", err)
	}

	if len(tokens) == 0 {
		return nil, nil
	}

	return tokens[0], nil
}

// MarkUsed consumes a token
func (r *ActivationTokenRepositoryImpl) MarkUsed(ctx context.Context, id uint, usedAt time.Time) error {
	db := r.getDB(ctx)
	return db.Model(&models.ActivationToken{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":  models.ActivationStatusUsed,
			"used_at": usedAt,
		}).Error
}

// ExpirePendingForUser invalidates outstanding tokens before minting a new one
func (r *ActivationTokenRepositoryImpl) ExpirePendingForUser(ctx context.Context, userID uint) error {
	db := r.getDB(ctx)
	return db.Model(&models.ActivationToken{}).
		Where("user_id = ? AND status = ?", userID, models.ActivationStatusPending).
		Update("status", models.ActivationStatusExpired).Error
}

// ByFilter retrieves activation tokens based on filter criteria
func (r *ActivationTokenRepositoryImpl) ByFilter(ctx context.Context, filter models.ActivationTokenFilter, orderBy string, limit, offset int) ([]*models.ActivationToken, error) {
	db := r.getDB(ctx)

	var tokens []*models.ActivationToken
	query := r.applyFilter(db, filter)

	if orderBy != "" {
		query = query.Order(orderBy)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	err := query.Find(&tokens).Error
	if err != nil {
		return nil, err
	}

	return tokens, nil
}

// Count returns the number of activation tokens matching the filter
func (r *ActivationTokenRepositoryImpl) Count(ctx context.Context, filter models.ActivationTokenFilter) (int64, error) {
	db := r.getDB(ctx)

	var count int64
	query := r.applyFilter(db.Model(&models.ActivationToken{}), filter)

	err := query.Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}

// Exists checks if any activation token matching the filter exists
func (r *ActivationTokenRepositoryImpl) Exists(ctx context.Context, filter models.ActivationTokenFilter) (bool, error) {
	count, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

// applyFilter applies filter conditions to the GORM query
func (r *ActivationTokenRepositoryImpl) applyFilter(db *gorm.DB, filter models.ActivationTokenFilter) *gorm.DB {
	if filter.ID != nil {
		db = db.Where("id = ?", *filter.ID)
	}
	if filter.Token != nil {
		db = db.Where("token = ?", *filter.Token)
	}
	if filter.UserID != nil {
		db = db.Where("user_id = ?", *filter.UserID)
	}
	if filter.ApplicationID != nil {
		db = db.Where("application_id = ?", *filter.ApplicationID)
	}
	if filter.Status != nil {
		db = db.Where("status = ?", *filter.Status)
	}

	return db
}
