// Package repository provides data access layer implementations and interfaces for database operations
package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/solution-fragrance/portal/models"
	"gorm.io/gorm"
)

// WholesaleApplicationRepositoryImpl implements the WholesaleApplicationRepository interface
type WholesaleApplicationRepositoryImpl struct {
	*BaseRepository[models.WholesaleApplication, models.WholesaleApplicationFilter]
}

// NewWholesaleApplicationRepository creates a new wholesale application repository
func NewWholesaleApplicationRepository(db *gorm.DB) WholesaleApplicationRepository {
	return &WholesaleApplicationRepositoryImpl{
		BaseRepository: NewBaseRepository[models.WholesaleApplication, models.WholesaleApplicationFilter](db),
	}
}

// ByUUID retrieves an application by UUID
func (r *WholesaleApplicationRepositoryImpl) ByUUID(ctx context.Context, raw string) (*models.WholesaleApplication, error) {
	parsed, err := uuid.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid application uuid: %w", err)
	}

	filter := models.WholesaleApplicationFilter{UUID: &parsed}
	apps, err := r.ByFilter(ctx, filter, "", 0, 0)
	if err != nil {
		return nil, err
	}

	if len(apps) == 0 {
		return nil, nil
	}

	return apps[0], nil
}

// ByStatus retrieves applications by status with pagination
func (r *WholesaleApplicationRepositoryImpl) ByStatus(ctx context.Context, status models.ApplicationStatus, limit, offset int) ([]*models.WholesaleApplication, error) {
	filter := models.WholesaleApplicationFilter{Status: &status}
	return r.ByFilter(ctx, filter, "created_at DESC", limit, offset)
}

// LatestApprovedUnlinkedByEmail returns the newest approved application
// for the email that has not been linked to a user yet
func (r *WholesaleApplicationRepositoryImpl) LatestApprovedUnlinkedByEmail(ctx context.Context, email string) (*models.WholesaleApplication, error) {
	db := r.getDB(ctx)

	var apps []*models.WholesaleApplication
	err := db.Where("email = ? AND status = ? AND user_id IS NULL", email, models.ApplicationStatusApproved).
		Order("reviewed_at DESC").
		Limit(1).
		Find(&apps).Error
	if err != nil {
		return nil, err
	}

	if len(apps) == 0 {
		return nil, nil
	}

	return apps[0], nil
}

// TransitionFromPending performs the conditional review update. The WHERE
// clause on status closes the race window between concurrent reviewers:
// only one request can move the row out of pending.
func (r *WholesaleApplicationRepositoryImpl) TransitionFromPending(ctx context.Context, id uint, status models.ApplicationStatus, reviewedBy uint, plan *models.WholesalePlan, reviewedAt time.Time) (bool, error) {
	db := r.getDB(ctx)

	updates := map[string]any{
		"status":      status,
		"reviewed_at": reviewedAt,
		"reviewed_by": reviewedBy,
		"updated_at":  reviewedAt,
	}
	if plan != nil {
		updates["wholesale_plan"] = *plan
	}

	res := db.Model(&models.WholesaleApplication{}).
		Where("id = ? AND status = ?", id, models.ApplicationStatusPending).
		Updates(updates)
	if res.Error != nil {
		return false, res.Error
	}

	return res.RowsAffected == 1, nil
}

// LinkUser sets the provisioned account on an application
func (r *WholesaleApplicationRepositoryImpl) LinkUser(ctx context.Context, id uint, userID uint) error {
	db := r.getDB(ctx)
	return db.Model(&models.WholesaleApplication{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"user_id":    userID,
			"updated_at": time.Now().UTC(),
		}).Error
}

// ByFilter retrieves applications based on filter criteria
func (r *WholesaleApplicationRepositoryImpl) ByFilter(ctx context.Context, filter models.WholesaleApplicationFilter, orderBy string, limit, offset int) ([]*models.WholesaleApplication, error) {
	db := r.getDB(ctx)

	var apps []*models.WholesaleApplication
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

	err := query.Find(&apps).Error
	if err != nil {
		return nil, err
	}

	return apps, nil
}

// Count returns the number of applications matching the filter
func (r *WholesaleApplicationRepositoryImpl) Count(ctx context.Context, filter models.WholesaleApplicationFilter) (int64, error) {
	db := r.getDB(ctx)

	var count int64
	query := r.applyFilter(db.Model(&models.WholesaleApplication{}), filter)

	err := query.Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}

// Exists checks if any application matching the filter exists
func (r *WholesaleApplicationRepositoryImpl) Exists(ctx context.Context, filter models.WholesaleApplicationFilter) (bool, error) {
	count, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

// applyFilter applies filter conditions to the GORM query
func (r *WholesaleApplicationRepositoryImpl) applyFilter(db *gorm.DB, filter models.WholesaleApplicationFilter) *gorm.DB {
	if filter.ID != nil {
		db = db.Where("id = ?", *filter.ID)
	}
	if filter.UUID != nil {
		db = db.Where("uuid = ?", *filter.UUID)
	}
	if filter.Email != nil {
		db = db.Where("email = ?", *filter.Email)
	}
	if filter.Status != nil {
		db = db.Where("status = ?", *filter.Status)
	}
	if filter.UserID != nil {
		db = db.Where("user_id = ?", *filter.UserID)
	}
	if filter.CreatedAfter != nil {
		db = db.Where("created_at >= ?", *filter.CreatedAfter)
	}
	if filter.CreatedBefore != nil {
		db = db.Where("created_at < ?", *filter.CreatedBefore)
	}

	return db
}
