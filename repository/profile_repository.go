// Package repository provides data access layer implementations and interfaces for database operations
package repository

import (
	"context"
	"fmt"

	"github.com/solution-fragrance/portal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProfileRepositoryImpl implements ProfileRepository interface
type ProfileRepositoryImpl struct {
	*BaseRepository[models.Profile, models.ProfileFilter]
}

// NewProfileRepository creates a new profile repository
func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &ProfileRepositoryImpl{
		BaseRepository: NewBaseRepository[models.Profile, models.ProfileFilter](db),
	}
}

// ByUserID retrieves the profile owned by the given user
func (r *ProfileRepositoryImpl) ByUserID(ctx context.Context, userID uint) (*models.Profile, error) {
	filter := models.ProfileFilter{UserID: &userID}
	profiles, err := r.ByFilter(ctx, filter, "", 0, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to find profile by user ID: %w", err)
	}

	if len(profiles) == 0 {
		return nil, nil
	}

	return profiles[0], nil
}

// Upsert inserts the profile or overwrites its mutable fields on conflict
func (r *ProfileRepositoryImpl) Upsert(ctx context.Context, profile *models.Profile) error {
	db, shouldCommit, err := r.getDBForWrite(ctx)
	if err != nil {
		return err
	}

	if shouldCommit {
		defer func() {
			if err != nil {
				db.Rollback()
			} else {
				db.Commit()
			}
		}()
	}

	err = db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"email", "full_name", "role", "wholesale_status", "wholesale_plan", "updated_at"}),
	}).Create(profile).Error
	if err != nil {
		return fmt.Errorf("failed to upsert profile: %w", err)
	}

	return nil
}

// ByFilter retrieves profiles based on filter criteria
func (r *ProfileRepositoryImpl) ByFilter(ctx context.Context, filter models.ProfileFilter, orderBy string, limit, offset int) ([]*models.Profile, error) {
	db := r.getDB(ctx)

	var profiles []*models.Profile
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

	err := query.Find(&profiles).Error
	if err != nil {
		return nil, err
	}

	return profiles, nil
}

// Count returns the number of profiles matching the filter
func (r *ProfileRepositoryImpl) Count(ctx context.Context, filter models.ProfileFilter) (int64, error) {
	db := r.getDB(ctx)

	var count int64
	query := r.applyFilter(db.Model(&models.Profile{}), filter)

	err := query.Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}

// Exists checks if any profile matching the filter exists
func (r *ProfileRepositoryImpl) Exists(ctx context.Context, filter models.ProfileFilter) (bool, error) {
	count, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

// applyFilter applies filter conditions to the GORM query
func (r *ProfileRepositoryImpl) applyFilter(db *gorm.DB, filter models.ProfileFilter) *gorm.DB {
	if filter.UserID != nil {
		db = db.Where("user_id = ?", *filter.UserID)
	}
	if filter.Email != nil {
		db = db.Where("email = ?", *filter.Email)
	}
	if filter.Role != nil {
		db = db.Where("role = ?", *filter.Role)
	}
	if filter.WholesaleStatus != nil {
		db = db.Where("wholesale_status = ?", *filter.WholesaleStatus)
	}
	if filter.WholesalePlan != nil {
		db = db.Where("wholesale_plan = ?", *filter.WholesalePlan)
	}

	return db
}
