// Package repository provides data access layer implementations and interfaces for database operations
package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/solution-fragrance/portal/models"
	"gorm.io/gorm"
)

// OrderRepositoryImpl implements OrderRepository interface
type OrderRepositoryImpl struct {
	*BaseRepository[models.Order, models.OrderFilter]
}

// NewOrderRepository creates a new order repository
func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &OrderRepositoryImpl{
		BaseRepository: NewBaseRepository[models.Order, models.OrderFilter](db),
	}
}

// ByUUID retrieves an order by UUID
func (r *OrderRepositoryImpl) ByUUID(ctx context.Context, raw string) (*models.Order, error) {
	parsed, err := uuid.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid order uuid: %w", err)
	}

	filter := models.OrderFilter{UUID: &parsed}
	orders, err := r.ByFilter(ctx, filter, "", 0, 0)
	if err != nil {
		return nil, err
	}

	if len(orders) == 0 {
		return nil, nil
	}

	return orders[0], nil
}

// ListByUser retrieves a user's orders on a channel, newest first
func (r *OrderRepositoryImpl) ListByUser(ctx context.Context, userID uint, channel string) ([]*models.Order, error) {
	filter := models.OrderFilter{UserID: &userID, Channel: &channel}
	return r.ByFilter(ctx, filter, "created_at DESC", 0, 0)
}

// ByFilter retrieves orders based on filter criteria
func (r *OrderRepositoryImpl) ByFilter(ctx context.Context, filter models.OrderFilter, orderBy string, limit, offset int) ([]*models.Order, error) {
	db := r.getDB(ctx)

	var orders []*models.Order
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

	err := query.Find(&orders).Error
	if err != nil {
		return nil, err
	}

	return orders, nil
}

// Count returns the number of orders matching the filter
func (r *OrderRepositoryImpl) Count(ctx context.Context, filter models.OrderFilter) (int64, error) {
	db := r.getDB(ctx)

	var count int64
	query := r.applyFilter(db.Model(&models.Order{}), filter)

	err := query.Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}

// Exists checks if any order matching the filter exists
func (r *OrderRepositoryImpl) Exists(ctx context.Context, filter models.OrderFilter) (bool, error) {
	count, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

// applyFilter applies filter conditions to the GORM query
func (r *OrderRepositoryImpl) applyFilter(db *gorm.DB, filter models.OrderFilter) *gorm.DB {
	if filter.ID != nil {
		db = db.Where("id = ?", *filter.ID)
	}
	if filter.UUID != nil {
		db = db.Where("uuid = ?", *filter.UUID)
	}
	if filter.UserID != nil {
		db = db.Where("user_id = ?", *filter.UserID)
	}
	if filter.Status != nil {
		db = db.Where("status = ?", *filter.Status)
	}
	if filter.Channel != nil {
		db = db.Where("channel = ?", *filter.Channel)
	}
	if filter.CreatedAfter != nil {
		db = db.Where("created_at >= ?", *filter.CreatedAfter)
	}
	if filter.CreatedBefore != nil {
		db = db.Where("created_at < ?", *filter.CreatedBefore)
	}

	return db
}

// OrderItemRepositoryImpl implements OrderItemRepository interface
type OrderItemRepositoryImpl struct {
	*BaseRepository[models.OrderItem, models.OrderItemFilter]
}

// NewOrderItemRepository creates a new order item repository
func NewOrderItemRepository(db *gorm.DB) OrderItemRepository {
	return &OrderItemRepositoryImpl{
		BaseRepository: NewBaseRepository[models.OrderItem, models.OrderItemFilter](db),
	}
}

// ByOrderID retrieves the items of an order in insertion order
func (r *OrderItemRepositoryImpl) ByOrderID(ctx context.Context, orderID uint) ([]*models.OrderItem, error) {
	filter := models.OrderItemFilter{OrderID: &orderID}
	return r.ByFilter(ctx, filter, "id ASC", 0, 0)
}

// ByFilter retrieves order items based on filter criteria
func (r *OrderItemRepositoryImpl) ByFilter(ctx context.Context, filter models.OrderItemFilter, orderBy string, limit, offset int) ([]*models.OrderItem, error) {
	db := r.getDB(ctx)

	var items []*models.OrderItem
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

	err := query.Preload("Product").Find(&items).Error
	if err != nil {
		return nil, err
	}

	return items, nil
}

// Count returns the number of order items matching the filter
func (r *OrderItemRepositoryImpl) Count(ctx context.Context, filter models.OrderItemFilter) (int64, error) {
	db := r.getDB(ctx)

	var count int64
	query := r.applyFilter(db.Model(&models.OrderItem{}), filter)

	err := query.Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}

// Exists checks if any order item matching the filter exists
func (r *OrderItemRepositoryImpl) Exists(ctx context.Context, filter models.OrderItemFilter) (bool, error) {
	count, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

// applyFilter applies filter conditions to the GORM query
func (r *OrderItemRepositoryImpl) applyFilter(db *gorm.DB, filter models.OrderItemFilter) *gorm.DB {
	if filter.ID != nil {
		db = db.Where("id = ?", *filter.ID)
	}
	if filter.OrderID != nil {
		db = db.Where("order_id = ?", *filter.OrderID)
	}
	if filter.ProductID != nil {
		db = db.Where("product_id = ?", *filter.ProductID)
	}

	return db
}
