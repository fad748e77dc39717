// Package models contains domain entities and business models for the storefront and wholesale portal
package models

import (
	"database/sql/driver"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderStatus represents the fulfillment state of an order. Orders are
// immutable once saved except for these transitions, which are handled
// outside the wholesale core.
type OrderStatus string

const (
	OrderStatusDraft     OrderStatus = "draft"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusFulfilled OrderStatus = "fulfilled"
	OrderStatusCancelled OrderStatus = "cancelled"
)

func (s OrderStatus) String() string {
	return string(s)
}

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusDraft, OrderStatusConfirmed, OrderStatusFulfilled, OrderStatusCancelled:
		return true
	default:
		return false
	}
}

// Scan implements the sql.Scanner interface for OrderStatus
func (s *OrderStatus) Scan(value any) error {
	if value == nil {
		*s = ""
		return nil
	}

	switch v := value.(type) {
	case string:
		*s = OrderStatus(v)
	case []byte:
		*s = OrderStatus(string(v))
	default:
		return fmt.Errorf("cannot scan %T into OrderStatus", value)
	}

	return nil
}

// Value implements the driver.Valuer interface for OrderStatus
func (s OrderStatus) Value() (driver.Value, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("invalid OrderStatus: %s", s)
	}
	return string(s), nil
}

// Sales channel constants
const (
	ChannelRetail    = "retail"
	ChannelWholesale = "wholesale"
)

// Order aggregates order items. Wholesale orders snapshot the customer
// name/email and plan at save time for admin reporting.
type Order struct {
	ID   uint      `gorm:"primaryKey" json:"id"`
	UUID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uk_orders_uuid" json:"uuid"`

	UserID uint  `gorm:"not null;index:idx_orders_user_id" json:"user_id"`
	User   *User `gorm:"foreignKey:UserID;references:ID" json:"-"`

	Status   OrderStatus     `gorm:"type:order_status_enum;not null;default:draft;index:idx_orders_status" json:"status"`
	Channel  string          `gorm:"size:20;not null;index:idx_orders_channel" json:"channel"`
	Currency string          `gorm:"size:3;not null" json:"currency"`
	Total    decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"total"`

	CustomerName  *string        `gorm:"size:255" json:"customer_name,omitempty"`
	CustomerEmail *string        `gorm:"size:255" json:"customer_email,omitempty"`
	WholesalePlan *WholesalePlan `gorm:"type:wholesale_plan_enum" json:"wholesale_plan,omitempty"`

	CreatedAt time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC');index:idx_orders_created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"updated_at"`

	Items []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"`
}

func (Order) TableName() string {
	return "orders"
}

// OrderItem is a single product line with the unit price resolved by the
// plan pricing rule at save time.
type OrderItem struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	OrderID uint `gorm:"not null;index:idx_order_items_order_id" json:"order_id"`

	ProductID uint     `gorm:"not null;index:idx_order_items_product_id" json:"product_id"`
	Product   *Product `gorm:"foreignKey:ProductID;references:ID" json:"product,omitempty"`

	Quantity  int             `gorm:"not null" json:"quantity"`
	UnitPrice decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"unit_price"`
}

func (OrderItem) TableName() string {
	return "order_items"
}

// OrderFilter represents filter criteria for order queries
type OrderFilter struct {
	ID            *uint
	UUID          *uuid.UUID
	UserID        *uint
	Status        *OrderStatus
	Channel       *string
	CreatedAfter  *time.Time
	CreatedBefore *time.Time
}

// OrderItemFilter represents filter criteria for order item queries
type OrderItemFilter struct {
	ID        *uint
	OrderID   *uint
	ProductID *uint
}
