// Package models contains domain entities and business models for the storefront and wholesale portal
package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is a catalog entry carrying both retail and wholesale prices.
type Product struct {
	ID   uint      `gorm:"primaryKey" json:"id"`
	UUID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uk_products_uuid" json:"uuid"`

	Name     string  `gorm:"size:255;not null" json:"name"`
	Slug     string  `gorm:"size:255;not null;uniqueIndex:uk_products_slug" json:"slug"`
	ImageURL *string `gorm:"size:1024" json:"image_url,omitempty"`

	PriceRetail    decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"price_retail"`
	PriceWholesale decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"price_wholesale"`

	IsActive  *bool `gorm:"default:true;index:idx_products_is_active" json:"is_active"`
	SortOrder int   `gorm:"default:0;index:idx_products_sort_order" json:"sort_order"`

	CreatedAt time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"created_at"`
	UpdatedAt time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"updated_at"`
}

func (Product) TableName() string {
	return "products"
}

// ProductFilter represents filter criteria for product queries
type ProductFilter struct {
	ID       *uint
	UUID     *uuid.UUID
	Slug     *string
	IsActive *bool
}
