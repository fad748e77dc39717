package dto

import "time"

// ProductDTO represents a catalog product with plan-resolved pricing
type ProductDTO struct {
	ID        uint   `json:"id"`
	UUID      string `json:"uuid"`
	Name      string `json:"name"`
	Slug      string `json:"slug"`
	ImageURL  string `json:"image_url,omitempty"`
	UnitPrice string `json:"unit_price"`
	Currency  string `json:"currency"`
	SortOrder int    `json:"sort_order"`
}

// ProductListResponse represents the wholesale catalog for the caller's plan
type ProductListResponse struct {
	Products []ProductDTO `json:"products"`
	Plan     string       `json:"plan"`
	Currency string       `json:"currency"`
}

// CatalogResponse represents the public storefront catalog at retail prices
type CatalogResponse struct {
	Products []ProductDTO `json:"products"`
	Currency string       `json:"currency"`
}

// OrderItemRequest represents one line of a wholesale order submission.
// Prices are never accepted from the client; they are resolved server-side
// from the caller's plan.
type OrderItemRequest struct {
	ProductID uint `json:"product_id" validate:"required"`
	Quantity  int  `json:"quantity" validate:"required,min=1,max=10000"`
}

// CreateOrderRequest represents a wholesale order submission
type CreateOrderRequest struct {
	Items []OrderItemRequest `json:"items" validate:"required,min=1,max=100,dive"`
}

// OrderItemDTO represents one order line in API responses
type OrderItemDTO struct {
	ProductID   uint   `json:"product_id"`
	ProductName string `json:"product_name"`
	Quantity    int    `json:"quantity"`
	UnitPrice   string `json:"unit_price"`
	LineTotal   string `json:"line_total"`
}

// OrderDTO represents an order in API responses
type OrderDTO struct {
	ID        uint           `json:"id"`
	UUID      string         `json:"uuid"`
	Status    string         `json:"status"`
	Channel   string         `json:"channel"`
	Currency  string         `json:"currency"`
	Total     string         `json:"total"`
	Plan      *string        `json:"plan,omitempty"`
	Items     []OrderItemDTO `json:"items,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

// ListOrdersResponse represents a page of the caller's orders
type ListOrdersResponse struct {
	Orders []OrderDTO `json:"orders"`
	Total  int64      `json:"total"`
}
