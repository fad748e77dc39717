package utils

import (
	"time"
)

// Token and session time constants
const (
	// ActivationTokenTTL is the time-to-live for one-time account
	// activation links sent to approved wholesalers (72 hours)
	ActivationTokenTTL = 72 * time.Hour
)

// CORS and security constants
const (
	// CORSMaxAge is the maximum age for CORS preflight requests (24 hours)
	CORSMaxAge = 86400
)

// Commerce constants
const (
	// DefaultCurrency is the currency wholesale orders are priced in
	DefaultCurrency = "ARS"

	// PlanBDiscountRate is the extra discount plan B applies on top of
	// the wholesale price
	PlanBDiscountRate = 0.10
)

// Cache keys
const (
	// ProductCacheKey is the redis key the catalog listing is cached under
	ProductCacheKey = "catalog:active_products"
)
