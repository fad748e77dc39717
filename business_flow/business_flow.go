// Package businessflow contains the core business logic and use cases for the storefront and wholesale portal
package businessflow

import (
	"time"

	"github.com/solution-fragrance/portal/app/dto"
	"github.com/solution-fragrance/portal/config"
	"github.com/solution-fragrance/portal/models"
)

const RequestIDKey = "X-Request-ID"

// ClientMetadata holds client-related information for audit logging
type ClientMetadata struct {
	IPAddress string `json:"ip_address"`
	UserAgent string `json:"user_agent"`
	RequestID string `json:"request_id,omitempty"`
}

// NewClientMetadata creates a new ClientMetadata instance
func NewClientMetadata(ipAddress, userAgent string) *ClientMetadata {
	return &ClientMetadata{
		IPAddress: ipAddress,
		UserAgent: userAgent,
	}
}

// SetRequestID sets the request ID
func (cm *ClientMetadata) SetRequestID(requestID string) {
	cm.RequestID = requestID
}

// redisKey prefixes a cache key with the configured namespace
func redisKey(cfg config.CacheConfig, key string) string {
	return cfg.RedisPrefix + key
}

// ToUserInfo converts a user and profile to the auth response shape
func ToUserInfo(user models.User, profile *models.Profile) dto.UserInfo {
	info := dto.UserInfo{
		ID:              user.ID,
		UUID:            user.UUID.String(),
		Email:           user.Email,
		FullName:        user.FullName,
		Role:            models.RoleRetail.String(),
		WholesaleStatus: models.WholesaleStatusNone.String(),
		IsActive:        user.IsActive,
		CreatedAt:       user.CreatedAt.Format(time.RFC3339),
	}
	if profile != nil {
		info.Role = profile.Role.String()
		info.WholesaleStatus = profile.WholesaleStatus.String()
		if profile.WholesalePlan != nil {
			plan := profile.WholesalePlan.String()
			info.WholesalePlan = &plan
		}
	}
	return info
}

// ToApplicationDTO converts a wholesale application model to its API shape
func ToApplicationDTO(app models.WholesaleApplication) dto.ApplicationDTO {
	out := dto.ApplicationDTO{
		ID:         app.ID,
		UUID:       app.UUID.String(),
		FullName:   app.FullName,
		Email:      app.Email,
		Phone:      app.Phone,
		Answers:    app.Answers,
		Status:     app.Status.String(),
		ReviewedAt: app.ReviewedAt,
		ReviewedBy: app.ReviewedBy,
		UserID:     app.UserID,
		CreatedAt:  app.CreatedAt,
	}
	if app.WholesalePlan != nil {
		plan := app.WholesalePlan.String()
		out.Plan = &plan
	}
	return out
}

// ToProfileResponse converts a profile model to its API shape
func ToProfileResponse(profile models.Profile) dto.ProfileResponse {
	out := dto.ProfileResponse{
		UserID:          profile.UserID,
		Email:           profile.Email,
		FullName:        profile.FullName,
		Role:            profile.Role.String(),
		WholesaleStatus: profile.WholesaleStatus.String(),
		UpdatedAt:       profile.UpdatedAt,
	}
	if profile.WholesalePlan != nil {
		plan := profile.WholesalePlan.String()
		label := profile.WholesalePlan.Label()
		out.WholesalePlan = &plan
		out.PlanLabel = &label
	}
	return out
}

// ToOrderDTO converts an order model and its items to the API shape
func ToOrderDTO(order models.Order) dto.OrderDTO {
	out := dto.OrderDTO{
		ID:        order.ID,
		UUID:      order.UUID.String(),
		Status:    order.Status.String(),
		Channel:   order.Channel,
		Currency:  order.Currency,
		Total:     order.Total.StringFixed(2),
		CreatedAt: order.CreatedAt,
	}
	if order.WholesalePlan != nil {
		plan := order.WholesalePlan.String()
		out.Plan = &plan
	}
	for _, item := range order.Items {
		line := dto.OrderItemDTO{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice.StringFixed(2),
			LineTotal: item.UnitPrice.Mul(decimalFromInt(item.Quantity)).StringFixed(2),
		}
		if item.Product != nil {
			line.ProductName = item.Product.Name
		}
		out.Items = append(out.Items, line)
	}
	return out
}
