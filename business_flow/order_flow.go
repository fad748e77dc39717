// Package businessflow contains the core business logic and use cases for the storefront and wholesale portal
package businessflow

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/solution-fragrance/portal/app/dto"
	"github.com/solution-fragrance/portal/config"
	"github.com/solution-fragrance/portal/models"
	"github.com/solution-fragrance/portal/repository"
	"github.com/solution-fragrance/portal/utils"
	"gorm.io/gorm"
)

// PriceForPlan resolves the unit price of a product for a wholesale plan.
// Plan A pays the wholesale price as-is; plan B pays the wholesale price
// with a further 10% off, rounded to the nearest whole unit. Pure: same
// inputs always yield the same output.
func PriceForPlan(product *models.Product, plan models.WholesalePlan) decimal.Decimal {
	if plan == models.WholesalePlanB {
		rate := decimal.NewFromFloat(1 - utils.PlanBDiscountRate)
		return product.PriceWholesale.Mul(rate).Round(0)
	}
	return product.PriceWholesale
}

func decimalFromInt(n int) decimal.Decimal {
	return decimal.NewFromInt(int64(n))
}

// OrderFlow handles the storefront catalog and wholesale order building
type OrderFlow interface {
	Catalog(ctx context.Context) (*dto.CatalogResponse, error)
	ListProducts(ctx context.Context, userID uint) (*dto.ProductListResponse, error)
	CreateOrder(ctx context.Context, userID uint, request *dto.CreateOrderRequest, metadata *ClientMetadata) (*dto.OrderDTO, error)
	ListOrders(ctx context.Context, userID uint) (*dto.ListOrdersResponse, error)
	ListOrderItems(ctx context.Context, userID uint, orderID uint) ([]dto.OrderItemDTO, error)
}

// OrderFlowImpl implements the order business flow
type OrderFlowImpl struct {
	productRepo   repository.ProductRepository
	orderRepo     repository.OrderRepository
	orderItemRepo repository.OrderItemRepository
	profileRepo   repository.ProfileRepository
	auditRepo     repository.AuditLogRepository
	rc            *redis.Client // nil when caching is disabled
	cacheConfig   *config.CacheConfig
	wholesaleCfg  *config.WholesaleConfig
	db            *gorm.DB
}

// NewOrderFlow creates a new order flow instance
func NewOrderFlow(
	productRepo repository.ProductRepository,
	orderRepo repository.OrderRepository,
	orderItemRepo repository.OrderItemRepository,
	profileRepo repository.ProfileRepository,
	auditRepo repository.AuditLogRepository,
	rc *redis.Client,
	cacheConfig *config.CacheConfig,
	wholesaleCfg *config.WholesaleConfig,
	db *gorm.DB,
) OrderFlow {
	return &OrderFlowImpl{
		productRepo:   productRepo,
		orderRepo:     orderRepo,
		orderItemRepo: orderItemRepo,
		profileRepo:   profileRepo,
		auditRepo:     auditRepo,
		rc:            rc,
		cacheConfig:   cacheConfig,
		wholesaleCfg:  wholesaleCfg,
		db:            db,
	}
}

// planFor resolves the caller's wholesale plan; admins without a plan quote
// at plan A.
func (of *OrderFlowImpl) planFor(ctx context.Context, userID uint) (models.WholesalePlan, error) {
	profile, err := of.profileRepo.ByUserID(ctx, userID)
	if err != nil {
		return "", err
	}
	if profile == nil || !profile.CanAccessWholesale() {
		return "", ErrWholesaleAccessDenied
	}
	if profile.WholesalePlan != nil {
		return *profile.WholesalePlan, nil
	}
	if profile.IsAdmin() {
		return models.WholesalePlanA, nil
	}
	return "", ErrPlanNotAssigned
}

// Catalog returns the public storefront catalog at retail prices
func (of *OrderFlowImpl) Catalog(ctx context.Context) (*dto.CatalogResponse, error) {
	products, err := of.activeProducts(ctx)
	if err != nil {
		return nil, NewBusinessError("PRODUCT_LIST_FAILED", "Failed to list products", err)
	}

	response := &dto.CatalogResponse{
		Currency: of.wholesaleCfg.DefaultCurrency,
		Products: make([]dto.ProductDTO, 0, len(products)),
	}
	for _, product := range products {
		item := dto.ProductDTO{
			ID:        product.ID,
			UUID:      product.UUID.String(),
			Name:      product.Name,
			Slug:      product.Slug,
			UnitPrice: product.PriceRetail.StringFixed(2),
			Currency:  of.wholesaleCfg.DefaultCurrency,
			SortOrder: product.SortOrder,
		}
		if product.ImageURL != nil {
			item.ImageURL = *product.ImageURL
		}
		response.Products = append(response.Products, item)
	}
	return response, nil
}

// ListProducts returns the active catalog with unit prices resolved for the
// caller's plan. The raw catalog is cached in redis; prices are computed per
// caller because they depend on the plan.
func (of *OrderFlowImpl) ListProducts(ctx context.Context, userID uint) (*dto.ProductListResponse, error) {
	plan, err := of.planFor(ctx, userID)
	if err != nil {
		return nil, NewBusinessError("WHOLESALE_ACCESS_DENIED", "Wholesale access denied", err)
	}

	products, err := of.activeProducts(ctx)
	if err != nil {
		return nil, NewBusinessError("PRODUCT_LIST_FAILED", "Failed to list products", err)
	}

	response := &dto.ProductListResponse{
		Plan:     plan.String(),
		Currency: of.wholesaleCfg.DefaultCurrency,
		Products: make([]dto.ProductDTO, 0, len(products)),
	}
	for _, product := range products {
		item := dto.ProductDTO{
			ID:        product.ID,
			UUID:      product.UUID.String(),
			Name:      product.Name,
			Slug:      product.Slug,
			UnitPrice: PriceForPlan(product, plan).StringFixed(2),
			Currency:  of.wholesaleCfg.DefaultCurrency,
			SortOrder: product.SortOrder,
		}
		if product.ImageURL != nil {
			item.ImageURL = *product.ImageURL
		}
		response.Products = append(response.Products, item)
	}
	return response, nil
}

// activeProducts reads the catalog from redis, falling back to the database
// and repopulating the cache on a miss.
func (of *OrderFlowImpl) activeProducts(ctx context.Context) ([]*models.Product, error) {
	var cacheKey string
	if of.rc != nil {
		cacheKey = redisKey(*of.cacheConfig, utils.ProductCacheKey)
		if bs, err := of.rc.Get(ctx, cacheKey).Bytes(); err == nil && len(bs) > 0 {
			var cached []*models.Product
			if err := json.Unmarshal(bs, &cached); err == nil {
				return cached, nil
			}
		}
	}

	products, err := of.productRepo.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	if of.rc != nil {
		if bs, err := json.Marshal(products); err == nil {
			_ = of.rc.Set(ctx, cacheKey, bs, of.cacheConfig.DefaultTTL).Err()
		}
	}
	return products, nil
}

// CreateOrder builds a draft wholesale order. Unit prices are resolved
// server-side from the caller's plan; client-provided prices are never
// accepted.
func (of *OrderFlowImpl) CreateOrder(ctx context.Context, userID uint, request *dto.CreateOrderRequest, metadata *ClientMetadata) (*dto.OrderDTO, error) {
	if len(request.Items) == 0 {
		return nil, NewBusinessError("ORDER_EMPTY", "Order must contain at least one item", ErrOrderEmpty)
	}

	plan, err := of.planFor(ctx, userID)
	if err != nil {
		return nil, NewBusinessError("WHOLESALE_ACCESS_DENIED", "Wholesale access denied", err)
	}

	profile, err := of.profileRepo.ByUserID(ctx, userID)
	if err != nil {
		return nil, NewBusinessError("ORDER_CREATE_FAILED", "Failed to create order", err)
	}

	var order *models.Order
	err = repository.WithTransaction(ctx, of.db, func(ctx context.Context) error {
		order = &models.Order{
			UUID:          uuid.New(),
			UserID:        userID,
			Status:        models.OrderStatusDraft,
			Channel:       models.ChannelWholesale,
			Currency:      of.wholesaleCfg.DefaultCurrency,
			Total:         decimal.Zero,
			CustomerName:  utils.ToPtr(profile.FullName),
			CustomerEmail: utils.ToPtr(profile.Email),
			WholesalePlan: &plan,
		}

		total := decimal.Zero
		items := make([]*models.OrderItem, 0, len(request.Items))
		for _, line := range request.Items {
			if line.Quantity < 1 {
				return ErrInvalidQuantity
			}
			product, err := of.productRepo.ByID(ctx, line.ProductID)
			if err != nil {
				return err
			}
			if product == nil {
				return ErrProductNotFound
			}
			if !utils.IsTrue(product.IsActive) {
				return ErrProductInactive
			}

			unitPrice := PriceForPlan(product, plan)
			total = total.Add(unitPrice.Mul(decimalFromInt(line.Quantity)))
			items = append(items, &models.OrderItem{
				ProductID: product.ID,
				Product:   product,
				Quantity:  line.Quantity,
				UnitPrice: unitPrice,
			})
		}

		order.Total = total
		if err := of.orderRepo.Save(ctx, order); err != nil {
			return err
		}
		for _, item := range items {
			item.OrderID = order.ID
		}
		if err := of.orderItemRepo.SaveBatch(ctx, items); err != nil {
			return err
		}
		for _, item := range items {
			order.Items = append(order.Items, *item)
		}
		return nil
	})
	if err != nil {
		switch {
		case IsProductNotFound(err):
			return nil, NewBusinessError("PRODUCT_NOT_FOUND", "Product not found", err)
		default:
			return nil, NewBusinessError("ORDER_CREATE_FAILED", "Failed to create order", err)
		}
	}

	description := fmt.Sprintf("Wholesale order %d created, total %s %s", order.ID, order.Total.StringFixed(2), order.Currency)
	_ = of.logOrder(ctx, userID, description, metadata)

	response := ToOrderDTO(*order)
	return &response, nil
}

// ListOrders returns the caller's wholesale orders, newest first
func (of *OrderFlowImpl) ListOrders(ctx context.Context, userID uint) (*dto.ListOrdersResponse, error) {
	if _, err := of.planFor(ctx, userID); err != nil {
		return nil, NewBusinessError("WHOLESALE_ACCESS_DENIED", "Wholesale access denied", err)
	}

	orders, err := of.orderRepo.ListByUser(ctx, userID, models.ChannelWholesale)
	if err != nil {
		return nil, NewBusinessError("ORDER_LIST_FAILED", "Failed to list orders", err)
	}

	response := &dto.ListOrdersResponse{
		Orders: make([]dto.OrderDTO, 0, len(orders)),
		Total:  int64(len(orders)),
	}
	for _, order := range orders {
		response.Orders = append(response.Orders, ToOrderDTO(*order))
	}
	return response, nil
}

// ListOrderItems returns the lines of one of the caller's orders
func (of *OrderFlowImpl) ListOrderItems(ctx context.Context, userID uint, orderID uint) ([]dto.OrderItemDTO, error) {
	order, err := of.orderRepo.ByID(ctx, orderID)
	if err != nil {
		return nil, NewBusinessError("ORDER_ITEMS_FAILED", "Failed to list order items", err)
	}
	if order == nil || order.UserID != userID {
		// Hide other users' orders behind not-found
		return nil, NewBusinessError("ORDER_NOT_FOUND", "Order not found", ErrOrderNotFound)
	}

	items, err := of.orderItemRepo.ByOrderID(ctx, orderID)
	if err != nil {
		return nil, NewBusinessError("ORDER_ITEMS_FAILED", "Failed to list order items", err)
	}

	out := make([]dto.OrderItemDTO, 0, len(items))
	for _, item := range items {
		line := dto.OrderItemDTO{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice.StringFixed(2),
			LineTotal: item.UnitPrice.Mul(decimalFromInt(item.Quantity)).StringFixed(2),
		}
		if item.Product != nil {
			line.ProductName = item.Product.Name
		}
		out = append(out, line)
	}
	return out, nil
}

func (of *OrderFlowImpl) logOrder(ctx context.Context, userID uint, description string, metadata *ClientMetadata) error {
	ipAddress := "127.0.0.1"
	userAgent := ""
	if metadata != nil {
		ipAddress = metadata.IPAddress
		userAgent = metadata.UserAgent
	}

	audit := &models.AuditLog{
		UserID:      &userID,
		Action:      models.AuditActionOrderCreated,
		Description: &description,
		Success:     utils.ToPtr(true),
		IPAddress:   &ipAddress,
		UserAgent:   &userAgent,
	}

	requestID := ctx.Value(RequestIDKey)
	if requestID != nil {
		if requestIDStr, ok := requestID.(string); ok {
			audit.RequestID = &requestIDStr
		}
	}

	return of.auditRepo.Save(ctx, audit)
}
