// Package handlers contains HTTP request handlers and presentation layer logic for the API endpoints
package handlers

import (
	"log"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/solution-fragrance/portal/app/dto"
	"github.com/solution-fragrance/portal/app/middleware"
	businessflow "github.com/solution-fragrance/portal/business_flow"
)

// OrderHandlerInterface defines the contract for wholesale catalog and order handlers
type OrderHandlerInterface interface {
	Catalog(c fiber.Ctx) error
	ListProducts(c fiber.Ctx) error
	CreateOrder(c fiber.Ctx) error
	ListOrders(c fiber.Ctx) error
	ListOrderItems(c fiber.Ctx) error
}

// OrderHandler handles the wholesale catalog and order endpoints
type OrderHandler struct {
	orderFlow businessflow.OrderFlow
	validator *validator.Validate
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orderFlow businessflow.OrderFlow) *OrderHandler {
	return &OrderHandler{
		orderFlow: orderFlow,
		validator: newValidator(),
	}
}

// Catalog returns the public storefront catalog at retail prices
// @Summary List Storefront Products
// @Description List active products at retail prices. Public.
// @Tags Catalog
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.CatalogResponse} "Products"
// @Router /api/v1/products [get]
func (h *OrderHandler) Catalog(c fiber.Ctx) error {
	result, err := h.orderFlow.Catalog(createRequestContext(c, "/api/v1/products"))
	if err != nil {
		log.Println("Failed to list catalog", err)
		return errorResponse(c, fiber.StatusInternalServerError, "Failed to list products", "PRODUCT_LIST_FAILED", nil)
	}

	return successResponse(c, fiber.StatusOK, "Products retrieved", result)
}

// ListProducts returns the active catalog priced for the caller's plan
// @Summary List Wholesale Products
// @Description List active products with unit prices resolved for the caller's wholesale plan
// @Tags Wholesale
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.ProductListResponse} "Products"
// @Failure 401 {object} dto.APIResponse "Authentication required"
// @Failure 403 {object} dto.APIResponse "Wholesale access required"
// @Router /api/v1/wholesale/products [get]
func (h *OrderHandler) ListProducts(c fiber.Ctx) error {
	if err := middleware.RequireAuth(c); err != nil {
		return err
	}
	userID, _ := middleware.GetUserIDFromContext(c)

	result, err := h.orderFlow.ListProducts(createRequestContext(c, "/api/v1/wholesale/products"), userID)
	if err != nil {
		return h.orderError(c, err, "Failed to list products", "PRODUCT_LIST_FAILED")
	}

	return successResponse(c, fiber.StatusOK, "Products retrieved", result)
}

// CreateOrder builds a draft wholesale order with server-resolved prices
// @Summary Create Wholesale Order
// @Description Create a draft order. Unit prices are resolved from the caller's plan; client prices are ignored.
// @Tags Wholesale
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateOrderRequest true "Order lines"
// @Success 200 {object} dto.APIResponse{data=dto.OrderDTO} "Order created"
// @Failure 400 {object} dto.APIResponse "Validation error or inactive product"
// @Failure 401 {object} dto.APIResponse "Authentication required"
// @Failure 403 {object} dto.APIResponse "Wholesale access required"
// @Failure 404 {object} dto.APIResponse "Product not found"
// @Router /api/v1/wholesale/orders [post]
func (h *OrderHandler) CreateOrder(c fiber.Ctx) error {
	if err := middleware.RequireAuth(c); err != nil {
		return err
	}
	userID, _ := middleware.GetUserIDFromContext(c)

	var req dto.CreateOrderRequest
	if err := c.Bind().JSON(&req); err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}

	// Validate request
	if err := h.validator.Struct(&req); err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", validationErrors(err))
	}

	result, err := h.orderFlow.CreateOrder(createRequestContext(c, "/api/v1/wholesale/orders"), userID, &req, clientMetadata(c))
	if err != nil {
		switch {
		case businessflow.IsProductNotFound(err):
			return errorResponse(c, fiber.StatusNotFound, "Product not found", "PRODUCT_NOT_FOUND", nil)
		case businessflow.IsProductInactive(err):
			return errorResponse(c, fiber.StatusBadRequest, "Product is not available", "PRODUCT_INACTIVE", nil)
		case businessflow.IsOrderEmpty(err), businessflow.IsInvalidQuantity(err):
			return errorResponse(c, fiber.StatusBadRequest, "Invalid order lines", "INVALID_ORDER", nil)
		}
		return h.orderError(c, err, "Failed to create order", "ORDER_CREATE_FAILED")
	}

	return successResponse(c, fiber.StatusOK, "Order created", result)
}

// ListOrders returns the caller's wholesale orders
// @Summary List Wholesale Orders
// @Description List the caller's wholesale orders, newest first
// @Tags Wholesale
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.ListOrdersResponse} "Orders"
// @Failure 401 {object} dto.APIResponse "Authentication required"
// @Failure 403 {object} dto.APIResponse "Wholesale access required"
// @Router /api/v1/wholesale/orders [get]
func (h *OrderHandler) ListOrders(c fiber.Ctx) error {
	if err := middleware.RequireAuth(c); err != nil {
		return err
	}
	userID, _ := middleware.GetUserIDFromContext(c)

	result, err := h.orderFlow.ListOrders(createRequestContext(c, "/api/v1/wholesale/orders"), userID)
	if err != nil {
		return h.orderError(c, err, "Failed to list orders", "ORDER_LIST_FAILED")
	}

	return successResponse(c, fiber.StatusOK, "Orders retrieved", result)
}

// ListOrderItems returns the lines of one of the caller's orders
// @Summary List Order Items
// @Description List the line items of one of the caller's wholesale orders
// @Tags Wholesale
// @Produce json
// @Security BearerAuth
// @Param id path int true "Order ID"
// @Success 200 {object} dto.APIResponse{data=[]dto.OrderItemDTO} "Order items"
// @Failure 401 {object} dto.APIResponse "Authentication required"
// @Failure 404 {object} dto.APIResponse "Order not found"
// @Router /api/v1/wholesale/orders/{id}/items [get]
func (h *OrderHandler) ListOrderItems(c fiber.Ctx) error {
	if err := middleware.RequireAuth(c); err != nil {
		return err
	}
	userID, _ := middleware.GetUserIDFromContext(c)

	orderID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "Invalid order id", "INVALID_REQUEST", nil)
	}

	result, err := h.orderFlow.ListOrderItems(createRequestContext(c, "/api/v1/wholesale/orders/:id/items"), userID, uint(orderID))
	if err != nil {
		if businessflow.IsOrderNotFound(err) {
			return errorResponse(c, fiber.StatusNotFound, "Order not found", "ORDER_NOT_FOUND", nil)
		}
		return h.orderError(c, err, "Failed to list order items", "ORDER_ITEMS_FAILED")
	}

	return successResponse(c, fiber.StatusOK, "Order items retrieved", result)
}

func (h *OrderHandler) orderError(c fiber.Ctx, err error, message, code string) error {
	switch {
	case businessflow.IsWholesaleAccessDenied(err):
		return errorResponse(c, fiber.StatusForbidden, "Wholesale access required", "WHOLESALE_ACCESS_DENIED", nil)
	case businessflow.IsPlanNotAssigned(err):
		return errorResponse(c, fiber.StatusForbidden, "No wholesale plan assigned", "PLAN_NOT_ASSIGNED", nil)
	}

	log.Println(message, err)
	return errorResponse(c, fiber.StatusInternalServerError, message, code, nil)
}
