// Package handlers contains HTTP request handlers and presentation layer logic for the API endpoints
package handlers

import (
	"log"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/solution-fragrance/portal/app/dto"
	"github.com/solution-fragrance/portal/app/middleware"
	businessflow "github.com/solution-fragrance/portal/business_flow"
	"github.com/solution-fragrance/portal/utils"
)

// ReviewAdminHandlerInterface defines the contract for the back-office review endpoints
type ReviewAdminHandlerInterface interface {
	Review(c fiber.Ctx) error
	Probe(c fiber.Ctx) error
	ListApplications(c fiber.Ctx) error
	GetApplication(c fiber.Ctx) error
	ExportApplications(c fiber.Ctx) error
	ListOrdersForUser(c fiber.Ctx) error
}

// ReviewAdminHandler handles the admin review workflow over wholesale applications
type ReviewAdminHandler struct {
	reviewFlow businessflow.ReviewFlow
	adminFlow  businessflow.AdminFlow
	validator  *validator.Validate
}

// NewReviewAdminHandler creates a new review admin handler
func NewReviewAdminHandler(reviewFlow businessflow.ReviewFlow, adminFlow businessflow.AdminFlow) *ReviewAdminHandler {
	return &ReviewAdminHandler{
		reviewFlow: reviewFlow,
		adminFlow:  adminFlow,
		validator:  newValidator(),
	}
}

// Review applies an approve or reject decision to a pending application
// @Summary Review Wholesale Application
// @Description Approve or reject a pending application. Approval requires a plan; the decision is applied at most once.
// @Tags Admin
// @Accept json
// @Produce json
// @Param request body dto.ReviewApplicationRequest true "Review decision"
// @Success 200 {object} dto.ReviewApplicationResponse "Decision applied"
// @Failure 400 {object} dto.APIResponse "Invalid application id, invalid decision, or missing plan"
// @Failure 401 {object} dto.APIResponse "Authentication required"
// @Failure 403 {object} dto.APIResponse "Admin access required"
// @Failure 404 {object} dto.APIResponse "Application not found"
// @Failure 409 {object} dto.APIResponse "Application already reviewed"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/admin/wholesale/applications/review [post]
func (h *ReviewAdminHandler) Review(c fiber.Ctx) error {
	var req dto.ReviewApplicationRequest
	if err := c.Bind().JSON(&req); err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}

	// Field validation happens inside the flow, after the admin check, so a
	// non-admin gets 403 even with a malformed decision
	reviewerID, _ := middleware.GetUserIDFromContext(c)

	result, err := h.reviewFlow.Review(createRequestContext(c, "/api/v1/admin/wholesale/applications/review"), reviewerID, &req, clientMetadata(c))
	if err != nil {
		switch {
		case businessflow.IsUnauthorized(err):
			return errorResponse(c, fiber.StatusUnauthorized, "Authentication required", "REVIEW_UNAUTHORIZED", nil)
		case businessflow.IsForbidden(err):
			return errorResponse(c, fiber.StatusForbidden, "Admin access required", "REVIEW_FORBIDDEN", nil)
		case businessflow.IsApplicationNotFound(err):
			return errorResponse(c, fiber.StatusNotFound, "Application not found", "APPLICATION_NOT_FOUND", nil)
		case businessflow.IsApplicationAlreadyReviewed(err):
			return errorResponse(c, fiber.StatusConflict, "Application already reviewed", "APPLICATION_ALREADY_REVIEWED", nil)
		case businessflow.IsInvalidApplicationID(err), businessflow.IsInvalidDecision(err), businessflow.IsPlanRequired(err), businessflow.IsInvalidPlan(err):
			return errorResponse(c, fiber.StatusBadRequest, "Invalid review request", "INVALID_REVIEW_REQUEST", nil)
		}

		log.Println("Review failed", err)
		return errorResponse(c, fiber.StatusInternalServerError, "Review failed", "REVIEW_FAILED", nil)
	}

	middleware.RecordReviewDecision(req.Decision)

	// The review response is the wire contract of this endpoint; it is
	// returned unwrapped so clients see ok/message/email_sent at the top
	// level.
	return c.Status(fiber.StatusOK).JSON(result)
}

// Probe reports endpoint reachability and whether the caller sent credentials
// @Summary Review Endpoint Probe
// @Description Health probe for the review endpoint. Reports whether an Authorization header was present without validating it.
// @Tags Admin
// @Produce json
// @Success 200 {object} dto.ReviewProbeResponse "Probe result"
// @Router /api/v1/admin/wholesale/applications/review [get]
func (h *ReviewAdminHandler) Probe(c fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(dto.ReviewProbeResponse{
		Ok:         true,
		HasAuth:    c.Get("Authorization") != "",
		ServerTime: utils.UTCNow().Format(time.RFC3339),
	})
}

// ListApplications returns a page of applications for the back office
// @Summary List Wholesale Applications
// @Description List applications, optionally filtered by status
// @Tags Admin
// @Produce json
// @Param status query string false "Filter by status" Enums(pending, approved, rejected)
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=dto.ListApplicationsResponse} "Applications"
// @Failure 401 {object} dto.APIResponse "Authentication required"
// @Failure 403 {object} dto.APIResponse "Admin access required"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/admin/wholesale/applications [get]
func (h *ReviewAdminHandler) ListApplications(c fiber.Ctx) error {
	var req dto.ListApplicationsRequest
	if err := c.Bind().Query(&req); err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "Invalid query parameters", "INVALID_REQUEST", err.Error())
	}

	if err := h.validator.Struct(&req); err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", validationErrors(err))
	}

	callerID, _ := middleware.GetUserIDFromContext(c)

	result, err := h.adminFlow.ListApplications(createRequestContext(c, "/api/v1/admin/wholesale/applications"), callerID, &req)
	if err != nil {
		return h.adminError(c, err, "Failed to list applications", "APPLICATION_LIST_FAILED")
	}

	return successResponse(c, fiber.StatusOK, "Applications retrieved", result)
}

// GetApplication returns one application by id
// @Summary Get Wholesale Application
// @Description Fetch a single application by id
// @Tags Admin
// @Produce json
// @Param id path int true "Application ID"
// @Success 200 {object} dto.APIResponse{data=dto.ApplicationDTO} "Application"
// @Failure 401 {object} dto.APIResponse "Authentication required"
// @Failure 403 {object} dto.APIResponse "Admin access required"
// @Failure 404 {object} dto.APIResponse "Application not found"
// @Router /api/v1/admin/wholesale/applications/{id} [get]
func (h *ReviewAdminHandler) GetApplication(c fiber.Ctx) error {
	applicationID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "Invalid application id", "INVALID_REQUEST", nil)
	}

	callerID, _ := middleware.GetUserIDFromContext(c)

	result, err := h.adminFlow.GetApplication(createRequestContext(c, "/api/v1/admin/wholesale/applications/:id"), callerID, uint(applicationID))
	if err != nil {
		if businessflow.IsApplicationNotFound(err) {
			return errorResponse(c, fiber.StatusNotFound, "Application not found", "APPLICATION_NOT_FOUND", nil)
		}
		return h.adminError(c, err, "Failed to fetch application", "APPLICATION_FETCH_FAILED")
	}

	return successResponse(c, fiber.StatusOK, "Application retrieved", result)
}

// ExportApplications streams an XLSX export of applications
// @Summary Export Wholesale Applications
// @Description Download applications as an XLSX workbook
// @Tags Admin
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param status query string false "Filter by status" Enums(pending, approved, rejected)
// @Success 200 {file} binary "XLSX workbook"
// @Failure 401 {object} dto.APIResponse "Authentication required"
// @Failure 403 {object} dto.APIResponse "Admin access required"
// @Router /api/v1/admin/wholesale/applications/export [get]
func (h *ReviewAdminHandler) ExportApplications(c fiber.Ctx) error {
	callerID, _ := middleware.GetUserIDFromContext(c)

	data, err := h.adminFlow.ExportApplications(createRequestContextWithTimeout(c, "/api/v1/admin/wholesale/applications/export", 2*time.Minute), callerID, c.Query("status"))
	if err != nil {
		return h.adminError(c, err, "Failed to export applications", "EXPORT_FAILED")
	}

	filename := "wholesale-applications-" + utils.UTCNow().Format("2006-01-02") + ".xlsx"
	c.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	return c.Status(fiber.StatusOK).Send(data)
}

// ListOrdersForUser returns a user's wholesale orders for support lookups
// @Summary List User Orders
// @Description List a user's wholesale orders for back-office support
// @Tags Admin
// @Produce json
// @Param user_id query int true "User ID"
// @Success 200 {object} dto.APIResponse{data=dto.ListOrdersResponse} "Orders"
// @Failure 401 {object} dto.APIResponse "Authentication required"
// @Failure 403 {object} dto.APIResponse "Admin access required"
// @Router /api/v1/admin/wholesale/orders [get]
func (h *ReviewAdminHandler) ListOrdersForUser(c fiber.Ctx) error {
	userID, err := strconv.ParseUint(c.Query("user_id"), 10, 32)
	if err != nil || userID == 0 {
		return errorResponse(c, fiber.StatusBadRequest, "Invalid user id", "INVALID_REQUEST", nil)
	}

	callerID, _ := middleware.GetUserIDFromContext(c)

	result, err := h.adminFlow.ListOrdersForUser(createRequestContext(c, "/api/v1/admin/wholesale/orders"), callerID, uint(userID))
	if err != nil {
		return h.adminError(c, err, "Failed to list orders", "ORDER_LIST_FAILED")
	}

	return successResponse(c, fiber.StatusOK, "Orders retrieved", result)
}

func (h *ReviewAdminHandler) adminError(c fiber.Ctx, err error, message, code string) error {
	switch {
	case businessflow.IsUnauthorized(err):
		return errorResponse(c, fiber.StatusUnauthorized, "Authentication required", "ADMIN_UNAUTHORIZED", nil)
	case businessflow.IsForbidden(err):
		return errorResponse(c, fiber.StatusForbidden, "Admin access required", "ADMIN_FORBIDDEN", nil)
	case businessflow.IsInvalidDecision(err):
		return errorResponse(c, fiber.StatusBadRequest, "Invalid status filter", "INVALID_STATUS", nil)
	}

	log.Println(message, err)
	return errorResponse(c, fiber.StatusInternalServerError, message, code, nil)
}
