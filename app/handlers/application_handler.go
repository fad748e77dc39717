// Package handlers contains HTTP request handlers and presentation layer logic for the API endpoints
package handlers

import (
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/solution-fragrance/portal/app/dto"
	"github.com/solution-fragrance/portal/app/middleware"
	businessflow "github.com/solution-fragrance/portal/business_flow"
)

// ApplicationHandlerInterface defines the contract for the public wholesale application endpoints
type ApplicationHandlerInterface interface {
	Submit(c fiber.Ctx) error
	GetCaptcha(c fiber.Ctx) error
}

// ApplicationHandler handles the public wholesale application form
type ApplicationHandler struct {
	applicationFlow businessflow.ApplicationFlow
	validator       *validator.Validate
}

// NewApplicationHandler creates a new application handler
func NewApplicationHandler(applicationFlow businessflow.ApplicationFlow) *ApplicationHandler {
	return &ApplicationHandler{
		applicationFlow: applicationFlow,
		validator:       newValidator(),
	}
}

// Submit handles a new wholesale application
// @Summary Submit Wholesale Application
// @Description Submit a reseller application for review; duplicates are allowed, every submission starts pending
// @Tags Wholesale
// @Accept json
// @Produce json
// @Param request body dto.SubmitApplicationRequest true "Application data"
// @Success 200 {object} dto.APIResponse{data=dto.SubmitApplicationResponse} "Application received"
// @Failure 400 {object} dto.APIResponse "Validation or captcha error"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/wholesale/applications [post]
func (h *ApplicationHandler) Submit(c fiber.Ctx) error {
	var req dto.SubmitApplicationRequest
	if err := c.Bind().JSON(&req); err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}

	// Validate request
	if err := h.validator.Struct(&req); err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", validationErrors(err))
	}

	result, err := h.applicationFlow.Submit(createRequestContext(c, "/api/v1/wholesale/applications"), &req, clientMetadata(c))
	if err != nil {
		if businessflow.IsCaptchaFailed(err) {
			return errorResponse(c, fiber.StatusBadRequest, "Captcha verification failed", "CAPTCHA_FAILED", nil)
		}

		log.Println("Application submission failed", err)
		return errorResponse(c, fiber.StatusInternalServerError, "Application submission failed", "APPLICATION_SUBMIT_FAILED", nil)
	}

	middleware.RecordApplicationSubmitted()

	return successResponse(c, fiber.StatusOK, "Application received", result)
}

// GetCaptcha returns a new captcha challenge for the application form
// @Summary Get Application Captcha
// @Description Generate a captcha challenge to attach to an application submission
// @Tags Wholesale
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.CaptchaResponse} "Captcha generated"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/wholesale/captcha [get]
func (h *ApplicationHandler) GetCaptcha(c fiber.Ctx) error {
	result, err := h.applicationFlow.GenerateCaptcha(createRequestContext(c, "/api/v1/wholesale/captcha"))
	if err != nil {
		log.Println("Captcha generation failed", err)
		return errorResponse(c, fiber.StatusInternalServerError, "Captcha generation failed", "CAPTCHA_GENERATION_FAILED", nil)
	}

	return successResponse(c, fiber.StatusOK, "Captcha generated", result)
}
