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

// ProfileHandlerInterface defines the contract for profile handlers
type ProfileHandlerInterface interface {
	GetProfile(c fiber.Ctx) error
	UpdateProfile(c fiber.Ctx) error
}

// ProfileHandler handles the authenticated user's profile endpoints
type ProfileHandler struct {
	profileFlow businessflow.ProfileFlow
	validator   *validator.Validate
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(profileFlow businessflow.ProfileFlow) *ProfileHandler {
	return &ProfileHandler{
		profileFlow: profileFlow,
		validator:   newValidator(),
	}
}

// GetProfile returns the caller's profile
// @Summary Get Profile
// @Description Fetch the authenticated user's profile including wholesale status and plan
// @Tags Profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.ProfileResponse} "Profile"
// @Failure 401 {object} dto.APIResponse "Authentication required"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/profile [get]
func (h *ProfileHandler) GetProfile(c fiber.Ctx) error {
	if err := middleware.RequireAuth(c); err != nil {
		return err
	}
	userID, _ := middleware.GetUserIDFromContext(c)

	result, err := h.profileFlow.GetProfile(createRequestContext(c, "/api/v1/profile"), userID)
	if err != nil {
		log.Println("Profile fetch failed", err)
		return errorResponse(c, fiber.StatusInternalServerError, "Failed to fetch profile", "PROFILE_FETCH_FAILED", nil)
	}

	return successResponse(c, fiber.StatusOK, "Profile retrieved", result)
}

// UpdateProfile changes the caller-editable profile fields
// @Summary Update Profile
// @Description Update the authenticated user's profile. Role and wholesale fields are not writable here.
// @Tags Profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.UpdateProfileRequest true "Profile fields"
// @Success 200 {object} dto.APIResponse{data=dto.ProfileResponse} "Profile updated"
// @Failure 400 {object} dto.APIResponse "Validation error"
// @Failure 401 {object} dto.APIResponse "Authentication required"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/profile [put]
func (h *ProfileHandler) UpdateProfile(c fiber.Ctx) error {
	if err := middleware.RequireAuth(c); err != nil {
		return err
	}
	userID, _ := middleware.GetUserIDFromContext(c)

	var req dto.UpdateProfileRequest
	if err := c.Bind().JSON(&req); err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}

	// Validate request
	if err := h.validator.Struct(&req); err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", validationErrors(err))
	}

	result, err := h.profileFlow.UpdateProfile(createRequestContext(c, "/api/v1/profile"), userID, &req, clientMetadata(c))
	if err != nil {
		log.Println("Profile update failed", err)
		return errorResponse(c, fiber.StatusInternalServerError, "Failed to update profile", "PROFILE_UPDATE_FAILED", nil)
	}

	return successResponse(c, fiber.StatusOK, "Profile updated", result)
}
