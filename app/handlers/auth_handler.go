// Package handlers contains HTTP request handlers and presentation layer logic for the API endpoints
package handlers

import (
	"log"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/solution-fragrance/portal/app/dto"
	businessflow "github.com/solution-fragrance/portal/business_flow"
)

// AuthHandlerInterface defines the contract for authentication handlers
type AuthHandlerInterface interface {
	Register(c fiber.Ctx) error
	Login(c fiber.Ctx) error
	Refresh(c fiber.Ctx) error
	Activate(c fiber.Ctx) error
	Health(c fiber.Ctx) error
}

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	authFlow  businessflow.AuthFlow
	validator *validator.Validate
}

// NewAuthHandler creates a new authentication handler
func NewAuthHandler(authFlow businessflow.AuthFlow) *AuthHandler {
	return &AuthHandler{
		authFlow:  authFlow,
		validator: newValidator(),
	}
}

// Register handles the user registration process
// @Summary User Registration
// @Description Register a new account. A prior wholesale approval for the same email is linked automatically.
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "User registration data"
// @Success 200 {object} dto.APIResponse{data=dto.RegisterResponse} "Registration successful"
// @Failure 400 {object} dto.APIResponse "Validation error"
// @Failure 409 {object} dto.APIResponse "Email already exists"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/auth/register [post]
func (h *AuthHandler) Register(c fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.Bind().JSON(&req); err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}

	// Validate request
	if err := h.validator.Struct(&req); err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", validationErrors(err))
	}

	result, err := h.authFlow.Register(createRequestContext(c, "/api/v1/auth/register"), &req, clientMetadata(c))
	if err != nil {
		if businessflow.IsEmailAlreadyExists(err) {
			return errorResponse(c, fiber.StatusConflict, "Email already exists", "EMAIL_EXISTS", nil)
		}

		log.Println("Registration failed", err)
		return errorResponse(c, fiber.StatusInternalServerError, "Registration failed", "REGISTRATION_FAILED", nil)
	}

	return successResponse(c, fiber.StatusOK, result.Message, result)
}

// Login handles user authentication
// @Summary User Login
// @Description Authenticate with email and password
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Login credentials"
// @Success 200 {object} dto.APIResponse{data=dto.LoginResponse} "Login successful with tokens"
// @Failure 400 {object} dto.APIResponse "Validation error"
// @Failure 401 {object} dto.APIResponse "Authentication failed"
// @Failure 404 {object} dto.APIResponse "User not found"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/auth/login [post]
func (h *AuthHandler) Login(c fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.Bind().JSON(&req); err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}

	// Validate request
	if err := h.validator.Struct(&req); err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", validationErrors(err))
	}

	result, err := h.authFlow.Login(createRequestContext(c, "/api/v1/auth/login"), &req, clientMetadata(c))
	if err != nil {
		if businessflow.IsUserNotFound(err) {
			return errorResponse(c, fiber.StatusNotFound, "User not found", "USER_NOT_FOUND", nil)
		}
		if businessflow.IsAccountInactive(err) {
			return errorResponse(c, fiber.StatusUnauthorized, "Account is inactive", "ACCOUNT_INACTIVE", nil)
		}
		if businessflow.IsPasswordNotSet(err) {
			return errorResponse(c, fiber.StatusUnauthorized, "Password not set; activate your account first", "PASSWORD_NOT_SET", nil)
		}
		if businessflow.IsIncorrectPassword(err) {
			return errorResponse(c, fiber.StatusUnauthorized, "Incorrect password", "INCORRECT_PASSWORD", nil)
		}

		log.Println("Login failed", err)
		return errorResponse(c, fiber.StatusInternalServerError, "Login failed", "LOGIN_FAILED", nil)
	}

	return successResponse(c, fiber.StatusOK, "Login successful", result)
}

// Refresh exchanges a refresh token for a new token pair
// @Summary Refresh Tokens
// @Description Rotate a refresh token into a fresh access/refresh pair
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body dto.RefreshTokenRequest true "Refresh token"
// @Success 200 {object} dto.APIResponse{data=dto.LoginResponse} "Tokens refreshed"
// @Failure 400 {object} dto.APIResponse "Validation error"
// @Failure 401 {object} dto.APIResponse "Invalid or expired refresh token"
// @Router /api/v1/auth/refresh [post]
func (h *AuthHandler) Refresh(c fiber.Ctx) error {
	var req dto.RefreshTokenRequest
	if err := c.Bind().JSON(&req); err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}

	// Validate request
	if err := h.validator.Struct(&req); err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", validationErrors(err))
	}

	result, err := h.authFlow.Refresh(createRequestContext(c, "/api/v1/auth/refresh"), &req)
	if err != nil {
		return errorResponse(c, fiber.StatusUnauthorized, "Invalid or expired refresh token", "REFRESH_FAILED", nil)
	}

	return successResponse(c, fiber.StatusOK, "Tokens refreshed", result)
}

// Activate consumes a one-time activation token and sets the account password
// @Summary Activate Account
// @Description Set the password on an invited account using its activation token
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body dto.ActivateAccountRequest true "Activation data"
// @Success 200 {object} dto.APIResponse{data=dto.ActivateAccountResponse} "Account activated"
// @Failure 400 {object} dto.APIResponse "Invalid, used, or expired token"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/auth/activate [post]
func (h *AuthHandler) Activate(c fiber.Ctx) error {
	var req dto.ActivateAccountRequest
	if err := c.Bind().JSON(&req); err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}

	// Validate request
	if err := h.validator.Struct(&req); err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", validationErrors(err))
	}

	result, err := h.authFlow.Activate(createRequestContext(c, "/api/v1/auth/activate"), &req, clientMetadata(c))
	if err != nil {
		if businessflow.IsActivationTokenNotFound(err) {
			return errorResponse(c, fiber.StatusBadRequest, "Activation token not found", "ACTIVATION_TOKEN_NOT_FOUND", nil)
		}
		if businessflow.IsActivationTokenUsed(err) {
			return errorResponse(c, fiber.StatusBadRequest, "Activation token already used", "ACTIVATION_TOKEN_USED", nil)
		}
		if businessflow.IsActivationTokenExpired(err) {
			return errorResponse(c, fiber.StatusBadRequest, "Activation token expired", "ACTIVATION_TOKEN_EXPIRED", nil)
		}

		log.Println("Activation failed", err)
		return errorResponse(c, fiber.StatusInternalServerError, "Activation failed", "ACTIVATION_FAILED", nil)
	}

	return successResponse(c, fiber.StatusOK, result.Message, result)
}

// Health handles health check requests
// @Summary Health Check
// @Description Check the health status of the API
// @Tags Health
// @Accept json
// @Produce json
// @Success 200 {object} dto.APIResponse "Service is healthy"
// @Router /api/v1/health [get]
func (h *AuthHandler) Health(c fiber.Ctx) error {
	return successResponse(c, fiber.StatusOK, "Service is healthy", fiber.Map{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"service":   "portal-api",
	})
}
