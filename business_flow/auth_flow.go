// Package businessflow contains the core business logic and use cases for the storefront and wholesale portal
package businessflow

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/solution-fragrance/portal/app/dto"
	"github.com/solution-fragrance/portal/app/services"
	"github.com/solution-fragrance/portal/config"
	"github.com/solution-fragrance/portal/models"
	"github.com/solution-fragrance/portal/repository"
	"github.com/solution-fragrance/portal/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthFlow handles identity operations for the storefront and portal
type AuthFlow interface {
	Register(ctx context.Context, request *dto.RegisterRequest, metadata *ClientMetadata) (*dto.RegisterResponse, error)
	Login(ctx context.Context, request *dto.LoginRequest, metadata *ClientMetadata) (*dto.LoginResponse, error)
	Refresh(ctx context.Context, request *dto.RefreshTokenRequest) (*dto.LoginResponse, error)
	Activate(ctx context.Context, request *dto.ActivateAccountRequest, metadata *ClientMetadata) (*dto.ActivateAccountResponse, error)
}

// AuthFlowImpl implements the auth business flow
type AuthFlowImpl struct {
	userRepo        repository.UserRepository
	profileRepo     repository.ProfileRepository
	applicationRepo repository.WholesaleApplicationRepository
	activationRepo  repository.ActivationTokenRepository
	auditRepo       repository.AuditLogRepository
	tokenService    services.TokenService
	securityCfg     *config.SecurityConfig
	jwtCfg          *config.JWTConfig
	db              *gorm.DB
}

// NewAuthFlow creates a new auth flow instance
func NewAuthFlow(
	userRepo repository.UserRepository,
	profileRepo repository.ProfileRepository,
	applicationRepo repository.WholesaleApplicationRepository,
	activationRepo repository.ActivationTokenRepository,
	auditRepo repository.AuditLogRepository,
	tokenService services.TokenService,
	securityCfg *config.SecurityConfig,
	jwtCfg *config.JWTConfig,
	db *gorm.DB,
) AuthFlow {
	return &AuthFlowImpl{
		userRepo:        userRepo,
		profileRepo:     profileRepo,
		applicationRepo: applicationRepo,
		activationRepo:  activationRepo,
		auditRepo:       auditRepo,
		tokenService:    tokenService,
		securityCfg:     securityCfg,
		jwtCfg:          jwtCfg,
		db:              db,
	}
}

// Register creates a storefront account. New accounts start with a retail
// profile unless an approved, unlinked wholesale application exists for the
// email, in which case the wholesale grant is applied immediately.
func (af *AuthFlowImpl) Register(ctx context.Context, request *dto.RegisterRequest, metadata *ClientMetadata) (*dto.RegisterResponse, error) {
	email := utils.NormalizeEmail(request.Email)

	var user *models.User
	var profile *models.Profile

	err := repository.WithTransaction(ctx, af.db, func(ctx context.Context) error {
		existing, err := af.userRepo.ByEmail(ctx, email)
		if err != nil {
			return err
		}
		if existing != nil {
			return ErrEmailAlreadyExists
		}

		passwordHash, err := bcrypt.GenerateFromPassword([]byte(request.Password), af.securityCfg.BcryptCost)
		if err != nil {
			return err
		}

		user = &models.User{
			UUID:         uuid.New(),
			Email:        email,
			FullName:     request.FullName,
			PasswordHash: utils.ToPtr(string(passwordHash)),
			IsActive:     utils.ToPtr(true),
		}
		if err := af.userRepo.Save(ctx, user); err != nil {
			return err
		}

		profile, err = af.grantProfile(ctx, user)
		return err
	})
	if err != nil {
		errMsg := err.Error()
		_ = af.logAuth(ctx, nil, models.AuditActionUserRegistered, "Registration failed for "+utils.ObfuscateEmail(email), false, &errMsg, metadata)

		if IsEmailAlreadyExists(err) {
			return nil, NewBusinessError("EMAIL_ALREADY_EXISTS", "Email already exists", err)
		}
		return nil, NewBusinessError("REGISTRATION_FAILED", "Registration failed", err)
	}

	_ = af.logAuth(ctx, &user.ID, models.AuditActionUserRegistered, fmt.Sprintf("User registered: %d", user.ID), true, nil, metadata)

	accessToken, refreshToken, err := af.tokenService.GenerateTokens(user.ID)
	if err != nil {
		return nil, NewBusinessError("TOKEN_GENERATION_FAILED", "Failed to generate tokens", err)
	}

	return &dto.RegisterResponse{
		Message:      "Registration successful",
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    int(af.jwtCfg.AccessTokenTTL.Seconds()),
		User:         ToUserInfo(*user, profile),
	}, nil
}

// Login authenticates a user with email and password
func (af *AuthFlowImpl) Login(ctx context.Context, request *dto.LoginRequest, metadata *ClientMetadata) (*dto.LoginResponse, error) {
	email := utils.NormalizeEmail(request.Email)

	var user *models.User
	var profile *models.Profile

	err := repository.WithTransaction(ctx, af.db, func(ctx context.Context) error {
		var err error
		user, err = af.userRepo.ByEmail(ctx, email)
		if err != nil {
			return err
		}
		if user == nil {
			return ErrUserNotFound
		}
		if !utils.IsTrue(user.IsActive) {
			return ErrAccountInactive
		}
		if !user.HasPassword() {
			return ErrPasswordNotSet
		}
		if err := bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(request.Password)); err != nil {
			return ErrIncorrectPassword
		}

		if err := af.userRepo.UpdateLastLogin(ctx, user.ID, utils.UTCNow()); err != nil {
			return err
		}

		// Pick up a wholesale approval granted since the last sign-in
		profile, err = af.grantProfile(ctx, user)
		return err
	})
	if err != nil {
		errMsg := fmt.Sprintf("Login failed: %s", err.Error())
		var userID *uint
		if user != nil {
			userID = &user.ID
		}
		_ = af.logAuth(ctx, userID, models.AuditActionLoginFailed, errMsg, false, &errMsg, metadata)

		return nil, NewBusinessError("LOGIN_FAILED", "Login failed", err)
	}

	_ = af.logAuth(ctx, &user.ID, models.AuditActionLoginSuccess, fmt.Sprintf("User logged in: %d", user.ID), true, nil, metadata)

	accessToken, refreshToken, err := af.tokenService.GenerateTokens(user.ID)
	if err != nil {
		return nil, NewBusinessError("TOKEN_GENERATION_FAILED", "Failed to generate tokens", err)
	}

	now := utils.UTCNow()
	return &dto.LoginResponse{
		Message:      "Login successful",
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    int(af.jwtCfg.AccessTokenTTL.Seconds()),
		ExpiresAt:    now.Add(af.jwtCfg.AccessTokenTTL),
		User:         ToUserInfo(*user, profile),
	}, nil
}

// Refresh exchanges a refresh token for a new token pair
func (af *AuthFlowImpl) Refresh(ctx context.Context, request *dto.RefreshTokenRequest) (*dto.LoginResponse, error) {
	accessToken, refreshToken, err := af.tokenService.RefreshToken(request.RefreshToken)
	if err != nil {
		return nil, NewBusinessError("TOKEN_REFRESH_FAILED", "Token refresh failed", ErrUnauthorized)
	}

	claims, err := af.tokenService.ValidateToken(accessToken)
	if err != nil {
		return nil, NewBusinessError("TOKEN_REFRESH_FAILED", "Token refresh failed", ErrUnauthorized)
	}

	user, err := af.userRepo.ByID(ctx, claims.UserID)
	if err != nil || user == nil {
		return nil, NewBusinessError("TOKEN_REFRESH_FAILED", "Token refresh failed", ErrUserNotFound)
	}
	profile, err := af.profileRepo.ByUserID(ctx, user.ID)
	if err != nil {
		return nil, NewBusinessError("TOKEN_REFRESH_FAILED", "Token refresh failed", err)
	}

	now := utils.UTCNow()
	return &dto.LoginResponse{
		Message:      "Token refreshed",
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    int(af.jwtCfg.AccessTokenTTL.Seconds()),
		ExpiresAt:    now.Add(af.jwtCfg.AccessTokenTTL),
		User:         ToUserInfo(*user, profile),
	}, nil
}

// Activate consumes a one-time activation token from an invite email, sets
// the account password, and signs the user in.
func (af *AuthFlowImpl) Activate(ctx context.Context, request *dto.ActivateAccountRequest, metadata *ClientMetadata) (*dto.ActivateAccountResponse, error) {
	var user *models.User
	var profile *models.Profile

	err := repository.WithTransaction(ctx, af.db, func(ctx context.Context) error {
		token, err := af.activationRepo.ByToken(ctx, request.Token)
		if err != nil {
			return err
		}
		if token == nil {
			return ErrActivationTokenNotFound
		}
		if token.Status == models.ActivationStatusUsed {
			return ErrActivationTokenUsed
		}
		if !token.IsUsable() {
			return ErrActivationTokenExpired
		}

		user, err = af.userRepo.ByID(ctx, token.UserID)
		if err != nil {
			return err
		}
		if user == nil {
			return ErrUserNotFound
		}

		passwordHash, err := bcrypt.GenerateFromPassword([]byte(request.Password), af.securityCfg.BcryptCost)
		if err != nil {
			return err
		}
		if err := af.userRepo.UpdatePassword(ctx, user.ID, string(passwordHash)); err != nil {
			return err
		}
		if err := af.userRepo.Activate(ctx, user.ID); err != nil {
			return err
		}
		if err := af.activationRepo.MarkUsed(ctx, token.ID, utils.UTCNow()); err != nil {
			return err
		}

		user.IsActive = utils.ToPtr(true)
		profile, err = af.profileRepo.ByUserID(ctx, user.ID)
		return err
	})
	if err != nil {
		errMsg := err.Error()
		_ = af.logAuth(ctx, nil, models.AuditActionAccountActivated, "Account activation failed", false, &errMsg, metadata)

		switch {
		case IsActivationTokenNotFound(err):
			return nil, NewBusinessError("ACTIVATION_TOKEN_NOT_FOUND", "Activation token not found", err)
		case IsActivationTokenUsed(err):
			return nil, NewBusinessError("ACTIVATION_TOKEN_USED", "Activation token already used", err)
		case IsActivationTokenExpired(err):
			return nil, NewBusinessError("ACTIVATION_TOKEN_EXPIRED", "Activation token has expired", err)
		default:
			return nil, NewBusinessError("ACTIVATION_FAILED", "Account activation failed", err)
		}
	}

	_ = af.logAuth(ctx, &user.ID, models.AuditActionAccountActivated, fmt.Sprintf("Account activated: %d", user.ID), true, nil, metadata)

	accessToken, refreshToken, err := af.tokenService.GenerateTokens(user.ID)
	if err != nil {
		return nil, NewBusinessError("TOKEN_GENERATION_FAILED", "Failed to generate tokens", err)
	}

	return &dto.ActivateAccountResponse{
		Message:      "Account activated",
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    int(af.jwtCfg.AccessTokenTTL.Seconds()),
		User:         ToUserInfo(*user, profile),
	}, nil
}

// grantProfile ensures the user has a profile. A retail profile is created
// by default; an approved, unlinked wholesale application for the same email
// upgrades the profile and links the application.
func (af *AuthFlowImpl) grantProfile(ctx context.Context, user *models.User) (*models.Profile, error) {
	profile, err := af.profileRepo.ByUserID(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	application, err := af.applicationRepo.LatestApprovedUnlinkedByEmail(ctx, user.Email)
	if err != nil {
		return nil, err
	}

	if application != nil && application.WholesalePlan != nil {
		plan := *application.WholesalePlan
		upgraded := &models.Profile{
			UserID:          user.ID,
			Email:           user.Email,
			FullName:        user.FullName,
			Role:            models.RoleWholesale,
			WholesaleStatus: models.WholesaleStatusApproved,
			WholesalePlan:   &plan,
			UpdatedAt:       utils.UTCNow(),
		}
		// Never downgrade an admin
		if profile != nil && profile.IsAdmin() {
			upgraded.Role = profile.Role
		}
		if err := af.profileRepo.Upsert(ctx, upgraded); err != nil {
			return nil, err
		}
		if err := af.applicationRepo.LinkUser(ctx, application.ID, user.ID); err != nil {
			return nil, err
		}
		return upgraded, nil
	}

	if profile != nil {
		return profile, nil
	}

	profile = &models.Profile{
		UserID:          user.ID,
		Email:           user.Email,
		FullName:        user.FullName,
		Role:            models.RoleRetail,
		WholesaleStatus: models.WholesaleStatusNone,
		UpdatedAt:       utils.UTCNow(),
	}
	if err := af.profileRepo.Upsert(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

func (af *AuthFlowImpl) logAuth(ctx context.Context, userID *uint, action string, description string, success bool, errMsg *string, metadata *ClientMetadata) error {
	ipAddress := "127.0.0.1"
	userAgent := ""
	if metadata != nil {
		ipAddress = metadata.IPAddress
		userAgent = metadata.UserAgent
	}

	audit := &models.AuditLog{
		UserID:       userID,
		Action:       action,
		Description:  &description,
		Success:      utils.ToPtr(success),
		IPAddress:    &ipAddress,
		UserAgent:    &userAgent,
		ErrorMessage: errMsg,
	}

	requestID := ctx.Value(RequestIDKey)
	if requestID != nil {
		if requestIDStr, ok := requestID.(string); ok {
			audit.RequestID = &requestIDStr
		}
	}

	return af.auditRepo.Save(ctx, audit)
}
