package businessflow

import (
	"context"
	"strings"

	"github.com/solution-fragrance/portal/app/dto"
	"github.com/solution-fragrance/portal/models"
	"github.com/solution-fragrance/portal/repository"
	"github.com/solution-fragrance/portal/utils"
	"gorm.io/gorm"
)

// ProfileFlow handles reading and updating the caller's own profile
type ProfileFlow interface {
	GetProfile(ctx context.Context, userID uint) (*dto.ProfileResponse, error)
	UpdateProfile(ctx context.Context, userID uint, request *dto.UpdateProfileRequest, metadata *ClientMetadata) (*dto.ProfileResponse, error)
}

// ProfileFlowImpl implements the profile business flow
type ProfileFlowImpl struct {
	profileRepo repository.ProfileRepository
	userRepo    repository.UserRepository
	auditRepo   repository.AuditLogRepository
	db          *gorm.DB
}

// NewProfileFlow creates a new profile flow instance
func NewProfileFlow(
	profileRepo repository.ProfileRepository,
	userRepo repository.UserRepository,
	auditRepo repository.AuditLogRepository,
	db *gorm.DB,
) ProfileFlow {
	return &ProfileFlowImpl{
		profileRepo: profileRepo,
		userRepo:    userRepo,
		auditRepo:   auditRepo,
		db:          db,
	}
}

// GetProfile returns the caller's profile, creating a default retail profile
// for accounts that predate profile rows.
func (pf *ProfileFlowImpl) GetProfile(ctx context.Context, userID uint) (*dto.ProfileResponse, error) {
	profile, err := pf.ensureProfile(ctx, userID)
	if err != nil {
		return nil, NewBusinessError("PROFILE_FETCH_FAILED", "Failed to fetch profile", err)
	}

	response := ToProfileResponse(*profile)
	return &response, nil
}

// UpdateProfile changes the caller-editable profile fields. Role, wholesale
// status and plan are never writable through this path.
func (pf *ProfileFlowImpl) UpdateProfile(ctx context.Context, userID uint, request *dto.UpdateProfileRequest, metadata *ClientMetadata) (*dto.ProfileResponse, error) {
	profile, err := pf.ensureProfile(ctx, userID)
	if err != nil {
		return nil, NewBusinessError("PROFILE_UPDATE_FAILED", "Failed to update profile", err)
	}

	profile.FullName = strings.TrimSpace(request.FullName)

	err = repository.WithTransaction(ctx, pf.db, func(ctx context.Context) error {
		return pf.profileRepo.Upsert(ctx, profile)
	})
	if err != nil {
		return nil, NewBusinessError("PROFILE_UPDATE_FAILED", "Failed to update profile", err)
	}

	_ = pf.logProfile(ctx, userID, "Profile updated", metadata)

	response := ToProfileResponse(*profile)
	return &response, nil
}

func (pf *ProfileFlowImpl) ensureProfile(ctx context.Context, userID uint) (*models.Profile, error) {
	profile, err := pf.profileRepo.ByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile != nil {
		return profile, nil
	}

	user, err := pf.userRepo.ByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	profile = &models.Profile{
		UserID:          userID,
		Email:           user.Email,
		FullName:        user.FullName,
		Role:            models.RoleRetail,
		WholesaleStatus: models.WholesaleStatusNone,
	}
	err = repository.WithTransaction(ctx, pf.db, func(ctx context.Context) error {
		return pf.profileRepo.Upsert(ctx, profile)
	})
	if err != nil {
		return nil, err
	}
	return profile, nil
}

func (pf *ProfileFlowImpl) logProfile(ctx context.Context, userID uint, description string, metadata *ClientMetadata) error {
	ipAddress := "127.0.0.1"
	userAgent := ""
	if metadata != nil {
		ipAddress = metadata.IPAddress
		userAgent = metadata.UserAgent
	}

	audit := &models.AuditLog{
		UserID:      &userID,
		Action:      models.AuditActionProfileUpdated,
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

	return pf.auditRepo.Save(ctx, audit)
}
