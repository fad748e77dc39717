// Package businessflow contains the core business logic and use cases for the storefront and wholesale portal
package businessflow

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"github.com/google/uuid"
	"github.com/solution-fragrance/portal/app/dto"
	"github.com/solution-fragrance/portal/app/services"
	"github.com/solution-fragrance/portal/config"
	"github.com/solution-fragrance/portal/models"
	"github.com/solution-fragrance/portal/repository"
	"github.com/solution-fragrance/portal/utils"
	"gorm.io/gorm"
)

// ProvisioningMode selects how an approved applicant gets portal access.
// Dispatched once at the top of the approval branch so the two paths never
// interleave.
type ProvisioningMode int

const (
	// ModeSelfService skips account creation: the email directs the
	// applicant to register or sign in through the public flow.
	ModeSelfService ProvisioningMode = iota
	// ModeInvite creates or reuses an account and mails a one-time
	// activation link for setting a password.
	ModeInvite
)

// ReviewFlow decides pending wholesale applications
type ReviewFlow interface {
	Review(ctx context.Context, reviewerID uint, request *dto.ReviewApplicationRequest, metadata *ClientMetadata) (*dto.ReviewApplicationResponse, error)
}

// ReviewFlowImpl implements the review business flow
type ReviewFlowImpl struct {
	applicationRepo repository.WholesaleApplicationRepository
	profileRepo     repository.ProfileRepository
	adminRepo       repository.AdminRepository
	userRepo        repository.UserRepository
	activationRepo  repository.ActivationTokenRepository
	auditRepo       repository.AuditLogRepository
	notificationSvc services.NotificationService
	wholesaleCfg    *config.WholesaleConfig
	db              *gorm.DB
}

// NewReviewFlow creates a new review flow instance
func NewReviewFlow(
	applicationRepo repository.WholesaleApplicationRepository,
	profileRepo repository.ProfileRepository,
	adminRepo repository.AdminRepository,
	userRepo repository.UserRepository,
	activationRepo repository.ActivationTokenRepository,
	auditRepo repository.AuditLogRepository,
	notificationSvc services.NotificationService,
	wholesaleCfg *config.WholesaleConfig,
	db *gorm.DB,
) ReviewFlow {
	return &ReviewFlowImpl{
		applicationRepo: applicationRepo,
		profileRepo:     profileRepo,
		adminRepo:       adminRepo,
		userRepo:        userRepo,
		activationRepo:  activationRepo,
		auditRepo:       auditRepo,
		notificationSvc: notificationSvc,
		wholesaleCfg:    wholesaleCfg,
		db:              db,
	}
}

// reviewOutcome carries what the committed transaction decided, so the email
// step can run strictly after the state transition is durable.
type reviewOutcome struct {
	application    *models.WholesaleApplication
	approved       bool
	plan           *models.WholesalePlan
	mode           ProvisioningMode
	activationLink string
}

// Review applies an admin decision to a pending application. The caller's
// admin access is established before the request body is inspected, so a
// non-admin always gets the forbidden error no matter what they sent. The
// state transition is a conditional update (status must still be pending)
// inside a transaction; the outcome email is sent only after the transaction
// commits, and a delivery failure never reverses the decision.
func (rf *ReviewFlowImpl) Review(ctx context.Context, reviewerID uint, request *dto.ReviewApplicationRequest, metadata *ClientMetadata) (*dto.ReviewApplicationResponse, error) {
	if reviewerID == 0 {
		return nil, NewBusinessError("REVIEW_UNAUTHORIZED", "Authentication required", ErrUnauthorized)
	}

	authorized, err := rf.isAuthorized(ctx, reviewerID)
	if err != nil {
		return nil, NewBusinessError("REVIEW_AUTHORIZATION_CHECK_FAILED", "Authorization check failed", err)
	}
	if !authorized {
		_ = rf.logReview(ctx, reviewerID, request.ApplicationID, models.AuditActionApplicationRejected, "Review denied: caller is not an admin", false, utils.ToPtr(ErrForbidden.Error()), metadata)
		return nil, NewBusinessError("REVIEW_FORBIDDEN", "Admin access required", ErrForbidden)
	}

	if _, err := uuid.Parse(request.ApplicationID); err != nil {
		return nil, NewBusinessError("REVIEW_VALIDATION_FAILED", "Review validation failed", ErrInvalidApplicationID)
	}
	approved, plan, err := parseDecision(request)
	if err != nil {
		return nil, NewBusinessError("REVIEW_VALIDATION_FAILED", "Review validation failed", err)
	}

	mode := ModeSelfService
	if rf.wholesaleCfg.InvitesEnabled {
		mode = ModeInvite
	}

	outcome, err := rf.withReviewTransaction(ctx, func(ctx context.Context) (*reviewOutcome, error) {
		application, err := rf.applicationRepo.ByUUID(ctx, request.ApplicationID)
		if err != nil {
			return nil, err
		}
		if application == nil {
			return nil, ErrApplicationNotFound
		}
		if !application.IsPending() {
			return nil, ErrApplicationAlreadyReviewed
		}

		status := models.ApplicationStatusRejected
		if approved {
			status = models.ApplicationStatusApproved
		}

		reviewedAt := utils.UTCNow()
		transitioned, err := rf.applicationRepo.TransitionFromPending(ctx, application.ID, status, reviewerID, plan, reviewedAt)
		if err != nil {
			return nil, err
		}
		if !transitioned {
			// A concurrent reviewer won the conditional update
			return nil, ErrApplicationAlreadyReviewed
		}

		application.Status = status
		application.ReviewedAt = &reviewedAt
		application.ReviewedBy = &reviewerID
		application.WholesalePlan = plan

		out := &reviewOutcome{
			application: application,
			approved:    approved,
			plan:        plan,
			mode:        mode,
		}

		if approved {
			switch mode {
			case ModeInvite:
				link, err := rf.provisionInvite(ctx, application, *plan)
				if err != nil {
					return nil, err
				}
				out.activationLink = link
			case ModeSelfService:
				if err := rf.linkExistingUser(ctx, application, *plan); err != nil {
					return nil, err
				}
			}
		}

		return out, nil
	})

	if err != nil {
		action := models.AuditActionApplicationRejected
		if approved {
			action = models.AuditActionApplicationApproved
		}
		errMsg := err.Error()
		_ = rf.logReview(ctx, reviewerID, request.ApplicationID, action, "Review failed", false, &errMsg, metadata)

		switch {
		case IsApplicationNotFound(err):
			return nil, NewBusinessError("APPLICATION_NOT_FOUND", "Application not found", err)
		case IsApplicationAlreadyReviewed(err):
			return nil, NewBusinessError("APPLICATION_ALREADY_REVIEWED", "Application already reviewed", err)
		default:
			return nil, NewBusinessError("REVIEW_FAILED", "Review failed", err)
		}
	}

	// The decision is committed; email from here on is best effort
	response := rf.notifyApplicant(ctx, outcome)

	action := models.AuditActionApplicationRejected
	description := fmt.Sprintf("Application %s rejected", outcome.application.UUID)
	if outcome.approved {
		action = models.AuditActionApplicationApproved
		description = fmt.Sprintf("Application %s approved with plan %s", outcome.application.UUID, outcome.plan.String())
	}
	_ = rf.logReview(ctx, reviewerID, outcome.application.UUID.String(), action, description, true, nil, metadata)

	return response, nil
}

// parseDecision validates the decision/plan pair. Plan is required and
// validated only for approvals; a plan sent with a rejection is ignored.
func parseDecision(request *dto.ReviewApplicationRequest) (bool, *models.WholesalePlan, error) {
	switch request.Decision {
	case "approve":
		if request.Plan == nil {
			return false, nil, ErrPlanRequired
		}
		plan := models.WholesalePlan(*request.Plan)
		if !plan.Valid() {
			return false, nil, ErrInvalidPlan
		}
		return true, &plan, nil
	case "reject":
		return false, nil, nil
	default:
		return false, nil, ErrInvalidDecision
	}
}

// isAuthorized reports whether the caller may review applications: either
// their profile role is admin, or they appear in the admins allow-list.
// Call sites never need to know there are two sources.
func (rf *ReviewFlowImpl) isAuthorized(ctx context.Context, userID uint) (bool, error) {
	profile, err := rf.profileRepo.ByUserID(ctx, userID)
	if err != nil {
		return false, err
	}
	if profile != nil && profile.IsAdmin() {
		return true, nil
	}
	return rf.adminRepo.IsAllowListed(ctx, userID)
}

// provisionInvite creates or reuses the applicant's account, grants the
// wholesale profile, links the application, and mints a one-time activation
// link.
func (rf *ReviewFlowImpl) provisionInvite(ctx context.Context, application *models.WholesaleApplication, plan models.WholesalePlan) (string, error) {
	user, err := rf.userRepo.ByEmail(ctx, application.Email)
	if err != nil {
		return "", err
	}
	if user == nil {
		user = &models.User{
			UUID:     uuid.New(),
			Email:    application.Email,
			FullName: application.FullName,
			IsActive: utils.ToPtr(false), // activated when the password is set
		}
		if err := rf.userRepo.Save(ctx, user); err != nil {
			return "", err
		}
	}

	profile := &models.Profile{
		UserID:          user.ID,
		Email:           application.Email,
		FullName:        application.FullName,
		Role:            models.RoleWholesale,
		WholesaleStatus: models.WholesaleStatusApproved,
		WholesalePlan:   &plan,
		UpdatedAt:       utils.UTCNow(),
	}
	if err := rf.profileRepo.Upsert(ctx, profile); err != nil {
		return "", err
	}

	if err := rf.applicationRepo.LinkUser(ctx, application.ID, user.ID); err != nil {
		return "", err
	}
	application.UserID = &user.ID

	// Only one usable activation token per user at a time
	if err := rf.activationRepo.ExpirePendingForUser(ctx, user.ID); err != nil {
		return "", err
	}

	rawToken, err := generateActivationToken()
	if err != nil {
		return "", err
	}
	token := &models.ActivationToken{
		CorrelationID: uuid.New(),
		Token:         rawToken,
		UserID:        user.ID,
		ApplicationID: &application.ID,
		Status:        models.ActivationStatusPending,
		ExpiresAt:     utils.UTCNow().Add(utils.ActivationTokenTTL),
	}
	if err := rf.activationRepo.Save(ctx, token); err != nil {
		return "", err
	}

	return fmt.Sprintf("%s/set-password?token=%s", rf.wholesaleCfg.SiteURL, rawToken), nil
}

// linkExistingUser grants the wholesale profile when the applicant already
// has an account; otherwise linking happens later, on registration.
func (rf *ReviewFlowImpl) linkExistingUser(ctx context.Context, application *models.WholesaleApplication, plan models.WholesalePlan) error {
	user, err := rf.userRepo.ByEmail(ctx, application.Email)
	if err != nil {
		return err
	}
	if user == nil {
		return nil
	}

	profile := &models.Profile{
		UserID:          user.ID,
		Email:           application.Email,
		FullName:        application.FullName,
		Role:            models.RoleWholesale,
		WholesaleStatus: models.WholesaleStatusApproved,
		WholesalePlan:   &plan,
		UpdatedAt:       utils.UTCNow(),
	}
	if err := rf.profileRepo.Upsert(ctx, profile); err != nil {
		return err
	}

	if err := rf.applicationRepo.LinkUser(ctx, application.ID, user.ID); err != nil {
		return err
	}
	application.UserID = &user.ID
	return nil
}

// notifyApplicant sends the outcome email and builds the response. Delivery
// failure is reported in the response, never as an operation error.
func (rf *ReviewFlowImpl) notifyApplicant(ctx context.Context, outcome *reviewOutcome) *dto.ReviewApplicationResponse {
	application := outcome.application

	response := &dto.ReviewApplicationResponse{
		Ok:     true,
		Status: application.Status.String(),
	}

	var sendErr error
	if !outcome.approved {
		response.Message = "Solicitud rechazada"
		sendErr = rf.notificationSvc.SendRejection(ctx, application.Email, application.FullName)
	} else {
		planLabel := outcome.plan.Label()
		switch outcome.mode {
		case ModeInvite:
			response.Message = "Solicitud aprobada; link de activación generado"
			sendErr = rf.notificationSvc.SendApprovalInvite(ctx, application.Email, application.FullName, planLabel, outcome.activationLink)
		case ModeSelfService:
			response.Message = "Solicitud aprobada"
			response.Mode = utils.ToPtr("no_invite")
			sendErr = rf.notificationSvc.SendApprovalDirect(ctx, application.Email, application.FullName, planLabel)
		}
	}

	if sendErr != nil {
		response.EmailSent = false
		response.EmailError = utils.ToPtr(sendErr.Error())
	} else {
		response.EmailSent = true
	}

	return response
}

func (rf *ReviewFlowImpl) withReviewTransaction(ctx context.Context, fn func(context.Context) (*reviewOutcome, error)) (*reviewOutcome, error) {
	var result *reviewOutcome
	var fnErr error

	err := repository.WithTransaction(ctx, rf.db, func(ctx context.Context) error {
		result, fnErr = fn(ctx)
		return fnErr
	})

	if err != nil {
		return nil, err
	}
	return result, fnErr
}

func (rf *ReviewFlowImpl) logReview(ctx context.Context, reviewerID uint, applicationID string, action string, description string, success bool, errMsg *string, metadata *ClientMetadata) error {
	ipAddress := "127.0.0.1"
	userAgent := ""
	if metadata != nil {
		ipAddress = metadata.IPAddress
		userAgent = metadata.UserAgent
	}

	description = fmt.Sprintf("%s (application_id=%s)", description, applicationID)
	audit := &models.AuditLog{
		UserID:       &reviewerID,
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

	return rf.auditRepo.Save(ctx, audit)
}

// generateActivationToken returns a 64-character hex token
func generateActivationToken() (string, error) {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}
