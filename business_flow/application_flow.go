// Package businessflow contains the core business logic and use cases for the storefront and wholesale portal
package businessflow

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/solution-fragrance/portal/app/dto"
	"github.com/solution-fragrance/portal/app/services"
	"github.com/solution-fragrance/portal/models"
	"github.com/solution-fragrance/portal/repository"
	"github.com/solution-fragrance/portal/utils"
	"gorm.io/gorm"
	"strconv"
)

// ApplicationFlow handles public wholesale application submission
type ApplicationFlow interface {
	Submit(ctx context.Context, request *dto.SubmitApplicationRequest, metadata *ClientMetadata) (*dto.SubmitApplicationResponse, error)
	GenerateCaptcha(ctx context.Context) (*dto.CaptchaResponse, error)
}

// ApplicationFlowImpl implements the application submission flow
type ApplicationFlowImpl struct {
	applicationRepo repository.WholesaleApplicationRepository
	auditRepo       repository.AuditLogRepository
	captchaSvc      services.CaptchaService // nil when captcha is disabled
	db              *gorm.DB
}

// NewApplicationFlow creates a new application flow instance
func NewApplicationFlow(
	applicationRepo repository.WholesaleApplicationRepository,
	auditRepo repository.AuditLogRepository,
	captchaSvc services.CaptchaService,
	db *gorm.DB,
) ApplicationFlow {
	return &ApplicationFlowImpl{
		applicationRepo: applicationRepo,
		auditRepo:       auditRepo,
		captchaSvc:      captchaSvc,
		db:              db,
	}
}

// Submit records a new wholesale application. The submission is public and
// unauthenticated: status is always forced to pending regardless of input,
// and the email is normalized before storage.
func (af *ApplicationFlowImpl) Submit(ctx context.Context, request *dto.SubmitApplicationRequest, metadata *ClientMetadata) (*dto.SubmitApplicationResponse, error) {
	if af.captchaSvc != nil {
		angle, err := strconv.ParseFloat(request.CaptchaAnswer, 64)
		if err != nil || !af.captchaSvc.Verify(ctx, request.CaptchaID, angle) {
			return nil, NewBusinessError("CAPTCHA_FAILED", "Captcha verification failed", ErrCaptchaFailed)
		}
	}

	application := &models.WholesaleApplication{
		UUID:     uuid.New(),
		FullName: strings.TrimSpace(request.FullName),
		Email:    utils.NormalizeEmail(request.Email),
		Phone:    request.Phone,
		Answers:  models.ApplicationAnswers(request.Answers),
		Status:   models.ApplicationStatusPending,
	}

	err := repository.WithTransaction(ctx, af.db, func(ctx context.Context) error {
		return af.applicationRepo.Save(ctx, application)
	})
	if err != nil {
		return nil, NewBusinessError("APPLICATION_SUBMIT_FAILED", "Failed to submit application", err)
	}

	description := "Wholesale application submitted by " + utils.ObfuscateEmail(application.Email)
	_ = af.logSubmission(ctx, application, description, metadata)

	return &dto.SubmitApplicationResponse{
		Ok:            true,
		ApplicationID: application.UUID.String(),
		Status:        application.Status.String(),
	}, nil
}

// GenerateCaptcha creates a rotate captcha challenge for the public form
func (af *ApplicationFlowImpl) GenerateCaptcha(ctx context.Context) (*dto.CaptchaResponse, error) {
	if af.captchaSvc == nil {
		return nil, NewBusinessError("CAPTCHA_DISABLED", "Captcha is not enabled", nil)
	}
	challenge, err := af.captchaSvc.Generate(ctx)
	if err != nil {
		return nil, NewBusinessError("CAPTCHA_GENERATION_FAILED", "Failed to generate captcha", err)
	}
	return &dto.CaptchaResponse{
		CaptchaID: challenge.ID,
		ImageB64:  challenge.MasterImageBase64,
		ThumbB64:  challenge.ThumbImageBase64,
		ExpiresIn: int(challenge.ExpiresIn.Seconds()),
	}, nil
}

func (af *ApplicationFlowImpl) logSubmission(ctx context.Context, application *models.WholesaleApplication, description string, metadata *ClientMetadata) error {
	ipAddress := "127.0.0.1"
	userAgent := ""
	if metadata != nil {
		ipAddress = metadata.IPAddress
		userAgent = metadata.UserAgent
	}

	audit := &models.AuditLog{
		Action:      models.AuditActionApplicationSubmitted,
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

	return af.auditRepo.Save(ctx, audit)
}
