package businessflow

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/solution-fragrance/portal/app/dto"
	"github.com/solution-fragrance/portal/models"
	"github.com/solution-fragrance/portal/repository"
	"github.com/xuri/excelize/v2"
)

// AdminFlow handles the back-office views over applications and orders
type AdminFlow interface {
	ListApplications(ctx context.Context, callerID uint, request *dto.ListApplicationsRequest) (*dto.ListApplicationsResponse, error)
	GetApplication(ctx context.Context, callerID uint, applicationID uint) (*dto.ApplicationDTO, error)
	ExportApplications(ctx context.Context, callerID uint, status string) ([]byte, error)
	ListOrdersForUser(ctx context.Context, callerID uint, userID uint) (*dto.ListOrdersResponse, error)
}

// AdminFlowImpl implements the admin business flow
type AdminFlowImpl struct {
	applicationRepo repository.WholesaleApplicationRepository
	orderRepo       repository.OrderRepository
	profileRepo     repository.ProfileRepository
	adminRepo       repository.AdminRepository
}

// NewAdminFlow creates a new admin flow instance
func NewAdminFlow(
	applicationRepo repository.WholesaleApplicationRepository,
	orderRepo repository.OrderRepository,
	profileRepo repository.ProfileRepository,
	adminRepo repository.AdminRepository,
) AdminFlow {
	return &AdminFlowImpl{
		applicationRepo: applicationRepo,
		orderRepo:       orderRepo,
		profileRepo:     profileRepo,
		adminRepo:       adminRepo,
	}
}

// requireAdmin enforces the same predicate the review path uses: an admin
// profile role or a row in the admins allow-list.
func (af *AdminFlowImpl) requireAdmin(ctx context.Context, callerID uint) error {
	if callerID == 0 {
		return NewBusinessError("ADMIN_UNAUTHORIZED", "Authentication required", ErrUnauthorized)
	}

	profile, err := af.profileRepo.ByUserID(ctx, callerID)
	if err != nil {
		return NewBusinessError("ADMIN_CHECK_FAILED", "Failed to verify admin access", err)
	}
	if profile != nil && profile.IsAdmin() {
		return nil
	}

	allowed, err := af.adminRepo.IsAllowListed(ctx, callerID)
	if err != nil {
		return NewBusinessError("ADMIN_CHECK_FAILED", "Failed to verify admin access", err)
	}
	if !allowed {
		return NewBusinessError("ADMIN_FORBIDDEN", "Admin access required", ErrForbidden)
	}
	return nil
}

// ListApplications returns a page of wholesale applications, optionally
// filtered by status, newest first.
func (af *AdminFlowImpl) ListApplications(ctx context.Context, callerID uint, request *dto.ListApplicationsRequest) (*dto.ListApplicationsResponse, error) {
	if err := af.requireAdmin(ctx, callerID); err != nil {
		return nil, err
	}

	page := request.Page
	if page < 1 {
		page = 1
	}
	limit := request.Limit
	if limit < 1 || limit > 200 {
		limit = 50
	}
	offset := (page - 1) * limit

	filter := models.WholesaleApplicationFilter{}
	if request.Status != "" {
		status := models.ApplicationStatus(request.Status)
		if !status.Valid() {
			return nil, NewBusinessError("INVALID_STATUS", "Invalid application status", ErrInvalidDecision)
		}
		filter.Status = &status
	}

	applications, err := af.applicationRepo.ByFilter(ctx, filter, "created_at DESC", limit, offset)
	if err != nil {
		return nil, NewBusinessError("APPLICATION_LIST_FAILED", "Failed to list applications", err)
	}
	total, err := af.applicationRepo.Count(ctx, filter)
	if err != nil {
		return nil, NewBusinessError("APPLICATION_LIST_FAILED", "Failed to list applications", err)
	}

	response := &dto.ListApplicationsResponse{
		Applications: make([]dto.ApplicationDTO, 0, len(applications)),
		Total:        total,
		Page:         page,
		Limit:        limit,
	}
	for _, application := range applications {
		response.Applications = append(response.Applications, ToApplicationDTO(*application))
	}
	return response, nil
}

// GetApplication returns a single application by id
func (af *AdminFlowImpl) GetApplication(ctx context.Context, callerID uint, applicationID uint) (*dto.ApplicationDTO, error) {
	if err := af.requireAdmin(ctx, callerID); err != nil {
		return nil, err
	}

	application, err := af.applicationRepo.ByID(ctx, applicationID)
	if err != nil {
		return nil, NewBusinessError("APPLICATION_FETCH_FAILED", "Failed to fetch application", err)
	}
	if application == nil {
		return nil, NewBusinessError("APPLICATION_NOT_FOUND", "Application not found", ErrApplicationNotFound)
	}

	result := ToApplicationDTO(*application)
	return &result, nil
}

const exportBatchSize = 500

// ExportApplications builds an XLSX workbook of applications for offline
// review. Rows are streamed from the database in batches.
func (af *AdminFlowImpl) ExportApplications(ctx context.Context, callerID uint, status string) ([]byte, error) {
	if err := af.requireAdmin(ctx, callerID); err != nil {
		return nil, err
	}

	filter := models.WholesaleApplicationFilter{}
	if status != "" {
		s := models.ApplicationStatus(status)
		if !s.Valid() {
			return nil, NewBusinessError("INVALID_STATUS", "Invalid application status", ErrInvalidDecision)
		}
		filter.Status = &s
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	const sheet = "Applications"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, NewBusinessError("EXPORT_FAILED", "Failed to build export", err)
	}
	f.SetActiveSheet(index)
	_ = f.DeleteSheet("Sheet1")

	headers := []string{"ID", "Full Name", "Email", "Phone", "Status", "Plan", "Reviewed At", "Reviewed By", "Created At"}
	for col, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return nil, NewBusinessError("EXPORT_FAILED", "Failed to build export", err)
		}
	}

	row := 2
	for offset := 0; ; offset += exportBatchSize {
		applications, err := af.applicationRepo.ByFilter(ctx, filter, "created_at ASC", exportBatchSize, offset)
		if err != nil {
			return nil, NewBusinessError("EXPORT_FAILED", "Failed to build export", err)
		}
		if len(applications) == 0 {
			break
		}

		for _, application := range applications {
			values := []any{
				application.ID,
				application.FullName,
				application.Email,
				deref(application.Phone),
				string(application.Status),
				planString(application.WholesalePlan),
				timeString(application.ReviewedAt),
				derefUint(application.ReviewedBy),
				application.CreatedAt.UTC().Format("2006-01-02 15:04:05"),
			}
			for col, value := range values {
				cell, _ := excelize.CoordinatesToCellName(col+1, row)
				if err := f.SetCellValue(sheet, cell, value); err != nil {
					return nil, NewBusinessError("EXPORT_FAILED", "Failed to build export", err)
				}
			}
			row++
		}

		if len(applications) < exportBatchSize {
			break
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, NewBusinessError("EXPORT_FAILED", "Failed to build export", err)
	}
	return buf.Bytes(), nil
}

// ListOrdersForUser returns a user's wholesale orders for back-office support
func (af *AdminFlowImpl) ListOrdersForUser(ctx context.Context, callerID uint, userID uint) (*dto.ListOrdersResponse, error) {
	if err := af.requireAdmin(ctx, callerID); err != nil {
		return nil, err
	}

	orders, err := af.orderRepo.ListByUser(ctx, userID, models.ChannelWholesale)
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

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefUint(n *uint) string {
	if n == nil {
		return ""
	}
	return fmt.Sprintf("%d", *n)
}

func planString(plan *models.WholesalePlan) string {
	if plan == nil {
		return ""
	}
	return plan.String()
}

func timeString(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format("2006-01-02 15:04:05")
}
