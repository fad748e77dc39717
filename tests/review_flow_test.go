package tests

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solution-fragrance/portal/app/dto"
	"github.com/solution-fragrance/portal/app/services"
	businessflow "github.com/solution-fragrance/portal/business_flow"
	"github.com/solution-fragrance/portal/config"
	"github.com/solution-fragrance/portal/models"
	"github.com/solution-fragrance/portal/repository"
	testhelpers "github.com/solution-fragrance/portal/testing"
	"github.com/solution-fragrance/portal/utils"
)

// reviewHarness wires a review flow over a real test database with a mock
// mail provider, so tests can assert on both persisted state and outbound
// email.
type reviewHarness struct {
	flow     businessflow.ReviewFlow
	mail     *services.MockMailService
	fixtures *testhelpers.TestFixtures
	cfg      *config.WholesaleConfig

	applicationRepo repository.WholesaleApplicationRepository
	userRepo        repository.UserRepository
	profileRepo     repository.ProfileRepository
	activationRepo  repository.ActivationTokenRepository
}

func newReviewHarness(db *testhelpers.TestDB, invitesEnabled bool) *reviewHarness {
	mail := services.NewMockMailService()
	cfg := &config.WholesaleConfig{
		SiteURL:         "https://solutionfragancias.com",
		InvitesEnabled:  invitesEnabled,
		DefaultCurrency: utils.DefaultCurrency,
	}

	applicationRepo := repository.NewWholesaleApplicationRepository(db.DB)
	profileRepo := repository.NewProfileRepository(db.DB)
	adminRepo := repository.NewAdminRepository(db.DB)
	userRepo := repository.NewUserRepository(db.DB)
	activationRepo := repository.NewActivationTokenRepository(db.DB)
	auditRepo := repository.NewAuditLogRepository(db.DB)

	flow := businessflow.NewReviewFlow(
		applicationRepo,
		profileRepo,
		adminRepo,
		userRepo,
		activationRepo,
		auditRepo,
		services.NewNotificationService(mail, cfg),
		cfg,
		db.DB,
	)

	return &reviewHarness{
		flow:            flow,
		mail:            mail,
		fixtures:        testhelpers.NewTestFixtures(db),
		cfg:             cfg,
		applicationRepo: applicationRepo,
		userRepo:        userRepo,
		profileRepo:     profileRepo,
		activationRepo:  activationRepo,
	}
}

func approveRequest(applicationID string, plan string) *dto.ReviewApplicationRequest {
	return &dto.ReviewApplicationRequest{
		ApplicationID: applicationID,
		Decision:      "approve",
		Plan:          utils.ToPtr(plan),
	}
}

func rejectRequest(applicationID string) *dto.ReviewApplicationRequest {
	return &dto.ReviewApplicationRequest{
		ApplicationID: applicationID,
		Decision:      "reject",
	}
}

func TestReviewApproveInviteMode(t *testing.T) {
	err := testhelpers.TestWithDB(func(db *testhelpers.TestDB) error {
		h := newReviewHarness(db, true)
		ctx := testhelpers.CreateTestContext()

		admin, err := h.fixtures.CreateTestAdmin()
		require.NoError(t, err)
		application, err := h.fixtures.CreateTestApplication(models.ApplicationStatusPending)
		require.NoError(t, err)

		response, err := h.flow.Review(ctx, admin.ID, approveRequest(application.UUID.String(), "A"), businessflow.NewClientMetadata("203.0.113.9", "test-agent"))
		require.NoError(t, err)

		assert.True(t, response.Ok)
		assert.Equal(t, "approved", response.Status)
		assert.True(t, response.EmailSent)
		assert.Nil(t, response.EmailError)
		assert.Nil(t, response.Mode)

		// The decision is persisted with reviewer and timestamp
		stored, err := h.applicationRepo.ByID(ctx, application.ID)
		require.NoError(t, err)
		require.NotNil(t, stored)
		assert.Equal(t, models.ApplicationStatusApproved, stored.Status)
		require.NotNil(t, stored.ReviewedBy)
		assert.Equal(t, admin.ID, *stored.ReviewedBy)
		assert.NotNil(t, stored.ReviewedAt)
		require.NotNil(t, stored.WholesalePlan)
		assert.Equal(t, models.WholesalePlanA, *stored.WholesalePlan)

		// Invite mode provisions an inactive account linked to the application
		user, err := h.userRepo.ByEmail(ctx, application.Email)
		require.NoError(t, err)
		require.NotNil(t, user)
		assert.False(t, utils.IsTrue(user.IsActive))
		require.NotNil(t, stored.UserID)
		assert.Equal(t, user.ID, *stored.UserID)

		profile, err := h.profileRepo.ByUserID(ctx, user.ID)
		require.NoError(t, err)
		require.NotNil(t, profile)
		assert.Equal(t, models.RoleWholesale, profile.Role)
		assert.Equal(t, models.WholesaleStatusApproved, profile.WholesaleStatus)
		require.NotNil(t, profile.WholesalePlan)
		assert.Equal(t, models.WholesalePlanA, *profile.WholesalePlan)

		// One pending activation token minted for the new account
		tokens, err := h.activationRepo.ByFilter(ctx, models.ActivationTokenFilter{UserID: &user.ID}, "id ASC", 10, 0)
		require.NoError(t, err)
		require.Len(t, tokens, 1)
		assert.Equal(t, models.ActivationStatusPending, tokens[0].Status)
		require.NotNil(t, tokens[0].ApplicationID)
		assert.Equal(t, application.ID, *tokens[0].ApplicationID)

		// The invite email carries the activation link
		messages := h.mail.GetSentMessages()
		require.Len(t, messages, 1)
		assert.Equal(t, application.Email, messages[0].To)
		assert.Contains(t, messages[0].HTML, "/set-password?token=")
		assert.Contains(t, messages[0].HTML, tokens[0].Token)
		return nil
	})
	require.NoError(t, err)
}

func TestReviewApproveSelfServiceMode(t *testing.T) {
	err := testhelpers.TestWithDB(func(db *testhelpers.TestDB) error {
		h := newReviewHarness(db, false)
		ctx := testhelpers.CreateTestContext()

		admin, err := h.fixtures.CreateTestAdmin()
		require.NoError(t, err)
		application, err := h.fixtures.CreateTestApplication(models.ApplicationStatusPending)
		require.NoError(t, err)

		response, err := h.flow.Review(ctx, admin.ID, approveRequest(application.UUID.String(), "B"), nil)
		require.NoError(t, err)

		assert.True(t, response.Ok)
		assert.Equal(t, "approved", response.Status)
		assert.True(t, response.EmailSent)
		require.NotNil(t, response.Mode)
		assert.Equal(t, "no_invite", *response.Mode)

		// No account is provisioned; the applicant registers on their own
		user, err := h.userRepo.ByEmail(ctx, application.Email)
		require.NoError(t, err)
		assert.Nil(t, user)

		messages := h.mail.GetSentMessages()
		require.Len(t, messages, 1)
		assert.Equal(t, application.Email, messages[0].To)
		assert.NotContains(t, messages[0].HTML, "/set-password")
		return nil
	})
	require.NoError(t, err)
}

func TestReviewApproveSelfServiceLinksExistingUser(t *testing.T) {
	err := testhelpers.TestWithDB(func(db *testhelpers.TestDB) error {
		h := newReviewHarness(db, false)
		ctx := testhelpers.CreateTestContext()

		admin, err := h.fixtures.CreateTestAdmin()
		require.NoError(t, err)

		// Applicant already has a retail account under the same email
		user, err := h.fixtures.CreateTestUser()
		require.NoError(t, err)
		_, err = h.fixtures.CreateTestProfile(user, models.RoleRetail, models.WholesaleStatusNone, nil)
		require.NoError(t, err)

		application, err := h.fixtures.CreateTestApplication(models.ApplicationStatusPending)
		require.NoError(t, err)
		require.NoError(t, db.DB.Model(application).Update("email", user.Email).Error)

		_, err = h.flow.Review(ctx, admin.ID, approveRequest(application.UUID.String(), "B"), nil)
		require.NoError(t, err)

		// The existing account is upgraded and linked immediately
		profile, err := h.profileRepo.ByUserID(ctx, user.ID)
		require.NoError(t, err)
		require.NotNil(t, profile)
		assert.Equal(t, models.RoleWholesale, profile.Role)
		assert.Equal(t, models.WholesaleStatusApproved, profile.WholesaleStatus)
		require.NotNil(t, profile.WholesalePlan)
		assert.Equal(t, models.WholesalePlanB, *profile.WholesalePlan)

		stored, err := h.applicationRepo.ByID(ctx, application.ID)
		require.NoError(t, err)
		require.NotNil(t, stored.UserID)
		assert.Equal(t, user.ID, *stored.UserID)
		return nil
	})
	require.NoError(t, err)
}

func TestReviewReject(t *testing.T) {
	err := testhelpers.TestWithDB(func(db *testhelpers.TestDB) error {
		h := newReviewHarness(db, true)
		ctx := testhelpers.CreateTestContext()

		admin, err := h.fixtures.CreateTestAdmin()
		require.NoError(t, err)
		application, err := h.fixtures.CreateTestApplication(models.ApplicationStatusPending)
		require.NoError(t, err)

		// A plan sent with a rejection is ignored, not an error
		request := rejectRequest(application.UUID.String())
		request.Plan = utils.ToPtr("A")

		response, err := h.flow.Review(ctx, admin.ID, request, nil)
		require.NoError(t, err)

		assert.True(t, response.Ok)
		assert.Equal(t, "rejected", response.Status)
		assert.True(t, response.EmailSent)

		stored, err := h.applicationRepo.ByID(ctx, application.ID)
		require.NoError(t, err)
		assert.Equal(t, models.ApplicationStatusRejected, stored.Status)
		assert.Nil(t, stored.WholesalePlan)

		// Rejection never provisions an account
		user, err := h.userRepo.ByEmail(ctx, application.Email)
		require.NoError(t, err)
		assert.Nil(t, user)

		messages := h.mail.GetSentMessages()
		require.Len(t, messages, 1)
		assert.Contains(t, messages[0].Subject, "rechazada")
		return nil
	})
	require.NoError(t, err)
}

func TestReviewSecondDecisionConflicts(t *testing.T) {
	err := testhelpers.TestWithDB(func(db *testhelpers.TestDB) error {
		h := newReviewHarness(db, true)
		ctx := testhelpers.CreateTestContext()

		admin, err := h.fixtures.CreateTestAdmin()
		require.NoError(t, err)
		otherAdmin, err := h.fixtures.CreateTestAdmin()
		require.NoError(t, err)
		application, err := h.fixtures.CreateTestApplication(models.ApplicationStatusPending)
		require.NoError(t, err)

		_, err = h.flow.Review(ctx, admin.ID, approveRequest(application.UUID.String(), "A"), nil)
		require.NoError(t, err)

		first, err := h.applicationRepo.ByID(ctx, application.ID)
		require.NoError(t, err)

		// A second decision, even a different one from another admin, conflicts
		_, err = h.flow.Review(ctx, otherAdmin.ID, rejectRequest(application.UUID.String()), nil)
		require.Error(t, err)
		assert.True(t, businessflow.IsApplicationAlreadyReviewed(err))

		// The first decision is untouched and no second email goes out
		second, err := h.applicationRepo.ByID(ctx, application.ID)
		require.NoError(t, err)
		assert.Equal(t, first.Status, second.Status)
		assert.Equal(t, *first.ReviewedBy, *second.ReviewedBy)
		assert.True(t, first.ReviewedAt.Equal(*second.ReviewedAt))
		assert.Len(t, h.mail.GetSentMessages(), 1)
		return nil
	})
	require.NoError(t, err)
}

func TestReviewNonAdminForbidden(t *testing.T) {
	err := testhelpers.TestWithDB(func(db *testhelpers.TestDB) error {
		h := newReviewHarness(db, true)
		ctx := testhelpers.CreateTestContext()

		user, err := h.fixtures.CreateTestUser()
		require.NoError(t, err)
		_, err = h.fixtures.CreateTestProfile(user, models.RoleWholesale, models.WholesaleStatusApproved, utils.ToPtr(models.WholesalePlanA))
		require.NoError(t, err)
		application, err := h.fixtures.CreateTestApplication(models.ApplicationStatusPending)
		require.NoError(t, err)

		_, err = h.flow.Review(ctx, user.ID, approveRequest(application.UUID.String(), "A"), nil)
		require.Error(t, err)
		assert.True(t, businessflow.IsForbidden(err))

		// The application is untouched and nothing was mailed
		stored, err := h.applicationRepo.ByID(ctx, application.ID)
		require.NoError(t, err)
		assert.Equal(t, models.ApplicationStatusPending, stored.Status)
		assert.Nil(t, stored.ReviewedBy)
		assert.Empty(t, h.mail.GetSentMessages())
		return nil
	})
	require.NoError(t, err)
}

// A non-admin gets the forbidden error no matter how malformed the request
// body is: access is checked before any field is looked at.
func TestReviewForbiddenBeforeValidation(t *testing.T) {
	err := testhelpers.TestWithDB(func(db *testhelpers.TestDB) error {
		h := newReviewHarness(db, true)
		ctx := testhelpers.CreateTestContext()

		user, err := h.fixtures.CreateTestUser()
		require.NoError(t, err)
		_, err = h.fixtures.CreateTestProfile(user, models.RoleRetail, models.WholesaleStatusNone, nil)
		require.NoError(t, err)

		request := &dto.ReviewApplicationRequest{ApplicationID: "not-a-uuid", Decision: "bogus"}
		_, err = h.flow.Review(ctx, user.ID, request, nil)
		require.Error(t, err)
		assert.True(t, businessflow.IsForbidden(err))
		assert.False(t, businessflow.IsInvalidDecision(err))
		assert.False(t, businessflow.IsInvalidApplicationID(err))
		return nil
	})
	require.NoError(t, err)
}

// An unauthenticated caller is turned away before the body is inspected.
func TestReviewUnauthenticatedBeforeValidation(t *testing.T) {
	err := testhelpers.TestWithDB(func(db *testhelpers.TestDB) error {
		h := newReviewHarness(db, true)
		ctx := testhelpers.CreateTestContext()

		request := &dto.ReviewApplicationRequest{ApplicationID: "not-a-uuid", Decision: "bogus"}
		_, err := h.flow.Review(ctx, 0, request, nil)
		require.Error(t, err)
		assert.True(t, businessflow.IsUnauthorized(err))
		assert.False(t, businessflow.IsInvalidDecision(err))
		return nil
	})
	require.NoError(t, err)
}

func TestReviewAllowListGrantsAccess(t *testing.T) {
	err := testhelpers.TestWithDB(func(db *testhelpers.TestDB) error {
		h := newReviewHarness(db, false)
		ctx := testhelpers.CreateTestContext()

		// Retail profile, but present in the admins allow-list
		user, err := h.fixtures.CreateTestUser()
		require.NoError(t, err)
		_, err = h.fixtures.CreateTestProfile(user, models.RoleRetail, models.WholesaleStatusNone, nil)
		require.NoError(t, err)
		require.NoError(t, db.DB.Create(&models.Admin{UserID: user.ID}).Error)

		application, err := h.fixtures.CreateTestApplication(models.ApplicationStatusPending)
		require.NoError(t, err)

		response, err := h.flow.Review(ctx, user.ID, approveRequest(application.UUID.String(), "A"), nil)
		require.NoError(t, err)
		assert.Equal(t, "approved", response.Status)
		return nil
	})
	require.NoError(t, err)
}

func TestReviewUnauthenticated(t *testing.T) {
	err := testhelpers.TestWithDB(func(db *testhelpers.TestDB) error {
		h := newReviewHarness(db, true)
		ctx := testhelpers.CreateTestContext()

		application, err := h.fixtures.CreateTestApplication(models.ApplicationStatusPending)
		require.NoError(t, err)

		_, err = h.flow.Review(ctx, 0, approveRequest(application.UUID.String(), "A"), nil)
		require.Error(t, err)
		assert.True(t, businessflow.IsUnauthorized(err))
		return nil
	})
	require.NoError(t, err)
}

func TestReviewValidation(t *testing.T) {
	err := testhelpers.TestWithDB(func(db *testhelpers.TestDB) error {
		h := newReviewHarness(db, true)
		ctx := testhelpers.CreateTestContext()

		admin, err := h.fixtures.CreateTestAdmin()
		require.NoError(t, err)
		application, err := h.fixtures.CreateTestApplication(models.ApplicationStatusPending)
		require.NoError(t, err)

		t.Run("approval requires a plan", func(t *testing.T) {
			request := &dto.ReviewApplicationRequest{ApplicationID: application.UUID.String(), Decision: "approve"}
			_, err := h.flow.Review(ctx, admin.ID, request, nil)
			require.Error(t, err)
			assert.True(t, businessflow.IsPlanRequired(err))
		})

		t.Run("plan must be A or B", func(t *testing.T) {
			_, err := h.flow.Review(ctx, admin.ID, approveRequest(application.UUID.String(), "C"), nil)
			require.Error(t, err)
			assert.True(t, businessflow.IsInvalidPlan(err))
		})

		t.Run("decision must be approve or reject", func(t *testing.T) {
			request := &dto.ReviewApplicationRequest{ApplicationID: application.UUID.String(), Decision: "maybe"}
			_, err := h.flow.Review(ctx, admin.ID, request, nil)
			require.Error(t, err)
			assert.True(t, businessflow.IsInvalidDecision(err))
		})

		t.Run("application id must be a uuid", func(t *testing.T) {
			_, err := h.flow.Review(ctx, admin.ID, approveRequest("42", "A"), nil)
			require.Error(t, err)
			assert.True(t, businessflow.IsInvalidApplicationID(err))
		})

		// Validation failures never move the application
		stored, err := h.applicationRepo.ByID(ctx, application.ID)
		require.NoError(t, err)
		assert.Equal(t, models.ApplicationStatusPending, stored.Status)
		assert.Empty(t, h.mail.GetSentMessages())
		return nil
	})
	require.NoError(t, err)
}

func TestReviewApplicationNotFound(t *testing.T) {
	err := testhelpers.TestWithDB(func(db *testhelpers.TestDB) error {
		h := newReviewHarness(db, true)
		ctx := testhelpers.CreateTestContext()

		admin, err := h.fixtures.CreateTestAdmin()
		require.NoError(t, err)

		_, err = h.flow.Review(ctx, admin.ID, approveRequest(uuid.NewString(), "A"), nil)
		require.Error(t, err)
		assert.True(t, businessflow.IsApplicationNotFound(err))
		return nil
	})
	require.NoError(t, err)
}

func TestReviewEmailFailureDoesNotReverseDecision(t *testing.T) {
	err := testhelpers.TestWithDB(func(db *testhelpers.TestDB) error {
		h := newReviewHarness(db, true)
		ctx := testhelpers.CreateTestContext()

		admin, err := h.fixtures.CreateTestAdmin()
		require.NoError(t, err)
		application, err := h.fixtures.CreateTestApplication(models.ApplicationStatusPending)
		require.NoError(t, err)

		h.mail.FailWith = assert.AnError

		response, err := h.flow.Review(ctx, admin.ID, approveRequest(application.UUID.String(), "A"), nil)
		require.NoError(t, err)

		// The decision stands; only the delivery is reported as failed
		assert.True(t, response.Ok)
		assert.Equal(t, "approved", response.Status)
		assert.False(t, response.EmailSent)
		require.NotNil(t, response.EmailError)
		assert.NotEmpty(t, *response.EmailError)

		stored, err := h.applicationRepo.ByID(ctx, application.ID)
		require.NoError(t, err)
		assert.Equal(t, models.ApplicationStatusApproved, stored.Status)
		return nil
	})
	require.NoError(t, err)
}

func TestReviewInviteReusesExistingAccount(t *testing.T) {
	err := testhelpers.TestWithDB(func(db *testhelpers.TestDB) error {
		h := newReviewHarness(db, true)
		ctx := testhelpers.CreateTestContext()

		admin, err := h.fixtures.CreateTestAdmin()
		require.NoError(t, err)

		user, err := h.fixtures.CreateTestUser()
		require.NoError(t, err)
		application, err := h.fixtures.CreateTestApplication(models.ApplicationStatusPending)
		require.NoError(t, err)
		require.NoError(t, db.DB.Model(application).Update("email", user.Email).Error)

		// A stale pending token from an earlier invite
		stale, err := h.fixtures.CreateTestActivationToken(user, "a1b2", utils.UTCNow().Add(utils.ActivationTokenTTL))
		require.NoError(t, err)

		_, err = h.flow.Review(ctx, admin.ID, approveRequest(application.UUID.String(), "A"), nil)
		require.NoError(t, err)

		// No duplicate account
		var count int64
		require.NoError(t, db.DB.Model(&models.User{}).Where("email = ?", user.Email).Count(&count).Error)
		assert.EqualValues(t, 1, count)

		// The stale token is expired and exactly one fresh pending token remains
		reloaded, err := h.activationRepo.ByID(ctx, stale.ID)
		require.NoError(t, err)
		assert.Equal(t, models.ActivationStatusExpired, reloaded.Status)

		pending := models.ActivationStatusPending
		tokens, err := h.activationRepo.ByFilter(ctx, models.ActivationTokenFilter{UserID: &user.ID, Status: &pending}, "id ASC", 10, 0)
		require.NoError(t, err)
		assert.Len(t, tokens, 1)
		return nil
	})
	require.NoError(t, err)
}
