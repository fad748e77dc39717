package tests

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/solution-fragrance/portal/app/dto"
	"github.com/solution-fragrance/portal/app/services"
	businessflow "github.com/solution-fragrance/portal/business_flow"
	"github.com/solution-fragrance/portal/config"
	"github.com/solution-fragrance/portal/models"
	"github.com/solution-fragrance/portal/repository"
	testhelpers "github.com/solution-fragrance/portal/testing"
	"github.com/solution-fragrance/portal/utils"
)

type authHarness struct {
	flow     businessflow.AuthFlow
	fixtures *testhelpers.TestFixtures

	userRepo        repository.UserRepository
	profileRepo     repository.ProfileRepository
	applicationRepo repository.WholesaleApplicationRepository
	activationRepo  repository.ActivationTokenRepository
}

func newAuthHarness(t *testing.T, db *testhelpers.TestDB) *authHarness {
	t.Helper()

	tokenService, err := services.NewTokenService(
		15*time.Minute, 24*time.Hour,
		"portal-test", "portal-test-clients",
		false, "", "", "test-secret-key-for-auth-flow-tests",
	)
	require.NoError(t, err)

	securityCfg := &config.SecurityConfig{BcryptCost: bcrypt.MinCost}
	jwtCfg := &config.JWTConfig{AccessTokenTTL: 15 * time.Minute, RefreshTokenTTL: 24 * time.Hour}

	userRepo := repository.NewUserRepository(db.DB)
	profileRepo := repository.NewProfileRepository(db.DB)
	applicationRepo := repository.NewWholesaleApplicationRepository(db.DB)
	activationRepo := repository.NewActivationTokenRepository(db.DB)
	auditRepo := repository.NewAuditLogRepository(db.DB)

	flow := businessflow.NewAuthFlow(
		userRepo, profileRepo, applicationRepo, activationRepo, auditRepo,
		tokenService, securityCfg, jwtCfg, db.DB,
	)

	return &authHarness{
		flow:            flow,
		fixtures:        testhelpers.NewTestFixtures(db),
		userRepo:        userRepo,
		profileRepo:     profileRepo,
		applicationRepo: applicationRepo,
		activationRepo:  activationRepo,
	}
}

func registerRequest(email string) *dto.RegisterRequest {
	return &dto.RegisterRequest{
		FullName:        "New User",
		Email:           email,
		Password:        "StrongPass1",
		ConfirmPassword: "StrongPass1",
	}
}

func TestRegisterCreatesRetailProfile(t *testing.T) {
	err := testhelpers.TestWithDB(func(db *testhelpers.TestDB) error {
		h := newAuthHarness(t, db)
		ctx := testhelpers.CreateTestContext()

		response, err := h.flow.Register(ctx, registerRequest("New.User@Example.com"), nil)
		require.NoError(t, err)

		assert.NotEmpty(t, response.AccessToken)
		assert.NotEmpty(t, response.RefreshToken)
		assert.Equal(t, "Bearer", response.TokenType)

		user, err := h.userRepo.ByEmail(ctx, "new.user@example.com")
		require.NoError(t, err)
		require.NotNil(t, user)
		assert.True(t, utils.IsTrue(user.IsActive))

		profile, err := h.profileRepo.ByUserID(ctx, user.ID)
		require.NoError(t, err)
		require.NotNil(t, profile)
		assert.Equal(t, models.RoleRetail, profile.Role)
		assert.Equal(t, models.WholesaleStatusNone, profile.WholesaleStatus)
		assert.Nil(t, profile.WholesalePlan)
		return nil
	})
	require.NoError(t, err)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	err := testhelpers.TestWithDB(func(db *testhelpers.TestDB) error {
		h := newAuthHarness(t, db)
		ctx := testhelpers.CreateTestContext()

		user, err := h.fixtures.CreateTestUser()
		require.NoError(t, err)

		_, err = h.flow.Register(ctx, registerRequest(user.Email), nil)
		require.Error(t, err)
		assert.True(t, businessflow.IsEmailAlreadyExists(err))
		return nil
	})
	require.NoError(t, err)
}

func TestRegisterLinksApprovedApplication(t *testing.T) {
	err := testhelpers.TestWithDB(func(db *testhelpers.TestDB) error {
		h := newAuthHarness(t, db)
		ctx := testhelpers.CreateTestContext()

		// An approved application with no account yet (self-service mode)
		application, err := h.fixtures.CreateTestApplication(models.ApplicationStatusApproved)
		require.NoError(t, err)
		planB := models.WholesalePlanB
		require.NoError(t, db.DB.Model(application).Update("wholesale_plan", planB).Error)

		response, err := h.flow.Register(ctx, registerRequest(application.Email), nil)
		require.NoError(t, err)
		assert.Equal(t, "wholesale", response.User.Role)

		user, err := h.userRepo.ByEmail(ctx, application.Email)
		require.NoError(t, err)
		require.NotNil(t, user)

		// Registration picks up the grant and links the application
		profile, err := h.profileRepo.ByUserID(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, models.RoleWholesale, profile.Role)
		assert.Equal(t, models.WholesaleStatusApproved, profile.WholesaleStatus)
		require.NotNil(t, profile.WholesalePlan)
		assert.Equal(t, planB, *profile.WholesalePlan)

		stored, err := h.applicationRepo.ByID(ctx, application.ID)
		require.NoError(t, err)
		require.NotNil(t, stored.UserID)
		assert.Equal(t, user.ID, *stored.UserID)
		return nil
	})
	require.NoError(t, err)
}

func TestLoginPicksUpGrantWithoutDowngradingAdmin(t *testing.T) {
	err := testhelpers.TestWithDB(func(db *testhelpers.TestDB) error {
		h := newAuthHarness(t, db)
		ctx := testhelpers.CreateTestContext()

		admin, err := h.fixtures.CreateTestAdmin()
		require.NoError(t, err)

		// An approved application under the admin's own email
		application, err := h.fixtures.CreateTestApplication(models.ApplicationStatusApproved)
		require.NoError(t, err)
		planA := models.WholesalePlanA
		require.NoError(t, db.DB.Model(application).Updates(map[string]interface{}{
			"email":          admin.Email,
			"wholesale_plan": planA,
		}).Error)

		response, err := h.flow.Login(ctx, &dto.LoginRequest{Email: admin.Email, Password: "TestPass123"}, nil)
		require.NoError(t, err)

		// The wholesale grant is applied, the admin role kept
		assert.Equal(t, "admin", response.User.Role)
		profile, err := h.profileRepo.ByUserID(ctx, admin.ID)
		require.NoError(t, err)
		assert.Equal(t, models.RoleAdmin, profile.Role)
		assert.Equal(t, models.WholesaleStatusApproved, profile.WholesaleStatus)
		return nil
	})
	require.NoError(t, err)
}

func TestLoginFailures(t *testing.T) {
	err := testhelpers.TestWithDB(func(db *testhelpers.TestDB) error {
		h := newAuthHarness(t, db)
		ctx := testhelpers.CreateTestContext()

		user, err := h.fixtures.CreateTestUser()
		require.NoError(t, err)

		t.Run("unknown email", func(t *testing.T) {
			_, err := h.flow.Login(ctx, &dto.LoginRequest{Email: "nobody@example.com", Password: "TestPass123"}, nil)
			require.Error(t, err)
			assert.True(t, businessflow.IsUserNotFound(err))
		})

		t.Run("wrong password", func(t *testing.T) {
			_, err := h.flow.Login(ctx, &dto.LoginRequest{Email: user.Email, Password: "WrongPass123"}, nil)
			require.Error(t, err)
			assert.True(t, businessflow.IsIncorrectPassword(err))
		})

		t.Run("inactive account", func(t *testing.T) {
			require.NoError(t, db.DB.Model(&models.User{}).Where("id = ?", user.ID).Update("is_active", false).Error)
			_, err := h.flow.Login(ctx, &dto.LoginRequest{Email: user.Email, Password: "TestPass123"}, nil)
			require.Error(t, err)
			assert.True(t, businessflow.IsAccountInactive(err))
			require.NoError(t, db.DB.Model(&models.User{}).Where("id = ?", user.ID).Update("is_active", true).Error)
		})

		t.Run("no password set", func(t *testing.T) {
			require.NoError(t, db.DB.Model(&models.User{}).Where("id = ?", user.ID).Update("password_hash", nil).Error)
			_, err := h.flow.Login(ctx, &dto.LoginRequest{Email: user.Email, Password: "TestPass123"}, nil)
			require.Error(t, err)
			assert.True(t, businessflow.IsPasswordNotSet(err))
		})
		return nil
	})
	require.NoError(t, err)
}

func TestRefreshToken(t *testing.T) {
	err := testhelpers.TestWithDB(func(db *testhelpers.TestDB) error {
		h := newAuthHarness(t, db)
		ctx := testhelpers.CreateTestContext()

		registered, err := h.flow.Register(ctx, registerRequest("refresh@example.com"), nil)
		require.NoError(t, err)

		refreshed, err := h.flow.Refresh(ctx, &dto.RefreshTokenRequest{RefreshToken: registered.RefreshToken})
		require.NoError(t, err)
		assert.NotEmpty(t, refreshed.AccessToken)
		assert.Equal(t, registered.User.Email, refreshed.User.Email)

		_, err = h.flow.Refresh(ctx, &dto.RefreshTokenRequest{RefreshToken: "not-a-token"})
		require.Error(t, err)
		assert.True(t, businessflow.IsUnauthorized(err))
		return nil
	})
	require.NoError(t, err)
}

func TestActivateAccount(t *testing.T) {
	err := testhelpers.TestWithDB(func(db *testhelpers.TestDB) error {
		h := newAuthHarness(t, db)
		ctx := testhelpers.CreateTestContext()

		// An invited user: no password, inactive, with a pending token
		user, err := h.fixtures.CreateTestUser()
		require.NoError(t, err)
		require.NoError(t, db.DB.Model(&models.User{}).Where("id = ?", user.ID).
			Updates(map[string]interface{}{"password_hash": nil, "is_active": false}).Error)
		_, err = h.fixtures.CreateTestProfile(user, models.RoleWholesale, models.WholesaleStatusApproved, utils.ToPtr(models.WholesalePlanA))
		require.NoError(t, err)

		rawToken := "0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef"
		token, err := h.fixtures.CreateTestActivationToken(user, rawToken, utils.UTCNow().Add(utils.ActivationTokenTTL))
		require.NoError(t, err)

		request := &dto.ActivateAccountRequest{
			Token:           rawToken,
			Password:        "FreshPass1",
			ConfirmPassword: "FreshPass1",
		}

		response, err := h.flow.Activate(ctx, request, nil)
		require.NoError(t, err)
		assert.NotEmpty(t, response.AccessToken)
		assert.Equal(t, "wholesale", response.User.Role)

		// The account is active, the password usable, the token consumed
		activated, err := h.userRepo.ByID(ctx, user.ID)
		require.NoError(t, err)
		assert.True(t, utils.IsTrue(activated.IsActive))
		assert.True(t, activated.HasPassword())

		consumed, err := h.activationRepo.ByID(ctx, token.ID)
		require.NoError(t, err)
		assert.Equal(t, models.ActivationStatusUsed, consumed.Status)
		assert.NotNil(t, consumed.UsedAt)

		_, err = h.flow.Login(ctx, &dto.LoginRequest{Email: user.Email, Password: "FreshPass1"}, nil)
		require.NoError(t, err)

		// The token is one-time
		_, err = h.flow.Activate(ctx, request, nil)
		require.Error(t, err)
		assert.True(t, businessflow.IsActivationTokenUsed(err))
		return nil
	})
	require.NoError(t, err)
}

func TestActivateTokenErrors(t *testing.T) {
	err := testhelpers.TestWithDB(func(db *testhelpers.TestDB) error {
		h := newAuthHarness(t, db)
		ctx := testhelpers.CreateTestContext()

		user, err := h.fixtures.CreateTestUser()
		require.NoError(t, err)

		t.Run("unknown token", func(t *testing.T) {
			request := &dto.ActivateAccountRequest{
				Token:           "ffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff",
				Password:        "FreshPass1",
				ConfirmPassword: "FreshPass1",
			}
			_, err := h.flow.Activate(ctx, request, nil)
			require.Error(t, err)
			assert.True(t, businessflow.IsActivationTokenNotFound(err))
		})

		t.Run("expired token", func(t *testing.T) {
			rawToken := "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"
			_, err := h.fixtures.CreateTestActivationToken(user, rawToken, utils.UTCNow().Add(-time.Hour))
			require.NoError(t, err)

			request := &dto.ActivateAccountRequest{
				Token:           rawToken,
				Password:        "FreshPass1",
				ConfirmPassword: "FreshPass1",
			}
			_, err = h.flow.Activate(ctx, request, nil)
			require.Error(t, err)
			assert.True(t, businessflow.IsActivationTokenExpired(err))
		})
		return nil
	})
	require.NoError(t, err)
}
