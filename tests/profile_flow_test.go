package tests

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solution-fragrance/portal/app/dto"
	businessflow "github.com/solution-fragrance/portal/business_flow"
	"github.com/solution-fragrance/portal/models"
	"github.com/solution-fragrance/portal/repository"
	testhelpers "github.com/solution-fragrance/portal/testing"
	"github.com/solution-fragrance/portal/utils"
)

func newProfileFlow(db *testhelpers.TestDB) businessflow.ProfileFlow {
	return businessflow.NewProfileFlow(
		repository.NewProfileRepository(db.DB),
		repository.NewUserRepository(db.DB),
		repository.NewAuditLogRepository(db.DB),
		db.DB,
	)
}

func TestGetProfileCreatesDefault(t *testing.T) {
	err := testhelpers.TestWithDB(func(db *testhelpers.TestDB) error {
		flow := newProfileFlow(db)
		fixtures := testhelpers.NewTestFixtures(db)
		ctx := testhelpers.CreateTestContext()

		// A user without a profile row gets a retail default on first fetch
		user, err := fixtures.CreateTestUser()
		require.NoError(t, err)

		profile, err := flow.GetProfile(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, "retail", profile.Role)
		assert.Equal(t, "none", profile.WholesaleStatus)
		assert.Nil(t, profile.WholesalePlan)
		return nil
	})
	require.NoError(t, err)
}

func TestGetProfileReflectsWholesaleGrant(t *testing.T) {
	err := testhelpers.TestWithDB(func(db *testhelpers.TestDB) error {
		flow := newProfileFlow(db)
		fixtures := testhelpers.NewTestFixtures(db)
		ctx := testhelpers.CreateTestContext()

		user, err := fixtures.CreateTestUser()
		require.NoError(t, err)
		_, err = fixtures.CreateTestProfile(user, models.RoleWholesale, models.WholesaleStatusApproved, utils.ToPtr(models.WholesalePlanB))
		require.NoError(t, err)

		profile, err := flow.GetProfile(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, "wholesale", profile.Role)
		assert.Equal(t, "approved", profile.WholesaleStatus)
		require.NotNil(t, profile.WholesalePlan)
		assert.Equal(t, "B", *profile.WholesalePlan)
		return nil
	})
	require.NoError(t, err)
}

func TestUpdateProfileOnlyWritesName(t *testing.T) {
	err := testhelpers.TestWithDB(func(db *testhelpers.TestDB) error {
		flow := newProfileFlow(db)
		fixtures := testhelpers.NewTestFixtures(db)
		ctx := testhelpers.CreateTestContext()

		user, err := fixtures.CreateTestUser()
		require.NoError(t, err)
		_, err = fixtures.CreateTestProfile(user, models.RoleWholesale, models.WholesaleStatusApproved, utils.ToPtr(models.WholesalePlanA))
		require.NoError(t, err)

		updated, err := flow.UpdateProfile(ctx, user.ID, &dto.UpdateProfileRequest{FullName: "  Renamed Reseller  "}, nil)
		require.NoError(t, err)

		// Name is trimmed; role and wholesale fields stay untouched
		assert.Equal(t, "Renamed Reseller", updated.FullName)
		assert.Equal(t, "wholesale", updated.Role)
		assert.Equal(t, "approved", updated.WholesaleStatus)
		require.NotNil(t, updated.WholesalePlan)
		assert.Equal(t, "A", *updated.WholesalePlan)
		return nil
	})
	require.NoError(t, err)
}
