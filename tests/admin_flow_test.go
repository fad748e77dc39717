package tests

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/solution-fragrance/portal/app/dto"
	businessflow "github.com/solution-fragrance/portal/business_flow"
	"github.com/solution-fragrance/portal/models"
	"github.com/solution-fragrance/portal/repository"
	testhelpers "github.com/solution-fragrance/portal/testing"
	"github.com/solution-fragrance/portal/utils"
)

type adminHarness struct {
	flow     businessflow.AdminFlow
	fixtures *testhelpers.TestFixtures
}

func newAdminHarness(db *testhelpers.TestDB) *adminHarness {
	flow := businessflow.NewAdminFlow(
		repository.NewWholesaleApplicationRepository(db.DB),
		repository.NewOrderRepository(db.DB),
		repository.NewProfileRepository(db.DB),
		repository.NewAdminRepository(db.DB),
	)
	return &adminHarness{flow: flow, fixtures: testhelpers.NewTestFixtures(db)}
}

func TestListApplications(t *testing.T) {
	err := testhelpers.TestWithDB(func(db *testhelpers.TestDB) error {
		h := newAdminHarness(db)
		ctx := testhelpers.CreateTestContext()

		admin, err := h.fixtures.CreateTestAdmin()
		require.NoError(t, err)

		for i := 0; i < 3; i++ {
			_, err := h.fixtures.CreateTestApplication(models.ApplicationStatusPending)
			require.NoError(t, err)
		}
		_, err = h.fixtures.CreateTestApplication(models.ApplicationStatusRejected)
		require.NoError(t, err)

		t.Run("all applications", func(t *testing.T) {
			response, err := h.flow.ListApplications(ctx, admin.ID, &dto.ListApplicationsRequest{})
			require.NoError(t, err)
			assert.EqualValues(t, 4, response.Total)
			assert.Len(t, response.Applications, 4)
		})

		t.Run("status filter", func(t *testing.T) {
			response, err := h.flow.ListApplications(ctx, admin.ID, &dto.ListApplicationsRequest{Status: "pending"})
			require.NoError(t, err)
			assert.EqualValues(t, 3, response.Total)
			for _, application := range response.Applications {
				assert.Equal(t, "pending", application.Status)
			}
		})

		t.Run("pagination", func(t *testing.T) {
			response, err := h.flow.ListApplications(ctx, admin.ID, &dto.ListApplicationsRequest{Page: 2, Limit: 3})
			require.NoError(t, err)
			assert.EqualValues(t, 4, response.Total)
			assert.Len(t, response.Applications, 1)
			assert.Equal(t, 2, response.Page)
		})

		t.Run("invalid status", func(t *testing.T) {
			_, err := h.flow.ListApplications(ctx, admin.ID, &dto.ListApplicationsRequest{Status: "archived"})
			require.Error(t, err)
			assert.True(t, businessflow.IsInvalidDecision(err))
		})
		return nil
	})
	require.NoError(t, err)
}

func TestAdminEndpointsRequireAdmin(t *testing.T) {
	err := testhelpers.TestWithDB(func(db *testhelpers.TestDB) error {
		h := newAdminHarness(db)
		ctx := testhelpers.CreateTestContext()

		user, err := h.fixtures.CreateTestUser()
		require.NoError(t, err)
		_, err = h.fixtures.CreateTestProfile(user, models.RoleWholesale, models.WholesaleStatusApproved, utils.ToPtr(models.WholesalePlanA))
		require.NoError(t, err)

		_, err = h.flow.ListApplications(ctx, user.ID, &dto.ListApplicationsRequest{})
		require.Error(t, err)
		assert.True(t, businessflow.IsForbidden(err))

		_, err = h.flow.GetApplication(ctx, user.ID, 1)
		require.Error(t, err)
		assert.True(t, businessflow.IsForbidden(err))

		_, err = h.flow.ExportApplications(ctx, user.ID, "")
		require.Error(t, err)
		assert.True(t, businessflow.IsForbidden(err))

		// No credentials at all
		_, err = h.flow.ListApplications(ctx, 0, &dto.ListApplicationsRequest{})
		require.Error(t, err)
		assert.True(t, businessflow.IsUnauthorized(err))
		return nil
	})
	require.NoError(t, err)
}

func TestGetApplication(t *testing.T) {
	err := testhelpers.TestWithDB(func(db *testhelpers.TestDB) error {
		h := newAdminHarness(db)
		ctx := testhelpers.CreateTestContext()

		admin, err := h.fixtures.CreateTestAdmin()
		require.NoError(t, err)
		application, err := h.fixtures.CreateTestApplication(models.ApplicationStatusPending)
		require.NoError(t, err)

		found, err := h.flow.GetApplication(ctx, admin.ID, application.ID)
		require.NoError(t, err)
		assert.Equal(t, application.Email, found.Email)
		assert.Equal(t, "pending", found.Status)

		_, err = h.flow.GetApplication(ctx, admin.ID, 999999)
		require.Error(t, err)
		assert.True(t, businessflow.IsApplicationNotFound(err))
		return nil
	})
	require.NoError(t, err)
}

func TestExportApplications(t *testing.T) {
	err := testhelpers.TestWithDB(func(db *testhelpers.TestDB) error {
		h := newAdminHarness(db)
		ctx := testhelpers.CreateTestContext()

		admin, err := h.fixtures.CreateTestAdmin()
		require.NoError(t, err)
		application, err := h.fixtures.CreateTestApplication(models.ApplicationStatusPending)
		require.NoError(t, err)

		data, err := h.flow.ExportApplications(ctx, admin.ID, "pending")
		require.NoError(t, err)
		require.NotEmpty(t, data)

		// The workbook has a header row plus one application row
		workbook, err := excelize.OpenReader(bytes.NewReader(data))
		require.NoError(t, err)
		defer workbook.Close()

		rows, err := workbook.GetRows("Applications")
		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, "Email", rows[0][2])
		assert.Equal(t, application.Email, rows[1][2])
		return nil
	})
	require.NoError(t, err)
}

func TestListOrdersForUser(t *testing.T) {
	err := testhelpers.TestWithDB(func(db *testhelpers.TestDB) error {
		h := newAdminHarness(db)
		orders := newOrderHarness(db)
		ctx := testhelpers.CreateTestContext()

		admin, err := h.fixtures.CreateTestAdmin()
		require.NoError(t, err)

		buyer := orders.wholesaleUser(t, models.WholesalePlanA)
		product, err := orders.fixtures.CreateTestProduct("exported", "2500")
		require.NoError(t, err)
		_, err = orders.flow.CreateOrder(ctx, buyer.ID, &dto.CreateOrderRequest{
			Items: []dto.OrderItemRequest{{ProductID: product.ID, Quantity: 2}},
		}, nil)
		require.NoError(t, err)

		response, err := h.flow.ListOrdersForUser(ctx, admin.ID, buyer.ID)
		require.NoError(t, err)
		require.Len(t, response.Orders, 1)
		assert.Equal(t, "5000.00", response.Orders[0].Total)
		return nil
	})
	require.NoError(t, err)
}
