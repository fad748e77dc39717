package tests

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solution-fragrance/portal/app/dto"
	businessflow "github.com/solution-fragrance/portal/business_flow"
	"github.com/solution-fragrance/portal/config"
	"github.com/solution-fragrance/portal/models"
	"github.com/solution-fragrance/portal/repository"
	testhelpers "github.com/solution-fragrance/portal/testing"
	"github.com/solution-fragrance/portal/utils"
)

type orderHarness struct {
	flow     businessflow.OrderFlow
	fixtures *testhelpers.TestFixtures

	orderRepo     repository.OrderRepository
	orderItemRepo repository.OrderItemRepository
}

func newOrderHarness(db *testhelpers.TestDB) *orderHarness {
	wholesaleCfg := &config.WholesaleConfig{
		SiteURL:         "https://solutionfragancias.com",
		DefaultCurrency: utils.DefaultCurrency,
	}

	orderRepo := repository.NewOrderRepository(db.DB)
	orderItemRepo := repository.NewOrderItemRepository(db.DB)

	// Redis client nil: the catalog is read straight from the database
	flow := businessflow.NewOrderFlow(
		repository.NewProductRepository(db.DB),
		orderRepo,
		orderItemRepo,
		repository.NewProfileRepository(db.DB),
		repository.NewAuditLogRepository(db.DB),
		nil,
		&config.CacheConfig{},
		wholesaleCfg,
		db.DB,
	)

	return &orderHarness{
		flow:          flow,
		fixtures:      testhelpers.NewTestFixtures(db),
		orderRepo:     orderRepo,
		orderItemRepo: orderItemRepo,
	}
}

func (h *orderHarness) wholesaleUser(t *testing.T, plan models.WholesalePlan) *models.User {
	t.Helper()
	user, err := h.fixtures.CreateTestUser()
	require.NoError(t, err)
	_, err = h.fixtures.CreateTestProfile(user, models.RoleWholesale, models.WholesaleStatusApproved, utils.ToPtr(plan))
	require.NoError(t, err)
	return user
}

func TestCreateOrderPlanBPricing(t *testing.T) {
	err := testhelpers.TestWithDB(func(db *testhelpers.TestDB) error {
		h := newOrderHarness(db)
		ctx := testhelpers.CreateTestContext()

		user := h.wholesaleUser(t, models.WholesalePlanB)
		perfume, err := h.fixtures.CreateTestProduct("eau-de-parfum", "10999")
		require.NoError(t, err)
		cologne, err := h.fixtures.CreateTestProduct("cologne", "5000")
		require.NoError(t, err)

		request := &dto.CreateOrderRequest{Items: []dto.OrderItemRequest{
			{ProductID: perfume.ID, Quantity: 2},
			{ProductID: cologne.ID, Quantity: 1},
		}}

		order, err := h.flow.CreateOrder(ctx, user.ID, request, nil)
		require.NoError(t, err)

		// 10999*0.9 rounds to 9899; 5000*0.9 is 4500; 2*9899 + 4500 = 24298
		assert.Equal(t, "draft", order.Status)
		assert.Equal(t, utils.DefaultCurrency, order.Currency)
		assert.Equal(t, "24298.00", order.Total)
		require.Len(t, order.Items, 2)
		assert.Equal(t, "9899.00", order.Items[0].UnitPrice)
		assert.Equal(t, "4500.00", order.Items[1].UnitPrice)

		// The stored order matches what was returned
		stored, err := h.orderRepo.ByID(ctx, order.ID)
		require.NoError(t, err)
		require.NotNil(t, stored)
		assert.Equal(t, models.ChannelWholesale, stored.Channel)
		assert.True(t, decimal.RequireFromString("24298").Equal(stored.Total))
		require.NotNil(t, stored.WholesalePlan)
		assert.Equal(t, models.WholesalePlanB, *stored.WholesalePlan)
		return nil
	})
	require.NoError(t, err)
}

func TestCreateOrderGuards(t *testing.T) {
	err := testhelpers.TestWithDB(func(db *testhelpers.TestDB) error {
		h := newOrderHarness(db)
		ctx := testhelpers.CreateTestContext()

		product, err := h.fixtures.CreateTestProduct("sample", "1000")
		require.NoError(t, err)
		lines := &dto.CreateOrderRequest{Items: []dto.OrderItemRequest{{ProductID: product.ID, Quantity: 1}}}

		t.Run("retail profile is denied", func(t *testing.T) {
			user, err := h.fixtures.CreateTestUser()
			require.NoError(t, err)
			_, err = h.fixtures.CreateTestProfile(user, models.RoleRetail, models.WholesaleStatusNone, nil)
			require.NoError(t, err)

			_, err = h.flow.CreateOrder(ctx, user.ID, lines, nil)
			require.Error(t, err)
			assert.True(t, businessflow.IsWholesaleAccessDenied(err))
		})

		t.Run("approved without a plan is rejected", func(t *testing.T) {
			user, err := h.fixtures.CreateTestUser()
			require.NoError(t, err)
			_, err = h.fixtures.CreateTestProfile(user, models.RoleWholesale, models.WholesaleStatusApproved, nil)
			require.NoError(t, err)

			_, err = h.flow.CreateOrder(ctx, user.ID, lines, nil)
			require.Error(t, err)
			assert.True(t, businessflow.IsPlanNotAssigned(err))
		})

		t.Run("admin without a plan buys at plan A", func(t *testing.T) {
			admin, err := h.fixtures.CreateTestAdmin()
			require.NoError(t, err)

			order, err := h.flow.CreateOrder(ctx, admin.ID, lines, nil)
			require.NoError(t, err)
			assert.Equal(t, "1000.00", order.Total)
		})

		t.Run("unknown product", func(t *testing.T) {
			user := h.wholesaleUser(t, models.WholesalePlanA)
			request := &dto.CreateOrderRequest{Items: []dto.OrderItemRequest{{ProductID: 999999, Quantity: 1}}}
			_, err := h.flow.CreateOrder(ctx, user.ID, request, nil)
			require.Error(t, err)
			assert.True(t, businessflow.IsProductNotFound(err))
		})

		t.Run("inactive product", func(t *testing.T) {
			user := h.wholesaleUser(t, models.WholesalePlanA)
			inactive, err := h.fixtures.CreateTestProduct("discontinued", "1000")
			require.NoError(t, err)
			require.NoError(t, db.DB.Model(inactive).Update("is_active", false).Error)

			request := &dto.CreateOrderRequest{Items: []dto.OrderItemRequest{{ProductID: inactive.ID, Quantity: 1}}}
			_, err = h.flow.CreateOrder(ctx, user.ID, request, nil)
			require.Error(t, err)

			// Nothing is persisted when a line fails
			orders, listErr := h.orderRepo.ListByUser(ctx, user.ID, models.ChannelWholesale)
			require.NoError(t, listErr)
			assert.Empty(t, orders)
		})

		t.Run("empty order", func(t *testing.T) {
			user := h.wholesaleUser(t, models.WholesalePlanA)
			_, err := h.flow.CreateOrder(ctx, user.ID, &dto.CreateOrderRequest{}, nil)
			require.Error(t, err)
			assert.True(t, businessflow.IsOrderEmpty(err))
		})
		return nil
	})
	require.NoError(t, err)
}

func TestListProductsPricedPerPlan(t *testing.T) {
	err := testhelpers.TestWithDB(func(db *testhelpers.TestDB) error {
		h := newOrderHarness(db)
		ctx := testhelpers.CreateTestContext()

		_, err := h.fixtures.CreateTestProduct("listed", "2000")
		require.NoError(t, err)

		planA := h.wholesaleUser(t, models.WholesalePlanA)
		planB := h.wholesaleUser(t, models.WholesalePlanB)

		a, err := h.flow.ListProducts(ctx, planA.ID)
		require.NoError(t, err)
		b, err := h.flow.ListProducts(ctx, planB.ID)
		require.NoError(t, err)

		require.Len(t, a.Products, 1)
		require.Len(t, b.Products, 1)
		assert.Equal(t, "A", a.Plan)
		assert.Equal(t, "B", b.Plan)
		assert.Equal(t, "2000.00", a.Products[0].UnitPrice)
		assert.Equal(t, "1800.00", b.Products[0].UnitPrice)
		return nil
	})
	require.NoError(t, err)
}

func TestCatalogUsesRetailPrices(t *testing.T) {
	err := testhelpers.TestWithDB(func(db *testhelpers.TestDB) error {
		h := newOrderHarness(db)
		ctx := testhelpers.CreateTestContext()

		product, err := h.fixtures.CreateTestProduct("public", "1000")
		require.NoError(t, err)

		inactive, err := h.fixtures.CreateTestProduct("hidden", "1000")
		require.NoError(t, err)
		require.NoError(t, db.DB.Model(inactive).Update("is_active", false).Error)

		catalog, err := h.flow.Catalog(ctx)
		require.NoError(t, err)

		require.Len(t, catalog.Products, 1)
		assert.Equal(t, product.Slug, catalog.Products[0].Slug)
		assert.Equal(t, product.PriceRetail.StringFixed(2), catalog.Products[0].UnitPrice)
		return nil
	})
	require.NoError(t, err)
}

func TestListOrderItemsHidesForeignOrders(t *testing.T) {
	err := testhelpers.TestWithDB(func(db *testhelpers.TestDB) error {
		h := newOrderHarness(db)
		ctx := testhelpers.CreateTestContext()

		owner := h.wholesaleUser(t, models.WholesalePlanA)
		other := h.wholesaleUser(t, models.WholesalePlanA)
		product, err := h.fixtures.CreateTestProduct("guarded", "3000")
		require.NoError(t, err)

		order, err := h.flow.CreateOrder(ctx, owner.ID, &dto.CreateOrderRequest{
			Items: []dto.OrderItemRequest{{ProductID: product.ID, Quantity: 3}},
		}, nil)
		require.NoError(t, err)

		items, err := h.flow.ListOrderItems(ctx, owner.ID, order.ID)
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, 3, items[0].Quantity)
		assert.Equal(t, "9000.00", items[0].LineTotal)

		// Someone else's order reads as not found, not forbidden
		_, err = h.flow.ListOrderItems(ctx, other.ID, order.ID)
		require.Error(t, err)
		assert.True(t, businessflow.IsOrderNotFound(err))
		return nil
	})
	require.NoError(t, err)
}
