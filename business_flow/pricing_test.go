package businessflow

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/solution-fragrance/portal/models"
)

func product(wholesale string) *models.Product {
	return &models.Product{
		PriceRetail:    decimal.RequireFromString(wholesale).Mul(decimal.NewFromFloat(1.4)),
		PriceWholesale: decimal.RequireFromString(wholesale),
	}
}

func TestPriceForPlan(t *testing.T) {
	cases := []struct {
		name      string
		wholesale string
		plan      models.WholesalePlan
		want      string
	}{
		{"plan A pays the wholesale price as-is", "10000", models.WholesalePlanA, "10000"},
		{"plan A keeps cents", "10999.50", models.WholesalePlanA, "10999.5"},
		{"plan B takes 10% off", "10000", models.WholesalePlanB, "9000"},
		{"plan B rounds to the nearest whole unit", "10999", models.WholesalePlanB, "9899"},
		{"plan B rounds half up", "11595", models.WholesalePlanB, "10436"},
		{"plan B on a small price", "1", models.WholesalePlanB, "1"},
		{"zero price", "0", models.WholesalePlanB, "0"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := PriceForPlan(product(tc.wholesale), tc.plan)
			assert.True(t, decimal.RequireFromString(tc.want).Equal(got),
				"want %s, got %s", tc.want, got.String())
		})
	}
}

func TestPriceForPlanIsDeterministic(t *testing.T) {
	p := product("12345.67")
	first := PriceForPlan(p, models.WholesalePlanB)
	for i := 0; i < 10; i++ {
		assert.True(t, first.Equal(PriceForPlan(p, models.WholesalePlanB)))
	}
	// The input product is never mutated
	assert.True(t, decimal.RequireFromString("12345.67").Equal(p.PriceWholesale))
}
