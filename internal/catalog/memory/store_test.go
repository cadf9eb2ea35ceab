package memory

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jnabil1974/storal.fr-sub003/internal/catalog"
	"github.com/jnabil1974/storal.fr-sub003/internal/pricing"
)

func loadFixture(t *testing.T) *Store {
	t.Helper()
	s, err := LoadFile("testdata/catalog.yaml")
	require.NoError(t, err)
	return s
}

func TestLoadFile(t *testing.T) {
	s := loadFixture(t)
	ctx := context.Background()

	ids, err := s.ProductIDs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"antichaleur", "belharra", "kissimy"}, ids)

	p, err := s.Product(ctx, "kissimy")
	require.NoError(t, err)
	assert.Equal(t, "store_banne", p.ProductType())
	limits, err := p.Grid.Limits(2000)
	require.NoError(t, err)
	assert.Equal(t, pricing.WidthLimits{Projection: 2000, MinWidth: 2390, MaxWidth: 12000}, limits)

	opts, err := s.Options(ctx, "kissimy")
	require.NoError(t, err)
	require.Len(t, opts, 3)
	assert.Equal(t, pricing.CategoryMotorisation, opts[0].Category)
	require.NotNil(t, opts[0].Tiers)
	assert.Equal(t, pricing.CategoryEmetteur, opts[1].Category)
	assert.True(t, opts[1].PurchasePrice.Equal(decimal.RequireFromString("45.5")))

	rules, err := s.PricingRules(ctx, "kissimy")
	require.NoError(t, err)
	require.Len(t, rules, 1)
	assert.True(t, rules[0].IsActive)
	require.NotNil(t, rules[0].ValidUntil)

	anti, err := s.Product(ctx, "antichaleur")
	require.NoError(t, err)
	require.NotNil(t, anti.SalesCoefficient)
	assert.Equal(t, "2.5", anti.SalesCoefficient.String())
}

func TestShippingRulesMergeGlobalAndProduct(t *testing.T) {
	s := loadFixture(t)
	ctx := context.Background()

	rules, err := s.ShippingRules(ctx, "antichaleur")
	require.NoError(t, err)
	require.Len(t, rules, 2)
	assert.Equal(t, "antichaleur-fragile", rules[0].ID)
	assert.Equal(t, "transport-xl", rules[1].ID)

	rules, err = s.ShippingRules(ctx, "kissimy")
	require.NoError(t, err)
	require.Len(t, rules, 1)
}

func TestLoadRejectsInvalidData(t *testing.T) {
	_, err := Load([]byte(`
products:
  - id: broken
    key: broken
    name: Broken
    grid:
      1000:
        - { max: 2000, price: "10" }
        - { max: 1000, price: "20" }
`))
	assert.ErrorIs(t, err, pricing.ErrInvalidCatalogData)

	_, err = Load([]byte("products: [unterminated"))
	assert.ErrorIs(t, err, pricing.ErrInvalidCatalogData)

	_, err = LoadFile("testdata/missing.yaml")
	assert.Error(t, err)
}

func TestProductNotFound(t *testing.T) {
	_, err := NewStore().Product(context.Background(), "nope")
	assert.ErrorIs(t, err, pricing.ErrProductNotFound)
}

func TestPricingRuleLifecycle(t *testing.T) {
	s := loadFixture(t)
	ctx := context.Background()
	from := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	until := from.AddDate(0, 0, 7)

	rule, err := pricing.NewPricingRule("autumn", "kissimy", decimal.RequireFromString("1.9"), "", from, &until)
	require.NoError(t, err)
	created, err := s.CreatePricingRule(ctx, rule)
	require.NoError(t, err)
	assert.False(t, created.CreatedAt.IsZero())

	_, err = s.CreatePricingRule(ctx, rule)
	assert.ErrorIs(t, err, catalog.ErrDuplicateRule)
	assert.NotErrorIs(t, err, pricing.ErrInvalidCatalogData)

	orphan := rule
	orphan.ID, orphan.ProductID = "orphan", "nope"
	_, err = s.CreatePricingRule(ctx, orphan)
	assert.ErrorIs(t, err, pricing.ErrProductNotFound)

	page, total, err := s.ListPricingRules(ctx, catalog.RuleFilter{ProductID: "kissimy", Limit: 1})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	require.Len(t, page, 1)
	assert.Equal(t, "autumn", page[0].ID, "most recent valid_from first")

	page, _, err = s.ListPricingRules(ctx, catalog.RuleFilter{Limit: 10, Offset: 5})
	require.NoError(t, err)
	assert.Empty(t, page)

	expiring, err := s.RulesExpiringBetween(ctx, from, from.AddDate(0, 1, 0))
	require.NoError(t, err)
	require.Len(t, expiring, 1)
	assert.Equal(t, "autumn", expiring[0].ID)

	deactivated, err := s.DeactivatePricingRule(ctx, "autumn")
	require.NoError(t, err)
	assert.False(t, deactivated.IsActive)

	expiring, err = s.RulesExpiringBetween(ctx, from, from.AddDate(0, 1, 0))
	require.NoError(t, err)
	assert.Empty(t, expiring)

	deleted, err := s.DeletePricingRule(ctx, "autumn")
	require.NoError(t, err)
	assert.Equal(t, "kissimy", deleted.ProductID)

	_, err = s.GetPricingRule(ctx, "autumn")
	assert.ErrorIs(t, err, catalog.ErrRuleNotFound)
	_, err = s.DeletePricingRule(ctx, "autumn")
	assert.ErrorIs(t, err, catalog.ErrRuleNotFound)
	_, err = s.DeactivatePricingRule(ctx, "autumn")
	assert.ErrorIs(t, err, catalog.ErrRuleNotFound)
}

func TestQuoteAgainstFixture(t *testing.T) {
	calc, err := pricing.NewCalculator(loadFixture(t), pricing.DefaultSettings(), nil)
	require.NoError(t, err)
	calc.WithClock(func() time.Time { return time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC) })

	q, err := calc.Quote(context.Background(), pricing.QuoteRequest{ProductID: "kissimy", Width: 3200, Projection: 1500})
	require.NoError(t, err)
	assert.Equal(t, "2274.00", q.TotalHT.StringFixed(2))
	assert.Equal(t, "2728.80", q.TotalTTC.StringFixed(2))

	// Inside the summer promotion window the rule coefficient applies.
	calc.WithClock(func() time.Time { return time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC) })
	q, err = calc.Quote(context.Background(), pricing.QuoteRequest{ProductID: "kissimy", Width: 3200, Projection: 1500})
	require.NoError(t, err)
	assert.Equal(t, pricing.SourceRule, q.CoefficientSource)
	assert.Equal(t, "2046.60", q.TotalHT.StringFixed(2))
}
