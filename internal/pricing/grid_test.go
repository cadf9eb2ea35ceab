package pricing

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testGrid(t *testing.T) *PriceGrid {
	t.Helper()
	grid, err := NewPriceGrid(map[int]TierTable{
		1500: twoTierTable(),
		2000: MustTierTable(
			PriceTier{MaxDimension: 2390, PurchasePrice: dec("1102")},
			PriceTier{MaxDimension: 3570, PurchasePrice: dec("1210")},
			PriceTier{MaxDimension: 12000, PurchasePrice: dec("2900")},
		),
	}, map[int]int{2000: 2390})
	require.NoError(t, err)
	return grid
}

func TestPriceGridLookup(t *testing.T) {
	grid := testGrid(t)

	tier, err := grid.Lookup(1500, 3200)
	require.NoError(t, err)
	assertMoney(t, "1137.00", tier.PurchasePrice)

	tier, err = grid.Lookup(2000, 2390)
	require.NoError(t, err)
	assertMoney(t, "1102.00", tier.PurchasePrice)
}

func TestPriceGridLookupErrors(t *testing.T) {
	grid := testGrid(t)

	_, err := grid.Lookup(1750, 3000)
	assert.ErrorIs(t, err, ErrUnknownAxisValue, "projection must be an exact key")

	_, err = grid.Lookup(2000, 2000)
	assert.ErrorIs(t, err, ErrInvalidDimension, "below the minimum width")

	_, err = grid.Lookup(1500, 13000)
	assert.ErrorIs(t, err, ErrInvalidDimension)
	assert.Contains(t, err.Error(), "projection 1500")
}

func TestPriceGridLimits(t *testing.T) {
	grid := testGrid(t)

	limits, err := grid.Limits(2000)
	require.NoError(t, err)
	assert.Equal(t, WidthLimits{Projection: 2000, MinWidth: 2390, MaxWidth: 12000}, limits)

	limits, err = grid.Limits(1500)
	require.NoError(t, err)
	assert.Equal(t, 1, limits.MinWidth)
	assert.Equal(t, 3570, limits.MaxWidth)

	assert.Equal(t, []int{1500, 2000}, grid.Projections())
}

func TestNewPriceGridValidation(t *testing.T) {
	_, err := NewPriceGrid(nil, nil)
	assert.ErrorIs(t, err, ErrInvalidCatalogData)

	_, err = NewPriceGrid(map[int]TierTable{1500: {}}, nil)
	assert.ErrorIs(t, err, ErrInvalidCatalogData)

	_, err = NewPriceGrid(map[int]TierTable{1500: twoTierTable()}, map[int]int{2000: 100})
	assert.ErrorIs(t, err, ErrInvalidCatalogData)

	_, err = NewPriceGrid(map[int]TierTable{1500: twoTierTable()}, map[int]int{1500: 4000})
	assert.ErrorIs(t, err, ErrInvalidCatalogData)
}

func TestPriceGridJSON(t *testing.T) {
	grid := testGrid(t)
	data, err := json.Marshal(grid)
	require.NoError(t, err)

	var decoded PriceGrid
	require.NoError(t, json.Unmarshal(data, &decoded))

	limits, err := decoded.Limits(2000)
	require.NoError(t, err)
	assert.Equal(t, 2390, limits.MinWidth)

	tier, err := decoded.Lookup(1500, 3200)
	require.NoError(t, err)
	assertMoney(t, "1137.00", tier.PurchasePrice)
}
