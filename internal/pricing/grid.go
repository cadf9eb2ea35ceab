package pricing

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	"github.com/shopspring/decimal"
)

// PriceGrid is a two-axis purchase price table: projection selects a width table.
type PriceGrid struct {
	tables    map[int]TierTable
	minWidths map[int]int
}

// WidthLimits is the manufacturable width range for one projection.
type WidthLimits struct {
	Projection int `json:"projection"`
	MinWidth   int `json:"min_width"`
	MaxWidth   int `json:"max_width"`
}

// NewPriceGrid validates and copies the tables. minWidths may be nil; every entry
// must refer to an existing projection and stay within its table.
func NewPriceGrid(tables map[int]TierTable, minWidths map[int]int) (*PriceGrid, error) {
	if len(tables) == 0 {
		return nil, fmt.Errorf("%w: price grid has no projection", ErrInvalidCatalogData)
	}
	g := &PriceGrid{
		tables:    make(map[int]TierTable, len(tables)),
		minWidths: make(map[int]int, len(minWidths)),
	}
	for projection, table := range tables {
		if projection <= 0 {
			return nil, fmt.Errorf("%w: non-positive projection %d", ErrInvalidCatalogData, projection)
		}
		if table.Len() == 0 {
			return nil, fmt.Errorf("%w: projection %d has an empty table", ErrInvalidCatalogData, projection)
		}
		g.tables[projection] = table
	}
	for projection, minWidth := range minWidths {
		table, ok := g.tables[projection]
		if !ok {
			return nil, fmt.Errorf("%w: minimum width given for unknown projection %d", ErrInvalidCatalogData, projection)
		}
		if minWidth <= 0 || minWidth > table.Max() {
			return nil, fmt.Errorf("%w: minimum width %d out of range for projection %d", ErrInvalidCatalogData, minWidth, projection)
		}
		g.minWidths[projection] = minWidth
	}
	return g, nil
}

// Table returns the width table of a projection.
func (g *PriceGrid) Table(projection int) (TierTable, error) {
	table, ok := g.tables[projection]
	if !ok {
		return TierTable{}, fmt.Errorf("%w: projection %d mm (available: %v)", ErrUnknownAxisValue, projection, g.Projections())
	}
	return table, nil
}

// Lookup resolves the purchase price for (projection, width). Projection must be an
// exact key of the grid.
func (g *PriceGrid) Lookup(projection, width int) (PriceTier, error) {
	table, err := g.Table(projection)
	if err != nil {
		return PriceTier{}, err
	}
	if minWidth, ok := g.minWidths[projection]; ok && width < minWidth {
		return PriceTier{}, fmt.Errorf("%w: width %d mm is below the minimum %d mm for projection %d mm", ErrInvalidDimension, width, minWidth, projection)
	}
	tier, err := table.Lookup(width)
	if err != nil {
		return PriceTier{}, fmt.Errorf("width for projection %d mm: %w", projection, err)
	}
	return tier, nil
}

// Projections returns the available projections in ascending order.
func (g *PriceGrid) Projections() []int {
	out := make([]int, 0, len(g.tables))
	for p := range g.tables {
		out = append(out, p)
	}
	sort.Ints(out)
	return out
}

// Limits returns the width range accepted for a projection.
func (g *PriceGrid) Limits(projection int) (WidthLimits, error) {
	table, err := g.Table(projection)
	if err != nil {
		return WidthLimits{}, err
	}
	minWidth := g.minWidths[projection]
	if minWidth == 0 {
		minWidth = 1
	}
	return WidthLimits{Projection: projection, MinWidth: minWidth, MaxWidth: table.Max()}, nil
}

func (g *PriceGrid) lowestPrice() decimal.Decimal {
	var lowest decimal.Decimal
	found := false
	for _, table := range g.tables {
		for _, t := range table.tiers {
			if !found || t.PurchasePrice.LessThan(lowest) {
				lowest, found = t.PurchasePrice, true
			}
		}
	}
	return lowest
}

type gridJSON struct {
	Tables    map[string]TierTable `json:"tables"`
	MinWidths map[string]int       `json:"min_widths,omitempty"`
}

func (g *PriceGrid) MarshalJSON() ([]byte, error) {
	out := gridJSON{Tables: make(map[string]TierTable, len(g.tables))}
	for p, t := range g.tables {
		out.Tables[strconv.Itoa(p)] = t
	}
	if len(g.minWidths) > 0 {
		out.MinWidths = make(map[string]int, len(g.minWidths))
		for p, w := range g.minWidths {
			out.MinWidths[strconv.Itoa(p)] = w
		}
	}
	return json.Marshal(out)
}

func (g *PriceGrid) UnmarshalJSON(data []byte) error {
	var in gridJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	tables := make(map[int]TierTable, len(in.Tables))
	for key, t := range in.Tables {
		p, err := strconv.Atoi(key)
		if err != nil {
			return fmt.Errorf("%w: projection key %q", ErrInvalidCatalogData, key)
		}
		tables[p] = t
	}
	minWidths := make(map[int]int, len(in.MinWidths))
	for key, w := range in.MinWidths {
		p, err := strconv.Atoi(key)
		if err != nil {
			return fmt.Errorf("%w: projection key %q", ErrInvalidCatalogData, key)
		}
		minWidths[p] = w
	}
	grid, err := NewPriceGrid(tables, minWidths)
	if err != nil {
		return err
	}
	*g = *grid
	return nil
}
