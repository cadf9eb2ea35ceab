package pricing

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
)

// PriceTier is one step of a pricing table: every dimension up to and including
// MaxDimension (mm) costs PurchasePrice.
type PriceTier struct {
	MaxDimension  int             `json:"max_dimension" yaml:"max_dimension"`
	PurchasePrice decimal.Decimal `json:"purchase_price" yaml:"purchase_price"`
}

// TierTable is a validated step function. The zero value is an empty table that
// rejects every lookup.
type TierTable struct {
	tiers []PriceTier
}

// NewTierTable validates tiers and returns an immutable table. Bounds must be
// positive and strictly ascending, prices positive.
func NewTierTable(tiers []PriceTier) (TierTable, error) {
	if len(tiers) == 0 {
		return TierTable{}, fmt.Errorf("%w: tier table is empty", ErrInvalidCatalogData)
	}
	prev := 0
	for i, t := range tiers {
		if t.MaxDimension <= 0 {
			return TierTable{}, fmt.Errorf("%w: tier %d has non-positive bound %d", ErrInvalidCatalogData, i, t.MaxDimension)
		}
		if t.MaxDimension <= prev {
			return TierTable{}, fmt.Errorf("%w: tier %d bound %d is not above previous bound %d", ErrInvalidCatalogData, i, t.MaxDimension, prev)
		}
		if !t.PurchasePrice.IsPositive() {
			return TierTable{}, fmt.Errorf("%w: tier %d has non-positive price %s", ErrInvalidCatalogData, i, t.PurchasePrice)
		}
		prev = t.MaxDimension
	}
	copied := make([]PriceTier, len(tiers))
	copy(copied, tiers)
	return TierTable{tiers: copied}, nil
}

// MustTierTable is NewTierTable for static tables; it panics on invalid input.
func MustTierTable(tiers ...PriceTier) TierTable {
	t, err := NewTierTable(tiers)
	if err != nil {
		panic(err)
	}
	return t
}

// Lookup returns the tier with the smallest bound greater than or equal to d.
func (t TierTable) Lookup(d int) (PriceTier, error) {
	if d <= 0 {
		return PriceTier{}, fmt.Errorf("%w: %d mm must be positive", ErrInvalidDimension, d)
	}
	i := sort.Search(len(t.tiers), func(i int) bool { return t.tiers[i].MaxDimension >= d })
	if i == len(t.tiers) {
		return PriceTier{}, fmt.Errorf("%w: %d mm exceeds the largest bound %d mm", ErrInvalidDimension, d, t.Max())
	}
	return t.tiers[i], nil
}

// Max returns the largest bound, or 0 for an empty table.
func (t TierTable) Max() int {
	if len(t.tiers) == 0 {
		return 0
	}
	return t.tiers[len(t.tiers)-1].MaxDimension
}

// Len returns the number of tiers.
func (t TierTable) Len() int { return len(t.tiers) }

// Tiers returns a copy of the tiers in ascending order.
func (t TierTable) Tiers() []PriceTier {
	out := make([]PriceTier, len(t.tiers))
	copy(out, t.tiers)
	return out
}

func (t TierTable) MarshalJSON() ([]byte, error) {
	if t.tiers == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(t.tiers)
}

// UnmarshalJSON decodes through NewTierTable so invalid cached data is rejected.
func (t *TierTable) UnmarshalJSON(data []byte) error {
	var tiers []PriceTier
	if err := json.Unmarshal(data, &tiers); err != nil {
		return err
	}
	if len(tiers) == 0 {
		*t = TierTable{}
		return nil
	}
	table, err := NewTierTable(tiers)
	if err != nil {
		return err
	}
	*t = table
	return nil
}
