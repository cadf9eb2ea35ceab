package pricing

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Product is the priced catalog item.
type Product struct {
	ID   string `json:"id"`
	Key  string `json:"key"`
	Type string `json:"type,omitempty"`
	Name string `json:"name"`
	Slug string `json:"slug,omitempty"`
	// SalesCoefficient is the coefficient stored on the product row, if any.
	SalesCoefficient *decimal.Decimal `json:"sales_coefficient,omitempty"`
	Grid             *PriceGrid       `json:"grid"`
	Mechanics        Mechanics        `json:"mechanics"`
}

// ProductType returns Type, or the first two segments of Key ("store_banne_kissimy"
// gives "store_banne").
func (p Product) ProductType() string {
	if p.Type != "" {
		return p.Type
	}
	parts := strings.SplitN(p.Key, "_", 3)
	if len(parts) < 2 {
		return p.Key
	}
	return parts[0] + "_" + parts[1]
}

func (p Product) Validate() error {
	if strings.TrimSpace(p.ID) == "" {
		return fmt.Errorf("%w: product id is required", ErrInvalidCatalogData)
	}
	if p.Grid == nil {
		return fmt.Errorf("%w: product %s has no price grid", ErrInvalidCatalogData, p.ID)
	}
	if p.SalesCoefficient != nil && !p.SalesCoefficient.IsPositive() {
		return fmt.Errorf("%w: product %s has a non-positive sales coefficient", ErrInvalidCatalogData, p.ID)
	}
	if err := p.Mechanics.Validate(); err != nil {
		return fmt.Errorf("product %s: %w", p.ID, err)
	}
	return nil
}
