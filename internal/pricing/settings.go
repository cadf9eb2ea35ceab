package pricing

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Settings are the configuration values of the pricing pipeline.
type Settings struct {
	VATRate             decimal.Decimal
	ReducedVATRate      decimal.Decimal
	GlobalCoefficient   decimal.Decimal
	ProductCoefficients map[string]decimal.Decimal
	TypeCoefficients    map[string]decimal.Decimal
}

// DefaultSettings mirrors the storefront's historical constants.
func DefaultSettings() Settings {
	return Settings{
		VATRate:           decimal.RequireFromString("0.20"),
		ReducedVATRate:    decimal.RequireFromString("0.10"),
		GlobalCoefficient: decimal.RequireFromString("2.0"),
		ProductCoefficients: map[string]decimal.Decimal{
			"store_banne_kissimy":  decimal.RequireFromString("2.0"),
			"store_banne_kitanguy": decimal.RequireFromString("2.0"),
			"store_banne_monobloc": decimal.RequireFromString("2.0"),
			"porte_blindee":        decimal.RequireFromString("2.2"),
			"store_antichaleur":    decimal.RequireFromString("2.5"),
		},
		TypeCoefficients: map[string]decimal.Decimal{
			"store_banne":        decimal.RequireFromString("2.0"),
			"porte_blindee":      decimal.RequireFromString("2.2"),
			"store_antichaleur":  decimal.RequireFromString("2.5"),
			"fenetre_menuiserie": decimal.RequireFromString("2.3"),
			"armoire_placard":    decimal.RequireFromString("2.1"),
		},
	}
}

// Validate rejects negative rates and non-positive map coefficients. A zero global
// coefficient is allowed and makes unresolved products fail with ErrMissingCoefficient.
func (s Settings) Validate() error {
	if s.VATRate.IsNegative() || s.ReducedVATRate.IsNegative() {
		return fmt.Errorf("vat rates must not be negative")
	}
	if s.GlobalCoefficient.IsNegative() {
		return fmt.Errorf("global coefficient must not be negative")
	}
	for key, c := range s.ProductCoefficients {
		if !c.IsPositive() {
			return fmt.Errorf("product coefficient %q must be positive", key)
		}
	}
	for key, c := range s.TypeCoefficients {
		if !c.IsPositive() {
			return fmt.Errorf("type coefficient %q must be positive", key)
		}
	}
	return nil
}
