package pricing

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Option categories seen in the catalog.
const (
	CategoryMotorisation = "motorisation"
	CategoryEmetteur     = "emetteur"
	CategoryToile        = "toile"
	CategoryEclairage    = "eclairage"
	CategoryLambrequin   = "lambrequin"
	CategoryPose         = "pose"
	CategoryCouleur      = "couleur"
	CategoryAccessoire   = "accessoire"
)

// Axis names the measured dimension that keys a tiered option.
type Axis string

const (
	AxisWidth      Axis = "width"
	AxisProjection Axis = "projection"
	// AxisArms keys the tiers by the product's arm count (LED arms).
	AxisArms Axis = "arms"
)

// Dimensions is a validated configuration: width and projection in mm and the arm
// count derived from them.
type Dimensions struct {
	Width      int
	Projection int
	Arms       int
}

// OptionCatalogEntry is a purchasable add-on. Exactly one pricing mode applies:
// tiered when Tiers or Grid is set, per square metre when PerSquareMeter is set,
// flat otherwise. Grid is keyed by projection, then by arm count.
type OptionCatalogEntry struct {
	ID               string          `json:"id"`
	ProductID        string          `json:"product_id"`
	Name             string          `json:"name"`
	Category         string          `json:"category"`
	PurchasePrice    decimal.Decimal `json:"purchase_price"`
	SalesCoefficient decimal.Decimal `json:"sales_coefficient"`
	Axis             Axis            `json:"axis,omitempty"`
	Tiers            *TierTable      `json:"tiers,omitempty"`
	Grid             *PriceGrid      `json:"grid,omitempty"`
	PerSquareMeter   bool            `json:"per_square_meter,omitempty"`
}

// NormalizeCategory maps display labels ("Émetteur", "Motorisation") to catalog keys.
func NormalizeCategory(category string) string {
	c := strings.ToLower(strings.TrimSpace(category))
	switch c {
	case "émetteur", "emetteurs", "émetteurs":
		return CategoryEmetteur
	case "toiles":
		return CategoryToile
	case "éclairage":
		return CategoryEclairage
	}
	return c
}

// Validate checks the invariants of a catalog row.
func (o OptionCatalogEntry) Validate() error {
	if strings.TrimSpace(o.ID) == "" {
		return fmt.Errorf("%w: option id is required", ErrInvalidCatalogData)
	}
	if o.PurchasePrice.IsNegative() {
		return fmt.Errorf("%w: option %s has a negative purchase price", ErrInvalidCatalogData, o.ID)
	}
	if o.SalesCoefficient.IsNegative() {
		return fmt.Errorf("%w: option %s has a negative sales coefficient", ErrInvalidCatalogData, o.ID)
	}
	if o.Grid != nil {
		if o.Tiers != nil || o.PerSquareMeter {
			return fmt.Errorf("%w: option %s mixes a projection grid with another pricing mode", ErrInvalidCatalogData, o.ID)
		}
		if o.Axis != AxisArms {
			return fmt.Errorf("%w: option %s grid must be keyed by arms, got %q", ErrInvalidCatalogData, o.ID, o.Axis)
		}
	}
	if o.Tiers != nil {
		if o.PerSquareMeter {
			return fmt.Errorf("%w: option %s cannot be both tiered and priced per m²", ErrInvalidCatalogData, o.ID)
		}
		if o.Tiers.Len() == 0 {
			return fmt.Errorf("%w: option %s has an empty tier table", ErrInvalidCatalogData, o.ID)
		}
		if o.Axis != AxisWidth && o.Axis != AxisProjection && o.Axis != AxisArms {
			return fmt.Errorf("%w: option %s has unknown axis %q", ErrInvalidCatalogData, o.ID, o.Axis)
		}
	}
	return nil
}

// Coefficient returns the option's own coefficient, or fallback when it has none.
func (o OptionCatalogEntry) Coefficient(fallback decimal.Decimal) decimal.Decimal {
	if o.SalesCoefficient.IsPositive() {
		return o.SalesCoefficient
	}
	return fallback
}

// PriceHT prices the option for validated dimensions, unrounded.
func (o OptionCatalogEntry) PriceHT(d Dimensions, baseCoefficient decimal.Decimal) (decimal.Decimal, error) {
	coefficient := o.Coefficient(baseCoefficient)
	switch {
	case o.Grid != nil:
		tier, err := o.Grid.Lookup(d.Projection, d.Arms)
		if err != nil {
			return decimal.Zero, fmt.Errorf("option %s (%d arms): %w", o.ID, d.Arms, err)
		}
		return PriceHT(tier.PurchasePrice, coefficient), nil
	case o.Tiers != nil:
		value := d.Width
		switch o.Axis {
		case AxisProjection:
			value = d.Projection
		case AxisArms:
			value = d.Arms
		}
		tier, err := o.Tiers.Lookup(value)
		if err != nil {
			return decimal.Zero, fmt.Errorf("option %s (%s): %w", o.ID, o.Axis, err)
		}
		return PriceHT(tier.PurchasePrice, coefficient), nil
	case o.PerSquareMeter:
		return PriceHT(o.PurchasePrice, coefficient).Mul(AreaM2(d.Width, d.Projection)), nil
	default:
		return PriceHT(o.PurchasePrice, coefficient), nil
	}
}

// Fabric is a fabric range or colour carrying a per-m² surcharge.
type Fabric struct {
	ID               string          `json:"id"`
	Name             string          `json:"name"`
	Range            string          `json:"range,omitempty"`
	SurchargePrice   decimal.Decimal `json:"surcharge_price"`
	SalesCoefficient decimal.Decimal `json:"sales_coefficient"`
}

func (f Fabric) Validate() error {
	if strings.TrimSpace(f.ID) == "" {
		return fmt.Errorf("%w: fabric id is required", ErrInvalidCatalogData)
	}
	if f.SurchargePrice.IsNegative() || f.SalesCoefficient.IsNegative() {
		return fmt.Errorf("%w: fabric %s has a negative amount", ErrInvalidCatalogData, f.ID)
	}
	return nil
}

// PriceHT returns SurchargePrice × coefficient × area, unrounded.
func (f Fabric) PriceHT(width, projection int, baseCoefficient decimal.Decimal) decimal.Decimal {
	coefficient := f.SalesCoefficient
	if !coefficient.IsPositive() {
		coefficient = baseCoefficient
	}
	return PriceHT(f.SurchargePrice, coefficient).Mul(AreaM2(width, projection))
}

// ShippingRule adds a fixed surcharge once the width exceeds a threshold.
type ShippingRule struct {
	ID                string          `json:"id" yaml:"id"`
	Label             string          `json:"label" yaml:"label"`
	ConditionMinWidth int             `json:"condition_min_width" yaml:"condition_min_width"`
	SurchargePrice    decimal.Decimal `json:"surcharge_price" yaml:"surcharge_price"`
}

func (s ShippingRule) Validate() error {
	if strings.TrimSpace(s.ID) == "" {
		return fmt.Errorf("%w: shipping rule id is required", ErrInvalidCatalogData)
	}
	if s.ConditionMinWidth < 0 || s.SurchargePrice.IsNegative() {
		return fmt.Errorf("%w: shipping rule %s has a negative threshold or price", ErrInvalidCatalogData, s.ID)
	}
	return nil
}

// Applies reports whether the surcharge is due for a validated width.
func (s ShippingRule) Applies(width int) bool {
	return width > s.ConditionMinWidth
}
