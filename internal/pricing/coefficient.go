package pricing

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Coefficient sources, in resolution order.
const (
	SourceRule        = "rule"
	SourceProduct     = "product"
	SourceProductKey  = "product_key"
	SourceProductType = "product_type"
	SourceGlobal      = "global"
)

// Coefficient is a resolved sales coefficient and the level that produced it.
type Coefficient struct {
	Value  decimal.Decimal `json:"value"`
	Source string          `json:"source"`
}

// CoefficientResolver tries one level of the chain. ok is false when the level has
// nothing to say and the next one must be tried.
type CoefficientResolver func(snap *Snapshot) (c Coefficient, ok bool)

// RuleResolver uses the snapshot's active pricing rule.
func RuleResolver() CoefficientResolver {
	return func(snap *Snapshot) (Coefficient, bool) {
		if snap.ActiveRule == nil {
			return Coefficient{}, false
		}
		return Coefficient{Value: snap.ActiveRule.Coefficient, Source: SourceRule}, true
	}
}

// ProductRowResolver uses the coefficient stored on the product itself.
func ProductRowResolver() CoefficientResolver {
	return func(snap *Snapshot) (Coefficient, bool) {
		c := snap.Product.SalesCoefficient
		if c == nil || !c.IsPositive() {
			return Coefficient{}, false
		}
		return Coefficient{Value: *c, Source: SourceProduct}, true
	}
}

// KeyResolver looks the product key up in a configured map.
func KeyResolver(byKey map[string]decimal.Decimal) CoefficientResolver {
	return func(snap *Snapshot) (Coefficient, bool) {
		c, ok := byKey[snap.Product.Key]
		if !ok || !c.IsPositive() {
			return Coefficient{}, false
		}
		return Coefficient{Value: c, Source: SourceProductKey}, true
	}
}

// TypeResolver looks the product type up in a configured map.
func TypeResolver(byType map[string]decimal.Decimal) CoefficientResolver {
	return func(snap *Snapshot) (Coefficient, bool) {
		c, ok := byType[snap.Product.ProductType()]
		if !ok || !c.IsPositive() {
			return Coefficient{}, false
		}
		return Coefficient{Value: c, Source: SourceProductType}, true
	}
}

// GlobalResolver returns the fallback constant when it is configured.
func GlobalResolver(global decimal.Decimal) CoefficientResolver {
	return func(*Snapshot) (Coefficient, bool) {
		if !global.IsPositive() {
			return Coefficient{}, false
		}
		return Coefficient{Value: global, Source: SourceGlobal}, true
	}
}

// DefaultChain builds the resolution order used for quotes.
func DefaultChain(s Settings) []CoefficientResolver {
	return []CoefficientResolver{
		RuleResolver(),
		ProductRowResolver(),
		KeyResolver(s.ProductCoefficients),
		TypeResolver(s.TypeCoefficients),
		GlobalResolver(s.GlobalCoefficient),
	}
}

// ResolveCoefficient walks chain and returns the first value found.
func ResolveCoefficient(snap *Snapshot, chain []CoefficientResolver) (Coefficient, error) {
	for _, resolve := range chain {
		if c, ok := resolve(snap); ok {
			return c, nil
		}
	}
	return Coefficient{}, fmt.Errorf("%w: product %s (key %q, type %q)", ErrMissingCoefficient, snap.Product.ID, snap.Product.Key, snap.Product.ProductType())
}
