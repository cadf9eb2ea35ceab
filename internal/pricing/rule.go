package pricing

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// PricingRule overrides the sales coefficient of one product over a time window.
type PricingRule struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"product_id"`
	Coefficient decimal.Decimal `json:"coefficient"`
	Reason      string          `json:"reason,omitempty"`
	ValidFrom   time.Time       `json:"valid_from"`
	ValidUntil  *time.Time      `json:"valid_until,omitempty"`
	IsActive    bool            `json:"is_active"`
	CreatedAt   time.Time       `json:"created_at"`
}

// NewPricingRule builds an active rule after validating it.
func NewPricingRule(id, productID string, coefficient decimal.Decimal, reason string, validFrom time.Time, validUntil *time.Time) (PricingRule, error) {
	r := PricingRule{
		ID:          id,
		ProductID:   productID,
		Coefficient: coefficient,
		Reason:      reason,
		ValidFrom:   validFrom,
		ValidUntil:  validUntil,
		IsActive:    true,
	}
	if err := r.Validate(); err != nil {
		return PricingRule{}, err
	}
	return r, nil
}

func (r PricingRule) Validate() error {
	if strings.TrimSpace(r.ProductID) == "" {
		return fmt.Errorf("%w: pricing rule product id is required", ErrInvalidCatalogData)
	}
	if !r.Coefficient.IsPositive() {
		return fmt.Errorf("%w: pricing rule coefficient must be positive, got %s", ErrInvalidCatalogData, r.Coefficient)
	}
	if r.ValidFrom.IsZero() {
		return fmt.Errorf("%w: pricing rule valid_from is required", ErrInvalidCatalogData)
	}
	if r.ValidUntil != nil && !r.ValidUntil.After(r.ValidFrom) {
		return fmt.Errorf("%w: pricing rule valid_until must be after valid_from", ErrInvalidCatalogData)
	}
	return nil
}

// IsCurrent reports validFrom <= now < validUntil on an active rule.
func (r PricingRule) IsCurrent(now time.Time) bool {
	if !r.IsActive || now.Before(r.ValidFrom) {
		return false
	}
	return r.ValidUntil == nil || now.Before(*r.ValidUntil)
}

// SelectActiveRule returns the current rule with the latest ValidFrom. Overlapping
// rules resolve to the last defined one.
func SelectActiveRule(rules []PricingRule, now time.Time) *PricingRule {
	ordered := make([]PricingRule, len(rules))
	copy(ordered, rules)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].ValidFrom.After(ordered[j].ValidFrom)
	})
	for i := range ordered {
		if ordered[i].IsCurrent(now) {
			rule := ordered[i]
			return &rule
		}
	}
	return nil
}
