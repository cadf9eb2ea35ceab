package catalog

import (
	"context"
	"errors"
	"time"

	"github.com/jnabil1974/storal.fr-sub003/internal/pricing"
)

var (
	ErrRuleNotFound  = errors.New("pricing rule not found")
	ErrDuplicateRule = errors.New("duplicate pricing rule")
)

// RuleFilter selects a page of pricing rules. An empty ProductID lists every product.
type RuleFilter struct {
	ProductID string
	Limit     int32
	Offset    int32
}

// RuleStore manages pricing rules for the admin API and the expiry worker.
type RuleStore interface {
	CreatePricingRule(ctx context.Context, rule pricing.PricingRule) (pricing.PricingRule, error)
	GetPricingRule(ctx context.Context, id string) (pricing.PricingRule, error)
	ListPricingRules(ctx context.Context, filter RuleFilter) ([]pricing.PricingRule, int64, error)
	DeactivatePricingRule(ctx context.Context, id string) (pricing.PricingRule, error)
	DeletePricingRule(ctx context.Context, id string) (pricing.PricingRule, error)
	RulesExpiringBetween(ctx context.Context, from, to time.Time) ([]pricing.PricingRule, error)
}

// Store is a full catalog backend.
type Store interface {
	pricing.Catalog
	RuleStore
	ProductIDs(ctx context.Context) ([]string, error)
}
