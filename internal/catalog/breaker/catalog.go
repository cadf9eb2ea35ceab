package breaker

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jnabil1974/storal.fr-sub003/internal/catalog"
	"github.com/jnabil1974/storal.fr-sub003/internal/pricing"
)

// Catalog guards a catalog backend with a circuit breaker. While the breaker is open
// every call fails fast with pricing.ErrCatalogUnavailable. Only infrastructure
// failures count against the breaker; not-found and validation errors do not.
type Catalog struct {
	next catalog.Store
	cb   *CircuitBreaker
}

func NewCatalog(next catalog.Store, cb *CircuitBreaker) *Catalog {
	return &Catalog{next: next, cb: cb}
}

var _ catalog.Store = (*Catalog)(nil)

// Breaker exposes the underlying breaker for health reporting.
func (c *Catalog) Breaker() *CircuitBreaker { return c.cb }

func guard[T any](ctx context.Context, c *Catalog, call func(context.Context) (T, error)) (T, error) {
	var zero T
	if !c.cb.AllowRequest() {
		return zero, fmt.Errorf("%w: circuit %q is open", pricing.ErrCatalogUnavailable, c.cb.config.Name)
	}

	callCtx, cancel := context.WithTimeout(ctx, c.cb.config.RequestTimeout)
	defer cancel()

	v, err := call(callCtx)
	switch {
	case err == nil:
		c.cb.RecordSuccess()
	case ctx.Err() != nil:
		// Caller went away; says nothing about the backend.
		c.cb.Release()
	case errors.Is(err, pricing.ErrCatalogUnavailable):
		c.cb.RecordFailure()
	case errors.Is(err, context.DeadlineExceeded):
		c.cb.RecordFailure()
		err = fmt.Errorf("%w: %w", pricing.ErrCatalogUnavailable, err)
	default:
		c.cb.RecordSuccess()
	}
	if err != nil {
		return zero, err
	}
	return v, nil
}

func (c *Catalog) Product(ctx context.Context, productID string) (*pricing.Product, error) {
	return guard(ctx, c, func(ctx context.Context) (*pricing.Product, error) {
		return c.next.Product(ctx, productID)
	})
}

func (c *Catalog) Options(ctx context.Context, productID string) ([]pricing.OptionCatalogEntry, error) {
	return guard(ctx, c, func(ctx context.Context) ([]pricing.OptionCatalogEntry, error) {
		return c.next.Options(ctx, productID)
	})
}

func (c *Catalog) PricingRules(ctx context.Context, productID string) ([]pricing.PricingRule, error) {
	return guard(ctx, c, func(ctx context.Context) ([]pricing.PricingRule, error) {
		return c.next.PricingRules(ctx, productID)
	})
}

func (c *Catalog) ShippingRules(ctx context.Context, productID string) ([]pricing.ShippingRule, error) {
	return guard(ctx, c, func(ctx context.Context) ([]pricing.ShippingRule, error) {
		return c.next.ShippingRules(ctx, productID)
	})
}

func (c *Catalog) Fabrics(ctx context.Context, productID string) ([]pricing.Fabric, error) {
	return guard(ctx, c, func(ctx context.Context) ([]pricing.Fabric, error) {
		return c.next.Fabrics(ctx, productID)
	})
}

func (c *Catalog) ProductIDs(ctx context.Context) ([]string, error) {
	return guard(ctx, c, c.next.ProductIDs)
}

func (c *Catalog) CreatePricingRule(ctx context.Context, rule pricing.PricingRule) (pricing.PricingRule, error) {
	return guard(ctx, c, func(ctx context.Context) (pricing.PricingRule, error) {
		return c.next.CreatePricingRule(ctx, rule)
	})
}

func (c *Catalog) GetPricingRule(ctx context.Context, id string) (pricing.PricingRule, error) {
	return guard(ctx, c, func(ctx context.Context) (pricing.PricingRule, error) {
		return c.next.GetPricingRule(ctx, id)
	})
}

type rulePage struct {
	rules []pricing.PricingRule
	total int64
}

func (c *Catalog) ListPricingRules(ctx context.Context, filter catalog.RuleFilter) ([]pricing.PricingRule, int64, error) {
	page, err := guard(ctx, c, func(ctx context.Context) (rulePage, error) {
		rules, total, err := c.next.ListPricingRules(ctx, filter)
		return rulePage{rules: rules, total: total}, err
	})
	return page.rules, page.total, err
}

func (c *Catalog) DeactivatePricingRule(ctx context.Context, id string) (pricing.PricingRule, error) {
	return guard(ctx, c, func(ctx context.Context) (pricing.PricingRule, error) {
		return c.next.DeactivatePricingRule(ctx, id)
	})
}

func (c *Catalog) DeletePricingRule(ctx context.Context, id string) (pricing.PricingRule, error) {
	return guard(ctx, c, func(ctx context.Context) (pricing.PricingRule, error) {
		return c.next.DeletePricingRule(ctx, id)
	})
}

func (c *Catalog) RulesExpiringBetween(ctx context.Context, from, to time.Time) ([]pricing.PricingRule, error) {
	return guard(ctx, c, func(ctx context.Context) ([]pricing.PricingRule, error) {
		return c.next.RulesExpiringBetween(ctx, from, to)
	})
}
