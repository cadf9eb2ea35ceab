package pricing

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"
)

// Catalog is the read-only data provider consumed by the calculator. Implementations
// return ErrProductNotFound for unknown products and wrap infrastructure failures with
// ErrCatalogUnavailable.
type Catalog interface {
	Product(ctx context.Context, productID string) (*Product, error)
	Options(ctx context.Context, productID string) ([]OptionCatalogEntry, error)
	PricingRules(ctx context.Context, productID string) ([]PricingRule, error)
	ShippingRules(ctx context.Context, productID string) ([]ShippingRule, error)
	Fabrics(ctx context.Context, productID string) ([]Fabric, error)
}

// Snapshot is everything a quote needs, read once at the start of a request.
type Snapshot struct {
	Product       Product
	Options       map[string]OptionCatalogEntry
	ActiveRule    *PricingRule
	ShippingRules []ShippingRule
	Fabrics       map[string]Fabric
	TakenAt       time.Time
}

// LoadSnapshot reads the product and its related rows. The active pricing rule is
// selected against now so concurrent requests never re-evaluate it mid-computation.
func LoadSnapshot(ctx context.Context, cat Catalog, productID string, now time.Time) (*Snapshot, error) {
	product, err := cat.Product(ctx, productID)
	if err != nil {
		return nil, err
	}
	if err := product.Validate(); err != nil {
		return nil, err
	}

	var (
		options  []OptionCatalogEntry
		rules    []PricingRule
		shipping []ShippingRule
		fabrics  []Fabric
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		options, err = cat.Options(gctx, productID)
		return err
	})
	g.Go(func() (err error) {
		rules, err = cat.PricingRules(gctx, productID)
		return err
	})
	g.Go(func() (err error) {
		shipping, err = cat.ShippingRules(gctx, productID)
		return err
	})
	g.Go(func() (err error) {
		fabrics, err = cat.Fabrics(gctx, productID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	snap := &Snapshot{
		Product:       *product,
		Options:       make(map[string]OptionCatalogEntry, len(options)),
		ActiveRule:    SelectActiveRule(rules, now),
		ShippingRules: shipping,
		Fabrics:       make(map[string]Fabric, len(fabrics)),
		TakenAt:       now,
	}
	for _, o := range options {
		if err := o.Validate(); err != nil {
			return nil, err
		}
		if _, dup := snap.Options[o.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate option id %s", ErrInvalidCatalogData, o.ID)
		}
		snap.Options[o.ID] = o
	}
	for _, s := range shipping {
		if err := s.Validate(); err != nil {
			return nil, err
		}
	}
	for _, f := range fabrics {
		if err := f.Validate(); err != nil {
			return nil, err
		}
		snap.Fabrics[f.ID] = f
	}
	return snap, nil
}
