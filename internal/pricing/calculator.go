package pricing

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/jnabil1974/storal.fr-sub003/internal/logging"
)

// Calculator loads a catalog snapshot and prices a request against it.
type Calculator struct {
	catalog   Catalog
	settings  Settings
	installer Installer
	now       func() time.Time
}

// NewCalculator validates settings. installer may be nil.
func NewCalculator(catalog Catalog, settings Settings, installer Installer) (*Calculator, error) {
	if catalog == nil {
		return nil, fmt.Errorf("catalog is required")
	}
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid pricing settings: %w", err)
	}
	return &Calculator{catalog: catalog, settings: settings, installer: installer, now: time.Now}, nil
}

// WithClock replaces the wall clock used to select active pricing rules.
func (c *Calculator) WithClock(now func() time.Time) *Calculator {
	c.now = now
	return c
}

// Settings returns the pricing configuration in use.
func (c *Calculator) Settings() Settings { return c.settings }

// Quote prices req. Errors are the package sentinels wrapped with context.
func (c *Calculator) Quote(ctx context.Context, req QuoteRequest) (*Quote, error) {
	logCtx := logging.ContextWithProductID(ctx, req.ProductID)
	snap, err := LoadSnapshot(logCtx, c.catalog, req.ProductID, c.now())
	if err != nil {
		slog.WarnContext(logCtx, "Failed to load catalog snapshot", slog.Any("error", err))
		return nil, err
	}

	q, err := Compute(snap, req, c.settings, c.installer)
	if err != nil {
		slog.InfoContext(logCtx, "Quote rejected",
			slog.Int("width", req.Width),
			slog.Int("projection", req.Projection),
			slog.Any("error", err),
		)
		return nil, err
	}
	q.ID = uuid.NewString()

	slog.DebugContext(logging.ContextWithQuoteID(logCtx, q.ID), "Quote computed",
		slog.String("coefficient", q.Coefficient.String()),
		slog.String("coefficient_source", q.CoefficientSource),
		slog.String("total_ht", q.TotalHT.StringFixed(2)),
		slog.String("total_ttc", q.TotalTTC.StringFixed(2)),
	)
	return q, nil
}

// Limits returns the accepted width range of a product at a projection.
func (c *Calculator) Limits(ctx context.Context, productID string, projection int) (WidthLimits, error) {
	product, err := c.catalog.Product(ctx, productID)
	if err != nil {
		return WidthLimits{}, err
	}
	if err := product.Validate(); err != nil {
		return WidthLimits{}, err
	}
	return product.Grid.Limits(projection)
}
