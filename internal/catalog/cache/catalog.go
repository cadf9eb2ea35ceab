package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/jnabil1974/storal.fr-sub003/internal/catalog"
	"github.com/jnabil1974/storal.fr-sub003/internal/logging"
	"github.com/jnabil1974/storal.fr-sub003/internal/pricing"
)

const DefaultTTL = 5 * time.Minute

// Client is the subset of *redis.Client the cache needs.
type Client interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
	Ping(ctx context.Context) *redis.StatusCmd
}

const (
	kindProduct  = "product"
	kindOptions  = "options"
	kindRules    = "rules"
	kindShipping = "shipping"
	kindFabrics  = "fabrics"
)

var kinds = []string{kindProduct, kindOptions, kindRules, kindShipping, kindFabrics}

func key(kind, productID string) string {
	return "catalog:" + kind + ":" + productID
}

// Catalog is a read-through redis cache in front of a catalog backend. Redis errors
// are logged and the backend is read directly; backend errors are never cached.
// Pricing rule writes go to the backend and then drop the product's cached entries.
type Catalog struct {
	next catalog.Store
	rdb  Client
	ttl  time.Duration
}

func NewCatalog(next catalog.Store, rdb Client, ttl time.Duration) *Catalog {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Catalog{next: next, rdb: rdb, ttl: ttl}
}

var _ catalog.Store = (*Catalog)(nil)

// Ping checks the redis connection.
func (c *Catalog) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}

func readThrough[T any](ctx context.Context, c *Catalog, kind, productID string, load func(context.Context, string) (T, error)) (T, error) {
	k := key(kind, productID)
	raw, err := c.rdb.Get(ctx, k).Bytes()
	switch {
	case err == nil:
		var v T
		jsonErr := json.Unmarshal(raw, &v)
		if jsonErr == nil {
			return v, nil
		}
		slog.WarnContext(ctx, "Discarding undecodable cache entry", slog.String("key", k), slog.Any("error", jsonErr))
	case errors.Is(err, redis.Nil):
	default:
		slog.WarnContext(ctx, "Catalog cache read failed", slog.String("key", k), slog.Any("error", err))
	}

	v, err := load(ctx, productID)
	if err != nil {
		var zero T
		return zero, err
	}
	c.store(ctx, k, v)
	return v, nil
}

func (c *Catalog) store(ctx context.Context, k string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		slog.WarnContext(ctx, "Failed to encode cache entry", slog.String("key", k), slog.Any("error", err))
		return
	}
	if err := c.rdb.Set(ctx, k, data, c.ttl).Err(); err != nil {
		slog.WarnContext(ctx, "Catalog cache write failed", slog.String("key", k), slog.Any("error", err))
	}
}

func (c *Catalog) Product(ctx context.Context, productID string) (*pricing.Product, error) {
	return readThrough(ctx, c, kindProduct, productID, c.next.Product)
}

func (c *Catalog) Options(ctx context.Context, productID string) ([]pricing.OptionCatalogEntry, error) {
	return readThrough(ctx, c, kindOptions, productID, c.next.Options)
}

func (c *Catalog) PricingRules(ctx context.Context, productID string) ([]pricing.PricingRule, error) {
	return readThrough(ctx, c, kindRules, productID, c.next.PricingRules)
}

func (c *Catalog) ShippingRules(ctx context.Context, productID string) ([]pricing.ShippingRule, error) {
	return readThrough(ctx, c, kindShipping, productID, c.next.ShippingRules)
}

func (c *Catalog) Fabrics(ctx context.Context, productID string) ([]pricing.Fabric, error) {
	return readThrough(ctx, c, kindFabrics, productID, c.next.Fabrics)
}

func (c *Catalog) ProductIDs(ctx context.Context) ([]string, error) {
	return c.next.ProductIDs(ctx)
}

// Invalidate drops every cached entry of a product.
func (c *Catalog) Invalidate(ctx context.Context, productID string) error {
	keys := make([]string, len(kinds))
	for i, kind := range kinds {
		keys[i] = key(kind, productID)
	}
	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("invalidate catalog cache for %s: %w", productID, err)
	}
	return nil
}

// Warm reloads a product from the backend and overwrites its cached entries.
func (c *Catalog) Warm(ctx context.Context, productID string) error {
	logCtx := logging.ContextWithProductID(ctx, productID)

	product, err := c.next.Product(logCtx, productID)
	if err != nil {
		return err
	}
	options, err := c.next.Options(logCtx, productID)
	if err != nil {
		return err
	}
	rules, err := c.next.PricingRules(logCtx, productID)
	if err != nil {
		return err
	}
	shipping, err := c.next.ShippingRules(logCtx, productID)
	if err != nil {
		return err
	}
	fabrics, err := c.next.Fabrics(logCtx, productID)
	if err != nil {
		return err
	}

	c.store(logCtx, key(kindProduct, productID), product)
	c.store(logCtx, key(kindOptions, productID), options)
	c.store(logCtx, key(kindRules, productID), rules)
	c.store(logCtx, key(kindShipping, productID), shipping)
	c.store(logCtx, key(kindFabrics, productID), fabrics)
	slog.DebugContext(logCtx, "Catalog cache warmed")
	return nil
}

func (c *Catalog) invalidateAfterWrite(ctx context.Context, productID string) {
	if err := c.Invalidate(ctx, productID); err != nil {
		slog.WarnContext(logging.ContextWithProductID(ctx, productID), "Failed to invalidate catalog cache", slog.Any("error", err))
	}
}

func (c *Catalog) CreatePricingRule(ctx context.Context, rule pricing.PricingRule) (pricing.PricingRule, error) {
	created, err := c.next.CreatePricingRule(ctx, rule)
	if err != nil {
		return pricing.PricingRule{}, err
	}
	c.invalidateAfterWrite(ctx, created.ProductID)
	return created, nil
}

func (c *Catalog) GetPricingRule(ctx context.Context, id string) (pricing.PricingRule, error) {
	return c.next.GetPricingRule(ctx, id)
}

func (c *Catalog) ListPricingRules(ctx context.Context, filter catalog.RuleFilter) ([]pricing.PricingRule, int64, error) {
	return c.next.ListPricingRules(ctx, filter)
}

func (c *Catalog) DeactivatePricingRule(ctx context.Context, id string) (pricing.PricingRule, error) {
	rule, err := c.next.DeactivatePricingRule(ctx, id)
	if err != nil {
		return pricing.PricingRule{}, err
	}
	c.invalidateAfterWrite(ctx, rule.ProductID)
	return rule, nil
}

func (c *Catalog) DeletePricingRule(ctx context.Context, id string) (pricing.PricingRule, error) {
	rule, err := c.next.DeletePricingRule(ctx, id)
	if err != nil {
		return pricing.PricingRule{}, err
	}
	c.invalidateAfterWrite(ctx, rule.ProductID)
	return rule, nil
}

func (c *Catalog) RulesExpiringBetween(ctx context.Context, from, to time.Time) ([]pricing.PricingRule, error) {
	return c.next.RulesExpiringBetween(ctx, from, to)
}
