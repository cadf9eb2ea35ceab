// Package backend assembles the catalog stack used by the binaries:
// postgres or file source, circuit breaker, then the optional redis cache.
package backend

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jnabil1974/storal.fr-sub003/internal/catalog"
	"github.com/jnabil1974/storal.fr-sub003/internal/catalog/breaker"
	"github.com/jnabil1974/storal.fr-sub003/internal/catalog/cache"
	"github.com/jnabil1974/storal.fr-sub003/internal/catalog/memory"
	"github.com/jnabil1974/storal.fr-sub003/internal/catalog/postgres"
	"github.com/jnabil1974/storal.fr-sub003/internal/config"
	"github.com/jnabil1974/storal.fr-sub003/internal/database"
)

// Backend is an opened catalog with its connections.
type Backend struct {
	Store   catalog.Store
	Breaker *breaker.CircuitBreaker
	Cache   *cache.Catalog // nil without REDIS_URL

	pool *pgxpool.Pool
	rdb  *redis.Client
}

// Open connects the configured catalog source and wraps it.
func Open(ctx context.Context, cfg *config.Config) (*Backend, error) {
	b := &Backend{}

	var source catalog.Store
	switch cfg.Catalog.Source {
	case config.CatalogSourceFile:
		slog.Info("Loading catalog file", slog.String("path", cfg.Catalog.File))
		store, err := memory.LoadFile(cfg.Catalog.File)
		if err != nil {
			return nil, err
		}
		source = store
	default:
		slog.Info("Connecting to database...")
		dbpool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("db connect: %w", err)
		}
		if err := dbpool.Ping(ctx); err != nil {
			dbpool.Close()
			return nil, fmt.Errorf("db ping: %w", err)
		}
		slog.Info("Database connection established")
		b.pool = dbpool
		source = postgres.NewStore(database.New(dbpool))
	}

	b.Breaker = breaker.NewCircuitBreaker(breaker.Config{
		Name:             "catalog",
		FailureThreshold: cfg.Breaker.FailureThreshold,
		SuccessThreshold: cfg.Breaker.SuccessThreshold,
		VolumeThreshold:  cfg.Breaker.VolumeThreshold,
		OpenTimeout:      cfg.Breaker.OpenTimeout,
		RequestTimeout:   cfg.Breaker.RequestTimeout,
		Logger:           slog.Default(),
	})
	b.Store = breaker.NewCatalog(source, b.Breaker)

	if cfg.Catalog.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.Catalog.RedisURL)
		if err != nil {
			b.Close()
			return nil, fmt.Errorf("invalid REDIS_URL: %w", err)
		}
		b.rdb = redis.NewClient(opts)
		if err := b.rdb.Ping(ctx).Err(); err != nil {
			// The cache falls back to the source on every error; start anyway.
			slog.Warn("Redis ping failed, catalog cache degraded", slog.Any("error", err))
		}
		b.Cache = cache.NewCatalog(b.Store, b.rdb, cfg.Catalog.CacheTTL)
		b.Store = b.Cache
		slog.Info("Catalog cache enabled", slog.Duration("ttl", cfg.Catalog.CacheTTL))
	}
	return b, nil
}

// PingSource checks the database, or succeeds for a file catalog.
func (b *Backend) PingSource(ctx context.Context) error {
	if b.pool == nil {
		return nil
	}
	return b.pool.Ping(ctx)
}

// BreakerClosed fails while the catalog breaker is open.
func (b *Backend) BreakerClosed(context.Context) error {
	if state := b.Breaker.State(); state == breaker.CircuitOpen {
		return fmt.Errorf("catalog circuit is %s", state)
	}
	return nil
}

func (b *Backend) Close() {
	if b.rdb != nil {
		if err := b.rdb.Close(); err != nil {
			slog.Warn("Failed to close redis client", slog.Any("error", err))
		}
	}
	if b.pool != nil {
		b.pool.Close()
	}
}
