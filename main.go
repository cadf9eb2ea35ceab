package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/jnabil1974/storal.fr-sub003/internal/catalog/backend"
	"github.com/jnabil1974/storal.fr-sub003/internal/config"
	"github.com/jnabil1974/storal.fr-sub003/internal/logging"
	"github.com/jnabil1974/storal.fr-sub003/internal/notification"
	"github.com/jnabil1974/storal.fr-sub003/internal/workers"
)

// The worker process: catalog cache warming and pricing rule expiry notifications.
func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logLevel := slog.LevelInfo // Default
	if cfg.LogLevel == "debug" {
		logLevel = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: logLevel}
	baseHandler := slog.NewJSONHandler(os.Stdout, opts)
	contextHandler := logging.NewContextHandler(baseHandler)
	slog.SetDefault(slog.New(contextHandler))

	slog.Info("Logging initialized", "level", logLevel.String())

	catalogBackend, err := backend.Open(ctx, cfg)
	if err != nil {
		log.Fatalf("Unable to open catalog: %v", err)
	}
	defer catalogBackend.Close()

	notifier := notification.NewLogNotifier(slog.Default())

	var warmer workers.CatalogWarmer
	if catalogBackend.Cache != nil {
		warmer = catalogBackend.Cache
	}
	workerManager := workers.NewManager(warmer, catalogBackend.Store, notifier, workers.Config{
		CacheWarmInterval:   cfg.WorkerConfig.CacheWarmInterval,
		RuleExpiryInterval:  cfg.WorkerConfig.RuleExpiryInterval,
		RuleExpiryLookahead: cfg.WorkerConfig.RuleExpiryLookahead,
		NotifyRecipient:     cfg.WorkerConfig.NotifyRecipient,
	})

	workerManager.StartCacheWarmer(ctx)
	workerManager.StartRuleExpiryNotifier(ctx)

	<-ctx.Done()
	slog.Info("Shutdown signal received, stopping workers...")
	slog.Info("Workers stopped")
}
