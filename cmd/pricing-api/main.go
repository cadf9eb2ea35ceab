package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jnabil1974/storal.fr-sub003/internal/auth"
	"github.com/jnabil1974/storal.fr-sub003/internal/catalog/backend"
	cfg "github.com/jnabil1974/storal.fr-sub003/internal/config"
	"github.com/jnabil1974/storal.fr-sub003/internal/logging"
	apihandlers "github.com/jnabil1974/storal.fr-sub003/internal/managerapi/handlers"
	"github.com/jnabil1974/storal.fr-sub003/internal/pricing"
	"github.com/jnabil1974/storal.fr-sub003/internal/ratelimit"
	"github.com/jnabil1974/storal.fr-sub003/internal/zone"
)

func main() {
	hashKey := flag.String("hash-api-key", "", "Print the bcrypt hash of the given admin API key and exit")
	flag.Parse()
	if *hashKey != "" {
		hash, err := auth.HashAPIKey(*hashKey)
		if err != nil {
			log.Fatalf("Hash error: %v", err)
		}
		fmt.Println(hash)
		return
	}

	appCtx, rootCancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer rootCancel()

	// --- Config & Logging ---
	config, err := cfg.Load()
	if err != nil {
		log.Fatalf("Config load error: %v", err)
	}
	setupLogging(config.LogLevel)

	// --- Catalog ---
	catalogBackend, err := backend.Open(appCtx, config)
	if err != nil {
		slog.Error("Catalog open error", slog.Any("error", err))
		os.Exit(1)
	}
	defer catalogBackend.Close()

	zones := zone.NewDefaultChecker()
	calculator, err := pricing.NewCalculator(catalogBackend.Store, config.Pricing.Settings(), zones)
	if err != nil {
		slog.Error("Pricing setup error", slog.Any("error", err))
		os.Exit(1)
	}

	// --- Gin Router Setup ---
	if config.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	router, err := apihandlers.NewRouter(config.ManagerAPI.TrustedProxies)
	if err != nil {
		slog.Error("Router setup error", slog.Any("error", err))
		os.Exit(1)
	}

	healthChecks := []apihandlers.HealthCheck{
		{Name: "catalog_source", Critical: true, Check: catalogBackend.PingSource},
		{Name: "catalog_breaker", Check: catalogBackend.BreakerClosed},
	}
	if catalogBackend.Cache != nil {
		healthChecks = append(healthChecks, apihandlers.HealthCheck{Name: "catalog_cache", Check: catalogBackend.Cache.Ping})
	}
	router.GET("/health", apihandlers.NewHealthHandler(healthChecks...).Health)

	deps := apihandlers.Dependencies{
		Calculator:      calculator,
		Catalog:         catalogBackend.Store,
		Zones:           zones,
		AdminAPIKeyHash: config.ManagerAPI.AdminAPIKeyHash,
	}
	if config.ManagerAPI.RateLimitRPS > 0 {
		deps.QuoteLimiter = ratelimit.NewLimiter(ratelimit.Config{
			RequestsPerSecond: config.ManagerAPI.RateLimitRPS,
			BurstSize:         config.ManagerAPI.RateLimitBurst,
		})
	}

	apiV1 := router.Group("/api/v1")
	apihandlers.SetupRoutes(apiV1, deps)

	// --- HTTP Server ---
	srv := &http.Server{
		Addr:         config.ManagerAPI.Addr,
		Handler:      router,
		ReadTimeout:  config.ManagerAPI.ReadTimeout,
		WriteTimeout: config.ManagerAPI.WriteTimeout,
		IdleTimeout:  config.ManagerAPI.IdleTimeout,
		ErrorLog:     slog.NewLogLogger(slog.Default().Handler(), slog.LevelWarn),
	}

	go func() {
		slog.Info("Starting Pricing API Server", slog.String("address", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Pricing API ListenAndServe error", slog.Any("error", err))
			rootCancel() // Trigger shutdown on server error
		}
	}()

	// --- Wait for Shutdown ---
	<-appCtx.Done()
	slog.Info("Shutdown signal received for Pricing API server.")

	// --- Graceful Shutdown ---
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Pricing API server forced to shutdown", slog.Any("error", err))
	}

	slog.Info("Pricing API server stopped.")
}

func setupLogging(logLevelStr string) {
	logLevel := slog.LevelInfo
	if logLevelStr == "debug" {
		logLevel = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: logLevel, AddSource: logLevel <= slog.LevelDebug}
	baseHandler := slog.NewJSONHandler(os.Stdout, opts)
	contextHandler := logging.NewContextHandler(baseHandler)
	logger := slog.New(contextHandler)
	slog.SetDefault(logger)
}
