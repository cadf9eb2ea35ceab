package workers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/jnabil1974/storal.fr-sub003/internal/catalog"
	"github.com/jnabil1974/storal.fr-sub003/internal/logging"
	"github.com/jnabil1974/storal.fr-sub003/internal/notification"
)

// Config holds configuration for worker intervals.
type Config struct {
	CacheWarmInterval   time.Duration
	RuleExpiryInterval  time.Duration
	RuleExpiryLookahead time.Duration
	NotifyRecipient     string
}

// CatalogWarmer reloads cached catalog entries.
type CatalogWarmer interface {
	ProductIDs(ctx context.Context) ([]string, error)
	Warm(ctx context.Context, productID string) error
}

// Manager orchestrates the background worker loops.
type Manager struct {
	warmer   CatalogWarmer // nil when no cache is configured
	rules    catalog.RuleStore
	notifier notification.Notifier
	config   Config
	now      func() time.Time

	mu       sync.Mutex
	notified map[string]time.Time // rule id -> valid_until already announced
}

func NewManager(warmer CatalogWarmer, rules catalog.RuleStore, notifier notification.Notifier, cfg Config) *Manager {
	return &Manager{
		warmer:   warmer,
		rules:    rules,
		notifier: notifier,
		config:   cfg,
		now:      time.Now,
		notified: make(map[string]time.Time),
	}
}

// StartCacheWarmer launches the loop that keeps the catalog cache populated.
func (m *Manager) StartCacheWarmer(ctx context.Context) {
	if m.warmer == nil {
		slog.InfoContext(ctx, "No catalog cache configured, cache warmer disabled")
		return
	}
	go runWorkerLoop(ctx, "CatalogCacheWarmer", m.config.CacheWarmInterval, 0, m.WarmCatalog)
}

// StartRuleExpiryNotifier launches the loop announcing pricing rules about to expire.
func (m *Manager) StartRuleExpiryNotifier(ctx context.Context) {
	go runWorkerLoop(ctx, "RuleExpiryNotifier", m.config.RuleExpiryInterval, 0, m.NotifyExpiringRules)
}

// WarmCatalog is the WorkerFunc for the cache warmer. A product that fails is
// logged and skipped; the run fails only when no product could be warmed.
func (m *Manager) WarmCatalog(ctx context.Context, _ int) (int, error) {
	ids, err := m.warmer.ProductIDs(ctx)
	if err != nil {
		return 0, fmt.Errorf("list products: %w", err)
	}

	warmed := 0
	var errs []error
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return warmed, err
		}
		if err := m.warmer.Warm(ctx, id); err != nil {
			slog.WarnContext(logging.ContextWithProductID(ctx, id), "Failed to warm catalog cache", slog.Any("error", err))
			errs = append(errs, err)
			continue
		}
		warmed++
	}
	if warmed == 0 && len(errs) > 0 {
		return 0, errors.Join(errs...)
	}
	return warmed, nil
}

// NotifyExpiringRules is the WorkerFunc for the rule expiry notifier. Each rule is
// announced once per valid_until value.
func (m *Manager) NotifyExpiringRules(ctx context.Context, _ int) (int, error) {
	now := m.now()
	rules, err := m.rules.RulesExpiringBetween(ctx, now, now.Add(m.config.RuleExpiryLookahead))
	if err != nil {
		return 0, fmt.Errorf("list expiring pricing rules: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	processedCount := 0
	for _, rule := range rules {
		if rule.ValidUntil == nil || !rule.IsActive {
			continue
		}
		if announced, ok := m.notified[rule.ID]; ok && announced.Equal(*rule.ValidUntil) {
			continue
		}
		logCtx := logging.ContextWithProductID(logging.ContextWithRuleID(ctx, rule.ID), rule.ProductID)

		subject := fmt.Sprintf("Pricing rule %s expiring", rule.ID)
		body := fmt.Sprintf("The pricing rule %s (coefficient %s) for product %s expires at %s.",
			rule.ID, rule.Coefficient.String(), rule.ProductID, rule.ValidUntil.UTC().Format(time.RFC3339))
		if rule.Reason != "" {
			body += " Reason: " + rule.Reason + "."
		}

		if err := m.notifier.Send(logCtx, m.config.NotifyRecipient, subject, body); err != nil {
			slog.WarnContext(logCtx, "Failed to send rule expiry notification", slog.Any("error", err))
			continue // Retry on the next run
		}
		m.notified[rule.ID] = *rule.ValidUntil
		processedCount++
	}

	// Forget rules that have left the window.
	for id, until := range m.notified {
		if until.Before(now) {
			delete(m.notified, id)
		}
	}
	return processedCount, nil
}
