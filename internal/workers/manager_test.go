package workers

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jnabil1974/storal.fr-sub003/internal/catalog/memory"
)

type sentNotification struct {
	recipient, subject, body string
}

type recordingNotifier struct {
	mu   sync.Mutex
	sent []sentNotification
	err  error
}

func (n *recordingNotifier) Send(_ context.Context, recipient, subject, body string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.err != nil {
		return n.err
	}
	n.sent = append(n.sent, sentNotification{recipient, subject, body})
	return nil
}

type fakeWarmer struct {
	ids    []string
	failOn map[string]bool
	warmed []string
}

func (w *fakeWarmer) ProductIDs(context.Context) ([]string, error) { return w.ids, nil }

func (w *fakeWarmer) Warm(_ context.Context, id string) error {
	if w.failOn[id] {
		return errors.New("redis down")
	}
	w.warmed = append(w.warmed, id)
	return nil
}

func newTestManager(t *testing.T, warmer CatalogWarmer, notifier *recordingNotifier, now time.Time) *Manager {
	t.Helper()
	store, err := memory.LoadFile("../catalog/memory/testdata/catalog.yaml")
	require.NoError(t, err)
	m := NewManager(warmer, store, notifier, Config{
		CacheWarmInterval:   time.Minute,
		RuleExpiryInterval:  time.Minute,
		RuleExpiryLookahead: 72 * time.Hour,
		NotifyRecipient:     "ops@storal.fr",
	})
	m.now = func() time.Time { return now }
	return m
}

func TestNotifyExpiringRulesOncePerRule(t *testing.T) {
	notifier := &recordingNotifier{}
	m := newTestManager(t, nil, notifier, time.Date(2026, 8, 30, 8, 0, 0, 0, time.UTC))
	ctx := context.Background()

	n, err := m.NotifyExpiringRules(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	require.Len(t, notifier.sent, 1)
	assert.Equal(t, "ops@storal.fr", notifier.sent[0].recipient)
	assert.Contains(t, notifier.sent[0].subject, "summer-2026")
	assert.Contains(t, notifier.sent[0].body, "2026-09-01T00:00:00Z")

	n, err = m.NotifyExpiringRules(ctx, 0)
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Len(t, notifier.sent, 1)
}

func TestNotifyExpiringRulesOutsideWindow(t *testing.T) {
	notifier := &recordingNotifier{}
	m := newTestManager(t, nil, notifier, time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC))

	n, err := m.NotifyExpiringRules(context.Background(), 0)
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Empty(t, notifier.sent)
}

func TestNotifyExpiringRulesRetriesFailedSends(t *testing.T) {
	notifier := &recordingNotifier{err: errors.New("smtp unavailable")}
	m := newTestManager(t, nil, notifier, time.Date(2026, 8, 30, 8, 0, 0, 0, time.UTC))
	ctx := context.Background()

	n, err := m.NotifyExpiringRules(ctx, 0)
	require.NoError(t, err)
	assert.Zero(t, n)

	notifier.err = nil
	n, err = m.NotifyExpiringRules(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestWarmCatalog(t *testing.T) {
	warmer := &fakeWarmer{ids: []string{"antichaleur", "kissimy"}, failOn: map[string]bool{"antichaleur": true}}
	m := newTestManager(t, warmer, &recordingNotifier{}, time.Now())

	n, err := m.WarmCatalog(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, []string{"kissimy"}, warmer.warmed)

	warmer.failOn["kissimy"] = true
	_, err = m.WarmCatalog(context.Background(), 0)
	assert.Error(t, err)
}

func TestRunWorkerLoopStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	var mu sync.Mutex
	runs := 0
	done := make(chan struct{})

	go func() {
		runWorkerLoop(ctx, "test", 10*time.Millisecond, 0, func(context.Context, int) (int, error) {
			mu.Lock()
			runs++
			mu.Unlock()
			return 1, nil
		})
		close(done)
	}()

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return runs >= 2
	}, time.Second, 5*time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker loop did not stop")
	}
}
