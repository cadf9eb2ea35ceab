package workers

import (
	"context"
	"log/slog"
	"time"

	"github.com/jnabil1974/storal.fr-sub003/internal/logging"
)

const defaultRunTimeout = time.Minute

// WorkerFunc defines the function signature for work performed by a worker loop.
// It returns the number of items processed and any critical error encountered.
type WorkerFunc func(ctx context.Context, batchSize int) (int, error)

// runWorkerLoop runs workerFunc once at startup, then on every tick until ctx is done.
func runWorkerLoop(ctx context.Context, name string, interval time.Duration, batchSize int, workerFunc WorkerFunc) {
	logCtx := logging.ContextWithWorkerID(ctx, name)
	slog.InfoContext(logCtx, "Worker starting", slog.Duration("interval", interval), slog.Int("batch_size", batchSize))
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	runWork(logCtx, name, batchSize, workerFunc)

	for {
		select {
		case <-ctx.Done():
			slog.InfoContext(logCtx, "Worker stopping")
			return
		case <-ticker.C:
			runWork(logCtx, name, batchSize, workerFunc)
		}
	}
}

// runWork executes a single batch of work with a timeout.
func runWork(ctx context.Context, name string, batchSize int, workerFunc WorkerFunc) {
	runCtx, cancel := context.WithTimeout(ctx, defaultRunTimeout)
	defer cancel()

	processedCount, err := workerFunc(runCtx, batchSize)

	if err != nil {
		slog.ErrorContext(ctx, "Error in worker run", slog.String("worker", name), slog.Any("error", err))
	} else if processedCount > 0 {
		slog.InfoContext(ctx, "Worker run complete", slog.String("worker", name), slog.Int("processed", processedCount))
	}
	// processedCount == 0 with no error means no work was available.
}
