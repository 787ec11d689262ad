package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/lexico-labs/lexico-core/internal/core/ports/driven"
	"github.com/lexico-labs/lexico-core/internal/core/ports/driving"
)

// lockName is the shared lock coordinating warm runs across instances
const lockName = "cache-warm"

// Worker periodically warms the search cache with common queries.
// When a distributed lock is configured only one instance runs each
// warm cycle; without a lock every instance warms independently.
type Worker struct {
	search  driving.SearchService
	lock    driven.DistributedLock
	logger  *slog.Logger
	queries []string

	// Configuration
	interval time.Duration

	// Internal state
	mu      sync.RWMutex
	running bool
	stopCh  chan struct{}
	doneCh  chan struct{}
}

// Config holds configuration for the warm worker.
type Config struct {
	Search   driving.SearchService
	Lock     driven.DistributedLock // optional
	Logger   *slog.Logger
	Queries  []string
	Interval time.Duration
}

// NewWorker creates a new cache warm worker.
func NewWorker(cfg Config) *Worker {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	interval := cfg.Interval
	if interval <= 0 {
		interval = 10 * time.Minute
	}

	return &Worker{
		search:   cfg.Search,
		lock:     cfg.Lock,
		logger:   logger,
		queries:  cfg.Queries,
		interval: interval,
	}
}

// Start begins the warm loop.
// The first warm runs immediately; later runs follow the interval.
// It runs until Stop is called or the context is cancelled.
func (w *Worker) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	w.stopCh = make(chan struct{})
	w.doneCh = make(chan struct{})
	w.mu.Unlock()

	w.logger.Info("warm worker starting",
		"queries", len(w.queries),
		"interval", w.interval,
	)

	go w.loop(ctx)

	return nil
}

// Stop gracefully stops the worker.
func (w *Worker) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	close(w.stopCh)
	w.mu.Unlock()

	<-w.doneCh

	w.mu.Lock()
	w.running = false
	w.mu.Unlock()

	w.logger.Info("warm worker stopped")
}

// Wait blocks until the worker stops.
func (w *Worker) Wait() {
	<-w.doneCh
}

func (w *Worker) loop(ctx context.Context) {
	defer close(w.doneCh)

	w.warm(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("warm worker context cancelled")
			return
		case <-w.stopCh:
			return
		case <-ticker.C:
			w.warm(ctx)
		}
	}
}

// warm runs a single warm cycle, guarded by the lock when configured
func (w *Worker) warm(ctx context.Context) {
	if len(w.queries) == 0 {
		return
	}

	if w.lock != nil {
		acquired, err := w.lock.Acquire(ctx, lockName, w.interval)
		if err != nil {
			w.logger.Error("failed to acquire warm lock", "error", err)
			return
		}
		if !acquired {
			w.logger.Debug("warm lock held elsewhere, skipping cycle")
			return
		}
		defer func() {
			if err := w.lock.Release(ctx, lockName); err != nil {
				w.logger.Error("failed to release warm lock", "error", err)
			}
		}()
	}

	start := time.Now()
	warmed := w.search.Warm(ctx, w.queries)

	w.logger.Info("warm cycle complete",
		"warmed", warmed,
		"total", len(w.queries),
		"duration", time.Since(start),
	)
}

// Health returns health status of the worker.
type Health struct {
	Running    bool   `json:"running"`
	LockHealth bool   `json:"lock_health"`
	Error      string `json:"error,omitempty"`
}

// Health returns the health status of the worker.
func (w *Worker) Health(ctx context.Context) Health {
	w.mu.RLock()
	running := w.running
	w.mu.RUnlock()

	health := Health{
		Running:    running,
		LockHealth: true,
	}

	if w.lock != nil {
		if err := w.lock.Ping(ctx); err != nil {
			health.LockHealth = false
			health.Error = err.Error()
		}
	}

	return health
}
