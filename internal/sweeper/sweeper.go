// Package sweeper runs the reconciliation passes on a fixed interval so the
// mirror converges even when no external cron hits the API.
package sweeper

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/alitto/pond/v2"
	"go.uber.org/zap"

	"github.com/situs-protocol/situs-indexer/internal/adapter"
	"github.com/situs-protocol/situs-indexer/internal/logger"
	"github.com/situs-protocol/situs-indexer/internal/reconciler"
)

// Config holds configuration for the reconciliation sweeper
type Config struct {
	// Interval is the time between sweep cycles
	Interval time.Duration
	// WorkerPoolSize bounds the concurrent reconciliation tasks per cycle
	WorkerPoolSize int
}

// Sweeper runs reconciliation on an interval until stopped
type Sweeper interface {
	Name() string
	Start(ctx context.Context) error
	Stop()
}

type reconcileSweeper struct {
	config     *Config
	reconciler reconciler.Reconciler
	clock      adapter.Clock
	pool       pond.Pool
	running    atomic.Bool
	stopChan   chan struct{}
	stoppedCh  chan struct{}
}

// NewReconcileSweeper creates a reconciliation sweeper
func NewReconcileSweeper(config *Config, rec reconciler.Reconciler, clock adapter.Clock) Sweeper {
	return &reconcileSweeper{
		config:     config,
		reconciler: rec,
		clock:      clock,
		stopChan:   make(chan struct{}),
		stoppedCh:  make(chan struct{}),
	}
}

// Name returns the sweeper's name
func (s *reconcileSweeper) Name() string {
	return "reconcile-sweeper"
}

// Start begins the sweeper's main loop
func (s *reconcileSweeper) Start(ctx context.Context) error {
	if !s.running.CompareAndSwap(false, true) {
		return fmt.Errorf("sweeper already running")
	}
	defer func() {
		s.running.Store(false)
		close(s.stoppedCh)
	}()

	logger.InfoCtx(ctx, "Starting reconcile sweeper",
		zap.Duration("interval", s.config.Interval),
		zap.Int("worker_pool_size", s.config.WorkerPoolSize),
	)

	s.pool = pond.NewPool(
		s.config.WorkerPoolSize,
		pond.WithContext(ctx),
	)

	ticker := time.NewTicker(s.config.Interval)
	defer ticker.Stop()

	// Run one cycle immediately so a fresh deployment converges without
	// waiting a full interval
	s.runSweepCycle(ctx)

	for {
		select {
		case <-ctx.Done():
			logger.InfoCtx(ctx, "Reconcile sweeper stopping due to context cancellation", zap.Error(ctx.Err()))
			s.cleanup()
			return nil
		case <-s.stopChan:
			logger.InfoCtx(ctx, "Reconcile sweeper stop requested")
			s.cleanup()
			return nil
		case <-ticker.C:
			s.runSweepCycle(ctx)
		}
	}
}

// runSweepCycle submits the full sync and the ensurance sync to the pool and
// waits for both. Each task logs its own result; a failing task never aborts
// the sweeper loop.
func (s *reconcileSweeper) runSweepCycle(ctx context.Context) {
	start := s.clock.Now()
	group := s.pool.NewGroup()

	group.SubmitErr(func() error {
		result, err := s.reconciler.FullSync(ctx)
		if err != nil {
			return fmt.Errorf("full sync failed: %w", err)
		}
		if len(result.Errors) > 0 {
			logger.WarnCtx(ctx, "Full sync completed with errors",
				zap.String("runID", result.RunID),
				zap.Strings("errors", result.Errors))
		}
		return nil
	})

	group.SubmitErr(func() error {
		results, err := s.reconciler.SyncEnsurance(ctx)
		if err != nil {
			return fmt.Errorf("ensurance sync failed: %w", err)
		}
		for _, r := range results {
			if len(r.Errors) > 0 {
				logger.WarnCtx(ctx, "Ensurance sync completed with errors",
					zap.String("chain", string(r.Chain)),
					zap.Strings("errors", r.Errors))
			}
		}
		return nil
	})

	if err := group.Wait(); err != nil {
		logger.ErrorCtx(ctx, err)
	}

	logger.InfoCtx(ctx, "Sweep cycle complete",
		zap.Duration("duration", s.clock.Since(start)))
}

// cleanup stops the worker pool and waits for in-flight tasks
func (s *reconcileSweeper) cleanup() {
	if s.pool != nil {
		s.pool.StopAndWait()
	}
}

// Stop requests the sweeper to stop and waits for the loop to exit
func (s *reconcileSweeper) Stop() {
	if !s.running.Load() {
		return
	}
	close(s.stopChan)
	<-s.stoppedCh
}
