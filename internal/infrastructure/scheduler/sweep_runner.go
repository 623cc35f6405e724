package scheduler

import (
	"context"
	"sync"
	"time"

	"cremacao_pet/internal/usecase"
	"cremacao_pet/internal/usecase/interfaces"

	"go.uber.org/zap"
)

const sweepLockKey = "scheduling-sweep"

// SweepRunner ticks the scheduling sweep. A tick runs only while it holds the sweep lock, so at
// most one instance promotes at a time and ticks never overlap.
type SweepRunner struct {
	sweep    usecase.ISchedulingSweep
	locker   interfaces.ILocker
	interval time.Duration
	logger   *zap.Logger
	now      func() time.Time

	mu      sync.Mutex
	cancel  context.CancelFunc
	done    chan struct{}
	running bool
}

func NewSweepRunner(sweep usecase.ISchedulingSweep, locker interfaces.ILocker, interval time.Duration, logger *zap.Logger) *SweepRunner {
	if interval <= 0 {
		interval = time.Minute
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SweepRunner{
		sweep:    sweep,
		locker:   locker,
		interval: interval,
		logger:   logger.Named("sweep_runner"),
		now:      time.Now,
	}
}

// Start launches the ticker loop. Calling it on a running runner is a no-op.
func (r *SweepRunner) Start(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.running {
		return
	}
	ctx, cancel := context.WithCancel(ctx)
	r.cancel = cancel
	r.done = make(chan struct{})
	r.running = true

	go r.loop(ctx, r.done)
	r.logger.Info("scheduling sweep started", zap.Duration("interval", r.interval))
}

// Stop cancels the loop and waits for the current tick, or for ctx to expire.
func (r *SweepRunner) Stop(ctx context.Context) error {
	r.mu.Lock()
	if !r.running {
		r.mu.Unlock()
		return nil
	}
	r.running = false
	r.cancel()
	done := r.done
	r.mu.Unlock()

	select {
	case <-done:
		r.logger.Info("scheduling sweep stopped")
		return nil
	case <-ctx.Done():
		r.logger.Warn("scheduling sweep stop timed out")
		return ctx.Err()
	}
}

func (r *SweepRunner) loop(ctx context.Context, done chan struct{}) {
	defer close(done)
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	r.Tick(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.Tick(ctx)
		}
	}
}

// Tick runs one sweep if the lock is free and returns the number of promoted removals.
func (r *SweepRunner) Tick(ctx context.Context) int {
	if r.locker != nil {
		ok, err := r.locker.TryLock(ctx, sweepLockKey)
		if err != nil {
			r.logger.Warn("sweep lock unavailable", zap.Error(err))
			return 0
		}
		if !ok {
			r.logger.Debug("sweep already running elsewhere")
			return 0
		}
		defer func() {
			if err := r.locker.Unlock(context.WithoutCancel(ctx), sweepLockKey); err != nil {
				r.logger.Warn("sweep unlock failed", zap.Error(err))
			}
		}()
	}

	n, err := r.sweep.PromoteScheduled(ctx, r.now())
	if err != nil {
		r.logger.Error("sweep failed", zap.Error(err))
	}
	return n
}
