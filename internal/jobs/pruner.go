package jobs

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// OutcomePruner deletes reply outcome rows last seen before cutoff.
type OutcomePruner interface {
	PruneReplyOutcomes(ctx context.Context, cutoff time.Time) (int64, error)
}

// Sweeper drops expired entries from an in-process store.
type Sweeper interface {
	Sweep() int
}

// Pruner periodically removes stale reply outcome counters and, when set,
// sweeps expired keys from the in-memory store.
type Pruner struct {
	outcomes  OutcomePruner
	sweeper   Sweeper
	interval  time.Duration
	retention time.Duration
	logger    *zap.Logger
	now       func() time.Time
}

// NewPruner creates a new pruner. sweeper may be nil.
func NewPruner(outcomes OutcomePruner, sweeper Sweeper, interval, retention time.Duration, logger *zap.Logger) *Pruner {
	return &Pruner{
		outcomes:  outcomes,
		sweeper:   sweeper,
		interval:  interval,
		retention: retention,
		logger:    logger,
		now:       time.Now,
	}
}

// Start runs the prune loop until ctx is cancelled.
func (p *Pruner) Start(ctx context.Context) {
	p.logger.Info("pruner started",
		zap.Duration("interval", p.interval),
		zap.Duration("retention", p.retention))

	// Run immediately on start
	p.RunOnce(ctx)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			p.logger.Info("pruner stopped")
			return
		case <-ticker.C:
			p.RunOnce(ctx)
		}
	}
}

// RunOnce performs a single prune pass.
func (p *Pruner) RunOnce(ctx context.Context) {
	if p.outcomes != nil && p.retention > 0 {
		cutoff := p.now().Add(-p.retention)
		removed, err := p.outcomes.PruneReplyOutcomes(ctx, cutoff)
		if err != nil {
			p.logger.Error("failed to prune reply outcomes", zap.Error(err))
		} else if removed > 0 {
			p.logger.Info("pruned reply outcomes", zap.Int64("removed", removed))
		}
	}

	if p.sweeper != nil {
		if n := p.sweeper.Sweep(); n > 0 {
			p.logger.Debug("swept expired keys", zap.Int("removed", n))
		}
	}
}
