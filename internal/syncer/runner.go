package syncer

import (
	"context"
	"time"

	"novelcore/internal/contextutil"
)

// Runner runs a pull then a push on a fixed interval until its context is
// done. Failures are logged; the unchanged cursor makes the next tick retry.
type Runner struct {
	syncer   Syncer
	interval time.Duration
}

// NewRunner creates a new Runner.
func NewRunner(s Syncer, interval time.Duration) *Runner {
	return &Runner{syncer: s, interval: interval}
}

// Run blocks until ctx is done.
func (r *Runner) Run(ctx context.Context) {
	logger := contextutil.LoggerFromContext(ctx)
	logger.InfoContext(ctx, "periodic sync started", "interval", r.interval)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.InfoContext(ctx, "periodic sync stopped")
			return
		case <-ticker.C:
			if ctx.Err() != nil {
				continue
			}
			r.cycle(ctx)
		}
	}
}

func (r *Runner) cycle(ctx context.Context) {
	logger := contextutil.LoggerFromContext(ctx)

	pulled, err := r.syncer.Pull(ctx)
	if err != nil {
		logger.WarnContext(ctx, "periodic pull failed", "error", err)
		return
	}
	pushed, err := r.syncer.Push(ctx)
	if err != nil {
		logger.WarnContext(ctx, "periodic push failed", "error", err)
		return
	}
	logger.DebugContext(ctx, "periodic sync completed", "pulled", pulled.Count, "pushed", pushed.Count)
}
