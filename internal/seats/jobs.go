package seats

import (
	"context"
	"time"

	"skybook/pkg/logger"
)

// Sweeper runs the hold reconciliation sweep on a timer. The sweep is the
// same idempotent pass read paths already run lazily, so the sweeper is an
// optimization, not a correctness requirement: with it disabled, expired
// holds still never count against availability.
type Sweeper struct {
	service  Service
	interval time.Duration
	logger   *logger.Logger
	done     chan struct{}
}

func NewSweeper(service Service, interval time.Duration) *Sweeper {
	if interval <= 0 {
		interval = time.Minute
	}
	return &Sweeper{
		service:  service,
		interval: interval,
		logger:   logger.GetDefault(),
		done:     make(chan struct{}),
	}
}

// Start launches the sweep loop.
func (sw *Sweeper) Start(ctx context.Context) {
	sw.logger.Info("starting hold sweeper", "interval", sw.interval)
	go sw.run(ctx)
}

// Stop terminates the sweep loop.
func (sw *Sweeper) Stop() {
	close(sw.done)
	sw.logger.Info("hold sweeper stopped")
}

func (sw *Sweeper) run(ctx context.Context) {
	ticker := time.NewTicker(sw.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			// Failures are logged inside ReleaseExpired and swallowed here;
			// the next tick or a lazy sweep will catch up.
			_, _ = sw.service.ReleaseExpired(ctx)
		case <-sw.done:
			return
		case <-ctx.Done():
			return
		}
	}
}
