package convmem

import (
	"context"
	"time"

	"github.com/sandevgo/scribebot/pkg/log"
)

// Janitor performs the periodic full memory reset on its own ticker.
// Implements srv.Service.
type Janitor struct {
	manager  *Manager
	interval time.Duration
	done     chan struct{}
}

func NewJanitor(manager *Manager, interval time.Duration) *Janitor {
	return &Janitor{
		manager:  manager,
		interval: interval,
		done:     make(chan struct{}),
	}
}

func (j *Janitor) Start(ctx context.Context) error {
	logger := log.FromCtx(ctx)
	logger.Info().Dur("interval", j.interval).Msg("starting memory janitor")

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-j.done:
			return nil
		case <-ticker.C:
			if err := j.manager.ClearAll(ctx); err != nil {
				logger.Error().Err(err).Msg("full memory reset failed")
			} else {
				logger.Debug().Msg("conversation memory reset")
			}
		}
	}
}

func (j *Janitor) Shutdown(ctx context.Context) error {
	close(j.done)
	return nil
}
