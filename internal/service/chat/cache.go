package chat

import (
	"context"
	"sync"
	"time"

	"github.com/sandevgo/scribebot/pkg/log"
)

// ContextCache holds the rendered training context per guild so that every
// chat turn does not re-read and re-aggregate the snapshot. It is fully
// cleared on a dedicated ticker. Implements srv.Service.
type ContextCache struct {
	mu       sync.RWMutex
	contexts map[string]string
	interval time.Duration
	done     chan struct{}
}

func NewContextCache(interval time.Duration) *ContextCache {
	return &ContextCache{
		contexts: make(map[string]string),
		interval: interval,
		done:     make(chan struct{}),
	}
}

func (c *ContextCache) Get(guildID string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	rendered, ok := c.contexts[guildID]
	return rendered, ok
}

func (c *ContextCache) Set(guildID, rendered string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.contexts[guildID] = rendered
}

func (c *ContextCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.contexts = make(map[string]string)
}

func (c *ContextCache) Start(ctx context.Context) error {
	logger := log.FromCtx(ctx)
	logger.Info().Dur("interval", c.interval).Msg("starting context cache janitor")

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-c.done:
			return nil
		case <-ticker.C:
			c.Clear()
			logger.Debug().Msg("context cache cleared")
		}
	}
}

func (c *ContextCache) Shutdown(ctx context.Context) error {
	close(c.done)
	return nil
}
