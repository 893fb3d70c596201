package indexer

import (
	"context"
	"time"

	"github.com/sandevgo/scribebot/pkg/log"
)

// Service runs periodic indexing passes for a single guild on a dedicated
// ticker. Implements srv.Service.
type Service struct {
	indexer  *Indexer
	guildID  string
	interval time.Duration
	done     chan struct{}
}

func NewService(indexer *Indexer, guildID string, interval time.Duration) *Service {
	return &Service{
		indexer:  indexer,
		guildID:  guildID,
		interval: interval,
		done:     make(chan struct{}),
	}
}

func (s *Service) Start(ctx context.Context) error {
	logger := log.FromCtx(ctx)
	logger.Info().Str("guild", s.guildID).Dur("interval", s.interval).Msg("starting indexer service")

	// First pass immediately, then on the ticker.
	if _, err := s.indexer.Run(ctx, s.guildID); err != nil {
		logger.Error().Err(err).Str("guild", s.guildID).Msg("indexing run failed")
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-s.done:
			return nil
		case <-ticker.C:
			if _, err := s.indexer.Run(ctx, s.guildID); err != nil {
				logger.Error().Err(err).Str("guild", s.guildID).Msg("indexing run failed")
			}
		}
	}
}

func (s *Service) Shutdown(ctx context.Context) error {
	close(s.done)
	return nil
}
