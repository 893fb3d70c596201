package config

import (
	"context"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/scribebot/pkg/log"
)

type IndexerConfig struct {
	// Page size for backward paging against the gateway
	PageSize int `env:"INDEX_PAGE_SIZE" envDefault:"100"`
	// Max messages retained per channel index
	ChannelCap int `env:"INDEX_CHANNEL_CAP" envDefault:"500"`
	// Fixed delay between page requests; deliberate rate-limit budget,
	// not adaptive backoff
	FetchDelay time.Duration `env:"INDEX_FETCH_DELAY" envDefault:"1s"`
	// How often the background indexing run fires
	Interval time.Duration `env:"INDEX_INTERVAL" envDefault:"6h"`
}

func NewIndexerConfig(ctx context.Context) *IndexerConfig {
	c := &IndexerConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse Indexer config")
	}
	return c
}
