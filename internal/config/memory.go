package config

import (
	"context"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/scribebot/pkg/log"
)

type MemoryConfig struct {
	// Max turns kept per user
	MaxTurns int `env:"MEMORY_MAX_TURNS" envDefault:"20"`
	// Max age of a turn before it is pruned
	TTL time.Duration `env:"MEMORY_TTL" envDefault:"30m"`
	// Interval of the periodic full memory reset
	ResetInterval time.Duration `env:"MEMORY_RESET_INTERVAL" envDefault:"24h"`
	// Interval of the periodic training-context cache clear
	CacheClearInterval time.Duration `env:"CONTEXT_CACHE_CLEAR_INTERVAL" envDefault:"15m"`
}

func NewMemoryConfig(ctx context.Context) *MemoryConfig {
	c := &MemoryConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse Memory config")
	}
	return c
}
