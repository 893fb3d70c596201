package config

import (
	"context"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/scribebot/pkg/log"
)

type DiscordConfig struct {
	Token   string `env:"DISCORD_TOKEN,required,notEmpty"`
	GuildID string `env:"DISCORD_GUILD_ID,required,notEmpty"`
}

func NewDiscordConfig(ctx context.Context) *DiscordConfig {
	c := &DiscordConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse Discord config")
	}
	return c
}
