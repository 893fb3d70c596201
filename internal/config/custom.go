package config

import (
	"context"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/scribebot/pkg/log"
)

// CustomLLMConfig points at any OpenAI-compatible endpoint.
type CustomLLMConfig struct {
	BaseURL string `env:"CUSTOM_OPENAI_BASE_URL,required,notEmpty"`
	APIKey  string `env:"CUSTOM_OPENAI_API_KEY"`
	Model   string `env:"CUSTOM_OPENAI_MODEL,required,notEmpty"`
}

func NewCustomLLMConfig(ctx context.Context) *CustomLLMConfig {
	c := &CustomLLMConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse custom LLM config")
	}
	return c
}
