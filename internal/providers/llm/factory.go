package llm

import (
	"context"
	"fmt"

	"github.com/sandevgo/scribebot/internal/config"
	"github.com/sandevgo/scribebot/internal/core"
	"github.com/sandevgo/scribebot/pkg/log"
)

// NewProvider creates the appropriate Generator based on configuration.
func NewProvider(ctx context.Context, cfg *config.AppConfig) (core.Generator, error) {
	log.FromCtx(ctx).Info().
		Str("provider", cfg.LLMProvider).
		Msg("starting llm provider")

	switch cfg.LLMProvider {
	case "openrouter":
		orCfg := config.NewOpenRouterConfig(ctx)
		return NewOpenRouter(orCfg.APIKey, orCfg.Model), nil
	case "custom":
		cCfg := config.NewCustomLLMConfig(ctx)
		return NewOpenAICompatible(OpenAICompatibleConfig{
			BaseURL:    cCfg.BaseURL,
			APIKey:     cCfg.APIKey,
			Model:      cCfg.Model,
			AuthHeader: "Authorization",
			AuthPrefix: "Bearer ",
		}), nil
	default:
		return nil, fmt.Errorf("unknown llm provider: %s", cfg.LLMProvider)
	}
}
