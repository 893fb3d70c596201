package config

import (
	"context"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/scribebot/pkg/log"
)

type AppConfig struct {
	RuntimePath string `env:"SCRIBE_RUNTIME_PATH" envDefault:".scribebot"`
	// Allow selecting the text-generation provider
	LLMProvider string `env:"LLM_PROVIDER" envDefault:"openrouter"`

	// Transport Flags
	EnableDiscord bool `env:"ENABLE_DISCORD" envDefault:"true"`
	EnableCLI     bool `env:"ENABLE_CLI" envDefault:"true"`

	// Token budget for the training context embedded into the prompt
	PromptTokenBudget int `env:"PROMPT_TOKEN_BUDGET" envDefault:"2000"`
}

func NewAppConfig(ctx context.Context) *AppConfig {
	c := &AppConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse App config")
	}
	return c
}

func (c AppConfig) GetRuntimePath() string {
	return c.RuntimePath
}

func (c AppConfig) GetIndexDir() string {
	return filepath.Join(c.RuntimePath, "index")
}

func (c AppConfig) GetDatabasePath() string {
	return filepath.Join(c.RuntimePath, "scribebot.db")
}

func (c AppConfig) GetPersonaPath() string {
	return filepath.Join(c.RuntimePath, "PERSONA.md")
}

func (c AppConfig) IsDiscordSelected() bool {
	return c.EnableDiscord
}

func (c AppConfig) IsCLISelected() bool {
	return c.EnableCLI
}
