package chat

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/sandevgo/scribebot/internal/config"
	"github.com/sandevgo/scribebot/internal/core"
	"github.com/sandevgo/scribebot/internal/service/convmem"
	"github.com/sandevgo/scribebot/internal/service/training"
	"github.com/sandevgo/scribebot/pkg/log"
	"github.com/sandevgo/scribebot/pkg/retry"
)

// Chat assembles the generation prompt from the persona, the guild's training
// context and the user's conversational memory, and calls the text-generation
// provider.
type Chat struct {
	cfg     *config.AppConfig
	gen     core.Generator
	memory  *convmem.Manager
	store   core.SnapshotStore
	cache   *ContextCache
	retrier *retry.Retrier
	guildID string
}

func New(
	cfg *config.AppConfig,
	gen core.Generator,
	memory *convmem.Manager,
	store core.SnapshotStore,
	cache *ContextCache,
	guildID string,
) *Chat {
	return &Chat{
		cfg:     cfg,
		gen:     gen,
		memory:  memory,
		store:   store,
		cache:   cache,
		retrier: retry.NewDefaultRetrier(),
		guildID: guildID,
	}
}

func (c *Chat) Respond(ctx context.Context, userID, input string) (string, error) {
	logger := log.FromCtx(ctx)

	if err := c.memory.Add(ctx, userID, core.RoleUser, input); err != nil {
		return "", fmt.Errorf("save user turn: %w", err)
	}

	messages := c.buildSystemPrompt(ctx)

	history, err := c.memory.Get(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("fetch history: %w", err)
	}
	messages = append(messages, history...)

	var reply string
	err = c.retrier.Do(ctx, func() error {
		var genErr error
		reply, genErr = c.gen.Generate(ctx, messages)
		return genErr
	})
	if err != nil {
		return "", fmt.Errorf("generate: %w", err)
	}

	if err := c.memory.Add(ctx, userID, core.RoleAssistant, reply); err != nil {
		logger.Error().Err(err).Msg("failed to save assistant turn")
	}

	return reply, nil
}

func (c *Chat) buildSystemPrompt(ctx context.Context) []core.ChatMessage {
	messages := make([]core.ChatMessage, 0, 2)

	if persona, err := os.ReadFile(c.cfg.GetPersonaPath()); err == nil && len(persona) > 0 {
		messages = append(messages, core.ChatMessage{Role: core.RoleSystem, Content: string(persona)})
	}

	if trainCtx := c.trainingContext(ctx); trainCtx != "" {
		messages = append(messages, core.ChatMessage{
			Role:    core.RoleSystem,
			Content: "COMMUNITY CONTEXT:\n" + trainCtx,
		})
	}
	return messages
}

// trainingContext returns the cached rendered context for the guild, building
// it from the persisted snapshot on a cache miss.
func (c *Chat) trainingContext(ctx context.Context) string {
	if rendered, ok := c.cache.Get(c.guildID); ok {
		return rendered
	}

	snap, ok, err := c.store.Load(ctx, c.guildID)
	if err != nil || !ok {
		if err != nil {
			log.FromCtx(ctx).Warn().Err(err).Str("guild", c.guildID).Msg("cannot load snapshot for context")
		}
		return ""
	}

	rendered := training.Aggregate(snap, time.Now()).Render()
	rendered = truncateTokens(rendered, c.cfg.PromptTokenBudget)
	c.cache.Set(c.guildID, rendered)
	return rendered
}
