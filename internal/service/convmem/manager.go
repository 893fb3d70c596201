package convmem

import (
	"context"
	"fmt"
	"time"

	"github.com/sandevgo/scribebot/internal/config"
	"github.com/sandevgo/scribebot/internal/core"
)

// Manager keeps short-lived per-user dialogue history for the text-generation
// provider. Histories are strictly partitioned by user id and bounded by a max
// turn count and a max age; pruning happens lazily on every add and read.
type Manager struct {
	repo     core.TurnsRepository
	maxTurns int
	ttl      time.Duration
	now      func() time.Time
}

func NewManager(repo core.TurnsRepository, cfg *config.MemoryConfig) *Manager {
	return &Manager{
		repo:     repo,
		maxTurns: cfg.MaxTurns,
		ttl:      cfg.TTL,
		now:      time.Now,
	}
}

// Add appends a turn stamped with the current time, then prunes and persists
// the user's history.
func (m *Manager) Add(ctx context.Context, userID, role, content string) error {
	turn := core.Turn{
		Role:      role,
		Content:   content,
		CreatedAt: m.now().UnixMilli(),
	}
	if err := m.repo.AddTurn(ctx, userID, turn); err != nil {
		return fmt.Errorf("add turn: %w", err)
	}
	return m.prune(ctx, userID)
}

// Get prunes lazily and returns the user's remaining history oldest-first,
// timestamps stripped.
func (m *Manager) Get(ctx context.Context, userID string) ([]core.ChatMessage, error) {
	if err := m.prune(ctx, userID); err != nil {
		return nil, err
	}

	turns, err := m.repo.GetTurns(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get turns: %w", err)
	}

	history := make([]core.ChatMessage, 0, len(turns))
	for _, t := range turns {
		history = append(history, core.ChatMessage{Role: t.Role, Content: t.Content})
	}
	return history, nil
}

func (m *Manager) Clear(ctx context.Context, userID string) error {
	return m.repo.Clear(ctx, userID)
}

func (m *Manager) ClearAll(ctx context.Context) error {
	return m.repo.ClearAll(ctx)
}

func (m *Manager) prune(ctx context.Context, userID string) error {
	cutoff := m.now().Add(-m.ttl).UnixMilli()
	if err := m.repo.Prune(ctx, userID, cutoff, m.maxTurns); err != nil {
		return fmt.Errorf("prune turns: %w", err)
	}
	return nil
}
