package snapshot

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/sandevgo/scribebot/internal/core"
	"github.com/sandevgo/scribebot/pkg/log"
)

// Store persists one JSON index file per guild under dir. Durability is
// best-effort: a missing or malformed file on load falls back to "absent", and
// the caller decides what a save failure means.
type Store struct {
	dir string
	mu  sync.RWMutex
}

func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

func (s *Store) path(guildID string) (string, error) {
	if guildID == "" || strings.ContainsAny(guildID, `/\`) {
		return "", fmt.Errorf("invalid guild id: %q", guildID)
	}
	return filepath.Join(s.dir, guildID+".json"), nil
}

// Load returns ok=false for a missing or unreadable snapshot; err only for an
// invalid guild identifier.
func (s *Store) Load(ctx context.Context, guildID string) (*core.Snapshot, bool, error) {
	path, err := s.path(guildID)
	if err != nil {
		return nil, false, err
	}

	s.mu.RLock()
	data, err := os.ReadFile(path)
	s.mu.RUnlock()

	if err != nil {
		if !os.IsNotExist(err) {
			log.FromCtx(ctx).Warn().Err(err).Str("guild", guildID).Msg("failed to read snapshot, starting empty")
		}
		return nil, false, nil
	}

	snap := core.NewSnapshot()
	if err := json.Unmarshal(data, snap); err != nil {
		log.FromCtx(ctx).Warn().Err(err).Str("guild", guildID).Msg("malformed snapshot, starting empty")
		return nil, false, nil
	}
	if snap.Channels == nil {
		snap.Channels = make(map[string]*core.ChannelIndex)
	}

	return snap, true, nil
}

func (s *Store) Save(ctx context.Context, guildID string, snap *core.Snapshot) error {
	path, err := s.path(guildID)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("create index directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return nil
}
