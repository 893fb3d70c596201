package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/sandevgo/scribebot/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepo(t *testing.T) *TurnsRepo {
	t.Helper()

	db, err := NewDB(context.Background(), filepath.Join(t.TempDir(), "scribe.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewTurnsRepo(db)
}

func addTurn(t *testing.T, repo *TurnsRepo, userID, role, content string, createdAt int64) {
	t.Helper()
	require.NoError(t, repo.AddTurn(context.Background(), userID, core.Turn{
		Role:      role,
		Content:   content,
		CreatedAt: createdAt,
	}))
}

func TestTurnsRepo_InsertionOrder(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	addTurn(t, repo, "u1", core.RoleUser, "first", 100)
	addTurn(t, repo, "u1", core.RoleAssistant, "second", 200)
	addTurn(t, repo, "u1", core.RoleUser, "third", 300)

	turns, err := repo.GetTurns(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, turns, 3)
	assert.Equal(t, "first", turns[0].Content)
	assert.Equal(t, "third", turns[2].Content)
	assert.Equal(t, int64(200), turns[1].CreatedAt)
}

func TestTurnsRepo_GetTurnsEmpty(t *testing.T) {
	repo := newTestRepo(t)

	turns, err := repo.GetTurns(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Empty(t, turns)
}

func TestTurnsRepo_PruneCutoff(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	addTurn(t, repo, "u1", core.RoleUser, "expired", 100)
	addTurn(t, repo, "u1", core.RoleUser, "alive", 500)

	require.NoError(t, repo.Prune(ctx, "u1", 200, 20))

	turns, err := repo.GetTurns(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, turns, 1)
	assert.Equal(t, "alive", turns[0].Content)
}

func TestTurnsRepo_PruneCap(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	for i := int64(1); i <= 25; i++ {
		addTurn(t, repo, "u1", core.RoleUser, "msg", i*1000)
	}

	require.NoError(t, repo.Prune(ctx, "u1", 0, 20))

	turns, err := repo.GetTurns(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, turns, 20)
	// The oldest five are evicted, newest kept.
	assert.Equal(t, int64(6000), turns[0].CreatedAt)
	assert.Equal(t, int64(25000), turns[19].CreatedAt)
}

func TestTurnsRepo_PruneIsPerUser(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	addTurn(t, repo, "u1", core.RoleUser, "u1 old", 100)
	addTurn(t, repo, "u2", core.RoleUser, "u2 old", 100)

	require.NoError(t, repo.Prune(ctx, "u1", 200, 20))

	u1, err := repo.GetTurns(ctx, "u1")
	require.NoError(t, err)
	u2, err := repo.GetTurns(ctx, "u2")
	require.NoError(t, err)

	assert.Empty(t, u1)
	assert.Len(t, u2, 1)
}

func TestTurnsRepo_Clear(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	addTurn(t, repo, "u1", core.RoleUser, "a", 100)
	addTurn(t, repo, "u2", core.RoleUser, "b", 100)

	require.NoError(t, repo.Clear(ctx, "u1"))

	u1, err := repo.GetTurns(ctx, "u1")
	require.NoError(t, err)
	u2, err := repo.GetTurns(ctx, "u2")
	require.NoError(t, err)

	assert.Empty(t, u1)
	assert.Len(t, u2, 1)
}

func TestTurnsRepo_ClearAll(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	addTurn(t, repo, "u1", core.RoleUser, "a", 100)
	addTurn(t, repo, "u2", core.RoleUser, "b", 100)

	require.NoError(t, repo.ClearAll(ctx))

	for _, user := range []string{"u1", "u2"} {
		turns, err := repo.GetTurns(ctx, user)
		require.NoError(t, err)
		assert.Empty(t, turns)
	}
}
