package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sandevgo/scribebot/internal/core"
)

// TurnsRepo stores conversation turns partitioned by user id. created_at is
// unix milliseconds supplied by the caller so that pruning cutoffs and tests
// share one clock.
type TurnsRepo struct {
	db *sql.DB
}

func NewTurnsRepo(db *sql.DB) *TurnsRepo {
	return &TurnsRepo{db: db}
}

func (r *TurnsRepo) AddTurn(ctx context.Context, userID string, turn core.Turn) error {
	query := `INSERT INTO turns (user_id, role, content, created_at) VALUES (?, ?, ?, ?)`
	if _, err := r.db.ExecContext(ctx, query, userID, turn.Role, turn.Content, turn.CreatedAt); err != nil {
		return fmt.Errorf("failed to insert turn: %w", err)
	}
	return nil
}

func (r *TurnsRepo) GetTurns(ctx context.Context, userID string) ([]core.Turn, error) {
	query := `SELECT role, content, created_at FROM turns WHERE user_id = ? ORDER BY id ASC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query turns: %w", err)
	}
	defer rows.Close()

	var turns []core.Turn
	for rows.Next() {
		var t core.Turn
		if err := rows.Scan(&t.Role, &t.Content, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan turn: %w", err)
		}
		turns = append(turns, t)
	}
	return turns, rows.Err()
}

func (r *TurnsRepo) Prune(ctx context.Context, userID string, cutoff int64, keep int) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM turns WHERE user_id = ? AND created_at < ?`, userID, cutoff); err != nil {
		return fmt.Errorf("failed to prune aged turns: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM turns WHERE user_id = ? AND id NOT IN (
			SELECT id FROM turns WHERE user_id = ? ORDER BY id DESC LIMIT ?
		)`, userID, userID, keep); err != nil {
		return fmt.Errorf("failed to cap turns: %w", err)
	}

	return tx.Commit()
}

func (r *TurnsRepo) Clear(ctx context.Context, userID string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM turns WHERE user_id = ?`, userID); err != nil {
		return fmt.Errorf("failed to clear turns: %w", err)
	}
	return nil
}

func (r *TurnsRepo) ClearAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM turns`); err != nil {
		return fmt.Errorf("failed to clear all turns: %w", err)
	}
	return nil
}
