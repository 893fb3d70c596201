package core

import "context"

// SnapshotStore persists one index snapshot per guild. Load reports a missing
// or unreadable snapshot as ok=false rather than an error; err is reserved for
// non-recoverable conditions such as an invalid guild identifier.
type SnapshotStore interface {
	Load(ctx context.Context, guildID string) (snap *Snapshot, ok bool, err error)
	Save(ctx context.Context, guildID string, snap *Snapshot) error
}

// TurnsRepository stores conversation turns strictly partitioned by user.
type TurnsRepository interface {
	AddTurn(ctx context.Context, userID string, turn Turn) error
	// GetTurns returns the user's turns oldest-first.
	GetTurns(ctx context.Context, userID string) ([]Turn, error)
	// Prune drops turns created before cutoff (unix ms), then keeps only the
	// most recent keep turns.
	Prune(ctx context.Context, userID string, cutoff int64, keep int) error
	Clear(ctx context.Context, userID string) error
	ClearAll(ctx context.Context) error
}
