package storage

import (
	"context"

	"rps-game/ai"
	"rps-game/game"
)

// HistoryStore abstracts the append-only history log. Records are returned by
// Load in the order they were appended; nothing is ever rewritten.
type HistoryStore interface {
	// Write
	Append(ctx context.Context, record game.HistoryRecord) error

	// Read
	Load(ctx context.Context) ([]game.HistoryRecord, error)

	// Lifecycle
	Close() error
}

// Ensure the stores implement HistoryStore, and through it the narrower
// interfaces game and ai depend on, at compile time.
var (
	_ HistoryStore       = (*FileStore)(nil)
	_ HistoryStore       = (*PostgresStore)(nil)
	_ HistoryStore       = (*Mirror)(nil)
	_ game.HistoryWriter = HistoryStore(nil)
	_ ai.TrainingSource  = HistoryStore(nil)
)
