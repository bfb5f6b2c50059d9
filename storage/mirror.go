package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"rps-game/game"
)

// Mirror appends to a primary store and copies every record to secondary
// stores. Reads go to the primary only. A failing secondary is logged and
// does not fail the append.
type Mirror struct {
	primary     HistoryStore
	secondaries []HistoryStore
}

// NewMirror returns a Mirror over primary and secondaries.
func NewMirror(primary HistoryStore, secondaries ...HistoryStore) *Mirror {
	return &Mirror{primary: primary, secondaries: secondaries}
}

// Append writes to the primary first; the record is only mirrored once the primary has it.
func (m *Mirror) Append(ctx context.Context, record game.HistoryRecord) error {
	if err := m.primary.Append(ctx, record); err != nil {
		return err
	}
	for i, s := range m.secondaries {
		if err := s.Append(ctx, record); err != nil {
			slog.Warn("mirror append failed", "tag", "storage", "secondary", i, "err", err)
		}
	}
	return nil
}

// Load reads from the primary store.
func (m *Mirror) Load(ctx context.Context) ([]game.HistoryRecord, error) {
	return m.primary.Load(ctx)
}

// Close closes every store and joins their errors.
func (m *Mirror) Close() error {
	var errs []error
	if err := m.primary.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close primary: %w", err))
	}
	for i, s := range m.secondaries {
		if err := s.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close secondary %d: %w", i, err))
		}
	}
	return errors.Join(errs...)
}
