package game

import (
	"context"
	"fmt"

	"rps-game/gameerrors"
)

// RoundResult is one completed round. It is a value type and never changes after NewRoundResult.
type RoundResult struct {
	Mode     Mode
	Human    Weapon
	Computer Weapon
	Champion Champion
}

// NewRoundResult resolves the round and returns its result.
func NewRoundResult(mode Mode, human, computer Weapon) RoundResult {
	return RoundResult{
		Mode:     mode,
		Human:    human,
		Computer: computer,
		Champion: Winner(human, computer),
	}
}

// Slot holds an optional round. The zero Slot is empty.
type Slot struct {
	Round RoundResult
	Valid bool
}

// Filled returns a Slot holding r.
func Filled(r RoundResult) Slot {
	return Slot{Round: r, Valid: true}
}

// HistoryRecord is the rolling two-round window fed to the strategies:
// the latest round (Current) and the one before it (Older).
// The zero HistoryRecord means no round has been played yet.
type HistoryRecord struct {
	Current Slot
	Older   Slot
}

// Complete reports whether both rounds are present. Only complete records are persisted.
func (h HistoryRecord) Complete() bool {
	return h.Current.Valid && h.Older.Valid
}

// Last returns the latest round, if any.
func (h HistoryRecord) Last() (RoundResult, bool) {
	return h.Current.Round, h.Current.Valid
}

// Advance shifts the current round into the older slot and stores result as the current round.
// It does not decide whether the new record is persisted.
func Advance(result RoundResult, record HistoryRecord) HistoryRecord {
	return HistoryRecord{
		Current: Filled(result),
		Older:   record.Current,
	}
}

// HistoryWriter durably appends complete history records.
// Implemented by the storage package; declared here so game does not import it.
type HistoryWriter interface {
	Append(ctx context.Context, record HistoryRecord) error
}

// AppendIfComplete writes record to w only when it is complete, which is every
// round except the first. It reports whether the record was written.
func AppendIfComplete(ctx context.Context, w HistoryWriter, record HistoryRecord) (bool, error) {
	if !record.Complete() {
		return false, nil
	}
	if w == nil {
		return false, nil
	}
	if err := w.Append(ctx, record); err != nil {
		return false, fmt.Errorf("append history record: %w", err)
	}
	return true, nil
}

// Validate checks that every present round holds known enum values.
func (h HistoryRecord) Validate() error {
	for _, s := range [...]Slot{h.Current, h.Older} {
		if !s.Valid {
			continue
		}
		r := s.Round
		if !r.Mode.Valid() || !r.Human.Valid() || !r.Computer.Valid() || !r.Champion.Valid() {
			return fmt.Errorf("%w: %+v", gameerrors.ErrMalformedRecord, r)
		}
	}
	return nil
}
