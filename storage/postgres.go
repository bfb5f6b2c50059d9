package storage

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"rps-game/game"
	"rps-game/gameerrors"
)

const createTableSQL = `
CREATE TABLE IF NOT EXISTS rps_rounds (
	seq            BIGSERIAL PRIMARY KEY,
	id             UUID NOT NULL UNIQUE,
	session_id     TEXT NOT NULL,
	played_at      TIMESTAMPTZ NOT NULL DEFAULT now(),
	game           TEXT NOT NULL,
	computer       TEXT NOT NULL,
	human          TEXT NOT NULL,
	champion       TEXT NOT NULL,
	game_older     TEXT NOT NULL,
	computer_older TEXT NOT NULL,
	human_older    TEXT NOT NULL,
	champion_older TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_rps_rounds_session_id ON rps_rounds(session_id);
`

// PostgresStore keeps the history log in the rps_rounds table. Rows are only
// ever inserted; seq preserves append order.
type PostgresStore struct {
	pool      *pgxpool.Pool
	sessionID string
}

// NewPostgresStore connects to Postgres and ensures the rps_rounds table exists.
// If databaseURL is empty, NewPostgresStore returns (nil, nil) and no persistence occurs.
func NewPostgresStore(ctx context.Context, databaseURL, sessionID string) (*PostgresStore, error) {
	if databaseURL == "" {
		return nil, nil
	}
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	if _, err := pool.Exec(ctx, createTableSQL); err != nil {
		pool.Close()
		return nil, err
	}
	slog.Info("connected to Postgres", "tag", "storage")
	return &PostgresStore{pool: pool, sessionID: sessionID}, nil
}

// Close closes the connection pool.
func (s *PostgresStore) Close() error {
	if s != nil && s.pool != nil {
		s.pool.Close()
	}
	return nil
}

// Append inserts record as a new row tagged with the store's session id.
func (s *PostgresStore) Append(ctx context.Context, record game.HistoryRecord) error {
	if s == nil || s.pool == nil {
		return nil
	}
	if !record.Complete() {
		return gameerrors.ErrIncompleteRecord
	}
	if err := record.Validate(); err != nil {
		return err
	}
	cur, old := record.Current.Round, record.Older.Round
	_, err := s.pool.Exec(ctx, `
		INSERT INTO rps_rounds (id, session_id, game, computer, human, champion, game_older, computer_older, human_older, champion_older)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		uuid.New(), s.sessionID,
		cur.Mode.Tag(), cur.Computer.String(), cur.Human.String(), cur.Champion.String(),
		old.Mode.Tag(), old.Computer.String(), old.Human.String(), old.Champion.String())
	if err != nil {
		return fmt.Errorf("insert round: %w", err)
	}
	return nil
}

// Load returns every row in insertion order. Rows holding unknown values are logged and skipped.
func (s *PostgresStore) Load(ctx context.Context) ([]game.HistoryRecord, error) {
	if s == nil || s.pool == nil {
		return nil, nil
	}
	rows, err := s.pool.Query(ctx, `
		SELECT seq, game, computer, human, champion, game_older, computer_older, human_older, champion_older
		FROM rps_rounds
		ORDER BY seq`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []game.HistoryRecord
	for rows.Next() {
		var seq int64
		var cols [8]string
		if err := rows.Scan(&seq, &cols[0], &cols[1], &cols[2], &cols[3], &cols[4], &cols[5], &cols[6], &cols[7]); err != nil {
			return nil, err
		}
		record, err := recordFromColumns(cols)
		if err != nil {
			slog.Warn("skipping history row", "tag", "storage", "seq", seq, "err", err)
			continue
		}
		out = append(out, record)
	}
	return out, rows.Err()
}

// recordFromColumns parses the eight text columns, current round first, in the
// order game, computer, human, champion.
func recordFromColumns(cols [8]string) (game.HistoryRecord, error) {
	current, err := roundFromColumns(cols[0], cols[1], cols[2], cols[3])
	if err != nil {
		return game.HistoryRecord{}, err
	}
	older, err := roundFromColumns(cols[4], cols[5], cols[6], cols[7])
	if err != nil {
		return game.HistoryRecord{}, err
	}
	return game.HistoryRecord{Current: game.Filled(current), Older: game.Filled(older)}, nil
}

func roundFromColumns(mode, computer, human, champion string) (game.RoundResult, error) {
	var r game.RoundResult
	var err error
	if r.Mode, err = game.ParseMode(mode); err != nil {
		return r, fmt.Errorf("%w: %v", gameerrors.ErrMalformedRecord, err)
	}
	if r.Computer, err = game.ParseWeapon(computer); err != nil {
		return r, fmt.Errorf("%w: %v", gameerrors.ErrMalformedRecord, err)
	}
	if r.Human, err = game.ParseWeapon(human); err != nil {
		return r, fmt.Errorf("%w: %v", gameerrors.ErrMalformedRecord, err)
	}
	if r.Champion, err = game.ParseChampion(champion); err != nil {
		return r, fmt.Errorf("%w: %v", gameerrors.ErrMalformedRecord, err)
	}
	return r, nil
}
