package storage

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"rps-game/game"
)

// FileStore is the history log kept as a JSON-lines file.
// Appends take an exclusive advisory lock and loads a shared one, so several
// processes can share the file without interleaving lines.
type FileStore struct {
	path string
}

// NewFileStore creates the file (and its directory) if absent and returns a store over it.
func NewFileStore(path string) (*FileStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create history directory: %w", err)
		}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open history file: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, err
	}
	return &FileStore{path: path}, nil
}

// Path returns the location of the log.
func (s *FileStore) Path() string {
	return s.path
}

// Append writes record as one line at the end of the file and syncs it.
func (s *FileStore) Append(_ context.Context, record game.HistoryRecord) error {
	line, err := encodeRecord(record)
	if err != nil {
		return err
	}
	line = append(line, '\n')

	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open history file: %w", err)
	}
	defer f.Close()

	if err := lockExclusive(f); err != nil {
		return fmt.Errorf("lock history file: %w", err)
	}
	defer unlock(f)

	if _, err := f.Write(line); err != nil {
		return fmt.Errorf("write history record: %w", err)
	}
	return f.Sync()
}

// Load reads every record in file order. A missing file is an empty log.
// Lines that fail to parse are logged and skipped.
func (s *FileStore) Load(ctx context.Context) ([]game.HistoryRecord, error) {
	f, err := os.Open(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open history file: %w", err)
	}
	defer f.Close()

	if err := lockShared(f); err != nil {
		return nil, fmt.Errorf("lock history file: %w", err)
	}
	defer unlock(f)

	var out []game.HistoryRecord
	r := bufio.NewReader(f)
	for lineNo := 1; ; lineNo++ {
		if lineNo%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		raw, readErr := r.ReadBytes('\n')
		if readErr != nil && !errors.Is(readErr, io.EOF) {
			return nil, fmt.Errorf("read history file: %w", readErr)
		}
		if data := bytes.TrimSpace(raw); len(data) > 0 {
			record, err := decodeRecord(data)
			if err != nil {
				slog.Warn("skipping history line", "tag", "storage", "path", s.path, "line", lineNo, "err", err)
			} else {
				out = append(out, record)
			}
		}
		if readErr != nil {
			return out, nil
		}
	}
}

// Close is a no-op; the file is opened per operation.
func (s *FileStore) Close() error {
	return nil
}
