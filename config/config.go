package config

import (
	"encoding/json"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
)

// Training sources for the adaptive strategy.
const (
	SourceFile     = "file"
	SourcePostgres = "postgres"
)

// Config holds all configurable game parameters.
type Config struct {
	// HistoryPath is the JSON-lines history log.
	HistoryPath string `json:"history_path"`

	// Mode, when set, skips the mode prompt ("random", "heuristic"/"wang", "adaptive"/"tree").
	Mode string `json:"mode"`

	// TreeDOTPath, when set, receives a Graphviz dump of each trained decision tree.
	TreeDOTPath string `json:"tree_dot_path"`

	// Seed for the random strategies; 0 picks a fresh one per run.
	Seed int64 `json:"seed"`

	// DatabaseURL enables the Postgres mirror of the history log.
	DatabaseURL string `json:"database_url"`

	// TrainingSource is where the adaptive strategy reads from: "file" or "postgres".
	TrainingSource string `json:"training_source"`

	LogLevel string `json:"log_level"`
}

// Defaults returns a Config with all default values.
func Defaults() *Config {
	return &Config{
		HistoryPath:    "data",
		TrainingSource: SourceFile,
		LogLevel:       "info",
	}
}

// Load reads configuration from an optional config.json file in the working
// directory, then applies environment variable overrides.
func Load() *Config {
	return LoadFrom("config.json")
}

// LoadFrom is Load with an explicit config file path. Fields not set in
// either source retain their default values.
func LoadFrom(path string) *Config {
	cfg := Defaults()

	if f, err := os.Open(path); err == nil {
		defer f.Close()
		if err := json.NewDecoder(f).Decode(cfg); err != nil {
			slog.Warn("failed to parse config file", "tag", "config", "path", path, "err", err)
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("cannot open config file", "tag", "config", "path", path, "err", err)
	}

	// Environment variable overrides
	overrideString(&cfg.HistoryPath, "RPS_HISTORY_PATH")
	overrideString(&cfg.Mode, "RPS_MODE")
	overrideString(&cfg.TreeDOTPath, "RPS_TREE_DOT_PATH")
	overrideInt64(&cfg.Seed, "RPS_SEED")
	overrideString(&cfg.DatabaseURL, "DATABASE_URL")
	overrideString(&cfg.TrainingSource, "RPS_TRAINING_SOURCE")
	overrideString(&cfg.LogLevel, "LOG_LEVEL")

	return cfg
}

func overrideInt64(field *int64, envKey string) {
	if val := os.Getenv(envKey); val != "" {
		if n, err := strconv.ParseInt(val, 10, 64); err == nil {
			*field = n
		} else {
			slog.Warn("invalid environment value", "tag", "config", "key", envKey, "value", val)
		}
	}
}

func overrideString(field *string, envKey string) {
	if val := os.Getenv(envKey); val != "" {
		*field = val
	}
}
