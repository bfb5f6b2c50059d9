package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"rps-game/ai"
	"rps-game/config"
	"rps-game/console"
	"rps-game/game"
	"rps-game/loghandler"
	"rps-game/storage"
)

type options struct {
	configPath  string
	mode        string
	historyPath string
	treeDOTPath string
	source      string
	logLevel    string
	seed        int64
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:   "rps",
		Short: "Play rock-paper-scissors against a computer that learns from you",
		Long: `rps plays rock-paper-scissors in the terminal. The computer plays either
randomly, with a fixed counter-strategy built on how people usually react to
winning and losing, or with a decision tree trained on every round you have
played so far.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts)
		},
	}
	f := cmd.Flags()
	f.StringVar(&opts.configPath, "config", "config.json", "path to the JSON config file")
	f.StringVarP(&opts.mode, "mode", "m", "", "game mode: random, heuristic (wang) or adaptive (tree); prompts when empty")
	f.StringVar(&opts.historyPath, "history", "", "history log file")
	f.StringVar(&opts.treeDOTPath, "tree-dot", "", "write each trained decision tree to this Graphviz file")
	f.StringVar(&opts.source, "source", "", "training source for the adaptive mode: file or postgres")
	f.StringVar(&opts.logLevel, "log-level", "", "debug, info, warn or error")
	f.Int64Var(&opts.seed, "seed", 0, "random seed; 0 picks a fresh one")
	return cmd
}

func run(cmd *cobra.Command, opts *options) error {
	slog.SetDefault(slog.New(loghandler.NewCompactHandler(cmd.ErrOrStderr(), slog.LevelInfo)))

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("cannot load .env", "tag", "config", "err", err)
	}
	cfg := config.LoadFrom(opts.configPath)
	applyFlags(cmd, cfg, opts)

	sessionID := uuid.NewString()
	slog.SetDefault(slog.New(loghandler.NewCompactHandler(cmd.ErrOrStderr(), loghandler.ParseLevel(cfg.LogLevel))).With("session", sessionID))

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	// After the first signal, restore default handling so a second one kills the process.
	context.AfterFunc(ctx, stop)

	store, training, err := openStores(ctx, cfg, sessionID)
	if err != nil {
		return err
	}
	defer store.Close()

	rng, err := ai.NewRand(cfg.Seed)
	if err != nil {
		return err
	}
	registry := ai.NewDefaultRegistry(ai.Options{Rand: rng, Training: training, TreeDOTPath: cfg.TreeDOTPath})

	prompter := console.NewPrompter(cmd.InOrStdin(), cmd.OutOrStdout())
	mode, err := resolveMode(ctx, cfg.Mode, prompter)
	if err != nil {
		return endOfInput(cmd, err)
	}
	session, err := game.NewSession(sessionID, mode, registry, store)
	if err != nil {
		return err
	}
	slog.Info("session started", "tag", "game", "mode", mode.String(), "history", cfg.HistoryPath)

	return endOfInput(cmd, session.Run(ctx, prompter))
}

// applyFlags lets explicitly set flags win over the config file and environment.
func applyFlags(cmd *cobra.Command, cfg *config.Config, opts *options) {
	f := cmd.Flags()
	if f.Changed("mode") {
		cfg.Mode = opts.mode
	}
	if f.Changed("history") {
		cfg.HistoryPath = opts.historyPath
	}
	if f.Changed("tree-dot") {
		cfg.TreeDOTPath = opts.treeDOTPath
	}
	if f.Changed("source") {
		cfg.TrainingSource = opts.source
	}
	if f.Changed("log-level") {
		cfg.LogLevel = opts.logLevel
	}
	if f.Changed("seed") {
		cfg.Seed = opts.seed
	}
}

// openStores returns the store rounds are appended to and the source the
// adaptive strategy trains from. With a database configured, the file log is
// mirrored to Postgres.
func openStores(ctx context.Context, cfg *config.Config, sessionID string) (storage.HistoryStore, ai.TrainingSource, error) {
	file, err := storage.NewFileStore(cfg.HistoryPath)
	if err != nil {
		return nil, nil, err
	}
	pg, err := storage.NewPostgresStore(ctx, cfg.DatabaseURL, sessionID)
	if err != nil {
		return nil, nil, fmt.Errorf("connect to Postgres: %w", err)
	}

	switch cfg.TrainingSource {
	case "", config.SourceFile:
		if pg == nil {
			return file, file, nil
		}
		return storage.NewMirror(file, pg), file, nil
	case config.SourcePostgres:
		if pg == nil {
			slog.Warn("training source is postgres but DATABASE_URL is not set; using the history file", "tag", "config")
			return file, file, nil
		}
		return storage.NewMirror(file, pg), pg, nil
	default:
		pg.Close()
		return nil, nil, fmt.Errorf("unknown training source %q", cfg.TrainingSource)
	}
}

// resolveMode uses the configured mode, if any, and otherwise asks once.
func resolveMode(ctx context.Context, configured string, chooser game.ModeChooser) (game.Mode, error) {
	if configured == "" {
		return chooser.ChooseMode(ctx)
	}
	return game.ParseMode(configured)
}

// endOfInput treats a closed stdin or an interrupt as a normal way to quit.
func endOfInput(cmd *cobra.Command, err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, context.Canceled) {
		fmt.Fprintln(cmd.OutOrStdout())
		return nil
	}
	return err
}
