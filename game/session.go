package game

import (
	"context"
	"fmt"
	"log/slog"
)

// Strategy picks the computer's weapon for the next round from the rounds played so far.
type Strategy interface {
	Choose(ctx context.Context, record HistoryRecord) (Weapon, error)
}

// StrategyProvider resolves the Strategy for a Mode.
// Implemented by ai.Registry; declared here so game does not import ai.
type StrategyProvider interface {
	Strategy(mode Mode) (Strategy, error)
}

// ModeChooser asks the human for the game mode once per session.
type ModeChooser interface {
	ChooseMode(ctx context.Context) (Mode, error)
}

// Prompter is the human side of a session: it supplies weapons and the
// continue decision and displays each round's report.
type Prompter interface {
	ChooseWeapon(ctx context.Context) (Weapon, error)
	Continue(ctx context.Context) (bool, error)
	Report(report RoundReport)
}

// RoundReport is what the caller needs to display after a round.
type RoundReport struct {
	Number    int
	Round     RoundResult
	Persisted bool
	Score     Scoreboard
}

// Session owns the state of one play session: the chosen mode, the history
// window and the score. Rounds are strictly sequential.
type Session struct {
	ID       string
	Mode     Mode
	History  HistoryRecord
	Score    Scoreboard
	Rounds   int
	strategy Strategy
	store    HistoryWriter
	log      *slog.Logger
}

// NewSession resolves the strategy for mode. store may be nil, in which case nothing is persisted.
func NewSession(id string, mode Mode, provider StrategyProvider, store HistoryWriter) (*Session, error) {
	strategy, err := provider.Strategy(mode)
	if err != nil {
		return nil, fmt.Errorf("resolve strategy for mode %s: %w", mode, err)
	}
	return &Session{
		ID:       id,
		Mode:     mode,
		strategy: strategy,
		store:    store,
		log:      slog.With("tag", "game"),
	}, nil
}

// ComputerMove asks the strategy for the computer's weapon. It must be called
// before the human's weapon for the same round is known.
func (s *Session) ComputerMove(ctx context.Context) (Weapon, error) {
	w, err := s.strategy.Choose(ctx, s.History)
	if err != nil {
		return 0, fmt.Errorf("choose computer weapon: %w", err)
	}
	return w, nil
}

// Resolve completes a round: it evaluates the outcome, advances the history
// window, persists it when complete and updates the score.
// A failed append is logged and the session carries on.
func (s *Session) Resolve(ctx context.Context, human, computer Weapon) RoundReport {
	result := NewRoundResult(s.Mode, human, computer)
	s.History = Advance(result, s.History)
	s.Rounds++

	persisted, err := AppendIfComplete(ctx, s.store, s.History)
	if err != nil {
		s.log.Warn("failed to persist round", "round", s.Rounds, "err", err)
	}
	s.Score.Record(result.Champion)

	s.log.Debug("round resolved", "round", s.Rounds, "mode", s.Mode.String(), "human", human.String(),
		"computer", computer.String(), "champion", result.Champion.String(), "persisted", persisted)

	return RoundReport{
		Number:    s.Rounds,
		Round:     result,
		Persisted: persisted,
		Score:     s.Score,
	}
}

// PlayRound plays one round against a human weapon that was already chosen.
func (s *Session) PlayRound(ctx context.Context, human Weapon) (RoundReport, error) {
	computer, err := s.ComputerMove(ctx)
	if err != nil {
		return RoundReport{}, err
	}
	return s.Resolve(ctx, human, computer), nil
}

// Run plays rounds until the prompter declines to continue, the context is
// cancelled or the prompter fails (io.EOF included, returned unwrapped).
func (s *Session) Run(ctx context.Context, p Prompter) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		computer, err := s.ComputerMove(ctx)
		if err != nil {
			return err
		}
		human, err := p.ChooseWeapon(ctx)
		if err != nil {
			return err
		}
		p.Report(s.Resolve(ctx, human, computer))

		more, err := p.Continue(ctx)
		if err != nil {
			return err
		}
		if !more {
			s.log.Info("session finished", "rounds", s.Rounds, "decisive", s.Score.Decisive, "human_wins", s.Score.HumanWins)
			return nil
		}
	}
}
