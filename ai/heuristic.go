package ai

import (
	"context"
	"log/slog"

	"rps-game/game"
)

// Counter-moves from the win-stay / lose-shift bias observed in human RPS players
// (Wang et al., "Social cycling and conditional responses in the
// Rock-Paper-Scissors game"). After a win the human tends to repeat the weapon;
// after a loss they tend to switch to the weapon that beats the one they just lost with.
var (
	humanWon = map[game.Weapon]game.Weapon{
		game.Rock:     game.Beats(game.Rock),
		game.Paper:    game.Beats(game.Paper),
		game.Scissors: game.Beats(game.Scissors),
	}
	humanLost = map[game.Weapon]game.Weapon{
		game.Rock:     game.Beats(game.Beats(game.Rock)),
		game.Paper:    game.Beats(game.Beats(game.Paper)),
		game.Scissors: game.Beats(game.Beats(game.Scissors)),
	}
)

// Heuristic plays the fixed counter-strategy above. Draws, and the very first
// round, fall back to a random weapon.
type Heuristic struct {
	fallback *Random
}

// NewHeuristic returns a Heuristic that falls back to fallback when no table applies.
func NewHeuristic(fallback *Random) *Heuristic {
	return &Heuristic{fallback: fallback}
}

// Choose looks only at the latest round of record.
func (h *Heuristic) Choose(_ context.Context, record game.HistoryRecord) (game.Weapon, error) {
	last, ok := record.Last()
	if !ok {
		return h.fallback.pick(), nil
	}
	return h.counter(last), nil
}

func (h *Heuristic) counter(last game.RoundResult) game.Weapon {
	var table map[game.Weapon]game.Weapon
	switch last.Champion {
	case game.HumanWins:
		table = humanWon
	case game.ComputerWins:
		table = humanLost
	}
	w, ok := table[last.Human]
	if !ok {
		return h.fallback.pick()
	}
	slog.Debug("playing heuristic", "tag", "ai", "last_human", last.Human.String(),
		"last_champion", last.Champion.String(), "weapon", w.String())
	return w
}
