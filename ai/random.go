package ai

import (
	"context"
	"log/slog"
	"math/rand"

	"rps-game/game"
)

// Random plays a uniformly random weapon every round.
type Random struct {
	rng *rand.Rand
}

// NewRandom returns a Random strategy drawing from rng.
func NewRandom(rng *rand.Rand) *Random {
	return &Random{rng: rng}
}

// Choose ignores the history and returns a random weapon.
func (r *Random) Choose(_ context.Context, _ game.HistoryRecord) (game.Weapon, error) {
	return r.pick(), nil
}

func (r *Random) pick() game.Weapon {
	w := game.Weapons[r.rng.Intn(len(game.Weapons))]
	slog.Debug("playing random", "tag", "ai", "weapon", w.String())
	return w
}
