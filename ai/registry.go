// Package ai implements the computer opponent: one Strategy per game mode.
package ai

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand"

	"rps-game/game"
	"rps-game/gameerrors"
)

// Registry holds the strategy registered for each mode.
type Registry struct {
	strategies map[game.Mode]game.Strategy
}

// Ensure *Registry implements game.StrategyProvider at compile time.
var _ game.StrategyProvider = (*Registry)(nil)

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{strategies: make(map[game.Mode]game.Strategy)}
}

// Register adds or overwrites the strategy for mode.
func (r *Registry) Register(mode game.Mode, s game.Strategy) {
	r.strategies[mode] = s
}

// Strategy returns the strategy for mode, or an error wrapping ErrUnknownMode.
func (r *Registry) Strategy(mode game.Mode) (game.Strategy, error) {
	s, ok := r.strategies[mode]
	if !ok {
		return nil, fmt.Errorf("%w: no strategy registered for %s", gameerrors.ErrUnknownMode, mode)
	}
	return s, nil
}

// Options configures NewDefaultRegistry.
type Options struct {
	// Rand is shared by every strategy. Required.
	Rand *rand.Rand
	// Training is where the adaptive strategy loads its training rows from. Required.
	Training TrainingSource
	// TreeDOTPath, when set, receives a Graphviz dump of each trained tree.
	TreeDOTPath string
}

// NewDefaultRegistry registers the random, heuristic and adaptive strategies.
func NewDefaultRegistry(opts Options) *Registry {
	random := NewRandom(opts.Rand)
	heuristic := NewHeuristic(random)
	adaptive := NewAdaptive(opts.Training, heuristic)
	adaptive.DOTPath = opts.TreeDOTPath

	r := NewRegistry()
	r.Register(game.ModeRandom, random)
	r.Register(game.ModeHeuristic, heuristic)
	r.Register(game.ModeAdaptive, adaptive)
	return r
}

// NewRand returns a generator seeded with seed, or with a seed from crypto/rand when seed is 0.
func NewRand(seed int64) (*rand.Rand, error) {
	if seed == 0 {
		var b [8]byte
		if _, err := crand.Read(b[:]); err != nil {
			return nil, fmt.Errorf("read random seed: %w", err)
		}
		seed = int64(binary.LittleEndian.Uint64(b[:]))
	}
	return rand.New(rand.NewSource(seed)), nil
}
