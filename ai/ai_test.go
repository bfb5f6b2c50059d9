package ai

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rps-game/game"
	"rps-game/gameerrors"
)

func testRand() *rand.Rand {
	return rand.New(rand.NewSource(7))
}

func lastRound(human, computer game.Weapon) game.HistoryRecord {
	return game.Advance(game.NewRoundResult(game.ModeHeuristic, human, computer), game.HistoryRecord{})
}

func TestRandomReachesEveryWeapon(t *testing.T) {
	r := NewRandom(testRand())
	seen := make(map[game.Weapon]int)
	for i := 0; i < 300; i++ {
		w, err := r.Choose(context.Background(), game.HistoryRecord{})
		require.NoError(t, err)
		require.True(t, w.Valid())
		seen[w]++
	}
	assert.Len(t, seen, 3)
}

func TestHeuristicWithoutHistoryIsRandom(t *testing.T) {
	h := NewHeuristic(NewRandom(testRand()))
	for i := 0; i < 20; i++ {
		w, err := h.Choose(context.Background(), game.HistoryRecord{})
		require.NoError(t, err)
		assert.True(t, w.Valid())
	}
}

func TestHeuristicAfterHumanWin(t *testing.T) {
	h := NewHeuristic(NewRandom(testRand()))
	cases := map[game.Weapon]game.Weapon{
		game.Rock:     game.Paper,
		game.Paper:    game.Scissors,
		game.Scissors: game.Rock,
	}
	for human, want := range cases {
		// The computer held the weapon the human beat.
		record := lastRound(human, beatenBy(human))
		require.Equal(t, game.HumanWins, record.Current.Round.Champion)
		got, err := h.Choose(context.Background(), record)
		require.NoError(t, err)
		assert.Equal(t, want, got, "human won with %s", human)
	}
}

func TestHeuristicAfterHumanLoss(t *testing.T) {
	h := NewHeuristic(NewRandom(testRand()))
	cases := map[game.Weapon]game.Weapon{
		game.Rock:     game.Scissors,
		game.Paper:    game.Rock,
		game.Scissors: game.Paper,
	}
	for human, want := range cases {
		record := lastRound(human, game.Beats(human))
		require.Equal(t, game.ComputerWins, record.Current.Round.Champion)
		got, err := h.Choose(context.Background(), record)
		require.NoError(t, err)
		assert.Equal(t, want, got, "human lost with %s", human)
	}
}

func TestHeuristicAfterDrawIsRandom(t *testing.T) {
	h := NewHeuristic(NewRandom(testRand()))
	seen := make(map[game.Weapon]bool)
	for i := 0; i < 100; i++ {
		w, err := h.Choose(context.Background(), lastRound(game.Rock, game.Rock))
		require.NoError(t, err)
		seen[w] = true
	}
	assert.Len(t, seen, 3)
}

// beatenBy returns the weapon w defeats.
func beatenBy(w game.Weapon) game.Weapon {
	for _, o := range game.Weapons {
		if w.Defeats(o) {
			return o
		}
	}
	return w
}

func TestTreeLearnsMapping(t *testing.T) {
	samples := []Sample{
		{Features{0, 1, 2}, 1},
		{Features{0, 2, 0}, 1},
		{Features{1, 0, 0}, 2},
		{Features{1, 2, 2}, 2},
		{Features{2, 0, 2}, 0},
		{Features{2, 1, 0}, 0},
	}
	tree, err := TrainTree(samples, 3)
	require.NoError(t, err)
	for _, s := range samples {
		assert.Equal(t, s.Label, tree.Predict(s.Features))
	}
	assert.Equal(t, 2, tree.Depth())
}

func TestTreeMajorityLeafBreaksTiesLow(t *testing.T) {
	// Identical features with conflicting labels cannot be split.
	samples := []Sample{
		{Features{1, 1, 1}, 2},
		{Features{1, 1, 1}, 0},
	}
	tree, err := TrainTree(samples, 3)
	require.NoError(t, err)
	assert.Equal(t, 0, tree.Depth())
	assert.Equal(t, 0, tree.Predict(Features{1, 1, 1}))
}

func TestTreeRejectsEmptyAndBadLabels(t *testing.T) {
	_, err := TrainTree(nil, 3)
	assert.True(t, errors.Is(err, gameerrors.ErrNoTrainingData))
	_, err = TrainTree([]Sample{{Features{}, 3}}, 3)
	assert.Error(t, err)
}

func TestTreeWriteDOT(t *testing.T) {
	tree, err := TrainTree([]Sample{{Features{0, 0, 0}, 0}, {Features{2, 0, 0}, 1}}, 3)
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, tree.WriteDOT(&buf, featureNames[:], classNames()))
	out := buf.String()
	assert.Contains(t, out, "digraph Tree {")
	assert.Contains(t, out, `human <= 1.0`)
	assert.Contains(t, out, "0 -> 1 ;")
	assert.Contains(t, out, "0 -> 2 ;")
	assert.Contains(t, out, `class = paper`)
	assert.Contains(t, out, `class = rock`)
}

type fakeSource struct {
	records []game.HistoryRecord
	err     error
	loads   int
}

func (f *fakeSource) Load(context.Context) ([]game.HistoryRecord, error) {
	f.loads++
	return f.records, f.err
}

func complete(olderHuman, olderComputer, human, computer game.Weapon) game.HistoryRecord {
	r := game.Advance(game.NewRoundResult(game.ModeAdaptive, olderHuman, olderComputer), game.HistoryRecord{})
	return game.Advance(game.NewRoundResult(game.ModeAdaptive, human, computer), r)
}

func newTestAdaptive(source TrainingSource) *Adaptive {
	return NewAdaptive(source, NewHeuristic(NewRandom(testRand())))
}

func TestAdaptiveColdStartUsesHeuristic(t *testing.T) {
	source := &fakeSource{}
	a := newTestAdaptive(source)
	// Human won with rock; the heuristic answers paper.
	w, err := a.Choose(context.Background(), lastRound(game.Rock, game.Scissors))
	require.NoError(t, err)
	assert.Equal(t, game.Paper, w)
	assert.Zero(t, source.loads, "store must not be read before two rounds are known")
}

func TestAdaptiveEmptyStoreFallsBackToHeuristic(t *testing.T) {
	source := &fakeSource{}
	a := newTestAdaptive(source)
	record := complete(game.Paper, game.Paper, game.Rock, game.Scissors)
	w, err := a.Choose(context.Background(), record)
	require.NoError(t, err)
	assert.Equal(t, game.Paper, w)
	assert.Equal(t, 1, source.loads)
}

func TestAdaptiveUnreadableStoreFallsBackToHeuristic(t *testing.T) {
	a := newTestAdaptive(&fakeSource{err: os.ErrPermission})
	record := complete(game.Paper, game.Paper, game.Rock, game.Paper)
	w, err := a.Choose(context.Background(), record)
	require.NoError(t, err)
	// Human lost with rock; the heuristic answers scissors.
	assert.Equal(t, game.Scissors, w)
}

func TestAdaptivePredictsAndCounters(t *testing.T) {
	// After playing rock the human always plays paper; after scissors, rock.
	var records []game.HistoryRecord
	for i := 0; i < 3; i++ {
		records = append(records,
			complete(game.Rock, game.Scissors, game.Paper, game.Rock),
			complete(game.Scissors, game.Rock, game.Rock, game.Paper),
		)
	}
	a := newTestAdaptive(&fakeSource{records: records})

	// Latest human weapon is scissors: predicted rock, countered with paper.
	w, err := a.Choose(context.Background(), complete(game.Paper, game.Paper, game.Scissors, game.Rock))
	require.NoError(t, err)
	assert.Equal(t, game.Paper, w)

	// Latest human weapon is rock: predicted paper, countered with scissors.
	w, err = a.Choose(context.Background(), complete(game.Paper, game.Paper, game.Rock, game.Scissors))
	require.NoError(t, err)
	assert.Equal(t, game.Scissors, w)
}

func TestAdaptiveRetrainsFromCurrentLog(t *testing.T) {
	source := &fakeSource{records: []game.HistoryRecord{complete(game.Rock, game.Rock, game.Paper, game.Paper)}}
	a := newTestAdaptive(source)
	query := complete(game.Paper, game.Paper, game.Rock, game.Rock)

	w, err := a.Choose(context.Background(), query)
	require.NoError(t, err)
	assert.Equal(t, game.Scissors, w)

	source.records = []game.HistoryRecord{complete(game.Rock, game.Rock, game.Scissors, game.Paper)}
	w, err = a.Choose(context.Background(), query)
	require.NoError(t, err)
	assert.Equal(t, game.Rock, w)
}

func TestAdaptiveSkipsIncompleteRecords(t *testing.T) {
	source := &fakeSource{records: []game.HistoryRecord{
		lastRound(game.Rock, game.Rock),
		complete(game.Rock, game.Rock, game.Paper, game.Paper),
	}}
	a := newTestAdaptive(source)
	w, err := a.Choose(context.Background(), complete(game.Paper, game.Paper, game.Rock, game.Rock))
	require.NoError(t, err)
	assert.Equal(t, game.Scissors, w)
}

func TestAdaptiveWritesDOT(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tree.dot")
	a := newTestAdaptive(&fakeSource{records: []game.HistoryRecord{complete(game.Rock, game.Rock, game.Paper, game.Paper)}})
	a.DOTPath = path
	_, err := a.Choose(context.Background(), complete(game.Paper, game.Paper, game.Rock, game.Rock))
	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "digraph Tree")
}

func TestAdaptiveDumpFailureIsLoggedNotFatal(t *testing.T) {
	if _, err := os.Stat("/dev/full"); err != nil {
		t.Skip("/dev/full not available")
	}
	var logs bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&logs, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })

	a := newTestAdaptive(&fakeSource{records: []game.HistoryRecord{complete(game.Rock, game.Rock, game.Paper, game.Paper)}})
	a.DOTPath = "/dev/full"
	w, err := a.Choose(context.Background(), complete(game.Paper, game.Paper, game.Rock, game.Rock))
	require.NoError(t, err)
	assert.Equal(t, game.Scissors, w)
	assert.Contains(t, logs.String(), "cannot write tree dump")
}

func TestDefaultRegistryCoversEveryMode(t *testing.T) {
	r := NewDefaultRegistry(Options{Rand: testRand(), Training: &fakeSource{}})
	for _, m := range game.Modes {
		s, err := r.Strategy(m)
		require.NoError(t, err, m.String())
		w, err := s.Choose(context.Background(), game.HistoryRecord{})
		require.NoError(t, err)
		assert.True(t, w.Valid())
	}
	_, err := r.Strategy(game.Mode(99))
	assert.True(t, errors.Is(err, gameerrors.ErrUnknownMode))
}

func TestNewRandSeeded(t *testing.T) {
	a, err := NewRand(42)
	require.NoError(t, err)
	b, err := NewRand(42)
	require.NoError(t, err)
	assert.Equal(t, a.Int63(), b.Int63())

	_, err = NewRand(0)
	require.NoError(t, err)
}
