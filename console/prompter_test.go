package console

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rps-game/game"
)

func newTestPrompter(input string) (*Prompter, *bytes.Buffer) {
	var out bytes.Buffer
	return NewPrompter(strings.NewReader(input), &out), &out
}

func TestChooseModeRepromptsUntilValid(t *testing.T) {
	p, out := newTestPrompter("chess\n\n  TREE \n")
	m, err := p.ChooseMode(context.Background())
	require.NoError(t, err)
	assert.Equal(t, game.ModeAdaptive, m)
	assert.Equal(t, 2, strings.Count(out.String(), invalidEntry))
	assert.Equal(t, 3, strings.Count(out.String(), modePrompt))
}

func TestChooseWeapon(t *testing.T) {
	p, out := newTestPrompter("stone\r\nScissors")
	w, err := p.ChooseWeapon(context.Background())
	require.NoError(t, err)
	assert.Equal(t, game.Scissors, w)
	assert.Equal(t, 1, strings.Count(out.String(), invalidEntry))
}

func TestChooseWeaponEOF(t *testing.T) {
	p, _ := newTestPrompter("lizard\n")
	_, err := p.ChooseWeapon(context.Background())
	assert.ErrorIs(t, err, io.EOF)
}

func TestContinueOnlyStopsOnLowercaseN(t *testing.T) {
	p, _ := newTestPrompter("y\nN\n\n n\nn\n")
	for i := 0; i < 4; i++ {
		more, err := p.Continue(context.Background())
		require.NoError(t, err)
		assert.True(t, more, "answer %d", i)
	}
	more, err := p.Continue(context.Background())
	require.NoError(t, err)
	assert.False(t, more)
}

func TestReadHonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	p, out := newTestPrompter("rock\n")
	_, err := p.ChooseWeapon(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, out.String())
}

func TestCancelWhileWaitingForInput(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()
	var out bytes.Buffer
	p := NewPrompter(pr, &out)

	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(50*time.Millisecond, cancel)
	done := make(chan error, 1)
	go func() {
		_, err := p.ChooseWeapon(ctx)
		done <- err
	}()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("ChooseWeapon did not return after cancel")
	}

	// The abandoned read delivers its line to the next prompt.
	go func() { _, _ = pw.Write([]byte("paper\n")) }()
	w, err := p.ChooseWeapon(context.Background())
	require.NoError(t, err)
	assert.Equal(t, game.Paper, w)
}

func TestReportHumanWin(t *testing.T) {
	p, out := newTestPrompter("")
	p.Report(game.RoundReport{
		Number: 1,
		Round:  game.NewRoundResult(game.ModeRandom, game.Rock, game.Scissors),
		Score:  game.Scoreboard{Decisive: 1, HumanWins: 1},
	})
	s := out.String()
	assert.Contains(t, s, "Computer played scissors, you played rock.")
	assert.Contains(t, s, "human wins!")
	assert.Contains(t, s, "Human Win Rate: 100%")
	assert.Contains(t, s, "Total Game: 1")
}

func TestReportDrawOmitsScore(t *testing.T) {
	p, out := newTestPrompter("")
	p.Report(game.RoundReport{Round: game.NewRoundResult(game.ModeRandom, game.Paper, game.Paper)})
	assert.Contains(t, out.String(), "Draw")
	assert.NotContains(t, out.String(), "Win Rate")
}

func TestFormatScoreRounds(t *testing.T) {
	assert.Equal(t, "Human Win Rate: 67%\nTotal Game: 3", FormatScore(game.Scoreboard{Decisive: 3, HumanWins: 2}))
	assert.Equal(t, "Human Win Rate: 0%\nTotal Game: 0", FormatScore(game.Scoreboard{}))
}

// A whole session driven through the console, playing against a fixed weapon.
type alwaysScissors struct{}

func (alwaysScissors) Choose(context.Context, game.HistoryRecord) (game.Weapon, error) {
	return game.Scissors, nil
}

type provider struct{}

func (provider) Strategy(game.Mode) (game.Strategy, error) { return alwaysScissors{}, nil }

func TestConsoleSession(t *testing.T) {
	p, out := newTestPrompter("random\nrock\ny\npaper\nn\n")
	ctx := context.Background()
	mode, err := p.ChooseMode(ctx)
	require.NoError(t, err)
	s, err := game.NewSession("test", mode, provider{}, nil)
	require.NoError(t, err)

	require.NoError(t, s.Run(ctx, p))
	assert.Equal(t, 2, s.Rounds)
	assert.Equal(t, 2, s.Score.Decisive)
	assert.Equal(t, 1, s.Score.HumanWins)
	assert.Contains(t, out.String(), "Human Win Rate: 100%")
	assert.Contains(t, out.String(), "computer wins!")
	assert.Contains(t, out.String(), "Human Win Rate: 50%")
}
