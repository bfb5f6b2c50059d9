// Package console is the terminal side of a session: prompts on a reader,
// reports on a writer.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"rps-game/game"
)

const (
	modePrompt     = "Please enter your choice of game: Random, Heuristic (Wang), or Adaptive (Tree): "
	weaponPrompt   = "Please enter your choice: rock, paper, scissors: "
	continuePrompt = "\nContinue? n = no, anything else = yes: "
	invalidEntry   = "Entry not valid."
)

// Prompter reads choices line by line and re-prompts until an entry is valid.
type Prompter struct {
	in     *bufio.Reader
	out    io.Writer
	styles styles

	// pending is the read still in flight after a cancelled prompt. The next
	// prompt takes its line instead of starting a second reader.
	pending chan lineResult
}

type lineResult struct {
	line string
	err  error
}

type styles struct {
	human    lipgloss.Style
	computer lipgloss.Style
	draw     lipgloss.Style
	muted    lipgloss.Style
}

var (
	_ game.Prompter    = (*Prompter)(nil)
	_ game.ModeChooser = (*Prompter)(nil)
)

// NewPrompter returns a Prompter reading from in and writing to out.
// Colours are only emitted when out is a terminal.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	r := lipgloss.NewRenderer(out)
	return &Prompter{
		in:  bufio.NewReader(in),
		out: out,
		styles: styles{
			human:    r.NewStyle().Bold(true).Foreground(lipgloss.Color("#2CD7C7")),
			computer: r.NewStyle().Bold(true).Foreground(lipgloss.Color("#E74C3C")),
			draw:     r.NewStyle().Bold(true).Foreground(lipgloss.Color("#F4D03F")),
			muted:    r.NewStyle().Foreground(lipgloss.Color("#2C4A54")),
		},
	}
}

// readLine prompts and returns one line without its line ending.
// A final line without a newline is returned before io.EOF is reported.
// Cancelling ctx returns at once; the blocked read is kept for the next prompt.
func (p *Prompter) readLine(ctx context.Context, prompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	fmt.Fprint(p.out, prompt)
	if p.pending == nil {
		ch := make(chan lineResult, 1)
		go func() {
			line, err := p.in.ReadString('\n')
			ch <- lineResult{line: line, err: err}
		}()
		p.pending = ch
	}

	var r lineResult
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r = <-p.pending:
		p.pending = nil
	}
	if r.err != nil && !(errors.Is(r.err, io.EOF) && r.line != "") {
		return "", r.err
	}
	return strings.TrimRight(r.line, "\r\n"), nil
}

// ChooseMode asks for the game mode until a valid one is entered.
func (p *Prompter) ChooseMode(ctx context.Context) (game.Mode, error) {
	for {
		line, err := p.readLine(ctx, modePrompt)
		if err != nil {
			return 0, err
		}
		if m, err := game.ParseMode(line); err == nil {
			return m, nil
		}
		fmt.Fprintln(p.out, invalidEntry)
	}
}

// ChooseWeapon asks for the human's weapon until a valid one is entered.
func (p *Prompter) ChooseWeapon(ctx context.Context) (game.Weapon, error) {
	for {
		line, err := p.readLine(ctx, weaponPrompt)
		if err != nil {
			return 0, err
		}
		if w, err := game.ParseWeapon(line); err == nil {
			return w, nil
		}
		fmt.Fprintln(p.out, invalidEntry)
	}
}

// Continue stops only on a literal "n"; any other answer plays another round.
func (p *Prompter) Continue(ctx context.Context) (bool, error) {
	line, err := p.readLine(ctx, continuePrompt)
	if err != nil {
		return false, err
	}
	return line != "n", nil
}

// Report prints the round outcome and the running score.
func (p *Prompter) Report(r game.RoundReport) {
	fmt.Fprintln(p.out, p.styles.muted.Render(fmt.Sprintf("Computer played %s, you played %s.", r.Round.Computer, r.Round.Human)))
	switch r.Round.Champion {
	case game.Draw:
		fmt.Fprintln(p.out, "\n"+p.styles.draw.Render("Draw"))
		return
	case game.HumanWins:
		fmt.Fprintln(p.out, "\n"+p.styles.human.Render("human wins!"))
	case game.ComputerWins:
		fmt.Fprintln(p.out, "\n"+p.styles.computer.Render("computer wins!"))
	}
	fmt.Fprintln(p.out, FormatScore(r.Score))
}

// FormatScore renders the win rate and decisive round count, e.g.
// "Human Win Rate: 67%\nTotal Game: 3".
func FormatScore(s game.Scoreboard) string {
	return fmt.Sprintf("Human Win Rate: %.0f%%\nTotal Game: %d", s.HumanWinRate(), s.Decisive)
}
