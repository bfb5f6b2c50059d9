package game

import (
	"fmt"
	"strings"

	"rps-game/gameerrors"
)

// Mode selects the strategy the computer plays with for a whole session.
type Mode int

const (
	ModeRandom Mode = iota
	ModeHeuristic
	ModeAdaptive
)

// Modes lists every mode in declaration order.
var Modes = [...]Mode{ModeRandom, ModeHeuristic, ModeAdaptive}

// String returns the display name of a Mode.
func (m Mode) String() string {
	switch m {
	case ModeRandom:
		return "random"
	case ModeHeuristic:
		return "heuristic"
	case ModeAdaptive:
		return "adaptive"
	default:
		return "unknown"
	}
}

// Tag returns the short tag stored in the history log ("random", "wang", "tree").
// The tags predate the display names and are kept so older logs stay readable.
func (m Mode) Tag() string {
	switch m {
	case ModeRandom:
		return "random"
	case ModeHeuristic:
		return "wang"
	case ModeAdaptive:
		return "tree"
	default:
		return "unknown"
	}
}

// Valid reports whether m is a known mode.
func (m Mode) Valid() bool {
	return m >= ModeRandom && m <= ModeAdaptive
}

// ParseMode accepts a display name or a log tag, in any case, with optional
// surrounding whitespace.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "random":
		return ModeRandom, nil
	case "heuristic", "wang":
		return ModeHeuristic, nil
	case "adaptive", "tree":
		return ModeAdaptive, nil
	default:
		return 0, fmt.Errorf("%w: %q", gameerrors.ErrUnknownMode, s)
	}
}

// MarshalText writes the log tag.
func (m Mode) MarshalText() ([]byte, error) {
	if !m.Valid() {
		return nil, fmt.Errorf("%w: %d", gameerrors.ErrUnknownMode, int(m))
	}
	return []byte(m.Tag()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Mode) UnmarshalText(text []byte) error {
	parsed, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
