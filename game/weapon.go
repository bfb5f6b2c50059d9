package game

import (
	"fmt"
	"strings"

	"rps-game/gameerrors"
)

// Weapon is one of rock, paper or scissors.
type Weapon int

const (
	Rock Weapon = iota
	Paper
	Scissors
)

// Weapons lists every weapon in declaration order.
var Weapons = [...]Weapon{Rock, Paper, Scissors}

// String returns the lowercase name used on the console and in the history log.
func (w Weapon) String() string {
	switch w {
	case Rock:
		return "rock"
	case Paper:
		return "paper"
	case Scissors:
		return "scissors"
	default:
		return "unknown"
	}
}

// Valid reports whether w is one of the three weapons.
func (w Weapon) Valid() bool {
	return w >= Rock && w <= Scissors
}

// ParseWeapon accepts a weapon name in any case, surrounded by optional whitespace.
func ParseWeapon(s string) (Weapon, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "rock":
		return Rock, nil
	case "paper":
		return Paper, nil
	case "scissors":
		return Scissors, nil
	default:
		return 0, fmt.Errorf("%w: %q", gameerrors.ErrUnknownWeapon, s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (w Weapon) MarshalText() ([]byte, error) {
	if !w.Valid() {
		return nil, fmt.Errorf("%w: %d", gameerrors.ErrUnknownWeapon, int(w))
	}
	return []byte(w.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (w *Weapon) UnmarshalText(text []byte) error {
	parsed, err := ParseWeapon(string(text))
	if err != nil {
		return err
	}
	*w = parsed
	return nil
}

// Player identifies one side of a round.
type Player int

const (
	Human Player = iota
	Computer
)

func (p Player) String() string {
	if p == Computer {
		return "computer"
	}
	return "human"
}

// Champion is the outcome of a round: the winning player, or a draw.
type Champion int

const (
	Draw Champion = iota
	HumanWins
	ComputerWins
)

// Champions lists every outcome in declaration order.
var Champions = [...]Champion{Draw, HumanWins, ComputerWins}

// String returns "human", "computer" or "draw".
func (c Champion) String() string {
	switch c {
	case HumanWins:
		return Human.String()
	case ComputerWins:
		return Computer.String()
	case Draw:
		return "draw"
	default:
		return "unknown"
	}
}

// Valid reports whether c is a known outcome.
func (c Champion) Valid() bool {
	return c >= Draw && c <= ComputerWins
}

// ParseChampion parses "human", "computer" or "draw" (case-insensitive).
func ParseChampion(s string) (Champion, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "human":
		return HumanWins, nil
	case "computer":
		return ComputerWins, nil
	case "draw":
		return Draw, nil
	default:
		return 0, fmt.Errorf("%w: %q", gameerrors.ErrUnknownChampion, s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (c Champion) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("%w: %d", gameerrors.ErrUnknownChampion, int(c))
	}
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Champion) UnmarshalText(text []byte) error {
	parsed, err := ParseChampion(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// ChampionOf returns the outcome in which p wins.
func ChampionOf(p Player) Champion {
	if p == Computer {
		return ComputerWins
	}
	return HumanWins
}
