package game

// weaponPair is an unordered pair of weapons; the smaller one is always first.
type weaponPair struct {
	a, b Weapon
}

func pairOf(x, y Weapon) weaponPair {
	if x > y {
		x, y = y, x
	}
	return weaponPair{a: x, b: y}
}

// winningDefinitions maps each unordered pair of distinct weapons to the weapon that wins it.
var winningDefinitions = map[weaponPair]Weapon{
	pairOf(Paper, Rock):     Paper,
	pairOf(Rock, Scissors):  Rock,
	pairOf(Scissors, Paper): Scissors,
}

// Winner resolves a round. Equal weapons are a draw; otherwise whoever holds the
// winning weapon of the pair wins. The evaluator only looks at which of the two
// weapons wins, never at who is asking.
func Winner(human, computer Weapon) Champion {
	winning, ok := winningDefinitions[pairOf(human, computer)]
	if !ok || human == computer {
		return Draw
	}
	if winning == human {
		return HumanWins
	}
	return ComputerWins
}

// Defeats reports whether w wins against other.
func (w Weapon) Defeats(other Weapon) bool {
	if w == other {
		return false
	}
	winning, ok := winningDefinitions[pairOf(w, other)]
	return ok && winning == w
}

// Beats returns the weapon that wins against w.
func Beats(w Weapon) Weapon {
	for _, candidate := range Weapons {
		if candidate.Defeats(w) {
			return candidate
		}
	}
	return w
}
