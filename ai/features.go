package ai

import (
	"fmt"

	"rps-game/game"
	"rps-game/gameerrors"
)

// The adaptive model sees one round: what the human played, what the computer
// played, and who won. Values are label-encoded in alphabetical order of their
// names so the encoding does not depend on enum declaration order.
const numFeatures = 3

var featureNames = [numFeatures]string{"human", "computer", "champion"}

// Features is the encoded feature vector of one round.
type Features [numFeatures]int

var (
	weaponClasses   = []game.Weapon{game.Paper, game.Rock, game.Scissors}
	championClasses = []game.Champion{game.ComputerWins, game.Draw, game.HumanWins}
)

func encodeWeapon(w game.Weapon) (int, bool) {
	for i, c := range weaponClasses {
		if c == w {
			return i, true
		}
	}
	return 0, false
}

func decodeWeapon(label int) (game.Weapon, bool) {
	if label < 0 || label >= len(weaponClasses) {
		return 0, false
	}
	return weaponClasses[label], true
}

func encodeChampion(c game.Champion) (int, bool) {
	for i, cc := range championClasses {
		if cc == c {
			return i, true
		}
	}
	return 0, false
}

// featuresOf encodes a round.
func featuresOf(r game.RoundResult) (Features, error) {
	human, ok1 := encodeWeapon(r.Human)
	computer, ok2 := encodeWeapon(r.Computer)
	champion, ok3 := encodeChampion(r.Champion)
	if !ok1 || !ok2 || !ok3 {
		return Features{}, fmt.Errorf("%w: cannot encode %+v", gameerrors.ErrMalformedRecord, r)
	}
	return Features{human, computer, champion}, nil
}

// sampleOf turns a stored record into a training row: the older round predicts
// the human weapon of the current round.
func sampleOf(record game.HistoryRecord) (Sample, error) {
	if !record.Complete() {
		return Sample{}, gameerrors.ErrIncompleteRecord
	}
	f, err := featuresOf(record.Older.Round)
	if err != nil {
		return Sample{}, err
	}
	label, ok := encodeWeapon(record.Current.Round.Human)
	if !ok {
		return Sample{}, fmt.Errorf("%w: cannot encode label %d", gameerrors.ErrMalformedRecord, record.Current.Round.Human)
	}
	return Sample{Features: f, Label: label}, nil
}

func classNames() []string {
	names := make([]string, len(weaponClasses))
	for i, w := range weaponClasses {
		names[i] = w.String()
	}
	return names
}
