package storage

import (
	"encoding/json"
	"fmt"

	"rps-game/game"
	"rps-game/gameerrors"
)

// recordLine is the persisted form of a complete history record: one JSON
// object per line. Key names are part of the on-disk format; do not rename.
type recordLine struct {
	Game          *game.Mode     `json:"Game"`
	Computer      *game.Weapon   `json:"Computer"`
	Human         *game.Weapon   `json:"Human"`
	Champion      *game.Champion `json:"Champion"`
	GameOlder     *game.Mode     `json:"Game_Older"`
	ComputerOlder *game.Weapon   `json:"Computer_Older"`
	HumanOlder    *game.Weapon   `json:"Human_Older"`
	ChampionOlder *game.Champion `json:"Champion_Older"`
}

// encodeRecord returns the JSON line for record, without the trailing newline.
func encodeRecord(record game.HistoryRecord) ([]byte, error) {
	if !record.Complete() {
		return nil, gameerrors.ErrIncompleteRecord
	}
	if err := record.Validate(); err != nil {
		return nil, err
	}
	cur, old := record.Current.Round, record.Older.Round
	return json.Marshal(recordLine{
		Game:          &cur.Mode,
		Computer:      &cur.Computer,
		Human:         &cur.Human,
		Champion:      &cur.Champion,
		GameOlder:     &old.Mode,
		ComputerOlder: &old.Computer,
		HumanOlder:    &old.Human,
		ChampionOlder: &old.Champion,
	})
}

// decodeRecord parses one JSON line. Missing, null or unknown values yield an
// error wrapping ErrMalformedRecord.
func decodeRecord(data []byte) (game.HistoryRecord, error) {
	var line recordLine
	if err := json.Unmarshal(data, &line); err != nil {
		return game.HistoryRecord{}, fmt.Errorf("%w: %v", gameerrors.ErrMalformedRecord, err)
	}
	if line.Game == nil || line.Computer == nil || line.Human == nil || line.Champion == nil ||
		line.GameOlder == nil || line.ComputerOlder == nil || line.HumanOlder == nil || line.ChampionOlder == nil {
		return game.HistoryRecord{}, fmt.Errorf("%w: missing field", gameerrors.ErrMalformedRecord)
	}
	return game.HistoryRecord{
		Current: game.Filled(game.RoundResult{
			Mode:     *line.Game,
			Human:    *line.Human,
			Computer: *line.Computer,
			Champion: *line.Champion,
		}),
		Older: game.Filled(game.RoundResult{
			Mode:     *line.GameOlder,
			Human:    *line.HumanOlder,
			Computer: *line.ComputerOlder,
			Champion: *line.ChampionOlder,
		}),
	}, nil
}
