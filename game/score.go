package game

// Scoreboard holds the running totals of one session.
// Decisive counts rounds that were not a draw.
type Scoreboard struct {
	Decisive  int
	HumanWins int
	Draws     int
}

// Record adds one round outcome.
func (s *Scoreboard) Record(c Champion) {
	switch c {
	case Draw:
		s.Draws++
	case HumanWins:
		s.Decisive++
		s.HumanWins++
	case ComputerWins:
		s.Decisive++
	}
}

// HumanWinRate is the share of decisive rounds the human won, as a percentage.
// Returns 0 before any decisive round.
func (s Scoreboard) HumanWinRate() float64 {
	if s.Decisive == 0 {
		return 0
	}
	return float64(s.HumanWins) / float64(s.Decisive) * 100
}
