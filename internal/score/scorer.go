package score

import "git.lost.host/meutraa/ebms/internal/game"

type Scorer interface {
	Init(dbPath string) error
	Deinit()

	// Judge consumes one judgment outcome from the session.
	Judge(rank game.Rank)

	// Finish folds the last combo and computes the point total.
	Finish()

	// Save the result of this performance
	Save(sum string, speed float64, auto bool)

	// Load up previous results for the chart
	Load(sum string) []History
}

// A Result is the persisted outcome of one play-through.
type Result struct {
	Judges   [game.RankCount]int
	MaxCombo int
	Point    int
}

type History struct {
	Sum    string
	Speed  float64
	Auto   bool
	Result Result
}
