package game

// Judgment windows in seconds of timing error.
const (
	BorderCool  = 0.025
	BorderGreat = 0.050
	BorderGood  = 0.100
)

// A Rank is the outcome of judging one note.
type Rank int

const (
	RankCool Rank = iota
	RankGreat
	RankGood
	RankMiss
	RankCount = 4
)

func (r Rank) String() string {
	switch r {
	case RankCool:
		return "COOL"
	case RankGreat:
		return "GREAT"
	case RankGood:
		return "GOOD"
	}
	return "MISS"
}

// rankFor classifies an absolute timing error already known to be
// inside the good window.
func rankFor(abs float64) Rank {
	switch {
	case abs < BorderCool:
		return RankCool
	case abs < BorderGreat:
		return RankGreat
	default:
		return RankGood
	}
}

// A JudgeSink receives every judgment outcome of a session.
type JudgeSink interface {
	Judge(rank Rank)
}

// A SamplePlayer triggers keysounds and reports whether anything is
// still sounding. Play never blocks; Busy is polled.
type SamplePlayer interface {
	Play(index int)
	Busy() bool
}
