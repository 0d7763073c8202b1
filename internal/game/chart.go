package game

import "sort"

// A Chart is the fully loaded form of one BMS file. Everything here is
// frozen after Freeze; play sessions only ever read it.
type Chart struct {
	Title  string
	Artist string
	Genre  string
	Level  string

	// Samples maps a base-36 index to a resolved keysound path.
	Samples map[int]string

	Bgms   []Chip
	Tempos []Chip
	Lanes  [LaneCount][]Chip

	Segments   []Segment
	TotalNotes int

	// Sum is the sha256 digest of the chart bytes, used as the score
	// history key.
	Sum string
}

// Freeze sorts the cue and tempo sequences, appends terminal sentinels
// to every playable sequence and derives the segment list. Lanes must
// already have been built with BuildLane. Must be called exactly once,
// after parsing and before play.
func (c *Chart) Freeze(headerBpm float64) {
	sortChips(c.Bgms)
	sortChips(c.Tempos)
	c.TotalNotes = 0
	for i := range c.Lanes {
		c.TotalNotes += len(c.Lanes[i])
		c.Lanes[i] = append(c.Lanes[i], Chip{Beat: SentinelBeat})
	}
	c.Bgms = append(c.Bgms, Chip{Beat: SentinelBeat})
	c.Segments = BuildSegments(headerBpm, c.Tempos)
}

func sortChips(chips []Chip) {
	sort.SliceStable(chips, func(i, j int) bool {
		return chips[i].Beat < chips[j].Beat
	})
}

// A RawCell is one nonzero lane cell before long-note pairing.
type RawCell struct {
	Beat  float64
	Value float64
	Close bool    // LNOBJ cell: closes the previous chip
	Hold  float64 // Beat2 seed: PendingClose for 5x-channel cells, else 0
}

// BuildLane turns one lane's raw cells into a beat-sorted chip
// sequence with long notes paired. An LNOBJ closer always closes the
// previous chip; a 5x-channel cell closes a still-pending head if one
// precedes it, otherwise it opens a new pending head.
func BuildLane(cells []RawCell) []Chip {
	sort.SliceStable(cells, func(i, j int) bool {
		return cells[i].Beat < cells[j].Beat
	})
	chips := make([]Chip, 0, len(cells))
	for _, cell := range cells {
		n := len(chips)
		switch {
		case cell.Close:
			if n > 0 {
				chips[n-1].Beat2 = cell.Beat
			}
		case cell.Hold == PendingClose && n > 0 && chips[n-1].Beat2 == PendingClose:
			chips[n-1].Beat2 = cell.Beat
		default:
			chips = append(chips, Chip{Beat: cell.Beat, Beat2: cell.Hold, Value: cell.Value})
		}
	}
	// A head that never saw its tail plays as a simple note.
	for i := range chips {
		if chips[i].Beat2 == PendingClose {
			chips[i].Beat2 = 0
		}
	}
	return chips
}
