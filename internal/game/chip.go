package game

const (
	// LaneCount is scratch plus seven keys.
	LaneCount = 8

	// LifetimeBeats is how far past a note's beat it stays drawable.
	LifetimeBeats = 5

	// SentinelBeat terminates every chip sequence so cursor walks
	// always halt without bounds checks.
	SentinelBeat = float64(1<<31 - 1)

	// PendingClose marks a long-note head whose tail has not been
	// paired yet.
	PendingClose = -1.0
)

// A Chip is one chart event anchored at a beat position.
//
// The interpretation of Value and Beat2 depends on the sequence the
// chip lives in. In a lane or bgm sequence Value is a base-36 sample
// index and Beat2 > 0 is the release beat of a long note. In the tempo
// sequence Value > 0 is a new BPM and Beat2 > 0 is a stop length in
// beats.
type Chip struct {
	Beat  float64
	Beat2 float64
	Value float64
}

// LongNote reports whether the chip has a paired release beat.
func (c *Chip) LongNote() bool {
	return c.Beat2 > 0
}

// Sentinel reports whether the chip is a sequence terminator.
func (c *Chip) Sentinel() bool {
	return c.Beat >= SentinelBeat
}
