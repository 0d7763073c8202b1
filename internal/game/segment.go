package game

// A Segment anchors the beat axis to the wall clock: at Time seconds
// into the song the position is Beat, advancing at Velocity beats per
// second until the next segment takes over. A stop is a zero-velocity
// segment followed by a resumption at the same beat.
type Segment struct {
	Time     float64
	Beat     float64
	Velocity float64
	Bpm      float64
}

// BuildSegments converts the tempo sequence into calibration anchors.
// tempos must be sorted by beat; chips with Value > 0 are tempo
// changes, chips with Beat2 > 0 are stops measured in beats. The list
// always starts at (0, 0, headerBpm) and ends with a sentinel, so any
// finite time query finds a bounding segment.
func BuildSegments(headerBpm float64, tempos []Chip) []Segment {
	time, beat, bpm := 0.0, 0.0, headerBpm
	segments := []Segment{{Time: 0, Beat: 0, Velocity: bpm / 60, Bpm: bpm}}

	for _, chip := range tempos {
		if chip.Sentinel() {
			break
		}
		t := time + (chip.Beat-beat)*60/bpm

		if chip.Value > 0 {
			bpm = chip.Value
			segments = append(segments, Segment{Time: t, Beat: chip.Beat, Velocity: bpm / 60, Bpm: bpm})
			time, beat = t, chip.Beat
			continue
		}

		if chip.Beat2 > 0 {
			segments = append(segments, Segment{Time: t, Beat: chip.Beat, Velocity: 0, Bpm: bpm})
			t += chip.Beat2 * 60 / bpm
			segments = append(segments, Segment{Time: t, Beat: chip.Beat, Velocity: bpm / 60, Bpm: bpm})
			time, beat = t, chip.Beat
		}
	}

	return append(segments, Segment{Time: SentinelBeat, Beat: SentinelBeat})
}

// A Clock maps elapsed wall time to a beat position by walking the
// segment list. Queries must use non-decreasing times; the cursor only
// moves forward.
type Clock struct {
	segments []Segment
	cursor   int
}

func NewClock(segments []Segment) *Clock {
	return &Clock{segments: segments}
}

// Lookup returns the beat position and tempo at time seconds.
func (c *Clock) Lookup(time float64) (beat, bpm float64) {
	for c.segments[c.cursor+1].Time <= time {
		c.cursor++
	}
	s := &c.segments[c.cursor]
	return s.Beat + (time-s.Time)*s.Velocity, s.Bpm
}
