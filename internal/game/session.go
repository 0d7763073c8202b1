package game

// A lane owns two forward-only cursors into its frozen chip sequence
// and the state of a long note between press and release. The input
// shift register collects one bit per poll tick; a nonzero register
// counts as held.
type lane struct {
	chips    []Chip
	judge    int // oldest unresolved note
	horizon  int // one past the newest drawable note
	awaiting bool
	rank     Rank
	input    uint32
}

func (l *lane) current() *Chip {
	return &l.chips[l.judge]
}

// A Session is the runtime state of one play-through: the beat clock,
// the per-lane judgment machines and the background cue cursor. It is
// owned and driven by a single loop; judgment outcomes go to the sink,
// keysounds to the player.
type Session struct {
	chart   *Chart
	clock   *Clock
	lanes   [LaneCount]lane
	bgm     int
	beat    float64
	bpm     float64
	auto    bool
	sink    JudgeSink
	sampler SamplePlayer
}

func NewSession(chart *Chart, auto bool, sink JudgeSink, sampler SamplePlayer) *Session {
	s := &Session{
		chart:   chart,
		clock:   NewClock(chart.Segments),
		auto:    auto,
		sink:    sink,
		sampler: sampler,
	}
	for i := range s.lanes {
		s.lanes[i].chips = chart.Lanes[i]
	}
	return s
}

func (s *Session) Beat() float64 { return s.beat }
func (s *Session) Bpm() float64  { return s.bpm }

// Window returns the chips of a lane between its judgment cursor and
// its render horizon, the span eligible for drawing.
func (s *Session) Window(laneIndex int) []Chip {
	l := &s.lanes[laneIndex]
	if l.horizon < l.judge {
		return nil
	}
	return l.chips[l.judge:l.horizon]
}

// Advance moves the session to the given elapsed time: updates the
// beat position, fires due background cues and runs every lane's
// judgment step. Returns the current beat and tempo.
func (s *Session) Advance(elapsed float64) (beat, bpm float64) {
	s.beat, s.bpm = s.clock.Lookup(elapsed)

	for s.beat >= s.chart.Bgms[s.bgm].Beat {
		s.sampler.Play(int(s.chart.Bgms[s.bgm].Value))
		s.bgm++
	}

	// In manual play the time-driven path only ever resolves notes
	// that are already past the good window; anything closer waits
	// for a key press.
	padding := 0.0
	if !s.auto {
		padding = (BorderGood + 0.001) * s.bpm / 60
	}

	for i := range s.lanes {
		l := &s.lanes[i]
		if s.beat >= l.current().Beat+padding {
			s.judgeHit(l)
		}
		if s.beat >= l.chips[l.horizon].Beat-LifetimeBeats {
			l.horizon++
		}
		if l.awaiting {
			s.judgeRelease(l)
		}
	}

	return s.beat, s.bpm
}

// OnInput records a press on a lane and judges it immediately.
// Releases are not delivered as events; release detection is the decay
// of the shift register.
func (s *Session) OnInput(laneIndex int, pressed bool) {
	if laneIndex < 0 || laneIndex >= LaneCount || !pressed {
		return
	}
	l := &s.lanes[laneIndex]
	l.input |= 1
	if s.auto {
		return
	}
	s.judgeHit(l)
}

// ShiftInputs ages every lane's shift register by one poll tick.
func (s *Session) ShiftInputs() {
	for i := range s.lanes {
		s.lanes[i].input <<= 1
	}
}

// Finished reports end of play: all background cues consumed and
// nothing still sounding.
func (s *Session) Finished() bool {
	return s.chart.Bgms[s.bgm].Sentinel() && !s.sampler.Busy()
}

func (s *Session) judgeHit(l *lane) {
	if l.awaiting {
		s.judgeRelease(l)
		return
	}

	chip := l.current()
	delta := (chip.Beat - s.beat) * 60 / s.bpm
	if delta >= BorderGood {
		return
	}
	if delta <= -BorderGood {
		// Too far gone to hit; resolved without sampling input.
		s.sink.Judge(RankMiss)
		l.judge++
		return
	}

	s.sampler.Play(int(chip.Value))

	abs := delta
	if abs < 0 {
		abs = -abs
	}
	rank := rankFor(abs)

	if chip.LongNote() {
		// Cursor holds until release; the rank is banked.
		l.awaiting = true
		l.rank = rank
		return
	}

	s.sink.Judge(rank)
	l.judge++
}

func (s *Session) judgeRelease(l *lane) {
	if !s.auto && l.input == 0 {
		s.sink.Judge(RankMiss)
		l.awaiting = false
		l.judge++
		return
	}

	if (l.current().Beat2-s.beat)*60/s.bpm > 0 {
		return
	}

	s.sink.Judge(l.rank)
	l.input = 0
	l.awaiting = false
	l.judge++
}
