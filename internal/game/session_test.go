package game

import (
	"testing"
)

type recordSink struct {
	ranks []Rank
}

func (s *recordSink) Judge(r Rank) {
	s.ranks = append(s.ranks, r)
}

type recordSampler struct {
	played []int
	busy   bool
}

func (s *recordSampler) Play(i int) {
	s.played = append(s.played, i)
}

func (s *recordSampler) Busy() bool {
	return s.busy
}

// one note on lane 1 at beat 4, which is t=2s at 120 bpm
func newSingleNoteSession(auto bool, chip Chip) (*Session, *recordSink, *recordSampler) {
	chart := &Chart{}
	chart.Lanes[1] = []Chip{chip}
	chart.Freeze(120)
	sink := &recordSink{}
	sampler := &recordSampler{}
	return NewSession(chart, auto, sink, sampler), sink, sampler
}

func TestJudgeWindowRanks(t *testing.T) {
	tests := map[float64]Rank{
		-0.024: RankCool,
		0.024:  RankCool,
		-0.049: RankGreat,
		0.049:  RankGreat,
		-0.099: RankGood,
		0.099:  RankGood,
	}
	for offset, expected := range tests {
		s, sink, _ := newSingleNoteSession(false, Chip{Beat: 4, Value: 1})
		s.Advance(2.0 + offset)
		s.OnInput(1, true)
		if len(sink.ranks) != 1 || sink.ranks[0] != expected {
			t.Log("offset  ", offset)
			t.Log("ranks   ", sink.ranks)
			t.Log("expected", expected)
			t.Fail()
		}
	}
}

func TestEarlyPressOutsideWindow(t *testing.T) {
	s, sink, sampler := newSingleNoteSession(false, Chip{Beat: 4, Value: 1})
	s.Advance(1.899) // 101ms early
	s.OnInput(1, true)
	if len(sink.ranks) != 0 {
		t.Log("ranks", sink.ranks)
		t.Fail()
	}
	if len(sampler.played) != 0 {
		t.Log("played", sampler.played)
		t.Fail()
	}
	// The note is still pending and can be hit on time.
	s.Advance(2.0)
	s.OnInput(1, true)
	if len(sink.ranks) != 1 || sink.ranks[0] != RankCool {
		t.Log("ranks", sink.ranks)
		t.Fail()
	}
}

func TestLatePassForcesMiss(t *testing.T) {
	s, sink, sampler := newSingleNoteSession(false, Chip{Beat: 4, Value: 1})
	s.Advance(2.102)
	if len(sink.ranks) != 1 || sink.ranks[0] != RankMiss {
		t.Log("ranks", sink.ranks)
		t.Fail()
	}
	// A forced miss never samples input or sound.
	if len(sampler.played) != 0 {
		t.Log("played", sampler.played)
		t.Fail()
	}
}

func TestLongNoteHeldToRelease(t *testing.T) {
	s, sink, sampler := newSingleNoteSession(false, Chip{Beat: 4, Beat2: 8, Value: 7})
	s.Advance(2.0)
	s.OnInput(1, true)
	if len(sink.ranks) != 0 {
		t.Log("judged before release", sink.ranks)
		t.Fail()
	}
	if len(sampler.played) != 1 || sampler.played[0] != 7 {
		t.Log("played", sampler.played)
		t.Fail()
	}

	// Still held, release beat not reached yet.
	s.Advance(3.0)
	if len(sink.ranks) != 0 {
		t.Log("judged too early", sink.ranks)
		t.Fail()
	}

	// Release beat passed while held: the banked rank lands.
	s.Advance(4.0)
	if len(sink.ranks) != 1 || sink.ranks[0] != RankCool {
		t.Log("ranks", sink.ranks)
		t.Fail()
	}
}

func TestLongNoteReleasedEarly(t *testing.T) {
	s, sink, _ := newSingleNoteSession(false, Chip{Beat: 4, Beat2: 8, Value: 7})
	s.Advance(2.0)
	s.OnInput(1, true)

	// Age the shift register until the press decays completely.
	for i := 0; i < 32; i++ {
		s.ShiftInputs()
	}
	s.Advance(3.0)
	if len(sink.ranks) != 1 || sink.ranks[0] != RankMiss {
		t.Log("ranks", sink.ranks)
		t.Fail()
	}
}

func TestAutoPlay(t *testing.T) {
	chart := &Chart{}
	chart.Lanes[1] = []Chip{{Beat: 2, Value: 1}, {Beat: 4, Value: 2}}
	chart.Lanes[5] = []Chip{{Beat: 3, Value: 3}, {Beat: 4, Beat2: 6, Value: 4}}
	chart.Bgms = []Chip{{Beat: 0, Value: 9}}
	chart.Freeze(120)

	sink := &recordSink{}
	sampler := &recordSampler{}
	s := NewSession(chart, true, sink, sampler)

	for elapsed := 0.0; elapsed < 4.0; elapsed += 0.005 {
		s.Advance(elapsed)
	}

	if len(sink.ranks) != 4 {
		t.Fatal("ranks", sink.ranks)
	}
	for _, r := range sink.ranks {
		if r != RankCool {
			t.Log("ranks", sink.ranks)
			t.Fail()
		}
	}
	// bgm cue plus all four keysounds fired
	if len(sampler.played) != 5 || sampler.played[0] != 9 {
		t.Log("played", sampler.played)
		t.Fail()
	}

	if !s.Finished() {
		t.Log("session not finished after all cues")
		t.Fail()
	}
	sampler.busy = true
	if s.Finished() {
		t.Log("finished while audio still playing")
		t.Fail()
	}
}

func TestWindowBoundsDrawing(t *testing.T) {
	s, _, _ := newSingleNoteSession(false, Chip{Beat: 4, Value: 1})

	// Beat 0: the note at beat 4 is inside the five beat lifetime.
	s.Advance(0)
	if w := s.Window(1); len(w) != 1 || w[0].Beat != 4 {
		t.Log("window", w)
		t.Fail()
	}
	// Other lanes hold nothing but their sentinel.
	if w := s.Window(2); len(w) != 0 {
		t.Log("window", w)
		t.Fail()
	}
	// Once the note is missed it leaves the window.
	s.Advance(2.2)
	if w := s.Window(1); len(w) != 0 {
		t.Log("window", w)
		t.Fail()
	}
}
