package game

import "testing"

func TestBuildLanePairsLnobj(t *testing.T) {
	cells := []RawCell{
		{Beat: 0, Value: 1},
		{Beat: 2, Close: true},
		{Beat: 4, Value: 2},
	}
	chips := BuildLane(cells)
	if len(chips) != 2 {
		t.Fatal("chips", chips)
	}
	if chips[0].Beat != 0 || chips[0].Beat2 != 2 {
		t.Log("head", chips[0])
		t.Fail()
	}
	if chips[1].Beat2 != 0 {
		t.Log("plain note got a tail", chips[1])
		t.Fail()
	}
}

func TestBuildLanePairsHoldChannel(t *testing.T) {
	cells := []RawCell{
		{Beat: 0, Value: 1, Hold: PendingClose},
		{Beat: 3, Value: 1, Hold: PendingClose},
		{Beat: 4, Value: 2, Hold: PendingClose},
		{Beat: 6, Value: 2, Hold: PendingClose},
	}
	chips := BuildLane(cells)
	if len(chips) != 2 {
		t.Fatal("chips", chips)
	}
	if chips[0].Beat != 0 || chips[0].Beat2 != 3 {
		t.Log("first hold", chips[0])
		t.Fail()
	}
	if chips[1].Beat != 4 || chips[1].Beat2 != 6 {
		t.Log("second hold", chips[1])
		t.Fail()
	}
}

func TestBuildLaneDanglingCells(t *testing.T) {
	// A closer with nothing before it disappears; a head that never
	// sees its tail plays as a simple note.
	chips := BuildLane([]RawCell{
		{Beat: 0, Close: true},
		{Beat: 2, Value: 1, Hold: PendingClose},
	})
	if len(chips) != 1 {
		t.Fatal("chips", chips)
	}
	if chips[0].LongNote() {
		t.Log("dangling head kept a tail", chips[0])
		t.Fail()
	}
}

func TestBuildLaneSortsByBeat(t *testing.T) {
	chips := BuildLane([]RawCell{
		{Beat: 4, Value: 3},
		{Beat: 0, Value: 1},
		{Beat: 2, Value: 2},
	})
	for i := 1; i < len(chips); i++ {
		if chips[i].Beat <= chips[i-1].Beat {
			t.Log("out of order at", i, chips)
			t.Fail()
		}
	}
}

func TestFreezeCountsAndTerminates(t *testing.T) {
	chart := &Chart{}
	chart.Lanes[1] = []Chip{{Beat: 0, Value: 1}, {Beat: 2, Value: 1}}
	chart.Lanes[3] = []Chip{{Beat: 1, Beat2: 5, Value: 2}}
	chart.Bgms = []Chip{{Beat: 4, Value: 9}}
	chart.Freeze(120)

	if chart.TotalNotes != 3 {
		t.Log("total notes", chart.TotalNotes)
		t.Fail()
	}
	for i := range chart.Lanes {
		last := chart.Lanes[i][len(chart.Lanes[i])-1]
		if !last.Sentinel() {
			t.Log("lane", i, "missing sentinel")
			t.Fail()
		}
	}
	if !chart.Bgms[len(chart.Bgms)-1].Sentinel() {
		t.Log("bgm sequence missing sentinel")
		t.Fail()
	}
	if len(chart.Segments) == 0 {
		t.Log("no segments derived")
		t.Fail()
	}
}
