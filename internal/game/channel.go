package game

// Kind says which sequence a data channel feeds and how its cells are
// decoded.
type Kind int

const (
	KindIgnored Kind = iota
	KindBgm          // channel 1, base-36 sample index
	KindTempo        // channel 3, inline base-16 BPM
	KindTempoRef     // channel 8, BPM table lookup
	KindStopRef      // channel 9, stop table lookup
	KindNote         // channels 11-16, 18-19
	KindLongNote     // channels 51-56, 58-59
)

// A Target is the classification of one channel number.
type Target struct {
	Kind Kind
	Lane int // valid for KindNote and KindLongNote only
}

// Classify maps a BMS channel number to its target sequence. Channels
// 16 and 56 are the scratch lane (lane 0); 17 and 57 are unused in the
// 8-lane layout. Anything unlisted is ignored.
func Classify(channel int) Target {
	switch {
	case channel == 1:
		return Target{Kind: KindBgm}
	case channel == 3:
		return Target{Kind: KindTempo}
	case channel == 8:
		return Target{Kind: KindTempoRef}
	case channel == 9:
		return Target{Kind: KindStopRef}
	case channel >= 11 && channel <= 16 || channel == 18 || channel == 19:
		return Target{Kind: KindNote, Lane: laneIndex(channel - 10)}
	case channel >= 51 && channel <= 56 || channel == 58 || channel == 59:
		return Target{Kind: KindLongNote, Lane: laneIndex(channel - 50)}
	}
	return Target{Kind: KindIgnored}
}

func laneIndex(key int) int {
	switch {
	case key == 6: // turntable
		return 0
	case key <= 5:
		return key
	default: // 8, 9
		return key - 2
	}
}
