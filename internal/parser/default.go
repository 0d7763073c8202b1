package parser

import (
	"crypto/sha256"
	"encoding/base64"
	"io/ioutil"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"git.lost.host/meutraa/ebms/internal/game"
)

// defaultBpm applies when a chart carries no #BPM header.
const defaultBpm = 130.0

var (
	measureExp = regexp.MustCompile(`^#(\d{3})02:([.0-9]+)$`)
	commandExp = regexp.MustCompile(`^#(\w+) (.+)$`)
	channelExp = regexp.MustCompile(`^#(\d{3})(\d{2}):(\w+)$`)
	tableExp   = regexp.MustCompile(`^(\w+)(\w{2})$`)
)

type DefaultParser struct{}

// Parse loads a BMS file into a frozen chart. The grammar is
// deliberately tolerant: any line that does not match a recognized
// directive shape is skipped. Only an unreadable file is an error.
func (p *DefaultParser) Parse(file string) (*game.Chart, error) {
	data, err := ioutil.ReadFile(file)
	if nil != err {
		return nil, err
	}

	l := &loader{
		chart:     &game.Chart{Samples: map[int]string{}},
		base:      filepath.Dir(file),
		beats:     map[int]float64{},
		bpmTable:  map[int]float64{},
		stopTable: map[int]float64{},
		lnobj:     -1,
		headerBpm: defaultBpm,
	}

	lines := strings.Split(strings.ReplaceAll(string(data), "\r", ""), "\n")

	// Measure lengths first, so channel decoding in the second pass
	// sees the complete measure-beat table.
	for _, line := range lines {
		if m := measureExp.FindStringSubmatch(line); nil != m {
			measure, _ := strconv.Atoi(m[1])
			if f, err := strconv.ParseFloat(m[2], 64); nil == err {
				l.beats[measure] = f * 4
			}
		}
	}

	for _, line := range lines {
		if !l.command(line) {
			l.channel(line)
		}
	}

	for i := range l.cells {
		l.chart.Lanes[i] = game.BuildLane(l.cells[i])
	}
	l.chart.Freeze(l.headerBpm)

	sum := sha256.Sum256(data)
	l.chart.Sum = base64.StdEncoding.EncodeToString(sum[:])

	return l.chart, nil
}

type loader struct {
	chart     *game.Chart
	base      string
	beats     map[int]float64
	bpmTable  map[int]float64
	stopTable map[int]float64
	lnobj     int64
	headerBpm float64
	cells     [game.LaneCount][]game.RawCell
}

func (l *loader) measureLen(measure int) float64 {
	if v, ok := l.beats[measure]; ok {
		return v
	}
	return 4
}

func (l *loader) measureStart(measure int) float64 {
	beat := 0.0
	for i := 0; i < measure; i++ {
		beat += l.measureLen(i)
	}
	return beat
}

// command handles "#KEYWORD value" directives. Returns false when the
// line is not of that shape at all, so channel data gets a chance.
func (l *loader) command(line string) bool {
	m := commandExp.FindStringSubmatch(line)
	if nil == m {
		return false
	}
	key, value := m[1], m[2]

	switch key {
	case "TITLE":
		l.chart.Title = value
		return true
	case "ARTIST":
		l.chart.Artist = value
		return true
	case "GENRE":
		l.chart.Genre = value
		return true
	case "PLAYLEVEL":
		l.chart.Level = value
		return true
	case "LNOBJ":
		if v, err := strconv.ParseInt(value, 36, 64); nil == err {
			l.lnobj = v
		}
		return true
	case "BPM":
		if f, err := strconv.ParseFloat(value, 64); nil == err {
			l.headerBpm = f
		}
		return true
	}

	t := tableExp.FindStringSubmatch(key)
	if nil == t {
		return true
	}
	index, err := strconv.ParseInt(t[2], 36, 64)
	if nil != err {
		return true
	}

	switch t[1] {
	case "BPM":
		if f, err := strconv.ParseFloat(value, 64); nil == err {
			l.bpmTable[int(index)] = f
		}
	case "STOP":
		// Stop lengths are given in 1/192 whole notes.
		if f, err := strconv.ParseFloat(value, 64); nil == err {
			l.stopTable[int(index)] = f / 48
		}
	case "WAV":
		l.bindSample(int(index), value)
	}
	return true
}

func (l *loader) channel(line string) {
	m := channelExp.FindStringSubmatch(line)
	if nil == m {
		return
	}
	measure, _ := strconv.Atoi(m[1])
	channel, _ := strconv.Atoi(m[2])
	l.decode(measure, game.Classify(channel), m[3])
}

// decode spreads the 2-symbol cells of one data line across the
// measure and routes them per the channel classification.
func (l *loader) decode(measure int, target game.Target, notation string) {
	if target.Kind == game.KindIgnored {
		return
	}
	slots := len(notation) / 2
	if slots == 0 {
		return
	}
	start := l.measureStart(measure)
	length := l.measureLen(measure)

	for c := 0; c < slots; c++ {
		cell := notation[c*2 : c*2+2]
		if cell == "00" {
			continue
		}
		beat := start + float64(c)*length/float64(slots)

		switch target.Kind {
		case game.KindBgm:
			if v, err := strconv.ParseInt(cell, 36, 64); nil == err {
				l.chart.Bgms = append(l.chart.Bgms, game.Chip{Beat: beat, Value: float64(v)})
			}

		case game.KindTempo:
			if v, err := strconv.ParseInt(cell, 16, 64); nil == err {
				l.chart.Tempos = append(l.chart.Tempos, game.Chip{Beat: beat, Value: float64(v)})
			}

		case game.KindTempoRef:
			if v, err := strconv.ParseInt(cell, 36, 64); nil == err {
				l.chart.Tempos = append(l.chart.Tempos, game.Chip{Beat: beat, Value: l.bpmTable[int(v)]})
			}

		case game.KindStopRef:
			if v, err := strconv.ParseInt(cell, 36, 64); nil == err {
				l.chart.Tempos = append(l.chart.Tempos, game.Chip{Beat: beat, Beat2: l.stopTable[int(v)]})
			}

		case game.KindNote:
			v, err := strconv.ParseInt(cell, 36, 64)
			if nil != err {
				continue
			}
			if v == l.lnobj {
				l.cells[target.Lane] = append(l.cells[target.Lane], game.RawCell{Beat: beat, Close: true})
				continue
			}
			l.cells[target.Lane] = append(l.cells[target.Lane], game.RawCell{Beat: beat, Value: float64(v)})

		case game.KindLongNote:
			if v, err := strconv.ParseInt(cell, 36, 64); nil == err {
				l.cells[target.Lane] = append(l.cells[target.Lane],
					game.RawCell{Beat: beat, Value: float64(v), Hold: game.PendingClose})
			}
		}
	}
}

// bindSample resolves a #WAVxx path against the chart directory,
// trying the supported extensions in order. Unresolvable bindings are
// dropped; the index just stays silent.
func (l *loader) bindSample(index int, path string) {
	path = strings.ReplaceAll(path, "\\", "/")
	path = strings.TrimSuffix(path, filepath.Ext(path))
	for _, ext := range []string{".ogg", ".wav"} {
		full := filepath.Join(l.base, path+ext)
		if _, err := os.Stat(full); nil == err {
			l.chart.Samples[index] = full
			return
		}
	}
}
