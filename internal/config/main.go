package config

import (
	"gopkg.in/alecthomas/kingpin.v2"
)

const MaxSpeed = 5.0

var (
	ChartFile   = kingpin.Arg("chart", "BMS chart file").Required().ExistingFile()
	Speed       = kingpin.Flag("speed", "Scroll speed, 1.00 - 5.00").Default("1.0").Short('s').Float64()
	KeyBinds    = kingpin.Flag("keys", "Lane key bindings, scratch first").Default("azsxdcfv").Short('k').String()
	AutoPlay    = kingpin.Flag("autoplay", "Let the chart play itself").Short('a').Bool()
	FramePeriod = kingpin.Flag("frame-period", "Render frame period").Default("1ms").Short('p').Duration()
	ScoreDb     = kingpin.Flag("scores", "Score history database").Default("scores.db").String()
)

func Parse() {
	kingpin.Version("0.1.0")
	kingpin.Parse()
}

// KeyColumn maps a pressed rune to its lane, -1 if unbound.
func KeyColumn(r rune) int {
	for i, c := range []rune(*KeyBinds) {
		if c == r {
			return i
		}
	}
	return -1
}
