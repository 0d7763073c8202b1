package testdata

import (
	"io/ioutil"
	"path/filepath"
)

// Chart exercises every channel kind: plain notes, an LNOBJ long note,
// a 5x-channel long note, a background cue, an inline tempo change, a
// table tempo change, a stop and a measure-length override.
const Chart = `#TITLE Test Song
#ARTIST Nobody
#GENRE Test
#PLAYLEVEL 3
#BPM 120
#LNOBJ ZZ
#BPM01 180
#STOP01 48
#WAV01 kick.wav

#00102:0.5

#00001:01
#00011:0101
#00012:01ZZ
#00053:0101
#00103:78
#00009:0001
#00208:01
`

// WriteChart drops the test chart into dir and returns its path.
func WriteChart(dir string) (string, error) {
	path := filepath.Join(dir, "test.bms")
	return path, ioutil.WriteFile(path, []byte(Chart), 0644)
}
