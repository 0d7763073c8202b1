package audio

import (
	"log"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/vorbis"
	"github.com/faiface/beep/wav"
)

// Player owns the decoded keysound table and triggers playback through
// the speaker mixer. Play is fire and forget: the caller never waits,
// and completion is observed by polling Busy.
type Player struct {
	buffers map[int]*beep.Buffer
	rate    beep.SampleRate
	active  int32
}

func NewPlayer() *Player {
	return &Player{buffers: map[int]*beep.Buffer{}}
}

// LoadSamples decodes every resolved keysound binding into memory.
// The first decoded format decides the speaker rate; anything else is
// resampled at trigger time. A sample that fails to decode is logged
// and stays unbound.
func (p *Player) LoadSamples(samples map[int]string) error {
	for index, path := range samples {
		streamer, format, err := decode(path)
		if nil != err {
			log.Println("unable to decode keysound", path, err)
			continue
		}
		if p.rate == 0 {
			p.rate = format.SampleRate
			if err := speaker.Init(p.rate, p.rate.N(time.Second/10)); nil != err {
				streamer.Close()
				return err
			}
		}
		buffer := beep.NewBuffer(format)
		buffer.Append(streamer)
		streamer.Close()
		p.buffers[index] = buffer
	}
	return nil
}

func decode(path string) (beep.StreamSeekCloser, beep.Format, error) {
	f, err := os.Open(path)
	if nil != err {
		return nil, beep.Format{}, err
	}
	if filepath.Ext(path) == ".ogg" {
		return vorbis.Decode(f)
	}
	return wav.Decode(f)
}

// Play starts a keysound asynchronously. An index with no binding is a
// no-op.
func (p *Player) Play(index int) {
	buffer, ok := p.buffers[index]
	if !ok {
		return
	}
	var streamer beep.Streamer = buffer.Streamer(0, buffer.Len())
	if buffer.Format().SampleRate != p.rate {
		streamer = beep.Resample(4, buffer.Format().SampleRate, p.rate, streamer)
	}
	atomic.AddInt32(&p.active, 1)
	speaker.Play(beep.Seq(streamer, beep.Callback(func() {
		atomic.AddInt32(&p.active, -1)
	})))
}

// Busy reports whether any triggered sample is still sounding.
func (p *Player) Busy() bool {
	return atomic.LoadInt32(&p.active) > 0
}
