package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"git.lost.host/meutraa/ebms/internal/audio"
	"git.lost.host/meutraa/ebms/internal/config"
	"git.lost.host/meutraa/ebms/internal/game"
	"git.lost.host/meutraa/ebms/internal/parser"
	"git.lost.host/meutraa/ebms/internal/render"
	"git.lost.host/meutraa/ebms/internal/score"
	"git.lost.host/meutraa/ebms/internal/theme"
	"github.com/eiannone/keyboard"
	"golang.org/x/term"
)

// Input is polled in batches; one poll tick also ages the lanes' hold
// registers, so this is effectively the hold-detection resolution.
const inputPollPeriod = 15 * time.Millisecond

func main() {
	config.Parse()
	if err := run(); nil != err {
		log.Fatalln(err)
	}
}

func run() error {
	// Ensure our Default implementations are used as interfaces
	var r render.Renderer = &render.DefaultRenderer{}
	var th theme.Theme = &theme.DefaultTheme{}
	var psr parser.Parser = &parser.DefaultParser{}

	chart, err := psr.Parse(*config.ChartFile)
	if nil != err {
		return fmt.Errorf("unable to load chart: %w", err)
	}

	player := audio.NewPlayer()
	if err := player.LoadSamples(chart.Samples); nil != err {
		return fmt.Errorf("unable to open audio output: %w", err)
	}

	scorer := score.NewDefaultScorer(chart.TotalNotes)
	if err := scorer.Init(*config.ScoreDb); nil != err {
		log.Println("score history unavailable:", err)
	}
	defer scorer.Deinit()

	columns, rows, err := term.GetSize(int(os.Stdout.Fd()))
	if nil != err {
		return fmt.Errorf("unable to get terminal size: %w", err)
	}

	keyChannel, err := keyboard.GetKeys(128)
	if nil != err {
		return fmt.Errorf("unable to open keyboard: %w", err)
	}
	defer func() {
		if err := keyboard.Close(); nil != err {
			log.Println("unable to close keyboard", err)
		}
	}()

	session := game.NewSession(chart, *config.AutoPlay, scorer, player)
	v := &view{r: r, th: th, rows: rows, cols: columns}

	if err := r.Init(); nil != err {
		return err
	}
	defer func() {
		if err := r.Deinit(); nil != err {
			log.Println("unable to restore terminal", err)
		}
	}()

	speed := *config.Speed
	if speed < 1.0 || speed > config.MaxSpeed {
		speed = 1.0
	}
	lastPoll := time.Duration(-inputPollPeriod)
	finished := false

	r.RenderLoop(*config.FramePeriod, func(now time.Time, elapsed time.Duration) bool {
		beat, bpm := session.Advance(elapsed.Seconds())

		if elapsed-lastPoll >= inputPollPeriod {
			lastPoll = elapsed
			session.ShiftInputs()

			// get the key inputs that occured so far
			for i := 0; i < len(keyChannel); i++ {
				key := <-keyChannel
				if key.Key == keyboard.KeyEsc || key.Rune == 'q' {
					return false
				}
				switch key.Rune {
				case '3':
					if speed-0.25 >= 1.0 {
						speed -= 0.25
					}
				case '4':
					if speed+0.25 <= config.MaxSpeed {
						speed += 0.25
					}
				default:
					session.OnInput(config.KeyColumn(key.Rune), true)
				}
			}
		}

		v.drawField(session, speed, beat)
		v.drawStats(chart, &scorer.Score, bpm, speed)

		if session.Finished() {
			finished = true
			return false
		}
		return true
	})

	scorer.Finish()
	if finished && !*config.AutoPlay {
		scorer.Save(chart.Sum, speed, *config.AutoPlay)
		fmt.Printf("%s  %d-%d-%d-%d:%d Score:%d\n",
			chart.Title,
			scorer.Judges[game.RankCool],
			scorer.Judges[game.RankGreat],
			scorer.Judges[game.RankGood],
			scorer.Judges[game.RankMiss],
			scorer.MaxCombo,
			scorer.Point)
	}
	return nil
}

// view draws the note field and stat panel. It remembers which cells
// it touched last frame so it can blank exactly those.
type view struct {
	r    render.Renderer
	th   theme.Theme
	rows int
	cols int
	prev [][2]int
}

// row converts a beat offset from the current position into a terminal
// row; the bottom row is "now" and notes fall toward it.
func (v *view) row(speed, beat, noteBeat float64) int {
	return int(float64(v.rows)*speed*(beat-noteBeat)/game.LifetimeBeats) + v.rows
}

func (v *view) put(row, col int, content string) {
	v.r.Fill(row, col, content)
	v.prev = append(v.prev, [2]int{row, col})
}

func (v *view) drawField(s *game.Session, speed, beat float64) {
	for _, p := range v.prev {
		v.r.Fill(p[0], p[1], v.th.Blank())
	}
	v.prev = v.prev[:0]

	for i := 0; i < game.LaneCount; i++ {
		col := 1 + i*theme.LaneWidth
		window := s.Window(i)
		for n := range window {
			chip := &window[n]
			y := v.row(speed, beat, chip.Beat)
			if y < 1 {
				// everything further in the lane is above the screen
				break
			}
			if y > v.rows {
				y = v.rows
			}

			if !chip.LongNote() {
				v.put(y, col, v.th.RenderNote(i))
				continue
			}

			y2 := v.row(speed, beat, chip.Beat2)
			base := y2 + 1
			if base < 1 {
				base = 1
			}
			for j := base; j < y; j++ {
				v.put(j, col, v.th.RenderLongBody(i, (j-y2)%2 == 0))
			}
			if y2 >= 1 {
				v.put(y2, col, v.th.RenderNote(i))
			}
			v.put(y, col, v.th.RenderNote(i))
		}
	}
}

func (v *view) drawStats(c *game.Chart, s *score.Score, bpm, speed float64) {
	rightAlign := func(row int, text string) {
		col := v.cols - len(text) + 1
		if col < 1 {
			col = 1
		}
		v.r.Fill(row, col, text)
	}
	rightAlign(1, c.Genre)
	rightAlign(2, c.Title)
	rightAlign(3, c.Artist)
	rightAlign(5, fmt.Sprintf("Level : %6s", c.Level))
	rightAlign(6, fmt.Sprintf("BPM   : %6.2f", bpm))
	rightAlign(7, fmt.Sprintf("Speed : %6.2f", speed))

	col := game.LaneCount*theme.LaneWidth + 1
	for i := 0; i < game.RankCount; i++ {
		v.r.Fill(v.rows-6+i, col, fmt.Sprintf("%-5s %6d", game.Rank(i), s.Judges[i]))
	}
	v.r.Fill(v.rows-1, col, fmt.Sprintf("%12d", s.Combo))
}
