package render

import (
	"image/color"
	"time"
)

type Renderer interface {
	Init() error
	Deinit() error
	AddDecoration(row, col int, content string, frames int)
	RenderLoop(framePeriod time.Duration, render func(now time.Time, elapsed time.Duration) bool)
	Fill(row, column int, message string)
	FillColor(row, column int, color color.RGBA, message string)
}
