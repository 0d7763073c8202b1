package theme

// LaneWidth is the column span of one lane in the terminal field.
const LaneWidth = 8

type Theme interface {
	RenderNote(lane int) string
	RenderLongBody(lane int, solid bool) string
	Blank() string
}
