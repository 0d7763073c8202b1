package theme

type DefaultTheme struct{}

const (
	noteSym   = "[######]"
	barSolid  = " |####| "
	barHollow = " |    | "
	blankSym  = "        "
)

// Lane 0 is the scratch lane; the seven keys alternate white and blue
// the way a beatmania keyboard does.
func laneColor(lane int) string {
	switch {
	case lane == 0:
		return "\033[1;31m"
	case lane%2 == 1:
		return "\033[1;37m"
	default:
		return "\033[1;34m"
	}
}

func (t *DefaultTheme) RenderNote(lane int) string {
	return laneColor(lane) + noteSym + "\033[0m"
}

func (t *DefaultTheme) RenderLongBody(lane int, solid bool) string {
	sym := barHollow
	if solid {
		sym = barSolid
	}
	return laneColor(lane) + sym + "\033[0m"
}

func (t *DefaultTheme) Blank() string {
	return blankSym
}
