package parser

import "git.lost.host/meutraa/ebms/internal/game"

type Parser interface {
	Parse(file string) (*game.Chart, error)
}
