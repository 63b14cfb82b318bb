package main

import (
	"github.com/hajimehoshi/ebiten/v2"

	"tile-weaver/internal/weave"
)

type action int

const (
	actNone action = iota
	actPlain
	actTwill
	actSatin
	actBasket
	actNextPattern
	actReseed
	actTileUp
	actTileDown
	actShiftLeft
	actShiftRight
	actShiftUp
	actShiftDown
	actScatterDown
	actScatterUp
	actOpacityDown
	actOpacityUp
)

// keymap binds keys to parameter edits. E, H, R and Esc
// are handled by the game loop directly.
var keymap = map[ebiten.Key]action{
	ebiten.KeyDigit1:       actPlain,
	ebiten.KeyDigit2:       actTwill,
	ebiten.KeyDigit3:       actSatin,
	ebiten.KeyDigit4:       actBasket,
	ebiten.KeyP:            actNextPattern,
	ebiten.KeyS:            actReseed,
	ebiten.KeyEqual:        actTileUp,
	ebiten.KeyMinus:        actTileDown,
	ebiten.KeyArrowLeft:    actShiftLeft,
	ebiten.KeyArrowRight:   actShiftRight,
	ebiten.KeyArrowDown:    actShiftDown,
	ebiten.KeyArrowUp:      actShiftUp,
	ebiten.KeyBracketLeft:  actScatterDown,
	ebiten.KeyBracketRight: actScatterUp,
	ebiten.KeyComma:        actOpacityDown,
	ebiten.KeyPeriod:       actOpacityUp,
}

const (
	tileStep    = 2
	shiftStep   = 10
	scatterStep = 5
	opacityStep = 10
)

// adjust applies one edit to a target configuration and clamps the result.
func adjust(cfg weave.Config, a action) weave.Config {
	switch a {
	case actPlain:
		cfg.Pattern = weave.Plain
	case actTwill:
		cfg.Pattern = weave.Twill
	case actSatin:
		cfg.Pattern = weave.Satin
	case actBasket:
		cfg.Pattern = weave.Basket
	case actNextPattern:
		cfg.Pattern = cfg.Pattern.Next()
	case actReseed:
		cfg.Seed++
	case actTileUp:
		cfg.TileSize += tileStep
	case actTileDown:
		cfg.TileSize -= tileStep
	case actShiftLeft:
		cfg.HorizontalShift -= shiftStep
	case actShiftRight:
		cfg.HorizontalShift += shiftStep
	case actShiftDown:
		cfg.VerticalShift -= shiftStep
	case actShiftUp:
		cfg.VerticalShift += shiftStep
	case actScatterDown:
		cfg.ScatterIntensity -= scatterStep
	case actScatterUp:
		cfg.ScatterIntensity += scatterStep
	case actOpacityDown:
		cfg.Opacity -= opacityStep
	case actOpacityUp:
		cfg.Opacity += opacityStep
	}
	return cfg.Clamp()
}
