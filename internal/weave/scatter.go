package weave

import "math"

// Direction is the axis of a scatter jump.
type Direction uint8

const (
	NoJump Direction = iota
	JumpRight
	JumpDown
)

func (d Direction) String() string {
	switch d {
	case JumpRight:
		return "right"
	case JumpDown:
		return "down"
	default:
		return "none"
	}
}

// Hash maps (col, row, seed) to a reproducible value in [0, 1).
func Hash(col, row int, seed int64) float64 {
	v := math.Sin(float64(col)*12.9898+float64(row)*78.233+float64(seed)) * 43758.5453
	f := v - math.Floor(v)
	if f >= 1 {
		// Tiny negative products round up to 1.
		f = 0
	}
	return f
}

// Scatter decides whether the tile at (col, row) takes an extra one-tile
// jump for the given intensity (0-100) and, if so, in which direction.
func Scatter(col, row int, seed int64, intensity float64) Direction {
	h := Hash(col, row, seed)
	if h >= intensity/100 {
		return NoJump
	}
	if math.Mod(h*10, 2) < 1 {
		return JumpRight
	}
	return JumpDown
}
