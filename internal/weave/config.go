package weave

import (
	"fmt"
	"math"
	"strings"
)

// Pattern selects the shift-factor formula. The set is closed.
type Pattern uint8

const (
	Plain Pattern = iota
	Twill
	Satin
	Basket
)

// Patterns lists every weave pattern in cycle order.
var Patterns = [...]Pattern{Plain, Twill, Satin, Basket}

var patternNames = [...]string{
	Plain:  "plain",
	Twill:  "twill",
	Satin:  "satin",
	Basket: "basket",
}

func (p Pattern) String() string {
	if int(p) < len(patternNames) {
		return patternNames[p]
	}
	return fmt.Sprintf("Pattern(%d)", uint8(p))
}

// Valid reports whether p is one of the four weave patterns.
func (p Pattern) Valid() bool {
	return int(p) < len(patternNames)
}

// Next returns the following pattern, wrapping after Basket.
func (p Pattern) Next() Pattern {
	return Pattern((int(p) + 1) % len(patternNames))
}

// ParsePattern maps a case-insensitive name to a Pattern.
func ParsePattern(s string) (Pattern, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range patternNames {
		if name == s {
			return Pattern(i), nil
		}
	}
	return Plain, fmt.Errorf("weave: unknown pattern %q", s)
}

func (p Pattern) MarshalText() ([]byte, error) {
	if !p.Valid() {
		return nil, fmt.Errorf("weave: invalid pattern %d", uint8(p))
	}
	return []byte(p.String()), nil
}

func (p *Pattern) UnmarshalText(text []byte) error {
	v, err := ParsePattern(string(text))
	if err != nil {
		return err
	}
	*p = v
	return nil
}

// Parameter bounds exposed to configuration collaborators.
const (
	MinTileSize = 2
	MaxShift    = 200
	MaxScatter  = 100
	MaxOpacity  = 100
)

// Config is the parameter set driving a single render.
//
// TileSize is kept as a real number so it can be interpolated smoothly;
// rendering rounds it through EffectiveTileSize.
type Config struct {
	TileSize         float64 `json:"tile_size"`
	HorizontalShift  float64 `json:"horizontal_shift"`
	VerticalShift    float64 `json:"vertical_shift"`
	ScatterIntensity float64 `json:"scatter_intensity"`
	Pattern          Pattern `json:"pattern"`
	Seed             int64   `json:"seed"`
	Opacity          float64 `json:"opacity"` // not consumed by the engine
}

// DefaultConfig returns the parameters a fresh session starts with.
func DefaultConfig() Config {
	return Config{
		TileSize:         40,
		HorizontalShift:  20,
		VerticalShift:    20,
		ScatterIntensity: 0,
		Pattern:          Plain,
		Seed:             0,
		Opacity:          100,
	}
}

// EffectiveTileSize is the integer grid cell edge used for rendering.
func (c Config) EffectiveTileSize() int {
	ts := int(math.Round(c.TileSize))
	if ts < MinTileSize {
		ts = MinTileSize
	}
	return ts
}

// Clamp normalises every field into its collaborator-facing domain.
// NaN values fall back to the lower bound.
func (c Config) Clamp() Config {
	c.TileSize = clampf(math.Round(c.TileSize), MinTileSize, math.MaxInt32)
	c.HorizontalShift = clampf(c.HorizontalShift, 0, MaxShift)
	c.VerticalShift = clampf(c.VerticalShift, 0, MaxShift)
	c.ScatterIntensity = clampf(c.ScatterIntensity, 0, MaxScatter)
	c.Opacity = clampf(c.Opacity, 0, MaxOpacity)
	if !c.Pattern.Valid() {
		c.Pattern = Plain
	}
	return c
}

// Zeroed returns the zeroed-effect variant of c: no displacement and no
// scatter, everything else unchanged.
func (c Config) Zeroed() Config {
	c.HorizontalShift = 0
	c.VerticalShift = 0
	c.ScatterIntensity = 0
	return c
}

// Negligible reports whether the effect is too small to be visible, in which
// case rendering is a plain copy.
func (c Config) Negligible() bool {
	return math.Abs(c.HorizontalShift) < 0.5 &&
		math.Abs(c.VerticalShift) < 0.5 &&
		c.ScatterIntensity < 0.5
}

func clampf(v, lo, hi float64) float64 {
	if math.IsNaN(v) || v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
