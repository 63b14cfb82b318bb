package anim

import (
	"fmt"
	"sort"
	"strings"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"tile-weaver/internal/weave"
)

// Field names one numeric configuration parameter.
type Field string

const (
	FieldHorizontalShift  Field = "horizontal_shift"
	FieldVerticalShift    Field = "vertical_shift"
	FieldScatterIntensity Field = "scatter_intensity"
	FieldTileSize         Field = "tile_size"
	FieldOpacity          Field = "opacity"
)

func (f Field) ptr(c *weave.Config) *float64 {
	switch f {
	case FieldHorizontalShift:
		return &c.HorizontalShift
	case FieldVerticalShift:
		return &c.VerticalShift
	case FieldScatterIntensity:
		return &c.ScatterIntensity
	case FieldTileSize:
		return &c.TileSize
	case FieldOpacity:
		return &c.Opacity
	}
	return nil
}

// ParseField accepts the JSON-style field names.
func ParseField(s string) (Field, error) {
	f := Field(strings.ToLower(strings.TrimSpace(s)))
	var probe weave.Config
	if f.ptr(&probe) == nil {
		return "", fmt.Errorf("anim: unknown field %q", s)
	}
	return f, nil
}

var easings = map[string]ease.TweenFunc{
	"linear":       ease.Linear,
	"in-quad":      ease.InQuad,
	"out-quad":     ease.OutQuad,
	"in-out-quad":  ease.InOutQuad,
	"in-cubic":     ease.InCubic,
	"out-cubic":    ease.OutCubic,
	"in-out-cubic": ease.InOutCubic,
	"in-out-sine":  ease.InOutSine,
	"out-bounce":   ease.OutBounce,
	"out-elastic":  ease.OutElastic,
}

// ParseEasing maps a name such as "in-out-quad" to an easing function.
func ParseEasing(name string) (ease.TweenFunc, error) {
	fn, ok := easings[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("anim: unknown easing %q (want one of %s)", name, strings.Join(EasingNames(), ", "))
	}
	return fn, nil
}

// EasingNames lists the accepted easing names, sorted.
func EasingNames() []string {
	names := make([]string, 0, len(easings))
	for n := range easings {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Sweep moves one field of a target configuration from a start to an end
// value over a fixed duration. Feeding its output to State.SetTarget every
// frame gives a scripted transition on top of the per-frame smoothing.
type Sweep struct {
	field  Field
	tween  *gween.Tween
	target weave.Config
	Done   bool
}

// NewSweep builds a sweep of field on base from→to over duration seconds.
func NewSweep(base weave.Config, field Field, from, to float64, duration float32, fn ease.TweenFunc) (*Sweep, error) {
	if field.ptr(&base) == nil {
		return nil, fmt.Errorf("anim: unknown field %q", field)
	}
	if fn == nil {
		fn = ease.Linear
	}
	*field.ptr(&base) = from
	return &Sweep{
		field:  field,
		tween:  gween.New(float32(from), float32(to), duration, fn),
		target: base,
	}, nil
}

// Target returns the configuration at the sweep's current time.
func (s *Sweep) Target() weave.Config {
	return s.target
}

// Update advances the sweep by dt seconds and returns the new target.
func (s *Sweep) Update(dt float32) weave.Config {
	if s.Done {
		return s.target
	}
	val, finished := s.tween.Update(dt)
	*s.field.ptr(&s.target) = float64(val)
	s.Done = finished
	return s.target
}
