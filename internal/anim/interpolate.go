// Package anim moves the rendered parameters smoothly toward the requested
// ones, one frame at a time.
package anim

import (
	"math"

	"tile-weaver/internal/weave"
)

// DefaultRate is the fraction of the remaining distance covered per frame.
const DefaultRate = 0.1

// State is the current/target configuration pair for one loaded image.
type State struct {
	Current weave.Config
	Target  weave.Config
}

// Reset starts a fresh transition toward target from its zeroed-effect
// variant, as on image (re)load.
func (s *State) Reset(target weave.Config) {
	s.Target = target
	s.Current = target.Zeroed()
}

// SetTarget replaces the target wholesale. Current is left untouched.
func (s *State) SetTarget(target weave.Config) {
	s.Target = target
}

// Step advances cur a fraction t of the way toward target.
func Step(cur *weave.Config, target weave.Config, t float64) {
	StepSnap(cur, target, t, 0)
}

// StepSnap is Step with exact convergence: a field is set to its target once
// it is closer than eps. Pattern and Seed switch immediately.
func StepSnap(cur *weave.Config, target weave.Config, t, eps float64) {
	approach(&cur.HorizontalShift, target.HorizontalShift, t, eps)
	approach(&cur.VerticalShift, target.VerticalShift, t, eps)
	approach(&cur.ScatterIntensity, target.ScatterIntensity, t, eps)
	approach(&cur.TileSize, target.TileSize, t, eps)
	approach(&cur.Opacity, target.Opacity, t, eps)
	cur.Pattern = target.Pattern
	cur.Seed = target.Seed
}

func approach(v *float64, target, t, eps float64) {
	d := target - *v
	if math.Abs(d) < eps {
		*v = target
		return
	}
	*v += t * d
}

// Converged reports whether every numeric field of cur is within eps of
// target and the discrete fields match.
func Converged(cur, target weave.Config, eps float64) bool {
	return Distance(cur, target) <= eps &&
		cur.Pattern == target.Pattern &&
		cur.Seed == target.Seed
}

// Distance is the largest absolute difference over the numeric fields.
func Distance(a, b weave.Config) float64 {
	d := math.Abs(a.HorizontalShift - b.HorizontalShift)
	d = math.Max(d, math.Abs(a.VerticalShift-b.VerticalShift))
	d = math.Max(d, math.Abs(a.ScatterIntensity-b.ScatterIntensity))
	d = math.Max(d, math.Abs(a.TileSize-b.TileSize))
	d = math.Max(d, math.Abs(a.Opacity-b.Opacity))
	return d
}

// Settle returns the configuration reached after frames steps starting from
// the zeroed-effect variant of target. frames <= 0 returns target itself.
func Settle(target weave.Config, frames int, t, eps float64) weave.Config {
	if frames <= 0 {
		return target
	}
	cur := target.Zeroed()
	for i := 0; i < frames; i++ {
		StepSnap(&cur, target, t, eps)
	}
	return cur
}
