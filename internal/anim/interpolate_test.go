package anim

import (
	"math"
	"testing"

	"github.com/tanema/gween/ease"

	"tile-weaver/internal/weave"
)

func TestStepMovesFraction(t *testing.T) {
	cur := weave.Config{TileSize: 10, HorizontalShift: 0, VerticalShift: 100, ScatterIntensity: 50, Opacity: 0}
	target := weave.Config{TileSize: 20, HorizontalShift: 100, VerticalShift: 0, ScatterIntensity: 50, Pattern: weave.Satin, Seed: 9, Opacity: 100}

	Step(&cur, target, 0.1)

	tests := []struct {
		name      string
		got, want float64
	}{
		{"TileSize", cur.TileSize, 11},
		{"HorizontalShift", cur.HorizontalShift, 10},
		{"VerticalShift", cur.VerticalShift, 90},
		{"ScatterIntensity", cur.ScatterIntensity, 50},
		{"Opacity", cur.Opacity, 10},
	}
	for _, tt := range tests {
		if math.Abs(tt.got-tt.want) > 1e-9 {
			t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.want)
		}
	}
	if cur.Pattern != weave.Satin || cur.Seed != 9 {
		t.Errorf("discrete fields = (%v, %d), want (satin, 9)", cur.Pattern, cur.Seed)
	}
}

func TestStepConvergesMonotonically(t *testing.T) {
	target := weave.Config{TileSize: 64, HorizontalShift: 150, VerticalShift: 3, ScatterIntensity: 80, Opacity: 40}
	starts := []weave.Config{
		{TileSize: 2},
		{TileSize: 200, HorizontalShift: 200, VerticalShift: 200, ScatterIntensity: 100, Opacity: 100},
		{TileSize: 63, HorizontalShift: 149, VerticalShift: 4, ScatterIntensity: 81, Opacity: 39},
	}
	for i, cur := range starts {
		prev := Distance(cur, target)
		steps := 0
		for prev > 1e-6 {
			Step(&cur, target, DefaultRate)
			d := Distance(cur, target)
			if d >= prev {
				t.Fatalf("start %d step %d: distance %v did not decrease from %v", i, steps, d, prev)
			}
			prev = d
			steps++
			if steps > 1000 {
				t.Fatalf("start %d: no convergence after 1000 steps (distance %v)", i, d)
			}
		}
	}
}

func TestStepSnapReachesTarget(t *testing.T) {
	cur := weave.Config{TileSize: 8}
	target := weave.Config{TileSize: 32, HorizontalShift: 120, VerticalShift: 60, ScatterIntensity: 25, Opacity: 100}
	for i := 0; i < 500 && cur != target; i++ {
		StepSnap(&cur, target, DefaultRate, 0.01)
	}
	if cur != target {
		t.Errorf("StepSnap did not converge exactly: %+v", cur)
	}
	if !Converged(cur, target, 0) {
		t.Error("Converged = false after exact convergence")
	}
}

func TestStepWithoutSnapNeverOvershoots(t *testing.T) {
	cur := weave.Config{HorizontalShift: 0}
	target := weave.Config{HorizontalShift: 1}
	for i := 0; i < 50; i++ {
		Step(&cur, target, DefaultRate)
		if cur.HorizontalShift > 1 {
			t.Fatalf("overshoot at step %d: %v", i, cur.HorizontalShift)
		}
	}
	if cur.HorizontalShift == 1 {
		t.Error("pure exponential decay reached the target exactly")
	}
}

func TestStateReset(t *testing.T) {
	var s State
	target := weave.Config{TileSize: 30, HorizontalShift: 50, VerticalShift: 40, ScatterIntensity: 10, Pattern: weave.Basket, Seed: 3}
	s.Reset(target)
	if s.Target != target {
		t.Errorf("Target = %+v, want %+v", s.Target, target)
	}
	if s.Current != target.Zeroed() {
		t.Errorf("Current = %+v, want zeroed target", s.Current)
	}

	next := target
	next.Seed = 4
	s.SetTarget(next)
	if s.Current.Seed != 3 {
		t.Error("SetTarget modified Current")
	}
}

func TestSweep(t *testing.T) {
	base := weave.DefaultConfig()
	sw, err := NewSweep(base, FieldScatterIntensity, 0, 100, 1, ease.Linear)
	if err != nil {
		t.Fatalf("NewSweep: %v", err)
	}
	if got := sw.Target().ScatterIntensity; got != 0 {
		t.Errorf("initial ScatterIntensity = %v, want 0", got)
	}
	mid := sw.Update(0.5)
	if math.Abs(mid.ScatterIntensity-50) > 1e-3 {
		t.Errorf("midpoint ScatterIntensity = %v, want 50", mid.ScatterIntensity)
	}
	if mid.TileSize != base.TileSize {
		t.Errorf("sweep changed TileSize to %v", mid.TileSize)
	}
	end := sw.Update(0.6)
	if !sw.Done || end.ScatterIntensity != 100 {
		t.Errorf("end = %v done=%v, want 100 done", end.ScatterIntensity, sw.Done)
	}
	if again := sw.Update(1); again != end {
		t.Error("Update after Done changed the target")
	}
}

func TestParseFieldAndEasing(t *testing.T) {
	if f, err := ParseField(" Tile_Size "); err != nil || f != FieldTileSize {
		t.Errorf("ParseField = %q, %v", f, err)
	}
	if _, err := ParseField("seed"); err == nil {
		t.Error("ParseField(seed) succeeded, want error")
	}
	if _, err := ParseEasing("in-out-quad"); err != nil {
		t.Errorf("ParseEasing(in-out-quad): %v", err)
	}
	if _, err := ParseEasing("wobble"); err == nil {
		t.Error("ParseEasing(wobble) succeeded, want error")
	}
	if _, err := NewSweep(weave.Config{}, Field("seed"), 0, 1, 1, nil); err == nil {
		t.Error("NewSweep accepted unknown field")
	}
}

func TestSettle(t *testing.T) {
	target := weave.Config{TileSize: 10, HorizontalShift: 100}
	if got := Settle(target, 0, DefaultRate, 0); got != target {
		t.Errorf("Settle(0 frames) = %+v, want target", got)
	}
	got := Settle(target, 1, DefaultRate, 0)
	if math.Abs(got.HorizontalShift-10) > 1e-9 {
		t.Errorf("Settle(1 frame) HorizontalShift = %v, want 10", got.HorizontalShift)
	}
	if got := Settle(target, 400, DefaultRate, 1e-3); got != target {
		t.Errorf("Settle(400 frames, snap) = %+v, want target", got)
	}
}
