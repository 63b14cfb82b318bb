package weave

import (
	"encoding/json"
	"testing"
)

func TestFactors(t *testing.T) {
	tests := []struct {
		pattern  Pattern
		col, row int
		wantX    float64
		wantY    float64
	}{
		{Plain, 0, 0, 1, 1},
		{Plain, 1, 0, 1, -1},
		{Plain, 0, 1, -1, 1},
		{Plain, 3, 2, 1, -1},
		{Twill, 0, 0, -2.25, -2.25},
		{Twill, 1, 2, 0.75, -0.75},
		{Twill, 3, 7, 2.25, 2.25},
		{Satin, 0, 0, -2, -2},
		{Satin, 1, 2, -1, 1},
		{Satin, 3, 4, 0, 2},
		{Basket, 0, 0, 1, 1},
		{Basket, 1, 2, -1, 1},
		{Basket, 2, 3, -1, -1},
		{Basket, 3, 4, 1, -1},
	}
	for _, tt := range tests {
		x, y := tt.pattern.Factors(tt.col, tt.row)
		if x != tt.wantX || y != tt.wantY {
			t.Errorf("%v.Factors(%d, %d) = (%v, %v), want (%v, %v)",
				tt.pattern, tt.col, tt.row, x, y, tt.wantX, tt.wantY)
		}
	}
}

func TestParsePattern(t *testing.T) {
	tests := []struct {
		in   string
		want Pattern
		ok   bool
	}{
		{"plain", Plain, true},
		{"Twill", Twill, true},
		{" satin ", Satin, true},
		{"BASKET", Basket, true},
		{"herringbone", Plain, false},
		{"", Plain, false},
	}
	for _, tt := range tests {
		got, err := ParsePattern(tt.in)
		if (err == nil) != tt.ok {
			t.Errorf("ParsePattern(%q) err = %v, want ok=%v", tt.in, err, tt.ok)
			continue
		}
		if got != tt.want {
			t.Errorf("ParsePattern(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestPatternNextCycles(t *testing.T) {
	p := Plain
	for i := 0; i < len(Patterns); i++ {
		if p != Patterns[i] {
			t.Fatalf("step %d = %v, want %v", i, p, Patterns[i])
		}
		p = p.Next()
	}
	if p != Plain {
		t.Errorf("after full cycle = %v, want plain", p)
	}
}

func TestConfigJSON(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Pattern = Satin
	data, err := json.Marshal(cfg)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var back Config
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if back != cfg {
		t.Errorf("round trip = %+v, want %+v", back, cfg)
	}

	if err := json.Unmarshal([]byte(`{"pattern":"zigzag"}`), &back); err == nil {
		t.Error("unknown pattern accepted")
	}
}

func TestClamp(t *testing.T) {
	c := Config{
		TileSize:         0,
		HorizontalShift:  -5,
		VerticalShift:    500,
		ScatterIntensity: 150,
		Pattern:          Pattern(9),
		Opacity:          -1,
	}.Clamp()
	if c.TileSize != MinTileSize {
		t.Errorf("TileSize = %v, want %v", c.TileSize, MinTileSize)
	}
	if c.HorizontalShift != 0 || c.VerticalShift != MaxShift {
		t.Errorf("shifts = (%v, %v), want (0, %v)", c.HorizontalShift, c.VerticalShift, MaxShift)
	}
	if c.ScatterIntensity != MaxScatter {
		t.Errorf("ScatterIntensity = %v, want %v", c.ScatterIntensity, MaxScatter)
	}
	if c.Pattern != Plain {
		t.Errorf("Pattern = %v, want plain", c.Pattern)
	}
	if c.Opacity != 0 {
		t.Errorf("Opacity = %v, want 0", c.Opacity)
	}
}

func TestEffectiveTileSize(t *testing.T) {
	tests := []struct {
		in   float64
		want int
	}{
		{-3, 2}, {0, 2}, {1.4, 2}, {2.5, 3}, {39.6, 40}, {64, 64},
	}
	for _, tt := range tests {
		got := Config{TileSize: tt.in}.EffectiveTileSize()
		if got != tt.want {
			t.Errorf("EffectiveTileSize(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestZeroedKeepsDiscreteFields(t *testing.T) {
	c := Config{TileSize: 12, HorizontalShift: 3, VerticalShift: 4, ScatterIntensity: 5, Pattern: Twill, Seed: 7, Opacity: 50}
	z := c.Zeroed()
	if z.HorizontalShift != 0 || z.VerticalShift != 0 || z.ScatterIntensity != 0 {
		t.Errorf("Zeroed effect fields = %+v", z)
	}
	if z.TileSize != 12 || z.Pattern != Twill || z.Seed != 7 || z.Opacity != 50 {
		t.Errorf("Zeroed dropped discrete fields: %+v", z)
	}
	if !z.Negligible() {
		t.Error("zeroed config is not negligible")
	}
}
