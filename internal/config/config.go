package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"tile-weaver/internal/anim"
	"tile-weaver/internal/imageio"
	"tile-weaver/internal/weave"
)

// Config holds all configurable paths, weave parameters and run settings.
type Config struct {
	// Paths
	Input     string `json:"input"`
	InputDir  string `json:"input_dir"`
	OutputDir string `json:"output_dir"`

	// Weave parameters (the target configuration)
	Weave weave.Config `json:"weave"`

	// Animation settings
	Rate        float64 `json:"rate"`
	SnapEpsilon float64 `json:"snap_epsilon"`
	FPS         int     `json:"fps"`
	Frames      int     `json:"frames"`

	// Export settings
	Format string `json:"format"`
	Prefix string `json:"prefix"`

	MaxDim  int `json:"max_dim"`
	Workers int `json:"workers"`
}

// Default returns a config with every field at its default.
func Default() Config {
	var c Config
	c.Weave = weave.DefaultConfig()
	c.Resolve(Flags{})
	return c
}

// Load reads a JSON config file and returns Config. Weave fields not set in
// the file keep the values of weave.DefaultConfig; all other fields keep
// their zero values until Resolve.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	cfg := Config{Weave: weave.DefaultConfig()}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// Flags holds CLI flag values that override config file settings. Pointer
// fields distinguish "not given" from an explicit zero.
type Flags struct {
	Input     string
	InputDir  string
	OutputDir string
	Format    string
	Prefix    string
	Frames    int
	Workers   int
	MaxDim    int

	TileSize         *float64
	HorizontalShift  *float64
	VerticalShift    *float64
	ScatterIntensity *float64
	Pattern          string
	Seed             *int64
	Opacity          *float64
}

// Resolve applies flag overrides, fills defaults and clamps the weave
// parameters into their valid ranges.
func (c *Config) Resolve(flags Flags) {
	// CLI flags override config file
	if flags.Input != "" {
		c.Input = flags.Input
	}
	if flags.InputDir != "" {
		c.InputDir = flags.InputDir
	}
	if flags.OutputDir != "" {
		c.OutputDir = flags.OutputDir
	}
	if flags.Format != "" {
		c.Format = flags.Format
	}
	if flags.Prefix != "" {
		c.Prefix = flags.Prefix
	}
	if flags.Frames > 0 {
		c.Frames = flags.Frames
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}
	if flags.MaxDim > 0 {
		c.MaxDim = flags.MaxDim
	}
	setf(&c.Weave.TileSize, flags.TileSize)
	setf(&c.Weave.HorizontalShift, flags.HorizontalShift)
	setf(&c.Weave.VerticalShift, flags.VerticalShift)
	setf(&c.Weave.ScatterIntensity, flags.ScatterIntensity)
	setf(&c.Weave.Opacity, flags.Opacity)
	if flags.Seed != nil {
		c.Weave.Seed = *flags.Seed
	}
	if flags.Pattern != "" {
		if p, err := weave.ParsePattern(flags.Pattern); err == nil {
			c.Weave.Pattern = p
		}
	}

	// Resolve relative input/output paths against the working directory
	if c.OutputDir == "" {
		c.OutputDir = "weave-output"
	}
	c.OutputDir = absPath(c.OutputDir)
	if c.Input != "" {
		c.Input = absPath(c.Input)
	}
	if c.InputDir != "" {
		c.InputDir = absPath(c.InputDir)
	}

	// Defaults for run settings
	if c.Rate <= 0 || c.Rate > 1 {
		c.Rate = anim.DefaultRate
	}
	if c.SnapEpsilon < 0 {
		c.SnapEpsilon = 0
	}
	if c.FPS <= 0 {
		c.FPS = 60
	}
	if c.Frames < 0 {
		c.Frames = 0
	}
	if _, err := imageio.ParseFormat(c.Format); err != nil {
		c.Format = string(imageio.PNG)
	}
	if c.Prefix == "" {
		c.Prefix = "weave"
	}
	if c.MaxDim < 0 {
		c.MaxDim = 0
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}

	c.Weave = c.Weave.Clamp()
}

// Validate reports settings that Resolve cannot repair.
func (c *Config) Validate() error {
	if c.Input == "" && c.InputDir == "" {
		return fmt.Errorf("config: no input image or input directory")
	}
	if c.Input != "" && c.InputDir != "" {
		return fmt.Errorf("config: input and input_dir are mutually exclusive")
	}
	return nil
}

// ExportFormat returns the resolved export format.
func (c *Config) ExportFormat() imageio.Format {
	f, err := imageio.ParseFormat(c.Format)
	if err != nil {
		return imageio.PNG
	}
	return f
}

// DriverConfig returns the animation settings for anim.NewDriver.
func (c *Config) DriverConfig() anim.DriverConfig {
	return anim.DriverConfig{
		Rate:        c.Rate,
		SnapEpsilon: c.SnapEpsilon,
		FPS:         c.FPS,
	}
}

func setf(dst *float64, v *float64) {
	if v != nil {
		*dst = *v
	}
}

func absPath(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}
