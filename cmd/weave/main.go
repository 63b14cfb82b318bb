package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"tile-weaver/internal/anim"
	"tile-weaver/internal/batch"
	"tile-weaver/internal/config"
	"tile-weaver/internal/imageio"
	"tile-weaver/internal/raster"
	"tile-weaver/internal/weave"
)

func main() {
	// CLI flags
	configFile := flag.String("config", "", "Path to config.json file")
	input := flag.String("input", "", "Source image to weave")
	inputDir := flag.String("input-dir", "", "Weave every image in this directory")
	outputDir := flag.String("output", "", "Output directory (default: weave-output)")
	format := flag.String("format", "", "Export format: png or webp (default: png)")
	prefix := flag.String("prefix", "", "Export file name prefix (default: weave)")
	frames := flag.Int("frames", 0, "Interpolation frames before export (0 renders the target directly)")
	all := flag.Bool("all", false, "Export every interpolation frame, not just the last")
	workers := flag.Int("workers", 0, "Number of worker goroutines for -input-dir (default: NumCPU)")
	maxDim := flag.Int("max-dim", 0, "Scale inputs down so neither side exceeds this")
	sweep := flag.String("sweep", "", "Animate one field as field:from:to:seconds, e.g. horizontal_shift:0:120:2")
	easing := flag.String("ease", "in-out-quad", "Easing for -sweep ("+strings.Join(anim.EasingNames(), ", ")+")")

	tile := flag.Float64("tile", 0, "Tile edge length in pixels (>= 2)")
	hshift := flag.Float64("hshift", 0, "Maximum horizontal displacement (0-200)")
	vshift := flag.Float64("vshift", 0, "Maximum vertical displacement (0-200)")
	scatter := flag.Float64("scatter", 0, "Percentage of tiles taking an extra jump (0-100)")
	pattern := flag.String("pattern", "", "Weave pattern: plain, twill, satin or basket")
	seed := flag.Int64("seed", 0, "Scatter seed")
	opacity := flag.Float64("opacity", 0, "Opacity passed through to presentation (0-100)")

	flag.Parse()

	// Load config
	cfg := config.Config{Weave: weave.DefaultConfig()}
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	if *pattern != "" {
		if _, err := weave.ParsePattern(*pattern); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}
	if *format != "" {
		if _, err := imageio.ParseFormat(*format); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	// CLI flags override config file; numeric weave flags only when given.
	flags := config.Flags{
		Input:     *input,
		InputDir:  *inputDir,
		OutputDir: *outputDir,
		Format:    *format,
		Prefix:    *prefix,
		Frames:    *frames,
		Workers:   *workers,
		MaxDim:    *maxDim,
		Pattern:   *pattern,
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "tile":
			flags.TileSize = tile
		case "hshift":
			flags.HorizontalShift = hshift
		case "vshift":
			flags.VerticalShift = vshift
		case "scatter":
			flags.ScatterIntensity = scatter
		case "seed":
			flags.Seed = seed
		case "opacity":
			flags.Opacity = opacity
		}
	})
	cfg.Resolve(flags)

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v. Use -input or -input-dir.\n", err)
		os.Exit(1)
	}

	var sw *anim.Sweep
	if *sweep != "" {
		var err error
		sw, err = parseSweep(cfg.Weave, *sweep, *easing)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	w := cfg.Weave
	fmt.Printf("Tile weave: pattern=%s tile=%d shift=(%.1f, %.1f) scatter=%.1f%% seed=%d\n",
		w.Pattern, w.EffectiveTileSize(), w.HorizontalShift, w.VerticalShift, w.ScatterIntensity, w.Seed)
	fmt.Printf("Output: %s (%s)\n", cfg.OutputDir, cfg.ExportFormat())
	fmt.Println("------------------------------------------------------------")

	start := time.Now()
	var failed bool
	if cfg.InputDir != "" {
		failed = runBatch(cfg)
	} else {
		failed = runSingle(cfg, sw, *all)
	}

	fmt.Println("------------------------------------------------------------")
	fmt.Printf("Done in %.1fs\n", time.Since(start).Seconds())

	if failed {
		os.Exit(1)
	}
}

func runSingle(cfg config.Config, sw *anim.Sweep, all bool) bool {
	src, err := imageio.Load(cfg.Input, cfg.MaxDim)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return true
	}
	fmt.Printf("Source: %s (%dx%d)\n", cfg.Input, src.Width, src.Height)
	cols, rows := weave.GridSize(src.Width, src.Height, cfg.Weave)
	fmt.Printf("Grid: %dx%d tiles\n", cols, rows)

	format := cfg.ExportFormat()
	stamp := time.Now()

	// Frames == 0 renders the target directly, as a fully settled frame.
	if cfg.Frames == 0 && sw == nil {
		dst := raster.New(0, 0)
		weave.NewEngine().Render(src, cfg.Weave, dst)
		return export(cfg, dst, cfg.Prefix, format, stamp)
	}

	frames := cfg.Frames
	if frames == 0 {
		frames = cfg.FPS * 2
	}

	target := cfg.Weave
	if sw != nil {
		target = sw.Target()
	}
	driver := anim.NewDriver(cfg.DriverConfig(), target)
	driver.Load(src)

	var failed bool
	if all {
		n := 0
		driver.OnFrame = func(out *raster.Raster, _ weave.Config) {
			n++
			if export(cfg, out, fmt.Sprintf("%s-%04d", cfg.Prefix, n), format, stamp) {
				failed = true
			}
		}
	}

	dt := float32(1) / float32(cfg.FPS)
	for i := 0; i < frames; i++ {
		if sw != nil {
			driver.SetTarget(sw.Update(dt))
		}
		driver.Frame()
	}

	st := driver.State()
	fmt.Printf("Frames: %d, remaining distance to target: %.3f\n", driver.Frames(), anim.Distance(st.Current, st.Target))

	if !all {
		failed = export(cfg, driver.Snapshot(), cfg.Prefix, format, stamp)
	}
	return failed
}

func export(cfg config.Config, r *raster.Raster, prefix string, format imageio.Format, now time.Time) bool {
	path, err := imageio.Export(cfg.OutputDir, prefix, r, format, now)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return true
	}
	fmt.Printf("Wrote: %s\n", path)
	return false
}

func runBatch(cfg config.Config) bool {
	paths, err := batch.Scan(cfg.InputDir, cfg.OutputDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error scanning %s: %v\n", cfg.InputDir, err)
		return true
	}
	if len(paths) == 0 {
		fmt.Println("No images to weave.")
		return false
	}
	fmt.Printf("Images: %d, Workers: %d\n", len(paths), cfg.Workers)

	batchCfg := batch.Config{
		InputDir:  cfg.InputDir,
		OutputDir: cfg.OutputDir,
		Weave:     cfg.Weave,
		Frames:    cfg.Frames,
		Rate:      cfg.Rate,
		Epsilon:   cfg.SnapEpsilon,
		MaxDim:    cfg.MaxDim,
		Format:    cfg.ExportFormat(),
		Workers:   cfg.Workers,
		Progress:  os.Stdout,
	}
	results := batch.Run(batchCfg, paths)

	// Count results
	success := 0
	var errors []batch.Result
	for _, r := range results {
		if r.Success {
			success++
		} else {
			errors = append(errors, r)
		}
	}
	fmt.Printf("Woven: %d/%d\n", success, len(paths))

	if len(errors) > 0 {
		fmt.Printf("\nFailed (%d):\n", len(errors))
		limit := min(20, len(errors))
		for _, e := range errors[:limit] {
			fmt.Printf("  %s: %s\n", e.Input, e.Error)
		}
	}

	// Write manifest
	manifestPath := filepath.Join(cfg.OutputDir, "manifest.json")
	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	if err := batch.WriteManifest(manifestPath, batchCfg, results); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: manifest write failed: %v\n", err)
	} else {
		fmt.Printf("Manifest: %s\n", manifestPath)
	}

	return len(errors) > 0
}

// parseSweep reads "field:from:to:seconds".
func parseSweep(base weave.Config, spec, easing string) (*anim.Sweep, error) {
	parts := strings.Split(spec, ":")
	if len(parts) != 4 {
		return nil, fmt.Errorf("sweep %q: want field:from:to:seconds", spec)
	}
	field, err := anim.ParseField(parts[0])
	if err != nil {
		return nil, err
	}
	var nums [3]float64
	for i, s := range parts[1:] {
		nums[i], err = strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, fmt.Errorf("sweep %q: %w", spec, err)
		}
	}
	if nums[2] <= 0 {
		return nil, fmt.Errorf("sweep %q: duration must be positive", spec)
	}
	fn, err := anim.ParseEasing(easing)
	if err != nil {
		return nil, err
	}
	return anim.NewSweep(base, field, nums[0], nums[1], float32(nums[2]), fn)
}
