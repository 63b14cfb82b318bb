package batch

import (
	"fmt"
	"io"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"tile-weaver/internal/anim"
	"tile-weaver/internal/imageio"
	"tile-weaver/internal/raster"
	"tile-weaver/internal/weave"
)

// Config holds all shared settings for a batch run.
type Config struct {
	InputDir  string
	OutputDir string
	Weave     weave.Config
	Frames    int // interpolation frames before export, 0 renders the target
	Rate      float64
	Epsilon   float64
	MaxDim    int
	Format    imageio.Format
	Workers   int

	// Progress receives periodic status lines; nil disables reporting.
	Progress io.Writer
	Interval time.Duration
}

// Result holds the outcome of processing one image.
type Result struct {
	Input   string
	Output  string
	Width   int
	Height  int
	Success bool
	Error   string
}

// Run weaves every path using a worker pool. Each worker owns one engine.
func Run(cfg Config, paths []string) []Result {
	total := len(paths)
	results := make([]Result, total)
	var processed atomic.Int64

	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if cfg.Interval <= 0 {
		cfg.Interval = 2 * time.Second
	}
	rendered := anim.Settle(cfg.Weave, cfg.Frames, cfg.Rate, cfg.Epsilon)

	start := time.Now()

	// Progress reporter
	done := make(chan struct{})
	var reporter sync.WaitGroup
	if cfg.Progress != nil {
		reporter.Add(1)
		go func() {
			defer reporter.Done()
			ticker := time.NewTicker(cfg.Interval)
			defer ticker.Stop()
			for {
				select {
				case <-done:
					return
				case <-ticker.C:
					p := processed.Load()
					if p > 0 {
						elapsed := time.Since(start).Seconds()
						rate := float64(p) / elapsed
						fmt.Fprintf(cfg.Progress, "  [%d/%d] %.1f images/sec\n", p, total, rate)
					}
				}
			}
		}()
	}

	// Worker pool
	jobs := make(chan int, cfg.Workers*2)
	var wg sync.WaitGroup

	for w := 0; w < cfg.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			engine := weave.NewEngine()
			dst := raster.New(0, 0)
			for idx := range jobs {
				results[idx] = processImage(cfg, engine, dst, rendered, paths[idx])
				processed.Add(1)
			}
		}()
	}

	// Send work
	for i := range paths {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	close(done)
	reporter.Wait()

	return results
}

func processImage(cfg Config, engine *weave.Engine, dst *raster.Raster, wc weave.Config, path string) Result {
	res := Result{Input: path}

	src, err := imageio.Load(path, cfg.MaxDim)
	if err != nil {
		res.Error = err.Error()
		return res
	}
	res.Width, res.Height = src.Width, src.Height

	engine.Render(src, wc, dst)

	out := filepath.Join(cfg.OutputDir, outputName(cfg.InputDir, path, cfg.Format.Ext()))
	if _, err := imageio.WriteFile(out, dst, cfg.Format); err != nil {
		res.Error = err.Error()
		return res
	}

	res.Output = out
	res.Success = true
	return res
}
