package anim

import (
	"context"
	"errors"
	"sync"
	"time"

	"tile-weaver/internal/raster"
	"tile-weaver/internal/weave"
)

var (
	ErrNotLoaded = errors.New("anim: no source image loaded")
	ErrRunning   = errors.New("anim: driver already running")
)

// DriverConfig holds the redraw loop settings.
type DriverConfig struct {
	Rate        float64 // fraction per frame, default DefaultRate
	SnapEpsilon float64 // 0 disables snapping
	FPS         int     // ticker rate for Start, default 60
}

// Driver runs interpolate-then-render once per frame. Frame, SetTarget,
// Load and View are serialised, so a render is never re-entered.
type Driver struct {
	mu     sync.Mutex
	state  State
	cfg    DriverConfig
	engine *weave.Engine
	src    *raster.Raster
	out    *raster.Raster
	frames uint64

	// OnFrame, when set, is called after every render with the output
	// raster and the configuration it was rendered with. The raster is only
	// valid for the duration of the call.
	OnFrame func(out *raster.Raster, cfg weave.Config)

	cancel context.CancelFunc
	done   chan struct{}
}

// NewDriver returns a driver targeting target. No image is loaded.
func NewDriver(cfg DriverConfig, target weave.Config) *Driver {
	if cfg.Rate <= 0 || cfg.Rate > 1 {
		cfg.Rate = DefaultRate
	}
	if cfg.FPS <= 0 {
		cfg.FPS = 60
	}
	d := &Driver{
		cfg:    cfg,
		engine: weave.NewEngine(),
		out:    raster.New(0, 0),
	}
	d.state.Reset(target)
	return d
}

// Load installs a new source image and restarts the transition from the
// zeroed-effect variant of the current target.
func (d *Driver) Load(src *raster.Raster) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.src = src
	d.state.Reset(d.state.Target)
}

// Unload drops the source image. Later frames are skipped.
func (d *Driver) Unload() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.src = nil
}

// Loaded reports whether a source image is installed.
func (d *Driver) Loaded() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.src != nil
}

// SetTarget replaces the target configuration. It is clamped first.
func (d *Driver) SetTarget(target weave.Config) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.state.SetTarget(target.Clamp())
}

// State returns a copy of the current/target pair.
func (d *Driver) State() State {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

// Frames returns the number of frames rendered so far.
func (d *Driver) Frames() uint64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.frames
}

// Frame runs one interpolation step and renders. It returns false, doing
// nothing, when no image is loaded.
func (d *Driver) Frame() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.src == nil {
		return false
	}
	StepSnap(&d.state.Current, d.state.Target, d.cfg.Rate, d.cfg.SnapEpsilon)
	d.engine.Render(d.src, d.state.Current, d.out)
	d.frames++
	if d.OnFrame != nil {
		d.OnFrame(d.out, d.state.Current)
	}
	return true
}

// View calls fn with the latest output raster while holding the driver
// lock. fn must not call back into the driver.
func (d *Driver) View(fn func(out *raster.Raster)) {
	d.mu.Lock()
	defer d.mu.Unlock()
	fn(d.out)
}

// Snapshot returns a copy of the latest output raster.
func (d *Driver) Snapshot() *raster.Raster {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.out.Clone()
}

// Start runs Frame on a ticker until ctx is done or Stop is called.
func (d *Driver) Start(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.src == nil {
		return ErrNotLoaded
	}
	if d.done != nil {
		return ErrRunning
	}

	ctx, cancel := context.WithCancel(ctx)
	d.cancel = cancel
	d.done = make(chan struct{})
	interval := time.Second / time.Duration(d.cfg.FPS)

	go func(done chan struct{}) {
		defer close(done)
		defer d.release(done)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				d.Frame()
			}
		}
	}(d.done)
	return nil
}

// release clears the loop handles when the loop exits on its own, so that a
// cancelled parent context does not leave the driver marked as running.
func (d *Driver) release(done chan struct{}) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.done == done {
		d.cancel()
		d.cancel, d.done = nil, nil
	}
}

// Stop ends the loop started by Start and waits for it to exit. A frame in
// flight completes first. Stop is a no-op when the loop is not running.
func (d *Driver) Stop() {
	d.mu.Lock()
	cancel, done := d.cancel, d.done
	d.cancel, d.done = nil, nil
	d.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

// Running reports whether the ticker loop is active.
func (d *Driver) Running() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.done != nil
}
