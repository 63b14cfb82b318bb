package weave

import (
	"image"
	"math"

	"tile-weaver/internal/raster"
)

// Placement describes where one tile lands.
type Placement struct {
	Col, Row int
	Src      image.Rectangle // source rectangle, clipped to the raster

	// PreX, PreY is the wrapped destination origin before scatter.
	PreX, PreY int
	// DestX, DestY is the final destination origin.
	DestX, DestY int
	Jump         Direction
}

// Wraps reports whether the destination rectangle crosses the right or
// bottom edge of a w×h raster.
func (p Placement) Wraps(w, h int) bool {
	return p.DestX+p.Src.Dx() > w || p.DestY+p.Src.Dy() > h
}

// Engine renders the tile weave. It keeps a read buffer holding an
// unmodified copy of the source, reused across frames.
//
// An Engine is not safe for concurrent use.
type Engine struct {
	read *raster.Raster
}

// NewEngine returns an engine with an empty read buffer.
func NewEngine() *Engine {
	return &Engine{read: raster.New(0, 0)}
}

// Render writes the weave of src under cfg into dst. dst and the read buffer
// are reallocated when their size differs from src. dst may alias src.
//
// cfg is assumed to be clamped; see Config.Clamp.
func (e *Engine) Render(src *raster.Raster, cfg Config, dst *raster.Raster) {
	if e.read == nil {
		e.read = raster.New(0, 0)
	}

	if cfg.Negligible() {
		if dst != src {
			dst.CopyFrom(src)
		}
		return
	}

	// Snapshot first so overlapping writes never feed later reads.
	e.read.CopyFrom(src)
	read := e.read

	dst.Resize(read.Width, read.Height)
	clear(dst.Color)

	w, h := read.Width, read.Height
	forEachPlacement(w, h, cfg, func(p Placement) {
		composite(dst, read, p)
	})
}

// Plan returns the placement of every tile of a w×h raster under cfg, in
// row-major order. It performs no pixel work.
func Plan(w, h int, cfg Config) []Placement {
	if w <= 0 || h <= 0 {
		return nil
	}
	ts := cfg.EffectiveTileSize()
	out := make([]Placement, 0, ceilDiv(w, ts)*ceilDiv(h, ts))
	forEachPlacement(w, h, cfg, func(p Placement) {
		out = append(out, p)
	})
	return out
}

// GridSize returns the column and row counts for a w×h raster.
func GridSize(w, h int, cfg Config) (cols, rows int) {
	ts := cfg.EffectiveTileSize()
	return ceilDiv(w, ts), ceilDiv(h, ts)
}

func forEachPlacement(w, h int, cfg Config, fn func(Placement)) {
	if w <= 0 || h <= 0 {
		return
	}
	ts := cfg.EffectiveTileSize()
	cols, rows := ceilDiv(w, ts), ceilDiv(h, ts)
	fw, fh := float64(w), float64(h)

	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			srcX, srcY := col*ts, row*ts
			src := image.Rect(srcX, srcY, min(srcX+ts, w), min(srcY+ts, h))

			xf, yf := cfg.Pattern.Factors(col, row)
			shiftX := cfg.HorizontalShift * xf
			shiftY := cfg.VerticalShift * yf

			p := Placement{
				Col:  col,
				Row:  row,
				Src:  src,
				PreX: wrapf(float64(srcX)+shiftX, fw, w),
				PreY: wrapf(float64(srcY)+shiftY, fh, h),
			}
			p.DestX, p.DestY = p.PreX, p.PreY

			p.Jump = Scatter(col, row, cfg.Seed, cfg.ScatterIntensity)
			switch p.Jump {
			case JumpRight:
				p.DestX = (p.DestX + ts) % w
			case JumpDown:
				p.DestY = (p.DestY + ts) % h
			}

			fn(p)
		}
	}
}

// composite copies one tile, splitting it across the toroidal seam when the
// destination rectangle runs past the right or bottom edge.
func composite(dst, read *raster.Raster, p Placement) {
	tw, th := p.Src.Dx(), p.Src.Dy()
	w, h := dst.Width, dst.Height

	if !p.Wraps(w, h) {
		raster.CopyRect(dst, p.DestX, p.DestY, read, p.Src.Min.X, p.Src.Min.Y, tw, th)
		return
	}

	bounds := dst.Bounds()
	for _, oy := range [2]int{0, -h} {
		for _, ox := range [2]int{0, -w} {
			x, y := p.DestX+ox, p.DestY+oy
			if !image.Rect(x, y, x+tw, y+th).Overlaps(bounds) {
				continue
			}
			raster.CopyRect(dst, x, y, read, p.Src.Min.X, p.Src.Min.Y, tw, th)
		}
	}
}

// wrapf maps v onto [0, n) toroidally and truncates to the pixel grid.
func wrapf(v, fn float64, n int) int {
	m := math.Mod(math.Mod(v, fn)+fn, fn)
	i := int(math.Floor(m))
	if i >= n {
		i = 0
	}
	return i
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}
