package raster

import "image"

// Raster holds pixels as one flat slice for cache locality.
type Raster struct {
	Width  int
	Height int
	Color  []uint8 // RGBA interleaved, non-premultiplied, len = W*H*4
}

// New allocates a zeroed (transparent black) raster.
func New(w, h int) *Raster {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return &Raster{
		Width:  w,
		Height: h,
		Color:  make([]uint8, w*h*4),
	}
}

// FromNRGBA copies an NRGBA image into a new raster whose origin is the
// image's Min point.
func FromNRGBA(img *image.NRGBA) *Raster {
	b := img.Bounds()
	r := New(b.Dx(), b.Dy())
	rowLen := r.Width * 4
	for y := 0; y < r.Height; y++ {
		off := img.PixOffset(b.Min.X, b.Min.Y+y)
		copy(r.Color[y*rowLen:(y+1)*rowLen], img.Pix[off:off+rowLen])
	}
	return r
}

// NRGBA wraps the raster as an image without copying. Writes through the
// image are visible in the raster.
func (r *Raster) NRGBA() *image.NRGBA {
	return &image.NRGBA{
		Pix:    r.Color,
		Stride: r.Width * 4,
		Rect:   image.Rect(0, 0, r.Width, r.Height),
	}
}

// Bounds returns the raster rectangle anchored at the origin.
func (r *Raster) Bounds() image.Rectangle {
	return image.Rect(0, 0, r.Width, r.Height)
}

// SameSize reports whether r and o have identical dimensions.
func (r *Raster) SameSize(o *Raster) bool {
	return r.Width == o.Width && r.Height == o.Height
}

// Resize reallocates the color buffer when the dimensions change and reports
// whether it did. Contents are undefined after a reallocation.
func (r *Raster) Resize(w, h int) bool {
	if r.Width == w && r.Height == h && len(r.Color) == w*h*4 {
		return false
	}
	n := w * h * 4
	if cap(r.Color) >= n {
		r.Color = r.Color[:n]
		clear(r.Color)
	} else {
		r.Color = make([]uint8, n)
	}
	r.Width = w
	r.Height = h
	return true
}

// CopyFrom resizes r to match src and copies every pixel.
func (r *Raster) CopyFrom(src *Raster) {
	r.Resize(src.Width, src.Height)
	copy(r.Color, src.Color)
}

// Clone returns a deep copy.
func (r *Raster) Clone() *Raster {
	c := New(r.Width, r.Height)
	copy(c.Color, r.Color)
	return c
}

// At returns the pixel at (x, y). Out-of-range coordinates yield zero.
func (r *Raster) At(x, y int) (red, g, b, a uint8) {
	if x < 0 || y < 0 || x >= r.Width || y >= r.Height {
		return 0, 0, 0, 0
	}
	i := (y*r.Width + x) * 4
	return r.Color[i], r.Color[i+1], r.Color[i+2], r.Color[i+3]
}

// Set writes the pixel at (x, y). Out-of-range coordinates are ignored.
func (r *Raster) Set(x, y int, red, g, b, a uint8) {
	if x < 0 || y < 0 || x >= r.Width || y >= r.Height {
		return
	}
	i := (y*r.Width + x) * 4
	r.Color[i] = red
	r.Color[i+1] = g
	r.Color[i+2] = b
	r.Color[i+3] = a
}

// Fill sets every pixel inside rect (clipped) to one color.
func (r *Raster) Fill(rect image.Rectangle, red, g, b, a uint8) {
	rect = rect.Intersect(r.Bounds())
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			i := (y*r.Width + x) * 4
			r.Color[i] = red
			r.Color[i+1] = g
			r.Color[i+2] = b
			r.Color[i+3] = a
		}
	}
}

// Equal reports whether both rasters have the same size and bytes.
func (r *Raster) Equal(o *Raster) bool {
	if !r.SameSize(o) || len(r.Color) != len(o.Color) {
		return false
	}
	for i := range r.Color {
		if r.Color[i] != o.Color[i] {
			return false
		}
	}
	return true
}

// Checksum returns the per-channel sums of every pixel.
func (r *Raster) Checksum() [4]uint64 {
	var sum [4]uint64
	for i := 0; i+3 < len(r.Color); i += 4 {
		sum[0] += uint64(r.Color[i])
		sum[1] += uint64(r.Color[i+1])
		sum[2] += uint64(r.Color[i+2])
		sum[3] += uint64(r.Color[i+3])
	}
	return sum
}
