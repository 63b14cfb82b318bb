package raster

import "image"

// CopyRect copies the w×h block at (sx, sy) in src to (dx, dy) in dst.
// The block is clipped against both rasters; the returned rectangle is the
// region of dst actually written (empty when nothing overlaps).
func CopyRect(dst *Raster, dx, dy int, src *Raster, sx, sy, w, h int) image.Rectangle {
	// Clip against the source.
	if sx < 0 {
		dx -= sx
		w += sx
		sx = 0
	}
	if sy < 0 {
		dy -= sy
		h += sy
		sy = 0
	}
	if sx+w > src.Width {
		w = src.Width - sx
	}
	if sy+h > src.Height {
		h = src.Height - sy
	}

	// Clip against the destination.
	if dx < 0 {
		sx -= dx
		w += dx
		dx = 0
	}
	if dy < 0 {
		sy -= dy
		h += dy
		dy = 0
	}
	if dx+w > dst.Width {
		w = dst.Width - dx
	}
	if dy+h > dst.Height {
		h = dst.Height - dy
	}

	if w <= 0 || h <= 0 {
		return image.Rectangle{}
	}

	rowLen := w * 4
	srcStride := src.Width * 4
	dstStride := dst.Width * 4
	for y := 0; y < h; y++ {
		si := (sy+y)*srcStride + sx*4
		di := (dy+y)*dstStride + dx*4
		copy(dst.Color[di:di+rowLen], src.Color[si:si+rowLen])
	}
	return image.Rect(dx, dy, dx+w, dy+h)
}
