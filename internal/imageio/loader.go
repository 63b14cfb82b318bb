// Package imageio loads source images into rasters and exports rendered
// frames.
package imageio

import (
	"bytes"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ftrvxmtrx/tga"
	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	"golang.org/x/image/webp"

	"tile-weaver/internal/raster"
)

type decodeFunc func(io.Reader) (image.Image, error)

// decoders is keyed by lowercase extension. Formats are chosen by name
// rather than sniffed because TGA has no magic number.
var decoders = map[string]decodeFunc{
	".png":  png.Decode,
	".jpg":  jpeg.Decode,
	".jpeg": jpeg.Decode,
	".gif":  gif.Decode,
	".bmp":  bmp.Decode,
	".webp": webp.Decode,
	".tga":  tga.Decode,
}

// IsImage reports whether path has a supported extension.
func IsImage(path string) bool {
	_, ok := decoders[strings.ToLower(filepath.Ext(path))]
	return ok
}

// Load reads and decodes an image file. When maxDim > 0, images larger than
// maxDim on either side are scaled down to fit.
func Load(path string, maxDim int) (*raster.Raster, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("imageio: read %s: %w", path, err)
	}

	img, err := Decode(bytes.NewReader(raw), filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("imageio: decode %s: %w", path, err)
	}

	if maxDim > 0 {
		img = Fit(img, maxDim)
	}
	return raster.FromNRGBA(img), nil
}

// Decode decodes r as the format named by ext (".png", "jpg", ...) into
// NRGBA.
func Decode(r io.Reader, ext string) (*image.NRGBA, error) {
	ext = strings.ToLower(ext)
	if ext != "" && ext[0] != '.' {
		ext = "." + ext
	}
	dec, ok := decoders[ext]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, ext)
	}
	img, err := dec(r)
	if err != nil {
		return nil, err
	}
	return toNRGBA(img), nil
}

// toNRGBA converts any image to NRGBA anchored at the origin.
func toNRGBA(src image.Image) *image.NRGBA {
	b := src.Bounds()
	if n, ok := src.(*image.NRGBA); ok && b.Min == (image.Point{}) {
		return n
	}
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	return dst
}
