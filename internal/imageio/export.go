package imageio

import (
	"errors"
	"fmt"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/HugoSmits86/nativewebp"

	"tile-weaver/internal/raster"
)

// ErrUnknownFormat is returned for image formats this package cannot handle.
var ErrUnknownFormat = errors.New("imageio: unknown image format")

// Format is a lossless export encoding.
type Format string

const (
	PNG  Format = "png"
	WebP Format = "webp"
)

// ParseFormat accepts "png" or "webp", case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case PNG, WebP:
		return f, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// Ext returns the file extension including the dot.
func (f Format) Ext() string {
	return "." + string(f)
}

// TimestampLayout names exported files; millisecond resolution keeps
// rapid exports distinct.
const TimestampLayout = "20060102-150405.000"

// FileName builds "<prefix>-<timestamp><ext>".
func FileName(prefix string, f Format, now time.Time) string {
	if prefix == "" {
		prefix = "weave"
	}
	return fmt.Sprintf("%s-%s%s", prefix, now.Format(TimestampLayout), f.Ext())
}

// Encode writes r to w in format f.
func Encode(w io.Writer, r *raster.Raster, f Format) error {
	img := r.NRGBA()
	switch f {
	case PNG:
		return png.Encode(w, img)
	case WebP:
		return nativewebp.Encode(w, img, nil)
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, string(f))
}

// Export writes r into dir under a timestamp-derived name and returns the
// path written.
func Export(dir, prefix string, r *raster.Raster, f Format, now time.Time) (string, error) {
	return WriteFile(filepath.Join(dir, FileName(prefix, f, now)), r, f)
}

// WriteFile encodes r to path, creating parent directories.
func WriteFile(path string, r *raster.Raster, f Format) (string, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", fmt.Errorf("imageio: mkdir %s: %w", filepath.Dir(path), err)
	}
	out, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("imageio: create %s: %w", path, err)
	}
	if err := Encode(out, r, f); err != nil {
		out.Close()
		return "", fmt.Errorf("imageio: encode %s: %w", path, err)
	}
	if err := out.Close(); err != nil {
		return "", fmt.Errorf("imageio: close %s: %w", path, err)
	}
	return path, nil
}
