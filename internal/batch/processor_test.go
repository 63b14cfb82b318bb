package batch

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"tile-weaver/internal/imageio"
	"tile-weaver/internal/raster"
	"tile-weaver/internal/weave"
)

func writeImage(t *testing.T, path string, w, h int) *raster.Raster {
	t.Helper()
	r := raster.New(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r.Set(x, y, uint8(x*9), uint8(y*9), 77, 255)
		}
	}
	if _, err := imageio.WriteFile(path, r, imageio.PNG); err != nil {
		t.Fatal(err)
	}
	return r
}

func TestScan(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "out")
	writeImage(t, filepath.Join(dir, "b.png"), 4, 4)
	writeImage(t, filepath.Join(dir, "sub", "a.png"), 4, 4)
	writeImage(t, filepath.Join(out, "old.png"), 4, 4)
	os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644)

	paths, err := Scan(dir, out)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	want := []string{filepath.Join(dir, "b.png"), filepath.Join(dir, "sub", "a.png")}
	if len(paths) != len(want) {
		t.Fatalf("Scan = %v, want %v", paths, want)
	}
	for i := range want {
		if paths[i] != want[i] {
			t.Errorf("paths[%d] = %q, want %q", i, paths[i], want[i])
		}
	}
}

func TestRunWeavesEveryImage(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(t.TempDir(), "renders")
	srcA := writeImage(t, filepath.Join(dir, "a.png"), 24, 16)
	writeImage(t, filepath.Join(dir, "nested", "b.png"), 10, 30)
	os.WriteFile(filepath.Join(dir, "broken.png"), []byte("junk"), 0644)

	wc := weave.Config{TileSize: 8, HorizontalShift: 8, Pattern: weave.Plain}
	cfg := Config{
		InputDir:  dir,
		OutputDir: out,
		Weave:     wc,
		Format:    imageio.PNG,
		Workers:   2,
		Progress:  &bytes.Buffer{},
	}
	paths, err := Scan(dir, out)
	if err != nil {
		t.Fatal(err)
	}
	results := Run(cfg, paths)
	if len(results) != 3 {
		t.Fatalf("len(results) = %d, want 3", len(results))
	}

	byInput := map[string]Result{}
	for _, r := range results {
		byInput[filepath.Base(r.Input)] = r
	}
	if r := byInput["broken.png"]; r.Success || r.Error == "" {
		t.Errorf("broken.png result = %+v, want failure", r)
	}
	if r := byInput["b.png"]; !r.Success || r.Output != filepath.Join(out, "nested", "b.png") {
		t.Errorf("b.png result = %+v", r)
	}

	a := byInput["a.png"]
	if !a.Success || a.Width != 24 || a.Height != 16 {
		t.Fatalf("a.png result = %+v", a)
	}
	got, err := imageio.Load(a.Output, 0)
	if err != nil {
		t.Fatalf("Load output: %v", err)
	}
	want := raster.New(0, 0)
	weave.NewEngine().Render(srcA, wc, want)
	if !got.Equal(want) {
		t.Error("batch output differs from a direct render")
	}

	manifest := filepath.Join(out, "manifest.json")
	if err := WriteManifest(manifest, cfg, results); err != nil {
		t.Fatalf("WriteManifest: %v", err)
	}
	data, err := os.ReadFile(manifest)
	if err != nil {
		t.Fatal(err)
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatalf("manifest JSON: %v", err)
	}
	if len(m.Images) != 3 || m.Weave.Pattern != weave.Plain {
		t.Errorf("manifest = %+v", m)
	}
}

func TestOutputName(t *testing.T) {
	tests := []struct {
		root, path, ext, want string
	}{
		{"/in", "/in/a.jpg", ".png", "a.png"},
		{"/in", "/in/x/y.tga", ".webp", filepath.Join("x", "y.webp")},
		{"/in", "/other/z.bmp", ".png", "z.png"},
	}
	for _, tt := range tests {
		if got := outputName(tt.root, tt.path, tt.ext); got != tt.want {
			t.Errorf("outputName(%q, %q) = %q, want %q", tt.root, tt.path, got, tt.want)
		}
	}
}
