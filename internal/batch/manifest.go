package batch

import (
	"encoding/json"
	"os"

	"tile-weaver/internal/weave"
)

// ManifestEntry represents one image in the output manifest.
type ManifestEntry struct {
	Input  string `json:"input"`
	Output string `json:"output,omitempty"`
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
	Error  string `json:"error,omitempty"`
}

// Manifest lists the weave parameters and every processed image.
type Manifest struct {
	Weave  weave.Config    `json:"weave"`
	Frames int             `json:"frames"`
	Images []ManifestEntry `json:"images"`
}

// WriteManifest writes manifest.json describing a finished run.
func WriteManifest(path string, cfg Config, results []Result) error {
	m := Manifest{
		Weave:  cfg.Weave,
		Frames: cfg.Frames,
		Images: make([]ManifestEntry, len(results)),
	}
	for i, r := range results {
		m.Images[i] = ManifestEntry{
			Input:  r.Input,
			Output: r.Output,
			Width:  r.Width,
			Height: r.Height,
			Error:  r.Error,
		}
	}

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
