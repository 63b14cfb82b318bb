package batch

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"tile-weaver/internal/imageio"
)

// Scan walks dir and returns every decodable image path, sorted. Files
// under skip (typically the output directory) are ignored.
func Scan(dir, skip string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if skip != "" && path != dir && sameDir(path, skip) {
				return filepath.SkipDir
			}
			return nil
		}
		if imageio.IsImage(path) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)
	return paths, nil
}

func sameDir(a, b string) bool {
	a, _ = filepath.Abs(a)
	b, _ = filepath.Abs(b)
	return strings.EqualFold(filepath.Clean(a), filepath.Clean(b))
}

// outputName maps an input path to its export file name, keeping the
// directory structure relative to root.
func outputName(root, path string, ext string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		rel = filepath.Base(path)
	}
	return strings.TrimSuffix(rel, filepath.Ext(rel)) + ext
}
