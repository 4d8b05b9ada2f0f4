package util

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

var imageExts = map[string]bool{".png": true, ".jpg": true, ".jpeg": true}

func EnsureDir(path string) error {
	return os.MkdirAll(path, 0o755)
}

// ListImages returns the image files directly inside dir, sorted by name.
// Only the extension is checked; decodability is left to the renderer.
func ListImages(dir string) ([]string, error) {
	ents, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, e := range ents {
		if e.IsDir() {
			continue
		}
		if imageExts[strings.ToLower(filepath.Ext(e.Name()))] {
			out = append(out, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(out)
	return out, nil
}
