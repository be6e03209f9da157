package batch

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Scan lists the capture files under dir in path order. Recursive
// descends into subdirectories.
func Scan(dir string, recursive bool) ([]string, error) {
	if !recursive {
		entries, err := os.ReadDir(dir)
		if err != nil {
			return nil, err
		}
		var paths []string
		for _, e := range entries {
			if !e.IsDir() && isCapture(e.Name()) {
				paths = append(paths, filepath.Join(dir, e.Name()))
			}
		}
		return paths, nil
	}

	var paths []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && isCapture(path) {
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

// isCapture matches the replay extension case-insensitively.
func isCapture(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".slp")
}
