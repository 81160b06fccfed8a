// Package scan enumerates the filesystem entities the resolver works on and
// digs embedded XMP packets out of image files. It does no matching itself.
package scan

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Subfolders returns the immediate sub-directories of base, sorted by name.
// The reserved output directory name is skipped so a previous run's output
// is never treated as a person folder.
func Subfolders(base, reserved string) ([]string, error) {
	entries, err := os.ReadDir(base)
	if err != nil {
		return nil, fmt.Errorf("reading base folder: %w", err)
	}

	var dirs []string
	for _, e := range entries {
		if !e.IsDir() || e.Name() == reserved {
			continue
		}
		dirs = append(dirs, filepath.Join(base, e.Name()))
	}
	sort.Strings(dirs)
	return dirs, nil
}

// Images walks root recursively and returns every file whose extension
// passes isImage, in lexical order.
func Images(root string, isImage func(ext string) bool) ([]string, error) {
	var images []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if isImage(strings.ToLower(filepath.Ext(path))) {
			images = append(images, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", root, err)
	}
	return images, nil
}

// DirImages returns the image files directly inside dir (no recursion),
// sorted by name.
func DirImages(dir string, isImage func(ext string) bool) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", dir, err)
	}

	var images []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if isImage(strings.ToLower(filepath.Ext(e.Name()))) {
			images = append(images, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(images)
	return images, nil
}
