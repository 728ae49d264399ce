// Package scan enumerates the Markdown files under a root directory.
package scan

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Config controls one discovery pass.
type Config struct {
	// Root is the directory to scan. It must exist.
	Root string

	// Excludes are doublestar patterns matched against slash-separated
	// paths relative to Root. A pattern that matches a directory prunes
	// the whole subtree; one that matches a file drops that file.
	Excludes []string
}

// File is one discovered Markdown file.
type File struct {
	Abs string
	Rel string // relative to Root, forward slashes
}

// Markdown walks Root recursively and returns every regular file with a
// .md extension, sorted by relative path so downstream work is
// deterministic. Directory entries that are not regular files are
// ignored.
func Markdown(cfg Config) ([]File, error) {
	root, err := filepath.Abs(cfg.Root)
	if err != nil {
		return nil, fmt.Errorf("resolve root: %w", err)
	}
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("stat root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("root %s is not a directory", cfg.Root)
	}
	for _, p := range cfg.Excludes {
		if !doublestar.ValidatePattern(p) {
			return nil, fmt.Errorf("invalid exclude pattern %q", p)
		}
	}

	var files []File
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if rel != "." && Excluded(rel, cfg.Excludes) {
				return fs.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		if strings.ToLower(filepath.Ext(path)) != ".md" {
			return nil
		}
		if Excluded(rel, cfg.Excludes) {
			return nil
		}
		files = append(files, File{Abs: path, Rel: rel})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", cfg.Root, err)
	}

	sort.Slice(files, func(i, j int) bool { return files[i].Rel < files[j].Rel })
	return files, nil
}

// Excluded reports whether the slash-separated relative path matches any
// of the patterns. Invalid patterns never match; ValidatePattern in
// Markdown rejects them before a walk starts.
func Excluded(rel string, patterns []string) bool {
	for _, p := range patterns {
		if ok, _ := doublestar.Match(p, rel); ok {
			return true
		}
	}
	return false
}
