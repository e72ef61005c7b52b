// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package scan enumerates the input files of a conversion run.
package scan

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"iter"
	"os"
	"path/filepath"
	"sort"
)

// batchSize is the number of directory entries read per ReadDir call.
const batchSize = 64

// Files returns the regular files directly under dir whose name matches the
// glob pattern (filepath.Match, case-sensitive). Symlinks are followed and
// kept when they point at a regular file. Each yielded path is dir and the
// entry name joined by a single separator, without cleaning, so it reads the
// way the folder was given. Entries are yielded in directory enumeration
// order as they are read; the sequence can be ranged over once.
//
// An invalid pattern or an unreadable directory is yielded as a single
// error, after which iteration ends.
func Files(dir, pattern string) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		if _, err := filepath.Match(pattern, ""); err != nil {
			yield("", fmt.Errorf("invalid pattern %q: %w", pattern, err))
			return
		}

		d, err := os.Open(dir)
		if err != nil {
			yield("", fmt.Errorf("opening %s: %w", dir, err))
			return
		}
		defer d.Close()

		for {
			entries, err := d.ReadDir(batchSize)
			for _, entry := range entries {
				// Pattern was validated above, so Match cannot fail here.
				if ok, _ := filepath.Match(pattern, entry.Name()); !ok {
					continue
				}
				path := join(dir, entry.Name())
				if !isFile(entry, path) {
					continue
				}
				if !yield(path, nil) {
					return
				}
			}
			if errors.Is(err, io.EOF) {
				return
			}
			if err != nil {
				yield("", fmt.Errorf("reading %s: %w", dir, err))
				return
			}
		}
	}
}

// isFile reports whether entry is a regular file, or a symlink whose target
// is one. Dangling links are skipped.
func isFile(entry fs.DirEntry, path string) bool {
	if entry.Type()&fs.ModeSymlink == 0 {
		return entry.Type().IsRegular()
	}
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

func join(dir, name string) string {
	if dir == "" {
		return name
	}
	if os.IsPathSeparator(dir[len(dir)-1]) {
		return dir + name
	}
	return dir + string(filepath.Separator) + name
}

// Sorted collects Files(dir, pattern) and sorts the paths lexically.
func Sorted(dir, pattern string) ([]string, error) {
	var paths []string
	for path, err := range Files(dir, pattern) {
		if err != nil {
			return nil, err
		}
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths, nil
}
