// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package naming picks output file names that do not collide with files
// already present in the output folder.
package naming

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// BaseName returns the file name of path without directory or extension.
func BaseName(path string) string {
	name := filepath.Base(path)
	return strings.TrimSuffix(name, filepath.Ext(name))
}

// Resolve returns the first unused path among <base><suffix>,
// <base>1<suffix>, <base>2<suffix>, ... inside outputFolder. The check is
// not atomic with the later write.
func Resolve(outputFolder, base, suffix string) (string, error) {
	candidate := filepath.Join(outputFolder, base+suffix)
	for index := 1; ; index++ {
		taken, err := exists(candidate)
		if err != nil {
			return "", fmt.Errorf("checking %s: %w", candidate, err)
		}
		if !taken {
			return candidate, nil
		}
		candidate = filepath.Join(outputFolder, base+strconv.Itoa(index)+suffix)
	}
}

func exists(path string) (bool, error) {
	_, err := os.Lstat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, err
}
