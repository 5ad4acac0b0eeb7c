// Package fsutil provides file system utility functions.
package fsutil

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// SourceExt is the extension of viewgen DSL source files.
const SourceExt = ".view"

// FindSourceFiles returns the .view files under root in deterministic
// order. A root that is itself a .view file is returned as-is, so the CLI
// accepts both files and directories.
func FindSourceFiles(root string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("cannot read source path %q: %w", root, err)
	}
	if !info.IsDir() {
		if !strings.HasSuffix(root, SourceExt) {
			return nil, fmt.Errorf("%q is not a %s file", root, SourceExt)
		}
		return []string{root}, nil
	}

	var files []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(d.Name(), SourceExt) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}
