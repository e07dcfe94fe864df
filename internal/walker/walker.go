// Package walker discovers source files to scan.
package walker

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/protodex/protodex/internal/errors"
)

// FindFiles walks root and returns every file whose name ends in ext
// (matched case-insensitively), in lexical order. A root that is itself a
// matching file is returned as a single-element list. A missing root or a
// walk with no matches is an error.
func FindFiles(root, ext string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewScanError(
				fmt.Sprintf("path '%s' not found", root),
				errors.ErrFileNotFound,
			)
		}
		return nil, errors.NewScanError(fmt.Sprintf("failed to access '%s'", root), err)
	}

	if !info.IsDir() {
		if !matchesExt(root, ext) {
			return nil, errors.NewScanError(
				fmt.Sprintf("'%s' does not match extension '%s'", root, ext),
				errors.ErrNoFilesFound,
			)
		}
		return []string{root}, nil
	}

	var files []string
	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && matchesExt(path, ext) {
			files = append(files, path)
		}
		return nil
	})
	if walkErr != nil {
		return nil, errors.NewScanError(fmt.Sprintf("failed to walk '%s'", root), walkErr)
	}

	if len(files) == 0 {
		return nil, errors.NewScanError(
			fmt.Sprintf("no '%s' files under '%s'", ext, root),
			errors.ErrNoFilesFound,
		)
	}
	return files, nil
}

func matchesExt(path, ext string) bool {
	return strings.HasSuffix(strings.ToLower(path), strings.ToLower(ext))
}
