// Package search locates files and directories by name substring.
//
// A miss is an ordinary NOT_FOUND error value, never a sentinel type.
package search

import (
	"os"
	"path/filepath"
	"strings"

	apperrors "github.com/AlexRiggs/hemo/pkg/errors"
)

// FindPath searches root recursively for an entry whose name contains
// substring and returns its path. Directories are searched bottom-up; within
// each directory, files are preferred over subdirectories. The first match
// wins. Returns NOT_FOUND when nothing matches.
func FindPath(root, substring string) (string, error) {
	if substring == "" {
		return "", apperrors.New(apperrors.ErrCodeInvalidParameter, "search substring must not be empty")
	}
	path, err := findIn(root, substring)
	if err != nil {
		return "", err
	}
	if path == "" {
		return "", apperrors.New(apperrors.ErrCodeNotFound, "no file or directory matching %q under %s", substring, root)
	}
	return path, nil
}

// findIn returns the first match under dir, or "" when there is none.
func findIn(dir, substring string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", apperrors.Wrap(apperrors.ErrCodeInvalidParameter, err, "read directory %s", dir)
	}

	// Recurse first so deeper entries are seen before this level.
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		match, err := findIn(filepath.Join(dir, entry.Name()), substring)
		if err != nil {
			return "", err
		}
		if match != "" {
			return match, nil
		}
	}

	// Files before directories at this level.
	for _, entry := range entries {
		if !entry.IsDir() && strings.Contains(entry.Name(), substring) {
			return filepath.Join(dir, entry.Name()), nil
		}
	}
	for _, entry := range entries {
		if entry.IsDir() && strings.Contains(entry.Name(), substring) {
			return filepath.Join(dir, entry.Name()), nil
		}
	}
	return "", nil
}
