// Package lister lists the immediate children of a single directory,
// partitioned into files and subdirectories as absolute paths.
package lister

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/scanwalk/dirscan/internal/types"
)

// Service lists directories. The zero value is ready to use.
type Service struct{}

// New creates a new Service.
func New() *Service {
	return &Service{}
}

// List returns the immediate children of path, partitioned into regular
// files and directories. The input may be relative; it is resolved to an
// absolute path before use, and every returned path is absolute.
//
// Each entry is classified by a fresh stat, which follows symlinks: a
// symlink to a directory counts as a directory, a symlink to a regular
// file counts as a file. Entries that are neither (sockets, devices,
// dangling symlinks) appear in neither list.
//
// An unreadable directory is an error, never an empty listing. The error
// wraps the underlying cause, so errors.Is against fs.ErrNotExist and
// fs.ErrPermission still works.
func (s *Service) List(path string) (types.DirectoryListing, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return types.DirectoryListing{}, fmt.Errorf("failed to resolve path: %s - %w", path, err)
	}

	entries, err := os.ReadDir(absPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return types.DirectoryListing{}, fmt.Errorf("directory not found: %s - %w", absPath, err)
		}
		if errors.Is(err, fs.ErrPermission) {
			return types.DirectoryListing{}, fmt.Errorf("permission denied: %s - %w", absPath, err)
		}
		return types.DirectoryListing{}, fmt.Errorf("failed to list directory: %s - %w", absPath, err)
	}

	var files, directories []string

	for _, entry := range entries {
		entryPath := filepath.Join(absPath, entry.Name())

		info, err := os.Stat(entryPath)
		if err != nil {
			// Dangling symlink or entry gone since ReadDir.
			continue
		}

		if info.IsDir() {
			directories = append(directories, entryPath)
		} else if info.Mode().IsRegular() {
			files = append(files, entryPath)
		}
	}

	return types.DirectoryListing{
		Files:       files,
		Directories: directories,
	}, nil
}
