// Package fileaccess abstracts reading and writing configuration files so
// that the transformer and backup archive can run either directly or
// through an elevated shell when the target file is root-owned. The core
// never escalates on its own; callers pick the implementation once after
// a writability pre-check.
package fileaccess

import (
	"errors"
	"fmt"
	"os"
)

// FileAccess is the capability the transformer and backup archive depend
// on for touching ini files and their backups.
type FileAccess interface {
	// ReadFile returns the content of the file at path.
	ReadFile(path string) ([]byte, error)

	// WriteFile replaces the content of the file at path.
	WriteFile(path string, data []byte, perm os.FileMode) error

	// CopyFile copies src to dst, overwriting dst if it exists.
	CopyFile(src, dst string) error

	// Remove deletes the file at path.
	Remove(path string) error
}

// ErrElevationRequired indicates the file cannot be written with the
// current privileges and an elevated FileAccess is needed.
var ErrElevationRequired = errors.New("elevated privileges required")

// NeedsElevation reports whether writing path would require elevated
// privileges. The file must exist; a missing file is an error, since the
// callers only ever target ini files that discovery has already seen.
func NeedsElevation(path string) (bool, error) {
	f, err := os.OpenFile(path, os.O_WRONLY, 0)
	if err == nil {
		_ = f.Close()
		return false, nil
	}
	if os.IsPermission(err) {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, fmt.Errorf("file not found: %s", path)
	}
	return false, err
}
