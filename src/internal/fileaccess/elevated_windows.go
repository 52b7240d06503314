//go:build windows

package fileaccess

import (
	"os"
)

// Elevated is not available on Windows. Administrator access has to come
// from the shell that launched phptune, so every operation reports
// ErrElevationRequired and the CLI tells the user to re-run elevated.
type Elevated struct{}

// NewElevated creates the Windows placeholder implementation.
func NewElevated() *Elevated {
	return &Elevated{}
}

// ReadFile always fails with ErrElevationRequired.
func (e *Elevated) ReadFile(path string) ([]byte, error) {
	return nil, ErrElevationRequired
}

// WriteFile always fails with ErrElevationRequired.
func (e *Elevated) WriteFile(path string, data []byte, perm os.FileMode) error {
	return ErrElevationRequired
}

// CopyFile always fails with ErrElevationRequired.
func (e *Elevated) CopyFile(src, dst string) error {
	return ErrElevationRequired
}

// Remove always fails with ErrElevationRequired.
func (e *Elevated) Remove(path string) error {
	return ErrElevationRequired
}
