//go:build !windows

package fileaccess

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
)

// Elevated runs file operations through sudo. Reads stay direct (ini
// files are world-readable on every distribution we support); writes go
// through sudo so a root-owned php.ini can be patched without running
// the whole process as root. The sudo runner is injectable so tests
// never shell out.
type Elevated struct {
	sudo func(args ...string) ([]byte, error)
}

// NewElevated creates a FileAccess that routes writes through sudo.
func NewElevated() *Elevated {
	return &Elevated{sudo: runSudo}
}

func runSudo(args ...string) ([]byte, error) {
	return exec.Command("sudo", args...).Output()
}

// ReadFile returns the content of the file at path.
func (e *Elevated) ReadFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err == nil {
		return data, nil
	}
	if !os.IsPermission(err) {
		return nil, err
	}
	out, sudoErr := e.sudo("cat", path)
	if sudoErr != nil {
		return nil, fmt.Errorf("failed to read %s via sudo: %w", path, sudoErr)
	}
	return out, nil
}

// WriteFile stages the content in a temp file and copies it into place
// with sudo, so partial writes never land on the target. The copy uses
// plain cp: an existing target keeps its own mode and owner, and no
// GNU-only flags are involved, so macOS and BSD cp work the same way.
func (e *Elevated) WriteFile(path string, data []byte, perm os.FileMode) error {
	tmp, err := os.CreateTemp("", "phptune-*"+filepath.Ext(path))
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	defer func() { _ = os.Remove(tmpPath) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpPath, perm); err != nil {
		return err
	}

	if _, err := e.sudo("cp", tmpPath, path); err != nil {
		return fmt.Errorf("failed to write %s via sudo: %w", path, err)
	}
	return nil
}

// CopyFile copies src to dst via sudo, preserving the source's mode.
func (e *Elevated) CopyFile(src, dst string) error {
	if _, err := e.sudo("cp", "-p", src, dst); err != nil {
		return fmt.Errorf("failed to copy %s via sudo: %w", src, err)
	}
	return nil
}

// Remove deletes the file at path via sudo.
func (e *Elevated) Remove(path string) error {
	if _, err := e.sudo("rm", "-f", path); err != nil {
		return fmt.Errorf("failed to remove %s via sudo: %w", path, err)
	}
	return nil
}
