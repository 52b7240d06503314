package fileaccess

import (
	"fmt"
	"io"
	"os"
)

// Direct is the plain-filesystem FileAccess implementation.
type Direct struct{}

// NewDirect creates a FileAccess that uses the process's own privileges.
func NewDirect() *Direct {
	return &Direct{}
}

// ReadFile returns the content of the file at path.
func (d *Direct) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// WriteFile replaces the content of the file at path.
func (d *Direct) WriteFile(path string, data []byte, perm os.FileMode) error {
	return os.WriteFile(path, data, perm)
}

// CopyFile copies src to dst, preserving the source file's mode.
func (d *Direct) CopyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", src, err)
	}
	defer func() { _ = in.Close() }()

	info, err := in.Stat()
	if err != nil {
		return err
	}

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", dst, err)
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return fmt.Errorf("failed to copy to %s: %w", dst, err)
	}

	return out.Close()
}

// Remove deletes the file at path.
func (d *Direct) Remove(path string) error {
	return os.Remove(path)
}
