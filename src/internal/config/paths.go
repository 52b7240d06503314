// Package config manages phptune configuration paths and defaults
package config

import (
	"os"
	"path/filepath"
	"sync"
)

// Paths holds all important phptune directory paths
type Paths struct {
	Root string // Root phptune directory (~/.phptune)
	Logs string // Log directory (~/.phptune/logs)
}

var (
	defaultPaths *Paths
	pathsOnce    sync.Once
)

// DefaultPaths returns the default phptune paths.
// This function is thread-safe and guarantees single initialization.
func DefaultPaths() *Paths {
	pathsOnce.Do(func() {
		defaultPaths = initPaths()
	})
	return defaultPaths
}

func initPaths() *Paths {
	root := getRootDir()
	return &Paths{
		Root: root,
		Logs: filepath.Join(root, "logs"),
	}
}

// getRootDir returns the root phptune directory
func getRootDir() string {
	// Check for PHPTUNE_ROOT environment variable first
	if root := os.Getenv("PHPTUNE_ROOT"); root != "" {
		return root
	}

	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home is not available
		return ".phptune"
	}

	return filepath.Join(home, ".phptune")
}

// EnsureDirectories creates all necessary phptune directories
func EnsureDirectories() error {
	paths := DefaultPaths()
	for _, dir := range []string{paths.Root, paths.Logs} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return nil
}

// DefaultServerAddr is the address the admin API binds to unless
// overridden by flag or environment.
const DefaultServerAddr = "127.0.0.1:8512"

// ServerAddr resolves the admin API listen address.
func ServerAddr() string {
	if addr := os.Getenv("PHPTUNE_ADDR"); addr != "" {
		return addr
	}
	return DefaultServerAddr
}

// ResetPathsCache resets the cached paths, forcing reinitialization on
// next access. This is primarily useful for testing.
func ResetPathsCache() {
	pathsOnce = sync.Once{}
	defaultPaths = nil
}
