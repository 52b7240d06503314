package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultPathsWithRootOverride(t *testing.T) {
	root := t.TempDir()
	t.Setenv("PHPTUNE_ROOT", root)
	ResetPathsCache()
	t.Cleanup(ResetPathsCache)

	paths := DefaultPaths()
	if paths.Root != root {
		t.Errorf("Root = %s, want %s", paths.Root, root)
	}
	if paths.Logs != filepath.Join(root, "logs") {
		t.Errorf("Logs = %s", paths.Logs)
	}
}

func TestDefaultPathsCached(t *testing.T) {
	t.Setenv("PHPTUNE_ROOT", t.TempDir())
	ResetPathsCache()
	t.Cleanup(ResetPathsCache)

	first := DefaultPaths()
	second := DefaultPaths()
	if first != second {
		t.Error("DefaultPaths should return the same cached instance")
	}
}

func TestEnsureDirectories(t *testing.T) {
	root := filepath.Join(t.TempDir(), "phptune")
	t.Setenv("PHPTUNE_ROOT", root)
	ResetPathsCache()
	t.Cleanup(ResetPathsCache)

	if err := EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories failed: %v", err)
	}
	for _, dir := range []string{root, filepath.Join(root, "logs")} {
		info, err := os.Stat(dir)
		if err != nil || !info.IsDir() {
			t.Errorf("%s not created: %v", dir, err)
		}
	}
}

func TestServerAddr(t *testing.T) {
	t.Setenv("PHPTUNE_ADDR", "")
	if got := ServerAddr(); got != DefaultServerAddr {
		t.Errorf("ServerAddr = %s, want default", got)
	}

	t.Setenv("PHPTUNE_ADDR", "0.0.0.0:9000")
	if got := ServerAddr(); got != "0.0.0.0:9000" {
		t.Errorf("ServerAddr = %s, want override", got)
	}
}
