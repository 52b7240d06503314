package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/phptune/phptune/src/internal/config"
	"github.com/phptune/phptune/src/internal/inifile"
)

func TestAppendOperationLog(t *testing.T) {
	root := filepath.Join(t.TempDir(), "phptune")
	t.Setenv("PHPTUNE_ROOT", root)
	config.ResetPathsCache()
	t.Cleanup(config.ResetPathsCache)

	if err := config.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories failed: %v", err)
	}

	report := &inifile.Report{
		Enabled:    []string{"curl", "mbstring"},
		Updated:    []string{"memory_limit"},
		BackupPath: "/etc/php.ini.backup.2026-08-30T10-00-00-000Z.ini",
	}
	if err := appendOperationLog("/etc/php.ini", report); err != nil {
		t.Fatalf("appendOperationLog failed: %v", err)
	}
	if err := appendOperationLog("/etc/php.ini", report); err != nil {
		t.Fatalf("second appendOperationLog failed: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(root, "logs", "operations.log"))
	if err != nil {
		t.Fatalf("operations.log not written: %v", err)
	}

	content := string(data)
	lines := strings.Split(strings.TrimSpace(content), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d log lines, want 2:\n%s", len(lines), content)
	}
	for _, want := range []string{
		"customize /etc/php.ini",
		"enabled=2",
		"updated=1",
		"added=0",
		"missing=0",
		"backup=/etc/php.ini.backup.2026-08-30T10-00-00-000Z.ini",
	} {
		if !strings.Contains(lines[0], want) {
			t.Errorf("log line missing %q: %s", want, lines[0])
		}
	}
}
