package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/phptune/phptune/src/internal/config"
	"github.com/phptune/phptune/src/internal/inifile"
)

// appendOperationLog records a completed customize run in
// ~/.phptune/logs/operations.log, one line per run, so a user can trace
// which ini files phptune touched and which backup covers each change.
func appendOperationLog(iniPath string, report *inifile.Report) error {
	logPath := filepath.Join(config.DefaultPaths().Logs, "operations.log")

	f, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	line := fmt.Sprintf("%s customize %s enabled=%d updated=%d added=%d missing=%d backup=%s\n",
		time.Now().UTC().Format(time.RFC3339),
		iniPath,
		len(report.Enabled),
		len(report.Updated),
		len(report.Added),
		len(report.Missing),
		report.BackupPath,
	)
	_, err = f.WriteString(line)
	return err
}
