// Package backup manages timestamped backup copies of php.ini files:
// creation before every mutation, enumeration, restoration, and a
// retention-aware cleanup. Backups live next to the original file as
// {original}.backup.{timestamp}.ini with an optional .meta.json sidecar.
package backup

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/phptune/phptune/src/internal/fileaccess"
	"github.com/phptune/phptune/src/internal/ui"
)

// ErrBackupMissing is returned by Restore when the backup file is gone.
var ErrBackupMissing = errors.New("backup file does not exist")

const (
	backupMarker  = ".backup."
	backupSuffix  = ".ini"
	metaSuffix    = ".meta.json"
	timestampMask = "2006-01-02T15:04:05.000Z"
)

// timestampReplacer rewrites ':' and '.' so the stamp is filename-safe on
// every platform while staying fixed-width and lexicographically sortable.
var timestampReplacer = strings.NewReplacer(":", "-", ".", "-")

// Meta is the sidecar document stored next to a backup.
type Meta struct {
	Description  string `json:"description"`
	Created      string `json:"created"`
	OriginalPath string `json:"originalPath"`
	Version      string `json:"version"`
}

// Archive creates, lists, restores, and prunes backups through an
// injected FileAccess, so elevated targets work the same as direct ones.
type Archive struct {
	fs  fileaccess.FileAccess
	now func() time.Time
}

// NewArchive creates an Archive using the given file access capability.
func NewArchive(fs fileaccess.FileAccess) *Archive {
	return &Archive{
		fs:  fs,
		now: time.Now,
	}
}

// SetClock overrides the time source. Only tests use this.
func (a *Archive) SetClock(now func() time.Time) {
	a.now = now
}

// BackupPath returns the backup file name Create would use at the
// current instant for the given original path.
func (a *Archive) BackupPath(path string) string {
	stamp := timestampReplacer.Replace(a.now().UTC().Format(timestampMask))
	return path + backupMarker + stamp + backupSuffix
}

// Create copies path to a timestamped sibling and returns the backup
// path. Pre-mutation call sites must treat an error as fatal to the
// enclosing operation.
func (a *Archive) Create(path string) (string, error) {
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("cannot back up %s: %w", path, err)
	}

	backupPath := a.BackupPath(path)
	if err := a.fs.CopyFile(path, backupPath); err != nil {
		return "", fmt.Errorf("failed to create backup of %s: %w", path, err)
	}
	return backupPath, nil
}

// CreateOrWarn is the tolerant variant for user-invoked backups: on
// failure it logs a warning and returns an empty path instead of an
// error, so a read-only target does not abort an otherwise informational
// command.
func (a *Archive) CreateOrWarn(path string) string {
	backupPath, err := a.Create(path)
	if err != nil {
		ui.Warning("Could not create backup: %v", err)
		return ""
	}
	return backupPath
}

// List returns all backups of path, newest first by modification time.
func (a *Archive) List(path string) ([]string, error) {
	dir := filepath.Dir(path)
	base := filepath.Base(path)

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read backup directory %s: %w", dir, err)
	}

	type backupEntry struct {
		path    string
		modTime time.Time
	}

	found := make([]backupEntry, 0)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasPrefix(name, base+backupMarker) || !strings.HasSuffix(name, backupSuffix) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		found = append(found, backupEntry{
			path:    filepath.Join(dir, name),
			modTime: info.ModTime(),
		})
	}

	sort.Slice(found, func(i, j int) bool {
		if !found[i].modTime.Equal(found[j].modTime) {
			return found[i].modTime.After(found[j].modTime)
		}
		// Modification times can collide on coarse filesystems; the
		// embedded timestamp breaks the tie, newest name first.
		return found[i].path > found[j].path
	})

	paths := make([]string, len(found))
	for i, b := range found {
		paths[i] = b.path
	}
	return paths, nil
}

// Restore overwrites targetPath with the content of backupPath.
func (a *Archive) Restore(backupPath, targetPath string) error {
	if _, err := os.Stat(backupPath); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrBackupMissing, backupPath)
		}
		return err
	}

	if err := a.fs.CopyFile(backupPath, targetPath); err != nil {
		return fmt.Errorf("failed to restore %s: %w", targetPath, err)
	}
	return nil
}

// Cleanup deletes backups of path that are beyond the keepCount most
// recent AND older than olderThanDays. Backups inside the keep window
// are never touched regardless of age, and recent backups beyond the
// window are retained until they age out. Sidecar meta files are removed
// with their backup. Returns the paths that were deleted.
func (a *Archive) Cleanup(path string, keepCount, olderThanDays int) ([]string, error) {
	if keepCount < 0 {
		keepCount = 0
	}

	backups, err := a.List(path)
	if err != nil {
		return nil, err
	}

	cutoff := a.now().AddDate(0, 0, -olderThanDays)
	removed := make([]string, 0)

	for i, backupPath := range backups {
		if i < keepCount {
			continue
		}
		info, err := os.Stat(backupPath)
		if err != nil {
			continue
		}
		if !info.ModTime().Before(cutoff) {
			continue
		}
		if err := a.fs.Remove(backupPath); err != nil {
			ui.Warning("Could not delete backup %s: %v", backupPath, err)
			continue
		}
		if _, err := os.Stat(backupPath + metaSuffix); err == nil {
			_ = a.fs.Remove(backupPath + metaSuffix)
		}
		removed = append(removed, backupPath)
	}

	return removed, nil
}

// WriteMeta stores a sidecar description next to an existing backup.
func (a *Archive) WriteMeta(backupPath, description, originalPath, version string) error {
	meta := Meta{
		Description:  description,
		Created:      a.now().UTC().Format(time.RFC3339),
		OriginalPath: originalPath,
		Version:      version,
	}

	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return err
	}
	return a.fs.WriteFile(backupPath+metaSuffix, data, 0644)
}

// ReadMeta loads the sidecar for a backup, if one exists.
func (a *Archive) ReadMeta(backupPath string) (*Meta, error) {
	data, err := os.ReadFile(backupPath + metaSuffix)
	if err != nil {
		return nil, err
	}

	var meta Meta
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("failed to parse backup metadata: %w", err)
	}
	return &meta, nil
}
