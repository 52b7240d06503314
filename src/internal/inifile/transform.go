package inifile

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/phptune/phptune/src/internal/backup"
	"github.com/phptune/phptune/src/internal/fileaccess"
	"github.com/phptune/phptune/src/internal/platform"
)

// Transformer rewrites php.ini files. Every mutating call takes a backup
// first; if the backup cannot be written the original file is left
// untouched.
type Transformer struct {
	fs           fileaccess.FileAccess
	archive      *backup.Archive
	ctx          *platform.Context
	availability Availability
	loaded       map[string]bool
	dryRun       bool
}

// NewTransformer creates a Transformer using the given file access,
// backup archive, and platform context.
func NewTransformer(fs fileaccess.FileAccess, archive *backup.Archive, ctx *platform.Context) *Transformer {
	return &Transformer{
		fs:      fs,
		archive: archive,
		ctx:     ctx,
	}
}

// SetAvailability overrides the extension availability strategy. The
// default checks the extension directory for module files.
func (t *Transformer) SetAvailability(a Availability) {
	t.availability = a
}

// SetLoadedModules records extensions already compiled into or loaded by
// the target PHP (php -m output). Requested extensions found here that
// have no ini line are classified AlreadyLoaded instead of Missing.
func (t *Transformer) SetLoadedModules(modules []string) {
	t.loaded = make(map[string]bool, len(modules))
	for _, m := range modules {
		t.loaded[strings.ToLower(strings.TrimSpace(m))] = true
	}
}

// SetDryRun disables the backup and the final write; the report is
// computed as if the transformation had happened.
func (t *Transformer) SetDryRun(dryRun bool) {
	t.dryRun = dryRun
}

// Customize enables the requested extensions and applies the settings to
// the ini file at iniPath, returning a report of what changed. A missing
// extension or directory is a classification, not an error; an unreadable
// or unwritable ini file is.
func (t *Transformer) Customize(iniPath, extensionDir string, extensions []string, settings []Setting) (*Report, error) {
	data, err := t.fs.ReadFile(iniPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrIniNotFound, iniPath)
		}
		if os.IsPermission(err) {
			return nil, &PermissionError{Path: iniPath, Err: err}
		}
		return nil, fmt.Errorf("failed to read %s: %w", iniPath, err)
	}

	doc := parseDocument(string(data))
	edits := newEditList(doc)
	report := newReport()

	t.applyExtensionDir(doc, edits, extensionDir)
	t.applyExtensions(doc, edits, report, extensionDir, extensions)
	t.applySettings(doc, edits, report, settings)

	if t.dryRun || edits.empty() {
		return report, nil
	}

	backupPath, err := t.archive.Create(iniPath)
	if err != nil {
		return nil, fmt.Errorf("refusing to modify %s without a backup: %w", iniPath, err)
	}
	report.BackupPath = backupPath

	content := doc.render(edits.apply())
	if err := t.fs.WriteFile(iniPath, []byte(content), 0644); err != nil {
		if os.IsPermission(err) {
			return nil, &PermissionError{Path: iniPath, Err: err}
		}
		return nil, fmt.Errorf("failed to write %s: %w", iniPath, err)
	}

	return report, nil
}

// applyExtensionDir pins the extension_dir directive to the discovered
// directory, replacing an existing line (commented or not) or prepending
// one at the top of the file.
func (t *Transformer) applyExtensionDir(doc *document, edits *editList, extensionDir string) {
	if extensionDir == "" {
		return
	}
	if _, err := os.Stat(extensionDir); err != nil {
		return
	}

	line := fmt.Sprintf("extension_dir = %q", filepath.ToSlash(extensionDir))
	pattern := settingLinePattern("extension_dir")

	// A live directive wins over a commented one: PHP honors the live
	// line no matter what is commented out around it.
	target := -1
	for i, existing := range doc.lines {
		if !pattern.MatchString(existing) {
			continue
		}
		if !strings.HasPrefix(strings.TrimSpace(existing), ";") {
			target = i
			break
		}
		if target < 0 {
			target = i
		}
	}

	if target >= 0 {
		if doc.lines[target] != line {
			edits.replace(target, line)
		}
		return
	}
	edits.prepend(line)
}

func (t *Transformer) applyExtensions(doc *document, edits *editList, report *Report, extensionDir string, extensions []string) {
	avail := t.availability
	if avail == nil {
		avail = FileAvailability{Dir: extensionDir, Ctx: t.ctx}
	}

	handled := make(map[string]bool)
	for _, raw := range extensions {
		name := strings.TrimSpace(raw)
		if name == "" || handled[strings.ToLower(name)] {
			continue
		}
		handled[strings.ToLower(name)] = true

		livePattern := extensionLinePattern(name)
		commentedPattern := commentedExtensionLinePattern(name)

		liveLine, commentedLine := -1, -1
		for i, line := range doc.lines {
			if commentedPattern.MatchString(line) {
				if commentedLine < 0 {
					commentedLine = i
				}
			} else if livePattern.MatchString(line) {
				liveLine = i
				break
			}
		}

		switch {
		case liveLine >= 0:
			report.AlreadyEnabled = append(report.AlreadyEnabled, name)

		case commentedLine >= 0:
			edits.replace(commentedLine, directiveFor(name))
			report.Enabled = append(report.Enabled, name)

		case t.loaded[strings.ToLower(name)]:
			report.AlreadyLoaded = append(report.AlreadyLoaded, name)

		case avail.Available(name):
			t.insertDirective(doc, edits, directiveFor(name))
			report.Enabled = append(report.Enabled, name)

		default:
			report.Missing = append(report.Missing, name)
		}
	}
}

// insertDirective appends a new directive at the deterministic insertion
// point: after the last extension directive if any exists, after the
// [PHP] header otherwise, and at end of file as the last resort.
func (t *Transformer) insertDirective(doc *document, edits *editList, directive string) {
	if anchor := doc.lastExtensionDirectiveLine(); anchor >= 0 {
		edits.insertAfter(anchor, directive)
		return
	}
	if header := doc.sectionHeaderLine("PHP"); header >= 0 {
		edits.insertAfter(header, directive)
		return
	}
	edits.appendLine(directive)
}

func (t *Transformer) applySettings(doc *document, edits *editList, report *Report, settings []Setting) {
	for _, setting := range settings {
		key := strings.TrimSpace(setting.Key)
		if key == "" {
			continue
		}

		line := fmt.Sprintf("%s = %s", key, setting.Value)
		pattern := settingLinePattern(key)

		matched := -1
		for i, existing := range doc.lines {
			if pattern.MatchString(existing) {
				matched = i
				break
			}
		}

		if matched >= 0 {
			edits.replace(matched, line)
			report.Updated = append(report.Updated, key)
			continue
		}

		if header := doc.sectionHeaderLine("PHP"); header >= 0 {
			edits.insertAfter(doc.sectionEndLine(header), line)
		} else {
			edits.appendLine(line)
		}
		report.Added = append(report.Added, key)
	}
}
