// Package inifile implements the php.ini text transformer: enabling
// extensions, applying settings, and validating syntax, all as
// line-preserving edits. Lines not explicitly targeted are never
// reordered or removed.
package inifile

import (
	"regexp"
	"strings"
)

// zendExtensions are loaded through zend_extension= because they hook
// the engine below the ordinary module API.
var zendExtensions = map[string]bool{
	"opcache": true,
	"xdebug":  true,
}

// IsZendExtension reports whether name must be loaded via zend_extension=.
func IsZendExtension(name string) bool {
	return zendExtensions[strings.ToLower(name)]
}

var (
	sectionPattern = regexp.MustCompile(`^\s*\[([^\]]+)\]\s*$`)
	// Any extension directive, commented or not, used to find the
	// extensions block for deterministic insertion.
	anyExtensionPattern = regexp.MustCompile(`^\s*;?\s*(?:zend_)?extension\s*=`)
)

// document is the line-oriented view of a php.ini file. The original
// line-ending convention is remembered so rewritten files round-trip on
// both CRLF and LF inputs.
type document struct {
	lines []string
	crlf  bool
}

func parseDocument(content string) *document {
	crlf := strings.Contains(content, "\r\n")
	if crlf {
		content = strings.ReplaceAll(content, "\r\n", "\n")
	}
	return &document{
		lines: strings.Split(content, "\n"),
		crlf:  crlf,
	}
}

func (d *document) render(lines []string) string {
	eol := "\n"
	if d.crlf {
		eol = "\r\n"
	}
	return strings.Join(lines, eol)
}

// sectionHeaderLine returns the line index of the [name] header, or -1.
func (d *document) sectionHeaderLine(name string) int {
	for i, line := range d.lines {
		if m := sectionPattern.FindStringSubmatch(line); m != nil {
			if strings.EqualFold(strings.TrimSpace(m[1]), name) {
				return i
			}
		}
	}
	return -1
}

// sectionEndLine returns the index of the last line belonging to the
// section starting at headerLine (exclusive of the next header).
func (d *document) sectionEndLine(headerLine int) int {
	for i := headerLine + 1; i < len(d.lines); i++ {
		if sectionPattern.MatchString(d.lines[i]) {
			return i - 1
		}
	}
	return len(d.lines) - 1
}

// lastExtensionDirectiveLine returns the index of the last line that
// looks like an extension directive (commented or live), or -1.
func (d *document) lastExtensionDirectiveLine() int {
	last := -1
	for i, line := range d.lines {
		if anyExtensionPattern.MatchString(line) {
			last = i
		}
	}
	return last
}

// extensionLinePattern matches a live directive for the given extension,
// tolerating the php_ prefix and module file suffix some distributions
// write (extension=php_curl.dll, extension=curl.so).
func extensionLinePattern(name string) *regexp.Regexp {
	quoted := regexp.QuoteMeta(name)
	return regexp.MustCompile(`(?i)^\s*(zend_)?extension\s*=\s*"?(php_)?` + quoted + `(\.(so|dll|dylib))?"?\s*(;.*)?$`)
}

// commentedExtensionLinePattern matches the same directive behind a
// comment marker.
func commentedExtensionLinePattern(name string) *regexp.Regexp {
	quoted := regexp.QuoteMeta(name)
	return regexp.MustCompile(`(?i)^\s*;+\s*(zend_)?extension\s*=\s*"?(php_)?` + quoted + `(\.(so|dll|dylib))?"?\s*(;.*)?$`)
}

// settingLinePattern matches a key = value line for the given key,
// commented or not. Keys are quoted so regex metacharacters in setting
// names cannot widen the match.
func settingLinePattern(key string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)^\s*;?\s*` + regexp.QuoteMeta(key) + `\s*=.*$`)
}

// directiveFor renders the canonical enabling line for an extension.
func directiveFor(name string) string {
	if IsZendExtension(name) {
		return "zend_extension=" + name
	}
	return "extension=" + name
}
