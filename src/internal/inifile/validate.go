package inifile

import (
	"fmt"
	"regexp"
	"strings"
)

// Warning flags a line that does not look like valid php.ini syntax.
// Warnings are informational; they never block a write unless the caller
// gates on them.
type Warning struct {
	Line    int    `json:"line"`
	Message string `json:"message"`
}

func (w Warning) String() string {
	return fmt.Sprintf("line %d: %s", w.Line, w.Message)
}

var keyPattern = regexp.MustCompile(`^[A-Za-z0-9_.\-\[\]]+$`)

// Validate scans ini text and reports lines that are neither blank,
// comments, section headers, nor key = value directives. It is a sanity
// check, not a full grammar.
func Validate(content string) []Warning {
	warnings := make([]Warning, 0)
	doc := parseDocument(content)

	for i, line := range doc.lines {
		trimmed := strings.TrimSpace(line)
		lineNo := i + 1

		switch {
		case trimmed == "":
			continue
		case strings.HasPrefix(trimmed, ";") || strings.HasPrefix(trimmed, "#"):
			continue
		case strings.HasPrefix(trimmed, "["):
			if !sectionPattern.MatchString(trimmed) {
				warnings = append(warnings, Warning{Line: lineNo, Message: "malformed section header"})
			}
		case strings.Contains(trimmed, "="):
			key := strings.TrimSpace(trimmed[:strings.Index(trimmed, "=")])
			if key == "" {
				warnings = append(warnings, Warning{Line: lineNo, Message: "directive is missing a key"})
			} else if !keyPattern.MatchString(key) {
				warnings = append(warnings, Warning{Line: lineNo, Message: fmt.Sprintf("suspicious directive key %q", key)})
			}
		default:
			warnings = append(warnings, Warning{Line: lineNo, Message: "expected key = value, section header, or comment"})
		}
	}

	return warnings
}
