package inifile

import "testing"

func TestExtensionLinePattern(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		ext      string
		expected bool
	}{
		{name: "bare name", line: "extension=curl", ext: "curl", expected: true},
		{name: "spaces around equals", line: "extension = curl", ext: "curl", expected: true},
		{name: "windows dll form", line: "extension=php_curl.dll", ext: "curl", expected: true},
		{name: "unix so form", line: "extension=curl.so", ext: "curl", expected: true},
		{name: "quoted value", line: `extension="curl"`, ext: "curl", expected: true},
		{name: "zend directive", line: "zend_extension=opcache", ext: "opcache", expected: true},
		{name: "trailing comment", line: "extension=curl ; keep", ext: "curl", expected: true},
		{name: "different extension", line: "extension=mbstring", ext: "curl", expected: false},
		{name: "prefix collision", line: "extension=curl_extra", ext: "curl", expected: false},
		{name: "commented out", line: ";extension=curl", ext: "curl", expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := extensionLinePattern(tt.ext).MatchString(tt.line)
			if got != tt.expected {
				t.Errorf("pattern for %q on %q = %v, want %v", tt.ext, tt.line, got, tt.expected)
			}
		})
	}
}

func TestCommentedExtensionLinePattern(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		ext      string
		expected bool
	}{
		{name: "single marker", line: ";extension=curl", ext: "curl", expected: true},
		{name: "marker with space", line: "; extension=curl", ext: "curl", expected: true},
		{name: "double marker", line: ";;extension=curl", ext: "curl", expected: true},
		{name: "commented dll form", line: ";extension=php_curl.dll", ext: "curl", expected: true},
		{name: "live line", line: "extension=curl", ext: "curl", expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := commentedExtensionLinePattern(tt.ext).MatchString(tt.line)
			if got != tt.expected {
				t.Errorf("pattern for %q on %q = %v, want %v", tt.ext, tt.line, got, tt.expected)
			}
		})
	}
}

func TestDirectiveFor(t *testing.T) {
	tests := []struct {
		name     string
		ext      string
		expected string
	}{
		{name: "ordinary extension", ext: "curl", expected: "extension=curl"},
		{name: "opcache is zend", ext: "opcache", expected: "zend_extension=opcache"},
		{name: "xdebug is zend", ext: "xdebug", expected: "zend_extension=xdebug"},
		{name: "case insensitive zend lookup", ext: "OPcache", expected: "zend_extension=OPcache"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := directiveFor(tt.ext); got != tt.expected {
				t.Errorf("directiveFor(%q) = %q, want %q", tt.ext, got, tt.expected)
			}
		})
	}
}

func TestEditListPreservesTrailingNewline(t *testing.T) {
	doc := parseDocument("a\nb\n")
	edits := newEditList(doc)
	edits.appendLine("c")

	got := doc.render(edits.apply())
	if got != "a\nb\nc\n" {
		t.Errorf("render = %q, want appended line before final newline", got)
	}
}

func TestEditListInsertOrder(t *testing.T) {
	doc := parseDocument("a\nb")
	edits := newEditList(doc)
	edits.insertAfter(0, "x")
	edits.insertAfter(0, "y")
	edits.prepend("p")

	got := doc.render(edits.apply())
	if got != "p\na\nx\ny\nb" {
		t.Errorf("render = %q, want inserts in recorded order after anchor", got)
	}
}

func TestSectionEndLine(t *testing.T) {
	doc := parseDocument("[PHP]\na = 1\nb = 2\n[Session]\nc = 3\n")

	header := doc.sectionHeaderLine("PHP")
	if header != 0 {
		t.Fatalf("sectionHeaderLine = %d, want 0", header)
	}
	if end := doc.sectionEndLine(header); end != 2 {
		t.Errorf("sectionEndLine = %d, want 2", end)
	}

	last := doc.sectionHeaderLine("Session")
	if end := doc.sectionEndLine(last); end != len(doc.lines)-1 {
		t.Errorf("last section should run to end of file, got %d", end)
	}
}
