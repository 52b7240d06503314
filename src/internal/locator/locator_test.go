package locator

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/phptune/phptune/src/internal/constants"
	"github.com/phptune/phptune/src/internal/platform"
)

// fakeProber answers from a fixed table instead of running executables.
type fakeProber struct {
	infos   map[string]*ProbeInfo
	modules map[string][]string
}

func (f *fakeProber) Introspect(exePath string) (*ProbeInfo, error) {
	if info, ok := f.infos[exePath]; ok {
		return info, nil
	}
	return &ProbeInfo{Version: VersionUnknown}, nil
}

func (f *fakeProber) LoadedModules(exePath string) ([]string, error) {
	return f.modules[exePath], nil
}

// newTestLocator builds a Locator with no built-in templates, no registry
// source, no deep scan roots, and a fake prober, so each test wires in
// exactly the layout it exercises.
func newTestLocator(ctx *platform.Context, prober *fakeProber) *Locator {
	l := New(ctx)
	l.SetProber(prober)
	l.SetTemplates(nil)
	l.SetRegistrySource(nil)
	l.SetDeepScanRoots(nil, 0)
	return l
}

// installDir creates dir with an executable php and a php.ini, returning
// the executable path.
func installDir(t *testing.T, dir string) string {
	t.Helper()
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	exe := filepath.Join(dir, "php")
	if err := os.WriteFile(exe, []byte("#!/bin/sh\n"), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "php.ini"), []byte("[PHP]\n"), 0644); err != nil {
		t.Fatal(err)
	}
	return exe
}

func TestDiscoverMarksFirstPathHitActive(t *testing.T) {
	root := t.TempDir()
	dirA := filepath.Join(root, "a")
	dirB := filepath.Join(root, "b")
	installDir(t, dirA)
	installDir(t, dirB)

	ctx := platform.New(constants.OSLinux, map[string]string{
		"PATH": dirA + ":" + dirB,
	})
	prober := &fakeProber{infos: map[string]*ProbeInfo{
		filepath.Join(dirA, "php"): {Version: "8.3.1"},
		filepath.Join(dirB, "php"): {Version: "8.2.7"},
	}}

	results := newTestLocator(ctx, prober).Discover()
	if len(results) != 2 {
		t.Fatalf("Discover returned %d installations, want 2", len(results))
	}

	active := 0
	for _, inst := range results {
		if inst.Active {
			active++
			if inst.Version != "8.3.1" {
				t.Errorf("active installation is %s, want the first PATH hit (8.3.1)", inst.Version)
			}
		}
	}
	if active != 1 {
		t.Errorf("%d installations marked active, want exactly 1", active)
	}
}

func TestDiscoverDeduplicatesAcrossMethods(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "php-inst")
	installDir(t, dir)

	ctx := platform.New(constants.OSLinux, map[string]string{"PATH": dir})
	prober := &fakeProber{infos: map[string]*ProbeInfo{
		filepath.Join(dir, "php"): {Version: "8.3.1"},
	}}

	loc := newTestLocator(ctx, prober)
	// A template pointing at the same directory as the PATH hit.
	loc.SetTemplates([]Template{{Vendor: "Custom", Priority: 8, BasePaths: []string{dir}}})
	// And a deep scan that would find it a third time.
	loc.SetDeepScanRoots([]string{filepath.Dir(dir)}, 2)

	results := loc.Discover()
	if len(results) != 1 {
		t.Fatalf("Discover returned %d installations, want 1 after dedup: %v", len(results), results)
	}
	if results[0].Environment != "System PATH" {
		t.Errorf("kept installation came from %q, want the highest-trust method", results[0].Environment)
	}
}

func TestDiscoverVersionGlobTemplate(t *testing.T) {
	base := t.TempDir()
	for _, v := range []string{"8.2", "8.3"} {
		dir := filepath.Join(base, v)
		if err := os.MkdirAll(filepath.Join(dir, "bin"), 0755); err != nil {
			t.Fatal(err)
		}
		exe := filepath.Join(dir, "bin", "php")
		if err := os.WriteFile(exe, []byte("#!/bin/sh\n"), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.MkdirAll(filepath.Join(dir, "cli"), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(filepath.Join(dir, "cli", "php.ini"), []byte("[PHP]\n"), 0644); err != nil {
			t.Fatal(err)
		}
	}
	// A non-version directory must be ignored even if it matches the glob.
	if err := os.MkdirAll(filepath.Join(base, "mods-available"), 0755); err != nil {
		t.Fatal(err)
	}

	ctx := platform.New(constants.OSLinux, nil)
	prober := &fakeProber{} // all probes return unknown

	loc := newTestLocator(ctx, prober)
	loc.SetTemplates([]Template{{
		Vendor:      "Versioned",
		Priority:    10,
		BasePaths:   []string{base},
		VersionGlob: "*",
		ExePaths:    []string{"bin/php"},
		IniPaths:    []string{"cli/php.ini"},
	}})

	results := loc.Discover()
	if len(results) != 2 {
		t.Fatalf("Discover returned %d installations, want 2: %v", len(results), results)
	}

	// Versions fall back to the directory names, newest first.
	if results[0].Version != "8.3" || results[1].Version != "8.2" {
		t.Errorf("versions = [%s %s], want [8.3 8.2]", results[0].Version, results[1].Version)
	}
	wantIni := filepath.Join(base, "8.3", "cli", "php.ini")
	if results[0].IniPath != wantIni {
		t.Errorf("IniPath = %s, want %s", results[0].IniPath, wantIni)
	}
}

func TestDiscoverDiscardsInstallWithoutIni(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "noini")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "php"), []byte("#!/bin/sh\n"), 0755); err != nil {
		t.Fatal(err)
	}

	ctx := platform.New(constants.OSLinux, map[string]string{"PATH": dir})
	results := newTestLocator(ctx, &fakeProber{}).Discover()
	if len(results) != 0 {
		t.Errorf("Discover returned %d installations, want 0 without an ini file", len(results))
	}
}

func TestDiscoverPromotesBestWhenNoPathHit(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "tpl")
	installDir(t, dir)

	ctx := platform.New(constants.OSLinux, nil)
	loc := newTestLocator(ctx, &fakeProber{})
	loc.SetTemplates([]Template{{Vendor: "Custom", Priority: 8, BasePaths: []string{dir}}})

	results := loc.Discover()
	if len(results) != 1 {
		t.Fatalf("Discover returned %d installations, want 1", len(results))
	}
	if !results[0].Active {
		t.Error("best-ranked installation should be promoted to active when PATH finds nothing")
	}
}

func TestDiscoverDeterministic(t *testing.T) {
	base := t.TempDir()
	dirs := []string{"8.1", "8.2", "8.3"}
	for _, v := range dirs {
		installDir(t, filepath.Join(base, v))
	}

	ctx := platform.New(constants.OSLinux, nil)
	loc := newTestLocator(ctx, &fakeProber{})
	loc.SetTemplates([]Template{{
		Vendor:      "Versioned",
		Priority:    10,
		BasePaths:   []string{base},
		VersionGlob: "*",
	}})

	first := loc.Discover()
	second := loc.Discover()
	if len(first) != len(second) {
		t.Fatalf("run lengths differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].ExecutablePath != second[i].ExecutablePath {
			t.Errorf("order differs at %d: %s vs %s", i, first[i].ExecutablePath, second[i].ExecutablePath)
		}
	}
}

func TestDiscoverDeepScan(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "tools", "php-8.3")
	installDir(t, nested)
	tooDeep := filepath.Join(root, "a", "b", "c", "php-old")
	installDir(t, tooDeep)

	ctx := platform.New(constants.OSLinux, nil)
	loc := newTestLocator(ctx, &fakeProber{})
	loc.SetDeepScanRoots([]string{root}, 2)

	visited := 0
	loc.SetOnScanDir(func(string) { visited++ })

	results := loc.Discover()
	if len(results) != 1 {
		t.Fatalf("Discover returned %d installations, want only the one within depth: %v", len(results), results)
	}
	if results[0].BasePath != nested {
		t.Errorf("BasePath = %s, want %s", results[0].BasePath, nested)
	}
	if results[0].Priority != priorityDeepScan {
		t.Errorf("Priority = %d, want %d", results[0].Priority, priorityDeepScan)
	}
	if visited == 0 {
		t.Error("progress callback never fired")
	}
}

func TestResolveFrom(t *testing.T) {
	installations := []*Installation{
		{Version: "8.3.1", BasePath: "/opt/php83", ExecutablePath: "/opt/php83/bin/php", Priority: 0, Active: true},
		{Version: "8.2.7", BasePath: "/opt/php82", ExecutablePath: "/opt/php82/bin/php", Priority: 10},
		{Version: VersionUnknown, BasePath: "/home/dev/xampp/php", ExecutablePath: "/home/dev/xampp/php/php", Priority: 20},
	}

	tests := []struct {
		name     string
		hint     string
		expected string // expected BasePath
	}{
		{name: "exact version", hint: "8.2.7", expected: "/opt/php82"},
		{name: "version prefix", hint: "8.2", expected: "/opt/php82"},
		{name: "version substring", hint: "2.7", expected: "/opt/php82"},
		{name: "path substring", hint: "xampp", expected: "/home/dev/xampp/php"},
		{name: "no hint falls back to active", hint: "", expected: "/opt/php83"},
		{name: "unmatched hint falls back to active", hint: "7.4", expected: "/opt/php83"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inst, err := resolveFrom(installations, tt.hint)
			if err != nil {
				t.Fatalf("resolveFrom failed: %v", err)
			}
			if inst.BasePath != tt.expected {
				t.Errorf("resolved %s, want %s", inst.BasePath, tt.expected)
			}
		})
	}
}

func TestResolveFromEmpty(t *testing.T) {
	if _, err := resolveFrom(nil, ""); err != ErrNoInstallation {
		t.Errorf("err = %v, want ErrNoInstallation", err)
	}
}

func TestResolveFromNoActiveFallsBackToFirst(t *testing.T) {
	installations := []*Installation{
		{Version: "8.3.1", BasePath: "/opt/a"},
		{Version: "8.2.7", BasePath: "/opt/b"},
	}
	inst, err := resolveFrom(installations, "")
	if err != nil {
		t.Fatal(err)
	}
	if inst.BasePath != "/opt/a" {
		t.Errorf("resolved %s, want the best-ranked installation", inst.BasePath)
	}
}

func TestSortInstallations(t *testing.T) {
	installations := []*Installation{
		{Version: VersionUnknown, Priority: 10},
		{Version: "8.9.0", Priority: 10},
		{Version: "8.10.0", Priority: 10},
		{Version: "7.4.33", Priority: 0},
	}

	sortInstallations(installations)

	got := make([]string, len(installations))
	for i, inst := range installations {
		got[i] = inst.Version
	}
	want := []string{"7.4.33", "8.10.0", "8.9.0", VersionUnknown}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
}

func TestCompareVersions(t *testing.T) {
	tests := []struct {
		name     string
		a, b     string
		expected int
	}{
		{name: "numeric aware", a: "8.10.0", b: "8.9.0", expected: 1},
		{name: "equal", a: "8.3.1", b: "8.3.1", expected: 0},
		{name: "lesser", a: "7.4.33", b: "8.0.0", expected: -1},
		{name: "unknown sorts last", a: VersionUnknown, b: "5.6.40", expected: -1},
		{name: "empty sorts last", a: "", b: "5.6.40", expected: -1},
		{name: "unparsable falls back to strings", a: "dev-main", b: "dev-feature", expected: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := compareVersions(tt.a, tt.b); got != tt.expected {
				t.Errorf("compareVersions(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.expected)
			}
		})
	}
}

func TestVersionFromDirName(t *testing.T) {
	tests := []struct {
		name     string
		dir      string
		expected string
	}{
		{name: "plain version", dir: "8.3", expected: "8.3"},
		{name: "php dash prefix", dir: "php-8.2.15", expected: "8.2.15"},
		{name: "php prefix", dir: "php8.2", expected: "8.2"},
		{name: "uppercase", dir: "PHP-8.1", expected: "8.1"},
		{name: "not a version", dir: "mods-available", expected: ""},
		{name: "empty", dir: "", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := versionFromDirName(tt.dir); got != tt.expected {
				t.Errorf("versionFromDirName(%q) = %q, want %q", tt.dir, got, tt.expected)
			}
		})
	}
}

func TestPathDirs(t *testing.T) {
	tests := []struct {
		name     string
		os       string
		path     string
		expected []string
	}{
		{name: "unix colons", os: constants.OSLinux, path: "/usr/bin:/usr/local/bin", expected: []string{"/usr/bin", "/usr/local/bin"}},
		{name: "windows semicolons", os: constants.OSWindows, path: `C:\php;C:\tools`, expected: []string{`C:\php`, `C:\tools`}},
		{name: "empty segments dropped", os: constants.OSLinux, path: "/usr/bin::/sbin", expected: []string{"/usr/bin", "/sbin"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := platform.New(tt.os, map[string]string{"PATH": tt.path})
			loc := newTestLocator(ctx, &fakeProber{})
			got := loc.pathDirs()
			if len(got) != len(tt.expected) {
				t.Fatalf("pathDirs = %v, want %v", got, tt.expected)
			}
			for i := range got {
				if got[i] != tt.expected[i] {
					t.Errorf("pathDirs[%d] = %q, want %q", i, got[i], tt.expected[i])
				}
			}
		})
	}
}

func TestProbeMetadataFlowsIntoInstallation(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "inst")
	exe := installDir(t, dir)
	extDir := filepath.Join(dir, "ext")
	if err := os.MkdirAll(extDir, 0755); err != nil {
		t.Fatal(err)
	}

	ctx := platform.New(constants.OSLinux, map[string]string{"PATH": dir})
	prober := &fakeProber{infos: map[string]*ProbeInfo{
		exe: {
			Version:      "8.3.1",
			Architecture: "x64",
			ThreadSafety: "NTS",
			BuildDate:    "Jan  9 2024 10:00:00",
			ExtensionDir: extDir,
		},
	}}

	results := newTestLocator(ctx, prober).Discover()
	if len(results) != 1 {
		t.Fatalf("Discover returned %d installations, want 1", len(results))
	}

	inst := results[0]
	if inst.Version != "8.3.1" || inst.Architecture != "x64" || inst.ThreadSafety != "NTS" {
		t.Errorf("probe metadata lost: %+v", inst)
	}
	if inst.ExtensionDir != extDir {
		t.Errorf("ExtensionDir = %s, want %s", inst.ExtensionDir, extDir)
	}
}
