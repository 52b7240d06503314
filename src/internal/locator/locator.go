package locator

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/phptune/phptune/src/internal/constants"
	"github.com/phptune/phptune/src/internal/platform"
)

// ErrNoInstallation is returned when discovery finds nothing usable.
var ErrNoInstallation = errors.New("no PHP installation found")

// Priority bands per discovery method. Templates carry their own
// priorities within the template band.
const (
	priorityPath     = 0
	priorityRegistry = 5
	priorityDeepScan = 90
)

// Locator discovers PHP installations. All inputs (platform facts,
// templates, prober, registry) are injected, so discovery is
// deterministic given a filesystem snapshot.
type Locator struct {
	ctx            *platform.Context
	prober         Prober
	templates      []Template
	registrySource func() []string
	deepScanRoots  []string
	deepScanDepth  int
	onScanDir      func(dir string)
}

// New creates a Locator with the built-in vendor templates and the
// subprocess prober for the given context.
func New(ctx *platform.Context) *Locator {
	l := &Locator{
		ctx:            ctx,
		prober:         NewExecProber(),
		templates:      builtinTemplates(ctx),
		registrySource: registryInstallDirs,
		deepScanDepth:  2,
	}
	if ctx.IsWindows() {
		l.deepScanRoots = []string{`C:\`, `D:\`}
	}
	return l
}

// SetProber replaces the executable prober. Tests use a fake.
func (l *Locator) SetProber(p Prober) {
	l.prober = p
}

// SetTemplates replaces the vendor templates.
func (l *Locator) SetTemplates(templates []Template) {
	l.templates = templates
}

// SetRegistrySource replaces the Windows registry lookup.
func (l *Locator) SetRegistrySource(source func() []string) {
	l.registrySource = source
}

// SetDeepScanRoots replaces the common-roots deep scan targets.
func (l *Locator) SetDeepScanRoots(roots []string, maxDepth int) {
	l.deepScanRoots = roots
	l.deepScanDepth = maxDepth
}

// SetOnScanDir installs a progress callback fired once per directory
// visited during deep scans.
func (l *Locator) SetOnScanDir(fn func(dir string)) {
	l.onScanDir = fn
}

// Prober returns the configured prober, for callers that want to run
// follow-up introspection (loaded modules) on a discovered executable.
func (l *Locator) Prober() Prober {
	return l.prober
}

// Discover probes every discovery method in decreasing trust order and
// returns the deduplicated, priority-sorted installations. A single
// failing probe never aborts the scan; only an empty final list is an
// error for the resolve operations built on top.
func (l *Locator) Discover() []*Installation {
	seen := make(map[string]bool)
	results := make([]*Installation, 0)

	add := func(inst *Installation) bool {
		if inst == nil {
			return false
		}
		key := inst.dedupKey()
		if seen[key] {
			return false
		}
		seen[key] = true
		results = append(results, inst)
		return true
	}

	// 1. PATH resolution, highest trust. The first hit is what the bare
	// php command runs, so it alone is marked active.
	activeFound := false
	for _, dir := range l.pathDirs() {
		exe := filepath.Join(dir, l.ctx.PHPBinaryName())
		if !l.isExecutableFile(exe) {
			continue
		}
		inst := l.newInstallation(exe, dir, "System PATH", priorityPath, nil, "")
		if inst != nil && !activeFound {
			inst.Active = true
		}
		if add(inst) && inst.Active {
			activeFound = true
		}
	}

	// 2. Windows registry.
	if l.ctx.IsWindows() && l.registrySource != nil {
		for _, dir := range l.registrySource() {
			exe := l.findExecutable(dir, nil, "")
			if exe == "" {
				continue
			}
			add(l.newInstallation(exe, dir, "Registry", priorityRegistry, nil, ""))
		}
	}

	// 3. Vendor templates.
	for i := range l.templates {
		l.discoverTemplate(&l.templates[i], add)
	}

	// 4. Bounded deep scan of common roots, lowest trust.
	for _, root := range l.deepScanRoots {
		for _, dir := range findExecutableDirs(root, l.deepScanDepth, l.ctx.PHPBinaryName(), l.onScanDir) {
			exe := filepath.Join(dir, l.ctx.PHPBinaryName())
			add(l.newInstallation(exe, dir, "Deep Scan", priorityDeepScan, nil, ""))
		}
	}

	sortInstallations(results)

	if !activeFound && len(results) > 0 {
		results[0].Active = true
	}

	return results
}

func (l *Locator) discoverTemplate(tpl *Template, add func(*Installation) bool) {
	for _, base := range tpl.BasePaths {
		info, err := os.Stat(base)
		if err != nil || !info.IsDir() {
			continue
		}

		if tpl.VersionGlob == "" {
			exe := l.findExecutable(base, tpl, "")
			if exe != "" {
				add(l.newInstallation(exe, base, tpl.Vendor, tpl.Priority, tpl, ""))
			}
		} else {
			entries, err := os.ReadDir(base)
			if err == nil {
				for _, entry := range entries {
					if !entry.IsDir() {
						continue
					}
					name := entry.Name()
					if ok, _ := filepath.Match(tpl.VersionGlob, name); !ok {
						continue
					}
					if !looksLikeVersionDir(name) {
						continue
					}
					versionDir := filepath.Join(base, name)
					exe := l.findExecutable(versionDir, tpl, name)
					if exe == "" {
						continue
					}
					add(l.newInstallation(exe, versionDir, tpl.Vendor, tpl.Priority, tpl, name))
				}
			}
		}

		if tpl.DeepScan {
			for _, dir := range findExecutableDirs(base, tpl.MaxDepth, l.ctx.PHPBinaryName(), l.onScanDir) {
				exe := filepath.Join(dir, l.ctx.PHPBinaryName())
				add(l.newInstallation(exe, dir, tpl.Vendor, tpl.Priority+2, nil, ""))
			}
		}
	}
}

// findExecutable resolves the PHP executable for an installation
// directory: the template's declared candidates first, then the
// conventional spots, then a shallow recursive search.
func (l *Locator) findExecutable(installDir string, tpl *Template, versionName string) string {
	binName := l.ctx.PHPBinaryName()

	if tpl != nil && len(tpl.ExePaths) > 0 {
		for _, candidate := range tpl.ExePaths {
			path := expand(candidate, installDir, versionName)
			if path != "" && l.isExecutableFile(path) {
				return path
			}
		}
		return ""
	}

	for _, candidate := range []string{
		filepath.Join(installDir, binName),
		filepath.Join(installDir, "bin", binName),
	} {
		if l.isExecutableFile(candidate) {
			return candidate
		}
	}

	if exe, ok := containsExecutable(installDir, 2, binName); ok && l.isExecutableFile(exe) {
		return exe
	}
	return ""
}

// newInstallation builds an Installation for a verified executable, or
// nil when no ini file can be located (such candidates are discarded).
func (l *Locator) newInstallation(exePath, basePath, vendor string, priority int, tpl *Template, versionName string) *Installation {
	info, err := l.prober.Introspect(exePath)
	if err != nil || info == nil {
		// A broken executable contributes no metadata but the files on
		// disk may still identify a usable installation.
		info = &ProbeInfo{Version: VersionUnknown}
	}

	version := info.Version
	if version == VersionUnknown || version == "" {
		if derived := versionFromDirName(versionName); derived != "" {
			version = derived
		} else {
			version = VersionUnknown
		}
	}

	iniPath := l.findIniPath(basePath, exePath, info, tpl, versionName)
	if iniPath == "" {
		return nil
	}

	return &Installation{
		Version:        version,
		BasePath:       basePath,
		IniPath:        iniPath,
		ExtensionDir:   l.findExtensionDir(basePath, exePath, info, tpl, versionName),
		ExecutablePath: exePath,
		Environment:    vendor,
		Architecture:   info.Architecture,
		ThreadSafety:   info.ThreadSafety,
		BuildDate:      info.BuildDate,
		Priority:       priority,
	}
}

// findIniPath tries the template's declared locations, what the
// executable itself reports, then the conventional fallbacks.
func (l *Locator) findIniPath(basePath, exePath string, info *ProbeInfo, tpl *Template, versionName string) string {
	candidates := make([]string, 0, 16)

	if tpl != nil {
		for _, c := range tpl.IniPaths {
			if p := expand(c, basePath, versionName); p != "" {
				candidates = append(candidates, p)
			}
		}
	}
	if info.IniPath != "" {
		candidates = append(candidates, info.IniPath)
	}

	exeDir := filepath.Dir(exePath)
	candidates = append(candidates,
		filepath.Join(basePath, "php.ini"),
		filepath.Join(exeDir, "php.ini"),
		filepath.Join(basePath, "conf", "php.ini"),
		filepath.Join(basePath, "etc", "php.ini"),
		filepath.Join(basePath, "php.ini-development"),
		filepath.Join(basePath, "php.ini-production"),
		filepath.Join(exeDir, "php.ini-development"),
		filepath.Join(exeDir, "php.ini-production"),
	)

	if l.ctx.IsWindows() {
		if windir := l.ctx.Getenv("WINDIR"); windir != "" {
			candidates = append(candidates, filepath.Join(windir, "php.ini"))
		}
	} else {
		candidates = append(candidates,
			"/etc/php.ini",
			"/usr/local/etc/php.ini",
			"/usr/local/lib/php.ini",
		)
	}

	for _, candidate := range candidates {
		if info, err := os.Stat(candidate); err == nil && info.Mode().IsRegular() {
			return candidate
		}
	}
	return ""
}

// findExtensionDir tries the template's declared locations, the
// conventional spots, then whatever the executable reports even if the
// directory does not exist yet.
func (l *Locator) findExtensionDir(basePath, exePath string, info *ProbeInfo, tpl *Template, versionName string) string {
	candidates := make([]string, 0, 8)

	if tpl != nil {
		for _, c := range tpl.ExtensionDirs {
			if p := expand(c, basePath, versionName); p != "" {
				candidates = append(candidates, p)
			}
		}
	}

	exeDir := filepath.Dir(exePath)
	candidates = append(candidates,
		filepath.Join(exeDir, "ext"),
		filepath.Join(basePath, "ext"),
		filepath.Join(exeDir, "extensions"),
	)
	if info.ExtensionDir != "" {
		candidates = append(candidates, info.ExtensionDir)
	}

	for _, candidate := range candidates {
		if stat, err := os.Stat(candidate); err == nil && stat.IsDir() {
			return candidate
		}
	}

	// The reported directory may simply not exist yet; still worth
	// handing to the transformer for the extension_dir directive.
	return info.ExtensionDir
}

// pathDirs returns the directories on the context's PATH.
func (l *Locator) pathDirs() []string {
	pathVar := l.ctx.Getenv("PATH")
	if pathVar == "" {
		pathVar = l.ctx.Getenv("Path")
	}
	sep := ":"
	if l.ctx.IsWindows() {
		sep = ";"
	}

	dirs := make([]string, 0)
	for _, dir := range strings.Split(pathVar, sep) {
		if dir = strings.TrimSpace(dir); dir != "" {
			dirs = append(dirs, dir)
		}
	}
	return dirs
}

func (l *Locator) isExecutableFile(path string) bool {
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return false
	}
	if l.ctx.IsWindows() {
		return strings.EqualFold(filepath.Ext(path), constants.ExtExe)
	}
	return info.Mode().Perm()&0111 != 0
}

// versionFromDirName derives a version from a directory name like
// "php-8.2.15", "php8.2" or "8.3".
func versionFromDirName(name string) string {
	if name == "" {
		return ""
	}
	lower := strings.ToLower(name)
	lower = strings.TrimPrefix(lower, "php-")
	lower = strings.TrimPrefix(lower, "php")
	lower = strings.Trim(lower, "-_")
	if lower == "" || !versionDirPattern.MatchString(lower) {
		return ""
	}
	return lower
}

// Resolve picks the installation matching the version hint, trying
// exact, prefix, substring, and path-substring matches in that order.
// Without a hint (or without a match) it falls back to the active
// installation, then the best-ranked one.
func (l *Locator) Resolve(versionHint string) (*Installation, error) {
	installations := l.Discover()
	return resolveFrom(installations, versionHint)
}

// ResolvePaths returns the ini path and extension directory of the
// installation selected by Resolve.
func (l *Locator) ResolvePaths(versionHint string) (iniPath, extensionDir string, err error) {
	inst, err := l.Resolve(versionHint)
	if err != nil {
		return "", "", err
	}
	return inst.IniPath, inst.ExtensionDir, nil
}

// resolveFrom applies the hint-matching ladder to an installation list.
func resolveFrom(installations []*Installation, versionHint string) (*Installation, error) {
	if len(installations) == 0 {
		return nil, ErrNoInstallation
	}

	if hint := strings.TrimSpace(versionHint); hint != "" {
		for _, inst := range installations {
			if inst.Version == hint {
				return inst, nil
			}
		}
		for _, inst := range installations {
			if strings.HasPrefix(inst.Version, hint) {
				return inst, nil
			}
		}
		for _, inst := range installations {
			if strings.Contains(inst.Version, hint) {
				return inst, nil
			}
		}
		for _, inst := range installations {
			if strings.Contains(inst.BasePath, hint) || strings.Contains(inst.ExecutablePath, hint) {
				return inst, nil
			}
		}
	}

	for _, inst := range installations {
		if inst.Active {
			return inst, nil
		}
	}
	return installations[0], nil
}
