package locator

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/phptune/phptune/src/internal/constants"
	"github.com/phptune/phptune/src/internal/platform"
)

// Template declares one vendor's on-disk layout: where installations may
// live, how versioned subdirectories are named, and where the ini file
// and extension directory sit relative to an installation. Static
// configuration, owned by the locator.
type Template struct {
	Vendor   string
	Priority int

	// BasePaths are candidate roots, already expanded from environment
	// variables and hard-coded fallbacks. Non-existent roots are skipped.
	BasePaths []string

	// VersionGlob, when set, matches versioned subdirectories of a base
	// path (e.g. "php*"); when empty the base path itself is probed as a
	// single installation.
	VersionGlob string

	// IniPaths and ExtensionDirs are candidates relative to the
	// installation directory unless absolute. "{version}" is replaced by
	// the version directory's name.
	IniPaths      []string
	ExtensionDirs []string

	// ExePaths are candidates for the executable, relative to the
	// installation directory unless absolute. When empty the standard
	// candidates (php binary at the root or under bin/) apply.
	ExePaths []string

	// DeepScan additionally walks the base path to MaxDepth looking for
	// directories holding a PHP executable missed by the layout rules.
	DeepScan bool
	MaxDepth int
}

// versionDirPattern accepts directory names that look like a version:
// numeric-dotted, optionally with a php prefix.
var versionDirPattern = regexp.MustCompile(`^(php-?)?\d+(\.\d+)*`)

// looksLikeVersionDir reports whether a directory name plausibly holds
// one PHP version.
func looksLikeVersionDir(name string) bool {
	lower := strings.ToLower(name)
	return versionDirPattern.MatchString(lower) || strings.Contains(lower, "php")
}

// expand substitutes {version} and resolves the candidate against the
// installation directory when relative.
func expand(candidate, installDir, version string) string {
	if strings.Contains(candidate, "{version}") && version == "" {
		return ""
	}
	candidate = strings.ReplaceAll(candidate, "{version}", version)
	if candidate == "" {
		return ""
	}
	if filepath.IsAbs(candidate) {
		return candidate
	}
	return filepath.Join(installDir, candidate)
}

// builtinTemplates returns the vendor layouts probed on the context's
// platform, in priority order. Environment-variable roots come first
// within each template so user-pointed installs win over defaults.
func builtinTemplates(ctx *platform.Context) []Template {
	switch ctx.OS {
	case constants.OSWindows:
		return windowsTemplates(ctx)
	case constants.OSDarwin:
		return darwinTemplates(ctx)
	default:
		return linuxTemplates(ctx)
	}
}

func windowsTemplates(ctx *platform.Context) []Template {
	laragonRoots := envPaths(ctx, "LARAGON_ROOT")
	laragonRoots = append(laragonRoots, `C:\laragon`)
	for i, root := range laragonRoots {
		laragonRoots[i] = filepath.Join(root, "bin", "php")
	}

	pvmRoots := envPaths(ctx, "PVM_ROOT", "PVM_HOME")
	if home := ctx.Getenv("USERPROFILE"); home != "" {
		pvmRoots = append(pvmRoots, filepath.Join(home, ".pvm", "php"))
	}
	pvmRoots = append(pvmRoots, `C:\tools\pvm\php`)

	xamppRoots := envPaths(ctx, "XAMPP_ROOT")
	xamppRoots = append(xamppRoots, `C:\xampp\php`, `D:\xampp\php`)

	return []Template{
		{
			Vendor:      "Laragon",
			Priority:    10,
			BasePaths:   laragonRoots,
			VersionGlob: "php*",
			DeepScan:    true,
			MaxDepth:    2,
		},
		{
			Vendor:      "PVM",
			Priority:    15,
			BasePaths:   pvmRoots,
			VersionGlob: "*",
		},
		{
			Vendor:    "XAMPP",
			Priority:  20,
			BasePaths: xamppRoots,
		},
		{
			Vendor:      "WAMP",
			Priority:    25,
			BasePaths:   []string{`C:\wamp64\bin\php`, `C:\wamp\bin\php`},
			VersionGlob: "php*",
		},
		{
			Vendor:    "Windows PHP",
			Priority:  40,
			BasePaths: []string{`C:\php`, `C:\tools\php`},
			DeepScan:  true,
			MaxDepth:  1,
		},
		customTemplate(ctx),
	}
}

func darwinTemplates(ctx *platform.Context) []Template {
	return []Template{
		{
			Vendor:      "Homebrew",
			Priority:    10,
			BasePaths:   []string{"/opt/homebrew/opt", "/usr/local/opt"},
			VersionGlob: "php*",
			ExePaths:    []string{"bin/php"},
			IniPaths: []string{
				"/opt/homebrew/etc/php/{version}/php.ini",
				"/usr/local/etc/php/{version}/php.ini",
			},
		},
		{
			Vendor:      "Homebrew Cellar",
			Priority:    15,
			BasePaths:   []string{"/opt/homebrew/Cellar/php", "/usr/local/Cellar/php"},
			VersionGlob: "*",
			ExePaths:    []string{"bin/php"},
		},
		{
			Vendor:    "macOS System",
			Priority:  30,
			BasePaths: []string{"/usr"},
			ExePaths:  []string{"bin/php"},
			IniPaths:  []string{"/etc/php.ini", "/private/etc/php.ini"},
		},
		customTemplate(ctx),
	}
}

func linuxTemplates(ctx *platform.Context) []Template {
	return []Template{
		{
			Vendor:      "APT",
			Priority:    10,
			BasePaths:   []string{"/etc/php"},
			VersionGlob: "*",
			ExePaths:    []string{"/usr/bin/php{version}", "/usr/bin/php"},
			IniPaths: []string{
				"/etc/php/{version}/cli/php.ini",
				"/etc/php/{version}/fpm/php.ini",
				"/etc/php/{version}/apache2/php.ini",
			},
			ExtensionDirs: []string{"/usr/lib/php/{version}"},
		},
		{
			Vendor:    "System",
			Priority:  20,
			BasePaths: []string{"/usr"},
			ExePaths:  []string{"bin/php"},
			IniPaths:  []string{"/etc/php.ini", "/etc/php/php.ini"},
		},
		{
			Vendor:    "Local Build",
			Priority:  30,
			BasePaths: []string{"/usr/local"},
			ExePaths:  []string{"bin/php"},
			IniPaths:  []string{"etc/php.ini", "lib/php.ini"},
			DeepScan:  true,
			MaxDepth:  2,
		},
		customTemplate(ctx),
	}
}

// customTemplate points at a user-declared install root, highest trust
// among templates.
func customTemplate(ctx *platform.Context) Template {
	return Template{
		Vendor:    "Custom",
		Priority:  8,
		BasePaths: envPaths(ctx, "PHPTUNE_PHP_HOME", "PHP_HOME"),
		DeepScan:  true,
		MaxDepth:  3,
	}
}

// envPaths collects non-empty environment variable values in order.
func envPaths(ctx *platform.Context, keys ...string) []string {
	paths := make([]string, 0, len(keys))
	for _, key := range keys {
		if v := ctx.Getenv(key); v != "" {
			paths = append(paths, v)
		}
	}
	return paths
}
