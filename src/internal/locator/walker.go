package locator

import (
	"os"
	"path/filepath"
	"strings"
)

// skipDirs are never descended into during deep scans. They are either
// enormous, irrelevant, or both.
var skipDirs = map[string]bool{
	".git":                      true,
	"node_modules":              true,
	"vendor":                    true,
	"$recycle.bin":              true,
	"system volume information": true,
	"windows":                   true,
	"proc":                      true,
	"sys":                       true,
	"dev":                       true,
	"run":                       true,
}

// findExecutableDirs walks root to maxDepth and returns every directory
// that directly contains a file named exeName. One shared walker serves
// both template deep scans and the standalone common-roots scan; onVisit
// (optional) fires once per directory for progress feedback. Unreadable
// directories are skipped silently.
func findExecutableDirs(root string, maxDepth int, exeName string, onVisit func(dir string)) []string {
	var found []string
	walkForExecutable(root, 0, maxDepth, exeName, onVisit, &found)
	return found
}

func walkForExecutable(dir string, depth, maxDepth int, exeName string, onVisit func(string), found *[]string) {
	if onVisit != nil {
		onVisit(dir)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}

	for _, entry := range entries {
		name := entry.Name()
		if !entry.IsDir() {
			if name == exeName {
				*found = append(*found, dir)
			}
			continue
		}
		if depth >= maxDepth || skipDirs[strings.ToLower(name)] {
			continue
		}
		// Symlinked directories are skipped to keep the walk bounded.
		if entry.Type()&os.ModeSymlink != 0 {
			continue
		}
		walkForExecutable(filepath.Join(dir, name), depth+1, maxDepth, exeName, onVisit, found)
	}
}

// containsExecutable reports whether dir (or a subdirectory within
// maxDepth) holds a file named exeName. Used to verify that a
// version-looking directory really is an installation.
func containsExecutable(dir string, maxDepth int, exeName string) (string, bool) {
	dirs := findExecutableDirs(dir, maxDepth, exeName, nil)
	if len(dirs) == 0 {
		return "", false
	}
	return filepath.Join(dirs[0], exeName), true
}
