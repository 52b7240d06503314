// Package locator discovers PHP installations across heterogeneous
// vendor layouts (Laragon, XAMPP, WAMP, PVM, Homebrew, APT, registry,
// PATH, deep scans) and resolves the php.ini and extension directory the
// transformer should target.
package locator

import (
	"fmt"
	"sort"

	goversion "github.com/hashicorp/go-version"
)

// VersionUnknown is recorded when the executable could not report its
// version (broken build, probe timeout).
const VersionUnknown = "unknown"

// Installation is one discovered PHP runtime. Constructed fresh on every
// discovery run; never mutated afterward except for the single Active
// promotion.
type Installation struct {
	Version        string `json:"version"`
	BasePath       string `json:"basePath"`
	IniPath        string `json:"iniPath"`
	ExtensionDir   string `json:"extensionDir"`
	ExecutablePath string `json:"executablePath"`
	Environment    string `json:"environment"`
	Active         bool   `json:"active"`
	Architecture   string `json:"architecture,omitempty"`
	ThreadSafety   string `json:"threadSafety,omitempty"`
	BuildDate      string `json:"buildDate,omitempty"`
	Priority       int    `json:"priority"`
}

func (inst *Installation) String() string {
	marker := ""
	if inst.Active {
		marker = " (active)"
	}
	return fmt.Sprintf("PHP %s [%s]%s %s", inst.Version, inst.Environment, marker, inst.ExecutablePath)
}

// dedupKey identifies an installation across discovery methods so later,
// lower-trust methods never re-add an executable already found.
func (inst *Installation) dedupKey() string {
	return inst.BasePath + "|" + inst.ExecutablePath
}

// sortInstallations orders by priority ascending, then version
// descending with numeric-aware comparison.
func sortInstallations(installations []*Installation) {
	sort.SliceStable(installations, func(i, j int) bool {
		if installations[i].Priority != installations[j].Priority {
			return installations[i].Priority < installations[j].Priority
		}
		return compareVersions(installations[i].Version, installations[j].Version) > 0
	})
}

// compareVersions compares two version strings numerically where
// possible, falling back to plain string comparison for unparsable
// values. Unknown versions sort last.
func compareVersions(a, b string) int {
	if a == b {
		return 0
	}
	if a == VersionUnknown || a == "" {
		return -1
	}
	if b == VersionUnknown || b == "" {
		return 1
	}

	va, errA := goversion.NewVersion(a)
	vb, errB := goversion.NewVersion(b)
	if errA == nil && errB == nil {
		return va.Compare(vb)
	}

	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
