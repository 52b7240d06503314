package inifile

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/phptune/phptune/src/internal/platform"
)

// Availability decides whether an extension not mentioned in the ini can
// be enabled at all. The file-existence check covers platforms that ship
// discrete module files; dpkg covers Debian-family systems where modules
// arrive as packages.
type Availability interface {
	Available(name string) bool
}

// FileAvailability checks the extension directory for a module file
// named after the extension, using the platform's naming candidates.
type FileAvailability struct {
	Dir string
	Ctx *platform.Context
}

// Available reports whether a module file for name exists in Dir.
func (f FileAvailability) Available(name string) bool {
	if f.Dir == "" {
		return false
	}
	for _, candidate := range f.Ctx.ExtensionFileCandidates(name) {
		if _, err := os.Stat(filepath.Join(f.Dir, candidate)); err == nil {
			return true
		}
	}
	return false
}

// DpkgAvailability asks the Debian package database whether the
// extension's package is installed. The query runner is injectable so
// tests never shell out.
type DpkgAvailability struct {
	Query func(pkg string) ([]byte, error)
}

// NewDpkgAvailability creates the strategy with the real dpkg-query.
func NewDpkgAvailability() DpkgAvailability {
	return DpkgAvailability{
		Query: func(pkg string) ([]byte, error) {
			return exec.Command("dpkg-query", "-W", "-f=${Status}", pkg).Output()
		},
	}
}

// Available checks php-NAME and the versioned phpX.Y-NAME package names.
func (d DpkgAvailability) Available(name string) bool {
	for _, pkg := range []string{"php-" + name, "php8.3-" + name, "php8.2-" + name, "php8.1-" + name} {
		out, err := d.Query(pkg)
		if err != nil {
			continue
		}
		if strings.Contains(string(out), "install ok installed") {
			return true
		}
	}
	return false
}

// chainAvailability tries each strategy in order.
type chainAvailability []Availability

func (c chainAvailability) Available(name string) bool {
	for _, a := range c {
		if a.Available(name) {
			return true
		}
	}
	return false
}

// Chain combines strategies; the first positive answer wins.
func Chain(strategies ...Availability) Availability {
	return chainAvailability(strategies)
}
