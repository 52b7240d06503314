// Package platform provides an explicit snapshot of the OS facts the
// locator and transformer branch on, so their logic stays pure and
// testable with a substituted context.
package platform

import (
	"os"
	goruntime "runtime"
	"strings"

	"github.com/phptune/phptune/src/internal/constants"
)

// Context captures everything platform-specific the core needs: which OS
// we are on, how executables and extension files are named, and a
// point-in-time snapshot of the environment variables.
type Context struct {
	OS        string
	Arch      string
	ExeSuffix string            // ".exe" on Windows, "" elsewhere
	Env       map[string]string // environment snapshot, not live
}

// Current returns a Context for the running process.
func Current() *Context {
	return &Context{
		OS:        goruntime.GOOS,
		Arch:      goruntime.GOARCH,
		ExeSuffix: exeSuffix(goruntime.GOOS),
		Env:       snapshotEnv(),
	}
}

// New builds a Context for an arbitrary OS with the given environment.
// Used by tests to exercise other platforms' discovery logic.
func New(osName string, env map[string]string) *Context {
	if env == nil {
		env = map[string]string{}
	}
	return &Context{
		OS:        osName,
		Arch:      goruntime.GOARCH,
		ExeSuffix: exeSuffix(osName),
		Env:       env,
	}
}

func exeSuffix(osName string) string {
	if osName == constants.OSWindows {
		return constants.ExtExe
	}
	return ""
}

func snapshotEnv() map[string]string {
	env := make(map[string]string)
	for _, kv := range os.Environ() {
		if i := strings.Index(kv, "="); i > 0 {
			env[kv[:i]] = kv[i+1:]
		}
	}
	return env
}

// Getenv reads a variable from the snapshot.
func (c *Context) Getenv(key string) string {
	return c.Env[key]
}

// PHPBinaryName returns the PHP executable file name for this platform.
func (c *Context) PHPBinaryName() string {
	return constants.PHPBinary + c.ExeSuffix
}

// IsWindows reports whether the context describes a Windows host.
func (c *Context) IsWindows() bool {
	return c.OS == constants.OSWindows
}

// ExtensionFileCandidates returns the file names an extension module may
// be shipped under in an extension directory, in probe order.
// Windows builds use php_NAME.dll (sometimes bare NAME.dll); Unix builds
// use NAME.so, with libNAME.so seen on some distributions; macOS also
// ships .dylib modules.
func (c *Context) ExtensionFileCandidates(name string) []string {
	switch c.OS {
	case constants.OSWindows:
		return []string{
			"php_" + name + constants.ExtDLL,
			name + constants.ExtDLL,
		}
	case constants.OSDarwin:
		return []string{
			name + constants.ExtSO,
			name + constants.ExtDylib,
			"php_" + name + constants.ExtSO,
		}
	default:
		return []string{
			name + constants.ExtSO,
			"lib" + name + constants.ExtSO,
			"php_" + name + constants.ExtSO,
		}
	}
}
