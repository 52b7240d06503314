package locator

import (
	"context"
	"os/exec"
	"regexp"
	"strings"
	"time"
)

// probeTimeout bounds every subprocess invocation so a hung PHP build
// cannot stall the scan.
const probeTimeout = 5 * time.Second

// ProbeInfo is what one executable reported about itself. Zero fields
// mean the executable declined to answer; a failed probe is never an
// error at the discovery level.
type ProbeInfo struct {
	Version      string
	Architecture string
	ThreadSafety string
	BuildDate    string
	ExtensionDir string
	IniPath      string
}

// Prober introspects a PHP executable. Tests substitute a fake so
// discovery runs against synthetic filesystem layouts.
type Prober interface {
	// Introspect invokes the executable for version and build metadata.
	Introspect(exePath string) (*ProbeInfo, error)

	// LoadedModules returns the modules the executable reports via -m.
	LoadedModules(exePath string) ([]string, error)
}

var (
	versionPattern   = regexp.MustCompile(`PHP (\d+\.\d+\.\d+[\w.\-]*)`)
	buildDatePattern = regexp.MustCompile(`\(built: ([^)]+)\)`)
	archPattern      = regexp.MustCompile(`\b(x64|x86|arm64|aarch64)\b`)
	loadedIniPattern = regexp.MustCompile(`Loaded Configuration File:\s*(.+)`)
)

// ExecProber runs the real executable with stderr discarded and a hard
// timeout, so one broken installation cannot corrupt or hang discovery.
type ExecProber struct{}

// NewExecProber creates the subprocess-backed prober.
func NewExecProber() *ExecProber {
	return &ExecProber{}
}

func (p *ExecProber) run(exePath string, args ...string) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), probeTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, exePath, args...)
	cmd.Stderr = nil
	out, err := cmd.Output()
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// Introspect parses `php -v`, `php --ini`, and an ini_get call into a
// ProbeInfo. Individual failures leave the corresponding field empty.
func (p *ExecProber) Introspect(exePath string) (*ProbeInfo, error) {
	info := &ProbeInfo{Version: VersionUnknown}

	out, err := p.run(exePath, "-v")
	if err != nil {
		return info, err
	}

	if m := versionPattern.FindStringSubmatch(out); m != nil {
		info.Version = m[1]
	}
	if m := buildDatePattern.FindStringSubmatch(out); m != nil {
		info.BuildDate = strings.TrimSpace(m[1])
	}
	if m := archPattern.FindStringSubmatch(out); m != nil {
		info.Architecture = m[1]
	}
	if strings.Contains(out, "ZTS") {
		info.ThreadSafety = "ZTS"
	} else if strings.Contains(out, "NTS") {
		info.ThreadSafety = "NTS"
	}

	if out, err := p.run(exePath, "-r", "echo ini_get('extension_dir');"); err == nil {
		info.ExtensionDir = strings.TrimSpace(out)
	}

	if out, err := p.run(exePath, "--ini"); err == nil {
		if m := loadedIniPattern.FindStringSubmatch(out); m != nil {
			loaded := strings.TrimSpace(m[1])
			if loaded != "(none)" {
				info.IniPath = loaded
			}
		}
	}

	return info, nil
}

// LoadedModules parses `php -m` output, skipping the section headers.
func (p *ExecProber) LoadedModules(exePath string) ([]string, error) {
	out, err := p.run(exePath, "-m")
	if err != nil {
		return nil, err
	}

	modules := make([]string, 0)
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "[") {
			continue
		}
		modules = append(modules, line)
	}
	return modules, nil
}
