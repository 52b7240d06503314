package cmd

import (
	"fmt"

	"github.com/schollz/progressbar/v3"

	"github.com/phptune/phptune/src/internal/locator"
	"github.com/phptune/phptune/src/internal/platform"
	"github.com/phptune/phptune/src/internal/ui"
)

// newLocator builds the locator for the current platform with an
// indeterminate progress indicator wired to the deep-scan walker.
func newLocator() *locator.Locator {
	ctx := platform.Current()
	loc := locator.New(ctx)

	bar := progressbar.NewOptions(-1,
		progressbar.OptionSetDescription("Scanning"),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionClearOnFinish(),
	)
	loc.SetOnScanDir(func(dir string) {
		ui.Verbose("scanning %s", dir)
		_ = bar.Add(1)
	})

	return loc
}

// discoverInstallations runs discovery with a spinner and reports the
// outcome.
func discoverInstallations(loc *locator.Locator) []*locator.Installation {
	spinner := ui.NewSpinner("Looking for PHP installations...")
	spinner.Start()

	installations := loc.Discover()

	if len(installations) == 0 {
		spinner.Warning("No PHP installations found")
		return installations
	}

	spinner.Success(fmt.Sprintf("Found %d PHP installations", len(installations)))
	return installations
}
