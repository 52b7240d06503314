package cmd

import (
	"fmt"
	"strings"

	"github.com/phptune/phptune/src/internal/backup"
	"github.com/phptune/phptune/src/internal/constants"
	"github.com/phptune/phptune/src/internal/extmeta"
	"github.com/phptune/phptune/src/internal/fileaccess"
	"github.com/phptune/phptune/src/internal/inifile"
	"github.com/phptune/phptune/src/internal/platform"
	"github.com/phptune/phptune/src/internal/ui"
)

func runCustomize(versionHint string) {
	ctx := platform.Current()
	loc := newLocator()

	installations := discoverInstallations(loc)
	if len(installations) == 0 {
		ui.Error("No PHP installation found")
		ui.Info("Set PHPTUNE_PHP_HOME to point phptune at a custom install root")
		exitErr()
	}

	inst, err := loc.Resolve(versionHint)
	if err != nil {
		ui.Error("%v", err)
		exitErr()
	}

	ui.Header("Target installation")
	ui.Info("PHP %s [%s]", ui.HighlightVersion(inst.Version), inst.Environment)
	ui.Info("php.ini: %s", ui.HighlightPath(inst.IniPath))
	if inst.ExtensionDir != "" {
		ui.Info("Extensions: %s", ui.HighlightPath(inst.ExtensionDir))
	}

	extensions, settings := buildPlan()
	if len(extensions) == 0 && len(settings) == 0 {
		ui.Warning("Nothing to do: no extensions or settings selected")
		return
	}

	if !nonInteractive && !dryRun {
		if !confirm(fmt.Sprintf("Apply %d extensions and %d settings to %s?",
			len(extensions), len(settings), inst.IniPath)) {
			ui.Warning("Aborted, nothing was changed")
			return
		}
	}

	fs, err := chooseFileAccess(ctx, inst.IniPath)
	if err != nil {
		ui.Error("%v", err)
		exitErr()
	}

	archive := backup.NewArchive(fs)
	transformer := inifile.NewTransformer(fs, archive, ctx)
	transformer.SetDryRun(dryRun)

	if modules, err := loc.Prober().LoadedModules(inst.ExecutablePath); err == nil {
		transformer.SetLoadedModules(modules)
	}

	if ctx.OS == constants.OSLinux {
		transformer.SetAvailability(inifile.Chain(
			inifile.FileAvailability{Dir: inst.ExtensionDir, Ctx: ctx},
			inifile.NewDpkgAvailability(),
		))
	}

	report, err := transformer.Customize(inst.IniPath, inst.ExtensionDir, extensions, settings)
	if err != nil {
		ui.Error("%v", err)
		exitErr()
	}

	printReport(report)

	if !dryRun {
		if err := appendOperationLog(inst.IniPath, report); err != nil {
			ui.Verbose("could not record operation log: %v", err)
		}
	}
}

// buildPlan assembles the extension list and settings from the shipped
// defaults and the command-line flags.
func buildPlan() ([]string, []inifile.Setting) {
	var extensions []string
	var settings []inifile.Setting

	if !noDefaults {
		extensions = extmeta.DefaultExtensions()
		settings = extmeta.DefaultSettings()
	}
	extensions = append(extensions, extraExts...)

	for _, pair := range setFlags {
		key, value, found := strings.Cut(pair, "=")
		if !found || strings.TrimSpace(key) == "" {
			ui.Warning("Ignoring malformed --set value %q (expected key=value)", pair)
			continue
		}
		settings = append(settings, inifile.Setting{
			Key:   strings.TrimSpace(key),
			Value: strings.TrimSpace(value),
		})
	}

	return extensions, settings
}

// chooseFileAccess pre-checks writability and selects the direct or
// elevated implementation once, rather than re-detecting per operation.
func chooseFileAccess(ctx *platform.Context, iniPath string) (fileaccess.FileAccess, error) {
	if dryRun {
		return fileaccess.NewDirect(), nil
	}

	needsElevation, err := fileaccess.NeedsElevation(iniPath)
	if err != nil {
		return nil, err
	}
	if !needsElevation {
		return fileaccess.NewDirect(), nil
	}

	if ctx.IsWindows() {
		return nil, fmt.Errorf("%s is not writable; re-run phptune from an elevated (Administrator) shell", iniPath)
	}

	ui.Warning("%s is not writable by this user; file operations will use sudo", iniPath)
	if !nonInteractive && !confirm("Continue with sudo?") {
		return nil, fmt.Errorf("aborted: %s requires elevated privileges", iniPath)
	}
	return fileaccess.NewElevated(), nil
}

func confirm(question string) bool {
	ui.Printf("%s [Y/n]: ", question)

	var response string
	_, _ = fmt.Scanln(&response)
	response = strings.ToLower(strings.TrimSpace(response))

	return response == "" || response == constants.ResponseY || response == constants.ResponseYes
}

func printReport(report *inifile.Report) {
	if dryRun {
		ui.Header("Dry run, no files were modified")
	}

	for _, name := range report.Enabled {
		ui.Success("Enabled %s", name)
	}
	for _, name := range report.AlreadyEnabled {
		ui.Info("%s is already enabled", name)
	}
	for _, name := range report.AlreadyLoaded {
		ui.Info("%s is already loaded (built in)", name)
	}
	for _, name := range report.Missing {
		ui.Warning("%s is not available in the extension directory", name)
		if info, ok := extmeta.Lookup(name); ok {
			ui.Verbose("%s: %s", name, info.Description)
		}
	}
	for _, key := range report.Added {
		ui.Success("Added %s", key)
	}
	for _, key := range report.Updated {
		ui.Success("Updated %s", key)
	}

	if report.BackupPath != "" {
		ui.Info("Backup: %s", ui.HighlightPath(report.BackupPath))
	}

	if !report.Changed() {
		ui.Info("Configuration was already up to date")
	} else if !dryRun {
		ui.Success("php.ini updated")
	}

	if len(report.Missing) > 0 {
		ui.Info("Install the missing extensions with your package manager, e.g. apt install php-%s", report.Missing[0])
	}
}
