package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/phptune/phptune/src/internal/tui"
	"github.com/phptune/phptune/src/internal/ui"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List discovered PHP installations",
	Long: `Scan the machine for PHP installations and list them with their
version, vendor environment, php.ini path, and extension directory.

Examples:
  phptune list
  phptune --list   # same thing`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		runList()
	},
}

func runList() {
	tui.Init()
	loc := newLocator()
	installations := discoverInstallations(loc)

	if len(installations) == 0 {
		ui.Error("No PHP installations found")
		ui.Info("Set PHPTUNE_PHP_HOME to point phptune at a custom install root")
		exitErr()
	}

	table := tui.NewTable("", "Version", "Environment", "php.ini", "Extension dir")
	table.SetTitle(fmt.Sprintf("PHP installations (%d)", len(installations)))

	for _, inst := range installations {
		marker := ""
		if inst.Active {
			marker = tui.CheckMark
		}
		row := []string{marker, inst.Version, inst.Environment, inst.IniPath, shorten(inst.ExtensionDir)}
		if inst.Active {
			table.AddActiveRow(row...)
		} else {
			table.AddRow(row...)
		}
	}

	fmt.Println(table.Render())

	for _, inst := range installations {
		ui.Verbose("%s: %s (%s %s %s)", inst.Environment, inst.ExecutablePath,
			inst.Architecture, inst.ThreadSafety, inst.BuildDate)
	}
}

// shorten trims very long paths for table display.
func shorten(path string) string {
	const max = 48
	if len(path) <= max {
		return path
	}
	return "..." + path[len(path)-max+3:]
}

func init() {
	rootCmd.AddCommand(listCmd)
}
