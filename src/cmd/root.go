// Package cmd implements the CLI commands for phptune
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/phptune/phptune/src/internal/config"
	"github.com/phptune/phptune/src/internal/tui"
	"github.com/phptune/phptune/src/internal/ui"
)

var (
	verbose        bool
	listOnly       bool
	nonInteractive bool
	dryRun         bool
	extraExts      []string
	setFlags       []string
	noDefaults     bool
)

var rootCmd = &cobra.Command{
	Use:   "phptune [version]",
	Short: "PHP installation discovery and php.ini tuning",
	Long: `phptune locates PHP installations on this machine and rewrites their
php.ini to enable a curated set of extensions and apply settings tuned
for Laravel-style web development.

Examples:
  phptune             # customize the active PHP installation
  phptune 8.3         # customize the installation matching version 8.3
  phptune --list      # only list discovered installations
  phptune --dry-run   # show what would change without writing`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if listOnly {
			runList()
			return
		}
		hint := ""
		if len(args) > 0 {
			hint = args[0]
		}
		runCustomize(hint)
	},
}

// Execute runs the root command. Exit code 1 on any unrecoverable error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		// Error already printed by Cobra, just exit with error code
		os.Exit(1)
	}
}

// exitErr terminates the command with exit code 1.
func exitErr() {
	os.Exit(1)
}

func init() {
	rootCmd.CompletionOptions.HiddenDefaultCmd = true

	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Enable verbose output for debugging")
	rootCmd.Flags().BoolVarP(&listOnly, "list", "l", false, "Only list discovered installations")
	rootCmd.Flags().BoolVarP(&nonInteractive, "yes", "y", false, "Do not prompt for confirmation")
	rootCmd.Flags().BoolVar(&nonInteractive, "non-interactive", false, "Alias for --yes")
	rootCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Report changes without writing anything")
	rootCmd.Flags().StringSliceVarP(&extraExts, "extensions", "e", nil, "Additional extensions to enable")
	rootCmd.Flags().StringArrayVarP(&setFlags, "set", "s", nil, "Setting to apply as key=value (repeatable)")
	rootCmd.Flags().BoolVar(&noDefaults, "no-defaults", false, "Skip the shipped extension and setting defaults")

	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		ui.SetVerbose(verbose)
		if err := config.EnsureDirectories(); err != nil {
			ui.Verbose("could not create phptune directories: %v", err)
		}
	}

	rootCmd.SetUsageFunc(customUsage)
	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		_ = customUsage(cmd)
	})
}

func customUsage(cmd *cobra.Command) error {
	const tableWidth = 90

	headerTable := tui.NewTable("")
	headerTable.SetTitle(cmd.Short)
	headerTable.HideHeader()
	headerTable.SetMinWidth(tableWidth)
	headerTable.AddRow("phptune finds every PHP installation on this machine (Laragon, XAMPP, WAMP,")
	headerTable.AddRow("Homebrew, APT, PATH, registry) and safely patches php.ini with a backup trail.")

	fmt.Println(headerTable.Render())
	fmt.Println()

	table := tui.NewTable("Command", "Description")
	table.SetTitle("Available Commands")
	table.SetMinWidth(tableWidth)

	for _, c := range cmd.Root().Commands() {
		if c.Hidden || c.Name() == "completion" {
			continue
		}
		table.AddRow(c.Name(), c.Short)
	}

	fmt.Println(table.Render())

	return nil
}
