package cmd

import (
	"github.com/spf13/cobra"

	"github.com/phptune/phptune/src/internal/ui"
)

// Build-time values injected via -ldflags
var (
	buildVersion = "dev"
	buildCommit  = "none"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show the phptune version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ui.Println("phptune %s (%s)", buildVersion, buildCommit)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
