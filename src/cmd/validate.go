package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/phptune/phptune/src/internal/inifile"
	"github.com/phptune/phptune/src/internal/ui"
)

var validateCmd = &cobra.Command{
	Use:   "validate [version]",
	Short: "Check an installation's php.ini for syntax problems",
	Long: `Parse the resolved php.ini and report lines that do not look like
valid ini syntax. Warnings are informational and never modify the file.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		iniPath := resolveIniPath(args)

		data, err := os.ReadFile(iniPath)
		if err != nil {
			ui.Error("Cannot read %s: %v", iniPath, err)
			exitErr()
		}

		warnings := inifile.Validate(string(data))
		if len(warnings) == 0 {
			ui.Success("%s looks valid", iniPath)
			return
		}

		ui.Warning("%d potential problems in %s", len(warnings), iniPath)
		for _, w := range warnings {
			ui.Info("%s", w)
		}
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
