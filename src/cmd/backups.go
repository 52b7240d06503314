package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/phptune/phptune/src/internal/backup"
	"github.com/phptune/phptune/src/internal/fileaccess"
	"github.com/phptune/phptune/src/internal/tui"
	"github.com/phptune/phptune/src/internal/ui"
)

var (
	backupDescription string
	cleanupKeep       int
	cleanupAge        int
)

var backupsCmd = &cobra.Command{
	Use:   "backups",
	Short: "Manage php.ini backups",
}

var backupsCreateCmd = &cobra.Command{
	Use:   "create [version]",
	Short: "Create a backup of an installation's php.ini",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		iniPath := resolveIniPath(args)
		archive := backup.NewArchive(fileaccess.NewDirect())

		backupPath := archive.CreateOrWarn(iniPath)
		if backupPath == "" {
			exitErr()
		}
		if backupDescription != "" {
			if err := archive.WriteMeta(backupPath, backupDescription, iniPath, ""); err != nil {
				ui.Warning("Backup created but metadata could not be written: %v", err)
			}
		}
		ui.Success("Backup created: %s", backupPath)
	},
}

var backupsListCmd = &cobra.Command{
	Use:   "list [version]",
	Short: "List backups for an installation's php.ini",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		iniPath := resolveIniPath(args)
		archive := backup.NewArchive(fileaccess.NewDirect())

		backups, err := archive.List(iniPath)
		if err != nil {
			ui.Error("%v", err)
			exitErr()
		}
		if len(backups) == 0 {
			ui.Info("No backups found for %s", iniPath)
			return
		}

		table := tui.NewTable("Backup", "Description")
		table.SetTitle(fmt.Sprintf("Backups of %s", iniPath))
		for _, b := range backups {
			description := ""
			if meta, err := archive.ReadMeta(b); err == nil {
				description = meta.Description
			}
			table.AddRow(b, description)
		}
		fmt.Println(table.Render())
	},
}

var backupsRestoreCmd = &cobra.Command{
	Use:   "restore <backup-file> [version]",
	Short: "Restore a backup over an installation's php.ini",
	Args:  cobra.RangeArgs(1, 2),
	Run: func(cmd *cobra.Command, args []string) {
		backupPath := args[0]
		iniPath := resolveIniPath(args[1:])
		archive := backup.NewArchive(fileaccess.NewDirect())

		if !nonInteractive && !confirm(fmt.Sprintf("Overwrite %s with %s?", iniPath, backupPath)) {
			ui.Warning("Aborted, nothing was changed")
			return
		}

		if err := archive.Restore(backupPath, iniPath); err != nil {
			ui.Error("%v", err)
			exitErr()
		}
		ui.Success("Restored %s", iniPath)
	},
}

var backupsCleanupCmd = &cobra.Command{
	Use:   "cleanup [version]",
	Short: "Delete old backups beyond the keep count",
	Long: `Delete backups that are both beyond the --keep most recent ones and
older than --days. Backups inside the keep window are never deleted
regardless of age.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		iniPath := resolveIniPath(args)
		archive := backup.NewArchive(fileaccess.NewDirect())

		removed, err := archive.Cleanup(iniPath, cleanupKeep, cleanupAge)
		if err != nil {
			ui.Error("%v", err)
			exitErr()
		}
		if len(removed) == 0 {
			ui.Info("No backups eligible for cleanup")
			return
		}
		for _, b := range removed {
			ui.Verbose("deleted %s", b)
		}
		ui.Success("Deleted %d backups", len(removed))
	},
}

// resolveIniPath resolves the target php.ini from an optional version
// hint argument.
func resolveIniPath(args []string) string {
	hint := ""
	if len(args) > 0 {
		hint = args[0]
	}

	loc := newLocator()
	iniPath, _, err := loc.ResolvePaths(hint)
	if err != nil {
		ui.Error("%v", err)
		exitErr()
	}
	return iniPath
}

func init() {
	backupsCreateCmd.Flags().StringVarP(&backupDescription, "description", "d", "", "Free-text description stored with the backup")
	backupsCleanupCmd.Flags().IntVar(&cleanupKeep, "keep", 5, "Minimum number of recent backups to retain")
	backupsCleanupCmd.Flags().IntVar(&cleanupAge, "days", 30, "Only delete backups older than this many days")

	backupsCmd.AddCommand(backupsCreateCmd)
	backupsCmd.AddCommand(backupsListCmd)
	backupsCmd.AddCommand(backupsRestoreCmd)
	backupsCmd.AddCommand(backupsCleanupCmd)
	rootCmd.AddCommand(backupsCmd)
}
