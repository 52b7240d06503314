package cmd

import (
	"github.com/spf13/cobra"

	"github.com/phptune/phptune/src/internal/config"
	"github.com/phptune/phptune/src/internal/locator"
	"github.com/phptune/phptune/src/internal/platform"
	"github.com/phptune/phptune/src/internal/server"
	"github.com/phptune/phptune/src/internal/ui"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP admin API",
	Long: `Start the JSON API the admin UI talks to. Every route is a thin
wrapper over the same library calls the CLI uses.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := platform.Current()
		srv := server.New(ctx, locator.New(ctx))

		ui.Info("Admin API listening on %s", ui.Highlight(serveAddr))
		if err := srv.ListenAndServe(serveAddr); err != nil {
			ui.Error("Server stopped: %v", err)
			exitErr()
		}
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", config.ServerAddr(), "Address to listen on")
	rootCmd.AddCommand(serveCmd)
}
