package cmd

import (
	"fmt"
	"os"
	"os/signal"

	"storage-manager/core/api"
	"storage-manager/core/config"
	"storage-manager/core/logger"
	"storage-manager/feature/browser"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// browseCmd represents the browse command
var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse buckets, folders and files interactively",
	Long: `Opens an interactive session against the storage API.
Type "help" inside the session for the list of commands.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig(".")
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if url, _ := cmd.Flags().GetString("url"); url != "" {
			cfg.Client.BaseURL = url
		}

		logg := zap.NewNop()
		if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
			logg = logger.NewCLI()
		}
		defer logg.Sync()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		client := api.New(cfg.Client)
		in := browser.NewInput(os.Stdin)
		out := cmd.OutOrStdout()

		ctrl := browser.NewController(client, browser.NewTerminalView(out), browser.NewLinePrompter(in, out), logg)
		fmt.Fprintf(out, "Connected to %s. Type \"help\" for commands.\n", client.BaseURL())
		return browser.NewSession(ctrl, in, out).Run(ctx)
	},
}

func init() {
	RootCmd.AddCommand(browseCmd)
	browseCmd.Flags().String("url", "", "Storage API base URL (overrides CLIENT_BASE_URL)")
	browseCmd.Flags().BoolP("verbose", "v", false, "Log requests to stderr")
}
