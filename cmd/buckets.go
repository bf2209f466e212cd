package cmd

import (
	"fmt"
	"text/tabwriter"

	"storage-manager/core/api"
	"storage-manager/core/config"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

// bucketsCmd represents the buckets command
var bucketsCmd = &cobra.Command{
	Use:   "buckets",
	Short: "List buckets through the storage API",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig(".")
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		buckets, err := api.New(cfg.Client).ListBuckets(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to list buckets: %s", api.DisplayMessage(nil, err))
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tCREATED")
		for _, b := range buckets {
			created := "-"
			if b.CreatedAt != nil {
				created = humanize.Time(*b.CreatedAt)
			}
			fmt.Fprintf(w, "%s\t%s\n", b.Name, created)
		}
		return w.Flush()
	},
}

func init() {
	RootCmd.AddCommand(bucketsCmd)
}
