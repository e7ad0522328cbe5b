package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	statsrender "github.com/crazypanel/lookupbot/internal/adapters/render/stats"
)

func newStatsCmd(app *app) *cobra.Command {
	var (
		asJSON bool
		recent int
	)

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show subscriber counts, revenue, and recent signups",
		RunE: func(cmd *cobra.Command, _ []string) error {
			summary, err := app.reporter.Summarize(cmd.Context(), recent)
			if err != nil {
				return fmt.Errorf("summarize subscriptions: %w", err)
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(summary)
			}

			rendered, err := app.statsRenderer(summary, statsrender.RenderOptions{Now: app.now()})
			if err != nil {
				return fmt.Errorf("render stats: %w", err)
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
			return err
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "emit the summary as JSON")
	cmd.Flags().IntVar(&recent, "recent", 10, "number of recent signups to include")

	return cmd
}
