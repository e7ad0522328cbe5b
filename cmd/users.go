package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/crazypanel/lookupbot/internal/domain"
)

func newUsersCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "users",
		Short: "List all subscribers",
		RunE: func(cmd *cobra.Command, _ []string) error {
			// A negative recent count returns every record, newest first.
			summary, err := app.reporter.Summarize(cmd.Context(), -1)
			if err != nil {
				return fmt.Errorf("list subscribers: %w", err)
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(summary.Recent)
			}

			for _, record := range summary.Recent {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t%s\t%s\n",
					record.UserID, record.Username, record.Plan, record.Status, usageLabel(record))
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "emit records as JSON")

	return cmd
}

func usageLabel(record domain.SubscriptionRecord) string {
	return fmt.Sprintf("%d today / %d total", record.SearchesUsed, record.TotalSearches)
}
