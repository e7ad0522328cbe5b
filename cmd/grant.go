package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/crazypanel/lookupbot/internal/domain"
)

func newGrantCmd(app *app) *cobra.Command {
	var (
		amount    int
		username  string
		firstName string
	)

	cmd := &cobra.Command{
		Use:   "grant <user_id> <plan>",
		Short: "Grant a subscription plan to a user",
		Long:  "Grant activates a plan for the given Telegram user ID, starting a fresh billing cycle. The recorded payment defaults to the plan's list price; override it with --amount for discounted or comped grants.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			userID := domain.UserID(strings.TrimSpace(args[0]))
			planID := domain.PlanID(strings.TrimSpace(args[1]))

			plan, err := app.catalog.Lookup(planID)
			if err != nil {
				return fmt.Errorf("%w (valid plans: %s)", err, planIDs(app.catalog))
			}

			if amount < 0 {
				amount = plan.Price
			}

			record, err := app.service.GrantSubscription(cmd.Context(), userID, username, firstName, planID, amount)
			if err != nil {
				return fmt.Errorf("grant subscription: %w", err)
			}

			expiry := "never expires"
			if !record.Expires.IsZero() {
				expiry = "expires " + record.Expires.UTC().Format("2006-01-02 15:04 MST")
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "granted %s to user %s for ₹%d (%s)\n",
				record.Plan, record.UserID, record.PaymentAmount, expiry)
			return err
		},
	}

	cmd.Flags().IntVar(&amount, "amount", -1, "payment amount in rupees (defaults to the plan's list price)")
	cmd.Flags().StringVar(&username, "username", "", "Telegram username to record")
	cmd.Flags().StringVar(&firstName, "first-name", "", "first name to record")

	return cmd
}

func planIDs(catalog *domain.Catalog) string {
	ids := make([]string, 0, len(catalog.Plans()))
	for _, plan := range catalog.Plans() {
		ids = append(ids, string(plan.ID))
	}

	return strings.Join(ids, ", ")
}
