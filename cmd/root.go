package cmd

import "github.com/spf13/cobra"

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "lookupbot",
		Short:         "lookupbot: run the lookup bot and manage subscriptions",
		Long:          "lookupbot runs the Telegram lookup bot webhook server and provides admin tooling for the subscription store: grant plans, list users, and inspect revenue and usage from the terminal.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	app, err := wireApp()
	if err != nil {
		rootCmd.RunE = func(_ *cobra.Command, _ []string) error {
			return err
		}
		return rootCmd
	}

	rootCmd.AddCommand(
		newVersionCmd(),
		newServeCmd(app),
		newGrantCmd(app),
		newStatsCmd(app),
		newUsersCmd(app),
	)

	return rootCmd
}
