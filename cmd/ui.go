package cmd

import (
	"github.com/spf13/cobra"

	"kore/internal/app"
)

func newUICmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ui",
		Short: "Start the interactive terminal UI",
		Long: `Starts the interactive terminal UI.

Pick a cluster and namespace, bookmark and reorder clusters, and open detail
and activity-log tabs in the bottom drawer. Press '?' inside the UI for the
full list of keys.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApplication(cmd, func(a *app.Application) error {
				return a.RunTUI(commandContext(cmd))
			})
		},
	}
}
