package cmd

import (
	"github.com/spf13/cobra"

	"kore/internal/app"
)

func newMCPCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve kore's state to AI assistants over MCP (stdio)",
		Long: `Runs an MCP server on stdin/stdout exposing tools to list and select
clusters and namespaces, manage bookmarks and change settings.

Configure it in your assistant as a stdio server running 'kore mcp'. Logs go
to stderr so they never corrupt the protocol stream.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApplication(cmd, func(a *app.Application) error {
				return a.ServeMCP(commandContext(cmd), rootCmd.Version)
			})
		},
	}
}
