package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"kore/internal/app"
	"kore/pkg/logging"
)

var (
	// configPath replaces the layered configuration lookup with a single file.
	configPath string

	// debug enables verbose logging across the application.
	debug bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "kore",
	Short: "Keep track of the Kubernetes clusters and namespaces you work in",
	Long: `kore remembers which cluster and namespace you are working in, which
clusters you bookmarked and in what order, and your display settings.

The same state is shared by the interactive terminal UI ('kore ui'), the
commands below and the MCP server ('kore mcp') used by AI assistants.`,
	// SilenceUsage is set to true to prevent printing usage message on errors
	// handled by us (e.g. unknown clusters, invalid positions)
	SilenceUsage: true,
}

// SetVersion sets the version for the root command
func SetVersion(v string) {
	rootCmd.Version = v // Set cobra's version field as well
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	// Set up version template
	rootCmd.SetVersionTemplate(`{{printf "kore version %s\n" .Version}}`)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		// Cobra prints the error, we just exit non-zero
		stop()
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newSelfUpdateCmd())
	rootCmd.AddCommand(newClusterCmd())
	rootCmd.AddCommand(newNamespaceCmd())
	rootCmd.AddCommand(newBookmarkCmd())
	rootCmd.AddCommand(newSettingsCmd())
	rootCmd.AddCommand(newUICmd())
	rootCmd.AddCommand(newMCPCmd())

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Configuration file (default: layered ~/.config/kore and ./.kore lookup)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")
}

// withApplication builds the application for one command run and shuts it
// down afterwards.
func withApplication(cmd *cobra.Command, fn func(*app.Application) error) error {
	cfg := app.NewConfig(debug, configPath)
	cfg.LogOutput = cmd.ErrOrStderr()

	application, err := app.NewApplication(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	defer func() {
		if err := application.Close(); err != nil {
			logging.Warn("CLI", "Shutdown finished with errors: %v", err)
		}
	}()

	return fn(application)
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
