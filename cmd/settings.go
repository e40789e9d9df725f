package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"kore/internal/app"
	"kore/internal/settings"
)

type settingsView struct {
	Theme              string `json:"theme" yaml:"theme"`
	CodeTheme          string `json:"codeTheme" yaml:"codeTheme"`
	EffectiveCodeTheme string `json:"effectiveCodeTheme" yaml:"effectiveCodeTheme"`
	RefreshInterval    string `json:"refreshInterval" yaml:"refreshInterval"`
}

func newSettingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show and change display settings",
		Long: fmt.Sprintf(`Show and change display settings.

Themes: %s
The code theme also accepts %q.`, strings.Join(settings.Themes, ", "), settings.SameAsApp),
	}
	addOutputFlag(cmd)

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the current settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApplication(cmd, func(a *app.Application) error {
				st := a.Services().Settings
				v := st.Get()
				view := settingsView{
					Theme:              v.Theme,
					CodeTheme:          v.CodeTheme,
					EffectiveCodeTheme: st.EffectiveCodeTheme(),
					RefreshInterval:    v.RefreshInterval.String(),
				}
				return render(cmd, view, func(t table.Writer) {
					t.AppendHeader(header("setting", "value"))
					t.AppendRows([]table.Row{
						{"theme", view.Theme},
						{"code theme", view.CodeTheme},
						{"effective code theme", view.EffectiveCodeTheme},
						{"refresh interval", view.RefreshInterval},
					})
				})
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "theme <name>",
		Short: "Set the application theme",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApplication(cmd, func(a *app.Application) error {
				if err := a.Services().Settings.SetTheme(args[0]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Theme set to %s\n", args[0])
				return nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "code-theme <name>",
		Short: "Set the theme used for code and YAML views",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApplication(cmd, func(a *app.Application) error {
				if err := a.Services().Settings.SetCodeTheme(args[0]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Code theme set to %s\n", args[0])
				return nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "refresh <duration>",
		Short: "Set how often resource views refresh (e.g. 5s, 1m)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := time.ParseDuration(args[0])
			if err != nil {
				return fmt.Errorf("invalid duration %q: %w", args[0], err)
			}
			return withApplication(cmd, func(a *app.Application) error {
				if err := a.Services().Settings.SetRefreshInterval(d); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Refresh interval set to %s\n", d)
				return nil
			})
		},
	})

	return cmd
}
