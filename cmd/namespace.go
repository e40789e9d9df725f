package cmd

import (
	"errors"
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"kore/internal/app"
	"kore/internal/selection"
)

var errNoClusterSelected = errors.New("no cluster selected; run 'kore cluster use <cluster-id>' first")

type namespaceRow struct {
	Name   string `json:"name" yaml:"name"`
	Active bool   `json:"active" yaml:"active"`
}

func newNamespaceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "ns",
		Aliases: []string{"namespace", "namespaces"},
		Short:   "List and select namespaces of the selected cluster",
	}
	addOutputFlag(cmd)

	cmd.AddCommand(&cobra.Command{
		Use:   "ls",
		Short: "List namespaces of the selected cluster",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApplication(cmd, func(a *app.Application) error {
				return listNamespaces(cmd, a)
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "use <namespace>",
		Short: "Set the active namespace ('all' removes the filter)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApplication(cmd, func(a *app.Application) error {
				sel := a.Services().Selection
				if sel.ClusterID() == "" {
					return errNoClusterSelected
				}
				sel.SetNamespace(args[0])
				fmt.Fprintf(cmd.OutOrStdout(), "Active namespace is now %s\n", args[0])
				return nil
			})
		},
	})

	return cmd
}

func listNamespaces(cmd *cobra.Command, a *app.Application) error {
	sel := a.Services().Selection
	if sel.ClusterID() == "" {
		return errNoClusterSelected
	}

	// Failures are logged by the coordinator and leave the list empty.
	sel.FetchNamespaces(commandContext(cmd))

	active := sel.ActiveNamespace()
	names := sel.Namespaces()
	if len(names) == 0 && OutputFormat(outputFormat) == OutputFormatTable {
		printNote(cmd, "No namespaces found for %s", sel.ClusterID())
		return nil
	}

	rows := make([]namespaceRow, 0, len(names)+1)
	rows = append(rows, namespaceRow{Name: selection.AllNamespaces, Active: active == selection.AllNamespaces})
	for _, name := range names {
		rows = append(rows, namespaceRow{Name: name, Active: name == active})
	}

	return render(cmd, rows, func(t table.Writer) {
		t.AppendHeader(header("", "namespace"))
		for _, r := range rows {
			t.AppendRow(table.Row{marker(r.Active, "●"), r.Name})
		}
	})
}
