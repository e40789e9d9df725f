package cmd

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"kore/internal/app"
	"kore/internal/kube"
)

type clusterRow struct {
	ID         string   `json:"id" yaml:"id"`
	Name       string   `json:"name" yaml:"name"`
	Context    string   `json:"context" yaml:"context"`
	Tags       []string `json:"tags,omitempty" yaml:"tags,omitempty"`
	Bookmarked bool     `json:"bookmarked" yaml:"bookmarked"`
	Selected   bool     `json:"selected" yaml:"selected"`
}

func newClusterCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "cluster",
		Aliases: []string{"clusters"},
		Short:   "List and select clusters",
		Long: `List the clusters kore knows about and select the one you work in.

Clusters come from the 'clusters:' section of the configuration and, unless
discovery is turned off, from the contexts of your kubeconfig.`,
	}
	addOutputFlag(cmd)

	cmd.AddCommand(&cobra.Command{
		Use:   "ls",
		Short: "List clusters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApplication(cmd, func(a *app.Application) error {
				return listClusters(cmd, a)
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "use <cluster-id>",
		Short: "Select a cluster; the namespace resets to 'all'",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApplication(cmd, func(a *app.Application) error {
				s := a.Services()
				c, ok := s.Directory.Cluster(args[0])
				if !ok {
					return fmt.Errorf("%w: %s", kube.ErrClusterNotFound, args[0])
				}
				s.Selection.SetCluster(c.ID)
				fmt.Fprintf(cmd.OutOrStdout(), "Switched to cluster %s (context %s)\n", c.ID, c.ContextName)
				return nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "current",
		Short: "Show the selected cluster and namespace",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApplication(cmd, func(a *app.Application) error {
				sel := a.Services().Selection
				snapshot := sel.Snapshot()
				if snapshot.ClusterID == "" {
					printNote(cmd, "No cluster selected")
					return nil
				}
				contextName, _ := sel.ContextName()
				fmt.Fprintf(cmd.OutOrStdout(), "cluster:   %s\ncontext:   %s\nnamespace: %s\n",
					snapshot.ClusterID, contextName, snapshot.ActiveNamespace)
				return nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Clear the cluster selection",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApplication(cmd, func(a *app.Application) error {
				a.Services().Selection.SetCluster("")
				fmt.Fprintln(cmd.OutOrStdout(), "Cluster selection cleared")
				return nil
			})
		},
	})

	return cmd
}

func listClusters(cmd *cobra.Command, a *app.Application) error {
	s := a.Services()
	current := s.Selection.ClusterID()

	clusters := s.Directory.Clusters()
	if len(clusters) == 0 && OutputFormat(outputFormat) == OutputFormatTable {
		printNote(cmd, "No clusters found")
		return nil
	}

	rows := make([]clusterRow, 0, len(clusters))
	for _, c := range clusters {
		rows = append(rows, clusterRow{
			ID:         c.ID,
			Name:       c.Name,
			Context:    c.ContextName,
			Tags:       c.Tags,
			Bookmarked: s.Bookmarks.IsBookmarked(c.ID),
			Selected:   c.ID == current,
		})
	}

	return render(cmd, rows, func(t table.Writer) {
		t.AppendHeader(header("", "★", "id", "name", "context", "tags"))
		for _, r := range rows {
			t.AppendRow(table.Row{
				marker(r.Selected, "●"),
				marker(r.Bookmarked, "★"),
				r.ID,
				r.Name,
				r.Context,
				strings.Join(r.Tags, ","),
			})
		}
	})
}
