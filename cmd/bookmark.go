package cmd

import (
	"fmt"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"kore/internal/app"
)

func newBookmarkCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "bookmark",
		Aliases: []string{"bookmarks", "bm"},
		Short:   "Manage bookmarked clusters",
		Long: `Bookmarked clusters are listed first, in the order you choose, in the
terminal UI. Positions start at 0.`,
	}
	addOutputFlag(cmd)

	cmd.AddCommand(&cobra.Command{
		Use:   "ls",
		Short: "List bookmarks in order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApplication(cmd, func(a *app.Application) error {
				list := a.Services().Bookmarks.Bookmarks()
				if len(list) == 0 && OutputFormat(outputFormat) == OutputFormatTable {
					printNote(cmd, "No bookmarks yet")
					return nil
				}
				return render(cmd, list, func(t table.Writer) {
					t.AppendHeader(header("order", "cluster", "id"))
					for _, b := range list {
						t.AppendRow(table.Row{b.Order, b.ClusterID, b.ID})
					}
				})
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "add <cluster-id>",
		Short: "Bookmark a cluster",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApplication(cmd, func(a *app.Application) error {
				a.Services().Bookmarks.Add(args[0])
				fmt.Fprintf(cmd.OutOrStdout(), "Bookmarked %s\n", args[0])
				return nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:     "rm <cluster-id>",
		Aliases: []string{"remove"},
		Short:   "Remove a bookmark",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApplication(cmd, func(a *app.Application) error {
				a.Services().Bookmarks.Remove(args[0])
				fmt.Fprintf(cmd.OutOrStdout(), "Removed bookmark for %s\n", args[0])
				return nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "toggle <cluster-id>",
		Short: "Bookmark a cluster, or remove its bookmark",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApplication(cmd, func(a *app.Application) error {
				if a.Services().Bookmarks.Toggle(args[0]) {
					fmt.Fprintf(cmd.OutOrStdout(), "Bookmarked %s\n", args[0])
				} else {
					fmt.Fprintf(cmd.OutOrStdout(), "Removed bookmark for %s\n", args[0])
				}
				return nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "move <from> <to>",
		Short: "Move the bookmark at position <from> to position <to>",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid position %q: %w", args[0], err)
			}
			to, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid position %q: %w", args[1], err)
			}
			return withApplication(cmd, func(a *app.Application) error {
				bm := a.Services().Bookmarks
				if err := bm.Reorder(from, to); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Bookmarks: %v\n", bm.BookmarkedClusterIDs())
				return nil
			})
		},
	})

	return cmd
}
