package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newRebuildCmd(opts *options) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "rebuild [novel-id]",
		Short: "Rebuild the search index",
		Long: `Clear and re-index one novel from its chapters and ideas. With --all,
every novel is checked and only the ones whose counts drifted are rebuilt.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if all {
				return cobra.NoArgs(cmd, args)
			}
			return cobra.ExactArgs(1)(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, a, err := openApp(cmd, opts)
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			out := cmd.OutOrStdout()
			if all {
				if err := a.PrepareIndex(ctx); err != nil {
					return err
				}
				fmt.Fprintln(out, "index checked for every novel")
				return nil
			}

			stats, err := a.Indexer.RebuildIndex(ctx, args[0])
			if err != nil {
				return err
			}
			if opts.jsonOutput {
				return printJSON(out, stats)
			}
			fmt.Fprintf(out, "rebuilt %s: %d chapters, %d ideas\n", args[0], stats.Chapters, stats.Ideas)
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Check every novel and rebuild stale ones")
	return cmd
}
