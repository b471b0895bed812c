package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"novelcore/internal/indexer"
)

type novelStats struct {
	NovelID string        `json:"novelId"`
	Title   string        `json:"title"`
	Stats   indexer.Stats `json:"stats"`
}

func newStatsCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "stats [novel-id]",
		Short: "Show indexed chapter and idea counts",
		Long:  `Show indexed chapter and idea counts for one novel, or for every novel when no id is given.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, a, err := openApp(cmd, opts)
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			novels, err := a.Novels.List(ctx)
			if err != nil {
				return fmt.Errorf("failed to list novels: %w", err)
			}

			var rows []novelStats
			for _, n := range novels {
				if len(args) == 1 && n.ID != args[0] {
					continue
				}
				stats, err := a.Indexer.GetIndexStats(ctx, n.ID)
				if err != nil {
					return fmt.Errorf("failed to read stats for %s: %w", n.ID, err)
				}
				rows = append(rows, novelStats{NovelID: n.ID, Title: n.Title, Stats: stats})
			}
			if len(args) == 1 && len(rows) == 0 {
				return fmt.Errorf("novel %s not found", args[0])
			}

			out := cmd.OutOrStdout()
			if opts.jsonOutput {
				return printJSON(out, rows)
			}
			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "NOVEL\tTITLE\tCHAPTERS\tIDEAS")
			for _, r := range rows {
				fmt.Fprintf(tw, "%s\t%s\t%d\t%d\n", r.NovelID, r.Title, r.Stats.Chapters, r.Stats.Ideas)
			}
			return tw.Flush()
		},
	}
}
