package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var errSyncDisabled = errors.New("sync is not configured: set SYNC_BASE_URL")

func newSyncCmd(opts *options) *cobra.Command {
	syncCmd := &cobra.Command{
		Use:   "sync",
		Short: "Run a sync cycle against the remote",
	}

	syncCmd.AddCommand(&cobra.Command{
		Use:   "pull",
		Short: "Pull remote changes since the last cursor",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, a, err := openApp(cmd, opts)
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()
			if a.Syncer == nil {
				return errSyncDisabled
			}

			result, err := a.Syncer.Pull(ctx)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if opts.jsonOutput {
				return printJSON(out, result)
			}
			fmt.Fprintf(out, "pulled %d novels, %d volumes, %d chapters; cursor %d\n",
				result.Novels, result.Volumes, result.Chapters, result.Cursor)
			return nil
		},
	})

	syncCmd.AddCommand(&cobra.Command{
		Use:   "push",
		Short: "Push local changes made since the last cursor",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, a, err := openApp(cmd, opts)
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()
			if a.Syncer == nil {
				return errSyncDisabled
			}

			result, err := a.Syncer.Push(ctx)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if opts.jsonOutput {
				return printJSON(out, result)
			}
			fmt.Fprintf(out, "pushed %d changes\n", result.Count)
			return nil
		},
	})

	return syncCmd
}
