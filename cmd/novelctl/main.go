// Command novelctl inspects and maintains a novelcore database from the
// shell: index stats and rebuilds, ad-hoc search and manual sync cycles.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"novelcore/internal/app"
	"novelcore/internal/config"
	"novelcore/internal/contextutil"
)

type options struct {
	jsonOutput bool
	verbose    bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "novelctl",
		Short: "Maintain a novelcore workspace",
		Long: `novelctl works directly on the novelcore database configured by the
same DB_* and SYNC_* environment variables (or .env file) as the API server.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().BoolVar(&opts.jsonOutput, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Log progress to stderr")

	rootCmd.AddCommand(newStatsCmd(opts))
	rootCmd.AddCommand(newRebuildCmd(opts))
	rootCmd.AddCommand(newSearchCmd(opts))
	rootCmd.AddCommand(newSyncCmd(opts))

	return rootCmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// openApp loads configuration and opens the workspace. The returned context
// carries a logger that writes to stderr, at debug level with --verbose.
func openApp(cmd *cobra.Command, opts *options) (context.Context, *app.App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	level := slog.LevelWarn
	if opts.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	ctx := contextutil.WithLogger(cmd.Context(), logger)

	a, err := app.Open(ctx, cfg, nil)
	if err != nil {
		return nil, nil, err
	}
	return ctx, a, nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
