package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go-stocksync/internal/config"
	"go-stocksync/internal/features/runlog"

	"github.com/spf13/cobra"
)

var (
	purgeAll       bool
	purgeOlderThan time.Duration
)

var purgeLogsCmd = &cobra.Command{
	Use:   "purge-logs",
	Short: "Delete run log entries past retention, or all of them",
	RunE:  runPurgeLogs,
}

func init() {
	purgeLogsCmd.Flags().BoolVar(&purgeAll, "all", false, "Delete every run log entry")
	purgeLogsCmd.Flags().DurationVar(&purgeOlderThan, "older-than", 0, "Retention override, e.g. 168h (defaults to LOG_RETENTION_DAYS)")
	rootCmd.AddCommand(purgeLogsCmd)
}

func runPurgeLogs(cmd *cobra.Command, _ []string) error {
	var (
		runLog runlog.RunLogger
		cfg    *config.Config
	)

	return withApp(cmd.Context(), func(ctx context.Context) error {
		if purgeAll {
			if !runLog.ClearAllLogs(ctx) {
				return errors.New("failed to clear run logs")
			}
			fmt.Fprintln(cmd.OutOrStdout(), "All run logs deleted")
			return nil
		}

		retention := purgeOlderThan
		if retention <= 0 {
			retention = cfg.LogRetention()
		}
		deleted, err := runLog.CleanupOldLogs(ctx, retention)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d run log entries older than %s\n", deleted, retention)
		return nil
	}, &runLog, &cfg)
}
