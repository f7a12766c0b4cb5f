package main

import (
	"context"
	"encoding/json"
	"errors"

	cron_feature "go-stocksync/internal/features/cron"
	"go-stocksync/internal/features/runlog"

	"github.com/spf13/cobra"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Run one manual stock sync and print the result",
	RunE:  runSync,
}

func init() {
	rootCmd.AddCommand(syncCmd)
}

func runSync(cmd *cobra.Command, _ []string) error {
	var scheduler cron_feature.Scheduler

	return withApp(cmd.Context(), func(ctx context.Context) error {
		result := scheduler.RunSync(ctx, runlog.TriggerManual)

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		if err := enc.Encode(result); err != nil {
			return err
		}
		if !result.Success {
			return errors.New(result.Message)
		}
		return nil
	}, &scheduler)
}
