package main

import (
	"context"
	"errors"
	"fmt"

	"go-stocksync/internal/features/settings"
	"go-stocksync/internal/features/stock"

	"github.com/spf13/cobra"
)

var testConnectionURL string

var testConnectionCmd = &cobra.Command{
	Use:   "test-connection",
	Short: "Fetch the feed and check its columns without changing stock",
	RunE:  runTestConnection,
}

func init() {
	testConnectionCmd.Flags().StringVar(&testConnectionURL, "url", "", "Feed URL to try instead of the saved one")
	rootCmd.AddCommand(testConnectionCmd)
}

func runTestConnection(cmd *cobra.Command, _ []string) error {
	var (
		syncer          stock.StockSyncer
		settingsService settings.SettingsService
	)

	return withApp(cmd.Context(), func(ctx context.Context) error {
		current, err := settingsService.GetSyncSettings(ctx)
		if err != nil {
			return err
		}
		if testConnectionURL != "" {
			current.FeedURL = testConnectionURL
		}

		result := syncer.TestConnection(ctx, *current)
		fmt.Fprintln(cmd.OutOrStdout(), result.Message)
		if !result.Success {
			return errors.New("connection test failed")
		}
		return nil
	}, &syncer, &settingsService)
}
