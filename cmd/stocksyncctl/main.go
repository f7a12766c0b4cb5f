// Package main provides stocksyncctl, the operator CLI for one-off stock sync
// tasks outside the API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "stocksyncctl",
	Short:         "Operate the stock sync without the API server",
	Long:          "Runs a sync, checks the feed, purges old run logs or mints admin tokens using the same configuration as the API server.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
