package main

import (
	"context"
	"fmt"
	"time"

	"go-stocksync/internal/config"
	"go-stocksync/internal/database"
	"go-stocksync/internal/features/catalog"
	cron_feature "go-stocksync/internal/features/cron"
	"go-stocksync/internal/features/runlog"
	"go-stocksync/internal/features/settings"
	"go-stocksync/internal/features/stock"
	"go-stocksync/internal/logger"

	"go.uber.org/fx"
)

const startTimeout = 30 * time.Second

// withApp builds the same object graph as the API server, minus HTTP,
// populates targets and runs fn between start and stop.
func withApp(ctx context.Context, fn func(ctx context.Context) error, targets ...any) error {
	app := fx.New(
		fx.Provide(
			config.LoadConfig,
			database.NewDatabase,
			runlog.NewRepository,
			logger.NewLogger,

			catalog.NewStore,
			settings.NewSettingsRepository,
			cron_feature.NewRunLock,

			runlog.NewRunLogger,
			settings.NewSettingsService,
			stock.NewStockSyncer,
			cron_feature.NewScheduler,
		),
		fx.NopLogger,
		fx.Populate(targets...),
	)

	startCtx, cancel := context.WithTimeout(ctx, startTimeout)
	defer cancel()
	if err := app.Start(startCtx); err != nil {
		return fmt.Errorf("failed to start: %w", err)
	}

	runErr := fn(ctx)

	stopCtx, cancelStop := context.WithTimeout(context.Background(), startTimeout)
	defer cancelStop()
	if err := app.Stop(stopCtx); err != nil && runErr == nil {
		runErr = fmt.Errorf("failed to stop: %w", err)
	}
	return runErr
}
