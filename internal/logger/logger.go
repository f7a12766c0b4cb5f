package logger

import (
	"context"

	"go-stocksync/internal/config"
	"go-stocksync/internal/features/runlog"

	"go.uber.org/fx"
	"go.uber.org/zap"
)

// NewLogger builds the process logger. Warn and above system entries are
// also copied into the run log store as orphan entries.
func NewLogger(lc fx.Lifecycle, cfg *config.Config, repo runlog.Repository) (*zap.Logger, error) {
	var zapConfig zap.Config
	if cfg.Environment == "production" {
		zapConfig = zap.NewProductionConfig()
	} else {
		zapConfig = zap.NewDevelopmentConfig()
	}

	// Important: Enable Caller to get Function Name
	zapConfig.EncoderConfig.FunctionKey = "func"

	baseLogger, err := zapConfig.Build()
	if err != nil {
		return nil, err
	}

	writer := NewStoreWriter(repo, 1000)
	finalCore := NewStoreCore(baseLogger.Core(), writer)

	logger := zap.New(finalCore, zap.AddCaller(), zap.Fields(zap.String("app", cfg.AppId)))

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			_ = logger.Sync()
			writer.Close()
			return nil
		},
	})

	return logger, nil
}
