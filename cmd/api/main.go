package main

import (
	"context"
	"fmt"
	"log"
	"time"

	_ "go-stocksync/docs" // Import swagger docs
	common_api "go-stocksync/internal/common/api"
	"go-stocksync/internal/config"
	"go-stocksync/internal/database"
	"go-stocksync/internal/features/catalog"
	cron_feature "go-stocksync/internal/features/cron"
	"go-stocksync/internal/features/runlog"
	"go-stocksync/internal/features/settings"
	"go-stocksync/internal/features/stock"
	"go-stocksync/internal/features/system"
	"go-stocksync/internal/logger"
	"go-stocksync/internal/middleware"
	"go-stocksync/pkg/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// NewFiberServer creates a new Fiber app instance
func NewFiberServer(cfg *config.Config) *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	app.Use(middleware.CORSMiddleware(cfg.CORSOrigins))

	return app
}

// AsRoute tags the constructor so Fx adds it to the "routes" group.
func AsRoute(f any) any {
	return fx.Annotate(
		f,
		fx.As(new(common_api.Route)),
		fx.ResultTags(`group:"routes"`),
	)
}

// RegisterAllRoutes calls Setup() on every route in the "routes" group.
func RegisterAllRoutes(app *fiber.App, routes []common_api.Route, logger *zap.Logger) {
	for _, route := range routes {
		logger.Debug("Setting up route", zap.String("route", fmt.Sprintf("%T", route)))
		route.Setup(app)
	}
	logger.Info("All routes registered", zap.Int("count", len(routes)))
}

var RegisterAllRoutesWithAnnotation = fx.Annotate(
	RegisterAllRoutes,
	fx.ParamTags(``, `group:"routes"`, ``),
)

// StartServer starts Fiber in a goroutine and shuts it down when the app exits.
func StartServer(lc fx.Lifecycle, app *fiber.App, cfg *config.Config) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				port := fmt.Sprintf(":%s", cfg.Port)
				if err := app.Listen(port); err != nil {
					log.Fatalf("Server failed to start: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return app.Shutdown()
		},
	})
}

type indexed interface {
	EnsureIndexes(ctx context.Context) error
}

// InitializeIndexes creates the Mongo indexes of the stores that have them.
func InitializeIndexes(lc fx.Lifecycle, logRepo runlog.Repository, store catalog.Store, settingsRepo settings.SettingsRepository, logger *zap.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
				defer cancel()

				g, gctx := errgroup.WithContext(ctx)
				targets := map[string]any{"run_log": logRepo, "catalog": store, "settings": settingsRepo}
				for name, target := range targets {
					idx, ok := target.(indexed)
					if !ok {
						continue
					}
					g.Go(func() error {
						if err := idx.EnsureIndexes(gctx); err != nil {
							return fmt.Errorf("%s: %w", name, err)
						}
						return nil
					})
				}
				if err := g.Wait(); err != nil {
					logger.Warn("Failed to ensure indexes", zap.Error(err))
				}
			}()
			return nil
		},
	})
}

// StartScheduler runs the sync timer for the lifetime of the app.
func StartScheduler(lc fx.Lifecycle, scheduler cron_feature.Scheduler) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return scheduler.Start(ctx)
		},
		OnStop: func(ctx context.Context) error {
			scheduler.Stop()
			return nil
		},
	})
}

// @title           Stock Sync API
// @version         1.0
// @description     Reconciles catalog stock levels against a remote CSV feed.

// @host            localhost:8000
// @BasePath        /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	app := fx.New(
		fx.Provide(
			config.LoadConfig,
			database.NewDatabase,
			runlog.NewRepository,
			logger.NewLogger,
			NewFiberServer,

			catalog.NewStore,
			settings.NewSettingsRepository,
			cron_feature.NewRunLock,

			runlog.NewRunLogger,
			settings.NewSettingsService,
			stock.NewStockSyncer,
			cron_feature.NewScheduler,

			func(s cron_feature.Scheduler) settings.Rescheduler { return s },

			runlog.NewRunLogController,
			settings.NewSettingsController,
			stock.NewStockController,
			cron_feature.NewCronController,
			system.NewHealthController,

			AsRoute(runlog.NewRunLogApi),
			AsRoute(settings.NewSettingsApi),
			AsRoute(stock.NewStockApi),
			AsRoute(cron_feature.NewCronApi),
			AsRoute(system.NewSystemApi),
		),
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log}
		}),
		fx.Invoke(
			func(cfg *config.Config) { utils.SetSecret(cfg.JWTSecret) },
			RegisterAllRoutesWithAnnotation,
			StartServer,
			InitializeIndexes,
			StartScheduler,
		),
	)

	app.Run()
}
