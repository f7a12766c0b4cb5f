package catalog

import (
	"context"
	"fmt"

	"go-stocksync/internal/config"
	"go-stocksync/internal/database"

	"go.uber.org/fx"
)

// Store is the record store the stock syncer reconciles against.
type Store interface {
	// Ping reports whether the catalog backend is reachable.
	Ping(ctx context.Context) error
	// FindIDBySKU returns the product key for a SKU, or "" when absent.
	FindIDBySKU(ctx context.Context, sku string) (string, error)
	// Load returns the product, or nil when absent.
	Load(ctx context.Context, key string) (*Product, error)
	Save(ctx context.Context, product *Product) error
}

// NewStore selects the catalog backend from configuration.
func NewStore(lc fx.Lifecycle, cfg *config.Config, mongodb *database.MongodbDB) (Store, error) {
	switch cfg.CatalogDriver {
	case "", "mongo":
		return NewMongoStore(mongodb), nil
	case "postgres":
		db, err := database.OpenPostgres(lc, cfg.PostgresDSN)
		if err != nil {
			return nil, err
		}
		return NewPostgresStore(db), nil
	default:
		return nil, fmt.Errorf("unsupported catalog driver: %s", cfg.CatalogDriver)
	}
}
