package settings

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type SettingsType string

const (
	SettingsTypeStockSync SettingsType = "stock_sync"
	SettingsTypeLastRun   SettingsType = "stock_sync_last_run"
)

// Settings is one typed settings document.
type Settings struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Type      SettingsType       `json:"type" bson:"type"`
	StockSync *SyncSettings      `json:"stock_sync,omitempty" bson:"stock_sync,omitempty"`
	LastRun   *LastRun           `json:"last_run,omitempty" bson:"last_run,omitempty"`
	UpdatedAt time.Time          `json:"updated_at" bson:"updated_at"`
}

// SyncSettings is the operator configuration of the stock sync. A run works
// on a copy taken when it starts.
type SyncSettings struct {
	FeedURL               string `json:"feed_url" bson:"feed_url"`
	SKUColumn             string `json:"sku_column" bson:"sku_column"`
	QuantityColumn        string `json:"quantity_column" bson:"quantity_column"`
	SSLVerify             bool   `json:"ssl_verify" bson:"ssl_verify"`
	Schedule              string `json:"schedule" bson:"schedule"`
	CustomIntervalMinutes int    `json:"custom_interval_minutes" bson:"custom_interval_minutes"`
	Enabled               bool   `json:"enabled" bson:"enabled"`
}

// UpdateSyncSettingsRequest carries a partial update; nil fields keep their
// current value.
type UpdateSyncSettingsRequest struct {
	FeedURL               *string `json:"feed_url" validate:"omitempty,max=2048"`
	SKUColumn             *string `json:"sku_column" validate:"omitempty,max=128"`
	QuantityColumn        *string `json:"quantity_column" validate:"omitempty,max=128"`
	SSLVerify             *bool   `json:"ssl_verify"`
	Schedule              *string `json:"schedule" validate:"omitempty,max=32"`
	CustomIntervalMinutes *int    `json:"custom_interval_minutes"`
	Enabled               *bool   `json:"enabled"`
}

// LastRun summarizes the most recent finished run.
type LastRun struct {
	Time           time.Time      `json:"time" bson:"time"`
	Status         string         `json:"status" bson:"status"`
	ProductsSynced int            `json:"products_synced" bson:"products_synced"`
	Stats          map[string]any `json:"stats,omitempty" bson:"stats,omitempty"`
}

// DefaultSyncSettings returns the configuration used before anything was saved.
func DefaultSyncSettings() SyncSettings {
	return SyncSettings{
		SKUColumn:             "sku",
		QuantityColumn:        "quantity",
		SSLVerify:             true,
		Schedule:              ScheduleHourly,
		CustomIntervalMinutes: 60,
		Enabled:               false,
	}
}
