package settings

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }
func intPtr(n int) *int { return &n }
func boolPtr(b bool) *bool { return &b }

func TestGetSyncSettings_Defaults(t *testing.T) {
	svc := NewSettingsService(NewMemorySettingsRepository())

	got, err := svc.GetSyncSettings(context.Background())
	require.NoError(t, err)

	assert.Equal(t, DefaultSyncSettings(), *got)
	assert.Equal(t, "sku", got.SKUColumn)
	assert.Equal(t, "quantity", got.QuantityColumn)
	assert.True(t, got.SSLVerify)
	assert.Equal(t, ScheduleHourly, got.Schedule)
	assert.Equal(t, 60, got.CustomIntervalMinutes)
	assert.False(t, got.Enabled)
}

func TestUpdateSyncSettings(t *testing.T) {
	ctx := context.Background()
	svc := NewSettingsService(NewMemorySettingsRepository())

	updated, changed, err := svc.UpdateSyncSettings(ctx, UpdateSyncSettingsRequest{
		FeedURL:        strPtr(" https://example.com/stock.csv "),
		QuantityColumn: strPtr(" Stock "),
	})
	require.NoError(t, err)
	assert.False(t, changed, "feed changes do not touch the timer")
	assert.Equal(t, "https://example.com/stock.csv", updated.FeedURL)
	assert.Equal(t, "Stock", updated.QuantityColumn)
	assert.Equal(t, "sku", updated.SKUColumn)

	stored, err := svc.GetSyncSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, *updated, *stored)

	_, changed, err = svc.UpdateSyncSettings(ctx, UpdateSyncSettingsRequest{Enabled: boolPtr(true)})
	require.NoError(t, err)
	assert.True(t, changed)
}

func TestUpdateSyncSettings_ScheduleChange(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		initial UpdateSyncSettingsRequest
		update  UpdateSyncSettingsRequest
		changed bool
	}{
		{
			name:    "schedule key",
			update:  UpdateSyncSettingsRequest{Schedule: strPtr("daily")},
			changed: true,
		},
		{
			name:    "same schedule",
			update:  UpdateSyncSettingsRequest{Schedule: strPtr("HOURLY")},
			changed: false,
		},
		{
			name:    "interval ignored for preset",
			update:  UpdateSyncSettingsRequest{CustomIntervalMinutes: intPtr(10)},
			changed: false,
		},
		{
			name:    "interval on custom schedule",
			initial: UpdateSyncSettingsRequest{Schedule: strPtr("custom")},
			update:  UpdateSyncSettingsRequest{CustomIntervalMinutes: intPtr(10)},
			changed: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewSettingsService(NewMemorySettingsRepository())
			_, _, err := svc.UpdateSyncSettings(ctx, tt.initial)
			require.NoError(t, err)

			_, changed, err := svc.UpdateSyncSettings(ctx, tt.update)
			require.NoError(t, err)
			assert.Equal(t, tt.changed, changed)
		})
	}
}

func TestUpdateSyncSettings_Validation(t *testing.T) {
	ctx := context.Background()
	svc := NewSettingsService(NewMemorySettingsRepository())

	_, _, err := svc.UpdateSyncSettings(ctx, UpdateSyncSettingsRequest{FeedURL: strPtr("ftp://example.com/a.csv")})
	assert.ErrorIs(t, err, ErrInvalidFeedURL)

	_, _, err = svc.UpdateSyncSettings(ctx, UpdateSyncSettingsRequest{Schedule: strPtr("fortnightly")})
	assert.ErrorIs(t, err, ErrUnknownSchedule)

	_, _, err = svc.UpdateSyncSettings(ctx, UpdateSyncSettingsRequest{SKUColumn: strPtr(strings.Repeat("x", 129))})
	assert.ErrorIs(t, err, ErrInvalidSettings)
	assert.Contains(t, err.Error(), "SKUColumn failed max=128")

	updated, _, err := svc.UpdateSyncSettings(ctx, UpdateSyncSettingsRequest{
		SKUColumn:             strPtr("   "),
		CustomIntervalMinutes: intPtr(0),
	})
	require.NoError(t, err)
	assert.Equal(t, "sku", updated.SKUColumn)
	assert.Equal(t, 1, updated.CustomIntervalMinutes)

	updated, _, err = svc.UpdateSyncSettings(ctx, UpdateSyncSettingsRequest{CustomIntervalMinutes: intPtr(999999)})
	require.NoError(t, err)
	assert.Equal(t, 43200, updated.CustomIntervalMinutes)
}

func TestLastRun(t *testing.T) {
	ctx := context.Background()
	svc := NewSettingsService(NewMemorySettingsRepository())

	got, err := svc.GetLastRun(ctx)
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, svc.SaveLastRun(ctx, LastRun{
		Status:         "success",
		ProductsSynced: 4,
		Stats:          map[string]any{"updated_count": 4},
	}))

	got, err = svc.GetLastRun(ctx)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "success", got.Status)
	assert.Equal(t, 4, got.ProductsSynced)
	assert.False(t, got.Time.IsZero())
}
