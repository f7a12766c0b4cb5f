package stock

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go-stocksync/internal/config"
	"go-stocksync/internal/features/catalog"
	"go-stocksync/internal/features/feed"
	"go-stocksync/internal/features/runlog"
	"go-stocksync/internal/features/settings"
)

type StockSyncer interface {
	// Sync reconciles catalog stock against the feed. Row problems are counted
	// and logged; only feed level problems make the result unsuccessful.
	Sync(ctx context.Context, cfg settings.SyncSettings) SyncResult
	// TestConnection validates the feed and its columns without writing.
	TestConnection(ctx context.Context, cfg settings.SyncSettings) ConnectionResult
}

type fetchFunc func(ctx context.Context, url string, opts feed.FetchOptions) ([]byte, error)

type StockSyncerImpl struct {
	Catalog catalog.Store
	RunLog  runlog.RunLogger

	syncTimeout time.Duration
	testTimeout time.Duration
	verifyTLS   bool
	fetch       fetchFunc
}

func NewStockSyncer(store catalog.Store, runLog runlog.RunLogger, cfg *config.Config) StockSyncer {
	return &StockSyncerImpl{
		Catalog:     store,
		RunLog:      runLog,
		syncTimeout: cfg.FeedSyncTimeout,
		testTimeout: cfg.FeedTestTimeout,
		verifyTLS:   cfg.FeedSSLVerify,
		fetch:       feed.Fetch,
	}
}

func (s *StockSyncerImpl) Sync(ctx context.Context, cfg settings.SyncSettings) SyncResult {
	if strings.TrimSpace(cfg.FeedURL) == "" {
		return failed(&SyncError{Kind: KindConfiguration, Message: "CSV URL is not configured."})
	}

	body, err := s.fetch(ctx, cfg.FeedURL, s.fetchOptions(cfg, s.syncTimeout))
	if err != nil {
		return failed(syncFetchError(err))
	}
	if len(body) == 0 {
		return failed(&SyncError{Kind: KindData, Message: "CSV content is empty."})
	}

	s.RunLog.Info(ctx, "CSV fetched successfully. Parsing content...", map[string]any{
		"url":   cfg.FeedURL,
		"bytes": len(body),
	})

	parsed, err := feed.ParseFeed(string(body))
	if err != nil {
		return failed(&SyncError{Kind: KindData, Message: "Failed to parse CSV or CSV is empty.", Cause: err})
	}

	skuIndex, ok := parsed.ColumnIndex(cfg.SKUColumn)
	if !ok {
		return failed(&SyncError{
			Kind:    KindConfiguration,
			Message: fmt.Sprintf("SKU column \"%s\" not found in CSV. Available columns: %s", cfg.SKUColumn, strings.Join(parsed.Header, ", ")),
		})
	}
	quantityIndex, ok := parsed.ColumnIndex(cfg.QuantityColumn)
	if !ok {
		return failed(&SyncError{
			Kind:    KindConfiguration,
			Message: fmt.Sprintf("Quantity column \"%s\" not found in CSV. Available columns: %s", cfg.QuantityColumn, strings.Join(parsed.Header, ", ")),
		})
	}

	s.RunLog.Info(ctx, fmt.Sprintf("Found columns - SKU: \"%s\" (index %d), Quantity: \"%s\" (index %d)",
		cfg.SKUColumn, skuIndex, cfg.QuantityColumn, quantityIndex), nil)
	s.RunLog.Info(ctx, fmt.Sprintf("Processing %d rows from CSV...", len(parsed.Rows)), nil)

	var stats SyncStats
	for _, row := range parsed.Rows {
		stats.record(s.syncRow(ctx, row, skuIndex, quantityIndex))
	}

	s.RunLog.Info(ctx, fmt.Sprintf("Sync summary - Total: %d, Updated: %d, Skipped: %d, Not found: %d, Errors: %d",
		stats.TotalRows, stats.UpdatedCount, stats.SkippedCount, stats.NotFoundCount, stats.ErrorCount), stats.ToMap())

	return SyncResult{
		Success: true,
		Message: stats.summary(),
		Stats:   &stats,
	}
}

// syncRow reconciles a single row. It never fails the run.
func (s *StockSyncerImpl) syncRow(ctx context.Context, row feed.Row, skuIndex, quantityIndex int) Outcome {
	sku, ok := row.Cell(skuIndex)
	if !ok || sku == "" {
		return OutcomeSkipped
	}

	rawQuantity, _ := row.Cell(quantityIndex)
	quantity, ok := parseQuantity(rawQuantity)
	if !ok {
		s.RunLog.Warning(ctx, fmt.Sprintf("Invalid quantity \"%s\" for SKU \"%s\". Skipping.", rawQuantity, sku), nil)
		return OutcomeSkipped
	}

	key, err := s.Catalog.FindIDBySKU(ctx, sku)
	if err != nil {
		s.RunLog.Warning(ctx, fmt.Sprintf("Failed to look up SKU \"%s\": %v", sku, err), nil)
		return OutcomeError
	}
	if key == "" {
		s.RunLog.Warning(ctx, fmt.Sprintf("Product not found for SKU: %s", sku), nil)
		return OutcomeNotFound
	}

	product, err := s.Catalog.Load(ctx, key)
	if err != nil || product == nil {
		data := map[string]any{}
		if err != nil {
			data["error"] = err.Error()
		}
		s.RunLog.Warning(ctx, fmt.Sprintf("Could not load product for ID: %s (SKU: %s)", key, sku), data)
		return OutcomeError
	}

	current := product.StockQuantity
	if current != nil && *current == quantity {
		return OutcomeSkipped
	}

	if !product.ManageStock {
		product.ManageStock = true
	}
	product.SetStockQuantity(quantity)
	if err := s.Catalog.Save(ctx, product); err != nil {
		s.RunLog.Error(ctx, fmt.Sprintf("Failed to update stock for SKU \"%s\": %v", sku, err), nil)
		return OutcomeError
	}

	before := "null"
	if current != nil {
		before = fmt.Sprintf("%d", *current)
	}
	s.RunLog.Info(ctx, fmt.Sprintf("Updated stock for SKU \"%s\" (ID: %s): %s → %d", sku, key, before, quantity), nil)
	return OutcomeUpdated
}

func (s *StockSyncerImpl) TestConnection(ctx context.Context, cfg settings.SyncSettings) ConnectionResult {
	if strings.TrimSpace(cfg.FeedURL) == "" {
		return ConnectionResult{Message: "CSV URL is not configured."}
	}

	body, err := s.fetch(ctx, cfg.FeedURL, s.fetchOptions(cfg, s.testTimeout))
	if err != nil {
		var fetchErr *feed.FetchError
		if errors.As(err, &fetchErr) && fetchErr.IsHTTPStatus() {
			return ConnectionResult{Message: fmt.Sprintf("HTTP Error: %d", fetchErr.StatusCode)}
		}
		return ConnectionResult{Message: fmt.Sprintf("Failed to connect: %s", causeText(err))}
	}
	if len(body) == 0 {
		return ConnectionResult{Message: "CSV content is empty."}
	}

	parsed, err := feed.ParseFeed(string(body))
	if err != nil {
		return ConnectionResult{Message: "Failed to parse CSV or CSV is empty."}
	}

	columns := strings.Join(parsed.Columns, ", ")
	_, skuFound := parsed.ColumnIndex(cfg.SKUColumn)
	_, quantityFound := parsed.ColumnIndex(cfg.QuantityColumn)

	result := ConnectionResult{RowCount: len(parsed.Rows), Headers: parsed.Columns}
	switch {
	case !skuFound && !quantityFound:
		result.Message = fmt.Sprintf("Neither SKU column \"%s\" nor Quantity column \"%s\" found. Available columns: %s",
			cfg.SKUColumn, cfg.QuantityColumn, columns)
	case !skuFound:
		result.Message = fmt.Sprintf("SKU column \"%s\" not found. Available columns: %s", cfg.SKUColumn, columns)
	case !quantityFound:
		result.Message = fmt.Sprintf("Quantity column \"%s\" not found. Available columns: %s", cfg.QuantityColumn, columns)
	default:
		result.Success = true
		result.Message = fmt.Sprintf("Connection successful! Found %d rows with columns: %s", result.RowCount, columns)
	}
	return result
}

func (s *StockSyncerImpl) fetchOptions(cfg settings.SyncSettings, timeout time.Duration) feed.FetchOptions {
	return feed.FetchOptions{
		Timeout:   timeout,
		VerifyTLS: cfg.SSLVerify && s.verifyTLS,
	}
}

func syncFetchError(err error) *SyncError {
	var fetchErr *feed.FetchError
	if errors.As(err, &fetchErr) && fetchErr.IsHTTPStatus() {
		return &SyncError{
			Kind:    KindTransport,
			Message: fmt.Sprintf("Failed to fetch CSV. HTTP response code: %d", fetchErr.StatusCode),
			Cause:   err,
		}
	}
	return &SyncError{
		Kind:    KindTransport,
		Message: fmt.Sprintf("Failed to fetch CSV: %s", causeText(err)),
		Cause:   err,
	}
}

func causeText(err error) string {
	var fetchErr *feed.FetchError
	if errors.As(err, &fetchErr) && fetchErr.Cause != nil {
		return fetchErr.Cause.Error()
	}
	return err.Error()
}
