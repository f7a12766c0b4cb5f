package settings

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

var (
	ErrInvalidFeedURL  = errors.New("feed URL must be an absolute http or https URL")
	ErrUnknownSchedule = errors.New("unknown schedule")
	ErrInvalidSettings = errors.New("invalid settings")
)

var validate = validator.New()

type SettingsService interface {
	GetSyncSettings(ctx context.Context) (*SyncSettings, error)
	// UpdateSyncSettings sanitizes and stores the update. The returned flag
	// reports whether the sync timer has to be rearmed.
	UpdateSyncSettings(ctx context.Context, req UpdateSyncSettingsRequest) (*SyncSettings, bool, error)
	GetLastRun(ctx context.Context) (*LastRun, error)
	SaveLastRun(ctx context.Context, run LastRun) error
}

type SettingsServiceImpl struct {
	Repo SettingsRepository
}

func NewSettingsService(repo SettingsRepository) SettingsService {
	return &SettingsServiceImpl{
		Repo: repo,
	}
}

func (s *SettingsServiceImpl) GetSyncSettings(ctx context.Context) (*SyncSettings, error) {
	doc, err := s.Repo.GetByType(ctx, SettingsTypeStockSync)
	if err != nil {
		return nil, err
	}
	if doc == nil || doc.StockSync == nil {
		defaults := DefaultSyncSettings()
		return &defaults, nil
	}
	current := *doc.StockSync
	return &current, nil
}

func (s *SettingsServiceImpl) UpdateSyncSettings(ctx context.Context, req UpdateSyncSettingsRequest) (*SyncSettings, bool, error) {
	old, err := s.GetSyncSettings(ctx)
	if err != nil {
		return nil, false, err
	}

	updated, err := sanitize(*old, req)
	if err != nil {
		return nil, false, err
	}

	doc := &Settings{
		Type:      SettingsTypeStockSync,
		StockSync: &updated,
		UpdatedAt: time.Now(),
	}
	if err := s.Repo.Upsert(ctx, doc); err != nil {
		return nil, false, fmt.Errorf("failed to save sync settings: %w", err)
	}

	return &updated, scheduleChanged(*old, updated), nil
}

func (s *SettingsServiceImpl) GetLastRun(ctx context.Context) (*LastRun, error) {
	doc, err := s.Repo.GetByType(ctx, SettingsTypeLastRun)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, nil
	}
	return doc.LastRun, nil
}

func (s *SettingsServiceImpl) SaveLastRun(ctx context.Context, run LastRun) error {
	if run.Time.IsZero() {
		run.Time = time.Now()
	}
	return s.Repo.Upsert(ctx, &Settings{
		Type:      SettingsTypeLastRun,
		LastRun:   &run,
		UpdatedAt: time.Now(),
	})
}

func sanitize(current SyncSettings, req UpdateSyncSettingsRequest) (SyncSettings, error) {
	if err := validate.Struct(req); err != nil {
		return SyncSettings{}, validationError(err)
	}

	out := current

	if req.FeedURL != nil {
		feedURL := strings.TrimSpace(*req.FeedURL)
		if feedURL != "" && !isHTTPURL(feedURL) {
			return SyncSettings{}, ErrInvalidFeedURL
		}
		out.FeedURL = feedURL
	}
	if req.SKUColumn != nil {
		out.SKUColumn = strings.TrimSpace(*req.SKUColumn)
	}
	if out.SKUColumn == "" {
		out.SKUColumn = "sku"
	}
	if req.QuantityColumn != nil {
		out.QuantityColumn = strings.TrimSpace(*req.QuantityColumn)
	}
	if out.QuantityColumn == "" {
		out.QuantityColumn = "quantity"
	}
	if req.SSLVerify != nil {
		out.SSLVerify = *req.SSLVerify
	}
	if req.Schedule != nil {
		key := strings.ToLower(strings.TrimSpace(*req.Schedule))
		if _, ok := LookupSchedule(key); !ok {
			return SyncSettings{}, fmt.Errorf("%w: %q", ErrUnknownSchedule, *req.Schedule)
		}
		out.Schedule = key
	}
	if req.CustomIntervalMinutes != nil {
		out.CustomIntervalMinutes = *req.CustomIntervalMinutes
	}
	out.CustomIntervalMinutes = ClampCustomInterval(out.CustomIntervalMinutes)
	if req.Enabled != nil {
		out.Enabled = *req.Enabled
	}

	return out, nil
}

func scheduleChanged(old, updated SyncSettings) bool {
	return old.Enabled != updated.Enabled ||
		old.Schedule != updated.Schedule ||
		(updated.Schedule == ScheduleCustom && old.CustomIntervalMinutes != updated.CustomIntervalMinutes)
}

// validationError reports the first failed field.
func validationError(err error) error {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return fmt.Errorf("%w: %s failed %s=%s", ErrInvalidSettings, fe.Field(), fe.Tag(), fe.Param())
	}
	return fmt.Errorf("%w: %v", ErrInvalidSettings, err)
}

func isHTTPURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
