package cron_feature

import (
	"context"
	"errors"
	"fmt"
	"math"
	"runtime/debug"
	"sync"
	"time"

	"go-stocksync/internal/config"
	"go-stocksync/internal/features/catalog"
	"go-stocksync/internal/features/runlog"
	"go-stocksync/internal/features/settings"
	"go-stocksync/internal/features/stock"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

var ErrAlreadyRunning = errors.New("a stock sync is already running")

type Scheduler interface {
	// Start runs the timer loop, registers log retention and arms the sync
	// when it is enabled.
	Start(ctx context.Context) error
	Stop()

	Schedule(schedule string, customMinutes int) error
	Unschedule()
	Reschedule(enabled bool, schedule string, customMinutes int) error

	// Execute is the timer callback.
	Execute()
	RunSync(ctx context.Context, trigger runlog.Trigger) RunResult

	IsRunning(ctx context.Context) bool
	SetRunning(ctx context.Context, running bool) error
	NextRun() *time.Time
	State(ctx context.Context) State
	GetSyncStats(ctx context.Context) (*SyncStatus, error)
}

type SchedulerImpl struct {
	syncer   stock.StockSyncer
	runLog   runlog.RunLogger
	settings settings.SettingsService
	catalog  catalog.Store
	lock     RunLock
	logger   *zap.Logger

	lockTTL       time.Duration
	firstRunDelay time.Duration
	retention     time.Duration
	cleanupSpec   string
	now           func() time.Time

	cron      *cron.Cron
	syncEntry cron.EntryID
	scheduled bool
	mu        sync.RWMutex
}

func NewScheduler(
	syncer stock.StockSyncer,
	runLog runlog.RunLogger,
	settingsService settings.SettingsService,
	store catalog.Store,
	lock RunLock,
	logger *zap.Logger,
	cfg *config.Config,
) Scheduler {
	cronLog := newCronLogger(logger)
	return &SchedulerImpl{
		syncer:        syncer,
		runLog:        runLog,
		settings:      settingsService,
		catalog:       store,
		lock:          lock,
		logger:        logger,
		lockTTL:       cfg.SyncLockTTL,
		firstRunDelay: cfg.FirstRunDelay,
		retention:     cfg.LogRetention(),
		cleanupSpec:   cfg.LogCleanupSchedule,
		now:           time.Now,
		cron:          cron.New(cron.WithLogger(cronLog), cron.WithChain(cron.Recover(cronLog), cron.SkipIfStillRunning(cronLog))),
	}
}

func (s *SchedulerImpl) Start(ctx context.Context) error {
	if s.cleanupSpec != "" {
		if _, err := s.cron.AddFunc(s.cleanupSpec, s.cleanupLogs); err != nil {
			return fmt.Errorf("invalid log cleanup schedule %q: %w", s.cleanupSpec, err)
		}
	}

	current, err := s.settings.GetSyncSettings(ctx)
	if err != nil {
		return fmt.Errorf("failed to load sync settings: %w", err)
	}
	if current.Enabled {
		if err := s.Schedule(current.Schedule, current.CustomIntervalMinutes); err != nil {
			return err
		}
	}

	s.cron.Start()
	s.logger.Info("Stock sync scheduler started",
		zap.Bool("enabled", current.Enabled),
		zap.String("schedule", current.Schedule),
	)
	return nil
}

func (s *SchedulerImpl) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

func (s *SchedulerImpl) Schedule(schedule string, customMinutes int) error {
	interval, ok := settings.ScheduleInterval(schedule, customMinutes)
	if !ok {
		return fmt.Errorf("unknown schedule %q", schedule)
	}

	// Removal and registration share one critical section so concurrent
	// callers cannot leave an untracked entry behind.
	s.mu.Lock()
	removed := s.unscheduleLocked()
	s.syncEntry = s.cron.Schedule(&intervalSchedule{
		first: s.now().Add(s.firstRunDelay),
		every: interval,
	}, cron.FuncJob(s.Execute))
	s.scheduled = true
	s.mu.Unlock()

	if removed {
		s.runLog.Orphan(context.Background(), runlog.LevelInfo, "Sync unscheduled", nil)
	}
	s.runLog.Orphan(context.Background(), runlog.LevelInfo, fmt.Sprintf("Sync scheduled: %s", schedule), map[string]any{
		"interval_minutes": int(interval / time.Minute),
	})
	return nil
}

func (s *SchedulerImpl) Unschedule() {
	s.mu.Lock()
	removed := s.unscheduleLocked()
	s.mu.Unlock()

	if removed {
		s.runLog.Orphan(context.Background(), runlog.LevelInfo, "Sync unscheduled", nil)
	}
}

// unscheduleLocked removes the sync entry. The caller holds s.mu.
func (s *SchedulerImpl) unscheduleLocked() bool {
	if !s.scheduled {
		return false
	}
	s.cron.Remove(s.syncEntry)
	s.scheduled = false
	return true
}

func (s *SchedulerImpl) Reschedule(enabled bool, schedule string, customMinutes int) error {
	if enabled {
		return s.Schedule(schedule, customMinutes)
	}
	s.Unschedule()
	return nil
}

func (s *SchedulerImpl) Execute() {
	s.RunSync(context.Background(), runlog.TriggerScheduled)
}

// RunSync runs one sync under the run lock. Panics from the lock backend are
// reported as a failed result like panics from the run itself.
func (s *SchedulerImpl) RunSync(ctx context.Context, trigger runlog.Trigger) (result RunResult) {
	defer func() {
		if r := recover(); r != nil {
			message := fmt.Sprintf("Sync failed with error: %v", r)
			s.logger.Error("Stock sync lock panicked",
				zap.String("trigger", string(trigger)),
				zap.Any("panic", r),
				zap.ByteString("stack", debug.Stack()),
			)
			s.runLog.Orphan(ctx, runlog.LevelError, message, map[string]any{"error": fmt.Sprint(r)})
			result = RunResult{Message: message}
		}
	}()

	owner := uuid.NewString()
	acquired, err := s.lock.TryAcquire(ctx, owner, s.lockTTL)
	if err != nil {
		s.logger.Error("Failed to acquire stock sync lock", zap.String("trigger", string(trigger)), zap.Error(err))
		return RunResult{Message: fmt.Sprintf("Could not acquire the sync lock: %v", err)}
	}
	if !acquired {
		s.runLog.Orphan(ctx, runlog.LevelWarning, fmt.Sprintf("Skipped %s sync: another sync is already running", trigger), nil)
		return RunResult{Message: "A sync is already running.", AlreadyRunning: true}
	}
	defer func() {
		if err := s.lock.Release(context.Background(), owner); err != nil {
			s.logger.Error("Failed to release stock sync lock", zap.Error(err))
		}
	}()

	return s.run(ctx, trigger)
}

// run executes one locked run. A panic anywhere below is converted into a
// failed run.
func (s *SchedulerImpl) run(ctx context.Context, trigger runlog.Trigger) (result RunResult) {
	start := s.now()
	s.runLog.StartRun(ctx, trigger)

	defer func() {
		if r := recover(); r != nil {
			message := fmt.Sprintf("Sync failed with error: %v", r)
			s.runLog.Error(ctx, message, map[string]any{
				"error": fmt.Sprint(r),
				"stack": string(debug.Stack()),
			})
			s.runLog.EndRun(ctx, runlog.StatusFailed, map[string]any{"reason": message})
			s.saveLastRun(ctx, runlog.StatusFailed, 0, nil)
			result = RunResult{Message: message}
		}
	}()

	if err := s.catalog.Ping(ctx); err != nil {
		return s.abort(ctx, fmt.Sprintf("Catalog store is not available: %v", err))
	}

	current, err := s.settings.GetSyncSettings(ctx)
	if err != nil {
		return s.abort(ctx, fmt.Sprintf("Failed to load sync settings: %v", err))
	}
	if current.FeedURL == "" {
		return s.abort(ctx, "CSV URL is not configured.")
	}

	synced := s.syncer.Sync(ctx, *current)
	duration := math.Round(s.now().Sub(start).Seconds()*100) / 100

	if !synced.Success {
		s.saveLastRun(ctx, runlog.StatusFailed, 0, nil)
		s.runLog.EndRun(ctx, runlog.StatusFailed, map[string]any{"reason": synced.Message})
		return RunResult{Message: synced.Message}
	}

	stats := synced.Stats.ToMap()
	stats["trigger"] = string(trigger)
	stats["duration_seconds"] = duration

	s.saveLastRun(ctx, runlog.StatusSuccess, synced.Stats.UpdatedCount, stats)
	s.runLog.EndRun(ctx, runlog.StatusSuccess, stats)

	return RunResult{
		Success: true,
		Message: synced.Message,
		Stats:   stats,
	}
}

// abort ends a run whose prerequisites are missing. No last run is recorded.
func (s *SchedulerImpl) abort(ctx context.Context, message string) RunResult {
	s.runLog.EndRun(ctx, runlog.StatusFailed, map[string]any{"reason": message})
	return RunResult{Message: message}
}

func (s *SchedulerImpl) saveLastRun(ctx context.Context, status runlog.RunStatus, synced int, stats map[string]any) {
	err := s.settings.SaveLastRun(ctx, settings.LastRun{
		Time:           s.now(),
		Status:         string(status),
		ProductsSynced: synced,
		Stats:          stats,
	})
	if err != nil {
		s.logger.Warn("Failed to record last stock sync run", zap.String("status", string(status)), zap.Error(err))
	}
}

func (s *SchedulerImpl) cleanupLogs() {
	deleted, err := s.runLog.CleanupOldLogs(context.Background(), s.retention)
	if err != nil {
		s.logger.Error("Run log cleanup failed", zap.Error(err))
		return
	}
	s.logger.Info("Run log cleanup finished", zap.Int64("deleted", deleted), zap.Duration("retention", s.retention))
}

func (s *SchedulerImpl) IsRunning(ctx context.Context) bool {
	held, err := s.lock.Held(ctx)
	if err != nil {
		s.logger.Warn("Failed to read stock sync lock", zap.Error(err))
		return false
	}
	return held
}

func (s *SchedulerImpl) SetRunning(ctx context.Context, running bool) error {
	if !running {
		return s.lock.Clear(ctx)
	}
	acquired, err := s.lock.TryAcquire(ctx, "manual-"+uuid.NewString(), s.lockTTL)
	if err != nil {
		return err
	}
	if !acquired {
		return ErrAlreadyRunning
	}
	return nil
}

func (s *SchedulerImpl) NextRun() *time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.scheduled {
		return nil
	}
	entry := s.cron.Entry(s.syncEntry)
	if !entry.Valid() {
		return nil
	}
	next := entry.Next
	if next.IsZero() {
		// not started yet
		next = entry.Schedule.Next(s.now())
	}
	return &next
}

func (s *SchedulerImpl) State(ctx context.Context) State {
	if s.IsRunning(ctx) {
		return StateRunning
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.scheduled {
		return StateScheduled
	}
	return StateUnscheduled
}

func (s *SchedulerImpl) GetSyncStats(ctx context.Context) (*SyncStatus, error) {
	current, err := s.settings.GetSyncSettings(ctx)
	if err != nil {
		return nil, err
	}
	lastRun, err := s.settings.GetLastRun(ctx)
	if err != nil {
		return nil, err
	}

	status := &SyncStatus{
		Enabled:       current.Enabled,
		Schedule:      current.Schedule,
		ScheduleLabel: settings.ScheduleLabel(current.Schedule),
		NextRunTime:   s.NextRun(),
		IsRunning:     s.IsRunning(ctx),
		State:         s.State(ctx),
	}
	if lastRun != nil {
		t := lastRun.Time
		status.LastRunTime = &t
		status.LastRunStatus = lastRun.Status
		status.LastRunCount = lastRun.ProductsSynced
	}
	return status, nil
}
