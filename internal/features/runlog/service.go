package runlog

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MirrorFieldKey is attached to every zap entry the RunLogger mirrors, so the
// process log tee can tell them apart from system logs.
const MirrorFieldKey = "run_id"

const defaultRunsPageSize = 10

type RunLogger interface {
	StartRun(ctx context.Context, trigger Trigger) string
	EndRun(ctx context.Context, status RunStatus, stats map[string]any)
	CurrentRunID() string

	Info(ctx context.Context, message string, data map[string]any)
	Success(ctx context.Context, message string, data map[string]any)
	Warning(ctx context.Context, message string, data map[string]any)
	Error(ctx context.Context, message string, data map[string]any)
	// Orphan writes an entry outside of any run, even while one is active.
	Orphan(ctx context.Context, level Level, message string, data map[string]any)

	GetLogsForRun(ctx context.Context, runID string) ([]LogEntry, error)
	GetSyncRuns(ctx context.Context, limit, offset int64) ([]RunSummary, error)
	GetSyncRunsCount(ctx context.Context) (int64, error)
	GetLogCounts(ctx context.Context) (*LogCounts, error)
	ClearAllLogs(ctx context.Context) bool
	CleanupOldLogs(ctx context.Context, retention time.Duration) (int64, error)

	// Subscribe streams entries as they are written. The returned func ends
	// the subscription and closes the channel.
	Subscribe() (<-chan LogEntry, func())
}

type RunLoggerImpl struct {
	repo   Repository
	logger *zap.Logger
	now    func() time.Time
	live   *hub

	mu           sync.RWMutex
	currentRunID string
}

func NewRunLogger(repo Repository, logger *zap.Logger) RunLogger {
	return &RunLoggerImpl{
		repo:   repo,
		logger: logger,
		now:    time.Now,
		live:   newHub(),
	}
}

// NewRunID returns a time ordered identifier that stays unique for runs
// started within the same second.
func NewRunID(t time.Time) string {
	suffix := uuid.New().String()
	return fmt.Sprintf("%s-%s", t.Format("20060102-150405"), suffix[:8])
}

func (l *RunLoggerImpl) StartRun(ctx context.Context, trigger Trigger) string {
	runID := NewRunID(l.now())

	l.mu.Lock()
	l.currentRunID = runID
	l.mu.Unlock()

	l.writeEntry(ctx, &LogEntry{
		RunID:      runID,
		Timestamp:  l.now(),
		Level:      LevelInfo,
		Message:    fmt.Sprintf("Starting %s sync", trigger),
		Context:    map[string]any{"trigger": string(trigger)},
		Structured: true,
	})
	return runID
}

func (l *RunLoggerImpl) EndRun(ctx context.Context, status RunStatus, stats map[string]any) {
	runID := l.CurrentRunID()
	if status == StatusSuccess {
		l.write(ctx, runID, LevelSuccess, "Sync completed successfully", stats, StatusSuccess)
	} else {
		l.write(ctx, runID, LevelError, "Sync failed", stats, StatusFailed)
	}

	l.mu.Lock()
	if l.currentRunID == runID {
		l.currentRunID = ""
	}
	l.mu.Unlock()
}

func (l *RunLoggerImpl) CurrentRunID() string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.currentRunID
}

func (l *RunLoggerImpl) Info(ctx context.Context, message string, data map[string]any) {
	l.write(ctx, l.CurrentRunID(), LevelInfo, message, data, "")
}

func (l *RunLoggerImpl) Success(ctx context.Context, message string, data map[string]any) {
	l.write(ctx, l.CurrentRunID(), LevelSuccess, message, data, "")
}

func (l *RunLoggerImpl) Warning(ctx context.Context, message string, data map[string]any) {
	l.write(ctx, l.CurrentRunID(), LevelWarning, message, data, "")
}

func (l *RunLoggerImpl) Error(ctx context.Context, message string, data map[string]any) {
	l.write(ctx, l.CurrentRunID(), LevelError, message, data, "")
}

func (l *RunLoggerImpl) Orphan(ctx context.Context, level Level, message string, data map[string]any) {
	l.write(ctx, "", level, message, data, "")
}

// write persists one entry. Logging is best effort: a store failure is
// reported to the process log and otherwise ignored.
func (l *RunLoggerImpl) write(ctx context.Context, runID string, level Level, message string, data map[string]any, terminal RunStatus) {
	entry := &LogEntry{
		RunID:          runID,
		Timestamp:      l.now(),
		Level:          level,
		Message:        message,
		TerminalStatus: terminal,
	}
	if len(data) > 0 {
		entry.Context = data
	}
	l.writeEntry(ctx, entry)
}

func (l *RunLoggerImpl) writeEntry(ctx context.Context, entry *LogEntry) {
	l.mirror(entry)

	if err := l.repo.Insert(ctx, entry); err != nil {
		l.logger.Warn("Dropped run log entry",
			zap.String(MirrorFieldKey, entry.RunID),
			zap.String("message", entry.Message),
			zap.Error(err),
		)
	}
	l.live.publish(*entry)
}

func (l *RunLoggerImpl) Subscribe() (<-chan LogEntry, func()) {
	return l.live.subscribe()
}

func (l *RunLoggerImpl) mirror(entry *LogEntry) {
	fields := []zap.Field{zap.String(MirrorFieldKey, entry.RunID), zap.String("level_name", string(entry.Level))}
	if entry.Context != nil {
		fields = append(fields, zap.Any("context", entry.Context))
	}

	switch entry.Level {
	case LevelError:
		l.logger.Error(entry.Message, fields...)
	case LevelWarning:
		l.logger.Warn(entry.Message, fields...)
	default:
		l.logger.Info(entry.Message, fields...)
	}
}

func (l *RunLoggerImpl) GetLogsForRun(ctx context.Context, runID string) ([]LogEntry, error) {
	return l.repo.FindByRun(ctx, runID)
}

func (l *RunLoggerImpl) GetSyncRuns(ctx context.Context, limit, offset int64) ([]RunSummary, error) {
	if limit <= 0 {
		limit = defaultRunsPageSize
	}
	if offset < 0 {
		offset = 0
	}

	runIDs, err := l.repo.ListRunIDs(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}

	runs := make([]RunSummary, 0, len(runIDs))
	for _, runID := range runIDs {
		entries, err := l.repo.FindByRun(ctx, runID)
		if err != nil {
			return nil, fmt.Errorf("failed to load logs for run %q: %w", runID, err)
		}
		runs = append(runs, Summarize(runID, entries))
	}
	return runs, nil
}

// GetSyncRunsCount counts distinct run groups, the orphan group included, to
// match the pagination of GetSyncRuns.
func (l *RunLoggerImpl) GetSyncRunsCount(ctx context.Context) (int64, error) {
	ids, err := l.repo.DistinctRunIDs(ctx)
	if err != nil {
		return 0, err
	}
	return int64(len(ids)), nil
}

func (l *RunLoggerImpl) GetLogCounts(ctx context.Context) (*LogCounts, error) {
	ids, err := l.repo.DistinctRunIDs(ctx)
	if err != nil {
		return nil, err
	}
	byLevel, err := l.repo.CountByLevel(ctx)
	if err != nil {
		return nil, err
	}

	counts := &LogCounts{
		Success: byLevel[LevelSuccess],
		Warning: byLevel[LevelWarning],
		Error:   byLevel[LevelError],
	}
	for _, id := range ids {
		if id != "" {
			counts.Runs++
		}
	}
	return counts, nil
}

func (l *RunLoggerImpl) ClearAllLogs(ctx context.Context) bool {
	if err := l.repo.DeleteAll(ctx); err != nil {
		l.logger.Error("Failed to clear run logs", zap.String(MirrorFieldKey, ""), zap.Error(err))
		return false
	}
	return true
}

func (l *RunLoggerImpl) CleanupOldLogs(ctx context.Context, retention time.Duration) (int64, error) {
	cutoff := l.now().Add(-retention)
	deleted, err := l.repo.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to delete logs older than %s: %w", cutoff.Format(time.RFC3339), err)
	}
	return deleted, nil
}
