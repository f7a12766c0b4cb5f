package logger

import (
	"context"
	"testing"

	"go-stocksync/internal/features/runlog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestStoreCore_PersistsSystemWarnings(t *testing.T) {
	repo := runlog.NewMemoryRepository()
	writer := NewStoreWriter(repo, 10)
	base, console := observer.New(zapcore.DebugLevel)
	log := zap.New(NewStoreCore(base, writer))

	log.Info("server started")
	log.Warn("scheduler lagging", zap.Int("behind_seconds", 12))
	log.With(zap.String("component", "cron")).Error("job panicked")
	log.Warn("Invalid quantity", zap.String(runlog.MirrorFieldKey, "run-1"))
	log.With(zap.String(runlog.MirrorFieldKey, "")).Error("Dropped run log entry")
	writer.Close()

	assert.Equal(t, 5, console.Len())

	entries, err := repo.FindByRun(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, runlog.LevelWarning, entries[0].Level)
	assert.Equal(t, "scheduler lagging", entries[0].Message)
	assert.Equal(t, int64(12), entries[0].Context["behind_seconds"])
	assert.Equal(t, runlog.LevelError, entries[1].Level)
	assert.Equal(t, "job panicked", entries[1].Message)
}

func TestMapLevel(t *testing.T) {
	assert.Equal(t, runlog.LevelWarning, mapLevel(zapcore.WarnLevel))
	assert.Equal(t, runlog.LevelError, mapLevel(zapcore.ErrorLevel))
	assert.Equal(t, runlog.LevelError, mapLevel(zapcore.DPanicLevel))
	assert.Equal(t, runlog.LevelInfo, mapLevel(zapcore.InfoLevel))
}
