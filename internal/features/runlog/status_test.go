package runlog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func entryAt(offset time.Duration, level Level, message string) LogEntry {
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	return LogEntry{Timestamp: base.Add(offset), Level: level, Message: message}
}

func TestDeriveStatus_LegacyMessages(t *testing.T) {
	tests := []struct {
		name    string
		runID   string
		entries []LogEntry
		want    RunStatus
	}{
		{
			name:  "completed success entry",
			runID: "20260301-100000-aaaa0000",
			entries: []LogEntry{
				entryAt(0, LevelInfo, "Starting manual sync"),
				entryAt(time.Second, LevelSuccess, "Sync completed successfully"),
			},
			want: StatusSuccess,
		},
		{
			name:  "failed error entry",
			runID: "20260301-100000-aaaa0000",
			entries: []LogEntry{
				entryAt(0, LevelInfo, "Starting manual sync"),
				entryAt(time.Second, LevelError, "Sync failed"),
			},
			want: StatusFailed,
		},
		{
			name:  "failed wins over completed",
			runID: "20260301-100000-aaaa0000",
			entries: []LogEntry{
				entryAt(0, LevelError, "Failed to update stock for SKU \"A1\": timeout"),
				entryAt(time.Second, LevelSuccess, "Sync completed successfully"),
			},
			want: StatusFailed,
		},
		{
			name:  "no terminal marker",
			runID: "20260301-100000-aaaa0000",
			entries: []LogEntry{
				entryAt(0, LevelInfo, "Starting scheduled sync"),
				entryAt(time.Second, LevelWarning, "Product not found for SKU: X"),
			},
			want: StatusInProgress,
		},
		{
			name:  "orphan group",
			runID: "",
			entries: []LogEntry{
				entryAt(0, LevelInfo, "Sync scheduled: hourly"),
			},
			want: StatusOrphan,
		},
		{
			name:  "success entry without completed is not terminal",
			runID: "20260301-100000-aaaa0000",
			entries: []LogEntry{
				entryAt(0, LevelSuccess, "Connection ok"),
			},
			want: StatusInProgress,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DeriveStatus(tt.runID, tt.entries))
		})
	}
}

func TestDeriveStatus_ExplicitTerminalStatusWins(t *testing.T) {
	entries := []LogEntry{
		entryAt(0, LevelInfo, "Starting manual sync"),
		entryAt(time.Second, LevelError, "Failed to update stock for SKU \"A1\": boom"),
		{Timestamp: entryAt(2*time.Second, LevelSuccess, "").Timestamp, Level: LevelSuccess, Message: "Sync completed successfully", TerminalStatus: StatusSuccess},
	}

	assert.Equal(t, StatusSuccess, DeriveStatus("run-1", entries))
}

func TestDeriveStatus_StructuredRunIgnoresRowMessages(t *testing.T) {
	start := entryAt(0, LevelInfo, "Starting manual sync")
	start.Structured = true
	ended := entryAt(2*time.Second, LevelSuccess, "Sync completed successfully")
	ended.TerminalStatus = StatusSuccess

	tests := []struct {
		name    string
		entries []LogEntry
		want    RunStatus
	}{
		{
			name: "active run with a failed row",
			entries: []LogEntry{
				start,
				entryAt(time.Second, LevelError, "Failed to update stock for SKU \"A101\": disk full"),
			},
			want: StatusInProgress,
		},
		{
			name: "active run with a completed success message",
			entries: []LogEntry{
				start,
				entryAt(time.Second, LevelSuccess, "Batch completed"),
			},
			want: StatusInProgress,
		},
		{
			name: "ended run",
			entries: []LogEntry{
				start,
				entryAt(time.Second, LevelError, "Failed to update stock for SKU \"A101\": disk full"),
				ended,
			},
			want: StatusSuccess,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DeriveStatus("20260301-100000-aaaa0000", tt.entries))
		})
	}
}

func TestSummarize(t *testing.T) {
	start := entryAt(0, LevelInfo, "Starting scheduled sync")
	start.Context = map[string]any{"trigger": "scheduled"}
	warn := entryAt(2*time.Second, LevelWarning, "Product not found for SKU: X")
	done := entryAt(5*time.Second, LevelSuccess, "Sync completed successfully")
	done.TerminalStatus = StatusSuccess
	done.Context = map[string]any{"updated_count": 3}

	summary := Summarize("run-1", []LogEntry{start, warn, done})

	assert.Equal(t, "run-1", summary.RunID)
	assert.Equal(t, "scheduled", summary.Trigger)
	assert.Equal(t, start.Timestamp, summary.StartedAt)
	assert.Equal(t, done.Timestamp, summary.EndedAt)
	assert.Equal(t, int64(5), summary.DurationSeconds)
	assert.Equal(t, 3, summary.LogCount)
	assert.Equal(t, 1, summary.WarningCount)
	assert.Equal(t, 0, summary.ErrorCount)
	assert.Equal(t, map[string]any{"updated_count": 3}, summary.FinalStats)
	assert.Equal(t, StatusSuccess, summary.Status)
}

func TestSummarize_UnknownTrigger(t *testing.T) {
	summary := Summarize("run-1", []LogEntry{entryAt(0, LevelInfo, "Fetching CSV from: x")})
	assert.Equal(t, "unknown", summary.Trigger)
	assert.Nil(t, summary.FinalStats)
}
