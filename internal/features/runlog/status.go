package runlog

import (
	"strings"
)

const unknownTrigger = "unknown"

// DeriveStatus computes the status of a run from its entries.
//
// Entries written by EndRun carry an explicit terminal status, which wins.
// A structured run without one is still in progress, whatever its row
// messages say. Older history has neither marker, so the message based rules
// are applied in their original order: a failed error entry, then a completed
// success entry, then the orphan group, falling back to in-progress.
func DeriveStatus(runID string, entries []LogEntry) RunStatus {
	if runID != "" {
		structured := false
		for i := len(entries) - 1; i >= 0; i-- {
			if entries[i].TerminalStatus != "" {
				return entries[i].TerminalStatus
			}
			structured = structured || entries[i].Structured
		}
		if structured {
			return StatusInProgress
		}
	}

	var failed, completed bool
	for _, e := range entries {
		if e.Level == LevelError && containsFold(e.Message, "failed") {
			failed = true
		}
		if isCompletedEntry(e) {
			completed = true
		}
	}

	switch {
	case failed:
		return StatusFailed
	case completed:
		return StatusSuccess
	case runID == "":
		return StatusOrphan
	default:
		return StatusInProgress
	}
}

// Summarize builds the history view of a run. Entries must be in timestamp
// order.
func Summarize(runID string, entries []LogEntry) RunSummary {
	summary := RunSummary{
		RunID:   runID,
		Trigger: unknownTrigger,
		Status:  DeriveStatus(runID, entries),
	}
	if len(entries) == 0 {
		return summary
	}

	summary.StartedAt = entries[0].Timestamp
	summary.EndedAt = entries[0].Timestamp
	for _, e := range entries {
		if e.Timestamp.Before(summary.StartedAt) {
			summary.StartedAt = e.Timestamp
		}
		if e.Timestamp.After(summary.EndedAt) {
			summary.EndedAt = e.Timestamp
		}

		summary.LogCount++
		switch e.Level {
		case LevelError:
			summary.ErrorCount++
		case LevelWarning:
			summary.WarningCount++
		}

		if isCompletedEntry(e) && len(e.Context) > 0 {
			summary.FinalStats = e.Context
		}
		if summary.Trigger == unknownTrigger && e.Level == LevelInfo && containsFold(e.Message, "starting") {
			if trigger, ok := e.Context["trigger"].(string); ok && trigger != "" {
				summary.Trigger = trigger
			}
		}
	}
	summary.DurationSeconds = int64(summary.EndedAt.Sub(summary.StartedAt).Seconds())

	return summary
}

func isCompletedEntry(e LogEntry) bool {
	if e.Level != LevelSuccess {
		return false
	}
	return e.TerminalStatus == StatusSuccess || containsFold(e.Message, "completed")
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), substr)
}
