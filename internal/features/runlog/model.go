package runlog

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Level string

const (
	LevelInfo    Level = "info"
	LevelSuccess Level = "success"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// Trigger is the cause of a run.
type Trigger string

const (
	TriggerScheduled Trigger = "scheduled"
	TriggerManual    Trigger = "manual"
)

type RunStatus string

const (
	StatusSuccess    RunStatus = "success"
	StatusFailed     RunStatus = "failed"
	StatusInProgress RunStatus = "in-progress"
	StatusOrphan     RunStatus = "orphan"
)

// LogEntry is one immutable run log line. An empty RunID marks an orphan
// (system level) entry.
type LogEntry struct {
	ID             primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	RunID          string             `json:"run_id" bson:"run_id"`
	Timestamp      time.Time          `json:"timestamp" bson:"timestamp"`
	Level          Level              `json:"level" bson:"level"`
	Message        string             `json:"message" bson:"message"`
	Context        map[string]any     `json:"context,omitempty" bson:"context,omitempty"`
	TerminalStatus RunStatus          `json:"terminal_status,omitempty" bson:"terminal_status,omitempty"`
	// Structured is set on the starting entry of runs whose status comes only
	// from TerminalStatus.
	Structured bool `json:"structured,omitempty" bson:"structured,omitempty"`
}

// RunSummary is the history view of one run, derived from its entries.
type RunSummary struct {
	RunID           string         `json:"run_id"`
	Trigger         string         `json:"trigger"`
	StartedAt       time.Time      `json:"started_at"`
	EndedAt         time.Time      `json:"ended_at"`
	DurationSeconds int64          `json:"duration"`
	LogCount        int            `json:"log_count"`
	ErrorCount      int            `json:"error_count"`
	WarningCount    int            `json:"warning_count"`
	FinalStats      map[string]any `json:"final_stats,omitempty"`
	Status          RunStatus      `json:"status"`
}

type LogCounts struct {
	Runs    int64 `json:"runs"`
	Success int64 `json:"success"`
	Warning int64 `json:"warning"`
	Error   int64 `json:"error"`
}
