package cron_feature

import (
	"time"
)

// State is the scheduler state as seen by the admin surface.
type State string

const (
	StateUnscheduled State = "unscheduled"
	StateScheduled   State = "scheduled"
	StateRunning     State = "running"
)

// RunResult is what a caller of RunSync gets back. It is always returned,
// even when the run failed.
type RunResult struct {
	Success bool           `json:"success"`
	Message string         `json:"message"`
	Stats   map[string]any `json:"stats,omitempty"`

	AlreadyRunning bool `json:"-"`
}

// SyncStatus feeds the admin dashboard.
type SyncStatus struct {
	Enabled       bool       `json:"enabled"`
	Schedule      string     `json:"schedule"`
	ScheduleLabel string     `json:"schedule_label"`
	LastRunTime   *time.Time `json:"last_run_time"`
	LastRunStatus string     `json:"last_run_status"`
	LastRunCount  int        `json:"last_run_count"`
	NextRunTime   *time.Time `json:"next_run_time"`
	IsRunning     bool       `json:"is_running"`
	State         State      `json:"state"`
}

// intervalSchedule fires first at a fixed instant, then every interval.
type intervalSchedule struct {
	first time.Time
	every time.Duration
}

func (s *intervalSchedule) Next(t time.Time) time.Time {
	if t.Before(s.first) {
		return s.first
	}
	periods := t.Sub(s.first)/s.every + 1
	return s.first.Add(periods * s.every)
}
