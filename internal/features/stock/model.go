package stock

import "fmt"

// ErrorKind classifies a run level failure.
type ErrorKind string

const (
	KindConfiguration ErrorKind = "configuration"
	KindTransport     ErrorKind = "transport"
	KindData          ErrorKind = "data"
)

// SyncError is a failure that stops a sync before any row is processed. The
// message is shown to the operator as is.
type SyncError struct {
	Kind    ErrorKind
	Message string
	Cause   error
}

func (e *SyncError) Error() string {
	return e.Message
}

func (e *SyncError) Unwrap() error {
	return e.Cause
}

// Outcome is the classification of one feed row.
type Outcome string

const (
	OutcomeUpdated  Outcome = "updated"
	OutcomeSkipped  Outcome = "skipped"
	OutcomeNotFound Outcome = "not_found"
	OutcomeError    Outcome = "error"
)

// SyncStats counts row outcomes. TotalRows always equals the sum of the
// other counters.
type SyncStats struct {
	TotalRows     int `json:"total_rows"`
	UpdatedCount  int `json:"updated_count"`
	SkippedCount  int `json:"skipped_count"`
	NotFoundCount int `json:"not_found_count"`
	ErrorCount    int `json:"error_count"`
}

func (s *SyncStats) record(outcome Outcome) {
	s.TotalRows++
	switch outcome {
	case OutcomeUpdated:
		s.UpdatedCount++
	case OutcomeSkipped:
		s.SkippedCount++
	case OutcomeNotFound:
		s.NotFoundCount++
	case OutcomeError:
		s.ErrorCount++
	}
}

// ToMap returns the counters keyed the way they are persisted and logged.
func (s SyncStats) ToMap() map[string]any {
	return map[string]any{
		"total_rows":      s.TotalRows,
		"updated_count":   s.UpdatedCount,
		"skipped_count":   s.SkippedCount,
		"not_found_count": s.NotFoundCount,
		"error_count":     s.ErrorCount,
	}
}

func (s SyncStats) summary() string {
	return fmt.Sprintf("Stock sync completed. Updated: %d products, Skipped: %d, Not found: %d, Errors: %d",
		s.UpdatedCount, s.SkippedCount, s.NotFoundCount, s.ErrorCount)
}

type SyncResult struct {
	Success bool       `json:"success"`
	Message string     `json:"message"`
	Stats   *SyncStats `json:"stats,omitempty"`
	Err     *SyncError `json:"-"`
}

func failed(err *SyncError) SyncResult {
	return SyncResult{Success: false, Message: err.Message, Err: err}
}

// ConnectionResult reports a dry run of the feed without touching the catalog.
type ConnectionResult struct {
	Success  bool     `json:"success"`
	Message  string   `json:"message"`
	RowCount int      `json:"row_count"`
	Headers  []string `json:"headers,omitempty"`
}
