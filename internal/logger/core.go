package logger

import (
	"go-stocksync/internal/features/runlog"

	"go.uber.org/zap/zapcore"
)

// StoreCore wraps an existing core and copies system warnings and errors to
// the run log store.
type StoreCore struct {
	zapcore.Core
	writer *StoreWriter
	fields []zapcore.Field
}

func NewStoreCore(baseCore zapcore.Core, writer *StoreWriter) zapcore.Core {
	return &StoreCore{
		Core:   baseCore,
		writer: writer,
	}
}

func (c *StoreCore) With(fields []zapcore.Field) zapcore.Core {
	return &StoreCore{
		Core:   c.Core.With(fields),
		writer: c.writer,
		fields: append(append([]zapcore.Field{}, c.fields...), fields...),
	}
}

// Write is called for every log entry
func (c *StoreCore) Write(entry zapcore.Entry, fields []zapcore.Field) error {
	if entry.Level >= zapcore.WarnLevel && !mirrored(c.fields, fields) {
		enc := zapcore.NewMapObjectEncoder()
		for _, f := range fields {
			f.AddTo(enc)
		}
		if entry.Caller.Defined {
			enc.Fields["caller"] = entry.Caller.TrimmedPath()
		}

		c.writer.Add(runlog.LogEntry{
			Timestamp: entry.Time,
			Level:     mapLevel(entry.Level),
			Message:   entry.Message,
			Context:   enc.Fields,
		})
	}

	return c.Core.Write(entry, fields)
}

// Check decides if we should log this level
func (c *StoreCore) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(ent.Level) {
		return ce.AddCore(ent, c)
	}
	return ce
}

// mirrored reports whether the entry came from the RunLogger, which persists
// its own entries.
func mirrored(groups ...[]zapcore.Field) bool {
	for _, fields := range groups {
		for _, f := range fields {
			if f.Key == runlog.MirrorFieldKey {
				return true
			}
		}
	}
	return false
}

func mapLevel(l zapcore.Level) runlog.Level {
	switch {
	case l >= zapcore.ErrorLevel:
		return runlog.LevelError
	case l == zapcore.WarnLevel:
		return runlog.LevelWarning
	default:
		return runlog.LevelInfo
	}
}
