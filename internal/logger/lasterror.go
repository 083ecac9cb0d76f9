package logger

import (
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap/zapcore"
)

// Entry is a recorded log entry.
type Entry struct {
	Level   zapcore.Level
	Time    time.Time
	Message string
	Fields  map[string]interface{}
}

// String formats the entry the way the console encoder prints it.
func (e Entry) String() string {
	if err, ok := e.Fields["error"]; ok {
		return fmt.Sprintf("%s %s: %v", severityName(e.Level), e.Message, err)
	}
	return fmt.Sprintf("%s %s", severityName(e.Level), e.Message)
}

var (
	lastMu  sync.Mutex
	last    Entry
	hasLast bool
)

// LastError returns the most recent WARNING-or-worse entry, independent of
// the configured output level.
func LastError() (Entry, bool) {
	lastMu.Lock()
	defer lastMu.Unlock()
	return last, hasLast
}

// ClearLastError resets the last-error slot.
func ClearLastError() {
	lastMu.Lock()
	last, hasLast = Entry{}, false
	lastMu.Unlock()
}

// lastErrorCore records entries into the last-error slot instead of writing
// them anywhere.
type lastErrorCore struct {
	zapcore.LevelEnabler
}

func (c lastErrorCore) With([]zapcore.Field) zapcore.Core { return c }

func (c lastErrorCore) Check(e zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(e.Level) {
		return ce.AddCore(e, c)
	}
	return ce
}

func (c lastErrorCore) Write(e zapcore.Entry, fields []zapcore.Field) error {
	enc := zapcore.NewMapObjectEncoder()
	for _, f := range fields {
		f.AddTo(enc)
	}

	lastMu.Lock()
	last = Entry{Level: e.Level, Time: e.Time, Message: e.Message, Fields: enc.Fields}
	hasLast = true
	lastMu.Unlock()
	return nil
}

func (c lastErrorCore) Sync() error { return nil }

func severityName(l zapcore.Level) string {
	switch l {
	case zapcore.WarnLevel:
		return "WARNING"
	case zapcore.DPanicLevel, zapcore.PanicLevel, zapcore.FatalLevel:
		return "FATAL"
	default:
		return l.CapitalString()
	}
}
