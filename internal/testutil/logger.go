package testutil

import (
	"sync"

	"github.com/hupe1980/agentzero/logging"
)

// Entry is a single record captured by RecordingLogger.
type Entry struct {
	Level string
	Msg   string
	Args  []any
}

// Attr returns the value logged under key and whether it was present.
func (e Entry) Attr(key string) (any, bool) {
	for i := 0; i+1 < len(e.Args); i += 2 {
		if k, ok := e.Args[i].(string); ok && k == key {
			return e.Args[i+1], true
		}
	}
	return nil, false
}

// RecordingLogger captures log records for assertions. It is safe for
// concurrent use.
type RecordingLogger struct {
	mu      sync.Mutex
	entries []Entry
}

var _ logging.Logger = (*RecordingLogger)(nil)

func (l *RecordingLogger) record(level, msg string, args []any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, Entry{Level: level, Msg: msg, Args: args})
}

// Debug implements logging.Logger.
func (l *RecordingLogger) Debug(msg string, args ...any) { l.record("debug", msg, args) }

// Info implements logging.Logger.
func (l *RecordingLogger) Info(msg string, args ...any) { l.record("info", msg, args) }

// Warn implements logging.Logger.
func (l *RecordingLogger) Warn(msg string, args ...any) { l.record("warn", msg, args) }

// Error implements logging.Logger.
func (l *RecordingLogger) Error(msg string, args ...any) { l.record("error", msg, args) }

// Entries returns a copy of all captured records.
func (l *RecordingLogger) Entries() []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Messages returns the messages logged at level, in order.
func (l *RecordingLogger) Messages(level string) []string {
	var out []string
	for _, e := range l.Entries() {
		if e.Level == level {
			out = append(out, e.Msg)
		}
	}
	return out
}

// Find returns the first entry with msg.
func (l *RecordingLogger) Find(msg string) (Entry, bool) {
	for _, e := range l.Entries() {
		if e.Msg == msg {
			return e, true
		}
	}
	return Entry{}, false
}
