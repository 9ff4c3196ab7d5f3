// Package testutil provides test utilities for structured logging.
package testutil

import (
	"context"
	"log/slog"
	"sync"
	"testing"
)

// NewTestLogger returns a logger that writes to t.Log().
// Logs only appear on test failure or when running with -v.
func NewTestLogger(t testing.TB) *slog.Logger {
	t.Helper()
	return slog.New(slog.NewTextHandler(testWriter{t}, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
}

type testWriter struct {
	t testing.TB
}

func (w testWriter) Write(p []byte) (n int, err error) {
	w.t.Helper()
	w.t.Log(string(p))
	return len(p), nil
}

// Records collects log records for assertions. It is safe for concurrent use.
type Records struct {
	mu      sync.Mutex
	records []slog.Record
}

// NewCaptureLogger returns a logger that keeps every record at or above level.
func NewCaptureLogger(level slog.Level) (*slog.Logger, *Records) {
	r := &Records{}
	return slog.New(&captureHandler{records: r, level: level}), r
}

// Count returns how many records have the given level and message.
func (r *Records) Count(level slog.Level, msg string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, rec := range r.records {
		if rec.Level == level && rec.Message == msg {
			n++
		}
	}
	return n
}

// Levels returns how many records were captured per level.
func (r *Records) Levels() map[slog.Level]int {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[slog.Level]int)
	for _, rec := range r.records {
		out[rec.Level]++
	}
	return out
}

// Attr returns the value of key on the last record with the given message.
func (r *Records) Attr(msg, key string) (slog.Value, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := len(r.records) - 1; i >= 0; i-- {
		rec := r.records[i]
		if rec.Message != msg {
			continue
		}
		var (
			val   slog.Value
			found bool
		)
		rec.Attrs(func(a slog.Attr) bool {
			if a.Key == key {
				val, found = a.Value, true
				return false
			}
			return true
		})
		return val, found
	}
	return slog.Value{}, false
}

type captureHandler struct {
	records *Records
	level   slog.Level
	attrs   []slog.Attr
}

func (h *captureHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

func (h *captureHandler) Handle(_ context.Context, rec slog.Record) error {
	rec = rec.Clone()
	rec.AddAttrs(h.attrs...)
	h.records.mu.Lock()
	h.records.records = append(h.records.records, rec)
	h.records.mu.Unlock()
	return nil
}

func (h *captureHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := *h
	next.attrs = append(append([]slog.Attr(nil), h.attrs...), attrs...)
	return &next
}

func (h *captureHandler) WithGroup(_ string) slog.Handler {
	return h
}
