// Package testutil provides test utilities for structured logging.
package testutil

import (
	"context"
	"log/slog"
	"strings"
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

// Record is one captured log entry.
type Record struct {
	Level   slog.Level
	Message string
	Attrs   map[string]string
}

// Records collects log entries from concurrent goroutines.
type Records struct {
	mu      sync.Mutex
	entries []Record
}

// All returns a copy of the captured entries.
func (r *Records) All() []Record {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Record(nil), r.entries...)
}

// Count returns how many entries at level have a message containing substr.
func (r *Records) Count(level slog.Level, substr string) int {
	n := 0
	for _, rec := range r.All() {
		if rec.Level == level && strings.Contains(rec.Message, substr) {
			n++
		}
	}
	return n
}

func (r *Records) add(rec Record) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, rec)
}

// NewCapturingLogger returns a debug-level logger that records every entry
// for assertions and also echoes it to t.Log().
func NewCapturingLogger(t testing.TB) (*slog.Logger, *Records) {
	t.Helper()
	records := &Records{}
	echo := slog.NewTextHandler(testWriter{t}, &slog.HandlerOptions{Level: slog.LevelDebug})
	return slog.New(&capturingHandler{records: records, next: echo}), records
}

type capturingHandler struct {
	records *Records
	next    slog.Handler
	attrs   []slog.Attr
}

func (h *capturingHandler) Enabled(context.Context, slog.Level) bool {
	return true
}

func (h *capturingHandler) Handle(ctx context.Context, r slog.Record) error {
	attrs := make(map[string]string, len(h.attrs)+r.NumAttrs())
	for _, a := range h.attrs {
		attrs[a.Key] = a.Value.String()
	}
	r.Attrs(func(a slog.Attr) bool {
		attrs[a.Key] = a.Value.String()
		return true
	})
	h.records.add(Record{Level: r.Level, Message: r.Message, Attrs: attrs})
	return h.next.Handle(ctx, r)
}

func (h *capturingHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &capturingHandler{
		records: h.records,
		next:    h.next.WithAttrs(attrs),
		attrs:   append(append([]slog.Attr(nil), h.attrs...), attrs...),
	}
}

func (h *capturingHandler) WithGroup(name string) slog.Handler {
	return &capturingHandler{records: h.records, next: h.next.WithGroup(name), attrs: h.attrs}
}
