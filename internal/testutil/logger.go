// Package testutil holds helpers shared by tests: a logger routed to t.Log
// and metadata fixtures.
package testutil

import (
	"log/slog"
	"testing"
)

// NewTestLogger returns a debug-level logger writing to t.Log, so output
// shows up only for failing tests or with -v.
func NewTestLogger(t testing.TB) *slog.Logger {
	t.Helper()
	return slog.New(slog.NewTextHandler(tbWriter{t}, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
}

type tbWriter struct {
	tb testing.TB
}

func (w tbWriter) Write(p []byte) (int, error) {
	w.tb.Helper()
	w.tb.Log(string(p))
	return len(p), nil
}
