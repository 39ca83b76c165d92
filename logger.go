package decal

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// discardHandler drops every record. Enabled reports false, so slog never
// formats the attributes of a disabled call, including the Stats group
// logged after each update.
type discardHandler struct{}

func (discardHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (discardHandler) WithAttrs([]slog.Attr) slog.Handler        { return discardHandler{} }
func (discardHandler) WithGroup(string) slog.Handler             { return discardHandler{} }

// discardLogger is the package default.
var discardLogger = slog.New(discardHandler{})

// packageLogger holds the logger used by registries created without
// WithLogger. Worker goroutines read it while the host may replace it.
var packageLogger atomic.Pointer[slog.Logger]

func init() {
	packageLogger.Store(discardLogger)
}

// SetLogger sets the logger used by every registry that was not given its
// own with WithLogger. decal is silent until SetLogger is called; nil
// makes it silent again. SetLogger is safe for concurrent use.
//
// Levels:
//   - [slog.LevelDebug]: one record per Registry.Update with its Stats
//   - [slog.LevelInfo]: projector created or destroyed
//   - [slog.LevelWarn]: a mesh that could not be projected, with the error
//
// Example:
//
//	decal.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = discardLogger
	}
	packageLogger.Store(l)
}

// Logger returns the package logger.
func Logger() *slog.Logger {
	return packageLogger.Load()
}
