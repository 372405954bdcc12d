// Package debuglog opens the opt-in diagnostic log shared by the CLI, the
// picker and the web bridge.
package debuglog

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Logger is a slog logger plus the file it appends to.
type Logger struct {
	*slog.Logger
	f io.Closer
}

func (l *Logger) Close() error {
	if l == nil || l.f == nil {
		return nil
	}
	return l.f.Close()
}

var discardLogger = slog.New(slog.DiscardHandler)

// Discard returns a logger that drops everything.
func Discard() *slog.Logger { return discardLogger }

// Open returns a debug-level text logger appending to path. An empty path
// yields a discard logger and no file.
func Open(path string) (*Logger, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return &Logger{Logger: discardLogger}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open debug log %q: %w", path, err)
	}
	h := slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug})
	return &Logger{Logger: slog.New(h).With("pid", os.Getpid()), f: f}, nil
}

type ctxKey struct{}

// Context returns ctx carrying l.
func Context(ctx context.Context, l *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// FromContext returns the logger in ctx, or a discard logger.
func FromContext(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok && l != nil {
		return l
	}
	return discardLogger
}
