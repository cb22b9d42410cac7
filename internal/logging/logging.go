// Package logging configures the process-wide slog logger: colorized
// console output on stderr and an optional rotating JSON log file.
package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Config controls logger construction.
type Config struct {
	Level   slog.Level
	LogFile string // empty disables the file sink
}

// Setup builds the logger and installs it as slog's default. The
// returned closer flushes the file sink and may be nil.
func Setup(cfg Config) (*slog.Logger, io.Closer) {
	console := tint.NewHandler(os.Stderr, &tint.Options{
		Level:      cfg.Level,
		TimeFormat: time.TimeOnly,
	})

	var handler slog.Handler = console
	var closer io.Closer

	if cfg.LogFile != "" {
		rotating := &lumberjack.Logger{
			Filename:   cfg.LogFile,
			MaxSize:    50, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
		}
		fileHandler := slog.NewJSONHandler(rotating, &slog.HandlerOptions{Level: cfg.Level})
		handler = multiHandler{console, fileHandler}
		closer = rotating
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger, closer
}

// multiHandler fans records out to several handlers.
type multiHandler []slog.Handler

func (m multiHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range m {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (m multiHandler) Handle(ctx context.Context, record slog.Record) error {
	var firstErr error
	for _, h := range m {
		if !h.Enabled(ctx, record.Level) {
			continue
		}
		if err := h.Handle(ctx, record.Clone()); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (m multiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := make(multiHandler, len(m))
	for i, h := range m {
		next[i] = h.WithAttrs(attrs)
	}
	return next
}

func (m multiHandler) WithGroup(name string) slog.Handler {
	next := make(multiHandler, len(m))
	for i, h := range m {
		next[i] = h.WithGroup(name)
	}
	return next
}
