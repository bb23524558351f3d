package log

import (
	"context"
	"io"
	"log/slog"
)

// Logger wraps [slog.Logger] with configuration that can be inspected and
// rebuilt after construction.
type Logger struct {
	*slog.Logger
	config config
}

// Make creates a new Logger writing to w with the given options applied
// over the defaults.
func Make(w io.Writer, opts ...Option) *Logger {
	cfg := makeConfig(w, opts...)

	return &Logger{Logger: slog.New(cfg.handler()), config: cfg}
}

// Config applies the given options to the logger's configuration and
// rebuilds its handler in place.
// It is safe for concurrent use.
func (l *Logger) Config(opts ...Option) *Logger {
	if len(opts) == 0 {
		return l
	}

	l.config.mutex.Lock()
	defer l.config.mutex.Unlock()

	mutex := l.config.mutex
	l.config = apply(l.config, opts...)
	l.config.mutex = mutex
	l.Logger = slog.New(l.config.handler())

	return l
}

// Clone returns a copy of the logger with the given options applied.
// The receiver is unmodified.
func (l *Logger) Clone(opts ...Option) *Logger {
	l.config.mutex.RLock()
	cfg := l.config.clone(opts...)
	l.config.mutex.RUnlock()

	return &Logger{Logger: slog.New(cfg.handler()), config: cfg}
}

// Level returns the logger's minimum level.
func (l *Logger) Level() Level {
	l.config.mutex.RLock()
	defer l.config.mutex.RUnlock()

	return l.config.level
}

// Trace logs at [LevelTrace].
func (l *Logger) Trace(msg string, args ...any) {
	l.Log(context.Background(), slog.Level(LevelTrace), msg, args...)
}

// defaultLog is the process-wide logger used by the package-level functions.
// The CLI reconfigures it via [Config] while parsing --log-* flags.
//
//nolint:gochecknoglobals
var defaultLog = Make(defaultOutput())

// Default returns the process-wide default logger.
func Default() *Logger { return defaultLog }

// Config applies options to the default logger in place.
func Config(opts ...Option) *Logger { return defaultLog.Config(opts...) }

// Trace logs at [LevelTrace] using the default logger.
func Trace(msg string, args ...any) { defaultLog.Trace(msg, args...) }

// Debug logs at [LevelDebug] using the default logger.
func Debug(msg string, args ...any) { defaultLog.Debug(msg, args...) }

// Info logs at [LevelInfo] using the default logger.
func Info(msg string, args ...any) { defaultLog.Info(msg, args...) }

// Warn logs at [LevelWarn] using the default logger.
func Warn(msg string, args ...any) { defaultLog.Warn(msg, args...) }

// Error logs at [LevelError] using the default logger.
func Error(msg string, args ...any) { defaultLog.Error(msg, args...) }

// With returns a logger derived from the default logger with the given
// attributes attached to every record.
func With(args ...any) *slog.Logger { return defaultLog.With(args...) }
