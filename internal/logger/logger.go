// Package logger provides structured JSON logging and metrics tracking for fifa-dash.
//
// The logger supports the DEBUG, INFO, WARN and ERROR levels and writes one JSON object
// per line through log/slog. Every entry carries a timestamp, level and message, plus
// optional structured fields and an error string.
//
// Metrics tracking includes counters (incrementing values), gauges (point-in-time values),
// and timings (duration measurements) with statistical aggregation on snapshot.
//
// Example usage:
//
//	logger.Info("serving dashboard", logger.Fields{
//	    "addr":    "127.0.0.1:8050",
//	    "matches": 22,
//	})
//
//	logger.Error("fetch failed", logger.Fields{"url": url}, err)
//
//	logger.IncrCounter("http.requests./api/year")
//	logger.RecordTiming("scrape.fetch", duration)
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"sort"
	"strings"
	"time"
)

// Level represents log severity
type Level string

const (
	LevelDebug Level = "DEBUG"
	LevelInfo  Level = "INFO"
	LevelWarn  Level = "WARN"
	LevelError Level = "ERROR"
)

// ParseLevel converts a level name such as "debug" into a Level.
// Unknown names fall back to LevelInfo.
func ParseLevel(name string) Level {
	switch Level(strings.ToUpper(strings.TrimSpace(name))) {
	case LevelDebug:
		return LevelDebug
	case LevelWarn:
		return LevelWarn
	case LevelError:
		return LevelError
	default:
		return LevelInfo
	}
}

func (l Level) slogLevel() slog.Level {
	switch l {
	case LevelDebug:
		return slog.LevelDebug
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Fields represents structured log fields
type Fields map[string]interface{}

// Logger provides structured logging
type Logger struct {
	level *slog.LevelVar
	log   *slog.Logger
}

var defaultLogger = New(LevelInfo, os.Stderr)

// New creates a logger writing JSON lines to output.
// Messages below level are discarded.
func New(level Level, output io.Writer) *Logger {
	lv := new(slog.LevelVar)
	lv.Set(level.slogLevel())

	handler := slog.NewJSONHandler(output, &slog.HandlerOptions{
		Level:       lv,
		ReplaceAttr: renameKeys,
	})
	return &Logger{level: lv, log: slog.New(handler)}
}

// renameKeys gives entries the timestamp/level/message keys used by the log tooling
func renameKeys(groups []string, a slog.Attr) slog.Attr {
	if len(groups) > 0 {
		return a
	}
	switch a.Key {
	case slog.TimeKey:
		return slog.String("timestamp", a.Value.Time().UTC().Format(time.RFC3339))
	case slog.MessageKey:
		a.Key = "message"
	}
	return a
}

// SetDefault sets the logger used by the package-level functions
func SetDefault(logger *Logger) {
	defaultLogger = logger
}

// Default returns the logger used by the package-level functions
func Default() *Logger {
	return defaultLogger
}

// SetLevel changes the minimum level of the logger
func (l *Logger) SetLevel(level Level) {
	l.level.Set(level.slogLevel())
}

// Enabled reports whether messages at level would be written
func (l *Logger) Enabled(level Level) bool {
	return l.log.Enabled(context.Background(), level.slogLevel())
}

func (l *Logger) write(level Level, message string, fields Fields, err error) {
	ctx := context.Background()
	if !l.log.Enabled(ctx, level.slogLevel()) {
		return
	}

	attrs := make([]slog.Attr, 0, 2)
	if len(fields) > 0 {
		attrs = append(attrs, slog.Group("fields", fieldAttrs(fields)...))
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	l.log.LogAttrs(ctx, level.slogLevel(), message, attrs...)
}

// fieldAttrs converts fields into attributes sorted by key
func fieldAttrs(fields Fields) []any {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	attrs := make([]any, 0, len(keys))
	for _, k := range keys {
		attrs = append(attrs, slog.Any(k, fields[k]))
	}
	return attrs
}

// Debug logs a debug message with optional structured fields.
func (l *Logger) Debug(message string, fields Fields) {
	l.write(LevelDebug, message, fields, nil)
}

// Info logs an informational message with optional structured fields.
func (l *Logger) Info(message string, fields Fields) {
	l.write(LevelInfo, message, fields, nil)
}

// Warn logs a warning message with optional structured fields.
func (l *Logger) Warn(message string, fields Fields) {
	l.write(LevelWarn, message, fields, nil)
}

// Error logs an error message with optional structured fields and an error object.
func (l *Logger) Error(message string, fields Fields, err error) {
	l.write(LevelError, message, fields, err)
}

// Package-level convenience functions using default logger

// Debug logs a debug message with the default logger
func Debug(message string, fields Fields) {
	defaultLogger.Debug(message, fields)
}

// Info logs an info message with the default logger
func Info(message string, fields Fields) {
	defaultLogger.Info(message, fields)
}

// Warn logs a warning message with the default logger
func Warn(message string, fields Fields) {
	defaultLogger.Warn(message, fields)
}

// Error logs an error message with the default logger
func Error(message string, fields Fields, err error) {
	defaultLogger.Error(message, fields, err)
}
