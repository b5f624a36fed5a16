package observe

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
)

// Logger is a minimal leveled logging interface.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Errors: logging must be best-effort and must not panic.
type Logger interface {
	Info(ctx context.Context, msg string, fields ...Field)
	Warn(ctx context.Context, msg string, fields ...Field)
	Error(ctx context.Context, msg string, fields ...Field)
	Debug(ctx context.Context, msg string, fields ...Field)
}

// Field represents a structured log field.
type Field struct {
	Key   string
	Value any
}

// LogLevel represents a logging level.
type LogLevel int

const (
	LevelDebug LogLevel = iota
	LevelInfo
	LevelWarn
	LevelError
)

// ParseLogLevel parses a string log level.
func ParseLogLevel(s string) LogLevel {
	switch s {
	case "debug":
		return LevelDebug
	case "info":
		return LevelInfo
	case "warn":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

func (l LogLevel) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	default:
		return "info"
	}
}

// tag returns the uppercase line prefix for the level.
func (l LogLevel) tag() string {
	return strings.ToUpper(l.String())
}

// lineLogger writes "LEVEL: message key=value" lines to a single writer.
type lineLogger struct {
	level  LogLevel
	writer io.Writer
	mu     sync.Mutex
}

// NewLogger creates a logger at the given level writing to stderr.
func NewLogger(level string) Logger {
	return NewLoggerWithWriter(level, os.Stderr)
}

// NewLoggerWithWriter creates a logger with a custom writer.
func NewLoggerWithWriter(level string, w io.Writer) Logger {
	return &lineLogger{
		level:  ParseLogLevel(level),
		writer: w,
	}
}

func (l *lineLogger) Info(ctx context.Context, msg string, fields ...Field) {
	l.log(ctx, LevelInfo, msg, fields)
}

func (l *lineLogger) Warn(ctx context.Context, msg string, fields ...Field) {
	l.log(ctx, LevelWarn, msg, fields)
}

func (l *lineLogger) Error(ctx context.Context, msg string, fields ...Field) {
	l.log(ctx, LevelError, msg, fields)
}

func (l *lineLogger) Debug(ctx context.Context, msg string, fields ...Field) {
	l.log(ctx, LevelDebug, msg, fields)
}

func (l *lineLogger) log(_ context.Context, level LogLevel, msg string, fields []Field) {
	if level < l.level {
		return
	}

	var b strings.Builder
	b.WriteString(level.tag())
	b.WriteString(": ")
	b.WriteString(msg)

	for _, f := range fields {
		b.WriteByte(' ')
		b.WriteString(f.Key)
		b.WriteByte('=')
		if isRedactedField(f.Key) {
			b.WriteString("[REDACTED]")
			continue
		}
		b.WriteString(formatValue(f.Value))
	}
	b.WriteByte('\n')

	l.mu.Lock()
	defer l.mu.Unlock()

	// Best-effort: a failed write has nowhere useful to go.
	_, _ = io.WriteString(l.writer, b.String())
}

// formatValue renders a field value, quoting strings that would break the
// one-token-per-field line shape.
func formatValue(v any) string {
	s := fmt.Sprintf("%v", v)
	if strings.ContainsAny(s, " \t\n\"=") {
		return fmt.Sprintf("%q", s)
	}
	if s == "" {
		return `""`
	}
	return s
}

// isRedactedField returns true if the field value must never be logged.
func isRedactedField(key string) bool {
	redactedKeys := map[string]bool{
		"value":      true,
		"secret":     true,
		"token":      true,
		"password":   true,
		"api_key":    true,
		"credential": true,
	}
	return redactedKeys[key]
}

// noopLogger discards everything.
type noopLogger struct{}

// NewNoopLogger returns a logger that discards all output.
func NewNoopLogger() Logger { return &noopLogger{} }

func (*noopLogger) Info(context.Context, string, ...Field)  {}
func (*noopLogger) Warn(context.Context, string, ...Field)  {}
func (*noopLogger) Error(context.Context, string, ...Field) {}
func (*noopLogger) Debug(context.Context, string, ...Field) {}
