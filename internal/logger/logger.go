package logger

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"
	"sync"
	"time"
)

// Level is the severity of a log message.
type Level int

const (
	DEBUG Level = iota
	INFO
	WARN
	ERROR
)

var levelNames = [...]string{"DEBUG", "INFO", "WARN", "ERROR"}

func (l Level) String() string {
	if l < DEBUG || l > ERROR {
		return "UNKNOWN"
	}
	return levelNames[l]
}

// ParseLevel parses a level name, case-insensitively. Unknown names read as
// INFO.
func ParseLevel(s string) Level {
	switch strings.ToUpper(s) {
	case "DEBUG":
		return DEBUG
	case "WARN", "WARNING":
		return WARN
	case "ERROR":
		return ERROR
	default:
		return INFO
	}
}

const timeLayout = "2006-01-02 15:04:05.000"

// Logger is a leveled printf-style logger. Lines carry a timestamp, level,
// optional prefix, the caller, the message, and any attached fields.
type Logger struct {
	mu     sync.Mutex
	out    io.Writer
	level  Level
	prefix string
	fields map[string]any
	colors bool
}

// Option configures a Logger.
type Option func(*Logger)

// WithOutput sets the output destination.
func WithOutput(w io.Writer) Option {
	return func(l *Logger) { l.out = w }
}

// WithLevel sets the minimum log level.
func WithLevel(level Level) Option {
	return func(l *Logger) { l.level = level }
}

// WithPrefix sets a prefix for log messages.
func WithPrefix(prefix string) Option {
	return func(l *Logger) { l.prefix = prefix }
}

// WithColors enables or disables colorized level tags.
func WithColors(enabled bool) Option {
	return func(l *Logger) { l.colors = enabled }
}

// New creates a Logger writing to stdout at INFO with colors on.
func New(opts ...Option) *Logger {
	l := &Logger{
		out:    os.Stdout,
		level:  INFO,
		fields: make(map[string]any),
		colors: true,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

var defaultLogger = New()

// SetDefault replaces the process-wide default logger.
func SetDefault(l *Logger) {
	defaultLogger = l
}

// Default returns the process-wide default logger.
func Default() *Logger {
	return defaultLogger
}

// clone copies the logger with room for extra fields. The mutex is not
// shared; each derived logger serializes its own writes.
func (l *Logger) clone(extraFields int) *Logger {
	fields := make(map[string]any, len(l.fields)+extraFields)
	for k, v := range l.fields {
		fields[k] = v
	}
	return &Logger{
		out:    l.out,
		level:  l.level,
		prefix: l.prefix,
		fields: fields,
		colors: l.colors,
	}
}

// WithField returns a derived logger with one field added.
func (l *Logger) WithField(key string, value any) *Logger {
	d := l.clone(1)
	d.fields[key] = value
	return d
}

// WithFields returns a derived logger with the given fields added.
func (l *Logger) WithFields(fields map[string]any) *Logger {
	d := l.clone(len(fields))
	for k, v := range fields {
		d.fields[k] = v
	}
	return d
}

// WithPrefix returns a derived logger with the prefix replaced.
func (l *Logger) WithPrefix(prefix string) *Logger {
	d := l.clone(0)
	d.prefix = prefix
	return d
}

func (l *Logger) log(level Level, msg string, args ...any) {
	if level < l.level {
		return
	}

	var tag string
	if l.colors {
		tag = colorTag(level)
	} else {
		tag = fmt.Sprintf("%-5s", level)
	}

	if len(args) > 0 {
		msg = fmt.Sprintf(msg, args...)
	}

	var sb strings.Builder
	sb.WriteString(time.Now().Format(timeLayout))
	sb.WriteString(" ")
	sb.WriteString(tag)
	sb.WriteString(" ")
	if l.prefix != "" {
		fmt.Fprintf(&sb, "[%s] ", l.prefix)
	}
	if caller := callerRef(3); caller != "" {
		fmt.Fprintf(&sb, "[%s] ", caller)
	}
	sb.WriteString(msg)
	for k, v := range l.fields {
		fmt.Fprintf(&sb, " %s=%v", k, v)
	}
	sb.WriteString("\n")

	l.mu.Lock()
	fmt.Fprint(l.out, sb.String())
	l.mu.Unlock()
}

// callerRef returns file:line of the log call site, skip frames up.
func callerRef(skip int) string {
	_, file, line, ok := runtime.Caller(skip)
	if !ok {
		return ""
	}
	if idx := strings.LastIndex(file, "/"); idx >= 0 {
		file = file[idx+1:]
	}
	return fmt.Sprintf("%s:%d", file, line)
}

func colorTag(level Level) string {
	var color string
	switch level {
	case DEBUG:
		color = "\033[36m"
	case INFO:
		color = "\033[32m"
	case WARN:
		color = "\033[33m"
	case ERROR:
		color = "\033[31m"
	default:
		color = "\033[0m"
	}
	return fmt.Sprintf("%s%-5s\033[0m", color, level)
}

// Debug logs a message at DEBUG level.
func (l *Logger) Debug(msg string, args ...any) {
	l.log(DEBUG, msg, args...)
}

// Info logs a message at INFO level.
func (l *Logger) Info(msg string, args ...any) {
	l.log(INFO, msg, args...)
}

// Warn logs a message at WARN level.
func (l *Logger) Warn(msg string, args ...any) {
	l.log(WARN, msg, args...)
}

// Error logs a message at ERROR level.
func (l *Logger) Error(msg string, args ...any) {
	l.log(ERROR, msg, args...)
}

// Package-level functions using the default logger.

func Debug(msg string, args ...any) { defaultLogger.Debug(msg, args...) }
func Info(msg string, args ...any)  { defaultLogger.Info(msg, args...) }
func Warn(msg string, args ...any)  { defaultLogger.Warn(msg, args...) }
func Error(msg string, args ...any) { defaultLogger.Error(msg, args...) }

type ctxKey struct{}

// FromContext returns the request-scoped logger, or the default.
func FromContext(ctx context.Context) *Logger {
	if l, ok := ctx.Value(ctxKey{}).(*Logger); ok {
		return l
	}
	return defaultLogger
}

// NewContext attaches a logger to the context.
func NewContext(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}
