// Package logger wraps zerolog with a context-aware API: request-scoped
// fields travel in the context and every log call picks them up.
package logger

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

type contextKey string

const (
	// RequestIDKey is the context key for request ID
	RequestIDKey contextKey = "request_id"
	// LoggerKey is the context key for the request-scoped logger
	LoggerKey contextKey = "logger"
)

var globalLogger zerolog.Logger

// Config holds logger configuration
type Config struct {
	Level  string // debug, info, warn, error
	Format string // json, console
	Output io.Writer
}

// Init initializes the global logger
func Init(cfg Config) {
	zerolog.SetGlobalLevel(parseLevel(cfg.Level))

	output := cfg.Output
	if output == nil {
		output = os.Stdout
	}

	if cfg.Format == "console" {
		output = zerolog.ConsoleWriter{
			Out:        output,
			TimeFormat: "2006-01-02 15:04:05.000",
		}
	}

	globalLogger = zerolog.New(output).With().Timestamp().Caller().Logger()
}

// InitWithFile initializes the logger with rotating file output alongside
// stdout.
func InitWithFile(filename, level, format string) {
	if err := os.MkdirAll(filepath.Dir(filename), 0o755); err != nil {
		panic(err)
	}

	logFile := &lumberjack.Logger{
		Filename:   filename,
		MaxSize:    100, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
		Compress:   true,
	}

	Init(Config{
		Level:  level,
		Format: format,
		Output: io.MultiWriter(os.Stdout, logFile),
	})
}

func parseLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zerolog.DebugLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// WithRequestID stores the request id and a logger tagged with it in the
// context.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	l := globalLogger.With().Str("request_id", requestID).Logger()
	ctx = context.WithValue(ctx, RequestIDKey, requestID)
	return context.WithValue(ctx, LoggerKey, &l)
}

// WithFields returns a context whose logger carries the extra fields
func WithFields(ctx context.Context, fields map[string]interface{}) context.Context {
	c := FromContext(ctx).With()
	for k, v := range fields {
		c = c.Interface(k, v)
	}
	l := c.Logger()
	return context.WithValue(ctx, LoggerKey, &l)
}

// FromContext extracts the request-scoped logger, falling back to the global
// one.
func FromContext(ctx context.Context) *zerolog.Logger {
	if ctx == nil {
		return &globalLogger
	}
	if l, ok := ctx.Value(LoggerKey).(*zerolog.Logger); ok && l != nil {
		return l
	}
	return &globalLogger
}

// GetRequestID extracts the request id from the context
func GetRequestID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if id, ok := ctx.Value(RequestIDKey).(string); ok {
		return id
	}
	return ""
}

// Debug logs a debug message
func Debug(ctx context.Context) *zerolog.Event { return FromContext(ctx).Debug() }

// Info logs an info message
func Info(ctx context.Context) *zerolog.Event { return FromContext(ctx).Info() }

// Warn logs a warning message
func Warn(ctx context.Context) *zerolog.Event { return FromContext(ctx).Warn() }

// Error logs an error message
func Error(ctx context.Context) *zerolog.Event { return FromContext(ctx).Error() }

// Fatal logs a fatal message and exits
func Fatal(ctx context.Context) *zerolog.Event { return FromContext(ctx).Fatal() }

// InfoGlobal logs without a context
func InfoGlobal() *zerolog.Event { return globalLogger.Info() }

// WarnGlobal logs without a context
func WarnGlobal() *zerolog.Event { return globalLogger.Warn() }

// ErrorGlobal logs without a context
func ErrorGlobal() *zerolog.Event { return globalLogger.Error() }

// FatalGlobal logs without a context and exits
func FatalGlobal() *zerolog.Event { return globalLogger.Fatal() }
