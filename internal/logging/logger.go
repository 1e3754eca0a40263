package logging

import (
	"os"
	"sort"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Fields map[string]interface{}

var (
	mu     sync.RWMutex
	logger = newDefault()
)

func newDefault() *zap.Logger {
	cfg := zap.NewProductionConfig()
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.Sampling = nil
	l, err := cfg.Build(zap.AddCallerSkip(2))
	if err != nil {
		return zap.NewNop()
	}
	return l
}

// SetLogger replaces the process logger. Tests use it with zaptest or
// observer cores to capture output.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	mu.Lock()
	logger = l.WithOptions(zap.AddCallerSkip(2))
	mu.Unlock()
}

// Sync flushes buffered entries. Call it before the process exits.
func Sync() {
	mu.RLock()
	l := logger
	mu.RUnlock()
	_ = l.Sync()
}

func current() *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

func toZap(fields Fields, err error) []zap.Field {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]zap.Field, 0, len(keys)+1)
	for _, k := range keys {
		out = append(out, zap.Any(k, fields[k]))
	}
	if err != nil {
		out = append(out, zap.Error(err))
	}
	return out
}

func output(level zapcore.Level, msg string, err error, fields Fields) {
	l := current()
	if ce := l.Check(level, msg); ce != nil {
		ce.Write(toZap(fields, err)...)
	}
}

// Debug logs a verbose message with optional fields.
func Debug(msg string, fields Fields) {
	output(zapcore.DebugLevel, msg, nil, fields)
}

// Info logs an informational message with optional fields.
func Info(msg string, fields Fields) {
	output(zapcore.InfoLevel, msg, nil, fields)
}

// Warn logs a recoverable problem.
func Warn(msg string, err error, fields Fields) {
	output(zapcore.WarnLevel, msg, err, fields)
}

// Error logs an error message and includes the error text in the fields.
func Error(msg string, err error, fields Fields) {
	output(zapcore.ErrorLevel, msg, err, fields)
}

// Fatal logs a fatal error and exits the process.
func Fatal(msg string, err error, fields Fields) {
	output(zapcore.ErrorLevel, msg, err, fields)
	Sync()
	os.Exit(1)
}
