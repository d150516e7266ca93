package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger wraps zap.SugaredLogger to provide logging functionality
type Logger struct {
	*zap.SugaredLogger
}

// Global logger for convenience in scripts; everywhere else prefer the
// dependency injected instance.
var L *Logger

func init() {
	L, _ = NewDefaultLogger()
}

// NewDefaultLogger creates a logger with production defaults
func NewDefaultLogger() (*Logger, error) {
	return newLogger(zap.NewProductionConfig())
}

// NewLogger creates a logger honoring the configured level
func NewLogger(level string) (*Logger, error) {
	config := zap.NewProductionConfig()

	parsed, err := zapcore.ParseLevel(level)
	if err == nil {
		config.Level = zap.NewAtomicLevelAt(parsed)
	}

	return newLogger(config)
}

func newLogger(config zap.Config) (*Logger, error) {
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	zapLogger, err := config.Build()
	if err != nil {
		return nil, err
	}

	return &Logger{
		SugaredLogger: zapLogger.Sugar(),
	}, nil
}

// With creates a child logger with the given structured context
func (l *Logger) With(args ...interface{}) *Logger {
	return &Logger{
		SugaredLogger: l.SugaredLogger.With(args...),
	}
}
