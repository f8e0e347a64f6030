package logger

import (
	"log/slog"
	"os"
)

// ConsoleLogger writes human-readable text records to stdout.
type ConsoleLogger struct {
	logger *slog.Logger
}

// NewConsoleLogger creates a console logger filtering below the given level.
func NewConsoleLogger(level string) Logger {
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLevel(level),
	})
	return &ConsoleLogger{logger: slog.New(handler)}
}

func (l *ConsoleLogger) Debug(msg string, args ...interface{}) {
	l.logger.Debug(msg, args...)
}

func (l *ConsoleLogger) Info(msg string, args ...interface{}) {
	l.logger.Info(msg, args...)
}

func (l *ConsoleLogger) Warn(msg string, args ...interface{}) {
	l.logger.Warn(msg, args...)
}

func (l *ConsoleLogger) Error(msg string, args ...interface{}) {
	l.logger.Error(msg, args...)
}
