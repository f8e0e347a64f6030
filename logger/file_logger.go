package logger

import (
	"log/slog"

	"github.com/natefinch/lumberjack"
)

// FileLogger writes JSON records to a rotating log file.
type FileLogger struct {
	logger *slog.Logger
}

// NewFileLogger creates a file logger rotating through lumberjack. Zero
// rotation values keep lumberjack's defaults (100 MB per file, no backup or
// age limit).
func NewFileLogger(level string, filePath string, maxSize int, maxBackups int, maxAge int) Logger {
	writer := &lumberjack.Logger{
		Filename:   filePath,
		MaxSize:    maxSize,
		MaxBackups: maxBackups,
		MaxAge:     maxAge,
		Compress:   true,
	}

	handler := slog.NewJSONHandler(writer, &slog.HandlerOptions{
		Level: parseLevel(level),
	})
	return &FileLogger{logger: slog.New(handler)}
}

func (l *FileLogger) Debug(msg string, args ...interface{}) {
	l.logger.Debug(msg, args...)
}

func (l *FileLogger) Info(msg string, args ...interface{}) {
	l.logger.Info(msg, args...)
}

func (l *FileLogger) Warn(msg string, args ...interface{}) {
	l.logger.Warn(msg, args...)
}

func (l *FileLogger) Error(msg string, args ...interface{}) {
	l.logger.Error(msg, args...)
}
