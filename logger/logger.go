package logger

// Logger is the structured logging interface used across the library.
// Messages carry alternating key/value attribute pairs in slog style:
//
//	log.Info("starting server", "port", "8080")
//
// Both implementations forward the pairs to a slog handler, so values keep
// their types in JSON output.
type Logger interface {
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
}
