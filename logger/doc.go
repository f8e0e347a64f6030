// Package logger provides the logging facilities used across the library.
//
// Views and applications log through the Logger interface. A console
// implementation (text output on stdout) and a rotating file implementation
// (JSON output via lumberjack) are provided, selected through
// config.LoggerSettings.
package logger
