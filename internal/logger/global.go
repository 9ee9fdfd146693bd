package logger

import (
	"os"
	"strings"
)

var globalLogger *Logger

func init() {
	globalLogger = FromEnv(os.Getenv)
}

// FromEnv builds a logger from LOG_LEVEL, LOG_FORMAT, LOG_FILE and LOG_COLOR
// read through getenv. Unparseable values keep the defaults.
func FromEnv(getenv func(string) string) *Logger {
	cfg := Config{Level: INFO, Format: JSONFormat}

	if level := ParseLevel(getenv("LOG_LEVEL")); level != -1 {
		cfg.Level = level
	}
	if format := ParseFormat(getenv("LOG_FORMAT")); format != -1 {
		cfg.Format = format
	}
	cfg.File = getenv("LOG_FILE")
	cfg.Colored = strings.EqualFold(getenv("LOG_COLOR"), "true")

	return New(cfg)
}

// ParseLevel parses a log level name, returning -1 when unknown
func ParseLevel(level string) LogLevel {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "DEBUG":
		return DEBUG
	case "INFO":
		return INFO
	case "WARN", "WARNING":
		return WARN
	case "ERROR":
		return ERROR
	case "FATAL":
		return FATAL
	default:
		return -1
	}
}

// ParseFormat parses a log format name, returning -1 when unknown
func ParseFormat(format string) LogFormat {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json":
		return JSONFormat
	case "text":
		return TextFormat
	default:
		return -1
	}
}

// GetGlobalLogger returns the global logger instance
func GetGlobalLogger() *Logger {
	return globalLogger
}

// SetGlobalLogger sets the global logger instance
func SetGlobalLogger(logger *Logger) {
	globalLogger = logger
}

// Debug logs a debug message using the global logger
func Debug(message string, fields ...map[string]interface{}) {
	globalLogger.Debug(message, fields...)
}

// Info logs an info message using the global logger
func Info(message string, fields ...map[string]interface{}) {
	globalLogger.Info(message, fields...)
}

// Warn logs a warning message using the global logger
func Warn(message string, fields ...map[string]interface{}) {
	globalLogger.Warn(message, fields...)
}

// Error logs an error message using the global logger
func Error(message string, err error, fields ...map[string]interface{}) {
	globalLogger.Error(message, err, fields...)
}

// Fatal logs a fatal message using the global logger and exits
func Fatal(message string, err error, fields ...map[string]interface{}) {
	globalLogger.Fatal(message, err, fields...)
}
