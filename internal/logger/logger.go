// Package logger provides the global structured logger for vecforge.
// Log output goes to a rotating JSON log file so a provisioning run leaves an
// auditable trail; human-facing output stays on stdout/stderr.
package logger

import (
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	// Log is the global structured logger
	Log *slog.Logger
	// logWriter is the rotating log writer
	logWriter *lumberjack.Logger
	// LogPath is the path to the current log file
	LogPath string
)

// LogLevel represents the logging level
type LogLevel int

const (
	LevelDebug LogLevel = iota
	LevelInfo
	LevelWarn
	LevelError
)

// InitLogger initializes the global logger with the specified level and
// optional path. If logPath is empty, defaults to /var/log/vecforge/vecforge.log
// with a fallback under the invoking user's home directory when that is not
// writable.
func InitLogger(level LogLevel, logPath string) {
	var slogLevel slog.Level
	switch level {
	case LevelDebug:
		slogLevel = slog.LevelDebug
	case LevelInfo:
		slogLevel = slog.LevelInfo
	case LevelWarn:
		slogLevel = slog.LevelWarn
	case LevelError:
		slogLevel = slog.LevelError
	default:
		slogLevel = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{
		Level: slogLevel,
	}

	if logPath == "" {
		logPath = defaultLogPath()
	}
	LogPath = logPath

	// Use lumberjack for log rotation
	logWriter = &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    10, // MB
		MaxBackups: 3,
		MaxAge:     30, // days
		Compress:   true,
	}

	Log = slog.New(slog.NewJSONHandler(logWriter, opts))
	slog.SetDefault(Log)
}

// defaultLogPath picks /var/log/vecforge when writable (the tool normally
// runs as root), otherwise ~/.local/state/vecforge.
func defaultLogPath() string {
	sysDir := "/var/log/vecforge"
	if err := os.MkdirAll(sysDir, 0o755); err == nil {
		return filepath.Join(sysDir, "vecforge.log")
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = os.TempDir()
	}
	dir := filepath.Join(homeDir, ".local", "state", "vecforge")
	_ = os.MkdirAll(dir, 0o755)
	return filepath.Join(dir, "vecforge.log")
}

// Close closes the log file
func Close() {
	if logWriter != nil {
		logWriter.Close()
	}
}

// getLogger returns the global logger, or the default slog logger if not initialized.
func getLogger() *slog.Logger {
	if Log != nil {
		return Log
	}
	return slog.Default()
}

// Debug logs a debug message
func Debug(msg string, args ...any) {
	getLogger().Debug(msg, args...)
}

// Info logs an info message
func Info(msg string, args ...any) {
	getLogger().Info(msg, args...)
}

// Warn logs a warning message
func Warn(msg string, args ...any) {
	getLogger().Warn(msg, args...)
}

// Error logs an error message
func Error(msg string, args ...any) {
	getLogger().Error(msg, args...)
}

// With creates a new logger with additional attributes
func With(args ...any) *slog.Logger {
	return getLogger().With(args...)
}
