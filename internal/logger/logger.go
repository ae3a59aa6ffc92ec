package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Logger discards everything until Init is called.
var Logger = slog.New(slog.NewTextHandler(io.Discard, nil))

var logFile *os.File

// Init points the structured logger at the file at path, creating its
// directory as needed. An empty path keeps logging disabled.
func Init(path, level string) error {
	if path == "" {
		return nil
	}

	lvl, err := parseLevel(level)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}

	Close()
	logFile = file
	Logger = slog.New(slog.NewTextHandler(file, &slog.HandlerOptions{
		Level: lvl,
	}))
	return nil
}

// Close releases the log file, if one is open, and disables logging.
func Close() {
	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
	Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
}

func parseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log level %q", level)
}

func Info(msg string, args ...any) {
	Logger.Info(msg, args...)
}

func Error(msg string, args ...any) {
	Logger.Error(msg, args...)
}

func Debug(msg string, args ...any) {
	Logger.Debug(msg, args...)
}

func Warn(msg string, args ...any) {
	Logger.Warn(msg, args...)
}
