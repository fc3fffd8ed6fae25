// Package logging sets up the zerolog logger shared by all components:
// console, a per-session log file, and an optional GELF stream to
// Graylog when graylog.enabled is set.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Graylog2/go-gelf/gelf"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

// LogFilePath builds a log file path using OS-appropriate path separators.
func LogFilePath(logsDir, name string, sessionStart time.Time) string {
	return filepath.Join(
		logsDir,
		fmt.Sprintf("%s.%s.log", name, sessionStart.Format("20060102_150405")),
	)
}

// ParseLevel converts a config log level string to a zerolog level,
// defaulting to info.
func ParseLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// New builds the root logger. The returned closer flushes the session
// log file; callers defer it at shutdown.
func New(sessionStart time.Time) (zerolog.Logger, func(), error) {
	writers := []io.Writer{
		zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339},
	}
	closer := func() {}

	logsDir := viper.GetString("logsDir")
	if logsDir != "" {
		if err := os.MkdirAll(logsDir, 0755); err != nil {
			return zerolog.Logger{}, nil, fmt.Errorf("failed to create logs dir: %w", err)
		}
		path := LogFilePath(logsDir, "seawatchd", sessionStart)
		file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return zerolog.Logger{}, nil, fmt.Errorf("failed to open log file: %w", err)
		}
		writers = append(writers, file)
		closer = func() { _ = file.Close() }
	}

	if viper.GetBool("graylog.enabled") {
		gelfWriter, err := gelf.NewWriter(viper.GetString("graylog.address"))
		if err != nil {
			// degrade to local logging rather than failing startup
			fmt.Fprintf(os.Stderr, "graylog writer unavailable: %v\n", err)
		} else {
			writers = append(writers, gelfWriter)
		}
	}

	logger := zerolog.New(io.MultiWriter(writers...)).
		Level(ParseLevel(viper.GetString("logLevel"))).
		With().
		Timestamp().
		Logger()

	return logger, closer, nil
}
