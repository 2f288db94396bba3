package logger

import (
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"
)

// New builds the application logger from file configuration. Console output
// is always enabled; file output is added when a log file path is set.
func New(cfg FileLogConfig) (zerolog.Logger, error) {
	level, err := parseLevel(cfg.LogLevel)
	if err != nil {
		return zerolog.Logger{}, err
	}

	if cfg.LogFile != "" && cfg.MaxLogSizeMB <= 0 {
		return zerolog.Logger{}, fmt.Errorf("max_log_size_mb must be positive when file logging is enabled, got %d", cfg.MaxLogSizeMB)
	}

	writers := []io.Writer{newConsoleWriter(cfg.LogFormat)}
	if cfg.LogFile != "" {
		writers = append(writers, newFileWriter(cfg))
	}

	logger := zerolog.New(zerolog.MultiLevelWriter(writers...)).
		Level(level).
		With().
		Timestamp().
		Logger()

	return logger, nil
}

func parseLevel(levelStr string) (zerolog.Level, error) {
	if levelStr == "" {
		levelStr = DefaultLogLevel
	}
	level, err := zerolog.ParseLevel(strings.ToLower(levelStr))
	if err != nil {
		return zerolog.InfoLevel, fmt.Errorf("invalid log level %q: %w", levelStr, err)
	}
	return level, nil
}
