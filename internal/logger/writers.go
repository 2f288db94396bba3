package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// newConsoleWriter creates the stderr writer for the configured format.
// The "console" format gets zerolog's human-readable output; anything else
// writes raw JSON.
func newConsoleWriter(format string) io.Writer {
	if strings.ToLower(format) == "console" {
		return zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.RFC3339,
		}
	}
	return os.Stderr
}

// newFileWriter creates a size-rotated file writer.
func newFileWriter(cfg FileLogConfig) io.Writer {
	return &lumberjack.Logger{
		Filename:   cfg.LogFile,
		MaxSize:    cfg.MaxLogSizeMB,
		MaxBackups: cfg.MaxLogBackups,
		Compress:   true,
	}
}
