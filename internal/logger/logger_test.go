package logger

import (
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithDefaults(t *testing.T) {
	logger, err := New(NewDefaultFileLogConfig())
	require.NoError(t, err)
	assert.Equal(t, zerolog.InfoLevel, logger.GetLevel())
}

func TestNewWithFileOutput(t *testing.T) {
	cfg := NewDefaultFileLogConfig()
	cfg.LogFile = filepath.Join(t.TempDir(), "pagewatch.log")
	cfg.LogLevel = "debug"

	logger, err := New(cfg)
	require.NoError(t, err)
	assert.Equal(t, zerolog.DebugLevel, logger.GetLevel())
}

func TestNewRejectsInvalidLevel(t *testing.T) {
	cfg := NewDefaultFileLogConfig()
	cfg.LogLevel = "loud"

	_, err := New(cfg)
	assert.Error(t, err)
}

func TestNewRequiresSizeForFileLogging(t *testing.T) {
	cfg := NewDefaultFileLogConfig()
	cfg.LogFile = filepath.Join(t.TempDir(), "pagewatch.log")
	cfg.MaxLogSizeMB = 0

	_, err := New(cfg)
	assert.Error(t, err)
}
