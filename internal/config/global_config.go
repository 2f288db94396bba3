package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/aleister1102/pagewatch/internal/logger"
)

// GlobalConfig contains all configuration sections for the application.
type GlobalConfig struct {
	LogConfig          logger.FileLogConfig    `json:"log_config,omitempty" yaml:"log_config,omitempty"`
	PatrolConfig       PatrolConfig            `json:"patrol_config,omitempty" yaml:"patrol_config,omitempty"`
	RendererConfig     RendererConfig          `json:"renderer_config,omitempty" yaml:"renderer_config,omitempty"`
	StorageConfig      StorageConfig           `json:"storage_config,omitempty" yaml:"storage_config,omitempty"`
	NotificationConfig NotificationConfig      `json:"notification_config,omitempty" yaml:"notification_config,omitempty"`
	Targets            map[string]TargetConfig `json:"targets,omitempty" yaml:"targets,omitempty" validate:"required,min=1,dive"`
}

// NewDefaultGlobalConfig creates a GlobalConfig with default values.
func NewDefaultGlobalConfig() *GlobalConfig {
	return &GlobalConfig{
		LogConfig:          logger.NewDefaultFileLogConfig(),
		PatrolConfig:       NewDefaultPatrolConfig(),
		RendererConfig:     NewDefaultRendererConfig(),
		StorageConfig:      NewDefaultStorageConfig(),
		NotificationConfig: NewDefaultNotificationConfig(),
	}
}

// LoadGlobalConfig loads configuration from the given file. YAML is assumed
// unless the extension is .json. Configuration errors here are fatal: the
// process must not start patrolling with a broken target list.
func LoadGlobalConfig(filePath string) (*GlobalConfig, error) {
	cfg := NewDefaultGlobalConfig()

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %q: %w", filePath, err)
	}

	if filepath.Ext(filePath) == ".json" {
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to unmarshal JSON from %q: %w", filePath, err)
		}
	} else {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to unmarshal YAML from %q: %w", filePath, err)
		}
	}

	return cfg, nil
}
