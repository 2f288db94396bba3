package config

import (
	"fmt"
	"sort"
	"time"

	"github.com/aleister1102/pagewatch/internal/models"
)

// TargetConfig defines a single monitored page as it appears in the config
// file. The map key in the config file becomes the target's identifier.
type TargetConfig struct {
	URL      string `json:"url" yaml:"url" validate:"required,url"`
	Selector string `json:"selector" yaml:"selector" validate:"required"`
	// Mode selects simple (plain HTTP) or full (headless browser)
	// rendering. Defaults to full.
	Mode        string `json:"mode,omitempty" yaml:"mode,omitempty" validate:"omitempty,rendermode"`
	WaitSeconds int    `json:"wait_seconds,omitempty" yaml:"wait_seconds,omitempty" validate:"omitempty,min=0"`
	// IntervalSeconds overrides the global default patrol interval.
	IntervalSeconds int `json:"interval_seconds,omitempty" yaml:"interval_seconds,omitempty" validate:"omitempty,min=1"`
}

// ToTarget converts the config entry into an immutable domain target.
func (tc TargetConfig) ToTarget(id string, defaultInterval time.Duration) (models.Target, error) {
	if id == "" {
		return models.Target{}, fmt.Errorf("target identifier must not be empty")
	}

	interval := defaultInterval
	if tc.IntervalSeconds > 0 {
		interval = time.Duration(tc.IntervalSeconds) * time.Second
	}
	if interval <= 0 {
		return models.Target{}, fmt.Errorf("target %q: patrol interval must be positive", id)
	}

	mode := models.RenderMode(tc.Mode)
	if mode == "" {
		mode = models.RenderModeFull
	}

	return models.Target{
		ID:          id,
		URL:         tc.URL,
		Selector:    tc.Selector,
		Mode:        mode,
		WaitSeconds: tc.WaitSeconds,
		Interval:    interval,
	}, nil
}

// BuildTargets converts the configured target map into domain targets,
// ordered by identifier for deterministic startup logging.
func BuildTargets(cfg *GlobalConfig) ([]models.Target, error) {
	if len(cfg.Targets) == 0 {
		return nil, fmt.Errorf("no targets configured")
	}

	ids := make([]string, 0, len(cfg.Targets))
	for id := range cfg.Targets {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	targets := make([]models.Target, 0, len(ids))
	for _, id := range ids {
		target, err := cfg.Targets[id].ToTarget(id, cfg.PatrolConfig.DefaultInterval())
		if err != nil {
			return nil, err
		}
		targets = append(targets, target)
	}
	return targets, nil
}
