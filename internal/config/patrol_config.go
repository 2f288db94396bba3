package config

import "time"

// PatrolConfig defines configuration for the patrol scheduling loop.
type PatrolConfig struct {
	// DefaultIntervalSeconds applies to targets without their own interval.
	DefaultIntervalSeconds int `json:"default_interval_seconds,omitempty" yaml:"default_interval_seconds,omitempty" validate:"omitempty,min=1"`
	// MaxConcurrentChecks bounds the number of target cycles in flight,
	// which also bounds concurrent browser sessions.
	MaxConcurrentChecks int `json:"max_concurrent_checks,omitempty" yaml:"max_concurrent_checks,omitempty" validate:"omitempty,min=1"`
	// Once patrols every target a single time and exits.
	Once bool `json:"once" yaml:"once"`
}

// NewDefaultPatrolConfig creates default patrol configuration.
func NewDefaultPatrolConfig() PatrolConfig {
	return PatrolConfig{
		DefaultIntervalSeconds: DefaultPatrolIntervalSeconds,
		MaxConcurrentChecks:    DefaultMaxConcurrentChecks,
	}
}

// DefaultInterval returns the fallback patrol interval as a duration.
func (c PatrolConfig) DefaultInterval() time.Duration {
	return time.Duration(c.DefaultIntervalSeconds) * time.Second
}
