package config

import "time"

// NotificationConfig defines configuration for change/failure delivery.
// An empty webhook URL disables webhook delivery; log delivery is always on.
type NotificationConfig struct {
	WebhookURL        string `json:"webhook_url,omitempty" yaml:"webhook_url,omitempty" validate:"omitempty,url"`
	RetryAttempts     int    `json:"retry_attempts,omitempty" yaml:"retry_attempts,omitempty" validate:"omitempty,min=0"`
	RetryDelaySeconds int    `json:"retry_delay_seconds,omitempty" yaml:"retry_delay_seconds,omitempty" validate:"omitempty,min=1"`
	// NotifyOnFailure also delivers observation-failure events to the
	// webhook, not just content changes.
	NotifyOnFailure bool `json:"notify_on_failure" yaml:"notify_on_failure"`
}

// NewDefaultNotificationConfig creates default notification configuration.
func NewDefaultNotificationConfig() NotificationConfig {
	return NotificationConfig{
		RetryAttempts:     DefaultNotifyRetryAttempts,
		RetryDelaySeconds: DefaultNotifyRetryDelaySeconds,
		NotifyOnFailure:   true,
	}
}

// RetryDelay returns the delay between webhook delivery attempts.
func (c NotificationConfig) RetryDelay() time.Duration {
	return time.Duration(c.RetryDelaySeconds) * time.Second
}
