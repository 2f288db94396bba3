package config

// Patrol defaults
const (
	DefaultPatrolIntervalSeconds = 60
	DefaultMaxConcurrentChecks   = 4
)

// Renderer defaults
const (
	DefaultBrowserURL             = "http://127.0.0.1:9222"
	DefaultPageLoadTimeoutSeconds = 30
	DefaultHTTPTimeoutSeconds     = 20
)

// Storage defaults
const (
	DefaultSQLiteDBPath = "data/pagewatch.db"
)

// Notification defaults
const (
	DefaultNotifyRetryAttempts     = 2
	DefaultNotifyRetryDelaySeconds = 5
)
