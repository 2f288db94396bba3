package config

import "time"

// RendererConfig defines configuration for page rendering.
type RendererConfig struct {
	// BrowserURL is the remote browser DevTools endpoint used for
	// full-mode targets.
	BrowserURL             string `json:"browser_url,omitempty" yaml:"browser_url,omitempty" validate:"omitempty,url"`
	PageLoadTimeoutSeconds int    `json:"page_load_timeout_seconds,omitempty" yaml:"page_load_timeout_seconds,omitempty" validate:"omitempty,min=1"`
	HTTPTimeoutSeconds     int    `json:"http_timeout_seconds,omitempty" yaml:"http_timeout_seconds,omitempty" validate:"omitempty,min=1"`
	InsecureSkipVerify     bool   `json:"insecure_skip_verify" yaml:"insecure_skip_verify"`
}

// NewDefaultRendererConfig creates default renderer configuration.
func NewDefaultRendererConfig() RendererConfig {
	return RendererConfig{
		BrowserURL:             DefaultBrowserURL,
		PageLoadTimeoutSeconds: DefaultPageLoadTimeoutSeconds,
		HTTPTimeoutSeconds:     DefaultHTTPTimeoutSeconds,
	}
}

// PageLoadTimeout returns the full-mode navigation timeout.
func (c RendererConfig) PageLoadTimeout() time.Duration {
	return time.Duration(c.PageLoadTimeoutSeconds) * time.Second
}

// HTTPTimeout returns the simple-mode request timeout.
func (c RendererConfig) HTTPTimeout() time.Duration {
	return time.Duration(c.HTTPTimeoutSeconds) * time.Second
}
