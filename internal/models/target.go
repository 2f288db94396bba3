package models

import (
	"time"
)

// RenderMode selects how a target's page content is obtained.
type RenderMode string

const (
	// RenderModeSimple fetches the page over plain HTTP and extracts the
	// selector text from the static HTML.
	RenderModeSimple RenderMode = "simple"
	// RenderModeFull renders the page through a headless browser before
	// extracting the selector text.
	RenderModeFull RenderMode = "full"
)

// Target is a single monitored page. Targets are built from configuration at
// startup and never change for the lifetime of the process.
type Target struct {
	ID          string
	URL         string
	Selector    string
	Mode        RenderMode
	WaitSeconds int
	Interval    time.Duration
}

// WaitDuration returns the post-load settle time for full render mode.
func (t Target) WaitDuration() time.Duration {
	if t.WaitSeconds <= 0 {
		return 0
	}
	return time.Duration(t.WaitSeconds) * time.Second
}
