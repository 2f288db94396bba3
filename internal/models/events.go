package models

import (
	"context"
	"time"
)

// ChangeEvent is produced when a new fingerprint differs from the stored one
// and a prior record existed. The first observation of a target establishes
// the baseline and never produces an event.
type ChangeEvent struct {
	TargetID       string
	URL            string
	OldFingerprint Fingerprint
	NewFingerprint Fingerprint
	DetectedAt     time.Time
	// Diff is a raw line-level summary of the content change when the
	// previous content was retained; nil otherwise.
	Diff *DiffSummary
}

// FetchFailureEvent is surfaced when a cycle fails to observe its target.
// It is distinct from a change event: the stored baseline is untouched.
type FetchFailureEvent struct {
	TargetID   string
	URL        string
	Kind       FetchErrorKind
	Message    string
	OccurredAt time.Time
}

// DiffSummary describes a raw textual change between two observations.
// No semantic filtering is applied.
type DiffSummary struct {
	LinesAdded   int
	LinesRemoved int
	Excerpt      string
}

// Notifier is the delivery port for patrol events. Implementations must not
// block indefinitely; the engine bounds calls with the cycle context.
type Notifier interface {
	NotifyChange(ctx context.Context, event ChangeEvent) error
	NotifyFetchFailure(ctx context.Context, event FetchFailureEvent) error
}
