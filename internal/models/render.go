package models

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// RenderedContent is the outcome of fetching a target once. It is consumed
// immediately by change detection; only the derived fingerprint persists.
type RenderedContent struct {
	TargetID  string
	Text      string
	FetchedAt time.Time
}

// PageRenderer is the rendering port. Implementations either return content
// representative of the page at a point in time or fail with a *FetchError.
type PageRenderer interface {
	Render(ctx context.Context, target Target) (*RenderedContent, error)
}

// FetchErrorKind classifies a fetch failure for logging and reporting. The
// engine treats all kinds uniformly for retry purposes.
type FetchErrorKind string

const (
	FetchErrConnection FetchErrorKind = "connection"
	FetchErrTimeout    FetchErrorKind = "timeout"
	FetchErrNavigation FetchErrorKind = "navigation"
	FetchErrUnknown    FetchErrorKind = "unknown"
)

// FetchError wraps a page fetch failure with its classification.
type FetchError struct {
	Kind FetchErrorKind
	URL  string
	Err  error
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fetch failed (%s) for %s: %v", e.Kind, e.URL, e.Err)
	}
	return fmt.Sprintf("fetch failed (%s) for %s", e.Kind, e.URL)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// NewFetchError creates a classified fetch error.
func NewFetchError(kind FetchErrorKind, url string, err error) *FetchError {
	return &FetchError{Kind: kind, URL: url, Err: err}
}

// FetchErrorKindOf extracts the classification from an error chain,
// defaulting to FetchErrUnknown.
func FetchErrorKindOf(err error) FetchErrorKind {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return FetchErrUnknown
}
