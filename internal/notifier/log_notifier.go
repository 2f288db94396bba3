package notifier

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/aleister1102/pagewatch/internal/models"
)

// LogNotifier writes patrol events to the application log. It is always
// active so the operator sees every change and failure even without a
// webhook configured.
type LogNotifier struct {
	logger zerolog.Logger
}

// NewLogNotifier creates a log-backed notifier.
func NewLogNotifier(logger zerolog.Logger) *LogNotifier {
	return &LogNotifier{
		logger: logger.With().Str("component", "LogNotifier").Logger(),
	}
}

// NotifyChange implements models.Notifier.
func (ln *LogNotifier) NotifyChange(_ context.Context, event models.ChangeEvent) error {
	logEvent := ln.logger.Info().
		Str("target_id", event.TargetID).
		Str("url", event.URL).
		Str("old_fingerprint", event.OldFingerprint.String()).
		Str("new_fingerprint", event.NewFingerprint.String()).
		Time("detected_at", event.DetectedAt)
	if event.Diff != nil {
		logEvent = logEvent.
			Int("lines_added", event.Diff.LinesAdded).
			Int("lines_removed", event.Diff.LinesRemoved)
	}
	logEvent.Msg("Page content changed")
	return nil
}

// NotifyFetchFailure implements models.Notifier.
func (ln *LogNotifier) NotifyFetchFailure(_ context.Context, event models.FetchFailureEvent) error {
	ln.logger.Warn().
		Str("target_id", event.TargetID).
		Str("url", event.URL).
		Str("error_kind", string(event.Kind)).
		Str("error", event.Message).
		Time("occurred_at", event.OccurredAt).
		Msg("Observation failed")
	return nil
}
