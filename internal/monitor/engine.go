package monitor

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/aleister1102/pagewatch/internal/detector"
	"github.com/aleister1102/pagewatch/internal/differ"
	"github.com/aleister1102/pagewatch/internal/models"
)

// CycleState tracks one target-cycle through the engine.
type CycleState string

const (
	CyclePending   CycleState = "pending"
	CycleFetching  CycleState = "fetching"
	CycleSucceeded CycleState = "succeeded"
	CycleFailed    CycleState = "failed"
)

// CycleResult is the outcome of a single fetch-detect-persist-notify pass.
type CycleResult struct {
	TargetID       string
	State          CycleState
	Verdict        detector.Verdict
	OldFingerprint *models.Fingerprint
	NewFingerprint models.Fingerprint
	CheckedAt      time.Time
	Err            error
}

// PatrolEngine orchestrates one observation cycle per target: it pulls the
// prior fingerprint record, invokes the renderer, runs change detection,
// writes the record back and notifies on change. All per-cycle errors are
// contained here and never unwind the scheduler loop.
type PatrolEngine struct {
	logger   zerolog.Logger
	renderer models.PageRenderer
	store    models.FingerprintStore
	notifier models.Notifier
	detector *detector.ChangeDetector
	differ   *differ.ContentDiffer
}

// NewPatrolEngine wires the engine to its ports. The differ may be nil when
// diff summaries are not wanted.
func NewPatrolEngine(
	renderer models.PageRenderer,
	store models.FingerprintStore,
	notifier models.Notifier,
	changeDetector *detector.ChangeDetector,
	contentDiffer *differ.ContentDiffer,
	logger zerolog.Logger,
) *PatrolEngine {
	return &PatrolEngine{
		logger:   logger.With().Str("component", "PatrolEngine").Logger(),
		renderer: renderer,
		store:    store,
		notifier: notifier,
		detector: changeDetector,
		differ:   contentDiffer,
	}
}

// RunCycle performs one observation cycle for the target. A fetch or store
// failure leaves the persisted record exactly as it was; the next retry is
// the next scheduled tick.
func (e *PatrolEngine) RunCycle(ctx context.Context, target models.Target) CycleResult {
	result := CycleResult{TargetID: target.ID, State: CyclePending}

	prev, err := e.store.GetRecord(ctx, target.ID)
	if err != nil {
		if !errors.Is(err, models.ErrRecordNotFound) {
			// A failed read is not "no baseline": treating it that way
			// would silently reset change history on the next write.
			e.logger.Error().Err(err).Str("target_id", target.ID).Msg("Fingerprint store read failed, aborting cycle")
			result.State = CycleFailed
			result.Err = err
			return result
		}
		prev = nil
	}

	result.State = CycleFetching
	content, err := e.renderer.Render(ctx, target)
	if err != nil {
		return e.failCycle(ctx, target, result, err)
	}

	normalized := e.detector.Normalize(content.Text)
	if normalized == "" {
		e.logger.Warn().Str("target_id", target.ID).Msg("Ignoring empty content")
		return e.failCycle(ctx, target, result,
			models.NewFetchError(models.FetchErrNavigation, target.URL, errors.New("selector matched no content")))
	}

	newFingerprint := e.detector.Fingerprint(content.Text)
	var prevFingerprint *models.Fingerprint
	if prev != nil {
		prevFingerprint = &prev.Fingerprint
	}
	verdict := e.detector.Compare(prevFingerprint, newFingerprint)

	checkedAt := content.FetchedAt
	record := models.FingerprintRecord{
		TargetID:      target.ID,
		Fingerprint:   newFingerprint,
		LastCheckedAt: checkedAt,
		Content:       normalized,
	}
	switch verdict {
	case detector.VerdictChanged:
		changedAt := checkedAt
		record.LastChangedAt = &changedAt
	case detector.VerdictUnchanged:
		record.LastChangedAt = prev.LastChangedAt
	}

	// Persist before notify: a crash between the two loses at most a
	// notification, never the stored baseline.
	if err := e.store.PutRecord(ctx, record); err != nil {
		e.logger.Error().Err(err).Str("target_id", target.ID).Msg("Fingerprint store write failed, aborting cycle")
		result.State = CycleFailed
		result.Err = err
		return result
	}

	result.State = CycleSucceeded
	result.Verdict = verdict
	result.OldFingerprint = prevFingerprint
	result.NewFingerprint = newFingerprint
	result.CheckedAt = checkedAt

	switch verdict {
	case detector.VerdictBaseline:
		e.logger.Info().Str("target_id", target.ID).Str("fingerprint", newFingerprint.String()).Msg("Baseline established")
	case detector.VerdictUnchanged:
		e.logger.Debug().Str("target_id", target.ID).Msg("Content unchanged")
	case detector.VerdictChanged:
		e.notifyChange(ctx, target, prev, record, checkedAt)
	}

	return result
}

// failCycle surfaces an observation failure without touching the stored
// record.
func (e *PatrolEngine) failCycle(ctx context.Context, target models.Target, result CycleResult, err error) CycleResult {
	result.State = CycleFailed
	result.Err = err

	kind := models.FetchErrorKindOf(err)
	e.logger.Warn().
		Err(err).
		Str("target_id", target.ID).
		Str("error_kind", string(kind)).
		Msg("Cycle failed")

	event := models.FetchFailureEvent{
		TargetID:   target.ID,
		URL:        target.URL,
		Kind:       kind,
		Message:    err.Error(),
		OccurredAt: time.Now().UTC(),
	}
	if notifyErr := e.notifier.NotifyFetchFailure(ctx, event); notifyErr != nil {
		e.logger.Error().Err(notifyErr).Str("target_id", target.ID).Msg("Failed to deliver observation-failure event")
	}
	return result
}

func (e *PatrolEngine) notifyChange(ctx context.Context, target models.Target, prev *models.FingerprintRecord, record models.FingerprintRecord, detectedAt time.Time) {
	event := models.ChangeEvent{
		TargetID:       target.ID,
		URL:            target.URL,
		OldFingerprint: prev.Fingerprint,
		NewFingerprint: record.Fingerprint,
		DetectedAt:     detectedAt,
	}
	if e.differ != nil {
		event.Diff = e.differ.Summarize(prev.Content, record.Content)
	}

	e.logger.Info().
		Str("target_id", target.ID).
		Str("old_fingerprint", prev.Fingerprint.String()).
		Str("new_fingerprint", record.Fingerprint.String()).
		Msg("Change detected")

	if err := e.notifier.NotifyChange(ctx, event); err != nil {
		e.logger.Error().Err(err).Str("target_id", target.ID).Msg("Failed to deliver change event")
	}
}
