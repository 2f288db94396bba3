package notifier

import (
	"context"
	"errors"

	"github.com/aleister1102/pagewatch/internal/models"
)

// MultiNotifier fans one event out to several notifiers. Every notifier is
// attempted; errors are joined so one failing channel does not silence the
// others.
type MultiNotifier struct {
	notifiers []models.Notifier
}

// NewMultiNotifier composes the given notifiers.
func NewMultiNotifier(notifiers ...models.Notifier) *MultiNotifier {
	return &MultiNotifier{notifiers: notifiers}
}

// NotifyChange implements models.Notifier.
func (mn *MultiNotifier) NotifyChange(ctx context.Context, event models.ChangeEvent) error {
	var errs []error
	for _, n := range mn.notifiers {
		if err := n.NotifyChange(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// NotifyFetchFailure implements models.Notifier.
func (mn *MultiNotifier) NotifyFetchFailure(ctx context.Context, event models.FetchFailureEvent) error {
	var errs []error
	for _, n := range mn.notifiers {
		if err := n.NotifyFetchFailure(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
