package renderer

import (
	"context"
	"errors"
	"net"
	"net/url"

	"github.com/aleister1102/pagewatch/internal/models"
)

// classifyFetchError maps a transport-level error onto a FetchError kind.
// The engine never branches on the kind beyond logging and reporting, so a
// best-effort classification is enough.
func classifyFetchError(targetURL string, err error) *models.FetchError {
	var fetchErr *models.FetchError
	if errors.As(err, &fetchErr) {
		return fetchErr
	}

	kind := models.FetchErrUnknown

	var netErr net.Error
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		kind = models.FetchErrTimeout
	case errors.As(err, &netErr) && netErr.Timeout():
		kind = models.FetchErrTimeout
	case isConnectionError(err):
		kind = models.FetchErrConnection
	}

	return models.NewFetchError(kind, targetURL, err)
}

func isConnectionError(err error) bool {
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return true
	}
	var urlErr *url.Error
	return errors.As(err, &urlErr)
}
