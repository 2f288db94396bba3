package models

import (
	"context"
	"errors"
	"time"
)

// ErrRecordNotFound is returned by a FingerprintStore when no record exists
// for the requested target. Callers treat it as "no baseline yet"; any other
// store error aborts the cycle.
var ErrRecordNotFound = errors.New("record not found")

// FingerprintRecord is the persisted outcome of the most recent successful
// observation of a target. LastCheckedAt advances on every successful cycle;
// LastChangedAt only moves when the fingerprint actually changed and stays
// nil until the first change after the baseline.
type FingerprintRecord struct {
	TargetID      string
	Fingerprint   Fingerprint
	LastCheckedAt time.Time
	LastChangedAt *time.Time
	// Content holds the last observed normalized content when content
	// retention is enabled; it feeds diff summaries on the next change.
	Content string
}

// FingerprintStore is the persistence port for fingerprint records. Records
// are written atomically: a failed write leaves the previous record intact.
type FingerprintStore interface {
	// GetRecord returns the last record for a target, or ErrRecordNotFound.
	GetRecord(ctx context.Context, targetID string) (*FingerprintRecord, error)

	// PutRecord inserts or replaces the record for record.TargetID.
	PutRecord(ctx context.Context, record FingerprintRecord) error

	Close() error
}
