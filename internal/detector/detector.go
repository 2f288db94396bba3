package detector

import (
	"crypto/sha256"
	"fmt"
	"strings"

	"github.com/aleister1102/pagewatch/internal/models"
)

// Verdict is the outcome of comparing a new fingerprint against the stored one.
type Verdict string

const (
	// VerdictBaseline means no prior fingerprint existed; the observation
	// establishes the baseline and must not be reported as a change.
	VerdictBaseline  Verdict = "baseline"
	VerdictUnchanged Verdict = "unchanged"
	VerdictChanged   Verdict = "changed"
)

// Normalizer transforms raw page content into its canonical form before
// hashing. The policy must be fixed for the lifetime of a data file, since
// fingerprints computed under different policies are not comparable.
type Normalizer interface {
	Normalize(content string) string
}

// TrimNormalizer strips leading and trailing whitespace and hashes the rest
// verbatim. This is the default policy.
type TrimNormalizer struct{}

func (TrimNormalizer) Normalize(content string) string {
	return strings.TrimSpace(content)
}

// CollapseWhitespaceNormalizer folds every whitespace run into a single
// space, making fingerprints insensitive to reformatting.
type CollapseWhitespaceNormalizer struct{}

func (CollapseWhitespaceNormalizer) Normalize(content string) string {
	return strings.Join(strings.Fields(content), " ")
}

// ChangeDetector turns rendered content into fingerprints and compares them.
// It is pure: the same content always yields the same fingerprint, with no
// dependency on fetch time or target metadata.
type ChangeDetector struct {
	normalizer Normalizer
}

// NewChangeDetector creates a detector with the given normalization policy.
// A nil normalizer falls back to TrimNormalizer.
func NewChangeDetector(normalizer Normalizer) *ChangeDetector {
	if normalizer == nil {
		normalizer = TrimNormalizer{}
	}
	return &ChangeDetector{normalizer: normalizer}
}

// Normalize exposes the detector's normalization so callers persist content
// in the same form that was hashed.
func (cd *ChangeDetector) Normalize(content string) string {
	return cd.normalizer.Normalize(content)
}

// Fingerprint computes the SHA-256 digest of the normalized content.
func (cd *ChangeDetector) Fingerprint(content string) models.Fingerprint {
	normalized := cd.normalizer.Normalize(content)
	sum := sha256.Sum256([]byte(normalized))
	return models.Fingerprint(fmt.Sprintf("%x", sum))
}

// Compare yields the change verdict for a new fingerprint against the
// previous one. A nil previous fingerprint means no baseline exists yet.
func (cd *ChangeDetector) Compare(prev *models.Fingerprint, curr models.Fingerprint) Verdict {
	switch {
	case prev == nil:
		return VerdictBaseline
	case *prev == curr:
		return VerdictUnchanged
	default:
		return VerdictChanged
	}
}
