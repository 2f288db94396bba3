package detector

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aleister1102/pagewatch/internal/models"
)

func TestFingerprintDeterministic(t *testing.T) {
	cd := NewChangeDetector(nil)

	first := cd.Fingerprint("hello world")
	second := cd.Fingerprint("hello world")
	assert.Equal(t, first, second)

	// Known SHA-256 of "hello world".
	assert.Equal(t, models.Fingerprint("b94d27b9934d3e08a52e52d7da7dabfac484efe37a5380ee9088f7ace2efcde9"), first)
}

func TestFingerprintTrimsByDefault(t *testing.T) {
	cd := NewChangeDetector(nil)

	assert.Equal(t, cd.Fingerprint("content"), cd.Fingerprint("  content\n\n"))
	assert.NotEqual(t, cd.Fingerprint("content"), cd.Fingerprint("con tent"))
}

func TestCollapseWhitespaceNormalizer(t *testing.T) {
	cd := NewChangeDetector(CollapseWhitespaceNormalizer{})

	assert.Equal(t, cd.Fingerprint("a  b\n\tc"), cd.Fingerprint("a b c"))
	assert.Equal(t, "a b c", cd.Normalize("  a  b\n\tc "))
}

func TestCompareVerdicts(t *testing.T) {
	cd := NewChangeDetector(nil)
	curr := cd.Fingerprint("current")
	same := cd.Fingerprint("current")
	other := cd.Fingerprint("other")

	assert.Equal(t, VerdictBaseline, cd.Compare(nil, curr))
	assert.Equal(t, VerdictUnchanged, cd.Compare(&same, curr))
	assert.Equal(t, VerdictChanged, cd.Compare(&other, curr))
}

func TestFingerprintParses(t *testing.T) {
	cd := NewChangeDetector(nil)

	fp := cd.Fingerprint("anything")
	parsed, err := models.ParseFingerprint(fp.String())
	assert.NoError(t, err)
	assert.Equal(t, fp, parsed)
}
