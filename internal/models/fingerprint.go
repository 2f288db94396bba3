package models

import "fmt"

// Fingerprint is a lowercase SHA-256 hex digest of normalized page content.
// Equal content under the normalization policy always yields an equal
// fingerprint; this is the sole basis for change detection.
type Fingerprint string

const fingerprintHexLen = 64

// ParseFingerprint validates a stored hex string as a fingerprint.
func ParseFingerprint(s string) (Fingerprint, error) {
	if len(s) != fingerprintHexLen {
		return "", fmt.Errorf("fingerprint must be %d hex digits, got %d", fingerprintHexLen, len(s))
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return "", fmt.Errorf("fingerprint contains non-hex character %q at index %d", c, i)
		}
	}
	return Fingerprint(s), nil
}

// String returns the hex representation.
func (f Fingerprint) String() string {
	return string(f)
}
