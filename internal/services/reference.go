package services

import (
	"crypto/rand"
	"fmt"
	"time"

	"github.com/perpetual-help/egov-api/internal/models"
)

// referenceAlphabet avoids ambiguous characters (0/O, 1/I/L)
const referenceAlphabet = "23456789ABCDEFGHJKMNPQRSTUVWXYZ"

// GenerateReferenceNumber produces a citizen-facing tracking number of the
// form <PREFIX>-<YEAR>-<6 chars>, e.g. BP-2026-4F7KQ2. Uniqueness is
// enforced by the unique index on reference_number; callers retry on
// duplicate key.
func GenerateReferenceNumber(t models.ApplicationType) (string, error) {
	suffix := make([]byte, 6)
	if _, err := rand.Read(suffix); err != nil {
		return "", fmt.Errorf("failed to generate reference number: %w", err)
	}
	for i, b := range suffix {
		suffix[i] = referenceAlphabet[int(b)%len(referenceAlphabet)]
	}
	return fmt.Sprintf("%s-%d-%s", t.ReferencePrefix(), time.Now().Year(), suffix), nil
}
