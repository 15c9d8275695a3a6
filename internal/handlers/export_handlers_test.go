package handlers

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportFilename(t *testing.T) {
	today := time.Now().Format("2006-01-02")

	assert.Equal(t,
		fmt.Sprintf("legitimacy-juan-dela-cruz-%s.pdf", today),
		exportFilename("legitimacy", "Juan Dela Cruz"))

	assert.Equal(t,
		fmt.Sprintf("business-permit-summary-%s.pdf", today),
		exportFilename("business-permit", "summary"))
}

func TestExportDateRange(t *testing.T) {
	from, to, err := exportDateRange("2026-01-01", "2026-01-31")
	require.NoError(t, err)
	assert.Equal(t, 2026, from.Year())
	// End of range is inclusive through the last day
	assert.Equal(t, 31, to.Day())
	assert.Equal(t, 23, to.Hour())

	from, to, err = exportDateRange("", "")
	require.NoError(t, err)
	assert.True(t, from.IsZero())
	assert.True(t, to.IsZero())

	_, _, err = exportDateRange("January 1", "")
	assert.Error(t, err)
}
