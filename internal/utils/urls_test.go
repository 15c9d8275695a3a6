package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeAssetURL(t *testing.T) {
	base := "https://cdn.example.gov.ph"

	tests := []struct {
		name     string
		ref      string
		expected string
	}{
		{"absolute http", "http://other.example.com/a.png", "http://other.example.com/a.png"},
		{"absolute https", "https://other.example.com/a.png", "https://other.example.com/a.png"},
		{"root relative", "/uploads/a.png", "https://cdn.example.gov.ph/uploads/a.png"},
		{"bare relative", "uploads/a.png", "https://cdn.example.gov.ph/uploads/a.png"},
		{"empty", "", ""},
		{"whitespace", "  ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeAssetURL(base, tt.ref))
		})
	}

	// trailing slash on the base never doubles
	assert.Equal(t, "https://x.test/uploads/a.png", NormalizeAssetURL("https://x.test/", "/uploads/a.png"))
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "business-permit", Slugify("Business Permit"))
	assert.Equal(t, "maria-s-store", Slugify("  Maria's   Store!! "))
	assert.Equal(t, "lot-12-b", Slugify("Lot 12-B"))
	assert.Equal(t, "", Slugify("???"))
}
