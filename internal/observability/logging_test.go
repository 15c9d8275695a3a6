package observability

import (
	"testing"

	"github.com/perpetual-help/egov-api/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger(t *testing.T) {
	require.NoError(t, logging.InitLogger())
	assert.NotNil(t, Logger())
}

func TestMaskEmail(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"regular address", "juan.delacruz@example.com", "j***@example.com"},
		{"single character local part", "a@example.com", "***"},
		{"not an email", "not-an-email", "***"},
		{"empty", "", "***"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, MaskEmail(tt.input))
		})
	}
}

func TestMaskPhone(t *testing.T) {
	assert.Equal(t, "***********63", MaskPhone("+639171234563"))
	assert.Equal(t, "****", MaskPhone("12"))
}

func TestMaskSensitiveData(t *testing.T) {
	data := map[string]interface{}{
		"business_name": "Sari-Sari Store",
		"email":         "juan@example.com",
		"phone_number":  "+639171234567",
	}

	masked := MaskSensitiveData(data)

	assert.Equal(t, "Sari-Sari Store", masked["business_name"])
	assert.Equal(t, "********", masked["email"])
	assert.Equal(t, "********", masked["phone_number"])
}
