package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIsActiveWindow(t *testing.T) {
	start := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 8, 3, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		now    time.Time
		active bool
	}{
		{"inside window", start.Add(24 * time.Hour), true},
		{"at start boundary", start, true},
		{"at end boundary", end, true},
		{"before start", start.Add(-time.Second), false},
		{"after end", end.Add(time.Second), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.active, IsActiveWindow(tt.now, start, end))
		})
	}
}

func TestAdminAlertRequest_Validate(t *testing.T) {
	now := time.Now()

	valid := AdminAlertRequest{StartsAt: now, EndsAt: now.Add(time.Hour)}
	assert.NoError(t, valid.Validate())

	inverted := AdminAlertRequest{StartsAt: now.Add(time.Hour), EndsAt: now}
	assert.ErrorIs(t, inverted.Validate(), ErrInvalidWindow)

	zeroLength := AdminAlertRequest{StartsAt: now, EndsAt: now}
	assert.ErrorIs(t, zeroLength.Validate(), ErrInvalidWindow)
}
