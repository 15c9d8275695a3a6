package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseApplicationType(t *testing.T) {
	for _, typ := range AllApplicationTypes {
		parsed, err := ParseApplicationType(string(typ))
		require.NoError(t, err)
		assert.Equal(t, typ, parsed)
	}

	_, err := ParseApplicationType("dog-license")
	assert.ErrorIs(t, err, ErrUnknownApplicationType)

	_, err = ParseApplicationType("")
	assert.ErrorIs(t, err, ErrUnknownApplicationType)
}

func TestReferencePrefix(t *testing.T) {
	assert.Equal(t, "BP", TypeBusinessPermit.ReferencePrefix())
	assert.Equal(t, "CED", TypeCedula.ReferencePrefix())
	assert.Equal(t, "LGT", TypeLegitimacy.ReferencePrefix())
}

func TestApplication_BeforeCreate(t *testing.T) {
	app := &Application{Type: TypeBusinessPermit, Status: StatusApproved}
	app.BeforeCreate()

	// status is always forced to pending regardless of input
	assert.Equal(t, StatusPending, app.Status)
	assert.WithinDuration(t, time.Now(), app.CreatedAt, time.Second)
	assert.Equal(t, app.CreatedAt, app.UpdatedAt)
}

func TestApplication_ToResponse(t *testing.T) {
	app := &Application{
		Type:            TypeGoodMoral,
		ReferenceNumber: "GMC-2026-ABC123",
		Status:          StatusPending,
		Applicant:       Applicant{Name: "Juan Dela Cruz"},
		Fields:          map[string]interface{}{"purpose": "employment"},
	}

	resp := app.ToResponse()

	assert.Equal(t, "GMC-2026-ABC123", resp.ReferenceNumber)
	assert.ElementsMatch(t, []ApplicationStatus{StatusApproved, StatusRejected}, resp.AllowedActions)

	app.Status = StatusApproved
	resp = app.ToResponse()
	assert.Empty(t, resp.AllowedActions)
	assert.NotNil(t, resp.AllowedActions)
}

func TestApplication_ToTracking(t *testing.T) {
	app := &Application{
		Type:            TypeBlotter,
		ReferenceNumber: "BLT-2026-XYZ789",
		Status:          StatusRejected,
		RejectionReason: "incomplete incident details",
		Applicant:       Applicant{Name: "Juan Dela Cruz", Email: "juan@example.com"},
	}

	tr := app.ToTracking()

	assert.Equal(t, "BLT-2026-XYZ789", tr.ReferenceNumber)
	assert.Equal(t, StatusRejected, tr.Status)
	assert.Equal(t, "incomplete incident details", tr.RejectionReason)
}
