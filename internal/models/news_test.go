package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewsRequest_Validate(t *testing.T) {
	valid := NewsRequest{Title: "Road closure", Content: "...", Category: CategoryServices, Status: NewsDraft}
	assert.NoError(t, valid.Validate())

	badCategory := NewsRequest{Title: "x", Content: "y", Category: "gossip"}
	assert.ErrorIs(t, badCategory.Validate(), ErrInvalidCategory)

	badStatus := NewsRequest{Title: "x", Content: "y", Category: CategoryGeneral, Status: "live"}
	assert.ErrorIs(t, badStatus.Validate(), ErrInvalidNewsStatus)
}

func TestNews_BeforeCreate_DefaultsToDraft(t *testing.T) {
	n := &News{Title: "Fiesta schedule", Category: CategoryEvents}
	n.BeforeCreate()

	assert.Equal(t, NewsDraft, n.Status)
	assert.False(t, n.CreatedAt.IsZero())
	assert.Equal(t, n.CreatedAt, n.UpdatedAt)
}

func TestIsValidNewsStatus(t *testing.T) {
	assert.True(t, IsValidNewsStatus(NewsDraft))
	assert.True(t, IsValidNewsStatus(NewsPublished))
	assert.True(t, IsValidNewsStatus(NewsArchived))
	assert.False(t, IsValidNewsStatus("deleted"))
}

func TestAnnouncementRequest_Validate(t *testing.T) {
	valid := AnnouncementRequest{Title: "Brownout notice", Content: "...", Category: CategoryGeneral}
	assert.NoError(t, valid.Validate())

	invalid := AnnouncementRequest{Title: "x", Content: "y", Category: "memes"}
	assert.ErrorIs(t, invalid.Validate(), ErrInvalidCategory)
}

func TestUser_NormalizedEmail(t *testing.T) {
	u := &User{Email: "  Juan.DelaCruz@Example.COM "}
	assert.Equal(t, "juan.delacruz@example.com", u.NormalizedEmail())
}

func TestUser_BeforeCreate(t *testing.T) {
	u := &User{Name: "Juan", Status: StatusApproved}
	u.BeforeCreate()

	assert.Equal(t, StatusPending, u.Status)
	assert.Equal(t, "citizen", u.Role)

	admin := &User{Name: "Ana", Role: "admin"}
	admin.BeforeCreate()
	assert.Equal(t, "admin", admin.Role)
}
