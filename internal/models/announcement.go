package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Announcement is an admin notice without publication workflow:
// an is_active flag instead of draft/published/archived.
type Announcement struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title     string             `bson:"title" json:"title"`
	Content   string             `bson:"content" json:"content"`
	Category  NewsCategory       `bson:"category" json:"category"`
	IsActive  bool               `bson:"is_active" json:"is_active"`
	Priority  int                `bson:"priority" json:"priority"`
	ImageURL  string             `bson:"image_url,omitempty" json:"image_url,omitempty"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`
}

// AnnouncementRequest is the body for creating or updating an announcement
type AnnouncementRequest struct {
	Title    string       `json:"title" binding:"required"`
	Content  string       `json:"content" binding:"required"`
	Category NewsCategory `json:"category" binding:"required"`
	IsActive *bool        `json:"is_active"`
	Priority int          `json:"priority"`
	ImageURL string       `json:"image_url"`
}

// Validate checks the closed category enumeration
func (r *AnnouncementRequest) Validate() error {
	if !IsValidCategory(r.Category) {
		return ErrInvalidCategory
	}
	return nil
}

// BeforeCreate stamps a new announcement; announcements default to active
func (a *Announcement) BeforeCreate() {
	now := time.Now()
	a.CreatedAt = now
	a.UpdatedAt = now
}

// BeforeUpdate refreshes the update timestamp
func (a *Announcement) BeforeUpdate() {
	a.UpdatedAt = time.Now()
}
