package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NewsStatus is the publication state of a news item
type NewsStatus string

const (
	NewsDraft     NewsStatus = "draft"
	NewsPublished NewsStatus = "published"
	NewsArchived  NewsStatus = "archived"
)

// NewsCategory is the closed category enumeration for news and announcements
type NewsCategory string

const (
	CategoryGeneral    NewsCategory = "general"
	CategoryHealth     NewsCategory = "health"
	CategoryDisaster   NewsCategory = "disaster"
	CategoryEvents     NewsCategory = "events"
	CategoryServices   NewsCategory = "services"
	CategoryGovernance NewsCategory = "governance"
)

var newsCategories = map[NewsCategory]bool{
	CategoryGeneral:    true,
	CategoryHealth:     true,
	CategoryDisaster:   true,
	CategoryEvents:     true,
	CategoryServices:   true,
	CategoryGovernance: true,
}

// IsValidNewsStatus reports whether s is a recognized news status
func IsValidNewsStatus(s NewsStatus) bool {
	switch s {
	case NewsDraft, NewsPublished, NewsArchived:
		return true
	}
	return false
}

// IsValidCategory reports whether c is in the closed category set
func IsValidCategory(c NewsCategory) bool {
	return newsCategories[c]
}

// News is an admin-published news item. Higher priority sorts first.
// No approval workflow: direct admin CRUD.
type News struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title     string             `bson:"title" json:"title"`
	Content   string             `bson:"content" json:"content"`
	Category  NewsCategory       `bson:"category" json:"category"`
	Status    NewsStatus         `bson:"status" json:"status"`
	Priority  int                `bson:"priority" json:"priority"`
	ImageURL  string             `bson:"image_url,omitempty" json:"image_url,omitempty"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`
}

// NewsRequest is the body for creating or updating a news item
type NewsRequest struct {
	Title    string       `json:"title" binding:"required"`
	Content  string       `json:"content" binding:"required"`
	Category NewsCategory `json:"category" binding:"required"`
	Status   NewsStatus   `json:"status"`
	Priority int          `json:"priority"`
	ImageURL string       `json:"image_url"`
}

// Validate checks the closed enumerations on a news request.
// Required-ness is enforced by request binding.
func (r *NewsRequest) Validate() error {
	if !IsValidCategory(r.Category) {
		return ErrInvalidCategory
	}
	if r.Status != "" && !IsValidNewsStatus(r.Status) {
		return ErrInvalidNewsStatus
	}
	return nil
}

// BeforeCreate stamps a new news item; unset status defaults to draft
func (n *News) BeforeCreate() {
	now := time.Now()
	n.CreatedAt = now
	n.UpdatedAt = now
	if n.Status == "" {
		n.Status = NewsDraft
	}
}

// BeforeUpdate refreshes the update timestamp
func (n *News) BeforeUpdate() {
	n.UpdatedAt = time.Now()
}
