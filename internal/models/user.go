package models

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is a portal account. Its status follows the user transition graph:
// account access can be deactivated and reactivated after approval.
type User struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name             string             `bson:"name" json:"name"`
	Email            string             `bson:"email" json:"email"`
	PhoneNumber      string             `bson:"phone_number" json:"phone_number"`
	Address          string             `bson:"address" json:"address"`
	FraternityNumber string             `bson:"fraternity_number,omitempty" json:"fraternity_number,omitempty"`
	Status           ApplicationStatus  `bson:"status" json:"status"`
	Role             string             `bson:"role" json:"role"`
	RejectionReason  string             `bson:"rejection_reason,omitempty" json:"rejection_reason,omitempty"`
	CreatedAt        time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt        time.Time          `bson:"updated_at" json:"updated_at"`
}

// UserRequest is the body for registering or updating a user
type UserRequest struct {
	Name             string `json:"name" binding:"required"`
	Email            string `json:"email" binding:"required,email"`
	PhoneNumber      string `json:"phone_number" binding:"required"`
	Address          string `json:"address" binding:"required"`
	FraternityNumber string `json:"fraternity_number"`
}

// UserResponse is the admin-facing view of one user account
type UserResponse struct {
	ID               string              `json:"id"`
	Name             string              `json:"name"`
	Email            string              `json:"email"`
	PhoneNumber      string              `json:"phone_number"`
	Address          string              `json:"address"`
	FraternityNumber string              `json:"fraternity_number,omitempty"`
	Status           ApplicationStatus   `json:"status"`
	Role             string              `json:"role"`
	RejectionReason  string              `json:"rejection_reason,omitempty"`
	AllowedActions   []ApplicationStatus `json:"allowed_actions"`
	CreatedAt        time.Time           `json:"created_at"`
	UpdatedAt        time.Time           `json:"updated_at"`
}

// NormalizedEmail returns the email lowered and trimmed for uniqueness checks
func (u *User) NormalizedEmail() string {
	return strings.ToLower(strings.TrimSpace(u.Email))
}

// BeforeCreate stamps a new user; accounts start pending with the citizen role
func (u *User) BeforeCreate() {
	now := time.Now()
	u.CreatedAt = now
	u.UpdatedAt = now
	u.Status = StatusPending
	if u.Role == "" {
		u.Role = "citizen"
	}
}

// BeforeUpdate refreshes the update timestamp
func (u *User) BeforeUpdate() {
	u.UpdatedAt = time.Now()
}

// ToResponse converts a stored user to its admin-facing view
func (u *User) ToResponse() UserResponse {
	allowed := AllowedTransitions(ScopeUser, u.Status)
	if allowed == nil {
		allowed = []ApplicationStatus{}
	}
	return UserResponse{
		ID:               u.ID.Hex(),
		Name:             u.Name,
		Email:            u.Email,
		PhoneNumber:      u.PhoneNumber,
		Address:          u.Address,
		FraternityNumber: u.FraternityNumber,
		Status:           u.Status,
		Role:             u.Role,
		RejectionReason:  u.RejectionReason,
		AllowedActions:   allowed,
		CreatedAt:        u.CreatedAt,
		UpdatedAt:        u.UpdatedAt,
	}
}
