package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// StatusAudit records one status transition for audit display. Entries are
// append-only; the previous rejection reason is never erased by re-approval.
type StatusAudit struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Resource       string             `bson:"resource" json:"resource"`
	ResourceID     string             `bson:"resource_id" json:"resource_id"`
	PreviousStatus ApplicationStatus  `bson:"previous_status" json:"previous_status"`
	NewStatus      ApplicationStatus  `bson:"new_status" json:"new_status"`
	Reason         string             `bson:"reason,omitempty" json:"reason,omitempty"`
	Actor          string             `bson:"actor,omitempty" json:"actor,omitempty"`
	Timestamp      time.Time          `bson:"timestamp" json:"timestamp"`
}
