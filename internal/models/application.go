package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ApplicationType identifies one of the barangay services a citizen can apply for
type ApplicationType string

const (
	TypeBusinessPermit    ApplicationType = "business-permit"
	TypeBuildingPermit    ApplicationType = "building-permit"
	TypeCedula            ApplicationType = "cedula"
	TypeMedicalAssistance ApplicationType = "medical-assistance"
	TypeGoodMoral         ApplicationType = "good-moral"
	TypeBlotter           ApplicationType = "blotter"
	TypeLegitimacy        ApplicationType = "legitimacy"
)

// AllApplicationTypes lists every service type in display order
var AllApplicationTypes = []ApplicationType{
	TypeBusinessPermit,
	TypeBuildingPermit,
	TypeCedula,
	TypeMedicalAssistance,
	TypeGoodMoral,
	TypeBlotter,
	TypeLegitimacy,
}

// referencePrefixes maps each service type to its reference number prefix
var referencePrefixes = map[ApplicationType]string{
	TypeBusinessPermit:    "BP",
	TypeBuildingPermit:    "BLDG",
	TypeCedula:            "CED",
	TypeMedicalAssistance: "MED",
	TypeGoodMoral:         "GMC",
	TypeBlotter:           "BLT",
	TypeLegitimacy:        "LGT",
}

// ParseApplicationType validates a type path parameter
func ParseApplicationType(s string) (ApplicationType, error) {
	t := ApplicationType(s)
	if _, ok := referencePrefixes[t]; !ok {
		return "", ErrUnknownApplicationType
	}
	return t, nil
}

// ReferencePrefix returns the reference number prefix for a service type
func (t ApplicationType) ReferencePrefix() string {
	return referencePrefixes[t]
}

// Applicant holds the contact block shared by every application variant
type Applicant struct {
	UserID  string `bson:"user_id,omitempty" json:"user_id,omitempty"`
	Name    string `bson:"name" json:"name"`
	Email   string `bson:"email" json:"email"`
	Phone   string `bson:"phone_number" json:"phone_number"`
	Address string `bson:"address" json:"address"`
}

// Application is the shared envelope for all service types. Type-specific
// fields live in Fields and are validated by the wizard schema for the type.
type Application struct {
	ID              primitive.ObjectID     `bson:"_id,omitempty" json:"id"`
	Type            ApplicationType        `bson:"type" json:"type"`
	ReferenceNumber string                 `bson:"reference_number" json:"reference_number"`
	Status          ApplicationStatus      `bson:"status" json:"status"`
	RejectionReason string                 `bson:"rejection_reason,omitempty" json:"rejection_reason,omitempty"`
	AdminNote       string                 `bson:"admin_note,omitempty" json:"admin_note,omitempty"`
	Applicant       Applicant              `bson:"applicant" json:"applicant"`
	Fields          map[string]interface{} `bson:"fields" json:"fields"`
	DocumentPath    string                 `bson:"document_path,omitempty" json:"document_path,omitempty"`
	PhotoPath       string                 `bson:"photo_path,omitempty" json:"photo_path,omitempty"`
	SupportingDocs  []string               `bson:"supporting_documents,omitempty" json:"supporting_documents,omitempty"`
	CreatedAt       time.Time              `bson:"created_at" json:"created_at"`
	UpdatedAt       time.Time              `bson:"updated_at" json:"updated_at"`
}

// BeforeCreate stamps a new application; status always starts at pending
func (a *Application) BeforeCreate() {
	now := time.Now()
	a.CreatedAt = now
	a.UpdatedAt = now
	a.Status = StatusPending
}

// BeforeUpdate refreshes the update timestamp
func (a *Application) BeforeUpdate() {
	a.UpdatedAt = time.Now()
}

// ApplicationResponse is the admin-facing view of one application
type ApplicationResponse struct {
	ID              string                 `json:"id"`
	Type            ApplicationType        `json:"type"`
	ReferenceNumber string                 `json:"reference_number"`
	Status          ApplicationStatus      `json:"status"`
	RejectionReason string                 `json:"rejection_reason,omitempty"`
	AdminNote       string                 `json:"admin_note,omitempty"`
	Applicant       Applicant              `json:"applicant"`
	Fields          map[string]interface{} `json:"fields"`
	DocumentPath    string                 `json:"document_path,omitempty"`
	PhotoPath       string                 `json:"photo_path,omitempty"`
	SupportingDocs  []string               `json:"supporting_documents,omitempty"`
	AllowedActions  []ApplicationStatus    `json:"allowed_actions"`
	CreatedAt       time.Time              `json:"created_at"`
	UpdatedAt       time.Time              `json:"updated_at"`
}

// TrackingResponse is the citizen-facing view looked up by reference number
type TrackingResponse struct {
	ReferenceNumber string            `json:"reference_number"`
	Type            ApplicationType   `json:"type"`
	Status          ApplicationStatus `json:"status"`
	RejectionReason string            `json:"rejection_reason,omitempty"`
	SubmittedAt     time.Time         `json:"submitted_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
}

// TransitionRequest is the PATCH body for admin status transitions
type TransitionRequest struct {
	Status          ApplicationStatus `json:"status" binding:"required"`
	RejectionReason *string           `json:"rejection_reason"`
	AdminNote       string            `json:"admin_note,omitempty"`
}

// ToResponse converts a stored application to its admin-facing view
func (a *Application) ToResponse() ApplicationResponse {
	allowed := AllowedTransitions(ScopeApplication, a.Status)
	if allowed == nil {
		allowed = []ApplicationStatus{}
	}
	return ApplicationResponse{
		ID:              a.ID.Hex(),
		Type:            a.Type,
		ReferenceNumber: a.ReferenceNumber,
		Status:          a.Status,
		RejectionReason: a.RejectionReason,
		AdminNote:       a.AdminNote,
		Applicant:       a.Applicant,
		Fields:          a.Fields,
		DocumentPath:    a.DocumentPath,
		PhotoPath:       a.PhotoPath,
		SupportingDocs:  a.SupportingDocs,
		AllowedActions:  allowed,
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
	}
}

// ToTracking converts a stored application to its citizen-facing view
func (a *Application) ToTracking() TrackingResponse {
	return TrackingResponse{
		ReferenceNumber: a.ReferenceNumber,
		Type:            a.Type,
		Status:          a.Status,
		RejectionReason: a.RejectionReason,
		SubmittedAt:     a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
	}
}
