package models

import "errors"

// Application errors
var (
	ErrApplicationNotFound    = errors.New("application not found")
	ErrInvalidApplicationID   = errors.New("invalid application ID")
	ErrUnknownApplicationType = errors.New("unknown application type")
	ErrReferenceNotFound      = errors.New("reference number not found")
)

// Status transition errors
var (
	ErrInvalidStatus     = errors.New("invalid status value")
	ErrIllegalTransition = errors.New("status transition not allowed")
	ErrReasonRequired    = errors.New("a reason is required for this transition")
)

// Wizard errors
var (
	ErrSessionNotFound = errors.New("wizard session not found")
	ErrStepIncomplete  = errors.New("current step has validation errors")
	ErrNotOnFinalStep  = errors.New("submission is only allowed from the final step")
)

// User errors
var (
	ErrUserNotFound  = errors.New("user not found")
	ErrInvalidUserID = errors.New("invalid user ID")
	ErrEmailExists   = errors.New("email already registered")
	ErrInvalidPhone  = errors.New("invalid phone number")
)

// News and announcement errors
var (
	ErrNewsNotFound         = errors.New("news item not found")
	ErrInvalidNewsID        = errors.New("invalid news ID")
	ErrInvalidNewsStatus    = errors.New("invalid news status")
	ErrInvalidCategory      = errors.New("invalid category")
	ErrAnnouncementNotFound = errors.New("announcement not found")
	ErrInvalidAnnouncementID = errors.New("invalid announcement ID")
)

// Alert errors
var (
	ErrAlertNotFound  = errors.New("alert not found")
	ErrInvalidAlertID = errors.New("invalid alert ID")
	ErrInvalidWindow  = errors.New("alert end must be after start")
)

// Upload errors
var (
	ErrFileTooLarge        = errors.New("file exceeds the maximum allowed size")
	ErrUnsupportedFileType = errors.New("unsupported file type")
)
