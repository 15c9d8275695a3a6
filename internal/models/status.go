package models

// ApplicationStatus is the lifecycle status shared by applications and user accounts
type ApplicationStatus string

const (
	StatusPending     ApplicationStatus = "pending"
	StatusProcessing  ApplicationStatus = "processing"
	StatusApproved    ApplicationStatus = "approved"
	StatusRejected    ApplicationStatus = "rejected"
	StatusDeactivated ApplicationStatus = "deactivated"
)

// TransitionScope distinguishes the application workflow from the user-account
// workflow: deactivation only exists for user accounts.
type TransitionScope string

const (
	ScopeApplication TransitionScope = "application"
	ScopeUser        TransitionScope = "user"
)

// applicationTransitions is the legal transition table for applications.
// Legality of a transition is a table lookup, never a scattered conditional.
var applicationTransitions = map[ApplicationStatus][]ApplicationStatus{
	StatusPending:  {StatusApproved, StatusRejected},
	StatusRejected: {StatusApproved},
}

// userTransitions extends the application table with account deactivation
// and reactivation.
var userTransitions = map[ApplicationStatus][]ApplicationStatus{
	StatusPending:     {StatusApproved, StatusRejected},
	StatusRejected:    {StatusApproved},
	StatusApproved:    {StatusDeactivated},
	StatusDeactivated: {StatusApproved},
}

// reasonRequired lists statuses whose transitions demand a non-empty reason
var reasonRequired = map[ApplicationStatus]bool{
	StatusRejected:    true,
	StatusDeactivated: true,
}

// IsValidStatus reports whether s is a recognized status value.
// "processing" survives in legacy documents and is accepted on read, but is
// never a legal transition target.
func IsValidStatus(s ApplicationStatus) bool {
	switch s {
	case StatusPending, StatusProcessing, StatusApproved, StatusRejected, StatusDeactivated:
		return true
	}
	return false
}

// CanTransition reports whether current → target is a legal transition
// within the given scope.
func CanTransition(scope TransitionScope, current, target ApplicationStatus) bool {
	table := applicationTransitions
	if scope == ScopeUser {
		table = userTransitions
	}
	for _, allowed := range table[current] {
		if allowed == target {
			return true
		}
	}
	return false
}

// AllowedTransitions returns the legal targets from the current status
// within the given scope.
func AllowedTransitions(scope TransitionScope, current ApplicationStatus) []ApplicationStatus {
	table := applicationTransitions
	if scope == ScopeUser {
		table = userTransitions
	}
	return table[current]
}

// RequiresReason reports whether transitioning to target demands a reason
func RequiresReason(target ApplicationStatus) bool {
	return reasonRequired[target]
}
