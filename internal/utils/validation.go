package utils

// ValidationError represents a validation error with field and message
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationResult represents the result of validation
type ValidationResult struct {
	IsValid bool              `json:"is_valid"`
	Errors  []ValidationError `json:"errors,omitempty"`
}

// NewValidationResult creates a new validation result
func NewValidationResult() *ValidationResult {
	return &ValidationResult{
		IsValid: true,
		Errors:  []ValidationError{},
	}
}

// AddError adds a validation error to the result
func (vr *ValidationResult) AddError(field, message string) {
	vr.IsValid = false
	vr.Errors = append(vr.Errors, ValidationError{
		Field:   field,
		Message: message,
	})
}

// FieldErrors converts the result to the wire shape {field: [messages]}
func (vr *ValidationResult) FieldErrors() map[string][]string {
	if vr.IsValid {
		return nil
	}
	out := make(map[string][]string, len(vr.Errors))
	for _, e := range vr.Errors {
		out[e.Field] = append(out[e.Field], e.Message)
	}
	return out
}
