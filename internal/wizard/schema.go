package wizard

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/perpetual-help/egov-api/internal/models"
	"github.com/perpetual-help/egov-api/internal/utils"
)

// FieldType drives how a wizard field value is parsed and validated
type FieldType string

const (
	FieldText   FieldType = "text"
	FieldEmail  FieldType = "email"
	FieldPhone  FieldType = "phone"
	FieldNumber FieldType = "number"
	FieldDate   FieldType = "date"
	FieldSelect FieldType = "select"
	FieldFile   FieldType = "file"
)

// Field is one declarative field rule inside a wizard step
type Field struct {
	Name     string    `json:"name"`
	Label    string    `json:"label"`
	Type     FieldType `json:"type"`
	Required bool      `json:"required"`
	Min      *float64  `json:"min,omitempty"`
	Max      *float64  `json:"max,omitempty"`
	MinAge   int       `json:"min_age,omitempty"`
	MaxLen   int       `json:"max_len,omitempty"`
	Options  []string  `json:"options,omitempty"`
}

// Step owns a subset of the form's fields; a step must validate cleanly
// before the wizard advances past it.
type Step struct {
	Title  string  `json:"title"`
	Fields []Field `json:"fields"`
}

// Schema is the full multi-step form definition for one service type
type Schema struct {
	Type  models.ApplicationType `json:"type"`
	Steps []Step                 `json:"steps"`
}

// StepCount returns the number of steps in the schema
func (s *Schema) StepCount() int {
	return len(s.Steps)
}

// StepTitle returns the title of step k (1-indexed), or "" when out of range
func (s *Schema) StepTitle(k int) string {
	if k < 1 || k > len(s.Steps) {
		return ""
	}
	return s.Steps[k-1].Title
}

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

const dateLayout = "2006-01-02"

// ValidateStep validates only the fields introduced in step k (1-indexed).
// The returned result is clean iff the step is complete.
func (s *Schema) ValidateStep(k int, data map[string]interface{}) *utils.ValidationResult {
	result := utils.NewValidationResult()
	if k < 1 || k > len(s.Steps) {
		result.AddError("step", fmt.Sprintf("step %d out of range", k))
		return result
	}

	for _, field := range s.Steps[k-1].Fields {
		validateField(field, data[field.Name], result)
	}
	return result
}

// ValidateAll validates every step; used as the final gate before submission
func (s *Schema) ValidateAll(data map[string]interface{}) *utils.ValidationResult {
	result := utils.NewValidationResult()
	for _, step := range s.Steps {
		for _, field := range step.Fields {
			validateField(field, data[field.Name], result)
		}
	}
	return result
}

func validateField(field Field, value interface{}, result *utils.ValidationResult) {
	str, present := stringValue(value)
	if !present || strings.TrimSpace(str) == "" {
		if field.Required {
			result.AddError(field.Name, field.Label+" is required")
		}
		return
	}
	str = strings.TrimSpace(str)

	if field.MaxLen > 0 && len(str) > field.MaxLen {
		result.AddError(field.Name, fmt.Sprintf("%s must be at most %d characters", field.Label, field.MaxLen))
		return
	}

	switch field.Type {
	case FieldEmail:
		if !emailPattern.MatchString(str) {
			result.AddError(field.Name, field.Label+" must be a valid email address")
		}
	case FieldPhone:
		if !utils.IsValidPhoneNumber(str) {
			result.AddError(field.Name, field.Label+" must be a valid phone number")
		}
	case FieldNumber:
		n, err := numberValue(value)
		if err != nil {
			result.AddError(field.Name, field.Label+" must be a number")
			return
		}
		if field.Min != nil && n < *field.Min {
			result.AddError(field.Name, fmt.Sprintf("%s must be at least %v", field.Label, *field.Min))
		}
		if field.Max != nil && n > *field.Max {
			result.AddError(field.Name, fmt.Sprintf("%s must be at most %v", field.Label, *field.Max))
		}
	case FieldDate:
		d, err := time.Parse(dateLayout, str)
		if err != nil {
			result.AddError(field.Name, field.Label+" must be a date in YYYY-MM-DD format")
			return
		}
		if field.MinAge > 0 && ageAt(d, time.Now()) < field.MinAge {
			result.AddError(field.Name, fmt.Sprintf("applicant must be at least %d years old", field.MinAge))
		}
	case FieldSelect:
		found := false
		for _, opt := range field.Options {
			if opt == str {
				found = true
				break
			}
		}
		if !found {
			result.AddError(field.Name, field.Label+" must be one of: "+strings.Join(field.Options, ", "))
		}
	}
}

// stringValue renders a submitted value as a string. Numbers arrive from
// JSON as float64.
func stringValue(value interface{}) (string, bool) {
	switch v := value.(type) {
	case nil:
		return "", false
	case string:
		return v, true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case int:
		return strconv.Itoa(v), true
	case bool:
		return strconv.FormatBool(v), true
	default:
		return fmt.Sprintf("%v", v), true
	}
}

func numberValue(value interface{}) (float64, error) {
	switch v := value.(type) {
	case float64:
		return v, nil
	case int:
		return float64(v), nil
	case string:
		return strconv.ParseFloat(strings.TrimSpace(v), 64)
	default:
		return 0, fmt.Errorf("not a number: %v", value)
	}
}

// ageAt computes full years between birth and now
func ageAt(birth, now time.Time) int {
	years := now.Year() - birth.Year()
	anniversary := birth.AddDate(years, 0, 0)
	if anniversary.After(now) {
		years--
	}
	return years
}
