package wizard

import (
	"github.com/perpetual-help/egov-api/internal/models"
)

func f64(v float64) *float64 { return &v }

// schemas holds the step definitions for every service type. One engine,
// seven parameterizations.
var schemas = map[models.ApplicationType]*Schema{
	models.TypeBusinessPermit: {
		Type: models.TypeBusinessPermit,
		Steps: []Step{
			{
				Title: "Business Information",
				Fields: []Field{
					{Name: "businessName", Label: "Business name", Type: FieldText, Required: true, MaxLen: 150},
					{Name: "businessType", Label: "Business type", Type: FieldSelect, Required: true,
						Options: []string{"sole proprietorship", "partnership", "corporation", "cooperative"}},
					{Name: "businessAddress", Label: "Business address", Type: FieldText, Required: true, MaxLen: 250},
					{Name: "floorArea", Label: "Floor area (sqm)", Type: FieldNumber, Required: true, Min: f64(0.01)},
				},
			},
			{
				Title: "Owner Information",
				Fields: []Field{
					{Name: "ownerName", Label: "Owner name", Type: FieldText, Required: true, MaxLen: 150},
					{Name: "birthDate", Label: "Birth date", Type: FieldDate, Required: true, MinAge: 18},
					{Name: "email", Label: "Email", Type: FieldEmail, Required: true},
					{Name: "phoneNumber", Label: "Phone number", Type: FieldPhone, Required: true},
				},
			},
			{
				Title: "Registration Details",
				Fields: []Field{
					{Name: "dtiRegistrationNumber", Label: "DTI registration number", Type: FieldText, MaxLen: 50},
					{Name: "grossCapital", Label: "Gross capital", Type: FieldNumber, Required: true, Min: f64(0)},
				},
			},
		},
	},
	models.TypeBuildingPermit: {
		Type: models.TypeBuildingPermit,
		Steps: []Step{
			{
				Title: "Project Information",
				Fields: []Field{
					{Name: "projectTitle", Label: "Project title", Type: FieldText, Required: true, MaxLen: 150},
					{Name: "constructionAddress", Label: "Construction address", Type: FieldText, Required: true, MaxLen: 250},
					{Name: "floorArea", Label: "Floor area (sqm)", Type: FieldNumber, Required: true, Min: f64(0.01)},
					{Name: "estimatedCost", Label: "Estimated cost", Type: FieldNumber, Required: true, Min: f64(1)},
				},
			},
			{
				Title: "Professional Details",
				Fields: []Field{
					{Name: "engineerName", Label: "Engineer or architect name", Type: FieldText, Required: true, MaxLen: 150},
					{Name: "licenseNumber", Label: "PRC license number", Type: FieldText, Required: true, MaxLen: 50},
					{Name: "scopeOfWork", Label: "Scope of work", Type: FieldSelect, Required: true,
						Options: []string{"new construction", "renovation", "repair", "demolition"}},
				},
			},
			{
				Title: "Applicant Contact",
				Fields: []Field{
					{Name: "applicantName", Label: "Applicant name", Type: FieldText, Required: true, MaxLen: 150},
					{Name: "email", Label: "Email", Type: FieldEmail, Required: true},
					{Name: "phoneNumber", Label: "Phone number", Type: FieldPhone, Required: true},
				},
			},
		},
	},
	models.TypeCedula: {
		Type: models.TypeCedula,
		Steps: []Step{
			{
				Title: "Personal Information",
				Fields: []Field{
					{Name: "fullName", Label: "Full name", Type: FieldText, Required: true, MaxLen: 150},
					{Name: "birthDate", Label: "Birth date", Type: FieldDate, Required: true, MinAge: 18},
					{Name: "civilStatus", Label: "Civil status", Type: FieldSelect, Required: true,
						Options: []string{"single", "married", "widowed", "separated"}},
					{Name: "height", Label: "Height (cm)", Type: FieldNumber, Required: true, Min: f64(50), Max: f64(250)},
					{Name: "weight", Label: "Weight (kg)", Type: FieldNumber, Required: true, Min: f64(20), Max: f64(300)},
				},
			},
			{
				Title: "Income Declaration",
				Fields: []Field{
					{Name: "occupation", Label: "Occupation", Type: FieldText, Required: true, MaxLen: 100},
					{Name: "grossAnnualIncome", Label: "Gross annual income", Type: FieldNumber, Required: true, Min: f64(0)},
				},
			},
		},
	},
	models.TypeMedicalAssistance: {
		Type: models.TypeMedicalAssistance,
		Steps: []Step{
			{
				Title: "Patient Information",
				Fields: []Field{
					{Name: "patientName", Label: "Patient name", Type: FieldText, Required: true, MaxLen: 150},
					{Name: "birthDate", Label: "Birth date", Type: FieldDate, Required: true},
					{Name: "diagnosis", Label: "Diagnosis", Type: FieldText, Required: true, MaxLen: 500},
				},
			},
			{
				Title: "Assistance Details",
				Fields: []Field{
					{Name: "hospitalName", Label: "Hospital or clinic", Type: FieldText, Required: true, MaxLen: 150},
					{Name: "assistanceType", Label: "Assistance type", Type: FieldSelect, Required: true,
						Options: []string{"hospital bill", "medicines", "laboratory", "checkup"}},
					{Name: "estimatedCost", Label: "Estimated cost", Type: FieldNumber, Required: true, Min: f64(1)},
				},
			},
			{
				Title: "Contact Information",
				Fields: []Field{
					{Name: "requesterName", Label: "Requester name", Type: FieldText, Required: true, MaxLen: 150},
					{Name: "relationToPatient", Label: "Relation to patient", Type: FieldSelect, Required: true,
						Options: []string{"self", "parent", "child", "spouse", "sibling", "guardian"}},
					{Name: "phoneNumber", Label: "Phone number", Type: FieldPhone, Required: true},
				},
			},
		},
	},
	models.TypeGoodMoral: {
		Type: models.TypeGoodMoral,
		Steps: []Step{
			{
				Title: "Personal Information",
				Fields: []Field{
					{Name: "fullName", Label: "Full name", Type: FieldText, Required: true, MaxLen: 150},
					{Name: "birthDate", Label: "Birth date", Type: FieldDate, Required: true, MinAge: 18},
					{Name: "address", Label: "Address", Type: FieldText, Required: true, MaxLen: 250},
				},
			},
			{
				Title: "Request Details",
				Fields: []Field{
					{Name: "purpose", Label: "Purpose", Type: FieldSelect, Required: true,
						Options: []string{"employment", "school requirement", "travel", "legal", "others"}},
					{Name: "yearsOfResidency", Label: "Years of residency", Type: FieldNumber, Required: true, Min: f64(0)},
				},
			},
		},
	},
	models.TypeBlotter: {
		Type: models.TypeBlotter,
		Steps: []Step{
			{
				Title: "Parties Involved",
				Fields: []Field{
					{Name: "complainantName", Label: "Complainant name", Type: FieldText, Required: true, MaxLen: 150},
					{Name: "respondentName", Label: "Respondent name", Type: FieldText, Required: true, MaxLen: 150},
					{Name: "phoneNumber", Label: "Contact number", Type: FieldPhone, Required: true},
				},
			},
			{
				Title: "Incident Details",
				Fields: []Field{
					{Name: "incidentDate", Label: "Incident date", Type: FieldDate, Required: true},
					{Name: "incidentLocation", Label: "Incident location", Type: FieldText, Required: true, MaxLen: 250},
					{Name: "narrative", Label: "Narrative", Type: FieldText, Required: true, MaxLen: 2000},
				},
			},
		},
	},
	models.TypeLegitimacy: {
		Type: models.TypeLegitimacy,
		Steps: []Step{
			{
				Title: "Child Information",
				Fields: []Field{
					{Name: "childName", Label: "Child name", Type: FieldText, Required: true, MaxLen: 150},
					{Name: "childBirthDate", Label: "Child birth date", Type: FieldDate, Required: true},
				},
			},
			{
				Title: "Parents and Purpose",
				Fields: []Field{
					{Name: "motherName", Label: "Mother's name", Type: FieldText, Required: true, MaxLen: 150},
					{Name: "fatherName", Label: "Father's name", Type: FieldText, Required: true, MaxLen: 150},
					{Name: "purpose", Label: "Purpose", Type: FieldSelect, Required: true,
						Options: []string{"school requirement", "passport", "inheritance", "others"}},
				},
			},
		},
	},
}

// SchemaFor returns the wizard schema for a service type
func SchemaFor(t models.ApplicationType) (*Schema, error) {
	schema, ok := schemas[t]
	if !ok {
		return nil, models.ErrUnknownApplicationType
	}
	return schema, nil
}
