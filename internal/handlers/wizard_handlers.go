package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/perpetual-help/egov-api/internal/logging"
	"github.com/perpetual-help/egov-api/internal/models"
	"github.com/perpetual-help/egov-api/internal/observability"
	"github.com/perpetual-help/egov-api/internal/services"
	"github.com/perpetual-help/egov-api/internal/wizard"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// WizardHandler drives the multi-step application wizard over Redis-held
// sessions. Step validation lives in the wizard package; this layer only
// translates HTTP.
type WizardHandler struct {
	store        *wizard.Store
	applications *services.ApplicationService
	uploads      *services.UploadService
	logger       *logging.SafeLogger
}

// NewWizardHandler creates the wizard HTTP surface
func NewWizardHandler(store *wizard.Store, applications *services.ApplicationService, uploads *services.UploadService, logger *logging.SafeLogger) *WizardHandler {
	return &WizardHandler{store: store, applications: applications, uploads: uploads, logger: logger}
}

// wizardStepBody carries the fields submitted with a step navigation
type wizardStepBody struct {
	Fields map[string]interface{} `json:"fields"`
}

// sessionView is the wire shape of a wizard session plus its schema step
type sessionView struct {
	ID          string                 `json:"id"`
	Type        models.ApplicationType `json:"type"`
	CurrentStep int                    `json:"current_step"`
	TotalSteps  int                    `json:"total_steps"`
	StepTitle   string                 `json:"step_title"`
	FormData    map[string]interface{} `json:"form_data"`
}

func viewOf(session *wizard.Session, schema *wizard.Schema) sessionView {
	return sessionView{
		ID:          session.ID,
		Type:        session.Type,
		CurrentStep: session.CurrentStep,
		TotalSteps:  schema.StepCount(),
		StepTitle:   schema.StepTitle(session.CurrentStep),
		FormData:    session.FormData,
	}
}

// StartWizard godoc
// @Summary Start an application wizard
// @Description Creates a new wizard session for the given service type at step 1.
// @Tags wizard
// @Produce json
// @Param type path string true "Service type" Enums(business-permit, building-permit, cedula, medical-assistance, good-moral, blotter, legitimacy)
// @Success 201 {object} models.APIResponse "Session created"
// @Failure 404 {object} models.APIResponse "Unknown service type"
// @Router /wizard/{type} [post]
func (h *WizardHandler) StartWizard(c *gin.Context) {
	ctx, span := otel.Tracer("").Start(c.Request.Context(), "StartWizard")
	defer span.End()

	appType, err := models.ParseApplicationType(c.Param("type"))
	if err != nil {
		respondError(c, err)
		return
	}
	span.SetAttributes(attribute.String("application.type", string(appType)))

	session, err := h.store.Start(ctx, appType)
	if err != nil {
		h.logger.Error("failed to start wizard session", zap.Error(err))
		respondError(c, err)
		return
	}

	schema, _ := wizard.SchemaFor(appType)
	respondData(c, http.StatusCreated, viewOf(session, schema))
}

// GetSession godoc
// @Summary Get a wizard session
// @Description Returns the current step and accumulated form data of a session.
// @Tags wizard
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} models.APIResponse "Session state"
// @Failure 404 {object} models.APIResponse "Session not found or expired"
// @Router /wizard/sessions/{id} [get]
func (h *WizardHandler) GetSession(c *gin.Context) {
	ctx, span := otel.Tracer("").Start(c.Request.Context(), "GetWizardSession")
	defer span.End()

	session, err := h.store.Get(ctx, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	schema, err := wizard.SchemaFor(session.Type)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, viewOf(session, schema))
}

// Next godoc
// @Summary Advance the wizard one step
// @Description Merges the submitted fields, validates the current step and advances on success. On validation failure the session stays put and the field errors are returned.
// @Tags wizard
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param body body wizardStepBody true "Step fields"
// @Success 200 {object} models.APIResponse "Advanced"
// @Failure 404 {object} models.APIResponse "Session not found"
// @Failure 422 {object} models.APIResponse "Step validation failed"
// @Router /wizard/sessions/{id}/next [put]
func (h *WizardHandler) Next(c *gin.Context) {
	ctx, span := otel.Tracer("").Start(c.Request.Context(), "WizardNext")
	defer span.End()

	session, err := h.store.Get(ctx, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	var body wizardStepBody
	if err := c.ShouldBindJSON(&body); err != nil && err.Error() != "EOF" {
		respondError(c, models.ErrStepIncomplete)
		return
	}

	schema, err := wizard.SchemaFor(session.Type)
	if err != nil {
		respondError(c, err)
		return
	}

	failedStep := session.CurrentStep
	result := session.ApplyNext(schema, body.Fields)
	if !result.IsValid {
		observability.WizardStepFailures.WithLabelValues(
			string(session.Type), strconv.Itoa(failedStep)).Inc()
		if err := h.store.Save(ctx, session); err != nil {
			h.logger.Warn("failed to persist wizard session", zap.Error(err))
		}
		respondFieldErrors(c, result.FieldErrors())
		return
	}

	if err := h.store.Save(ctx, session); err != nil {
		h.logger.Error("failed to persist wizard session", zap.Error(err))
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, viewOf(session, schema))
}

// Back godoc
// @Summary Step the wizard backwards
// @Description Moves to the previous step, capped at step 1. Back navigation never fails validation.
// @Tags wizard
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param body body wizardStepBody false "Fields to keep from the abandoned step"
// @Success 200 {object} models.APIResponse "Moved back"
// @Failure 404 {object} models.APIResponse "Session not found"
// @Router /wizard/sessions/{id}/back [put]
func (h *WizardHandler) Back(c *gin.Context) {
	ctx, span := otel.Tracer("").Start(c.Request.Context(), "WizardBack")
	defer span.End()

	session, err := h.store.Get(ctx, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	var body wizardStepBody
	_ = c.ShouldBindJSON(&body)

	// Entered data survives back navigation, unvalidated
	if body.Fields != nil {
		session.Merge(body.Fields)
	}
	session.ApplyBack()

	schema, err := wizard.SchemaFor(session.Type)
	if err != nil {
		respondError(c, err)
		return
	}

	if err := h.store.Save(ctx, session); err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, viewOf(session, schema))
}

// Submit godoc
// @Summary Submit the completed application
// @Description Validates the full form from the final step and creates exactly one application, returning its reference number. A validation failure keeps the session alive for retry.
// @Tags wizard
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Session ID"
// @Param document formData file false "Primary document"
// @Param photo formData file false "Applicant photo"
// @Success 201 {object} models.APIResponse "Application created"
// @Failure 404 {object} models.APIResponse "Session not found"
// @Failure 422 {object} models.APIResponse "Form validation failed or not on final step"
// @Router /wizard/sessions/{id}/submit [post]
func (h *WizardHandler) Submit(c *gin.Context) {
	ctx, span := otel.Tracer("").Start(c.Request.Context(), "WizardSubmit")
	defer span.End()

	session, err := h.store.Get(ctx, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	span.SetAttributes(attribute.String("application.type", string(session.Type)))

	schema, err := wizard.SchemaFor(session.Type)
	if err != nil {
		respondError(c, err)
		return
	}

	fields := submittedFields(c)
	result, err := session.ValidateForSubmit(schema, fields)
	if err != nil {
		respondError(c, err)
		return
	}
	if !result.IsValid {
		observability.WizardStepFailures.WithLabelValues(
			string(session.Type), strconv.Itoa(session.CurrentStep)).Inc()
		if saveErr := h.store.Save(ctx, session); saveErr != nil {
			h.logger.Warn("failed to persist wizard session", zap.Error(saveErr))
		}
		respondFieldErrors(c, result.FieldErrors())
		return
	}

	app := &models.Application{
		Type:      session.Type,
		Applicant: applicantFrom(session.FormData),
		Fields:    session.FormData,
	}

	saved := []string{}
	discardSaved := func() {
		for _, path := range saved {
			if delErr := h.uploads.Delete(path); delErr != nil {
				h.logger.Warn("failed to discard stored upload",
					zap.String("path", path), zap.Error(delErr))
			}
		}
	}

	if docPath, uploadErr := h.storeUpload(c, "document", string(session.Type)); uploadErr != nil {
		respondError(c, uploadErr)
		return
	} else if docPath != "" {
		app.DocumentPath = docPath
		saved = append(saved, docPath)
	}
	if photoPath, uploadErr := h.storeUpload(c, "photo", string(session.Type)); uploadErr != nil {
		discardSaved()
		respondError(c, uploadErr)
		return
	} else if photoPath != "" {
		app.PhotoPath = photoPath
		saved = append(saved, photoPath)
	}

	response, err := h.applications.Create(ctx, app)
	if err != nil {
		h.logger.Error("failed to create application",
			zap.String("type", string(session.Type)), zap.Error(err))
		discardSaved()
		respondError(c, err)
		return
	}

	if err := h.store.Delete(ctx, session.ID); err != nil {
		h.logger.Warn("failed to delete wizard session after submit",
			zap.String("session_id", session.ID), zap.Error(err))
	}

	respondMessage(c, http.StatusCreated, response,
		"Application submitted. Keep your reference number: "+response.ReferenceNumber)
}

// storeUpload persists one optional multipart file field
func (h *WizardHandler) storeUpload(c *gin.Context, field, subdir string) (string, error) {
	file, err := c.FormFile(field)
	if err != nil {
		return "", nil
	}
	return h.uploads.Save(file, subdir)
}

// submittedFields reads step fields from either a JSON body or multipart form
func submittedFields(c *gin.Context) map[string]interface{} {
	var body wizardStepBody
	if err := c.ShouldBindJSON(&body); err == nil && body.Fields != nil {
		return body.Fields
	}

	if c.Request.MultipartForm == nil {
		if err := c.Request.ParseMultipartForm(32 << 20); err != nil {
			return nil
		}
	}
	fields := make(map[string]interface{})
	for name, values := range c.Request.PostForm {
		if name == "_method" || len(values) == 0 {
			continue
		}
		fields[name] = values[0]
	}
	if len(fields) == 0 {
		return nil
	}
	return fields
}

// applicantFrom lifts the shared contact block out of the flat form data
func applicantFrom(formData map[string]interface{}) models.Applicant {
	str := func(keys ...string) string {
		for _, key := range keys {
			if v, ok := formData[key].(string); ok && v != "" {
				return v
			}
		}
		return ""
	}
	return models.Applicant{
		Name:    str("ownerName", "applicantName", "fullName", "complainantName"),
		Email:   str("email"),
		Phone:   str("phoneNumber"),
		Address: str("address", "homeAddress", "businessAddress"),
	}
}
