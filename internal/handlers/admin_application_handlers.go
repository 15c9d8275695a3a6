package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/perpetual-help/egov-api/internal/logging"
	"github.com/perpetual-help/egov-api/internal/middleware"
	"github.com/perpetual-help/egov-api/internal/models"
	"github.com/perpetual-help/egov-api/internal/services"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// AdminApplicationHandler is the review console over citizen applications:
// paginated, filterable lists plus status transitions per the transition
// table.
type AdminApplicationHandler struct {
	applications *services.ApplicationService
	audit        *services.AuditService
	logger       *logging.SafeLogger
}

// NewAdminApplicationHandler creates the admin review HTTP surface
func NewAdminApplicationHandler(applications *services.ApplicationService, audit *services.AuditService, logger *logging.SafeLogger) *AdminApplicationHandler {
	return &AdminApplicationHandler{applications: applications, audit: audit, logger: logger}
}

// List godoc
// @Summary List applications of one service type
// @Description Returns one page of applications, filterable by status and searchable by reference number or applicant name.
// @Tags admin
// @Produce json
// @Param type path string true "Service type"
// @Param page query int false "Page number (default 1)" minimum(1)
// @Param per_page query int false "Items per page (default 10, max 100)" minimum(1) maximum(100)
// @Param status query string false "Status filter" Enums(pending, processing, approved, rejected, deactivated)
// @Param search query string false "Match against reference number or applicant name"
// @Security BearerAuth
// @Success 200 {object} models.ListResponse "One page of applications"
// @Failure 401 {object} models.APIResponse "Session expired"
// @Failure 404 {object} models.APIResponse "Unknown service type"
// @Router /admin/applications/{type} [get]
func (h *AdminApplicationHandler) List(c *gin.Context) {
	ctx, span := otel.Tracer("").Start(c.Request.Context(), "AdminListApplications")
	defer span.End()

	appType, err := models.ParseApplicationType(c.Param("type"))
	if err != nil {
		respondError(c, err)
		return
	}

	page, perPage := pageParams(c)
	status := models.ApplicationStatus(c.Query("status"))
	if status != "" && !models.IsValidStatus(status) {
		respondError(c, models.ErrInvalidStatus)
		return
	}

	span.SetAttributes(
		attribute.String("application.type", string(appType)),
		attribute.Int("page", page),
	)

	result, err := h.applications.List(ctx, appType, page, perPage, status, c.Query("search"))
	if err != nil {
		h.logger.Error("failed to list applications",
			zap.String("type", string(appType)), zap.Error(err))
		respondError(c, err)
		return
	}
	respondList(c, result)
}

// Get godoc
// @Summary Get one application
// @Description Returns the full admin view of an application, including its allowed next statuses.
// @Tags admin
// @Produce json
// @Param type path string true "Service type"
// @Param id path string true "Application ID"
// @Security BearerAuth
// @Success 200 {object} models.APIResponse "Application"
// @Failure 404 {object} models.APIResponse "Not found"
// @Router /admin/applications/{type}/{id} [get]
func (h *AdminApplicationHandler) Get(c *gin.Context) {
	ctx, span := otel.Tracer("").Start(c.Request.Context(), "AdminGetApplication")
	defer span.End()

	appType, err := models.ParseApplicationType(c.Param("type"))
	if err != nil {
		respondError(c, err)
		return
	}

	app, err := h.applications.GetByID(ctx, appType, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, app.ToResponse())
}

// Transition godoc
// @Summary Transition an application's status
// @Description Applies a status transition per the transition table. Negative transitions require a non-empty reason. Accepts JSON or a multipart form with _method override.
// @Tags admin
// @Accept json
// @Produce json
// @Param type path string true "Service type"
// @Param id path string true "Application ID"
// @Param body body models.TransitionRequest true "Target status and optional reason"
// @Security BearerAuth
// @Success 200 {object} models.APIResponse "Updated application"
// @Failure 404 {object} models.APIResponse "Not found"
// @Failure 409 {object} models.APIResponse "Transition not allowed from the current status"
// @Failure 422 {object} models.APIResponse "Missing reason or invalid status"
// @Router /admin/applications/{type}/{id} [patch]
func (h *AdminApplicationHandler) Transition(c *gin.Context) {
	ctx, span := otel.Tracer("").Start(c.Request.Context(), "AdminTransitionApplication")
	defer span.End()

	appType, err := models.ParseApplicationType(c.Param("type"))
	if err != nil {
		respondError(c, err)
		return
	}

	req, ok := bindTransitionRequest(c)
	if !ok {
		return
	}
	span.SetAttributes(
		attribute.String("application.type", string(appType)),
		attribute.String("transition.to", string(req.Status)),
	)

	actor := middleware.ActorFromContext(c)
	response, err := h.applications.Transition(ctx, appType, c.Param("id"), req, actor)
	if err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, response, "Status updated to "+string(req.Status))
}

// Delete godoc
// @Summary Delete a legitimacy request
// @Description Hard-deletes one legitimacy request. Other application types are never deleted.
// @Tags admin
// @Produce json
// @Param type path string true "Service type"
// @Param id path string true "Application ID"
// @Security BearerAuth
// @Success 200 {object} models.APIResponse "Deleted"
// @Failure 404 {object} models.APIResponse "Not found"
// @Failure 409 {object} models.APIResponse "Type does not allow deletion"
// @Router /admin/applications/{type}/{id} [delete]
func (h *AdminApplicationHandler) Delete(c *gin.Context) {
	ctx, span := otel.Tracer("").Start(c.Request.Context(), "AdminDeleteApplication")
	defer span.End()

	appType, err := models.ParseApplicationType(c.Param("type"))
	if err != nil {
		respondError(c, err)
		return
	}

	if err := h.applications.Delete(ctx, appType, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, nil, "Application deleted")
}

// History godoc
// @Summary Status history of one application
// @Description Returns the audit trail of status transitions, newest first.
// @Tags admin
// @Produce json
// @Param type path string true "Service type"
// @Param id path string true "Application ID"
// @Security BearerAuth
// @Success 200 {object} models.APIResponse "Audit entries"
// @Router /admin/applications/{type}/{id}/history [get]
func (h *AdminApplicationHandler) History(c *gin.Context) {
	ctx, span := otel.Tracer("").Start(c.Request.Context(), "AdminApplicationHistory")
	defer span.End()

	if _, err := models.ParseApplicationType(c.Param("type")); err != nil {
		respondError(c, err)
		return
	}

	entries, err := h.audit.History(ctx, "application", c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, entries)
}

// bindTransitionRequest reads a transition body from JSON or an overridden
// multipart form. Responds 422 itself when the body is unusable.
func bindTransitionRequest(c *gin.Context) (models.TransitionRequest, bool) {
	var req models.TransitionRequest

	contentType := c.ContentType()
	if strings.HasPrefix(contentType, "multipart/form-data") ||
		contentType == "application/x-www-form-urlencoded" {
		status := c.PostForm("status")
		if status == "" {
			respondFieldErrors(c, map[string][]string{"status": {"status is required"}})
			return req, false
		}
		req.Status = models.ApplicationStatus(status)
		if reason, ok := c.GetPostForm("rejection_reason"); ok {
			req.RejectionReason = &reason
		}
		req.AdminNote = c.PostForm("admin_note")
		return req, true
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		respondFieldErrors(c, map[string][]string{"status": {"status is required"}})
		return req, false
	}
	return req, true
}
