package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/perpetual-help/egov-api/internal/logging"
	"github.com/perpetual-help/egov-api/internal/models"
	"github.com/perpetual-help/egov-api/internal/services"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
)

// AlertHandler serves the merged disaster alert feed and the admin alert CRUD
type AlertHandler struct {
	alerts *services.AlertService
	logger *logging.SafeLogger
}

// NewAlertHandler creates the alert HTTP surface
func NewAlertHandler(alerts *services.AlertService, logger *logging.SafeLogger) *AlertHandler {
	return &AlertHandler{alerts: alerts, logger: logger}
}

// Aggregate godoc
// @Summary Current disaster alerts
// @Description Merges admin-issued alerts with the latest earthquake and typhoon feed snapshots. Each entry is tagged with its kind and an active flag computed against the current time. A failed source is omitted, never an error.
// @Tags alerts
// @Produce json
// @Success 200 {object} models.APIResponse "Tagged alert list"
// @Router /alerts [get]
func (h *AlertHandler) Aggregate(c *gin.Context) {
	ctx, span := otel.Tracer("").Start(c.Request.Context(), "AggregateAlerts")
	defer span.End()

	merged, err := h.alerts.Aggregate(ctx, time.Now())
	if err != nil {
		h.logger.Error("failed to aggregate alerts", zap.Error(err))
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, merged)
}

// List godoc
// @Summary List admin-issued alerts
// @Tags admin
// @Produce json
// @Param page query int false "Page number" minimum(1)
// @Param per_page query int false "Items per page" minimum(1) maximum(100)
// @Security BearerAuth
// @Success 200 {object} models.ListResponse "One page of alerts"
// @Router /admin/alerts [get]
func (h *AlertHandler) List(c *gin.Context) {
	ctx, span := otel.Tracer("").Start(c.Request.Context(), "AdminListAlerts")
	defer span.End()

	page, perPage := pageParams(c)
	result, err := h.alerts.List(ctx, page, perPage)
	if err != nil {
		respondError(c, err)
		return
	}
	respondList(c, result)
}

// Get godoc
// @Summary Get one admin alert
// @Tags admin
// @Produce json
// @Param id path string true "Alert ID"
// @Security BearerAuth
// @Success 200 {object} models.APIResponse "Alert"
// @Failure 404 {object} models.APIResponse "Not found"
// @Router /admin/alerts/{id} [get]
func (h *AlertHandler) Get(c *gin.Context) {
	ctx, span := otel.Tracer("").Start(c.Request.Context(), "AdminGetAlert")
	defer span.End()

	alert, err := h.alerts.Get(ctx, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, alert)
}

// Create godoc
// @Summary Issue a disaster alert
// @Description Issues an admin alert with a disaster type, severity and active window.
// @Tags admin
// @Accept json
// @Produce json
// @Param body body models.AdminAlertRequest true "Alert"
// @Security BearerAuth
// @Success 201 {object} models.APIResponse "Issued"
// @Failure 422 {object} models.APIResponse "Invalid window"
// @Router /admin/alerts [post]
func (h *AlertHandler) Create(c *gin.Context) {
	ctx, span := otel.Tracer("").Start(c.Request.Context(), "AdminCreateAlert")
	defer span.End()

	var req models.AdminAlertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondFieldErrors(c, bindingErrors(err))
		return
	}

	alert, err := h.alerts.Create(ctx, req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, http.StatusCreated, alert, "Alert issued")
}

// Update godoc
// @Summary Update an admin alert
// @Tags admin
// @Accept json
// @Produce json
// @Param id path string true "Alert ID"
// @Param body body models.AdminAlertRequest true "Alert"
// @Security BearerAuth
// @Success 200 {object} models.APIResponse "Updated"
// @Failure 404 {object} models.APIResponse "Not found"
// @Router /admin/alerts/{id} [patch]
func (h *AlertHandler) Update(c *gin.Context) {
	ctx, span := otel.Tracer("").Start(c.Request.Context(), "AdminUpdateAlert")
	defer span.End()

	var req models.AdminAlertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondFieldErrors(c, bindingErrors(err))
		return
	}

	alert, err := h.alerts.Update(ctx, c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, alert, "Alert updated")
}

// Delete godoc
// @Summary Withdraw an admin alert
// @Tags admin
// @Produce json
// @Param id path string true "Alert ID"
// @Security BearerAuth
// @Success 200 {object} models.APIResponse "Withdrawn"
// @Failure 404 {object} models.APIResponse "Not found"
// @Router /admin/alerts/{id} [delete]
func (h *AlertHandler) Delete(c *gin.Context) {
	ctx, span := otel.Tracer("").Start(c.Request.Context(), "AdminDeleteAlert")
	defer span.End()

	if err := h.alerts.Delete(ctx, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, nil, "Alert withdrawn")
}
