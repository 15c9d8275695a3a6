package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/perpetual-help/egov-api/internal/logging"
	"github.com/perpetual-help/egov-api/internal/services"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

// ApplicationHandler serves the citizen-facing application endpoints
type ApplicationHandler struct {
	applications *services.ApplicationService
	logger       *logging.SafeLogger
}

// NewApplicationHandler creates the citizen application HTTP surface
func NewApplicationHandler(applications *services.ApplicationService, logger *logging.SafeLogger) *ApplicationHandler {
	return &ApplicationHandler{applications: applications, logger: logger}
}

// Track godoc
// @Summary Track an application by reference number
// @Description Returns the public status view of an application: status, service type, timestamps and rejection reason if any.
// @Tags applications
// @Produce json
// @Param reference path string true "Reference number, e.g. BP-2026-4F7KQ2"
// @Success 200 {object} models.APIResponse "Tracking view"
// @Failure 404 {object} models.APIResponse "Reference number not found"
// @Router /applications/track/{reference} [get]
func (h *ApplicationHandler) Track(c *gin.Context) {
	ctx, span := otel.Tracer("").Start(c.Request.Context(), "TrackApplication")
	defer span.End()

	reference := c.Param("reference")
	span.SetAttributes(attribute.String("application.reference", reference))

	tracking, err := h.applications.GetByReference(ctx, reference)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, tracking)
}
