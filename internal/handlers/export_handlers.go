package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/perpetual-help/egov-api/internal/logging"
	"github.com/perpetual-help/egov-api/internal/models"
	"github.com/perpetual-help/egov-api/internal/pdf"
	"github.com/perpetual-help/egov-api/internal/services"
	"github.com/perpetual-help/egov-api/internal/utils"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
)

// ExportHandler renders admin PDF exports
type ExportHandler struct {
	applications *services.ApplicationService
	logger       *logging.SafeLogger
}

// NewExportHandler creates the PDF export HTTP surface
func NewExportHandler(applications *services.ApplicationService, logger *logging.SafeLogger) *ExportHandler {
	return &ExportHandler{applications: applications, logger: logger}
}

// LegitimacyCertificate godoc
// @Summary Export one legitimacy request as PDF
// @Description Renders a certificate-style PDF of a single legitimacy request.
// @Tags admin
// @Produce application/pdf
// @Param id path string true "Application ID"
// @Security BearerAuth
// @Success 200 {file} binary "PDF document"
// @Failure 404 {object} models.APIResponse "Not found"
// @Router /admin/legitimacy/{id}/pdf [get]
func (h *ExportHandler) LegitimacyCertificate(c *gin.Context) {
	ctx, span := otel.Tracer("").Start(c.Request.Context(), "ExportLegitimacyPDF")
	defer span.End()

	app, err := h.applications.GetByID(ctx, models.TypeLegitimacy, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	doc := pdf.New("Certificate of Legitimacy Request")
	doc.Heading("Republic of the Philippines")
	doc.Subheading("Office of the Barangay Captain")
	doc.Spacer()
	doc.Heading("Certificate of Legitimacy Request")
	doc.Spacer()
	doc.KeyValue("Reference Number", app.ReferenceNumber)
	doc.KeyValue("Status", string(app.Status))
	doc.KeyValue("Applicant", app.Applicant.Name)
	doc.KeyValue("Address", app.Applicant.Address)
	doc.KeyValue("Submitted", app.CreatedAt.Format("January 2, 2006"))
	if app.RejectionReason != "" {
		doc.KeyValue("Rejection Reason", app.RejectionReason)
	}
	doc.Spacer()
	for name, value := range app.Fields {
		doc.KeyValue(name, fmt.Sprintf("%v", value))
	}
	doc.Spacer()
	doc.Text("This document was generated by the barangay e-government portal.")

	writePDF(c, doc.Bytes(), exportFilename("legitimacy", app.Applicant.Name))
}

// ExportApplications godoc
// @Summary Export an application summary as PDF
// @Description Renders a tabular PDF of applications matching the type, status and date range filters.
// @Tags admin
// @Produce application/pdf
// @Param type query string true "Service type"
// @Param status query string false "Status filter"
// @Param from query string false "Start date (YYYY-MM-DD)"
// @Param to query string false "End date (YYYY-MM-DD)"
// @Security BearerAuth
// @Success 200 {file} binary "PDF document"
// @Failure 404 {object} models.APIResponse "Unknown service type"
// @Router /admin/export-pdf [get]
func (h *ExportHandler) ExportApplications(c *gin.Context) {
	ctx, span := otel.Tracer("").Start(c.Request.Context(), "ExportApplicationsPDF")
	defer span.End()

	appType, err := models.ParseApplicationType(c.Query("type"))
	if err != nil {
		respondError(c, err)
		return
	}

	status := models.ApplicationStatus(c.Query("status"))
	from, to, err := exportDateRange(c.Query("from"), c.Query("to"))
	if err != nil {
		respondFieldErrors(c, map[string][]string{"from": {"dates must be YYYY-MM-DD"}})
		return
	}

	apps, err := h.applications.ListForExport(ctx, appType, status, from, to)
	if err != nil {
		h.logger.Error("failed to query applications for export", zap.Error(err))
		respondError(c, err)
		return
	}

	doc := pdf.New("Application Summary")
	doc.Heading("Application Summary")
	doc.Subheading(fmt.Sprintf("Service: %s", appType))
	if status != "" {
		doc.Text(fmt.Sprintf("Status filter: %s", status))
	}
	doc.Text(fmt.Sprintf("Generated: %s", time.Now().Format("January 2, 2006 15:04")))
	doc.Text(fmt.Sprintf("Matching applications: %d", len(apps)))
	doc.Spacer()

	for _, app := range apps {
		doc.Subheading(app.ReferenceNumber)
		doc.KeyValue("Applicant", app.Applicant.Name)
		doc.KeyValue("Status", string(app.Status))
		doc.KeyValue("Submitted", app.CreatedAt.Format("2006-01-02"))
		if app.RejectionReason != "" {
			doc.KeyValue("Rejection Reason", app.RejectionReason)
		}
		doc.Spacer()
	}
	if len(apps) == 0 {
		doc.Text("No applications match the given filters.")
	}

	writePDF(c, doc.Bytes(), exportFilename(string(appType), "summary"))
}

// exportFilename builds the download name <kind>-<slug>-<ISO date>.pdf
func exportFilename(kind, slug string) string {
	return fmt.Sprintf("%s-%s-%s.pdf", kind, utils.Slugify(slug),
		time.Now().Format("2006-01-02"))
}

func exportDateRange(fromRaw, toRaw string) (time.Time, time.Time, error) {
	var from, to time.Time
	var err error
	if fromRaw != "" {
		from, err = time.Parse("2006-01-02", fromRaw)
		if err != nil {
			return from, to, err
		}
	}
	if toRaw != "" {
		to, err = time.Parse("2006-01-02", toRaw)
		if err != nil {
			return from, to, err
		}
		// Inclusive end of day
		to = to.Add(24*time.Hour - time.Nanosecond)
	}
	return from, to, nil
}

func writePDF(c *gin.Context, content []byte, filename string) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/pdf", content)
}
