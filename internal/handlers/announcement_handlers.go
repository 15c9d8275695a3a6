package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/perpetual-help/egov-api/internal/logging"
	"github.com/perpetual-help/egov-api/internal/models"
	"github.com/perpetual-help/egov-api/internal/services"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
)

// AnnouncementHandler serves the public announcement board and its admin CRUD
type AnnouncementHandler struct {
	announcements *services.AnnouncementService
	uploads       *services.UploadService
	logger        *logging.SafeLogger
}

// NewAnnouncementHandler creates the announcement HTTP surface
func NewAnnouncementHandler(announcements *services.AnnouncementService, uploads *services.UploadService, logger *logging.SafeLogger) *AnnouncementHandler {
	return &AnnouncementHandler{announcements: announcements, uploads: uploads, logger: logger}
}

// ListActive godoc
// @Summary List active announcements
// @Description Returns one page of active announcements, highest priority first.
// @Tags announcements
// @Produce json
// @Param page query int false "Page number" minimum(1)
// @Param per_page query int false "Items per page" minimum(1) maximum(100)
// @Success 200 {object} models.ListResponse "One page of announcements"
// @Router /announcements [get]
func (h *AnnouncementHandler) ListActive(c *gin.Context) {
	ctx, span := otel.Tracer("").Start(c.Request.Context(), "ListActiveAnnouncements")
	defer span.End()

	page, perPage := pageParams(c)
	result, err := h.announcements.ListActive(ctx, page, perPage)
	if err != nil {
		h.logger.Error("failed to list announcements", zap.Error(err))
		respondError(c, err)
		return
	}
	respondList(c, result)
}

// List godoc
// @Summary List announcements (admin)
// @Tags admin
// @Produce json
// @Param page query int false "Page number" minimum(1)
// @Param per_page query int false "Items per page" minimum(1) maximum(100)
// @Param search query string false "Match against title"
// @Security BearerAuth
// @Success 200 {object} models.ListResponse "One page of announcements"
// @Router /admin/announcements [get]
func (h *AnnouncementHandler) List(c *gin.Context) {
	ctx, span := otel.Tracer("").Start(c.Request.Context(), "AdminListAnnouncements")
	defer span.End()

	page, perPage := pageParams(c)
	result, err := h.announcements.List(ctx, page, perPage, c.Query("search"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondList(c, result)
}

// Get godoc
// @Summary Get one announcement
// @Tags admin
// @Produce json
// @Param id path string true "Announcement ID"
// @Security BearerAuth
// @Success 200 {object} models.APIResponse "Announcement"
// @Failure 404 {object} models.APIResponse "Not found"
// @Router /admin/announcements/{id} [get]
func (h *AnnouncementHandler) Get(c *gin.Context) {
	ctx, span := otel.Tracer("").Start(c.Request.Context(), "AdminGetAnnouncement")
	defer span.End()

	item, err := h.announcements.Get(ctx, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, item)
}

// Create godoc
// @Summary Create an announcement
// @Tags admin
// @Accept json
// @Produce json
// @Param body body models.AnnouncementRequest true "Announcement"
// @Security BearerAuth
// @Success 201 {object} models.APIResponse "Created"
// @Failure 422 {object} models.APIResponse "Validation failed"
// @Router /admin/announcements [post]
func (h *AnnouncementHandler) Create(c *gin.Context) {
	ctx, span := otel.Tracer("").Start(c.Request.Context(), "AdminCreateAnnouncement")
	defer span.End()

	req, ok := h.bindAnnouncementRequest(c)
	if !ok {
		return
	}

	item, err := h.announcements.Create(ctx, req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, http.StatusCreated, item, "Announcement created")
}

// Update godoc
// @Summary Update an announcement
// @Description Updates an announcement. Image edits arrive as multipart POST with _method=PATCH.
// @Tags admin
// @Accept json
// @Produce json
// @Param id path string true "Announcement ID"
// @Param body body models.AnnouncementRequest true "Announcement"
// @Security BearerAuth
// @Success 200 {object} models.APIResponse "Updated"
// @Failure 404 {object} models.APIResponse "Not found"
// @Router /admin/announcements/{id} [patch]
func (h *AnnouncementHandler) Update(c *gin.Context) {
	ctx, span := otel.Tracer("").Start(c.Request.Context(), "AdminUpdateAnnouncement")
	defer span.End()

	req, ok := h.bindAnnouncementRequest(c)
	if !ok {
		return
	}

	item, err := h.announcements.Update(ctx, c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, item, "Announcement updated")
}

// Delete godoc
// @Summary Delete an announcement
// @Tags admin
// @Produce json
// @Param id path string true "Announcement ID"
// @Security BearerAuth
// @Success 200 {object} models.APIResponse "Deleted"
// @Failure 404 {object} models.APIResponse "Not found"
// @Router /admin/announcements/{id} [delete]
func (h *AnnouncementHandler) Delete(c *gin.Context) {
	ctx, span := otel.Tracer("").Start(c.Request.Context(), "AdminDeleteAnnouncement")
	defer span.End()

	if err := h.announcements.Delete(ctx, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, nil, "Announcement deleted")
}

func (h *AnnouncementHandler) bindAnnouncementRequest(c *gin.Context) (models.AnnouncementRequest, bool) {
	var req models.AnnouncementRequest

	contentType := c.ContentType()
	if strings.HasPrefix(contentType, "multipart/form-data") ||
		contentType == "application/x-www-form-urlencoded" {
		req.Title = c.PostForm("title")
		req.Content = c.PostForm("content")
		req.Category = models.NewsCategory(c.PostForm("category"))
		if raw, ok := c.GetPostForm("is_active"); ok {
			active := raw == "true" || raw == "1"
			req.IsActive = &active
		}
		if raw := c.PostForm("priority"); raw != "" {
			if priority, err := strconv.Atoi(raw); err == nil {
				req.Priority = priority
			}
		}

		if file, err := c.FormFile("image"); err == nil {
			path, saveErr := h.uploads.Save(file, "announcements")
			if saveErr != nil {
				respondError(c, saveErr)
				return req, false
			}
			req.ImageURL = path
		}

		fieldErrors := map[string][]string{}
		if req.Title == "" {
			fieldErrors["title"] = append(fieldErrors["title"], "title is required")
		}
		if req.Content == "" {
			fieldErrors["content"] = append(fieldErrors["content"], "content is required")
		}
		if req.Category == "" {
			fieldErrors["category"] = append(fieldErrors["category"], "category is required")
		}
		if len(fieldErrors) > 0 {
			respondFieldErrors(c, fieldErrors)
			return req, false
		}
		return req, true
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		respondFieldErrors(c, bindingErrors(err))
		return req, false
	}
	return req, true
}
