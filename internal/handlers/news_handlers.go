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

// NewsHandler serves the public news feed and the admin news console
type NewsHandler struct {
	news    *services.NewsService
	uploads *services.UploadService
	logger  *logging.SafeLogger
}

// NewNewsHandler creates the news HTTP surface
func NewNewsHandler(news *services.NewsService, uploads *services.UploadService, logger *logging.SafeLogger) *NewsHandler {
	return &NewsHandler{news: news, uploads: uploads, logger: logger}
}

// ListPublished godoc
// @Summary List published news
// @Description Returns one page of published news, highest priority first.
// @Tags news
// @Produce json
// @Param page query int false "Page number (default 1)" minimum(1)
// @Param per_page query int false "Items per page (default 10, max 100)" minimum(1) maximum(100)
// @Success 200 {object} models.ListResponse "One page of news"
// @Router /news [get]
func (h *NewsHandler) ListPublished(c *gin.Context) {
	ctx, span := otel.Tracer("").Start(c.Request.Context(), "ListPublishedNews")
	defer span.End()

	page, perPage := pageParams(c)
	result, err := h.news.ListPublished(ctx, page, perPage)
	if err != nil {
		h.logger.Error("failed to list published news", zap.Error(err))
		respondError(c, err)
		return
	}
	respondList(c, result)
}

// List godoc
// @Summary List news items (admin)
// @Description Returns one page of news in any status, searchable by title.
// @Tags admin
// @Produce json
// @Param page query int false "Page number" minimum(1)
// @Param per_page query int false "Items per page" minimum(1) maximum(100)
// @Param status query string false "Status filter" Enums(draft, published, archived)
// @Param search query string false "Match against title"
// @Security BearerAuth
// @Success 200 {object} models.ListResponse "One page of news"
// @Router /admin/news [get]
func (h *NewsHandler) List(c *gin.Context) {
	ctx, span := otel.Tracer("").Start(c.Request.Context(), "AdminListNews")
	defer span.End()

	page, perPage := pageParams(c)
	status := models.NewsStatus(c.Query("status"))
	if status != "" && !models.IsValidNewsStatus(status) {
		respondError(c, models.ErrInvalidNewsStatus)
		return
	}

	result, err := h.news.List(ctx, page, perPage, status, c.Query("search"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondList(c, result)
}

// Get godoc
// @Summary Get one news item
// @Tags admin
// @Produce json
// @Param id path string true "News ID"
// @Security BearerAuth
// @Success 200 {object} models.APIResponse "News item"
// @Failure 404 {object} models.APIResponse "Not found"
// @Router /admin/news/{id} [get]
func (h *NewsHandler) Get(c *gin.Context) {
	ctx, span := otel.Tracer("").Start(c.Request.Context(), "AdminGetNews")
	defer span.End()

	item, err := h.news.Get(ctx, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, item)
}

// Create godoc
// @Summary Create a news item
// @Description Creates a news item from JSON or a multipart form with an optional image file.
// @Tags admin
// @Accept json
// @Produce json
// @Param body body models.NewsRequest true "News item"
// @Security BearerAuth
// @Success 201 {object} models.APIResponse "Created"
// @Failure 422 {object} models.APIResponse "Validation failed"
// @Router /admin/news [post]
func (h *NewsHandler) Create(c *gin.Context) {
	ctx, span := otel.Tracer("").Start(c.Request.Context(), "AdminCreateNews")
	defer span.End()

	req, ok := h.bindNewsRequest(c)
	if !ok {
		return
	}

	item, err := h.news.Create(ctx, req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, http.StatusCreated, item, "News item created")
}

// Update godoc
// @Summary Update a news item
// @Description Updates a news item. Image edits arrive as multipart POST with _method=PATCH.
// @Tags admin
// @Accept json
// @Produce json
// @Param id path string true "News ID"
// @Param body body models.NewsRequest true "News item"
// @Security BearerAuth
// @Success 200 {object} models.APIResponse "Updated"
// @Failure 404 {object} models.APIResponse "Not found"
// @Failure 422 {object} models.APIResponse "Validation failed"
// @Router /admin/news/{id} [patch]
func (h *NewsHandler) Update(c *gin.Context) {
	ctx, span := otel.Tracer("").Start(c.Request.Context(), "AdminUpdateNews")
	defer span.End()

	req, ok := h.bindNewsRequest(c)
	if !ok {
		return
	}

	item, err := h.news.Update(ctx, c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, item, "News item updated")
}

// Delete godoc
// @Summary Delete a news item
// @Tags admin
// @Produce json
// @Param id path string true "News ID"
// @Security BearerAuth
// @Success 200 {object} models.APIResponse "Deleted"
// @Failure 404 {object} models.APIResponse "Not found"
// @Router /admin/news/{id} [delete]
func (h *NewsHandler) Delete(c *gin.Context) {
	ctx, span := otel.Tracer("").Start(c.Request.Context(), "AdminDeleteNews")
	defer span.End()

	if err := h.news.Delete(ctx, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, nil, "News item deleted")
}

// bindNewsRequest reads a news body from JSON or an overridden multipart
// form, storing an attached image file if present.
func (h *NewsHandler) bindNewsRequest(c *gin.Context) (models.NewsRequest, bool) {
	var req models.NewsRequest

	contentType := c.ContentType()
	if strings.HasPrefix(contentType, "multipart/form-data") ||
		contentType == "application/x-www-form-urlencoded" {
		req.Title = c.PostForm("title")
		req.Content = c.PostForm("content")
		req.Category = models.NewsCategory(c.PostForm("category"))
		req.Status = models.NewsStatus(c.PostForm("status"))
		if raw := c.PostForm("priority"); raw != "" {
			if priority, err := strconv.Atoi(raw); err == nil {
				req.Priority = priority
			}
		}

		if file, err := c.FormFile("image"); err == nil {
			path, saveErr := h.uploads.Save(file, "news")
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
