package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/perpetual-help/egov-api/internal/models"
)

// respondData wraps a payload in the success envelope
func respondData(c *gin.Context, status int, data interface{}) {
	c.JSON(status, models.APIResponse{Success: true, Data: data})
}

// respondMessage wraps a payload and a human-readable message
func respondMessage(c *gin.Context, status int, data interface{}, message string) {
	c.JSON(status, models.APIResponse{Success: true, Data: data, Message: message})
}

// respondList wraps one page in the list envelope
func respondList(c *gin.Context, page *models.PaginatedData) {
	c.JSON(http.StatusOK, models.ListResponse{Success: true, Data: *page})
}

// respondFieldErrors ends the request with 422 and the per-field error map
func respondFieldErrors(c *gin.Context, fieldErrors map[string][]string) {
	c.JSON(http.StatusUnprocessableEntity, models.APIResponse{
		Success: false,
		Message: "Validation failed",
		Errors:  fieldErrors,
	})
}

// respondError maps a service error to its HTTP status and envelope
func respondError(c *gin.Context, err error) {
	c.JSON(statusForError(err), models.APIResponse{Success: false, Message: err.Error()})
}

// statusForError maps sentinel errors to HTTP status codes. Unrecognized
// errors are internal.
func statusForError(err error) int {
	switch {
	case errors.Is(err, models.ErrApplicationNotFound),
		errors.Is(err, models.ErrReferenceNotFound),
		errors.Is(err, models.ErrUserNotFound),
		errors.Is(err, models.ErrNewsNotFound),
		errors.Is(err, models.ErrAnnouncementNotFound),
		errors.Is(err, models.ErrAlertNotFound),
		errors.Is(err, models.ErrSessionNotFound),
		errors.Is(err, models.ErrUnknownApplicationType):
		return http.StatusNotFound

	case errors.Is(err, models.ErrInvalidApplicationID),
		errors.Is(err, models.ErrInvalidUserID),
		errors.Is(err, models.ErrInvalidNewsID),
		errors.Is(err, models.ErrInvalidAnnouncementID),
		errors.Is(err, models.ErrInvalidAlertID):
		return http.StatusBadRequest

	case errors.Is(err, models.ErrIllegalTransition),
		errors.Is(err, models.ErrEmailExists):
		return http.StatusConflict

	case errors.Is(err, models.ErrInvalidStatus),
		errors.Is(err, models.ErrReasonRequired),
		errors.Is(err, models.ErrInvalidPhone),
		errors.Is(err, models.ErrInvalidCategory),
		errors.Is(err, models.ErrInvalidNewsStatus),
		errors.Is(err, models.ErrInvalidWindow),
		errors.Is(err, models.ErrNotOnFinalStep),
		errors.Is(err, models.ErrStepIncomplete),
		errors.Is(err, models.ErrFileTooLarge),
		errors.Is(err, models.ErrUnsupportedFileType):
		return http.StatusUnprocessableEntity

	default:
		return http.StatusInternalServerError
	}
}

// bindingErrors converts request binding failures into the wire error map
func bindingErrors(err error) map[string][]string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return map[string][]string{"body": {"malformed request body"}}
	}
	out := make(map[string][]string, len(verrs))
	for _, fe := range verrs {
		field := snakeCase(fe.Field())
		message := field + " is required"
		if fe.Tag() != "required" {
			message = field + " is invalid"
		}
		out[field] = append(out[field], message)
	}
	return out
}

func snakeCase(s string) string {
	var b strings.Builder
	for i, r := range s {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}

// pageParams reads and clamps the pagination query parameters
func pageParams(c *gin.Context) (int, int) {
	page := intQuery(c, "page", 1)
	perPage := intQuery(c, "per_page", 10)
	return models.ClampPage(page, perPage)
}

func intQuery(c *gin.Context, name string, fallback int) int {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}
