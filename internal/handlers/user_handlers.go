package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/perpetual-help/egov-api/internal/logging"
	"github.com/perpetual-help/egov-api/internal/middleware"
	"github.com/perpetual-help/egov-api/internal/models"
	"github.com/perpetual-help/egov-api/internal/services"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
)

// UserHandler covers citizen registration and the admin account console
type UserHandler struct {
	users  *services.UserService
	logger *logging.SafeLogger
}

// NewUserHandler creates the user HTTP surface
func NewUserHandler(users *services.UserService, logger *logging.SafeLogger) *UserHandler {
	return &UserHandler{users: users, logger: logger}
}

// Register godoc
// @Summary Register a portal account
// @Description Creates a new citizen account in pending status, awaiting admin approval. Phone numbers are normalized to E.164.
// @Tags users
// @Accept json
// @Produce json
// @Param body body models.UserRequest true "Account details"
// @Success 201 {object} models.APIResponse "Account created, pending approval"
// @Failure 409 {object} models.APIResponse "Email already registered"
// @Failure 422 {object} models.APIResponse "Validation failed"
// @Router /users [post]
func (h *UserHandler) Register(c *gin.Context) {
	ctx, span := otel.Tracer("").Start(c.Request.Context(), "RegisterUser")
	defer span.End()

	var req models.UserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondFieldErrors(c, bindingErrors(err))
		return
	}

	response, err := h.users.Register(ctx, req)
	if err != nil {
		h.logger.Warn("user registration failed", zap.Error(err))
		respondError(c, err)
		return
	}
	respondMessage(c, http.StatusCreated, response,
		"Registration received. Your account is pending approval.")
}

// List godoc
// @Summary List portal accounts
// @Description Returns one page of accounts, filterable by status and searchable by name or email.
// @Tags admin
// @Produce json
// @Param page query int false "Page number (default 1)" minimum(1)
// @Param per_page query int false "Items per page (default 10, max 100)" minimum(1) maximum(100)
// @Param status query string false "Status filter"
// @Param search query string false "Match against name or email"
// @Security BearerAuth
// @Success 200 {object} models.ListResponse "One page of users"
// @Router /admin/users [get]
func (h *UserHandler) List(c *gin.Context) {
	ctx, span := otel.Tracer("").Start(c.Request.Context(), "AdminListUsers")
	defer span.End()

	page, perPage := pageParams(c)
	status := models.ApplicationStatus(c.Query("status"))
	if status != "" && !models.IsValidStatus(status) {
		respondError(c, models.ErrInvalidStatus)
		return
	}

	result, err := h.users.List(ctx, page, perPage, status, c.Query("search"))
	if err != nil {
		h.logger.Error("failed to list users", zap.Error(err))
		respondError(c, err)
		return
	}
	respondList(c, result)
}

// Get godoc
// @Summary Get one portal account
// @Tags admin
// @Produce json
// @Param id path string true "User ID"
// @Security BearerAuth
// @Success 200 {object} models.APIResponse "User"
// @Failure 404 {object} models.APIResponse "Not found"
// @Router /admin/users/{id} [get]
func (h *UserHandler) Get(c *gin.Context) {
	ctx, span := otel.Tracer("").Start(c.Request.Context(), "AdminGetUser")
	defer span.End()

	user, err := h.users.GetByID(ctx, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, user.ToResponse())
}

// Transition godoc
// @Summary Transition an account's status
// @Description Applies an account status transition. Approved accounts can be deactivated and later re-approved; deactivation requires a reason.
// @Tags admin
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param body body models.TransitionRequest true "Target status and optional reason"
// @Security BearerAuth
// @Success 200 {object} models.APIResponse "Updated user"
// @Failure 404 {object} models.APIResponse "Not found"
// @Failure 409 {object} models.APIResponse "Transition not allowed"
// @Failure 422 {object} models.APIResponse "Missing reason or invalid status"
// @Router /admin/users/{id} [patch]
func (h *UserHandler) Transition(c *gin.Context) {
	ctx, span := otel.Tracer("").Start(c.Request.Context(), "AdminTransitionUser")
	defer span.End()

	req, ok := bindTransitionRequest(c)
	if !ok {
		return
	}

	actor := middleware.ActorFromContext(c)
	response, err := h.users.Transition(ctx, c.Param("id"), req, actor)
	if err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, response, "Account status updated to "+string(req.Status))
}
