package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"venus-recipe/apperrors"
	"venus-recipe/middleware"
	"venus-recipe/models"
	"venus-recipe/services"

	"github.com/gin-gonic/gin"
)

// UserRepository is the account storage the auth handlers need
type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User) error
	UserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUser(ctx context.Context, id uint) (*models.User, error)
}

// Deps wires the API to its services
type Deps struct {
	Generator *services.ScheduleGenerator
	Stats     *services.StatisticsAggregator
	Recipes   *services.RecipeService
	Catalog   *services.CatalogService
	Users     UserRepository
	Auth      *middleware.Auth
	Logger    *slog.Logger
}

// API handles every /api request
type API struct {
	generator *services.ScheduleGenerator
	stats     *services.StatisticsAggregator
	recipes   *services.RecipeService
	catalog   *services.CatalogService
	users     UserRepository
	auth      *middleware.Auth
	errors    *apperrors.Handler
	log       *slog.Logger
}

func NewAPI(d Deps) *API {
	return &API{
		generator: d.Generator,
		stats:     d.Stats,
		recipes:   d.Recipes,
		catalog:   d.Catalog,
		users:     d.Users,
		auth:      d.Auth,
		errors:    apperrors.NewHandler(d.Logger),
		log:       d.Logger,
	}
}

// Auth exposes the token middleware for route registration
func (h *API) Auth() *middleware.Auth {
	return h.auth
}

// respondError logs err and writes the matching status. Internal details
// never reach the client.
func (h *API) respondError(c *gin.Context, err error) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		appErr.WithContext("request_id", middleware.GetRequestID(c))
	}
	h.errors.Handle(c.Request.Context(), err)

	if appErr == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Internal server error"})
		return
	}
	status := appErr.HTTPStatus()
	if status >= http.StatusInternalServerError {
		c.JSON(status, gin.H{"success": false, "error": "Internal server error"})
		return
	}
	body := gin.H{"success": false, "error": appErr.Message}
	if len(appErr.Errors) > 0 {
		body["errors"] = appErr.Errors
	}
	c.JSON(status, body)
}

// bind decodes the JSON body, answering 400 itself on failure
func (h *API) bind(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		h.respondError(c, services.ValidationError("Invalid request body", err))
		return false
	}
	return true
}

// idParam reads a positive integer path parameter
func (h *API) idParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		h.respondError(c, apperrors.NewValidationError("Invalid "+name, name+" must be a positive integer"))
		return 0, false
	}
	return uint(id), true
}

// optionalID reads an optional positive integer query parameter
func (h *API) optionalID(c *gin.Context, name string) (uint, bool) {
	raw := c.Query(name)
	if raw == "" {
		return 0, true
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		h.respondError(c, apperrors.NewValidationError("Invalid "+name, name+" must be a positive integer"))
		return 0, false
	}
	return uint(id), true
}
