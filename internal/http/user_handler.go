package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vikasdeshmukh63/ecom-backend/internal/domain/dto"
	"github.com/vikasdeshmukh63/ecom-backend/internal/i18n"
	"github.com/vikasdeshmukh63/ecom-backend/internal/middleware"
	"github.com/vikasdeshmukh63/ecom-backend/internal/service"
)

// UserHandler serves /user routes.
type UserHandler struct {
	users service.UserService
	audit *middleware.AsyncLogger
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(users service.UserService, audit *middleware.AsyncLogger) *UserHandler {
	return &UserHandler{users: users, audit: audit}
}

// RegisterRoutes implements RouteGroup.
func (h *UserHandler) RegisterRoutes(rg *gin.RouterGroup, admin gin.HandlerFunc) {
	g := rg.Group("/user")
	g.POST("/new", h.Register)
	g.GET("/all", admin, h.All)
	g.GET("/:id", h.Get)
	g.DELETE("/:id", admin, h.Delete)
}

// Register godoc
// @Summary     Register a user
// @Description Creates the user on first sign-in. Calling it again for a known uid only greets the user.
// @Tags        Users
// @Accept      json
// @Produce     json
// @Param       request body dto.NewUserRequest true "User"
// @Success     200 {object} dto.SuccessResponse "Existing user"
// @Success     201 {object} dto.SuccessResponse "User created"
// @Failure     400 {object} dto.ErrorResponse
// @Router      /api/v1/user/new [post]
func (h *UserHandler) Register(c *gin.Context) {
	req, err := BindJSON[dto.NewUserRequest](c)
	if err != nil {
		writeBindingError(c, err)
		return
	}

	user, created, err := h.users.Register(c.Request.Context(), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	NewResponseBuilder(c).SuccessMessage(status, i18n.SuccessKeyWelcome, user, user.Name)
}

// All godoc
// @Summary     List users
// @Tags        Users
// @Produce     json
// @Param       id query string true "Admin uid"
// @Success     200 {object} dto.SuccessResponse
// @Failure     401 {object} dto.ErrorResponse
// @Failure     403 {object} dto.ErrorResponse
// @Router      /api/v1/user/all [get]
func (h *UserHandler) All(c *gin.Context) {
	users, err := h.users.All(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	NewResponseBuilder(c).SuccessOK(users)
}

// Get godoc
// @Summary     Get a user
// @Tags        Users
// @Produce     json
// @Param       id path string true "User uid"
// @Success     200 {object} dto.SuccessResponse
// @Failure     404 {object} dto.ErrorResponse
// @Router      /api/v1/user/{id} [get]
func (h *UserHandler) Get(c *gin.Context) {
	user, err := h.users.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	NewResponseBuilder(c).SuccessOK(user)
}

// Delete godoc
// @Summary     Delete a user
// @Tags        Users
// @Produce     json
// @Param       id path string true "User uid"
// @Success     200 {object} dto.SuccessResponse{data=dto.DeletedResponse}
// @Failure     404 {object} dto.ErrorResponse
// @Router      /api/v1/user/{id} [delete]
func (h *UserHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if err := h.users.Delete(c.Request.Context(), id); err != nil {
		middleware.AuditLogError(h.audit, c, middleware.ActionUserDelete, "User delete failed", err, map[string]any{"target": id})
		writeServiceError(c, err)
		return
	}
	middleware.AuditLog(h.audit, c, middleware.ActionUserDelete, "User deleted", map[string]any{"target": id})
	NewResponseBuilder(c).SuccessMessage(http.StatusOK, i18n.SuccessKeyUserDeleted, dto.DeletedResponse{ID: id})
}
