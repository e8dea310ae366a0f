package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/console-client/internal/adapters/http/dto"
	"github.com/jsamuelsen/console-client/internal/adapters/http/middleware"
	"github.com/jsamuelsen/console-client/internal/ports"
)

// UserHandler serves /user. Every route needs a bearer token.
type UserHandler struct {
	users ports.UserStore
}

// NewUserHandler creates a UserHandler.
func NewUserHandler(users ports.UserStore) *UserHandler {
	return &UserHandler{users: users}
}

// Info handles GET /user/info and returns the token owner.
func (h *UserHandler) Info(c *gin.Context) {
	dto.OK(c, middleware.CurrentUser(c))
}

// Add handles POST /user/add.
func (h *UserHandler) Add(c *gin.Context) {
	var req dto.UserAddRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.users.Add(c.Request.Context(), req.ToDomain())
	respond(c, user, err)
}

// List handles GET /user/list.
func (h *UserHandler) List(c *gin.Context) {
	q, ok := bindList(c)
	if !ok {
		return
	}

	page, err := h.users.List(c.Request.Context(), q.ToPort())
	respond(c, page, err)
}

// RegisterRoutes mounts the handler on rg. Adding users requires adminRole.
func (h *UserHandler) RegisterRoutes(rg *gin.RouterGroup, adminRole string) {
	rg.GET("/user/info", h.Info)
	rg.GET("/user/list", h.List)
	rg.POST("/user/add", middleware.RequireRole(adminRole), h.Add)
}
