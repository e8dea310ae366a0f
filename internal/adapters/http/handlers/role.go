package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/console-client/internal/adapters/http/dto"
	"github.com/jsamuelsen/console-client/internal/ports"
)

// RoleHandler serves /role.
type RoleHandler struct {
	roles ports.RoleStore
}

// NewRoleHandler creates a RoleHandler.
func NewRoleHandler(roles ports.RoleStore) *RoleHandler {
	return &RoleHandler{roles: roles}
}

// List handles GET /role/list.
func (h *RoleHandler) List(c *gin.Context) {
	q, ok := bindList(c)
	if !ok {
		return
	}

	page, err := h.roles.List(c.Request.Context(), q.ToPort())
	respond(c, page, err)
}

// Add handles POST /role/add.
func (h *RoleHandler) Add(c *gin.Context) {
	var req dto.RoleRequest
	if !bindJSON(c, &req) {
		return
	}

	role, err := h.roles.Add(c.Request.Context(), req.ToDomain())
	respond(c, role, err)
}

// Update handles PUT /role/update.
func (h *RoleHandler) Update(c *gin.Context) {
	var req dto.RoleUpdateRequest
	if !bindJSON(c, &req) {
		return
	}

	role, err := h.roles.Update(c.Request.Context(), req.ToDomain())
	respond(c, role, err)
}

// Delete handles DELETE /role/delete?ids=...; data is true on success.
func (h *RoleHandler) Delete(c *gin.Context) {
	ids, ok := bindIDs(c)
	if !ok {
		return
	}

	respond(c, true, h.roles.Delete(c.Request.Context(), ids))
}

// RegisterRoutes mounts the handler on rg.
func (h *RoleHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/role/list", h.List)
	rg.POST("/role/add", h.Add)
	rg.PUT("/role/update", h.Update)
	rg.DELETE("/role/delete", h.Delete)
}
