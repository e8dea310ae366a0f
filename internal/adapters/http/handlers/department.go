package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/console-client/internal/adapters/http/dto"
	"github.com/jsamuelsen/console-client/internal/ports"
)

// DepartmentHandler serves /department.
type DepartmentHandler struct {
	departments ports.DepartmentStore
}

// NewDepartmentHandler creates a DepartmentHandler.
func NewDepartmentHandler(departments ports.DepartmentStore) *DepartmentHandler {
	return &DepartmentHandler{departments: departments}
}

// List handles GET /department/list.
func (h *DepartmentHandler) List(c *gin.Context) {
	q, ok := bindList(c)
	if !ok {
		return
	}

	page, err := h.departments.List(c.Request.Context(), q.ToPort())
	respond(c, page, err)
}

// Add handles POST /department/add.
func (h *DepartmentHandler) Add(c *gin.Context) {
	var req dto.DepartmentRequest
	if !bindJSON(c, &req) {
		return
	}

	dept, err := h.departments.Add(c.Request.Context(), req.ToDomain())
	respond(c, dept, err)
}

// Update handles PUT /department/update.
func (h *DepartmentHandler) Update(c *gin.Context) {
	var req dto.DepartmentUpdateRequest
	if !bindJSON(c, &req) {
		return
	}

	dept, err := h.departments.Update(c.Request.Context(), req.ToDomain())
	respond(c, dept, err)
}

// Top handles POST /department/top. The body is optional; without one every
// department is a candidate parent.
func (h *DepartmentHandler) Top(c *gin.Context) {
	var req dto.TopRequest
	if c.Request.ContentLength != 0 && !bindJSON(c, &req) {
		return
	}

	depts, err := h.departments.Top(c.Request.Context(), req.ID)
	respond(c, depts, err)
}

// Delete handles DELETE /department/delete?ids=...; data is true on success.
func (h *DepartmentHandler) Delete(c *gin.Context) {
	ids, ok := bindIDs(c)
	if !ok {
		return
	}

	respond(c, true, h.departments.Delete(c.Request.Context(), ids))
}

// RegisterRoutes mounts the handler on rg.
func (h *DepartmentHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/department/list", h.List)
	rg.POST("/department/add", h.Add)
	rg.PUT("/department/update", h.Update)
	rg.POST("/department/top", h.Top)
	rg.DELETE("/department/delete", h.Delete)
}
