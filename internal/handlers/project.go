package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/rajapi-cop/projecthub/internal/middleware"
	"github.com/rajapi-cop/projecthub/internal/services"
	"github.com/rajapi-cop/projecthub/pkg/response"
)

type ProjectHandler struct {
	projectService *services.ProjectService
}

func NewProjectHandler(projectService *services.ProjectService) *ProjectHandler {
	return &ProjectHandler{projectService: projectService}
}

// List returns paginated projects visible to the caller
// GET /api/projects
func (h *ProjectHandler) List(c *gin.Context) {
	var req services.ProjectListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	resp, err := h.projectService.List(&req, middleware.GetUserID(c), middleware.IsAdmin(c))
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, resp)
}

// Get returns a project with its members, tasks and documents
// GET /api/projects/:id
func (h *ProjectHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	detail, err := h.projectService.Get(id, middleware.GetUserID(c), middleware.IsAdmin(c))
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, detail)
}

// Create creates a new project
// POST /api/projects
func (h *ProjectHandler) Create(c *gin.Context) {
	var req services.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	project, err := h.projectService.Create(&req, middleware.GetUserID(c))
	if err != nil {
		writeError(c, err)
		return
	}

	response.Created(c, project)
}

// Update applies a partial update to a project
// PUT /api/projects/:id
func (h *ProjectHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req services.UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	project, changes, err := h.projectService.Update(id, &req, middleware.GetUserID(c))
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, gin.H{
		"project": project,
		"changes": changes,
	})
}

// Delete deletes a project and its sub-entities
// DELETE /api/projects/:id
func (h *ProjectHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.projectService.Delete(id, middleware.GetUserID(c)); err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, gin.H{"message": "project deleted successfully"})
}
