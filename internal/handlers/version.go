package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/rajapi-cop/projecthub/internal/middleware"
	"github.com/rajapi-cop/projecthub/internal/services"
	"github.com/rajapi-cop/projecthub/pkg/response"
)

type VersionHandler struct {
	versionService *services.VersionService
}

func NewVersionHandler(versionService *services.VersionService) *VersionHandler {
	return &VersionHandler{versionService: versionService}
}

// List returns a project's full version history
// GET /api/projects/:id/versions
func (h *VersionHandler) List(c *gin.Context) {
	projectID, ok := pathID(c, "id")
	if !ok {
		return
	}

	entries, err := h.versionService.List(projectID, middleware.GetUserID(c), middleware.IsAdmin(c))
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, gin.H{
		"project_id": projectID,
		"count":      len(entries),
		"versions":   entries,
	})
}

// Restore rolls the project's scalar state back to a prior version by
// appending a new restore record
// POST /api/projects/:id/versions/restore
func (h *VersionHandler) Restore(c *gin.Context) {
	projectID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req services.RestoreVersionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	project, err := h.versionService.Restore(projectID, req.Version, middleware.GetUserID(c))
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, gin.H{
		"message": "project restored",
		"version": req.Version,
		"project": project,
	})
}
