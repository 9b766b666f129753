package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/rajapi-cop/projecthub/internal/middleware"
	"github.com/rajapi-cop/projecthub/internal/services"
	"github.com/rajapi-cop/projecthub/pkg/response"
)

type DocumentHandler struct {
	documentService *services.DocumentService
}

func NewDocumentHandler(documentService *services.DocumentService) *DocumentHandler {
	return &DocumentHandler{documentService: documentService}
}

// List returns a project's documents
// GET /api/projects/:id/documents
func (h *DocumentHandler) List(c *gin.Context) {
	projectID, ok := pathID(c, "id")
	if !ok {
		return
	}

	documents, err := h.documentService.List(projectID, middleware.GetUserID(c))
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, documents)
}

// Add uploads a document to a project
// POST /api/projects/:id/documents
func (h *DocumentHandler) Add(c *gin.Context) {
	projectID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req services.AddDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	doc, err := h.documentService.Add(projectID, &req, middleware.GetUserID(c))
	if err != nil {
		writeError(c, err)
		return
	}

	response.Created(c, doc)
}

// Update edits document metadata
// PUT /api/projects/:id/documents/:docId
func (h *DocumentHandler) Update(c *gin.Context) {
	projectID, ok := pathID(c, "id")
	if !ok {
		return
	}
	documentID, ok := pathID(c, "docId")
	if !ok {
		return
	}

	var req services.UpdateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	doc, err := h.documentService.Update(projectID, documentID, &req, middleware.GetUserID(c))
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, doc)
}

// Remove deletes a document
// DELETE /api/projects/:id/documents/:docId
func (h *DocumentHandler) Remove(c *gin.Context) {
	projectID, ok := pathID(c, "id")
	if !ok {
		return
	}
	documentID, ok := pathID(c, "docId")
	if !ok {
		return
	}

	if err := h.documentService.Remove(projectID, documentID, middleware.GetUserID(c)); err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, gin.H{"message": "document removed successfully"})
}
