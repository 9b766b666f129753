package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/rajapi-cop/projecthub/internal/middleware"
	"github.com/rajapi-cop/projecthub/internal/services"
	"github.com/rajapi-cop/projecthub/pkg/response"
)

type MemberHandler struct {
	memberService *services.MemberService
}

func NewMemberHandler(memberService *services.MemberService) *MemberHandler {
	return &MemberHandler{memberService: memberService}
}

// List returns the members of a project
// GET /api/projects/:id/members
func (h *MemberHandler) List(c *gin.Context) {
	projectID, ok := pathID(c, "id")
	if !ok {
		return
	}

	members, err := h.memberService.List(projectID, middleware.GetUserID(c))
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, members)
}

// Add adds a user to a project
// POST /api/projects/:id/members
func (h *MemberHandler) Add(c *gin.Context) {
	projectID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req services.AddMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	member, err := h.memberService.Add(projectID, &req, middleware.GetUserID(c))
	if err != nil {
		writeError(c, err)
		return
	}

	response.Created(c, member)
}

// Remove removes a member from a project
// DELETE /api/projects/:id/members/:userId
func (h *MemberHandler) Remove(c *gin.Context) {
	projectID, ok := pathID(c, "id")
	if !ok {
		return
	}
	memberUserID, ok := pathID(c, "userId")
	if !ok {
		return
	}

	if err := h.memberService.Remove(projectID, memberUserID, middleware.GetUserID(c)); err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, gin.H{"message": "member removed successfully"})
}
