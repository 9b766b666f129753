package handlers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rajapi-cop/projecthub/internal/services"
	"github.com/rajapi-cop/projecthub/pkg/response"
)

// writeError maps service error kinds to HTTP responses.
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrProjectNotFound),
		errors.Is(err, services.ErrTaskNotFound),
		errors.Is(err, services.ErrDocumentNotFound),
		errors.Is(err, services.ErrMemberNotFound),
		errors.Is(err, services.ErrUserNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, services.ErrDuplicateMember),
		errors.Is(err, services.ErrOwnerImmutable):
		response.Conflict(c, err.Error())
	case errors.Is(err, services.ErrNotProjectMember),
		errors.Is(err, services.ErrPermissionDenied):
		response.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrVersionOutOfRange),
		errors.Is(err, services.ErrInvalidDate):
		response.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrInvalidCredentials):
		response.Unauthorized(c, err.Error())
	case errors.Is(err, services.ErrUserInactive):
		response.Forbidden(c, err.Error())
	default:
		response.ServerError(c, err.Error())
	}
}

// pathID parses a numeric path parameter, writing a 400 on failure.
func pathID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid "+name)
		return 0, false
	}
	return uint(id), true
}
