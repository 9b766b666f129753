package services

import (
	"errors"

	"github.com/rajapi-cop/projecthub/internal/versioning"
)

// Core error kinds surfaced to the HTTP layer. Handlers map these to status
// codes; the services themselves are transport-agnostic.
var (
	ErrProjectNotFound  = errors.New("project not found")
	ErrTaskNotFound     = errors.New("task not found")
	ErrDocumentNotFound = errors.New("document not found")
	ErrMemberNotFound   = errors.New("member not found")
	ErrUserNotFound     = errors.New("user not found")

	// ErrVersionOutOfRange: restore target exceeds the project's record count.
	ErrVersionOutOfRange = versioning.ErrVersionOutOfRange

	// Conflict conditions.
	ErrDuplicateMember = errors.New("user is already a member of this project")
	ErrOwnerImmutable  = errors.New("the project owner cannot be removed")

	// Permission conditions.
	ErrNotProjectMember = errors.New("user is not a member of this project")
	ErrPermissionDenied = errors.New("insufficient project role for this operation")

	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUserInactive       = errors.New("user account is disabled")

	ErrInvalidDate = errors.New("invalid date, expected YYYY-MM-DD")
)
