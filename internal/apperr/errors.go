// Package apperr defines the structured errors returned to API callers: a
// machine-readable code plus a human message. Validation and authorization
// failures carry a specific code; persistence failures are surfaced with a
// generic internal code while the detail is logged server-side.
package apperr

import "fmt"

type Code string

const (
	CodeNotFound             Code = "not_found"
	CodeInvalidRequest       Code = "invalid_request"
	CodeAuthRequired         Code = "authentication_required"
	CodeAdminRequired        Code = "admin_required"
	CodePermissionDenied     Code = "permission_denied"
	CodeNotStudent           Code = "not_student"
	CodeAlreadyTeamLeader    Code = "already_team_leader"
	CodeAlreadyTeamMember    Code = "already_team_member"
	CodeStartupHasLeader     Code = "startup_has_leader"
	CodeInvalidTimeRange     Code = "invalid_time_range"
	CodeAmbiguousLinkage     Code = "ambiguous_linkage"
	CodeInsufficientResource Code = "insufficient_resource"
	CodeDuplicateVoteOrScore Code = "duplicate_vote_or_score"
	CodeDuplicateProjectID   Code = "duplicate_project_id"
	CodeInvalidStatus        Code = "invalid_status"
	CodeUserNotFound         Code = "user_not_found"
	CodeMultipleUsersFound   Code = "multiple_users_found"
	CodeInternal             Code = "internal_error"
)

type Error struct {
	Code    Code
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

func Newf(code Code, format string, args ...interface{}) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}
