package handlers

import (
	"log"
	"net/http"
	"strings"

	"github.com/ensia-dev/incubator/internal/apperr"
	"github.com/ensia-dev/incubator/internal/authz"
	"github.com/ensia-dev/incubator/internal/utils"
	"github.com/gin-gonic/gin"
)

func errorResponse(ctx *gin.Context, status int, err *apperr.Error) {
	ctx.JSON(status, gin.H{"error": err.Message, "code": err.Code})
}

func validationError(ctx *gin.Context, err *apperr.Error) {
	if err.Code == apperr.CodeInternal {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Message, "code": err.Code})
		return
	}
	errorResponse(ctx, http.StatusBadRequest, err)
}

func notFound(ctx *gin.Context, message string) {
	errorResponse(ctx, http.StatusNotFound, apperr.New(apperr.CodeNotFound, message))
}

func internalError(ctx *gin.Context, context string, err error) {
	log.Printf("%s: %v", context, err)
	errorResponse(ctx, http.StatusInternalServerError, apperr.New(apperr.CodeInternal, "Internal server error"))
}

// capitalize upper-cases the first rune for display names.
func capitalize(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	return strings.ToUpper(string(r[0])) + string(r[1:])
}

// requireAdmin aborts with 401 for anonymous callers and 403 for
// authenticated non-admins.
func requireAdmin(ctx *gin.Context) bool {
	actor := utils.GetCurrentActor(ctx)

	if !actor.Authenticated {
		errorResponse(ctx, http.StatusUnauthorized, apperr.New(apperr.CodeAuthRequired, "Authentication required"))
		return false
	}

	if !authz.IsAdmin(actor) {
		errorResponse(ctx, http.StatusForbidden, apperr.New(apperr.CodeAdminRequired, "Admin required"))
		return false
	}

	return true
}

// requireOwnerOrAdmin aborts unless the caller owns the target or is an
// admin.
func requireOwnerOrAdmin(ctx *gin.Context, ownerID uint) bool {
	actor := utils.GetCurrentActor(ctx)

	if !actor.Authenticated {
		errorResponse(ctx, http.StatusUnauthorized, apperr.New(apperr.CodeAuthRequired, "Authentication required"))
		return false
	}

	if !authz.IsOwner(actor, ownerID) && !authz.IsAdmin(actor) {
		errorResponse(ctx, http.StatusForbidden, apperr.New(apperr.CodePermissionDenied, "Permission denied"))
		return false
	}

	return true
}
