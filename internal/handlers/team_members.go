package handlers

import (
	"errors"
	"net/http"

	"github.com/ensia-dev/incubator/db"
	"github.com/ensia-dev/incubator/internal/apperr"
	"github.com/ensia-dev/incubator/internal/models"
	"github.com/ensia-dev/incubator/internal/validation"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CreateTeamMemberRequest struct {
	RoleInTeam string `json:"role_in_team" binding:"required"`
	UserID     uint   `json:"user_id"`
	MemberName string `json:"member_name"`
}

type UpdateTeamMemberRequest struct {
	RoleInTeam string `json:"role_in_team"`
	UserID     uint   `json:"user_id"`
	MemberName string `json:"member_name"`
}

type TeamMemberResponse struct {
	ID         uint   `json:"id"`
	RoleInTeam string `json:"role_in_team"`
	StartupID  uint   `json:"startup_id"`
	UserID     uint   `json:"user_id"`
	MemberName string `json:"member_name"`
}

func newTeamMemberResponse(member models.TeamMember) TeamMemberResponse {
	return TeamMemberResponse{
		ID:         member.ID,
		RoleInTeam: member.RoleInTeam,
		StartupID:  member.StartupID,
		UserID:     member.UserID,
		MemberName: member.User.FullName,
	}
}

func ListTeamMembers(ctx *gin.Context) {
	startup, ok := startupFromPath(ctx)
	if !ok {
		return
	}

	var members []models.TeamMember

	if err := db.DB.Preload("User").Where("startup_id = ?", startup.ID).Find(&members).Error; err != nil {
		internalError(ctx, "Failed to retrieve team members", err)
		return
	}

	response := make([]TeamMemberResponse, 0, len(members))

	for _, member := range members {
		response = append(response, newTeamMemberResponse(member))
	}

	ctx.JSON(http.StatusOK, response)
}

func CreateTeamMember(ctx *gin.Context) {
	startup, ok := startupFromPath(ctx)
	if !ok {
		return
	}

	var req CreateTeamMemberRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	user, appErr := resolveMemberUser(req.UserID, req.MemberName)

	if appErr != nil {
		validationError(ctx, appErr)
		return
	}

	member := models.TeamMember{
		RoleInTeam: req.RoleInTeam,
		StartupID:  startup.ID,
		UserID:     user.ID,
	}

	if appErr := validation.ValidateTeamMembership(db.DB, user, member, 0); appErr != nil {
		validationError(ctx, appErr)
		return
	}

	if err := db.DB.Create(&member).Error; err != nil {
		// Lost a race against a concurrent create; report it the same way
		// the pre-check would have.
		if validation.IsUniqueViolation(err) {
			validationError(ctx, apperr.Newf(apperr.CodeAlreadyTeamMember,
				"%s is already a member of %s", user.FullName, startup.Name))
			return
		}
		internalError(ctx, "Failed to create team member", err)
		return
	}

	member.User = user

	ctx.JSON(http.StatusCreated, newTeamMemberResponse(member))
}

func GetTeamMember(ctx *gin.Context) {
	member, ok := teamMemberFromPath(ctx)
	if !ok {
		return
	}

	ctx.JSON(http.StatusOK, newTeamMemberResponse(member))
}

func UpdateTeamMember(ctx *gin.Context) {
	member, ok := teamMemberFromPath(ctx)
	if !ok {
		return
	}

	var req UpdateTeamMemberRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	user := member.User

	if req.UserID != 0 || req.MemberName != "" {
		resolved, appErr := resolveMemberUser(req.UserID, req.MemberName)
		if appErr != nil {
			validationError(ctx, appErr)
			return
		}
		user = resolved
		member.UserID = resolved.ID
		// Replace the preloaded association too, or Save re-syncs the
		// foreign key from the stale User and drops the change.
		member.User = resolved
	}

	if req.RoleInTeam != "" {
		member.RoleInTeam = req.RoleInTeam
	}

	if appErr := validation.ValidateTeamMembership(db.DB, user, member, member.ID); appErr != nil {
		validationError(ctx, appErr)
		return
	}

	if err := db.DB.Save(&member).Error; err != nil {
		if validation.IsUniqueViolation(err) {
			validationError(ctx, apperr.Newf(apperr.CodeAlreadyTeamMember,
				"%s is already a member of this startup", user.FullName))
			return
		}
		internalError(ctx, "Failed to update team member", err)
		return
	}

	member.User = user

	ctx.JSON(http.StatusOK, newTeamMemberResponse(member))
}

func DeleteTeamMember(ctx *gin.Context) {
	member, ok := teamMemberFromPath(ctx)
	if !ok {
		return
	}

	if err := db.DB.Delete(&member).Error; err != nil {
		internalError(ctx, "Failed to delete team member", err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// resolveMemberUser turns either a user id or a human name into exactly one
// user. Name lookups fail when no user or more than one user carries the
// name.
func resolveMemberUser(userID uint, memberName string) (models.User, *apperr.Error) {
	var user models.User

	if userID != 0 {
		err := db.DB.Preload("Role").First(&user, userID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, apperr.Newf(apperr.CodeUserNotFound, "User with ID %d not found", userID)
		}
		if err != nil {
			return models.User{}, apperr.New(apperr.CodeInternal, "Internal server error")
		}
		return user, nil
	}

	if memberName == "" {
		return models.User{}, apperr.New(apperr.CodeUserNotFound, "User ID is required")
	}

	var matches []models.User

	if err := db.DB.Preload("Role").Where("full_name = ?", memberName).Limit(2).Find(&matches).Error; err != nil {
		return models.User{}, apperr.New(apperr.CodeInternal, "Internal server error")
	}

	switch len(matches) {
	case 0:
		return models.User{}, apperr.Newf(apperr.CodeUserNotFound, "User with name '%s' not found", memberName)
	case 1:
		return matches[0], nil
	default:
		return models.User{}, apperr.Newf(apperr.CodeMultipleUsersFound, "Multiple users with name '%s' found", memberName)
	}
}

func startupFromPath(ctx *gin.Context) (models.Startup, bool) {
	var startup models.Startup

	if err := db.DB.First(&startup, ctx.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			notFound(ctx, "Startup not found")
		} else {
			internalError(ctx, "Failed to retrieve startup", err)
		}
		return models.Startup{}, false
	}

	return startup, true
}

func teamMemberFromPath(ctx *gin.Context) (models.TeamMember, bool) {
	startup, ok := startupFromPath(ctx)
	if !ok {
		return models.TeamMember{}, false
	}

	var member models.TeamMember

	err := db.DB.Preload("User.Role").
		Where("id = ? AND startup_id = ?", ctx.Param("member_id"), startup.ID).
		First(&member).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			notFound(ctx, "Team member not found")
		} else {
			internalError(ctx, "Failed to retrieve team member", err)
		}
		return models.TeamMember{}, false
	}

	return member, true
}
