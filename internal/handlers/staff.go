package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/ensia-dev/incubator/db"
	"github.com/ensia-dev/incubator/internal/models"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Mentors and trainers are plain users viewed through their role. These
// handlers scope the user endpoints to a single role name.

type CreateStaffRequest struct {
	FullName string `json:"full_name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

func ListMentors(ctx *gin.Context)  { listUsersByRole(ctx, models.RoleMentor) }
func ListTrainers(ctx *gin.Context) { listUsersByRole(ctx, models.RoleTrainer) }

func CreateMentor(ctx *gin.Context)  { createUserWithRole(ctx, models.RoleMentor) }
func CreateTrainer(ctx *gin.Context) { createUserWithRole(ctx, models.RoleTrainer) }

func MentorDetail(ctx *gin.Context)  { staffDetail(ctx, models.RoleMentor) }
func TrainerDetail(ctx *gin.Context) { staffDetail(ctx, models.RoleTrainer) }

func listUsersByRole(ctx *gin.Context, roleName string) {
	role, ok := roleByName(ctx, roleName)
	if !ok {
		return
	}

	var users []models.User

	if err := db.DB.Preload("Role").Where("role_id = ?", role.ID).Find(&users).Error; err != nil {
		internalError(ctx, "Failed to retrieve users", err)
		return
	}

	response := make([]UserResponse, 0, len(users))

	for _, user := range users {
		response = append(response, newUserResponse(user))
	}

	ctx.JSON(http.StatusOK, response)
}

func createUserWithRole(ctx *gin.Context, roleName string) {
	if !requireAdmin(ctx) {
		return
	}

	role, ok := roleByName(ctx, roleName)
	if !ok {
		return
	}

	var req CreateStaffRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	var existing models.User

	err := db.DB.Where("email = ?", req.Email).First(&existing).Error

	if err == nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Email already exists"})
		return
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		internalError(ctx, "Database error when checking existing user", err)
		return
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)

	if err != nil {
		internalError(ctx, "Failed to hash password", err)
		return
	}

	user := models.User{
		FullName:     req.FullName,
		Email:        req.Email,
		PasswordHash: string(passwordHash),
		RoleID:       role.ID,
		IsActive:     true,
	}

	if err := db.DB.Create(&user).Error; err != nil {
		internalError(ctx, "Failed to create user", err)
		return
	}

	user.Role = role

	ctx.JSON(http.StatusCreated, newUserResponse(user))
}

// staffDetail handles GET, PUT and DELETE for one user scoped to a role. The
// role is pinned: updates cannot move the user to another role through this
// endpoint.
func staffDetail(ctx *gin.Context, roleName string) {
	role, ok := roleByName(ctx, roleName)
	if !ok {
		return
	}

	var user models.User

	if err := db.DB.Preload("Role").Where("id = ? AND role_id = ?", ctx.Param("id"), role.ID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			notFound(ctx, capitalize(roleName)+" not found")
		} else {
			internalError(ctx, "Failed to retrieve user", err)
		}
		return
	}

	switch ctx.Request.Method {
	case http.MethodGet:
		ctx.JSON(http.StatusOK, newUserResponse(user))

	case http.MethodPut:
		if !requireAdmin(ctx) {
			return
		}

		var req struct {
			FullName string `json:"full_name"`
			Email    string `json:"email" binding:"omitempty,email"`
		}

		if err := ctx.BindJSON(&req); err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}

		updates := make(map[string]interface{})

		if req.FullName != "" {
			updates["full_name"] = strings.TrimSpace(req.FullName)
		}

		if req.Email != "" {
			updates["email"] = strings.ToLower(strings.TrimSpace(req.Email))
		}

		if len(updates) > 0 {
			if err := db.DB.Model(&user).Updates(updates).Error; err != nil {
				internalError(ctx, "Failed to update user", err)
				return
			}
		}

		ctx.JSON(http.StatusOK, newUserResponse(user))

	case http.MethodDelete:
		if !requireAdmin(ctx) {
			return
		}

		if err := db.DB.Delete(&user).Error; err != nil {
			internalError(ctx, "Failed to delete user", err)
			return
		}

		ctx.Status(http.StatusNoContent)
	}
}

func roleByName(ctx *gin.Context, name string) (models.Role, bool) {
	var role models.Role

	if err := db.DB.Where("name = ?", name).First(&role).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			notFound(ctx, capitalize(name)+" role not found")
		} else {
			internalError(ctx, "Failed to retrieve role", err)
		}
		return models.Role{}, false
	}

	return role, true
}
