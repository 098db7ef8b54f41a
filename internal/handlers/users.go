package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/ensia-dev/incubator/db"
	"github.com/ensia-dev/incubator/internal/authz"
	"github.com/ensia-dev/incubator/internal/models"
	"github.com/ensia-dev/incubator/internal/utils"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type CreateUserRequest struct {
	FullName string `json:"full_name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	RoleID   uint   `json:"role_id" binding:"required"`
	IsStaff  bool   `json:"is_staff"`
}

type UpdateUserRequest struct {
	FullName string `json:"full_name"`
	Email    string `json:"email" binding:"omitempty,email"`
	Password string `json:"password" binding:"omitempty,min=8"`
	RoleID   uint   `json:"role_id"`
	IsActive *bool  `json:"is_active"`
}

type UserResponse struct {
	ID       uint   `json:"id"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	RoleID   uint   `json:"role_id"`
	RoleName string `json:"role_name"`
	IsActive bool   `json:"is_active"`
	IsStaff  bool   `json:"is_staff"`
}

func newUserResponse(user models.User) UserResponse {
	return UserResponse{
		ID:       user.ID,
		FullName: user.FullName,
		Email:    user.Email,
		RoleID:   user.RoleID,
		RoleName: user.Role.Name,
		IsActive: user.IsActive,
		IsStaff:  user.IsStaff,
	}
}

func ListUsers(ctx *gin.Context) {
	query := db.DB.Preload("Role")

	if name := ctx.Query("full_name"); name != "" {
		query = query.Where("full_name LIKE ?", "%"+name+"%")
	}

	var users []models.User

	if err := query.Find(&users).Error; err != nil {
		internalError(ctx, "Failed to retrieve users", err)
		return
	}

	response := make([]UserResponse, 0, len(users))

	for _, user := range users {
		response = append(response, newUserResponse(user))
	}

	ctx.JSON(http.StatusOK, response)
}

func CreateUser(ctx *gin.Context) {
	if !requireAdmin(ctx) {
		return
	}

	var req CreateUserRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	var role models.Role

	if err := db.DB.First(&role, req.RoleID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Role not found"})
		} else {
			internalError(ctx, "Failed to retrieve role", err)
		}
		return
	}

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
		IsStaff:      req.IsStaff,
	}

	if err := db.DB.Create(&user).Error; err != nil {
		internalError(ctx, "Failed to create user", err)
		return
	}

	user.Role = role

	ctx.JSON(http.StatusCreated, newUserResponse(user))
}

func GetUser(ctx *gin.Context) {
	var user models.User

	if err := db.DB.Preload("Role").First(&user, ctx.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			notFound(ctx, "User not found")
		} else {
			internalError(ctx, "Failed to retrieve user", err)
		}
		return
	}

	ctx.JSON(http.StatusOK, newUserResponse(user))
}

func UpdateUser(ctx *gin.Context) {
	var user models.User

	if err := db.DB.Preload("Role").First(&user, ctx.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			notFound(ctx, "User not found")
		} else {
			internalError(ctx, "Failed to retrieve user", err)
		}
		return
	}

	if !requireOwnerOrAdmin(ctx, user.ID) {
		return
	}

	var req UpdateUserRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	updates := make(map[string]interface{})

	if req.FullName != "" {
		updates["full_name"] = strings.TrimSpace(req.FullName)
	}

	if req.Email != "" {
		newEmail := strings.ToLower(strings.TrimSpace(req.Email))

		if newEmail != user.Email {
			var existing models.User
			err := db.DB.Where("email = ? AND id <> ?", newEmail, user.ID).First(&existing).Error
			if err == nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": "Email already exists"})
				return
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				internalError(ctx, "Database error when checking existing email", err)
				return
			}
		}

		updates["email"] = newEmail
	}

	if req.Password != "" {
		passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			internalError(ctx, "Failed to hash password", err)
			return
		}
		updates["password_hash"] = string(passwordHash)
	}

	// Role and active flag are mutable only by admins.
	actor := utils.GetCurrentActor(ctx)

	if req.RoleID != 0 && req.RoleID != user.RoleID {
		if !authz.IsAdmin(actor) {
			ctx.JSON(http.StatusForbidden, gin.H{"error": "Admin required", "code": "admin_required"})
			return
		}

		var role models.Role
		if err := db.DB.First(&role, req.RoleID).Error; err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Role not found"})
			return
		}
		updates["role_id"] = role.ID
	}

	if req.IsActive != nil {
		if !authz.IsAdmin(actor) {
			ctx.JSON(http.StatusForbidden, gin.H{"error": "Admin required", "code": "admin_required"})
			return
		}
		updates["is_active"] = *req.IsActive
	}

	if len(updates) == 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "No valid fields to update"})
		return
	}

	if err := db.DB.Model(&user).Updates(updates).Error; err != nil {
		internalError(ctx, "Failed to update user", err)
		return
	}

	if err := db.DB.Preload("Role").First(&user, user.ID).Error; err != nil {
		internalError(ctx, "Failed to refresh user", err)
		return
	}

	ctx.JSON(http.StatusOK, newUserResponse(user))
}

func DeleteUser(ctx *gin.Context) {
	if !requireAdmin(ctx) {
		return
	}

	var user models.User

	if err := db.DB.First(&user, ctx.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			notFound(ctx, "User not found")
		} else {
			internalError(ctx, "Failed to retrieve user", err)
		}
		return
	}

	if err := db.DB.Delete(&user).Error; err != nil {
		internalError(ctx, "Failed to delete user", err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

func ListRoles(ctx *gin.Context) {
	var roles []models.Role

	if err := db.DB.Order("id").Find(&roles).Error; err != nil {
		internalError(ctx, "Failed to retrieve roles", err)
		return
	}

	ctx.JSON(http.StatusOK, roles)
}
