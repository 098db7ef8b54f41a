package handlers

import (
	"errors"
	"net/http"
	"os"
	"strings"

	"github.com/ensia-dev/incubator/db"
	"github.com/ensia-dev/incubator/internal/auth"
	"github.com/ensia-dev/incubator/internal/models"
	"github.com/ensia-dev/incubator/internal/utils"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type RegisterRequest struct {
	FullName string `json:"full_name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

var (
	Domain = os.Getenv("DOMAIN")
)

// Register is the public signup endpoint. New accounts always get the
// student role; other roles are assigned by admins through the user
// endpoints.
func Register(ctx *gin.Context) {
	var req RegisterRequest

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

	var studentRole models.Role

	if err := db.DB.Where("name = ?", models.RoleStudent).First(&studentRole).Error; err != nil {
		internalError(ctx, "Student role not found", err)
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
		RoleID:       studentRole.ID,
		IsActive:     true,
	}

	if err := db.DB.Create(&user).Error; err != nil {
		internalError(ctx, "Failed to create user", err)
		return
	}

	user.Role = studentRole

	ctx.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "User registered successfully",
		"user":    newUserResponse(user),
	})
}

func Login(ctx *gin.Context) {
	var req LoginRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	var user models.User

	err := db.DB.Preload("Role").Where("email = ?", req.Email).First(&user).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid email or password"})
			return
		}
		internalError(ctx, "Database error when fetching user", err)
		return
	}

	// Constant-time comparison via bcrypt; plaintext is never stored.
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid email or password"})
		return
	}

	token, err := auth.GenerateJWT(user.ID, user.Email, user.Role.Name)

	if err != nil {
		internalError(ctx, "Failed to generate JWT", err)
		return
	}

	http.SetCookie(ctx.Writer, &http.Cookie{
		Name:     "token",
		Value:    token,
		Path:     "/",
		Domain:   Domain,
		MaxAge:   60 * 60 * 24 * 7,
		Secure:   true,
		HttpOnly: true,
		SameSite: http.SameSiteNoneMode,
	})

	ctx.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  newUserResponse(user),
	})
}

func Me(ctx *gin.Context) {
	actor, err := utils.RequireCurrentActor(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var user models.User

	if err := db.DB.Preload("Role").First(&user, actor.ID).Error; err != nil {
		internalError(ctx, "Failed to fetch user", err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"user": newUserResponse(user)})
}
