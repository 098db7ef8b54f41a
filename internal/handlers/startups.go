package handlers

import (
	"errors"
	"net/http"

	"github.com/ensia-dev/incubator/db"
	"github.com/ensia-dev/incubator/internal/apperr"
	"github.com/ensia-dev/incubator/internal/models"
	"github.com/ensia-dev/incubator/internal/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CreateStartupRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	StageID     *uint  `json:"stage_id"`
	UserID      *uint  `json:"user_id"`
}

type UpdateStartupRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Status      string  `json:"status"`
	StageID     *uint   `json:"stage_id"`
}

func ListStartups(ctx *gin.Context) {
	query := db.DB.Order("id")

	if status := ctx.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var startups []models.Startup

	if err := query.Find(&startups).Error; err != nil {
		internalError(ctx, "Failed to retrieve startups", err)
		return
	}

	ctx.JSON(http.StatusOK, startups)
}

func CreateStartup(ctx *gin.Context) {
	var req CreateStartupRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	startup := models.Startup{
		Name:        req.Name,
		Description: req.Description,
		Status:      models.StatusPending,
		StageID:     req.StageID,
		UserID:      req.UserID,
	}

	// An authenticated caller owns the startup they create.
	if actor := utils.GetCurrentActor(ctx); actor.Authenticated && startup.UserID == nil {
		id := actor.ID
		startup.UserID = &id
	}

	if err := db.DB.Create(&startup).Error; err != nil {
		internalError(ctx, "Failed to create startup", err)
		return
	}

	ctx.JSON(http.StatusCreated, startup)
}

func GetStartup(ctx *gin.Context) {
	var startup models.Startup

	if err := db.DB.First(&startup, ctx.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			notFound(ctx, "Startup not found")
		} else {
			internalError(ctx, "Failed to retrieve startup", err)
		}
		return
	}

	ctx.JSON(http.StatusOK, startup)
}

func UpdateStartup(ctx *gin.Context) {
	var startup models.Startup

	if err := db.DB.First(&startup, ctx.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			notFound(ctx, "Startup not found")
		} else {
			internalError(ctx, "Failed to retrieve startup", err)
		}
		return
	}

	var ownerID uint
	if startup.UserID != nil {
		ownerID = *startup.UserID
	}

	if !requireOwnerOrAdmin(ctx, ownerID) {
		return
	}

	var req UpdateStartupRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if req.Name != "" {
		startup.Name = req.Name
	}

	if req.Description != nil {
		startup.Description = *req.Description
	}

	if req.Status != "" {
		if req.Status != models.StatusPending && req.Status != models.StatusApproved && req.Status != models.StatusRejected {
			validationError(ctx, apperr.New(apperr.CodeInvalidStatus, "Invalid status value"))
			return
		}
		startup.Status = req.Status
	}

	if req.StageID != nil {
		startup.StageID = req.StageID
	}

	if err := db.DB.Save(&startup).Error; err != nil {
		internalError(ctx, "Failed to update startup", err)
		return
	}

	ctx.JSON(http.StatusOK, startup)
}

// DeleteStartup removes the startup's team members explicitly before the
// startup row itself, so the delete never depends on storage-level cascade
// ordering.
func DeleteStartup(ctx *gin.Context) {
	var startup models.Startup

	if err := db.DB.First(&startup, ctx.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			notFound(ctx, "Startup not found")
		} else {
			internalError(ctx, "Failed to retrieve startup", err)
		}
		return
	}

	var ownerID uint
	if startup.UserID != nil {
		ownerID = *startup.UserID
	}

	if !requireOwnerOrAdmin(ctx, ownerID) {
		return
	}

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("startup_id = ?", startup.ID).Delete(&models.TeamMember{}).Error; err != nil {
			return err
		}
		return tx.Delete(&startup).Error
	})

	if err != nil {
		internalError(ctx, "Failed to delete startup", err)
		return
	}

	ctx.Status(http.StatusNoContent)
}
