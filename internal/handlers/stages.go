package handlers

import (
	"errors"
	"net/http"

	"github.com/ensia-dev/incubator/db"
	"github.com/ensia-dev/incubator/internal/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CreateStageRequest struct {
	Name           string `json:"name" binding:"required"`
	SequenceOrder  int    `json:"sequence_order" binding:"required"`
	DurationMonths int    `json:"duration_months" binding:"required"`
}

type UpdateStageRequest struct {
	Name           string `json:"name"`
	SequenceOrder  *int   `json:"sequence_order"`
	DurationMonths *int   `json:"duration_months"`
}

func ListStages(ctx *gin.Context) {
	var stages []models.Stage

	if err := db.DB.Order("sequence_order").Find(&stages).Error; err != nil {
		internalError(ctx, "Failed to retrieve stages", err)
		return
	}

	ctx.JSON(http.StatusOK, stages)
}

func CreateStage(ctx *gin.Context) {
	var req CreateStageRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	stage := models.Stage{
		Name:           req.Name,
		SequenceOrder:  req.SequenceOrder,
		DurationMonths: req.DurationMonths,
	}

	if err := db.DB.Create(&stage).Error; err != nil {
		internalError(ctx, "Failed to create stage", err)
		return
	}

	ctx.JSON(http.StatusCreated, stage)
}

func GetStage(ctx *gin.Context) {
	stage, ok := stageFromPath(ctx)
	if !ok {
		return
	}

	ctx.JSON(http.StatusOK, stage)
}

func UpdateStage(ctx *gin.Context) {
	stage, ok := stageFromPath(ctx)
	if !ok {
		return
	}

	var req UpdateStageRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if req.Name != "" {
		stage.Name = req.Name
	}

	if req.SequenceOrder != nil {
		stage.SequenceOrder = *req.SequenceOrder
	}

	if req.DurationMonths != nil {
		stage.DurationMonths = *req.DurationMonths
	}

	if err := db.DB.Save(&stage).Error; err != nil {
		internalError(ctx, "Failed to update stage", err)
		return
	}

	ctx.JSON(http.StatusOK, stage)
}

func DeleteStage(ctx *gin.Context) {
	stage, ok := stageFromPath(ctx)
	if !ok {
		return
	}

	if err := db.DB.Delete(&stage).Error; err != nil {
		internalError(ctx, "Failed to delete stage", err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

func stageFromPath(ctx *gin.Context) (models.Stage, bool) {
	var stage models.Stage

	if err := db.DB.First(&stage, ctx.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			notFound(ctx, "Stage not found")
		} else {
			internalError(ctx, "Failed to retrieve stage", err)
		}
		return models.Stage{}, false
	}

	return stage, true
}
