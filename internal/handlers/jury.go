package handlers

import (
	"errors"
	"net/http"

	"github.com/ensia-dev/incubator/db"
	"github.com/ensia-dev/incubator/internal/models"
	"github.com/ensia-dev/incubator/internal/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CreateJuryEvaluationRequest struct {
	StartupID uint     `json:"startup_id" binding:"required"`
	Score     *float64 `json:"score" binding:"required"`
	Comments  string   `json:"comments"`
}

func ListJuryEvaluations(ctx *gin.Context) {
	query := db.DB.Order("id")

	if startupID := ctx.Query("startup_id"); startupID != "" {
		query = query.Where("startup_id = ?", startupID)
	}

	var evaluations []models.JuryEvaluation

	if err := query.Find(&evaluations).Error; err != nil {
		internalError(ctx, "Failed to retrieve jury evaluations", err)
		return
	}

	ctx.JSON(http.StatusOK, evaluations)
}

func CreateJuryEvaluation(ctx *gin.Context) {
	actor, err := utils.RequireCurrentActor(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req CreateJuryEvaluationRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	var startup models.Startup

	if err := db.DB.First(&startup, req.StartupID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Startup not found"})
		} else {
			internalError(ctx, "Failed to retrieve startup", err)
		}
		return
	}

	evaluation := models.JuryEvaluation{
		Score:     *req.Score,
		Comments:  req.Comments,
		StartupID: startup.ID,
		UserID:    actor.ID,
	}

	if err := db.DB.Create(&evaluation).Error; err != nil {
		internalError(ctx, "Failed to create jury evaluation", err)
		return
	}

	ctx.JSON(http.StatusCreated, evaluation)
}

func GetJuryEvaluation(ctx *gin.Context) {
	var evaluation models.JuryEvaluation

	if err := db.DB.First(&evaluation, ctx.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			notFound(ctx, "Jury evaluation not found")
		} else {
			internalError(ctx, "Failed to retrieve jury evaluation", err)
		}
		return
	}

	ctx.JSON(http.StatusOK, evaluation)
}
