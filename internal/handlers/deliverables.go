package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/ensia-dev/incubator/db"
	"github.com/ensia-dev/incubator/internal/apperr"
	"github.com/ensia-dev/incubator/internal/models"
	"github.com/ensia-dev/incubator/internal/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type CreateDeliverableRequest struct {
	Title       string         `json:"title" binding:"required"`
	Description string         `json:"description" binding:"required"`
	DueDate     datatypes.Date `json:"due_date" binding:"required"`
	StageID     uint           `json:"stage_id" binding:"required"`
	StartupID   uint           `json:"startup_id" binding:"required"`
}

type UpdateDeliverableRequest struct {
	Title         string          `json:"title"`
	Description   string          `json:"description"`
	DueDate       *datatypes.Date `json:"due_date"`
	SubmissionURL *string         `json:"submission_url"`
	Status        string          `json:"status"`
}

type EvaluateDeliverableRequest struct {
	Score    *float64 `json:"score" binding:"required"`
	Comments string   `json:"comments"`
}

func ListDeliverables(ctx *gin.Context) {
	query := db.DB.Order("due_date")

	if status := ctx.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	if startupID := ctx.Query("startup_id"); startupID != "" {
		query = query.Where("startup_id = ?", startupID)
	}

	var deliverables []models.Deliverable

	if err := query.Find(&deliverables).Error; err != nil {
		internalError(ctx, "Failed to retrieve deliverables", err)
		return
	}

	ctx.JSON(http.StatusOK, deliverables)
}

func CreateDeliverable(ctx *gin.Context) {
	var req CreateDeliverableRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	deliverable := models.Deliverable{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
		Status:      models.DeliverableStatusPending,
		StageID:     req.StageID,
		StartupID:   req.StartupID,
	}

	if err := db.DB.Create(&deliverable).Error; err != nil {
		internalError(ctx, "Failed to create deliverable", err)
		return
	}

	ctx.JSON(http.StatusCreated, deliverable)
}

func GetDeliverable(ctx *gin.Context) {
	deliverable, ok := deliverableFromPath(ctx)
	if !ok {
		return
	}

	ctx.JSON(http.StatusOK, deliverable)
}

func UpdateDeliverable(ctx *gin.Context) {
	deliverable, ok := deliverableFromPath(ctx)
	if !ok {
		return
	}

	var req UpdateDeliverableRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if req.Title != "" {
		deliverable.Title = req.Title
	}

	if req.Description != "" {
		deliverable.Description = req.Description
	}

	if req.DueDate != nil {
		deliverable.DueDate = *req.DueDate
	}

	if req.SubmissionURL != nil {
		deliverable.SubmissionURL = req.SubmissionURL

		// A submission link moves a pending deliverable to submitted.
		if deliverable.Status == models.DeliverableStatusPending && req.Status == "" {
			now := time.Now()
			deliverable.Status = models.DeliverableStatusSubmitted
			deliverable.SubmittedAt = &now
		}
	}

	if req.Status != "" {
		if req.Status != models.DeliverableStatusPending &&
			req.Status != models.DeliverableStatusSubmitted &&
			req.Status != models.DeliverableStatusReviewed {
			validationError(ctx, apperr.New(apperr.CodeInvalidStatus, "Invalid status value"))
			return
		}
		if req.Status == models.DeliverableStatusSubmitted && deliverable.SubmittedAt == nil {
			now := time.Now()
			deliverable.SubmittedAt = &now
		}
		deliverable.Status = req.Status
	}

	if err := db.DB.Save(&deliverable).Error; err != nil {
		internalError(ctx, "Failed to update deliverable", err)
		return
	}

	ctx.JSON(http.StatusOK, deliverable)
}

func DeleteDeliverable(ctx *gin.Context) {
	deliverable, ok := deliverableFromPath(ctx)
	if !ok {
		return
	}

	if err := db.DB.Delete(&deliverable).Error; err != nil {
		internalError(ctx, "Failed to delete deliverable", err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// EvaluateDeliverable records an evaluator's score and comments. Multiple
// evaluations per deliverable are allowed.
func EvaluateDeliverable(ctx *gin.Context) {
	actor, err := utils.RequireCurrentActor(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	deliverable, ok := deliverableFromPath(ctx)
	if !ok {
		return
	}

	var req EvaluateDeliverableRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	evaluation := models.DeliverableEvaluation{
		Score:         *req.Score,
		Comments:      req.Comments,
		DeliverableID: deliverable.ID,
		UserID:        actor.ID,
	}

	if err := db.DB.Create(&evaluation).Error; err != nil {
		internalError(ctx, "Failed to create evaluation", err)
		return
	}

	ctx.JSON(http.StatusCreated, evaluation)
}

func ListDeliverableEvaluations(ctx *gin.Context) {
	deliverable, ok := deliverableFromPath(ctx)
	if !ok {
		return
	}

	var evaluations []models.DeliverableEvaluation

	if err := db.DB.Where("deliverable_id = ?", deliverable.ID).Find(&evaluations).Error; err != nil {
		internalError(ctx, "Failed to retrieve evaluations", err)
		return
	}

	ctx.JSON(http.StatusOK, evaluations)
}

func deliverableFromPath(ctx *gin.Context) (models.Deliverable, bool) {
	var deliverable models.Deliverable

	if err := db.DB.First(&deliverable, ctx.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			notFound(ctx, "Deliverable not found")
		} else {
			internalError(ctx, "Failed to retrieve deliverable", err)
		}
		return models.Deliverable{}, false
	}

	return deliverable, true
}
