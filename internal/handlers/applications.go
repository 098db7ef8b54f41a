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

type CreateApplicationRequest struct {
	StartupID     uint    `json:"startup_id" binding:"required"`
	GoogleFormURL *string `json:"google_form_url"`
}

type UpdateApplicationRequest struct {
	Status        string  `json:"status"`
	GoogleFormURL *string `json:"google_form_url"`
}

type SubmitVoteRequest struct {
	UserID uint  `json:"user_id" binding:"required"`
	Vote   *bool `json:"vote" binding:"required"`
}

type SubmitScoreRequest struct {
	UserID uint     `json:"user_id" binding:"required"`
	Score  *float64 `json:"score" binding:"required"`
}

func ListApplications(ctx *gin.Context) {
	query := db.DB.Order("id")

	if status := ctx.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var applications []models.Application

	if err := query.Find(&applications).Error; err != nil {
		internalError(ctx, "Failed to retrieve applications", err)
		return
	}

	ctx.JSON(http.StatusOK, applications)
}

func CreateApplication(ctx *gin.Context) {
	var req CreateApplicationRequest

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

	application := models.Application{
		Status:        models.StatusPending,
		GoogleFormURL: req.GoogleFormURL,
		StartupID:     startup.ID,
	}

	if err := db.DB.Create(&application).Error; err != nil {
		internalError(ctx, "Failed to create application", err)
		return
	}

	ctx.JSON(http.StatusCreated, application)
}

func GetApplication(ctx *gin.Context) {
	application, ok := applicationFromPath(ctx)
	if !ok {
		return
	}

	ctx.JSON(http.StatusOK, application)
}

func UpdateApplication(ctx *gin.Context) {
	if !requireAdmin(ctx) {
		return
	}

	application, ok := applicationFromPath(ctx)
	if !ok {
		return
	}

	var req UpdateApplicationRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if appErr := applyApplicationUpdate(&application, req); appErr != nil {
		validationError(ctx, appErr)
		return
	}

	if err := db.DB.Save(&application).Error; err != nil {
		internalError(ctx, "Failed to update application", err)
		return
	}

	ctx.JSON(http.StatusOK, application)
}

func DeleteApplication(ctx *gin.Context) {
	if !requireAdmin(ctx) {
		return
	}

	application, ok := applicationFromPath(ctx)
	if !ok {
		return
	}

	if err := db.DB.Delete(&application).Error; err != nil {
		internalError(ctx, "Failed to delete application", err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// UpdateApplicationStatus is the admin decision endpoint.
func UpdateApplicationStatus(ctx *gin.Context) {
	if !requireAdmin(ctx) {
		return
	}

	application, ok := applicationFromPath(ctx)
	if !ok {
		return
	}

	var req struct {
		Status string `json:"status" binding:"required"`
	}

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if appErr := applyApplicationUpdate(&application, UpdateApplicationRequest{Status: req.Status}); appErr != nil {
		validationError(ctx, appErr)
		return
	}

	if err := db.DB.Save(&application).Error; err != nil {
		internalError(ctx, "Failed to update application", err)
		return
	}

	ctx.JSON(http.StatusOK, application)
}

func applyApplicationUpdate(application *models.Application, req UpdateApplicationRequest) *apperr.Error {
	if req.Status != "" {
		if req.Status != models.StatusPending && req.Status != models.StatusApproved && req.Status != models.StatusRejected {
			return apperr.New(apperr.CodeInvalidStatus, "Invalid status value")
		}
		application.Status = req.Status
	}

	if req.GoogleFormURL != nil {
		application.GoogleFormURL = req.GoogleFormURL
	}

	return nil
}

// GetApplicationAverageScore returns the arithmetic mean of all scores for
// the application, or 0 when none exist.
func GetApplicationAverageScore(ctx *gin.Context) {
	var average float64

	err := db.DB.Model(&models.ApplicationScore{}).
		Where("application_id = ?", ctx.Param("id")).
		Select("COALESCE(AVG(score), 0)").
		Scan(&average).Error

	if err != nil {
		internalError(ctx, "Failed to compute average score", err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"average_score": average})
}

func ListApplicationVotes(ctx *gin.Context) {
	application, ok := applicationFromPath(ctx)
	if !ok {
		return
	}

	var votes []models.ApplicationVote

	if err := db.DB.Where("application_id = ?", application.ID).Find(&votes).Error; err != nil {
		internalError(ctx, "Failed to retrieve votes", err)
		return
	}

	ctx.JSON(http.StatusOK, votes)
}

// SubmitApplicationVote records one boolean vote per (application, user).
// Duplicates are rejected, not overwritten.
func SubmitApplicationVote(ctx *gin.Context) {
	application, ok := applicationFromPath(ctx)
	if !ok {
		return
	}

	var req SubmitVoteRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if appErr := validation.ValidateUniqueVote(db.DB, application.ID, req.UserID); appErr != nil {
		validationError(ctx, appErr)
		return
	}

	vote := models.ApplicationVote{
		Vote:          *req.Vote,
		ApplicationID: application.ID,
		UserID:        req.UserID,
	}

	if err := db.DB.Create(&vote).Error; err != nil {
		if validation.IsUniqueViolation(err) {
			validationError(ctx, apperr.New(apperr.CodeDuplicateVoteOrScore, "User has already voted on this application"))
			return
		}
		internalError(ctx, "Failed to create vote", err)
		return
	}

	ctx.JSON(http.StatusCreated, vote)
}

func ListApplicationScores(ctx *gin.Context) {
	application, ok := applicationFromPath(ctx)
	if !ok {
		return
	}

	var scores []models.ApplicationScore

	if err := db.DB.Where("application_id = ?", application.ID).Find(&scores).Error; err != nil {
		internalError(ctx, "Failed to retrieve scores", err)
		return
	}

	ctx.JSON(http.StatusOK, scores)
}

// SubmitApplicationScore records one numeric score per (application, user).
func SubmitApplicationScore(ctx *gin.Context) {
	application, ok := applicationFromPath(ctx)
	if !ok {
		return
	}

	var req SubmitScoreRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if appErr := validation.ValidateUniqueScore(db.DB, application.ID, req.UserID); appErr != nil {
		validationError(ctx, appErr)
		return
	}

	score := models.ApplicationScore{
		Score:         *req.Score,
		ApplicationID: application.ID,
		UserID:        req.UserID,
	}

	if err := db.DB.Create(&score).Error; err != nil {
		if validation.IsUniqueViolation(err) {
			validationError(ctx, apperr.New(apperr.CodeDuplicateVoteOrScore, "User has already scored this application"))
			return
		}
		internalError(ctx, "Failed to create score", err)
		return
	}

	ctx.JSON(http.StatusCreated, score)
}

func applicationFromPath(ctx *gin.Context) (models.Application, bool) {
	var application models.Application

	if err := db.DB.First(&application, ctx.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			notFound(ctx, "Application not found")
		} else {
			internalError(ctx, "Failed to retrieve application", err)
		}
		return models.Application{}, false
	}

	return application, true
}
