package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/ensia-dev/incubator/db"
	"github.com/ensia-dev/incubator/internal/models"
	"github.com/ensia-dev/incubator/internal/validation"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CreateEventRequest struct {
	Title       string    `json:"title" binding:"required"`
	Description string    `json:"description"`
	StartTime   time.Time `json:"start_time" binding:"required"`
	EndTime     time.Time `json:"end_time" binding:"required"`
	Location    string    `json:"location" binding:"required"`
	UserID      uint      `json:"user_id" binding:"required"`
}

type UpdateEventRequest struct {
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	StartTime   *time.Time `json:"start_time"`
	EndTime     *time.Time `json:"end_time"`
	Location    string     `json:"location"`
}

func ListEvents(ctx *gin.Context) {
	var events []models.Event

	if err := db.DB.Order("start_time").Find(&events).Error; err != nil {
		internalError(ctx, "Failed to retrieve events", err)
		return
	}

	ctx.JSON(http.StatusOK, events)
}

func CreateEvent(ctx *gin.Context) {
	var req CreateEventRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	var user models.User

	if err := db.DB.First(&user, req.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "User not found", "code": "user_not_found"})
		} else {
			internalError(ctx, "Failed to retrieve user", err)
		}
		return
	}

	if appErr := validation.ValidateEventWindow(req.StartTime, req.EndTime); appErr != nil {
		validationError(ctx, appErr)
		return
	}

	event := models.Event{
		Title:       req.Title,
		Description: req.Description,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Location:    req.Location,
		UserID:      user.ID,
	}

	if err := db.DB.Create(&event).Error; err != nil {
		internalError(ctx, "Failed to create event", err)
		return
	}

	ctx.JSON(http.StatusCreated, event)
}

func GetEvent(ctx *gin.Context) {
	event, ok := eventFromPath(ctx)
	if !ok {
		return
	}

	ctx.JSON(http.StatusOK, event)
}

func UpdateEvent(ctx *gin.Context) {
	event, ok := eventFromPath(ctx)
	if !ok {
		return
	}

	var req UpdateEventRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if req.Title != "" {
		event.Title = req.Title
	}

	if req.Description != nil {
		event.Description = *req.Description
	}

	if req.StartTime != nil {
		event.StartTime = *req.StartTime
	}

	if req.EndTime != nil {
		event.EndTime = *req.EndTime
	}

	if req.Location != "" {
		event.Location = req.Location
	}

	// The window rule applies to the merged result, not just the fields
	// being changed.
	if appErr := validation.ValidateEventWindow(event.StartTime, event.EndTime); appErr != nil {
		validationError(ctx, appErr)
		return
	}

	if err := db.DB.Save(&event).Error; err != nil {
		internalError(ctx, "Failed to update event", err)
		return
	}

	ctx.JSON(http.StatusOK, event)
}

func DeleteEvent(ctx *gin.Context) {
	event, ok := eventFromPath(ctx)
	if !ok {
		return
	}

	if err := db.DB.Delete(&event).Error; err != nil {
		internalError(ctx, "Failed to delete event", err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

func eventFromPath(ctx *gin.Context) (models.Event, bool) {
	var event models.Event

	if err := db.DB.First(&event, ctx.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			notFound(ctx, "Event not found")
		} else {
			internalError(ctx, "Failed to retrieve event", err)
		}
		return models.Event{}, false
	}

	return event, true
}
