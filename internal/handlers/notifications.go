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

// ListNotifications returns only the caller's notifications.
func ListNotifications(ctx *gin.Context) {
	actor, err := utils.RequireCurrentActor(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var notifications []models.Notification

	if err := db.DB.Where("user_id = ?", actor.ID).Order("created_at DESC").Find(&notifications).Error; err != nil {
		internalError(ctx, "Failed to retrieve notifications", err)
		return
	}

	ctx.JSON(http.StatusOK, notifications)
}

func MarkNotificationRead(ctx *gin.Context) {
	notification, ok := notificationFromPath(ctx)
	if !ok {
		return
	}

	if !requireOwnerOrAdmin(ctx, notification.UserID) {
		return
	}

	notification.IsRead = true

	if err := db.DB.Save(&notification).Error; err != nil {
		internalError(ctx, "Failed to update notification", err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Notification marked as read"})
}

func DeleteNotification(ctx *gin.Context) {
	notification, ok := notificationFromPath(ctx)
	if !ok {
		return
	}

	if !requireOwnerOrAdmin(ctx, notification.UserID) {
		return
	}

	if err := db.DB.Delete(&notification).Error; err != nil {
		internalError(ctx, "Failed to delete notification", err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

func notificationFromPath(ctx *gin.Context) (models.Notification, bool) {
	var notification models.Notification

	if err := db.DB.First(&notification, ctx.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			notFound(ctx, "Notification not found")
		} else {
			internalError(ctx, "Failed to retrieve notification", err)
		}
		return models.Notification{}, false
	}

	return notification, true
}
