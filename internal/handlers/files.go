package handlers

import (
	"errors"
	"net/http"

	"github.com/ensia-dev/incubator/db"
	"github.com/ensia-dev/incubator/internal/models"
	"github.com/ensia-dev/incubator/internal/utils"
	"github.com/ensia-dev/incubator/internal/validation"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// The binary content lives with the external storage provider; this endpoint
// only records the returned reference.
type CreateFileMetadataRequest struct {
	DriveFileID   string `json:"drive_file_id" binding:"required"`
	Name          string `json:"name" binding:"required"`
	URL           string `json:"url" binding:"required"`
	FileType      string `json:"file_type" binding:"required"`
	DeliverableID *uint  `json:"deliverable_id"`
	ApplicationID *uint  `json:"application_id"`
}

func CreateFileMetadata(ctx *gin.Context) {
	actor, err := utils.RequireCurrentActor(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req CreateFileMetadataRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if appErr := validation.ValidateFileLinkage(req.DeliverableID, req.ApplicationID); appErr != nil {
		validationError(ctx, appErr)
		return
	}

	file := models.FileMetadata{
		DriveFileID:   req.DriveFileID,
		Name:          req.Name,
		URL:           req.URL,
		FileType:      req.FileType,
		DeliverableID: req.DeliverableID,
		ApplicationID: req.ApplicationID,
		UserID:        actor.ID,
	}

	if err := db.DB.Create(&file).Error; err != nil {
		internalError(ctx, "Failed to create file metadata", err)
		return
	}

	ctx.JSON(http.StatusCreated, file)
}

func ListFiles(ctx *gin.Context) {
	var files []models.FileMetadata

	if err := db.DB.Order("id").Find(&files).Error; err != nil {
		internalError(ctx, "Failed to retrieve files", err)
		return
	}

	ctx.JSON(http.StatusOK, files)
}

func GetFile(ctx *gin.Context) {
	var file models.FileMetadata

	if err := db.DB.First(&file, ctx.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			notFound(ctx, "File not found")
		} else {
			internalError(ctx, "Failed to retrieve file", err)
		}
		return
	}

	ctx.JSON(http.StatusOK, file)
}
