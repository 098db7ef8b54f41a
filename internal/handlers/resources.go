package handlers

import (
	"errors"
	"net/http"

	"github.com/ensia-dev/incubator/db"
	"github.com/ensia-dev/incubator/internal/apperr"
	"github.com/ensia-dev/incubator/internal/models"
	"github.com/ensia-dev/incubator/internal/utils"
	"github.com/ensia-dev/incubator/internal/validation"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CreateResourceRequest struct {
	Type              string `json:"type" binding:"required"`
	Name              string `json:"name" binding:"required"`
	Description       string `json:"description"`
	QuantityAvailable *int   `json:"quantity_available" binding:"required"`
}

type UpdateResourceRequest struct {
	Type              string  `json:"type"`
	Name              string  `json:"name"`
	Description       *string `json:"description"`
	QuantityAvailable *int    `json:"quantity_available"`
}

type CreateResourceRequestRequest struct {
	StartupID         uint  `json:"startup_id" binding:"required"`
	ResourceID        uint  `json:"resource_id" binding:"required"`
	QuantityRequested int   `json:"quantity_requested" binding:"required"`
	UserID            *uint `json:"user_id"`
}

type CreateResourceAllocationRequest struct {
	RequestID         uint `json:"request_id" binding:"required"`
	AllocatedQuantity int  `json:"allocated_quantity" binding:"required"`
}

func ListResources(ctx *gin.Context) {
	var resources []models.Resource

	if err := db.DB.Order("id").Find(&resources).Error; err != nil {
		internalError(ctx, "Failed to retrieve resources", err)
		return
	}

	ctx.JSON(http.StatusOK, resources)
}

func CreateResource(ctx *gin.Context) {
	var req CreateResourceRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if *req.QuantityAvailable < 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Quantity available must not be negative"})
		return
	}

	resource := models.Resource{
		Type:              req.Type,
		Name:              req.Name,
		Description:       req.Description,
		QuantityAvailable: *req.QuantityAvailable,
	}

	if err := db.DB.Create(&resource).Error; err != nil {
		internalError(ctx, "Failed to create resource", err)
		return
	}

	ctx.JSON(http.StatusCreated, resource)
}

func GetResource(ctx *gin.Context) {
	resource, ok := resourceFromPath(ctx)
	if !ok {
		return
	}

	ctx.JSON(http.StatusOK, resource)
}

func UpdateResource(ctx *gin.Context) {
	resource, ok := resourceFromPath(ctx)
	if !ok {
		return
	}

	var req UpdateResourceRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if req.Type != "" {
		resource.Type = req.Type
	}

	if req.Name != "" {
		resource.Name = req.Name
	}

	if req.Description != nil {
		resource.Description = *req.Description
	}

	if req.QuantityAvailable != nil {
		if *req.QuantityAvailable < 0 {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Quantity available must not be negative"})
			return
		}
		resource.QuantityAvailable = *req.QuantityAvailable
	}

	if err := db.DB.Save(&resource).Error; err != nil {
		internalError(ctx, "Failed to update resource", err)
		return
	}

	ctx.JSON(http.StatusOK, resource)
}

func DeleteResource(ctx *gin.Context) {
	resource, ok := resourceFromPath(ctx)
	if !ok {
		return
	}

	if err := db.DB.Delete(&resource).Error; err != nil {
		internalError(ctx, "Failed to delete resource", err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

func ListResourceRequests(ctx *gin.Context) {
	query := db.DB.Order("id")

	if status := ctx.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var requests []models.ResourceRequest

	if err := query.Find(&requests).Error; err != nil {
		internalError(ctx, "Failed to retrieve resource requests", err)
		return
	}

	ctx.JSON(http.StatusOK, requests)
}

// CreateResourceRequest checks the requested quantity against the resource's
// total before persisting. New requests always start pending.
func CreateResourceRequestHandler(ctx *gin.Context) {
	var req CreateResourceRequestRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	var resource models.Resource

	if err := db.DB.First(&resource, req.ResourceID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Resource not found"})
		} else {
			internalError(ctx, "Failed to retrieve resource", err)
		}
		return
	}

	if appErr := validation.ValidateResourceRequestQuantity(req.QuantityRequested, resource.QuantityAvailable); appErr != nil {
		validationError(ctx, appErr)
		return
	}

	request := models.ResourceRequest{
		QuantityRequested: req.QuantityRequested,
		Status:            models.StatusPending,
		StartupID:         req.StartupID,
		ResourceID:        resource.ID,
		UserID:            req.UserID,
	}

	if request.UserID == nil {
		if actor := utils.GetCurrentActor(ctx); actor.Authenticated {
			id := actor.ID
			request.UserID = &id
		}
	}

	if err := db.DB.Create(&request).Error; err != nil {
		internalError(ctx, "Failed to create resource request", err)
		return
	}

	ctx.JSON(http.StatusCreated, request)
}

// UpdateResourceRequestStatus approves or rejects a pending request.
func UpdateResourceRequestStatus(ctx *gin.Context) {
	if !requireAdmin(ctx) {
		return
	}

	var request models.ResourceRequest

	if err := db.DB.First(&request, ctx.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			notFound(ctx, "Resource request not found")
		} else {
			internalError(ctx, "Failed to retrieve resource request", err)
		}
		return
	}

	var req struct {
		Status string `json:"status" binding:"required"`
	}

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if req.Status != models.StatusPending && req.Status != models.StatusApproved && req.Status != models.StatusRejected {
		validationError(ctx, apperr.New(apperr.CodeInvalidStatus, "Invalid status value"))
		return
	}

	request.Status = req.Status

	if err := db.DB.Save(&request).Error; err != nil {
		internalError(ctx, "Failed to update resource request", err)
		return
	}

	ctx.JSON(http.StatusOK, request)
}

func ListResourceAllocations(ctx *gin.Context) {
	var allocations []models.ResourceAllocation

	if err := db.DB.Order("id").Find(&allocations).Error; err != nil {
		internalError(ctx, "Failed to retrieve allocations", err)
		return
	}

	ctx.JSON(http.StatusOK, allocations)
}

func CreateResourceAllocation(ctx *gin.Context) {
	var req CreateResourceAllocationRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	var request models.ResourceRequest

	if err := db.DB.First(&request, req.RequestID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Resource request not found"})
		} else {
			internalError(ctx, "Failed to retrieve resource request", err)
		}
		return
	}

	allocation := models.ResourceAllocation{
		AllocatedQuantity: req.AllocatedQuantity,
		RequestID:         request.ID,
	}

	if err := db.DB.Create(&allocation).Error; err != nil {
		internalError(ctx, "Failed to create allocation", err)
		return
	}

	ctx.JSON(http.StatusCreated, allocation)
}

func resourceFromPath(ctx *gin.Context) (models.Resource, bool) {
	var resource models.Resource

	if err := db.DB.First(&resource, ctx.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			notFound(ctx, "Resource not found")
		} else {
			internalError(ctx, "Failed to retrieve resource", err)
		}
		return models.Resource{}, false
	}

	return resource, true
}
