package handlers

import (
	"math"
	"net/http"
	"time"

	"github.com/ensia-dev/incubator/db"
	"github.com/ensia-dev/incubator/internal/models"
	"github.com/gin-gonic/gin"
)

type statusBreakdownEntry struct {
	Name  string `json:"name"`
	Value int64  `json:"value"`
}

// DashboardStats aggregates the headline numbers shown on the admin landing
// page.
func DashboardStats(ctx *gin.Context) {
	now := time.Now()
	oneWeekLater := now.Add(7 * 24 * time.Hour)

	var activeStartups int64
	if err := db.DB.Model(&models.Startup{}).Where("status = ?", models.StatusApproved).Count(&activeStartups).Error; err != nil {
		internalError(ctx, "Failed to count startups", err)
		return
	}

	var pendingApplications int64
	if err := db.DB.Model(&models.Application{}).Where("status = ?", models.StatusPending).Count(&pendingApplications).Error; err != nil {
		internalError(ctx, "Failed to count applications", err)
		return
	}

	var pendingForms int64
	if err := db.DB.Model(&models.IncubationForm{}).Where("status = ?", models.IncubationFormStatusPending).Count(&pendingForms).Error; err != nil {
		internalError(ctx, "Failed to count incubation forms", err)
		return
	}

	mentorsCount, err := countUsersByRole(models.RoleMentor)
	if err != nil {
		internalError(ctx, "Failed to count mentors", err)
		return
	}

	trainersCount, err := countUsersByRole(models.RoleTrainer)
	if err != nil {
		internalError(ctx, "Failed to count trainers", err)
		return
	}

	var upcomingEvents int64
	if err := db.DB.Model(&models.Event{}).Where("start_time > ?", now).Count(&upcomingEvents).Error; err != nil {
		internalError(ctx, "Failed to count events", err)
		return
	}

	var eventsThisWeek int64
	if err := db.DB.Model(&models.Event{}).Where("start_time > ? AND start_time < ?", now, oneWeekLater).Count(&eventsThisWeek).Error; err != nil {
		internalError(ctx, "Failed to count events", err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"active_startups":      activeStartups,
		"pending_applications": pendingApplications,
		"pending_forms":        pendingForms,
		"mentors_count":        mentorsCount,
		"trainers_count":       trainersCount,
		"upcoming_events":      upcomingEvents,
		"events_this_week":     eventsThisWeek,
	})
}

func StartupStatusAnalytics(ctx *gin.Context) {
	statusBreakdown(ctx, &models.Startup{}, "Failed to aggregate startup statuses")
}

func ApplicationStatusAnalytics(ctx *gin.Context) {
	statusBreakdown(ctx, &models.Application{}, "Failed to aggregate application statuses")
}

func statusBreakdown(ctx *gin.Context, model any, errContext string) {
	var rows []struct {
		Status string
		Count  int64
	}

	if err := db.DB.Model(model).Select("status, COUNT(*) as count").Group("status").Order("status").Find(&rows).Error; err != nil {
		internalError(ctx, errContext, err)
		return
	}

	result := make([]statusBreakdownEntry, 0, len(rows))
	for _, row := range rows {
		result = append(result, statusBreakdownEntry{
			Name:  capitalize(row.Status),
			Value: row.Count,
		})
	}

	ctx.JSON(http.StatusOK, result)
}

// ResourceUtilizationAnalytics reports, per resource, how much of the total
// is consumed by approved requests. Over-approval shows up as zero remaining,
// never negative.
func ResourceUtilizationAnalytics(ctx *gin.Context) {
	var resources []models.Resource

	if err := db.DB.Order("id").Find(&resources).Error; err != nil {
		internalError(ctx, "Failed to retrieve resources", err)
		return
	}

	type utilizationEntry struct {
		Name      string `json:"name"`
		Total     int    `json:"total"`
		Used      int    `json:"used"`
		Available int    `json:"available"`
	}

	result := make([]utilizationEntry, 0, len(resources))

	for _, resource := range resources {
		var used int

		err := db.DB.Model(&models.ResourceRequest{}).
			Where("resource_id = ? AND status = ?", resource.ID, models.StatusApproved).
			Select("COALESCE(SUM(quantity_requested), 0)").
			Scan(&used).Error

		if err != nil {
			internalError(ctx, "Failed to aggregate resource requests", err)
			return
		}

		available := resource.QuantityAvailable - used
		if available < 0 {
			available = 0
		}

		result = append(result, utilizationEntry{
			Name:      resource.Name,
			Total:     resource.QuantityAvailable,
			Used:      used,
			Available: available,
		})
	}

	ctx.JSON(http.StatusOK, result)
}

func AcceptanceRateAnalytics(ctx *gin.Context) {
	var total int64
	if err := db.DB.Model(&models.Application{}).Count(&total).Error; err != nil {
		internalError(ctx, "Failed to count applications", err)
		return
	}

	var accepted int64
	if err := db.DB.Model(&models.Application{}).Where("status = ?", models.StatusApproved).Count(&accepted).Error; err != nil {
		internalError(ctx, "Failed to count applications", err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"rate":     percentage(accepted, total),
		"period":   "Q4 2023",
		"accepted": accepted,
		"total":    total,
	})
}

func SurvivalRateAnalytics(ctx *gin.Context) {
	var total int64
	if err := db.DB.Model(&models.Startup{}).Count(&total).Error; err != nil {
		internalError(ctx, "Failed to count startups", err)
		return
	}

	var survived int64
	if err := db.DB.Model(&models.Startup{}).Where("status = ?", models.StatusApproved).Count(&survived).Error; err != nil {
		internalError(ctx, "Failed to count startups", err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"rate":     percentage(survived, total),
		"period":   "6 months",
		"survived": survived,
		"total":    total,
	})
}

// percentage returns part/whole as a whole-number percent, 0 when whole is 0.
func percentage(part, whole int64) int {
	if whole == 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(whole) * 100))
}

func countUsersByRole(roleName string) (int64, error) {
	var count int64

	err := db.DB.Model(&models.User{}).
		Joins("JOIN roles ON roles.id = users.role_id").
		Where("roles.name = ?", roleName).
		Count(&count).Error

	return count, err
}
