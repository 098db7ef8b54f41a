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
	"gorm.io/gorm/clause"
)

type IncubationFormRequest struct {
	ProjectID string `json:"project_id" binding:"required"`

	TeamLeaderName  string `json:"team_leader_name" binding:"required"`
	TeamLeaderYear  string `json:"team_leader_year" binding:"required"`
	TeamLeaderEmail string `json:"team_leader_email" binding:"required,email"`
	TeamLeaderPhone string `json:"team_leader_phone" binding:"required"`

	TeamMembers string `json:"team_members" binding:"required"`

	ProjectTitle   string `json:"project_title" binding:"required"`
	ProjectDomain  string `json:"project_domain"`
	IsAIProject    bool   `json:"is_ai_project"`
	ProjectSummary string `json:"project_summary" binding:"required"`
	DevStage       string `json:"dev_stage"`

	DemoLink     string `json:"demo_link" binding:"required"`
	ProjectVideo string `json:"project_video"`

	KeyMilestones        string `json:"key_milestones" binding:"required"`
	CurrentChallenges    string `json:"current_challenges" binding:"required"`
	ProblemStatement     string `json:"problem_statement" binding:"required"`
	TargetAudience       string `json:"target_audience"`
	ExpectedImpact       string `json:"expected_impact" binding:"required"`
	AdditionalMotivation string `json:"additional_motivation"`

	SupportingDocuments string `json:"supporting_documents"`

	Confirmation bool `json:"confirmation"`
}

type UpdateIncubationFormRequest struct {
	TeamLeaderName  *string `json:"team_leader_name"`
	TeamLeaderYear  *string `json:"team_leader_year"`
	TeamLeaderEmail *string `json:"team_leader_email"`
	TeamLeaderPhone *string `json:"team_leader_phone"`

	TeamMembers *string `json:"team_members"`

	ProjectTitle   *string `json:"project_title"`
	ProjectDomain  *string `json:"project_domain"`
	IsAIProject    *bool   `json:"is_ai_project"`
	ProjectSummary *string `json:"project_summary"`
	DevStage       *string `json:"dev_stage"`

	DemoLink     *string `json:"demo_link"`
	ProjectVideo *string `json:"project_video"`

	KeyMilestones        *string `json:"key_milestones"`
	CurrentChallenges    *string `json:"current_challenges"`
	ProblemStatement     *string `json:"problem_statement"`
	TargetAudience       *string `json:"target_audience"`
	ExpectedImpact       *string `json:"expected_impact"`
	AdditionalMotivation *string `json:"additional_motivation"`

	SupportingDocuments *string `json:"supporting_documents"`

	Confirmation *bool `json:"confirmation"`
}

type IncubationFormScoreRequest struct {
	ProblemUnderstanding int `json:"problem_understanding"`
	SolutionFit          int `json:"solution_fit"`
	TechnicalSoundness   int `json:"technical_soundness"`
}

// IncubationFormSummary is the trimmed shape used by list endpoints.
type IncubationFormSummary struct {
	ID             uint   `json:"id"`
	ProjectID      string `json:"project_id"`
	ProjectTitle   string `json:"project_title"`
	TeamLeaderName string `json:"team_leader_name"`
	DevStage       string `json:"dev_stage"`
	Status         string `json:"status"`
}

func newIncubationFormSummary(form models.IncubationForm) IncubationFormSummary {
	return IncubationFormSummary{
		ID:             form.ID,
		ProjectID:      form.ProjectID,
		ProjectTitle:   form.ProjectTitle,
		TeamLeaderName: form.TeamLeaderName,
		DevStage:       form.DevStage,
		Status:         form.Status,
	}
}

func ListIncubationForms(ctx *gin.Context) {
	var forms []models.IncubationForm

	if err := db.DB.Order("id").Find(&forms).Error; err != nil {
		internalError(ctx, "Failed to retrieve incubation forms", err)
		return
	}

	summaries := make([]IncubationFormSummary, 0, len(forms))
	for _, form := range forms {
		summaries = append(summaries, newIncubationFormSummary(form))
	}

	ctx.JSON(http.StatusOK, summaries)
}

// CreateIncubationForm accepts a public submission. Whatever the payload
// claims, the stored form starts out pending.
func CreateIncubationForm(ctx *gin.Context) {
	form, ok := incubationFormFromRequest(ctx)
	if !ok {
		return
	}

	if err := db.DB.Create(&form).Error; err != nil {
		if validation.IsUniqueViolation(err) {
			validationError(ctx, duplicateProjectError(form.ProjectID))
			return
		}
		internalError(ctx, "Failed to create incubation form", err)
		return
	}

	ctx.JSON(http.StatusCreated, form)
}

// SubmitIncubationForm is the public intake alias. It stores the same record
// as CreateIncubationForm but replies with a bare confirmation.
func SubmitIncubationForm(ctx *gin.Context) {
	form, ok := incubationFormFromRequest(ctx)
	if !ok {
		return
	}

	if err := db.DB.Create(&form).Error; err != nil {
		if validation.IsUniqueViolation(err) {
			validationError(ctx, duplicateProjectError(form.ProjectID))
			return
		}
		internalError(ctx, "Failed to create incubation form", err)
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"success": "Form submitted successfully"})
}

func duplicateProjectError(projectID string) *apperr.Error {
	return apperr.Newf(apperr.CodeDuplicateProjectID,
		"An incubation form for project %s already exists", projectID)
}

func GetIncubationForm(ctx *gin.Context) {
	form, ok := incubationFormFromPath(ctx)
	if !ok {
		return
	}

	ctx.JSON(http.StatusOK, form)
}

func UpdateIncubationForm(ctx *gin.Context) {
	form, ok := incubationFormFromPath(ctx)
	if !ok {
		return
	}

	var req UpdateIncubationFormRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	applyStringUpdate := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}

	applyStringUpdate(&form.TeamLeaderName, req.TeamLeaderName)
	applyStringUpdate(&form.TeamLeaderYear, req.TeamLeaderYear)
	applyStringUpdate(&form.TeamLeaderEmail, req.TeamLeaderEmail)
	applyStringUpdate(&form.TeamLeaderPhone, req.TeamLeaderPhone)
	applyStringUpdate(&form.TeamMembers, req.TeamMembers)
	applyStringUpdate(&form.ProjectTitle, req.ProjectTitle)
	applyStringUpdate(&form.ProjectDomain, req.ProjectDomain)
	applyStringUpdate(&form.ProjectSummary, req.ProjectSummary)
	applyStringUpdate(&form.DevStage, req.DevStage)
	applyStringUpdate(&form.DemoLink, req.DemoLink)
	applyStringUpdate(&form.ProjectVideo, req.ProjectVideo)
	applyStringUpdate(&form.KeyMilestones, req.KeyMilestones)
	applyStringUpdate(&form.CurrentChallenges, req.CurrentChallenges)
	applyStringUpdate(&form.ProblemStatement, req.ProblemStatement)
	applyStringUpdate(&form.TargetAudience, req.TargetAudience)
	applyStringUpdate(&form.ExpectedImpact, req.ExpectedImpact)
	applyStringUpdate(&form.AdditionalMotivation, req.AdditionalMotivation)
	applyStringUpdate(&form.SupportingDocuments, req.SupportingDocuments)

	if req.IsAIProject != nil {
		form.IsAIProject = *req.IsAIProject
	}

	if req.Confirmation != nil {
		form.Confirmation = *req.Confirmation
	}

	if err := db.DB.Save(&form).Error; err != nil {
		internalError(ctx, "Failed to update incubation form", err)
		return
	}

	ctx.JSON(http.StatusOK, form)
}

func DeleteIncubationForm(ctx *gin.Context) {
	form, ok := incubationFormFromPath(ctx)
	if !ok {
		return
	}

	if err := db.DB.Delete(&form).Error; err != nil {
		internalError(ctx, "Failed to delete incubation form", err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// UpdateIncubationFormStatus moves a form through the review pipeline.
func UpdateIncubationFormStatus(ctx *gin.Context) {
	form, ok := incubationFormFromPath(ctx)
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

	if !models.IsValidIncubationFormStatus(req.Status) {
		validationError(ctx, apperr.New(apperr.CodeInvalidStatus, "Invalid status value"))
		return
	}

	form.Status = req.Status

	if err := db.DB.Save(&form).Error; err != nil {
		internalError(ctx, "Failed to update incubation form", err)
		return
	}

	ctx.JSON(http.StatusOK, form)
}

func ListPendingIncubationForms(ctx *gin.Context) {
	var forms []models.IncubationForm

	if err := db.DB.Where("status = ?", models.IncubationFormStatusPending).Order("id").Find(&forms).Error; err != nil {
		internalError(ctx, "Failed to retrieve incubation forms", err)
		return
	}

	summaries := make([]IncubationFormSummary, 0, len(forms))
	for _, form := range forms {
		summaries = append(summaries, newIncubationFormSummary(form))
	}

	ctx.JSON(http.StatusOK, summaries)
}

func GetIncubationFormScores(ctx *gin.Context) {
	form, ok := incubationFormFromPath(ctx)
	if !ok {
		return
	}

	var score models.IncubationFormScore

	if err := db.DB.Where("incubation_form_id = ?", form.ID).First(&score).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{})
		} else {
			internalError(ctx, "Failed to retrieve scores", err)
		}
		return
	}

	ctx.JSON(http.StatusOK, scoreResponse(score))
}

// SubmitIncubationFormScores upserts the jury's sub-scores for a form. A
// second submission replaces the first rather than adding a row.
func SubmitIncubationFormScores(ctx *gin.Context) {
	form, ok := incubationFormFromPath(ctx)
	if !ok {
		return
	}

	var req IncubationFormScoreRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	score := models.IncubationFormScore{
		IncubationFormID:     form.ID,
		ProblemUnderstanding: req.ProblemUnderstanding,
		SolutionFit:          req.SolutionFit,
		TechnicalSoundness:   req.TechnicalSoundness,
	}

	err := db.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "incubation_form_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"problem_understanding", "solution_fit", "technical_soundness", "updated_at",
		}),
	}).Create(&score).Error

	if err != nil {
		internalError(ctx, "Failed to save scores", err)
		return
	}

	ctx.JSON(http.StatusOK, scoreResponse(score))
}

func scoreResponse(score models.IncubationFormScore) gin.H {
	return gin.H{
		"problem_understanding": score.ProblemUnderstanding,
		"solution_fit":          score.SolutionFit,
		"technical_soundness":   score.TechnicalSoundness,
		"total_score":           score.TotalScore(),
	}
}

func incubationFormFromRequest(ctx *gin.Context) (models.IncubationForm, bool) {
	var req IncubationFormRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return models.IncubationForm{}, false
	}

	devStage := req.DevStage
	if devStage == "" {
		devStage = models.DevStageIdea
	}

	return models.IncubationForm{
		ProjectID:            req.ProjectID,
		TeamLeaderName:       req.TeamLeaderName,
		TeamLeaderYear:       req.TeamLeaderYear,
		TeamLeaderEmail:      req.TeamLeaderEmail,
		TeamLeaderPhone:      req.TeamLeaderPhone,
		TeamMembers:          req.TeamMembers,
		ProjectTitle:         req.ProjectTitle,
		ProjectDomain:        req.ProjectDomain,
		IsAIProject:          req.IsAIProject,
		ProjectSummary:       req.ProjectSummary,
		DevStage:             devStage,
		DemoLink:             req.DemoLink,
		ProjectVideo:         req.ProjectVideo,
		KeyMilestones:        req.KeyMilestones,
		CurrentChallenges:    req.CurrentChallenges,
		ProblemStatement:     req.ProblemStatement,
		TargetAudience:       req.TargetAudience,
		ExpectedImpact:       req.ExpectedImpact,
		AdditionalMotivation: req.AdditionalMotivation,
		SupportingDocuments:  req.SupportingDocuments,
		Confirmation:         req.Confirmation,
		Status:               models.IncubationFormStatusPending,
	}, true
}

func incubationFormFromPath(ctx *gin.Context) (models.IncubationForm, bool) {
	var form models.IncubationForm

	if err := db.DB.First(&form, ctx.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			notFound(ctx, "Incubation form not found")
		} else {
			internalError(ctx, "Failed to retrieve incubation form", err)
		}
		return models.IncubationForm{}, false
	}

	return form, true
}
