package router

import (
	"time"

	"github.com/ensia-dev/incubator/internal/handlers"
	"github.com/ensia-dev/incubator/internal/middleware"
	"github.com/ensia-dev/incubator/internal/types"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func NewRouter() *gin.Engine {
	r := gin.Default()

	// Add CORS middleware
	r.Use(cors.New(cors.Config{
		AllowOrigins:     types.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	api := r.Group("/api")
	{
		api.GET("/health", handlers.HealthCheck)

		auth := api.Group("/auth")
		{
			auth.POST("/signup", handlers.Register)
			auth.POST("/login", handlers.Login)
			auth.GET("/me", middleware.AuthMiddleware(), handlers.Me)
		}

		users := api.Group("/users", middleware.OptionalAuthMiddleware())
		{
			users.GET("", handlers.ListUsers)
			users.POST("", handlers.CreateUser)
			users.GET("/:id", handlers.GetUser)
			users.PUT("/:id", handlers.UpdateUser)
			users.DELETE("/:id", handlers.DeleteUser)
		}

		api.GET("/roles", handlers.ListRoles)

		startups := api.Group("/startups", middleware.OptionalAuthMiddleware())
		{
			startups.GET("", handlers.ListStartups)
			startups.POST("", handlers.CreateStartup)
			startups.GET("/:id", handlers.GetStartup)
			startups.PUT("/:id", handlers.UpdateStartup)
			startups.DELETE("/:id", handlers.DeleteStartup)

			// Team management
			startups.GET("/:id/team", handlers.ListTeamMembers)
			startups.POST("/:id/team", handlers.CreateTeamMember)
			startups.GET("/:id/team/:member_id", handlers.GetTeamMember)
			startups.PUT("/:id/team/:member_id", handlers.UpdateTeamMember)
			startups.DELETE("/:id/team/:member_id", handlers.DeleteTeamMember)
		}

		applications := api.Group("/applications", middleware.OptionalAuthMiddleware())
		{
			applications.GET("", handlers.ListApplications)
			applications.POST("", handlers.CreateApplication)
			applications.GET("/:id", handlers.GetApplication)
			applications.PUT("/:id", handlers.UpdateApplication)
			applications.DELETE("/:id", handlers.DeleteApplication)
			applications.PUT("/:id/status", handlers.UpdateApplicationStatus)
			applications.GET("/:id/average-score", handlers.GetApplicationAverageScore)
			applications.GET("/:id/votes", handlers.ListApplicationVotes)
			applications.POST("/:id/votes", handlers.SubmitApplicationVote)
			applications.GET("/:id/scores", handlers.ListApplicationScores)
			applications.POST("/:id/scores", handlers.SubmitApplicationScore)
		}

		stages := api.Group("/stages", middleware.OptionalAuthMiddleware())
		{
			stages.GET("", handlers.ListStages)
			stages.POST("", handlers.CreateStage)
			stages.GET("/:id", handlers.GetStage)
			stages.PUT("/:id", handlers.UpdateStage)
			stages.DELETE("/:id", handlers.DeleteStage)
		}

		deliverables := api.Group("/deliverables", middleware.AuthMiddleware())
		{
			deliverables.GET("", handlers.ListDeliverables)
			deliverables.POST("", handlers.CreateDeliverable)
			deliverables.GET("/:id", handlers.GetDeliverable)
			deliverables.PUT("/:id", handlers.UpdateDeliverable)
			deliverables.DELETE("/:id", handlers.DeleteDeliverable)
			deliverables.POST("/:id/evaluate", handlers.EvaluateDeliverable)
			deliverables.GET("/:id/evaluations", handlers.ListDeliverableEvaluations)
		}

		resources := api.Group("/resources", middleware.OptionalAuthMiddleware())
		{
			resources.GET("", handlers.ListResources)
			resources.POST("", handlers.CreateResource)
			resources.GET("/:id", handlers.GetResource)
			resources.PUT("/:id", handlers.UpdateResource)
			resources.DELETE("/:id", handlers.DeleteResource)
		}

		requests := api.Group("/resource-requests", middleware.OptionalAuthMiddleware())
		{
			requests.GET("", handlers.ListResourceRequests)
			requests.POST("", handlers.CreateResourceRequestHandler)
			requests.PUT("/:id/status", handlers.UpdateResourceRequestStatus)
		}

		allocations := api.Group("/resource-allocations", middleware.OptionalAuthMiddleware())
		{
			allocations.GET("", handlers.ListResourceAllocations)
			allocations.POST("", handlers.CreateResourceAllocation)
		}

		events := api.Group("/events", middleware.OptionalAuthMiddleware())
		{
			events.GET("", handlers.ListEvents)
			events.POST("", handlers.CreateEvent)
			events.GET("/:id", handlers.GetEvent)
			events.PUT("/:id", handlers.UpdateEvent)
			events.DELETE("/:id", handlers.DeleteEvent)
		}

		jury := api.Group("/jury-evaluations", middleware.AuthMiddleware())
		{
			jury.GET("", handlers.ListJuryEvaluations)
			jury.POST("", handlers.CreateJuryEvaluation)
			jury.GET("/:id", handlers.GetJuryEvaluation)
		}

		files := api.Group("/files", middleware.AuthMiddleware())
		{
			files.POST("/upload", handlers.CreateFileMetadata)
			files.GET("", handlers.ListFiles)
			files.GET("/:id", handlers.GetFile)
		}

		notifications := api.Group("/notifications", middleware.AuthMiddleware())
		{
			notifications.GET("", handlers.ListNotifications)
			notifications.PUT("/:id/read", handlers.MarkNotificationRead)
			notifications.DELETE("/:id", handlers.DeleteNotification)
		}

		forms := api.Group("/incubation-form", middleware.OptionalAuthMiddleware())
		{
			forms.GET("", handlers.ListIncubationForms)
			forms.POST("", handlers.CreateIncubationForm)
			forms.GET("/pending", handlers.ListPendingIncubationForms)
			forms.POST("/my-submissions", handlers.SubmitIncubationForm)
			forms.GET("/:id", handlers.GetIncubationForm)
			forms.PUT("/:id", handlers.UpdateIncubationForm)
			forms.DELETE("/:id", handlers.DeleteIncubationForm)
			forms.PUT("/:id/status", handlers.UpdateIncubationFormStatus)
			forms.GET("/:id/scores", handlers.GetIncubationFormScores)
			forms.POST("/:id/scores", handlers.SubmitIncubationFormScores)
		}

		mentors := api.Group("/mentors", middleware.OptionalAuthMiddleware())
		{
			mentors.GET("", handlers.ListMentors)
			mentors.POST("/create", handlers.CreateMentor)
			mentors.GET("/:id", handlers.MentorDetail)
			mentors.PUT("/:id", handlers.MentorDetail)
			mentors.DELETE("/:id", handlers.MentorDetail)
		}

		trainers := api.Group("/trainers", middleware.OptionalAuthMiddleware())
		{
			trainers.GET("", handlers.ListTrainers)
			trainers.POST("/create", handlers.CreateTrainer)
			trainers.GET("/:id", handlers.TrainerDetail)
			trainers.PUT("/:id", handlers.TrainerDetail)
			trainers.DELETE("/:id", handlers.TrainerDetail)
		}

		analytics := api.Group("/analytics")
		{
			analytics.GET("/dashboard", handlers.DashboardStats)
			analytics.GET("/startup-status", handlers.StartupStatusAnalytics)
			analytics.GET("/application-status", handlers.ApplicationStatusAnalytics)
			analytics.GET("/resource-utilization", handlers.ResourceUtilizationAnalytics)
			analytics.GET("/acceptance-rate", handlers.AcceptanceRateAnalytics)
			analytics.GET("/survival-rate", handlers.SurvivalRateAnalytics)
		}
	}

	return r
}
