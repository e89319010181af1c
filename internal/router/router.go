package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/internhub-dev/internhub/internal/handlers"
	"github.com/internhub-dev/internhub/internal/middleware"
	"github.com/internhub-dev/internhub/internal/types"
)

func NewRouter(limiter *middleware.RedisLimiter) *gin.Engine {
	r := gin.Default()

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
		api.GET("/ws/:internship_id", middleware.AuthMiddleware(), handlers.WorkspaceSocket)

		auth := api.Group("/auth")
		{
			auth.POST("/register", middleware.RateLimit(limiter, "register", 10, time.Minute), handlers.Register)
			auth.POST("/login", middleware.RateLimit(limiter, "login", 20, time.Minute), handlers.Login)
			auth.GET("/me", middleware.AuthMiddleware(), handlers.Me)
			auth.POST("/logout", handlers.Logout)
		}

		profiles := api.Group("/profiles", middleware.AuthMiddleware())
		{
			profiles.PUT("/intern", middleware.RequireRole(types.RoleIntern), handlers.UpsertInternProfile)
			profiles.GET("/intern", middleware.RequireRole(types.RoleIntern), handlers.GetInternProfile)
			profiles.PUT("/organization", middleware.RequireRole(types.RoleOrganization), handlers.UpsertOrganizationProfile)
			profiles.GET("/organization", middleware.RequireRole(types.RoleOrganization), handlers.GetOrganizationProfile)
		}

		internships := api.Group("/internships")
		{
			// Public catalog, no auth.
			internships.GET("", handlers.ListPublicInternships)

			authed := internships.Group("", middleware.AuthMiddleware())
			{
				authed.GET("/mine", middleware.RequireRole(types.RoleOrganization, types.RoleAdmin), handlers.ListMyInternships)
				authed.POST("", middleware.RequireRole(types.RoleOrganization), handlers.CreateInternship)
				authed.PATCH("/:internship_id", middleware.RequireRole(types.RoleOrganization, types.RoleAdmin), handlers.UpdateInternship)
				authed.DELETE("/:internship_id", middleware.RequireRole(types.RoleOrganization, types.RoleAdmin), handlers.DeleteInternship)
				authed.POST("/:internship_id/publish", middleware.RequireRole(types.RoleOrganization), handlers.PublishInternship)
				authed.POST("/:internship_id/approve", middleware.RequireRole(types.RoleAdmin), handlers.ApproveInternship)

				authed.POST("/:internship_id/tasks", middleware.RequireRole(types.RoleOrganization), handlers.CreateTask)
				authed.GET("/:internship_id/tasks", handlers.ListWorkspaceTasks)

				authed.POST("/:internship_id/applications", middleware.RequireRole(types.RoleIntern), handlers.CreateApplication)
				authed.GET("/:internship_id/applications", middleware.RequireRole(types.RoleOrganization), handlers.ListInternshipApplications)
			}

			// Registered after /mine so the literal route wins.
			internships.GET("/:internship_id", handlers.GetPublicInternship)
		}

		tasks := api.Group("/tasks", middleware.AuthMiddleware())
		{
			tasks.PATCH("/:task_id", middleware.RequireRole(types.RoleOrganization), handlers.UpdateTask)
			tasks.DELETE("/:task_id", middleware.RequireRole(types.RoleOrganization), handlers.DeleteTask)
			tasks.POST("/:task_id/submissions", middleware.RequireRole(types.RoleIntern), handlers.CreateSubmission)
			tasks.GET("/:task_id/submissions", middleware.RequireRole(types.RoleOrganization), handlers.ListTaskSubmissions)
		}

		applications := api.Group("/applications", middleware.AuthMiddleware())
		{
			applications.GET("", middleware.RequireRole(types.RoleIntern), handlers.ListMyApplications)
			applications.POST("/:application_id/withdraw", middleware.RequireRole(types.RoleIntern), handlers.WithdrawApplication)
			applications.PATCH("/:application_id/status", middleware.RequireRole(types.RoleOrganization), handlers.UpdateApplicationStatus)
		}

		submissions := api.Group("/submissions", middleware.AuthMiddleware())
		{
			submissions.GET("/mine", middleware.RequireRole(types.RoleIntern), handlers.ListMySubmissions)
			submissions.PATCH("/:submission_id", middleware.RequireRole(types.RoleIntern), handlers.UpdateSubmission)
			submissions.PATCH("/:submission_id/status", middleware.RequireRole(types.RoleOrganization), handlers.UpdateSubmissionStatus)
			submissions.PUT("/:submission_id/evaluation", middleware.RequireRole(types.RoleOrganization), handlers.EvaluateSubmission)
			submissions.GET("/:submission_id/evaluation", handlers.GetEvaluation)
		}

		uploads := api.Group("/uploads", middleware.AuthMiddleware())
		{
			uploads.POST("", handlers.Upload)
			uploads.GET("/*path", handlers.UploadURL)
		}
	}

	return r
}
