package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/studytrack/progress-service/internal/models"
	"github.com/studytrack/progress-service/internal/repositories"
	"github.com/studytrack/progress-service/internal/services"
	"github.com/studytrack/progress-service/internal/utils"
)

type HandlerManager struct {
	authHandler     *AuthHandler
	videoHandler    *VideoHandler
	progressHandler *ProgressHandler
	adminHandler    *AdminHandler
	authMiddleware  *SessionAuthMiddleware

	serviceManager services.ServiceManager
}

type HandlerManagerConfig struct {
	ServiceManager services.ServiceManager
	Repository     repositories.Repository
	Logger         utils.Logger
	SessionSecret  string
	IsProduction   bool
}

func NewHandlerManager(cfg HandlerManagerConfig) *HandlerManager {
	authMiddleware := NewSessionAuthMiddleware(
		cfg.Repository.Session(),
		cfg.Repository.Role(),
		cfg.SessionSecret,
		cfg.IsProduction,
		cfg.Logger,
	)

	return &HandlerManager{
		authHandler:     NewAuthHandler(cfg.ServiceManager.Auth(), authMiddleware, cfg.Logger),
		videoHandler:    NewVideoHandler(cfg.ServiceManager.Video(), cfg.Logger),
		progressHandler: NewProgressHandler(cfg.ServiceManager.Progress(), cfg.Logger),
		adminHandler:    NewAdminHandler(cfg.ServiceManager.Auth(), cfg.ServiceManager.Student(), cfg.ServiceManager.Progress(), cfg.Logger),
		authMiddleware:  authMiddleware,
		serviceManager:  cfg.ServiceManager,
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	api := router.Group("/api")
	api.Use(hm.authMiddleware.SessionMiddleware())
	{
		auth := api.Group("/auth")
		{
			auth.POST("/signup", hm.authHandler.Signup)
			auth.POST("/login", hm.authHandler.Login)
			auth.POST("/logout", hm.authHandler.Logout)
			auth.GET("/session", hm.authHandler.Session)
		}

		videos := api.Group("/videos")
		videos.Use(hm.authMiddleware.AuthMiddleware())
		{
			videos.GET("", hm.videoHandler.List)
			videos.POST("", hm.authMiddleware.RequireRoleMiddleware(models.RoleAdmin), hm.videoHandler.Create)
			videos.PATCH("/:id", hm.authMiddleware.RequireRoleMiddleware(models.RoleAdmin), hm.videoHandler.Update)
			videos.DELETE("/:id", hm.authMiddleware.RequireRoleMiddleware(models.RoleAdmin), hm.videoHandler.Delete)
		}

		progress := api.Group("/progress")
		progress.Use(hm.authMiddleware.AuthMiddleware())
		{
			progress.GET("", hm.progressHandler.GetProgress)
			progress.POST("", hm.progressHandler.Upsert)
		}

		admin := api.Group("/admin")
		{
			// Unauthenticated bootstrap; single-shot via the admin-exists guard.
			admin.POST("/setup", hm.adminHandler.Setup)

			guarded := admin.Group("")
			guarded.Use(hm.authMiddleware.RequireRoleMiddleware(models.RoleAdmin))
			{
				guarded.GET("/students", hm.adminHandler.ListStudents)
				guarded.GET("/students/:userId/progress", hm.adminHandler.StudentProgress)
				guarded.GET("/progress", hm.adminHandler.AllProgress)
			}
		}
	}

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		status := "healthy"
		code := 200
		if err := hm.serviceManager.HealthCheck(c.Request.Context()); err != nil {
			status = "unhealthy"
			code = 503
		}
		c.JSON(code, gin.H{
			"status":  status,
			"service": "progress-service",
		})
	})
}
