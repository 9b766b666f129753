package main

import (
	"github.com/gin-gonic/gin"
	"github.com/rajapi-cop/projecthub/internal/config"
	"github.com/rajapi-cop/projecthub/internal/middleware"
	"github.com/rajapi-cop/projecthub/pkg/logger"
)

// registerRoutes sets up all HTTP routes on the given Gin engine.
func registerRoutes(r *gin.Engine, cfg *config.Config, svc *appServices) {
	r.Use(logger.GinLogger(), logger.GinRecovery())
	r.RedirectTrailingSlash = false
	r.RedirectFixedPath = false
	r.Use(middleware.CORS())

	if cfg.RateLimit.Enabled {
		r.Use(middleware.RateLimit(cfg.RateLimit.RPS, cfg.RateLimit.Burst))
	}

	// Health check
	r.GET("/health", svc.healthHandler.CheckHealth)

	api := r.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/login", svc.authHandler.Login)
		}

		// Protected routes
		protected := api.Group("")
		protected.Use(middleware.AuthRequired(), middleware.AuditLog())
		{
			protected.GET("/auth/me", svc.authHandler.Me)

			// Projects
			protected.GET("/projects", svc.projectHandler.List)
			protected.GET("/projects/:id", svc.projectHandler.Get)
			protected.POST("/projects", svc.projectHandler.Create)
			protected.PUT("/projects/:id", svc.projectHandler.Update)
			protected.DELETE("/projects/:id", svc.projectHandler.Delete)

			// Members
			protected.GET("/projects/:id/members", svc.memberHandler.List)
			protected.POST("/projects/:id/members", svc.memberHandler.Add)
			protected.DELETE("/projects/:id/members/:userId", svc.memberHandler.Remove)

			// Tasks
			protected.GET("/projects/:id/tasks", svc.taskHandler.List)
			protected.POST("/projects/:id/tasks", svc.taskHandler.Create)
			protected.PUT("/projects/:id/tasks/:taskId", svc.taskHandler.Update)
			protected.DELETE("/projects/:id/tasks/:taskId", svc.taskHandler.Delete)

			// Documents
			protected.GET("/projects/:id/documents", svc.documentHandler.List)
			protected.POST("/projects/:id/documents", svc.documentHandler.Add)
			protected.PUT("/projects/:id/documents/:docId", svc.documentHandler.Update)
			protected.DELETE("/projects/:id/documents/:docId", svc.documentHandler.Remove)

			// Version history and restore
			protected.GET("/projects/:id/versions", svc.versionHandler.List)
			protected.POST("/projects/:id/versions/restore", svc.versionHandler.Restore)

			// Operation logs (admin only, enforced in handler)
			protected.GET("/system/logs", svc.systemLogHandler.List)
		}
	}
}
