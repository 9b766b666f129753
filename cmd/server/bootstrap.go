package main

import (
	"github.com/rajapi-cop/projecthub/internal/config"
	"github.com/rajapi-cop/projecthub/internal/handlers"
	"github.com/rajapi-cop/projecthub/internal/models"
	"github.com/rajapi-cop/projecthub/internal/repository"
	"github.com/rajapi-cop/projecthub/internal/services"
	"github.com/rajapi-cop/projecthub/internal/utils"
	"github.com/rajapi-cop/projecthub/pkg/logger"
	"github.com/robfig/cron/v3"
)

// appServices holds all initialized handlers and background runners.
type appServices struct {
	authHandler      *handlers.AuthHandler
	projectHandler   *handlers.ProjectHandler
	memberHandler    *handlers.MemberHandler
	taskHandler      *handlers.TaskHandler
	documentHandler  *handlers.DocumentHandler
	versionHandler   *handlers.VersionHandler
	systemLogHandler *handlers.SystemLogHandler
	healthHandler    *handlers.HealthHandler
	logCleanup       *cron.Cron
}

// bootstrap initializes database, services, handlers and schedulers.
func bootstrap(cfg *config.Config) *appServices {
	utils.SetJWTSecret(cfg.JWT.Secret)

	if err := models.InitDB(&cfg.Database); err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	if err := models.AutoMigrate(); err != nil {
		logger.Fatalf("Failed to migrate database: %v", err)
	}

	db := models.GetDB()
	store := repository.NewStore(db)

	services.InitSystemLogger(db)
	logCleanup := services.StartLogCleanupScheduler(db, cfg.Log.RetentionDays)

	authService := services.NewAuthService(store, &cfg.JWT)
	if err := authService.EnsureAdmin(cfg.Admin.Username, cfg.Admin.Password); err != nil {
		logger.Warn().Err(err).Msg("Failed to create admin user")
	}

	return &appServices{
		authHandler:      handlers.NewAuthHandler(authService),
		projectHandler:   handlers.NewProjectHandler(services.NewProjectService(store)),
		memberHandler:    handlers.NewMemberHandler(services.NewMemberService(store)),
		taskHandler:      handlers.NewTaskHandler(services.NewTaskService(store)),
		documentHandler:  handlers.NewDocumentHandler(services.NewDocumentService(store)),
		versionHandler:   handlers.NewVersionHandler(services.NewVersionService(store)),
		systemLogHandler: handlers.NewSystemLogHandler(services.NewSystemLogService(db)),
		healthHandler:    handlers.NewHealthHandler(db),
		logCleanup:       logCleanup,
	}
}

// shutdown stops the background schedulers.
func (s *appServices) shutdown() {
	if s.logCleanup != nil {
		s.logCleanup.Stop()
	}
	logger.Info().Msg("schedulers stopped")
}
