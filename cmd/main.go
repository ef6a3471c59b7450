package main

import (
	"context"
	"log"

	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"github.com/labstack/echo/v4"

	"taskboard/internal/caching"
	"taskboard/internal/common"
	"taskboard/internal/config"
	"taskboard/internal/handlers"
	"taskboard/internal/jobs/background"
	"taskboard/internal/middleware"
	"taskboard/internal/repositories"
	"taskboard/internal/services"
	"taskboard/pkg/database"
)

const version = "1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// Database connection pool
	pool, err := database.NewPool(cfg.Database.URL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	// Object storage for task attachments
	storage, err := services.NewMinioStorage(cfg.Minio.Endpoint, cfg.Minio.AccessKey, cfg.Minio.SecretKey, cfg.Minio.UseSSL)
	if err != nil {
		log.Fatalf("Failed to initialize object storage: %v", err)
	}
	if err := storage.EnsureBucketExists(context.Background(), cfg.Minio.Bucket); err != nil {
		log.Printf("WARN: Could not ensure attachment bucket exists: %v", err)
	}

	// Repositories
	userRepo := repositories.NewUserRepository(pool)
	projectRepo := repositories.NewProjectRepository(pool)
	taskRepo := repositories.NewTaskRepository(pool)
	attachmentRepo := repositories.NewAttachmentRepository(pool)

	// Cache service
	cacheSvc := caching.NewRedisCacheService(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)

	// Services
	passwordSvc := services.NewPasswordService()
	tokenSvc, err := services.NewTokenService(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.Audience, cfg.JWT.TTL())
	if err != nil {
		log.Fatalf("Failed to initialize token service: %v", err)
	}
	authSvc := services.NewAuthService(userRepo, passwordSvc, cacheSvc)
	projectSvc := services.NewProjectService(projectRepo)
	taskSvc := services.NewTaskService(taskRepo, projectRepo)
	attachmentSvc := services.NewAttachmentService(attachmentRepo, taskSvc, storage, cfg.Minio.Bucket)

	// Handlers
	authHandlers := handlers.NewAuthHandlers(authSvc, tokenSvc, cacheSvc)
	projectHandlers := handlers.NewProjectHandlers(projectSvc)
	taskHandlers := handlers.NewTaskHandlers(taskSvc)
	attachmentHandlers := handlers.NewAttachmentHandlers(attachmentSvc)

	// Background jobs
	scheduler, err := background.NewJobScheduler(userRepo, taskRepo, cacheSvc)
	if err != nil {
		log.Fatalf("Failed to initialize job scheduler: %v", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	// Create Echo instance
	e := echo.New()
	e.Validator = common.NewRequestValidator()

	// Global middleware
	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORS())
	e.Use(echoMiddleware.RemoveTrailingSlash())

	// Health endpoints (no auth required)
	e.GET("/health", handlers.HealthCheck)
	e.GET("/health/ready", func(c echo.Context) error {
		return handlers.ReadinessCheck(c, pool)
	})

	// Authentication routes (no token required)
	auth := e.Group("/auth")
	auth.POST("/register", authHandlers.Register)
	auth.POST("/login", authHandlers.Login)

	// Protected routes
	protected := e.Group("")
	protected.Use(middleware.JWTMiddleware(tokenSvc))

	protected.GET("/auth/me", authHandlers.Me)

	// Project routes
	protected.GET("/projects", projectHandlers.ListProjects)
	protected.POST("/projects", projectHandlers.CreateProject)
	protected.GET("/projects/:id", projectHandlers.GetProject)
	protected.PUT("/projects/:id", projectHandlers.UpdateProject)
	protected.DELETE("/projects/:id", projectHandlers.DeleteProject)

	// Task routes
	protected.GET("/tasks", taskHandlers.ListTasks)
	protected.POST("/tasks", taskHandlers.CreateTask)
	protected.GET("/tasks/:id", taskHandlers.GetTask)
	protected.PUT("/tasks/:id", taskHandlers.UpdateTask)
	protected.DELETE("/tasks/:id", taskHandlers.DeleteTask)

	// Task attachment routes
	protected.POST("/tasks/:id/attachments", attachmentHandlers.UploadAttachment)
	protected.GET("/tasks/:id/attachments", attachmentHandlers.ListAttachments)
	protected.GET("/tasks/:id/attachments/:attachmentID/url", attachmentHandlers.GetAttachmentURL)
	protected.DELETE("/tasks/:id/attachments/:attachmentID", attachmentHandlers.DeleteAttachment)

	log.Printf("taskboard server v%s starting on port %d", version, cfg.Server.Port)
	e.Logger.Fatal(e.Start(cfg.Server.Addr()))
}
