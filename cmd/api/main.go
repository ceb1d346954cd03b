package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/cohortly/cohort-api/internal/config"
	"github.com/cohortly/cohort-api/internal/database"
	"github.com/cohortly/cohort-api/internal/handler"
	"github.com/cohortly/cohort-api/internal/middleware"
	"github.com/cohortly/cohort-api/internal/models"
	"github.com/cohortly/cohort-api/internal/repository"
	"github.com/cohortly/cohort-api/internal/router"
	"github.com/cohortly/cohort-api/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	db, err := database.ConnectPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(&models.Cohort{}, &models.User{}, &models.Submission{}, &models.Resource{}); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	redisClient, err := database.ConnectRedis(cfg.RedisURL)
	if err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}
	defer redisClient.Close()

	natsConn, err := database.ConnectNATS(cfg.NATSURL, cfg.AppName)
	if err != nil {
		log.Fatalf("failed to connect to nats: %v", err)
	}
	if natsConn != nil {
		defer natsConn.Close()
	}

	validate := validator.New(validator.WithRequiredStructEnabled())

	userRepo := repository.NewUserRepository(db)
	submissionRepo := repository.NewSubmissionRepository(db)
	resourceRepo := repository.NewResourceRepository(db)

	events := service.NewNATSEventPublisher(natsConn, cfg.EventSubjectBase, logger)

	submissionService := service.NewSubmissionService(submissionRepo, validate, events, logger)
	resourceService := service.NewResourceService(resourceRepo, validate, logger)
	webhookService := service.NewWebhookService(userRepo, logger)
	dashboardService := service.NewStudentDashboardService(userRepo, submissionRepo, redisClient, cfg.DashboardCacheTTL, logger)

	submissionHandler := handler.NewSubmissionHandler(submissionService, validate, logger)
	resourceHandler := handler.NewResourceHandler(resourceService, validate, logger)
	webhookHandler := handler.NewWebhookHandler(webhookService, cfg.ClerkWebhookSecret, logger)
	dashboardHandler := handler.NewStudentDashboardHandler(dashboardService, logger)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
	})

	middleware.Register(app, middleware.Config{Logger: &logger})
	router.Register(app, cfg, router.Dependencies{
		SubmissionHandler:       submissionHandler,
		ResourceHandler:         resourceHandler,
		StudentDashboardHandler: dashboardHandler,
		WebhookHandler:          webhookHandler,
		JWTMiddleware:           middleware.JWTProtected(cfg.JWTSecret),
	})

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(app)
}

func waitForShutdown(app *fiber.App) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	log.Println("server stopped")
}
