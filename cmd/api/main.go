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
	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/GoldenFighter/contestboard/internal/config"
	"github.com/GoldenFighter/contestboard/internal/database"
	"github.com/GoldenFighter/contestboard/internal/handler"
	"github.com/GoldenFighter/contestboard/internal/middleware"
	"github.com/GoldenFighter/contestboard/internal/models"
	"github.com/GoldenFighter/contestboard/internal/repository"
	"github.com/GoldenFighter/contestboard/internal/router"
	"github.com/GoldenFighter/contestboard/internal/service"
	"github.com/GoldenFighter/contestboard/pkg/ai"
	cloud "github.com/GoldenFighter/contestboard/pkg/cloudinary"
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

	if err := db.AutoMigrate(&models.Board{}, &models.Submission{}); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	// Redis backs the attempt throttle and the event mirror; both degrade to
	// no-ops without it.
	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient, err = database.ConnectRedis(cfg.RedisURL)
		if err != nil {
			log.Fatalf("failed to connect to redis: %v", err)
		}
		defer redisClient.Close()
	}

	var natsConn *nats.Conn
	if cfg.NATSURL != "" {
		natsConn, err = nats.Connect(cfg.NATSURL)
		if err != nil {
			log.Fatalf("failed to connect to nats: %v", err)
		}
		defer natsConn.Close()
	}

	uploader, err := cloud.New(cloud.Config{
		CloudName: cfg.CloudinaryCloudName,
		APIKey:    cfg.CloudinaryAPIKey,
		APISecret: cfg.CloudinaryAPISecret,
		Folder:    cfg.CloudinaryUploadFolder,
	}, logger)
	if err != nil {
		log.Fatalf("failed to create cloudinary client: %v", err)
	}

	judge, err := buildJudge(cfg, logger)
	if err != nil {
		log.Fatalf("failed to create judge: %v", err)
	}

	validate := validator.New(validator.WithRequiredStructEnabled())
	auth := service.NewAdminEmailPolicy(cfg.AdminEmails)

	boardRepo := repository.NewBoardRepository(db)
	submissionRepo := repository.NewSubmissionRepository(db)

	events := service.NewEventPublisher(natsConn, cfg.EventSubject, redisClient, cfg.EventStream, logger)
	throttle := service.NewAttemptThrottle(redisClient, cfg.SubmissionCooldown, logger)
	normalizer := service.NewScoreNormalizer(judge, logger)

	boardService := service.NewBoardService(boardRepo, submissionRepo, auth, validate, events, logger)
	submissionService := service.NewSubmissionService(boardRepo, submissionRepo, throttle, normalizer, uploader, auth, validate, events, logger)

	boardHandler := handler.NewBoardHandler(boardService, validate, logger)
	submissionHandler := handler.NewSubmissionHandler(submissionService, validate, logger)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
	})

	middleware.Register(app, middleware.Config{Logger: &logger})
	router.Register(app, cfg, router.Dependencies{
		BoardHandler:      boardHandler,
		SubmissionHandler: submissionHandler,
		JWTMiddleware:     middleware.JWTProtected(cfg.JWTSecret),
	})

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(app)
}

func buildJudge(cfg config.Config, logger zerolog.Logger) (ai.Judge, error) {
	switch cfg.AIProvider {
	case "anthropic":
		return ai.NewAnthropicJudge(ai.AnthropicConfig{APIKey: cfg.AnthropicAPIKey, Model: cfg.JudgeModel})
	default:
		return ai.NewOpenAIJudge(ai.OpenAIConfig{
			APIKey: cfg.OpenAIAPIKey,
			Model:  cfg.JudgeModel,
			Logger: logger,
		})
	}
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
