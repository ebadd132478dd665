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

	"github.com/Esmaay/atlas-activity/internal/atlas"
	"github.com/Esmaay/atlas-activity/internal/cache"
	"github.com/Esmaay/atlas-activity/internal/config"
	"github.com/Esmaay/atlas-activity/internal/handler"
	"github.com/Esmaay/atlas-activity/internal/middleware"
	"github.com/Esmaay/atlas-activity/internal/router"
	"github.com/Esmaay/atlas-activity/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	redisClient, err := cache.ConnectRedis(cfg.RedisURL)
	if err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}
	if redisClient != nil {
		defer redisClient.Close()
	} else {
		logger.Info().Msg("redis url not configured, caching disabled")
	}

	atlasClient, err := atlas.NewHTTPClient(cfg.UpstreamBaseURL, cfg.UpstreamTimeout, logger)
	if err != nil {
		log.Fatalf("failed to create atlas client: %v", err)
	}

	validate := validator.New(validator.WithRequiredStructEnabled())

	activityService := service.NewActivityViewService(atlasClient, redisClient, cfg.PageCacheTTL, cfg.GroupCacheTTL, cfg.PageSize, logger)
	activityHandler := handler.NewActivityHandler(activityService, validate, logger)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
	})

	middleware.Register(app, middleware.Config{Logger: &logger})
	router.Register(app, cfg, router.Dependencies{
		ActivityHandler: activityHandler,
		RateLimiter:     middleware.RateLimit("activities", cfg.RateLimitMax, cfg.RateLimitWindow),
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
