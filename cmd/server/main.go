package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/mathieu-neron/ViewTube/viewtube-go/internal/auth"
	"github.com/mathieu-neron/ViewTube/viewtube-go/internal/config"
	"github.com/mathieu-neron/ViewTube/viewtube-go/internal/db"
	"github.com/mathieu-neron/ViewTube/viewtube-go/internal/handler"
	"github.com/mathieu-neron/ViewTube/viewtube-go/internal/middleware"
	"github.com/mathieu-neron/ViewTube/viewtube-go/internal/repository"
	"github.com/mathieu-neron/ViewTube/viewtube-go/internal/router"
	"github.com/mathieu-neron/ViewTube/viewtube-go/internal/service"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		middleware.InitLogger("info", "viewtube-api")
		middleware.Logger.Fatal().Err(err).Msg("failed to load config")
	}

	middleware.InitLogger(cfg.Server.LogLevel, "viewtube-api")
	logger := middleware.Logger

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := db.NewPool(ctx, cfg.DB, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()

	if err := db.Migrate(ctx, pool); err != nil {
		logger.Fatal().Err(err).Msg("failed to apply schema")
	}

	rdb, err := db.NewRedis(ctx, cfg.Redis, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to redis")
	}
	if rdb != nil {
		defer rdb.Close()
	}

	handler.InitMetrics(prometheus.DefaultRegisterer, pool)

	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	accountRepo := repository.NewAccountRepo(pool)
	channelRepo := repository.NewChannelRepo(pool)
	videoRepo := repository.NewVideoRepo(pool)
	commentRepo := repository.NewCommentRepo(pool)

	accountSvc := service.NewAccountService(accountRepo, tokens)
	channelSvc := service.NewChannelService(channelRepo, videoRepo)
	videoSvc := service.NewVideoService(videoRepo, channelRepo)
	commentSvc := service.NewCommentService(commentRepo, videoRepo)

	loginLimiter := middleware.NewLoginRateLimiter(cfg.RateLimit.LoginLimit, cfg.RateLimit.LoginWindow, rdb)

	app := fiber.New(fiber.Config{
		AppName:      "ViewTube API",
		ServerHeader: "ViewTube",
	})

	router.Setup(app, &router.Handlers{
		User:    handler.NewUserHandler(accountSvc, cfg.Auth.CookieSecure || cfg.Server.IsProduction()),
		Channel: handler.NewChannelHandler(channelSvc),
		Video:   handler.NewVideoHandler(videoSvc),
		Comment: handler.NewCommentHandler(commentSvc),
		Stats:   handler.NewStatsHandler(accountSvc),
		Health:  handler.NewHealthHandler(pool, handler.RedisPinger(rdb)),
	}, router.Options{
		CORSOrigins:  cfg.Server.CORSOrigins,
		Tokens:       tokens,
		LoginLimiter: loginLimiter,
		GlobalRPS:    cfg.RateLimit.GlobalRPS,
		GlobalBurst:  cfg.RateLimit.GlobalBurst,
		Gatherer:     prometheus.DefaultGatherer,
	})

	go func() {
		<-ctx.Done()
		logger.Info().Msg("shutting down")
		if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
			logger.Error().Err(err).Msg("graceful shutdown failed")
		}
	}()

	logger.Info().
		Str("port", cfg.Server.Port).
		Str("env", cfg.Server.Environment).
		Msg("ViewTube API starting")

	if err := app.Listen(":"+cfg.Server.Port, fiber.ListenConfig{DisableStartupMessage: true}); err != nil {
		logger.Error().Err(err).Msg("server stopped")
		os.Exit(1)
	}
}
