package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"agency-site/config"
	"agency-site/database"
	routes "agency-site/internal/app/http"
	"agency-site/internal/app/http/middleware"
	"agency-site/internal/logging"
	"agency-site/internal/notify"
	"agency-site/internal/ratelimit"
	"agency-site/internal/store"
	"agency-site/internal/uploads"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

func main() {
	logging.Setup("info", false)
	config.LoadEnv()
	logging.Setup(config.LOG_LEVEL, config.GIN_MODE == gin.DebugMode)
	gin.SetMode(config.GIN_MODE)

	database.InitDB()
	st := store.NewGormStore(database.DB)

	up := uploads.NewHandler(config.UPLOAD_DIR, config.UPLOAD_MAX_BYTES, uploads.AllowedTypes(config.UPLOAD_ALLOW_WEBM), st)

	var notifier notify.Notifier = notify.LogNotifier{}
	if config.SMTP_HOST != "" && config.CONTACT_NOTIFY_TO != "" {
		notifier = notify.NewSMTPNotifier(notify.SMTPConfig{
			Host:     config.SMTP_HOST,
			Port:     config.SMTP_PORT,
			User:     config.SMTP_USER,
			Password: config.SMTP_PASSWORD,
			From:     config.SMTP_FROM,
			To:       config.CONTACT_NOTIFY_TO,
		})
	}

	var limiter ratelimit.Limiter = ratelimit.NewMemoryLimiter(config.CONTACT_RATE_LIMIT, config.CONTACT_RATE_WINDOW)
	if config.REDIS_ADDR != "" {
		redisClient := redis.NewClient(&redis.Options{Addr: config.REDIS_ADDR})
		defer redisClient.Close()
		limiter = ratelimit.NewRedisLimiter(redisClient, "ratelimit:", config.CONTACT_RATE_LIMIT, config.CONTACT_RATE_WINDOW)
	}

	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.RequestLogger())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Split(config.CORS_ORIGIN, ","),
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.RegisterRoutes(r, routes.Deps{
		Store:    st,
		Uploads:  up,
		Notifier: notifier,
		Limiter:  limiter,
	})

	server := &http.Server{
		Addr:              ":" + config.PORT,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info().Str("port", config.PORT).Msg("Server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Graceful shutdown failed")
	}
	if sqlDB, err := database.DB.DB(); err == nil {
		sqlDB.Close()
	}
}
