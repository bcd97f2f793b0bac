package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gym24/internal/auth"
	"gym24/internal/config"
	"gym24/internal/db"
	"gym24/internal/email"
	"gym24/internal/housekeeping"
	"gym24/internal/logger"
	"gym24/internal/realtime"
	"gym24/internal/server"

	"github.com/redis/go-redis/v9"
)

// @title gym24 API
// @version 1.0
// @description Gym back office: classes, bookings, reviews, member contact and admin sessions.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if len(os.Args) == 3 && os.Args[1] == "hash-password" {
		hash, err := auth.HashPassword(os.Args[2])
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		fmt.Println(hash)
		return
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}
	logger.Init(cfg.LogLevel, cfg.LogFormat)
	logger.Info("Starting gym24")

	database, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()
	logger.Info("Database connected")

	if err := db.RunMigrations(database, cfg.MigrationsPath); err != nil {
		logger.Fatalf("Failed to run migrations: %v", err)
	}
	logger.Info("Migrations completed")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	defer redisClient.Close()

	var broadcaster realtime.Broadcaster
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.WithError(err).Warn("Redis unavailable, realtime fan-out limited to this process")
		broadcaster = realtime.NewMemoryBroadcaster()
	} else {
		broadcaster = realtime.NewRedisBroadcaster(redisClient)
	}
	defer broadcaster.Close()

	hub := realtime.NewHub(64)
	defer hub.Close()
	go func() {
		if err := realtime.NewPGFeed(cfg.DatabaseURL, hub).Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.WithError(err).Error("change feed stopped")
		}
	}()

	mailer := email.New(redisClient, email.Config{
		From:     cfg.EmailFrom,
		FromName: cfg.EmailFromName,
		SMTPHost: cfg.SMTPHost,
		SMTPPort: cfg.SMTPPort,
		SMTPUser: cfg.SMTPUser,
		SMTPPass: cfg.SMTPPass,
	})
	go mailer.Start(ctx)

	svc := server.NewServices(database, cfg, broadcaster, mailer)

	janitor := housekeeping.NewRunner(cfg.HousekeepingInterval,
		housekeeping.Job{Name: "admin_sessions", Run: svc.Authority.CleanExpiredSessions},
		housekeeping.Job{Name: "notifications", Run: svc.Notifications.Cleanup},
	)
	go janitor.Run(ctx)

	srv := server.New(cfg, svc, hub, broadcaster, database)

	serverErrChan := make(chan error, 1)
	go func() {
		logger.Infof("Server starting on port %s", cfg.Port)
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrChan <- err
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		logger.Infof("Received signal: %v", sig)
	case err := <-serverErrChan:
		logger.Errorf("Server error: %v", err)
	}

	logger.Info("Shutting down gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("Error during server shutdown: %v", err)
	}

	logger.Info("Server stopped")
}
