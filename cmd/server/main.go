package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"

	"useraccounts/docs"
	"useraccounts/internal/auth"
	"useraccounts/internal/cache"
	"useraccounts/internal/config"
	"useraccounts/internal/db"
	"useraccounts/internal/handler"
	"useraccounts/internal/logger"
	"useraccounts/internal/repository"
	"useraccounts/internal/router"
	"useraccounts/internal/service"
)

const shutdownTimeout = 10 * time.Second

// @title User Accounts API
// @version 1.0
// @description User registration, login and bearer-token protected user management.
// @host localhost:8080
// @BasePath /
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()
	log := logger.New(cfg.LogLevel)

	gormDB, err := db.New(cfg.DBDriver, cfg.DatabaseURL, log)
	if err != nil {
		log.WithError(err).Fatal("database init")
	}

	if cfg.ResetDB {
		log.Warn("RESET_DB=true detected, dropping users table")
		if err := repository.Reset(gormDB); err != nil {
			log.WithError(err).Warn("failed to drop users table (may not exist)")
		}
	}

	if err := repository.Migrate(gormDB); err != nil {
		log.WithError(err).Fatal("auto-migrate")
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB, "useraccounts:")
	defer cacheClient.Close()
	pingCtx, cancelPing := context.WithTimeout(context.Background(), 2*time.Second)
	if err := cacheClient.Ping(pingCtx); err != nil {
		log.WithError(err).Warn("redis unavailable, user cache will miss")
	}
	cancelPing()

	// Initialize auth components
	hasher := auth.NewBcryptHasher(cfg.BcryptCost)
	tokenService := auth.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)

	// Initialize repositories and services
	userRepo := repository.NewUserRepository(gormDB)
	authService := service.NewAuthService(userRepo, hasher, tokenService, log)
	userService := service.NewUserService(userRepo, hasher, cacheClient, cfg.UserCacheTTL, log)

	e := echo.New()
	router.Register(
		e,
		log,
		tokenService,
		handler.NewAuthHandler(authService),
		handler.NewUserHandler(userService),
	)

	docs.SwaggerInfo.Host = swaggerHost(cfg.SwaggerHost, cfg.ServerPort)
	log.Infof("Swagger documentation available at: http://%s/swagger/index.html", docs.SwaggerInfo.Host)

	go func() {
		addr := ":" + cfg.ServerPort
		log.WithField("addr", addr).Info("server starting")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("server start")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.WithError(err).Error("server shutdown")
	}
	if sqlDB, err := gormDB.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

// swaggerHost strips any scheme from the configured host.
func swaggerHost(configured, port string) string {
	if configured == "" {
		return "localhost:" + port
	}
	host := strings.TrimPrefix(configured, "http://")
	return strings.TrimPrefix(host, "https://")
}
