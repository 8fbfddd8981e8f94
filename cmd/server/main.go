package main

import (
	"log"
	"net/http"

	"profitfy/docs"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"profitfy/internal/auth"
	"profitfy/internal/cache"
	"profitfy/internal/config"
	"profitfy/internal/db"
	"profitfy/internal/handler"
	"profitfy/internal/model"
	"profitfy/internal/repository"
	"profitfy/internal/router"
	"profitfy/internal/service"
)

// @title Profitfy API
// @version 1.0
// @description User registration and login API with JWT session tokens.
// @host localhost:5000
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()

	if cfg.SwaggerHost != "" {
		docs.SwaggerInfo.Host = cfg.SwaggerHost
	}

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	if err := gormDB.AutoMigrate(&model.User{}); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)

	// Initialize auth components
	hasher := auth.NewPasswordHasher(cfg.Argon2)
	jwtService := auth.NewJWTService(cfg.JWTSecret, cfg.TokenTTL)

	// Initialize services
	userService := service.NewUserService(userRepo, hasher, cacheClient)
	sessionService := service.NewSessionService(userRepo, hasher, jwtService)

	// Initialize handlers
	userHandler := handler.NewUserHandler(userService)
	sessionHandler := handler.NewSessionHandler(sessionService)

	// Register routes
	router.Register(e, cfg, userHandler, sessionHandler)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
