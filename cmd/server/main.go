package main

import (
	"log"
	"net/http"

	_ "foodshare/docs" // swagger docs

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"foodshare/internal/auth"
	"foodshare/internal/cache"
	"foodshare/internal/config"
	"foodshare/internal/db"
	"foodshare/internal/geocode"
	"foodshare/internal/handler"
	"foodshare/internal/model"
	"foodshare/internal/repository"
	"foodshare/internal/router"
	"foodshare/internal/service"
)

// @title Foodshare API
// @version 1.0
// @description Food donation and booking API with geocoded listings and JWT authentication.
// @host localhost:5000
// @BasePath /api/v1
// @schemes http
func main() {
	// .env is optional; real environments set variables directly
	_ = godotenv.Load()

	cfg := config.Load()

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Food{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	geocoder := geocode.NewHTTPGeocoder(cfg.GeocoderURL, cfg.GeocoderAPIKey, cacheClient)

	userRepo := repository.NewUserRepository(gormDB)
	foodRepo := repository.NewFoodRepository(gormDB)

	jwtService := auth.NewJWTService(cfg.JWTSecret, cfg.JWTExpire)

	authService := service.NewAuthService(userRepo, foodRepo, jwtService)
	foodService := service.NewFoodService(foodRepo, geocoder, cfg.FileUploadPath, cfg.MaxFileUpload)

	authHandler := handler.NewAuthHandler(authService, cfg.CookieExpireDays, cfg.IsProduction())
	foodHandler := handler.NewFoodHandler(foodService)

	router.Register(e, cfg, jwtService, authHandler, foodHandler)

	log.Printf("server running in %s mode on port %s", cfg.Env, cfg.ServerPort)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
