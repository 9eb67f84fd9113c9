package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"leaderboard-system/handlers"
	"leaderboard-system/models"
	"leaderboard-system/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  No .env file found, reading environment variables directly")
	}

	app := fiber.New()
	app.Use(logger.New())

	// Load allowed origins from environment variable
	allowedOriginsEnv := os.Getenv("ALLOWED_ORIGINS")
	if allowedOriginsEnv == "" {
		log.Println("⚠️  ALLOWED_ORIGINS environment variable not set, using default: http://localhost:5173")
		allowedOriginsEnv = "http://localhost:5173"
	}
	allowedOriginsList := strings.Split(allowedOriginsEnv, ",")
	for i, origin := range allowedOriginsList {
		allowedOriginsList[i] = strings.TrimSpace(origin)
	}
	allowedOriginsString := strings.Join(allowedOriginsList, ",")

	app.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOriginsString,
		AllowMethods:     "GET,POST,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept",
		AllowCredentials: true,
	}))

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL environment variable not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("failed to connect to database:", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.ClaimHistory{},
	); err != nil {
		log.Fatal("failed to migrate database:", err)
	}

	leaderboardService := services.NewLeaderboardService(db)
	handlers.SetupLeaderboardRoutes(app, leaderboardService)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Optional background cleanup of orphaned history entries
	if raw := os.Getenv("HISTORY_SWEEP_INTERVAL"); raw != "" {
		interval, err := time.ParseDuration(raw)
		if err != nil {
			log.Fatal("invalid HISTORY_SWEEP_INTERVAL:", err)
		}
		sched, err := leaderboardService.StartHistorySweeper(interval)
		if err != nil {
			log.Fatal("failed to start history sweeper:", err)
		}
		defer func() { _ = sched.Shutdown() }()
		log.Printf("✅ History sweeper running (every %s)", interval)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "5000"
	}

	go func() {
		if err := app.Listen(":" + port); err != nil {
			log.Printf("Server error: %v", err)
		}
	}()

	log.Printf("✅ Server running on http://localhost:%s", port)
	log.Printf("✅ CORS configured for origins: %s", allowedOriginsString)

	<-ctx.Done()
	log.Println("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
}
