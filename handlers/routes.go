package handlers

import (
	"leaderboard-system/services"

	"github.com/gofiber/fiber/v2"
)

func SetupLeaderboardRoutes(app *fiber.App, leaderboardService *services.LeaderboardService) {
	api := app.Group("/api")

	api.Get("/test", leaderboardService.Ping)
	api.Get("/users", leaderboardService.GetUsers)
	api.Post("/users", leaderboardService.AddUser)
	api.Post("/claim", leaderboardService.ClaimPoints)
	api.Get("/leaderboard", leaderboardService.GetLeaderboard)
	api.Get("/history", leaderboardService.GetHistory)

	// Maintenance endpoints
	api.Post("/reset", leaderboardService.Reset)
	api.Post("/fix-history", leaderboardService.FixHistory)
}
