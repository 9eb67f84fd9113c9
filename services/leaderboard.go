package services

import (
	"errors"
	"fmt"
	"log"
	"math/rand"
	"time"

	"leaderboard-system/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type LeaderboardService struct {
	DB *gorm.DB
}

func NewLeaderboardService(db *gorm.DB) *LeaderboardService {
	return &LeaderboardService{DB: db}
}

// LeaderboardEntry is one row of the deduplicated, ranked view.
type LeaderboardEntry struct {
	Rank      int        `json:"rank"`
	Name      string     `json:"name"`
	Points    int        `json:"points"`
	ID        string     `json:"id"`
	LastClaim *time.Time `json:"lastClaim"`
}

// HistoryEntry is a ClaimHistory row with the user name resolved for
// display: current User record first, then the frozen snapshot, then a
// sentinel when neither resolves.
type HistoryEntry struct {
	models.ClaimHistory
	UserName string `json:"userName"`
}

// Ping is a liveness probe.
func (s *LeaderboardService) Ping(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"message":   "Backend is working!",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// GetUsers returns all users ordered by name ascending.
func (s *LeaderboardService) GetUsers(c *fiber.Ctx) error {
	users := []models.User{}
	if err := s.DB.Order("name ASC").Find(&users).Error; err != nil {
		log.Printf("DB error fetching users: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch users"})
	}
	return c.JSON(users)
}

// AddUser creates a user with zero points. Duplicate names are tolerated
// at write time and resolved by the leaderboard view.
func (s *LeaderboardService) AddUser(c *fiber.Ctx) error {
	var req struct {
		Name string `json:"name"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Name is required"})
	}

	user := &models.User{
		ID:     uuid.NewString(),
		Name:   req.Name,
		Points: 0,
	}
	if err := s.DB.Create(user).Error; err != nil {
		log.Printf("DB error creating user: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create user"})
	}
	return c.JSON(user)
}

// ClaimPoints awards a random 1-10 point increment to the given user and
// appends a history entry snapshotting the post-increment state. The
// increment is a single atomic UPDATE; the history append follows it
// without a surrounding transaction.
func (s *LeaderboardService) ClaimPoints(c *fiber.Ctx) error {
	var req struct {
		UserID string `json:"userId"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.UserID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "User ID is required"})
	}

	var user models.User
	if err := s.DB.First(&user, "id = ?", req.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
		}
		log.Printf("DB error looking up user %s: %v", req.UserID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to claim points"})
	}

	points := rand.Intn(10) + 1

	if err := s.DB.Model(&models.User{}).Where("id = ?", user.ID).
		Update("points", gorm.Expr("points + ?", points)).Error; err != nil {
		log.Printf("DB error incrementing points for user %s: %v", user.ID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to claim points"})
	}
	if err := s.DB.First(&user, "id = ?", user.ID).Error; err != nil {
		log.Printf("DB error reloading user %s: %v", user.ID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to claim points"})
	}

	entry := &models.ClaimHistory{
		ID:     uuid.NewString(),
		UserID: user.ID,
		Points: points,
		UserSnapshot: models.UserSnapshot{
			Name:        user.Name,
			TotalPoints: user.Points,
		},
	}
	if err := s.DB.Create(entry).Error; err != nil {
		log.Printf("DB error writing claim history for user %s: %v", user.ID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to claim points"})
	}

	log.Printf("Points claimed: %d for user %s (%s). New total: %d", points, user.Name, user.ID, user.Points)
	return c.JSON(fiber.Map{"user": user, "points": points})
}

// GetLeaderboard returns users sorted by points descending, deduplicated
// by name keeping the first (highest) occurrence, with dense 1-based ranks
// and each survivor's most recent claim time.
func (s *LeaderboardService) GetLeaderboard(c *fiber.Ctx) error {
	var users []models.User
	if err := s.DB.Order("points DESC, created_at ASC").Find(&users).Error; err != nil {
		log.Printf("DB error fetching leaderboard users: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch leaderboard"})
	}

	seen := make(map[string]bool, len(users))
	entries := make([]LeaderboardEntry, 0, len(users))
	for _, u := range users {
		if seen[u.Name] {
			continue
		}
		seen[u.Name] = true

		var lastClaim *time.Time
		var last models.ClaimHistory
		err := s.DB.Select("claimed_at").Where("user_id = ?", u.ID).
			Order("claimed_at DESC").First(&last).Error
		switch {
		case err == nil:
			t := last.ClaimedAt
			lastClaim = &t
		case !errors.Is(err, gorm.ErrRecordNotFound):
			log.Printf("DB error fetching last claim for user %s: %v", u.ID, err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch leaderboard"})
		}

		entries = append(entries, LeaderboardEntry{
			Rank:      len(entries) + 1,
			Name:      u.Name,
			Points:    u.Points,
			ID:        u.ID,
			LastClaim: lastClaim,
		})
	}

	return c.JSON(entries)
}

// GetHistory returns the most recent 50 claims, newest first, with user
// names resolved.
func (s *LeaderboardService) GetHistory(c *fiber.Ctx) error {
	var history []models.ClaimHistory
	if err := s.DB.Order("claimed_at DESC").Limit(50).Find(&history).Error; err != nil {
		log.Printf("DB error fetching history: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch history"})
	}

	ids := make([]string, 0, len(history))
	idSet := make(map[string]bool, len(history))
	for _, h := range history {
		if h.UserID != "" && !idSet[h.UserID] {
			idSet[h.UserID] = true
			ids = append(ids, h.UserID)
		}
	}

	names := make(map[string]string, len(ids))
	if len(ids) > 0 {
		var users []models.User
		if err := s.DB.Where("id IN ?", ids).Find(&users).Error; err != nil {
			log.Printf("DB error resolving history user names: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch history"})
		}
		for _, u := range users {
			names[u.ID] = u.Name
		}
	}

	entries := make([]HistoryEntry, 0, len(history))
	for _, h := range history {
		name := names[h.UserID]
		if name == "" {
			name = h.UserSnapshot.Name
		}
		if name == "" {
			name = "Unknown User"
		}
		entries = append(entries, HistoryEntry{ClaimHistory: h, UserName: name})
	}

	return c.JSON(entries)
}

// Reset deletes all users and all claim history.
func (s *LeaderboardService) Reset(c *fiber.Ctx) error {
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&models.ClaimHistory{}).Error; err != nil {
			return err
		}
		return tx.Where("1 = 1").Delete(&models.User{}).Error
	})
	if err != nil {
		log.Printf("DB error resetting database: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to reset database"})
	}

	log.Println("Database reset successfully")
	return c.JSON(fiber.Map{"message": "Database reset successfully"})
}

// FixHistory removes history entries whose user reference no longer
// resolves. Cleanup for data written before snapshots were introduced.
func (s *LeaderboardService) FixHistory(c *fiber.Ctx) error {
	removed, err := s.RemoveOrphanedHistory()
	if err != nil {
		log.Printf("DB error fixing history: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fix history"})
	}

	log.Printf("Removed %d orphaned history entries", removed)
	return c.JSON(fiber.Map{"message": fmt.Sprintf("Fixed history: removed %d orphaned entries", removed)})
}

// RemoveOrphanedHistory deletes claim history rows with an empty or
// dangling user reference. Shared by the fix-history endpoint and the
// background sweeper.
func (s *LeaderboardService) RemoveOrphanedHistory() (int64, error) {
	res := s.DB.Where(
		"user_id = '' OR user_id NOT IN (?)",
		s.DB.Model(&models.User{}).Select("id"),
	).Delete(&models.ClaimHistory{})
	return res.RowsAffected, res.Error
}
