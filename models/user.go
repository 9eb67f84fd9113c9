package models

import "time"

// User is a leaderboard participant. Points only move upward via claims;
// the bulk admin reset is the sole delete path. Names carry no uniqueness
// constraint here; the leaderboard view deduplicates at read time.
type User struct {
	ID        string    `gorm:"primaryKey;type:uuid" json:"id"`
	Name      string    `gorm:"index;not null" json:"name"`
	Points    int       `gorm:"not null;default:0" json:"points"`
	CreatedAt time.Time `json:"createdAt" gorm:"autoCreateTime"`
}
