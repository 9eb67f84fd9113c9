package models

import "time"

// UserSnapshot freezes the claimer's name and post-claim total at write
// time so history stays readable even if the user is later renamed or
// removed. Always written from the post-increment state, never recomputed.
type UserSnapshot struct {
	Name        string `json:"name"`
	TotalPoints int    `json:"totalPoints"`
}

// ClaimHistory records one successful claim. Points is the awarded delta
// (1 to 10), never the running total. Rows are append-only; the only
// deletes are the admin reset and orphan cleanup.
type ClaimHistory struct {
	ID           string       `gorm:"primaryKey;type:uuid" json:"id"`
	UserID       string       `gorm:"index;not null" json:"userId"`
	Points       int          `gorm:"not null" json:"points"`
	ClaimedAt    time.Time    `gorm:"index;autoCreateTime" json:"claimedAt"`
	UserSnapshot UserSnapshot `gorm:"embedded;embeddedPrefix:snapshot_" json:"userSnapshot"`
}
