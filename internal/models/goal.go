package models

import "time"

// DefaultGoalIcon is used when a goal is created without an icon.
const DefaultGoalIcon = "⭐"

// Goal is a savings target.
type Goal struct {
	ID            int       `json:"id"`
	UserID        int       `json:"user_id"`
	Name          string    `json:"name"`
	TargetAmount  float64   `json:"target_amount"`
	CurrentAmount float64   `json:"current_amount"`
	Deadline      *string   `json:"deadline"` // optional YYYY-MM-DD, not validated
	Icon          string    `json:"icon"`
	CreatedAt     time.Time `json:"created_at"`
}
