package models

import "time"

// Word represents a vocabulary entry to be learned. Words are owned by the
// vocabulary collaborator and are immutable from the scheduler's perspective.
type Word struct {
	ID          string    `json:"id" db:"id"`
	English     string    `json:"english" db:"english"`
	Translation string    `json:"translation" db:"translation"`
	Category    string    `json:"category" db:"category"`
	Difficulty  int       `json:"difficulty" db:"difficulty"` // 1-3 scale of difficulty
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}
