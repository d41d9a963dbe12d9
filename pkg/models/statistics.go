package models

import "time"

// LearnerStatistics is a daily aggregate snapshot of a learner's schedule,
// refreshed by the nightly snapshot job and on demand.
type LearnerStatistics struct {
	LearnerID     string    `json:"learner_id" db:"learner_id"`
	TotalWords    int       `json:"total_words" db:"total_words"` // Words with any progress state
	DueToday      int       `json:"due_today" db:"due_today"`
	Mastered      int       `json:"mastered" db:"mastered"` // Repetitions >= 5 and interval >= 30 days
	AvgEaseFactor float64   `json:"avg_ease_factor" db:"avg_ease_factor"`
	SnapshotDate  string    `json:"snapshot_date" db:"snapshot_date"` // UTC date (YYYY-MM-DD)
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}
