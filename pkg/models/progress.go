package models

import "time"

// WordProgress tracks a learner's knowledge of a specific word using the
// SM-2 algorithm. One row exists per (learner, word) pair, created lazily on
// first exposure and never deleted.
type WordProgress struct {
	LearnerID      string     `json:"learner_id" db:"learner_id"`
	WordID         string     `json:"word_id" db:"word_id"`
	EaseFactor     float64    `json:"ease_factor" db:"ease_factor"`           // SM-2 EF parameter, never below 1.3
	IntervalDays   int        `json:"interval_days" db:"interval_days"`       // Days until the next review
	Repetitions    int        `json:"repetitions" db:"repetitions"`           // Consecutive correct reviews
	Lapses         int        `json:"lapses" db:"lapses"`                     // Failed reviews, never decreases
	DueAt          time.Time  `json:"due_at" db:"due_at"`                     // When the word next becomes reviewable
	LastReviewedAt *time.Time `json:"last_reviewed_at,omitempty" db:"last_reviewed_at"` // Nil until the first review
	CreatedAt      time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at" db:"updated_at"`
}
