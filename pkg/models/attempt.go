package models

import "time"

// ReviewAttempt records one submitted mini-quiz answer. The attempt ID is a
// client-generated UUID used as an idempotency key: retrying a submission
// with the same ID returns the stored result instead of re-applying the
// outcome to the schedule.
type ReviewAttempt struct {
	ID        string    `json:"id" db:"id"`
	LearnerID string    `json:"learner_id" db:"learner_id"`
	WordID    string    `json:"word_id" db:"word_id"`
	IsCorrect bool      `json:"is_correct" db:"is_correct"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
