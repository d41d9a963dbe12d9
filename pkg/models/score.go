package models

import "time"

// GameScore records the raw counters of a finished game session.
type GameScore struct {
	ID             string    `json:"id" db:"id"`
	LearnerID      string    `json:"learner_id" db:"learner_id"`
	GameType       string    `json:"game_type" db:"game_type"`
	Score          int       `json:"score" db:"score"`
	CorrectAnswers int       `json:"correct_answers" db:"correct_answers"`
	WrongAnswers   int       `json:"wrong_answers" db:"wrong_answers"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
}
