package models

import "time"

// Learner represents a student account known to the review engine.
type Learner struct {
	ID                 string    `json:"id" db:"id"`
	Username           string    `json:"username" db:"username"`
	DailyWordsTarget   int       `json:"daily_words_target" db:"daily_words_target"`     // Review batch size, configurable per learner
	DailyWordsProgress int       `json:"daily_words_progress" db:"daily_words_progress"` // Correct answers today, reset when the UTC date changes
	LastDailyReset     string    `json:"last_daily_reset" db:"last_daily_reset"`         // UTC date (YYYY-MM-DD) of the last progress reset
	GamesPlayed        int       `json:"games_played" db:"games_played"`
	WordsLearned       int       `json:"words_learned" db:"words_learned"`
	CreatedAt          time.Time `json:"created_at" db:"created_at"`
	UpdatedAt          time.Time `json:"updated_at" db:"updated_at"`
}
