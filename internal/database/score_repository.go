package database

import (
	"context"
	"fmt"

	"github.com/example/leximind/pkg/models"
)

// ScoreRepository handles database operations for game scores.
type ScoreRepository struct {
	db *DB
}

// NewScoreRepository creates a new repository instance.
func NewScoreRepository(db *DB) *ScoreRepository {
	return &ScoreRepository{db: db}
}

// Create inserts a new game score.
func (r *ScoreRepository) Create(ctx context.Context, score *models.GameScore) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO game_scores (
			id, learner_id, game_type, score, correct_answers, wrong_answers, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		score.ID, score.LearnerID, score.GameType,
		score.Score, score.CorrectAnswers, score.WrongAnswers, score.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create game score: %v", err)
	}
	return nil
}

// ListByLearner returns the learner's scores, newest first.
func (r *ScoreRepository) ListByLearner(ctx context.Context, learnerID string) ([]models.GameScore, error) {
	var scores []models.GameScore
	err := r.db.SelectContext(ctx, &scores, `
		SELECT * FROM game_scores
		WHERE learner_id = $1
		ORDER BY created_at DESC`, learnerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list game scores: %v", err)
	}
	return scores, nil
}
