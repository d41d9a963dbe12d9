package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/example/leximind/pkg/models"
)

// AttemptRepository handles database operations for review attempts. The
// primary key on the attempt ID is what makes retried submissions
// idempotent.
type AttemptRepository struct {
	db *DB
}

// NewAttemptRepository creates a new repository instance.
func NewAttemptRepository(db *DB) *AttemptRepository {
	return &AttemptRepository{db: db}
}

// GetByID returns an attempt, or (nil, nil) when none with the ID exists.
func (r *AttemptRepository) GetByID(ctx context.Context, id string) (*models.ReviewAttempt, error) {
	var a models.ReviewAttempt
	err := r.db.GetContext(ctx, &a, "SELECT * FROM review_attempts WHERE id = $1", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get review attempt: %v", err)
	}
	return &a, nil
}

// Create inserts a new attempt record.
func (r *AttemptRepository) Create(ctx context.Context, attempt *models.ReviewAttempt) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO review_attempts (id, learner_id, word_id, is_correct, created_at)
		VALUES ($1, $2, $3, $4, $5)`,
		attempt.ID, attempt.LearnerID, attempt.WordID, attempt.IsCorrect, attempt.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create review attempt: %v", err)
	}
	return nil
}
