package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/example/leximind/pkg/models"
)

// LearnerRepository handles database operations for learner accounts.
type LearnerRepository struct {
	db *DB
}

// NewLearnerRepository creates a new repository instance.
func NewLearnerRepository(db *DB) *LearnerRepository {
	return &LearnerRepository{db: db}
}

// Get returns a learner by ID, or (nil, nil) when it does not exist.
func (r *LearnerRepository) Get(ctx context.Context, id string) (*models.Learner, error) {
	var l models.Learner
	err := r.db.GetContext(ctx, &l, "SELECT * FROM learners WHERE id = $1", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get learner: %v", err)
	}
	return &l, nil
}

// List returns all learners.
func (r *LearnerRepository) List(ctx context.Context) ([]models.Learner, error) {
	var learners []models.Learner
	err := r.db.SelectContext(ctx, &learners, "SELECT * FROM learners ORDER BY created_at, id")
	if err != nil {
		return nil, fmt.Errorf("failed to list learners: %v", err)
	}
	return learners, nil
}

// Create inserts a new learner, generating an ID when none is set.
func (r *LearnerRepository) Create(ctx context.Context, l *models.Learner) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	if l.DailyWordsTarget <= 0 {
		l.DailyWordsTarget = 20
	}
	now := time.Now().UTC()
	l.CreatedAt = now
	l.UpdatedAt = now

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO learners (
			id, username, daily_words_target, daily_words_progress,
			last_daily_reset, games_played, words_learned, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		l.ID, l.Username, l.DailyWordsTarget, l.DailyWordsProgress,
		l.LastDailyReset, l.GamesPlayed, l.WordsLearned, l.CreatedAt, l.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create learner: %v", err)
	}
	return nil
}

// Update applies a read-modify-write atomically per learner. Returns
// (nil, nil) when the learner does not exist.
func (r *LearnerRepository) Update(ctx context.Context, id string, apply func(l *models.Learner)) (*models.Learner, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %v", err)
	}
	defer tx.Rollback()

	query := "SELECT * FROM learners WHERE id = $1"
	if r.db.IsPostgres() {
		query += " FOR UPDATE"
	}

	var l models.Learner
	err = tx.GetContext(ctx, &l, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get learner: %v", err)
	}

	apply(&l)
	l.UpdatedAt = time.Now().UTC()

	_, err = tx.ExecContext(ctx, `
		UPDATE learners SET
			username = $1, daily_words_target = $2, daily_words_progress = $3,
			last_daily_reset = $4, games_played = $5, words_learned = $6, updated_at = $7
		WHERE id = $8`,
		l.Username, l.DailyWordsTarget, l.DailyWordsProgress,
		l.LastDailyReset, l.GamesPlayed, l.WordsLearned, l.UpdatedAt, l.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update learner: %v", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit learner update: %v", err)
	}
	return &l, nil
}
