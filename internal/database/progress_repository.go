package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/example/leximind/pkg/models"
)

// ProgressRepository handles database operations for per-learner word
// progress. It implements the scheduler's store contract; Update runs the
// read-modify-write inside a transaction so concurrent outcome submissions
// for the same (learner, word) pair cannot lose updates.
type ProgressRepository struct {
	db *DB
}

// NewProgressRepository creates a new repository instance.
func NewProgressRepository(db *DB) *ProgressRepository {
	return &ProgressRepository{db: db}
}

// Get returns the progress for a (learner, word) pair, or (nil, nil) when
// the learner has never encountered the word.
func (r *ProgressRepository) Get(ctx context.Context, learnerID, wordID string) (*models.WordProgress, error) {
	var p models.WordProgress
	err := r.db.GetContext(ctx, &p,
		"SELECT * FROM word_progress WHERE learner_id = $1 AND word_id = $2", learnerID, wordID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get word progress: %v", err)
	}
	return &p, nil
}

// Upsert overwrites the progress row keyed by (learner, word).
func (r *ProgressRepository) Upsert(ctx context.Context, p *models.WordProgress) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO word_progress (
			learner_id, word_id, ease_factor, interval_days, repetitions,
			lapses, due_at, last_reviewed_at, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (learner_id, word_id) DO UPDATE SET
			ease_factor = EXCLUDED.ease_factor,
			interval_days = EXCLUDED.interval_days,
			repetitions = EXCLUDED.repetitions,
			lapses = EXCLUDED.lapses,
			due_at = EXCLUDED.due_at,
			last_reviewed_at = EXCLUDED.last_reviewed_at,
			updated_at = EXCLUDED.updated_at`,
		p.LearnerID, p.WordID, p.EaseFactor, p.IntervalDays, p.Repetitions,
		p.Lapses, p.DueAt, p.LastReviewedAt, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert word progress: %v", err)
	}
	return nil
}

// DueWords returns the learner's progress rows with due_at <= asOf, oldest
// due first.
func (r *ProgressRepository) DueWords(ctx context.Context, learnerID string, asOf time.Time) ([]models.WordProgress, error) {
	var due []models.WordProgress
	err := r.db.SelectContext(ctx, &due, `
		SELECT * FROM word_progress
		WHERE learner_id = $1 AND due_at <= $2
		ORDER BY due_at ASC`, learnerID, asOf)
	if err != nil {
		return nil, fmt.Errorf("failed to get due words: %v", err)
	}
	return due, nil
}

// HasAnyState reports whether the learner has any review history.
func (r *ProgressRepository) HasAnyState(ctx context.Context, learnerID string) (bool, error) {
	var count int
	err := r.db.GetContext(ctx, &count,
		"SELECT COUNT(*) FROM word_progress WHERE learner_id = $1", learnerID)
	if err != nil {
		return false, fmt.Errorf("failed to count word progress: %v", err)
	}
	return count > 0, nil
}

// Update applies a read-modify-write for one (learner, word) pair inside a
// transaction. On postgres the row is locked with FOR UPDATE; on SQLite the
// single-writer connection serializes writers. When no row exists, apply
// receives a zero state carrying only the key fields.
func (r *ProgressRepository) Update(ctx context.Context, learnerID, wordID string, apply func(p *models.WordProgress)) (*models.WordProgress, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %v", err)
	}
	defer tx.Rollback()

	query := "SELECT * FROM word_progress WHERE learner_id = $1 AND word_id = $2"
	if r.db.IsPostgres() {
		query += " FOR UPDATE"
	}

	var p models.WordProgress
	err = tx.GetContext(ctx, &p, query, learnerID, wordID)
	exists := true
	if errors.Is(err, sql.ErrNoRows) {
		exists = false
		p = models.WordProgress{LearnerID: learnerID, WordID: wordID}
	} else if err != nil {
		return nil, fmt.Errorf("failed to get word progress: %v", err)
	}

	apply(&p)

	if exists {
		_, err = tx.ExecContext(ctx, `
			UPDATE word_progress SET
				ease_factor = $1, interval_days = $2, repetitions = $3,
				lapses = $4, due_at = $5, last_reviewed_at = $6, updated_at = $7
			WHERE learner_id = $8 AND word_id = $9`,
			p.EaseFactor, p.IntervalDays, p.Repetitions,
			p.Lapses, p.DueAt, p.LastReviewedAt, p.UpdatedAt,
			p.LearnerID, p.WordID,
		)
	} else {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO word_progress (
				learner_id, word_id, ease_factor, interval_days, repetitions,
				lapses, due_at, last_reviewed_at, created_at, updated_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
			p.LearnerID, p.WordID, p.EaseFactor, p.IntervalDays, p.Repetitions,
			p.Lapses, p.DueAt, p.LastReviewedAt, p.CreatedAt, p.UpdatedAt,
		)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to write word progress: %v", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit word progress: %v", err)
	}
	return &p, nil
}

// CountByLearner returns aggregate counters used by the statistics snapshot.
func (r *ProgressRepository) CountByLearner(ctx context.Context, learnerID string, asOf time.Time) (total, due, mastered int, avgEase float64, err error) {
	err = r.db.GetContext(ctx, &total,
		"SELECT COUNT(*) FROM word_progress WHERE learner_id = $1", learnerID)
	if err != nil {
		return 0, 0, 0, 0, fmt.Errorf("failed to count progress: %v", err)
	}
	err = r.db.GetContext(ctx, &due,
		"SELECT COUNT(*) FROM word_progress WHERE learner_id = $1 AND due_at <= $2", learnerID, asOf)
	if err != nil {
		return 0, 0, 0, 0, fmt.Errorf("failed to count due words: %v", err)
	}
	err = r.db.GetContext(ctx, &mastered, `
		SELECT COUNT(*) FROM word_progress
		WHERE learner_id = $1 AND repetitions >= 5 AND interval_days >= 30`, learnerID)
	if err != nil {
		return 0, 0, 0, 0, fmt.Errorf("failed to count mastered words: %v", err)
	}
	err = r.db.GetContext(ctx, &avgEase,
		"SELECT COALESCE(AVG(ease_factor), 2.5) FROM word_progress WHERE learner_id = $1", learnerID)
	if err != nil {
		return 0, 0, 0, 0, fmt.Errorf("failed to average ease factor: %v", err)
	}
	return total, due, mastered, avgEase, nil
}
