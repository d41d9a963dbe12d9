package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/example/leximind/pkg/models"
)

// StatisticsRepository handles database operations for learner statistics
// snapshots.
type StatisticsRepository struct {
	db *DB
}

// NewStatisticsRepository creates a new repository instance.
func NewStatisticsRepository(db *DB) *StatisticsRepository {
	return &StatisticsRepository{db: db}
}

// GetByLearner returns the learner's latest snapshot, or (nil, nil) when no
// snapshot has been taken yet.
func (r *StatisticsRepository) GetByLearner(ctx context.Context, learnerID string) (*models.LearnerStatistics, error) {
	var stats models.LearnerStatistics
	err := r.db.GetContext(ctx, &stats, "SELECT * FROM statistics WHERE learner_id = $1", learnerID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get statistics: %v", err)
	}
	return &stats, nil
}

// Upsert overwrites the learner's snapshot.
func (r *StatisticsRepository) Upsert(ctx context.Context, stats *models.LearnerStatistics) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO statistics (
			learner_id, total_words, due_today, mastered, avg_ease_factor, snapshot_date, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (learner_id) DO UPDATE SET
			total_words = EXCLUDED.total_words,
			due_today = EXCLUDED.due_today,
			mastered = EXCLUDED.mastered,
			avg_ease_factor = EXCLUDED.avg_ease_factor,
			snapshot_date = EXCLUDED.snapshot_date,
			updated_at = EXCLUDED.updated_at`,
		stats.LearnerID, stats.TotalWords, stats.DueToday, stats.Mastered,
		stats.AvgEaseFactor, stats.SnapshotDate, stats.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert statistics: %v", err)
	}
	return nil
}
