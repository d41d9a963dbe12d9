package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/leximind/internal/database"
	"github.com/example/leximind/internal/logger"
	"github.com/example/leximind/internal/session"
	"github.com/example/leximind/pkg/models"
)

func newTestScheduler(t *testing.T) (*Scheduler, *database.DB) {
	t.Helper()
	db, err := database.Connect("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	s := New(logger.NewNop(),
		database.NewLearnerRepository(db),
		database.NewProgressRepository(db),
		database.NewStatisticsRepository(db),
	)
	return s, db
}

func TestStatisticsUnknownLearner(t *testing.T) {
	s, db := newTestScheduler(t)

	_, err := s.Statistics(context.Background(), "ghost")
	require.ErrorIs(t, err, session.ErrNotFound)

	// No snapshot row may be materialized for the unknown ID.
	var count int
	require.NoError(t, db.Get(&count,
		"SELECT COUNT(*) FROM statistics WHERE learner_id = $1", "ghost"))
	assert.Zero(t, count)
}

func TestStatisticsSnapshotsKnownLearner(t *testing.T) {
	ctx := context.Background()
	s, db := newTestScheduler(t)

	learners := database.NewLearnerRepository(db)
	require.NoError(t, learners.Create(ctx, &models.Learner{ID: "l1", Username: "ayse"}))

	progress := database.NewProgressRepository(db)
	now := time.Now().UTC()
	_, err := progress.Update(ctx, "l1", "w1", func(p *models.WordProgress) {
		p.EaseFactor = 2.5
		p.IntervalDays = 1
		p.Repetitions = 1
		p.DueAt = now.AddDate(0, 0, -1)
		p.CreatedAt = now
		p.UpdatedAt = now
	})
	require.NoError(t, err)

	stats, err := s.Statistics(ctx, "l1")
	require.NoError(t, err)
	require.NotNil(t, stats)
	assert.Equal(t, "l1", stats.LearnerID)
	assert.Equal(t, 1, stats.TotalWords)
	assert.Equal(t, 1, stats.DueToday)
	assert.Zero(t, stats.Mastered)
	assert.InDelta(t, 2.5, stats.AvgEaseFactor, 0.001)
}
