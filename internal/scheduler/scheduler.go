package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/example/leximind/internal/database"
	"github.com/example/leximind/internal/logger"
	"github.com/example/leximind/internal/session"
	"github.com/example/leximind/pkg/models"
)

// Scheduler runs the nightly statistics snapshot. Due-word selection itself
// is pull-based and computed at request time; this job only refreshes the
// per-learner reporting counters.
type Scheduler struct {
	scheduler *gocron.Scheduler
	log       *logger.Logger
	learners  *database.LearnerRepository
	progress  *database.ProgressRepository
	stats     *database.StatisticsRepository
}

// New creates a scheduler over the given repositories.
func New(log *logger.Logger, learners *database.LearnerRepository, progress *database.ProgressRepository, stats *database.StatisticsRepository) *Scheduler {
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		log:       log.With("component", "scheduler"),
		learners:  learners,
		progress:  progress,
		stats:     stats,
	}
}

// Start schedules the daily snapshot and begins running in the background.
func (s *Scheduler) Start() {
	s.scheduler.Every(1).Day().At("02:00").Do(s.snapshotAll)
	s.scheduler.StartAsync()
}

// Stop terminates all scheduled tasks.
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

// snapshotAll refreshes the statistics row of every learner.
func (s *Scheduler) snapshotAll() {
	ctx := context.Background()

	learners, err := s.learners.List(ctx)
	if err != nil {
		s.log.Error("failed to list learners for snapshot", "error", err)
		return
	}

	now := time.Now().UTC()
	for _, l := range learners {
		if err := s.SnapshotLearner(ctx, l.ID, now); err != nil {
			s.log.Error("failed to snapshot learner", "learner_id", l.ID, "error", err)
		}
	}
	s.log.Info("statistics snapshot complete", "learners", len(learners))
}

// Statistics refreshes and returns one learner's snapshot. The statistics
// endpoint calls this so the response is never staler than the request.
// The learner must exist; snapshotting an unknown ID would otherwise
// materialize a statistics row for it.
func (s *Scheduler) Statistics(ctx context.Context, learnerID string) (*models.LearnerStatistics, error) {
	l, err := s.learners.Get(ctx, learnerID)
	if err != nil {
		return nil, fmt.Errorf("%w: get learner: %v", session.ErrStorageUnavailable, err)
	}
	if l == nil {
		return nil, fmt.Errorf("learner %q: %w", learnerID, session.ErrNotFound)
	}
	if err := s.SnapshotLearner(ctx, learnerID, time.Now().UTC()); err != nil {
		return nil, fmt.Errorf("%w: snapshot learner: %v", session.ErrStorageUnavailable, err)
	}
	stats, err := s.stats.GetByLearner(ctx, learnerID)
	if err != nil {
		return nil, fmt.Errorf("%w: get statistics: %v", session.ErrStorageUnavailable, err)
	}
	return stats, nil
}

// SnapshotLearner recomputes and stores one learner's statistics as of the
// given time. Also called on demand by the statistics endpoint.
func (s *Scheduler) SnapshotLearner(ctx context.Context, learnerID string, asOf time.Time) error {
	total, due, mastered, avgEase, err := s.progress.CountByLearner(ctx, learnerID, asOf)
	if err != nil {
		return err
	}
	return s.stats.Upsert(ctx, &models.LearnerStatistics{
		LearnerID:     learnerID,
		TotalWords:    total,
		DueToday:      due,
		Mastered:      mastered,
		AvgEaseFactor: avgEase,
		SnapshotDate:  asOf.Format("2006-01-02"),
		UpdatedAt:     asOf,
	})
}
