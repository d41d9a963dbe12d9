package spaced_repetition

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/example/leximind/pkg/models"
)

// Scheduler decides which words to present to a learner and updates their
// progress after each review outcome.
type Scheduler struct {
	store Store
	sm2   *SM2
	now   func() time.Time
}

// NewScheduler creates a scheduler over the given store. A nil clock
// defaults to UTC wall time; tests inject a fixed clock.
func NewScheduler(store Store, sm2 *SM2, now func() time.Time) *Scheduler {
	if sm2 == nil {
		sm2 = NewSM2()
	}
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	return &Scheduler{store: store, sm2: sm2, now: now}
}

// SelectReviewBatch chooses up to maxCount words from the pool.
//
// A learner with no review history gets a first-exposure curriculum: words
// ordered by ascending difficulty, ties keeping pool order. Otherwise only
// words currently due are returned, oldest due first so no word starves.
// A partial or empty review batch is a valid result meaning "caught up";
// it is never padded with non-due words.
func (s *Scheduler) SelectReviewBatch(ctx context.Context, learnerID string, pool []models.Word, maxCount int) (models.ReviewMode, []models.Word, error) {
	if maxCount < 0 {
		maxCount = 0
	}

	has, err := s.store.HasAnyState(ctx, learnerID)
	if err != nil {
		return "", nil, fmt.Errorf("failed to check learner state: %w", err)
	}

	if !has {
		batch := make([]models.Word, len(pool))
		copy(batch, pool)
		sort.SliceStable(batch, func(i, j int) bool {
			return batch[i].Difficulty < batch[j].Difficulty
		})
		if len(batch) > maxCount {
			batch = batch[:maxCount]
		}
		return models.ModeInitial, batch, nil
	}

	due, err := s.store.DueWords(ctx, learnerID, s.now())
	if err != nil {
		return "", nil, fmt.Errorf("failed to get due words: %w", err)
	}

	byID := make(map[string]models.Word, len(pool))
	for _, w := range pool {
		byID[w.ID] = w
	}

	batch := make([]models.Word, 0, maxCount)
	for _, p := range due {
		if len(batch) == maxCount {
			break
		}
		if w, ok := byID[p.WordID]; ok {
			batch = append(batch, w)
		}
	}
	return models.ModeReview, batch, nil
}

// RecordOutcome applies a review outcome to the learner's state for the
// word, creating the state on first exposure, and returns the result. The
// read-modify-write runs atomically inside the store so concurrent
// submissions from racing sessions cannot lose updates.
func (s *Scheduler) RecordOutcome(ctx context.Context, learnerID, wordID string, wasCorrect bool) (*models.WordProgress, error) {
	now := s.now()
	p, err := s.store.Update(ctx, learnerID, wordID, func(p *models.WordProgress) {
		if p.DueAt.IsZero() {
			// First exposure: seed the defaults before applying the outcome.
			*p = *s.sm2.NewProgress(learnerID, wordID, now)
		}
		s.sm2.Process(p, wasCorrect, now)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to record outcome: %w", err)
	}
	return p, nil
}
