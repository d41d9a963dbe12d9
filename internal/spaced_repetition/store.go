package spaced_repetition

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/example/leximind/pkg/models"
)

// Store provides durable keyed access to per-learner word progress.
// Implementations must make Update atomic per (learner, word) key so two
// concurrent outcomes never overwrite each other from stale reads; learners
// are independent partitions and need no cross-learner locking.
type Store interface {
	// Get returns the state for a (learner, word) pair, or (nil, nil) when
	// the learner has never encountered the word.
	Get(ctx context.Context, learnerID, wordID string) (*models.WordProgress, error)
	// Upsert overwrites the state keyed by (learner, word).
	Upsert(ctx context.Context, p *models.WordProgress) error
	// DueWords returns all states with due_at <= asOf, oldest due first.
	DueWords(ctx context.Context, learnerID string, asOf time.Time) ([]models.WordProgress, error)
	// HasAnyState reports whether the learner has any review history.
	HasAnyState(ctx context.Context, learnerID string) (bool, error)
	// Update runs apply against the current state under the per-key lock and
	// persists the result. When no state exists yet, apply receives a zero
	// state carrying only the key fields; apply is expected to initialize it.
	Update(ctx context.Context, learnerID, wordID string, apply func(p *models.WordProgress)) (*models.WordProgress, error)
}

// MemoryStore is a mutex-guarded in-memory Store. It backs the engine's
// embedded mode and the package tests.
type MemoryStore struct {
	mu    sync.Mutex
	items map[string]*models.WordProgress
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{items: make(map[string]*models.WordProgress)}
}

func progressKey(learnerID, wordID string) string {
	return learnerID + "\x00" + wordID
}

// Get returns a copy of the stored state, or (nil, nil) when absent.
func (s *MemoryStore) Get(_ context.Context, learnerID, wordID string) (*models.WordProgress, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.items[progressKey(learnerID, wordID)]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

// Upsert overwrites the stored state for the pair.
func (s *MemoryStore) Upsert(_ context.Context, p *models.WordProgress) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *p
	s.items[progressKey(p.LearnerID, p.WordID)] = &cp
	return nil
}

// DueWords returns the learner's due states ordered by due date ascending.
func (s *MemoryStore) DueWords(_ context.Context, learnerID string, asOf time.Time) ([]models.WordProgress, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var due []models.WordProgress
	for _, p := range s.items {
		if p.LearnerID == learnerID && !p.DueAt.After(asOf) {
			due = append(due, *p)
		}
	}
	sort.SliceStable(due, func(i, j int) bool {
		return due[i].DueAt.Before(due[j].DueAt)
	})
	return due, nil
}

// HasAnyState reports whether any state exists for the learner.
func (s *MemoryStore) HasAnyState(_ context.Context, learnerID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range s.items {
		if p.LearnerID == learnerID {
			return true, nil
		}
	}
	return false, nil
}

// Update applies a read-modify-write under the store lock.
func (s *MemoryStore) Update(_ context.Context, learnerID, wordID string, apply func(p *models.WordProgress)) (*models.WordProgress, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := progressKey(learnerID, wordID)
	p, ok := s.items[key]
	if !ok {
		p = &models.WordProgress{LearnerID: learnerID, WordID: wordID}
	}
	apply(p)
	s.items[key] = p

	cp := *p
	return &cp, nil
}
