package session

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/example/leximind/pkg/models"
)

// In-memory store implementations, mutex-guarded. They back the package
// tests and the engine's embedded mode.

// MemoryWordStore holds the vocabulary pool in insertion order.
type MemoryWordStore struct {
	mu    sync.Mutex
	words []models.Word
}

// NewMemoryWordStore creates a word store seeded with the given pool.
func NewMemoryWordStore(words ...models.Word) *MemoryWordStore {
	s := &MemoryWordStore{}
	s.words = append(s.words, words...)
	return s
}

// Create appends a word to the pool, generating an ID when none is set.
func (s *MemoryWordStore) Create(_ context.Context, w *models.Word) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if w.ID == "" {
		w.ID = uuid.NewString()
	}
	s.words = append(s.words, *w)
	return nil
}

// Delete removes a word from the pool.
func (s *MemoryWordStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, w := range s.words {
		if w.ID == id {
			s.words = append(s.words[:i], s.words[i+1:]...)
			return nil
		}
	}
	return nil
}

// GetByID returns (nil, nil) when the word does not exist.
func (s *MemoryWordStore) GetByID(_ context.Context, id string) (*models.Word, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, w := range s.words {
		if w.ID == id {
			cp := w
			return &cp, nil
		}
	}
	return nil, nil
}

// List returns the pool in insertion order.
func (s *MemoryWordStore) List(_ context.Context) ([]models.Word, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Word, len(s.words))
	copy(out, s.words)
	return out, nil
}

// MemoryLearnerStore holds learner accounts.
type MemoryLearnerStore struct {
	mu       sync.Mutex
	learners map[string]*models.Learner
}

// NewMemoryLearnerStore creates a learner store seeded with the given
// learners.
func NewMemoryLearnerStore(learners ...models.Learner) *MemoryLearnerStore {
	s := &MemoryLearnerStore{learners: make(map[string]*models.Learner)}
	for i := range learners {
		cp := learners[i]
		s.learners[cp.ID] = &cp
	}
	return s
}

// Create inserts a learner, generating an ID when none is set.
func (s *MemoryLearnerStore) Create(_ context.Context, l *models.Learner) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	if l.DailyWordsTarget <= 0 {
		l.DailyWordsTarget = DefaultBatchSize
	}
	cp := *l
	s.learners[cp.ID] = &cp
	return nil
}

// Get returns (nil, nil) when the learner does not exist.
func (s *MemoryLearnerStore) Get(_ context.Context, id string) (*models.Learner, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.learners[id]
	if !ok {
		return nil, nil
	}
	cp := *l
	return &cp, nil
}

// Update applies a read-modify-write under the store lock. Returns
// (nil, nil) when the learner does not exist.
func (s *MemoryLearnerStore) Update(_ context.Context, id string, apply func(l *models.Learner)) (*models.Learner, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.learners[id]
	if !ok {
		return nil, nil
	}
	apply(l)
	cp := *l
	return &cp, nil
}

// MemoryScoreStore holds game scores.
type MemoryScoreStore struct {
	mu     sync.Mutex
	scores []models.GameScore
}

// NewMemoryScoreStore creates an empty score store.
func NewMemoryScoreStore() *MemoryScoreStore {
	return &MemoryScoreStore{}
}

// Create appends a score record.
func (s *MemoryScoreStore) Create(_ context.Context, score *models.GameScore) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scores = append(s.scores, *score)
	return nil
}

// ListByLearner returns the learner's scores, newest first.
func (s *MemoryScoreStore) ListByLearner(_ context.Context, learnerID string) ([]models.GameScore, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.GameScore
	for _, sc := range s.scores {
		if sc.LearnerID == learnerID {
			out = append(out, sc)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// MemoryAttemptStore holds review attempts keyed by attempt ID.
type MemoryAttemptStore struct {
	mu       sync.Mutex
	attempts map[string]models.ReviewAttempt
}

// NewMemoryAttemptStore creates an empty attempt store.
func NewMemoryAttemptStore() *MemoryAttemptStore {
	return &MemoryAttemptStore{attempts: make(map[string]models.ReviewAttempt)}
}

// GetByID returns (nil, nil) when no attempt with the ID exists.
func (s *MemoryAttemptStore) GetByID(_ context.Context, id string) (*models.ReviewAttempt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.attempts[id]
	if !ok {
		return nil, nil
	}
	cp := a
	return &cp, nil
}

// Create stores an attempt record.
func (s *MemoryAttemptStore) Create(_ context.Context, attempt *models.ReviewAttempt) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.attempts[attempt.ID] = *attempt
	return nil
}
