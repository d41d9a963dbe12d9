package session

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/example/leximind/internal/feedback"
	"github.com/example/leximind/internal/logger"
	"github.com/example/leximind/internal/quiz"
	"github.com/example/leximind/internal/spaced_repetition"
	"github.com/example/leximind/pkg/models"
)

// DefaultBatchSize is the review batch size for learners without an explicit
// daily words target.
const DefaultBatchSize = 20

// WordStore is the vocabulary collaborator. Words are immutable from the
// engine's perspective.
type WordStore interface {
	// GetByID returns (nil, nil) when the word does not exist.
	GetByID(ctx context.Context, id string) (*models.Word, error)
	List(ctx context.Context) ([]models.Word, error)
}

// LearnerStore holds learner accounts and their counters.
type LearnerStore interface {
	// Get returns (nil, nil) when the learner does not exist.
	Get(ctx context.Context, id string) (*models.Learner, error)
	// Update applies a read-modify-write atomically per learner. It returns
	// (nil, nil) when the learner does not exist.
	Update(ctx context.Context, id string, apply func(l *models.Learner)) (*models.Learner, error)
}

// ScoreStore persists raw game-session counters.
type ScoreStore interface {
	Create(ctx context.Context, score *models.GameScore) error
	ListByLearner(ctx context.Context, learnerID string) ([]models.GameScore, error)
}

// AttemptStore records submitted outcomes keyed by attempt ID, making
// retried submissions idempotent.
type AttemptStore interface {
	// GetByID returns (nil, nil) when no attempt with the ID exists.
	GetByID(ctx context.Context, id string) (*models.ReviewAttempt, error)
	Create(ctx context.Context, attempt *models.ReviewAttempt) error
}

// Service is the façade the transport layer calls. All operations complete
// synchronously against the stores within a single request; outcomes are
// committed only on explicit submission, so an aborted request leaves no
// residue.
type Service struct {
	log        *logger.Logger
	scheduler  *spaced_repetition.Scheduler
	selector   *quiz.Selector
	classifier *feedback.Classifier
	words      WordStore
	learners   LearnerStore
	scores     ScoreStore
	attempts   AttemptStore
	now        func() time.Time
}

// NewService wires the orchestrator. A nil clock defaults to UTC wall time.
func NewService(
	log *logger.Logger,
	scheduler *spaced_repetition.Scheduler,
	selector *quiz.Selector,
	classifier *feedback.Classifier,
	words WordStore,
	learners LearnerStore,
	scores ScoreStore,
	attempts AttemptStore,
	now func() time.Time,
) *Service {
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	return &Service{
		log:        log.With("service", "session"),
		scheduler:  scheduler,
		selector:   selector,
		classifier: classifier,
		words:      words,
		learners:   learners,
		scores:     scores,
		attempts:   attempts,
		now:        now,
	}
}

func storeErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrStorageUnavailable, op, err)
}

func (s *Service) getLearner(ctx context.Context, id string) (*models.Learner, error) {
	l, err := s.learners.Get(ctx, id)
	if err != nil {
		return nil, storeErr("get learner", err)
	}
	if l == nil {
		return nil, fmt.Errorf("learner %q: %w", id, ErrNotFound)
	}
	return l, nil
}

// StartReviewSession selects the learner's next batch of words: a
// first-exposure curriculum for brand-new learners, otherwise the words
// currently due. The batch size is the learner's daily words target.
func (s *Service) StartReviewSession(ctx context.Context, learnerID string) (*models.ReviewSession, error) {
	learner, err := s.getLearner(ctx, learnerID)
	if err != nil {
		return nil, err
	}

	pool, err := s.words.List(ctx)
	if err != nil {
		return nil, storeErr("list words", err)
	}

	batchSize := learner.DailyWordsTarget
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	mode, batch, err := s.scheduler.SelectReviewBatch(ctx, learnerID, pool, batchSize)
	if err != nil {
		return nil, storeErr("select review batch", err)
	}

	s.log.Debug("review session started", "learner_id", learnerID, "mode", mode, "words", len(batch))
	return &models.ReviewSession{Mode: mode, Words: batch}, nil
}

// BuildMiniQuiz assembles a multiple-choice question for one word against
// the full vocabulary pool.
func (s *Service) BuildMiniQuiz(ctx context.Context, learnerID, wordID string, optionCount int) (*quiz.MiniQuiz, error) {
	if _, err := s.getLearner(ctx, learnerID); err != nil {
		return nil, err
	}

	target, err := s.words.GetByID(ctx, wordID)
	if err != nil {
		return nil, storeErr("get word", err)
	}
	if target == nil {
		return nil, fmt.Errorf("word %q: %w", wordID, ErrNotFound)
	}

	pool, err := s.words.List(ctx)
	if err != nil {
		return nil, storeErr("list words", err)
	}

	return s.selector.BuildMiniQuiz(*target, pool, optionCount)
}

// SubmitMiniQuizAnswer grades the selected text against the word's
// translation (exact, case-sensitive) and records the outcome on the
// learner's schedule. A previously seen attempt ID returns the stored
// result without touching the schedule again.
func (s *Service) SubmitMiniQuizAnswer(ctx context.Context, learnerID, wordID, selectedText, attemptID string) (bool, error) {
	if _, err := s.getLearner(ctx, learnerID); err != nil {
		return false, err
	}

	word, err := s.words.GetByID(ctx, wordID)
	if err != nil {
		return false, storeErr("get word", err)
	}
	if word == nil {
		return false, fmt.Errorf("word %q: %w", wordID, ErrInvalidWordReference)
	}

	if attemptID == "" {
		attemptID = uuid.NewString()
	} else {
		if _, err := uuid.Parse(attemptID); err != nil {
			return false, fmt.Errorf("attempt id %q is not a valid UUID: %w", attemptID, ErrValidation)
		}
		prev, err := s.attempts.GetByID(ctx, attemptID)
		if err != nil {
			return false, storeErr("get attempt", err)
		}
		if prev != nil {
			s.log.Debug("duplicate attempt replayed", "attempt_id", attemptID, "learner_id", learnerID)
			return prev.IsCorrect, nil
		}
	}

	isCorrect := selectedText == word.Translation

	// The attempt record commits before the outcome is applied. A failure
	// between the two leaves a recorded attempt with no applied outcome,
	// and the retry replays the stored result; the reverse order would let
	// a retry apply the outcome twice.
	if err := s.attempts.Create(ctx, &models.ReviewAttempt{
		ID:        attemptID,
		LearnerID: learnerID,
		WordID:    wordID,
		IsCorrect: isCorrect,
		CreatedAt: s.now(),
	}); err != nil {
		return false, storeErr("create attempt", err)
	}

	if _, err := s.scheduler.RecordOutcome(ctx, learnerID, wordID, isCorrect); err != nil {
		return false, storeErr("record outcome", err)
	}

	return isCorrect, nil
}

// FinishGameSession persists the raw counters of a finished game, advances
// the learner's daily progress, and classifies the performance.
func (s *Service) FinishGameSession(ctx context.Context, learnerID, gameType string, score, correct, wrong int) (*models.GameScore, feedback.Classification, error) {
	var cls feedback.Classification

	if _, err := s.getLearner(ctx, learnerID); err != nil {
		return nil, cls, err
	}

	record := &models.GameScore{
		ID:             uuid.NewString(),
		LearnerID:      learnerID,
		GameType:       gameType,
		Score:          score,
		CorrectAnswers: correct,
		WrongAnswers:   wrong,
		CreatedAt:      s.now(),
	}
	if err := s.scores.Create(ctx, record); err != nil {
		return nil, cls, storeErr("create score", err)
	}

	today := s.now().Format("2006-01-02")
	if _, err := s.learners.Update(ctx, learnerID, func(l *models.Learner) {
		if l.LastDailyReset != today {
			l.DailyWordsProgress = 0
			l.LastDailyReset = today
		}
		l.DailyWordsProgress += correct
		l.GamesPlayed++
		l.WordsLearned += correct
	}); err != nil {
		return nil, cls, storeErr("update learner", err)
	}

	cls = s.classifier.Classify(score, correct, wrong)
	s.log.Info("game session finished",
		"learner_id", learnerID, "game_type", gameType,
		"tier", cls.Tier, "accuracy", cls.AccuracyPercent)
	return record, cls, nil
}

// UpdateDailyTarget sets the learner's review batch size.
func (s *Service) UpdateDailyTarget(ctx context.Context, learnerID string, target int) error {
	if target < 1 {
		return fmt.Errorf("daily words target must be positive: %w", ErrValidation)
	}
	if _, err := s.getLearner(ctx, learnerID); err != nil {
		return err
	}
	if _, err := s.learners.Update(ctx, learnerID, func(l *models.Learner) {
		l.DailyWordsTarget = target
	}); err != nil {
		return storeErr("update learner", err)
	}
	return nil
}

// ListScores returns the learner's game-score history, newest first.
func (s *Service) ListScores(ctx context.Context, learnerID string) ([]models.GameScore, error) {
	if _, err := s.getLearner(ctx, learnerID); err != nil {
		return nil, err
	}
	scores, err := s.scores.ListByLearner(ctx, learnerID)
	if err != nil {
		return nil, storeErr("list scores", err)
	}
	return scores, nil
}
