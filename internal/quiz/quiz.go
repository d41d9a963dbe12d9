package quiz

import (
	"errors"
	"math/rand"
	"strings"
	"time"

	"github.com/example/leximind/pkg/models"
)

// DefaultOptionCount is the option count for a standard mini quiz.
const DefaultOptionCount = 4

// ErrInsufficientPoolSize is returned when the pool cannot supply even a
// single distractor distinct from the correct answer. Callers should fall
// back to a non-quiz presentation.
var ErrInsufficientPoolSize = errors.New("insufficient pool size for quiz options")

// MiniQuiz is a single-word multiple-choice question.
type MiniQuiz struct {
	WordID        string   `json:"word_id"`
	Prompt        string   `json:"prompt"`
	CorrectAnswer string   `json:"correct_answer"`
	Options       []string `json:"options"`
}

// Selector builds mini quizzes from a word pool. The random source is
// injected so tests can assert on deterministic draws.
type Selector struct {
	rnd *rand.Rand
}

// NewSelector creates a selector over the given random source. A nil
// source gets a time-seeded one; tests inject a fixed seed.
func NewSelector(rnd *rand.Rand) *Selector {
	if rnd == nil {
		rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Selector{rnd: rnd}
}

// BuildMiniQuiz assembles a multiple-choice question for the target word.
//
// Distractors are drawn uniformly without replacement from the pool minus
// the target, with translations case-insensitively distinct from the
// correct answer and from each other. A zero count means the default;
// counts below two are floored at two. When the pool cannot fill the
// requested option count the quiz shrinks, down to a minimum of two
// options; only a pool with no usable distractor at all is an error.
// The final option order is a uniform shuffle.
func (s *Selector) BuildMiniQuiz(target models.Word, pool []models.Word, optionCount int) (*MiniQuiz, error) {
	if optionCount == 0 {
		optionCount = DefaultOptionCount
	}
	if optionCount < 2 {
		optionCount = 2
	}

	correct := target.Translation
	seen := map[string]bool{strings.ToLower(correct): true}

	// Candidate distractor translations, deduplicated case-insensitively.
	candidates := make([]string, 0, len(pool))
	for _, w := range pool {
		if w.ID == target.ID {
			continue
		}
		key := strings.ToLower(w.Translation)
		if seen[key] {
			continue
		}
		seen[key] = true
		candidates = append(candidates, w.Translation)
	}

	if len(candidates) == 0 {
		return nil, ErrInsufficientPoolSize
	}
	if len(candidates) < optionCount-1 {
		optionCount = 1 + len(candidates)
	}

	s.rnd.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})

	options := make([]string, 0, optionCount)
	options = append(options, correct)
	options = append(options, candidates[:optionCount-1]...)

	s.rnd.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})

	return &MiniQuiz{
		WordID:        target.ID,
		Prompt:        target.English,
		CorrectAnswer: correct,
		Options:       options,
	}, nil
}
