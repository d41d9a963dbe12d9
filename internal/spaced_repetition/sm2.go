package spaced_repetition

import (
	"math"
	"time"

	"github.com/example/leximind/pkg/models"
)

// SM2 implements a simplified SuperMemo-2 algorithm for spaced repetition.
// The client only supplies a binary correct/incorrect signal, so the SM-2
// quality grade is fixed at CorrectQuality for every correct answer.
type SM2 struct {
	// Ease factor assigned to a word on first exposure
	InitialEaseFactor float64
	// Lower bound for the ease factor
	MinEaseFactor float64
	// Quality grade (0-5) applied to a plain correct answer
	CorrectQuality int
	// Amount subtracted from the ease factor on a lapse
	LapsePenalty float64
	// Maximum repetition interval in days
	MaxInterval int
}

// NewSM2 creates an SM2 instance with the default tuning. The constants are
// a tunable default, not a contract; callers may adjust them per deployment.
func NewSM2() *SM2 {
	return &SM2{
		InitialEaseFactor: 2.5,
		MinEaseFactor:     1.3,
		CorrectQuality:    4,
		LapsePenalty:      0.2,
		MaxInterval:       365, // Cap intervals at one year
	}
}

// NewProgress returns the lazily-created initial state for a word the
// learner has never reviewed: due immediately, zero interval.
func (sm *SM2) NewProgress(learnerID, wordID string, now time.Time) *models.WordProgress {
	return &models.WordProgress{
		LearnerID:    learnerID,
		WordID:       wordID,
		EaseFactor:   sm.InitialEaseFactor,
		IntervalDays: 0,
		Repetitions:  0,
		DueAt:        now,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// Process applies one review outcome to the progress state in place.
//
// Correct answer: repetitions advance, the ease factor moves by the SM-2
// quality formula (unchanged at quality 4), and the interval follows the
// 1, 6, round(interval x EF) ladder. Lapse: repetitions reset, the interval
// drops to one day and the ease factor is penalized, never below the floor.
// A word reviewed twice in the same day obeys the same math; daily caps are
// the caller's concern.
func (sm *SM2) Process(p *models.WordProgress, wasCorrect bool, now time.Time) {
	if wasCorrect {
		p.Repetitions++

		q := float64(sm.CorrectQuality)
		ef := p.EaseFactor + (0.1 - (5.0-q)*(0.08+(5.0-q)*0.02))
		if ef < sm.MinEaseFactor {
			ef = sm.MinEaseFactor
		}
		p.EaseFactor = ef

		switch p.Repetitions {
		case 1:
			p.IntervalDays = 1
		case 2:
			p.IntervalDays = 6
		default:
			p.IntervalDays = int(math.Round(float64(p.IntervalDays) * p.EaseFactor))
		}
		if p.IntervalDays > sm.MaxInterval {
			p.IntervalDays = sm.MaxInterval
		}
	} else {
		p.Lapses++
		p.Repetitions = 0
		p.IntervalDays = 1

		ef := p.EaseFactor - sm.LapsePenalty
		if ef < sm.MinEaseFactor {
			ef = sm.MinEaseFactor
		}
		p.EaseFactor = ef
	}

	reviewed := now
	p.LastReviewedAt = &reviewed
	p.DueAt = now.AddDate(0, 0, p.IntervalDays)
	p.UpdatedAt = now
}

// IsMastered reports whether a word counts as mastered for statistics:
// at least five consecutive correct reviews and a month-long interval.
func (sm *SM2) IsMastered(p *models.WordProgress) bool {
	return p.Repetitions >= 5 && p.IntervalDays >= 30
}
