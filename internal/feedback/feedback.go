package feedback

import "math"

// Tier is the performance-feedback tier for a finished session.
type Tier string

const (
	// TierCelebration: accuracy at or above 85%, or no attempts yet.
	TierCelebration Tier = "celebration"
	// TierEncouraging: accuracy between 60% and 85%.
	TierEncouraging Tier = "encouraging"
	// TierImprove: accuracy below 60%.
	TierImprove Tier = "improve"
)

// Classification is the feedback returned for a session's counters.
type Classification struct {
	Tier            Tier     `json:"tier"`
	AccuracyPercent int      `json:"accuracy_percent"`
	Suggestions     []string `json:"suggestions"`
}

// Suggestions maps each tier to its ordered suggestion list. The wording is
// deployment content; the contract is only tier to list.
type Suggestions map[Tier][]string

// DefaultSuggestions returns the stock suggestion lists.
func DefaultSuggestions() Suggestions {
	return Suggestions{
		TierCelebration: {
			"Outstanding work, keep the streak going",
			"Try a harder category to stay challenged",
		},
		TierEncouraging: {
			"Solid progress, a little more practice will get you there",
			"Replay the words you missed before moving on",
		},
		TierImprove: {
			"Slow down and read each option before answering",
			"Revisit the word list for this category",
			"Short daily sessions beat one long session",
		},
	}
}

// Classifier converts session counters into a feedback tier. It is a pure,
// total function over non-negative integers; there is no error path.
type Classifier struct {
	suggestions Suggestions
}

// NewClassifier creates a classifier; nil suggestions fall back to the
// defaults.
func NewClassifier(s Suggestions) *Classifier {
	if s == nil {
		s = DefaultSuggestions()
	}
	return &Classifier{suggestions: s}
}

// Classify maps a session's score and correct/wrong counts to a tier.
// Zero attempts classify as celebration at 100%: neutral-positive rather
// than misleading.
func (c *Classifier) Classify(score, correct, wrong int) Classification {
	total := correct + wrong
	if total == 0 {
		return Classification{
			Tier:            TierCelebration,
			AccuracyPercent: 100,
			Suggestions:     c.suggestions[TierCelebration],
		}
	}

	accuracy := float64(correct) / float64(total)
	var tier Tier
	switch {
	case accuracy >= 0.85:
		tier = TierCelebration
	case accuracy >= 0.60:
		tier = TierEncouraging
	default:
		tier = TierImprove
	}

	return Classification{
		Tier:            tier,
		AccuracyPercent: int(math.Round(accuracy * 100)),
		Suggestions:     c.suggestions[tier],
	}
}
