package feedback

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyTiers(t *testing.T) {
	c := NewClassifier(nil)

	tests := []struct {
		name        string
		correct     int
		wrong       int
		wantTier    Tier
		wantPercent int
	}{
		{"no attempts is neutral positive", 0, 0, TierCelebration, 100},
		{"ninety percent celebrates", 9, 1, TierCelebration, 90},
		{"eighty five percent celebrates", 17, 3, TierCelebration, 85},
		{"seventy percent encourages", 7, 3, TierEncouraging, 70},
		{"sixty percent encourages", 6, 4, TierEncouraging, 60},
		{"fifty percent needs work", 5, 5, TierImprove, 50},
		{"all wrong needs work", 0, 10, TierImprove, 0},
		{"rounds to nearest percent", 2, 1, TierEncouraging, 67},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Classify(100, tt.correct, tt.wrong)
			assert.Equal(t, tt.wantTier, got.Tier)
			assert.Equal(t, tt.wantPercent, got.AccuracyPercent)
		})
	}
}

func TestClassifyScoreDoesNotAffectTier(t *testing.T) {
	c := NewClassifier(nil)
	for _, score := range []int{0, 50, 10000} {
		got := c.Classify(score, 9, 1)
		assert.Equal(t, TierCelebration, got.Tier)
	}
}

func TestClassifySuggestionsFollowTier(t *testing.T) {
	s := Suggestions{
		TierCelebration: {"a"},
		TierEncouraging: {"b", "c"},
		TierImprove:     {"d"},
	}
	c := NewClassifier(s)

	assert.Equal(t, []string{"a"}, c.Classify(0, 9, 1).Suggestions)
	assert.Equal(t, []string{"b", "c"}, c.Classify(0, 7, 3).Suggestions)
	assert.Equal(t, []string{"d"}, c.Classify(0, 1, 9).Suggestions)
}

func TestClassifyDefaultSuggestionsAreStable(t *testing.T) {
	c := NewClassifier(nil)
	first := c.Classify(0, 5, 5).Suggestions
	second := c.Classify(0, 5, 5).Suggestions
	assert.Equal(t, first, second)
	assert.NotEmpty(t, first)
}
