package quiz

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/leximind/pkg/models"
)

func newTestSelector() *Selector {
	return NewSelector(rand.New(rand.NewSource(42)))
}

func testPool(n int) []models.Word {
	pool := make([]models.Word, 0, n)
	words := []struct{ en, tr string }{
		{"cat", "kedi"}, {"dog", "köpek"}, {"ship", "gemi"}, {"book", "kitap"},
		{"tree", "ağaç"}, {"house", "ev"}, {"water", "su"}, {"bread", "ekmek"},
	}
	for i := 0; i < n && i < len(words); i++ {
		pool = append(pool, models.Word{
			ID:          "w" + string(rune('1'+i)),
			English:     words[i].en,
			Translation: words[i].tr,
		})
	}
	return pool
}

func TestBuildMiniQuizFourOptions(t *testing.T) {
	pool := testPool(8)
	q, err := newTestSelector().BuildMiniQuiz(pool[0], pool, DefaultOptionCount)
	require.NoError(t, err)

	assert.Equal(t, "w1", q.WordID)
	assert.Equal(t, "cat", q.Prompt)
	assert.Equal(t, "kedi", q.CorrectAnswer)
	require.Len(t, q.Options, 4)
	assert.Contains(t, q.Options, "kedi")

	// Options are pairwise distinct ignoring case.
	seen := map[string]bool{}
	for _, o := range q.Options {
		key := strings.ToLower(o)
		assert.False(t, seen[key], "duplicate option %q", o)
		seen[key] = true
	}
}

func TestBuildMiniQuizTwoWordPoolNeverFails(t *testing.T) {
	pool := testPool(2)
	q, err := newTestSelector().BuildMiniQuiz(pool[0], pool, DefaultOptionCount)
	require.NoError(t, err)
	require.Len(t, q.Options, 2)
	assert.Contains(t, q.Options, "kedi")
	assert.Contains(t, q.Options, "köpek")
}

func TestBuildMiniQuizFloorsOptionCountAtTwo(t *testing.T) {
	pool := testPool(8)
	for _, count := range []int{1, -3} {
		q, err := newTestSelector().BuildMiniQuiz(pool[0], pool, count)
		require.NoError(t, err)
		require.Len(t, q.Options, 2)
		assert.Contains(t, q.Options, "kedi")
	}

	// Zero still means the default.
	q, err := newTestSelector().BuildMiniQuiz(pool[0], pool, 0)
	require.NoError(t, err)
	assert.Len(t, q.Options, DefaultOptionCount)
}

func TestBuildMiniQuizSingleWordPoolFails(t *testing.T) {
	pool := testPool(1)
	_, err := newTestSelector().BuildMiniQuiz(pool[0], pool, DefaultOptionCount)
	assert.ErrorIs(t, err, ErrInsufficientPoolSize)
}

func TestBuildMiniQuizRejectsCaseInsensitiveDuplicates(t *testing.T) {
	// Pool where every other word shares the target's translation modulo case:
	// no usable distractor exists.
	pool := []models.Word{
		{ID: "w1", English: "cat", Translation: "kedi"},
		{ID: "w2", English: "kitten", Translation: "Kedi"},
		{ID: "w3", English: "tomcat", Translation: "KEDI"},
	}
	_, err := newTestSelector().BuildMiniQuiz(pool[0], pool, DefaultOptionCount)
	assert.ErrorIs(t, err, ErrInsufficientPoolSize)
}

func TestBuildMiniQuizDistractorsComeFromPool(t *testing.T) {
	pool := testPool(8)
	translations := map[string]bool{}
	for _, w := range pool {
		translations[w.Translation] = true
	}

	q, err := newTestSelector().BuildMiniQuiz(pool[2], pool, DefaultOptionCount)
	require.NoError(t, err)
	for _, o := range q.Options {
		assert.True(t, translations[o], "option %q not drawn from the pool", o)
	}
}

func TestBuildMiniQuizShufflesCorrectAnswerPosition(t *testing.T) {
	pool := testPool(8)
	sel := NewSelector(rand.New(rand.NewSource(7)))

	positions := map[int]bool{}
	for i := 0; i < 200; i++ {
		q, err := sel.BuildMiniQuiz(pool[0], pool, DefaultOptionCount)
		require.NoError(t, err)
		for idx, o := range q.Options {
			if o == q.CorrectAnswer {
				positions[idx] = true
			}
		}
	}
	// Over 200 draws the correct answer must have landed in every slot.
	assert.Len(t, positions, 4)
}
