package server

import (
	"bytes"
	"encoding/json"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/leximind/internal/feedback"
	"github.com/example/leximind/internal/logger"
	"github.com/example/leximind/internal/quiz"
	"github.com/example/leximind/internal/session"
	"github.com/example/leximind/internal/spaced_repetition"
	"github.com/example/leximind/pkg/models"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	words := session.NewMemoryWordStore(
		models.Word{ID: "w1", English: "cat", Translation: "kedi", Difficulty: 1},
		models.Word{ID: "w2", English: "dog", Translation: "köpek", Difficulty: 1},
		models.Word{ID: "w3", English: "ship", Translation: "gemi", Difficulty: 2},
		models.Word{ID: "w4", English: "bread", Translation: "ekmek", Difficulty: 2},
	)
	learners := session.NewMemoryLearnerStore(
		models.Learner{ID: "l1", Username: "ayse", DailyWordsTarget: 20},
	)

	log := logger.NewNop()
	clock := func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) }
	svc := session.NewService(
		log,
		spaced_repetition.NewScheduler(spaced_repetition.NewMemoryStore(), spaced_repetition.NewSM2(), clock),
		quiz.NewSelector(rand.New(rand.NewSource(1))),
		feedback.NewClassifier(nil),
		words, learners, session.NewMemoryScoreStore(), session.NewMemoryAttemptStore(),
		clock,
	)

	h := NewHandler(log, svc, words, learners, nil)
	return NewRouter(RouterConfig{Handler: h})
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestGetReviewWordsInitialMode(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodGet, "/api/learners/l1/review-words", nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := decode(t, w)
	assert.Equal(t, "initial", body["mode"])
	assert.Len(t, body["words"], 4)
}

func TestGetReviewWordsUnknownLearner(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodGet, "/api/learners/ghost/review-words", nil)
	require.Equal(t, http.StatusNotFound, w.Code)

	body := decode(t, w)
	errObj := body["error"].(map[string]any)
	assert.Equal(t, "not_found", errObj["code"])
}

func TestSubmitQuizAnswerRoundTrip(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/learners/l1/quiz/answer", gin.H{
		"word_id":       "w1",
		"selected_text": "kedi",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, decode(t, w)["is_correct"])

	// The schedule now exists, so the next batch is review mode and empty.
	w = doJSON(t, r, http.MethodGet, "/api/learners/l1/review-words", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, "review", body["mode"])
	assert.Empty(t, body["words"])
}

func TestSubmitQuizAnswerWordOutsidePool(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/learners/l1/quiz/answer", gin.H{
		"word_id":       "ghost",
		"selected_text": "kedi",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	errObj := decode(t, w)["error"].(map[string]any)
	assert.Equal(t, "invalid_word_reference", errObj["code"])
}

func TestCreateMiniQuiz(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/learners/l1/quiz", gin.H{"word_id": "w1"})
	require.Equal(t, http.StatusOK, w.Code)

	body := decode(t, w)
	assert.Equal(t, "cat", body["prompt"])
	assert.Len(t, body["options"], 4)
}

func TestCreateGameScoreReturnsClassification(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/learners/l1/games/scores", gin.H{
		"game_type":       "word-match",
		"score":           120,
		"correct_answers": 9,
		"wrong_answers":   1,
	})
	require.Equal(t, http.StatusOK, w.Code)

	body := decode(t, w)
	assert.Equal(t, "celebration", body["tier"])
	assert.Equal(t, float64(90), body["accuracy_percent"])
	assert.NotEmpty(t, body["suggestions"])

	w = doJSON(t, r, http.MethodGet, "/api/learners/l1/games/scores", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode(t, w)["scores"], 1)
}

func TestUpdateDailyTarget(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodPut, "/api/learners/l1/daily-target", gin.H{
		"daily_words_target": 5,
	})
	require.Equal(t, http.StatusOK, w.Code)

	// The new target caps the next initial batch.
	w = doJSON(t, r, http.MethodGet, "/api/learners/l1/review-words", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode(t, w)["words"], 4)

	w = doJSON(t, r, http.MethodPut, "/api/learners/l1/daily-target", gin.H{
		"daily_words_target": 2,
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/learners/l1/review-words", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode(t, w)["words"], 2)
}

func TestWordsCRUD(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/words", gin.H{
		"english":     "water",
		"translation": "su",
		"category":    "nature",
		"difficulty":  1,
	})
	require.Equal(t, http.StatusOK, w.Code)
	created := decode(t, w)
	id := created["id"].(string)
	assert.NotEmpty(t, id)

	w = doJSON(t, r, http.MethodGet, "/api/words", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode(t, w)["words"], 5)

	w = doJSON(t, r, http.MethodDelete, "/api/words/"+id, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/words", nil)
	assert.Len(t, decode(t, w)["words"], 4)
}

func TestCreateLearner(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/learners", gin.H{"username": "mehmet"})
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.NotEmpty(t, body["id"])
	assert.Equal(t, float64(session.DefaultBatchSize), body["daily_words_target"])

	w = doJSON(t, r, http.MethodGet, "/api/learners/"+body["id"].(string)+"/review-words", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "initial", decode(t, w)["mode"])
}

func TestHealthCheck(t *testing.T) {
	r := newTestRouter(t)
	w := doJSON(t, r, http.MethodGet, "/healthz", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", decode(t, w)["status"])
}
