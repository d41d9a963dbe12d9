package server

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/example/leximind/internal/logger"
	"github.com/example/leximind/internal/quiz"
	"github.com/example/leximind/internal/session"
	"github.com/example/leximind/pkg/models"
)

// WordCatalog is the word-pool management surface behind the words CRUD
// endpoints.
type WordCatalog interface {
	List(ctx context.Context) ([]models.Word, error)
	GetByID(ctx context.Context, id string) (*models.Word, error)
	Create(ctx context.Context, w *models.Word) error
	Delete(ctx context.Context, id string) error
}

// LearnerCatalog provisions learner accounts.
type LearnerCatalog interface {
	Create(ctx context.Context, l *models.Learner) error
}

// StatsProvider serves per-learner schedule statistics.
type StatsProvider interface {
	Statistics(ctx context.Context, learnerID string) (*models.LearnerStatistics, error)
}

// Handler carries the dependencies of all HTTP handlers.
type Handler struct {
	log      *logger.Logger
	svc      *session.Service
	words    WordCatalog
	learners LearnerCatalog
	stats    StatsProvider
}

// NewHandler creates the handler set. stats may be nil; the statistics
// route is then not registered.
func NewHandler(log *logger.Logger, svc *session.Service, words WordCatalog, learners LearnerCatalog, stats StatsProvider) *Handler {
	return &Handler{
		log:      log.With("component", "http"),
		svc:      svc,
		words:    words,
		learners: learners,
		stats:    stats,
	}
}

// GetReviewWords returns the learner's next review batch.
func (h *Handler) GetReviewWords(c *gin.Context) {
	sess, err := h.svc.StartReviewSession(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	words := sess.Words
	if words == nil {
		words = []models.Word{}
	}
	respondOK(c, gin.H{"mode": sess.Mode, "words": words})
}

type createQuizRequest struct {
	WordID      string `json:"word_id" binding:"required"`
	OptionCount int    `json:"option_count"`
}

// CreateMiniQuiz builds a multiple-choice question for one word.
func (h *Handler) CreateMiniQuiz(c *gin.Context) {
	var req createQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid_argument", err)
		return
	}
	if req.OptionCount == 0 {
		req.OptionCount = quiz.DefaultOptionCount
	}

	q, err := h.svc.BuildMiniQuiz(c.Request.Context(), c.Param("id"), req.WordID, req.OptionCount)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, q)
}

type submitAnswerRequest struct {
	WordID       string `json:"word_id" binding:"required"`
	SelectedText string `json:"selected_text"`
	AttemptID    string `json:"attempt_id"`
}

// SubmitQuizAnswer grades an answer and records the outcome.
func (h *Handler) SubmitQuizAnswer(c *gin.Context) {
	var req submitAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid_argument", err)
		return
	}

	isCorrect, err := h.svc.SubmitMiniQuizAnswer(c.Request.Context(), c.Param("id"), req.WordID, req.SelectedText, req.AttemptID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, gin.H{"is_correct": isCorrect})
}

type createScoreRequest struct {
	GameType       string `json:"game_type" binding:"required"`
	Score          int    `json:"score"`
	CorrectAnswers int    `json:"correct_answers"`
	WrongAnswers   int    `json:"wrong_answers"`
}

// CreateGameScore persists a finished game session and returns the
// performance feedback.
func (h *Handler) CreateGameScore(c *gin.Context) {
	var req createScoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid_argument", err)
		return
	}
	if req.CorrectAnswers < 0 || req.WrongAnswers < 0 {
		respondError(c, http.StatusBadRequest, "invalid_argument", session.ErrValidation)
		return
	}

	record, cls, err := h.svc.FinishGameSession(c.Request.Context(), c.Param("id"), req.GameType, req.Score, req.CorrectAnswers, req.WrongAnswers)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, gin.H{
		"tier":             cls.Tier,
		"accuracy_percent": cls.AccuracyPercent,
		"suggestions":      cls.Suggestions,
		"score":            record,
	})
}

// ListGameScores returns the learner's score history.
func (h *Handler) ListGameScores(c *gin.Context) {
	scores, err := h.svc.ListScores(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if scores == nil {
		scores = []models.GameScore{}
	}
	respondOK(c, gin.H{"scores": scores})
}

type dailyTargetRequest struct {
	DailyWordsTarget int `json:"daily_words_target" binding:"required"`
}

// UpdateDailyTarget sets the learner's review batch size.
func (h *Handler) UpdateDailyTarget(c *gin.Context) {
	var req dailyTargetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid_argument", err)
		return
	}
	if err := h.svc.UpdateDailyTarget(c.Request.Context(), c.Param("id"), req.DailyWordsTarget); err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, gin.H{"ok": true})
}

// GetStatistics returns the learner's schedule statistics.
func (h *Handler) GetStatistics(c *gin.Context) {
	stats, err := h.stats.Statistics(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, stats)
}

type createLearnerRequest struct {
	ID               string `json:"id"`
	Username         string `json:"username" binding:"required"`
	DailyWordsTarget int    `json:"daily_words_target"`
}

// CreateLearner provisions a learner account.
func (h *Handler) CreateLearner(c *gin.Context) {
	var req createLearnerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid_argument", err)
		return
	}

	l := &models.Learner{
		ID:               req.ID,
		Username:         req.Username,
		DailyWordsTarget: req.DailyWordsTarget,
	}
	if err := h.learners.Create(c.Request.Context(), l); err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, l)
}

// ListWords returns the full vocabulary pool.
func (h *Handler) ListWords(c *gin.Context) {
	words, err := h.words.List(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if words == nil {
		words = []models.Word{}
	}
	respondOK(c, gin.H{"words": words})
}

type createWordRequest struct {
	English     string `json:"english" binding:"required"`
	Translation string `json:"translation" binding:"required"`
	Category    string `json:"category"`
	Difficulty  int    `json:"difficulty"`
}

// CreateWord adds a word to the pool.
func (h *Handler) CreateWord(c *gin.Context) {
	var req createWordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid_argument", err)
		return
	}
	if req.Difficulty == 0 {
		req.Difficulty = 1
	}
	if req.Difficulty < 1 || req.Difficulty > 3 {
		respondError(c, http.StatusBadRequest, "invalid_argument", session.ErrValidation)
		return
	}

	w := &models.Word{
		English:     req.English,
		Translation: req.Translation,
		Category:    req.Category,
		Difficulty:  req.Difficulty,
	}
	if err := h.words.Create(c.Request.Context(), w); err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, w)
}

// DeleteWord removes a word from the pool.
func (h *Handler) DeleteWord(c *gin.Context) {
	if err := h.words.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, gin.H{"ok": true})
}

// HealthCheck reports liveness.
func (h *Handler) HealthCheck(c *gin.Context) {
	respondOK(c, gin.H{"status": "ok"})
}
