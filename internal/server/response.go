package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/example/leximind/internal/quiz"
	"github.com/example/leximind/internal/session"
)

// APIError is the error payload inside the envelope.
type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// ErrorEnvelope wraps every error response.
type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

func respondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

func respondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.JSON(status, ErrorEnvelope{Error: APIError{Message: msg, Code: code}})
}

// respondServiceError maps the engine's failure taxonomy onto HTTP statuses.
// Storage unavailability is 503 and safe for the client to retry with
// backoff; everything else is terminal for the request.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, session.ErrNotFound):
		respondError(c, http.StatusNotFound, "not_found", err)
	case errors.Is(err, session.ErrInvalidWordReference):
		respondError(c, http.StatusBadRequest, "invalid_word_reference", err)
	case errors.Is(err, session.ErrValidation):
		respondError(c, http.StatusBadRequest, "invalid_argument", err)
	case errors.Is(err, quiz.ErrInsufficientPoolSize):
		respondError(c, http.StatusUnprocessableEntity, "insufficient_pool_size", err)
	case errors.Is(err, session.ErrStorageUnavailable):
		respondError(c, http.StatusServiceUnavailable, "storage_unavailable", err)
	default:
		respondError(c, http.StatusInternalServerError, "internal", err)
	}
}
