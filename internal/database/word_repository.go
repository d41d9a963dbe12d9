package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/example/leximind/pkg/models"
)

// WordRepository handles database operations for the vocabulary pool.
type WordRepository struct {
	db *DB
}

// NewWordRepository creates a new repository instance.
func NewWordRepository(db *DB) *WordRepository {
	return &WordRepository{db: db}
}

// GetByID returns a word by ID, or (nil, nil) when it does not exist.
func (r *WordRepository) GetByID(ctx context.Context, id string) (*models.Word, error) {
	var word models.Word
	err := r.db.GetContext(ctx, &word, "SELECT * FROM words WHERE id = $1", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get word: %v", err)
	}
	return &word, nil
}

// List returns all words in insertion order.
func (r *WordRepository) List(ctx context.Context) ([]models.Word, error) {
	var words []models.Word
	err := r.db.SelectContext(ctx, &words, "SELECT * FROM words ORDER BY created_at, id")
	if err != nil {
		return nil, fmt.Errorf("failed to list words: %v", err)
	}
	return words, nil
}

// ListByCategory returns the words of one category in insertion order.
func (r *WordRepository) ListByCategory(ctx context.Context, category string) ([]models.Word, error) {
	var words []models.Word
	err := r.db.SelectContext(ctx, &words,
		"SELECT * FROM words WHERE category = $1 ORDER BY created_at, id", category)
	if err != nil {
		return nil, fmt.Errorf("failed to list words by category: %v", err)
	}
	return words, nil
}

// Create inserts a new word, generating an ID when none is set.
func (r *WordRepository) Create(ctx context.Context, word *models.Word) error {
	if word.ID == "" {
		word.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	word.CreatedAt = now
	word.UpdatedAt = now

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO words (id, english, translation, category, difficulty, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		word.ID, word.English, word.Translation, word.Category, word.Difficulty,
		word.CreatedAt, word.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create word: %v", err)
	}
	return nil
}

// Upsert inserts the word or updates an existing (english, category) entry.
// Used by the bulk importer.
func (r *WordRepository) Upsert(ctx context.Context, word *models.Word) (created bool, err error) {
	var existingID string
	err = r.db.GetContext(ctx, &existingID,
		"SELECT id FROM words WHERE english = $1 AND category = $2", word.English, word.Category)
	if errors.Is(err, sql.ErrNoRows) {
		return true, r.Create(ctx, word)
	}
	if err != nil {
		return false, fmt.Errorf("failed to look up word: %v", err)
	}

	word.ID = existingID
	word.UpdatedAt = time.Now().UTC()
	_, err = r.db.ExecContext(ctx, `
		UPDATE words SET translation = $1, difficulty = $2, updated_at = $3 WHERE id = $4`,
		word.Translation, word.Difficulty, word.UpdatedAt, word.ID,
	)
	if err != nil {
		return false, fmt.Errorf("failed to update word: %v", err)
	}
	return false, nil
}

// Delete removes a word from the pool. Progress rows are kept for
// historical continuity.
func (r *WordRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM words WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete word: %v", err)
	}
	return nil
}
