package database

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// DB wraps the sqlx handle together with the active driver name so
// repositories can branch on dialect where the engines differ.
type DB struct {
	*sqlx.DB
	driver string
}

// Connect opens a database connection for the given driver ("sqlite" or
// "postgres") and initializes the schema. An empty sqlite DSN defaults to
// data/leximind.db next to the binary.
func Connect(driver, dsn string) (*DB, error) {
	switch driver {
	case "", "sqlite":
		if dsn == "" {
			dataDir := "data"
			if err := os.MkdirAll(dataDir, 0755); err != nil {
				return nil, fmt.Errorf("failed to create data directory: %v", err)
			}
			dsn = filepath.Join(dataDir, "leximind.db")
		}
		db, err := sqlx.Connect("sqlite3", dsn)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to sqlite: %v", err)
		}
		if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
			return nil, fmt.Errorf("failed to enable foreign keys: %v", err)
		}
		// SQLite doesn't support multiple writers
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
		wrapped := &DB{DB: db, driver: "sqlite"}
		return wrapped, initializeSchema(wrapped)

	case "postgres":
		db, err := sqlx.Connect("postgres", dsn)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to postgres: %v", err)
		}
		wrapped := &DB{DB: db, driver: "postgres"}
		return wrapped, initializeSchema(wrapped)

	default:
		return nil, fmt.Errorf("unsupported DB_TYPE %q", driver)
	}
}

// IsPostgres reports whether the connection speaks the postgres dialect.
func (db *DB) IsPostgres() bool {
	return db.driver == "postgres"
}

// initializeSchema creates the tables if they don't exist. The SQL sticks to
// the subset both engines accept; timestamps are set from Go code so no
// dialect-specific defaults are needed.
func initializeSchema(db *DB) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS learners (
			id TEXT PRIMARY KEY,
			username TEXT NOT NULL,
			daily_words_target INTEGER NOT NULL DEFAULT 20,
			daily_words_progress INTEGER NOT NULL DEFAULT 0,
			last_daily_reset TEXT NOT NULL DEFAULT '',
			games_played INTEGER NOT NULL DEFAULT 0,
			words_learned INTEGER NOT NULL DEFAULT 0,
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS words (
			id TEXT PRIMARY KEY,
			english TEXT NOT NULL,
			translation TEXT NOT NULL,
			category TEXT NOT NULL DEFAULT '',
			difficulty INTEGER NOT NULL DEFAULT 1,
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL,
			UNIQUE(english, category)
		)`,
		`CREATE TABLE IF NOT EXISTS word_progress (
			learner_id TEXT NOT NULL,
			word_id TEXT NOT NULL,
			ease_factor REAL NOT NULL,
			interval_days INTEGER NOT NULL,
			repetitions INTEGER NOT NULL,
			lapses INTEGER NOT NULL,
			due_at TIMESTAMP NOT NULL,
			last_reviewed_at TIMESTAMP,
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL,
			PRIMARY KEY (learner_id, word_id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_word_progress_due
			ON word_progress (learner_id, due_at)`,
		`CREATE TABLE IF NOT EXISTS game_scores (
			id TEXT PRIMARY KEY,
			learner_id TEXT NOT NULL,
			game_type TEXT NOT NULL,
			score INTEGER NOT NULL,
			correct_answers INTEGER NOT NULL,
			wrong_answers INTEGER NOT NULL,
			created_at TIMESTAMP NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_game_scores_learner
			ON game_scores (learner_id, created_at)`,
		`CREATE TABLE IF NOT EXISTS review_attempts (
			id TEXT PRIMARY KEY,
			learner_id TEXT NOT NULL,
			word_id TEXT NOT NULL,
			is_correct BOOLEAN NOT NULL,
			created_at TIMESTAMP NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS statistics (
			learner_id TEXT PRIMARY KEY,
			total_words INTEGER NOT NULL DEFAULT 0,
			due_today INTEGER NOT NULL DEFAULT 0,
			mastered INTEGER NOT NULL DEFAULT 0,
			avg_ease_factor REAL NOT NULL DEFAULT 2.5,
			snapshot_date TEXT NOT NULL DEFAULT '',
			updated_at TIMESTAMP NOT NULL
		)`,
	}

	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to initialize schema: %v", err)
		}
	}
	return nil
}
