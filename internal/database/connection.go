package database

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// DB is the global database connection
var DB *sqlx.DB

// Connect establishes a connection to the database. With DATABASE_URL
// set it connects to PostgreSQL; otherwise it opens a local SQLite file
// (DATABASE_PATH, default data/vocabtrainer.db).
func Connect() error {
	if url := os.Getenv("DATABASE_URL"); url != "" {
		db, err := sqlx.Connect("postgres", url)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %v", err)
		}
		DB = db
		return initializeSchema()
	}

	dbPath := os.Getenv("DATABASE_PATH")
	if dbPath == "" {
		dataDir := "data"
		if err := os.MkdirAll(dataDir, 0755); err != nil {
			return fmt.Errorf("failed to create data directory: %v", err)
		}
		dbPath = filepath.Join(dataDir, "vocabtrainer.db")
	}

	db, err := sqlx.Connect("sqlite3", dbPath)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %v", err)
	}

	// SQLite doesn't support multiple writers
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	DB = db
	return initializeSchema()
}

// Close closes the database connection
func Close() error {
	if DB != nil {
		return DB.Close()
	}
	return nil
}

// initializeSchema creates necessary tables if they don't exist
func initializeSchema() error {
	serial := "INTEGER PRIMARY KEY AUTOINCREMENT"
	if DB.DriverName() == "postgres" {
		serial = "BIGSERIAL PRIMARY KEY"
	}

	_, err := DB.Exec(`
		CREATE TABLE IF NOT EXISTS topic_progress (
			topic_id TEXT PRIMARY KEY,
			total_words INTEGER NOT NULL DEFAULT 0,
			learned_words INTEGER NOT NULL DEFAULT 0,
			percentage INTEGER NOT NULL DEFAULT 0,
			last_studied TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create topic_progress table: %v", err)
	}

	_, err = DB.Exec(fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS learned_words (
			id %s,
			topic_id TEXT NOT NULL,
			english TEXT NOT NULL,
			vietnamese TEXT NOT NULL,
			learned_at TIMESTAMP NOT NULL,
			last_reviewed TIMESTAMP,
			review_count INTEGER NOT NULL DEFAULT 1,
			UNIQUE(topic_id, english, vietnamese)
		)
	`, serial))
	if err != nil {
		return fmt.Errorf("failed to create learned_words table: %v", err)
	}

	_, err = DB.Exec(fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS quiz_results (
			id %s,
			topic_id TEXT NOT NULL,
			quiz_type TEXT NOT NULL,
			score INTEGER NOT NULL DEFAULT 0,
			total_questions INTEGER NOT NULL DEFAULT 0,
			percentage INTEGER NOT NULL DEFAULT 0,
			time_spent INTEGER NOT NULL DEFAULT 0,
			completed_at TIMESTAMP NOT NULL
		)
	`, serial))
	if err != nil {
		return fmt.Errorf("failed to create quiz_results table: %v", err)
	}

	return nil
}
