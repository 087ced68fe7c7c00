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

// Connect establishes a connection to the database. When DATABASE_URL is set
// a PostgreSQL connection is used; otherwise a local SQLite file under
// DB_PATH (default data/ydsbot.db).
func Connect() error {
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		db, err := sqlx.Connect("postgres", dsn)
		if err != nil {
			return fmt.Errorf("failed to connect to postgres: %v", err)
		}
		DB = db
		return initializeSchema()
	}

	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = filepath.Join("data", "ydsbot.db")
	}
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create data directory: %v", err)
		}
	}

	db, err := sqlx.Connect("sqlite3", dbPath)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %v", err)
	}

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return fmt.Errorf("failed to enable foreign keys: %v", err)
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
	for _, stmt := range schemaStatements(DB.DriverName()) {
		if _, err := DB.Exec(stmt); err != nil {
			return fmt.Errorf("failed to initialize schema: %v", err)
		}
	}
	return nil
}

// schemaStatements returns the DDL for the given driver. PostgreSQL has no
// AUTOINCREMENT or COLLATE NOCASE; it uses SERIAL ids and a unique index on
// LOWER(text) for the case-insensitive word constraint.
func schemaStatements(driver string) []string {
	if driver == "postgres" {
		return []string{
			`CREATE TABLE IF NOT EXISTS words (
				id SERIAL PRIMARY KEY,
				text TEXT NOT NULL,
				level INTEGER NOT NULL DEFAULT 0,
				next_review_at TIMESTAMP NOT NULL,
				correct_count INTEGER NOT NULL DEFAULT 0,
				incorrect_count INTEGER NOT NULL DEFAULT 0,
				is_learned BOOLEAN NOT NULL DEFAULT false,
				added_at TIMESTAMP NOT NULL,
				last_reviewed_at TIMESTAMP,
				definition TEXT,
				example1 TEXT,
				example2 TEXT,
				cached_at TIMESTAMP
			)`,
			`CREATE UNIQUE INDEX IF NOT EXISTS idx_words_text ON words (LOWER(text))`,
			`CREATE TABLE IF NOT EXISTS streaks (
				id INTEGER PRIMARY KEY,
				current_streak INTEGER NOT NULL DEFAULT 0,
				best_streak INTEGER NOT NULL DEFAULT 0,
				last_study_at TIMESTAMP,
				words_studied_today INTEGER NOT NULL DEFAULT 0,
				daily_goal INTEGER NOT NULL DEFAULT 10,
				total_words_studied INTEGER NOT NULL DEFAULT 0
			)`,
			`CREATE TABLE IF NOT EXISTS bot_settings (
				id INTEGER PRIMARY KEY,
				chat_id BIGINT NOT NULL DEFAULT 0,
				reminder_hour INTEGER NOT NULL DEFAULT 9
			)`,
		}
	}

	return []string{
		`CREATE TABLE IF NOT EXISTS words (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			text TEXT NOT NULL UNIQUE COLLATE NOCASE,
			level INTEGER NOT NULL DEFAULT 0,
			next_review_at TIMESTAMP NOT NULL,
			correct_count INTEGER NOT NULL DEFAULT 0,
			incorrect_count INTEGER NOT NULL DEFAULT 0,
			is_learned BOOLEAN NOT NULL DEFAULT false,
			added_at TIMESTAMP NOT NULL,
			last_reviewed_at TIMESTAMP,
			definition TEXT,
			example1 TEXT,
			example2 TEXT,
			cached_at TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS streaks (
			id INTEGER PRIMARY KEY,
			current_streak INTEGER NOT NULL DEFAULT 0,
			best_streak INTEGER NOT NULL DEFAULT 0,
			last_study_at TIMESTAMP,
			words_studied_today INTEGER NOT NULL DEFAULT 0,
			daily_goal INTEGER NOT NULL DEFAULT 10,
			total_words_studied INTEGER NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE IF NOT EXISTS bot_settings (
			id INTEGER PRIMARY KEY,
			chat_id INTEGER NOT NULL DEFAULT 0,
			reminder_hour INTEGER NOT NULL DEFAULT 9
		)`,
	}
}
