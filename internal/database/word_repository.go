package database

import (
	"fmt"
	"time"

	"github.com/example/ydsbot/pkg/models"
)

// WordRepository handles database operations for words
type WordRepository struct{}

// NewWordRepository creates a new repository instance
func NewWordRepository() *WordRepository {
	return &WordRepository{}
}

// GetAll returns all words ordered by text
func (r *WordRepository) GetAll() ([]models.Word, error) {
	var words []models.Word
	err := DB.Select(&words, "SELECT * FROM words ORDER BY text")
	if err != nil {
		return nil, fmt.Errorf("failed to get words: %v", err)
	}
	return words, nil
}

// GetByText returns a word by its surface form (case-insensitive)
func (r *WordRepository) GetByText(text string) (*models.Word, error) {
	var word models.Word
	query := DB.Rebind("SELECT * FROM words WHERE LOWER(text) = LOWER(?)")
	err := DB.Get(&word, query, text)
	if err != nil {
		return nil, fmt.Errorf("failed to get word by text: %v", err)
	}
	return &word, nil
}

// Create inserts a new word
func (r *WordRepository) Create(word *models.Word) error {
	if DB.DriverName() == "postgres" {
		query := `
			INSERT INTO words (text, level, next_review_at, correct_count, incorrect_count, is_learned, added_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING id
		`
		return DB.QueryRow(
			query,
			word.Text,
			word.Level,
			word.NextReviewAt,
			word.CorrectCount,
			word.IncorrectCount,
			word.IsLearned,
			word.AddedAt,
		).Scan(&word.ID)
	}

	// SQLite path (no RETURNING)
	query := `
		INSERT INTO words (text, level, next_review_at, correct_count, incorrect_count, is_learned, added_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	result, err := DB.Exec(
		query,
		word.Text,
		word.Level,
		word.NextReviewAt,
		word.CorrectCount,
		word.IncorrectCount,
		word.IsLearned,
		word.AddedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create word: %v", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert ID: %v", err)
	}
	word.ID = id
	return nil
}

// Update persists the mutable state of a word: level, counters, schedule
// and cached content.
func (r *WordRepository) Update(word *models.Word) error {
	query := DB.Rebind(`
		UPDATE words SET
			level = ?,
			next_review_at = ?,
			correct_count = ?,
			incorrect_count = ?,
			is_learned = ?,
			last_reviewed_at = ?,
			definition = ?,
			example1 = ?,
			example2 = ?,
			cached_at = ?
		WHERE id = ?
	`)
	_, err := DB.Exec(
		query,
		word.Level,
		word.NextReviewAt,
		word.CorrectCount,
		word.IncorrectCount,
		word.IsLearned,
		word.LastReviewedAt,
		word.Definition,
		word.Example1,
		word.Example2,
		word.CachedAt,
		word.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update word: %v", err)
	}
	return nil
}

// Count returns the total number of words
func (r *WordRepository) Count() (int, error) {
	var count int
	err := DB.Get(&count, "SELECT COUNT(*) FROM words")
	if err != nil {
		return 0, fmt.Errorf("failed to count words: %v", err)
	}
	return count, nil
}

// CountDue returns the number of words eligible for review
func (r *WordRepository) CountDue(now time.Time) (int, error) {
	var count int
	query := DB.Rebind("SELECT COUNT(*) FROM words WHERE next_review_at <= ?")
	err := DB.Get(&count, query, now)
	if err != nil {
		return 0, fmt.Errorf("failed to count due words: %v", err)
	}
	return count, nil
}

// CountLearned returns the number of learned words
func (r *WordRepository) CountLearned() (int, error) {
	var count int
	err := DB.Get(&count, "SELECT COUNT(*) FROM words WHERE is_learned")
	if err != nil {
		return 0, fmt.Errorf("failed to count learned words: %v", err)
	}
	return count, nil
}

// SeedIfEmpty populates the word table from the given list when it is empty.
// It returns the number of words inserted.
func (r *WordRepository) SeedIfEmpty(texts []string, now time.Time) (int, error) {
	count, err := r.Count()
	if err != nil {
		return 0, err
	}
	if count > 0 {
		return 0, nil
	}

	inserted := 0
	for _, text := range texts {
		word := models.NewWord(text, now)
		if err := r.Create(word); err != nil {
			return inserted, fmt.Errorf("failed to seed word %q: %v", text, err)
		}
		inserted++
	}
	return inserted, nil
}
