package database

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/example/ydsbot/pkg/models"
)

// StreakRepository handles database operations for the streak record
type StreakRepository struct{}

// NewStreakRepository creates a new repository instance
func NewStreakRepository() *StreakRepository {
	return &StreakRepository{}
}

// LoadOrCreate returns the singleton streak record, creating it on first use.
func (r *StreakRepository) LoadOrCreate() (*models.Streak, error) {
	var streak models.Streak
	err := DB.Get(&streak, "SELECT * FROM streaks WHERE id = 1")
	if err == nil {
		return &streak, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("failed to load streak: %v", err)
	}

	created := models.NewStreak()
	query := DB.Rebind(`
		INSERT INTO streaks (id, current_streak, best_streak, last_study_at, words_studied_today, daily_goal, total_words_studied)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	_, err = DB.Exec(
		query,
		created.ID,
		created.CurrentStreak,
		created.BestStreak,
		created.LastStudyAt,
		created.WordsStudiedToday,
		created.DailyGoal,
		created.TotalWordsStudied,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create streak: %v", err)
	}
	return created, nil
}

// Update persists the streak record
func (r *StreakRepository) Update(streak *models.Streak) error {
	query := DB.Rebind(`
		UPDATE streaks SET
			current_streak = ?,
			best_streak = ?,
			last_study_at = ?,
			words_studied_today = ?,
			daily_goal = ?,
			total_words_studied = ?
		WHERE id = ?
	`)
	_, err := DB.Exec(
		query,
		streak.CurrentStreak,
		streak.BestStreak,
		streak.LastStudyAt,
		streak.WordsStudiedToday,
		streak.DailyGoal,
		streak.TotalWordsStudied,
		streak.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update streak: %v", err)
	}
	return nil
}
