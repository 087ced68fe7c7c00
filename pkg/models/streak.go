package models

import (
	"time"
)

const (
	// DefaultDailyGoal is the number of words per day a new streak starts with.
	DefaultDailyGoal = 10
	// MinDailyGoal and MaxDailyGoal bound the user-configurable goal.
	MinDailyGoal = 5
	MaxDailyGoal = 50
)

// Streak tracks daily study consistency. Exactly one record exists.
type Streak struct {
	ID                int64      `json:"id" db:"id"`
	CurrentStreak     int        `json:"current_streak" db:"current_streak"`
	BestStreak        int        `json:"best_streak" db:"best_streak"`
	LastStudyAt       *time.Time `json:"last_study_at,omitempty" db:"last_study_at"`
	WordsStudiedToday int        `json:"words_studied_today" db:"words_studied_today"`
	DailyGoal         int        `json:"daily_goal" db:"daily_goal"`
	TotalWordsStudied int        `json:"total_words_studied" db:"total_words_studied"`
}

// NewStreak creates the initial streak record.
func NewStreak() *Streak {
	return &Streak{
		ID:        1,
		DailyGoal: DefaultDailyGoal,
	}
}

// RecordStudySession registers one studied word. It maintains the
// consecutive-day streak, the high-water mark and the daily counter.
func (s *Streak) RecordStudySession(now time.Time) {
	if s.LastStudyAt == nil {
		// First time studying
		s.CurrentStreak = 1
	} else {
		switch days := daysBetween(*s.LastStudyAt, now); {
		case days == 1:
			s.CurrentStreak++
		case days > 1:
			// Streak broken
			if s.CurrentStreak > s.BestStreak {
				s.BestStreak = s.CurrentStreak
			}
			s.CurrentStreak = 1
		}
		// Same day: streak unchanged
	}

	if s.LastStudyAt == nil || !sameDay(*s.LastStudyAt, now) {
		s.WordsStudiedToday = 0
	}

	s.WordsStudiedToday++
	s.TotalWordsStudied++
	t := now
	s.LastStudyAt = &t
}

// CheckAndResetDaily zeroes the daily counter when the calendar day has
// changed since the last study. The streak counters are deliberately left
// alone: a break is only detected on the next recorded session.
func (s *Streak) CheckAndResetDaily(now time.Time) {
	if s.LastStudyAt != nil && !sameDay(*s.LastStudyAt, now) {
		s.WordsStudiedToday = 0
	}
}

// IsGoalMet reports whether today's goal has been reached.
func (s *Streak) IsGoalMet() bool {
	return s.WordsStudiedToday >= s.DailyGoal
}

// ProgressPercentage returns today's progress toward the goal, capped at 1.
func (s *Streak) ProgressPercentage() float64 {
	if s.DailyGoal <= 0 {
		return 0
	}
	p := float64(s.WordsStudiedToday) / float64(s.DailyGoal)
	if p > 1 {
		p = 1
	}
	return p
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// daysBetween counts whole calendar days from a to b. The half-day rounding
// keeps 23- and 25-hour DST days counting as one day.
func daysBetween(a, b time.Time) int {
	d := startOfDay(b).Sub(startOfDay(a))
	return int((d + 12*time.Hour) / (24 * time.Hour))
}
