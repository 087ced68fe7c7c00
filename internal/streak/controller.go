// Package streak owns the daily-goal streak record and the messages shown
// around it.
package streak

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/example/ydsbot/pkg/models"
)

// Store persists the singleton streak record.
type Store interface {
	LoadOrCreate() (*models.Streak, error)
	Update(streak *models.Streak) error
}

var goalMetMessages = []string{
	"Goal achieved! Keep the momentum! 🔥",
	"Amazing work today! 🎉",
	"You're crushing it! 💪",
	"Daily goal complete! 🌟",
}

// Controller wraps the streak record with goal-crossing detection.
type Controller struct {
	store  Store
	streak *models.Streak
	rng    *rand.Rand
}

// NewController loads (or creates) the streak record and applies the daily
// reset. A nil rng gets a time-seeded source.
func NewController(store Store, rng *rand.Rand, now time.Time) (*Controller, error) {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	streak, err := store.LoadOrCreate()
	if err != nil {
		return nil, fmt.Errorf("failed to load streak: %v", err)
	}
	streak.CheckAndResetDaily(now)
	return &Controller{store: store, streak: streak, rng: rng}, nil
}

// Streak exposes the underlying record for display.
func (c *Controller) Streak() *models.Streak {
	return c.streak
}

// RecordWordStudied registers one judgment and reports whether the daily
// goal was crossed by this call. Persistence failures are logged, not
// propagated; the in-memory state stays authoritative.
func (c *Controller) RecordWordStudied(now time.Time) bool {
	wasGoalMet := c.streak.IsGoalMet()
	c.streak.RecordStudySession(now)
	if err := c.store.Update(c.streak); err != nil {
		log.Printf("failed to save streak: %v", err)
	}
	return !wasGoalMet && c.streak.IsGoalMet()
}

// SetDailyGoal updates the configurable goal within its allowed range.
func (c *Controller) SetDailyGoal(goal int) error {
	if goal < models.MinDailyGoal || goal > models.MaxDailyGoal {
		return fmt.Errorf("daily goal must be between %d and %d", models.MinDailyGoal, models.MaxDailyGoal)
	}
	c.streak.DailyGoal = goal
	if err := c.store.Update(c.streak); err != nil {
		return fmt.Errorf("failed to save daily goal: %v", err)
	}
	return nil
}

// MotivationalMessage returns the progress line shown under the card stack.
func (c *Controller) MotivationalMessage() string {
	remaining := c.streak.DailyGoal - c.streak.WordsStudiedToday

	switch {
	case c.streak.IsGoalMet():
		return goalMetMessages[c.rng.Intn(len(goalMetMessages))]
	case remaining == 1:
		return "Almost there! Just 1 more word!"
	case remaining <= 3:
		return fmt.Sprintf("Almost there! Just %d more words!", remaining)
	default:
		return fmt.Sprintf("%d/%d words today", c.streak.WordsStudiedToday, c.streak.DailyGoal)
	}
}

// StreakMessage returns the streak line for the header.
func (c *Controller) StreakMessage() string {
	switch c.streak.CurrentStreak {
	case 0:
		return "Start your streak today!"
	case 1:
		return "🔥 1 day streak"
	default:
		return fmt.Sprintf("🔥 %d day streak", c.streak.CurrentStreak)
	}
}
