package streak

import (
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/example/ydsbot/pkg/models"
)

type fakeStore struct {
	streak  *models.Streak
	updates int
	loadErr error
	saveErr error
}

func (s *fakeStore) LoadOrCreate() (*models.Streak, error) {
	if s.loadErr != nil {
		return nil, s.loadErr
	}
	if s.streak == nil {
		s.streak = models.NewStreak()
	}
	return s.streak, nil
}

func (s *fakeStore) Update(streak *models.Streak) error {
	s.updates++
	return s.saveErr
}

func atDay(day, hour int) time.Time {
	return time.Date(2025, time.March, day, hour, 0, 0, 0, time.UTC)
}

func newTestController(t *testing.T, store *fakeStore, now time.Time) *Controller {
	t.Helper()
	c, err := NewController(store, rand.New(rand.NewSource(1)), now)
	if err != nil {
		t.Fatalf("NewController() error: %v", err)
	}
	return c
}

func TestGoalCrossingFiresExactlyOnce(t *testing.T) {
	store := &fakeStore{streak: models.NewStreak()}
	store.streak.DailyGoal = 5
	c := newTestController(t, store, atDay(10, 9))

	for i := 1; i <= 8; i++ {
		celebrated := c.RecordWordStudied(atDay(10, 9))
		want := i == 5
		if celebrated != want {
			t.Errorf("word %d: celebration = %v, want %v", i, celebrated, want)
		}
	}
}

func TestGoalCrossingScenario(t *testing.T) {
	// dailyGoal=5, wordsStudiedToday=4, one more word crosses the goal
	streak := models.NewStreak()
	streak.DailyGoal = 5
	streak.WordsStudiedToday = 4
	streak.CurrentStreak = 2
	last := atDay(10, 8)
	streak.LastStudyAt = &last
	store := &fakeStore{streak: streak}
	c := newTestController(t, store, atDay(10, 9))

	if !c.RecordWordStudied(atDay(10, 9)) {
		t.Error("crossing from 4/5 to 5/5 should celebrate")
	}
	if streak.WordsStudiedToday != 5 {
		t.Errorf("WordsStudiedToday = %d, want 5", streak.WordsStudiedToday)
	}
	if !streak.IsGoalMet() {
		t.Error("IsGoalMet() = false after crossing")
	}
}

func TestGoalCrossingResetsNextDay(t *testing.T) {
	streak := models.NewStreak()
	streak.DailyGoal = 2
	store := &fakeStore{streak: streak}
	c := newTestController(t, store, atDay(10, 9))

	c.RecordWordStudied(atDay(10, 9))
	if !c.RecordWordStudied(atDay(10, 10)) {
		t.Error("day one: goal crossing should celebrate")
	}

	// Next day the goal can be crossed again
	c.RecordWordStudied(atDay(11, 9))
	if !c.RecordWordStudied(atDay(11, 10)) {
		t.Error("day two: goal crossing should celebrate again")
	}
}

func TestControllerAppliesDailyResetOnLoad(t *testing.T) {
	streak := models.NewStreak()
	streak.WordsStudiedToday = 7
	streak.CurrentStreak = 3
	last := atDay(9, 22)
	streak.LastStudyAt = &last
	store := &fakeStore{streak: streak}

	c := newTestController(t, store, atDay(10, 8))

	if c.Streak().WordsStudiedToday != 0 {
		t.Errorf("WordsStudiedToday = %d after load on a new day, want 0", c.Streak().WordsStudiedToday)
	}
	if c.Streak().CurrentStreak != 3 {
		t.Errorf("CurrentStreak = %d, want 3 (load must not break the streak)", c.Streak().CurrentStreak)
	}
}

func TestRecordWordStudiedPersists(t *testing.T) {
	store := &fakeStore{streak: models.NewStreak()}
	c := newTestController(t, store, atDay(10, 9))

	c.RecordWordStudied(atDay(10, 9))
	if store.updates != 1 {
		t.Errorf("store updates = %d, want 1", store.updates)
	}
}

func TestSaveFailureDoesNotLoseProgress(t *testing.T) {
	store := &fakeStore{streak: models.NewStreak(), saveErr: errors.New("disk full")}
	c := newTestController(t, store, atDay(10, 9))

	c.RecordWordStudied(atDay(10, 9))
	if c.Streak().TotalWordsStudied != 1 {
		t.Errorf("TotalWordsStudied = %d, want 1 despite save failure", c.Streak().TotalWordsStudied)
	}
}

func TestSetDailyGoal(t *testing.T) {
	tests := []struct {
		name    string
		goal    int
		wantErr bool
	}{
		{name: "minimum", goal: 5, wantErr: false},
		{name: "maximum", goal: 50, wantErr: false},
		{name: "below minimum", goal: 4, wantErr: true},
		{name: "above maximum", goal: 51, wantErr: true},
		{name: "zero", goal: 0, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &fakeStore{streak: models.NewStreak()}
			c := newTestController(t, store, atDay(10, 9))

			err := c.SetDailyGoal(tt.goal)
			if (err != nil) != tt.wantErr {
				t.Errorf("SetDailyGoal(%d) error = %v, wantErr %v", tt.goal, err, tt.wantErr)
			}
			if !tt.wantErr && c.Streak().DailyGoal != tt.goal {
				t.Errorf("DailyGoal = %d, want %d", c.Streak().DailyGoal, tt.goal)
			}
		})
	}
}

func TestMotivationalMessage(t *testing.T) {
	tests := []struct {
		name    string
		studied int
		goal    int
		want    string
	}{
		{name: "far from goal", studied: 2, goal: 10, want: "2/10 words today"},
		{name: "three remaining", studied: 7, goal: 10, want: "Almost there! Just 3 more words!"},
		{name: "one remaining", studied: 9, goal: 10, want: "Almost there! Just 1 more word!"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			streak := models.NewStreak()
			streak.DailyGoal = tt.goal
			streak.WordsStudiedToday = tt.studied
			store := &fakeStore{streak: streak}
			c := newTestController(t, store, atDay(10, 9))

			if got := c.MotivationalMessage(); got != tt.want {
				t.Errorf("MotivationalMessage() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestMotivationalMessageGoalMet(t *testing.T) {
	streak := models.NewStreak()
	streak.DailyGoal = 5
	streak.WordsStudiedToday = 5
	store := &fakeStore{streak: streak}
	c := newTestController(t, store, atDay(10, 9))

	got := c.MotivationalMessage()
	found := false
	for _, msg := range goalMetMessages {
		if got == msg {
			found = true
		}
	}
	if !found {
		t.Errorf("MotivationalMessage() = %q, want one of the goal-met messages", got)
	}
}

func TestStreakMessage(t *testing.T) {
	tests := []struct {
		streak int
		want   string
	}{
		{streak: 0, want: "Start your streak today!"},
		{streak: 1, want: "🔥 1 day streak"},
		{streak: 12, want: "🔥 12 day streak"},
	}

	for _, tt := range tests {
		s := models.NewStreak()
		s.CurrentStreak = tt.streak
		store := &fakeStore{streak: s}
		c := newTestController(t, store, atDay(10, 9))

		if got := c.StreakMessage(); got != tt.want {
			t.Errorf("streak %d: StreakMessage() = %q, want %q", tt.streak, got, tt.want)
		}
	}
}

func TestNewControllerLoadError(t *testing.T) {
	store := &fakeStore{loadErr: errors.New("corrupt row")}
	if _, err := NewController(store, nil, atDay(10, 9)); err == nil {
		t.Error("NewController() error = nil, want load failure")
	}
}
