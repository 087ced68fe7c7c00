package models

import (
	"fmt"
	"time"
)

// ReviewIntervals are the spaced repetition intervals in days, indexed by level.
var ReviewIntervals = [7]int{1, 3, 7, 14, 30, 60, 120}

const (
	// MaxLevel is the highest mastery level a word can reach.
	MaxLevel = 6
	// LearnedLevel is the level at which a word counts as learned.
	LearnedLevel = 4
	// RelearnDelay is how soon a missed word comes back for review.
	RelearnDelay = 10 * time.Minute
)

// Word represents a vocabulary item together with its repetition state
// and the cached card content generated for it.
type Word struct {
	ID             int64      `json:"id" db:"id"`
	Text           string     `json:"text" db:"text"`
	Level          int        `json:"level" db:"level"`
	NextReviewAt   time.Time  `json:"next_review_at" db:"next_review_at"`
	CorrectCount   int        `json:"correct_count" db:"correct_count"`
	IncorrectCount int        `json:"incorrect_count" db:"incorrect_count"`
	IsLearned      bool       `json:"is_learned" db:"is_learned"`
	AddedAt        time.Time  `json:"added_at" db:"added_at"`
	LastReviewedAt *time.Time `json:"last_reviewed_at,omitempty" db:"last_reviewed_at"`

	// Cached content from the AI provider
	Definition *string    `json:"definition,omitempty" db:"definition"`
	Example1   *string    `json:"example1,omitempty" db:"example1"`
	Example2   *string    `json:"example2,omitempty" db:"example2"`
	CachedAt   *time.Time `json:"cached_at,omitempty" db:"cached_at"`
}

// NewWord creates a word at level 0 that is due immediately.
func NewWord(text string, now time.Time) *Word {
	return &Word{
		Text:         text,
		NextReviewAt: now,
		AddedAt:      now,
	}
}

// MarkKnown advances the word one level and schedules the next review
// using the interval for the new level.
func (w *Word) MarkKnown(now time.Time) {
	if w.Level < MaxLevel {
		w.Level++
	}
	w.CorrectCount++
	idx := w.Level
	if idx > MaxLevel {
		idx = MaxLevel
	}
	w.NextReviewAt = now.AddDate(0, 0, ReviewIntervals[idx])
	w.IsLearned = w.Level >= LearnedLevel
	t := now
	w.LastReviewedAt = &t
}

// MarkUnknown drops the word one level and brings it back shortly.
func (w *Word) MarkUnknown(now time.Time) {
	if w.Level > 0 {
		w.Level--
	}
	w.IncorrectCount++
	w.NextReviewAt = now.Add(RelearnDelay)
	w.IsLearned = false
	t := now
	w.LastReviewedAt = &t
}

// IsDue reports whether the word is eligible for review.
func (w *Word) IsDue(now time.Time) bool {
	return !w.NextReviewAt.After(now)
}

// CachedContent returns the cached card content, or nil if any part of it
// is missing.
func (w *Word) CachedContent() *WordContent {
	if w.Definition == nil || w.Example1 == nil || w.Example2 == nil || w.CachedAt == nil {
		return nil
	}
	return &WordContent{
		Definition: *w.Definition,
		Example1:   *w.Example1,
		Example2:   *w.Example2,
	}
}

// HasCachedContent reports whether any content has ever been cached,
// regardless of age.
func (w *Word) HasCachedContent() bool {
	return w.CachedAt != nil
}

// SetCachedContent stores freshly fetched content on the word.
func (w *Word) SetCachedContent(c WordContent, now time.Time) {
	def, ex1, ex2 := c.Definition, c.Example1, c.Example2
	w.Definition = &def
	w.Example1 = &ex1
	w.Example2 = &ex2
	t := now
	w.CachedAt = &t
}

// LevelLabel returns a short human-readable label for the word's level.
func (w *Word) LevelLabel() string {
	switch {
	case w.Level == 0:
		return "New"
	case w.IsLearned:
		return "Learned"
	default:
		return fmt.Sprintf("Level %d", w.Level)
	}
}
