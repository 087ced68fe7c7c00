// Package session drives one bounded pass through the due-word queue.
package session

import (
	"errors"
	"math/rand"
	"time"

	"github.com/example/ydsbot/pkg/models"
)

// MaxQueueSize caps the number of cards in one session.
const MaxQueueSize = 20

// State is the engine's position in its lifecycle.
type State int

const (
	StateIdle State = iota
	StateNoWordsDue
	StateInSession
	StateSessionComplete
)

// Judgment is the user's verdict on the current card.
type Judgment int

const (
	Know Judgment = iota
	DontKnow
)

// ErrNoActiveSession is returned when a judgment arrives outside a session.
var ErrNoActiveSession = errors.New("no active session")

// Engine holds the shuffled queue of due words and steps through it on
// judgments. It is driven by a single caller; it owns no goroutines.
type Engine struct {
	rng           *rand.Rand
	queue         []*models.Word
	cursor        int
	state         State
	studiedTotal  int
	onWordStudied func(*models.Word)
}

// NewEngine creates an idle engine. A nil rng gets a time-seeded source;
// tests pass a fixed seed for deterministic shuffles.
func NewEngine(rng *rand.Rand) *Engine {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Engine{rng: rng}
}

// OnWordStudied registers the callback fired exactly once per judgment,
// after the word's transition has been applied.
func (e *Engine) OnWordStudied(fn func(*models.Word)) {
	e.onWordStudied = fn
}

// State returns the engine state.
func (e *Engine) State() State {
	return e.state
}

// Current returns the card being shown, or nil outside a session.
func (e *Engine) Current() *models.Word {
	if e.state != StateInSession {
		return nil
	}
	return e.queue[e.cursor]
}

// Next returns the card after the current one, or nil. Used for prefetch.
func (e *Engine) Next() *models.Word {
	if e.state != StateInSession || e.cursor+1 >= len(e.queue) {
		return nil
	}
	return e.queue[e.cursor+1]
}

// QueueLength returns the size of the current queue.
func (e *Engine) QueueLength() int {
	return len(e.queue)
}

// Position returns the 1-based number of the current card.
func (e *Engine) Position() int {
	return e.cursor + 1
}

// StudiedTotal returns how many judgments this engine has recorded across
// all its sessions.
func (e *Engine) StudiedTotal() int {
	return e.studiedTotal
}

// BuildQueue filters the given words to those due, shuffles them and keeps
// at most MaxQueueSize. Any session in progress is discarded.
func (e *Engine) BuildQueue(words []*models.Word, now time.Time) {
	var due []*models.Word
	for _, w := range words {
		if w.IsDue(now) {
			due = append(due, w)
		}
	}

	e.rng.Shuffle(len(due), func(i, j int) {
		due[i], due[j] = due[j], due[i]
	})
	if len(due) > MaxQueueSize {
		due = due[:MaxQueueSize]
	}

	e.queue = due
	e.cursor = 0
	if len(due) == 0 {
		e.state = StateNoWordsDue
	} else {
		e.state = StateInSession
	}
}

// SubmitJudgment applies the verdict to the current card and advances.
func (e *Engine) SubmitJudgment(j Judgment, now time.Time) error {
	if e.state != StateInSession {
		return ErrNoActiveSession
	}

	word := e.queue[e.cursor]
	switch j {
	case Know:
		word.MarkKnown(now)
	default:
		word.MarkUnknown(now)
	}

	e.studiedTotal++
	if e.onWordStudied != nil {
		e.onWordStudied(word)
	}

	e.cursor++
	if e.cursor >= len(e.queue) {
		e.state = StateSessionComplete
	}
	return nil
}

// Skip dismisses the current card. It is treated exactly like a
// "don't know" answer.
func (e *Engine) Skip(now time.Time) error {
	return e.SubmitJudgment(DontKnow, now)
}
