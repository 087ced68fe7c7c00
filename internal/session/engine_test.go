package session

import (
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/example/ydsbot/pkg/models"
)

var testNow = time.Date(2025, time.March, 10, 9, 0, 0, 0, time.UTC)

func makeWords(n int, due bool) []*models.Word {
	words := make([]*models.Word, n)
	for i := range words {
		w := models.NewWord(fmt.Sprintf("word%02d", i), testNow)
		if !due {
			w.NextReviewAt = testNow.AddDate(0, 0, 7)
		}
		words[i] = w
	}
	return words
}

func newTestEngine() *Engine {
	return NewEngine(rand.New(rand.NewSource(1)))
}

func TestBuildQueueCapsAtTwenty(t *testing.T) {
	e := newTestEngine()
	e.BuildQueue(makeWords(25, true), testNow)

	if e.State() != StateInSession {
		t.Fatalf("State() = %v, want StateInSession", e.State())
	}
	if e.QueueLength() != MaxQueueSize {
		t.Errorf("QueueLength() = %d, want %d", e.QueueLength(), MaxQueueSize)
	}
	if e.Current() == nil {
		t.Error("Current() is nil at session start")
	}
}

func TestBuildQueueIsPermutationOfDueSet(t *testing.T) {
	words := makeWords(15, true)
	// Mix in words that are not due yet
	notDue := makeWords(5, false)
	for i, w := range notDue {
		w.Text = fmt.Sprintf("future%02d", i)
	}
	all := append(append([]*models.Word{}, words...), notDue...)

	e := newTestEngine()
	e.BuildQueue(all, testNow)

	if e.QueueLength() != 15 {
		t.Fatalf("QueueLength() = %d, want 15", e.QueueLength())
	}
	seen := make(map[string]int)
	for e.State() == StateInSession {
		seen[e.Current().Text]++
		if err := e.SubmitJudgment(Know, testNow); err != nil {
			t.Fatalf("SubmitJudgment() error: %v", err)
		}
	}
	for _, w := range words {
		if seen[w.Text] != 1 {
			t.Errorf("word %q appeared %d times, want 1", w.Text, seen[w.Text])
		}
	}
	for _, w := range notDue {
		if seen[w.Text] != 0 {
			t.Errorf("word %q is not due but was queued", w.Text)
		}
	}
}

func TestBuildQueueShuffles(t *testing.T) {
	words := makeWords(20, true)
	e := NewEngine(rand.New(rand.NewSource(7)))
	e.BuildQueue(words, testNow)

	inOrder := true
	for i := 0; e.State() == StateInSession; i++ {
		if e.Current() != words[i] {
			inOrder = false
		}
		e.SubmitJudgment(Know, testNow)
	}
	if inOrder {
		t.Error("queue order matches input order; expected a shuffle")
	}
}

func TestBuildQueueEmptyDueSet(t *testing.T) {
	e := newTestEngine()
	e.BuildQueue(makeWords(10, false), testNow)

	if e.State() != StateNoWordsDue {
		t.Errorf("State() = %v, want StateNoWordsDue", e.State())
	}
	if e.Current() != nil {
		t.Error("Current() should be nil with no due words")
	}
}

func TestSessionRunsToCompletion(t *testing.T) {
	e := newTestEngine()
	e.BuildQueue(makeWords(5, true), testNow)

	for i := 0; i < 5; i++ {
		if e.State() != StateInSession {
			t.Fatalf("State() = %v at card %d, want StateInSession", e.State(), i)
		}
		if err := e.SubmitJudgment(Know, testNow); err != nil {
			t.Fatalf("SubmitJudgment() error: %v", err)
		}
	}

	if e.State() != StateSessionComplete {
		t.Errorf("State() = %v, want StateSessionComplete", e.State())
	}
	if e.Current() != nil {
		t.Error("Current() should be nil after completion")
	}
	if err := e.SubmitJudgment(Know, testNow); err != ErrNoActiveSession {
		t.Errorf("SubmitJudgment() after completion = %v, want ErrNoActiveSession", err)
	}
}

func TestJudgmentsMutateWords(t *testing.T) {
	words := makeWords(2, true)
	e := newTestEngine()
	e.BuildQueue(words, testNow)

	first := e.Current()
	e.SubmitJudgment(Know, testNow)
	if first.Level != 1 || first.CorrectCount != 1 {
		t.Errorf("known word = level %d correct %d, want 1, 1", first.Level, first.CorrectCount)
	}

	second := e.Current()
	e.SubmitJudgment(DontKnow, testNow)
	if second.Level != 0 || second.IncorrectCount != 1 {
		t.Errorf("unknown word = level %d incorrect %d, want 0, 1", second.Level, second.IncorrectCount)
	}
}

func TestSkipActsAsDontKnow(t *testing.T) {
	words := makeWords(1, true)
	words[0].Level = 3
	e := newTestEngine()
	e.BuildQueue(words, testNow)

	if err := e.Skip(testNow); err != nil {
		t.Fatalf("Skip() error: %v", err)
	}
	if words[0].Level != 2 {
		t.Errorf("Level = %d, want 2 (skip regresses like a miss)", words[0].Level)
	}
	if words[0].IncorrectCount != 1 {
		t.Errorf("IncorrectCount = %d, want 1", words[0].IncorrectCount)
	}
}

func TestWordStudiedFiresOncePerJudgment(t *testing.T) {
	e := newTestEngine()
	var events []string
	e.OnWordStudied(func(w *models.Word) {
		events = append(events, w.Text)
	})
	e.BuildQueue(makeWords(3, true), testNow)

	e.SubmitJudgment(Know, testNow)
	e.SubmitJudgment(DontKnow, testNow)
	e.Skip(testNow)

	if len(events) != 3 {
		t.Errorf("got %d events, want 3", len(events))
	}
	if e.StudiedTotal() != 3 {
		t.Errorf("StudiedTotal() = %d, want 3", e.StudiedTotal())
	}
}

func TestNextExposesPrefetchTarget(t *testing.T) {
	e := newTestEngine()
	e.BuildQueue(makeWords(2, true), testNow)

	next := e.Next()
	if next == nil {
		t.Fatal("Next() is nil with two cards queued")
	}
	if next == e.Current() {
		t.Error("Next() returned the current card")
	}

	e.SubmitJudgment(Know, testNow)
	if e.Next() != nil {
		t.Error("Next() should be nil on the last card")
	}
}

func TestRebuildDiscardsSession(t *testing.T) {
	e := newTestEngine()
	e.BuildQueue(makeWords(5, true), testNow)
	e.SubmitJudgment(Know, testNow)
	e.SubmitJudgment(Know, testNow)

	e.BuildQueue(makeWords(3, true), testNow)
	if e.Position() != 1 {
		t.Errorf("Position() = %d after rebuild, want 1", e.Position())
	}
	if e.QueueLength() != 3 {
		t.Errorf("QueueLength() = %d after rebuild, want 3", e.QueueLength())
	}
}
