// Package content supplies card content for words, caching fetched results
// on the word record and prefetching the next card ahead of time.
package content

import (
	"context"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/example/ydsbot/pkg/models"
)

// DefaultTTL is how long cached content is reused before a re-fetch.
const DefaultTTL = 30 * 24 * time.Hour

// Provider generates content for a word.
type Provider interface {
	FetchContent(ctx context.Context, word string) (models.WordContent, error)
}

// Store persists a word record after its cache fields change.
type Store interface {
	Update(word *models.Word) error
}

// StatusState describes a card's content from the caller's point of view.
type StatusState int

const (
	StatusUnknown StatusState = iota
	StatusLoading
	StatusLoaded
	StatusError
)

// CardStatus is the last observed content state for one word.
type CardStatus struct {
	State   StatusState
	Content models.WordContent
	Err     string
}

// inflightFetch is one running provider call. The winner fills in content
// and err before closing done, so waiters see its actual outcome.
type inflightFetch struct {
	done    chan struct{}
	content models.WordContent
	err     error
}

// Cache coordinates content fetches. In-flight fetches are keyed by word
// text, so a result arriving late still lands on the word it belongs to and
// never touches another card's status. The cache mutex also guards the
// word record's cache fields, since Prefetch writes them from its own
// goroutine; any code that touches those fields while a prefetch may be
// running goes through this lock.
type Cache struct {
	provider Provider
	store    Store
	ttl      time.Duration

	mu       sync.Mutex
	inflight map[string]*inflightFetch
	status   map[string]CardStatus
}

// New creates a cache with the default 30-day TTL.
func New(provider Provider, store Store) *Cache {
	return &Cache{
		provider: provider,
		store:    store,
		ttl:      DefaultTTL,
		inflight: make(map[string]*inflightFetch),
		status:   make(map[string]CardStatus),
	}
}

// Get returns content for the word. Cached content younger than the TTL is
// reused without a network call; otherwise a fetch runs, and on success the
// result is written to the record and persisted. On failure the cached
// fields are left untouched.
func (c *Cache) Get(ctx context.Context, word *models.Word, now time.Time) (models.WordContent, error) {
	if cached, cachedAt := c.cachedContent(word); cached != nil && now.Sub(cachedAt) < c.ttl {
		c.setStatus(word.Text, CardStatus{State: StatusLoaded, Content: *cached})
		return *cached, nil
	}

	c.setStatus(word.Text, CardStatus{State: StatusLoading})

	content, err := c.fetch(ctx, word, now)
	if err != nil {
		c.setStatus(word.Text, CardStatus{State: StatusError, Err: err.Error()})
		return models.WordContent{}, err
	}

	c.setStatus(word.Text, CardStatus{State: StatusLoaded, Content: content})
	return content, nil
}

// Prefetch warms the cache for the word in the background. A word with any
// cached content, fresh or stale, is left alone; failures are dropped.
func (c *Cache) Prefetch(word *models.Word, now time.Time) {
	if word == nil {
		return
	}
	if _, cachedAt := c.cachedContent(word); !cachedAt.IsZero() {
		return
	}
	go func() {
		// Best-effort: the next card either arrives warm or loads normally
		_, _ = c.fetch(context.Background(), word, now)
	}()
}

// SaveWord persists the word record under the cache lock, so callers can
// save level and counter changes without racing a prefetch that is writing
// the same record's cache fields.
func (c *Cache) SaveWord(word *models.Word) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.store.Update(word)
}

// Status returns the last observed content state for a word.
func (c *Cache) Status(text string) CardStatus {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status[cacheKey(text)]
}

// fetch runs a single-flight provider call for the word. Duplicate callers
// wait for the first fetch and take its result, success or failure.
func (c *Cache) fetch(ctx context.Context, word *models.Word, now time.Time) (models.WordContent, error) {
	key := cacheKey(word.Text)

	c.mu.Lock()
	if f, ok := c.inflight[key]; ok {
		c.mu.Unlock()
		select {
		case <-f.done:
		case <-ctx.Done():
			return models.WordContent{}, ctx.Err()
		}
		return f.content, f.err
	}
	f := &inflightFetch{done: make(chan struct{})}
	c.inflight[key] = f
	c.mu.Unlock()

	content, err := c.provider.FetchContent(ctx, word.Text)
	if err == nil {
		c.mu.Lock()
		word.SetCachedContent(content, now)
		if saveErr := c.store.Update(word); saveErr != nil {
			// Content stays usable in memory even if the save fails
			log.Printf("failed to save cached content for %q: %v", word.Text, saveErr)
		}
		c.mu.Unlock()
	}

	f.content, f.err = content, err
	c.mu.Lock()
	delete(c.inflight, key)
	c.mu.Unlock()
	close(f.done)

	if err != nil {
		return models.WordContent{}, err
	}
	return content, nil
}

// cachedContent reads the word's cache fields under the lock.
func (c *Cache) cachedContent(word *models.Word) (*models.WordContent, time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	cached := word.CachedContent()
	var cachedAt time.Time
	if word.CachedAt != nil {
		cachedAt = *word.CachedAt
	}
	return cached, cachedAt
}

func (c *Cache) setStatus(text string, s CardStatus) {
	c.mu.Lock()
	c.status[cacheKey(text)] = s
	c.mu.Unlock()
}

func cacheKey(text string) string {
	return strings.ToLower(text)
}
