// Package cache implements the verb-data cache: the single owner of
// fetched verb documents. It guarantees at most one concurrent fetch per
// verb id, retries transient failures with exponential backoff up to a
// fixed ceiling, and pins permanent misses and terminal failures so they
// are never refetched automatically.
package cache

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/nkalandadze/zmna-backend/internal/config"
	"github.com/nkalandadze/zmna-backend/internal/domain"
	"github.com/nkalandadze/zmna-backend/internal/events"
)

// State is the lifecycle state of a cache entry.
type State int

const (
	// StateUnknown means the id has never been requested (or was invalidated).
	StateUnknown State = iota
	// StateLoading means a fetch is in flight.
	StateLoading
	// StateLoaded means the document is cached.
	StateLoaded
	// StateMissing means the source has no document for the id (permanent miss).
	StateMissing
	// StateFailed means the retry ceiling was exhausted; terminal until Invalidate.
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateLoaded:
		return "loaded"
	case StateMissing:
		return "missing"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// errInvalidated is returned to in-flight callers whose load was
// superseded by an explicit Invalidate.
var errInvalidated = errors.New("cache: entry invalidated during load")

// Source is the upstream the cache fetches documents from.
// (nil, nil) means the source has no document for the id.
type Source interface {
	FetchDocument(ctx context.Context, id int) (*domain.VerbDocument, error)
}

type entry struct {
	state State
	doc   *domain.VerbDocument
	err   error
}

// Cache is the verb-document cache. The entry map is the only shared
// mutable state of the load pipeline and is owned exclusively by Cache;
// no other component touches it.
type Cache struct {
	source Source
	cfg    config.CacheConfig
	bus    *events.Bus
	obs    Observer
	log    *slog.Logger

	group singleflight.Group

	mu      sync.RWMutex
	entries map[int]*entry
	gens    map[int]uint64
}

// New creates a Cache. bus may be nil when no consumer subscribes to
// load events; obs may be nil to disable instrumentation.
func New(source Source, cfg config.CacheConfig, bus *events.Bus, obs Observer, logger *slog.Logger) *Cache {
	if obs == nil {
		obs = NopObserver{}
	}
	return &Cache{
		source:  source,
		cfg:     cfg,
		bus:     bus,
		obs:     obs,
		log:     logger.With("component", "cache"),
		entries: map[int]*entry{},
		gens:    map[int]uint64{},
	}
}

// Has reports whether a loaded document is cached for the id.
func (c *Cache) Has(id int) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[id]
	return ok && e.state == StateLoaded
}

// Get returns the cached document, or nil when the id is not in the
// loaded state. It never triggers a fetch.
func (c *Cache) Get(id int) *domain.VerbDocument {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if e, ok := c.entries[id]; ok && e.state == StateLoaded {
		return e.doc
	}
	return nil
}

// State returns the lifecycle state for the id.
func (c *Cache) State(id int) State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if e, ok := c.entries[id]; ok {
		return e.state
	}
	return StateUnknown
}

// Load returns the document for the id, fetching it if necessary.
//
// Cached results return immediately. Concurrent callers for the same
// uncached id share a single fetch and receive the same document or the
// same error. A permanent miss returns (nil, nil). A terminal failure
// returns an error wrapping domain.ErrLoadFailed and is not retried
// until Invalidate.
func (c *Cache) Load(ctx context.Context, id int) (*domain.VerbDocument, error) {
	if doc, err, done := c.fastPath(id); done {
		return doc, err
	}

	c.obs.CacheMiss(id)

	v, err, _ := c.group.Do(domain.Key(id), func() (any, error) {
		// A flight that finished between the fast path and here already
		// settled the entry.
		if doc, err, done := c.fastPath(id); done {
			return doc, err
		}
		return c.fetchWithRetry(ctx, id)
	})
	if err != nil {
		return nil, err
	}
	doc, _ := v.(*domain.VerbDocument)
	return doc, nil
}

// fastPath resolves settled states without fetching.
func (c *Cache) fastPath(id int) (*domain.VerbDocument, error, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[id]
	if !ok {
		return nil, nil, false
	}
	switch e.state {
	case StateLoaded:
		c.obs.CacheHit(id)
		return e.doc, nil, true
	case StateMissing:
		return nil, nil, true
	case StateFailed:
		return nil, e.err, true
	default:
		return nil, nil, false
	}
}

// fetchWithRetry runs the attempt loop for one singleflight flight.
func (c *Cache) fetchWithRetry(ctx context.Context, id int) (*domain.VerbDocument, error) {
	startGen := c.markLoading(id)
	start := time.Now()

	var lastErr error
	for attempt := 1; attempt <= c.cfg.MaxAttempts; attempt++ {
		doc, err := c.source.FetchDocument(ctx, id)
		if err == nil {
			if doc == nil {
				if !c.settle(id, startGen, &entry{state: StateMissing}) {
					return nil, errInvalidated
				}
				return nil, nil
			}

			if !c.settle(id, startGen, &entry{state: StateLoaded, doc: doc}) {
				return nil, errInvalidated
			}
			c.obs.LoadSucceeded(id, time.Since(start))
			if c.bus != nil {
				c.bus.PublishVerbDataLoaded(events.VerbDataLoaded{VerbID: id, Document: doc})
			}
			return doc, nil
		}

		lastErr = err
		if attempt == c.cfg.MaxAttempts {
			break
		}

		delay := c.cfg.BaseBackoff << (attempt - 1)
		c.obs.FetchRetry(id, attempt, delay, err)
		c.log.WarnContext(ctx, "fetch retry",
			slog.Int("verb_id", id),
			slog.Int("attempt", attempt),
			slog.Duration("delay", delay),
			slog.String("error", err.Error()),
		)

		if err := c.sleep(ctx, id, startGen, delay); err != nil {
			return nil, err
		}
	}

	terminal := fmt.Errorf("%w: verb %d after %d attempts: %v", domain.ErrLoadFailed, id, c.cfg.MaxAttempts, lastErr)
	if !c.settle(id, startGen, &entry{state: StateFailed, err: terminal}) {
		return nil, errInvalidated
	}
	c.obs.LoadFailed(id, c.cfg.MaxAttempts, terminal)
	c.log.ErrorContext(ctx, "load failed terminally",
		slog.Int("verb_id", id),
		slog.Int("attempts", c.cfg.MaxAttempts),
		slog.String("error", lastErr.Error()),
	)
	return nil, terminal
}

// sleep waits out a backoff delay, aborting on context cancellation or
// invalidation so a dropped section cannot resurrect a stale load.
func (c *Cache) sleep(ctx context.Context, id int, startGen uint64, delay time.Duration) error {
	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		c.clearLoading(id, startGen)
		return ctx.Err()
	case <-timer.C:
	}

	if c.generation(id) != startGen {
		return errInvalidated
	}
	return nil
}

// Invalidate drops the cached entry, cancels pending backoff waits, and
// forgets the in-flight marker so a subsequent Load re-fetches.
func (c *Cache) Invalidate(id int) {
	c.mu.Lock()
	delete(c.entries, id)
	c.gens[id]++
	c.mu.Unlock()

	c.group.Forget(domain.Key(id))
	c.log.Info("entry invalidated", slog.Int("verb_id", id))
}

func (c *Cache) markLoading(id int) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[id] = &entry{state: StateLoading}
	return c.gens[id]
}

// settle stores the final entry unless the generation moved (Invalidate
// won the race); a superseded flight's result is discarded.
func (c *Cache) settle(id int, startGen uint64, e *entry) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.gens[id] != startGen {
		return false
	}
	c.entries[id] = e
	return true
}

// clearLoading resets a loading entry back to unknown after a canceled
// attempt, keeping the id retryable.
func (c *Cache) clearLoading(id int, startGen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.gens[id] != startGen {
		return
	}
	if e, ok := c.entries[id]; ok && e.state == StateLoading {
		delete(c.entries, id)
	}
}

func (c *Cache) generation(id int) uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.gens[id]
}
