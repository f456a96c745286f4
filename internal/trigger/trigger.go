// Package trigger decides when the cache should start loading a verb
// section. The page reports viewport entry via beacons; each registered
// section triggers a load exactly once, with neighboring sections
// prefetched so data is warm slightly before the reader reaches them.
// When beacons are unavailable the trigger degrades to eagerly warming
// every registered section.
package trigger

import (
	"context"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/nkalandadze/zmna-backend/internal/config"
	"github.com/nkalandadze/zmna-backend/internal/domain"
)

// Loader is the cache surface the trigger drives.
type Loader interface {
	Load(ctx context.Context, id int) (*domain.VerbDocument, error)
	Invalidate(id int)
	Has(id int) bool
}

// Trigger tracks lazy sections and fires loads at most once each.
type Trigger struct {
	loader Loader
	cfg    config.TriggerConfig
	log    *slog.Logger

	mu       sync.Mutex
	sections []int
	position map[int]int
	fired    map[int]bool
}

// New creates a Trigger.
func New(loader Loader, cfg config.TriggerConfig, logger *slog.Logger) *Trigger {
	return &Trigger{
		loader:   loader,
		cfg:      cfg,
		log:      logger.With("component", "trigger"),
		position: map[int]int{},
		fired:    map[int]bool{},
	}
}

// Observe registers lazy sections in page order. Duplicate ids are
// ignored; registration order drives neighbor prefetching.
func (t *Trigger) Observe(ids ...int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, id := range ids {
		if _, ok := t.position[id]; ok {
			continue
		}
		t.position[id] = len(t.sections)
		t.sections = append(t.sections, id)
	}
}

// SectionVisible handles a viewport-entry beacon. The first beacon for a
// registered section starts its load and prefetches neighbors within the
// configured radius; later beacons (the section re-entering the
// viewport) are no-ops even while the load is still in flight.
//
// The load error, if any, is returned for instrumentation; the section
// still counts as triggered, because retry scheduling belongs to the
// cache, not the viewport.
func (t *Trigger) SectionVisible(ctx context.Context, id int) error {
	targets := t.claim(id)
	if len(targets) == 0 {
		return nil
	}

	var firstErr error
	for i, target := range targets {
		_, err := t.loader.Load(ctx, target)
		if err != nil && i == 0 {
			firstErr = err
		}
		if err != nil {
			t.log.WarnContext(ctx, "section load failed",
				slog.Int("verb_id", target),
				slog.String("error", err.Error()),
			)
		}
	}
	return firstErr
}

// claim marks the section and its unfired neighbors as triggered and
// returns them, the visible section first.
func (t *Trigger) claim(id int) []int {
	t.mu.Lock()
	defer t.mu.Unlock()

	pos, registered := t.position[id]
	if !registered || t.fired[id] {
		return nil
	}

	targets := []int{id}
	t.fired[id] = true

	for offset := 1; offset <= t.cfg.PrefetchRadius; offset++ {
		for _, p := range []int{pos - offset, pos + offset} {
			if p < 0 || p >= len(t.sections) {
				continue
			}
			neighbor := t.sections[p]
			if t.fired[neighbor] {
				continue
			}
			t.fired[neighbor] = true
			targets = append(targets, neighbor)
		}
	}
	return targets
}

// LoadImmediately loads a verb's data bypassing the viewport gate, for
// direct navigation (a URL anchor pointing straight at a verb). The id
// does not have to be registered.
func (t *Trigger) LoadImmediately(ctx context.Context, id int) (*domain.VerbDocument, error) {
	t.mu.Lock()
	if _, ok := t.position[id]; ok {
		t.fired[id] = true
	}
	t.mu.Unlock()

	return t.loader.Load(ctx, id)
}

// WarmAll eagerly loads every registered section with bounded
// concurrency. It is the fallback when visibility beacons are disabled:
// loading everything beats silently loading nothing. Individual load
// failures are logged and do not stop the sweep.
func (t *Trigger) WarmAll(ctx context.Context) error {
	t.mu.Lock()
	pending := make([]int, 0, len(t.sections))
	for _, id := range t.sections {
		if !t.fired[id] {
			t.fired[id] = true
			pending = append(pending, id)
		}
	}
	t.mu.Unlock()

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(t.cfg.WarmConcurrency)

	for _, id := range pending {
		g.Go(func() error {
			if _, err := t.loader.Load(ctx, id); err != nil {
				t.log.WarnContext(ctx, "warmup load failed",
					slog.Int("verb_id", id),
					slog.String("error", err.Error()),
				)
			}
			return ctx.Err()
		})
	}

	err := g.Wait()
	t.log.InfoContext(ctx, "warmup finished", slog.Int("sections", len(pending)))
	return err
}

// Forget removes a section from observation. A load still pending for
// it is invalidated so backoff timers cannot resurrect a stale load;
// an already-loaded document is kept.
func (t *Trigger) Forget(id int) {
	t.mu.Lock()
	pos, registered := t.position[id]
	wasFired := t.fired[id]
	if registered {
		delete(t.position, id)
		delete(t.fired, id)
		t.sections = append(t.sections[:pos], t.sections[pos+1:]...)
		for i := pos; i < len(t.sections); i++ {
			t.position[t.sections[i]] = i
		}
	}
	t.mu.Unlock()

	if registered && wasFired && !t.loader.Has(id) {
		t.loader.Invalidate(id)
	}
}
