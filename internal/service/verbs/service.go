// Package verbs orchestrates the read path of a verb section: ensure
// the document is loaded, resolve the requested preverb, and render the
// HTML fragment. It also fronts the maintainer operations that refresh
// published data without a server restart.
package verbs

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/nkalandadze/zmna-backend/internal/domain"
	"github.com/nkalandadze/zmna-backend/internal/events"
	"github.com/nkalandadze/zmna-backend/internal/render"
)

// ---------------------------------------------------------------------------
// Dependencies
// ---------------------------------------------------------------------------

type catalogService interface {
	Get(id int) (domain.VerbIndexEntry, error)
	All() []domain.VerbIndexEntry
	Search(query string) []domain.VerbIndexEntry
	Reload(ctx context.Context) error
}

type documentCache interface {
	Load(ctx context.Context, id int) (*domain.VerbDocument, error)
	Invalidate(id int)
}

type conjugationResolver interface {
	Resolve(doc *domain.VerbDocument, preverb string) domain.ResolvedConjugation
	Drop(verbID int)
}

type fragmentRenderer interface {
	VerbSection(w io.Writer, data render.SectionData) error
	ErrorPanel(w io.Writer, data render.ErrorData) error
}

// Service wires catalog, cache, resolver, and renderer together.
type Service struct {
	catalog  catalogService
	cache    documentCache
	resolver conjugationResolver
	renderer fragmentRenderer
	bus      *events.Bus
	log      *slog.Logger
}

// New creates the verbs service.
func New(
	catalog catalogService,
	cache documentCache,
	resolver conjugationResolver,
	renderer fragmentRenderer,
	bus *events.Bus,
	logger *slog.Logger,
) *Service {
	return &Service{
		catalog:  catalog,
		cache:    cache,
		resolver: resolver,
		renderer: renderer,
		bus:      bus,
		log:      logger.With("service", "verbs"),
	}
}

// ---------------------------------------------------------------------------
// Read path
// ---------------------------------------------------------------------------

// Index returns every verb index entry in page order.
func (s *Service) Index() []domain.VerbIndexEntry {
	return s.catalog.All()
}

// Search filters the index.
func (s *Service) Search(query string) []domain.VerbIndexEntry {
	return s.catalog.Search(query)
}

// Document returns the full verb document, loading it if needed.
// A published index entry whose data file is absent yields ErrNotFound,
// same as an unknown id.
func (s *Service) Document(ctx context.Context, id int) (*domain.VerbDocument, error) {
	if _, err := s.catalog.Get(id); err != nil {
		return nil, err
	}

	doc, err := s.cache.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, fmt.Errorf("verb %d has no data file: %w", id, domain.ErrNotFound)
	}
	return doc, nil
}

// RenderSection renders the HTML fragment for a verb section with the
// requested preverb (empty selects the verb's default). On a load
// failure it returns the error-panel markup alongside the error so the
// transport can pick the status while still sending usable HTML.
func (s *Service) RenderSection(ctx context.Context, id int, preverb string) ([]byte, error) {
	entry, err := s.catalog.Get(id)
	if err != nil {
		return nil, err
	}

	doc, err := s.cache.Load(ctx, id)
	if err != nil {
		var buf bytes.Buffer
		if renderErr := s.renderer.ErrorPanel(&buf, render.ErrorData{
			VerbID:   entry.ID,
			Georgian: entry.Georgian,
			Message:  "Could not load conjugation data. Please try again.",
		}); renderErr != nil {
			return nil, renderErr
		}
		return buf.Bytes(), err
	}
	if doc == nil {
		return nil, fmt.Errorf("verb %d has no data file: %w", id, domain.ErrNotFound)
	}

	resolved := s.resolver.Resolve(doc, preverb)
	data := render.BuildSection(entry, doc, preverb, resolved)

	var buf bytes.Buffer
	if err := s.renderer.VerbSection(&buf, data); err != nil {
		return nil, err
	}

	if s.bus != nil {
		s.bus.PublishVerbRendered(events.VerbRendered{VerbID: id, Preverb: data.Preverb})
	}
	return buf.Bytes(), nil
}

// ---------------------------------------------------------------------------
// Maintainer operations
// ---------------------------------------------------------------------------

// Invalidate drops a verb's cached document and memoized resolutions so
// the next request refetches republished data. It also re-arms a verb
// stuck in a terminal load failure.
func (s *Service) Invalidate(ctx context.Context, id int) {
	s.cache.Invalidate(id)
	s.resolver.Drop(id)
	s.log.InfoContext(ctx, "verb invalidated", slog.Int("verb_id", id))
}

// ReloadIndex refetches the published verb index.
func (s *Service) ReloadIndex(ctx context.Context) error {
	return s.catalog.Reload(ctx)
}
