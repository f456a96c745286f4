// Package catalog keeps the verb index in memory and answers listing,
// lookup, and search queries against it. The index is the small eager
// payload shipped on every page; verb documents themselves stay lazy.
package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/nkalandadze/zmna-backend/internal/domain"
)

// IndexSource fetches the verb index from the configured data source.
type IndexSource interface {
	FetchIndex(ctx context.Context) (*domain.VerbIndex, error)
}

// Service serves the in-memory verb index.
type Service struct {
	source IndexSource
	log    *slog.Logger

	mu      sync.RWMutex
	entries []domain.VerbIndexEntry
	byID    map[int]domain.VerbIndexEntry
}

// New creates the catalog service. Call Load before serving.
func New(source IndexSource, logger *slog.Logger) *Service {
	return &Service{
		source: source,
		log:    logger.With("service", "catalog"),
		byID:   map[int]domain.VerbIndexEntry{},
	}
}

// Load fetches the index and replaces the in-memory copy. Entry order
// is preserved as published; it is the page order the trigger relies on
// for neighbor prefetching.
func (s *Service) Load(ctx context.Context) error {
	index, err := s.source.FetchIndex(ctx)
	if err != nil {
		return fmt.Errorf("load verb index: %w", err)
	}
	if index == nil {
		return fmt.Errorf("load verb index: %w", domain.ErrNotFound)
	}

	byID := make(map[int]domain.VerbIndexEntry, len(index.Verbs))
	for _, entry := range index.Verbs {
		byID[entry.ID] = entry
	}

	s.mu.Lock()
	s.entries = index.Verbs
	s.byID = byID
	s.mu.Unlock()

	s.log.InfoContext(ctx, "verb index loaded", slog.Int("verbs", len(index.Verbs)))
	return nil
}

// Reload refetches the index. Used by the maintainer endpoint after the
// editor republishes data files.
func (s *Service) Reload(ctx context.Context) error {
	return s.Load(ctx)
}

// All returns every index entry in page order.
func (s *Service) All() []domain.VerbIndexEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.VerbIndexEntry, len(s.entries))
	copy(out, s.entries)
	return out
}

// IDs returns the verb ids in page order.
func (s *Service) IDs() []int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]int, len(s.entries))
	for i, entry := range s.entries {
		ids[i] = entry.ID
	}
	return ids
}

// Get looks up one index entry.
func (s *Service) Get(id int) (domain.VerbIndexEntry, error) {
	s.mu.RLock()
	entry, ok := s.byID[id]
	s.mu.RUnlock()
	if !ok {
		return domain.VerbIndexEntry{}, fmt.Errorf("verb %d: %w", id, domain.ErrNotFound)
	}
	return entry, nil
}

// Search filters entries by a case-insensitive substring match over the
// Georgian headword, description, and semantic key. An empty query
// matches everything, mirroring an empty filter box.
func (s *Service) Search(query string) []domain.VerbIndexEntry {
	q := domain.NormalizeText(query)
	if q == "" {
		return s.All()
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	matches := make([]domain.VerbIndexEntry, 0)
	for _, entry := range s.entries {
		if strings.Contains(domain.NormalizeText(entry.Georgian), q) ||
			strings.Contains(domain.NormalizeText(entry.Description), q) ||
			strings.Contains(domain.NormalizeText(entry.SemanticKey), q) {
			matches = append(matches, entry)
		}
	}
	return matches
}
