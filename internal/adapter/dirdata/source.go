// Package dirdata reads verb artifacts from a local directory laid out
// the same way as the static origin (verbs-index.json, verb_{id}.json).
package dirdata

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/nkalandadze/zmna-backend/internal/domain"
)

// Source reads artifacts from DataDir.
type Source struct {
	dir string
	log *slog.Logger
}

// NewSource creates a Source rooted at dir.
func NewSource(dir string, logger *slog.Logger) *Source {
	return &Source{
		dir: dir,
		log: logger.With("adapter", "dirdata"),
	}
}

// FetchDocument reads verb_{id}.json. A missing file is a permanent miss
// (nil, nil), mirroring the HTTP source's 404 semantics.
func (s *Source) FetchDocument(ctx context.Context, id int) (*domain.VerbDocument, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path := filepath.Join(s.dir, fmt.Sprintf("verb_%s.json", domain.Key(id)))

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		s.log.DebugContext(ctx, "no lazily-loaded data", slog.Int("verb_id", id))
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("dirdata: verb %d: %w", id, err)
	}

	doc, err := domain.DecodeDocument(data)
	if err != nil {
		return nil, fmt.Errorf("dirdata: verb %d: %w", id, err)
	}
	if doc.ID == 0 {
		doc.ID = id
	}

	return doc, nil
}

// FetchIndex reads verbs-index.json.
func (s *Source) FetchIndex(ctx context.Context) (*domain.VerbIndex, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(filepath.Join(s.dir, "verbs-index.json"))
	if err != nil {
		return nil, fmt.Errorf("dirdata: index: %w", err)
	}

	var index domain.VerbIndex
	if err := json.Unmarshal(data, &index); err != nil {
		return nil, fmt.Errorf("dirdata: decode index: %w", err)
	}

	return &index, nil
}
