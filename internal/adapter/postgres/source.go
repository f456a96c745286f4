package postgres

import (
	"context"
	"log/slog"
	"time"

	"github.com/graph-gophers/dataloader/v7"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nkalandadze/zmna-backend/internal/adapter/postgres/verb"
	"github.com/nkalandadze/zmna-backend/internal/domain"
)

const (
	loaderMaxBatch = 50
	loaderWait     = 2 * time.Millisecond
)

// Source serves verb data from the editor's database. Document fetches
// that arrive close together (a warmup sweep, a prefetch burst) are
// coalesced into one batched query; result caching is left to the verb
// data cache, so the loader itself runs cacheless.
type Source struct {
	pool   *pgxpool.Pool
	repo   *verb.Repo
	loader *dataloader.Loader[int, *domain.VerbDocument]
	log    *slog.Logger
}

// NewSource creates a database-backed Source.
func NewSource(pool *pgxpool.Pool, logger *slog.Logger) *Source {
	s := &Source{
		pool: pool,
		repo: verb.New(pool),
		log:  logger.With("adapter", "postgres"),
	}
	s.loader = dataloader.NewBatchedLoader(
		s.batchDocuments,
		dataloader.WithCache[int, *domain.VerbDocument](&dataloader.NoCache[int, *domain.VerbDocument]{}),
		dataloader.WithWait[int, *domain.VerbDocument](loaderWait),
		dataloader.WithBatchCapacity[int, *domain.VerbDocument](loaderMaxBatch),
	)
	return s
}

// FetchDocument loads one verb document through the batching loader.
// Returns nil, nil when the verb has no document row.
func (s *Source) FetchDocument(ctx context.Context, id int) (*domain.VerbDocument, error) {
	return s.loader.Load(ctx, id)()
}

// FetchIndex loads the verb index.
func (s *Source) FetchIndex(ctx context.Context) (*domain.VerbIndex, error) {
	return s.repo.GetIndex(ctx)
}

// Ping checks database connectivity for the readiness probe.
func (s *Source) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

func (s *Source) batchDocuments(ctx context.Context, keys []int) []*dataloader.Result[*domain.VerbDocument] {
	results := make([]*dataloader.Result[*domain.VerbDocument], len(keys))

	docs, err := s.repo.GetDocumentsByIDs(ctx, keys)
	if err != nil {
		s.log.ErrorContext(ctx, "batch document fetch failed",
			slog.Int("keys", len(keys)),
			slog.String("error", err.Error()),
		)
		for i := range keys {
			results[i] = &dataloader.Result[*domain.VerbDocument]{Error: err}
		}
		return results
	}

	for i, id := range keys {
		// Absent ids resolve to a nil document, the permanent-miss
		// signal shared by every source mode.
		results[i] = &dataloader.Result[*domain.VerbDocument]{Data: docs[id]}
	}
	return results
}
