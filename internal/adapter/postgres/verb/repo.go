// Package verb implements the verb repository for the postgres source
// mode, where published artifacts live in the editor's database instead
// of static files.
package verb

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"

	"github.com/nkalandadze/zmna-backend/internal/domain"
)

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// Repo provides verb persistence backed by PostgreSQL.
type Repo struct {
	db Querier
}

// New creates a verb repository.
func New(db Querier) *Repo {
	return &Repo{db: db}
}

type indexRow struct {
	ID          int    `db:"id"`
	Georgian    string `db:"georgian"`
	Description string `db:"description"`
	SemanticKey string `db:"semantic_key"`
}

// GetIndex returns the verb index in page order.
func (r *Repo) GetIndex(ctx context.Context) (*domain.VerbIndex, error) {
	sql, args, err := psql.
		Select("id", "georgian", "description", "semantic_key").
		From("verbs").
		OrderBy("position ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build index query: %w", err)
	}

	var rows []indexRow
	if err := pgxscan.Select(ctx, r.db, &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("select verb index: %w", err)
	}

	index := &domain.VerbIndex{Verbs: make([]domain.VerbIndexEntry, len(rows))}
	for i, row := range rows {
		index.Verbs[i] = domain.VerbIndexEntry{
			ID:          row.ID,
			Georgian:    row.Georgian,
			Description: row.Description,
			SemanticKey: row.SemanticKey,
		}
	}
	return index, nil
}

// GetDocument returns one verb document, decoded and normalized from
// its stored JSON. Returns nil, nil when the verb has no document row,
// matching the permanent-miss semantics of the file sources.
func (r *Repo) GetDocument(ctx context.Context, id int) (*domain.VerbDocument, error) {
	sql, args, err := psql.
		Select("document").
		From("verb_documents").
		Where(squirrel.Eq{"verb_id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build document query: %w", err)
	}

	var raw []byte
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&raw); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select verb document %d: %w", id, err)
	}

	doc, err := domain.DecodeDocument(raw)
	if err != nil {
		return nil, fmt.Errorf("verb document %d: %w", id, err)
	}
	if doc.ID == 0 {
		doc.ID = id
	}
	return doc, nil
}

// GetDocumentsByIDs returns the documents for the given verbs, keyed by
// id. Verbs without a document row are simply absent from the map.
func (r *Repo) GetDocumentsByIDs(ctx context.Context, ids []int) (map[int]*domain.VerbDocument, error) {
	if len(ids) == 0 {
		return map[int]*domain.VerbDocument{}, nil
	}

	sql, args, err := psql.
		Select("verb_id", "document").
		From("verb_documents").
		Where(squirrel.Eq{"verb_id": ids}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build batch document query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("select verb documents: %w", err)
	}
	defer rows.Close()

	docs := make(map[int]*domain.VerbDocument, len(ids))
	for rows.Next() {
		var (
			id  int
			raw []byte
		)
		if err := rows.Scan(&id, &raw); err != nil {
			return nil, fmt.Errorf("scan verb document: %w", err)
		}

		doc, err := domain.DecodeDocument(raw)
		if err != nil {
			return nil, fmt.Errorf("verb document %d: %w", id, err)
		}
		if doc.ID == 0 {
			doc.ID = id
		}
		docs[id] = doc
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate verb documents: %w", err)
	}

	return docs, nil
}
