package testhelper

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nkalandadze/zmna-backend/internal/domain"
)

// SeedVerb inserts an index row for a verb. Position controls page
// order; use distinct positions within a test.
func SeedVerb(t *testing.T, pool *pgxpool.Pool, entry domain.VerbIndexEntry, position int) {
	t.Helper()

	_, err := pool.Exec(context.Background(),
		`INSERT INTO verbs (id, georgian, description, semantic_key, position)
		 VALUES ($1, $2, $3, $4, $5)`,
		entry.ID, entry.Georgian, entry.Description, entry.SemanticKey, position,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedVerb insert: %v", err)
	}
}

// SeedDocument inserts the published document for a verb. The verb row
// must already exist.
func SeedDocument(t *testing.T, pool *pgxpool.Pool, doc *domain.VerbDocument) {
	t.Helper()

	raw, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("testhelper: SeedDocument marshal: %v", err)
	}

	_, err = pool.Exec(context.Background(),
		`INSERT INTO verb_documents (verb_id, document) VALUES ($1, $2)
		 ON CONFLICT (verb_id) DO UPDATE SET document = EXCLUDED.document, updated_at = now()`,
		doc.ID, raw,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedDocument insert: %v", err)
	}
}
