package verb_test

import (
	"context"
	"testing"

	"github.com/nkalandadze/zmna-backend/internal/adapter/postgres/testhelper"
	"github.com/nkalandadze/zmna-backend/internal/adapter/postgres/verb"
	"github.com/nkalandadze/zmna-backend/internal/domain"
)

func TestRepo_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	pool := testhelper.SetupTestDB(t)
	repo := verb.New(pool)
	ctx := context.Background()

	testhelper.SeedVerb(t, pool, domain.VerbIndexEntry{ID: 201, Georgian: "სვლა", Description: "to go", SemanticKey: "motion"}, 1)
	testhelper.SeedVerb(t, pool, domain.VerbIndexEntry{ID: 202, Georgian: "თქმა", Description: "to say", SemanticKey: "speech"}, 2)
	testhelper.SeedDocument(t, pool, &domain.VerbDocument{
		ID: 201,
		Conjugations: domain.Conjugations{
			domain.TensePresent: {Forms: map[string]string{"1sg": "მივდივარ"}},
		},
	})

	t.Run("GetIndex returns verbs in position order", func(t *testing.T) {
		index, err := repo.GetIndex(ctx)
		if err != nil {
			t.Fatalf("GetIndex() error = %v", err)
		}
		if len(index.Verbs) < 2 {
			t.Fatalf("GetIndex() len = %d, want at least 2", len(index.Verbs))
		}
		if index.Verbs[0].ID != 201 || index.Verbs[1].ID != 202 {
			t.Errorf("GetIndex() order = %d, %d", index.Verbs[0].ID, index.Verbs[1].ID)
		}
	})

	t.Run("GetDocument decodes stored json", func(t *testing.T) {
		doc, err := repo.GetDocument(ctx, 201)
		if err != nil {
			t.Fatalf("GetDocument() error = %v", err)
		}
		if doc == nil {
			t.Fatal("GetDocument() = nil, want document")
		}
		if got := doc.Conjugations[domain.TensePresent].Forms["1sg"]; got != "მივდივარ" {
			t.Errorf("GetDocument() 1sg = %q", got)
		}
	})

	t.Run("GetDocument without row is a permanent miss", func(t *testing.T) {
		doc, err := repo.GetDocument(ctx, 202)
		if err != nil {
			t.Fatalf("GetDocument() error = %v", err)
		}
		if doc != nil {
			t.Errorf("GetDocument() = %+v, want nil", doc)
		}
	})

	t.Run("GetDocumentsByIDs skips verbs without documents", func(t *testing.T) {
		docs, err := repo.GetDocumentsByIDs(ctx, []int{201, 202})
		if err != nil {
			t.Fatalf("GetDocumentsByIDs() error = %v", err)
		}
		if len(docs) != 1 {
			t.Fatalf("GetDocumentsByIDs() len = %d, want 1", len(docs))
		}
		if docs[201] == nil {
			t.Error("expected document for verb 201")
		}
	})
}
