package rest

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nkalandadze/zmna-backend/internal/domain"
)

// ===========================================================================
// Manual mocks
// ===========================================================================

type mockVerbService struct {
	indexFn    func() []domain.VerbIndexEntry
	searchFn   func(query string) []domain.VerbIndexEntry
	documentFn func(ctx context.Context, id int) (*domain.VerbDocument, error)
	renderFn   func(ctx context.Context, id int, preverb string) ([]byte, error)
}

func (m *mockVerbService) Index() []domain.VerbIndexEntry {
	return m.indexFn()
}

func (m *mockVerbService) Search(query string) []domain.VerbIndexEntry {
	return m.searchFn(query)
}

func (m *mockVerbService) Document(ctx context.Context, id int) (*domain.VerbDocument, error) {
	return m.documentFn(ctx, id)
}

func (m *mockVerbService) RenderSection(ctx context.Context, id int, preverb string) ([]byte, error) {
	return m.renderFn(ctx, id, preverb)
}

func testMux(svc verbService) *http.ServeMux {
	h := NewVerbHandler(svc, slog.New(slog.DiscardHandler))
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/verbs", h.List)
	mux.HandleFunc("GET /api/verbs/search", h.Search)
	mux.HandleFunc("GET /api/verbs/{id}", h.Document)
	mux.HandleFunc("GET /fragments/verbs/{id}", h.Fragment)
	return mux
}

// ===========================================================================
// Tests
// ===========================================================================

func TestList(t *testing.T) {
	t.Parallel()

	svc := &mockVerbService{indexFn: func() []domain.VerbIndexEntry {
		return []domain.VerbIndexEntry{{ID: 1, Georgian: "სვლა", Description: "to go"}}
	}}

	rec := httptest.NewRecorder()
	testMux(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/verbs", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t,
		`{"verbs":[{"id":1,"georgian":"სვლა","description":"to go","semantic_key":""}]}`,
		rec.Body.String(),
	)
}

func TestSearch_PassesQuery(t *testing.T) {
	t.Parallel()

	var gotQuery string
	svc := &mockVerbService{searchFn: func(query string) []domain.VerbIndexEntry {
		gotQuery = query
		return []domain.VerbIndexEntry{}
	}}

	rec := httptest.NewRecorder()
	testMux(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/verbs/search?q=motion", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "motion", gotQuery)
	assert.JSONEq(t, `{"verbs":[]}`, rec.Body.String())
}

func TestDocument(t *testing.T) {
	t.Parallel()

	svc := &mockVerbService{documentFn: func(_ context.Context, id int) (*domain.VerbDocument, error) {
		return &domain.VerbDocument{ID: id}, nil
	}}

	rec := httptest.NewRecorder()
	testMux(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/verbs/7", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"id":7`)
}

func TestDocument_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		path       string
		err        error
		wantStatus int
	}{
		{name: "not found", path: "/api/verbs/99", err: fmt.Errorf("verb 99: %w", domain.ErrNotFound), wantStatus: http.StatusNotFound},
		{name: "load failed", path: "/api/verbs/7", err: fmt.Errorf("%w: verb 7", domain.ErrLoadFailed), wantStatus: http.StatusBadGateway},
		{name: "bad id", path: "/api/verbs/abc", wantStatus: http.StatusBadRequest},
		{name: "negative id", path: "/api/verbs/-3", wantStatus: http.StatusBadRequest},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			svc := &mockVerbService{documentFn: func(context.Context, int) (*domain.VerbDocument, error) {
				return nil, tc.err
			}}

			rec := httptest.NewRecorder()
			testMux(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tc.path, nil))

			assert.Equal(t, tc.wantStatus, rec.Code)
		})
	}
}

func TestFragment(t *testing.T) {
	t.Parallel()

	svc := &mockVerbService{renderFn: func(_ context.Context, id int, preverb string) ([]byte, error) {
		assert.Equal(t, 7, id)
		assert.Equal(t, "წა", preverb)
		return []byte("<section></section>"), nil
	}}

	rec := httptest.NewRecorder()
	testMux(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/fragments/verbs/7?preverb=წა", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Equal(t, "<section></section>", rec.Body.String())
}

func TestFragment_LoadFailureServesErrorPanel(t *testing.T) {
	t.Parallel()

	svc := &mockVerbService{renderFn: func(context.Context, int, string) ([]byte, error) {
		return []byte("<section class=error></section>"), fmt.Errorf("%w: verb 7", domain.ErrLoadFailed)
	}}

	rec := httptest.NewRecorder()
	testMux(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/fragments/verbs/7", nil))

	require.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "class=error")
}

func TestFragment_NotFound(t *testing.T) {
	t.Parallel()

	svc := &mockVerbService{renderFn: func(context.Context, int, string) ([]byte, error) {
		return nil, fmt.Errorf("verb 99: %w", domain.ErrNotFound)
	}}

	rec := httptest.NewRecorder()
	testMux(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/fragments/verbs/99", nil))

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
}
