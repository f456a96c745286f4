package catalog

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nkalandadze/zmna-backend/internal/domain"
)

type mockIndexSource struct {
	index *domain.VerbIndex
	err   error
	calls int
}

func (m *mockIndexSource) FetchIndex(context.Context) (*domain.VerbIndex, error) {
	m.calls++
	return m.index, m.err
}

func testIndex() *domain.VerbIndex {
	return &domain.VerbIndex{Verbs: []domain.VerbIndexEntry{
		{ID: 1, Georgian: "სვლა", Description: "to go", SemanticKey: "motion"},
		{ID: 2, Georgian: "თქმა", Description: "to say", SemanticKey: "speech"},
		{ID: 3, Georgian: "წასვლა", Description: "to go away", SemanticKey: "motion"},
	}}
}

func loadedService(t *testing.T) (*Service, *mockIndexSource) {
	t.Helper()
	src := &mockIndexSource{index: testIndex()}
	svc := New(src, slog.New(slog.DiscardHandler))
	require.NoError(t, svc.Load(t.Context()))
	return svc, src
}

func TestLoad_PreservesOrder(t *testing.T) {
	t.Parallel()

	svc, _ := loadedService(t)

	assert.Equal(t, []int{1, 2, 3}, svc.IDs())

	all := svc.All()
	require.Len(t, all, 3)
	assert.Equal(t, "სვლა", all[0].Georgian)
}

func TestLoad_SourceError(t *testing.T) {
	t.Parallel()

	src := &mockIndexSource{err: errors.New("unreachable")}
	svc := New(src, slog.New(slog.DiscardHandler))

	err := svc.Load(t.Context())
	require.Error(t, err)
	assert.Empty(t, svc.All())
}

func TestGet(t *testing.T) {
	t.Parallel()

	svc, _ := loadedService(t)

	entry, err := svc.Get(2)
	require.NoError(t, err)
	assert.Equal(t, "თქმა", entry.Georgian)

	_, err = svc.Get(99)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSearch(t *testing.T) {
	t.Parallel()

	svc, _ := loadedService(t)

	tests := []struct {
		name  string
		query string
		want  []int
	}{
		{name: "georgian substring", query: "სვლა", want: []int{1, 3}},
		{name: "description", query: "to say", want: []int{2}},
		{name: "semantic key", query: "MOTION", want: []int{1, 3}},
		{name: "whitespace folded", query: "  to   go  ", want: []int{1, 3}},
		{name: "empty matches all", query: "", want: []int{1, 2, 3}},
		{name: "no match", query: "zzz", want: []int{}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got := svc.Search(tc.query)
			ids := make([]int, 0, len(got))
			for _, entry := range got {
				ids = append(ids, entry.ID)
			}
			assert.Equal(t, tc.want, ids)
		})
	}
}

func TestReload_ReplacesIndex(t *testing.T) {
	t.Parallel()

	svc, src := loadedService(t)

	src.index = &domain.VerbIndex{Verbs: []domain.VerbIndexEntry{
		{ID: 7, Georgian: "ახალი", Description: "new entry"},
	}}
	require.NoError(t, svc.Reload(t.Context()))

	assert.Equal(t, []int{7}, svc.IDs())
	assert.Equal(t, 2, src.calls)
}
