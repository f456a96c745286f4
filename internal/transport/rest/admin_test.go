package rest

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockAdminService struct {
	invalidated []int
	reloadErr   error
	reloads     int
}

func (m *mockAdminService) Invalidate(_ context.Context, id int) {
	m.invalidated = append(m.invalidated, id)
}

func (m *mockAdminService) ReloadIndex(context.Context) error {
	m.reloads++
	return m.reloadErr
}

func TestInvalidateCache(t *testing.T) {
	t.Parallel()

	svc := &mockAdminService{}
	h := NewAdminHandler(svc, slog.New(slog.DiscardHandler))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/admin/cache/invalidate",
		strings.NewReader(`{"verb_ids":[4,9]}`))
	h.InvalidateCache(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []int{4, 9}, svc.invalidated)
	assert.JSONEq(t, `{"status":"ok","invalidated":2}`, rec.Body.String())
}

func TestInvalidateCache_BadBody(t *testing.T) {
	t.Parallel()

	svc := &mockAdminService{}
	h := NewAdminHandler(svc, slog.New(slog.DiscardHandler))

	for _, body := range []string{`{`, `{"verb_ids":[]}`, `{}`} {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/admin/cache/invalidate", strings.NewReader(body))
		h.InvalidateCache(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "body %q", body)
	}
	assert.Empty(t, svc.invalidated)
}

func TestReloadIndex(t *testing.T) {
	t.Parallel()

	svc := &mockAdminService{}
	h := NewAdminHandler(svc, slog.New(slog.DiscardHandler))

	rec := httptest.NewRecorder()
	h.ReloadIndex(rec, httptest.NewRequest(http.MethodPost, "/admin/index/reload", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, svc.reloads)
}

func TestReloadIndex_Error(t *testing.T) {
	t.Parallel()

	svc := &mockAdminService{reloadErr: errors.New("source unreachable")}
	h := NewAdminHandler(svc, slog.New(slog.DiscardHandler))

	rec := httptest.NewRecorder()
	h.ReloadIndex(rec, httptest.NewRequest(http.MethodPost, "/admin/index/reload", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
