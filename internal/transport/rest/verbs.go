package rest

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/nkalandadze/zmna-backend/internal/domain"
)

// verbService defines the minimal interface needed by VerbHandler.
type verbService interface {
	Index() []domain.VerbIndexEntry
	Search(query string) []domain.VerbIndexEntry
	Document(ctx context.Context, id int) (*domain.VerbDocument, error)
	RenderSection(ctx context.Context, id int, preverb string) ([]byte, error)
}

// VerbHandler serves the verb index and document endpoints.
type VerbHandler struct {
	svc verbService
	log *slog.Logger
}

// NewVerbHandler creates a VerbHandler.
func NewVerbHandler(svc verbService, logger *slog.Logger) *VerbHandler {
	return &VerbHandler{svc: svc, log: logger.With("handler", "verbs")}
}

type indexResponse struct {
	Verbs []domain.VerbIndexEntry `json:"verbs"`
}

// List handles GET /api/verbs.
func (h *VerbHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, indexResponse{Verbs: h.svc.Index()})
}

// Search handles GET /api/verbs/search?q=...
func (h *VerbHandler) Search(w http.ResponseWriter, r *http.Request) {
	verbs := h.svc.Search(r.URL.Query().Get("q"))
	writeJSON(w, http.StatusOK, indexResponse{Verbs: verbs})
}

// Document handles GET /api/verbs/{id}. The document is loaded through
// the cache, so the first request pays the fetch and later ones are
// served from memory.
func (h *VerbHandler) Document(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	doc, err := h.svc.Document(r.Context(), id)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, doc)
}

// Fragment handles GET /fragments/verbs/{id}?preverb=...
// It responds with the section's HTML. A load failure still carries the
// error-panel markup so the page keeps a usable placeholder, with 502
// signalling that a retry may help after invalidation.
func (h *VerbHandler) Fragment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	preverb := r.URL.Query().Get("preverb")

	html, err := h.svc.RenderSection(r.Context(), id, preverb)
	switch {
	case err == nil:
		writeHTML(w, http.StatusOK, html)
	case errors.Is(err, domain.ErrLoadFailed) && len(html) > 0:
		writeHTML(w, http.StatusBadGateway, html)
	default:
		handleError(w, r, h.log, err)
	}
}

func writeHTML(w http.ResponseWriter, status int, html []byte) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write(html) //nolint:errcheck
}

// pathID parses the {id} path segment, responding 400 on garbage.
func pathID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "invalid verb id")
		return 0, false
	}
	return id, true
}
