package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/nkalandadze/zmna-backend/pkg/ctxutil"
)

// adminService defines the maintainer operations behind the admin
// endpoints. Authentication is enforced by middleware before these
// handlers run.
type adminService interface {
	Invalidate(ctx context.Context, id int)
	ReloadIndex(ctx context.Context) error
}

// AdminHandler serves the maintainer endpoints used by the verb editor
// after republishing data files.
type AdminHandler struct {
	svc adminService
	log *slog.Logger
}

// NewAdminHandler creates an AdminHandler.
func NewAdminHandler(svc adminService, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{svc: svc, log: logger.With("handler", "admin")}
}

type invalidateRequest struct {
	VerbIDs []int `json:"verb_ids"`
}

// InvalidateCache handles POST /admin/cache/invalidate.
// Drops the cached documents for the given verbs so the next request
// refetches them; verbs stuck in a terminal load failure become
// loadable again.
func (h *AdminHandler) InvalidateCache(w http.ResponseWriter, r *http.Request) {
	var req invalidateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(req.VerbIDs) == 0 {
		writeError(w, http.StatusBadRequest, "verb_ids is required")
		return
	}

	for _, id := range req.VerbIDs {
		h.svc.Invalidate(r.Context(), id)
	}

	maintainer, _ := ctxutil.MaintainerFromCtx(r.Context())
	h.log.InfoContext(r.Context(), "cache invalidated",
		slog.Int("verbs", len(req.VerbIDs)),
		slog.String("maintainer", maintainer),
	)

	writeJSON(w, http.StatusOK, map[string]any{
		"status":      "ok",
		"invalidated": len(req.VerbIDs),
	})
}

// ReloadIndex handles POST /admin/index/reload.
func (h *AdminHandler) ReloadIndex(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.ReloadIndex(r.Context()); err != nil {
		handleError(w, r, h.log, err)
		return
	}

	maintainer, _ := ctxutil.MaintainerFromCtx(r.Context())
	h.log.InfoContext(r.Context(), "index reloaded", slog.String("maintainer", maintainer))

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
