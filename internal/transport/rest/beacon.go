package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
)

// beaconTrigger defines the trigger surface needed by BeaconHandler.
type beaconTrigger interface {
	SectionVisible(ctx context.Context, id int) error
}

// BeaconHandler receives viewport-entry beacons from the page.
type BeaconHandler struct {
	trigger beaconTrigger
	enabled bool
	log     *slog.Logger
}

// NewBeaconHandler creates a BeaconHandler. When beacons are disabled
// by config the endpoint answers 202 without doing anything; the warmup
// sweep at startup has already loaded everything.
func NewBeaconHandler(trigger beaconTrigger, enabled bool, logger *slog.Logger) *BeaconHandler {
	return &BeaconHandler{
		trigger: trigger,
		enabled: enabled,
		log:     logger.With("handler", "beacon"),
	}
}

type visibleRequest struct {
	VerbIDs []int `json:"verb_ids"`
}

// SectionsVisible handles POST /api/sections/visible.
// Loads run detached from the request: the beacon is fire-and-forget
// for the page, and navigating away must not cancel a fetch that other
// readers will benefit from.
func (h *BeaconHandler) SectionsVisible(w http.ResponseWriter, r *http.Request) {
	var req visibleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(req.VerbIDs) == 0 {
		writeError(w, http.StatusBadRequest, "verb_ids is required")
		return
	}

	if h.enabled {
		ctx := context.WithoutCancel(r.Context())
		go func() {
			for _, id := range req.VerbIDs {
				if err := h.trigger.SectionVisible(ctx, id); err != nil {
					h.log.WarnContext(ctx, "beacon load failed",
						slog.Int("verb_id", id),
						slog.String("error", err.Error()),
					)
				}
			}
		}()
	}

	w.WriteHeader(http.StatusAccepted)
}
