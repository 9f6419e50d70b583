// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"
	"strings"
)

// ValueDependencies defines the interface for player valuation lookups.
type ValueDependencies interface {
	ValuePlayer(ctx context.Context, playerID string) (PlayerValue, error)
}

// ValueHandler handles player valuation requests.
type ValueHandler struct {
	deps ValueDependencies
}

// NewValueHandler creates a new value handler.
func NewValueHandler(deps ValueDependencies) *ValueHandler {
	return &ValueHandler{deps: deps}
}

// HandleGetValue handles GET /value/{player_id} requests.
func (h *ValueHandler) HandleGetValue(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_value"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	playerID := strings.TrimPrefix(r.URL.Path, "/value/")
	if playerID == "" || strings.Contains(playerID, "/") {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}
	pv, err := h.deps.ValuePlayer(r.Context(), playerID)
	if err != nil {
		if isNotFound(err) {
			writeError(w, http.StatusNotFound, "not_found", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, pv)
}
