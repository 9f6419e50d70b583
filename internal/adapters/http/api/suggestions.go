// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/walshja9/DiamondDynastiesTradeAnalyzer/internal/domain/suggest"
)

// SuggestionsDependencies defines the interface for suggestion searches.
type SuggestionsDependencies interface {
	SuggestTrades(ctx context.Context, teamID, partnerID string, limit int) ([]suggest.Suggestion, error)
}

// SuggestionsHandler handles trade suggestion requests.
type SuggestionsHandler struct {
	deps SuggestionsDependencies
}

// NewSuggestionsHandler creates a new suggestions handler.
func NewSuggestionsHandler(deps SuggestionsDependencies) *SuggestionsHandler {
	return &SuggestionsHandler{deps: deps}
}

// HandleGetSuggestions handles GET /suggestions?team=X&partner=Y&limit=N requests.
// partner and limit are optional; an absent partner searches the whole league.
func (h *SuggestionsHandler) HandleGetSuggestions(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_suggestions"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	team := strings.TrimSpace(r.URL.Query().Get("team"))
	if team == "" {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}
	partner := strings.TrimSpace(r.URL.Query().Get("partner"))

	limit := 0
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil || parsed < 1 {
			writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
			return
		}
		limit = parsed
	}

	suggestions, err := h.deps.SuggestTrades(r.Context(), team, partner, limit)
	if err != nil {
		if isNotFound(err) {
			writeError(w, http.StatusNotFound, "not_found", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	if suggestions == nil {
		suggestions = []suggest.Suggestion{}
	}
	writeJSON(w, http.StatusOK, suggestions)
}
