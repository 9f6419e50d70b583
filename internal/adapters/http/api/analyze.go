// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/walshja9/DiamondDynastiesTradeAnalyzer/internal/domain/model"
	"github.com/walshja9/DiamondDynastiesTradeAnalyzer/internal/domain/trade"
)

// AnalyzeDependencies defines the interface for trade analysis.
type AnalyzeDependencies interface {
	AnalyzeTrade(ctx context.Context, proposal model.TradeProposal) (trade.Analysis, error)
}

// AnalyzeHandler handles trade analysis requests.
type AnalyzeHandler struct {
	deps AnalyzeDependencies
}

// NewAnalyzeHandler creates a new analyze handler.
func NewAnalyzeHandler(deps AnalyzeDependencies) *AnalyzeHandler {
	return &AnalyzeHandler{deps: deps}
}

// HandleAnalyze handles POST /analyze requests.
func (h *AnalyzeHandler) HandleAnalyze(w http.ResponseWriter, r *http.Request) {
	const op = "api.analyze"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	analysis, err := h.deps.AnalyzeTrade(r.Context(), req.proposal())
	if err != nil {
		switch {
		case isNotFound(err):
			writeError(w, http.StatusNotFound, "not_found", err)
		case errors.Is(err, trade.ErrInvalidProposal):
			writeError(w, http.StatusBadRequest, "invalid_proposal", err)
		default:
			writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		}
		return
	}
	writeJSON(w, http.StatusOK, analysis)
}
