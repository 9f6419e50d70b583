// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"
)

// StatsProvider supplies the league snapshot counters served at /stats.
type StatsProvider interface {
	GetStats() map[string]interface{}
}

// StatsHandler serves league and snapshot statistics.
type StatsHandler struct {
	stats StatsProvider
}

// NewStatsHandler creates a stats handler backed by the given provider.
func NewStatsHandler(stats StatsProvider) *StatsHandler {
	return &StatsHandler{stats: stats}
}

// HandleStats handles GET /stats requests.
func (h *StatsHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, h.stats.GetStats())
}
