// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/walshja9/DiamondDynastiesTradeAnalyzer/internal/adapters/repository"
	service "github.com/walshja9/DiamondDynastiesTradeAnalyzer/internal/app"
	"github.com/walshja9/DiamondDynastiesTradeAnalyzer/internal/domain/model"
	"github.com/walshja9/DiamondDynastiesTradeAnalyzer/internal/domain/suggest"
	"github.com/walshja9/DiamondDynastiesTradeAnalyzer/internal/domain/trade"
)

// Read shapes returned by the service layer.
type (
	Entry       = repository.Entry
	PlayerValue = service.PlayerValue
	TeamSummary = service.TeamSummary
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	ValuePlayer(ctx context.Context, playerID string) (PlayerValue, error)
	AnalyzeTrade(ctx context.Context, proposal model.TradeProposal) (trade.Analysis, error)
	SuggestTrades(ctx context.Context, teamID, partnerID string, limit int) ([]suggest.Suggestion, error)
	TopN(ctx context.Context, n int) ([]Entry, error)
	Rank(ctx context.Context, playerID string) (Entry, error)
	Teams(ctx context.Context) ([]TeamSummary, error)
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler      *HealthHandler
	statsHandler       *StatsHandler
	analyzeHandler     *AnalyzeHandler
	valueHandler       *ValueHandler
	rankingsHandler    *RankingsHandler
	rankHandler        *RankHandler
	suggestionsHandler *SuggestionsHandler
	teamsHandler       *TeamsHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, maxRankingsLimit int) *Server {
	return &Server{
		healthHandler:      NewHealthHandler(),
		statsHandler:       NewStatsHandler(statsProvider),
		analyzeHandler:     NewAnalyzeHandler(deps),
		valueHandler:       NewValueHandler(deps),
		rankingsHandler:    NewRankingsHandler(deps, maxRankingsLimit),
		rankHandler:        NewRankHandler(deps),
		suggestionsHandler: NewSuggestionsHandler(deps),
		teamsHandler:       NewTeamsHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/analyze", MetricsMiddleware(s.analyzeHandler.HandleAnalyze, "analyze"))
	mux.HandleFunc("/value/", MetricsMiddleware(s.valueHandler.HandleGetValue, "value"))
	mux.HandleFunc("/rankings", MetricsMiddleware(s.rankingsHandler.HandleGetRankings, "rankings"))
	mux.HandleFunc("/rank/", MetricsMiddleware(s.rankHandler.HandleGetRank, "rank"))
	mux.HandleFunc("/suggestions", MetricsMiddleware(s.suggestionsHandler.HandleGetSuggestions, "suggestions"))
	mux.HandleFunc("/teams", MetricsMiddleware(s.teamsHandler.HandleGetTeams, "teams"))
}

// analyzeRequest mirrors the OpenAPI schema for POST /analyze.
type analyzeRequest struct {
	TeamA string   `json:"team_a"`
	TeamB string   `json:"team_b"`
	FromA []string `json:"from_a"`
	FromB []string `json:"from_b"`
}

func (a analyzeRequest) validate() error {
	switch {
	case strings.TrimSpace(a.TeamA) == "":
		return errors.New("missing team_a")
	case strings.TrimSpace(a.TeamB) == "":
		return errors.New("missing team_b")
	case a.TeamA == a.TeamB:
		return errors.New("team_a and team_b must differ")
	case len(a.FromA) == 0:
		return errors.New("missing from_a")
	case len(a.FromB) == 0:
		return errors.New("missing from_b")
	}
	return nil
}

func (a analyzeRequest) proposal() model.TradeProposal {
	return model.TradeProposal{
		TeamA: a.TeamA,
		TeamB: a.TeamB,
		FromA: a.FromA,
		FromB: a.FromB,
	}
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// isNotFound translates upstream lookup misses into 404 responses.
func isNotFound(err error) bool {
	return errors.Is(err, repository.ErrNotFound) ||
		errors.Is(err, model.ErrUnknownPlayer) ||
		errors.Is(err, model.ErrUnknownTeam)
}
