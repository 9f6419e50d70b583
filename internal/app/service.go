// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/walshja9/DiamondDynastiesTradeAnalyzer/internal/adapters/repository"
	"github.com/walshja9/DiamondDynastiesTradeAnalyzer/internal/adapters/rostersync"
	"github.com/walshja9/DiamondDynastiesTradeAnalyzer/internal/domain/model"
	"github.com/walshja9/DiamondDynastiesTradeAnalyzer/internal/domain/suggest"
	"github.com/walshja9/DiamondDynastiesTradeAnalyzer/internal/domain/trade"
	"github.com/walshja9/DiamondDynastiesTradeAnalyzer/internal/domain/valuation"
	"github.com/walshja9/DiamondDynastiesTradeAnalyzer/pkg/logger"
	"github.com/walshja9/DiamondDynastiesTradeAnalyzer/pkg/metrics"
)

// PlayerValue is the read shape for a single player's dynasty valuation.
type PlayerValue struct {
	PlayerID  string           `json:"player_id"`
	Name      string           `json:"name"`
	TeamID    string           `json:"team_id"`
	Position  string           `json:"position"`
	Age       int              `json:"age"`
	Valuation valuation.Result `json:"valuation"`
}

// TeamSummary is the read shape for one team in the league.
type TeamSummary struct {
	TeamID      string  `json:"team_id"`
	Name        string  `json:"name"`
	PlayerCount int     `json:"player_count"`
	TotalValue  float64 `json:"total_value"`
}

// Service implements the API dependencies for the trade analyzer. It owns
// the valuation table, rankings, and search engines, all rebuilt per
// league snapshot.
type Service struct {
	mu sync.RWMutex

	// Core components
	engine    *valuation.Engine
	evaluator *trade.Evaluator
	generator *suggest.Generator
	rankings  repository.Store

	// League state, replaced wholesale on snapshot load
	league     string
	season     int
	loadedAt   time.Time
	rosters    map[string]model.Roster
	teamOrder  []string
	players    map[string]model.Player
	owner      map[string]string
	valuations map[string]valuation.Result

	// Configuration
	categories        map[string]valuation.CategoryWeight
	scarcity          map[string]float64
	ageCurve          valuation.AgeCurve
	fairnessThreshold float64
	slightMultiple    float64
	heavyMultiple     float64
	maxBundleSize     int
	maxCandidates     int
	maxProposals      int
	maxSuggestions    int

	// State
	started bool

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(logger logger.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithCategories sets the scoring category weights and baselines.
func WithCategories(categories map[string]valuation.CategoryWeight) Option {
	return func(s *Service) {
		if len(categories) > 0 {
			s.categories = categories
		}
	}
}

// WithScarcity sets the position scarcity multipliers.
func WithScarcity(scarcity map[string]float64) Option {
	return func(s *Service) {
		if scarcity != nil {
			s.scarcity = scarcity
		}
	}
}

// WithAgeCurve sets the dynasty age curve.
func WithAgeCurve(curve valuation.AgeCurve) Option {
	return func(s *Service) {
		s.ageCurve = curve
	}
}

// WithFairnessThreshold sets the relative band within which trades are fair.
func WithFairnessThreshold(threshold float64) Option {
	return func(s *Service) {
		if threshold > 0 && threshold < 1 {
			s.fairnessThreshold = threshold
		}
	}
}

// WithSlightMultiple sets the slightly-favors band as a multiple of the fair band.
func WithSlightMultiple(multiple float64) Option {
	return func(s *Service) {
		if multiple >= 1 {
			s.slightMultiple = multiple
		}
	}
}

// WithHeavyMultiple sets the heavily-favors band as a multiple of the fair band.
func WithHeavyMultiple(multiple float64) Option {
	return func(s *Service) {
		if multiple >= 1 {
			s.heavyMultiple = multiple
		}
	}
}

// WithSearchBounds caps the suggestion search: players per bundle side,
// candidate players per roster, and evaluated proposals per partner.
func WithSearchBounds(bundleSize, candidates, proposals int) Option {
	return func(s *Service) {
		if bundleSize > 0 {
			s.maxBundleSize = bundleSize
		}
		if candidates > 0 {
			s.maxCandidates = candidates
		}
		if proposals > 0 {
			s.maxProposals = proposals
		}
	}
}

// WithMaxSuggestions caps suggestions returned per request.
func WithMaxSuggestions(max int) Option {
	return func(s *Service) {
		if max > 0 {
			s.maxSuggestions = max
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		categories:        valuation.DefaultCategories(),
		scarcity:          valuation.DefaultScarcity(),
		ageCurve:          valuation.DefaultAgeCurve(),
		fairnessThreshold: trade.DefaultFairnessThreshold,
		slightMultiple:    trade.DefaultSlightMultiple,
		heavyMultiple:     trade.DefaultHeavyMultiple,
		maxBundleSize:     suggest.DefaultMaxBundleSize,
		maxCandidates:     suggest.DefaultMaxCandidates,
		maxProposals:      suggest.DefaultMaxProposals,
		maxSuggestions:    20,
		logger:            nil, // Will be replaced when service starts
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start initializes the service components.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting trade analyzer service...")

	s.engine = valuation.NewEngine(
		valuation.WithCategories(s.categories),
		valuation.WithScarcity(s.scarcity),
		valuation.WithAgeCurve(s.ageCurve),
	)
	s.evaluator = trade.NewEvaluator(
		trade.WithFairnessThreshold(s.fairnessThreshold),
		trade.WithSlightMultiple(s.slightMultiple),
		trade.WithHeavyMultiple(s.heavyMultiple),
	)
	s.generator = suggest.NewGenerator(s.evaluator,
		suggest.WithMaxBundleSize(s.maxBundleSize),
		suggest.WithMaxCandidates(s.maxCandidates),
		suggest.WithMaxProposals(s.maxProposals),
	)
	s.rankings = repository.NewMemStore(ctx)

	s.started = true
	s.logger.Info(ctx, "trade analyzer service started",
		logger.Int("categories", len(s.categories)),
		logger.Float64("fairnessThreshold", s.fairnessThreshold),
		logger.Int("maxBundleSize", s.maxBundleSize),
	)

	return nil
}

// Stop shuts down the service.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	s.started = false
	s.logger.Info(context.Background(), "trade analyzer service stopped")
}

// LoadSnapshot valuates every player in the snapshot and swaps in the new
// league state. Readers keep seeing the previous state until the swap.
func (s *Service) LoadSnapshot(ctx context.Context, snap *rostersync.Snapshot) error {
	start := time.Now()

	s.mu.RLock()
	engine := s.engine
	rankings := s.rankings
	started := s.started
	s.mu.RUnlock()
	if !started {
		return fmt.Errorf("service not started")
	}

	rosters := snap.Rosters()
	players := make(map[string]model.Player, snap.PlayerCount())
	owner := make(map[string]string, snap.PlayerCount())
	valuations := make(map[string]valuation.Result, snap.PlayerCount())
	entries := make([]repository.Entry, 0, snap.PlayerCount())
	rosterByID := make(map[string]model.Roster, len(rosters))
	teamOrder := make([]string, 0, len(rosters))

	for _, roster := range rosters {
		rosterByID[roster.TeamID] = roster
		teamOrder = append(teamOrder, roster.TeamID)
		rosterStart := time.Now()
		for _, p := range roster.Players {
			result, err := engine.Valuate(ctx, p)
			if err != nil {
				return fmt.Errorf("valuate player %s: %w", p.ID, err)
			}
			metrics.RecordValuation()
			for range result.MissingCategories {
				metrics.RecordMissingProjection()
			}

			players[p.ID] = p
			owner[p.ID] = roster.TeamID
			valuations[p.ID] = result
			entries = append(entries, repository.Entry{
				PlayerID: p.ID,
				Name:     p.Name,
				Position: p.PrimaryPosition(),
				TeamID:   roster.TeamID,
				Age:      p.Age,
				Value:    result.Value,
			})
		}
		metrics.RecordValuationDuration(float64(time.Since(rosterStart).Microseconds()) / 1000)
	}
	sort.Strings(teamOrder)

	if err := rankings.Rebuild(ctx, entries); err != nil {
		return fmt.Errorf("rebuild rankings: %w", err)
	}

	s.mu.Lock()
	s.league = snap.League
	s.season = snap.Season
	s.loadedAt = time.Now()
	s.rosters = rosterByID
	s.teamOrder = teamOrder
	s.players = players
	s.owner = owner
	s.valuations = valuations
	s.mu.Unlock()

	metrics.RecordSnapshotLoad()
	metrics.RecordSnapshotDuration(float64(time.Since(start).Milliseconds()))
	metrics.UpdatePlayersTracked(len(players))
	metrics.UpdateTeamsTracked(len(rosters))

	s.logger.Info(ctx, "league snapshot loaded",
		logger.String("league", snap.League),
		logger.Int("season", snap.Season),
		logger.Int("teams", len(rosters)),
		logger.Int("players", len(players)),
	)

	return nil
}

// ValuePlayer returns the dynasty valuation for one player.
func (s *Service) ValuePlayer(ctx context.Context, playerID string) (PlayerValue, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.players[playerID]
	if !ok {
		return PlayerValue{}, fmt.Errorf("%w: %s", model.ErrUnknownPlayer, playerID)
	}
	return PlayerValue{
		PlayerID:  p.ID,
		Name:      p.Name,
		TeamID:    s.owner[playerID],
		Position:  p.PrimaryPosition(),
		Age:       p.Age,
		Valuation: s.valuations[playerID],
	}, nil
}

// AnalyzeTrade evaluates a proposal between two rostered teams and reports
// the verdict together with each side's category impact.
func (s *Service) AnalyzeTrade(ctx context.Context, proposal model.TradeProposal) (trade.Analysis, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rosterA, ok := s.rosters[proposal.TeamA]
	if !ok {
		return trade.Analysis{}, fmt.Errorf("%w: %s", model.ErrUnknownTeam, proposal.TeamA)
	}
	rosterB, ok := s.rosters[proposal.TeamB]
	if !ok {
		return trade.Analysis{}, fmt.Errorf("%w: %s", model.ErrUnknownTeam, proposal.TeamB)
	}

	fromA, err := s.resolveSide(rosterA, proposal.FromA)
	if err != nil {
		metrics.RecordInvalidProposal()
		return trade.Analysis{}, err
	}
	fromB, err := s.resolveSide(rosterB, proposal.FromB)
	if err != nil {
		metrics.RecordInvalidProposal()
		return trade.Analysis{}, err
	}

	verdict, err := s.evaluator.Evaluate(ctx, proposal, s.valuations)
	if err != nil {
		metrics.RecordInvalidProposal()
		return trade.Analysis{}, err
	}
	metrics.RecordTradeEvaluated()

	return trade.Analysis{
		Verdict: verdict,
		ImpactA: trade.CategoryImpact(fromB, fromA),
		ImpactB: trade.CategoryImpact(fromA, fromB),
	}, nil
}

// resolveSide maps player ids to rostered players, rejecting ids that are
// not on the stated team.
func (s *Service) resolveSide(roster model.Roster, ids []string) ([]model.Player, error) {
	players := make([]model.Player, 0, len(ids))
	for _, id := range ids {
		if _, ok := s.players[id]; !ok {
			return nil, fmt.Errorf("%w: %s", model.ErrUnknownPlayer, id)
		}
		p, ok := roster.Player(id)
		if !ok {
			return nil, fmt.Errorf("%w: player %s is not on team %s", trade.ErrInvalidProposal, id, roster.TeamID)
		}
		players = append(players, p)
	}
	return players, nil
}

// SuggestTrades searches partner rosters for trades that improve the given
// team. An empty partnerID searches the whole league.
func (s *Service) SuggestTrades(ctx context.Context, teamID, partnerID string, limit int) ([]suggest.Suggestion, error) {
	start := time.Now()

	s.mu.RLock()
	roster, ok := s.rosters[teamID]
	if !ok {
		s.mu.RUnlock()
		return nil, fmt.Errorf("%w: %s", model.ErrUnknownTeam, teamID)
	}

	var pool []model.Roster
	if partnerID != "" {
		partner, ok := s.rosters[partnerID]
		if !ok {
			s.mu.RUnlock()
			return nil, fmt.Errorf("%w: %s", model.ErrUnknownTeam, partnerID)
		}
		pool = []model.Roster{partner}
	} else {
		pool = make([]model.Roster, 0, len(s.teamOrder)-1)
		for _, id := range s.teamOrder {
			if id == teamID {
				continue
			}
			pool = append(pool, s.rosters[id])
		}
	}
	valuations := s.valuations
	generator := s.generator
	s.mu.RUnlock()

	suggestions, err := generator.Suggest(ctx, roster, pool, valuations)
	if err != nil {
		return nil, err
	}

	max := s.maxSuggestions
	if limit > 0 && limit < max {
		max = limit
	}
	if len(suggestions) > max {
		suggestions = suggestions[:max]
	}

	metrics.RecordSuggestions(len(suggestions))
	metrics.RecordSuggestionDuration(float64(time.Since(start).Milliseconds()))

	s.logger.Debug(ctx, "suggestion search finished",
		logger.String("team", teamID),
		logger.Int("partners", len(pool)),
		logger.Int("suggestions", len(suggestions)),
	)

	return suggestions, nil
}

// TopN returns the top N players by dynasty value.
func (s *Service) TopN(ctx context.Context, n int) ([]repository.Entry, error) {
	s.mu.RLock()
	rankings := s.rankings
	s.mu.RUnlock()

	entries, err := rankings.TopN(ctx, n)
	if err != nil {
		return nil, fmt.Errorf("rankings top-n: %w", err)
	}
	return entries, nil
}

// Rank returns one player's position in the dynasty value rankings.
func (s *Service) Rank(ctx context.Context, playerID string) (repository.Entry, error) {
	s.mu.RLock()
	rankings := s.rankings
	s.mu.RUnlock()

	entry, err := rankings.Rank(ctx, playerID)
	if err != nil {
		return repository.Entry{}, fmt.Errorf("rankings rank: %w", err)
	}
	return entry, nil
}

// Teams summarizes every team in the loaded league, ordered by team id.
func (s *Service) Teams(ctx context.Context) ([]TeamSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	summaries := make([]TeamSummary, 0, len(s.teamOrder))
	for _, id := range s.teamOrder {
		roster := s.rosters[id]
		total := 0.0
		for _, p := range roster.Players {
			total += s.valuations[p.ID].Value
		}
		summaries = append(summaries, TeamSummary{
			TeamID:      roster.TeamID,
			Name:        roster.Name,
			PlayerCount: len(roster.Players),
			TotalValue:  total,
		})
	}
	return summaries, nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return map[string]interface{}{
		"league":             s.league,
		"season":             s.season,
		"teams":              len(s.rosters),
		"players":            len(s.players),
		"loaded_at":          s.loadedAt,
		"fairness_threshold": s.fairnessThreshold,
		"started":            s.started,
	}
}
