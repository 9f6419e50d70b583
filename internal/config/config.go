// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New(ctx) to build a Config with defaults.
// - All functions accept context.Context as the first parameter.
// - External errors are wrapped into this package's sentinel kinds.
package config

import (
	"context"

	"github.com/walshja9/DiamondDynastiesTradeAnalyzer/internal/domain/suggest"
	"github.com/walshja9/DiamondDynastiesTradeAnalyzer/internal/domain/trade"
	"github.com/walshja9/DiamondDynastiesTradeAnalyzer/internal/domain/valuation"
)

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// SnapshotPath points at the league snapshot JSON loaded on startup.
	SnapshotPath string `koanf:"snapshot_path"`

	// FairnessThreshold is the relative band within which a trade is fair.
	FairnessThreshold float64 `koanf:"fairness_threshold"`

	// SlightMultiple bounds the "slightly favors" band as a multiple of
	// the fair band.
	SlightMultiple float64 `koanf:"slight_multiple"`

	// HeavyMultiple sets the "heavily favors" band as a multiple of the
	// fair band.
	HeavyMultiple float64 `koanf:"heavy_multiple"`

	// AgeCurve shapes the dynasty age multiplier.
	AgeCurve valuation.AgeCurve `koanf:"age_curve"`

	// Categories maps category names to scoring weights and baselines.
	Categories map[string]valuation.CategoryWeight `koanf:"categories"`

	// Scarcity maps primary positions to value multipliers.
	Scarcity map[string]float64 `koanf:"scarcity"`

	// MaxBundleSize caps players per side in suggested trades.
	MaxBundleSize int `koanf:"max_bundle_size"`

	// MaxCandidates caps how many top players per roster the suggestion
	// search considers.
	MaxCandidates int `koanf:"max_candidates"`

	// MaxProposals bounds evaluated proposals per partner team.
	MaxProposals int `koanf:"max_proposals"`

	// MaxRankingsLimit caps GET /rankings?limit.
	MaxRankingsLimit int `koanf:"max_rankings_limit"`

	// MaxSuggestions caps suggestions returned per request.
	MaxSuggestions int `koanf:"max_suggestions"`
}

// New creates a Config with league defaults calibrated for a 12-team 7x7
// head-to-head dynasty league.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:          "info",
		Addr:              ":9080",
		SnapshotPath:      "league.json",
		FairnessThreshold: trade.DefaultFairnessThreshold,
		SlightMultiple:    trade.DefaultSlightMultiple,
		HeavyMultiple:     trade.DefaultHeavyMultiple,
		AgeCurve:          valuation.DefaultAgeCurve(),
		Categories:        valuation.DefaultCategories(),
		Scarcity:          valuation.DefaultScarcity(),
		MaxBundleSize:     suggest.DefaultMaxBundleSize,
		MaxCandidates:     suggest.DefaultMaxCandidates,
		MaxProposals:      suggest.DefaultMaxProposals,
		MaxRankingsLimit:  100,
		MaxSuggestions:    20,
	}
}
