// Package valuation computes scalar dynasty values from player projections.
package valuation

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/walshja9/DiamondDynastiesTradeAnalyzer/internal/domain/model"
)

// Scoring scale constants. A projection at its category baseline scores
// fullScore; exceptional projections may exceed it up to maxCategoryScore.
const (
	fullScore        = 100.0
	maxCategoryScore = 115.0
)

// CategoryWeight configures how one statistical category is scored.
// Baseline is the projection level that earns a full score; LowerIsBetter
// inverts the scale for categories such as ERA, WHIP, and losses.
type CategoryWeight struct {
	Weight        float64 `koanf:"weight"`
	Baseline      float64 `koanf:"baseline"`
	LowerIsBetter bool    `koanf:"lower_is_better"`
}

// AgeCurve maps player age to a value multiplier. Younger players earn a
// premium, prime ages hold full value, and the multiplier declines
// monotonically past PeakAge down to Floor.
type AgeCurve struct {
	PrimeStart        int     `koanf:"prime_start"`
	PeakAge           int     `koanf:"peak_age"`
	YouthBonusPerYear float64 `koanf:"youth_bonus_per_year"`
	DeclinePerYear    float64 `koanf:"decline_per_year"`
	Ceiling           float64 `koanf:"ceiling"`
	Floor             float64 `koanf:"floor"`
}

// Multiplier returns the age multiplier for the given age. Unknown ages
// (zero or negative) are treated as neutral.
func (c AgeCurve) Multiplier(age int) float64 {
	if age <= 0 {
		return 1.0
	}
	switch {
	case age < c.PrimeStart:
		m := 1.0 + c.YouthBonusPerYear*float64(c.PrimeStart-age)
		return math.Min(m, c.Ceiling)
	case age <= c.PeakAge:
		return 1.0
	default:
		m := 1.0 - c.DeclinePerYear*float64(age-c.PeakAge)
		return math.Max(m, c.Floor)
	}
}

// Result contains the computed dynasty value for a player together with
// the factors that produced it, retained for explainability.
type Result struct {
	PlayerID           string             `json:"player_id"`
	Value              float64            `json:"value"`
	RawScore           float64            `json:"raw_score"`
	AgeMultiplier      float64            `json:"age_multiplier"`
	ScarcityMultiplier float64            `json:"scarcity_multiplier"`
	Contributions      map[string]float64 `json:"contributions"`
	MissingCategories  []string           `json:"missing_categories,omitempty"`
}

// Valuer computes a dynasty value for a player.
type Valuer interface {
	// Valuate computes a valuation, honoring ctx for cancellation.
	Valuate(ctx context.Context, p model.Player) (Result, error)
}

// Engine implements Valuer as a pure function of its configuration.
type Engine struct {
	categories map[string]CategoryWeight
	scarcity   map[string]float64
	ageCurve   AgeCurve
}

// NewEngine creates a valuation engine with the default 7x7 H2H league
// calibration, overridable through options.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		categories: DefaultCategories(),
		scarcity:   DefaultScarcity(),
		ageCurve:   DefaultAgeCurve(),
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Valuate computes the dynasty value for one player. Missing projection
// categories contribute zero; an unknown position takes a neutral scarcity
// multiplier. The computation is deterministic for identical inputs.
func (e *Engine) Valuate(ctx context.Context, p model.Player) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, fmt.Errorf("valuation cancelled: %w", err)
	}

	res := Result{
		PlayerID:      p.ID,
		Contributions: make(map[string]float64, len(e.categories)),
	}

	for name, cw := range e.categories {
		v, ok := p.Projection(name)
		if !ok {
			res.MissingCategories = append(res.MissingCategories, name)
			continue
		}
		contribution := cw.Weight * categoryScore(cw, v)
		res.Contributions[name] = contribution
		res.RawScore += contribution
	}
	sort.Strings(res.MissingCategories)

	res.AgeMultiplier = e.ageCurve.Multiplier(p.Age)
	res.ScarcityMultiplier = e.scarcityFor(p.PrimaryPosition())
	res.Value = res.RawScore * res.AgeMultiplier * res.ScarcityMultiplier

	return res, nil
}

// scarcityFor returns the scarcity multiplier for a position, defaulting to
// neutral for unknown positions.
func (e *Engine) scarcityFor(position string) float64 {
	if m, ok := e.scarcity[position]; ok {
		return m
	}
	return 1.0
}

// categoryScore normalizes one projected stat against its baseline.
// Higher-is-better categories scale linearly with the projection;
// lower-is-better categories scale with the inverse ratio so that a worse
// stat always produces a lower score. Scores clamp to [0, maxCategoryScore].
func categoryScore(cw CategoryWeight, v float64) float64 {
	if cw.Baseline <= 0 {
		return 0
	}
	var score float64
	if cw.LowerIsBetter {
		if v <= 0 {
			// A zero ERA or zero losses is the best possible outcome.
			score = maxCategoryScore
		} else {
			score = cw.Baseline / v * fullScore
		}
	} else {
		score = v / cw.Baseline * fullScore
	}
	return math.Max(0, math.Min(score, maxCategoryScore))
}

// DefaultCategories returns the 14-category calibration for a 7x7 H2H
// league: AVG, OPS, HR, R, RBI, SB, SO for hitters and ERA, WHIP, K, QS,
// SV+HLD, L, K/BB for pitchers. Baselines anchor a full score at roughly
// elite production.
func DefaultCategories() map[string]CategoryWeight {
	return map[string]CategoryWeight{
		model.CatAVG:   {Weight: 0.17, Baseline: 0.300},
		model.CatOPS:   {Weight: 0.19, Baseline: 0.950},
		model.CatHR:    {Weight: 0.16, Baseline: 40},
		model.CatR:     {Weight: 0.14, Baseline: 100},
		model.CatRBI:   {Weight: 0.14, Baseline: 100},
		model.CatSB:    {Weight: 0.14, Baseline: 30},
		model.CatSO:    {Weight: 0.06, Baseline: 90, LowerIsBetter: true},
		model.CatERA:   {Weight: 0.18, Baseline: 3.20, LowerIsBetter: true},
		model.CatWHIP:  {Weight: 0.16, Baseline: 1.05, LowerIsBetter: true},
		model.CatK:     {Weight: 0.16, Baseline: 190},
		model.CatQS:    {Weight: 0.17, Baseline: 18},
		model.CatSVHLD: {Weight: 0.16, Baseline: 35},
		model.CatL:     {Weight: 0.05, Baseline: 6, LowerIsBetter: true},
		model.CatKBB:   {Weight: 0.12, Baseline: 3.5},
	}
}

// DefaultScarcity returns position scarcity multipliers for a 12-team
// league. Unlisted positions are neutral.
func DefaultScarcity() map[string]float64 {
	return map[string]float64{
		"C":  1.15,
		"SS": 1.10,
		"SP": 1.10,
		"2B": 1.05,
		"3B": 1.00,
		"OF": 1.00,
		"1B": 0.95,
		"RP": 0.95,
	}
}

// DefaultAgeCurve returns the dynasty age curve: youth premium through age
// 24, full value through the peak, then a steady decline to a floor.
func DefaultAgeCurve() AgeCurve {
	return AgeCurve{
		PrimeStart:        25,
		PeakAge:           27,
		YouthBonusPerYear: 0.04,
		DeclinePerYear:    0.07,
		Ceiling:           1.25,
		Floor:             0.20,
	}
}
