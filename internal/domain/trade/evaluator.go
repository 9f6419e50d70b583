// Package trade evaluates trade proposals against computed player valuations.
package trade

import (
	"context"
	"fmt"
	"math"

	"github.com/walshja9/DiamondDynastiesTradeAnalyzer/internal/domain/model"
	"github.com/walshja9/DiamondDynastiesTradeAnalyzer/internal/domain/valuation"
)

// Default fairness configuration. A trade is fair when the value gap stays
// within FairnessThreshold of the larger side's incoming total; the slight
// and heavy bands kick in at SlightMultiple and HeavyMultiple times that
// threshold.
const (
	DefaultFairnessThreshold = 0.10
	DefaultSlightMultiple    = 3.0
	DefaultHeavyMultiple     = 8.0
)

// Severity grades how lopsided a verdict is.
type Severity string

const (
	SeverityFair   Severity = "fair"
	SeveritySlight Severity = "slightly favors"
	SeverityFavors Severity = "favors"
	SeverityHeavy  Severity = "heavily favors"
)

// Verdict summarizes the evaluation of one trade proposal.
// ReceivesA is the total value team A takes in (the players leaving team B),
// and NetA is what team A gains on balance. Favors names the advantaged
// team id, or is empty for a fair trade.
type Verdict struct {
	TeamA     string   `json:"team_a"`
	TeamB     string   `json:"team_b"`
	ReceivesA float64  `json:"receives_a"`
	ReceivesB float64  `json:"receives_b"`
	NetA      float64  `json:"net_a"`
	NetB      float64  `json:"net_b"`
	Favors    string   `json:"favors,omitempty"`
	Severity  Severity `json:"severity"`
	Label     string   `json:"label"`
}

// Evaluator scores trade proposals with a configurable fairness threshold.
type Evaluator struct {
	threshold      float64
	slightMultiple float64
	heavyMultiple  float64
}

// Option applies a configuration option to the Evaluator.
type Option func(*Evaluator)

// WithFairnessThreshold sets the fair band as a fraction of the larger
// side's incoming value. Values outside (0, 1) are ignored.
func WithFairnessThreshold(threshold float64) Option {
	return func(e *Evaluator) {
		if threshold > 0 && threshold < 1 {
			e.threshold = threshold
		}
	}
}

// WithSlightMultiple sets the multiple of the fairness threshold below which
// an unfair verdict is graded as only slightly favoring one side.
func WithSlightMultiple(multiple float64) Option {
	return func(e *Evaluator) {
		if multiple > 1 {
			e.slightMultiple = multiple
		}
	}
}

// WithHeavyMultiple sets the multiple of the fairness threshold at which a
// verdict escalates to heavily favoring one side.
func WithHeavyMultiple(multiple float64) Option {
	return func(e *Evaluator) {
		if multiple > 1 {
			e.heavyMultiple = multiple
		}
	}
}

// NewEvaluator creates an evaluator with default fairness configuration.
func NewEvaluator(opts ...Option) *Evaluator {
	e := &Evaluator{
		threshold:      DefaultFairnessThreshold,
		slightMultiple: DefaultSlightMultiple,
		heavyMultiple:  DefaultHeavyMultiple,
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// FairnessThreshold returns the configured fair band fraction.
func (e *Evaluator) FairnessThreshold() float64 {
	return e.threshold
}

// Evaluate scores a proposal against the supplied valuations. It fails with
// ErrInvalidProposal when the proposal is malformed and ErrMissingValuation
// when a referenced player has no valuation entry.
func (e *Evaluator) Evaluate(ctx context.Context, proposal model.TradeProposal, valuations map[string]valuation.Result) (Verdict, error) {
	if err := ctx.Err(); err != nil {
		return Verdict{}, fmt.Errorf("evaluation cancelled: %w", err)
	}
	if err := Validate(proposal); err != nil {
		return Verdict{}, err
	}

	givesA, err := sideTotal(proposal.FromA, valuations)
	if err != nil {
		return Verdict{}, err
	}
	givesB, err := sideTotal(proposal.FromB, valuations)
	if err != nil {
		return Verdict{}, err
	}

	v := Verdict{
		TeamA:     proposal.TeamA,
		TeamB:     proposal.TeamB,
		ReceivesA: givesB,
		ReceivesB: givesA,
		NetA:      givesB - givesA,
		NetB:      givesA - givesB,
	}

	delta := v.ReceivesA - v.ReceivesB
	larger := math.Max(v.ReceivesA, v.ReceivesB)
	fairBand := e.threshold * larger
	slightBand := e.slightMultiple * fairBand
	heavyBand := e.heavyMultiple * fairBand

	if math.Abs(delta) <= fairBand {
		v.Severity = SeverityFair
		v.Label = string(SeverityFair)
		return v, nil
	}

	if delta > 0 {
		v.Favors = proposal.TeamA
	} else {
		v.Favors = proposal.TeamB
	}
	switch gap := math.Abs(delta); {
	case gap <= slightBand:
		v.Severity = SeveritySlight
	case gap <= heavyBand:
		v.Severity = SeverityFavors
	default:
		v.Severity = SeverityHeavy
	}
	v.Label = fmt.Sprintf("%s %s", v.Severity, v.Favors)

	return v, nil
}

// Validate checks a proposal for structural problems: both sides must name
// at least one player, and no player id may appear on both sides or twice
// on the same side.
func Validate(proposal model.TradeProposal) error {
	if len(proposal.FromA) == 0 || len(proposal.FromB) == 0 {
		return fmt.Errorf("%w: both sides must include at least one player", ErrInvalidProposal)
	}

	sideA := make(map[string]struct{}, len(proposal.FromA))
	for _, id := range proposal.FromA {
		if _, dup := sideA[id]; dup {
			return fmt.Errorf("%w: player %s listed more than once", ErrInvalidProposal, id)
		}
		sideA[id] = struct{}{}
	}
	sideB := make(map[string]struct{}, len(proposal.FromB))
	for _, id := range proposal.FromB {
		if _, dup := sideB[id]; dup {
			return fmt.Errorf("%w: player %s listed more than once", ErrInvalidProposal, id)
		}
		if _, both := sideA[id]; both {
			return fmt.Errorf("%w: player %s appears on both sides", ErrInvalidProposal, id)
		}
		sideB[id] = struct{}{}
	}
	return nil
}

// sideTotal sums the valuations for one side's player set.
func sideTotal(ids []string, valuations map[string]valuation.Result) (float64, error) {
	var total float64
	for _, id := range ids {
		res, ok := valuations[id]
		if !ok {
			return 0, fmt.Errorf("%w: player %s", ErrMissingValuation, id)
		}
		total += res.Value
	}
	return total, nil
}
