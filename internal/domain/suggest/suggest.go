// Package suggest searches candidate rosters for trades that improve one
// team without leaving the partner worse off.
package suggest

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/walshja9/DiamondDynastiesTradeAnalyzer/internal/domain/model"
	"github.com/walshja9/DiamondDynastiesTradeAnalyzer/internal/domain/trade"
	"github.com/walshja9/DiamondDynastiesTradeAnalyzer/internal/domain/valuation"
)

// Search bound defaults. Bundles are capped per side and candidate players
// per roster are truncated by value so the enumeration stays polynomial in
// roster size.
const (
	DefaultMaxBundleSize = 3
	DefaultMaxCandidates = 25
	DefaultMaxProposals  = 2000
)

// Suggestion pairs a proposal with its verdict, the requesting team's gain,
// and a fit score measuring how well the incoming players address the
// team's weakest scoring categories.
type Suggestion struct {
	Proposal model.TradeProposal `json:"proposal"`
	Verdict  trade.Verdict       `json:"verdict"`
	Gain     float64             `json:"gain"`
	Fit      float64             `json:"fit"`
}

// Generator enumerates candidate trades between a team and a pool of
// partner rosters.
type Generator struct {
	evaluator     *trade.Evaluator
	maxBundleSize int
	maxCandidates int
	maxProposals  int
}

// NewGenerator creates a generator backed by the given evaluator.
func NewGenerator(evaluator *trade.Evaluator, opts ...Option) *Generator {
	g := &Generator{
		evaluator:     evaluator,
		maxBundleSize: DefaultMaxBundleSize,
		maxCandidates: DefaultMaxCandidates,
		maxProposals:  DefaultMaxProposals,
	}

	for _, opt := range opts {
		opt(g)
	}

	return g
}

// Suggest searches every candidate roster for swaps that raise forTeam's
// aggregate value while keeping the partner fair-or-better within the
// evaluator's threshold. Partners are searched concurrently; the merged
// result is ordered by forTeam's gain descending, ties broken by fewer
// players moved and then by better fit for the team's category needs.
func (g *Generator) Suggest(ctx context.Context, forTeam model.Roster, pool []model.Roster, valuations map[string]valuation.Result) ([]Suggestion, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("suggestion search cancelled: %w", err)
	}

	mine := g.topCandidates(forTeam.Players, valuations)
	need := needWeights(forTeam, pool, valuations)

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		merged  []Suggestion
		firstEr error
	)

	for _, partner := range pool {
		if partner.TeamID == forTeam.TeamID {
			continue
		}
		wg.Add(1)
		go func(partner model.Roster) {
			defer wg.Done()
			found, err := g.searchPartner(ctx, forTeam, partner, mine, need, valuations)
			mu.Lock()
			defer mu.Unlock()
			if err != nil && firstEr == nil {
				firstEr = err
				return
			}
			merged = append(merged, found...)
		}(partner)
	}
	wg.Wait()

	if firstEr != nil {
		return nil, firstEr
	}

	sort.SliceStable(merged, func(i, j int) bool {
		if merged[i].Gain != merged[j].Gain {
			return merged[i].Gain > merged[j].Gain
		}
		if m, n := merged[i].Proposal.PlayersMoved(), merged[j].Proposal.PlayersMoved(); m != n {
			return m < n
		}
		if merged[i].Fit != merged[j].Fit {
			return merged[i].Fit > merged[j].Fit
		}
		return proposalKey(merged[i].Proposal) < proposalKey(merged[j].Proposal)
	})

	return merged, nil
}

// searchPartner enumerates bundle swaps against one partner roster.
// Smaller trades are tried first (1-for-1 before multi-player bundles)
// and enumeration stops once the per-partner proposal budget is exhausted.
func (g *Generator) searchPartner(ctx context.Context, forTeam, partner model.Roster, mine []string, need map[string]float64, valuations map[string]valuation.Result) ([]Suggestion, error) {
	theirs := g.topCandidates(partner.Players, valuations)

	myBundles := bundlesBySize(mine, g.maxBundleSize)
	theirBundles := bundlesBySize(theirs, g.maxBundleSize)

	var (
		kept     []Suggestion
		examined int
	)

	for total := 2; total <= 2*g.maxBundleSize; total++ {
		for giveSize := 1; giveSize < total; giveSize++ {
			getSize := total - giveSize
			if giveSize > g.maxBundleSize || getSize > g.maxBundleSize {
				continue
			}
			for _, give := range myBundles[giveSize] {
				for _, get := range theirBundles[getSize] {
					if examined >= g.maxProposals {
						return kept, nil
					}
					if err := ctx.Err(); err != nil {
						return nil, fmt.Errorf("suggestion search cancelled: %w", err)
					}
					examined++

					proposal := model.TradeProposal{
						TeamA: forTeam.TeamID,
						TeamB: partner.TeamID,
						FromA: give,
						FromB: get,
					}
					verdict, err := g.evaluator.Evaluate(ctx, proposal, valuations)
					if err != nil {
						return nil, err
					}
					if !acceptable(verdict, forTeam.TeamID) {
						continue
					}
					kept = append(kept, Suggestion{
						Proposal: proposal,
						Verdict:  verdict,
						Gain:     verdict.NetA,
						Fit:      fitScore(get, give, need, valuations),
					})
				}
			}
		}
	}

	return kept, nil
}

// acceptable keeps proposals where the requesting team gains and the
// partner is left fair-or-better: the verdict must not favor the requester
// beyond the fair band.
func acceptable(v trade.Verdict, forTeam string) bool {
	if v.NetA <= 0 {
		return false
	}
	return v.Severity == trade.SeverityFair || v.Favors != forTeam
}

// rosterStrength sums weighted category contributions across a roster.
// Players without a valuation contribute nothing.
func rosterStrength(r model.Roster, valuations map[string]valuation.Result) map[string]float64 {
	strength := make(map[string]float64)
	for _, p := range r.Players {
		res, ok := valuations[p.ID]
		if !ok {
			continue
		}
		for cat, c := range res.Contributions {
			strength[cat] += c
		}
	}
	return strength
}

// needWeights scores forTeam's category weaknesses against the league
// average. Each category where the team sits below average gets a weight,
// normalized so the weakest category weighs 1; categories at or above
// average weigh 0.
func needWeights(forTeam model.Roster, pool []model.Roster, valuations map[string]valuation.Result) map[string]float64 {
	mine := rosterStrength(forTeam, valuations)

	league := []map[string]float64{mine}
	for _, r := range pool {
		if r.TeamID == forTeam.TeamID {
			continue
		}
		league = append(league, rosterStrength(r, valuations))
	}

	totals := make(map[string]float64)
	for _, s := range league {
		for cat, v := range s {
			totals[cat] += v
		}
	}

	need := make(map[string]float64, len(totals))
	var worst float64
	for cat, total := range totals {
		mean := total / float64(len(league))
		if gap := mean - mine[cat]; gap > 0 {
			need[cat] = gap
			if gap > worst {
				worst = gap
			}
		}
	}
	if worst > 0 {
		for cat := range need {
			need[cat] /= worst
		}
	}
	return need
}

// fitScore measures how well a swap addresses the requesting team's
// category needs: net incoming contribution per category, weighted by the
// team's need for that category. Categories are folded in sorted order so
// the float sum is reproducible.
func fitScore(incoming, outgoing []string, need map[string]float64, valuations map[string]valuation.Result) float64 {
	var fit float64
	for _, id := range incoming {
		fit += playerFit(valuations[id], need)
	}
	for _, id := range outgoing {
		fit -= playerFit(valuations[id], need)
	}
	return fit
}

func playerFit(res valuation.Result, need map[string]float64) float64 {
	cats := make([]string, 0, len(res.Contributions))
	for cat := range res.Contributions {
		cats = append(cats, cat)
	}
	sort.Strings(cats)

	var fit float64
	for _, cat := range cats {
		fit += res.Contributions[cat] * need[cat]
	}
	return fit
}

// topCandidates returns the ids of the most valuable players on a roster,
// truncated to the candidate cap. Players without a valuation are skipped.
func (g *Generator) topCandidates(players []model.Player, valuations map[string]valuation.Result) []string {
	ids := make([]string, 0, len(players))
	for _, p := range players {
		if _, ok := valuations[p.ID]; ok {
			ids = append(ids, p.ID)
		}
	}
	sort.Slice(ids, func(i, j int) bool {
		vi, vj := valuations[ids[i]].Value, valuations[ids[j]].Value
		if vi != vj {
			return vi > vj
		}
		return ids[i] < ids[j]
	})
	if len(ids) > g.maxCandidates {
		ids = ids[:g.maxCandidates]
	}
	return ids
}

// bundlesBySize enumerates player-id combinations grouped by bundle size,
// from 1 through maxSize.
func bundlesBySize(ids []string, maxSize int) map[int][][]string {
	out := make(map[int][][]string, maxSize)
	var current []string

	var expand func(start, remaining int)
	expand = func(start, remaining int) {
		if len(current) > 0 {
			bundle := make([]string, len(current))
			copy(bundle, current)
			out[len(bundle)] = append(out[len(bundle)], bundle)
		}
		if remaining == 0 {
			return
		}
		for i := start; i < len(ids); i++ {
			current = append(current, ids[i])
			expand(i+1, remaining-1)
			current = current[:len(current)-1]
		}
	}
	expand(0, maxSize)

	return out
}

// proposalKey builds a deterministic ordering key for tie-breaking.
func proposalKey(p model.TradeProposal) string {
	key := p.TeamB
	for _, id := range p.FromA {
		key += "|" + id
	}
	key += "/"
	for _, id := range p.FromB {
		key += "|" + id
	}
	return key
}
