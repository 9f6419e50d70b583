package trade

import "github.com/walshja9/DiamondDynastiesTradeAnalyzer/internal/domain/model"

// Analysis is the full report for one proposal: the value verdict plus each
// team's net projected stat changes by category.
type Analysis struct {
	Verdict Verdict            `json:"verdict"`
	ImpactA map[string]float64 `json:"category_impact_a"`
	ImpactB map[string]float64 `json:"category_impact_b"`
}

// CategoryImpact computes the net projected stats a team gains across all
// categories: incoming player projections minus outgoing ones. Categories
// absent from every involved player are omitted.
func CategoryImpact(receiving, giving []model.Player) map[string]float64 {
	impact := make(map[string]float64)
	for _, p := range receiving {
		for cat, v := range p.Projected {
			impact[cat] += v
		}
	}
	for _, p := range giving {
		for cat, v := range p.Projected {
			impact[cat] -= v
		}
	}
	return impact
}
