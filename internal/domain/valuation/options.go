package valuation

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithCategories replaces the category calibration. Entries with
// non-positive weights or baselines are dropped.
func WithCategories(categories map[string]CategoryWeight) Option {
	return func(e *Engine) {
		if len(categories) == 0 {
			return
		}
		e.categories = make(map[string]CategoryWeight, len(categories))
		for name, cw := range categories {
			if cw.Weight > 0 && cw.Baseline > 0 {
				e.categories[name] = cw
			}
		}
	}
}

// WithScarcity replaces the position scarcity multipliers. Negative
// multipliers are dropped; zero is allowed and eliminates a position's value.
func WithScarcity(scarcity map[string]float64) Option {
	return func(e *Engine) {
		if len(scarcity) == 0 {
			return
		}
		e.scarcity = make(map[string]float64, len(scarcity))
		for pos, m := range scarcity {
			if m >= 0 {
				e.scarcity[pos] = m
			}
		}
	}
}

// WithAgeCurve replaces the age curve when its shape is valid.
func WithAgeCurve(curve AgeCurve) Option {
	return func(e *Engine) {
		if curve.PrimeStart > 0 && curve.PeakAge >= curve.PrimeStart &&
			curve.Floor >= 0 && curve.Ceiling >= 1.0 &&
			curve.YouthBonusPerYear >= 0 && curve.DeclinePerYear >= 0 {
			e.ageCurve = curve
		}
	}
}
