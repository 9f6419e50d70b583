package suggest

// Option applies a configuration option to the Generator.
type Option func(*Generator)

// WithMaxBundleSize caps the number of players per side of a suggested
// trade. Values below 1 are ignored.
func WithMaxBundleSize(size int) Option {
	return func(g *Generator) {
		if size >= 1 {
			g.maxBundleSize = size
		}
	}
}

// WithMaxCandidates caps how many of a roster's most valuable players
// enter the search.
func WithMaxCandidates(count int) Option {
	return func(g *Generator) {
		if count >= 1 {
			g.maxCandidates = count
		}
	}
}

// WithMaxProposals bounds the number of proposals examined per partner
// team, guaranteeing termination regardless of roster size.
func WithMaxProposals(budget int) Option {
	return func(g *Generator) {
		if budget >= 1 {
			g.maxProposals = budget
		}
	}
}
