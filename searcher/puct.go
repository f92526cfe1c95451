package searcher

import "math"

// puct scores candidate actions by Q(a) + c * P(a) * sqrt(N) / (1 + n):
// empirical mean value plus prior-weighted exploration that decays with the
// action's own visit count.
type puct struct {
	numerator float64
}

func newPUCT(exploration, parentVisits float64) puct {
	if parentVisits < 1 {
		// The first selection from a fresh node falls back entirely on
		// priors; keep the exploration term nonzero.
		parentVisits = 1
	}
	return puct{numerator: exploration * math.Sqrt(parentVisits)}
}

func (p puct) evaluate(q, prior, visits float64) float64 {
	return q + prior*p.numerator/(1+visits)
}
