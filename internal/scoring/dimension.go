package scoring

import "fmt"

// aggregateDimension combines a dimension's factors into one 0-10 score via a
// weighted arithmetic mean. Factors within a dimension are substitutable:
// strength in one compensates weakness in another, which is why the harsher
// harmonic mean is reserved for the cross-dimension step.
//
// Omitted factors (undisclosed revenue tier, absent outcome data) are simply
// not in the slice; dividing by the sum of present weights renormalizes
// without fabricating neutral values.
func aggregateDimension(name string, weight float64, factors []FactorResult) DimensionResult {
	var weighted, total float64
	for _, f := range factors {
		weighted += f.Score * f.Weight
		total += f.Weight
	}

	score := 0.0
	if total > 0 {
		score = weighted / total
	}

	return DimensionResult{
		Name:        name,
		Score:       score,
		Weight:      weight,
		Factors:     factors,
		Explanation: explainDimension(name, score, factors),
	}
}

func explainDimension(name string, score float64, factors []FactorResult) string {
	if len(factors) == 0 {
		return fmt.Sprintf("%s: no factors evaluated", name)
	}

	weakest := factors[0]
	strongest := factors[0]
	for _, f := range factors[1:] {
		if f.Score < weakest.Score {
			weakest = f
		}
		if f.Score > strongest.Score {
			strongest = f
		}
	}

	return fmt.Sprintf("%s %.1f/10 from %d factors; strongest %s (%.1f), weakest %s (%.1f)",
		name, score, len(factors), strongest.Name, strongest.Score, weakest.Name, weakest.Score)
}
