package scoring

// BottleneckReport aggregates breakdowns across many scored pairs for offline
// analysis: which dimension limits the composite most often, and how often
// similarity had to fall back to word overlap.
type BottleneckReport struct {
	Pairs int `json:"pairs"`

	// ArgminCounts counts, per dimension, how often it was the weakest in a
	// directional breakdown. Directions are counted separately.
	ArgminCounts map[string]int `json:"argmin_counts"`

	// MeanDimension is the average score per dimension across all directions.
	MeanDimension map[string]float64 `json:"mean_dimension"`

	// FallbackShare is the fraction of similarity-backed factors resolved by
	// word overlap instead of embeddings.
	FallbackShare float64 `json:"fallback_share"`
}

// Analyze builds a bottleneck report from a sample of pair scores.
func Analyze(scores []*PairScore) *BottleneckReport {
	report := &BottleneckReport{
		ArgminCounts:  map[string]int{},
		MeanDimension: map[string]float64{},
	}

	sums := map[string]float64{}
	directions := 0
	semantic := 0
	fallback := 0

	for _, s := range scores {
		if s == nil {
			continue
		}
		report.Pairs++

		for _, dims := range [][]DimensionResult{s.BreakdownAB, s.BreakdownBA} {
			if len(dims) == 0 {
				continue
			}
			directions++

			weakest := dims[0]
			for _, d := range dims {
				sums[d.Name] += d.Score
				if d.Score < weakest.Score {
					weakest = d
				}

				for _, f := range d.Factors {
					switch f.Method {
					case MethodSemantic:
						semantic++
					case MethodWordOverlap:
						fallback++
					}
				}
			}
			report.ArgminCounts[weakest.Name]++
		}
	}

	if directions > 0 {
		for name, sum := range sums {
			report.MeanDimension[name] = sum / float64(directions)
		}
	}
	if resolved := semantic + fallback; resolved > 0 {
		report.FallbackShare = float64(fallback) / float64(resolved)
	}

	return report
}
