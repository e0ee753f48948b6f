package scoring

import (
	"fmt"
	"sort"
	"strings"
)

// reasonThreshold is the minimum factor score quoted in a match reason.
const reasonThreshold = 6.0

// maxReasonFactors caps how many highlights a reason carries.
const maxReasonFactors = 3

const neutralReason = "no standout signals; pair ranks on neutral defaults"

// IsNeutralReason reports whether a match reason carries no standout signal.
func IsNeutralReason(reason string) bool {
	return reason == "" || reason == neutralReason
}

// buildMatchReason renders a short human-readable summary from the
// highest-scoring factors across both directions. Duplicate factor names keep
// only their strongest occurrence.
func buildMatchReason(breakdownAB, breakdownBA []DimensionResult) string {
	best := map[string]FactorResult{}
	collect := func(dims []DimensionResult) {
		for _, d := range dims {
			for _, f := range d.Factors {
				if f.Score < reasonThreshold {
					continue
				}
				if prev, ok := best[f.Name]; !ok || f.Score > prev.Score {
					best[f.Name] = f
				}
			}
		}
	}
	collect(breakdownAB)
	collect(breakdownBA)

	if len(best) == 0 {
		return neutralReason
	}

	highlights := make([]FactorResult, 0, len(best))
	for _, f := range best {
		highlights = append(highlights, f)
	}
	sort.Slice(highlights, func(i, j int) bool {
		if highlights[i].Score == highlights[j].Score {
			return highlights[i].Name < highlights[j].Name
		}
		return highlights[i].Score > highlights[j].Score
	})

	if len(highlights) > maxReasonFactors {
		highlights = highlights[:maxReasonFactors]
	}

	parts := make([]string, 0, len(highlights))
	for _, f := range highlights {
		parts = append(parts, fmt.Sprintf("%s %.1f/10 (%s)", readableFactorName(f.Name), f.Score, f.Detail))
	}

	return strings.Join(parts, "; ")
}

func readableFactorName(name string) string {
	return strings.ReplaceAll(name, "_", " ")
}
