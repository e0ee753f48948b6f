package scoring

// Method tags recorded on every factor so downstream consumers can tell a
// semantic comparison from a keyword fallback or a plain rule.
const (
	MethodSemantic    = "semantic"
	MethodWordOverlap = "word_overlap"
	MethodRule        = "rule"
)

// Dimension names of the four-axis framework.
const (
	DimensionIntent   = "intent"
	DimensionSynergy  = "synergy"
	DimensionMomentum = "momentum"
	DimensionContext  = "context"
)

// FactorResult is one measurable signal contributing to a dimension.
// The JSON shape (name/score/weight/detail) is consumed by existing
// dashboards and must stay stable.
type FactorResult struct {
	Name   string  `json:"name"`
	Score  float64 `json:"score"`
	Weight float64 `json:"weight"`
	Detail string  `json:"detail"`
	Method string  `json:"method"`
}

// DimensionResult is a dimension score with its contributing factors, in the
// order they were evaluated.
type DimensionResult struct {
	Name        string         `json:"name"`
	Score       float64        `json:"score"`
	Weight      float64        `json:"weight"`
	Factors     []FactorResult `json:"factors"`
	Explanation string         `json:"explanation"`
}

// PairScore is the engine's output for one profile pair. It is freshly
// constructed per call and never mutated afterwards.
//
// ScoreAB, ScoreBA and HarmonicMean are on the 0-10 scale; Percent is the
// same harmonic mean rescaled to 0-100 for consumers expecting percentage
// semantics.
type PairScore struct {
	ProfileA string `json:"profile_a"`
	ProfileB string `json:"profile_b"`

	ScoreAB      float64 `json:"score_ab"`
	ScoreBA      float64 `json:"score_ba"`
	HarmonicMean float64 `json:"harmonic_mean"`
	Percent      float64 `json:"percent"`

	BreakdownAB []DimensionResult `json:"breakdown_ab"`
	BreakdownBA []DimensionResult `json:"breakdown_ba"`

	MatchReason string `json:"match_reason"`
}
