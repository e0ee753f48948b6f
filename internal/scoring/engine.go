package scoring

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/venturemesh/partnermatch/internal/profile"
)

// Engine turns two partner profiles into one bounded, explainable
// match-quality score. Scoring is synchronous, CPU-bound and side-effect
// free: ScorePair reads only its arguments, performs no I/O and keeps no
// state between calls, so callers may shard pair batches across workers with
// zero coordination.
type Engine struct {
	cfg *Config
	log *zap.Logger
}

// New builds an engine around the provided config. A nil logger is replaced
// with a no-op one.
func New(cfg *Config, log *zap.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scoring config: %w", err)
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{cfg: cfg, log: log}, nil
}

// Config returns the injected configuration.
func (e *Engine) Config() *Config {
	return e.cfg
}

// ScorePair runs the four-dimension pipeline once per direction and merges
// the two directional scores through a second harmonic mean. Outcomes are
// optional context; nil is fine.
//
// The two directions are genuinely different computations: "what A seeks
// against what B offers" reads different field pairs than the reverse.
func (e *Engine) ScorePair(a, b *profile.Profile, outcomes OutcomeSet) (*PairScore, error) {
	if err := a.Validate(); err != nil {
		return nil, err
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}

	scoreAB, breakdownAB := e.scoreDirection(a, b, outcomes)
	scoreBA, breakdownBA := e.scoreDirection(b, a, outcomes)

	composite := harmonicPair(scoreAB, scoreBA)

	result := &PairScore{
		ProfileA:     a.ID,
		ProfileB:     b.ID,
		ScoreAB:      scoreAB,
		ScoreBA:      scoreBA,
		HarmonicMean: composite,
		Percent:      composite * 10,
		BreakdownAB:  breakdownAB,
		BreakdownBA:  breakdownBA,
		MatchReason:  buildMatchReason(breakdownAB, breakdownBA),
	}

	e.log.Debug("pair scored",
		zap.String("profile_a", a.ID),
		zap.String("profile_b", b.ID),
		zap.Float64("score_ab", scoreAB),
		zap.Float64("score_ba", scoreBA),
		zap.Float64("percent", result.Percent),
	)

	return result, nil
}

// scoreDirection evaluates candidate b from a's perspective.
func (e *Engine) scoreDirection(a, b *profile.Profile, outcomes OutcomeSet) (float64, []DimensionResult) {
	cfg := e.cfg

	dimensions := []DimensionResult{
		aggregateDimension(DimensionIntent, cfg.Dimensions.Intent, intentFactors(cfg, b, outcomes.forProfile(b.ID))),
		aggregateDimension(DimensionSynergy, cfg.Dimensions.Synergy, synergyFactors(cfg, a, b)),
		aggregateDimension(DimensionMomentum, cfg.Dimensions.Momentum, momentumFactors(cfg, b)),
		aggregateDimension(DimensionContext, cfg.Dimensions.Context, contextFactors(cfg, b)),
	}

	scores := make([]float64, len(dimensions))
	weights := make([]float64, len(dimensions))
	for i, d := range dimensions {
		scores[i] = d.Score
		weights[i] = d.Weight
	}

	return weightedHarmonicMean(scores, weights), dimensions
}
