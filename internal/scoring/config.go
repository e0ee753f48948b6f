package scoring

import (
	"fmt"
	"math"
	"sort"
)

// weightTolerance is the allowed drift when checking that dimension weights
// sum to one.
const weightTolerance = 1e-6

// Config holds every tunable of the scoring engine. It is injected at
// construction; nothing in this package reads package-level state, so two
// engines with different configs can run side by side.
type Config struct {
	Dimensions DimensionWeights `mapstructure:"dimensions" json:"dimensions"`
	Intent     IntentWeights    `mapstructure:"intent" json:"intent"`
	Synergy    SynergyWeights   `mapstructure:"synergy" json:"synergy"`
	Momentum   MomentumWeights  `mapstructure:"momentum" json:"momentum"`
	Context    ContextWeights   `mapstructure:"context" json:"context"`

	// Calibration maps raw cosine similarity to the 0-10 scale. Points must
	// be monotonic in both coordinates.
	Calibration []CalibrationPoint `mapstructure:"calibration" json:"calibration"`

	// OverlapFloor is the score returned by the word-overlap fallback when no
	// tokens are shared. Zero overlap must stay above absolute zero to keep
	// ranking discrimination between "unrelated" and "confirmed mismatch".
	OverlapFloor float64 `mapstructure:"overlap-floor" json:"overlap_floor"`
	// OverlapGain is the score added per shared informative token.
	OverlapGain float64 `mapstructure:"overlap-gain" json:"overlap_gain"`
}

// DimensionWeights are the cross-dimension weights; they must sum to 1.0.
type DimensionWeights struct {
	Intent   float64 `mapstructure:"intent" json:"intent"`
	Synergy  float64 `mapstructure:"synergy" json:"synergy"`
	Momentum float64 `mapstructure:"momentum" json:"momentum"`
	Context  float64 `mapstructure:"context" json:"context"`
}

// IntentWeights are the relative factor weights within the Intent dimension.
type IntentWeights struct {
	JVHistory    float64 `mapstructure:"jv-history" json:"jv_history"`
	Contact      float64 `mapstructure:"contact" json:"contact"`
	StatedIntent float64 `mapstructure:"stated-intent" json:"stated_intent"`
	Completeness float64 `mapstructure:"completeness" json:"completeness"`
	PastOutcomes float64 `mapstructure:"past-outcomes" json:"past_outcomes"`
}

// SynergyWeights are the relative factor weights within the Synergy dimension.
type SynergyWeights struct {
	OfferingSeeking   float64 `mapstructure:"offering-seeking" json:"offering_seeking"`
	AudienceAlignment float64 `mapstructure:"audience-alignment" json:"audience_alignment"`
	RoleCompat        float64 `mapstructure:"role-compat" json:"role_compat"`
	RevenueProximity  float64 `mapstructure:"revenue-proximity" json:"revenue_proximity"`
}

// MomentumWeights are the relative factor weights within the Momentum dimension.
type MomentumWeights struct {
	ListSize       float64 `mapstructure:"list-size" json:"list_size"`
	SocialReach    float64 `mapstructure:"social-reach" json:"social_reach"`
	Engagement     float64 `mapstructure:"engagement" json:"engagement"`
	ActiveProjects float64 `mapstructure:"active-projects" json:"active_projects"`
}

// ContextWeights are the relative factor weights within the Context dimension.
type ContextWeights struct {
	Completeness    float64 `mapstructure:"completeness" json:"completeness"`
	SourceQuality   float64 `mapstructure:"source-quality" json:"source_quality"`
	DomainRelevance float64 `mapstructure:"domain-relevance" json:"domain_relevance"`
}

// CalibrationPoint is one anchor of the piecewise-linear cosine calibration.
type CalibrationPoint struct {
	Cosine float64 `mapstructure:"cosine" json:"cosine"`
	Score  float64 `mapstructure:"score" json:"score"`
}

// DefaultConfig returns the production weighting. The Synergy dimension
// carries the largest weight: complementary fit is the signal the whole
// system exists to find.
func DefaultConfig() *Config {
	return &Config{
		Dimensions: DimensionWeights{
			Intent:   0.20,
			Synergy:  0.40,
			Momentum: 0.20,
			Context:  0.20,
		},
		Intent: IntentWeights{
			JVHistory:    0.30,
			Contact:      0.25,
			StatedIntent: 0.25,
			Completeness: 0.20,
			PastOutcomes: 0.15,
		},
		Synergy: SynergyWeights{
			OfferingSeeking:   0.50,
			AudienceAlignment: 0.20,
			RoleCompat:        0.15,
			RevenueProximity:  0.15,
		},
		Momentum: MomentumWeights{
			ListSize:       0.30,
			SocialReach:    0.25,
			Engagement:     0.25,
			ActiveProjects: 0.20,
		},
		Context: ContextWeights{
			Completeness:    0.40,
			SourceQuality:   0.30,
			DomainRelevance: 0.30,
		},
		Calibration: []CalibrationPoint{
			{Cosine: -1.0, Score: 0},
			{Cosine: 0.0, Score: 1},
			{Cosine: 0.1, Score: 3},
			{Cosine: 0.25, Score: 5.5},
			{Cosine: 0.4, Score: 7.5},
			{Cosine: 0.6, Score: 9},
			{Cosine: 0.8, Score: 9.8},
			{Cosine: 1.0, Score: 10},
		},
		OverlapFloor: 1.5,
		OverlapGain:  1.7,
	}
}

// Validate checks the config for the invariants the engine relies on.
func (c *Config) Validate() error {
	if c == nil {
		return fmt.Errorf("scoring config is required")
	}

	d := c.Dimensions
	for name, w := range map[string]float64{
		"intent":   d.Intent,
		"synergy":  d.Synergy,
		"momentum": d.Momentum,
		"context":  d.Context,
	} {
		if w <= 0 {
			return fmt.Errorf("dimension weight %q must be positive, got %v", name, w)
		}
	}
	if sum := d.Intent + d.Synergy + d.Momentum + d.Context; math.Abs(sum-1.0) > weightTolerance {
		return fmt.Errorf("dimension weights must sum to 1.0, got %v", sum)
	}

	if len(c.Calibration) < 2 {
		return fmt.Errorf("calibration needs at least 2 anchor points, got %d", len(c.Calibration))
	}
	if !sort.SliceIsSorted(c.Calibration, func(i, j int) bool {
		return c.Calibration[i].Cosine < c.Calibration[j].Cosine
	}) {
		return fmt.Errorf("calibration anchors must be sorted by cosine")
	}
	for i := 1; i < len(c.Calibration); i++ {
		if c.Calibration[i].Score < c.Calibration[i-1].Score {
			return fmt.Errorf("calibration curve must be monotonic, score drops at anchor %d", i)
		}
	}
	for _, p := range c.Calibration {
		if p.Score < 0 || p.Score > 10 {
			return fmt.Errorf("calibration score %v outside [0,10]", p.Score)
		}
	}

	if c.OverlapFloor < 0 || c.OverlapFloor > 10 {
		return fmt.Errorf("overlap floor %v outside [0,10]", c.OverlapFloor)
	}
	if c.OverlapGain <= 0 {
		return fmt.Errorf("overlap gain must be positive, got %v", c.OverlapGain)
	}

	return nil
}
