package scoring

import (
	"math"
	"strings"
	"testing"

	"github.com/venturemesh/partnermatch/internal/profile"
)

func TestAnalyzeCountsArgminAndFallbacks(t *testing.T) {
	t.Parallel()

	engine := newTestEngine(t)

	a, b := scenarioAProfiles()
	strong, err := engine.ScorePair(a, b, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	empty, err := engine.ScorePair(&profile.Profile{ID: "e1"}, &profile.Profile{ID: "e2"}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	report := Analyze([]*PairScore{strong, empty, nil})

	if report.Pairs != 2 {
		t.Fatalf("expected 2 pairs, got %d", report.Pairs)
	}

	total := 0
	for _, n := range report.ArgminCounts {
		total += n
	}
	if total != 4 {
		t.Fatalf("expected 4 directional argmin entries, got %d", total)
	}

	// The strong pair bottlenecks on intent (no contact channel on either
	// side); the empty pair bottlenecks on context (no trustworthy data).
	if report.ArgminCounts[DimensionIntent] != 2 {
		t.Fatalf("expected intent argmin twice, got %+v", report.ArgminCounts)
	}
	if report.ArgminCounts[DimensionContext] != 2 {
		t.Fatalf("expected context argmin twice, got %+v", report.ArgminCounts)
	}

	for name, mean := range report.MeanDimension {
		if mean < 0 || mean > 10 {
			t.Fatalf("mean for %s out of bounds: %v", name, mean)
		}
	}

	// The strong pair resolves semantically in both directions; the empty
	// pair never invokes a similarity provider at all.
	if report.FallbackShare != 0 {
		t.Fatalf("expected no word-overlap fallbacks, got share %v", report.FallbackShare)
	}
}

func TestAnalyzeEmptySample(t *testing.T) {
	t.Parallel()

	report := Analyze(nil)
	if report.Pairs != 0 || report.FallbackShare != 0 {
		t.Fatalf("unexpected report for empty sample: %+v", report)
	}
}

func TestBuildMatchReasonSelectsTopFactors(t *testing.T) {
	t.Parallel()

	engine := newTestEngine(t)
	a, b := scenarioAProfiles()

	got, err := engine.ScorePair(a, b, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(got.MatchReason, "offering seeking") {
		t.Fatalf("expected the strongest factor in the reason, got %q", got.MatchReason)
	}

	// At most three highlights.
	if n := strings.Count(got.MatchReason, ";") + 1; n > 3 {
		t.Fatalf("expected at most 3 highlights, got %d: %q", n, got.MatchReason)
	}
}

func TestBuildMatchReasonNeutralPair(t *testing.T) {
	t.Parallel()

	engine := newTestEngine(t)

	got, err := engine.ScorePair(&profile.Profile{ID: "n1"}, &profile.Profile{ID: "n2"}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got.MatchReason == "" {
		t.Fatal("reason must never be empty")
	}
	if !strings.Contains(got.MatchReason, "no standout") {
		t.Fatalf("expected the neutral reason, got %q", got.MatchReason)
	}
}

func TestConfigValidateCatchesBadCalibration(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.Calibration[2].Score = 0.5 // breaks monotonicity

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for non-monotonic calibration")
	}

	cfg = DefaultConfig()
	cfg.Calibration = cfg.Calibration[:1]
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for single-anchor calibration")
	}

	cfg = DefaultConfig()
	cfg.OverlapGain = 0
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for zero overlap gain")
	}
}

func TestDefaultConfigIsValid(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config must validate: %v", err)
	}

	sum := cfg.Dimensions.Intent + cfg.Dimensions.Synergy + cfg.Dimensions.Momentum + cfg.Dimensions.Context
	if math.Abs(sum-1.0) > 1e-9 {
		t.Fatalf("dimension weights must sum to 1, got %v", sum)
	}
}
