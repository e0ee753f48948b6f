package scoring

import (
	"math"
	"strings"
	"testing"
)

func TestCosine(t *testing.T) {
	t.Parallel()

	if got := cosine([]float32{1, 0}, []float32{1, 0}); math.Abs(got-1) > 1e-9 {
		t.Fatalf("expected cosine 1 for identical vectors, got %v", got)
	}
	if got := cosine([]float32{1, 0}, []float32{0, 1}); math.Abs(got) > 1e-9 {
		t.Fatalf("expected cosine 0 for orthogonal vectors, got %v", got)
	}
	if got := cosine([]float32{1, 0}, []float32{-1, 0}); math.Abs(got+1) > 1e-9 {
		t.Fatalf("expected cosine -1 for opposite vectors, got %v", got)
	}
	if got := cosine([]float32{0, 0}, []float32{1, 0}); got != 0 {
		t.Fatalf("expected 0 for zero-norm vector, got %v", got)
	}
}

func TestCalibrateAnchorsAndMonotonicity(t *testing.T) {
	t.Parallel()

	points := DefaultConfig().Calibration

	for _, p := range points {
		if got := calibrate(points, p.Cosine); math.Abs(got-p.Score) > 1e-9 {
			t.Fatalf("anchor %v: expected %v, got %v", p.Cosine, p.Score, got)
		}
	}

	// Clamped outside the anchor range.
	if got := calibrate(points, -2); got != 0 {
		t.Fatalf("expected clamp to 0 below range, got %v", got)
	}
	if got := calibrate(points, 2); got != 10 {
		t.Fatalf("expected clamp to 10 above range, got %v", got)
	}

	// Strictly non-decreasing over a sweep.
	prev := -1.0
	for cos := -1.0; cos <= 1.0; cos += 0.01 {
		got := calibrate(points, cos)
		if got < prev {
			t.Fatalf("calibration not monotonic at cosine %v: %v < %v", cos, got, prev)
		}
		if got < 0 || got > 10 {
			t.Fatalf("calibration out of bounds at cosine %v: %v", cos, got)
		}
		prev = got
	}
}

func TestTokenOverlapFloorOnEmptyText(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()

	sim := newSimilarityProvider(cfg, "", nil, "", nil).Resolve()
	if sim.Method != MethodWordOverlap {
		t.Fatalf("expected word_overlap method, got %q", sim.Method)
	}
	if sim.Score != cfg.OverlapFloor {
		t.Fatalf("expected floor %v for empty text, got %v", cfg.OverlapFloor, sim.Score)
	}
}

func TestTokenOverlapZeroOverlapStaysAboveZero(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()

	sim := newSimilarityProvider(cfg,
		"quantum physics research", nil,
		"sourdough baking recipes", nil,
	).Resolve()

	if sim.Score <= 0 {
		t.Fatalf("zero overlap must not collapse to zero, got %v", sim.Score)
	}
	if sim.Score != cfg.OverlapFloor {
		t.Fatalf("expected floor %v, got %v", cfg.OverlapFloor, sim.Score)
	}
}

func TestTokenOverlapCountsSharedTerms(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()

	sim := newSimilarityProvider(cfg,
		"email list partners for a course launch", nil,
		"course launch support for your email list", nil,
	).Resolve()

	// Shared informative tokens: course, email, launch, list.
	expect := cfg.OverlapFloor + 4*cfg.OverlapGain
	if math.Abs(sim.Score-expect) > 1e-9 {
		t.Fatalf("expected %v, got %v (detail: %s)", expect, sim.Score, sim.Detail)
	}
	if !strings.Contains(sim.Detail, "4 shared terms") {
		t.Fatalf("unexpected detail: %s", sim.Detail)
	}
}

func TestTokenOverlapCapsAtTen(t *testing.T) {
	t.Parallel()

	text := "alpha beta gamma delta epsilon zeta eta theta iota kappa"
	sim := newSimilarityProvider(DefaultConfig(), text, nil, text, nil).Resolve()
	if sim.Score != 10 {
		t.Fatalf("expected cap at 10, got %v", sim.Score)
	}
}

func TestProviderSelection(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	vec := []float32{1, 0, 0}

	semantic := newSimilarityProvider(cfg, "a", vec, "b", vec).Resolve()
	if semantic.Method != MethodSemantic {
		t.Fatalf("expected semantic method with embeddings, got %q", semantic.Method)
	}

	// Missing one side degrades to overlap.
	fallback := newSimilarityProvider(cfg, "a", vec, "b", nil).Resolve()
	if fallback.Method != MethodWordOverlap {
		t.Fatalf("expected fallback without both embeddings, got %q", fallback.Method)
	}

	// Mismatched lengths are unusable and also degrade.
	mismatched := newSimilarityProvider(cfg, "a", vec, "b", []float32{1, 0}).Resolve()
	if mismatched.Method != MethodWordOverlap {
		t.Fatalf("expected fallback on length mismatch, got %q", mismatched.Method)
	}
}

func TestSharedTokensDeterministicOrder(t *testing.T) {
	t.Parallel()

	a := "zebra yak xylophone walrus vulture"
	b := "vulture walrus xylophone yak zebra"

	first := sharedTokens(a, b)
	for i := 0; i < 50; i++ {
		again := sharedTokens(a, b)
		if len(again) != len(first) {
			t.Fatalf("unstable intersection size: %d vs %d", len(again), len(first))
		}
		for j := range first {
			if first[j] != again[j] {
				t.Fatalf("unstable ordering at %d: %q vs %q", j, first[j], again[j])
			}
		}
	}
}
