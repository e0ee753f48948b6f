package scoring

import (
	"math"
	"testing"
)

func TestWeightedHarmonicMeanBasics(t *testing.T) {
	t.Parallel()

	// Equal inputs pass through.
	if got := weightedHarmonicMean([]float64{5, 5, 5, 5}, []float64{1, 1, 1, 1}); math.Abs(got-5) > 1e-9 {
		t.Fatalf("expected 5, got %v", got)
	}

	// All weights zero returns 0.
	if got := weightedHarmonicMean([]float64{5, 5}, []float64{0, 0}); got != 0 {
		t.Fatalf("expected 0 for zero weights, got %v", got)
	}
}

func TestHarmonicMeanNeverExceedsArithmetic(t *testing.T) {
	t.Parallel()

	cases := [][]float64{
		{1, 2, 3, 4},
		{10, 10, 10, 0.1},
		{7.3, 2.2, 9.9, 5.5},
		{0, 10, 10, 10},
	}
	weights := []float64{0.2, 0.4, 0.2, 0.2}

	for _, scores := range cases {
		h := weightedHarmonicMean(scores, weights)

		var arith, total float64
		for i, w := range weights {
			arith += scores[i] * w
			total += w
		}
		arith /= total

		if h > arith+1e-9 {
			t.Fatalf("harmonic %v exceeds arithmetic %v for %v", h, arith, scores)
		}
	}
}

func TestHarmonicPenalizesWeakestDimension(t *testing.T) {
	t.Parallel()

	// One dimension forced to zero while the others are perfect: the
	// composite must land strictly below the arithmetic mean.
	scores := []float64{0, 10, 10, 10}
	weights := []float64{0.25, 0.25, 0.25, 0.25}

	h := weightedHarmonicMean(scores, weights)
	arith := 7.5

	if h >= arith {
		t.Fatalf("expected composite below arithmetic mean %v, got %v", arith, h)
	}
	if h > 0.001 {
		t.Fatalf("zeroed dimension should drag composite near zero, got %v", h)
	}
	if h < 0 {
		t.Fatalf("composite must not go negative, got %v", h)
	}
}

func TestHarmonicPairSymmetry(t *testing.T) {
	t.Parallel()

	cases := [][2]float64{
		{3.2, 7.8},
		{0, 10},
		{6.15, 5.97},
	}

	for _, c := range cases {
		ab := harmonicPair(c[0], c[1])
		ba := harmonicPair(c[1], c[0])
		if ab != ba {
			t.Fatalf("harmonic pair not symmetric for %v: %v vs %v", c, ab, ba)
		}

		arith := (c[0] + c[1]) / 2
		if ab > arith+1e-9 {
			t.Fatalf("harmonic pair %v exceeds arithmetic mean %v", ab, arith)
		}
	}
}
