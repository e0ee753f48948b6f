package scoring

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"unicode"
)

// Similarity is a 0-10 alignment score for a text-field pair, tagged with the
// method that produced it.
type Similarity struct {
	Score  float64
	Method string
	Detail string
}

// SimilarityProvider resolves one text-field pair. Implementations carry
// their inputs; the variant is chosen once by newSimilarityProvider based on
// embedding availability, not by exception-driven fallback.
type SimilarityProvider interface {
	Resolve() Similarity
}

// newSimilarityProvider picks the semantic variant when both sides carry a
// usable embedding of matching length, and the word-overlap variant otherwise.
func newSimilarityProvider(cfg *Config, aText string, aVec []float32, bText string, bVec []float32) SimilarityProvider {
	if len(aVec) > 0 && len(aVec) == len(bVec) {
		return &embeddingSimilarity{calibration: cfg.Calibration, a: aVec, b: bVec}
	}
	return &tokenOverlap{floor: cfg.OverlapFloor, gain: cfg.OverlapGain, a: aText, b: bText}
}

type embeddingSimilarity struct {
	calibration []CalibrationPoint
	a, b        []float32
}

func (s *embeddingSimilarity) Resolve() Similarity {
	cos := cosine(s.a, s.b)
	score := calibrate(s.calibration, cos)
	return Similarity{
		Score:  score,
		Method: MethodSemantic,
		Detail: fmt.Sprintf("cosine similarity %.2f", cos),
	}
}

type tokenOverlap struct {
	floor float64
	gain  float64
	a, b  string
}

func (s *tokenOverlap) Resolve() Similarity {
	shared := sharedTokens(s.a, s.b)
	score := s.floor + s.gain*float64(len(shared))
	if score > 10 {
		score = 10
	}

	detail := "no shared terms"
	if len(shared) > 0 {
		detail = fmt.Sprintf("%d shared terms: %s", len(shared), strings.Join(shared, ", "))
	}

	return Similarity{
		Score:  score,
		Method: MethodWordOverlap,
		Detail: detail,
	}
}

// cosine computes cosine similarity between two vectors of equal length.
// A zero-norm side yields 0.
func cosine(a, b []float32) float64 {
	var dot, na, nb float64
	for i := 0; i < len(a); i++ {
		x := float64(a[i])
		y := float64(b[i])
		dot += x * y
		na += x * x
		nb += y * y
	}
	den := math.Sqrt(na) * math.Sqrt(nb)
	if den == 0 {
		return 0
	}
	return dot / den
}

// calibrate maps a raw cosine onto the 0-10 scale through the piecewise-linear
// anchor curve. Real-world related-but-different text clusters around raw
// similarity 0.1-0.4; a naive linear rescale of [-1,1] would compress exactly
// the band where discrimination matters.
func calibrate(points []CalibrationPoint, cos float64) float64 {
	if len(points) == 0 {
		return 0
	}
	if cos <= points[0].Cosine {
		return points[0].Score
	}
	last := points[len(points)-1]
	if cos >= last.Cosine {
		return last.Score
	}
	for i := 1; i < len(points); i++ {
		if cos > points[i].Cosine {
			continue
		}
		lo, hi := points[i-1], points[i]
		span := hi.Cosine - lo.Cosine
		if span == 0 {
			return hi.Score
		}
		frac := (cos - lo.Cosine) / span
		return lo.Score + frac*(hi.Score-lo.Score)
	}
	return last.Score
}

var stopwords = map[string]struct{}{
	"a": {}, "an": {}, "and": {}, "are": {}, "as": {}, "at": {}, "be": {},
	"by": {}, "for": {}, "from": {}, "has": {}, "have": {}, "i": {}, "in": {},
	"is": {}, "it": {}, "my": {}, "of": {}, "on": {}, "or": {}, "our": {},
	"that": {}, "the": {}, "their": {}, "them": {}, "they": {}, "this": {},
	"to": {}, "we": {}, "who": {}, "will": {}, "with": {}, "you": {}, "your": {},
}

// tokenize lower-cases, splits on non-alphanumerics and strips stop-words.
func tokenize(text string) map[string]struct{} {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	tokens := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		if _, stop := stopwords[f]; stop {
			continue
		}
		if len(f) < 2 {
			continue
		}
		tokens[f] = struct{}{}
	}
	return tokens
}

// sharedTokens returns the intersection of both token sets, sorted so that
// identical inputs always render identical detail strings.
func sharedTokens(a, b string) []string {
	ta := tokenize(a)
	if len(ta) == 0 {
		return nil
	}
	tb := tokenize(b)

	var shared []string
	for tok := range ta {
		if _, ok := tb[tok]; ok {
			shared = append(shared, tok)
		}
	}
	sort.Strings(shared)
	return shared
}
