package scoring

import (
	"fmt"
	"strings"

	"github.com/venturemesh/partnermatch/internal/profile"
)

// Neutral defaults for missing Synergy data. Text alignment unknowns sit
// below the midpoint: an unverifiable fit should rank under a measured
// mediocre one.
const (
	alignmentNeutral  = 3.5
	roleCompatNeutral = 5.0
)

// synergyFactors scores complementary fit in the a-evaluating-b direction.
// Revenue proximity is included only when both sides disclose a tier; a
// missing tier never dilutes the dimension with a fabricated neutral value.
func synergyFactors(cfg *Config, a, b *profile.Profile) []FactorResult {
	factors := []FactorResult{
		offeringSeekingFactor(cfg, a, b),
		audienceAlignmentFactor(cfg, a, b),
		roleCompatFactor(cfg, a, b),
	}

	if f, ok := revenueProximityFactor(cfg, a, b); ok {
		factors = append(factors, f)
	}

	return factors
}

// offeringSeekingFactor resolves the directional text pair: what a seeks
// against what b offers. When that orientation lacks text on either side it
// falls back to the reverse pair, since offer/ask alignment is a property of
// the pair even if only one side articulated it.
func offeringSeekingFactor(cfg *Config, a, b *profile.Profile) FactorResult {
	weight := cfg.Synergy.OfferingSeeking

	seekSide, offerSide := a, b
	if strings.TrimSpace(a.Seeking) == "" || strings.TrimSpace(b.Offering) == "" {
		seekSide, offerSide = b, a
	}

	if strings.TrimSpace(seekSide.Seeking) == "" || strings.TrimSpace(offerSide.Offering) == "" {
		return FactorResult{
			Name:   "offering_seeking",
			Score:  alignmentNeutral,
			Weight: weight,
			Detail: "neither side states a matching seeking/offering pair",
			Method: MethodRule,
		}
	}

	sim := newSimilarityProvider(cfg,
		seekSide.Seeking, seekSide.Embedding(profile.FieldSeeking),
		offerSide.Offering, offerSide.Embedding(profile.FieldOffering),
	).Resolve()

	return FactorResult{
		Name:   "offering_seeking",
		Score:  sim.Score,
		Weight: weight,
		Detail: fmt.Sprintf("seeking of %s vs offering of %s: %s", seekSide.ID, offerSide.ID, sim.Detail),
		Method: sim.Method,
	}
}

func audienceAlignmentFactor(cfg *Config, a, b *profile.Profile) FactorResult {
	weight := cfg.Synergy.AudienceAlignment

	if strings.TrimSpace(a.WhoYouServe) == "" || strings.TrimSpace(b.WhoYouServe) == "" {
		return FactorResult{
			Name:   "audience_alignment",
			Score:  alignmentNeutral,
			Weight: weight,
			Detail: "audience description missing on at least one side",
			Method: MethodRule,
		}
	}

	sim := newSimilarityProvider(cfg,
		a.WhoYouServe, a.Embedding(profile.FieldWhoYouServe),
		b.WhoYouServe, b.Embedding(profile.FieldWhoYouServe),
	).Resolve()

	return FactorResult{
		Name:   "audience_alignment",
		Score:  sim.Score,
		Weight: weight,
		Detail: sim.Detail,
		Method: sim.Method,
	}
}

// roleCompatFactor compares declared niches. Identical niches score highest;
// overlapping ones are adjacent markets; fully disjoint niches still leave
// room for cross-promotion, so they stay above the floor.
func roleCompatFactor(cfg *Config, a, b *profile.Profile) FactorResult {
	weight := cfg.Synergy.RoleCompat

	na := strings.TrimSpace(a.Niche)
	nb := strings.TrimSpace(b.Niche)
	if na == "" || nb == "" {
		return FactorResult{
			Name:   "role_compat",
			Score:  roleCompatNeutral,
			Weight: weight,
			Detail: "niche undisclosed on at least one side",
			Method: MethodRule,
		}
	}

	var score float64
	var detail string
	switch {
	case strings.EqualFold(na, nb):
		score, detail = 9, "identical niche: "+na
	case len(sharedTokens(na, nb)) > 0:
		score, detail = 7.5, fmt.Sprintf("overlapping niches %q and %q", na, nb)
	default:
		score, detail = 4.5, fmt.Sprintf("disjoint niches %q and %q", na, nb)
	}

	return FactorResult{
		Name:   "role_compat",
		Score:  score,
		Weight: weight,
		Detail: detail,
		Method: MethodRule,
	}
}

// revenueProximityFactor reports ok=false when either tier is undisclosed;
// the factor is then omitted rather than defaulted.
func revenueProximityFactor(cfg *Config, a, b *profile.Profile) (FactorResult, bool) {
	ta := a.TierIndex()
	tb := b.TierIndex()
	if ta < 0 || tb < 0 {
		return FactorResult{}, false
	}

	gap := ta - tb
	if gap < 0 {
		gap = -gap
	}

	var score float64
	switch gap {
	case 0:
		score = 9
	case 1:
		score = 7
	case 2:
		score = 5
	default:
		score = 3
	}

	return FactorResult{
		Name:   "revenue_proximity",
		Score:  score,
		Weight: cfg.Synergy.RevenueProximity,
		Detail: fmt.Sprintf("tiers %s and %s, %d apart", a.RevenueTier, b.RevenueTier, gap),
		Method: MethodRule,
	}, true
}
