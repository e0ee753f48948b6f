package scoring

import (
	"fmt"
	"strings"

	"github.com/venturemesh/partnermatch/internal/profile"
)

// Neutral defaults for missing Intent data. Zero is reserved for confirmed
// negative signal, never for "unknown".
const (
	jvHistoryNeutral    = 5.0
	statedIntentNeutral = 4.0
	contactNone         = 3.0
)

// intentFactors scores the reachability and interest signals of candidate b
// from a's perspective. Outcome stats, when present for b, add a factor that
// is otherwise omitted entirely.
func intentFactors(cfg *Config, b *profile.Profile, stats *OutcomeStats) []FactorResult {
	factors := []FactorResult{
		jvHistoryFactor(cfg, b),
		contactChannelFactor(cfg, b),
		statedIntentFactor(cfg, b),
		completenessFactor("enrichment_completeness", cfg.Intent.Completeness, b),
	}

	if rate := stats.replyRate(); rate >= 0 {
		factors = append(factors, FactorResult{
			Name:   "past_outcomes",
			Score:  2 + 8*rate,
			Weight: cfg.Intent.PastOutcomes,
			Detail: fmt.Sprintf("positive reply rate %.0f%% over %d outreaches", rate*100, stats.Outreach),
			Method: MethodRule,
		})
	}

	return factors
}

func jvHistoryFactor(cfg *Config, b *profile.Profile) FactorResult {
	count := len(b.JVHistory)
	if count == 0 {
		return FactorResult{
			Name:   "jv_history",
			Score:  jvHistoryNeutral,
			Weight: cfg.Intent.JVHistory,
			Detail: "no joint ventures recorded",
			Method: MethodRule,
		}
	}

	score := 6 + float64(count)
	if score > 10 {
		score = 10
	}
	return FactorResult{
		Name:   "jv_history",
		Score:  score,
		Weight: cfg.Intent.JVHistory,
		Detail: fmt.Sprintf("%d joint ventures recorded, latest with %s", count, b.JVHistory[count-1].PartnerName),
		Method: MethodRule,
	}
}

// contactChannelFactor ranks direct channels above social-only reach. An
// entirely unreachable profile is a confirmed negative signal, scored low but
// above zero.
func contactChannelFactor(cfg *Config, b *profile.Profile) FactorResult {
	hasEmail := strings.TrimSpace(b.Email) != ""
	hasBooking := strings.TrimSpace(b.BookingLink) != ""

	var score float64
	var detail string
	switch {
	case hasEmail && hasBooking:
		score, detail = 10, "email and booking link available"
	case hasEmail:
		score, detail = 9, "email available"
	case hasBooking:
		score, detail = 8, "booking link available"
	case len(b.ContentPlatforms) > 0:
		score, detail = 6, "social channels only: "+strings.Join(b.ContentPlatforms, ", ")
	default:
		score, detail = contactNone, "no known contact channel"
	}

	return FactorResult{
		Name:   "contact_channel",
		Score:  score,
		Weight: cfg.Intent.Contact,
		Detail: detail,
		Method: MethodRule,
	}
}

// statedIntentFactor rewards a candidate that articulates what it seeks or
// offers. Either text signals an active interest in partnerships.
func statedIntentFactor(cfg *Config, b *profile.Profile) FactorResult {
	hasSeeking := strings.TrimSpace(b.Seeking) != ""
	hasOffering := strings.TrimSpace(b.Offering) != ""

	var score float64
	var detail string
	switch {
	case hasSeeking && hasOffering:
		score, detail = 9, "seeking and offering both stated"
	case hasSeeking:
		score, detail = 8, "seeking stated"
	case hasOffering:
		score, detail = 8, "offering stated"
	default:
		score, detail = statedIntentNeutral, "no stated seeking or offering"
	}

	return FactorResult{
		Name:   "stated_intent",
		Score:  score,
		Weight: cfg.Intent.StatedIntent,
		Detail: detail,
		Method: MethodRule,
	}
}

// completenessFactor maps the populated fraction of expected fields onto
// [2,10]. Shared between Intent (enrichment progress) and Context (data
// trustworthiness), under each dimension's own name and weight.
func completenessFactor(name string, weight float64, b *profile.Profile) FactorResult {
	fraction := b.Completeness()
	return FactorResult{
		Name:   name,
		Score:  2 + 8*fraction,
		Weight: weight,
		Detail: fmt.Sprintf("%.0f%% of expected fields populated", fraction*100),
		Method: MethodRule,
	}
}
