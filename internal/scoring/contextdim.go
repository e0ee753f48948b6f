package scoring

import (
	"fmt"
	"strings"

	"github.com/venturemesh/partnermatch/internal/profile"
)

const sourceQualityNeutral = 5.0

// domainLexicon holds partnership-economy terms. A profile whose text never
// touches this vocabulary is probably outside the niche the pool targets, so
// its data deserves less trust when ranking.
var domainLexicon = []string{
	"affiliate", "audience", "bundle", "coach", "course", "creator",
	"email", "launch", "list", "mastermind", "membership", "newsletter",
	"partner", "podcast", "promotion", "subscriber", "summit", "webinar",
}

// contextFactors scores how much candidate b's data can be trusted.
func contextFactors(cfg *Config, b *profile.Profile) []FactorResult {
	return []FactorResult{
		completenessFactor("completeness", cfg.Context.Completeness, b),
		sourceQualityFactor(cfg, b),
		domainRelevanceFactor(cfg, b),
	}
}

func sourceQualityFactor(cfg *Config, b *profile.Profile) FactorResult {
	tier := strings.TrimSpace(strings.ToLower(b.SourceQuality))

	var score float64
	var detail string
	switch tier {
	case "verified":
		score, detail = 9, "verified source"
	case "enriched":
		score, detail = 7, "enriched source"
	case "scraped":
		score, detail = 5, "scraped source"
	case "":
		score, detail = sourceQualityNeutral, "source quality unknown"
	default:
		score, detail = sourceQualityNeutral, fmt.Sprintf("unrecognized source tier %q", tier)
	}

	return FactorResult{
		Name:   "source_quality",
		Score:  score,
		Weight: cfg.Context.SourceQuality,
		Detail: detail,
		Method: MethodRule,
	}
}

// domainRelevanceFactor counts lexicon hits across the candidate's text
// fields. Token prefixes are matched so "subscribers" and "co-promotions"
// still count.
func domainRelevanceFactor(cfg *Config, b *profile.Profile) FactorResult {
	var combined strings.Builder
	for _, f := range []string{
		profile.FieldSeeking, profile.FieldOffering, profile.FieldWhoYouServe,
		profile.FieldWhatYouDo, profile.FieldNiche, profile.FieldBio,
	} {
		combined.WriteString(b.Text(f))
		combined.WriteString(" ")
	}
	combined.WriteString(b.ActiveProjects)

	tokens := tokenize(combined.String())

	hits := 0
	for _, term := range domainLexicon {
		for tok := range tokens {
			if strings.HasPrefix(tok, term) {
				hits++
				break
			}
		}
	}

	var score float64
	var detail string
	switch {
	case hits >= 3:
		score, detail = 8.5, fmt.Sprintf("%d partnership-domain terms found", hits)
	case hits >= 1:
		score, detail = 7, fmt.Sprintf("%d partnership-domain terms found", hits)
	case len(tokens) > 0:
		score, detail = 4, "text present but no partnership-domain terms"
	default:
		score, detail = 4, "no text to assess"
	}

	return FactorResult{
		Name:   "domain_relevance",
		Score:  score,
		Weight: cfg.Context.DomainRelevance,
		Detail: detail,
		Method: MethodRule,
	}
}
