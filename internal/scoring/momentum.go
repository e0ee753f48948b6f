package scoring

import (
	"fmt"
	"strings"

	"github.com/venturemesh/partnermatch/internal/profile"
)

// Neutral defaults for missing Momentum data.
const (
	bracketNeutral    = 5.0
	engagementNeutral = 5.0
	projectsNeutral   = 5.0
)

// momentumFactors scores candidate b's recency and scale signals.
func momentumFactors(cfg *Config, b *profile.Profile) []FactorResult {
	return []FactorResult{
		listSizeFactor(cfg, b),
		socialReachFactor(cfg, b),
		engagementFactor(cfg, b),
		activeProjectsFactor(cfg, b),
	}
}

func listSizeFactor(cfg *Config, b *profile.Profile) FactorResult {
	size := b.ListSize
	if size <= 0 {
		return FactorResult{
			Name:   "list_size",
			Score:  bracketNeutral,
			Weight: cfg.Momentum.ListSize,
			Detail: "list size undisclosed",
			Method: MethodRule,
		}
	}

	var score float64
	var bracket string
	switch {
	case size >= 500_000:
		score, bracket = 10, "500k+"
	case size >= 100_000:
		score, bracket = 9, "100k-500k"
	case size >= 25_000:
		score, bracket = 8, "25k-100k"
	case size >= 10_000:
		score, bracket = 6.5, "10k-25k"
	case size >= 1_000:
		score, bracket = 5, "1k-10k"
	default:
		score, bracket = 3, "under 1k"
	}

	return FactorResult{
		Name:   "list_size",
		Score:  score,
		Weight: cfg.Momentum.ListSize,
		Detail: fmt.Sprintf("list size %d in %s bracket", size, bracket),
		Method: MethodRule,
	}
}

func socialReachFactor(cfg *Config, b *profile.Profile) FactorResult {
	reach := b.SocialReach
	if reach <= 0 {
		return FactorResult{
			Name:   "social_reach",
			Score:  bracketNeutral,
			Weight: cfg.Momentum.SocialReach,
			Detail: "social reach undisclosed",
			Method: MethodRule,
		}
	}

	var score float64
	var bracket string
	switch {
	case reach >= 250_000:
		score, bracket = 10, "250k+"
	case reach >= 50_000:
		score, bracket = 8.5, "50k-250k"
	case reach >= 10_000:
		score, bracket = 7, "10k-50k"
	case reach >= 1_000:
		score, bracket = 5.5, "1k-10k"
	default:
		score, bracket = 3.5, "under 1k"
	}

	return FactorResult{
		Name:   "social_reach",
		Score:  score,
		Weight: cfg.Momentum.SocialReach,
		Detail: fmt.Sprintf("social reach %d in %s bracket", reach, bracket),
		Method: MethodRule,
	}
}

// engagementFactor passes the measured engagement score through, clamped to
// the scale. A nil measurement gets the documented mid default.
func engagementFactor(cfg *Config, b *profile.Profile) FactorResult {
	if b.EngagementScore == nil {
		return FactorResult{
			Name:   "engagement",
			Score:  engagementNeutral,
			Weight: cfg.Momentum.Engagement,
			Detail: "engagement unmeasured",
			Method: MethodRule,
		}
	}

	score := *b.EngagementScore
	if score < 0 {
		score = 0
	}
	if score > 10 {
		score = 10
	}

	return FactorResult{
		Name:   "engagement",
		Score:  score,
		Weight: cfg.Momentum.Engagement,
		Detail: fmt.Sprintf("measured engagement %.1f/10", score),
		Method: MethodRule,
	}
}

func activeProjectsFactor(cfg *Config, b *profile.Profile) FactorResult {
	if strings.TrimSpace(b.ActiveProjects) == "" {
		return FactorResult{
			Name:   "active_projects",
			Score:  projectsNeutral,
			Weight: cfg.Momentum.ActiveProjects,
			Detail: "no active projects recorded",
			Method: MethodRule,
		}
	}

	return FactorResult{
		Name:   "active_projects",
		Score:  8,
		Weight: cfg.Momentum.ActiveProjects,
		Detail: "active projects recorded",
		Method: MethodRule,
	}
}
