package ranking

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"github.com/venturemesh/partnermatch/internal/scoring"
)

func samplePairs() []*scoring.PairScore {
	return []*scoring.PairScore{
		{ProfileA: "prof-a", ProfileB: "prof-b", Percent: 72.0, MatchReason: "offering seeking 9.1/10 (semantic match)"},
		{ProfileA: "prof-a", ProfileB: "prof-c", Percent: 61.5, MatchReason: "list size 8.0/10 (list of 120000)"},
		{ProfileA: "prof-b", ProfileB: "prof-c", Percent: 38.7, MatchReason: "no standout signals; pair ranks on neutral defaults"},
		{ProfileA: "prof-c", ProfileB: "prof-d", Percent: 35.0, MatchReason: ""},
	}
}

func TestRunFullPipeline(t *testing.T) {
	cfg := &Config{MinPercent: 40, TopK: 5}
	deps := Deps{Logger: zap.NewNop()}

	got, err := Run(context.Background(), cfg, deps, DefaultSteps(), samplePairs())
	if err != nil {
		t.Fatalf("running pipeline: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 pairs above 40%%, got %d", len(got))
	}
	if got[0].ProfileB != "prof-b" || got[1].ProfileB != "prof-c" {
		t.Errorf("unexpected survivors: %q, %q", got[0].ProfileB, got[1].ProfileB)
	}
}

func TestMinPercentValidation(t *testing.T) {
	cfg := &Config{MinPercent: 140}

	_, err := Run(context.Background(), cfg, Deps{}, []Filter{NewMinPercent()}, samplePairs())
	if err == nil {
		t.Fatal("expected an error for an out-of-range threshold")
	}
}

func TestTopKKeepsHighest(t *testing.T) {
	cfg := &Config{TopK: 1}

	got, err := Run(context.Background(), cfg, Deps{}, []Filter{NewTopK()}, samplePairs())
	if err != nil {
		t.Fatalf("running top_k: %v", err)
	}
	if len(got) != 1 || got[0].Percent != 72.0 {
		t.Fatalf("expected only the highest pair, got %d entries", len(got))
	}
}

func TestTopKZeroMeansUnlimited(t *testing.T) {
	got, err := Run(context.Background(), &Config{}, Deps{}, []Filter{NewTopK()}, samplePairs())
	if err != nil {
		t.Fatalf("running top_k: %v", err)
	}
	if len(got) != 4 {
		t.Errorf("expected all pairs with no limit, got %d", len(got))
	}
}

func TestExcludeProfilesDropsBothSides(t *testing.T) {
	cfg := &Config{ExcludeProfiles: []string{"prof-c"}}

	got, err := Run(context.Background(), cfg, Deps{}, []Filter{NewExcludeProfiles()}, samplePairs())
	if err != nil {
		t.Fatalf("running exclude_profiles: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 pair left after excluding prof-c, got %d", len(got))
	}
	if got[0].ProfileA != "prof-a" || got[0].ProfileB != "prof-b" {
		t.Errorf("unexpected survivor %s/%s", got[0].ProfileA, got[0].ProfileB)
	}
}

func TestRequireReasonDropsNeutralPairs(t *testing.T) {
	cfg := &Config{RequireReason: true}

	got, err := Run(context.Background(), cfg, Deps{}, []Filter{NewRequireReason()}, samplePairs())
	if err != nil {
		t.Fatalf("running require_reason: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected neutral pairs dropped, got %d left", len(got))
	}
	for _, s := range got {
		if scoring.IsNeutralReason(s.MatchReason) {
			t.Errorf("neutral pair %s/%s survived", s.ProfileA, s.ProfileB)
		}
	}
}

func TestDisableByName(t *testing.T) {
	steps := DefaultSteps()
	DisableByName(steps, "require_reason", "skip requested via flag")

	cfg := &Config{RequireReason: true}
	got, err := Run(context.Background(), cfg, Deps{Logger: zap.NewNop()}, steps, samplePairs())
	if err != nil {
		t.Fatalf("running pipeline: %v", err)
	}
	if len(got) != 4 {
		t.Errorf("expected the disabled step to pass everything through, got %d", len(got))
	}
}

func TestDescribeReportsStatus(t *testing.T) {
	steps := DefaultSteps()
	DisableByName(steps, "require_reason", "skip requested via flag")

	statuses := Describe(steps)
	if len(statuses) != len(steps) {
		t.Fatalf("expected %d statuses, got %d", len(steps), len(statuses))
	}

	byName := map[string]Status{}
	for _, s := range statuses {
		byName[s.Name] = s
	}
	if byName["require_reason"].Enabled {
		t.Error("expected require_reason to report disabled")
	}
	if byName["require_reason"].Reason != "skip requested via flag" {
		t.Errorf("unexpected disable reason %q", byName["require_reason"].Reason)
	}
	if !byName["min_percent"].Enabled {
		t.Error("expected min_percent to report enabled")
	}
}
