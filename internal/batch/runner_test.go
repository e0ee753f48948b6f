package batch

import (
	"context"
	"sync"
	"testing"

	"go.uber.org/zap"

	"github.com/venturemesh/partnermatch/internal/profile"
	"github.com/venturemesh/partnermatch/internal/scoring"
)

type recordingSink struct {
	mu     sync.Mutex
	scores []*scoring.PairScore
	fail   bool
}

func (s *recordingSink) UpsertPairScore(_ context.Context, score *scoring.PairScore) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail {
		return context.DeadlineExceeded
	}
	s.scores = append(s.scores, score)
	return nil
}

func newTestEngine(t *testing.T) *scoring.Engine {
	t.Helper()

	engine, err := scoring.New(nil, zap.NewNop())
	if err != nil {
		t.Fatalf("building engine: %v", err)
	}
	return engine
}

func testProfiles(n int) []*profile.Profile {
	profiles := make([]*profile.Profile, 0, n)
	names := []string{"Alpha", "Beta", "Gamma", "Delta", "Epsilon", "Zeta"}
	for i := 0; i < n; i++ {
		profiles = append(profiles, &profile.Profile{
			ID:      "prof-" + names[i%len(names)],
			Name:    names[i%len(names)],
			Seeking: "affiliate partners for course launch",
			Offering: "newsletter promotion slots",
			ListSize: int64(10000 * (i + 1)),
		})
	}
	return profiles
}

func TestRunScoresAllPairs(t *testing.T) {
	sink := &recordingSink{}
	runner := NewRunner(newTestEngine(t), sink, 3, zap.NewNop())

	profiles := testProfiles(4)
	scores, summary, err := runner.Run(context.Background(), profiles, nil)
	if err != nil {
		t.Fatalf("running batch: %v", err)
	}

	wantPairs := 6 // C(4,2)
	if summary.Pairs != wantPairs || summary.Processed != wantPairs || summary.Failed != 0 {
		t.Errorf("expected %d/%d/0, got %+v", wantPairs, wantPairs, summary)
	}
	if len(scores) != wantPairs {
		t.Fatalf("expected %d scores, got %d", wantPairs, len(scores))
	}
	if len(sink.scores) != wantPairs {
		t.Errorf("expected sink to receive %d scores, got %d", wantPairs, len(sink.scores))
	}

	for i := 1; i < len(scores); i++ {
		if scores[i].Percent > scores[i-1].Percent {
			t.Errorf("expected descending percent order at index %d: %.2f > %.2f", i, scores[i].Percent, scores[i-1].Percent)
		}
	}
}

func TestRunIsolatesFailures(t *testing.T) {
	runner := NewRunner(newTestEngine(t), nil, 2, zap.NewNop())

	profiles := testProfiles(3)
	profiles[1] = &profile.Profile{Name: "broken"} // missing id fails validation

	scores, summary, err := runner.Run(context.Background(), profiles, nil)
	if err != nil {
		t.Fatalf("running batch: %v", err)
	}
	if summary.Failed != 2 {
		t.Errorf("expected 2 failed pairs involving the broken profile, got %d", summary.Failed)
	}
	if summary.Processed != 1 || len(scores) != 1 {
		t.Errorf("expected the healthy pair to survive, got %+v with %d scores", summary, len(scores))
	}
}

func TestRunCountsSinkErrors(t *testing.T) {
	sink := &recordingSink{fail: true}
	runner := NewRunner(newTestEngine(t), sink, 2, zap.NewNop())

	_, summary, err := runner.Run(context.Background(), testProfiles(3), nil)
	if err != nil {
		t.Fatalf("running batch: %v", err)
	}
	if summary.Failed != summary.Pairs {
		t.Errorf("expected every pair to fail at the sink, got %+v", summary)
	}
}

func TestRunEmptyInput(t *testing.T) {
	runner := NewRunner(newTestEngine(t), nil, 0, nil)

	scores, summary, err := runner.Run(context.Background(), nil, nil)
	if err != nil {
		t.Fatalf("running empty batch: %v", err)
	}
	if summary.Pairs != 0 || len(scores) != 0 {
		t.Errorf("expected an empty run, got %+v with %d scores", summary, len(scores))
	}
}

func TestRunHonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	runner := NewRunner(newTestEngine(t), nil, 2, zap.NewNop())
	_, summary, err := runner.Run(ctx, testProfiles(5), nil)
	if err == nil {
		t.Fatal("expected a context error from a cancelled run")
	}
	if summary.Processed == summary.Pairs {
		t.Errorf("expected the cancelled run to stop early, got %+v", summary)
	}
}
