package embeddings

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/venturemesh/partnermatch/internal/profile"
)

type stubProvider struct {
	vectors [][]float32
	err     error
	calls   int
	lastIn  []string
}

func (s *stubProvider) Embed(_ context.Context, texts []string) ([][]float32, error) {
	s.calls++
	s.lastIn = texts
	if s.err != nil {
		return nil, s.err
	}
	if s.vectors != nil {
		return s.vectors, nil
	}
	out := make([][]float32, len(texts))
	for i := range texts {
		out[i] = []float32{1, 0, 0}
	}
	return out, nil
}

func (s *stubProvider) Model() string { return "stub-model" }

func TestAnnotateFillsMissingVectors(t *testing.T) {
	t.Parallel()

	stub := &stubProvider{}
	p := &profile.Profile{
		ID:       "prof-1",
		Seeking:  "email list partners",
		Offering: "newsletter swaps",
	}

	Annotate(context.Background(), stub, zap.NewNop(), []*profile.Profile{p})

	if stub.calls != 1 {
		t.Fatalf("expected 1 provider call, got %d", stub.calls)
	}
	if len(p.Embedding(profile.FieldSeeking)) == 0 {
		t.Fatal("expected seeking embedding to be filled")
	}
	if len(p.Embedding(profile.FieldOffering)) == 0 {
		t.Fatal("expected offering embedding to be filled")
	}
	if len(p.Embedding(profile.FieldWhoYouServe)) != 0 {
		t.Fatal("empty field must not be embedded")
	}
}

func TestAnnotateSkipsExistingVectors(t *testing.T) {
	t.Parallel()

	stub := &stubProvider{}
	p := &profile.Profile{
		ID:      "prof-1",
		Seeking: "email list partners",
		Embeddings: map[string][]float32{
			profile.FieldSeeking: {0.5, 0.5},
		},
	}

	Annotate(context.Background(), stub, nil, []*profile.Profile{p})

	if stub.calls != 0 {
		t.Fatalf("expected no provider calls, got %d", stub.calls)
	}
	if got := p.Embedding(profile.FieldSeeking); len(got) != 2 {
		t.Fatalf("existing embedding must be preserved, got %v", got)
	}
}

func TestAnnotateToleratesProviderFailure(t *testing.T) {
	t.Parallel()

	stub := &stubProvider{err: errors.New("quota exceeded")}
	p := &profile.Profile{ID: "prof-1", Seeking: "email list partners"}

	// Must not panic or mutate the profile on failure.
	Annotate(context.Background(), stub, zap.NewNop(), []*profile.Profile{p})

	if len(p.Embeddings) != 0 {
		t.Fatalf("failed annotation must leave embeddings empty, got %v", p.Embeddings)
	}
}

func TestAnnotateNilProvider(t *testing.T) {
	t.Parallel()

	p := &profile.Profile{ID: "prof-1", Seeking: "x y z"}
	Annotate(context.Background(), nil, nil, []*profile.Profile{p})

	if len(p.Embeddings) != 0 {
		t.Fatal("nil provider must be a no-op")
	}
}
