package embeddings

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/venturemesh/partnermatch/internal/profile"
	"github.com/venturemesh/partnermatch/internal/util"
)

// logTextLimit caps how much profile text lands in warn logs.
const logTextLimit = 80

// Provider produces embedding vectors for text snippets. The scoring engine
// never calls it; batch drivers use it to annotate profiles before scoring,
// and absence of vectors simply degrades similarity to word overlap.
type Provider interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
	Model() string
}

// semanticFields are the profile fields worth embedding for similarity.
var semanticFields = []string{
	profile.FieldSeeking,
	profile.FieldOffering,
	profile.FieldWhoYouServe,
}

// Annotate fills missing embedding vectors on the provided profiles. Failures
// are logged and skipped: a profile without vectors still scores via the
// word-overlap fallback, so annotation must never abort a run.
func Annotate(ctx context.Context, provider Provider, logger *zap.Logger, profiles []*profile.Profile) {
	if provider == nil {
		return
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	for _, p := range profiles {
		var fields []string
		var texts []string
		for _, f := range semanticFields {
			if strings.TrimSpace(p.Text(f)) == "" {
				continue
			}
			if len(p.Embedding(f)) > 0 {
				continue
			}
			fields = append(fields, f)
			texts = append(texts, p.Text(f))
		}
		if len(texts) == 0 {
			continue
		}

		vectors, err := provider.Embed(ctx, texts)
		if err != nil {
			logger.Warn("embedding profile failed; similarity will fall back to word overlap",
				zap.String("profile", p.ID),
				zap.String("first_text", util.TruncateForLog(texts[0], logTextLimit)),
				zap.Error(err),
			)
			continue
		}
		if len(vectors) != len(fields) {
			logger.Warn("embedding provider returned unexpected vector count",
				zap.String("profile", p.ID),
				zap.Int("expected", len(fields)),
				zap.Int("got", len(vectors)),
			)
			continue
		}

		if p.Embeddings == nil {
			p.Embeddings = make(map[string][]float32, len(fields))
		}
		for i, f := range fields {
			p.Embeddings[f] = vectors[i]
		}

		logger.Debug("profile annotated with embeddings",
			zap.String("profile", p.ID),
			zap.Strings("fields", fields),
			zap.String("model", provider.Model()),
		)
	}
}
