package ranking

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/venturemesh/partnermatch/internal/scoring"
)

type minPercentFilter struct {
	threshold float64
}

// NewMinPercent creates a step that drops pairs below a final percent threshold.
func NewMinPercent() Filter {
	return &minPercentFilter{}
}

func (f *minPercentFilter) Name() string { return "min_percent" }

func (f *minPercentFilter) Disable(string) {}

func (f *minPercentFilter) IsEnabled() bool { return true }

func (f *minPercentFilter) Validate(cfg *Config) error {
	f.threshold = 0
	if cfg != nil {
		f.threshold = cfg.MinPercent
	}
	if f.threshold < 0 || f.threshold > 100 {
		return fmt.Errorf("min percent must be within [0, 100], got %.2f", f.threshold)
	}
	return nil
}

func (f *minPercentFilter) Apply(_ context.Context, deps Deps, scores []*scoring.PairScore) ([]*scoring.PairScore, Step, error) {
	initial := len(scores)
	if f.threshold <= 0 {
		return scores, Step{Initial: initial, Dropped: 0, Left: initial}, nil
	}

	kept := make([]*scoring.PairScore, 0, initial)
	dropped := make([]string, 0)
	for _, s := range scores {
		if s.Percent < f.threshold {
			dropped = append(dropped, s.ProfileA+"/"+s.ProfileB)
			continue
		}
		kept = append(kept, s)
	}

	if deps.Logger != nil && len(dropped) > 0 {
		deps.Logger.Info("dropping pairs below the percent threshold",
			zap.Float64("threshold", f.threshold),
			zap.Strings("dropped_pairs", dropped),
			zap.Int("pairs_left", len(kept)),
		)
	}

	return kept, Step{Initial: initial, Dropped: len(dropped), Left: len(kept)}, nil
}

func (f *minPercentFilter) Status() Status {
	return Status{
		Name:    f.Name(),
		Enabled: true,
		Details: map[string]string{"threshold": fmt.Sprintf("%.2f", f.threshold)},
	}
}

type topKFilter struct {
	limit int
}

// NewTopK creates a step that keeps only the highest scored pairs. Run expects
// its input already ordered by percent descending, as the batch runner returns.
func NewTopK() Filter {
	return &topKFilter{}
}

func (f *topKFilter) Name() string { return "top_k" }

func (f *topKFilter) Disable(string) {}

func (f *topKFilter) IsEnabled() bool { return true }

func (f *topKFilter) Validate(cfg *Config) error {
	f.limit = 0
	if cfg != nil {
		f.limit = cfg.TopK
	}
	if f.limit < 0 {
		return fmt.Errorf("top k must not be negative, got %d", f.limit)
	}
	return nil
}

func (f *topKFilter) Apply(_ context.Context, deps Deps, scores []*scoring.PairScore) ([]*scoring.PairScore, Step, error) {
	initial := len(scores)
	if f.limit == 0 || initial <= f.limit {
		return scores, Step{Initial: initial, Dropped: 0, Left: initial}, nil
	}

	kept := scores[:f.limit]
	if deps.Logger != nil {
		deps.Logger.Info("keeping only the top scored pairs",
			zap.Int("limit", f.limit),
			zap.Int("pairs_left", len(kept)),
		)
	}

	return kept, Step{Initial: initial, Dropped: initial - len(kept), Left: len(kept)}, nil
}

func (f *topKFilter) Status() Status {
	return Status{
		Name:    f.Name(),
		Enabled: true,
		Details: map[string]string{"limit": strconv.Itoa(f.limit)},
	}
}

type excludeProfilesFilter struct {
	ids map[string]struct{}
}

// NewExcludeProfiles creates a step that removes pairs involving the configured profile ids.
func NewExcludeProfiles() Filter {
	return &excludeProfilesFilter{}
}

func (f *excludeProfilesFilter) Name() string { return "exclude_profiles" }

func (f *excludeProfilesFilter) Disable(string) {}

func (f *excludeProfilesFilter) IsEnabled() bool { return true }

func (f *excludeProfilesFilter) Validate(cfg *Config) error {
	f.ids = make(map[string]struct{})
	if cfg == nil {
		return nil
	}
	for _, id := range cfg.ExcludeProfiles {
		id = strings.TrimSpace(id)
		if id != "" {
			f.ids[id] = struct{}{}
		}
	}
	return nil
}

func (f *excludeProfilesFilter) Apply(_ context.Context, deps Deps, scores []*scoring.PairScore) ([]*scoring.PairScore, Step, error) {
	initial := len(scores)
	if len(f.ids) == 0 {
		return scores, Step{Initial: initial, Dropped: 0, Left: initial}, nil
	}

	kept := make([]*scoring.PairScore, 0, initial)
	dropped := make([]string, 0)
	for _, s := range scores {
		if _, ok := f.ids[s.ProfileA]; ok {
			dropped = append(dropped, s.ProfileA+"/"+s.ProfileB)
			continue
		}
		if _, ok := f.ids[s.ProfileB]; ok {
			dropped = append(dropped, s.ProfileA+"/"+s.ProfileB)
			continue
		}
		kept = append(kept, s)
	}

	if deps.Logger != nil && len(dropped) > 0 {
		deps.Logger.Info("excluding pairs by profile id",
			zap.Strings("dropped_pairs", dropped),
			zap.Int("pairs_left", len(kept)),
		)
	}

	return kept, Step{Initial: initial, Dropped: len(dropped), Left: len(kept)}, nil
}

func (f *excludeProfilesFilter) Status() Status {
	details := map[string]string{}
	if len(f.ids) > 0 {
		ids := make([]string, 0, len(f.ids))
		for id := range f.ids {
			ids = append(ids, id)
		}
		details["profiles"] = strings.Join(ids, ",")
	}
	return Status{Name: f.Name(), Enabled: true, Details: details}
}

type requireReasonFilter struct {
	disabled bool
	reason   string
	required bool
}

// NewRequireReason creates a step that drops pairs ranking purely on neutral
// defaults, keeping only pairs with at least one standout signal.
func NewRequireReason() Filter {
	return &requireReasonFilter{}
}

func (f *requireReasonFilter) Name() string { return "require_reason" }

func (f *requireReasonFilter) Disable(reason string) {
	f.disabled = true
	f.reason = reason
}

func (f *requireReasonFilter) IsEnabled() bool { return !f.disabled }

func (f *requireReasonFilter) Validate(cfg *Config) error {
	f.required = cfg != nil && cfg.RequireReason
	return nil
}

func (f *requireReasonFilter) Apply(_ context.Context, deps Deps, scores []*scoring.PairScore) ([]*scoring.PairScore, Step, error) {
	initial := len(scores)
	if !f.required {
		return scores, Step{Initial: initial, Dropped: 0, Left: initial}, nil
	}

	kept := make([]*scoring.PairScore, 0, initial)
	for _, s := range scores {
		if scoring.IsNeutralReason(s.MatchReason) {
			continue
		}
		kept = append(kept, s)
	}

	if deps.Logger != nil && len(kept) < initial {
		deps.Logger.Info("dropping pairs without standout signals",
			zap.Int("dropped", initial-len(kept)),
			zap.Int("pairs_left", len(kept)),
		)
	}

	return kept, Step{Initial: initial, Dropped: initial - len(kept), Left: len(kept)}, nil
}

func (f *requireReasonFilter) Status() Status {
	return Status{
		Name:    f.Name(),
		Enabled: f.IsEnabled(),
		Reason:  f.reason,
		Details: map[string]string{"required": strconv.FormatBool(f.required)},
	}
}

// DefaultSteps returns the ranking pipeline in its standard order.
func DefaultSteps() []Filter {
	return []Filter{
		NewExcludeProfiles(),
		NewMinPercent(),
		NewRequireReason(),
		NewTopK(),
	}
}
