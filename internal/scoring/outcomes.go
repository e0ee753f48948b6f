package scoring

import (
	"encoding/json"
	"fmt"
	"os"
)

// OutcomeStats are historical-outcome aggregates for one profile, supplied by
// the learning-signal collaborator. The engine treats them as optional
// context: scoring never requires them.
type OutcomeStats struct {
	Outreach        int `json:"outreach"`
	PositiveReplies int `json:"positive_replies"`
	DealsCompleted  int `json:"deals_completed"`
}

// OutcomeSet maps profile ids to their outcome aggregates. A nil set is valid.
type OutcomeSet map[string]*OutcomeStats

// LoadOutcomes reads an outcome set from a JSON file mapping profile ids to
// their aggregates.
func LoadOutcomes(path string) (OutcomeSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading outcomes file: %w", err)
	}

	var outcomes OutcomeSet
	if err := json.Unmarshal(data, &outcomes); err != nil {
		return nil, fmt.Errorf("parsing outcomes file %q: %w", path, err)
	}

	return outcomes, nil
}

// forProfile returns the stats for the given id, or nil.
func (s OutcomeSet) forProfile(id string) *OutcomeStats {
	if s == nil {
		return nil
	}
	return s[id]
}

// replyRate returns the positive-reply fraction, or -1 when no outreach has
// been recorded yet.
func (o *OutcomeStats) replyRate() float64 {
	if o == nil || o.Outreach <= 0 {
		return -1
	}
	rate := float64(o.PositiveReplies) / float64(o.Outreach)
	if rate > 1 {
		rate = 1
	}
	return rate
}
