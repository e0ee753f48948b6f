package batch

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/venturemesh/partnermatch/internal/profile"
	"github.com/venturemesh/partnermatch/internal/scoring"
	"github.com/venturemesh/partnermatch/internal/util"
)

const (
	defaultConcurrency = 8

	// chunkSize is how many pairs are submitted between optional pauses.
	chunkSize = 64
)

// Sink receives scored pairs as they complete. *store.Store satisfies it.
type Sink interface {
	UpsertPairScore(ctx context.Context, score *scoring.PairScore) error
}

// Summary reports the outcome of a batch run.
type Summary struct {
	Pairs     int `json:"pairs"`
	Processed int `json:"processed"`
	Failed    int `json:"failed"`
}

// Runner scores every unordered pair of a profile set with a bounded
// number of concurrent workers.
type Runner struct {
	engine      *scoring.Engine
	sink        Sink
	concurrency int
	pause       time.Duration
	logger      *zap.Logger
}

func NewRunner(engine *scoring.Engine, sink Sink, concurrency int, logger *zap.Logger) *Runner {
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Runner{
		engine:      engine,
		sink:        sink,
		concurrency: concurrency,
		logger:      logger,
	}
}

// WithPause makes the runner wait between submission chunks, giving the sink
// room to breathe on large pools.
func (r *Runner) WithPause(d time.Duration) *Runner {
	r.pause = d
	return r
}

type pairJob struct {
	a, b *profile.Profile
}

// Run scores all pairs and returns the successful scores ordered by percent
// descending. A failed pair is logged and counted, never aborts the run.
func (r *Runner) Run(ctx context.Context, profiles []*profile.Profile, outcomes scoring.OutcomeSet) ([]*scoring.PairScore, Summary, error) {
	jobs := make([]pairJob, 0, len(profiles)*(len(profiles)-1)/2)
	for i := 0; i < len(profiles); i++ {
		for j := i + 1; j < len(profiles); j++ {
			jobs = append(jobs, pairJob{a: profiles[i], b: profiles[j]})
		}
	}

	summary := Summary{Pairs: len(jobs)}
	if len(jobs) == 0 {
		return nil, summary, nil
	}

	var (
		mu     sync.Mutex
		wg     sync.WaitGroup
		scores = make([]*scoring.PairScore, 0, len(jobs))
	)
	sem := make(chan struct{}, r.concurrency)

	for i, job := range jobs {
		if err := ctx.Err(); err != nil {
			break
		}
		if r.pause > 0 && i > 0 && i%chunkSize == 0 {
			if err := util.WaitFor(ctx, r.pause); err != nil {
				break
			}
		}

		wg.Add(1)
		sem <- struct{}{}
		go func(job pairJob) {
			defer wg.Done()
			defer func() { <-sem }()

			score, err := r.scorePair(ctx, job, outcomes)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				summary.Failed++
				r.logger.Warn("pair scoring failed",
					zap.String("profile_a", job.a.ID),
					zap.String("profile_b", job.b.ID),
					zap.Error(err),
				)
				return
			}
			summary.Processed++
			scores = append(scores, score)
		}(job)
	}
	wg.Wait()

	sort.Slice(scores, func(i, j int) bool {
		if scores[i].Percent != scores[j].Percent {
			return scores[i].Percent > scores[j].Percent
		}
		if scores[i].ProfileA != scores[j].ProfileA {
			return scores[i].ProfileA < scores[j].ProfileA
		}
		return scores[i].ProfileB < scores[j].ProfileB
	})

	r.logger.Info("batch run complete",
		zap.Int("pairs", summary.Pairs),
		zap.Int("processed", summary.Processed),
		zap.Int("failed", summary.Failed),
	)

	return scores, summary, ctx.Err()
}

func (r *Runner) scorePair(ctx context.Context, job pairJob, outcomes scoring.OutcomeSet) (score *scoring.PairScore, err error) {
	// A panicking scorer must not take down the whole batch.
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("scoring panicked: %v", rec)
		}
	}()

	score, err = r.engine.ScorePair(job.a, job.b, outcomes)
	if err != nil {
		return nil, err
	}

	if r.sink != nil {
		if err := r.sink.UpsertPairScore(ctx, score); err != nil {
			return nil, fmt.Errorf("persisting pair score: %w", err)
		}
	}

	return score, nil
}
