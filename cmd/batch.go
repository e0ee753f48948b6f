package cmd

import (
	"context"
	"encoding/json"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/venturemesh/partnermatch/internal/batch"
	"github.com/venturemesh/partnermatch/internal/ranking"
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Score every pair of the profile set and persist the results",
	Run: func(cmd *cobra.Command, _ []string) {
		runBatch(cmd)
	},
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntP("concurrency", "c", 0, "number of concurrent scoring workers")
	batchCmd.Flags().Duration("pause", 0, "pause between submission chunks")
	batchCmd.Flags().StringP("out", "o", "", "dump the ranked pairs to a json file")
	batchCmd.Flags().Bool("skip-reason-filter", false, "keep pairs that rank purely on neutral defaults")
}

func runBatch(cmd *cobra.Command) {
	ctx := context.Background()

	logger := newLogger()

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}
	if config == nil || config.Profiles == "" {
		logger.Fatal("a profiles file is required under the 'profiles' key")
	}

	logger.Info("starting the partnermatch batch run", zap.String("version", version))

	profiles, err := loadProfiles(ctx, config, logger)
	if err != nil {
		logger.Fatal("loading profiles", zap.Error(err))
	}
	logger.Info("loaded profiles", zap.Int("count", len(profiles)))

	engine, err := newEngine(config, logger)
	if err != nil {
		logger.Fatal("building the scoring engine", zap.Error(err))
	}

	s, err := openStore(ctx, config, logger)
	if err != nil {
		logger.Fatal("opening the store", zap.Error(err))
	}
	defer s.Close()

	if err := s.SaveProfiles(ctx, profiles); err != nil {
		logger.Fatal("saving profiles", zap.Error(err))
	}

	concurrency, _ := strconv.Atoi(cmd.Flag("concurrency").Value.String())
	runner := batch.NewRunner(engine, s, concurrency, logger)
	if pause, err := time.ParseDuration(cmd.Flag("pause").Value.String()); err == nil && pause > 0 {
		runner.WithPause(pause)
	}

	scores, summary, err := runner.Run(ctx, profiles, loadOutcomes(config, logger))
	if err != nil {
		logger.Fatal("batch run failed", zap.Error(err))
	}
	if summary.Failed > 0 {
		logger.Warn("some pairs failed to score", zap.Int("failed", summary.Failed))
	}

	steps := ranking.DefaultSteps()
	if cmd.Flag("skip-reason-filter").Value.String() == "true" {
		ranking.DisableByName(steps, "require_reason", "skip requested via flag")
	}

	ranked, err := ranking.Run(ctx, rankingConfig(config), ranking.Deps{Logger: logger}, steps, scores)
	if err != nil {
		logger.Fatal("ranking failed", zap.Error(err))
	}

	for _, pair := range ranked {
		logger.Info("ranked pair",
			zap.String("profile_a", pair.ProfileA),
			zap.String("profile_b", pair.ProfileB),
			zap.Float64("percent", pair.Percent),
			zap.String("reason", pair.MatchReason),
		)
	}

	if out := cmd.Flag("out").Value.String(); out != "" {
		data, err := json.MarshalIndent(ranked, "", "  ")
		if err != nil {
			logger.Fatal("encoding ranked pairs", zap.Error(err))
		}
		if err := os.WriteFile(out, data, 0o644); err != nil {
			logger.Fatal("writing ranked pairs", zap.Error(err))
		}
		logger.Info("ranked pairs dumped", zap.String("path", out))
	}

	logger.Info("batch finished",
		zap.Int("pairs", summary.Pairs),
		zap.Int("processed", summary.Processed),
		zap.Int("failed", summary.Failed),
		zap.Int("ranked", len(ranked)),
	)
}
