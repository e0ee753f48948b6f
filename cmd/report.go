package cmd

import (
	"context"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/venturemesh/partnermatch/internal/scoring"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Analyze stored pair scores for scoring bottlenecks",
	Run: func(cmd *cobra.Command, _ []string) {
		runReport(cmd)
	},
}

func init() {
	rootCmd.AddCommand(reportCmd)

	reportCmd.Flags().IntP("limit", "l", 0, "analyze only the top scored pairs (0 means all)")
}

func runReport(cmd *cobra.Command) {
	ctx := context.Background()

	logger := newLogger()

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	s, err := openStore(ctx, config, logger)
	if err != nil {
		logger.Fatal("opening the store", zap.Error(err))
	}
	defer s.Close()

	limit, _ := strconv.Atoi(cmd.Flag("limit").Value.String())
	scores, err := s.ListPairScores(ctx, limit)
	if err != nil {
		logger.Fatal("listing pair scores", zap.Error(err))
	}

	if len(scores) == 0 {
		logger.Info("exiting", zap.String("reason", "no pair scores stored yet"))
		return
	}

	report := scoring.Analyze(scores)
	logger.Info("analyzed stored pair scores",
		zap.Int("pairs", report.Pairs),
		zap.Float64("fallback_share", report.FallbackShare),
	)

	printJSON(logger, report)
}
