package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/venturemesh/partnermatch/internal/profile"
	"github.com/venturemesh/partnermatch/internal/scoring"
)

const (
	PromptShowBreakdown = "Show full breakdown"
	PromptSaveToStore   = "Save to store"
	PromptDumpToFile    = "Dump score to file"
	PromptExit          = "Exit"

	scoreDumpFile = "pair-score.json"
)

var errExit = errors.New("exit requested")

var scorePrompt = promptui.Select{
	Label: "What next?",
	Items: []string{PromptShowBreakdown, PromptSaveToStore, PromptDumpToFile, PromptExit},
}

var scoreCmd = &cobra.Command{
	Use:   "score [profile-id-a] [profile-id-b]",
	Short: "Score one pair of profiles and explain the result",
	Args:  cobra.MaximumNArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		score(cmd, args)
	},
}

func init() {
	rootCmd.AddCommand(scoreCmd)

	scoreCmd.Flags().BoolP("non-interactive", "n", false, "print the score as json and exit without prompting")
}

func score(cmd *cobra.Command, args []string) {
	ctx := context.Background()

	logger := newLogger()

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}
	if config == nil || config.Profiles == "" {
		logger.Fatal("a profiles file is required under the 'profiles' key")
	}

	logger.Info("starting the partnermatch scorer", zap.String("version", version))

	profiles, err := loadProfiles(ctx, config, logger)
	if err != nil {
		logger.Fatal("loading profiles", zap.Error(err))
	}
	if len(profiles) < 2 {
		logger.Fatal("at least two profiles are required", zap.Int("count", len(profiles)))
	}

	a, b, err := selectPair(profiles, args)
	if err != nil {
		logger.Fatal("selecting the pair", zap.Error(err))
	}

	engine, err := newEngine(config, logger)
	if err != nil {
		logger.Fatal("building the scoring engine", zap.Error(err))
	}

	result, err := engine.ScorePair(a, b, loadOutcomes(config, logger))
	if err != nil {
		var malformed *profile.MalformedProfileError
		if errors.As(err, &malformed) {
			logger.Fatal("profile is missing an identity field",
				zap.String("field", malformed.Field),
			)
		}
		logger.Fatal("scoring the pair", zap.Error(err))
	}

	logger.Info("pair scored",
		zap.String("profile_a", result.ProfileA),
		zap.String("profile_b", result.ProfileB),
		zap.Float64("percent", result.Percent),
		zap.String("reason", result.MatchReason),
	)

	if cmd.Flag("non-interactive").Value.String() == "true" {
		printJSON(logger, result)
		return
	}

	for {
		_, action, err := scorePrompt.Run()
		if err != nil {
			logger.Fatal("exiting", zap.Error(err))
		}

		if err := handleScoreAction(ctx, action, config, logger, result); err != nil {
			if errors.Is(err, errExit) {
				return
			}
			logger.Fatal("exiting", zap.Error(err))
		}
	}
}

func handleScoreAction(ctx context.Context, action string, config *Config, logger *zap.Logger, result *scoring.PairScore) error {
	switch action {
	case PromptShowBreakdown:
		printJSON(logger, result)
		return nil
	case PromptSaveToStore:
		s, err := openStore(ctx, config, logger)
		if err != nil {
			return err
		}
		defer s.Close()

		if err := s.UpsertPairScore(ctx, result); err != nil {
			return err
		}
		logger.Info("pair score saved",
			zap.String("profile_a", result.ProfileA),
			zap.String("profile_b", result.ProfileB),
		)
		return nil
	case PromptDumpToFile:
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return err
		}
		if err := os.WriteFile(scoreDumpFile, data, 0o644); err != nil {
			return err
		}
		logger.Info("pair score dumped", zap.String("path", scoreDumpFile))
		return nil
	case PromptExit:
		logger.Info("exiting", zap.String("reason", "got exit from prompt"))
		return errExit
	default:
		return fmt.Errorf("unknown action: %s", action)
	}
}

// selectPair resolves the two profiles either from args or interactively.
func selectPair(profiles []*profile.Profile, args []string) (*profile.Profile, *profile.Profile, error) {
	byID := make(map[string]*profile.Profile, len(profiles))
	labels := make([]string, 0, len(profiles))
	for _, p := range profiles {
		byID[p.ID] = p
		labels = append(labels, p.ID+" "+p.DisplayName())
	}

	pick := func(position string, exclude string) (*profile.Profile, error) {
		items := make([]string, 0, len(labels))
		for _, l := range labels {
			if exclude != "" && l == exclude {
				continue
			}
			items = append(items, l)
		}

		prompt := promptui.Select{Label: "Select " + position + " profile", Items: items, Size: 10}
		_, selected, err := prompt.Run()
		if err != nil {
			return nil, err
		}

		id := selected
		for i, r := range selected {
			if r == ' ' {
				id = selected[:i]
				break
			}
		}
		return byID[id], nil
	}

	var a, b *profile.Profile
	if len(args) > 0 {
		a = byID[args[0]]
		if a == nil {
			return nil, nil, fmt.Errorf("there is no such profile id %s", args[0])
		}
	}
	if len(args) > 1 {
		b = byID[args[1]]
		if b == nil {
			return nil, nil, fmt.Errorf("there is no such profile id %s", args[1])
		}
	}

	var err error
	if a == nil {
		if a, err = pick("first", ""); err != nil {
			return nil, nil, err
		}
	}
	if b == nil {
		if b, err = pick("second", a.ID+" "+a.DisplayName()); err != nil {
			return nil, nil, err
		}
	}

	if a.ID == b.ID {
		return nil, nil, fmt.Errorf("cannot score a profile against itself: %s", a.ID)
	}

	return a, b, nil
}

func printJSON(logger *zap.Logger, v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		logger.Fatal("encoding output", zap.Error(err))
	}
	fmt.Println(string(data))
}
