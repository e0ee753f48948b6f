package cmd

import (
	"context"
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/venturemesh/partnermatch/internal/embeddings"
	"github.com/venturemesh/partnermatch/internal/logger"
	"github.com/venturemesh/partnermatch/internal/profile"
	"github.com/venturemesh/partnermatch/internal/ranking"
	"github.com/venturemesh/partnermatch/internal/scoring"
	"github.com/venturemesh/partnermatch/internal/secrets"
	"github.com/venturemesh/partnermatch/internal/store"
)

const (
	app = "partnermatch"
)

type Config struct {
	Profiles string          `mapstructure:"profiles"`
	Outcomes string          `mapstructure:"outcomes"`
	Scoring  *scoring.Config `mapstructure:"scoring"`
	Gemini   *GeminiConfig   `mapstructure:"gemini"`
	Store    *StoreConfig    `mapstructure:"store"`
	Ranking  *RankingConfig  `mapstructure:"ranking"`
}

type GeminiConfig struct {
	Enabled    bool   `mapstructure:"enabled"`
	APIKey     string `mapstructure:"api-key"`
	APIKeyFile string `mapstructure:"api-key-file"`
	Model      string `mapstructure:"model"`
}

type StoreConfig struct {
	Path string `mapstructure:"path"`
}

type RankingConfig struct {
	MinPercent      float64  `mapstructure:"min-percent"`
	TopK            int      `mapstructure:"top-k"`
	ExcludeProfiles []string `mapstructure:"exclude-profiles"`
	RequireReason   bool     `mapstructure:"require-reason"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "partnermatch is a cli for scoring partnership compatibility between creator profiles",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	if err := viper.BindEnv("gemini.api-key", "GEMINI_API_KEY"); err != nil {
		log.Fatalf("binding GEMINI_API_KEY environment variable: %v", err)
	}

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is partnermatch.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func initConfig() {
	// Config needed only for commands that load data. Skip otherwise.
	if scoreCmd.CalledAs() == "" && batchCmd.CalledAs() == "" && reportCmd.CalledAs() == "" {
		return
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app + ".yaml")
	}

	// We can't proceed if the config file parsed with error.
	if err := viper.ReadInConfig(); err != nil {
		log.Fatal(err)
	}
}

func getConfig() (*Config, error) {
	var config *Config
	err := viper.Unmarshal(&config)
	if err != nil {
		return config, err
	}

	return config, nil
}

func newLogger() *zap.Logger {
	l, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}
	return l
}

func newEngine(config *Config, l *zap.Logger) (*scoring.Engine, error) {
	var cfg *scoring.Config
	if config != nil {
		cfg = config.Scoring
	}
	return scoring.New(cfg, l)
}

// loadProfiles reads the configured profile file and, when a Gemini key is
// available, annotates the semantic fields with embeddings. Missing
// embeddings are never fatal; scoring falls back to word overlap.
func loadProfiles(ctx context.Context, config *Config, l *zap.Logger) ([]*profile.Profile, error) {
	profiles, err := profile.LoadFile(config.Profiles)
	if err != nil {
		return nil, err
	}

	provider := newEmbeddingsProvider(ctx, config, l)
	embeddings.Annotate(ctx, provider, l, profiles)

	return profiles, nil
}

func newEmbeddingsProvider(ctx context.Context, config *Config, l *zap.Logger) embeddings.Provider {
	if config.Gemini == nil || !config.Gemini.Enabled {
		return nil
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name:  "gemini api key",
		Value: config.Gemini.APIKey,
		File:  config.Gemini.APIKeyFile,
		Env:   "GEMINI_API_KEY",
	})
	if err != nil {
		l.Warn("skipping embeddings", zap.Error(err),
			zap.String("hint", "set GEMINI_API_KEY or gemini.api-key-file in the configuration file"),
		)
		return nil
	}

	provider, err := embeddings.NewGemini(ctx, apiKey, config.Gemini.Model)
	if err != nil {
		l.Warn("skipping embeddings", zap.Error(err))
		return nil
	}

	return provider
}

func loadOutcomes(config *Config, l *zap.Logger) scoring.OutcomeSet {
	if config.Outcomes == "" {
		return nil
	}

	outcomes, err := scoring.LoadOutcomes(config.Outcomes)
	if err != nil {
		l.Warn("skipping historical outcomes", zap.Error(err), zap.String("path", config.Outcomes))
		return nil
	}

	l.Debug("loaded historical outcomes", zap.Int("profiles", len(outcomes)))
	return outcomes
}

func openStore(ctx context.Context, config *Config, l *zap.Logger) (*store.Store, error) {
	path := "partnermatch.db"
	if config.Store != nil && config.Store.Path != "" {
		path = config.Store.Path
	}
	return store.Open(ctx, path, l)
}

func rankingConfig(config *Config) *ranking.Config {
	if config.Ranking == nil {
		return &ranking.Config{}
	}
	return &ranking.Config{
		MinPercent:      config.Ranking.MinPercent,
		TopK:            config.Ranking.TopK,
		ExcludeProfiles: config.Ranking.ExcludeProfiles,
		RequireReason:   config.Ranking.RequireReason,
	}
}
