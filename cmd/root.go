package cmd

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/spigell/talent-match/internal/embeddings"
	"github.com/spigell/talent-match/internal/matching"
	"github.com/spigell/talent-match/internal/model"
)

const (
	app       = "talent-match"
	envPrefix = "TALENT_MATCH"
)

type Config struct {
	Data       *DataConfig       `mapstructure:"data" validate:"required"`
	Embeddings *EmbeddingsConfig `mapstructure:"embeddings" validate:"required"`
	Registry   *RegistryConfig   `mapstructure:"registry" validate:"required"`
	Train      *TrainConfig      `mapstructure:"train" validate:"required"`
	Predict    *PredictConfig    `mapstructure:"predict" validate:"required"`
	Gemini     *GeminiConfig     `mapstructure:"gemini" validate:"required"`
}

type DataConfig struct {
	BaseDir    string `mapstructure:"base-dir" validate:"required"`
	Applicants string `mapstructure:"applicants" validate:"required"`
	Jobs       string `mapstructure:"jobs" validate:"required"`
	Prospects  string `mapstructure:"prospects" validate:"required"`
}

type EmbeddingsConfig struct {
	Path       string `mapstructure:"path" validate:"required"`
	TextColumn string `mapstructure:"text-column" validate:"required"`
	BatchSize  int    `mapstructure:"batch-size" validate:"gt=0"`
}

type RegistryConfig struct {
	Path      string `mapstructure:"path" validate:"required"`
	ModelName string `mapstructure:"model-name" validate:"required"`
}

type TrainConfig struct {
	TestSize     float64 `mapstructure:"test-size" validate:"gt=0,lt=1"`
	Seed         uint64  `mapstructure:"seed"`
	model.Params `mapstructure:",squash"`
}

type PredictConfig struct {
	Scaler    string `mapstructure:"scaler" validate:"oneof=minmax standard robust maxabs"`
	TopK      int    `mapstructure:"top-k" validate:"gt=0"`
	BatchSize int    `mapstructure:"batch-size" validate:"gt=0"`
	Workers   int    `mapstructure:"workers" validate:"gte=0"`
}

type GeminiConfig struct {
	APIKey     string `mapstructure:"api-key"`
	APIKeyFile string `mapstructure:"api-key-file"`
	Model      string `mapstructure:"model"`
	Dimension  int    `mapstructure:"dimension" validate:"gt=0"`
}

// redacted returns a copy safe to log. c itself is left untouched.
func (c *Config) redacted() Config {
	out := *c
	if c.Gemini != nil {
		gemini := *c.Gemini
		if gemini.APIKey != "" {
			gemini.APIKey = "***"
		}
		out.Gemini = &gemini
	}
	return out
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "talent-match prepares recruiting data, trains a job matcher and ranks applicants for a job",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	if err := configureViper(); err != nil {
		log.Fatal(err)
	}

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is talent-match.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")
	rootCmd.PersistentFlags().String("data-dir", "", "directory holding the record files")
	rootCmd.PersistentFlags().String("log-output", "stderr", "where logs are written: stderr, stdout or a file path")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
	viper.BindPFlag("data.base-dir", rootCmd.PersistentFlags().Lookup("data-dir"))
	viper.BindPFlag("log-output", rootCmd.PersistentFlags().Lookup("log-output"))
}

// configureViper registers defaults and environment overrides. TALENT_MATCH_PREDICT_TOP_K
// overrides predict.top-k, for example.
func configureViper() error {
	setDefaults()

	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	if err := viper.BindEnv("gemini.api-key-file", "GEMINI_API_KEY_FILE"); err != nil {
		return fmt.Errorf("binding GEMINI_API_KEY_FILE environment variable: %w", err)
	}
	return nil
}

func setDefaults() {
	params := model.DefaultParams()

	viper.SetDefault("data.base-dir", "data")
	viper.SetDefault("data.applicants", "applicants.json")
	viper.SetDefault("data.jobs", "vagas.json")
	viper.SetDefault("data.prospects", "prospects.json")

	viper.SetDefault("embeddings.path", "data/applicants_embeddings.csv")
	viper.SetDefault("embeddings.text-column", "cv_pt")
	viper.SetDefault("embeddings.batch-size", 32)

	viper.SetDefault("registry.path", "models/registry.db")
	viper.SetDefault("registry.model-name", matching.DefaultModelName)

	viper.SetDefault("train.test-size", matching.DefaultTestSize)
	viper.SetDefault("train.seed", matching.DefaultSeed)
	viper.SetDefault("train.n-estimators", params.NEstimators)
	viper.SetDefault("train.max-depth", params.MaxDepth)
	viper.SetDefault("train.learning-rate", params.LearningRate)
	viper.SetDefault("train.min-child-weight", params.MinChildWeight)
	viper.SetDefault("train.lambda", params.Lambda)
	viper.SetDefault("train.gamma", params.Gamma)

	viper.SetDefault("predict.scaler", model.MinMax)
	viper.SetDefault("predict.top-k", matching.DefaultTopK)
	viper.SetDefault("predict.batch-size", matching.DefaultBatchSize)
	viper.SetDefault("predict.workers", 0)

	viper.SetDefault("gemini.api-key", "")
	viper.SetDefault("gemini.model", embeddings.DefaultModel)
	viper.SetDefault("gemini.dimension", embeddings.DefaultDimension)
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app)
		viper.SetConfigType("yaml")
	}

	// Without an explicit --config a missing file leaves defaults and env in place.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			log.Fatal(err)
		}
	}
}

func getConfig() (*Config, error) {
	var config *Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}
	if config == nil {
		return nil, errors.New("config is empty")
	}

	if err := validator.New().Struct(config); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return config, nil
}

func (c *Config) trainConfig() matching.TrainConfig {
	return matching.TrainConfig{
		ModelName: c.Registry.ModelName,
		TestSize:  c.Train.TestSize,
		Seed:      c.Train.Seed,
		Params:    c.Train.Params,
	}
}

func (c *Config) predictConfig() matching.PredictConfig {
	return matching.PredictConfig{
		ModelName: c.Registry.ModelName,
		Scaler:    c.Predict.Scaler,
		TopK:      c.Predict.TopK,
		BatchSize: c.Predict.BatchSize,
		Workers:   c.Predict.Workers,
	}
}
