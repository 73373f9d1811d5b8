package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spigell/talent-match/internal/model"
	"github.com/spigell/talent-match/internal/secrets"
)

func resetViper(t *testing.T) {
	t.Helper()
	viper.Reset()
	require.NoError(t, configureViper())
	t.Cleanup(viper.Reset)
}

func TestGetConfigDefaults(t *testing.T) {
	resetViper(t)

	config, err := getConfig()
	require.NoError(t, err)

	assert.Equal(t, "data", config.Data.BaseDir)
	assert.Equal(t, "vagas.json", config.Data.Jobs)
	assert.Equal(t, "cv_pt", config.Embeddings.TextColumn)
	assert.Equal(t, model.DefaultParams(), config.Train.Params)

	train := config.trainConfig()
	assert.Equal(t, "job-matcher", train.ModelName)
	assert.InDelta(t, 0.3, train.TestSize, 1e-12)
	assert.Equal(t, uint64(23), train.Seed)

	predict := config.predictConfig()
	assert.Equal(t, model.MinMax, predict.Scaler)
	assert.Equal(t, 10, predict.TopK)
}

func TestGetConfigReadsFileAndEnv(t *testing.T) {
	resetViper(t)

	path := filepath.Join(t.TempDir(), "talent-match.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
train:
  n-estimators: 50
  max-depth: 4
predict:
  scaler: robust
registry:
  model-name: custom
`), 0o600))
	viper.SetConfigFile(path)
	require.NoError(t, viper.ReadInConfig())

	t.Setenv("TALENT_MATCH_PREDICT_TOP_K", "25")
	t.Setenv("GEMINI_API_KEY_FILE", "/run/secrets/gemini")

	config, err := getConfig()
	require.NoError(t, err)

	assert.Equal(t, 50, config.Train.NEstimators)
	assert.Equal(t, 4, config.Train.MaxDepth)
	assert.InDelta(t, 0.3, config.Train.LearningRate, 1e-12)
	assert.Equal(t, model.Robust, config.Predict.Scaler)
	assert.Equal(t, 25, config.Predict.TopK)
	assert.Equal(t, "custom", config.trainConfig().ModelName)
	assert.Equal(t, "/run/secrets/gemini", config.Gemini.APIKeyFile)
}

func TestGetConfigValidates(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value any
	}{
		{name: "unknown scaler", key: "predict.scaler", value: "quantile"},
		{name: "test size out of range", key: "train.test-size", value: 1.5},
		{name: "no estimators", key: "train.n-estimators", value: 0},
		{name: "empty model name", key: "registry.model-name", value: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetViper(t)
			viper.Set(tt.key, tt.value)

			_, err := getConfig()
			assert.Error(t, err)
		})
	}
}

func TestRedactedHidesAPIKey(t *testing.T) {
	config := &Config{Gemini: &GeminiConfig{APIKey: "secret", Model: "gemini-embedding-001"}}

	safe := config.redacted()
	assert.Equal(t, "***", safe.Gemini.APIKey)
	assert.Equal(t, "gemini-embedding-001", safe.Gemini.Model)
	assert.Equal(t, "secret", config.Gemini.APIKey)
	assert.NotSame(t, config.Gemini, safe.Gemini)

	safe = config.redacted()
	assert.Equal(t, "secret", config.Gemini.APIKey, "redacting twice must keep the live key")
}

func TestRedactedWithoutGemini(t *testing.T) {
	config := &Config{}
	assert.NotPanics(t, func() {
		safe := config.redacted()
		assert.Nil(t, safe.Gemini)
	})
}

func TestRedactedKeepsKeyForSecretLoading(t *testing.T) {
	resetViper(t)
	viper.Set("gemini.api-key", "real-key")

	config, err := getConfig()
	require.NoError(t, err)

	_ = config.redacted()

	key, err := secrets.Load(secrets.Source{Name: "gemini api key", Value: config.Gemini.APIKey, Env: "GEMINI_API_KEY"})
	require.NoError(t, err)
	assert.Equal(t, "real-key", key)
}
