package matching

import (
	"github.com/spigell/talent-match/internal/model"
)

const (
	DefaultModelName = "job-matcher"
	DefaultTestSize  = 0.3
	DefaultSeed      = 23
	DefaultTopK      = 10
	DefaultBatchSize = 256
)

// TrainConfig holds everything a training run needs besides its data.
type TrainConfig struct {
	ModelName string
	TestSize  float64
	Seed      uint64
	Params    model.Params
}

func DefaultTrainConfig() TrainConfig {
	return TrainConfig{
		ModelName: DefaultModelName,
		TestSize:  DefaultTestSize,
		Seed:      DefaultSeed,
		Params:    model.DefaultParams(),
	}
}

// PredictConfig holds everything a prediction needs besides the job itself.
type PredictConfig struct {
	ModelName string
	Scaler    string
	TopK      int
	BatchSize int
	// Workers bounds concurrent scoring batches; 0 means one per CPU.
	Workers int
}

func DefaultPredictConfig() PredictConfig {
	return PredictConfig{
		ModelName: DefaultModelName,
		Scaler:    model.MinMax,
		TopK:      DefaultTopK,
		BatchSize: DefaultBatchSize,
	}
}
