package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/talent-match/internal/matching"
	"github.com/spigell/talent-match/internal/pipeline"
	"github.com/spigell/talent-match/internal/registry"
)

var trainCmd = &cobra.Command{
	Use:   "train",
	Short: "Prepare the training table, fit the matcher and register a new model version",
	Run: func(_ *cobra.Command, _ []string) {
		train()
	},
}

func init() {
	rootCmd.AddCommand(trainCmd)
}

func train() {
	ctx, cancel := signalContext()
	defer cancel()

	logger, config := setup()
	logger.Info("starting the training", zap.String("version", version))

	stages := pipeline.Training(config.loader(logger), config.sources(), config.Embeddings.Path, logger)
	for _, status := range pipeline.Describe(stages) {
		logger.Debug("stage", zap.String("name", status.Name), zap.Any("details", status.Details))
	}

	ds := &pipeline.Dataset{}
	if err := pipeline.Run(ctx, logger, stages, ds); err != nil {
		logger.Fatal("preparing training data", zap.Error(err))
	}

	if ds.Training.Len() == 0 {
		logger.Info("exiting", zap.String("reason", "no labeled rows with embeddings"))
		return
	}

	reg, err := registry.OpenSQLite(ctx, config.Registry.Path)
	if err != nil {
		logger.Fatal("opening the model registry", zap.Error(err))
	}
	defer reg.Close()

	trainer := matching.NewTrainer(config.trainConfig(), reg, logger)
	result, err := trainer.Train(ctx, matching.TrainInput{Set: ds.Training})
	if err != nil {
		logger.Fatal("training failed", zap.Error(err))
	}

	logger.Info("training finished",
		zap.String("run_id", result.RunID),
		zap.Int("model_version", result.Version),
		zap.Int("train_rows", result.Train),
		zap.Int("test_rows", result.Test),
		zap.Any("metrics", result.Metrics),
	)
}
