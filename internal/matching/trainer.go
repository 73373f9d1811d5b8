package matching

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spigell/talent-match/internal/logger"
	"github.com/spigell/talent-match/internal/model"
	"github.com/spigell/talent-match/internal/registry"
	"github.com/spigell/talent-match/internal/unify"
)

const exampleRows = 2

// TrainInput is the assembled training table.
type TrainInput struct {
	Set *TrainingSet
}

// TrainResult describes a registered training run.
type TrainResult struct {
	RunID   string
	Version int
	Train   int
	Test    int
	Metrics map[string]float64
}

type Trainer struct {
	cfg      TrainConfig
	registry registry.Registry
	logger   *zap.Logger
	newRunID func() string
}

func NewTrainer(cfg TrainConfig, reg registry.Registry, log *zap.Logger) *Trainer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Trainer{cfg: cfg, registry: reg, logger: log, newRunID: uuid.NewString}
}

// Train splits the set, fits a classifier on the train share, scores both shares
// and registers the model as a new version regardless of its scores.
func (t *Trainer) Train(ctx context.Context, in TrainInput) (*TrainResult, error) {
	set := in.Set
	if set.Len() == 0 {
		return nil, model.ErrEmptyTraining
	}
	if t.registry == nil {
		return nil, errors.New("model registry is required")
	}

	runID := t.newRunID()
	log := logger.WithModelFields(t.logger, t.cfg.ModelName, 0, runID)

	trainPos, testPos, err := model.TrainTestSplit(set.Len(), t.cfg.TestSize, t.cfg.Seed)
	if err != nil {
		return nil, err
	}
	xTrain, yTrain := model.Take(set.X, set.Y, trainPos)
	xTest, yTest := model.Take(set.X, set.Y, testPos)

	log.Info("training classifier",
		zap.Int("train_rows", len(xTrain)),
		zap.Int("test_rows", len(xTest)),
		zap.Int("features", len(set.Columns)),
		zap.Int("dropped_without_embedding", set.Dropped),
		zap.Any("params", t.cfg.Params.AsMap()),
	)

	clf := model.NewClassifier(t.cfg.Params)
	if err := clf.Fit(xTrain, yTrain); err != nil {
		return nil, fmt.Errorf("fitting classifier: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	trainPred, err := clf.Predict(xTrain)
	if err != nil {
		return nil, fmt.Errorf("scoring train rows: %w", err)
	}
	testPred, err := clf.Predict(xTest)
	if err != nil {
		return nil, fmt.Errorf("scoring test rows: %w", err)
	}

	metrics := map[string]float64{
		"f1_score_train_weighted": model.WeightedF1(yTrain, trainPred),
		"f1_score_test_weighted":  model.WeightedF1(yTest, testPred),
	}
	log.Info("classifier evaluated",
		zap.Float64("f1_train", metrics["f1_score_train_weighted"]),
		zap.Float64("f1_test", metrics["f1_score_test_weighted"]),
	)

	blob, err := clf.Marshal()
	if err != nil {
		return nil, fmt.Errorf("serializing classifier: %w", err)
	}

	version, err := t.registry.Register(ctx, registry.Registration{
		Name:  t.cfg.ModelName,
		RunID: runID,
		Model: blob,
		Signature: registry.Signature{
			Inputs: set.Columns,
			Output: unify.TargetColumn,
		},
		Example: xTrain[:min(exampleRows, len(xTrain))],
		Params:  t.cfg.Params.AsMap(),
		Metrics: metrics,
	})
	if err != nil {
		return nil, fmt.Errorf("registering model: %w", err)
	}

	logger.WithModelFields(t.logger, t.cfg.ModelName, version, runID).Info("model registered")

	return &TrainResult{
		RunID:   runID,
		Version: version,
		Train:   len(xTrain),
		Test:    len(xTest),
		Metrics: metrics,
	}, nil
}
