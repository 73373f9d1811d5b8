// Package pipeline runs the training data preparation as a sequence of named
// stages, accounting for the rows each stage receives, drops and keeps.
package pipeline

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/spigell/talent-match/internal/embeddings"
	"github.com/spigell/talent-match/internal/features"
	"github.com/spigell/talent-match/internal/logger"
	"github.com/spigell/talent-match/internal/matching"
	"github.com/spigell/talent-match/internal/records"
	"github.com/spigell/talent-match/internal/unify"
)

// Stage is a single step of the preparation pipeline.
type Stage interface {
	Name() string
	Disable(reason string)
	IsEnabled() bool

	Apply(ctx context.Context, ds *Dataset) (Step, error)
}

// Dataset carries every intermediate table between stages. Stages replace
// fields with new tables and never modify the tables they read.
type Dataset struct {
	Applicants *records.Table
	Jobs       *records.Table
	Prospects  *records.Table

	Unified    *unify.Table
	Features   *features.Matrix
	Embeddings *embeddings.Table
	Training   *matching.TrainingSet
}

// Step describes the rows seen by a stage.
type Step struct {
	Initial int
	Dropped int
	Left    int
}

// Status represents runtime information about a stage.
type Status struct {
	Name    string
	Enabled bool
	Reason  string
	Details map[string]string
}

type statusProvider interface {
	Status() Status
}

// DisableByName marks the stage with the provided name as disabled while keeping it in the list.
func DisableByName(stages []Stage, name, reason string) {
	for _, stage := range stages {
		if stage.Name() == name {
			stage.Disable(reason)
		}
	}
}

// Run executes the enabled stages in order and stops at the first failure.
func Run(ctx context.Context, log *zap.Logger, stages []Stage, ds *Dataset) error {
	log = logger.WithFields(log)

	for _, stage := range stages {
		if !stage.IsEnabled() {
			log.Info("stage disabled", zap.String("name", stage.Name()))
			continue
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		info, err := stage.Apply(ctx, ds)
		if err != nil {
			return fmt.Errorf("%s: %w", stage.Name(), err)
		}

		log.Info("pipeline step", logger.StageFields(stage.Name(), info.Initial, info.Dropped, info.Left)...)
	}

	return nil
}

// Describe returns status entries for the provided stages.
func Describe(stages []Stage) []Status {
	statuses := make([]Status, 0, len(stages))
	for _, stage := range stages {
		if reporter, ok := stage.(statusProvider); ok {
			statuses = append(statuses, reporter.Status())
			continue
		}

		statuses = append(statuses, Status{
			Name:    stage.Name(),
			Enabled: stage.IsEnabled(),
		})
	}
	return statuses
}

// toggle implements the enable/disable half of Stage.
type toggle struct {
	disabled bool
	reason   string
}

func (t *toggle) Disable(reason string) {
	t.disabled = true
	t.reason = reason
}

func (t *toggle) IsEnabled() bool { return !t.disabled }
