package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/spigell/talent-match/internal/embeddings"
	"github.com/spigell/talent-match/internal/features"
	"github.com/spigell/talent-match/internal/matching"
	"github.com/spigell/talent-match/internal/normalize"
	"github.com/spigell/talent-match/internal/records"
	"github.com/spigell/talent-match/internal/unify"
)

const (
	StageLoad       = "load"
	StageNormalize  = "normalize"
	StageUnify      = "unify"
	StageEngineer   = "engineer"
	StageEmbeddings = "attach_embeddings"
)

var errMissingInput = errors.New("input table is not available, an earlier stage is disabled or failed")

// Sources names the three record files read by the load stage.
type Sources struct {
	Applicants string
	Jobs       string
	Prospects  string
}

// Training returns the full preparation sequence ending in an assembled training set.
func Training(loader *records.Loader, sources Sources, embeddingsPath string, log *zap.Logger) []Stage {
	return []Stage{
		NewLoad(loader, sources),
		NewNormalize(),
		NewUnify(log),
		NewEngineer(),
		NewAttachEmbeddings(embeddingsPath, log),
	}
}

type loadStage struct {
	toggle
	loader  *records.Loader
	sources Sources
}

// NewLoad creates the stage that reads the three record files.
func NewLoad(loader *records.Loader, sources Sources) Stage {
	return &loadStage{loader: loader, sources: sources}
}

func (s *loadStage) Name() string { return StageLoad }

func (s *loadStage) Apply(_ context.Context, ds *Dataset) (Step, error) {
	ds.Applicants = s.loader.LoadApplicants(s.sources.Applicants)
	ds.Jobs = s.loader.LoadJobs(s.sources.Jobs)
	ds.Prospects = s.loader.LoadProspects(s.sources.Prospects)

	left := ds.Applicants.Len() + ds.Jobs.Len() + ds.Prospects.Len()
	return Step{Initial: left, Left: left}, nil
}

func (s *loadStage) Status() Status {
	return Status{
		Name:    s.Name(),
		Enabled: s.IsEnabled(),
		Reason:  s.reason,
		Details: map[string]string{
			"applicants": s.sources.Applicants,
			"jobs":       s.sources.Jobs,
			"prospects":  s.sources.Prospects,
		},
	}
}

type normalizeStage struct {
	toggle
}

// NewNormalize creates the stage that coerces every loaded table.
func NewNormalize() Stage {
	return &normalizeStage{}
}

func (s *normalizeStage) Name() string { return StageNormalize }

func (s *normalizeStage) Apply(_ context.Context, ds *Dataset) (Step, error) {
	if ds.Applicants == nil || ds.Jobs == nil || ds.Prospects == nil {
		return Step{}, errMissingInput
	}

	ds.Applicants = normalize.Applicants(ds.Applicants)
	ds.Jobs = normalize.Jobs(ds.Jobs)
	ds.Prospects = normalize.Prospects(ds.Prospects)

	rows := ds.Applicants.Len() + ds.Jobs.Len() + ds.Prospects.Len()
	return Step{Initial: rows, Left: rows}, nil
}

type unifyStage struct {
	toggle
	logger *zap.Logger
	stats  unify.Stats
}

// NewUnify creates the stage that joins and labels applications.
func NewUnify(log *zap.Logger) Stage {
	if log == nil {
		log = zap.NewNop()
	}
	return &unifyStage{logger: log}
}

func (s *unifyStage) Name() string { return StageUnify }

func (s *unifyStage) Apply(_ context.Context, ds *Dataset) (Step, error) {
	if ds.Applicants == nil || ds.Jobs == nil || ds.Prospects == nil {
		return Step{}, errMissingInput
	}

	ds.Unified = unify.Unify(ds.Applicants, ds.Prospects, ds.Jobs)
	s.stats = ds.Unified.Stats

	s.logger.Debug("unify exclusions",
		zap.Int("missing_job", s.stats.MissingJob),
		zap.Int("missing_applicant", s.stats.MissingApplicant),
		zap.Int("unknown_outcome", s.stats.UnknownOutcome),
	)

	dropped := s.stats.MissingJob + s.stats.MissingApplicant + s.stats.UnknownOutcome
	return Step{Initial: s.stats.Prospects, Dropped: dropped, Left: ds.Unified.Len()}, nil
}

func (s *unifyStage) Status() Status {
	return Status{
		Name:    s.Name(),
		Enabled: s.IsEnabled(),
		Reason:  s.reason,
		Details: map[string]string{
			"missing_job":       strconv.Itoa(s.stats.MissingJob),
			"missing_applicant": strconv.Itoa(s.stats.MissingApplicant),
			"unknown_outcome":   strconv.Itoa(s.stats.UnknownOutcome),
		},
	}
}

type engineerStage struct {
	toggle
}

// NewEngineer creates the stage that derives the feature matrix.
func NewEngineer() Stage {
	return &engineerStage{}
}

func (s *engineerStage) Name() string { return StageEngineer }

func (s *engineerStage) Apply(_ context.Context, ds *Dataset) (Step, error) {
	if ds.Unified == nil {
		return Step{}, errMissingInput
	}

	ds.Features = features.Engineer(ds.Unified.Table)
	return Step{Initial: ds.Unified.Len(), Left: ds.Features.Len()}, nil
}

type attachEmbeddingsStage struct {
	toggle
	path   string
	logger *zap.Logger
}

// NewAttachEmbeddings creates the stage that reads the embedding table and
// assembles the training set. Rows whose applicant has no embedding are dropped.
func NewAttachEmbeddings(path string, log *zap.Logger) Stage {
	if log == nil {
		log = zap.NewNop()
	}
	return &attachEmbeddingsStage{path: path, logger: log}
}

func (s *attachEmbeddingsStage) Name() string { return StageEmbeddings }

func (s *attachEmbeddingsStage) Apply(_ context.Context, ds *Dataset) (Step, error) {
	if ds.Unified == nil || ds.Features == nil {
		return Step{}, errMissingInput
	}

	if ds.Embeddings == nil {
		emb, err := embeddings.Read(s.path)
		if err != nil {
			return Step{}, fmt.Errorf("reading embeddings: %w", err)
		}
		ds.Embeddings = emb
	}

	if ds.Applicants != nil && ds.Embeddings.Len() != ds.Applicants.Len() {
		s.logger.Warn("embedding rows do not match applicant rows",
			zap.Int("embeddings", ds.Embeddings.Len()),
			zap.Int("applicants", ds.Applicants.Len()),
		)
	}

	set, err := matching.Assemble(ds.Features, ds.Unified, ds.Embeddings)
	if err != nil {
		return Step{}, err
	}
	ds.Training = set

	return Step{Initial: ds.Features.Len(), Dropped: set.Dropped, Left: set.Len()}, nil
}

func (s *attachEmbeddingsStage) Status() Status {
	return Status{
		Name:    s.Name(),
		Enabled: s.IsEnabled(),
		Reason:  s.reason,
		Details: map[string]string{"path": s.path},
	}
}
