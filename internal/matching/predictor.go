package matching

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"runtime"
	"slices"

	"github.com/xeipuuv/gojsonschema"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/spigell/talent-match/internal/embeddings"
	"github.com/spigell/talent-match/internal/features"
	"github.com/spigell/talent-match/internal/logger"
	"github.com/spigell/talent-match/internal/model"
	"github.com/spigell/talent-match/internal/normalize"
	"github.com/spigell/talent-match/internal/records"
	"github.com/spigell/talent-match/internal/registry"
	"github.com/spigell/talent-match/internal/unify"
)

// Match is one ranked applicant for a job.
type Match struct {
	Rank        int     `json:"rank"`
	ApplicantID string  `json:"applicant_id"`
	Position    int     `json:"position"`
	Probability float64 `json:"probability"`
}

// Predictor ranks known applicants for a single job with the latest registered model.
type Predictor struct {
	cfg        PredictConfig
	registry   registry.Registry
	embeddings *embeddings.Table
	logger     *zap.Logger
	schema     *gojsonschema.Schema
	required   []string
}

func NewPredictor(cfg PredictConfig, reg registry.Registry, emb *embeddings.Table, log *zap.Logger) (*Predictor, error) {
	if _, err := model.NewScaler(cfg.Scaler); err != nil {
		return nil, err
	}
	if cfg.TopK <= 0 {
		cfg.TopK = DefaultTopK
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = DefaultBatchSize
	}
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.GOMAXPROCS(0)
	}
	if log == nil {
		log = zap.NewNop()
	}

	required := records.JobInputColumns()
	schema, err := gojsonschema.NewSchema(gojsonschema.NewGoLoader(map[string]any{
		"type":     "object",
		"required": required,
	}))
	if err != nil {
		return nil, fmt.Errorf("compiling job input schema: %w", err)
	}

	return &Predictor{
		cfg:        cfg,
		registry:   reg,
		embeddings: emb,
		logger:     log,
		schema:     schema,
		required:   required,
	}, nil
}

// Predict validates and engineers the raw job, scores it against every applicant
// embedding and returns the best matches, highest probability first. Ties keep
// applicant order.
func (p *Predictor) Predict(ctx context.Context, raw map[string]any) ([]Match, error) {
	missing, err := p.missing(raw)
	if err != nil {
		return nil, err
	}
	if len(missing) > 0 {
		return nil, &MissingColumnsError{Missing: missing}
	}

	log := logger.WithFields(p.logger, logger.JobFields(
		records.ValueAsString(raw[records.JobIDColumn]),
		records.ValueAsString(raw[records.JobTitleColumn]),
	)...)

	jobRow, err := p.jobFeatures(raw)
	if err != nil {
		return nil, processing("scaling job features", err)
	}

	n := p.embeddings.Len()
	if n == 0 {
		return nil, processing("scoring", errors.New("no applicant embeddings loaded"))
	}

	entry, err := p.registry.Latest(ctx, p.cfg.ModelName)
	if err != nil {
		return nil, processing("resolving latest model", err)
	}
	clf, err := model.Load(entry.Model)
	if err != nil {
		return nil, processing("loading model", err)
	}
	if width := len(jobRow) + p.embeddings.Dim(); clf.Features != width {
		return nil, processing("loading model", fmt.Errorf("model v%d expects %d features, job and embeddings give %d", entry.Version, clf.Features, width))
	}

	log = logger.WithFields(log, logger.ModelFields(entry.Name, entry.Version, entry.RunID)...)
	log.Debug("scoring applicants", zap.Int("applicants", n))

	scores, err := p.score(ctx, clf, jobRow)
	if err != nil {
		return nil, processing("scoring", err)
	}

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		return cmp.Compare(scores[b], scores[a])
	})

	k := min(p.cfg.TopK, n)
	matches := make([]Match, k)
	for rank, pos := range order[:k] {
		id := ""
		if pos < len(p.embeddings.IDs) {
			id = p.embeddings.IDs[pos]
		}
		matches[rank] = Match{Rank: rank + 1, ApplicantID: id, Position: pos, Probability: scores[pos]}
	}

	log.Info("job scored", zap.Int("applicants", n), zap.Int("returned", k))
	return matches, nil
}

func (p *Predictor) missing(raw map[string]any) ([]string, error) {
	if raw == nil {
		return slices.Clone(p.required), nil
	}

	result, err := p.schema.Validate(gojsonschema.NewGoLoader(raw))
	if err != nil {
		return nil, fmt.Errorf("validating job input: %w", err)
	}
	if result.Valid() {
		return nil, nil
	}

	absent := make(map[string]bool)
	for _, e := range result.Errors() {
		if e.Type() != "required" {
			continue
		}
		if name, ok := e.Details()["property"].(string); ok {
			absent[name] = true
		}
	}

	var missing []string
	for _, col := range p.required {
		if absent[col] {
			missing = append(missing, col)
		}
	}
	return missing, nil
}

// jobFeatures runs the raw job through the same cleaning and feature rules as
// training rows and scales the result with a scaler fitted on that one row.
func (p *Predictor) jobFeatures(raw map[string]any) ([]float64, error) {
	t := records.NewTable(records.KindJobs, p.required)
	t.Append(records.Row(raw).Clone())

	job := normalize.Jobs(t).
		WithPrefix(unify.JobPrefix).
		Rename(unify.JobPrefix+records.JobTitleColumn, features.TitleColumn)

	scaler, err := model.NewScaler(p.cfg.Scaler)
	if err != nil {
		return nil, err
	}
	scaled, err := scaler.FitTransform([][]float64{features.Row(job.Rows[0])})
	if err != nil {
		return nil, err
	}
	return scaled[0], nil
}

// score fills one probability per embedding row. Batches write to disjoint
// ranges, so results land in applicant order whatever the completion order.
func (p *Predictor) score(ctx context.Context, clf *model.Classifier, jobRow []float64) ([]float64, error) {
	n := p.embeddings.Len()
	scores := make([]float64, n)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(p.cfg.Workers)

	for start := 0; start < n; start += p.cfg.BatchSize {
		end := min(start+p.cfg.BatchSize, n)
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			batch := make([][]float64, 0, end-start)
			for _, vec := range p.embeddings.Vectors[start:end] {
				batch = append(batch, slices.Concat(jobRow, vec))
			}
			proba, err := clf.PredictProba(batch)
			if err != nil {
				return fmt.Errorf("rows %d..%d: %w", start, end-1, err)
			}
			copy(scores[start:end], proba)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return scores, nil
}
