package matching

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spigell/talent-match/internal/embeddings"
	"github.com/spigell/talent-match/internal/features"
	"github.com/spigell/talent-match/internal/model"
	"github.com/spigell/talent-match/internal/records"
	"github.com/spigell/talent-match/internal/registry"
	"github.com/spigell/talent-match/internal/unify"
)

type spyRegistry struct {
	registry.Registry
	latestCalls int
}

func (s *spyRegistry) Latest(ctx context.Context, name string) (*registry.Entry, error) {
	s.latestCalls++
	return s.Registry.Latest(ctx, name)
}

func smallParams() model.Params {
	p := model.DefaultParams()
	p.NEstimators = 20
	p.MaxDepth = 3
	return p
}

func unifiedFixture(targets []int, positions []int) *unify.Table {
	t := &unify.Table{Table: records.NewTable(records.KindUnified, []string{unify.TargetColumn, unify.IndexColumn})}
	for i, target := range targets {
		id := string(rune('a' + i))
		t.Append(records.Row{unify.TargetColumn: target, unify.IndexColumn: id})
		t.Index = append(t.Index, id)
		t.Positions = append(t.Positions, positions[i])
	}
	return t
}

func TestAssembleAlignsEmbeddingsByApplicantPosition(t *testing.T) {
	m := &features.Matrix{
		Columns: []string{"f1"},
		Index:   []string{"a", "b", "c"},
		Values:  [][]float64{{1}, {2}, {3}},
	}
	u := unifiedFixture([]int{1, 0, 1}, []int{1, 7, 0})
	emb := &embeddings.Table{
		IDs:     []string{"x", "y"},
		Vectors: [][]float64{{0.1, 0.2}, {0.3, 0.4}},
	}

	set, err := Assemble(m, u, emb)
	require.NoError(t, err)

	assert.Equal(t, []string{"f1", "embedd_1", "embedd_2"}, set.Columns)
	assert.Equal(t, [][]float64{{1, 0.3, 0.4}, {3, 0.1, 0.2}}, set.X)
	assert.Equal(t, []int{1, 1}, set.Y)
	assert.Equal(t, []string{"a", "c"}, set.Index)
	assert.Equal(t, 1, set.Dropped)

	_, err = Assemble(&features.Matrix{}, u, emb)
	assert.Error(t, err)
}

// separableSet has one informative column; label is 1 when it exceeds 0.5.
func separableSet(n int) *TrainingSet {
	set := &TrainingSet{Columns: []string{"noise", "embedd_1"}}
	for i := 0; i < n; i++ {
		v := float64(i%10) / 10
		label := 0
		if v > 0.5 {
			label = 1
		}
		set.X = append(set.X, []float64{float64(i % 3), v})
		set.Y = append(set.Y, label)
		set.Index = append(set.Index, string(rune('a'+i%26)))
	}
	return set
}

func TestTrainRegistersModelWithSignatureAndMetrics(t *testing.T) {
	core, observed := observer.New(zapcore.InfoLevel)
	reg := registry.NewMemory()

	cfg := DefaultTrainConfig()
	cfg.Params = smallParams()
	trainer := NewTrainer(cfg, reg, zap.New(core))
	trainer.newRunID = func() string { return "run-fixed" }

	res, err := trainer.Train(context.Background(), TrainInput{Set: separableSet(60)})
	require.NoError(t, err)

	assert.Equal(t, 1, res.Version)
	assert.Equal(t, "run-fixed", res.RunID)
	assert.Equal(t, 42, res.Train)
	assert.Equal(t, 18, res.Test)
	assert.Greater(t, res.Metrics["f1_score_train_weighted"], 0.9)
	assert.Contains(t, res.Metrics, "f1_score_test_weighted")

	entry, err := reg.Latest(context.Background(), DefaultModelName)
	require.NoError(t, err)
	assert.Equal(t, []string{"noise", "embedd_1"}, entry.Signature.Inputs)
	assert.Equal(t, unify.TargetColumn, entry.Signature.Output)
	assert.Len(t, entry.Example, 2)
	assert.Equal(t, 20, entry.Params["n_estimators"])
	assert.Equal(t, "run-fixed", entry.RunID)

	clf, err := model.Load(entry.Model)
	require.NoError(t, err)
	assert.Equal(t, 2, clf.Features)

	registered := observed.FilterMessage("model registered").All()
	require.Len(t, registered, 1)
	assert.Equal(t, "1", registered[0].ContextMap()["model_version"])

	again, err := trainer.Train(context.Background(), TrainInput{Set: separableSet(60)})
	require.NoError(t, err)
	assert.Equal(t, 2, again.Version)
}

func TestTrainRejectsEmptySet(t *testing.T) {
	trainer := NewTrainer(DefaultTrainConfig(), registry.NewMemory(), nil)

	_, err := trainer.Train(context.Background(), TrainInput{Set: &TrainingSet{}})
	assert.ErrorIs(t, err, model.ErrEmptyTraining)

	_, err = trainer.Train(context.Background(), TrainInput{})
	assert.ErrorIs(t, err, model.ErrEmptyTraining)
}

func rawJob() map[string]any {
	raw := make(map[string]any)
	for _, col := range records.JobInputColumns() {
		raw[col] = ""
	}
	raw["id_vaga"] = "4530"
	raw["titulo_vaga"] = "Desenvolvedor Java Sênior"
	raw["tipo_contratacao"] = "CLT Full, PJ/Autônomo"
	raw["nivel_ingles"] = "Avançado"
	raw["valor_venda"] = "R$ 12.500,00"
	raw["data_requicisao"] = "04-05-2021"
	return raw
}

// registerEmbeddingModel registers a classifier that only looks at the first
// embedding value: above 0.5 means a match.
func registerEmbeddingModel(t *testing.T, reg registry.Registry) {
	t.Helper()

	width := len(features.Columns())
	var X [][]float64
	var y []int
	for i := 0; i < 40; i++ {
		v := float64(i%10) / 10
		row := make([]float64, width+2)
		row[width] = v
		row[width+1] = 0.5
		X = append(X, row)
		if v > 0.5 {
			y = append(y, 1)
		} else {
			y = append(y, 0)
		}
	}

	clf := model.NewClassifier(smallParams())
	require.NoError(t, clf.Fit(X, y))
	blob, err := clf.Marshal()
	require.NoError(t, err)

	_, err = reg.Register(context.Background(), registry.Registration{Name: DefaultModelName, Model: blob})
	require.NoError(t, err)
}

func applicantEmbeddings() *embeddings.Table {
	return &embeddings.Table{
		IDs: []string{"100", "101", "102", "103", "104"},
		Vectors: [][]float64{
			{0.1, 0.5},
			{0.9, 0.5},
			{0.8, 0.5},
			{0.2, 0.5},
			{0.95, 0.5},
		},
	}
}

func TestPredictRanksApplicantsStably(t *testing.T) {
	reg := registry.NewMemory()
	registerEmbeddingModel(t, reg)

	cfg := DefaultPredictConfig()
	cfg.TopK = 3
	cfg.BatchSize = 2
	p, err := NewPredictor(cfg, reg, applicantEmbeddings(), zap.NewNop())
	require.NoError(t, err)

	first, err := p.Predict(context.Background(), rawJob())
	require.NoError(t, err)
	require.Len(t, first, 3)

	top := make([]int, 0, 3)
	for i, m := range first {
		assert.Equal(t, i+1, m.Rank)
		top = append(top, m.Position)
		if i > 0 {
			assert.GreaterOrEqual(t, first[i-1].Probability, m.Probability)
		}
		assert.Greater(t, m.Probability, 0.5)
	}
	assert.ElementsMatch(t, []int{1, 2, 4}, top)
	assert.Equal(t, applicantEmbeddings().IDs[first[0].Position], first[0].ApplicantID)

	second, err := p.Predict(context.Background(), rawJob())
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestPredictTiesKeepApplicantOrder(t *testing.T) {
	reg := registry.NewMemory()
	registerEmbeddingModel(t, reg)

	emb := &embeddings.Table{
		IDs:     []string{"a", "b", "c", "d"},
		Vectors: [][]float64{{0.9, 0.5}, {0.1, 0.5}, {0.9, 0.5}, {0.9, 0.5}},
	}
	cfg := DefaultPredictConfig()
	cfg.BatchSize = 1
	p, err := NewPredictor(cfg, reg, emb, nil)
	require.NoError(t, err)

	got, err := p.Predict(context.Background(), rawJob())
	require.NoError(t, err)
	require.Len(t, got, 4, "top k is capped at the number of applicants")

	ids := []string{got[0].ApplicantID, got[1].ApplicantID, got[2].ApplicantID, got[3].ApplicantID}
	assert.Equal(t, []string{"a", "c", "d", "b"}, ids)
}

func TestPredictRejectsMissingColumnsBeforeRegistry(t *testing.T) {
	spy := &spyRegistry{Registry: registry.NewMemory()}
	p, err := NewPredictor(DefaultPredictConfig(), spy, applicantEmbeddings(), nil)
	require.NoError(t, err)

	raw := rawJob()
	delete(raw, "nivel_ingles")
	delete(raw, "titulo_vaga")

	_, err = p.Predict(context.Background(), raw)
	var missing *MissingColumnsError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, []string{"titulo_vaga", "nivel_ingles"}, missing.Missing)
	assert.Equal(t, 0, spy.latestCalls)

	_, err = p.Predict(context.Background(), nil)
	require.ErrorAs(t, err, &missing)
	assert.Len(t, missing.Missing, len(records.JobInputColumns()))
	assert.Equal(t, 0, spy.latestCalls)
}

func TestPredictReportsProcessingErrors(t *testing.T) {
	t.Run("no registered model", func(t *testing.T) {
		p, err := NewPredictor(DefaultPredictConfig(), registry.NewMemory(), applicantEmbeddings(), nil)
		require.NoError(t, err)

		_, err = p.Predict(context.Background(), rawJob())
		var perr *ProcessingError
		require.ErrorAs(t, err, &perr)
		assert.True(t, errors.Is(err, registry.ErrNotFound))
	})

	t.Run("feature width mismatch", func(t *testing.T) {
		reg := registry.NewMemory()
		registerEmbeddingModel(t, reg)
		emb := &embeddings.Table{IDs: []string{"a"}, Vectors: [][]float64{{0.1, 0.2, 0.3}}}

		p, err := NewPredictor(DefaultPredictConfig(), reg, emb, nil)
		require.NoError(t, err)

		_, err = p.Predict(context.Background(), rawJob())
		var perr *ProcessingError
		require.ErrorAs(t, err, &perr)
		assert.Contains(t, err.Error(), "expects")
	})

	t.Run("no embeddings", func(t *testing.T) {
		spy := &spyRegistry{Registry: registry.NewMemory()}
		p, err := NewPredictor(DefaultPredictConfig(), spy, &embeddings.Table{}, nil)
		require.NoError(t, err)

		_, err = p.Predict(context.Background(), rawJob())
		var perr *ProcessingError
		require.ErrorAs(t, err, &perr)
		assert.Equal(t, 0, spy.latestCalls)
	})
}

func TestNewPredictorRejectsUnknownScaler(t *testing.T) {
	cfg := DefaultPredictConfig()
	cfg.Scaler = "quantile"
	_, err := NewPredictor(cfg, registry.NewMemory(), nil, nil)
	assert.Error(t, err)
}

func TestJobFeaturesAreDegenerateAfterSingleRowScaling(t *testing.T) {
	for _, method := range []string{model.MinMax, model.Standard, model.Robust} {
		cfg := DefaultPredictConfig()
		cfg.Scaler = method
		p, err := NewPredictor(cfg, registry.NewMemory(), nil, nil)
		require.NoError(t, err)

		row, err := p.jobFeatures(rawJob())
		require.NoError(t, err)
		require.Len(t, row, len(features.Columns()))
		for _, v := range row {
			assert.Zero(t, v, method)
		}
	}
}
