package model

import (
	"math"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// separable builds rows where the label is 1 exactly when the second feature exceeds 0.5.
func separable(n int) ([][]float64, []int) {
	X := make([][]float64, n)
	y := make([]int, n)
	for i := 0; i < n; i++ {
		v := float64(i) / float64(n)
		X[i] = []float64{float64(i % 3), v}
		if v > 0.5 {
			y[i] = 1
		}
	}
	return X, y
}

func TestClassifierLearnsSeparableData(t *testing.T) {
	X, y := separable(60)

	clf := NewClassifier(DefaultParams())
	require.NoError(t, clf.Fit(X, y))
	assert.Len(t, clf.Trees, 100)

	pred, err := clf.Predict(X)
	require.NoError(t, err)
	assert.Equal(t, 1.0, WeightedF1(y, pred))

	proba, err := clf.PredictProba([][]float64{{0, 0.1}, {0, 0.9}})
	require.NoError(t, err)
	assert.Less(t, proba[0], 0.5)
	assert.Greater(t, proba[1], 0.5)
}

func TestClassifierIsDeterministicAndSerializable(t *testing.T) {
	X, y := separable(40)

	first := NewClassifier(DefaultParams())
	require.NoError(t, first.Fit(X, y))
	second := NewClassifier(DefaultParams())
	require.NoError(t, second.Fit(X, y))

	p1, err := first.PredictProba(X)
	require.NoError(t, err)
	p2, err := second.PredictProba(X)
	require.NoError(t, err)
	assert.Equal(t, p1, p2)

	data, err := first.Marshal()
	require.NoError(t, err)
	restored, err := Load(data)
	require.NoError(t, err)

	p3, err := restored.PredictProba(X)
	require.NoError(t, err)
	assert.Equal(t, p1, p3)
}

func TestClassifierErrors(t *testing.T) {
	clf := NewClassifier(DefaultParams())

	assert.ErrorIs(t, clf.Fit(nil, nil), ErrEmptyTraining)
	assert.Error(t, clf.Fit([][]float64{{1}, {1, 2}}, []int{0, 1}))

	_, err := clf.PredictProba([][]float64{{1}})
	assert.ErrorIs(t, err, ErrNotFitted)

	_, err = Load([]byte(`{"features":0}`))
	assert.ErrorIs(t, err, ErrNotFitted)
}

func TestMinChildWeightPreventsSplits(t *testing.T) {
	p := DefaultParams()
	p.NEstimators = 1
	p.MinChildWeight = 100

	X, y := separable(20)
	clf := NewClassifier(p)
	require.NoError(t, clf.Fit(X, y))

	require.Len(t, clf.Trees, 1)
	assert.Len(t, clf.Trees[0].Nodes, 1)
	assert.True(t, clf.Trees[0].Nodes[0].Leaf)
}

func TestTrainTestSplit(t *testing.T) {
	train, test, err := TrainTestSplit(10, 0.3, 23)
	require.NoError(t, err)
	assert.Len(t, test, 3)
	assert.Len(t, train, 7)

	all := append(slices.Clone(train), test...)
	slices.Sort(all)
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, all)

	again, againTest, err := TrainTestSplit(10, 0.3, 23)
	require.NoError(t, err)
	assert.Equal(t, train, again)
	assert.Equal(t, test, againTest)

	_, _, err = TrainTestSplit(1, 0.3, 23)
	assert.Error(t, err)
	_, _, err = TrainTestSplit(10, 1.5, 23)
	assert.Error(t, err)
}

func TestWeightedF1(t *testing.T) {
	tests := []struct {
		name   string
		truth  []int
		pred   []int
		expect float64
	}{
		{name: "perfect", truth: []int{0, 1, 1, 0}, pred: []int{0, 1, 1, 0}, expect: 1},
		{name: "all wrong", truth: []int{0, 1}, pred: []int{1, 0}, expect: 0},
		// class 0: tp=2 fp=1 fn=0 -> 0.8, support 2; class 1: tp=1 fp=0 fn=1 -> 2/3, support 2
		{name: "mixed", truth: []int{0, 0, 1, 1}, pred: []int{0, 0, 1, 0}, expect: (0.8*2 + 2.0/3.0*2) / 4},
		{name: "empty", expect: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expect, WeightedF1(tt.truth, tt.pred), 1e-9)
		})
	}
}

func TestScalers(t *testing.T) {
	X := [][]float64{{1, 10}, {2, 10}, {3, 10}, {4, 10}}

	tests := []struct {
		method string
		first  []float64
	}{
		{method: MinMax, first: []float64{0, 0}},
		{method: Standard, first: []float64{-1.5 / math.Sqrt(1.25), 0}},
		{method: Robust, first: []float64{-1.5 / 1.5, 0}},
		{method: MaxAbs, first: []float64{0.25, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.method, func(t *testing.T) {
			s, err := NewScaler(tt.method)
			require.NoError(t, err)
			out, err := s.FitTransform(X)
			require.NoError(t, err)
			assert.InDeltaSlice(t, tt.first, out[0], 1e-9)
		})
	}

	_, err := NewScaler("zscore")
	assert.Error(t, err)
}

func TestScalerOnSingleRowIsDegenerate(t *testing.T) {
	row := [][]float64{{3, 0, -2}}

	for _, method := range []string{MinMax, Standard, Robust} {
		s, err := NewScaler(method)
		require.NoError(t, err)
		out, err := s.FitTransform(row)
		require.NoError(t, err)
		assert.Equal(t, []float64{0, 0, 0}, out[0], method)
	}

	s, err := NewScaler(MaxAbs)
	require.NoError(t, err)
	out, err := s.FitTransform(row)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 0, -1}, out[0])
}
