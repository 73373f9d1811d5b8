// Package model implements the binary gradient-boosted tree classifier used to
// score candidate/job pairs, plus the split, metric and scaling helpers around it.
package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sort"
)

// Params are the boosting hyperparameters.
type Params struct {
	NEstimators    int     `mapstructure:"n-estimators" json:"n_estimators" validate:"gt=0"`
	MaxDepth       int     `mapstructure:"max-depth" json:"max_depth" validate:"gt=0"`
	LearningRate   float64 `mapstructure:"learning-rate" json:"learning_rate" validate:"gt=0"`
	MinChildWeight float64 `mapstructure:"min-child-weight" json:"min_child_weight" validate:"gte=0"`
	Lambda         float64 `mapstructure:"lambda" json:"lambda" validate:"gte=0"`
	Gamma          float64 `mapstructure:"gamma" json:"gamma" validate:"gte=0"`
}

func DefaultParams() Params {
	return Params{
		NEstimators:    100,
		MaxDepth:       6,
		LearningRate:   0.3,
		MinChildWeight: 1,
		Lambda:         1,
		Gamma:          0,
	}
}

// AsMap flattens the parameters for logging and registry metadata.
func (p Params) AsMap() map[string]any {
	return map[string]any{
		"n_estimators":     p.NEstimators,
		"max_depth":        p.MaxDepth,
		"learning_rate":    p.LearningRate,
		"min_child_weight": p.MinChildWeight,
		"lambda":           p.Lambda,
		"gamma":            p.Gamma,
	}
}

var (
	ErrEmptyTraining = errors.New("no training rows")
	ErrNotFitted     = errors.New("classifier is not fitted")
)

// Node is a tree node. Leaves carry Value; internal nodes send x[Feature] <
// Threshold to Left and everything else to Right.
type Node struct {
	Leaf      bool    `json:"leaf,omitempty"`
	Value     float64 `json:"value,omitempty"`
	Feature   int     `json:"feature,omitempty"`
	Threshold float64 `json:"threshold,omitempty"`
	Left      int     `json:"left,omitempty"`
	Right     int     `json:"right,omitempty"`
}

type Tree struct {
	Nodes []Node `json:"nodes"`
}

func (t *Tree) predict(x []float64) float64 {
	i := 0
	for {
		n := t.Nodes[i]
		if n.Leaf {
			return n.Value
		}
		if x[n.Feature] < n.Threshold {
			i = n.Left
		} else {
			i = n.Right
		}
	}
}

// Classifier is a boosted ensemble of regression trees trained on the logistic
// loss with second-order split gains.
type Classifier struct {
	Params   Params `json:"params"`
	Features int    `json:"features"`
	Trees    []Tree `json:"trees"`
}

func NewClassifier(p Params) *Classifier {
	return &Classifier{Params: p}
}

// Fit trains the ensemble on rows X with labels y in {0, 1}.
func (c *Classifier) Fit(X [][]float64, y []int) error {
	n := len(X)
	if n == 0 {
		return ErrEmptyTraining
	}
	if len(y) != n {
		return fmt.Errorf("got %d rows and %d labels", n, len(y))
	}

	width := len(X[0])
	for i, row := range X {
		if len(row) != width {
			return fmt.Errorf("row %d has %d features, expected %d", i, len(row), width)
		}
	}

	c.Features = width
	c.Trees = make([]Tree, 0, c.Params.NEstimators)

	sorted := presort(X, width)
	margin := make([]float64, n)
	grad := make([]float64, n)
	hess := make([]float64, n)

	for round := 0; round < c.Params.NEstimators; round++ {
		for i := range X {
			p := sigmoid(margin[i])
			grad[i] = p - float64(y[i])
			hess[i] = p * (1 - p)
		}

		tree := c.grow(X, sorted, grad, hess)
		for i, row := range X {
			margin[i] += tree.predict(row)
		}
		c.Trees = append(c.Trees, tree)
	}

	return nil
}

// PredictProba returns the positive-class probability of every row.
func (c *Classifier) PredictProba(X [][]float64) ([]float64, error) {
	if c.Features == 0 {
		return nil, ErrNotFitted
	}

	out := make([]float64, len(X))
	for i, row := range X {
		if len(row) != c.Features {
			return nil, fmt.Errorf("row %d has %d features, expected %d", i, len(row), c.Features)
		}
		margin := 0.0
		for t := range c.Trees {
			margin += c.Trees[t].predict(row)
		}
		out[i] = sigmoid(margin)
	}
	return out, nil
}

// Predict returns hard labels at the 0.5 threshold.
func (c *Classifier) Predict(X [][]float64) ([]int, error) {
	proba, err := c.PredictProba(X)
	if err != nil {
		return nil, err
	}
	labels := make([]int, len(proba))
	for i, p := range proba {
		if p >= 0.5 {
			labels[i] = 1
		}
	}
	return labels, nil
}

func (c *Classifier) Marshal() ([]byte, error) {
	return json.Marshal(c)
}

// Load restores a classifier serialized with Marshal.
func Load(data []byte) (*Classifier, error) {
	var c Classifier
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("decoding classifier: %w", err)
	}
	if c.Features == 0 {
		return nil, ErrNotFitted
	}
	for i, t := range c.Trees {
		if len(t.Nodes) == 0 {
			return nil, fmt.Errorf("tree %d has no nodes", i)
		}
	}
	return &c, nil
}

// presort returns, per feature, the row indices ordered by that feature's value.
func presort(X [][]float64, width int) [][]int {
	sorted := make([][]int, width)
	for f := 0; f < width; f++ {
		idx := make([]int, len(X))
		for i := range idx {
			idx[i] = i
		}
		sort.SliceStable(idx, func(a, b int) bool {
			return X[idx[a]][f] < X[idx[b]][f]
		})
		sorted[f] = idx
	}
	return sorted
}

type split struct {
	gain      float64
	feature   int
	threshold float64
}

type scanState struct {
	gl, hl float64
	last   float64
	seen   bool
}

// grow builds one tree level by level. Every level is a single pass over the
// presorted feature columns with per-node running sums.
func (c *Classifier) grow(X [][]float64, sorted [][]int, grad, hess []float64) Tree {
	lambda := c.Params.Lambda
	eta := c.Params.LearningRate

	var g, h float64
	for i := range grad {
		g += grad[i]
		h += hess[i]
	}

	tree := Tree{Nodes: []Node{{}}}
	// pos maps each row to the frontier slot it belongs to, -1 once its node is final.
	pos := make([]int, len(X))
	frontier := []int{0}
	sumG := []float64{g}
	sumH := []float64{h}

	for depth := 0; depth < c.Params.MaxDepth && len(frontier) > 0; depth++ {
		best := make([]split, len(frontier))
		for s := range best {
			best[s].feature = -1
		}

		for f, order := range sorted {
			state := make([]scanState, len(frontier))
			for _, i := range order {
				slot := pos[i]
				if slot < 0 {
					continue
				}
				st := &state[slot]
				x := X[i][f]

				if st.seen && x != st.last {
					gr, hr := sumG[slot]-st.gl, sumH[slot]-st.hl
					if st.hl >= c.Params.MinChildWeight && hr >= c.Params.MinChildWeight {
						gain := 0.5*(st.gl*st.gl/(st.hl+lambda)+gr*gr/(hr+lambda)-sumG[slot]*sumG[slot]/(sumH[slot]+lambda)) - c.Params.Gamma
						if gain > best[slot].gain {
							best[slot] = split{gain: gain, feature: f, threshold: (st.last + x) / 2}
						}
					}
				}

				st.gl += grad[i]
				st.hl += hess[i]
				st.last = x
				st.seen = true
			}
		}

		// Turn the frontier into internal nodes or leaves.
		nextFrontier := make([]int, 0, 2*len(frontier))
		var nextG, nextH []float64
		remap := make([][2]int, len(frontier))

		for s, nodeIdx := range frontier {
			b := best[s]
			if b.feature < 0 {
				tree.Nodes[nodeIdx] = Node{Leaf: true, Value: -eta * sumG[s] / (sumH[s] + lambda)}
				remap[s] = [2]int{-1, -1}
				continue
			}

			left := len(tree.Nodes)
			tree.Nodes = append(tree.Nodes, Node{}, Node{})
			tree.Nodes[nodeIdx] = Node{Feature: b.feature, Threshold: b.threshold, Left: left, Right: left + 1}

			remap[s] = [2]int{len(nextFrontier), len(nextFrontier) + 1}
			nextFrontier = append(nextFrontier, left, left+1)
			nextG = append(nextG, 0, 0)
			nextH = append(nextH, 0, 0)
		}

		for i, slot := range pos {
			if slot < 0 {
				continue
			}
			if remap[slot][0] < 0 {
				pos[i] = -1
				continue
			}
			nodeIdx := frontier[slot]
			next := remap[slot][1]
			if X[i][tree.Nodes[nodeIdx].Feature] < tree.Nodes[nodeIdx].Threshold {
				next = remap[slot][0]
			}
			pos[i] = next
			nextG[next] += grad[i]
			nextH[next] += hess[i]
		}

		frontier, sumG, sumH = nextFrontier, nextG, nextH
	}

	for s, nodeIdx := range frontier {
		tree.Nodes[nodeIdx] = Node{Leaf: true, Value: -eta * sumG[s] / (sumH[s] + lambda)}
	}

	return tree
}

func sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}
