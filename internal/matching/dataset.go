package matching

import (
	"fmt"
	"slices"

	"github.com/spigell/talent-match/internal/embeddings"
	"github.com/spigell/talent-match/internal/features"
	"github.com/spigell/talent-match/internal/unify"
)

// TrainingSet is the labeled model input: engineered features followed by the
// applicant embedding on every row.
type TrainingSet struct {
	Columns []string
	Index   []string
	X       [][]float64
	Y       []int
	// Dropped counts unified rows whose applicant has no embedding.
	Dropped int
}

func (s *TrainingSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.X)
}

// Assemble joins the feature matrix of a unified table with the embedding of
// each row's applicant, looked up by the applicant's row position.
func Assemble(m *features.Matrix, u *unify.Table, emb *embeddings.Table) (*TrainingSet, error) {
	if m.Len() != u.Len() {
		return nil, fmt.Errorf("feature matrix has %d rows, unified table has %d", m.Len(), u.Len())
	}

	set := &TrainingSet{
		Columns: slices.Concat(m.Columns, emb.Columns()),
		Index:   make([]string, 0, m.Len()),
		X:       make([][]float64, 0, m.Len()),
		Y:       make([]int, 0, m.Len()),
	}

	for i, row := range m.Values {
		vec, ok := emb.At(u.Positions[i])
		if !ok {
			set.Dropped++
			continue
		}
		set.X = append(set.X, slices.Concat(row, vec))
		set.Y = append(set.Y, u.Target(i))
		set.Index = append(set.Index, u.Index[i])
	}

	return set, nil
}
