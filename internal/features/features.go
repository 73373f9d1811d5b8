// Package features derives the engineered model inputs from job and application text.
package features

import (
	"strconv"
	"strings"

	"github.com/spigell/talent-match/internal/records"
)

// Columns read from a unified or single-job table.
const (
	TitleColumn    = "prospects_titulo"
	ContractColumn = "vagas_tipo_contratacao"
	EnglishColumn  = "vagas_nivel_ingles"
	SpanishColumn  = "vagas_nivel_espanhol"

	indexColumn = "applicants_id_applicants"
)

// Matrix is a dense feature table. Values[i] belongs to Index[i].
type Matrix struct {
	Columns []string
	Index   []string
	Values  [][]float64
}

func (m *Matrix) Len() int {
	if m == nil {
		return 0
	}
	return len(m.Values)
}

// Columns returns the engineered column names in output order.
func Columns() []string {
	cols := make([]string, 0, len(titleFlags)+len(contractFlags)+4)
	for _, f := range titleFlags {
		cols = append(cols, f.column)
	}
	cols = append(cols, SeniorityColumn)
	for _, f := range contractFlags {
		cols = append(cols, f.column)
	}
	cols = append(cols, MixedContractColumn, EnglishScoreColumn, SpanishScoreColumn)
	return cols
}

// Engineer computes the engineered features of every row of t. Only engineered
// columns are returned. Rows are indexed by applicant id when t carries one and
// by row number otherwise.
func Engineer(t *records.Table) *Matrix {
	m := &Matrix{
		Columns: Columns(),
		Index:   make([]string, 0, t.Len()),
		Values:  make([][]float64, 0, t.Len()),
	}
	if t == nil {
		return m
	}

	indexed := t.HasColumn(indexColumn)
	for i, row := range t.Rows {
		m.Values = append(m.Values, Row(row))
		if indexed {
			m.Index = append(m.Index, row.Text(indexColumn))
		} else {
			m.Index = append(m.Index, strconv.Itoa(i))
		}
	}
	return m
}

// Row computes the engineered feature vector of a single row. Missing columns
// read as empty text.
func Row(row records.Row) []float64 {
	title := row.Text(TitleColumn)
	contract := row.Text(ContractColumn)

	values := make([]float64, 0, len(titleFlags)+len(contractFlags)+4)
	for _, f := range titleFlags {
		values = append(values, boolFloat(f.pattern.MatchString(title)))
	}

	values = append(values, float64(Seniority(title)))

	types := 0
	for _, f := range contractFlags {
		matched := f.pattern.MatchString(contract)
		if matched && f.countsAsType {
			types++
		}
		values = append(values, boolFloat(matched))
	}
	values = append(values, boolFloat(strings.Contains(contract, ",") || types >= 2))

	values = append(values, LanguageScore(row.Text(EnglishColumn)), LanguageScore(row.Text(SpanishColumn)))
	return values
}

// SeniorityTier returns the name of the first tier whose pattern matches title.
func SeniorityTier(title string) string {
	for _, t := range seniorityTiers {
		if t.pattern.MatchString(title) {
			return t.name
		}
	}
	return OtherSeniority
}

// Seniority returns the ordinal of the first tier whose pattern matches title, 0 if none does.
func Seniority(title string) int {
	for _, t := range seniorityTiers {
		if t.pattern.MatchString(title) {
			return t.ordinal
		}
	}
	return 0
}

func LanguageScore(level string) float64 {
	return languageScale[strings.ToLower(strings.TrimSpace(level))]
}

func boolFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
