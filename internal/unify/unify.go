// Package unify joins applications with their job and applicant into labeled training rows.
package unify

import (
	"strconv"
	"strings"

	"github.com/spigell/talent-match/internal/records"
)

const (
	ApplicantPrefix = "applicants_"
	ProspectPrefix  = "prospects_"
	JobPrefix       = "vagas_"

	TargetColumn = "target"
	IndexColumn  = ApplicantPrefix + records.ApplicantIDColumn
)

// Outcomes maps every application outcome kept for training to its label.
// Outcomes missing from the map are excluded.
var Outcomes = map[string]int{
	"Contratado pela Decision":       1,
	"Contratado como Hunting":        1,
	"Aprovado":                       1,
	"Proposta Aceita":                1,
	"Não Aprovado pelo Cliente":      0,
	"Não Aprovado pelo RH":           0,
	"Não Aprovado pelo Requisitante": 0,
	"Sem interesse nesta vaga":       0,
	"Recusado":                       0,
}

// Stats counts why application rows did not make it into the unified table.
type Stats struct {
	Prospects        int
	MissingJob       int
	MissingApplicant int
	UnknownOutcome   int
}

// Table is the unified training table. Index holds the applicant external id of
// each row and Positions the row position of that applicant in the applicant
// table it was joined from.
type Table struct {
	*records.Table
	Index     []string
	Positions []int
	Stats     Stats
}

// Target returns the label of row i.
func (t *Table) Target(i int) int {
	v, _ := t.Rows[i][TargetColumn].(int)
	return v
}

// Unify inner-joins prospects to jobs on the job id and to applicants on the
// professional code, keeps rows with a known outcome and labels them. Row order
// follows the prospects table. A zero professional code never joins.
func Unify(applicants, prospects, jobs *records.Table) *Table {
	a := applicants.WithPrefix(ApplicantPrefix)
	p := prospects.WithPrefix(ProspectPrefix)
	j := jobs.WithPrefix(JobPrefix)

	jobByID := make(map[string]int, j.Len())
	for i, row := range j.Rows {
		key := joinKey(row[JobPrefix+records.JobIDColumn])
		if _, seen := jobByID[key]; key == "" || seen {
			continue
		}
		jobByID[key] = i
	}

	applicantsByCode := make(map[int64][]int, a.Len())
	for i, row := range a.Rows {
		code, ok := codeKey(row[ApplicantPrefix+records.ApplicantCodeColumn])
		if !ok {
			continue
		}
		applicantsByCode[code] = append(applicantsByCode[code], i)
	}

	outcomeColumn := ProspectPrefix + records.ProspectOutcomeColumn
	columns := make([]string, 0, len(p.Columns)+len(j.Columns)+len(a.Columns))
	for _, col := range p.Columns {
		if col == outcomeColumn {
			col = TargetColumn
		}
		columns = append(columns, col)
	}
	columns = append(columns, j.Columns...)
	columns = append(columns, a.Columns...)

	out := &Table{
		Table:     records.NewTable(records.KindUnified, columns),
		Index:     make([]string, 0),
		Positions: make([]int, 0),
		Stats:     Stats{Prospects: p.Len()},
	}

	for _, prospect := range p.Rows {
		jobIdx, ok := jobByID[joinKey(prospect[ProspectPrefix+records.ProspectJobColumn])]
		if !ok {
			out.Stats.MissingJob++
			continue
		}

		code, ok := codeKey(prospect[ProspectPrefix+records.ProspectCodeColumn])
		matches := applicantsByCode[code]
		if !ok || len(matches) == 0 {
			out.Stats.MissingApplicant++
			continue
		}

		label, known := Outcomes[records.ValueAsString(prospect[outcomeColumn])]
		if !known {
			out.Stats.UnknownOutcome += len(matches)
			continue
		}

		for _, applicantIdx := range matches {
			row := make(records.Row, len(columns))
			for k, v := range prospect {
				row[k] = v
			}
			delete(row, outcomeColumn)
			row[TargetColumn] = label
			for k, v := range j.Rows[jobIdx] {
				row[k] = v
			}
			for k, v := range a.Rows[applicantIdx] {
				row[k] = v
			}

			out.Append(row)
			out.Index = append(out.Index, row.Text(IndexColumn))
			out.Positions = append(out.Positions, applicantIdx)
		}
	}

	return out
}

// joinKey canonicalizes an id so that "0042", 42 and "42" join together.
func joinKey(v any) string {
	s := strings.TrimSpace(records.ValueAsString(v))
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return strconv.FormatInt(n, 10)
	}
	return s
}

func codeKey(v any) (int64, bool) {
	var code int64
	switch val := v.(type) {
	case int64:
		code = val
	case int:
		code = int64(val)
	default:
		n, err := strconv.ParseInt(strings.TrimSpace(records.ValueAsString(v)), 10, 64)
		if err != nil {
			return 0, false
		}
		code = n
	}
	return code, code != 0
}
