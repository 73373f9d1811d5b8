package records

import (
	"encoding/json"
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"
)

// Kind names the source entity a table was built from.
type Kind string

const (
	KindApplicants Kind = "applicants"
	KindJobs       Kind = "vagas"
	KindProspects  Kind = "prospects"
	KindUnified    Kind = "unified"
)

// Row is a single flat record keyed by column name.
type Row map[string]any

// Table is an ordered set of flat rows sharing a column set.
// Stages never mutate a table they receive; they return a new one.
type Table struct {
	Kind    Kind
	Columns []string
	Rows    []Row
}

func NewTable(kind Kind, columns []string) *Table {
	return &Table{
		Kind:    kind,
		Columns: slices.Clone(columns),
		Rows:    make([]Row, 0),
	}
}

func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

func (t *Table) HasColumn(name string) bool {
	return slices.Contains(t.Columns, name)
}

// Append adds a row, filling every declared column that the row lacks with "".
func (t *Table) Append(row Row) {
	for _, col := range t.Columns {
		if _, ok := row[col]; !ok {
			row[col] = ""
		}
	}
	t.Rows = append(t.Rows, row)
}

// Clone returns a copy whose rows can be modified without touching t.
func (t *Table) Clone() *Table {
	out := &Table{
		Kind:    t.Kind,
		Columns: slices.Clone(t.Columns),
		Rows:    make([]Row, 0, len(t.Rows)),
	}
	for _, row := range t.Rows {
		out.Rows = append(out.Rows, row.Clone())
	}
	return out
}

// WithPrefix returns a copy with every column name prefixed.
func (t *Table) WithPrefix(prefix string) *Table {
	out := &Table{
		Kind:    t.Kind,
		Columns: make([]string, 0, len(t.Columns)),
		Rows:    make([]Row, 0, len(t.Rows)),
	}
	for _, col := range t.Columns {
		out.Columns = append(out.Columns, prefix+col)
	}
	for _, row := range t.Rows {
		prefixed := make(Row, len(row))
		for k, v := range row {
			prefixed[prefix+k] = v
		}
		out.Rows = append(out.Rows, prefixed)
	}
	return out
}

// Rename returns a copy with column from renamed to to.
func (t *Table) Rename(from, to string) *Table {
	out := t.Clone()
	for i, col := range out.Columns {
		if col == from {
			out.Columns[i] = to
		}
	}
	for _, row := range out.Rows {
		if v, ok := row[from]; ok {
			delete(row, from)
			row[to] = v
		}
	}
	return out
}

// DumpToTmpFile writes the table as indented JSON to a temporary file and returns its name.
func (t *Table) DumpToTmpFile() (string, error) {
	file, err := os.CreateTemp("", fmt.Sprintf("%s_*.json", t.Kind))
	if err != nil {
		return "", err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(t.Rows); err != nil {
		return "", err
	}
	return file.Name(), nil
}

func (r Row) Clone() Row {
	out := make(Row, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Text returns the textual form of a column value. Missing and nil values are "".
func (r Row) Text(col string) string {
	return ValueAsString(r[col])
}

// ValueAsString renders any cell value as text.
func ValueAsString(v any) string {
	if v == nil {
		return ""
	}

	switch typed := v.(type) {
	case string:
		return typed
	case json.Number:
		return typed.String()
	case float64:
		return strconv.FormatFloat(typed, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(typed), 'f', -1, 32)
	case int:
		return strconv.Itoa(typed)
	case int64:
		return strconv.FormatInt(typed, 10)
	case bool:
		return strconv.FormatBool(typed)
	case time.Time:
		return typed.Format(time.RFC3339)
	case *time.Time:
		if typed == nil {
			return ""
		}
		return typed.Format(time.RFC3339)
	case fmt.Stringer:
		return typed.String()
	case []any:
		parts := make([]string, 0, len(typed))
		for _, item := range typed {
			parts = append(parts, ValueAsString(item))
		}
		return strings.Join(parts, ", ")
	default:
		return fmt.Sprintf("%v", v)
	}
}
