package records

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"
)

// Loader flattens the nested per-entity JSON collections found under a base directory.
// A source that cannot be read or is structurally invalid yields an empty table and
// an error log entry; loading never fails the caller.
type Loader struct {
	baseDir string
	logger  *zap.Logger
}

type entry struct {
	key   string
	value map[string]any
}

type prospectDoc struct {
	Titulo     any              `mapstructure:"titulo"`
	Modalidade any              `mapstructure:"modalidade"`
	Prospects  []map[string]any `mapstructure:"prospects"`
}

func NewLoader(baseDir string, logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{baseDir: baseDir, logger: logger}
}

func (l *Loader) LoadApplicants(name string) *Table {
	table := NewTable(KindApplicants, ApplicantColumns())

	entries, err := l.readEntries(name)
	if err != nil {
		l.fail(KindApplicants, name, err)
		return NewTable(KindApplicants, ApplicantColumns())
	}

	for _, e := range entries {
		row := Row{ApplicantIDColumn: e.key}
		if err := flattenSections(row, e.value, applicantSections); err != nil {
			l.fail(KindApplicants, name, fmt.Errorf("applicant %s: %w", e.key, err))
			return NewTable(KindApplicants, ApplicantColumns())
		}
		for _, col := range applicantTopLevel {
			row[col] = orEmpty(e.value[col])
		}
		table.Append(row)
	}

	l.loaded(KindApplicants, name, table)
	return table
}

func (l *Loader) LoadJobs(name string) *Table {
	table := NewTable(KindJobs, JobColumns())

	entries, err := l.readEntries(name)
	if err != nil {
		l.fail(KindJobs, name, err)
		return NewTable(KindJobs, JobColumns())
	}

	for _, e := range entries {
		row := Row{JobIDColumn: e.key}
		if err := flattenSections(row, e.value, jobSections); err != nil {
			l.fail(KindJobs, name, fmt.Errorf("job %s: %w", e.key, err))
			return NewTable(KindJobs, JobColumns())
		}
		table.Append(row)
	}

	l.loaded(KindJobs, name, table)
	return table
}

// LoadProspects expands every job entry into one row per listed application.
func (l *Loader) LoadProspects(name string) *Table {
	table := NewTable(KindProspects, ProspectColumns())

	entries, err := l.readEntries(name)
	if err != nil {
		l.fail(KindProspects, name, err)
		return NewTable(KindProspects, ProspectColumns())
	}

	for _, e := range entries {
		var doc prospectDoc
		if err := mapstructure.Decode(e.value, &doc); err != nil {
			l.fail(KindProspects, name, fmt.Errorf("job %s: %w", e.key, err))
			return NewTable(KindProspects, ProspectColumns())
		}

		fanOut := len(doc.Prospects)
		for _, p := range doc.Prospects {
			row := Row{
				ProspectJobColumn:      e.key,
				ProspectJobTitleColumn: orEmpty(doc.Titulo),
				ProspectModalityColumn: orEmpty(doc.Modalidade),
				ProspectFanOutColumn:   fanOut,
			}
			for _, f := range prospectFields {
				row[f] = orEmpty(p[f])
			}
			table.Append(row)
		}
	}

	l.loaded(KindProspects, name, table)
	return table
}

// readEntries streams the top-level object so that file order is kept and
// repeated external ids can be rejected instead of silently overwritten.
func (l *Loader) readEntries(name string) ([]entry, error) {
	path := filepath.Join(l.baseDir, name)
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	dec := json.NewDecoder(file)
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("reading %s: top-level value is not an object", path)
	}

	var entries []entry
	seen := make(map[string]struct{})
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("reading %s: unexpected token %v", path, tok)
		}

		var value map[string]any
		if err := dec.Decode(&value); err != nil {
			return nil, fmt.Errorf("reading %s entry %q: %w", path, key, err)
		}

		if _, dup := seen[key]; dup {
			l.logger.Warn("rejecting duplicate external id",
				zap.String("file", name),
				zap.String("id", key),
			)
			continue
		}
		seen[key] = struct{}{}
		entries = append(entries, entry{key: key, value: value})
	}

	if _, err := dec.Token(); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	return entries, nil
}

func (l *Loader) fail(kind Kind, name string, err error) {
	l.logger.Error("loading source failed, continuing with an empty table",
		zap.String("entity", string(kind)),
		zap.String("file", name),
		zap.Error(err),
	)
}

func (l *Loader) loaded(kind Kind, name string, t *Table) {
	l.logger.Debug("source loaded",
		zap.String("entity", string(kind)),
		zap.String("file", name),
		zap.Int("rows", t.Len()),
	)
}

func flattenSections(row Row, doc map[string]any, sections []section) error {
	for _, s := range sections {
		values, err := sectionOf(doc, s.key)
		if err != nil {
			return err
		}
		for _, f := range s.fields {
			row[f.column] = orEmpty(values[f.source])
		}
	}
	return nil
}

func sectionOf(doc map[string]any, key string) (map[string]any, error) {
	raw, ok := doc[key]
	if !ok || raw == nil {
		return map[string]any{}, nil
	}

	var values map[string]any
	if err := mapstructure.Decode(raw, &values); err != nil {
		return nil, fmt.Errorf("section %s: %w", key, err)
	}
	return values, nil
}

func orEmpty(v any) any {
	if v == nil {
		return ""
	}
	return v
}
