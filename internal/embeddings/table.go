// Package embeddings reads, writes and produces the per-applicant embedding table.
// Rows are aligned with the applicant table by position, not by id.
package embeddings

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

const (
	IDColumn     = "id_applicants"
	ColumnPrefix = "embedd_"
)

// Table holds one vector per applicant row. IDs are informational.
type Table struct {
	IDs     []string
	Vectors [][]float64
}

func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Vectors)
}

// Dim is the vector length, 0 for an empty table.
func (t *Table) Dim() int {
	if t.Len() == 0 {
		return 0
	}
	return len(t.Vectors[0])
}

// Columns returns embedd_1..embedd_N.
func (t *Table) Columns() []string {
	return ColumnNames(t.Dim())
}

func ColumnNames(dim int) []string {
	cols := make([]string, dim)
	for i := range cols {
		cols[i] = ColumnPrefix + strconv.Itoa(i+1)
	}
	return cols
}

// At returns the vector at applicant row position pos.
func (t *Table) At(pos int) ([]float64, bool) {
	if pos < 0 || pos >= t.Len() {
		return nil, false
	}
	return t.Vectors[pos], true
}

// Read loads an embedding CSV whose header is id_applicants,embedd_1..embedd_N.
func Read(path string) (*Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.ReuseRecord = false

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("reading header of %s: %w", path, err)
	}
	if len(header) < 2 || strings.TrimSpace(header[0]) != IDColumn {
		return nil, fmt.Errorf("%s: expected header %s,%s1..., got %v", path, IDColumn, ColumnPrefix, header)
	}
	dim := len(header) - 1

	t := &Table{}
	for line := 2; ; line++ {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading %s line %d: %w", path, line, err)
		}

		vec := make([]float64, dim)
		for i, raw := range record[1:] {
			v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
			if err != nil {
				return nil, fmt.Errorf("%s line %d column %s: %w", path, line, header[i+1], err)
			}
			vec[i] = v
		}
		t.IDs = append(t.IDs, record[0])
		t.Vectors = append(t.Vectors, vec)
	}

	return t, nil
}

// Write stores t as CSV, creating parent directories as needed.
func Write(path string, t *Table) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.Write(append([]string{IDColumn}, t.Columns()...)); err != nil {
		return err
	}

	record := make([]string, t.Dim()+1)
	for i, vec := range t.Vectors {
		if len(vec) != t.Dim() {
			return fmt.Errorf("row %d has %d values, expected %d", i, len(vec), t.Dim())
		}
		record[0] = ""
		if i < len(t.IDs) {
			record[0] = t.IDs[i]
		}
		for j, v := range vec {
			record[j+1] = strconv.FormatFloat(v, 'g', -1, 64)
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}
