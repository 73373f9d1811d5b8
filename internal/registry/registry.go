// Package registry stores trained models under a name with increasing versions.
package registry

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when no version is registered under a name.
var ErrNotFound = errors.New("model not found")

// Signature names the model inputs, in column order, and its output.
type Signature struct {
	Inputs []string `json:"inputs"`
	Output string   `json:"output"`
}

// Registration is everything recorded for a new model version.
type Registration struct {
	Name      string
	RunID     string
	Model     []byte
	Signature Signature
	Example   [][]float64
	Params    map[string]any
	Metrics   map[string]float64
}

// Entry is a registered model version.
type Entry struct {
	Registration
	Version   int
	CreatedAt time.Time
}

// Registry registers model versions and resolves the latest one.
type Registry interface {
	Register(ctx context.Context, r Registration) (int, error)
	Latest(ctx context.Context, name string) (*Entry, error)
}
