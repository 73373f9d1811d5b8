package matching

import (
	"fmt"
	"strings"
)

// MissingColumnsError reports a prediction request lacking required job keys.
type MissingColumnsError struct {
	Missing []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("job is missing %d required columns: %s", len(e.Missing), strings.Join(e.Missing, ", "))
}

// ProcessingError wraps a model registry or scoring failure. No partial result
// accompanies it.
type ProcessingError struct {
	Op  string
	Err error
}

func (e *ProcessingError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *ProcessingError) Unwrap() error {
	return e.Err
}

func processing(op string, err error) error {
	return &ProcessingError{Op: op, Err: err}
}
