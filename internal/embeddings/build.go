package embeddings

import (
	"context"
	"fmt"
	"strings"
)

// Embedder turns texts into fixed-length vectors, one per text, in input order.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float64, error)
	Dimension() int
}

const defaultBatch = 32

// Build embeds texts in batches and returns a table aligned with them. Blank
// texts get a zero vector without reaching the embedder.
func Build(ctx context.Context, embedder Embedder, ids, texts []string, batch int) (*Table, error) {
	if len(ids) != len(texts) {
		return nil, fmt.Errorf("got %d ids and %d texts", len(ids), len(texts))
	}
	if batch <= 0 {
		batch = defaultBatch
	}

	dim := embedder.Dimension()
	t := &Table{IDs: append([]string(nil), ids...), Vectors: make([][]float64, len(texts))}

	pending := make([]int, 0, batch)
	flush := func() error {
		if len(pending) == 0 {
			return nil
		}
		chunk := make([]string, len(pending))
		for i, pos := range pending {
			chunk[i] = texts[pos]
		}

		vectors, err := embedder.Embed(ctx, chunk)
		if err != nil {
			return fmt.Errorf("embedding rows %d..%d: %w", pending[0], pending[len(pending)-1], err)
		}
		if len(vectors) != len(chunk) {
			return fmt.Errorf("embedder returned %d vectors for %d texts", len(vectors), len(chunk))
		}
		for i, pos := range pending {
			if len(vectors[i]) != dim {
				return fmt.Errorf("row %d: embedder returned %d values, expected %d", pos, len(vectors[i]), dim)
			}
			t.Vectors[pos] = vectors[i]
		}
		pending = pending[:0]
		return nil
	}

	for pos, text := range texts {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if strings.TrimSpace(text) == "" {
			t.Vectors[pos] = make([]float64, dim)
			continue
		}
		pending = append(pending, pos)
		if len(pending) == batch {
			if err := flush(); err != nil {
				return nil, err
			}
		}
	}
	if err := flush(); err != nil {
		return nil, err
	}

	return t, nil
}
