package registry

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Memory keeps registered versions in process memory.
type Memory struct {
	mu      sync.Mutex
	entries map[string][]*Entry
	now     func() time.Time
}

func NewMemory() *Memory {
	return &Memory{entries: make(map[string][]*Entry), now: time.Now}
}

func (m *Memory) Register(ctx context.Context, r Registration) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if r.Name == "" {
		return 0, fmt.Errorf("model name is required")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	version := len(m.entries[r.Name]) + 1
	m.entries[r.Name] = append(m.entries[r.Name], &Entry{
		Registration: r,
		Version:      version,
		CreatedAt:    m.now().UTC(),
	})
	return version, nil
}

func (m *Memory) Latest(ctx context.Context, name string) (*Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	versions := m.entries[name]
	if len(versions) == 0 {
		return nil, fmt.Errorf("%s: %w", name, ErrNotFound)
	}
	latest := *versions[len(versions)-1]
	return &latest, nil
}
