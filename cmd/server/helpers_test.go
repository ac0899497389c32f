package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/phrazzld/generic-crud/internal/config"
	"github.com/phrazzld/generic-crud/internal/domain"
	"github.com/phrazzld/generic-crud/internal/store"
	"github.com/stretchr/testify/require"
)

// memRepository is an in-memory store.Repository used to exercise the
// wiring without a database.
type memRepository[T domain.Entity] struct {
	mu     sync.Mutex
	rows   map[int64]T
	nextID int64
}

func newMemRepository[T domain.Entity]() *memRepository[T] {
	return &memRepository[T]{rows: make(map[int64]T)}
}

func (m *memRepository[T]) sorted() []T {
	ids := make([]int64, 0, len(m.rows))
	for id := range m.rows {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	out := make([]T, 0, len(ids))
	for _, id := range ids {
		out = append(out, m.rows[id])
	}
	return out
}

func (m *memRepository[T]) FindByID(_ context.Context, id int64) (T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	row, ok := m.rows[id]
	if !ok {
		var zero T
		return zero, store.ErrNotFound
	}
	return row, nil
}

func (m *memRepository[T]) FindAll(_ context.Context) ([]T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sorted(), nil
}

func (m *memRepository[T]) FindPage(_ context.Context, req store.PageRequest) (store.Page[T], error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if req.Sort.Field != "id" {
		return store.Page[T]{}, fmt.Errorf("%w: %q", store.ErrUnknownSortField, req.Sort.Field)
	}

	all := m.sorted()
	start := min(req.Offset(), len(all))
	end := min(start+req.Size, len(all))
	return store.NewPage(all[start:end], req, int64(len(all))), nil
}

func (m *memRepository[T]) Save(_ context.Context, entity T) (T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if entity.GetID() == 0 {
		m.nextID++
		entity.SetID(m.nextID)
	}
	m.rows[entity.GetID()] = entity
	return entity, nil
}

func (m *memRepository[T]) Delete(_ context.Context, entity T) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[entity.GetID()]; !ok {
		return store.ErrNotFound
	}
	delete(m.rows, entity.GetID())
	return nil
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Port:            8080,
			LogLevel:        "info",
			RequestTimeout:  5 * time.Second,
			MaxBodyBytes:    1 << 20,
			MaxPageSize:     1000,
			ShutdownTimeout: 5 * time.Second,
		},
		Database: config.DatabaseConfig{Driver: driverPostgres, URL: "postgres://unused"},
	}
}

// newTestApplication builds an application over in-memory repositories.
func newTestApplication(t *testing.T) (*application, *repositories) {
	t.Helper()
	repos := &repositories{
		items:      newMemRepository[*domain.Item](),
		categories: newMemRepository[*domain.Category](),
		close:      func() error { return nil },
	}

	app, err := newApplication(testConfig(), quietLogger(), repos)
	require.NoError(t, err)
	return app, repos
}
