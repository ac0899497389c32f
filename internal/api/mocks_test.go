package api

import (
	"context"

	"github.com/phrazzld/generic-crud/internal/domain"
	"github.com/phrazzld/generic-crud/internal/store"
)

// mockItemRepository is a function-field mock of store.Repository[*domain.Item].
// Unset functions behave like an empty store.
type mockItemRepository struct {
	findByIDFn func(ctx context.Context, id int64) (*domain.Item, error)
	findAllFn  func(ctx context.Context) ([]*domain.Item, error)
	findPageFn func(ctx context.Context, req store.PageRequest) (store.Page[*domain.Item], error)
	saveFn     func(ctx context.Context, item *domain.Item) (*domain.Item, error)
	deleteFn   func(ctx context.Context, item *domain.Item) error

	pageRequests []store.PageRequest
	saved        []*domain.Item
	deleted      []*domain.Item
}

func (m *mockItemRepository) FindByID(ctx context.Context, id int64) (*domain.Item, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return nil, store.ErrNotFound
}

func (m *mockItemRepository) FindAll(ctx context.Context) ([]*domain.Item, error) {
	if m.findAllFn != nil {
		return m.findAllFn(ctx)
	}
	return []*domain.Item{}, nil
}

func (m *mockItemRepository) FindPage(ctx context.Context, req store.PageRequest) (store.Page[*domain.Item], error) {
	m.pageRequests = append(m.pageRequests, req)
	if m.findPageFn != nil {
		return m.findPageFn(ctx, req)
	}
	return store.NewPage[*domain.Item](nil, req, 0), nil
}

func (m *mockItemRepository) Save(ctx context.Context, item *domain.Item) (*domain.Item, error) {
	m.saved = append(m.saved, item)
	if m.saveFn != nil {
		return m.saveFn(ctx, item)
	}
	return item, nil
}

func (m *mockItemRepository) Delete(ctx context.Context, item *domain.Item) error {
	m.deleted = append(m.deleted, item)
	if m.deleteFn != nil {
		return m.deleteFn(ctx, item)
	}
	return nil
}

func itemsByID(items ...*domain.Item) func(context.Context, int64) (*domain.Item, error) {
	return func(_ context.Context, id int64) (*domain.Item, error) {
		for _, it := range items {
			if it.ID == id {
				copied := *it
				return &copied, nil
			}
		}
		return nil, store.ErrNotFound
	}
}
