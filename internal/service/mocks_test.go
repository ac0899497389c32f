package service

import (
	"context"

	"github.com/phrazzld/generic-crud/internal/domain"
	"github.com/phrazzld/generic-crud/internal/store"
)

// MockItemRepository is a function-field mock of store.Repository[*domain.Item].
type MockItemRepository struct {
	FindByIDFn func(ctx context.Context, id int64) (*domain.Item, error)
	FindAllFn  func(ctx context.Context) ([]*domain.Item, error)
	FindPageFn func(ctx context.Context, req store.PageRequest) (store.Page[*domain.Item], error)
	SaveFn     func(ctx context.Context, item *domain.Item) (*domain.Item, error)
	DeleteFn   func(ctx context.Context, item *domain.Item) error

	SaveCalls   []*domain.Item
	DeleteCalls []*domain.Item
}

func (m *MockItemRepository) FindByID(ctx context.Context, id int64) (*domain.Item, error) {
	if m.FindByIDFn != nil {
		return m.FindByIDFn(ctx, id)
	}
	return nil, store.ErrNotFound
}

func (m *MockItemRepository) FindAll(ctx context.Context) ([]*domain.Item, error) {
	if m.FindAllFn != nil {
		return m.FindAllFn(ctx)
	}
	return []*domain.Item{}, nil
}

func (m *MockItemRepository) FindPage(ctx context.Context, req store.PageRequest) (store.Page[*domain.Item], error) {
	if m.FindPageFn != nil {
		return m.FindPageFn(ctx, req)
	}
	return store.NewPage[*domain.Item](nil, req, 0), nil
}

func (m *MockItemRepository) Save(ctx context.Context, item *domain.Item) (*domain.Item, error) {
	m.SaveCalls = append(m.SaveCalls, item)
	if m.SaveFn != nil {
		return m.SaveFn(ctx, item)
	}
	return item, nil
}

func (m *MockItemRepository) Delete(ctx context.Context, item *domain.Item) error {
	m.DeleteCalls = append(m.DeleteCalls, item)
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, item)
	}
	return nil
}

func existing(items ...*domain.Item) func(context.Context, int64) (*domain.Item, error) {
	return func(_ context.Context, id int64) (*domain.Item, error) {
		for _, it := range items {
			if it.ID == id {
				return it, nil
			}
		}
		return nil, store.ErrNotFound
	}
}
