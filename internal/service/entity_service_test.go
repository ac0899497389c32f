package service

import (
	"context"
	"errors"
	"testing"

	"github.com/phrazzld/generic-crud/internal/domain"
	"github.com/phrazzld/generic-crud/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newItemService(t *testing.T, repo *MockItemRepository) EntityService[*domain.Item] {
	t.Helper()
	svc, err := NewEntityService[*domain.Item]("item", repo, nil)
	require.NoError(t, err)
	return svc
}

func TestNewEntityServiceNilRepo(t *testing.T) {
	svc, err := NewEntityService[*domain.Item]("item", nil, nil)

	assert.Nil(t, svc)
	var svcErr *EntityServiceError
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, "create_service", svcErr.Operation)
}

func TestFindAll(t *testing.T) {
	t.Run("empty store is not an error", func(t *testing.T) {
		svc := newItemService(t, &MockItemRepository{})

		items, err := svc.FindAll(context.Background())

		require.NoError(t, err)
		assert.Empty(t, items)
	})

	t.Run("repository error is wrapped", func(t *testing.T) {
		dbErr := errors.New("connection reset")
		svc := newItemService(t, &MockItemRepository{
			FindAllFn: func(context.Context) ([]*domain.Item, error) { return nil, dbErr },
		})

		_, err := svc.FindAll(context.Background())

		assert.ErrorIs(t, err, dbErr)
		assert.NotErrorIs(t, err, domain.ErrInvalidID)
	})
}

func TestFindPagePassesRequestThrough(t *testing.T) {
	var got store.PageRequest
	repo := &MockItemRepository{
		FindPageFn: func(_ context.Context, req store.PageRequest) (store.Page[*domain.Item], error) {
			got = req
			return store.NewPage([]*domain.Item{{ID: 3}}, req, 21), nil
		},
	}
	svc := newItemService(t, repo)
	req := store.PageRequest{Page: 2, Size: 10, Sort: store.Sort{Field: "name", Direction: store.Desc}}

	page, err := svc.FindPage(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, req, got)
	assert.Equal(t, 3, page.Page)
	assert.Equal(t, 3, page.TotalPages)
	assert.True(t, page.Last)
}

func TestFindPageUnknownSortField(t *testing.T) {
	svc := newItemService(t, &MockItemRepository{
		FindPageFn: func(context.Context, store.PageRequest) (store.Page[*domain.Item], error) {
			return store.Page[*domain.Item]{}, store.ErrUnknownSortField
		},
	})

	_, err := svc.FindPage(context.Background(), store.PageRequest{Size: 10})

	assert.ErrorIs(t, err, store.ErrUnknownSortField)
}

func TestFindByID(t *testing.T) {
	lamp := &domain.Item{ID: 1, Name: "lamp"}

	tests := []struct {
		name    string
		repo    *MockItemRepository
		id      int64
		want    *domain.Item
		wantErr error
	}{
		{
			name: "found",
			repo: &MockItemRepository{FindByIDFn: existing(lamp)},
			id:   1,
			want: lamp,
		},
		{
			name:    "not found becomes invalid id",
			repo:    &MockItemRepository{FindByIDFn: existing(lamp)},
			id:      999,
			wantErr: domain.ErrInvalidID,
		},
		{
			name: "other errors pass through",
			repo: &MockItemRepository{FindByIDFn: func(context.Context, int64) (*domain.Item, error) {
				return nil, context.DeadlineExceeded
			}},
			id:      1,
			wantErr: context.DeadlineExceeded,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := newItemService(t, tc.repo).FindByID(context.Background(), tc.id)

			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestFindByIDNotFoundKeepsStoreSentinel(t *testing.T) {
	svc := newItemService(t, &MockItemRepository{})

	_, err := svc.FindByID(context.Background(), 5)

	assert.ErrorIs(t, err, domain.ErrInvalidID)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestCreateDiscardsClientID(t *testing.T) {
	repo := &MockItemRepository{
		SaveFn: func(_ context.Context, item *domain.Item) (*domain.Item, error) {
			saved := *item
			saved.ID = 42
			return &saved, nil
		},
	}
	svc := newItemService(t, repo)

	created, err := svc.Create(context.Background(), &domain.Item{ID: 7, Name: "lamp"})

	require.NoError(t, err)
	require.Len(t, repo.SaveCalls, 1)
	assert.Zero(t, repo.SaveCalls[0].ID, "client id should be cleared before insert")
	assert.Equal(t, int64(42), created.ID)
}

func TestUpdate(t *testing.T) {
	t.Run("existing id is saved", func(t *testing.T) {
		repo := &MockItemRepository{FindByIDFn: existing(&domain.Item{ID: 1, Name: "old"})}
		svc := newItemService(t, repo)

		updated, err := svc.Update(context.Background(), &domain.Item{ID: 1, Name: "new"})

		require.NoError(t, err)
		assert.Equal(t, "new", updated.Name)
		require.Len(t, repo.SaveCalls, 1)
	})

	t.Run("unknown id is rejected without saving", func(t *testing.T) {
		repo := &MockItemRepository{}
		svc := newItemService(t, repo)

		_, err := svc.Update(context.Background(), &domain.Item{ID: 999, Name: "new"})

		assert.ErrorIs(t, err, domain.ErrInvalidID)
		assert.Empty(t, repo.SaveCalls)
	})
}

func TestSaveIntegrityViolation(t *testing.T) {
	repo := &MockItemRepository{
		SaveFn: func(context.Context, *domain.Item) (*domain.Item, error) {
			return nil, store.NewStoreError("item", "save", "duplicate name",
				errors.Join(store.ErrIntegrityViolation, store.ErrDuplicate))
		},
	}
	svc := newItemService(t, repo)

	_, err := svc.Save(context.Background(), &domain.Item{Name: "lamp"})

	assert.True(t, store.IsIntegrityError(err))
	assert.ErrorIs(t, err, store.ErrDuplicate)
}

func TestDelete(t *testing.T) {
	t.Run("existing id", func(t *testing.T) {
		lamp := &domain.Item{ID: 1}
		repo := &MockItemRepository{FindByIDFn: existing(lamp)}

		err := newItemService(t, repo).Delete(context.Background(), 1)

		require.NoError(t, err)
		assert.Equal(t, []*domain.Item{lamp}, repo.DeleteCalls)
	})

	t.Run("unknown id", func(t *testing.T) {
		repo := &MockItemRepository{}

		err := newItemService(t, repo).Delete(context.Background(), 999)

		assert.ErrorIs(t, err, domain.ErrInvalidID)
		assert.Empty(t, repo.DeleteCalls)
	})

	t.Run("referenced record", func(t *testing.T) {
		repo := &MockItemRepository{
			FindByIDFn: existing(&domain.Item{ID: 1}),
			DeleteFn: func(context.Context, *domain.Item) error {
				return store.ErrIntegrityViolation
			},
		}

		err := newItemService(t, repo).Delete(context.Background(), 1)

		assert.ErrorIs(t, err, store.ErrIntegrityViolation)
		assert.NotErrorIs(t, err, domain.ErrInvalidID)
	})
}

func TestNewEntityServiceError(t *testing.T) {
	assert.NoError(t, NewEntityServiceError("item", "op", "msg", nil))

	err := NewEntityServiceError("item", "find_by_id", "failed to fetch entity", store.ErrNotFound)
	assert.EqualError(t, err,
		"item service find_by_id failed: failed to fetch entity: invalid ID: entity not found")
}
