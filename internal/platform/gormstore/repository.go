package gormstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/generic-crud/internal/domain"
	"github.com/phrazzld/generic-crud/internal/platform/logger"
	"github.com/phrazzld/generic-crud/internal/store"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// EntityPtr constrains T to a pointer to E that implements domain.Entity.
type EntityPtr[E any] interface {
	*E
	domain.Entity
}

// Repository implements store.Repository[T] with gorm. E is the model struct
// and T its pointer, e.g. Repository[domain.Item, *domain.Item].
type Repository[E any, T EntityPtr[E]] struct {
	db       *gorm.DB
	entity   string
	sortable store.SortColumns
	logger   *slog.Logger
}

// Ensure Repository implements store.Repository.
var _ store.Repository[*domain.Item] = (*Repository[domain.Item, *domain.Item])(nil)

// NewRepository creates a gorm repository for model E. entity names it in
// logs and errors; sortable maps client sort fields to columns.
func NewRepository[E any, T EntityPtr[E]](
	db *gorm.DB,
	entity string,
	sortable store.SortColumns,
	logger *slog.Logger,
) *Repository[E, T] {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Repository[E, T]{
		db:       db,
		entity:   entity,
		sortable: sortable,
		logger:   logger.With(slog.String("component", entity+"_repository")),
	}
}

func (r *Repository[E, T]) fail(ctx context.Context, op string, err error) error {
	mapped := MapError(err)
	log := logger.FromContextOrDefault(ctx, r.logger)
	switch {
	case errors.Is(mapped, store.ErrNotFound):
		log.Debug("entity not found", slog.String("operation", op))
	case store.IsIntegrityError(mapped):
		log.Warn("constraint violation", slog.String("operation", op), slog.String("error", err.Error()))
	default:
		log.Error("database operation failed", slog.String("operation", op), slog.String("error", err.Error()))
	}
	return store.NewStoreError(r.entity, op, "gorm operation failed", mapped)
}

// FindByID implements store.Repository.FindByID.
func (r *Repository[E, T]) FindByID(ctx context.Context, id int64) (T, error) {
	var model E
	if err := r.db.WithContext(ctx).First(&model, id).Error; err != nil {
		return nil, r.fail(ctx, "find_by_id", err)
	}
	return T(&model), nil
}

// FindAll implements store.Repository.FindAll.
func (r *Repository[E, T]) FindAll(ctx context.Context) ([]T, error) {
	var models []E
	if err := r.db.WithContext(ctx).Order("id").Find(&models).Error; err != nil {
		return nil, r.fail(ctx, "find_all", err)
	}
	return pointers[E, T](models), nil
}

// FindPage implements store.Repository.FindPage. The count and the page are
// read in one read-only transaction.
func (r *Repository[E, T]) FindPage(ctx context.Context, req store.PageRequest) (store.Page[T], error) {
	column, err := r.sortable.Resolve(req.Sort.Field)
	if err != nil {
		return store.Page[T]{}, store.NewStoreError(r.entity, "find_page", "invalid sort", err)
	}

	var (
		total  int64
		models []E
	)
	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(new(E)).Count(&total).Error; err != nil {
			return err
		}
		if total == 0 || int64(req.Offset()) >= total {
			return nil
		}

		q := tx.Order(clause.OrderByColumn{
			Column: clause.Column{Name: column},
			Desc:   req.Sort.Direction == store.Desc,
		})
		if column != "id" {
			q = q.Order("id")
		}
		return q.Limit(req.Size).Offset(req.Offset()).Find(&models).Error
	}, &sql.TxOptions{ReadOnly: true})
	if err != nil {
		return store.Page[T]{}, r.fail(ctx, "find_page", err)
	}

	return store.NewPage(pointers[E, T](models), req, total), nil
}

// Save implements store.Repository.Save. A zero id inserts with a generated
// key; any other id inserts or replaces that row, keeping its created_at.
func (r *Repository[E, T]) Save(ctx context.Context, entity T) (T, error) {
	db := r.db.WithContext(ctx)

	if entity.GetID() == 0 {
		if err := db.Create(entity).Error; err != nil {
			return nil, r.fail(ctx, "save", err)
		}
		return entity, nil
	}

	if err := db.Clauses(clause.OnConflict{UpdateAll: true}).Create(entity).Error; err != nil {
		return nil, r.fail(ctx, "save", err)
	}

	// Reload so timestamps reflect the stored row.
	saved, err := r.FindByID(ctx, entity.GetID())
	if err != nil {
		return nil, fmt.Errorf("reload after save: %w", err)
	}
	return saved, nil
}

// Delete implements store.Repository.Delete.
func (r *Repository[E, T]) Delete(ctx context.Context, entity T) error {
	result := r.db.WithContext(ctx).Delete(entity)
	if result.Error != nil {
		return r.fail(ctx, "delete", result.Error)
	}
	if result.RowsAffected == 0 {
		return store.NewStoreError(r.entity, "delete",
			fmt.Sprintf("no %s with id %d", r.entity, entity.GetID()), store.ErrNotFound)
	}
	return nil
}

func pointers[E any, T EntityPtr[E]](models []E) []T {
	out := make([]T, len(models))
	for i := range models {
		out[i] = T(&models[i])
	}
	return out
}
