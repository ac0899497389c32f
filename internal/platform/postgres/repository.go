package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/phrazzld/generic-crud/internal/domain"
	"github.com/phrazzld/generic-crud/internal/platform/logger"
	"github.com/phrazzld/generic-crud/internal/store"
)

// Repository implements store.Repository for any entity described by a Table,
// using a PostgreSQL database as the storage backend.
type Repository[T domain.Entity] struct {
	db     *sql.DB
	table  Table[T]
	logger *slog.Logger

	selectByID  string
	selectAll   string
	countAll    string
	insert      string
	upsert      string
	deleteByID  string
	selectPaged string
}

// Ensure Repository implements store.Repository.
var _ store.Repository[*domain.Item] = (*Repository[*domain.Item])(nil)

// NewRepository creates a repository for the entity mapped by table.
// If logger is nil, a default logger will be used.
func NewRepository[T domain.Entity](db *sql.DB, table Table[T], logger *slog.Logger) *Repository[T] {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	r := &Repository[T]{
		db:     db,
		table:  table,
		logger: logger.With(slog.String("component", table.Entity+"_repository")),
	}
	r.buildQueries()
	return r
}

func (r *Repository[T]) buildQueries() {
	t := r.table
	list := t.SelectList()

	r.selectByID = fmt.Sprintf("SELECT %s FROM %s WHERE id = $1", list, t.Name)
	r.selectAll = fmt.Sprintf("SELECT %s FROM %s ORDER BY id", list, t.Name)
	r.countAll = fmt.Sprintf("SELECT COUNT(*) FROM %s", t.Name)
	r.deleteByID = fmt.Sprintf("DELETE FROM %s WHERE id = $1", t.Name)
	// The ORDER BY clause is filled in per request from the sortable columns.
	r.selectPaged = fmt.Sprintf("SELECT %s FROM %s ORDER BY %%s LIMIT $1 OFFSET $2", list, t.Name)

	cols := strings.Join(t.Columns, ", ")
	r.insert = fmt.Sprintf(
		"INSERT INTO %s (%s, created_at, updated_at) VALUES (%s, NOW(), NOW()) RETURNING %s",
		t.Name, cols, placeholders(1, len(t.Columns)), list)

	updates := make([]string, 0, len(t.Columns)+1)
	for _, c := range t.Columns {
		updates = append(updates, c+" = EXCLUDED."+c)
	}
	updates = append(updates, "updated_at = NOW()")
	r.upsert = fmt.Sprintf(
		"INSERT INTO %s (id, %s, created_at, updated_at) VALUES ($1, %s, NOW(), NOW()) "+
			"ON CONFLICT (id) DO UPDATE SET %s RETURNING %s",
		t.Name, cols, placeholders(2, len(t.Columns)), strings.Join(updates, ", "), list)
}

// placeholders returns n positional parameters starting at $from.
func placeholders(from, n int) string {
	ps := make([]string, n)
	for i := range ps {
		ps[i] = "$" + strconv.Itoa(from+i)
	}
	return strings.Join(ps, ", ")
}

// FindByID implements store.Repository.FindByID.
func (r *Repository[T]) FindByID(ctx context.Context, id int64) (T, error) {
	log := logger.FromContextOrDefault(ctx, r.logger)

	entity, err := r.table.Scan(r.db.QueryRowContext(ctx, r.selectByID, id))
	if err != nil {
		var zero T
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("entity not found", slog.String("table", r.table.Name), slog.Int64("id", id))
			return zero, store.NewStoreError(r.table.Entity, "find_by_id",
				fmt.Sprintf("no %s with id %d", r.table.Entity, id), store.ErrNotFound)
		}
		log.Error("failed to fetch entity",
			slog.String("table", r.table.Name),
			slog.Int64("id", id),
			slog.String("error", err.Error()))
		return zero, store.NewStoreError(r.table.Entity, "find_by_id", "query failed", MapError(err))
	}
	return entity, nil
}

// FindAll implements store.Repository.FindAll.
func (r *Repository[T]) FindAll(ctx context.Context) ([]T, error) {
	entities, err := r.queryList(ctx, r.db, r.selectAll)
	if err != nil {
		logger.FromContextOrDefault(ctx, r.logger).Error("failed to list entities",
			slog.String("table", r.table.Name),
			slog.String("error", err.Error()))
		return nil, store.NewStoreError(r.table.Entity, "find_all", "query failed", MapError(err))
	}
	return entities, nil
}

// FindPage implements store.Repository.FindPage. The count and the page are
// read in one read-only transaction so they agree.
func (r *Repository[T]) FindPage(ctx context.Context, req store.PageRequest) (store.Page[T], error) {
	column, err := r.table.Sortable.Resolve(req.Sort.Field)
	if err != nil {
		return store.Page[T]{}, store.NewStoreError(r.table.Entity, "find_page", "invalid sort", err)
	}

	order := column
	if req.Sort.Direction == store.Desc {
		order += " DESC"
	}
	if column != "id" {
		order += ", id"
	}
	query := fmt.Sprintf(r.selectPaged, order)

	var (
		total   int64
		content []T
	)
	err = store.RunInTransaction(ctx, r.db, &sql.TxOptions{ReadOnly: true}, func(ctx context.Context, tx *sql.Tx) error {
		if err := tx.QueryRowContext(ctx, r.countAll).Scan(&total); err != nil {
			return err
		}
		if total == 0 || int64(req.Offset()) >= total {
			return nil
		}
		var err error
		content, err = r.queryList(ctx, tx, query, req.Size, req.Offset())
		return err
	})
	if err != nil {
		logger.FromContextOrDefault(ctx, r.logger).Error("failed to fetch page",
			slog.String("table", r.table.Name),
			slog.Int("page", req.Page),
			slog.Int("size", req.Size),
			slog.String("error", err.Error()))
		return store.Page[T]{}, store.NewStoreError(r.table.Entity, "find_page", "query failed", MapError(err))
	}

	return store.NewPage(content, req, total), nil
}

func (r *Repository[T]) queryList(ctx context.Context, db store.DBTX, query string, args ...any) ([]T, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	entities := []T{}
	for rows.Next() {
		entity, err := r.table.Scan(rows)
		if err != nil {
			return nil, err
		}
		entities = append(entities, entity)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return entities, nil
}

// Save implements store.Repository.Save. A zero id inserts with a generated
// key; any other id inserts or replaces the row with that key.
func (r *Repository[T]) Save(ctx context.Context, entity T) (T, error) {
	log := logger.FromContextOrDefault(ctx, r.logger)

	query, args := r.insert, r.table.Values(entity)
	if id := entity.GetID(); id != 0 {
		query, args = r.upsert, append([]any{id}, args...)
	}

	saved, err := r.table.Scan(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		var zero T
		mapped := MapError(err)
		if store.IsIntegrityError(mapped) {
			log.Warn("constraint violation during save",
				slog.String("table", r.table.Name),
				slog.Int64("id", entity.GetID()),
				slog.String("error", err.Error()))
		} else {
			log.Error("failed to save entity",
				slog.String("table", r.table.Name),
				slog.Int64("id", entity.GetID()),
				slog.String("error", err.Error()))
		}
		return zero, store.NewStoreError(r.table.Entity, "save", "write failed", mapped)
	}

	log.Debug("entity saved", slog.String("table", r.table.Name), slog.Int64("id", saved.GetID()))
	return saved, nil
}

// Delete implements store.Repository.Delete.
func (r *Repository[T]) Delete(ctx context.Context, entity T) error {
	log := logger.FromContextOrDefault(ctx, r.logger)
	id := entity.GetID()

	result, err := r.db.ExecContext(ctx, r.deleteByID, id)
	if err != nil {
		if IsForeignKeyViolation(err) {
			log.Warn("entity is still referenced",
				slog.String("table", r.table.Name),
				slog.Int64("id", id))
		} else {
			log.Error("failed to delete entity",
				slog.String("table", r.table.Name),
				slog.Int64("id", id),
				slog.String("error", err.Error()))
		}
		return store.NewStoreError(r.table.Entity, "delete", "delete failed", MapError(err))
	}

	if err := CheckRowsAffected(result, r.table.Entity); err != nil {
		return store.NewStoreError(r.table.Entity, "delete", "delete failed", err)
	}

	log.Debug("entity deleted", slog.String("table", r.table.Name), slog.Int64("id", id))
	return nil
}
