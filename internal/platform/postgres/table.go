package postgres

import (
	"strings"

	"github.com/phrazzld/generic-crud/internal/domain"
	"github.com/phrazzld/generic-crud/internal/store"
)

// Table maps an entity type onto a table. Every table has an id primary key
// and created_at/updated_at timestamps maintained by the repository; Columns
// lists the remaining columns in the order Values and Scan use.
type Table[T domain.Entity] struct {
	// Name is the table name.
	Name string
	// Entity names the entity in logs and errors.
	Entity string
	// Columns are the writable columns other than id and the timestamps.
	Columns []string
	// Values returns the entity's values for Columns.
	Values func(T) []any
	// Scan reads a row of SelectList order into a new entity.
	Scan func(store.RowScanner) (T, error)
	// Sortable maps client sort fields to columns.
	Sortable store.SortColumns
}

// SelectList returns the column list every query reads: id, Columns, then
// created_at and updated_at.
func (t Table[T]) SelectList() string {
	cols := make([]string, 0, len(t.Columns)+3)
	cols = append(cols, "id")
	cols = append(cols, t.Columns...)
	cols = append(cols, "created_at", "updated_at")
	return strings.Join(cols, ", ")
}

// ItemsTable maps domain.Item onto the items table.
var ItemsTable = Table[*domain.Item]{
	Name:    "items",
	Entity:  "item",
	Columns: []string{"name", "description", "price", "discount_price", "quantity", "category_id"},
	Values: func(i *domain.Item) []any {
		return []any{i.Name, i.Description, i.Price, i.DiscountPrice, i.Quantity, i.CategoryID}
	},
	Scan: func(row store.RowScanner) (*domain.Item, error) {
		var i domain.Item
		err := row.Scan(
			&i.ID,
			&i.Name,
			&i.Description,
			&i.Price,
			&i.DiscountPrice,
			&i.Quantity,
			&i.CategoryID,
			&i.CreatedAt,
			&i.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		return &i, nil
	},
	Sortable: store.SortColumns{
		"id":             "id",
		"name":           "name",
		"price":          "price",
		"discount_price": "discount_price",
		"quantity":       "quantity",
		"category_id":    "category_id",
		"created_at":     "created_at",
		"updated_at":     "updated_at",
	},
}

// CategoriesTable maps domain.Category onto the categories table.
var CategoriesTable = Table[*domain.Category]{
	Name:    "categories",
	Entity:  "category",
	Columns: []string{"name", "slug"},
	Values: func(c *domain.Category) []any {
		return []any{c.Name, c.Slug}
	},
	Scan: func(row store.RowScanner) (*domain.Category, error) {
		var c domain.Category
		if err := row.Scan(&c.ID, &c.Name, &c.Slug, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		return &c, nil
	},
	Sortable: store.SortColumns{
		"id":         "id",
		"name":       "name",
		"slug":       "slug",
		"created_at": "created_at",
		"updated_at": "updated_at",
	},
}
