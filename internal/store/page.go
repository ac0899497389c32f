package store

import (
	"fmt"
	"math"
	"strings"
)

// Direction is a sort order.
type Direction string

// Supported sort directions.
const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// ParseDirection returns Desc when s equals "desc" ignoring case, and Asc for
// anything else, including the empty string.
func ParseDirection(s string) Direction {
	if strings.EqualFold(s, string(Desc)) {
		return Desc
	}
	return Asc
}

// Sort orders a page by a single field.
type Sort struct {
	Field     string    `json:"field"`
	Direction Direction `json:"direction"`
}

// PageRequest asks the data layer for one page of results.
// Page is zero-based.
type PageRequest struct {
	Page int
	Size int
	Sort Sort
}

// Offset returns the number of records preceding the requested page.
// An offset that does not fit in an int saturates at math.MaxInt, which lies
// past the end of any table.
func (p PageRequest) Offset() int {
	if p.Page > 0 && p.Size > 0 && p.Page > math.MaxInt/p.Size {
		return math.MaxInt
	}
	return p.Page * p.Size
}

// Page is one page of results with the metadata needed to navigate the rest.
// The page number is reported one-based to match the request boundary.
type Page[T any] struct {
	Content          []T   `json:"content"`
	Page             int   `json:"page"`
	Size             int   `json:"size"`
	TotalElements    int64 `json:"total_elements"`
	TotalPages       int   `json:"total_pages"`
	NumberOfElements int   `json:"number_of_elements"`
	First            bool  `json:"first"`
	Last             bool  `json:"last"`
	Empty            bool  `json:"empty"`
	Sort             Sort  `json:"sort"`
}

// NewPage assembles a Page from one slice of content and the total number of
// matching records.
func NewPage[T any](content []T, req PageRequest, total int64) Page[T] {
	if content == nil {
		content = []T{}
	}

	totalPages := 0
	if req.Size > 0 {
		size := int64(req.Size)
		pages := total / size
		if total%size != 0 {
			pages++
		}
		totalPages = int(pages)
	}

	return Page[T]{
		Content:          content,
		Page:             req.Page + 1,
		Size:             req.Size,
		TotalElements:    total,
		TotalPages:       totalPages,
		NumberOfElements: len(content),
		First:            req.Page == 0,
		Last:             req.Page+1 >= totalPages,
		Empty:            len(content) == 0,
		Sort:             req.Sort,
	}
}

// SortColumns maps the field names clients sort by to storage column names.
type SortColumns map[string]string

// Resolve returns the column for field.
// Returns ErrUnknownSortField if field is not sortable.
func (s SortColumns) Resolve(field string) (string, error) {
	column, ok := s[field]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownSortField, field)
	}
	return column, nil
}
