package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// Sort describes the order of a page.
type Sort struct {
	Field     string `json:"field"`
	Direction string `json:"direction"`
}

// Page is one page of a collection. Page numbers are one-based.
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

// PageOptions selects a page. Zero values fall back to the server defaults.
// Sort takes the server's "field,direction" form, e.g. "price,desc".
type PageOptions struct {
	Page int
	Size int
	Sort string
}

func (o PageOptions) values() url.Values {
	q := url.Values{}
	if o.Page > 0 {
		q.Set("page", strconv.Itoa(o.Page))
	}
	if o.Size > 0 {
		q.Set("size", strconv.Itoa(o.Size))
	}
	if o.Sort != "" {
		q.Set("sort", o.Sort)
	}
	return q
}

// Resource is a typed view of one entity collection, e.g. /api/items.
type Resource[T any] struct {
	client *Client
	path   string
}

// NewResource binds c to the collection mounted at /api/<name>.
func NewResource[T any](c *Client, name string) *Resource[T] {
	return &Resource[T]{client: c, path: "/api/" + name}
}

// List returns every entity. An empty collection yields an empty slice.
func (r *Resource[T]) List(ctx context.Context) ([]T, error) {
	resp, err := r.client.do(ctx, http.MethodGet, r.path, url.Values{"isList": {"true"}}, nil)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", r.path, err)
	}
	if resp.StatusCode == http.StatusNoContent {
		return []T{}, nil
	}

	var out []T
	if err := json.Unmarshal(resp.Body, &out); err != nil {
		return nil, fmt.Errorf("parsing list response: %w", err)
	}
	return out, nil
}

// Page returns one page of entities. An empty page is reported as an empty
// Page rather than an error.
func (r *Resource[T]) Page(ctx context.Context, opts PageOptions) (*Page[T], error) {
	resp, err := r.client.do(ctx, http.MethodGet, r.path, opts.values(), nil)
	if err != nil {
		return nil, fmt.Errorf("paging %s: %w", r.path, err)
	}
	if resp.StatusCode == http.StatusNoContent {
		return &Page[T]{Content: []T{}, Page: opts.Page, Size: opts.Size, Empty: true}, nil
	}

	var page Page[T]
	if err := json.Unmarshal(resp.Body, &page); err != nil {
		return nil, fmt.Errorf("parsing page response: %w", err)
	}
	return &page, nil
}

// Get returns the entity with the given id.
func (r *Resource[T]) Get(ctx context.Context, id int64) (*T, error) {
	resp, err := r.client.do(ctx, http.MethodGet, r.itemPath(id), nil, nil)
	if err != nil {
		return nil, fmt.Errorf("getting %s: %w", r.itemPath(id), err)
	}
	return decode[T](resp)
}

// Create stores a new entity and returns it as saved.
func (r *Resource[T]) Create(ctx context.Context, entity *T) (*T, error) {
	resp, err := r.client.do(ctx, http.MethodPost, r.path, nil, entity)
	if err != nil {
		return nil, fmt.Errorf("creating in %s: %w", r.path, err)
	}
	return decode[T](resp)
}

// Update replaces an existing entity, identified by its id field.
func (r *Resource[T]) Update(ctx context.Context, entity *T) (*T, error) {
	resp, err := r.client.do(ctx, http.MethodPut, r.path, nil, entity)
	if err != nil {
		return nil, fmt.Errorf("updating in %s: %w", r.path, err)
	}
	return decode[T](resp)
}

// Delete removes the entity with the given id and returns the server's
// confirmation message.
func (r *Resource[T]) Delete(ctx context.Context, id int64) (string, error) {
	resp, err := r.client.do(ctx, http.MethodDelete, r.itemPath(id), nil, nil)
	if err != nil {
		return "", fmt.Errorf("deleting %s: %w", r.itemPath(id), err)
	}

	var msg string
	if err := json.Unmarshal(resp.Body, &msg); err != nil {
		return "", fmt.Errorf("parsing delete response: %w", err)
	}
	return msg, nil
}

func (r *Resource[T]) itemPath(id int64) string {
	return r.path + "/" + strconv.FormatInt(id, 10)
}

func decode[T any](resp *response) (*T, error) {
	var out T
	if err := json.Unmarshal(resp.Body, &out); err != nil {
		return nil, fmt.Errorf("parsing response: %w", err)
	}
	return &out, nil
}
