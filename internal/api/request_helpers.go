package api

import (
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/generic-crud/internal/api/apierror"
	"github.com/phrazzld/generic-crud/internal/store"
)

// Query parameter defaults for list requests.
const (
	DefaultPage      = 1
	DefaultSize      = 10
	DefaultSortField = "id"

	// DefaultMaxPageSize is the largest size accepted unless the handler is
	// configured otherwise.
	DefaultMaxPageSize = 1000
)

// listParams holds the parsed query of a list request.
type listParams struct {
	isList bool
	page   store.PageRequest
}

// parseListParams reads isList, page, size and sort from the query string.
// The 1-based page parameter is converted to the zero-based index the data
// layer expects.
//
// sort may be repeated or comma-separated; the first token names the field
// and the second the direction. size must not exceed maxSize, and the offset
// of the requested page must fit in an int.
func parseListParams(r *http.Request, maxSize int) (listParams, error) {
	query := r.URL.Query()

	isList, err := boolParam(query.Get("isList"), "isList", false)
	if err != nil {
		return listParams{}, err
	}

	page, err := intParam(query.Get("page"), "page", DefaultPage)
	if err != nil {
		return listParams{}, err
	}
	if page < 1 {
		return listParams{}, apierror.Binding("page must be greater than or equal to 1", nil)
	}

	size, err := intParam(query.Get("size"), "size", DefaultSize)
	if err != nil {
		return listParams{}, err
	}
	if size < 1 {
		return listParams{}, apierror.Binding("size must be greater than or equal to 1", nil)
	}
	if size > maxSize {
		return listParams{}, apierror.Binding(fmt.Sprintf("size must be less than or equal to %d", maxSize), nil)
	}
	if page-1 > math.MaxInt/size {
		return listParams{}, apierror.Binding("page is out of range for the requested size", nil)
	}

	return listParams{
		isList: isList,
		page: store.PageRequest{
			Page: page - 1,
			Size: size,
			Sort: parseSort(query["sort"]),
		},
	}, nil
}

func parseSort(values []string) store.Sort {
	var tokens []string
	for _, v := range values {
		for _, tok := range strings.Split(v, ",") {
			if tok = strings.TrimSpace(tok); tok != "" {
				tokens = append(tokens, tok)
			}
		}
	}

	sort := store.Sort{Field: DefaultSortField, Direction: store.Asc}
	if len(tokens) > 0 {
		sort.Field = tokens[0]
	}
	if len(tokens) > 1 {
		sort.Direction = store.ParseDirection(tokens[1])
	}
	return sort
}

func boolParam(raw, name string, def bool) (bool, error) {
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, apierror.TypeMismatch(name, raw, "bool", err)
	}
	return v, nil
}

func intParam(raw, name string, def int) (int, error) {
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apierror.TypeMismatch(name, raw, "int", err)
	}
	return v, nil
}

// getPathID extracts an integer key from the URL path parameters.
func getPathID(r *http.Request, paramName string) (int64, error) {
	raw := chi.URLParam(r, paramName)
	if raw == "" {
		return 0, apierror.MissingPathVariable(paramName)
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, apierror.TypeMismatch(paramName, raw, "int64", err)
	}
	return id, nil
}
