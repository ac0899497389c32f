package apierror

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindTable(t *testing.T) {
	tests := []struct {
		err           *Error
		expectedCode  int
		expectedLabel string
	}{
		{IntegrityViolation(nil), http.StatusFailedDependency, "Failed Dependency"},
		{NoContent("No content found!"), http.StatusNoContent, "No Content"},
		{InvalidID("Invalid Id!", nil), http.StatusBadRequest, "Bad Request"},
		{Internal(errors.New("db down")), http.StatusInternalServerError, "Internal Server Error"},
		{MethodNotSupported("PATCH", nil), http.StatusMethodNotAllowed, "405 METHOD_NOT_ALLOWED"},
		{MediaTypeNotSupported("text/plain", []string{"application/json"}), http.StatusUnsupportedMediaType, "415 UNSUPPORTED_MEDIA_TYPE"},
		{MediaTypeNotAcceptable(), http.StatusNotAcceptable, "406 NOT_ACCEPTABLE"},
		{MissingPathVariable("id"), http.StatusInternalServerError, "500 INTERNAL_SERVER_ERROR"},
		{MissingParameter("page", "int"), http.StatusBadRequest, "400 BAD_REQUEST"},
		{MissingRequestPart("file"), http.StatusBadRequest, "400 BAD_REQUEST"},
		{Binding("bad", nil), http.StatusBadRequest, "400 BAD_REQUEST"},
		{ArgumentNotValid([]FieldViolation{{"name", "must not be blank"}}, nil), http.StatusBadRequest, "400 BAD_REQUEST"},
		{HandlerMethodValidation("Validation failure"), http.StatusBadRequest, "400 BAD_REQUEST"},
		{NoHandlerFound("GET", "/nope"), http.StatusNotFound, "404 NOT_FOUND"},
		{NoResourceFound("/favicon.ico"), http.StatusNotFound, "404 NOT_FOUND"},
		{AsyncTimeout(context.DeadlineExceeded), http.StatusServiceUnavailable, "503 SERVICE_UNAVAILABLE"},
		{ErrorResponse(http.StatusConflict, "conflict"), http.StatusConflict, "409 CONFLICT"},
		{MaxUploadSizeExceeded(1024, nil), http.StatusRequestEntityTooLarge, "413 PAYLOAD_TOO_LARGE"},
		{ConversionNotSupported(struct{}{}, "Item", nil), http.StatusInternalServerError, "500 INTERNAL_SERVER_ERROR"},
		{TypeMismatch("page", "abc", "int", nil), http.StatusBadRequest, "400 BAD_REQUEST"},
		{MessageNotReadable(io.EOF), http.StatusBadRequest, "400 BAD_REQUEST"},
		{MessageNotWritable(errors.New("unsupported value")), http.StatusInternalServerError, "500 INTERNAL_SERVER_ERROR"},
		{MethodValidation("Validation failed"), http.StatusInternalServerError, "500 INTERNAL_SERVER_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.err.Kind.String(), func(t *testing.T) {
			assert.Equal(t, tt.expectedCode, tt.err.Status())
			assert.Equal(t, tt.expectedLabel, tt.err.Label())
			assert.NotEmpty(t, tt.err.Messages())
		})
	}
}

func TestEveryKindHasAnEntry(t *testing.T) {
	for k := KindInternal; k <= KindMethodValidation; k++ {
		_, ok := kinds[k]
		assert.True(t, ok, "kind %d has no table entry", k)
	}
	assert.Equal(t, "internal", Kind(999).String())
	assert.Equal(t, http.StatusInternalServerError, Kind(999).Status())
}

func TestMessages(t *testing.T) {
	t.Run("fixed integrity message", func(t *testing.T) {
		err := IntegrityViolation(errors.New("fk_items_category"))
		assert.Equal(t, []string{IntegrityViolationMessage}, err.Messages())
	})

	t.Run("media type not supported has two lines", func(t *testing.T) {
		err := MediaTypeNotSupported("text/plain", []string{"application/json", "application/*+json"})
		assert.Equal(t, []string{
			"Unsupported content type : text/plain",
			"Supported content type : application/json, application/*+json",
		}, err.Messages())
		assert.Equal(t, "application/json, application/*+json", err.Header.Get("Accept"))
	})

	t.Run("method not supported sets Allow", func(t *testing.T) {
		err := MethodNotSupported("PATCH", []string{"GET", "POST"})
		assert.Equal(t, []string{"Request method 'PATCH' is not supported"}, err.Messages())
		assert.Equal(t, "GET, POST", err.Header.Get("Allow"))
	})

	t.Run("empty details fall back to reason phrase", func(t *testing.T) {
		err := New(KindBinding, "")
		assert.Equal(t, []string{"Bad Request"}, err.Messages())
	})

	t.Run("missing body", func(t *testing.T) {
		assert.Equal(t, []string{MissingBodyMessage}, MessageNotReadable(io.EOF).Messages())
	})

	t.Run("malformed body", func(t *testing.T) {
		err := MessageNotReadable(errors.New("unexpected EOF"))
		assert.Equal(t, []string{"JSON parse error: unexpected EOF"}, err.Messages())
	})

	t.Run("type mismatch", func(t *testing.T) {
		err := TypeMismatch("page", "abc", "int", nil)
		assert.Equal(t, []string{`Failed to convert value "abc" to required type 'int' for parameter 'page'`}, err.Messages())
	})

	t.Run("no resource strips leading slash", func(t *testing.T) {
		assert.Equal(t, []string{"No static resource favicon.ico."}, NoResourceFound("/favicon.ico").Messages())
	})

	t.Run("upload limit", func(t *testing.T) {
		assert.Equal(t, []string{"Maximum upload size of 10 bytes exceeded"}, MaxUploadSizeExceeded(10, nil).Messages())
		assert.Equal(t, []string{"Maximum upload size exceeded"}, MaxUploadSizeExceeded(0, nil).Messages())
	})
}

func TestArgumentNotValid(t *testing.T) {
	t.Run("single field", func(t *testing.T) {
		err := ArgumentNotValid([]FieldViolation{{Field: "name", Message: "must not be blank"}}, nil)
		assert.Equal(t, []string{"name , must not be blank"}, err.Messages())
	})

	t.Run("fields before objects", func(t *testing.T) {
		err := ArgumentNotValid(
			[]FieldViolation{
				{Field: "name", Message: "must not be blank"},
				{Field: "price", Message: "must be greater than or equal to 0"},
			},
			[]ObjectViolation{{Object: "item", Message: "discount price must not exceed price"}},
		)
		assert.Equal(t, []string{
			"name , must not be blank",
			"price , must be greater than or equal to 0",
			"item , discount price must not exceed price",
		}, err.Messages())
	})
}

func TestErrorWrapping(t *testing.T) {
	cause := errors.New("duplicate key")
	err := fmt.Errorf("save item: %w", IntegrityViolation(cause))

	apiErr, ok := As(err)
	require.True(t, ok)
	assert.Equal(t, KindIntegrityViolation, apiErr.Kind)
	assert.True(t, errors.Is(err, cause))
	assert.Contains(t, apiErr.Error(), "integrity_violation")

	_, ok = As(errors.New("plain"))
	assert.False(t, ok)
}

func TestStatusLabel(t *testing.T) {
	assert.Equal(t, "424 FAILED_DEPENDENCY", StatusLabel(http.StatusFailedDependency))
	assert.Equal(t, "418 I_AM_A_TEAPOT", StatusLabel(http.StatusTeapot))
	assert.Equal(t, "414 URI_TOO_LONG", StatusLabel(http.StatusRequestURITooLong))
	assert.Equal(t, "413 PAYLOAD_TOO_LARGE", StatusLabel(http.StatusRequestEntityTooLarge))
	assert.Equal(t, "599", StatusLabel(599))
	assert.Equal(t, "599", ReasonPhrase(599))
}
