package shared

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"reflect"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/generic-crud/internal/api/apierror"
)

// DecodeJSON decodes the request body into v. A missing or null body is
// reported as missing; malformed JSON as unreadable; a body over the size
// limit as too large.
func DecodeJSON(r *http.Request, v any) error {
	if r.Body == nil || r.Body == http.NoBody {
		return apierror.MessageNotReadable(io.EOF)
	}

	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return apierror.MaxUploadSizeExceeded(maxBytesErr.Limit, err)
		}
		return apierror.MessageNotReadable(err)
	}

	if isNilTarget(v) {
		return apierror.MessageNotReadable(io.EOF)
	}
	return nil
}

// isNilTarget reports whether decoding left a pointer target nil, as a
// literal null body does.
func isNilTarget(v any) bool {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return true
		}
		rv = rv.Elem()
	}
	return false
}

// ValidateRequest validates v with the shared validator and, when v
// implements domain.ObjectValidator, with its object-level rules.
// Returns an ArgumentNotValid error listing every violation.
func ValidateRequest(v any) error {
	target := unwrapPointers(v)

	var fields []apierror.FieldViolation
	if err := Validate.Struct(target); err != nil {
		var validationErrs validator.ValidationErrors
		if !errors.As(err, &validationErrs) {
			return apierror.MethodValidation("Validation failed: " + err.Error())
		}
		fields = FieldViolations(validationErrs)
	}

	objects := ObjectViolations(target)
	if len(fields) == 0 && len(objects) == 0 {
		return nil
	}
	return apierror.ArgumentNotValid(fields, objects)
}

// BindJSON decodes the request body into dst and validates the result.
func BindJSON(r *http.Request, dst any) error {
	if err := DecodeJSON(r, dst); err != nil {
		return err
	}
	return ValidateRequest(dst)
}
