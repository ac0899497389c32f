package apierror

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// Fixed client messages.
const (
	IntegrityViolationMessage = "Integrity constraint violation, Target item locked with another item!"
	InternalMessage           = "An unexpected error occurred"
	AsyncTimeoutMessage       = "Request timed out"
	MissingBodyMessage        = "Required request body is missing"
	NotAcceptableMessage      = "No acceptable representation"
)

// Error is a classified request failure. It carries everything needed to
// render the error payload: the kind, the client-facing detail lines and any
// response headers the failure implies.
type Error struct {
	Kind    Kind
	Details []string
	// Header holds response headers to set alongside the payload, such as
	// Allow on 405 and Accept on 415.
	Header http.Header
	// Err is the underlying cause. It is logged, never sent to clients.
	Err error

	status int
}

// New creates an Error of the given kind with one or more detail lines.
func New(kind Kind, details ...string) *Error {
	return &Error{Kind: kind, Details: details}
}

// Wrap creates an Error of the given kind that records err as its cause.
func Wrap(kind Kind, err error, details ...string) *Error {
	return &Error{Kind: kind, Details: details, Err: err}
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := e.Kind.String()
	if len(e.Details) > 0 {
		msg += ": " + strings.Join(e.Details, "; ")
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying cause to support errors.Is/errors.As.
func (e *Error) Unwrap() error {
	return e.Err
}

// Status returns the HTTP status for the error.
func (e *Error) Status() int {
	if e.Kind == KindErrorResponse && e.status != 0 {
		return e.status
	}
	return e.Kind.Status()
}

// Label returns the payload's "error" field: the reason phrase for
// application kinds and the stringified status for the others.
func (e *Error) Label() string {
	status := e.Status()
	if e.Kind.info().label == reasonPhrase {
		return ReasonPhrase(status)
	}
	return StatusLabel(status)
}

// Messages returns the detail lines, falling back to the status reason so a
// failure never renders an empty list.
func (e *Error) Messages() []string {
	out := make([]string, 0, len(e.Details))
	for _, d := range e.Details {
		if d != "" {
			out = append(out, d)
		}
	}
	if len(out) == 0 {
		out = append(out, ReasonPhrase(e.Status()))
	}
	return out
}

// As reports whether err is or wraps an *Error and returns it.
func As(err error) (*Error, bool) {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// NoContent reports that a listing produced nothing.
func NoContent(message string) *Error {
	return New(KindNoContent, message)
}

// InvalidID reports that an id does not identify an existing entity.
func InvalidID(message string, cause error) *Error {
	return Wrap(KindInvalidID, cause, message)
}

// IntegrityViolation reports that the database rejected a write or delete.
func IntegrityViolation(cause error) *Error {
	return Wrap(KindIntegrityViolation, cause, IntegrityViolationMessage)
}

// Internal reports an unclassified failure without exposing its cause.
func Internal(cause error) *Error {
	return Wrap(KindInternal, cause, InternalMessage)
}

// MethodNotSupported reports a request method the route does not serve.
func MethodNotSupported(method string, allowed []string) *Error {
	e := New(KindMethodNotSupported, fmt.Sprintf("Request method '%s' is not supported", method))
	if len(allowed) > 0 {
		e.Header = http.Header{"Allow": []string{strings.Join(allowed, ", ")}}
	}
	return e
}

// MediaTypeNotSupported reports a request body content type the route cannot read.
func MediaTypeNotSupported(contentType string, supported []string) *Error {
	list := strings.Join(supported, ", ")
	e := New(KindMediaTypeNotSupported,
		"Unsupported content type : "+contentType,
		"Supported content type : "+list,
	)
	e.Header = http.Header{"Accept": []string{list}}
	return e
}

// MediaTypeNotAcceptable reports that no representation satisfies the Accept header.
func MediaTypeNotAcceptable() *Error {
	return New(KindMediaTypeNotAcceptable, NotAcceptableMessage)
}

// MissingPathVariable reports a route that did not supply a path variable.
func MissingPathVariable(name string) *Error {
	return New(KindMissingPathVariable, fmt.Sprintf("Required path variable '%s' is not present", name))
}

// MissingParameter reports a required query parameter that was not sent.
func MissingParameter(name, typ string) *Error {
	return New(KindMissingParameter, fmt.Sprintf(
		"Required request parameter '%s' for method parameter type %s is not present", name, typ))
}

// MissingRequestPart reports a required multipart part that was not sent.
func MissingRequestPart(name string) *Error {
	return New(KindMissingRequestPart, fmt.Sprintf("Required part '%s' is not present.", name))
}

// Binding reports request parameters that parsed but cannot be bound.
func Binding(message string, cause error) *Error {
	return Wrap(KindBinding, cause, message)
}

// HandlerMethodValidation reports invalid non-body handler arguments.
func HandlerMethodValidation(message string) *Error {
	return New(KindHandlerMethodValidation, message)
}

// MethodValidation reports a failed validation of a method's return value or arguments.
func MethodValidation(message string) *Error {
	return New(KindMethodValidation, message)
}

// NoHandlerFound reports a request no route matches.
func NoHandlerFound(method, path string) *Error {
	return New(KindNoHandlerFound, fmt.Sprintf("No endpoint %s %s.", method, path))
}

// NoResourceFound reports a request for a static resource that does not exist.
func NoResourceFound(path string) *Error {
	return New(KindNoResourceFound, fmt.Sprintf("No static resource %s.", strings.TrimPrefix(path, "/")))
}

// AsyncTimeout reports a request that outlived its deadline.
func AsyncTimeout(cause error) *Error {
	return Wrap(KindAsyncTimeout, cause, AsyncTimeoutMessage)
}

// ErrorResponse reports a failure that already knows its HTTP status.
func ErrorResponse(status int, message string) *Error {
	e := New(KindErrorResponse, message)
	e.status = status
	return e
}

// MaxUploadSizeExceeded reports a request body larger than limit bytes.
func MaxUploadSizeExceeded(limit int64, cause error) *Error {
	msg := "Maximum upload size exceeded"
	if limit > 0 {
		msg = fmt.Sprintf("Maximum upload size of %d bytes exceeded", limit)
	}
	return Wrap(KindMaxUploadSizeExceeded, cause, msg)
}

// ConversionNotSupported reports a value for which no converter exists.
func ConversionNotSupported(value any, typ string, cause error) *Error {
	return Wrap(KindConversionNotSupported, cause, fmt.Sprintf(
		"Failed to convert value of type '%T' to required type '%s'", value, typ))
}

// TypeMismatch reports a parameter whose text cannot be converted to its type.
func TypeMismatch(param, value, typ string, cause error) *Error {
	return Wrap(KindTypeMismatch, cause, fmt.Sprintf(
		"Failed to convert value %q to required type '%s' for parameter '%s'", value, typ, param))
}

// MessageNotReadable reports a request body that cannot be decoded.
func MessageNotReadable(cause error) *Error {
	if cause == nil || errors.Is(cause, io.EOF) {
		return Wrap(KindMessageNotReadable, cause, MissingBodyMessage)
	}
	return Wrap(KindMessageNotReadable, cause, "JSON parse error: "+cause.Error())
}

// MessageNotWritable reports a response body that cannot be encoded.
func MessageNotWritable(cause error) *Error {
	msg := "Could not write JSON"
	if cause != nil {
		msg += ": " + cause.Error()
	}
	return Wrap(KindMessageNotWritable, cause, msg)
}
