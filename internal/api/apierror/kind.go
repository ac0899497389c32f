package apierror

import (
	"net/http"
	"strconv"
	"strings"
)

// Kind identifies a class of request failure. Each kind maps statelessly to
// one HTTP status and one way of labelling it.
type Kind int

// Failure kinds. Application kinds are raised by the service and handlers;
// the rest are raised while routing, negotiating, binding or writing.
const (
	KindInternal Kind = iota
	KindIntegrityViolation
	KindNoContent
	KindInvalidID
	KindMethodNotSupported
	KindMediaTypeNotSupported
	KindMediaTypeNotAcceptable
	KindMissingPathVariable
	KindMissingParameter
	KindMissingRequestPart
	KindBinding
	KindArgumentNotValid
	KindHandlerMethodValidation
	KindNoHandlerFound
	KindNoResourceFound
	KindAsyncTimeout
	KindErrorResponse
	KindMaxUploadSizeExceeded
	KindConversionNotSupported
	KindTypeMismatch
	KindMessageNotReadable
	KindMessageNotWritable
	KindMethodValidation
)

// labelStyle selects how the payload's "error" field is rendered.
type labelStyle int

const (
	// reasonPhrase renders the bare reason, e.g. "Bad Request".
	reasonPhrase labelStyle = iota
	// statusCode renders code and constant name, e.g. "400 BAD_REQUEST".
	statusCode
)

type kindInfo struct {
	name   string
	status int
	label  labelStyle
}

var kinds = map[Kind]kindInfo{
	KindInternal:                {"internal", http.StatusInternalServerError, reasonPhrase},
	KindIntegrityViolation:      {"integrity_violation", http.StatusFailedDependency, reasonPhrase},
	KindNoContent:               {"no_content", http.StatusNoContent, reasonPhrase},
	KindInvalidID:               {"invalid_id", http.StatusBadRequest, reasonPhrase},
	KindMethodNotSupported:      {"method_not_supported", http.StatusMethodNotAllowed, statusCode},
	KindMediaTypeNotSupported:   {"media_type_not_supported", http.StatusUnsupportedMediaType, statusCode},
	KindMediaTypeNotAcceptable:  {"media_type_not_acceptable", http.StatusNotAcceptable, statusCode},
	KindMissingPathVariable:     {"missing_path_variable", http.StatusInternalServerError, statusCode},
	KindMissingParameter:        {"missing_parameter", http.StatusBadRequest, statusCode},
	KindMissingRequestPart:      {"missing_request_part", http.StatusBadRequest, statusCode},
	KindBinding:                 {"binding", http.StatusBadRequest, statusCode},
	KindArgumentNotValid:        {"argument_not_valid", http.StatusBadRequest, statusCode},
	KindHandlerMethodValidation: {"handler_method_validation", http.StatusBadRequest, statusCode},
	KindNoHandlerFound:          {"no_handler_found", http.StatusNotFound, statusCode},
	KindNoResourceFound:         {"no_resource_found", http.StatusNotFound, statusCode},
	KindAsyncTimeout:            {"async_timeout", http.StatusServiceUnavailable, statusCode},
	KindErrorResponse:           {"error_response", http.StatusInternalServerError, statusCode},
	KindMaxUploadSizeExceeded:   {"max_upload_size_exceeded", http.StatusRequestEntityTooLarge, statusCode},
	KindConversionNotSupported:  {"conversion_not_supported", http.StatusInternalServerError, statusCode},
	KindTypeMismatch:            {"type_mismatch", http.StatusBadRequest, statusCode},
	KindMessageNotReadable:      {"message_not_readable", http.StatusBadRequest, statusCode},
	KindMessageNotWritable:      {"message_not_writable", http.StatusInternalServerError, statusCode},
	KindMethodValidation:        {"method_validation", http.StatusInternalServerError, statusCode},
}

func (k Kind) info() kindInfo {
	if info, ok := kinds[k]; ok {
		return info
	}
	return kinds[KindInternal]
}

// String returns the kind's snake_case name.
func (k Kind) String() string {
	return k.info().name
}

// Status returns the HTTP status the kind maps to. KindErrorResponse carries
// its own status on the Error; this returns its fallback.
func (k Kind) Status() int {
	return k.info().status
}

// statusNames holds constant names that differ from the upper-cased reason
// phrase net/http reports.
var statusNames = map[int]string{
	http.StatusRequestEntityTooLarge: "PAYLOAD_TOO_LARGE",
	http.StatusRequestURITooLong:     "URI_TOO_LONG",
	http.StatusTeapot:                "I_AM_A_TEAPOT",
}

// StatusLabel renders status as "<code> <CONSTANT_NAME>", e.g. "415 UNSUPPORTED_MEDIA_TYPE".
func StatusLabel(status int) string {
	if name, ok := statusNames[status]; ok {
		return strconv.Itoa(status) + " " + name
	}
	text := http.StatusText(status)
	if text == "" {
		return strconv.Itoa(status)
	}
	name := strings.ToUpper(strings.NewReplacer(" ", "_", "-", "_", "'", "").Replace(text))
	return strconv.Itoa(status) + " " + name
}

// ReasonPhrase returns the standard reason phrase for status, e.g. "Bad Request".
func ReasonPhrase(status int) string {
	if text := http.StatusText(status); text != "" {
		return text
	}
	return strconv.Itoa(status)
}
