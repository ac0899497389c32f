package middleware

import (
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/phrazzld/generic-crud/internal/api/apierror"
	"github.com/phrazzld/generic-crud/internal/api/shared"
)

const jsonMediaType = "application/json"

// defaultContentType is assumed for bodies sent without a Content-Type.
const defaultContentType = "application/octet-stream"

// RequireJSON rejects POST, PUT and PATCH requests whose body is not JSON
// with 415 and an Accept header naming the supported type.
func RequireJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost, http.MethodPut, http.MethodPatch:
		default:
			next.ServeHTTP(w, r)
			return
		}

		contentType := r.Header.Get("Content-Type")
		if contentType == "" {
			contentType = defaultContentType
		}
		mediaType, _, err := mime.ParseMediaType(contentType)
		if err != nil || !isJSON(mediaType) {
			shared.RespondWithError(w, r, apierror.MediaTypeNotSupported(contentType, []string{jsonMediaType}))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// AcceptJSON rejects requests whose Accept header rules out JSON with 406.
// A missing Accept header accepts anything.
func AcceptJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		accept := r.Header.Values("Accept")
		if len(accept) == 0 || acceptsJSON(strings.Join(accept, ",")) {
			next.ServeHTTP(w, r)
			return
		}
		shared.RespondWithError(w, r, apierror.MediaTypeNotAcceptable())
	})
}

func isJSON(mediaType string) bool {
	return mediaType == jsonMediaType ||
		(strings.HasPrefix(mediaType, "application/") && strings.HasSuffix(mediaType, "+json"))
}

func acceptsJSON(header string) bool {
	for _, part := range strings.Split(header, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		mediaType, params, err := mime.ParseMediaType(part)
		if err != nil {
			continue
		}
		if q, ok := params["q"]; ok && isZeroQuality(q) {
			continue
		}
		switch {
		case mediaType == "*/*", mediaType == "application/*", isJSON(mediaType):
			return true
		}
	}
	return false
}

func isZeroQuality(q string) bool {
	v, err := strconv.ParseFloat(strings.TrimSpace(q), 64)
	return err == nil && v == 0
}
