package middleware

import (
	"net/http"
	"path"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/generic-crud/internal/api/apierror"
	"github.com/phrazzld/generic-crud/internal/api/shared"
)

// routableMethods are the methods probed when building an Allow header.
var routableMethods = []string{
	http.MethodGet,
	http.MethodPost,
	http.MethodPut,
	http.MethodPatch,
	http.MethodDelete,
}

// NotFound answers requests no route matches. A GET or HEAD for a path with a
// file extension is reported as a missing static resource.
func NotFound(w http.ResponseWriter, r *http.Request) {
	requestPath := shared.RequestPath(r)
	if isStaticRequest(r.Method, requestPath) {
		shared.RespondWithError(w, r, apierror.NoResourceFound(requestPath))
		return
	}
	shared.RespondWithError(w, r, apierror.NoHandlerFound(r.Method, requestPath))
}

func isStaticRequest(method, requestPath string) bool {
	if method != http.MethodGet && method != http.MethodHead {
		return false
	}
	return path.Ext(requestPath) != ""
}

// MethodNotAllowed returns a handler for requests whose path matches a route
// of root but whose method does not. The Allow header lists the methods root
// serves for the path.
func MethodNotAllowed(root chi.Routes) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		shared.RespondWithError(w, r, apierror.MethodNotSupported(r.Method, AllowedMethods(root, r.URL.Path)))
	}
}

// AllowedMethods reports which of the common methods root routes for path.
func AllowedMethods(root chi.Routes, path string) []string {
	var allowed []string
	for _, method := range routableMethods {
		if root.Match(chi.NewRouteContext(), method, path) {
			allowed = append(allowed, method)
		}
	}
	return allowed
}
