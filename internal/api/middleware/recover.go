package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/phrazzld/generic-crud/internal/api/apierror"
	"github.com/phrazzld/generic-crud/internal/api/shared"
	"github.com/phrazzld/generic-crud/internal/platform/logger"
)

// Recoverer turns a panic in a handler into a 500 error payload and logs the
// stack. http.ErrAbortHandler is re-raised so net/http can abort the response.
func Recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}

			logger.FromContext(r.Context()).Error("handler panicked",
				slog.String("panic", fmt.Sprint(rec)),
				slog.String("stack", string(debug.Stack())))

			if r.Header.Get("Connection") != "Upgrade" {
				shared.RespondWithError(w, r, apierror.Internal(fmt.Errorf("panic: %v", rec)))
			}
		}()

		next.ServeHTTP(w, r)
	})
}
