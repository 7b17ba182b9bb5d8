package middleware

import (
	"net/http"
	"runtime/debug"

	apperrors "staynest/pkg/errors"
	httputil "staynest/pkg/http"
	"staynest/pkg/logger"
)

// Recovery turns a panic anywhere below it, including one re-raised by
// RequestTimeout from its handler goroutine, into a 500 JSON response.
func Recovery(log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					stack := debug.Stack()
					if p, ok := err.(*handlerPanic); ok {
						err, stack = p.value, p.stack
					}
					if err == http.ErrAbortHandler {
						panic(err)
					}

					log.Error("Panic recovered",
						"request_id", logger.RequestID(r.Context()),
						"error", err,
						"method", r.Method,
						"path", r.URL.Path,
						"stack", string(stack),
					)

					httputil.WriteError(w, apperrors.Internal("Internal server error", nil))
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
