package middleware

import (
	"context"
	"net/http"
	"runtime/debug"
	"sync"
	"time"

	apperrors "staynest/pkg/errors"
	httputil "staynest/pkg/http"
)

// timeoutWriter buffers headers and drops writes once the deadline fired.
type timeoutWriter struct {
	w          http.ResponseWriter
	h          http.Header
	mu         sync.Mutex
	timedOut   bool
	written    bool
	statusCode int
}

func (tw *timeoutWriter) Header() http.Header {
	return tw.h
}

func (tw *timeoutWriter) WriteHeader(code int) {
	tw.mu.Lock()
	defer tw.mu.Unlock()
	tw.writeHeaderLocked(code)
}

func (tw *timeoutWriter) writeHeaderLocked(code int) {
	if tw.timedOut || tw.written {
		return
	}

	dst := tw.w.Header()
	for k, vv := range tw.h {
		dst[k] = vv
	}
	tw.statusCode = code
	tw.written = true
	tw.w.WriteHeader(code)
}

func (tw *timeoutWriter) Write(b []byte) (int, error) {
	tw.mu.Lock()
	defer tw.mu.Unlock()

	if tw.timedOut {
		return 0, http.ErrHandlerTimeout
	}
	if !tw.written {
		tw.writeHeaderLocked(http.StatusOK)
	}
	return tw.w.Write(b)
}

// handlerPanic carries a panic from the handler goroutine to the serving one.
type handlerPanic struct {
	value any
	stack []byte
}

// RequestTimeout cancels the request context after timeout and answers 504
// if the handler has not started its response. Work already handed to the
// database may still complete after the response is sent.
func RequestTimeout(timeout time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), timeout)
			defer cancel()

			r = r.WithContext(ctx)

			tw := &timeoutWriter{
				w: w,
				h: make(http.Header),
			}

			done := make(chan struct{})
			panicked := make(chan *handlerPanic, 1)
			go func() {
				defer func() {
					if p := recover(); p != nil {
						panicked <- &handlerPanic{value: p, stack: debug.Stack()}
					}
				}()
				next.ServeHTTP(tw, r)
				close(done)
			}()

			select {
			case p := <-panicked:
				panic(p)
			case <-done:
				return
			case <-ctx.Done():
				tw.mu.Lock()
				if tw.written {
					// Response already under way; let the handler finish it.
					tw.mu.Unlock()
					select {
					case p := <-panicked:
						panic(p)
					case <-done:
					}
					return
				}
				tw.timedOut = true
				httputil.WriteError(w, apperrors.Timeout("request timed out"))
				tw.mu.Unlock()
			}
		})
	}
}
