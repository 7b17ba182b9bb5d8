package middleware

import (
	"net/http"
)

// MaxBytes caps request bodies: multipart uploads get uploadBytes, everything
// else jsonBytes. Handlers see *http.MaxBytesError when a body runs over.
func MaxBytes(jsonBytes, uploadBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Body != nil {
				limit := jsonBytes
				if extractContentType(r.Header.Get("Content-Type")) == contentTypeMultipart {
					limit = uploadBytes
				}
				r.Body = http.MaxBytesReader(w, r.Body, limit)
			}
			next.ServeHTTP(w, r)
		})
	}
}
