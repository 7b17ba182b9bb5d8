package middleware

import (
	"errors"
	"net/http"

	"staynest/pkg/auth"
	apperrors "staynest/pkg/errors"
	httputil "staynest/pkg/http"
	"staynest/pkg/logger"

	"github.com/julienschmidt/httprouter"
)

type TokenVerifier interface {
	Verify(token string) (*auth.Claims, error)
}

// Session guards httprouter handles with the `token` cookie.
type Session struct {
	verifier TokenVerifier
	log      *logger.Logger
}

func NewSession(verifier TokenVerifier, log *logger.Logger) *Session {
	return &Session{verifier: verifier, log: log}
}

// Require answers 401 without calling next unless the request carries a
// valid session cookie.
func (s *Session) Require(next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		token := httputil.SessionToken(r)
		if token == "" {
			httputil.WriteError(w, apperrors.Unauthenticated("authentication required"))
			return
		}

		claims, err := s.verifier.Verify(token)
		if err != nil {
			s.reject(w, r, err)
			return
		}

		next(w, r.WithContext(auth.WithClaims(r.Context(), claims)), ps)
	}
}

// Optional lets anonymous requests through but still rejects a cookie that
// fails verification.
func (s *Session) Optional(next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		token := httputil.SessionToken(r)
		if token == "" {
			next(w, r, ps)
			return
		}

		claims, err := s.verifier.Verify(token)
		if err != nil {
			s.reject(w, r, err)
			return
		}

		next(w, r.WithContext(auth.WithClaims(r.Context(), claims)), ps)
	}
}

func (s *Session) reject(w http.ResponseWriter, r *http.Request, err error) {
	msg := "invalid session"
	if errors.Is(err, auth.ErrTokenExpired) {
		msg = "session expired"
	}

	logger.FromContext(r.Context(), s.log).Warn("Session rejected",
		"path", r.URL.Path,
		"error", err,
	)
	httputil.WriteError(w, apperrors.Unauthenticated(msg))
}
