package handler

import (
	"net/http"

	"staynest/internal/users/service"
	"staynest/pkg/auth"
	httputil "staynest/pkg/http"
	"staynest/pkg/logger"
	"staynest/pkg/middleware"
	"staynest/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type UserHandler struct {
	service service.UserService
	session *middleware.Session
	cookies httputil.CookieOptions
	log     *logger.Logger
}

func NewUserHandler(service service.UserService, session *middleware.Session, cookies httputil.CookieOptions, log *logger.Logger) *UserHandler {
	return &UserHandler{
		service: service,
		session: session,
		cookies: cookies,
		log:     log,
	}
}

func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req model.RegisterRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		h.writeError(w, "Register", err)
		return
	}

	user, err := h.service.Register(r.Context(), &req)
	if err != nil {
		h.writeError(w, "Register", err)
		return
	}

	if err := httputil.WriteSuccess(w, user); err != nil {
		h.log.Error("failed to write success response", "handler", "Register", "operation", "WriteSuccess", "error", err)
	}
}

func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req model.LoginRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		h.writeError(w, "Login", err)
		return
	}

	user, token, err := h.service.Login(r.Context(), &req)
	if err != nil {
		h.writeError(w, "Login", err)
		return
	}

	httputil.SetSessionCookie(w, token, h.cookies)
	if err := httputil.WriteSuccess(w, user); err != nil {
		h.log.Error("failed to write success response", "handler", "Login", "operation", "WriteSuccess", "error", err)
	}
}

// Profile answers {} for anonymous callers and for sessions whose account is gone.
func (h *UserHandler) Profile(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := auth.UserIDFrom(r.Context())
	if userID == "" {
		h.writeEmpty(w)
		return
	}

	user, err := h.service.Profile(r.Context(), userID)
	if err != nil {
		h.writeError(w, "Profile", err)
		return
	}
	if user == nil {
		h.writeEmpty(w)
		return
	}

	if err := httputil.WriteSuccess(w, user.Profile()); err != nil {
		h.log.Error("failed to write success response", "handler", "Profile", "operation", "WriteSuccess", "error", err)
	}
}

func (h *UserHandler) Logout(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	httputil.ClearSessionCookie(w, h.cookies)
	if err := httputil.WriteSuccess(w, true); err != nil {
		h.log.Error("failed to write success response", "handler", "Logout", "operation", "WriteSuccess", "error", err)
	}
}

func (h *UserHandler) writeEmpty(w http.ResponseWriter) {
	if err := httputil.WriteSuccess(w, struct{}{}); err != nil {
		h.log.Error("failed to write success response", "handler", "Profile", "operation", "WriteSuccess", "error", err)
	}
}

func (h *UserHandler) writeError(w http.ResponseWriter, handler string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handler, "operation", "WriteError", "error", writeErr)
	}
}

// Logout is not behind the session check: clearing the cookie is always safe,
// including for a token that no longer verifies.
func (h *UserHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/register", h.Register)
	router.POST("/api/login", h.Login)
	router.GET("/api/profile", h.session.Optional(h.Profile))
	router.POST("/api/logout", h.Logout)
}
