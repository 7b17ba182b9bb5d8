package handler

import (
	"net/http"

	"staynest/internal/places/service"
	"staynest/pkg/auth"
	httputil "staynest/pkg/http"
	"staynest/pkg/logger"
	"staynest/pkg/middleware"
	"staynest/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type PlaceHandler struct {
	service service.PlaceService
	session *middleware.Session
	log     *logger.Logger
}

func NewPlaceHandler(service service.PlaceService, session *middleware.Session, log *logger.Logger) *PlaceHandler {
	return &PlaceHandler{
		service: service,
		session: session,
		log:     log,
	}
}

func (h *PlaceHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req model.PlaceRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		h.writeError(w, "Create", err)
		return
	}

	place, err := h.service.Create(r.Context(), auth.UserIDFrom(r.Context()), &req)
	if err != nil {
		h.writeError(w, "Create", err)
		return
	}

	h.writeSuccess(w, "Create", place)
}

func (h *PlaceHandler) ListMine(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	places, err := h.service.ListByOwner(r.Context(), auth.UserIDFrom(r.Context()))
	if err != nil {
		h.writeError(w, "ListMine", err)
		return
	}

	h.writeSuccess(w, "ListMine", places)
}

func (h *PlaceHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	place, err := h.service.GetByID(r.Context(), ps.ByName("id"))
	if err != nil {
		h.writeError(w, "GetByID", err)
		return
	}

	h.writeSuccess(w, "GetByID", place)
}

func (h *PlaceHandler) Update(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req model.PlaceRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		h.writeError(w, "Update", err)
		return
	}

	if err := h.service.Update(r.Context(), auth.UserIDFrom(r.Context()), &req); err != nil {
		h.writeError(w, "Update", err)
		return
	}

	h.writeSuccess(w, "Update", "ok")
}

func (h *PlaceHandler) ListAll(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	places, err := h.service.ListAll(r.Context())
	if err != nil {
		h.writeError(w, "ListAll", err)
		return
	}

	h.writeSuccess(w, "ListAll", places)
}

func (h *PlaceHandler) writeSuccess(w http.ResponseWriter, handler string, data any) {
	if err := httputil.WriteSuccess(w, data); err != nil {
		h.log.Error("failed to write success response", "handler", handler, "operation", "WriteSuccess", "error", err)
	}
}

func (h *PlaceHandler) writeError(w http.ResponseWriter, handler string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handler, "operation", "WriteError", "error", writeErr)
	}
}

func (h *PlaceHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/places", h.session.Require(h.Create))
	router.GET("/api/places", h.session.Require(h.ListMine))
	router.PUT("/api/places", h.session.Require(h.Update))
	router.GET("/api/places/:id", h.GetByID)
	router.GET("/api/home-places", h.ListAll)
}
