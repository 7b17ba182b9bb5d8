package handler

import (
	"net/http"

	httputil "staynest/pkg/http"
	"staynest/pkg/logger"

	"github.com/julienschmidt/httprouter"
)

const testResponse = "test ok"

// PingHandler serves GET /api/test, the API-side liveness check the web
// client calls. Unlike /health it runs through the full middleware chain.
type PingHandler struct {
	log *logger.Logger
}

func NewPingHandler(log *logger.Logger) *PingHandler {
	return &PingHandler{log: log}
}

func (h *PingHandler) Test(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if err := httputil.WriteSuccess(w, testResponse); err != nil {
		h.log.Error("failed to write success response", "handler", "Test", "operation", "WriteSuccess", "error", err)
	}
}

func (h *PingHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api/test", h.Test)
}
