package handler

import (
	"errors"
	"net/http"
	"strings"

	"staynest/internal/media/service"
	"staynest/internal/media/storage"
	apperrors "staynest/pkg/errors"
	httputil "staynest/pkg/http"
	"staynest/pkg/logger"
	"staynest/pkg/model"

	"github.com/julienschmidt/httprouter"
)

const (
	uploadField = "photos"

	// Parts beyond this are spooled to disk by net/http.
	multipartMemory = 32 << 20
)

type MediaHandler struct {
	service service.MediaService
	files   *storage.LocalStorage
	log     *logger.Logger
}

// NewMediaHandler serves stored files back only when files is non-nil, which
// is the case for the local backend.
func NewMediaHandler(service service.MediaService, files *storage.LocalStorage, log *logger.Logger) *MediaHandler {
	return &MediaHandler{
		service: service,
		files:   files,
		log:     log,
	}
}

func (h *MediaHandler) UploadByLink(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req model.UploadByLinkRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		h.writeError(w, "UploadByLink", err)
		return
	}

	ref, err := h.service.IngestFromURL(r.Context(), req.Link)
	if err != nil {
		h.writeError(w, "UploadByLink", err)
		return
	}

	if err := httputil.WriteSuccess(w, model.UploadByLinkResponse{
		Image:   ref,
		Message: "successfully uploaded",
		Status:  http.StatusOK,
	}); err != nil {
		h.log.Error("failed to write success response", "handler", "UploadByLink", "operation", "WriteSuccess", "error", err)
	}
}

func (h *MediaHandler) UploadImages(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.writeError(w, "UploadImages", apperrors.TooLarge("upload too large"))
			return
		}
		h.writeError(w, "UploadImages", apperrors.InvalidInput("invalid multipart body"))
		return
	}
	defer func() {
		if err := r.MultipartForm.RemoveAll(); err != nil {
			h.log.Warn("failed to remove multipart temp files", "error", err)
		}
	}()

	refs, err := h.service.IngestUploads(r.Context(), r.MultipartForm.File[uploadField])
	if err != nil {
		h.writeError(w, "UploadImages", err)
		return
	}

	if err := httputil.WriteSuccess(w, refs); err != nil {
		h.log.Error("failed to write success response", "handler", "UploadImages", "operation", "WriteSuccess", "error", err)
	}
}

func (h *MediaHandler) ServeFile(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	path, err := h.files.Path(strings.TrimPrefix(ps.ByName("filepath"), "/"))
	if err != nil {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("X-Content-Type-Options", "nosniff")
	http.ServeFile(w, r, path)
}

func (h *MediaHandler) writeError(w http.ResponseWriter, handler string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handler, "operation", "WriteError", "error", writeErr)
	}
}

func (h *MediaHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/upload-by-link", h.UploadByLink)
	router.POST("/api/upload-image", h.UploadImages)
	if h.files != nil {
		router.GET("/api/upload-image/*filepath", h.ServeFile)
	}
}
