package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"staynest/internal/media/service"
	"staynest/internal/media/storage"
	"staynest/pkg/config"
	apperrors "staynest/pkg/errors"
	"staynest/pkg/logger"
	"staynest/pkg/model"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngBytes = append([]byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"), make([]byte, 32)...)

type stubFetcher struct{}

func (stubFetcher) Fetch(ctx context.Context, link string) ([]byte, error) {
	return pngBytes, nil
}

func newLocalRouter(t *testing.T) *httprouter.Router {
	t.Helper()
	dir := t.TempDir()
	log := logger.Discard()

	files, err := storage.NewLocalStorage(filepath.Join(dir, "uploads"))
	require.NoError(t, err)
	cfg := &config.Config{Log: log, UploadDir: files.Dir(), MaxUploadFiles: 100}
	svc, err := service.NewMediaService(files, stubFetcher{}, cfg)
	require.NoError(t, err)

	router := httprouter.New()
	NewMediaHandler(svc, files, log).RegisterRoutes(router)
	return router
}

func multipartBody(t *testing.T, field string, names ...string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for _, name := range names {
		part, err := mw.CreateFormFile(field, name)
		require.NoError(t, err)
		_, err = part.Write(pngBytes)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestUploadImages_EachFileIsRetrievable(t *testing.T) {
	router := newLocalRouter(t)

	body, contentType := multipartBody(t, "photos", "a.png", "b.png", "c.png")
	req := httptest.NewRequest(http.MethodPost, "/api/upload-image", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var refs []string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&refs))
	require.Len(t, refs, 3)

	for _, ref := range refs {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/upload-image/"+ref, nil))
		assert.Equal(t, http.StatusOK, rec.Code, ref)
		assert.Equal(t, pngBytes, rec.Body.Bytes())
	}
}

func TestUploadImages_ServedAsDetectedType(t *testing.T) {
	router := newLocalRouter(t)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("photos", "x.html")
	require.NoError(t, err)
	_, err = part.Write(append(append([]byte{}, pngBytes...), "<script>alert(document.cookie)</script>"...))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/upload-image", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var refs []string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&refs))
	require.Len(t, refs, 1)
	assert.Equal(t, ".png", filepath.Ext(refs[0]))

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/upload-image/"+refs[0], nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
}

func TestUploadImages_WrongField(t *testing.T) {
	router := newLocalRouter(t)

	body, contentType := multipartBody(t, "file", "a.png")
	req := httptest.NewRequest(http.MethodPost, "/api/upload-image", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUploadImages_NotMultipart(t *testing.T) {
	router := newLocalRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/upload-image", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUploadByLink(t *testing.T) {
	router := newLocalRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/upload-by-link", strings.NewReader(`{"link":"https://example.com/a.png"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp model.UploadByLinkResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "successfully uploaded", resp.Message)
	assert.Equal(t, http.StatusOK, resp.Status)
	assert.Equal(t, ".png", filepath.Ext(resp.Image))

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/upload-image/"+resp.Image, nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestUploadByLink_InvalidLink(t *testing.T) {
	router := newLocalRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/upload-by-link", strings.NewReader(`{"link":"javascript:alert(1)"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var body apperrors.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, apperrors.CodeInvalidInput, body.Code)
}

func TestServeFile_RejectsTraversal(t *testing.T) {
	router := newLocalRouter(t)

	for _, path := range []string{"/api/upload-image/.spool", "/api/upload-image/missing.png"} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusNotFound, rec.Code, path)
	}
}

func TestServeFile_NotRegisteredForRemoteStorage(t *testing.T) {
	router := httprouter.New()
	NewMediaHandler(nil, nil, logger.Discard()).RegisterRoutes(router)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/upload-image/a.png", nil))
	assert.NotEqual(t, http.StatusOK, rec.Code)
}
