package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	mediaerrors "staynest/internal/media/errors"
	"staynest/pkg/config"
	apperrors "staynest/pkg/errors"
	"staynest/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	pngBytes  = append([]byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"), make([]byte, 32)...)
	jpegBytes = append([]byte("\xff\xd8\xff\xe0\x00\x10JFIF\x00"), make([]byte, 32)...)

	namePattern = regexp.MustCompile(`^\d{13}-[0-9a-f]{8}\.[a-z]+$`)
)

type fakeStorage struct {
	saved  map[string][]byte
	types  map[string]string
	failOn int
	calls  int
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{saved: map[string][]byte{}, types: map[string]string{}}
}

func (f *fakeStorage) Save(ctx context.Context, name string, body io.Reader, contentType string) (string, error) {
	f.calls++
	if f.failOn == f.calls {
		return "", errors.New("bucket unreachable")
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}
	f.saved[name] = data
	f.types[name] = contentType
	return name, nil
}

type fakeFetcher struct {
	data []byte
	err  error
}

func (f fakeFetcher) Fetch(ctx context.Context, link string) ([]byte, error) {
	return f.data, f.err
}

func newTestService(t *testing.T, store *fakeStorage, fetcher Fetcher) (MediaService, string) {
	t.Helper()
	dir := t.TempDir()
	cfg := &config.Config{Log: logger.Discard(), UploadDir: dir, MaxUploadFiles: 3}
	svc, err := NewMediaService(store, fetcher, cfg)
	require.NoError(t, err)
	return svc, filepath.Join(dir, spoolDirName)
}

type upload struct {
	name string
	data []byte
}

func fileHeaders(t *testing.T, uploads ...upload) []*multipart.FileHeader {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for _, u := range uploads {
		part, err := mw.CreateFormFile("photos", u.name)
		require.NoError(t, err)
		_, err = part.Write(u.data)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	form, err := multipart.NewReader(&buf, mw.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })
	return form.File["photos"]
}

func TestIngestFromURL(t *testing.T) {
	store := newFakeStorage()
	svc, _ := newTestService(t, store, fakeFetcher{data: jpegBytes})

	ref, err := svc.IngestFromURL(context.Background(), "  HTTPS://Images.Example.com/cat.jpg ")
	require.NoError(t, err)

	assert.Regexp(t, namePattern, ref)
	assert.Equal(t, ".jpg", filepath.Ext(ref))
	assert.Equal(t, jpegBytes, store.saved[ref])
	assert.Equal(t, "image/jpeg", store.types[ref])
}

func TestIngestFromURL_Errors(t *testing.T) {
	tests := []struct {
		name     string
		link     string
		fetcher  fakeFetcher
		failSave bool
		wantCode string
	}{
		{"not a url", "ftp://example.com/a.jpg", fakeFetcher{data: pngBytes}, false, apperrors.CodeInvalidInput},
		{"fetch failed", "https://example.com/a.jpg", fakeFetcher{err: mediaerrors.ErrFetchFailed}, false, apperrors.CodeUpstream},
		{"too large", "https://example.com/a.jpg", fakeFetcher{err: mediaerrors.ErrTooLarge}, false, apperrors.CodeUpstream},
		{"not an image", "https://example.com/a.jpg", fakeFetcher{data: []byte("<html></html>")}, false, apperrors.CodeUpstream},
		{"storage failed", "https://example.com/a.png", fakeFetcher{data: pngBytes}, true, apperrors.CodeUpstream},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newFakeStorage()
			if tt.failSave {
				store.failOn = 1
			}
			svc, _ := newTestService(t, store, tt.fetcher)

			_, err := svc.IngestFromURL(context.Background(), tt.link)
			require.Error(t, err)
			assert.Equal(t, tt.wantCode, apperrors.AsAppError(err).Code)
			assert.Empty(t, store.saved)
		})
	}
}

func TestIngestUploads(t *testing.T) {
	store := newFakeStorage()
	svc, spool := newTestService(t, store, nil)

	refs, err := svc.IngestUploads(context.Background(), fileHeaders(t,
		upload{"one.PNG", pngBytes},
		upload{"two.jpeg", jpegBytes},
		upload{"three", pngBytes},
		upload{"four.html", append(append([]byte{}, pngBytes...), "<script>alert(1)</script>"...)},
	))
	require.NoError(t, err)
	require.Len(t, refs, 4)

	assert.Equal(t, ".png", filepath.Ext(refs[0]))
	assert.Equal(t, ".jpg", filepath.Ext(refs[1]))
	assert.Equal(t, ".png", filepath.Ext(refs[2]), "missing extension comes from the detected type")
	assert.Equal(t, ".png", filepath.Ext(refs[3]), "client extension never reaches the stored name")
	assert.Equal(t, "image/png", store.types[refs[3]])
	for _, ref := range refs {
		assert.Regexp(t, namePattern, ref)
		assert.Contains(t, store.saved, ref)
	}

	entries, err := os.ReadDir(spool)
	require.NoError(t, err)
	assert.Empty(t, entries, "temp copies must be removed")
}

func TestIngestUploads_PartialFailure(t *testing.T) {
	store := newFakeStorage()
	store.failOn = 2
	svc, spool := newTestService(t, store, nil)

	refs, err := svc.IngestUploads(context.Background(), fileHeaders(t,
		upload{"a.png", pngBytes},
		upload{"b.png", pngBytes},
		upload{"c.png", pngBytes},
	))
	require.Error(t, err)

	appErr := apperrors.AsAppError(err)
	assert.Equal(t, apperrors.CodePartialFailure, appErr.Code)
	assert.Equal(t, http.StatusBadGateway, appErr.HTTPStatus)
	assert.Equal(t, "b.png", appErr.Details["failed"])

	require.Len(t, refs, 1)
	assert.Equal(t, refs, appErr.Details["uploaded"])
	assert.Contains(t, store.saved, refs[0], "the first file stays persisted")
	assert.Equal(t, 2, store.calls, "processing stops at the failing file")

	entries, err := os.ReadDir(spool)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestIngestUploads_FirstFileFails(t *testing.T) {
	store := newFakeStorage()
	svc, _ := newTestService(t, store, nil)

	refs, err := svc.IngestUploads(context.Background(), fileHeaders(t,
		upload{"notes.txt", []byte("plain text, not an image")},
		upload{"b.png", pngBytes},
	))
	require.Error(t, err)
	assert.Nil(t, refs)
	assert.Equal(t, apperrors.CodeUpstream, apperrors.AsAppError(err).Code)
	assert.ErrorIs(t, err, mediaerrors.ErrNotImage)
	assert.Zero(t, store.calls)
}

func TestIngestUploads_Count(t *testing.T) {
	svc, _ := newTestService(t, newFakeStorage(), nil)

	_, err := svc.IngestUploads(context.Background(), nil)
	assert.Equal(t, apperrors.CodeInvalidInput, apperrors.AsAppError(err).Code)

	var many []upload
	for i := 0; i < 4; i++ {
		many = append(many, upload{fmt.Sprintf("%d.png", i), pngBytes})
	}
	_, err = svc.IngestUploads(context.Background(), fileHeaders(t, many...))
	assert.Equal(t, apperrors.CodeInvalidInput, apperrors.AsAppError(err).Code)
}

func TestRemoteFetcher(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ok.png":
			_, _ = w.Write(pngBytes)
		case "/big.png":
			_, _ = w.Write(make([]byte, 1024))
		case "/slow.png":
			time.Sleep(200 * time.Millisecond)
			_, _ = w.Write(pngBytes)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	f := NewRemoteFetcher(100*time.Millisecond, 512)

	data, err := f.Fetch(context.Background(), srv.URL+"/ok.png")
	require.NoError(t, err)
	assert.Equal(t, pngBytes, data)

	_, err = f.Fetch(context.Background(), srv.URL+"/missing.png")
	assert.ErrorIs(t, err, mediaerrors.ErrFetchFailed)

	_, err = f.Fetch(context.Background(), srv.URL+"/big.png")
	assert.ErrorIs(t, err, mediaerrors.ErrTooLarge)

	_, err = f.Fetch(context.Background(), srv.URL+"/slow.png")
	assert.ErrorIs(t, err, mediaerrors.ErrFetchFailed)
}
