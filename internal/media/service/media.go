package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	mediaerrors "staynest/internal/media/errors"
	"staynest/internal/media/storage"
	"staynest/pkg/config"
	apperrors "staynest/pkg/errors"
	"staynest/pkg/logger"
	"staynest/pkg/sanitizer"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

const spoolDirName = ".spool"

type Fetcher interface {
	Fetch(ctx context.Context, link string) ([]byte, error)
}

type MediaService interface {
	IngestFromURL(ctx context.Context, link string) (string, error)
	IngestUploads(ctx context.Context, files []*multipart.FileHeader) ([]string, error)
}

type mediaService struct {
	storage  storage.Storage
	fetcher  Fetcher
	spoolDir string
	cfg      *config.Config
	now      func() time.Time
}

// NewMediaService spools uploads under UploadDir/.spool, a directory the
// local file server never exposes.
func NewMediaService(store storage.Storage, fetcher Fetcher, cfg *config.Config) (MediaService, error) {
	spoolDir := filepath.Join(cfg.UploadDir, spoolDirName)
	if err := os.MkdirAll(spoolDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create spool directory: %w", err)
	}

	return &mediaService{
		storage:  store,
		fetcher:  fetcher,
		spoolDir: spoolDir,
		cfg:      cfg,
		now:      time.Now,
	}, nil
}

func (s *mediaService) IngestFromURL(ctx context.Context, link string) (string, error) {
	normalized := sanitizer.NormalizeLink(link)
	if normalized == "" {
		return "", apperrors.InvalidInput("link must be an absolute http or https URL")
	}

	data, err := s.fetcher.Fetch(ctx, normalized)
	if err != nil {
		s.log(ctx).Warn("Remote image fetch failed", "link", normalized, "error", err)
		if errors.Is(err, mediaerrors.ErrTooLarge) {
			return "", apperrors.Upstream("Remote image is too large", err)
		}
		return "", apperrors.Upstream("Failed to fetch remote image", err)
	}

	mtype := mimetype.Detect(data)
	if !isImage(mtype) {
		return "", apperrors.Upstream("Remote content is not an image", mediaerrors.ErrNotImage).
			WithDetails(map[string]any{"detected_mime": mtype.String()})
	}

	ref, err := s.storage.Save(ctx, s.newName(mtype.Extension()), bytes.NewReader(data), mtype.String())
	if err != nil {
		return "", apperrors.Upstream("Failed to store image", err)
	}

	s.log(ctx).Info("Image ingested from link", "link", normalized, "ref", ref, "bytes", len(data))
	return ref, nil
}

// IngestUploads persists files one at a time and stops at the first failure.
// Files persisted before the failure stay persisted; their references are
// listed in the PARTIAL_FAILURE details.
func (s *mediaService) IngestUploads(ctx context.Context, files []*multipart.FileHeader) ([]string, error) {
	if len(files) == 0 {
		return nil, apperrors.InvalidInput("at least one file is required in field photos")
	}
	if len(files) > s.cfg.MaxUploadFiles {
		return nil, apperrors.InvalidInput(fmt.Sprintf("at most %d files can be uploaded at once", s.cfg.MaxUploadFiles))
	}

	saved := make([]string, 0, len(files))
	for i, fh := range files {
		ref, err := s.ingestUpload(ctx, fh)
		if err != nil {
			s.log(ctx).Error("Upload persistence failed",
				"file", fh.Filename,
				"index", i,
				"persisted", len(saved),
				"error", err,
			)
			if len(saved) == 0 {
				return nil, apperrors.Upstream("Failed to store uploaded image", err).
					WithDetails(map[string]any{"failed": fh.Filename})
			}
			return saved, apperrors.PartialFailure("Some images were stored before a failure", err, map[string]any{
				"uploaded": saved,
				"failed":   fh.Filename,
			})
		}
		saved = append(saved, ref)
	}

	s.log(ctx).Info("Images uploaded successfully", "count", len(saved))
	return saved, nil
}

// ingestUpload spools the part to a temp file, hands it to storage and removes
// the temp file. The stored name takes the extension of the detected type;
// the client's file name only names the spool file.
func (s *mediaService) ingestUpload(ctx context.Context, fh *multipart.FileHeader) (string, error) {
	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open upload: %w", err)
	}
	defer src.Close()

	ext := strings.ToLower(filepath.Ext(fh.Filename))
	tmp, err := os.CreateTemp(s.spoolDir, "upload-*"+ext)
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
	}()

	if _, err := io.Copy(tmp, src); err != nil {
		return "", fmt.Errorf("failed to spool upload: %w", err)
	}
	if _, err := tmp.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("failed to rewind upload: %w", err)
	}

	mtype, err := mimetype.DetectReader(tmp)
	if err != nil {
		return "", fmt.Errorf("failed to detect content type: %w", err)
	}
	if !isImage(mtype) {
		return "", fmt.Errorf("%w: %s is %s", mediaerrors.ErrNotImage, fh.Filename, mtype.String())
	}
	if _, err := tmp.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("failed to rewind upload: %w", err)
	}

	return s.storage.Save(ctx, s.newName(mtype.Extension()), tmp, mtype.String())
}

// newName is <unix-millis>-<8 hex chars><ext>; the random part keeps names
// unique within one millisecond.
func (s *mediaService) newName(ext string) string {
	return fmt.Sprintf("%d-%s%s", s.now().UnixMilli(), uuid.NewString()[:8], ext)
}

func (s *mediaService) log(ctx context.Context) *logger.Logger {
	return logger.FromContext(ctx, s.cfg.Log)
}

func isImage(mtype *mimetype.MIME) bool {
	return strings.HasPrefix(mtype.String(), "image/")
}
