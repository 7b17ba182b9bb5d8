package service

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	mediaerrors "staynest/internal/media/errors"
)

// RemoteFetcher downloads images for upload-by-link.
type RemoteFetcher struct {
	client   *http.Client
	maxBytes int64
}

func NewRemoteFetcher(timeout time.Duration, maxBytes int64) *RemoteFetcher {
	return &RemoteFetcher{
		client:   &http.Client{Timeout: timeout},
		maxBytes: maxBytes,
	}
}

func (f *RemoteFetcher) Fetch(ctx context.Context, link string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, link, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", mediaerrors.ErrFetchFailed, err)
	}
	req.Header.Set("Accept", "image/*")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", mediaerrors.ErrFetchFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: remote answered %d", mediaerrors.ErrFetchFailed, resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", mediaerrors.ErrFetchFailed, err)
	}
	if int64(len(data)) > f.maxBytes {
		return nil, fmt.Errorf("%w: more than %d bytes", mediaerrors.ErrTooLarge, f.maxBytes)
	}

	return data, nil
}
