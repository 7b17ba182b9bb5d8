// Package storage persists ingested media and turns stored names into the
// value clients put in a place's photo list.
package storage

import (
	"context"
	"io"
)

// Storage is a durable home for media. Save returns the reference clients
// should keep: a bare file name for local storage, an absolute URL for S3.
type Storage interface {
	Save(ctx context.Context, name string, body io.Reader, contentType string) (string, error)
}
