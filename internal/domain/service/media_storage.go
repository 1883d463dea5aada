package service

import (
	"context"
	"io"
)

// MediaStorage persists raw attachment bytes and returns a URL the frontend
// can serve. Metadata lives in the media collection, not here.
type MediaStorage interface {
	// Save writes the upload under a collision-free key derived from
	// filename and returns its public URL.
	Save(ctx context.Context, filename, contentType string, body io.Reader) (string, error)

	// Open streams a stored attachment back by key, returning the content
	// reader and the stored MIME type.
	Open(ctx context.Context, key string) (io.ReadCloser, string, error)
}
