// Package media stores issue attachments in a blob bucket. The bucket URL
// decides the backend: file:// for local disk, or any other driver gocloud
// supports.
package media

import (
	"context"
	"io"
	"log/slog"
	"path"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
	"gocloud.dev/blob"
	_ "gocloud.dev/blob/fileblob" // register the file:// driver
	"gocloud.dev/gcerrors"

	"civicreport/config"
	domainerrors "civicreport/internal/domain/errors"
	"civicreport/internal/domain/lifecycle"
	"civicreport/internal/domain/service"
)

// blobStore implements service.MediaStorage on a gocloud blob bucket.
type blobStore struct {
	bucket *blob.Bucket
	logger *slog.Logger
}

// Params defines the required parameters
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// New opens the configured bucket and ties its closure to application shutdown.
func New(params Params) (service.MediaStorage, error) {
	if params.Config.Media == nil || params.Config.Media.BucketURL == "" {
		return nil, errors.New("media bucket is not configured")
	}

	ctx, cancel := context.WithTimeout(context.Background(), lifecycle.DefaultTimeout)
	defer cancel()

	bucket, err := blob.OpenBucket(ctx, params.Config.Media.BucketURL)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open media bucket")
	}

	params.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return errors.WithStack(bucket.Close())
		},
	})

	return &blobStore{bucket: bucket, logger: params.Logger}, nil
}

// Save writes the upload under a fresh key and returns the URL the frontend
// serves it from.
func (s *blobStore) Save(ctx context.Context, filename, contentType string, body io.Reader) (string, error) {
	key := uuid.NewString() + "-" + path.Base(filename)

	writer, err := s.bucket.NewWriter(ctx, key, &blob.WriterOptions{ContentType: contentType})
	if err != nil {
		return "", errors.Wrap(err, "failed to open media writer")
	}

	if _, err := io.Copy(writer, body); err != nil {
		_ = writer.Close()

		return "", errors.Wrap(err, "failed to write media")
	}
	if err := writer.Close(); err != nil {
		return "", errors.Wrap(err, "failed to finish media write")
	}

	s.logger.Debug("Stored media attachment", slog.String("key", key))

	return "/media/" + key, nil
}

// Open streams a stored attachment back by key.
func (s *blobStore) Open(ctx context.Context, key string) (io.ReadCloser, string, error) {
	attrs, err := s.bucket.Attributes(ctx, key)
	if err != nil {
		if gcerrors.Code(err) == gcerrors.NotFound {
			return nil, "", domainerrors.ErrNotFound.WithDetails("no media stored under this key")
		}

		return nil, "", errors.Wrap(err, "failed to stat media")
	}

	reader, err := s.bucket.NewReader(ctx, key, nil)
	if err != nil {
		return nil, "", errors.Wrap(err, "failed to open media reader")
	}

	return reader, attrs.ContentType, nil
}
