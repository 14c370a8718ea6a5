// File: pkg/storage/gocloud/gocloud.go
package gocloud

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"stowblob/internal/config"
	"stowblob/internal/provider/registry"
	"stowblob/pkg/common"
	"stowblob/pkg/storage"

	"gocloud.dev/blob"
	"gocloud.dev/gcerrors"

	_ "gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/memblob"
)

func init() {
	registry.Register("gocloud", registry.Registration{
		Provider:    common.GoCloud,
		ConfigCheck: isConfigured,
		Initializer: initialize,
	})
}

// storage.container holds a bucket URL such as file:///srv/archive or mem://
func isConfigured(cfg *config.StorageConfig) bool {
	return cfg.Container != ""
}

func initialize(ctx context.Context, cfg *config.StorageConfig, logger *slog.Logger) (storage.Storage, error) {
	if !isConfigured(cfg) {
		return nil, fmt.Errorf("bucket URL missing")
	}
	return NewGoCloudStorage(ctx, cfg.Container, logger)
}

type GoCloudStorage struct {
	bucket *blob.Bucket
	url    string
	logger *slog.Logger
}

var _ storage.Storage = (*GoCloudStorage)(nil)

func NewGoCloudStorage(ctx context.Context, url string, logger *slog.Logger) (*GoCloudStorage, error) {
	bucket, err := blob.OpenBucket(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to open bucket %s: %w", url, err)
	}
	return NewFromBucket(bucket, url, logger), nil
}

// Wraps an already opened bucket. The session takes ownership and closes it
func NewFromBucket(bucket *blob.Bucket, url string, logger *slog.Logger) *GoCloudStorage {
	return &GoCloudStorage{
		bucket: bucket,
		url:    url,
		logger: logger,
	}
}

func (g *GoCloudStorage) ProviderName() common.Provider {
	return common.GoCloud
}

func (g *GoCloudStorage) ListBlobs(ctx context.Context, fn func(storage.Blob) error) error {
	g.logger.Debug("Starting GoCloud ListBlobs operation", "url", g.url)

	it := g.bucket.List(nil)
	for {
		obj, err := it.Next(ctx)
		if err == io.EOF {
			break
		}
		if err != nil {
			return g.opError("list", "", err)
		}
		if obj.IsDir {
			continue
		}

		if err := fn(storage.Blob{
			Name:         obj.Key,
			Container:    g.url,
			Provider:     common.GoCloud,
			Size:         obj.Size,
			LastModified: obj.ModTime,
		}); err != nil {
			return err
		}
	}
	return nil
}

func (g *GoCloudStorage) Upload(ctx context.Context, name string, r io.Reader) error {
	g.logger.Debug("Starting GoCloud Upload operation", "url", g.url, "key", name)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Without WriterOptions the writer sniffs the content type from the first bytes
	w, err := g.bucket.NewWriter(ctx, name, nil)
	if err != nil {
		return g.opError("upload", name, err)
	}
	if _, err := io.Copy(w, r); err != nil {
		// Cancelling before Close discards the partial blob
		cancel()
		_ = w.Close()
		return g.opError("upload", name, err)
	}
	if err := w.Close(); err != nil {
		return g.opError("upload", name, err)
	}
	return nil
}

func (g *GoCloudStorage) Download(ctx context.Context, name string) (io.ReadCloser, error) {
	g.logger.Debug("Starting GoCloud Download operation", "url", g.url, "key", name)

	reader, err := g.bucket.NewReader(ctx, name, nil)
	if err != nil {
		return nil, g.opError("download", name, err)
	}
	return reader, nil
}

func (g *GoCloudStorage) Exists(ctx context.Context, name string) (bool, error) {
	exists, err := g.bucket.Exists(ctx, name)
	if err != nil {
		return false, g.opError("exists", name, err)
	}
	return exists, nil
}

func (g *GoCloudStorage) Close() error {
	return g.bucket.Close()
}

func (g *GoCloudStorage) opError(op, name string, err error) error {
	if gcerrors.Code(err) == gcerrors.NotFound && !errors.Is(err, storage.ErrBlobNotFound) {
		err = fmt.Errorf("%w: %w", storage.ErrBlobNotFound, err)
	}
	return storage.NewOpError(op, common.GoCloud, g.url, name, err)
}
