// File: pkg/storage/gcp/objects.go
package gcp

import (
	"context"
	"errors"
	"fmt"
	"io"
	"stowblob/pkg/common"
	"stowblob/pkg/storage"

	gcpstorage "cloud.google.com/go/storage"
	"google.golang.org/api/iterator"
)

func (g *GCPStorage) ListBlobs(ctx context.Context, fn func(storage.Blob) error) error {
	g.logger.Debug("Starting GCP ListBlobs operation", "bucket", g.bucketName)

	it := g.bucket.Objects(ctx, nil)
	for {
		attrs, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return g.opError("list", "", err)
		}

		if err := fn(mapObjectAttributes(attrs)); err != nil {
			return err
		}
	}
	return nil
}

func (g *GCPStorage) Upload(ctx context.Context, name string, r io.Reader) error {
	g.logger.Debug("Starting GCP Upload operation", "bucket", g.bucketName, "object", name)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	w := g.bucket.Object(name).NewWriter(ctx)
	if _, err := io.Copy(w, r); err != nil {
		// Cancelling before Close abandons the upload instead of committing a truncated object
		cancel()
		_ = w.Close()
		return g.opError("upload", name, err)
	}
	// The object is only committed once the writer is closed
	if err := w.Close(); err != nil {
		return g.opError("upload", name, err)
	}
	return nil
}

func (g *GCPStorage) Download(ctx context.Context, name string) (io.ReadCloser, error) {
	g.logger.Debug("Starting GCP Download operation", "bucket", g.bucketName, "object", name)

	reader, err := g.bucket.Object(name).NewReader(ctx)
	if err != nil {
		return nil, g.opError("download", name, err)
	}
	return reader, nil
}

func (g *GCPStorage) Exists(ctx context.Context, name string) (bool, error) {
	_, err := g.bucket.Object(name).Attrs(ctx)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, gcpstorage.ErrObjectNotExist) {
		return false, nil
	}
	return false, g.opError("exists", name, err)
}

func (g *GCPStorage) opError(op, name string, err error) error {
	if errors.Is(err, gcpstorage.ErrObjectNotExist) {
		err = fmt.Errorf("%w: %w", storage.ErrBlobNotFound, err)
	}
	return storage.NewOpError(op, common.GCP, g.bucketName, name, err)
}
