// File: pkg/storage/storage.go
package storage

import (
	"context"
	"io"
	"stowblob/pkg/common"
)

// Storage is an open session against a single container of a provider
type Storage interface {
	ProviderName() common.Provider

	// Walks every blob of the container in provider order, stopping at the first error returned by fn
	ListBlobs(ctx context.Context, fn func(Blob) error) error

	// Streams r into the named blob, replacing any existing content
	Upload(ctx context.Context, name string, r io.Reader) error

	// Opens a reader on the named blob. Returns ErrBlobNotFound when it does not exist
	Download(ctx context.Context, name string) (io.ReadCloser, error)

	Exists(ctx context.Context, name string) (bool, error)

	Close() error
}
