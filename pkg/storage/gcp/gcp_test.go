package gcp

import (
	"errors"
	"testing"
	"time"

	"stowblob/internal/config"
	"stowblob/pkg/common"
	"stowblob/pkg/storage"

	gcpstorage "cloud.google.com/go/storage"
	"github.com/stretchr/testify/assert"
)

func TestMapObjectAttributes(t *testing.T) {
	updated := time.Date(2025, 6, 2, 9, 30, 0, 0, time.UTC)
	blob := mapObjectAttributes(&gcpstorage.ObjectAttrs{
		Name:        "backups/db.tar.gz",
		Bucket:      "archive",
		Size:        4096,
		ContentType: "application/gzip",
		Updated:     updated,
		Etag:        "CJj3",
	})

	assert.Equal(t, storage.Blob{
		Name:         "backups/db.tar.gz",
		Container:    "archive",
		Provider:     common.GCP,
		Size:         4096,
		ContentType:  "application/gzip",
		LastModified: updated,
		ETag:         "CJj3",
	}, blob)
}

func TestMapObjectAttributes_Nil(t *testing.T) {
	blob := mapObjectAttributes(nil)
	assert.Equal(t, common.GCP, blob.Provider)
	assert.Equal(t, int64(-1), blob.Size)
}

func TestIsConfigured(t *testing.T) {
	assert.True(t, isConfigured(&config.StorageConfig{Account: "proj", Key: "/creds.json", Container: "bucket"}))
	assert.False(t, isConfigured(&config.StorageConfig{Account: "proj", Container: "bucket"}))
}

func TestOpError_NotFound(t *testing.T) {
	g := &GCPStorage{bucketName: "archive"}

	err := g.opError("download", "missing.txt", gcpstorage.ErrObjectNotExist)
	assert.ErrorIs(t, err, storage.ErrBlobNotFound)
	assert.ErrorIs(t, err, gcpstorage.ErrObjectNotExist)

	var opErr *storage.OpError
	assert.True(t, errors.As(err, &opErr))
	assert.Equal(t, "missing.txt", opErr.Key)

	err = g.opError("upload", "a.txt", errors.New("boom"))
	assert.ErrorIs(t, err, storage.ErrTransfer)
	assert.NotErrorIs(t, err, storage.ErrBlobNotFound)
}
