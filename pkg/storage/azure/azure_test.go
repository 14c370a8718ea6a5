package azure

import (
	"encoding/base64"
	"io"
	"log/slog"
	"testing"
	"time"

	"stowblob/internal/config"
	"stowblob/pkg/common"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/container"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestServiceURL(t *testing.T) {
	assert.Equal(t, "https://myaccount.blob.core.windows.net/", ServiceURL("myaccount", ""))
	assert.Equal(t, "http://127.0.0.1:10000/devstoreaccount1/", ServiceURL("devstoreaccount1", "http://127.0.0.1:10000/devstoreaccount1"))
	assert.Equal(t, "http://localhost:10000/acct/", ServiceURL("acct", "http://localhost:10000/acct/"))
}

func TestNewAzureStorage(t *testing.T) {
	key := base64.StdEncoding.EncodeToString([]byte("not-a-real-key"))

	s, err := NewAzureStorage("myaccount", key, "archive", "", discardLogger())
	require.NoError(t, err)
	assert.Equal(t, common.Azure, s.ProviderName())
	assert.Equal(t, "https://myaccount.blob.core.windows.net/archive", s.container.URL())
	assert.Equal(t, "https://myaccount.blob.core.windows.net/archive/report.pdf", s.blobHandle("report.pdf").URL())
	assert.NoError(t, s.Close())
}

func TestNewAzureStorage_InvalidKey(t *testing.T) {
	_, err := NewAzureStorage("myaccount", "%%% not base64 %%%", "archive", "", discardLogger())
	assert.Error(t, err)
}

func TestIsConfigured(t *testing.T) {
	cfg := newStorageConfig("a", "k", "c")
	assert.True(t, isConfigured(cfg))

	cfg.Container = ""
	assert.False(t, isConfigured(cfg))
}

func TestMapBlobItem(t *testing.T) {
	modified := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	etag := azcore.ETag("0x8DC")
	item := &container.BlobItem{
		Name: ptr("docs/report.pdf"),
		Properties: &container.BlobProperties{
			ContentLength: ptr(int64(2048)),
			ContentType:   ptr("application/pdf"),
			LastModified:  &modified,
			ETag:          &etag,
		},
	}

	blob := mapBlobItem(item, "archive")
	assert.Equal(t, "docs/report.pdf", blob.Name)
	assert.Equal(t, "archive", blob.Container)
	assert.Equal(t, common.Azure, blob.Provider)
	assert.Equal(t, int64(2048), blob.Size)
	assert.Equal(t, "application/pdf", blob.ContentType)
	assert.Equal(t, modified, blob.LastModified)
	assert.Equal(t, "0x8DC", blob.ETag)
}

func TestMapBlobItem_MissingProperties(t *testing.T) {
	blob := mapBlobItem(&container.BlobItem{Name: ptr("a.txt")}, "archive")
	assert.Equal(t, "a.txt", blob.Name)
	assert.Equal(t, int64(-1), blob.Size)
}

func newStorageConfig(account, key, containerName string) *config.StorageConfig {
	return &config.StorageConfig{Provider: "azure", Account: account, Key: key, Container: containerName}
}
