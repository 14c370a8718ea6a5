// File: pkg/storage/azure/client.go
package azure

import (
	"context"
	"fmt"
	"log/slog"
	"stowblob/internal/config"
	"stowblob/internal/provider/registry"
	"stowblob/pkg/common"
	"stowblob/pkg/storage"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/blockblob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/container"
)

func init() {
	registry.Register("azure", registry.Registration{
		Provider:    common.Azure,
		ConfigCheck: isConfigured,
		Initializer: initialize,
	})
}

func isConfigured(cfg *config.StorageConfig) bool {
	return cfg.Account != "" && cfg.Key != "" && cfg.Container != ""
}

func initialize(ctx context.Context, cfg *config.StorageConfig, logger *slog.Logger) (storage.Storage, error) {
	if !isConfigured(cfg) {
		return nil, fmt.Errorf("azure configuration missing or incomplete")
	}
	return NewAzureStorage(cfg.Account, cfg.Key, cfg.Container, cfg.Endpoint, logger)
}

// Returns the blob service URL of an account, or endpoint when one is configured
func ServiceURL(accountName, endpoint string) string {
	if endpoint != "" {
		return strings.TrimSuffix(endpoint, "/") + "/"
	}
	return "https://" + accountName + ".blob.core.windows.net/"
}

type AzureStorage struct {
	container     *container.Client
	containerName string
	logger        *slog.Logger
}

var _ storage.Storage = (*AzureStorage)(nil)

// Builds a shared-key client for the account and resolves the container. No request is sent
func NewAzureStorage(accountName, accountKey, containerName, endpoint string, logger *slog.Logger) (*AzureStorage, error) {
	credential, err := azblob.NewSharedKeyCredential(accountName, accountKey)
	if err != nil {
		return nil, fmt.Errorf("invalid azure credentials: %w", err)
	}

	serviceURL := ServiceURL(accountName, endpoint)
	client, err := azblob.NewClientWithSharedKeyCredential(serviceURL, credential, &azblob.ClientOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to create azure blob client: %w", err)
	}

	logger.Debug("Azure blob client created", "account", accountName, "url", serviceURL)

	return &AzureStorage{
		container:     client.ServiceClient().NewContainerClient(containerName),
		containerName: containerName,
		logger:        logger,
	}, nil
}

func (a *AzureStorage) ProviderName() common.Provider {
	return common.Azure
}

func (a *AzureStorage) blobHandle(name string) *blockblob.Client {
	return a.container.NewBlockBlobClient(name)
}

func (a *AzureStorage) Close() error {
	// The SDK client holds no resources beyond the shared HTTP transport
	return nil
}
