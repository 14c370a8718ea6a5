// File: pkg/storage/gcp/client.go
package gcp

import (
	"context"
	"fmt"
	"log/slog"
	"stowblob/internal/config"
	"stowblob/internal/provider/registry"
	"stowblob/pkg/common"
	"stowblob/pkg/storage"

	gcpstorage "cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

func init() {
	registry.Register("gcp", registry.Registration{
		Provider:    common.GCP,
		ConfigCheck: isConfigured,
		Initializer: initialize,
	})
}

// The project id is carried in storage.account and the service account key file in storage.key
func isConfigured(cfg *config.StorageConfig) bool {
	return cfg.Account != "" && cfg.Key != "" && cfg.Container != ""
}

func initialize(ctx context.Context, cfg *config.StorageConfig, logger *slog.Logger) (storage.Storage, error) {
	if !isConfigured(cfg) {
		return nil, fmt.Errorf("GCP configuration missing or incomplete")
	}

	opts := []option.ClientOption{option.WithCredentialsFile(cfg.Key)}
	if cfg.Endpoint != "" {
		opts = append(opts, option.WithEndpoint(cfg.Endpoint))
	}
	return NewGCPStorage(ctx, cfg.Account, cfg.Container, logger, opts...)
}

type GCPStorage struct {
	client     *gcpstorage.Client
	bucket     *gcpstorage.BucketHandle
	projectID  string
	bucketName string
	logger     *slog.Logger
}

var _ storage.Storage = (*GCPStorage)(nil)

func NewGCPStorage(ctx context.Context, projectID, bucketName string, logger *slog.Logger, opts ...option.ClientOption) (*GCPStorage, error) {
	client, err := gcpstorage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCP storage client: %w", err)
	}

	logger.Debug("GCP storage client created", "project", projectID, "bucket", bucketName)

	return &GCPStorage{
		client:     client,
		bucket:     client.Bucket(bucketName),
		projectID:  projectID,
		bucketName: bucketName,
		logger:     logger,
	}, nil
}

func (g *GCPStorage) ProviderName() common.Provider {
	return common.GCP
}

func (g *GCPStorage) Close() error {
	if g.client != nil {
		return g.client.Close()
	}
	return nil
}
