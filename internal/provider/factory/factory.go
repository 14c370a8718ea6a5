// File: internal/provider/factory/factory.go
package factory

import (
	"context"
	"fmt"
	"log/slog"
	"stowblob/internal/config"
	"stowblob/internal/provider/registry"
	"stowblob/pkg/storage"
	"strings"
)

type Factory struct {
	cfg    *config.StorageConfig
	logger *slog.Logger
}

func NewFactory(cfg *config.StorageConfig, logger *slog.Logger) *Factory {
	return &Factory{
		cfg:    cfg,
		logger: logger,
	}
}

// Checks if a specific backend is registered and has what it needs in the storage section
func (f *Factory) IsConfigured(providerName string) bool {
	registration, exists := registry.Lookup(providerName)
	if !exists {
		return false
	}
	return registration.ConfigCheck(f.cfg)
}

// Opens a session for the named backend on the configured container. Every failure is an ErrConnection
func (f *Factory) GetStorageProvider(ctx context.Context, providerName string) (storage.Storage, error) {
	normalizedName := strings.ToLower(providerName)

	registration, exists := registry.Lookup(normalizedName)
	if !exists {
		return nil, fmt.Errorf("%w: unsupported provider: %s. Supported providers are: %v", storage.ErrConnection, providerName, registry.Names())
	}

	if !f.IsConfigured(normalizedName) {
		return nil, fmt.Errorf("%w: provider '%s' is not configured. Set storage.account, storage.key and storage.container", storage.ErrConnection, normalizedName)
	}

	providerLogger := f.logger.With("provider", registration.Provider, "container", f.cfg.Container)

	client, err := registration.Initializer(ctx, f.cfg, providerLogger)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to initialize provider %s: %w", storage.ErrConnection, normalizedName, err)
	}

	providerLogger.Debug("Storage session opened", "account", f.cfg.Account)
	return client, nil
}
