// File: internal/provider/registry/registry.go
package registry

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"stowblob/internal/config"
	"stowblob/pkg/common"
	"stowblob/pkg/storage"
	"strings"
	"sync"
)

// Reports whether the storage section carries everything the backend needs
type ConfigCheck func(cfg *config.StorageConfig) bool

// Opens a session on the configured container. Implementations must not perform network I/O
type Initializer func(ctx context.Context, cfg *config.StorageConfig, logger *slog.Logger) (storage.Storage, error)

type Registration struct {
	// Display name carried by the session logger
	Provider    common.Provider
	ConfigCheck ConfigCheck
	Initializer Initializer
}

var (
	// Keyed by the lowercase name used in the [storage] provider setting
	backends   = make(map[string]Registration)
	backendsMu sync.RWMutex
)

// Called by backend packages from init()
func Register(name string, registration Registration) {
	backendsMu.Lock()
	defer backendsMu.Unlock()

	normalizedName := strings.ToLower(name)
	if _, exists := backends[normalizedName]; exists {
		panic(fmt.Sprintf("storage backend %s already registered", normalizedName))
	}
	if registration.ConfigCheck == nil {
		panic(fmt.Sprintf("storage backend %s registration missing ConfigCheck", normalizedName))
	}
	if registration.Initializer == nil {
		panic(fmt.Sprintf("storage backend %s registration missing Initializer", normalizedName))
	}

	backends[normalizedName] = registration
}

// Returns the sorted names of all registered backends
func Names() []string {
	backendsMu.RLock()
	defer backendsMu.RUnlock()

	names := make([]string, 0, len(backends))
	for name := range backends {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func Lookup(name string) (Registration, bool) {
	backendsMu.RLock()
	defer backendsMu.RUnlock()

	registration, exists := backends[strings.ToLower(name)]
	return registration, exists
}
