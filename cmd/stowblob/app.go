// File: cmd/stowblob/app.go
package main

import (
	"io"
	"log/slog"
	"stowblob/internal/config"
	"stowblob/internal/logger"
	"stowblob/internal/provider/factory"
	"stowblob/internal/service"
	"stowblob/internal/ui/prompt"
	"stowblob/pkg/formatter"
)

// appContainer holds all the shared dependencies for the application
// The logger and config manager are rebuilt from the global flags before any command runs
type appContainer struct {
	ConfigManager *config.ConfigManager
	Prompter      prompt.Prompter
	BlobFormatter *formatter.BlobFormatter
	Logger        *slog.Logger
	Out           io.Writer
	Err           io.Writer

	configPath string
	levelName  string
}

// Creates a new application container wired to the given standard streams
func newApp(in io.Reader, out, errOut io.Writer) *appContainer {
	return &appContainer{
		ConfigManager: config.NewConfigManager(config.DefaultConfigFileName),
		Prompter:      prompt.NewStandardPrompter(in, errOut),
		BlobFormatter: formatter.NewBlobFormatter(),
		Logger:        logger.NewLogger(slog.LevelInfo, errOut),
		Out:           out,
		Err:           errOut,
	}
}

// Applies the global flags. The level is checked first so a bad value fails before the configuration is touched
func (a *appContainer) configure() error {
	level, err := logger.ParseLevel(a.levelName)
	if err != nil {
		return err
	}
	a.Logger = logger.NewLogger(level, a.Err)
	a.ConfigManager = config.NewConfigManager(a.configPath)
	a.Logger.Debug("Using configuration file", "path", a.ConfigManager.Path())
	return nil
}

// Loads and validates the configuration, then builds the blob service on top of it
func (a *appContainer) newBlobService() (*service.BlobService, error) {
	cfg, err := a.ConfigManager.LoadConfig()
	if err != nil {
		return nil, err
	}

	providerFactory := factory.NewFactory(&cfg.Storage, a.Logger)
	return service.NewBlobService(cfg, providerFactory, a.Prompter, a.Logger), nil
}
