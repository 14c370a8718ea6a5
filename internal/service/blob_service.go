// File: internal/service/blob_service.go
package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"stowblob/internal/config"
	"stowblob/internal/ui/prompt"
	"stowblob/pkg/storage"
)

var (
	// ErrFileAccess wraps local open, read, write and rename failures
	ErrFileAccess = errors.New("file access error")

	// ErrAlreadyExists is returned when overwrite is disabled and the target was not confirmed
	ErrAlreadyExists = errors.New("target already exists")
)

// Opens storage sessions; satisfied by *factory.Factory
type StorageFactory interface {
	GetStorageProvider(ctx context.Context, providerName string) (storage.Storage, error)
}

// Runs the list, upload and download operations against the configured container.
// Each call opens its own session and closes it before returning
type BlobService struct {
	cfg      *config.Config
	factory  StorageFactory
	prompter prompt.Prompter
	logger   *slog.Logger
}

func NewBlobService(cfg *config.Config, factory StorageFactory, prompter prompt.Prompter, logger *slog.Logger) *BlobService {
	return &BlobService{
		cfg:      cfg,
		factory:  factory,
		prompter: prompter,
		logger:   logger.With("service", "BlobService"),
	}
}

// Calls fn for every blob of the container, in the provider's enumeration order
func (s *BlobService) ListBlobs(ctx context.Context, fn func(storage.Blob) error) error {
	s.logger.Debug("Starting ListBlobs operation", "account", s.cfg.Storage.Account, "container", s.cfg.Storage.Container)

	client, err := s.getStorageClient(ctx)
	if err != nil {
		return err
	}
	defer client.Close()

	count := 0
	err = client.ListBlobs(ctx, func(blob storage.Blob) error {
		s.logger.Info("Blob found", "name", blob.Name)
		count++
		return fn(blob)
	})
	if err != nil {
		s.logger.Error("Failed to list blobs", "container", s.cfg.Storage.Container, "error", err)
		return err
	}

	s.logger.Debug("Finished ListBlobs operation", "count", count)
	return nil
}

// Sends the local file to the container under its base name and returns that name.
// The file is opened before any session so an unreadable path never reaches the provider
func (s *BlobService) Upload(ctx context.Context, localPath string, force bool) (string, error) {
	s.logger.Debug("Starting Upload operation", "account", s.cfg.Storage.Account, "container", s.cfg.Storage.Container)
	s.logger.Info("Uploading file", "file", localPath)

	file, err := os.Open(localPath)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrFileAccess, err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrFileAccess, err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("%w: %s is a directory", ErrFileAccess, localPath)
	}

	blobName := filepath.Base(localPath)

	client, err := s.getStorageClient(ctx)
	if err != nil {
		return "", err
	}
	defer client.Close()

	if s.cfg.General.Overwrite {
		s.logger.Warn("Blob may already exist and will be overwritten", "blob", blobName)
	} else {
		exists, err := client.Exists(ctx, blobName)
		if err != nil {
			return "", err
		}
		if exists {
			if err := s.confirmOverwrite(fmt.Sprintf("Blob '%s' already exists in container '%s'.", blobName, s.cfg.Storage.Container), blobName, force); err != nil {
				return "", err
			}
		}
	}

	if err := client.Upload(ctx, blobName, file); err != nil {
		s.logger.Error("Failed to upload blob", "blob", blobName, "error", err)
		return "", err
	}

	s.logger.Info("Upload complete", "blob", blobName, "bytes", info.Size())
	return blobName, nil
}

// Writes the named blob to restoredir/remoteName and returns the local path.
// Content is staged in a temporary file next to the destination, so a failed transfer leaves nothing behind
func (s *BlobService) Download(ctx context.Context, remoteName string, force bool) (string, error) {
	restoreDir := s.cfg.General.RestoreDir
	s.logger.Debug("Starting Download operation", "account", s.cfg.Storage.Account, "container", s.cfg.Storage.Container)
	s.logger.Info("Downloading blob", "blob", remoteName, "restoreDir", restoreDir)

	if restoreDir == "" {
		return "", fmt.Errorf("%w: general.restoredir is required for downloads", config.ErrConfigMissing)
	}

	destPath, err := destinationPath(restoreDir, remoteName)
	if err != nil {
		return "", err
	}

	client, err := s.getStorageClient(ctx)
	if err != nil {
		return "", err
	}
	defer client.Close()

	if _, err := os.Stat(destPath); err == nil {
		if s.cfg.General.Overwrite {
			s.logger.Warn("Local file exists and will be overwritten", "file", destPath)
		} else {
			// Never ask to replace a local file with a blob that is not there
			exists, err := client.Exists(ctx, remoteName)
			if err != nil {
				return "", err
			}
			if !exists {
				return "", storage.NewOpError("download", client.ProviderName(), s.cfg.Storage.Container, remoteName, storage.ErrBlobNotFound)
			}
			if err := s.confirmOverwrite(fmt.Sprintf("File '%s' already exists.", destPath), remoteName, force); err != nil {
				return "", err
			}
		}
	} else if !os.IsNotExist(err) {
		return "", fmt.Errorf("%w: %w", ErrFileAccess, err)
	}

	body, err := client.Download(ctx, remoteName)
	if err != nil {
		s.logger.Error("Failed to download blob", "blob", remoteName, "error", err)
		return "", err
	}
	defer body.Close()

	written, err := writeFileAtomic(destPath, body)
	if err != nil {
		s.logger.Error("Failed to write downloaded blob", "blob", remoteName, "file", destPath, "error", err)
		return "", err
	}

	s.logger.Info("Download complete", "blob", remoteName, "file", destPath, "bytes", written)
	return destPath, nil
}

func (s *BlobService) confirmOverwrite(message, name string, force bool) error {
	if force {
		s.logger.Warn("Overwrite forced", "target", name)
		return nil
	}
	if s.prompter == nil {
		return fmt.Errorf("%w: %s (overwrite is disabled)", ErrAlreadyExists, name)
	}

	confirmed, err := s.prompter.Confirm(message+" Overwrite is disabled in the configuration.", name)
	if err != nil {
		return err
	}
	if !confirmed {
		return fmt.Errorf("%w: %s (overwrite not confirmed)", ErrAlreadyExists, name)
	}
	return nil
}

// Helper to initialize the storage client and handle common error logging
func (s *BlobService) getStorageClient(ctx context.Context) (storage.Storage, error) {
	client, err := s.factory.GetStorageProvider(ctx, s.cfg.Storage.Provider)
	if err != nil {
		s.logger.Error("Failed to initialize provider", "provider", s.cfg.Storage.Provider, "error", err)
		return nil, err
	}
	return client, nil
}

// Joins the blob name onto the restore directory, refusing names that would land outside it
func destinationPath(restoreDir, remoteName string) (string, error) {
	rel := filepath.FromSlash(remoteName)
	if remoteName == "" || !filepath.IsLocal(rel) {
		return "", fmt.Errorf("%w: blob name %q does not map to a path inside the restore directory", ErrFileAccess, remoteName)
	}
	return filepath.Join(restoreDir, rel), nil
}

func writeFileAtomic(destPath string, r io.Reader) (int64, error) {
	dir := filepath.Dir(destPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrFileAccess, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(destPath)+".*.part")
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrFileAccess, err)
	}
	committed := false
	defer func() {
		if !committed {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	written, err := io.Copy(tmp, r)
	if err != nil {
		return written, fmt.Errorf("%w: %w", storage.ErrTransfer, err)
	}
	if err := tmp.Chmod(0o644); err != nil {
		return written, fmt.Errorf("%w: %w", ErrFileAccess, err)
	}
	if err := tmp.Close(); err != nil {
		return written, fmt.Errorf("%w: %w", ErrFileAccess, err)
	}
	if err := os.Rename(tmp.Name(), destPath); err != nil {
		return written, fmt.Errorf("%w: %w", ErrFileAccess, err)
	}
	committed = true
	return written, nil
}
