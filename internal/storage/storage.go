package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/axo-networks/marketplace-api/internal/config"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	// ErrFileNotFound is returned when the storage path does not exist
	ErrFileNotFound = errors.New("file not found")

	// ErrInvalidPath is returned for storage paths that escape the storage root
	ErrInvalidPath = errors.New("invalid storage path")
)

// Storage defines the interface for design file storage operations
type Storage interface {
	Upload(ctx context.Context, filename string, contentType string, data io.Reader) (string, int64, error)
	Download(ctx context.Context, storagePath string) (io.ReadCloser, error)
	Delete(ctx context.Context, storagePath string) error
}

// NewStorage creates a storage backend based on configuration.
// "local" stores files on disk, "cloud" or "azure" in Azure Blob Storage.
func NewStorage(cfg *config.StorageConfig, logger *zap.Logger) (Storage, error) {
	switch cfg.Mode {
	case "local":
		return NewLocalStorage(cfg.LocalBasePath)
	case "cloud", "azure":
		if cfg.CloudConnectionString == "" {
			return nil, fmt.Errorf("cloud connection string required for azure storage")
		}
		return NewAzureBlobStorage(cfg.CloudConnectionString, cfg.CloudContainer, logger)
	default:
		return nil, fmt.Errorf("unsupported storage mode: %s", cfg.Mode)
	}
}

// ObjectName builds a unique storage key that keeps the original extension
func ObjectName(filename string) string {
	fileID := uuid.New().String()
	return fileID + strings.ToLower(filepath.Ext(filename))
}

// CleanPath validates a client-supplied storage path.
// Absolute paths and any ".." segment are rejected.
func CleanPath(storagePath string) (string, error) {
	p := strings.TrimSpace(storagePath)
	if p == "" || strings.HasPrefix(p, "/") || strings.HasPrefix(p, `\`) {
		return "", ErrInvalidPath
	}
	for _, part := range strings.FieldsFunc(p, func(r rune) bool { return r == '/' || r == '\\' }) {
		if part == ".." {
			return "", ErrInvalidPath
		}
	}
	return filepath.ToSlash(filepath.Clean(p)), nil
}

// LocalStorage stores files below a base directory
type LocalStorage struct {
	basePath string
}

// NewLocalStorage creates the base directory when missing
func NewLocalStorage(basePath string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	abs, err := filepath.Abs(basePath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve storage directory: %w", err)
	}
	return &LocalStorage{basePath: abs}, nil
}

// Upload writes the file under a sharded path and returns that path with the size written
func (s *LocalStorage) Upload(ctx context.Context, filename string, contentType string, data io.Reader) (string, int64, error) {
	name := ObjectName(filename)
	storagePath := filepath.ToSlash(filepath.Join(name[:2], name[2:4], name))
	fullPath := filepath.Join(s.basePath, filepath.FromSlash(storagePath))

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return "", 0, fmt.Errorf("failed to create directory: %w", err)
	}

	file, err := os.Create(fullPath)
	if err != nil {
		return "", 0, fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	size, err := io.Copy(file, data)
	if err != nil {
		os.Remove(fullPath)
		return "", 0, fmt.Errorf("failed to write file: %w", err)
	}

	return storagePath, size, nil
}

// Download opens a stored file
func (s *LocalStorage) Download(ctx context.Context, storagePath string) (io.ReadCloser, error) {
	fullPath, err := s.resolve(storagePath)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(fullPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrFileNotFound
		}
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	return file, nil
}

// Delete removes a stored file; a missing file is not an error
func (s *LocalStorage) Delete(ctx context.Context, storagePath string) error {
	fullPath, err := s.resolve(storagePath)
	if err != nil {
		return err
	}

	if err := os.Remove(fullPath); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

func (s *LocalStorage) resolve(storagePath string) (string, error) {
	clean, err := CleanPath(storagePath)
	if err != nil {
		return "", err
	}
	fullPath := filepath.Join(s.basePath, filepath.FromSlash(clean))
	rel, err := filepath.Rel(s.basePath, fullPath)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", ErrInvalidPath
	}
	return fullPath, nil
}
