package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/axo-networks/marketplace-api/internal/domain"
	"github.com/axo-networks/marketplace-api/internal/storage"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DesignFilePathPrefix is the public URL prefix for stored design files
const DesignFilePathPrefix = "/api/dashboard/design-files/"

// FileService stores design files referenced by sourcing requests and demand listings
type FileService struct {
	storage storage.Storage
	logger  *zap.Logger
}

// NewFileService creates a FileService. A nil storage makes every call return ErrStorageUnavailable.
func NewFileService(store storage.Storage, logger *zap.Logger) *FileService {
	return &FileService{
		storage: store,
		logger:  logger,
	}
}

// UploadDesignFile stores the file and returns the URL to reference it by
func (s *FileService) UploadDesignFile(ctx context.Context, ownerID uuid.UUID, filename, contentType string, data io.Reader) (*domain.DesignFileDTO, error) {
	if s.storage == nil {
		return nil, ErrStorageUnavailable
	}

	filename = filepath.Base(strings.TrimSpace(filename))
	if filename == "" || filename == "." || filename == string(filepath.Separator) {
		return nil, fmt.Errorf("%w: filename is required", ErrInvalidInput)
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	path, size, err := s.storage.Upload(ctx, filename, contentType, data)
	if err != nil {
		return nil, fmt.Errorf("failed to store design file: %w", err)
	}

	s.logger.Info("design file stored",
		zap.String("owner_id", ownerID.String()),
		zap.String("storage_path", path),
		zap.Int64("size", size),
	)

	return &domain.DesignFileDTO{
		StoragePath:   path,
		DesignFileURL: DesignFilePathPrefix + path,
		Filename:      filename,
		ContentType:   contentType,
		Size:          size,
	}, nil
}

// OpenDesignFile streams a stored file back. The caller must close the reader.
func (s *FileService) OpenDesignFile(ctx context.Context, storagePath string) (io.ReadCloser, error) {
	if s.storage == nil {
		return nil, ErrStorageUnavailable
	}

	rc, err := s.storage.Download(ctx, storagePath)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrFileNotFound):
			return nil, ErrNotFound
		case errors.Is(err, storage.ErrInvalidPath):
			return nil, fmt.Errorf("%w: invalid file path", ErrInvalidInput)
		}
		return nil, fmt.Errorf("failed to open design file: %w", err)
	}
	return rc, nil
}
