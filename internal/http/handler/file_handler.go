package handler

import (
	"fmt"
	"io"
	"mime"
	"net/http"
	"path/filepath"

	"github.com/axo-networks/marketplace-api/internal/domain"
	"github.com/axo-networks/marketplace-api/internal/service"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type FileHandler struct {
	fileService *service.FileService
	maxUploadMB int64
	logger      *zap.Logger
}

func NewFileHandler(fileService *service.FileService, maxUploadMB int64, logger *zap.Logger) *FileHandler {
	return &FileHandler{
		fileService: fileService,
		maxUploadMB: maxUploadMB,
		logger:      logger,
	}
}

// @Summary Upload a design file
// @Description Returns the designFileUrl to reference from a sourcing request or demand listing
// @Tags Files
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Design file"
// @Success 201 {object} domain.DesignFileResponse
// @Failure 400 {object} domain.ErrorResponse
// @Failure 413 {object} domain.ErrorResponse
// @Failure 503 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /dashboard/design-files [post]
func (h *FileHandler) Upload(w http.ResponseWriter, r *http.Request) {
	userCtx, ok := caller(w, r)
	if !ok {
		return
	}

	// Limit request size
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadMB*1024*1024)

	if err := r.ParseMultipartForm(h.maxUploadMB * 1024 * 1024); err != nil {
		respondWithError(w, http.StatusRequestEntityTooLarge, fmt.Sprintf("File too large: maximum size is %dMB", h.maxUploadMB))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid file upload: file field is required")
		return
	}
	defer file.Close()

	dto, err := h.fileService.UploadDesignFile(r.Context(), userCtx.UserID, header.Filename, header.Header.Get("Content-Type"), file)
	if err != nil {
		respondServiceError(w, h.logger, err, "Failed to upload file")
		return
	}

	respondJSON(w, http.StatusCreated, domain.DesignFileResponse{Success: true, DesignFileDTO: *dto})
}

// @Summary Download a design file
// @Tags Files
// @Produce application/octet-stream
// @Param path path string true "Storage path returned by the upload"
// @Success 200
// @Failure 404 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /dashboard/design-files/{path} [get]
func (h *FileHandler) Download(w http.ResponseWriter, r *http.Request) {
	path := chi.URLParam(r, "*")

	reader, err := h.fileService.OpenDesignFile(r.Context(), path)
	if err != nil {
		respondServiceError(w, h.logger, err, "Failed to download file")
		return
	}
	defer reader.Close()

	contentType := mime.TypeByExtension(filepath.Ext(path))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	w.Header().Set("Content-Disposition", "attachment; filename=\""+filepath.Base(path)+"\"")
	w.Header().Set("Content-Type", contentType)

	if _, err := io.Copy(w, reader); err != nil {
		h.logger.Warn("design file stream interrupted", zap.String("storage_path", path), zap.Error(err))
	}
}
