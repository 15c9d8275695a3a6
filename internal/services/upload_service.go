package services

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/perpetual-help/egov-api/internal/config"
	"github.com/perpetual-help/egov-api/internal/logging"
	"github.com/perpetual-help/egov-api/internal/models"
	"github.com/perpetual-help/egov-api/internal/utils"
	"go.uber.org/zap"
)

// allowedUploadTypes maps sniffed MIME types to the extension stored on disk
var allowedUploadTypes = map[string]string{
	"image/jpeg":      ".jpg",
	"image/png":       ".png",
	"application/pdf": ".pdf",
}

// UploadService stores citizen document and photo uploads on local disk.
// Files are renamed to a UUID so original filenames never hit the
// filesystem.
type UploadService struct {
	logger *logging.SafeLogger
}

// NewUploadService creates a new upload service
func NewUploadService(logger *logging.SafeLogger) *UploadService {
	return &UploadService{logger: logger}
}

// Save validates and persists one uploaded file under the configured
// directory, returning the stored relative path.
func (s *UploadService) Save(file *multipart.FileHeader, subdir string) (string, error) {
	if file.Size > config.AppConfig.MaxUploadBytes {
		return "", models.ErrFileTooLarge
	}

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open upload: %w", err)
	}
	defer src.Close()

	// Sniff the real content type; the client-declared header is not trusted
	head := make([]byte, 512)
	n, err := src.Read(head)
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("failed to read upload: %w", err)
	}
	ext, ok := allowedUploadTypes[http.DetectContentType(head[:n])]
	if !ok {
		return "", models.ErrUnsupportedFileType
	}
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("failed to rewind upload: %w", err)
	}

	dir := filepath.Join(config.AppConfig.UploadDir, subdir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %w", err)
	}

	name := utils.GenerateUUID() + ext
	dstPath := filepath.Join(dir, name)
	dst, err := os.Create(dstPath)
	if err != nil {
		return "", fmt.Errorf("failed to create upload file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, io.LimitReader(src, config.AppConfig.MaxUploadBytes)); err != nil {
		os.Remove(dstPath)
		return "", fmt.Errorf("failed to store upload: %w", err)
	}

	relative := filepath.ToSlash(filepath.Join(subdir, name))
	s.logger.Debug("upload stored",
		zap.String("path", relative),
		zap.Int64("size", file.Size))
	return relative, nil
}

// Delete removes a previously stored upload. Paths outside the upload
// directory are rejected.
func (s *UploadService) Delete(relative string) error {
	clean := filepath.Clean(relative)
	if strings.HasPrefix(clean, "..") || filepath.IsAbs(clean) {
		return models.ErrUnsupportedFileType
	}
	full := filepath.Join(config.AppConfig.UploadDir, clean)
	if err := os.Remove(full); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete upload: %w", err)
	}
	return nil
}
