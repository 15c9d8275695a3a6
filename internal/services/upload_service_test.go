package services

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/perpetual-help/egov-api/internal/config"
	"github.com/perpetual-help/egov-api/internal/logging"
	"github.com/perpetual-help/egov-api/internal/models"
)

// pngHeader is the minimal signature http.DetectContentType needs
var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

func setupUploadServiceTest(t *testing.T) *UploadService {
	logging.InitLogger()

	config.AppConfig.UploadDir = t.TempDir()
	config.AppConfig.MaxUploadBytes = 1 << 20

	return NewUploadService(logging.Logger)
}

// multipartFile builds a *multipart.FileHeader the way gin would hand it over
func multipartFile(t *testing.T, field, filename string, content []byte) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile(field, filename)
	if err != nil {
		t.Fatalf("failed to create form file: %v", err)
	}
	part.Write(content)
	writer.Close()

	req := httptest.NewRequest("POST", "/", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if err := req.ParseMultipartForm(32 << 20); err != nil {
		t.Fatalf("failed to parse multipart form: %v", err)
	}

	files := req.MultipartForm.File[field]
	if len(files) != 1 {
		t.Fatalf("expected one file, got %d", len(files))
	}
	return files[0]
}

func TestSave_StoresPNGUnderSubdir(t *testing.T) {
	service := setupUploadServiceTest(t)

	header := multipartFile(t, "photo", "original name.png", pngHeader)

	relative, err := service.Save(header, "news")
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	if !strings.HasPrefix(relative, "news/") {
		t.Errorf("Save() path = %v, want news/ prefix", relative)
	}
	if !strings.HasSuffix(relative, ".png") {
		t.Errorf("Save() path = %v, want .png extension", relative)
	}
	if strings.Contains(relative, "original") {
		t.Errorf("Save() path = %v, original filename must not survive", relative)
	}

	if _, err := os.Stat(filepath.Join(config.AppConfig.UploadDir, relative)); err != nil {
		t.Errorf("Save() stored file missing: %v", err)
	}
}

func TestSave_RejectsUnsupportedType(t *testing.T) {
	service := setupUploadServiceTest(t)

	header := multipartFile(t, "document", "script.png", []byte("#!/bin/sh\necho hi\n"))

	_, err := service.Save(header, "cedula")
	if err != models.ErrUnsupportedFileType {
		t.Errorf("Save() error = %v, want ErrUnsupportedFileType", err)
	}
}

func TestSave_RejectsOversizedFile(t *testing.T) {
	service := setupUploadServiceTest(t)
	config.AppConfig.MaxUploadBytes = 16

	content := append(append([]byte{}, pngHeader...), bytes.Repeat([]byte{0}, 64)...)
	header := multipartFile(t, "photo", "big.png", content)

	_, err := service.Save(header, "news")
	if err != models.ErrFileTooLarge {
		t.Errorf("Save() error = %v, want ErrFileTooLarge", err)
	}
}

func TestDelete_RejectsEscapingPaths(t *testing.T) {
	service := setupUploadServiceTest(t)

	if err := service.Delete("../etc/passwd"); err != models.ErrUnsupportedFileType {
		t.Errorf("Delete() traversal error = %v, want rejection", err)
	}
	if err := service.Delete("/etc/passwd"); err != models.ErrUnsupportedFileType {
		t.Errorf("Delete() absolute error = %v, want rejection", err)
	}
}

func TestDelete_RemovesStoredFile(t *testing.T) {
	service := setupUploadServiceTest(t)

	header := multipartFile(t, "photo", "gone.png", pngHeader)
	relative, err := service.Save(header, "announcements")
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	if err := service.Delete(relative); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := os.Stat(filepath.Join(config.AppConfig.UploadDir, relative)); !os.IsNotExist(err) {
		t.Errorf("Delete() file still present, stat err = %v", err)
	}
}
