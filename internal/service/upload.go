package service

import (
	"fmt"
	"log/slog"
	"mime/multipart"

	"github.com/webtech/cameralog/internal/storage"
	"github.com/webtech/cameralog/internal/validation"
)

// uploadDir is the storage prefix for camera photos. Stored photo values are
// relative paths of the form uploads/<name>.
const uploadDir = "uploads"

type UploadService struct {
	storage storage.Storage
}

func NewUploadService(storage storage.Storage) *UploadService {
	return &UploadService{
		storage: storage,
	}
}

// SavePhoto stores an uploaded photo and returns its relative path.
// A missing file, a disallowed extension or a name that sanitizes to nothing
// is not an error: SavePhoto returns nil and nothing is written.
// A file with the same sanitized name replaces the existing one.
func (s *UploadService) SavePhoto(header *multipart.FileHeader) (*string, error) {
	if header == nil || header.Filename == "" {
		return nil, nil
	}

	err := validation.ValidateFile(header, validation.ImageConstraints)
	if err != nil {
		slog.Info("photo skipped", "filename", header.Filename, "reason", err.Error())
		return nil, nil
	}

	filename := validation.SanitizeFilename(header.Filename)
	if filename == "" || !validation.AllowedImage(filename) {
		slog.Info("photo skipped", "filename", header.Filename, "reason", "unusable filename")
		return nil, nil
	}

	file, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open upload: %w", err)
	}
	defer func() {
		closeErr := file.Close()
		if closeErr != nil {
			slog.Error("failed to close upload", "error", closeErr)
		}
	}()

	photo := uploadDir + "/" + filename

	err = s.storage.Save(photo, file)
	if err != nil {
		return nil, fmt.Errorf("failed to save photo: %w", err)
	}

	slog.Info("photo saved", "path", photo, "size", header.Size)
	return &photo, nil
}

// URL returns the browser URL for a stored photo path, or "" for none.
// The file itself is not checked for existence.
func (s *UploadService) URL(photo *string) string {
	if photo == nil || *photo == "" {
		return ""
	}
	return s.storage.URL(*photo)
}
