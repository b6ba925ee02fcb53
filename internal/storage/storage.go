package storage

import (
	"fmt"
	"io"
	"log/slog"

	cfg "github.com/webtech/cameralog/internal/config"
)

// Storage defines the interface for file storage operations
type Storage interface {
	// Save stores a file at the given relative path, replacing any existing file
	Save(path string, file io.Reader) error

	// Delete removes a file at the given path
	Delete(path string) error

	// URL returns the URL a browser uses to fetch the file
	URL(path string) string
}

// New creates the storage backend selected by STORAGE_DRIVER.
func New(c *cfg.Config) (Storage, error) {
	switch c.StorageDriver {
	case "", "local":
		slog.Info("initializing local storage", "root", c.StaticDir)
		return NewLocalStorage(c.StaticDir, "/static")
	case "s3":
		slog.Info("initializing S3 storage",
			"bucket", c.S3Bucket,
			"region", c.S3Region,
			"endpoint", c.S3Endpoint,
		)
		return NewS3Storage(S3Config{
			Region:        c.S3Region,
			Bucket:        c.S3Bucket,
			AccessKey:     c.S3AccessKey,
			SecretKey:     c.S3SecretKey,
			Endpoint:      c.S3Endpoint,
			PresignExpiry: c.S3PresignExpiry,
		})
	default:
		return nil, fmt.Errorf("unknown storage driver: %q", c.StorageDriver)
	}
}
